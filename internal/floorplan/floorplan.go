// Package floorplan loads the textual grid form of a workshop into an
// immutable rectangular plan of decoded tiles. Rows are 2-character tiles
// separated by single spaces; leading indentation shifts a row right in
// whole tile columns, so all indents must agree modulo the 3-character
// column pitch and all rows must end on the same right edge.
package floorplan

import (
	"fmt"
	"strings"

	"github.com/vk/workshopnet/internal/tile"
)

// columnPitch is the width one tile column occupies in source text: two
// tile characters plus the separating space.
const columnPitch = 3

// Pos is a grid coordinate. Row 0 is the top row, column 0 the left edge.
type Pos struct {
	Row, Col int
}

func (p Pos) String() string { return fmt.Sprintf("(%d,%d)", p.Row, p.Col) }

// Advance returns the neighboring position one cell along the heading.
func Advance(p Pos, d tile.Direction) Pos {
	switch d {
	case tile.Up:
		p.Row--
	case tile.Down:
		p.Row++
	case tile.Left:
		p.Col--
	case tile.Right:
		p.Col++
	}
	return p
}

// Plan is one workshop's decoded floorplan. It is shared read-only between
// every elf spawned into the workshop.
type Plan struct {
	Name   string
	Width  int
	Height int

	// Spawn is the single e<dir> tile where elves enter the plan.
	Spawn    Pos
	SpawnDir tile.Direction

	tiles [][]tile.Tile
}

// At returns the tile at pos. The second result is false when pos lies off
// the grid; the caller decides whether that is fatal.
func (p *Plan) At(pos Pos) (tile.Tile, bool) {
	if pos.Row < 0 || pos.Row >= p.Height || pos.Col < 0 || pos.Col >= p.Width {
		return tile.Tile{}, false
	}
	return p.tiles[pos.Row][pos.Col], true
}

// Parse decodes the textual floorplan of the named workshop. It rejects
// misaligned indentation, rows with inconsistent right edges, invalid tile
// codes (with their coordinate), and plans without exactly one spawn point.
func Parse(name, text string) (*Plan, error) {
	type row struct {
		offset int
		codes  []string
	}

	var rows []row
	minOffset := -1
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimRight(line, " \t")
		if line == "" {
			if len(rows) > 0 {
				// interior blank lines would make the grid ambiguous
				rows = append(rows, row{})
			}
			continue
		}
		indent := len(line) - len(strings.TrimLeft(line, " "))
		body := line[indent:]
		if strings.ContainsRune(body, '\t') {
			return nil, fmt.Errorf("workshop %q: floorplan rows must be indented with spaces only", name)
		}
		r := row{offset: indent, codes: splitTiles(body)}
		rows = append(rows, r)
		if minOffset < 0 || indent < minOffset {
			minOffset = indent
		}
	}
	// drop blank rows recorded past the last real one
	for len(rows) > 0 && rows[len(rows)-1].codes == nil {
		rows = rows[:len(rows)-1]
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("workshop %q: floorplan is empty", name)
	}

	p := &Plan{Name: name, Height: len(rows)}
	rightEdge := -1
	for i, r := range rows {
		if r.codes == nil {
			return nil, fmt.Errorf("workshop %q: blank line inside floorplan at row %d", name, i)
		}
		if (r.offset-minOffset)%columnPitch != 0 {
			return nil, fmt.Errorf("workshop %q: row %d is indented off the tile grid", name, i)
		}
		col0 := (r.offset - minOffset) / columnPitch
		edge := col0 + len(r.codes)
		if rightEdge < 0 {
			rightEdge = edge
		} else if edge != rightEdge {
			return nil, fmt.Errorf("workshop %q: row %d has inconsistent width (%d columns, want %d)", name, i, edge, rightEdge)
		}

		cells := make([]tile.Tile, rightEdge)
		for c := range cells {
			cells[c] = tile.Tile{Kind: tile.Empty, Code: ".."}
		}
		for j, code := range r.codes {
			decoded, err := tile.Decode(code)
			if err != nil {
				return nil, fmt.Errorf("workshop %q: tile %s: %w", name, Pos{Row: i, Col: col0 + j}, err)
			}
			cells[col0+j] = decoded
		}
		p.tiles = append(p.tiles, cells)
	}
	p.Width = rightEdge

	found := false
	for r, cells := range p.tiles {
		for c, cell := range cells {
			if cell.Kind != tile.Spawn {
				continue
			}
			if found {
				return nil, fmt.Errorf("workshop %q: multiple spawn points, second at %s", name, Pos{Row: r, Col: c})
			}
			found = true
			p.Spawn = Pos{Row: r, Col: c}
			p.SpawnDir = cell.Dir
		}
	}
	if !found {
		return nil, fmt.Errorf("workshop %q: floorplan has no spawn point", name)
	}
	return p, nil
}

// splitTiles cuts a row body into two-character codes at the fixed column
// pitch, so that tiles containing spaces (like "C ") survive.
func splitTiles(body string) []string {
	var codes []string
	for i := 0; i < len(body); i += columnPitch {
		end := i + 2
		if end > len(body) {
			end = len(body)
		}
		codes = append(codes, body[i:end])
	}
	return codes
}
