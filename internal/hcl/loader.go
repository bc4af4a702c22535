package hcl

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/vk/workshopnet/internal/config"
	"github.com/vk/workshopnet/internal/ctxlog"
	"github.com/vk/workshopnet/internal/schema"
)

// Loader is the HCL implementation of config.Loader.
type Loader struct{}

// NewLoader creates a new HCL loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load implements config.Loader.
func (l *Loader) Load(ctx context.Context, path string) (*config.Model, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Loading HCL manifest.", "path", path)

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file %s: %w", path, diags)
	}

	var mf schema.Manifest
	if diags := gohcl.DecodeBody(file.Body, nil, &mf); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode manifest %s: %w", path, diags)
	}

	m := &config.Model{Workshops: make(map[string]string)}
	for _, w := range mf.Workshops {
		if _, exists := m.Workshops[w.Name]; exists {
			return nil, fmt.Errorf("workshop %q declared more than once", w.Name)
		}
		m.Workshops[w.Name] = w.Floorplan
	}
	if mf.Santa != nil {
		todos, err := translateSanta(mf.Santa.Body)
		if err != nil {
			return nil, fmt.Errorf("in manifest %s: %w", path, err)
		}
		m.Todos = todos
	}

	logger.Debug("Manifest loaded.", "workshops", len(m.Workshops), "todos", len(m.Todos))
	return m, nil
}
