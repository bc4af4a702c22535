// Package tile defines the instruction model of the workshop runtime: the
// two-character tile codes of a floorplan, their decoded instruction form,
// the integer arithmetic operators, and the runtime value type flowing
// through stacks and pipes.
package tile
