// Package registry holds the parsed floorplans of every workshop a program
// declares, keyed by workshop name.
//
// During application startup the registry is populated from the loaded
// model and every floorplan is decoded up front, so name and tile errors
// surface before any elf runs.
package registry

import (
	"context"
	"fmt"

	"github.com/vk/workshopnet/internal/config"
	"github.com/vk/workshopnet/internal/ctxlog"
	"github.com/vk/workshopnet/internal/floorplan"
)

// Registry maps workshop names to their decoded floorplans.
type Registry struct {
	plans map[string]*floorplan.Plan
}

// New returns an empty registry.
func New() *Registry {
	return &Registry{plans: make(map[string]*floorplan.Plan)}
}

// FromModel builds a registry from a loaded program model, parsing every
// declared floorplan.
func FromModel(ctx context.Context, m *config.Model) (*Registry, error) {
	logger := ctxlog.FromContext(ctx)
	reg := New()
	for name, text := range m.Workshops {
		plan, err := floorplan.Parse(name, text)
		if err != nil {
			return nil, err
		}
		if err := reg.Register(plan); err != nil {
			return nil, err
		}
		logger.Debug("Registered workshop.", "name", name, "width", plan.Width, "height", plan.Height)
	}
	logger.Info("Workshop registry loaded.", "workshops", len(reg.plans))
	return reg, nil
}

// Register adds a parsed floorplan under its workshop name. Duplicate names
// are a configuration error.
func (r *Registry) Register(plan *floorplan.Plan) error {
	if _, exists := r.plans[plan.Name]; exists {
		return fmt.Errorf("workshop %q declared more than once", plan.Name)
	}
	r.plans[plan.Name] = plan
	return nil
}

// Lookup resolves a workshop name to its floorplan.
func (r *Registry) Lookup(name string) (*floorplan.Plan, error) {
	plan, ok := r.plans[name]
	if !ok {
		return nil, fmt.Errorf("unknown workshop %q", name)
	}
	return plan, nil
}

// Len returns the number of registered workshops.
func (r *Registry) Len() int { return len(r.plans) }
