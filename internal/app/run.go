package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/vk/workshopnet/internal/config"
	"github.com/vk/workshopnet/internal/ctxlog"
	"github.com/vk/workshopnet/internal/fabric"
	"github.com/vk/workshopnet/internal/fsutil"
	"github.com/vk/workshopnet/internal/hcl"
	"github.com/vk/workshopnet/internal/registry"
	"github.com/vk/workshopnet/internal/santa"
	"github.com/vk/workshopnet/internal/scheduler"
	"github.com/vk/workshopnet/internal/yaml"
)

// manifestExtensions are the formats Run recognizes, in loader dispatch
// order.
var manifestExtensions = []string{".hcl", ".yaml", ".yml"}

// Run loads the program's manifests and drives the scheduler to
// quiescence.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	model, err := a.loadModel(ctx)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	reg, err := registry.FromModel(ctx, model)
	if err != nil {
		return fmt.Errorf("invalid workshop: %w", err)
	}

	var sink scheduler.Sink
	if a.config.Trace {
		sink = scheduler.NewLogSink(a.logger)
	}
	fab := fabric.New(a.config.Buffer)
	sched := scheduler.New(sink)

	controller, err := santa.New(reg, fab, sched, model.Todos, a.outW)
	if err != nil {
		return fmt.Errorf("invalid todo list: %w", err)
	}
	sched.Add(controller)

	a.logger.Info("Starting workshop run.", "workshops", reg.Len(), "todos", len(model.Todos))
	if err := sched.Run(ctx); err != nil {
		return fmt.Errorf("run failed: %w", err)
	}
	a.logger.Info("Run finished.", "steps", sched.Steps())
	return nil
}

// loadModel resolves the input path into manifest files and merges their
// models. Files are loaded in sorted path order so multi-file programs
// keep a stable ToDo order.
func (a *App) loadModel(ctx context.Context) (*config.Model, error) {
	paths, err := a.manifestPaths()
	if err != nil {
		return nil, err
	}

	merged := &config.Model{Workshops: make(map[string]string)}
	for _, path := range paths {
		loader, err := loaderFor(path)
		if err != nil {
			return nil, err
		}
		m, err := loader.Load(ctx, path)
		if err != nil {
			return nil, err
		}
		for name, plan := range m.Workshops {
			if _, exists := merged.Workshops[name]; exists {
				return nil, fmt.Errorf("workshop %q declared in more than one manifest", name)
			}
			merged.Workshops[name] = plan
		}
		merged.Todos = append(merged.Todos, m.Todos...)
	}
	return merged, nil
}

func (a *App) manifestPaths() ([]string, error) {
	info, err := os.Stat(a.config.InputPath)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return []string{a.config.InputPath}, nil
	}
	paths, err := fsutil.FindFilesByExtension(a.config.InputPath, manifestExtensions...)
	if err != nil {
		return nil, err
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no manifest files found in %s", a.config.InputPath)
	}
	sort.Strings(paths)
	return paths, nil
}

func loaderFor(path string) (config.Loader, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".hcl":
		return hcl.NewLoader(), nil
	case ".yaml", ".yml":
		return yaml.NewLoader(), nil
	}
	return nil, fmt.Errorf("unsupported manifest extension on %s", path)
}
