// Package yaml provides the YAML implementation of the manifest loading
// interface defined in the `config` package. The santa list is a YAML
// sequence of single-key mappings, which keeps ToDo order explicit in the
// document itself.
package yaml

import (
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/vk/workshopnet/internal/config"
	"github.com/vk/workshopnet/internal/ctxlog"
)

// Loader is the YAML implementation of config.Loader.
type Loader struct{}

// NewLoader creates a new YAML loader.
func NewLoader() *Loader {
	return &Loader{}
}

type manifest struct {
	Workshops map[string]string `yaml:"workshops"`
	Santa     []yaml.Node       `yaml:"santa"`
}

// Load implements config.Loader.
func (l *Loader) Load(ctx context.Context, path string) (*config.Model, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Loading YAML manifest.", "path", path)

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}
	var mf manifest
	if err := yaml.Unmarshal(data, &mf); err != nil {
		return nil, fmt.Errorf("failed to decode manifest %s: %w", path, err)
	}

	m := &config.Model{Workshops: mf.Workshops}
	if m.Workshops == nil {
		m.Workshops = make(map[string]string)
	}
	for _, node := range mf.Santa {
		td, err := translateEntry(node, false)
		if err != nil {
			return nil, fmt.Errorf("in manifest %s: %w", path, err)
		}
		m.Todos = append(m.Todos, td)
	}

	logger.Debug("Manifest loaded.", "workshops", len(m.Workshops), "todos", len(m.Todos))
	return m, nil
}

// translateEntry converts one single-key mapping from the santa (or
// monitor body) sequence into a ToDo.
func translateEntry(node yaml.Node, inBody bool) (config.ToDo, error) {
	var entry map[string]yaml.Node
	if err := node.Decode(&entry); err != nil {
		return nil, fmt.Errorf("line %d: %w", node.Line, err)
	}
	if len(entry) != 1 {
		return nil, fmt.Errorf("line %d: each entry must be a single-key mapping", node.Line)
	}
	for key, payload := range entry {
		if inBody {
			return translateBodyEntry(key, payload)
		}
		return translateTopEntry(key, payload)
	}
	return nil, nil
}

func translateTopEntry(key string, payload yaml.Node) (config.ToDo, error) {
	switch key {
	case "elf":
		var e struct {
			Workshop string  `yaml:"workshop"`
			Name     string  `yaml:"name"`
			Stack    []int64 `yaml:"stack"`
		}
		if err := payload.Decode(&e); err != nil {
			return nil, err
		}
		return config.SetupElf{Shop: e.Workshop, Name: e.Name, Stack: e.Stack}, nil

	case "pipe":
		var p struct {
			From string `yaml:"from"`
			To   string `yaml:"to"`
		}
		if err := payload.Decode(&p); err != nil {
			return nil, err
		}
		src, err := config.ParsePortRef(p.From)
		if err != nil {
			return nil, err
		}
		dst, err := config.ParsePortRef(p.To)
		if err != nil {
			return nil, err
		}
		return config.Connect{Src: src, Dst: dst}, nil

	case "monitor":
		var mon struct {
			Port string      `yaml:"port"`
			Body []yaml.Node `yaml:"body"`
		}
		if err := payload.Decode(&mon); err != nil {
			return nil, err
		}
		port, err := config.ParsePortRef(mon.Port)
		if err != nil {
			return nil, err
		}
		var body []config.ToDo
		for _, inner := range mon.Body {
			td, err := translateEntry(inner, true)
			if err != nil {
				return nil, fmt.Errorf("monitor %s: %w", port, err)
			}
			body = append(body, td)
		}
		return config.Monitor{Port: port, Body: body}, nil

	case "source":
		var s struct {
			Path string `yaml:"path"`
			To   string `yaml:"to"`
		}
		if err := payload.Decode(&s); err != nil {
			return nil, err
		}
		to, err := config.ParsePortRef(s.To)
		if err != nil {
			return nil, err
		}
		return config.Source{Path: s.Path, To: to}, nil

	case "sink":
		var s struct {
			Path string `yaml:"path"`
			From string `yaml:"from"`
		}
		if err := payload.Decode(&s); err != nil {
			return nil, err
		}
		from, err := config.ParsePortRef(s.From)
		if err != nil {
			return nil, err
		}
		return config.Sink{Path: s.Path, From: from}, nil
	}
	return nil, fmt.Errorf("unsupported santa entry %q", key)
}

func translateBodyEntry(key string, payload yaml.Node) (config.ToDo, error) {
	switch key {
	case "receive":
		var r struct {
			Var  string `yaml:"var"`
			From string `yaml:"from"`
		}
		if err := payload.Decode(&r); err != nil {
			return nil, err
		}
		recv := config.Receive{Var: r.Var}
		if r.From != "" {
			from, err := config.ParsePortRef(r.From)
			if err != nil {
				return nil, err
			}
			recv.From = &from
		}
		return recv, nil

	case "send":
		var s struct {
			Var   string `yaml:"var"`
			Value *int64 `yaml:"value"`
			To    string `yaml:"to"`
		}
		if err := payload.Decode(&s); err != nil {
			return nil, err
		}
		to, err := config.ParsePortRef(s.To)
		if err != nil {
			return nil, err
		}
		return config.Send{Var: s.Var, Value: s.Value, To: to}, nil

	case "deliver":
		var d struct {
			Var string `yaml:"var"`
		}
		if err := payload.Decode(&d); err != nil {
			return nil, err
		}
		return config.Deliver{Var: d.Var}, nil
	}
	return nil, fmt.Errorf("unsupported monitor body entry %q", key)
}
