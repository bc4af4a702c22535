// This file translates the raw body of a santa block into the ordered ToDo
// list of the config model. The block order inside santa is significant, so
// the body is walked via hcl.BodyContent instead of gohcl, which groups
// blocks by type.

package hcl

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"

	"github.com/vk/workshopnet/internal/config"
	"github.com/vk/workshopnet/internal/schema"
)

var santaSchema = &hcl.BodySchema{
	Blocks: []hcl.BlockHeaderSchema{
		{Type: "elf", LabelNames: []string{"name"}},
		{Type: "pipe"},
		{Type: "monitor", LabelNames: []string{"port"}},
		{Type: "source"},
		{Type: "sink"},
	},
}

var monitorSchema = &hcl.BodySchema{
	Blocks: []hcl.BlockHeaderSchema{
		{Type: "receive", LabelNames: []string{"var"}},
		{Type: "send"},
		{Type: "deliver", LabelNames: []string{"var"}},
	},
}

func translateSanta(body hcl.Body) ([]config.ToDo, error) {
	content, diags := body.Content(santaSchema)
	if diags.HasErrors() {
		return nil, fmt.Errorf("invalid santa block: %w", diags)
	}

	var todos []config.ToDo
	for _, block := range content.Blocks {
		td, err := translateBlock(block)
		if err != nil {
			return nil, err
		}
		todos = append(todos, td)
	}
	return todos, nil
}

func translateBlock(block *hcl.Block) (config.ToDo, error) {
	switch block.Type {
	case "elf":
		var e schema.Elf
		if diags := gohcl.DecodeBody(block.Body, nil, &e); diags.HasErrors() {
			return nil, fmt.Errorf("invalid elf block: %w", diags)
		}
		return config.SetupElf{Shop: e.Workshop, Name: block.Labels[0], Stack: e.Stack}, nil

	case "pipe":
		var p schema.Pipe
		if diags := gohcl.DecodeBody(block.Body, nil, &p); diags.HasErrors() {
			return nil, fmt.Errorf("invalid pipe block: %w", diags)
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
		return translateMonitor(block)

	case "source":
		var s schema.Source
		if diags := gohcl.DecodeBody(block.Body, nil, &s); diags.HasErrors() {
			return nil, fmt.Errorf("invalid source block: %w", diags)
		}
		to, err := config.ParsePortRef(s.To)
		if err != nil {
			return nil, err
		}
		return config.Source{Path: s.Path, To: to}, nil

	case "sink":
		var s schema.Sink
		if diags := gohcl.DecodeBody(block.Body, nil, &s); diags.HasErrors() {
			return nil, fmt.Errorf("invalid sink block: %w", diags)
		}
		from, err := config.ParsePortRef(s.From)
		if err != nil {
			return nil, err
		}
		return config.Sink{Path: s.Path, From: from}, nil
	}
	return nil, fmt.Errorf("unsupported block type %q", block.Type)
}

func translateMonitor(block *hcl.Block) (config.ToDo, error) {
	port, err := config.ParsePortRef(block.Labels[0])
	if err != nil {
		return nil, err
	}
	content, diags := block.Body.Content(monitorSchema)
	if diags.HasErrors() {
		return nil, fmt.Errorf("invalid monitor %s: %w", port, diags)
	}

	var body []config.ToDo
	for _, inner := range content.Blocks {
		switch inner.Type {
		case "receive":
			var r schema.Receive
			if diags := gohcl.DecodeBody(inner.Body, nil, &r); diags.HasErrors() {
				return nil, fmt.Errorf("monitor %s: invalid receive block: %w", port, diags)
			}
			recv := config.Receive{Var: inner.Labels[0]}
			if r.From != "" {
				from, err := config.ParsePortRef(r.From)
				if err != nil {
					return nil, err
				}
				recv.From = &from
			}
			body = append(body, recv)

		case "send":
			var s schema.Send
			if diags := gohcl.DecodeBody(inner.Body, nil, &s); diags.HasErrors() {
				return nil, fmt.Errorf("monitor %s: invalid send block: %w", port, diags)
			}
			to, err := config.ParsePortRef(s.To)
			if err != nil {
				return nil, err
			}
			body = append(body, config.Send{Var: s.Var, Value: s.Value, To: to})

		case "deliver":
			var d struct{}
			if diags := gohcl.DecodeBody(inner.Body, nil, &d); diags.HasErrors() {
				return nil, fmt.Errorf("monitor %s: invalid deliver block: %w", port, diags)
			}
			body = append(body, config.Deliver{Var: inner.Labels[0]})
		}
	}
	return config.Monitor{Port: port, Body: body}, nil
}
