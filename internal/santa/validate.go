package santa

import (
	"fmt"

	"github.com/vk/workshopnet/internal/config"
)

// Validate checks the static shape of a ToDo list before anything runs:
// handler-only instructions may not appear at the top level, monitor bodies
// may hold only handler instructions, every send carries exactly one value
// source, and every variable a handler uses is received earlier in the same
// body.
func Validate(todos []config.ToDo) error {
	for i, td := range todos {
		switch td := td.(type) {
		case config.SetupElf:
			if td.Shop == "" {
				return fmt.Errorf("todo %d: setup without a workshop name", i)
			}
		case config.Connect, config.Source, config.Sink:
			// shape checked by the fabric and file endpoints at run time
		case config.Monitor:
			if err := validateBody(td); err != nil {
				return fmt.Errorf("todo %d: %w", i, err)
			}
		default:
			return fmt.Errorf("todo %d: %T is only valid inside a monitor body", i, td)
		}
	}
	return nil
}

func validateBody(m config.Monitor) error {
	if len(m.Body) == 0 {
		return fmt.Errorf("monitor %s: empty body", m.Port)
	}
	consumes := false
	for _, td := range m.Body {
		if r, ok := td.(config.Receive); ok && r.From == nil {
			consumes = true
			break
		}
	}
	if !consumes {
		// without a receive from the monitored port the arrival would
		// never be consumed and the handler would re-fire forever
		return fmt.Errorf("monitor %s: body never receives from the monitored port", m.Port)
	}
	vars := make(map[string]bool)
	for i, td := range m.Body {
		switch td := td.(type) {
		case config.Receive:
			if td.Var == "" {
				return fmt.Errorf("monitor %s: receive %d has no variable", m.Port, i)
			}
			vars[td.Var] = true
		case config.Send:
			if (td.Var == "") == (td.Value == nil) {
				return fmt.Errorf("monitor %s: send %d needs exactly one of a variable or a literal", m.Port, i)
			}
			if td.Var != "" && !vars[td.Var] {
				return fmt.Errorf("monitor %s: send %d uses %q before any receive into it", m.Port, i, td.Var)
			}
		case config.Deliver:
			if !vars[td.Var] {
				return fmt.Errorf("monitor %s: deliver %d uses %q before any receive into it", m.Port, i, td.Var)
			}
		default:
			return fmt.Errorf("monitor %s: %T is not valid inside a monitor body", m.Port, td)
		}
	}
	return nil
}
