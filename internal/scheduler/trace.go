package scheduler

import (
	"log/slog"

	"github.com/vk/workshopnet/internal/tile"
)

// TraceRecord is one entry of the structured trace stream: which
// participant stepped, what it executed, and what the step did. Formatting
// for humans is out of scope here; an external consumer renders these.
type TraceRecord struct {
	Step        uint64
	Participant string
	Event       Event
	Err         string
}

// Sink receives one record per scheduler step.
type Sink interface {
	Record(TraceRecord)
}

// SinkFunc adapts a function to the Sink interface.
type SinkFunc func(TraceRecord)

func (f SinkFunc) Record(r TraceRecord) { f(r) }

// CollectSink appends every record to an in-memory slice. Useful for tests
// and for determinism checks.
type CollectSink struct {
	Records []TraceRecord
}

func (c *CollectSink) Record(r TraceRecord) { c.Records = append(c.Records, r) }

// NewLogSink emits each trace record through the given logger at debug
// level, using one attr per field so downstream handlers keep structure.
func NewLogSink(logger *slog.Logger) Sink {
	return SinkFunc(func(r TraceRecord) {
		attrs := []any{
			"step", r.Step,
			"participant", r.Participant,
			"event", r.Event.Kind.String(),
			"pos", r.Event.Pos.String(),
			"instr", r.Event.Instr,
			"stack", stackAttr(r.Event.Stack),
		}
		if r.Event.Kind == Write || r.Event.Kind == Dequeue {
			attrs = append(attrs, "value", r.Event.Value.String())
			if r.Event.Port != 0 {
				attrs = append(attrs, "port", string(r.Event.Port))
			}
		}
		if r.Err != "" {
			attrs = append(attrs, "error", r.Err)
		}
		logger.Debug("trace", attrs...)
	})
}

func stackAttr(stack []tile.Value) []string {
	out := make([]string, len(stack))
	for i, v := range stack {
		out[i] = v.String()
	}
	return out
}
