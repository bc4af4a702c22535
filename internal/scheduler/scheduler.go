package scheduler

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/vk/workshopnet/internal/ctxlog"
)

// Scheduler drives every participant with a cooperative, single-threaded,
// deterministic round-robin: one instruction per turn, in creation order.
// It owns run order and liveness bookkeeping but mutates no domain state;
// all it ever does is invoke single-step transitions and record the
// resulting events.
type Scheduler struct {
	participants []Participant
	sink         Sink
	steps        uint64
	failures     []error
}

// New creates an empty scheduler. A nil sink disables tracing.
func New(sink Sink) *Scheduler {
	return &Scheduler{sink: sink}
}

// Add registers a participant and returns its identity. Identities are
// creation-order indexes, which keeps run order (and therefore traces)
// stable across runs. Adding during Run is allowed; a participant spawned
// mid-cycle takes its first turn in the same cycle.
func (s *Scheduler) Add(p Participant) int {
	id := len(s.participants)
	s.participants = append(s.participants, p)
	p.SetID(id)
	return id
}

// DeadlockError reports the anomaly where every remaining participant is
// blocked and none can be unblocked by another. It is distinct from normal
// all-asleep completion.
type DeadlockError struct {
	Blocked []string
}

func (e *DeadlockError) Error() string {
	return fmt.Sprintf("deadlock: no participant can make progress (blocked: %s)", strings.Join(e.Blocked, ", "))
}

// FatalError marks a participant failure that invalidates the whole run,
// such as a broken pipe configuration. Run returns it immediately instead
// of letting the remaining participants drain.
type FatalError struct {
	Err error
}

func (e *FatalError) Error() string { return e.Err.Error() }
func (e *FatalError) Unwrap() error { return e.Err }

// Run steps participants until quiescence: every participant Asleep or
// Failed. Per-step failures are fatal only to the failing participant;
// they are collected and reported together after the run drains, except
// for a FatalError, which aborts the run on the spot. A full cycle in
// which every live participant merely yields is a deadlock.
func (s *Scheduler) Run(ctx context.Context) error {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Scheduler starting.", "participants", len(s.participants))

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		progress := false
		active := false
		// index loop: participants appended mid-cycle still get stepped
		for i := 0; i < len(s.participants); i++ {
			p := s.participants[i]
			if p.Status().Terminal() {
				continue
			}
			active = true

			ev, err := p.Step()
			s.steps++
			s.record(p, ev, err)

			if err != nil {
				var fatal *FatalError
				if errors.As(err, &fatal) {
					logger.Error("Run aborted.", "participant", p.Name(), "error", err)
					return err
				}
				logger.Error("Participant failed.", "participant", p.Name(), "error", err)
				s.failures = append(s.failures, err)
				progress = true
				continue
			}
			if ev.Kind != Yield {
				progress = true
			}
		}

		if !active {
			break
		}
		if !progress {
			var blocked []string
			for _, p := range s.participants {
				if !p.Status().Terminal() {
					blocked = append(blocked, fmt.Sprintf("%s (%s)", p.Name(), p.Status()))
				}
			}
			logger.Error("Deadlock detected.", "blocked", blocked)
			return &DeadlockError{Blocked: blocked}
		}
	}

	logger.Debug("Scheduler quiescent.", "steps", s.steps)
	if len(s.failures) > 0 {
		return fmt.Errorf("%d participant(s) failed: %w", len(s.failures), s.failures[0])
	}
	return nil
}

// Steps returns the number of steps taken so far.
func (s *Scheduler) Steps() uint64 { return s.steps }

func (s *Scheduler) record(p Participant, ev Event, err error) {
	if s.sink == nil {
		return
	}
	rec := TraceRecord{
		Step:        s.steps,
		Participant: p.Name(),
		Event:       ev,
	}
	if err != nil {
		rec.Err = err.Error()
	}
	s.sink.Record(rec)
}
