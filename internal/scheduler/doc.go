// Package scheduler drives the cooperative runtime: a deterministic
// round-robin over resumable execution contexts, one instruction per turn.
// Fairness is by construction (stable creation order, single-instruction
// granularity), blocked participants re-run every cycle until they park
// terminally, and the run ends at quiescence or detected deadlock.
package scheduler
