// Package state holds the search request lifecycle as a single tagged value.
package state

import (
	"fmt"

	"usersearch/internal/domain"
)

// Phase identifies where a search request is in its lifecycle
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseInFlight
	PhaseCompleted
	PhaseNotFound
	PhaseCancelled
	PhaseFailed
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseInFlight:
		return "in-flight"
	case PhaseCompleted:
		return "completed"
	case PhaseNotFound:
		return "not-found"
	case PhaseCancelled:
		return "cancelled"
	case PhaseFailed:
		return "failed"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// Outcome reports whether p is one of the result phases that wait for the
// next submit.
func (p Phase) Outcome() bool {
	switch p {
	case PhaseCompleted, PhaseNotFound, PhaseCancelled, PhaseFailed:
		return true
	}
	return false
}

// RequestState is the request lifecycle. Results are only carried by
// PhaseCompleted and Err only by PhaseFailed; the constructors are the only
// way to build one.
type RequestState struct {
	phase   Phase
	results []domain.UserRecord
	err     error
}

// Idle is the initial state.
func Idle() RequestState { return RequestState{phase: PhaseIdle} }

// InFlight marks a request as outstanding. Previous results are dropped.
func InFlight() RequestState { return RequestState{phase: PhaseInFlight} }

// Completed builds the success state. An empty list yields NotFound.
func Completed(records []domain.UserRecord) RequestState {
	if len(records) == 0 {
		return NotFound()
	}
	out := make([]domain.UserRecord, len(records))
	copy(out, records)
	return RequestState{phase: PhaseCompleted, results: out}
}

// NotFound is the zero-result success state.
func NotFound() RequestState { return RequestState{phase: PhaseNotFound} }

// Cancelled is the user-abort state.
func Cancelled() RequestState { return RequestState{phase: PhaseCancelled} }

// Failed is the state for every error other than cancellation.
func Failed(err error) RequestState { return RequestState{phase: PhaseFailed, err: err} }

// Phase returns the lifecycle phase.
func (s RequestState) Phase() Phase { return s.phase }

// Results returns the records of a completed search, nil otherwise.
func (s RequestState) Results() []domain.UserRecord { return s.results }

// Err returns the failure cause, nil unless the phase is PhaseFailed.
func (s RequestState) Err() error { return s.err }

// Loading reports whether a request is outstanding.
func (s RequestState) Loading() bool { return s.phase == PhaseInFlight }

func (s RequestState) String() string {
	switch s.phase {
	case PhaseCompleted:
		return fmt.Sprintf("%s(%d)", s.phase, len(s.results))
	case PhaseFailed:
		return fmt.Sprintf("%s(%v)", s.phase, s.err)
	default:
		return s.phase.String()
	}
}

// CanTransition reports whether the lifecycle allows moving from one phase
// to another. Any resting phase may start a new request; only an outstanding
// request may resolve.
func CanTransition(from, to Phase) bool {
	switch to {
	case PhaseInFlight:
		return from == PhaseIdle || from.Outcome()
	case PhaseCompleted, PhaseNotFound, PhaseCancelled, PhaseFailed:
		return from == PhaseInFlight
	case PhaseIdle:
		return from.Outcome()
	}
	return false
}
