// Package commands drives the search request lifecycle: it starts requests,
// turns a submit during an outstanding request into a cancel, and folds
// results back into the request state.
package commands

import (
	"context"
	"log"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"usersearch/internal/domain"
	"usersearch/internal/eventbus"
	"usersearch/internal/search"
	"usersearch/internal/ui/state"
)

// pending is the handle of the single outstanding request
type pending struct {
	id      uint64
	cancel  context.CancelFunc
	started time.Time
}

// Executor owns the request state. It is not safe for concurrent use; all
// calls are expected to come from the bubbletea update loop.
type Executor struct {
	ctx     *CommandContext
	state   state.RequestState
	pending *pending
	nextID  uint64
}

// NewExecutor creates a new command executor
func NewExecutor(searcher search.Searcher, endpoint func() string, bus eventbus.EventBus) *Executor {
	return &Executor{
		ctx: &CommandContext{
			Searcher: searcher,
			Endpoint: endpoint,
			Bus:      bus,
			Now:      time.Now,
		},
		state: state.Idle(),
	}
}

// State returns the current request state
func (e *Executor) State() state.RequestState {
	return e.state
}

// InFlight reports whether a request is outstanding
func (e *Executor) InFlight() bool {
	return e.pending != nil
}

// Submit starts a search for criteria when idle. When a request is already
// outstanding it cancels that request instead and returns nil.
func (e *Executor) Submit(criteria domain.SearchCriteria) tea.Cmd {
	if e.pending != nil {
		return NewCancelCommand(e).Execute()
	}
	return NewSearchCommand(e, criteria).Execute()
}

// Cancel aborts the outstanding request. It reports false when idle.
func (e *Executor) Cancel() bool {
	if e.pending == nil {
		return false
	}
	NewCancelCommand(e).Execute()
	return true
}

// Resolve applies a request outcome. Results of requests that are no longer
// outstanding are dropped and Resolve reports false.
func (e *Executor) Resolve(msg SearchResultMsg) bool {
	if e.pending == nil || e.pending.id != msg.ID {
		log.Printf("Dropping result of stale search %d", msg.ID)
		return false
	}

	p := e.release()
	elapsed := e.ctx.Now().Sub(p.started)

	switch {
	case msg.Err == nil && len(msg.Records) == 0:
		if e.transition(state.NotFound()) {
			e.ctx.publish(eventbus.SearchNotFoundEvent{RequestID: p.id, Elapsed: elapsed})
		}
	case msg.Err == nil:
		if e.transition(state.Completed(msg.Records)) {
			e.ctx.publish(eventbus.SearchCompletedEvent{RequestID: p.id, Count: len(msg.Records), Elapsed: elapsed})
		}
	case search.IsCancel(msg.Err):
		if e.transition(state.Cancelled()) {
			e.ctx.publish(eventbus.SearchCancelledEvent{RequestID: p.id})
		}
	default:
		if e.transition(state.Failed(msg.Err)) {
			e.ctx.publish(eventbus.SearchFailedEvent{RequestID: p.id, Err: msg.Err})
		}
	}
	return true
}

// Shutdown aborts any outstanding request without touching the state. The
// abort is still published so the log records it.
func (e *Executor) Shutdown() {
	if p := e.release(); p != nil {
		e.ctx.publish(eventbus.SearchCancelledEvent{RequestID: p.id})
	}
}

// transition moves to next when the lifecycle allows it. Illegal moves are
// logged and leave the state unchanged.
func (e *Executor) transition(next state.RequestState) bool {
	if !state.CanTransition(e.state.Phase(), next.Phase()) {
		log.Printf("Ignoring illegal search state change %s -> %s", e.state.Phase(), next.Phase())
		return false
	}
	e.state = next
	return true
}

// release clears the outstanding handle and cancels its context
func (e *Executor) release() *pending {
	p := e.pending
	if p == nil {
		return nil
	}
	e.pending = nil
	p.cancel()
	return p
}
