package commands

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"usersearch/internal/domain"
	"usersearch/internal/eventbus"
	"usersearch/internal/search"
	"usersearch/internal/ui/state"
)

// Command represents an executable action
type Command interface {
	Execute() tea.Cmd
}

// CommandContext provides the collaborators commands need
type CommandContext struct {
	Searcher search.Searcher
	// Endpoint is consulted each time a request is built.
	Endpoint func() string
	Bus      eventbus.EventBus
	Now      func() time.Time
}

func (c *CommandContext) publish(event eventbus.DomainEvent) {
	if c.Bus != nil {
		c.Bus.Publish(event)
	}
}

// SearchResultMsg carries the outcome of one request back to the UI loop
type SearchResultMsg struct {
	ID      uint64
	Records []domain.UserRecord
	Err     error
}

// SearchCommand starts a new request for the captured criteria
type SearchCommand struct {
	exec     *Executor
	criteria domain.SearchCriteria
}

// NewSearchCommand creates a new search command
func NewSearchCommand(exec *Executor, criteria domain.SearchCriteria) *SearchCommand {
	return &SearchCommand{
		exec:     exec,
		criteria: criteria,
	}
}

// Execute moves the executor in flight and returns the request as a tea.Cmd
func (c *SearchCommand) Execute() tea.Cmd {
	e := c.exec
	cc := e.ctx

	if !e.transition(state.InFlight()) {
		return nil
	}

	e.nextID++
	id := e.nextID
	endpoint := cc.Endpoint()
	reqCtx, cancel := context.WithCancel(context.Background())

	e.pending = &pending{id: id, cancel: cancel, started: cc.Now()}

	cc.publish(eventbus.SearchStartedEvent{
		RequestID: id,
		Endpoint:  endpoint,
		Criteria:  c.criteria,
	})

	searcher := cc.Searcher
	criteria := c.criteria
	return func() tea.Msg {
		records, err := searcher.Search(reqCtx, endpoint, criteria)
		return SearchResultMsg{ID: id, Records: records, Err: err}
	}
}

// CancelCommand aborts the outstanding request without waiting for it
type CancelCommand struct {
	exec *Executor
}

// NewCancelCommand creates a new cancel command
func NewCancelCommand(exec *Executor) *CancelCommand {
	return &CancelCommand{exec: exec}
}

// Execute releases the outstanding handle and marks the search cancelled
func (c *CancelCommand) Execute() tea.Cmd {
	e := c.exec
	p := e.release()
	if p == nil {
		return nil
	}
	if !e.transition(state.Cancelled()) {
		return nil
	}
	e.ctx.publish(eventbus.SearchCancelledEvent{RequestID: p.id})
	return nil
}
