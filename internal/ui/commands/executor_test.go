package commands

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"usersearch/internal/domain"
	"usersearch/internal/eventbus"
	"usersearch/internal/search"
	"usersearch/internal/ui/state"
)

// fakeSearcher records calls and blocks until released or cancelled
type fakeSearcher struct {
	mu       sync.Mutex
	calls    []domain.SearchCriteria
	urls     []string
	records  []domain.UserRecord
	err      error
	block    bool
	release  chan struct{}
	canceled chan struct{}
}

func newFakeSearcher() *fakeSearcher {
	return &fakeSearcher{release: make(chan struct{}), canceled: make(chan struct{}, 8)}
}

func (f *fakeSearcher) Search(ctx context.Context, endpoint string, criteria domain.SearchCriteria) ([]domain.UserRecord, error) {
	f.mu.Lock()
	f.calls = append(f.calls, criteria)
	f.urls = append(f.urls, endpoint)
	block := f.block
	f.mu.Unlock()

	if block {
		select {
		case <-f.release:
		case <-ctx.Done():
			f.canceled <- struct{}{}
			return nil, fmt.Errorf("%w: %w", search.ErrCanceled, ctx.Err())
		}
	}
	return f.records, f.err
}

func (f *fakeSearcher) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func newTestExecutor(f *fakeSearcher) *Executor {
	return NewExecutor(f, func() string { return "http://search.test/users" }, nil)
}

func TestSubmitWhileIdleIssuesOneRequest(t *testing.T) {
	f := newFakeSearcher()
	f.records = []domain.UserRecord{}
	e := newTestExecutor(f)

	criteria := domain.SearchCriteria{Email: "a@b.com", Number: "55-51-23-4"}
	cmd := e.Submit(criteria)
	require.NotNil(t, cmd)
	require.True(t, e.InFlight())
	require.Equal(t, state.PhaseInFlight, e.State().Phase())

	msg := cmd().(SearchResultMsg)
	require.Equal(t, 1, f.callCount())
	require.Equal(t, criteria, f.calls[0])
	require.Equal(t, "http://search.test/users", f.urls[0])
	require.True(t, e.Resolve(msg))
}

func TestEmptyResultIsNotFound(t *testing.T) {
	f := newFakeSearcher()
	f.records = []domain.UserRecord{}
	e := newTestExecutor(f)

	cmd := e.Submit(domain.SearchCriteria{Email: "a@b.com"})
	require.True(t, e.Resolve(cmd().(SearchResultMsg)))

	require.Equal(t, state.PhaseNotFound, e.State().Phase())
	require.Empty(t, e.State().Results())
	require.False(t, e.InFlight())
}

func TestNonEmptyResultIsCompleted(t *testing.T) {
	f := newFakeSearcher()
	f.records = []domain.UserRecord{
		{Email: "a@b.com", Number: "55-51-23"},
		{Email: "c@d.com", Number: "11-22"},
	}
	e := newTestExecutor(f)

	cmd := e.Submit(domain.SearchCriteria{Email: "a@b.com"})
	require.True(t, e.Resolve(cmd().(SearchResultMsg)))

	require.Equal(t, state.PhaseCompleted, e.State().Phase())
	require.Equal(t, f.records, e.State().Results())
	require.False(t, e.InFlight())
}

func TestSubmitWhileInFlightCancelsAndIssuesNothing(t *testing.T) {
	f := newFakeSearcher()
	f.block = true
	e := newTestExecutor(f)

	cmd := e.Submit(domain.SearchCriteria{Email: "a@b.com"})
	done := make(chan SearchResultMsg, 1)
	go func() { done <- cmd().(SearchResultMsg) }()

	require.Eventually(t, func() bool { return f.callCount() == 1 }, time.Second, 5*time.Millisecond)

	second := e.Submit(domain.SearchCriteria{Email: "other@b.com"})
	require.Nil(t, second)
	require.False(t, e.InFlight())
	require.Equal(t, state.PhaseCancelled, e.State().Phase())

	select {
	case <-f.canceled:
	case <-time.After(time.Second):
		t.Fatal("request context was not cancelled")
	}

	msg := <-done
	require.True(t, search.IsCancel(msg.Err))
	require.False(t, e.Resolve(msg), "result of a cancelled request must be ignored")
	require.Equal(t, state.PhaseCancelled, e.State().Phase())
	require.Nil(t, e.State().Results())
	require.Equal(t, 1, f.callCount())
}

func TestLateSuccessAfterCancelIsIgnored(t *testing.T) {
	f := newFakeSearcher()
	f.records = []domain.UserRecord{{Email: "a@b.com", Number: "12"}}
	e := newTestExecutor(f)

	cmd := e.Submit(domain.SearchCriteria{Email: "a@b.com"})
	require.True(t, e.Cancel())

	require.False(t, e.Resolve(cmd().(SearchResultMsg)))
	require.Equal(t, state.PhaseCancelled, e.State().Phase())
	require.Nil(t, e.State().Results())
}

func TestCancelledErrorFromTransportIsCancelled(t *testing.T) {
	f := newFakeSearcher()
	f.err = fmt.Errorf("%w: %w", search.ErrCanceled, context.Canceled)
	e := newTestExecutor(f)

	cmd := e.Submit(domain.SearchCriteria{Email: "a@b.com"})
	require.True(t, e.Resolve(cmd().(SearchResultMsg)))
	require.Equal(t, state.PhaseCancelled, e.State().Phase())
}

func TestOtherErrorIsFailed(t *testing.T) {
	f := newFakeSearcher()
	f.err = &search.StatusError{Code: 502}
	e := newTestExecutor(f)

	cmd := e.Submit(domain.SearchCriteria{Email: "a@b.com"})
	require.True(t, e.Resolve(cmd().(SearchResultMsg)))

	require.Equal(t, state.PhaseFailed, e.State().Phase())
	var statusErr *search.StatusError
	require.True(t, errors.As(e.State().Err(), &statusErr))
	require.False(t, e.InFlight())
}

func TestSubmitAfterOutcomeStartsNewRequest(t *testing.T) {
	f := newFakeSearcher()
	f.records = []domain.UserRecord{}
	e := newTestExecutor(f)

	first := e.Submit(domain.SearchCriteria{Email: "a@b.com"})
	require.True(t, e.Resolve(first().(SearchResultMsg)))

	second := e.Submit(domain.SearchCriteria{Email: "a@b.com"})
	require.NotNil(t, second)
	require.Equal(t, state.PhaseInFlight, e.State().Phase())

	msg := second().(SearchResultMsg)
	require.Equal(t, uint64(2), msg.ID)
	require.True(t, e.Resolve(msg))
	require.Equal(t, 2, f.callCount())
}

func TestCancelWhileIdle(t *testing.T) {
	e := newTestExecutor(newFakeSearcher())
	require.False(t, e.Cancel())
	require.Equal(t, state.PhaseIdle, e.State().Phase())
}

func TestEndpointReadPerRequest(t *testing.T) {
	f := newFakeSearcher()
	url := "http://one.test"
	e := NewExecutor(f, func() string { return url }, nil)

	cmd := e.Submit(domain.SearchCriteria{Email: "a@b.com"})
	url = "http://two.test"
	require.True(t, e.Resolve(cmd().(SearchResultMsg)))

	cmd = e.Submit(domain.SearchCriteria{Email: "a@b.com"})
	require.True(t, e.Resolve(cmd().(SearchResultMsg)))

	require.Equal(t, []string{"http://one.test", "http://two.test"}, f.urls)
}

func TestLifecycleEventsArePublished(t *testing.T) {
	bus := eventbus.New()
	defer bus.Close()

	var mu sync.Mutex
	var seen []eventbus.EventType
	for _, et := range []eventbus.EventType{eventbus.EventSearchStarted, eventbus.EventSearchNotFound, eventbus.EventSearchCancelled} {
		bus.Subscribe(et, func(ev eventbus.DomainEvent) {
			mu.Lock()
			defer mu.Unlock()
			seen = append(seen, ev.Type())
		})
	}

	f := newFakeSearcher()
	f.records = []domain.UserRecord{}
	e := NewExecutor(f, func() string { return "http://search.test" }, bus)

	cmd := e.Submit(domain.SearchCriteria{Email: "a@b.com"})
	require.True(t, e.Resolve(cmd().(SearchResultMsg)))
	e.Submit(domain.SearchCriteria{Email: "a@b.com"})
	e.Cancel()

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(seen) == 4
	}, time.Second, 10*time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	require.Equal(t, []eventbus.EventType{
		eventbus.EventSearchStarted,
		eventbus.EventSearchNotFound,
		eventbus.EventSearchStarted,
		eventbus.EventSearchCancelled,
	}, seen)
}

func TestIllegalTransitionLeavesStateUnchanged(t *testing.T) {
	e := newTestExecutor(newFakeSearcher())

	require.False(t, e.transition(state.Completed([]domain.UserRecord{{Email: "a@b.com"}})))
	require.False(t, e.transition(state.Cancelled()))
	require.Equal(t, state.PhaseIdle, e.State().Phase())

	require.True(t, e.transition(state.InFlight()))
	require.False(t, e.transition(state.InFlight()))
	require.Equal(t, state.PhaseInFlight, e.State().Phase())
}

func TestSubmitRefusedWhenStateAlreadyInFlight(t *testing.T) {
	f := newFakeSearcher()
	e := newTestExecutor(f)
	e.state = state.InFlight()

	require.Nil(t, e.Submit(domain.SearchCriteria{Email: "a@b.com"}))
	require.False(t, e.InFlight())
	require.Zero(t, f.callCount())
	require.Equal(t, state.PhaseInFlight, e.State().Phase())
}

func TestShutdownPublishesCancel(t *testing.T) {
	bus := eventbus.New()
	defer bus.Close()

	got := make(chan eventbus.DomainEvent, 1)
	bus.Subscribe(eventbus.EventSearchCancelled, func(ev eventbus.DomainEvent) { got <- ev })

	e := NewExecutor(newFakeSearcher(), func() string { return "http://search.test" }, bus)
	e.Submit(domain.SearchCriteria{Email: "a@b.com"})
	e.Shutdown()

	require.False(t, e.InFlight())
	require.Equal(t, state.PhaseInFlight, e.State().Phase())
	select {
	case ev := <-got:
		require.Equal(t, uint64(1), ev.(eventbus.SearchCancelledEvent).RequestID)
	case <-time.After(time.Second):
		t.Fatal("cancel event not delivered")
	}

	e.Shutdown()
}
