package domain

import "time"

// EventType represents the type of domain event
type EventType string

// Event types
const (
	EventSearchStarted   EventType = "SearchStarted"
	EventSearchCompleted EventType = "SearchCompleted"
	EventSearchNotFound  EventType = "SearchNotFound"
	EventSearchCancelled EventType = "SearchCancelled"
	EventSearchFailed    EventType = "SearchFailed"
)

// DomainEvent is the interface for all domain events
type DomainEvent interface {
	Type() EventType
}

// SearchStartedEvent is emitted when a request leaves for the endpoint
type SearchStartedEvent struct {
	RequestID uint64
	Endpoint  string
	Criteria  SearchCriteria
}

func (e SearchStartedEvent) Type() EventType { return EventSearchStarted }

// SearchCompletedEvent is emitted when the endpoint returned at least one record
type SearchCompletedEvent struct {
	RequestID uint64
	Count     int
	Elapsed   time.Duration
}

func (e SearchCompletedEvent) Type() EventType { return EventSearchCompleted }

// SearchNotFoundEvent is emitted when the endpoint returned an empty list
type SearchNotFoundEvent struct {
	RequestID uint64
	Elapsed   time.Duration
}

func (e SearchNotFoundEvent) Type() EventType { return EventSearchNotFound }

// SearchCancelledEvent is emitted when the user aborts the outstanding request
type SearchCancelledEvent struct {
	RequestID uint64
}

func (e SearchCancelledEvent) Type() EventType { return EventSearchCancelled }

// SearchFailedEvent is emitted for any failure other than cancellation
type SearchFailedEvent struct {
	RequestID uint64
	Err       error
}

func (e SearchFailedEvent) Type() EventType { return EventSearchFailed }
