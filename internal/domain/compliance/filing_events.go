package compliance

import (
	"time"

	"github.com/practiq/backend/internal/domain/shared"
)

// Aggregate type constant
const AggregateTypeFiling = "Filing"

// Event type constants
const (
	EventTypeFilingCreated = "FilingCreated"
	EventTypeFilingFiled   = "FilingFiled"
)

// FilingCreatedEvent is published when a filing is created
type FilingCreatedEvent struct {
	shared.BaseDomainEvent
	ClientRef  string     `json:"client_ref"`
	FilingType FilingType `json:"filing_type"`
	DueDate    time.Time  `json:"due_date"`
}

// NewFilingCreatedEvent creates a new FilingCreatedEvent
func NewFilingCreatedEvent(f *Filing) *FilingCreatedEvent {
	return &FilingCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeFilingCreated, AggregateTypeFiling, f.ID.String()),
		ClientRef:       f.ClientRef,
		FilingType:      f.Type,
		DueDate:         f.DueDate,
	}
}

// FilingFiledEvent is published when a filing is submitted
type FilingFiledEvent struct {
	shared.BaseDomainEvent
	ClientRef  string     `json:"client_ref"`
	FilingType FilingType `json:"filing_type"`
	Reference  string     `json:"reference"`
}

// NewFilingFiledEvent creates a new FilingFiledEvent
func NewFilingFiledEvent(f *Filing) *FilingFiledEvent {
	return &FilingFiledEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeFilingFiled, AggregateTypeFiling, f.ID.String()),
		ClientRef:       f.ClientRef,
		FilingType:      f.Type,
		Reference:       f.Reference,
	}
}
