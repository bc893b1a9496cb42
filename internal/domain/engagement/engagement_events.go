package engagement

import (
	"github.com/practiq/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Aggregate type constant
const AggregateTypeEngagement = "Engagement"

// Event type constants
const (
	EventTypeEngagementCreated = "EngagementCreated"
	EventTypeEngagementEnded   = "EngagementEnded"
)

// EngagementCreatedEvent is published when an engagement is created
type EngagementCreatedEvent struct {
	shared.BaseDomainEvent
	ClientRef string          `json:"client_ref"`
	ServiceID string          `json:"service_id"`
	Fee       decimal.Decimal `json:"fee"`
	Frequency Frequency       `json:"frequency"`
}

// NewEngagementCreatedEvent creates a new EngagementCreatedEvent
func NewEngagementCreatedEvent(e *Engagement) *EngagementCreatedEvent {
	return &EngagementCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeEngagementCreated, AggregateTypeEngagement, e.ID.String()),
		ClientRef:       e.ClientRef,
		ServiceID:       e.ServiceID.String(),
		Fee:             e.Fee,
		Frequency:       e.Frequency,
	}
}

// EngagementEndedEvent is published when an engagement is ended
type EngagementEndedEvent struct {
	shared.BaseDomainEvent
	ClientRef string `json:"client_ref"`
}

// NewEngagementEndedEvent creates a new EngagementEndedEvent
func NewEngagementEndedEvent(e *Engagement) *EngagementEndedEvent {
	return &EngagementEndedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeEngagementEnded, AggregateTypeEngagement, e.ID.String()),
		ClientRef:       e.ClientRef,
	}
}
