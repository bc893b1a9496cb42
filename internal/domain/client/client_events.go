package client

import (
	"github.com/practiq/backend/internal/domain/shared"
)

// Aggregate type constant
const AggregateTypeClient = "Client"

// Event type constants
const (
	EventTypeClientCreated       = "ClientCreated"
	EventTypeClientUpdated       = "ClientUpdated"
	EventTypeClientStatusChanged = "ClientStatusChanged"
	EventTypeClientRefReassigned = "ClientRefReassigned"
)

// ClientCreatedEvent is published when a new client is created
type ClientCreatedEvent struct {
	shared.BaseDomainEvent
	Ref           string `json:"ref"`
	Name          string `json:"name"`
	ClientType    Type   `json:"client_type"`
	PortfolioCode int    `json:"portfolio_code"`
}

// NewClientCreatedEvent creates a new ClientCreatedEvent
func NewClientCreatedEvent(c *Client) *ClientCreatedEvent {
	return &ClientCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeClientCreated, AggregateTypeClient, c.Ref),
		Ref:             c.Ref,
		Name:            c.Name,
		ClientType:      c.Type,
		PortfolioCode:   c.PortfolioCode,
	}
}

// ClientUpdatedEvent is published when a client is updated
type ClientUpdatedEvent struct {
	shared.BaseDomainEvent
	Ref  string `json:"ref"`
	Name string `json:"name"`
}

// NewClientUpdatedEvent creates a new ClientUpdatedEvent
func NewClientUpdatedEvent(c *Client) *ClientUpdatedEvent {
	return &ClientUpdatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeClientUpdated, AggregateTypeClient, c.Ref),
		Ref:             c.Ref,
		Name:            c.Name,
	}
}

// ClientStatusChangedEvent is published when a client's status changes
type ClientStatusChangedEvent struct {
	shared.BaseDomainEvent
	Ref       string `json:"ref"`
	OldStatus Status `json:"old_status"`
	NewStatus Status `json:"new_status"`
}

// NewClientStatusChangedEvent creates a new ClientStatusChangedEvent
func NewClientStatusChangedEvent(c *Client, from, to Status) *ClientStatusChangedEvent {
	return &ClientStatusChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeClientStatusChanged, AggregateTypeClient, c.Ref),
		Ref:             c.Ref,
		OldStatus:       from,
		NewStatus:       to,
	}
}

// ClientRefReassignedEvent is published when a client's reference is
// administratively changed
type ClientRefReassignedEvent struct {
	shared.BaseDomainEvent
	OldRef string `json:"old_ref"`
	NewRef string `json:"new_ref"`
}

// NewClientRefReassignedEvent creates a new ClientRefReassignedEvent
func NewClientRefReassignedEvent(c *Client, oldRef, newRef string) *ClientRefReassignedEvent {
	return &ClientRefReassignedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeClientRefReassigned, AggregateTypeClient, newRef),
		OldRef:          oldRef,
		NewRef:          newRef,
	}
}
