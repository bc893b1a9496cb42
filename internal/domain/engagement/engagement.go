package engagement

import (
	"time"

	"github.com/google/uuid"
	"github.com/practiq/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Frequency is the billing cadence of an engagement
type Frequency string

const (
	FrequencyMonthly   Frequency = "monthly"
	FrequencyQuarterly Frequency = "quarterly"
	FrequencyAnnual    Frequency = "annual"
	FrequencyOneOff    Frequency = "one_off"
)

// Status represents the lifecycle status of an engagement
type Status string

const (
	StatusActive Status = "active"
	StatusPaused Status = "paused"
	StatusEnded  Status = "ended"
)

// Engagement binds a client to a service offering with an agreed fee
// and billing frequency. The client is referenced by its allocated
// reference string.
type Engagement struct {
	shared.BaseAggregateRoot
	ClientRef  string          `gorm:"type:varchar(20);not null;index"`
	ServiceID  uuid.UUID       `gorm:"type:uuid;not null;index"`
	Fee        decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	Frequency  Frequency       `gorm:"type:varchar(20);not null"`
	Status     Status          `gorm:"type:varchar(20);not null;default:'active'"`
	StartDate  time.Time       `gorm:"not null"`
	NextDueAt  *time.Time      `gorm:"index"`
	EndedAt    *time.Time
	Notes      string `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (Engagement) TableName() string {
	return "engagements"
}

// NewEngagement creates a new engagement for a client
func NewEngagement(clientRef string, serviceID uuid.UUID, fee decimal.Decimal, frequency Frequency, startDate time.Time) (*Engagement, error) {
	if clientRef == "" {
		return nil, shared.NewDomainError("INVALID_CLIENT_REF", "Client reference cannot be empty")
	}
	if serviceID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_SERVICE", "Service is required")
	}
	if fee.IsNegative() {
		return nil, shared.NewDomainError("INVALID_FEE", "Fee cannot be negative")
	}
	if err := validateFrequency(frequency); err != nil {
		return nil, err
	}
	if startDate.IsZero() {
		startDate = time.Now()
	}

	e := &Engagement{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		ClientRef:         clientRef,
		ServiceID:         serviceID,
		Fee:               fee,
		Frequency:         frequency,
		Status:            StatusActive,
		StartDate:         startDate,
	}
	e.scheduleNextDue(startDate)

	e.AddDomainEvent(NewEngagementCreatedEvent(e))

	return e, nil
}

// SetFee changes the agreed fee
func (e *Engagement) SetFee(fee decimal.Decimal) error {
	if fee.IsNegative() {
		return shared.NewDomainError("INVALID_FEE", "Fee cannot be negative")
	}

	e.Fee = fee
	e.UpdatedAt = time.Now()
	e.IncrementVersion()

	return nil
}

// Pause suspends billing without ending the engagement
func (e *Engagement) Pause() error {
	if e.Status != StatusActive {
		return shared.NewDomainError("INVALID_STATE", "Only an active engagement can be paused")
	}

	e.Status = StatusPaused
	e.UpdatedAt = time.Now()
	e.IncrementVersion()

	return nil
}

// Resume reactivates a paused engagement
func (e *Engagement) Resume() error {
	if e.Status != StatusPaused {
		return shared.NewDomainError("INVALID_STATE", "Only a paused engagement can be resumed")
	}

	e.Status = StatusActive
	e.UpdatedAt = time.Now()
	e.IncrementVersion()

	return nil
}

// End terminates the engagement. An ended engagement cannot be resumed.
func (e *Engagement) End() error {
	if e.Status == StatusEnded {
		return shared.NewDomainError("ALREADY_ENDED", "Engagement has already ended")
	}

	now := time.Now()
	e.Status = StatusEnded
	e.EndedAt = &now
	e.NextDueAt = nil
	e.UpdatedAt = now
	e.IncrementVersion()

	e.AddDomainEvent(NewEngagementEndedEvent(e))

	return nil
}

// AdvanceDue moves the next-due date forward one billing period. One-off
// engagements have no recurring due date after the first.
func (e *Engagement) AdvanceDue() error {
	if e.Status != StatusActive {
		return shared.NewDomainError("INVALID_STATE", "Cannot advance an inactive engagement")
	}
	if e.NextDueAt == nil {
		return shared.NewDomainError("INVALID_STATE", "Engagement has no due date to advance")
	}

	from := *e.NextDueAt
	if e.Frequency == FrequencyOneOff {
		e.NextDueAt = nil
	} else {
		e.scheduleNextDue(from)
	}
	e.UpdatedAt = time.Now()
	e.IncrementVersion()

	return nil
}

// IsActive returns true if the engagement is active
func (e *Engagement) IsActive() bool {
	return e.Status == StatusActive
}

func (e *Engagement) scheduleNextDue(from time.Time) {
	var next time.Time
	switch e.Frequency {
	case FrequencyMonthly:
		next = from.AddDate(0, 1, 0)
	case FrequencyQuarterly:
		next = from.AddDate(0, 3, 0)
	case FrequencyAnnual:
		next = from.AddDate(1, 0, 0)
	case FrequencyOneOff:
		next = from
	}
	e.NextDueAt = &next
}

func validateFrequency(f Frequency) error {
	switch f {
	case FrequencyMonthly, FrequencyQuarterly, FrequencyAnnual, FrequencyOneOff:
		return nil
	default:
		return shared.NewDomainError("INVALID_FREQUENCY", "Invalid billing frequency")
	}
}
