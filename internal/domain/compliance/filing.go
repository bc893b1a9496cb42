package compliance

import (
	"time"

	"github.com/practiq/backend/internal/domain/shared"
)

// FilingType identifies the statutory obligation a filing covers
type FilingType string

const (
	FilingAnnualAccounts        FilingType = "annual_accounts"
	FilingConfirmationStatement FilingType = "confirmation_statement"
	FilingVATReturn             FilingType = "vat_return"
	FilingCorporationTax        FilingType = "corporation_tax"
	FilingSelfAssessment        FilingType = "self_assessment"
	FilingPayrollYearEnd        FilingType = "payroll_year_end"
)

// Status represents the workflow state of a filing. Overdue is not a
// stored status; it is derived from the due date at query time.
type Status string

const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "in_progress"
	StatusFiled      Status = "filed"
)

// Filing is a single statutory filing obligation for a client
type Filing struct {
	shared.BaseAggregateRoot
	ClientRef string     `gorm:"type:varchar(20);not null;index"`
	Type      FilingType `gorm:"type:varchar(30);not null"`
	PeriodEnd time.Time  `gorm:"not null"`
	DueDate   time.Time  `gorm:"not null;index"`
	Status    Status     `gorm:"type:varchar(20);not null;default:'pending'"`
	FiledAt   *time.Time
	Reference string `gorm:"type:varchar(50)"` // Submission reference from the authority
	Notes     string `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (Filing) TableName() string {
	return "filings"
}

// NewFiling creates a new pending filing
func NewFiling(clientRef string, filingType FilingType, periodEnd, dueDate time.Time) (*Filing, error) {
	if clientRef == "" {
		return nil, shared.NewDomainError("INVALID_CLIENT_REF", "Client reference cannot be empty")
	}
	if err := validateFilingType(filingType); err != nil {
		return nil, err
	}
	if periodEnd.IsZero() || dueDate.IsZero() {
		return nil, shared.NewDomainError("INVALID_DATES", "Period end and due date are required")
	}
	if dueDate.Before(periodEnd) {
		return nil, shared.NewDomainError("INVALID_DATES", "Due date cannot be before the period end")
	}

	f := &Filing{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		ClientRef:         clientRef,
		Type:              filingType,
		PeriodEnd:         periodEnd,
		DueDate:           dueDate,
		Status:            StatusPending,
	}

	f.AddDomainEvent(NewFilingCreatedEvent(f))

	return f, nil
}

// Start marks the filing as being worked on
func (f *Filing) Start() error {
	if f.Status != StatusPending {
		return shared.NewDomainError("INVALID_STATE", "Only a pending filing can be started")
	}

	f.Status = StatusInProgress
	f.UpdatedAt = time.Now()
	f.IncrementVersion()

	return nil
}

// File records the submission. The authority's reference is optional;
// some filings (e.g. self assessment on paper) have none.
func (f *Filing) File(reference string) error {
	if f.Status == StatusFiled {
		return shared.NewDomainError("ALREADY_FILED", "Filing has already been submitted")
	}
	if len(reference) > 50 {
		return shared.NewDomainError("INVALID_REFERENCE", "Submission reference cannot exceed 50 characters")
	}

	now := time.Now()
	f.Status = StatusFiled
	f.FiledAt = &now
	f.Reference = reference
	f.UpdatedAt = now
	f.IncrementVersion()

	f.AddDomainEvent(NewFilingFiledEvent(f))

	return nil
}

// Reopen moves a filed filing back to in_progress, e.g. after a
// rejection by the authority
func (f *Filing) Reopen() error {
	if f.Status != StatusFiled {
		return shared.NewDomainError("INVALID_STATE", "Only a filed filing can be reopened")
	}

	f.Status = StatusInProgress
	f.FiledAt = nil
	f.UpdatedAt = time.Now()
	f.IncrementVersion()

	return nil
}

// SetDueDate reschedules the filing, e.g. after an extension is granted
func (f *Filing) SetDueDate(dueDate time.Time) error {
	if f.Status == StatusFiled {
		return shared.NewDomainError("INVALID_STATE", "Cannot reschedule a filed filing")
	}
	if dueDate.Before(f.PeriodEnd) {
		return shared.NewDomainError("INVALID_DATES", "Due date cannot be before the period end")
	}

	f.DueDate = dueDate
	f.UpdatedAt = time.Now()
	f.IncrementVersion()

	return nil
}

// IsOverdue reports whether the filing is past due and not yet filed
func (f *Filing) IsOverdue(now time.Time) bool {
	return f.Status != StatusFiled && now.After(f.DueDate)
}

// IsFiled returns true if the filing has been submitted
func (f *Filing) IsFiled() bool {
	return f.Status == StatusFiled
}

func validateFilingType(t FilingType) error {
	switch t {
	case FilingAnnualAccounts, FilingConfirmationStatement, FilingVATReturn,
		FilingCorporationTax, FilingSelfAssessment, FilingPayrollYearEnd:
		return nil
	default:
		return shared.NewDomainError("INVALID_TYPE", "Invalid filing type")
	}
}
