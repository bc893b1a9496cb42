package compliance

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/practiq/backend/internal/domain/client"
	"github.com/practiq/backend/internal/domain/compliance"
	"github.com/practiq/backend/internal/domain/shared"
)

// Service handles compliance filing operations
type Service struct {
	filingRepo compliance.Repository
	clientRepo client.Repository
}

// NewService creates a new compliance Service
func NewService(filingRepo compliance.Repository, clientRepo client.Repository) *Service {
	return &Service{
		filingRepo: filingRepo,
		clientRepo: clientRepo,
	}
}

// Create records a new filing obligation for a client
func (s *Service) Create(ctx context.Context, clientRef string, req CreateFilingRequest) (*FilingResponse, error) {
	c, err := s.clientRepo.FindByRef(ctx, clientRef)
	if err != nil {
		return nil, err
	}

	f, err := compliance.NewFiling(c.Ref, compliance.FilingType(req.Type), req.PeriodEnd, req.DueDate)
	if err != nil {
		return nil, err
	}
	if req.Notes != "" {
		f.Notes = req.Notes
	}

	if err := s.filingRepo.Save(ctx, f); err != nil {
		return nil, err
	}

	response := ToFilingResponse(f, time.Now())
	return &response, nil
}

// UpdateStatus moves a filing through its workflow
func (s *Service) UpdateStatus(ctx context.Context, id uuid.UUID, req UpdateStatusRequest) (*FilingResponse, error) {
	f, err := s.filingRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	switch compliance.Status(req.Status) {
	case compliance.StatusInProgress:
		if f.Status == compliance.StatusFiled {
			err = f.Reopen()
		} else {
			err = f.Start()
		}
	case compliance.StatusFiled:
		err = f.File(req.Reference)
	case compliance.StatusPending:
		err = shared.NewDomainError("INVALID_STATE", "A filing cannot return to pending")
	default:
		err = shared.NewDomainError("INVALID_STATUS", "Invalid filing status")
	}
	if err != nil {
		return nil, err
	}

	if err := s.filingRepo.Save(ctx, f); err != nil {
		return nil, err
	}

	response := ToFilingResponse(f, time.Now())
	return &response, nil
}

// List returns filings matching the filter. due_within returns unfiled
// filings due in the next N days; status=overdue derives from the clock.
func (s *Service) List(ctx context.Context, filter FilingListFilter) (*shared.Paginated[FilingResponse], error) {
	now := time.Now()

	if filter.DueWithin > 0 {
		filings, err := s.filingRepo.FindDueBetween(ctx, now, now.AddDate(0, 0, filter.DueWithin))
		if err != nil {
			return nil, err
		}
		items := ToFilingResponses(filings, now)
		page := shared.NewPaginated(items, int64(len(items)), 1, max(len(items), 1))
		return &page, nil
	}

	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}

	domainFilter := shared.Filter{
		Page:     filter.Page,
		PageSize: filter.PageSize,
		OrderBy:  "due_date",
		OrderDir: "asc",
		Filters:  make(map[string]any),
	}
	if filter.ClientRef != "" {
		domainFilter.Filters["client_ref"] = filter.ClientRef
	}
	switch filter.Status {
	case "":
	case "overdue":
		domainFilter.Filters["overdue"] = now
	default:
		domainFilter.Filters["status"] = filter.Status
	}

	result, err := s.filingRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, err
	}

	page := shared.NewPaginated(ToFilingResponses(result.Items, now), result.Total, result.Page, result.PageSize)
	return &page, nil
}

// ListForClient returns all filings for one client
func (s *Service) ListForClient(ctx context.Context, clientRef string) ([]FilingResponse, error) {
	if _, err := s.clientRepo.FindByRef(ctx, clientRef); err != nil {
		return nil, err
	}

	filings, err := s.filingRepo.FindByClient(ctx, clientRef)
	if err != nil {
		return nil, err
	}
	return ToFilingResponses(filings, time.Now()), nil
}
