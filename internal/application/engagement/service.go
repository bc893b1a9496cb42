package engagement

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/practiq/backend/internal/domain/client"
	"github.com/practiq/backend/internal/domain/engagement"
	"github.com/practiq/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Service handles engagement and service-catalogue operations
type Service struct {
	engagementRepo engagement.Repository
	serviceRepo    engagement.ServiceRepository
	clientRepo     client.Repository
}

// NewService creates a new engagement Service
func NewService(engagementRepo engagement.Repository, serviceRepo engagement.ServiceRepository, clientRepo client.Repository) *Service {
	return &Service{
		engagementRepo: engagementRepo,
		serviceRepo:    serviceRepo,
		clientRepo:     clientRepo,
	}
}

// CreateService adds a service offering to the catalogue
func (s *Service) CreateService(ctx context.Context, req CreateServiceRequest) (*ServiceResponse, error) {
	if _, err := s.serviceRepo.FindByCode(ctx, req.Code); err == nil {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Service with this code already exists")
	}

	fee := decimalOrZero(req.DefaultFee)
	offering, err := engagement.NewServiceOffering(req.Code, req.Name, fee)
	if err != nil {
		return nil, err
	}
	if req.Description != "" {
		if err := offering.Update(req.Name, req.Description); err != nil {
			return nil, err
		}
	}

	if err := s.serviceRepo.Save(ctx, offering); err != nil {
		return nil, err
	}

	response := ToServiceResponse(offering)
	return &response, nil
}

// ListServices returns the service catalogue
func (s *Service) ListServices(ctx context.Context, activeOnly bool) ([]ServiceResponse, error) {
	offerings, err := s.serviceRepo.FindAll(ctx, activeOnly)
	if err != nil {
		return nil, err
	}

	out := make([]ServiceResponse, len(offerings))
	for i := range offerings {
		out[i] = ToServiceResponse(&offerings[i])
	}
	return out, nil
}

// Engage creates an engagement binding a client to a service
func (s *Service) Engage(ctx context.Context, clientRef string, req CreateEngagementRequest) (*EngagementResponse, error) {
	c, err := s.clientRepo.FindByRef(ctx, clientRef)
	if err != nil {
		return nil, err
	}
	if !c.IsActive() {
		return nil, shared.NewDomainError("CLIENT_NOT_ACTIVE", "Cannot engage an inactive client")
	}

	offering, err := s.serviceRepo.FindByID(ctx, req.ServiceID)
	if err != nil {
		return nil, err
	}
	if !offering.Active {
		return nil, shared.NewDomainError("SERVICE_INACTIVE", "Service offering is not available")
	}

	fee := offering.DefaultFee
	if req.Fee != nil {
		fee = *req.Fee
	}
	start := time.Now()
	if req.StartDate != nil {
		start = *req.StartDate
	}

	e, err := engagement.NewEngagement(c.Ref, offering.ID, fee, engagement.Frequency(req.Frequency), start)
	if err != nil {
		return nil, err
	}
	if req.Notes != "" {
		e.Notes = req.Notes
	}

	if err := s.engagementRepo.Save(ctx, e); err != nil {
		return nil, err
	}

	response := ToEngagementResponse(e)
	return &response, nil
}

// ListForClient returns a client's engagements
func (s *Service) ListForClient(ctx context.Context, clientRef string) ([]EngagementResponse, error) {
	if _, err := s.clientRepo.FindByRef(ctx, clientRef); err != nil {
		return nil, err
	}

	engagements, err := s.engagementRepo.FindByClient(ctx, clientRef)
	if err != nil {
		return nil, err
	}
	return ToEngagementResponses(engagements), nil
}

// End terminates an engagement
func (s *Service) End(ctx context.Context, id uuid.UUID) (*EngagementResponse, error) {
	e, err := s.engagementRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := e.End(); err != nil {
		return nil, err
	}
	if err := s.engagementRepo.Save(ctx, e); err != nil {
		return nil, err
	}

	response := ToEngagementResponse(e)
	return &response, nil
}

func decimalOrZero(d *decimal.Decimal) decimal.Decimal {
	if d == nil {
		return decimal.Zero
	}
	return *d
}
