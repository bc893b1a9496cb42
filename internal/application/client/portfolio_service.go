package client

import (
	"context"

	"github.com/practiq/backend/internal/domain/client"
	"github.com/practiq/backend/internal/domain/shared"
)

// PortfolioService handles portfolio-related business operations
type PortfolioService struct {
	portfolioRepo client.PortfolioRepository
	clientRepo    client.Repository
}

// NewPortfolioService creates a new PortfolioService
func NewPortfolioService(portfolioRepo client.PortfolioRepository, clientRepo client.Repository) *PortfolioService {
	return &PortfolioService{
		portfolioRepo: portfolioRepo,
		clientRepo:    clientRepo,
	}
}

// Create creates a new portfolio
func (s *PortfolioService) Create(ctx context.Context, req CreatePortfolioRequest) (*PortfolioResponse, error) {
	exists, err := s.portfolioRepo.ExistsByCode(ctx, req.Code)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Portfolio with this code already exists")
	}

	p, err := client.NewPortfolio(req.Code, req.Name)
	if err != nil {
		return nil, err
	}
	if req.Description != "" {
		p.SetDescription(req.Description)
	}

	if err := s.portfolioRepo.Save(ctx, p); err != nil {
		return nil, err
	}

	response := ToPortfolioResponse(p, 0)
	return &response, nil
}

// GetByCode retrieves a portfolio by its numeric code
func (s *PortfolioService) GetByCode(ctx context.Context, code int) (*PortfolioResponse, error) {
	p, err := s.portfolioRepo.FindByCode(ctx, code)
	if err != nil {
		return nil, err
	}

	count, err := s.clientRepo.CountByPortfolio(ctx, p.Code)
	if err != nil {
		return nil, err
	}

	response := ToPortfolioResponse(p, count)
	return &response, nil
}

// List retrieves all portfolios with their client counts
func (s *PortfolioService) List(ctx context.Context) ([]PortfolioResponse, error) {
	portfolios, err := s.portfolioRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]PortfolioResponse, len(portfolios))
	for i := range portfolios {
		count, err := s.clientRepo.CountByPortfolio(ctx, portfolios[i].Code)
		if err != nil {
			return nil, err
		}
		out[i] = ToPortfolioResponse(&portfolios[i], count)
	}
	return out, nil
}

// Rename renames a portfolio
func (s *PortfolioService) Rename(ctx context.Context, code int, name string) (*PortfolioResponse, error) {
	p, err := s.portfolioRepo.FindByCode(ctx, code)
	if err != nil {
		return nil, err
	}

	if err := p.Rename(name); err != nil {
		return nil, err
	}
	if err := s.portfolioRepo.Save(ctx, p); err != nil {
		return nil, err
	}

	count, err := s.clientRepo.CountByPortfolio(ctx, p.Code)
	if err != nil {
		return nil, err
	}

	response := ToPortfolioResponse(p, count)
	return &response, nil
}
