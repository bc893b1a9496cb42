package dashboard

import (
	"context"
	"time"

	"github.com/practiq/backend/internal/domain/client"
	"github.com/practiq/backend/internal/domain/compliance"
)

// DueSoonWindow is how far ahead the dashboard looks for upcoming filings
const DueSoonWindow = 30 * 24 * time.Hour

// PortfolioSummary is the per-portfolio client count
type PortfolioSummary struct {
	Code        int    `json:"code"`
	Name        string `json:"name"`
	ClientCount int64  `json:"client_count"`
}

// UpcomingFiling is a filing due within the dashboard window
type UpcomingFiling struct {
	ID        string    `json:"id"`
	ClientRef string    `json:"client_ref"`
	Type      string    `json:"type"`
	DueDate   time.Time `json:"due_date"`
	Status    string    `json:"status"`
}

// Summary is the practice overview returned by the dashboard endpoint
type Summary struct {
	ActiveClients   int64              `json:"active_clients"`
	DormantClients  int64              `json:"dormant_clients"`
	CeasedClients   int64              `json:"ceased_clients"`
	Portfolios      []PortfolioSummary `json:"portfolios"`
	OverdueFilings  int64              `json:"overdue_filings"`
	FilingsByStatus map[string]int64   `json:"filings_by_status"`
	UpcomingFilings []UpcomingFiling   `json:"upcoming_filings"`
	GeneratedAt     time.Time          `json:"generated_at"`
}

// Service aggregates counts for the practice dashboard
type Service struct {
	clientRepo    client.Repository
	portfolioRepo client.PortfolioRepository
	filingRepo    compliance.Repository
}

// NewService creates a new dashboard Service
func NewService(clientRepo client.Repository, portfolioRepo client.PortfolioRepository, filingRepo compliance.Repository) *Service {
	return &Service{
		clientRepo:    clientRepo,
		portfolioRepo: portfolioRepo,
		filingRepo:    filingRepo,
	}
}

// Summary builds the practice overview
func (s *Service) Summary(ctx context.Context) (*Summary, error) {
	now := time.Now()
	out := &Summary{GeneratedAt: now}

	var err error
	if out.ActiveClients, err = s.clientRepo.CountByStatus(ctx, client.StatusActive); err != nil {
		return nil, err
	}
	if out.DormantClients, err = s.clientRepo.CountByStatus(ctx, client.StatusDormant); err != nil {
		return nil, err
	}
	if out.CeasedClients, err = s.clientRepo.CountByStatus(ctx, client.StatusCeased); err != nil {
		return nil, err
	}

	portfolios, err := s.portfolioRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	out.Portfolios = make([]PortfolioSummary, len(portfolios))
	for i := range portfolios {
		count, err := s.clientRepo.CountByPortfolio(ctx, portfolios[i].Code)
		if err != nil {
			return nil, err
		}
		out.Portfolios[i] = PortfolioSummary{
			Code:        portfolios[i].Code,
			Name:        portfolios[i].Name,
			ClientCount: count,
		}
	}

	if out.OverdueFilings, err = s.filingRepo.CountOverdue(ctx, now); err != nil {
		return nil, err
	}

	byStatus, err := s.filingRepo.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}
	out.FilingsByStatus = make(map[string]int64, len(byStatus))
	for status, count := range byStatus {
		out.FilingsByStatus[string(status)] = count
	}

	upcoming, err := s.filingRepo.FindDueBetween(ctx, now, now.Add(DueSoonWindow))
	if err != nil {
		return nil, err
	}
	out.UpcomingFilings = make([]UpcomingFiling, len(upcoming))
	for i := range upcoming {
		out.UpcomingFilings[i] = UpcomingFiling{
			ID:        upcoming[i].ID.String(),
			ClientRef: upcoming[i].ClientRef,
			Type:      string(upcoming[i].Type),
			DueDate:   upcoming[i].DueDate,
			Status:    string(upcoming[i].Status),
		}
	}

	return out, nil
}
