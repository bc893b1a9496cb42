package client

import (
	"context"
	"errors"
	"strings"

	"github.com/practiq/backend/internal/domain/client"
	"github.com/practiq/backend/internal/domain/shared"
)

// maxCreateAttempts bounds the retry loop around allocate-and-insert.
// A retry only happens when another transaction commits the same
// reference between our probe and our insert, so contention has to be
// pathological for this to run out.
const maxCreateAttempts = 3

// Service handles client-related business operations
type Service struct {
	clientRepo    client.Repository
	portfolioRepo client.PortfolioRepository
	txScope       TransactionScope
}

// NewService creates a new client Service
func NewService(clientRepo client.Repository, portfolioRepo client.PortfolioRepository, txScope TransactionScope) *Service {
	return &Service{
		clientRepo:    clientRepo,
		portfolioRepo: portfolioRepo,
		txScope:       txScope,
	}
}

// Create creates a new client. When no reference is supplied one is
// allocated from the portfolio's buckets; allocation and insert run in
// the same transaction so an aborted insert never leaks a reference.
func (s *Service) Create(ctx context.Context, req CreateClientRequest) (*ClientResponse, error) {
	if req.PortfolioCode > 0 {
		exists, err := s.portfolioRepo.ExistsByCode(ctx, req.PortfolioCode)
		if err != nil {
			return nil, err
		}
		if !exists {
			return nil, shared.NewDomainError("PORTFOLIO_NOT_FOUND", "Portfolio does not exist")
		}
	}

	if req.Ref != "" {
		return s.createWithRef(ctx, strings.ToUpper(strings.TrimSpace(req.Ref)), req)
	}
	return s.createWithAllocatedRef(ctx, req)
}

// createWithRef inserts a client under a manually chosen reference.
func (s *Service) createWithRef(ctx context.Context, ref string, req CreateClientRequest) (*ClientResponse, error) {
	exists, err := s.clientRepo.ExistsByRef(ctx, ref)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Client with this reference already exists")
	}

	c, err := newClientFromRequest(ref, req)
	if err != nil {
		return nil, err
	}

	if err := s.clientRepo.Create(ctx, c); err != nil {
		if errors.Is(err, shared.ErrAlreadyExists) {
			return nil, shared.NewDomainError("ALREADY_EXISTS", "Client with this reference already exists")
		}
		return nil, err
	}

	response := ToClientResponse(c)
	return &response, nil
}

// createWithAllocatedRef allocates a reference and inserts the client
// atomically. A primary-key conflict at insert means a concurrent
// transaction won the same reference after our probe; the whole
// allocate-and-insert is retried from scratch.
func (s *Service) createWithAllocatedRef(ctx context.Context, req CreateClientRequest) (*ClientResponse, error) {
	var created *client.Client

	for attempt := 0; attempt < maxCreateAttempts; attempt++ {
		err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
			allocator := client.NewRefAllocator(repos.BucketRepo(), repos.ClientRepo())
			ref, err := allocator.Allocate(ctx, req.PortfolioCode)
			if err != nil {
				return err
			}

			c, err := newClientFromRequest(ref, req)
			if err != nil {
				return err
			}

			if err := repos.ClientRepo().Create(ctx, c); err != nil {
				return err
			}
			created = c
			return nil
		})
		if err == nil {
			response := ToClientResponse(created)
			return &response, nil
		}
		if !errors.Is(err, shared.ErrAlreadyExists) {
			return nil, err
		}
	}

	return nil, shared.NewDomainError("ALLOCATION_CONFLICT", "Could not allocate a client reference under contention")
}

// newClientFromRequest builds the aggregate and applies optional fields
func newClientFromRequest(ref string, req CreateClientRequest) (*client.Client, error) {
	c, err := client.NewClient(ref, req.Name, client.Type(req.Type), req.PortfolioCode)
	if err != nil {
		return nil, err
	}

	if req.ContactName != "" || req.Phone != "" || req.Email != "" {
		if err := c.SetContact(req.ContactName, req.Phone, req.Email); err != nil {
			return nil, err
		}
	}
	if req.AddressLine1 != "" || req.AddressLine2 != "" || req.City != "" || req.Postcode != "" {
		if err := c.SetAddress(req.AddressLine1, req.AddressLine2, req.City, req.Postcode); err != nil {
			return nil, err
		}
	}
	if req.CompanyNumber != "" || req.VATNumber != "" || req.UTR != "" {
		if err := c.SetTaxIdentifiers(req.CompanyNumber, req.VATNumber, req.UTR); err != nil {
			return nil, err
		}
	}
	if req.Notes != "" {
		c.SetNotes(req.Notes)
	}

	return c, nil
}

// GetByRef retrieves a client by reference
func (s *Service) GetByRef(ctx context.Context, ref string) (*ClientResponse, error) {
	c, err := s.clientRepo.FindByRef(ctx, strings.ToUpper(ref))
	if err != nil {
		return nil, err
	}

	response := ToClientResponse(c)
	return &response, nil
}

// List retrieves clients with filtering and pagination
func (s *Service) List(ctx context.Context, filter ClientListFilter) (*shared.Paginated[ClientResponse], error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}
	if filter.OrderBy == "" {
		filter.OrderBy = "ref"
	}
	if filter.OrderDir == "" {
		filter.OrderDir = "asc"
	}

	domainFilter := shared.Filter{
		Page:     filter.Page,
		PageSize: filter.PageSize,
		OrderBy:  filter.OrderBy,
		OrderDir: filter.OrderDir,
		Search:   filter.Search,
		Filters:  make(map[string]any),
	}
	if filter.Status != "" {
		domainFilter.Filters["status"] = filter.Status
	}
	if filter.Type != "" {
		domainFilter.Filters["type"] = filter.Type
	}
	if filter.PortfolioCode > 0 {
		domainFilter.Filters["portfolio_code"] = filter.PortfolioCode
	}

	clients, err := s.clientRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, err
	}
	total, err := s.clientRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, err
	}

	page := shared.NewPaginated(ToClientResponses(clients), total, filter.Page, filter.PageSize)
	return &page, nil
}

// Update updates a client
func (s *Service) Update(ctx context.Context, ref string, req UpdateClientRequest) (*ClientResponse, error) {
	c, err := s.clientRepo.FindByRef(ctx, strings.ToUpper(ref))
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if err := c.Update(*req.Name); err != nil {
			return nil, err
		}
	}

	if req.ContactName != nil || req.Phone != nil || req.Email != nil {
		contactName, phone, email := c.ContactName, c.Phone, c.Email
		if req.ContactName != nil {
			contactName = *req.ContactName
		}
		if req.Phone != nil {
			phone = *req.Phone
		}
		if req.Email != nil {
			email = *req.Email
		}
		if err := c.SetContact(contactName, phone, email); err != nil {
			return nil, err
		}
	}

	if req.AddressLine1 != nil || req.AddressLine2 != nil || req.City != nil || req.Postcode != nil {
		line1, line2, city, postcode := c.AddressLine1, c.AddressLine2, c.City, c.Postcode
		if req.AddressLine1 != nil {
			line1 = *req.AddressLine1
		}
		if req.AddressLine2 != nil {
			line2 = *req.AddressLine2
		}
		if req.City != nil {
			city = *req.City
		}
		if req.Postcode != nil {
			postcode = *req.Postcode
		}
		if err := c.SetAddress(line1, line2, city, postcode); err != nil {
			return nil, err
		}
	}

	if req.CompanyNumber != nil || req.VATNumber != nil || req.UTR != nil {
		companyNumber, vatNumber, utr := c.CompanyNumber, c.VATNumber, c.UTR
		if req.CompanyNumber != nil {
			companyNumber = *req.CompanyNumber
		}
		if req.VATNumber != nil {
			vatNumber = *req.VATNumber
		}
		if req.UTR != nil {
			utr = *req.UTR
		}
		if err := c.SetTaxIdentifiers(companyNumber, vatNumber, utr); err != nil {
			return nil, err
		}
	}

	if req.Notes != nil {
		c.SetNotes(*req.Notes)
	}

	if req.Status != nil {
		if err := s.applyStatus(c, client.Status(*req.Status)); err != nil {
			return nil, err
		}
	}

	if err := s.clientRepo.Save(ctx, c); err != nil {
		return nil, err
	}

	response := ToClientResponse(c)
	return &response, nil
}

func (s *Service) applyStatus(c *client.Client, status client.Status) error {
	if c.Status == status {
		return nil
	}
	switch status {
	case client.StatusActive:
		return c.Activate()
	case client.StatusDormant:
		return c.MarkDormant()
	case client.StatusCeased:
		return c.Cease()
	default:
		return shared.NewDomainError("INVALID_STATUS", "Invalid client status")
	}
}

// ReassignRef administratively changes a client's reference
func (s *Service) ReassignRef(ctx context.Context, ref string, req ReassignRefRequest) (*ClientResponse, error) {
	newRef := strings.ToUpper(strings.TrimSpace(req.NewRef))

	c, err := s.clientRepo.FindByRef(ctx, strings.ToUpper(ref))
	if err != nil {
		return nil, err
	}

	exists, err := s.clientRepo.ExistsByRef(ctx, newRef)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Client with this reference already exists")
	}

	oldRef := c.Ref
	if err := c.ReassignRef(newRef); err != nil {
		return nil, err
	}

	// The reference is the primary key; a reassignment is an insert
	// under the new key plus a delete of the old row.
	if err := s.clientRepo.Create(ctx, c); err != nil {
		if errors.Is(err, shared.ErrAlreadyExists) {
			return nil, shared.NewDomainError("ALREADY_EXISTS", "Client with this reference already exists")
		}
		return nil, err
	}
	if err := s.clientRepo.Delete(ctx, oldRef); err != nil {
		return nil, err
	}

	response := ToClientResponse(c)
	return &response, nil
}

// Delete deletes a client by reference
func (s *Service) Delete(ctx context.Context, ref string) error {
	if _, err := s.clientRepo.FindByRef(ctx, strings.ToUpper(ref)); err != nil {
		return err
	}
	return s.clientRepo.Delete(ctx, strings.ToUpper(ref))
}
