package identity

import (
	"context"

	"github.com/google/uuid"
	"github.com/practiq/backend/internal/domain/identity"
	"github.com/practiq/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// UserService handles staff account administration. Handlers restrict
// these operations to partners.
type UserService struct {
	userRepo identity.Repository
	logger   *zap.Logger
}

// NewUserService creates a new user service
func NewUserService(userRepo identity.Repository, logger *zap.Logger) *UserService {
	return &UserService{userRepo: userRepo, logger: logger}
}

// Create creates a new staff account
func (s *UserService) Create(ctx context.Context, req CreateUserRequest) (*UserResponse, error) {
	exists, err := s.userRepo.ExistsByUsername(ctx, req.Username)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("USERNAME_TAKEN", "Username is already in use")
	}

	user, err := identity.NewUser(req.Username, req.Password, identity.Role(req.Role))
	if err != nil {
		return nil, err
	}
	if req.Email != "" {
		if err := user.SetEmail(req.Email); err != nil {
			return nil, err
		}
	}
	if req.DisplayName != "" {
		if err := user.SetDisplayName(req.DisplayName); err != nil {
			return nil, err
		}
	}

	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("User created",
		zap.String("username", user.Username),
		zap.String("role", string(user.Role)))

	resp := ToUserResponse(user)
	return &resp, nil
}

// Get returns a single staff account
func (s *UserService) Get(ctx context.Context, id uuid.UUID) (*UserResponse, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	resp := ToUserResponse(user)
	return &resp, nil
}

// List returns all staff accounts
func (s *UserService) List(ctx context.Context) ([]UserResponse, error) {
	users, err := s.userRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]UserResponse, len(users))
	for i := range users {
		out[i] = ToUserResponse(&users[i])
	}
	return out, nil
}

// Update applies partial changes to a staff account
func (s *UserService) Update(ctx context.Context, id uuid.UUID, req UpdateUserRequest) (*UserResponse, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Email != nil {
		if err := user.SetEmail(*req.Email); err != nil {
			return nil, err
		}
	}
	if req.DisplayName != nil {
		if err := user.SetDisplayName(*req.DisplayName); err != nil {
			return nil, err
		}
	}
	if req.Role != nil {
		if err := user.SetRole(identity.Role(*req.Role)); err != nil {
			return nil, err
		}
	}

	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, err
	}

	resp := ToUserResponse(user)
	return &resp, nil
}

// Unlock clears an account lockout before it expires
func (s *UserService) Unlock(ctx context.Context, id uuid.UUID) (*UserResponse, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	user.Unlock()
	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("User unlocked", zap.String("username", user.Username))

	resp := ToUserResponse(user)
	return &resp, nil
}

// Deactivate disables a staff account
func (s *UserService) Deactivate(ctx context.Context, id uuid.UUID) error {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if err := user.Deactivate(); err != nil {
		return err
	}
	if err := s.userRepo.Save(ctx, user); err != nil {
		return err
	}

	s.logger.Info("User deactivated", zap.String("username", user.Username))
	return nil
}
