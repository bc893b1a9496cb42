package identity

import (
	"regexp"
	"strings"
	"time"

	"github.com/practiq/backend/internal/domain/shared"
	"golang.org/x/crypto/bcrypt"
)

// Role is a coarse-grained permission level for practice staff
type Role string

const (
	RolePartner Role = "partner" // Full access including admin operations
	RoleManager Role = "manager"
	RoleStaff   Role = "staff"
)

// UserStatus represents the status of a user
type UserStatus string

const (
	UserStatusActive      UserStatus = "active"
	UserStatusLocked      UserStatus = "locked"
	UserStatusDeactivated UserStatus = "deactivated"
)

// Password cost for bcrypt
const bcryptCost = 12

// Lockout policy
const (
	maxFailedAttempts = 5
	lockoutDuration   = 15 * time.Minute
)

// User is a member of practice staff
type User struct {
	shared.BaseAggregateRoot
	Username       string     `gorm:"type:varchar(50);not null;uniqueIndex"`
	Email          string     `gorm:"type:varchar(200);index"`
	PasswordHash   string     `gorm:"type:varchar(100);not null"`
	DisplayName    string     `gorm:"type:varchar(100)"`
	Role           Role       `gorm:"type:varchar(20);not null;default:'staff'"`
	Status         UserStatus `gorm:"type:varchar(20);not null;default:'active'"`
	LastLoginAt    *time.Time
	FailedAttempts int `gorm:"not null;default:0"`
	LockedUntil    *time.Time
}

// TableName returns the table name for GORM
func (User) TableName() string {
	return "users"
}

// NewUser creates a new active user
func NewUser(username, password string, role Role) (*User, error) {
	if err := validateUsername(username); err != nil {
		return nil, err
	}
	if err := validatePassword(password); err != nil {
		return nil, err
	}
	if err := validateRole(role); err != nil {
		return nil, err
	}

	passwordHash, err := hashPassword(password)
	if err != nil {
		return nil, shared.NewDomainError("PASSWORD_HASH_ERROR", "Failed to hash password")
	}

	return &User{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Username:          strings.ToLower(strings.TrimSpace(username)),
		PasswordHash:      passwordHash,
		Role:              role,
		Status:            UserStatusActive,
	}, nil
}

// SetEmail sets the user's email
func (u *User) SetEmail(email string) error {
	if email != "" {
		if err := validateEmail(email); err != nil {
			return err
		}
		email = strings.ToLower(strings.TrimSpace(email))
	}

	u.Email = email
	u.UpdatedAt = time.Now()
	u.IncrementVersion()

	return nil
}

// SetDisplayName sets the user's display name
func (u *User) SetDisplayName(name string) error {
	if len(name) > 100 {
		return shared.NewDomainError("INVALID_DISPLAY_NAME", "Display name cannot exceed 100 characters")
	}

	u.DisplayName = name
	u.UpdatedAt = time.Now()
	u.IncrementVersion()

	return nil
}

// VerifyPassword checks a candidate password against the stored hash
func (u *User) VerifyPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}

// ChangePassword sets a new password after validating it
func (u *User) ChangePassword(newPassword string) error {
	if err := validatePassword(newPassword); err != nil {
		return err
	}

	hash, err := hashPassword(newPassword)
	if err != nil {
		return shared.NewDomainError("PASSWORD_HASH_ERROR", "Failed to hash password")
	}

	u.PasswordHash = hash
	u.UpdatedAt = time.Now()
	u.IncrementVersion()

	return nil
}

// RecordLogin records a successful login and clears the failure counter
func (u *User) RecordLogin() {
	now := time.Now()
	u.LastLoginAt = &now
	u.FailedAttempts = 0
	u.LockedUntil = nil
	if u.Status == UserStatusLocked {
		u.Status = UserStatusActive
	}
	u.UpdatedAt = now
	u.IncrementVersion()
}

// RecordFailedLogin increments the failure counter, locking the account
// once the threshold is reached
func (u *User) RecordFailedLogin() {
	u.FailedAttempts++
	if u.FailedAttempts >= maxFailedAttempts {
		until := time.Now().Add(lockoutDuration)
		u.Status = UserStatusLocked
		u.LockedUntil = &until
	}
	u.UpdatedAt = time.Now()
	u.IncrementVersion()
}

// CanLogin reports whether the account may authenticate right now
func (u *User) CanLogin(now time.Time) bool {
	switch u.Status {
	case UserStatusActive:
		return true
	case UserStatusLocked:
		return u.LockedUntil != nil && now.After(*u.LockedUntil)
	default:
		return false
	}
}

// SetRole changes the user's role
func (u *User) SetRole(role Role) error {
	if err := validateRole(role); err != nil {
		return err
	}

	u.Role = role
	u.UpdatedAt = time.Now()
	u.IncrementVersion()

	return nil
}

// Unlock clears a lockout ahead of its expiry
func (u *User) Unlock() {
	if u.Status == UserStatusLocked {
		u.Status = UserStatusActive
	}
	u.FailedAttempts = 0
	u.LockedUntil = nil
	u.UpdatedAt = time.Now()
	u.IncrementVersion()
}

// Deactivate disables the account
func (u *User) Deactivate() error {
	if u.Status == UserStatusDeactivated {
		return shared.NewDomainError("ALREADY_DEACTIVATED", "User is already deactivated")
	}

	u.Status = UserStatusDeactivated
	u.UpdatedAt = time.Now()
	u.IncrementVersion()

	return nil
}

// IsPartner reports whether the user holds the partner role
func (u *User) IsPartner() bool {
	return u.Role == RolePartner
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// validation functions

var usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9._-]{3,50}$`)

func validateUsername(username string) error {
	username = strings.TrimSpace(username)
	if !usernamePattern.MatchString(username) {
		return shared.NewDomainError("INVALID_USERNAME", "Username must be 3-50 characters of letters, digits, dots, underscores or hyphens")
	}
	return nil
}

func validatePassword(password string) error {
	if len(password) < 8 {
		return shared.NewDomainError("INVALID_PASSWORD", "Password must be at least 8 characters")
	}
	if len(password) > 72 {
		// bcrypt input limit
		return shared.NewDomainError("INVALID_PASSWORD", "Password cannot exceed 72 characters")
	}
	return nil
}

func validateEmail(email string) error {
	if len(email) > 200 {
		return shared.NewDomainError("INVALID_EMAIL", "Email cannot exceed 200 characters")
	}
	emailRegex := regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	if !emailRegex.MatchString(email) {
		return shared.NewDomainError("INVALID_EMAIL", "Invalid email format")
	}
	return nil
}

func validateRole(role Role) error {
	switch role {
	case RolePartner, RoleManager, RoleStaff:
		return nil
	default:
		return shared.NewDomainError("INVALID_ROLE", "Invalid role")
	}
}
