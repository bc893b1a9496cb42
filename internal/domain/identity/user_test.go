package identity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUser(t *testing.T) {
	t.Run("creates active user with hashed password", func(t *testing.T) {
		u, err := NewUser("Jane.Smith", "correct-horse-battery", RoleManager)

		require.NoError(t, err)
		assert.Equal(t, "jane.smith", u.Username)
		assert.Equal(t, UserStatusActive, u.Status)
		assert.NotEqual(t, "correct-horse-battery", u.PasswordHash)
		assert.True(t, u.VerifyPassword("correct-horse-battery"))
		assert.False(t, u.VerifyPassword("wrong"))
	})

	t.Run("fails with short username", func(t *testing.T) {
		u, err := NewUser("ab", "correct-horse-battery", RoleStaff)

		assert.Error(t, err)
		assert.Nil(t, u)
	})

	t.Run("fails with short password", func(t *testing.T) {
		u, err := NewUser("jane", "short", RoleStaff)

		assert.Error(t, err)
		assert.Nil(t, u)
	})

	t.Run("fails with unknown role", func(t *testing.T) {
		u, err := NewUser("jane", "correct-horse-battery", Role("admin"))

		assert.Error(t, err)
		assert.Nil(t, u)
	})
}

func TestUser_Lockout(t *testing.T) {
	newUser := func(t *testing.T) *User {
		u, err := NewUser("jane", "correct-horse-battery", RoleStaff)
		require.NoError(t, err)
		return u
	}

	t.Run("locks after repeated failures", func(t *testing.T) {
		u := newUser(t)

		for i := 0; i < maxFailedAttempts; i++ {
			u.RecordFailedLogin()
		}

		assert.Equal(t, UserStatusLocked, u.Status)
		assert.False(t, u.CanLogin(time.Now()))
		assert.True(t, u.CanLogin(time.Now().Add(lockoutDuration+time.Minute)))
	})

	t.Run("successful login clears the counter", func(t *testing.T) {
		u := newUser(t)
		u.RecordFailedLogin()
		u.RecordFailedLogin()

		u.RecordLogin()

		assert.Zero(t, u.FailedAttempts)
		assert.NotNil(t, u.LastLoginAt)
		assert.Equal(t, UserStatusActive, u.Status)
	})

	t.Run("deactivated user cannot login", func(t *testing.T) {
		u := newUser(t)

		require.NoError(t, u.Deactivate())
		assert.False(t, u.CanLogin(time.Now()))
		assert.Error(t, u.Deactivate())
	})
}

func TestUser_ChangePassword(t *testing.T) {
	u, err := NewUser("jane", "correct-horse-battery", RolePartner)
	require.NoError(t, err)

	require.NoError(t, u.ChangePassword("new-password-123"))
	assert.True(t, u.VerifyPassword("new-password-123"))
	assert.False(t, u.VerifyPassword("correct-horse-battery"))

	assert.Error(t, u.ChangePassword("short"))
}
