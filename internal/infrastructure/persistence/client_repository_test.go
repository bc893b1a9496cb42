package persistence

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/practiq/backend/internal/domain/client"
	"github.com/practiq/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// newMockClientRepository creates a GormClientRepository over a mocked
// SQL connection
func newMockClientRepository(t *testing.T) (*GormClientRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()

	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	return NewGormClientRepository(gormDB), mock, mockDB
}

func TestGormClientRepository_FindByRef(t *testing.T) {
	t.Run("finds existing client", func(t *testing.T) {
		repo, mock, mockDB := newMockClientRepository(t)
		defer mockDB.Close()

		rows := sqlmock.NewRows([]string{"ref", "name", "type", "status", "portfolio_code"}).
			AddRow("1A001", "Acme Trading Ltd", "company", "active", 1)

		mock.ExpectQuery(`SELECT \* FROM "clients" WHERE ref = \$1 ORDER BY .* LIMIT .*`).
			WithArgs("1A001", 1).
			WillReturnRows(rows)

		c, err := repo.FindByRef(context.Background(), "1A001")

		require.NoError(t, err)
		assert.Equal(t, "1A001", c.Ref)
		assert.Equal(t, "Acme Trading Ltd", c.Name)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("uppercases the reference before querying", func(t *testing.T) {
		repo, mock, mockDB := newMockClientRepository(t)
		defer mockDB.Close()

		rows := sqlmock.NewRows([]string{"ref", "name", "type", "status", "portfolio_code"}).
			AddRow("1A001", "Acme Trading Ltd", "company", "active", 1)

		mock.ExpectQuery(`SELECT \* FROM "clients" WHERE ref = \$1 ORDER BY .* LIMIT .*`).
			WithArgs("1A001", 1).
			WillReturnRows(rows)

		_, err := repo.FindByRef(context.Background(), "1a001")

		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("maps missing row to ErrNotFound", func(t *testing.T) {
		repo, mock, mockDB := newMockClientRepository(t)
		defer mockDB.Close()

		mock.ExpectQuery(`SELECT \* FROM "clients" WHERE ref = \$1 ORDER BY .* LIMIT .*`).
			WithArgs("9Z999", 1).
			WillReturnError(gorm.ErrRecordNotFound)

		c, err := repo.FindByRef(context.Background(), "9Z999")

		assert.Nil(t, c)
		assert.ErrorIs(t, err, shared.ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormClientRepository_ExistsByRef(t *testing.T) {
	repo, mock, mockDB := newMockClientRepository(t)
	defer mockDB.Close()

	mock.ExpectQuery(`SELECT count\(\*\) FROM "clients" WHERE ref = \$1`).
		WithArgs("1A001").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	exists, err := repo.ExistsByRef(context.Background(), "1a001")

	require.NoError(t, err)
	assert.True(t, exists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormClientRepository_Create(t *testing.T) {
	t.Run("maps duplicate key to ErrAlreadyExists", func(t *testing.T) {
		repo, mock, mockDB := newMockClientRepository(t)
		defer mockDB.Close()

		c, err := client.NewClient("1A001", "Acme Trading Ltd", client.TypeCompany, 1)
		require.NoError(t, err)

		mock.ExpectExec(`INSERT INTO "clients"`).
			WillReturnError(gorm.ErrDuplicatedKey)

		err = repo.Create(context.Background(), c)

		assert.ErrorIs(t, err, shared.ErrAlreadyExists)
	})
}

func TestGormClientRepository_Delete(t *testing.T) {
	t.Run("returns ErrNotFound when nothing was deleted", func(t *testing.T) {
		repo, mock, mockDB := newMockClientRepository(t)
		defer mockDB.Close()

		mock.ExpectExec(`DELETE FROM "clients" WHERE ref = \$1`).
			WithArgs("9Z999").
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.Delete(context.Background(), "9Z999")

		assert.ErrorIs(t, err, shared.ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormClientRepository_CountByStatus(t *testing.T) {
	repo, mock, mockDB := newMockClientRepository(t)
	defer mockDB.Close()

	mock.ExpectQuery(`SELECT count\(\*\) FROM "clients" WHERE status = \$1`).
		WithArgs("active").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(42))

	count, err := repo.CountByStatus(context.Background(), client.StatusActive)

	require.NoError(t, err)
	assert.Equal(t, int64(42), count)
	assert.NoError(t, mock.ExpectationsWereMet())
}
