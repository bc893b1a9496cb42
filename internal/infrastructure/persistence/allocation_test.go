package persistence

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"

	appclient "github.com/practiq/backend/internal/application/client"
	"github.com/practiq/backend/internal/domain/client"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// newAllocationDB opens a throwaway SQLite database with the client
// tables migrated, exercising the real transaction scope end to end.
func newAllocationDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "practiq.db")), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&client.Portfolio{}, &client.RefBucket{}, &client.Client{}))

	return db
}

// allocateAndInsert mirrors what the client service does: allocation and
// insert in one transaction.
func allocateAndInsert(t *testing.T, scope *GormTransactionScope, portfolioCode int, name string) (string, error) {
	t.Helper()

	var ref string
	err := scope.Execute(context.Background(), func(repos appclient.TransactionalRepositories) error {
		allocator := client.NewRefAllocator(repos.BucketRepo(), repos.ClientRepo())
		allocated, err := allocator.Allocate(context.Background(), portfolioCode)
		if err != nil {
			return err
		}

		c, err := client.NewClient(allocated, name, client.TypeCompany, portfolioCode)
		if err != nil {
			return err
		}
		if err := repos.ClientRepo().Create(context.Background(), c); err != nil {
			return err
		}

		ref = allocated
		return nil
	})
	return ref, err
}

func TestAllocation_SequentialReferences(t *testing.T) {
	db := newAllocationDB(t)
	scope := NewGormTransactionScope(db)

	first, err := allocateAndInsert(t, scope, 1, "First Client Ltd")
	require.NoError(t, err)
	assert.Equal(t, "1A001", first)

	second, err := allocateAndInsert(t, scope, 1, "Second Client Ltd")
	require.NoError(t, err)
	assert.Equal(t, "1A002", second)

	// Independent counter per portfolio
	other, err := allocateAndInsert(t, scope, 2, "Other Portfolio Ltd")
	require.NoError(t, err)
	assert.Equal(t, "2A001", other)
}

func TestAllocation_SkipsManuallyAssignedRefs(t *testing.T) {
	db := newAllocationDB(t)
	scope := NewGormTransactionScope(db)

	manual, err := client.NewClient("1A001", "Manually Referenced Ltd", client.TypeCompany, 1)
	require.NoError(t, err)
	require.NoError(t, NewGormClientRepository(db).Create(context.Background(), manual))

	ref, err := allocateAndInsert(t, scope, 1, "Allocated Ltd")
	require.NoError(t, err)
	assert.Equal(t, "1A002", ref)

	// The bucket counter has moved past the occupied slot
	buckets, err := NewGormRefBucketRepository(db).ListForPortfolio(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, buckets, 1)
	assert.Equal(t, 3, buckets[0].NextIndex)
}

func TestAllocation_RollsOverToNextLetter(t *testing.T) {
	db := newAllocationDB(t)
	scope := NewGormTransactionScope(db)

	bucketRepo := NewGormRefBucketRepository(db)
	bucket, err := bucketRepo.Create(context.Background(), 1, "A", client.MaxBucketIndex+1)
	require.NoError(t, err)
	require.NotNil(t, bucket)

	ref, err := allocateAndInsert(t, scope, 1, "Rollover Ltd")
	require.NoError(t, err)
	assert.Equal(t, "1B001", ref)

	buckets, err := bucketRepo.ListForPortfolio(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, buckets, 2)
	assert.Equal(t, "B", buckets[1].Alpha)
	assert.Equal(t, 2, buckets[1].NextIndex)
}

func TestAllocation_ExhaustedPortfolio(t *testing.T) {
	db := newAllocationDB(t)
	scope := NewGormTransactionScope(db)

	bucketRepo := NewGormRefBucketRepository(db)
	for alpha := 'A'; alpha <= 'Z'; alpha++ {
		_, err := bucketRepo.Create(context.Background(), 1, string(alpha), client.MaxBucketIndex+1)
		require.NoError(t, err)
	}

	_, err := allocateAndInsert(t, scope, 1, "No Room Ltd")
	assert.ErrorIs(t, err, client.ErrAllocationExhausted)
}

func TestAllocation_FailedInsertRollsBackBucketAdvance(t *testing.T) {
	db := newAllocationDB(t)
	scope := NewGormTransactionScope(db)

	err := scope.Execute(context.Background(), func(repos appclient.TransactionalRepositories) error {
		allocator := client.NewRefAllocator(repos.BucketRepo(), repos.ClientRepo())
		_, err := allocator.Allocate(context.Background(), 1)
		require.NoError(t, err)
		return fmt.Errorf("insert failed")
	})
	require.Error(t, err)

	// The aborted transaction left no bucket behind
	buckets, err := NewGormRefBucketRepository(db).ListForPortfolio(context.Background(), 1)
	require.NoError(t, err)
	assert.Empty(t, buckets)

	// A fresh allocation starts from the beginning
	ref, err := allocateAndInsert(t, scope, 1, "Fresh Start Ltd")
	require.NoError(t, err)
	assert.Equal(t, "1A001", ref)
}
