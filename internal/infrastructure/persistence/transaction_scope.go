package persistence

import (
	"context"

	appclient "github.com/practiq/backend/internal/application/client"
	"github.com/practiq/backend/internal/domain/client"
	"gorm.io/gorm"
)

// GormTransactionScope implements the client application layer's
// TransactionScope using GORM transactions, so reference allocation and
// the client insert commit or roll back together.
type GormTransactionScope struct {
	db *gorm.DB
}

// NewGormTransactionScope creates a new GormTransactionScope
func NewGormTransactionScope(db *gorm.DB) *GormTransactionScope {
	return &GormTransactionScope{db: db}
}

// Execute runs fn inside a database transaction
func (s *GormTransactionScope) Execute(ctx context.Context, fn func(repos appclient.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormTransactionalRepositories{tx: tx})
	})
}

type gormTransactionalRepositories struct {
	tx *gorm.DB
}

// ClientRepo returns the client repository scoped to the transaction
func (r *gormTransactionalRepositories) ClientRepo() client.Repository {
	return NewGormClientRepository(r.tx)
}

// BucketRepo returns the bucket repository scoped to the transaction
func (r *gormTransactionalRepositories) BucketRepo() client.BucketRepository {
	return NewGormRefBucketRepository(r.tx)
}

var _ appclient.TransactionScope = (*GormTransactionScope)(nil)
var _ appclient.TransactionalRepositories = (*gormTransactionalRepositories)(nil)
