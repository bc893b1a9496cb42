package client

import (
	"context"

	"github.com/practiq/backend/internal/domain/client"
)

// TransactionScope provides transactional access to the client and
// bucket repositories. Reference allocation and the client insert must
// commit or roll back together; running them in one scope is what makes
// an aborted insert release the reserved reference.
type TransactionScope interface {
	// Execute runs the given function within a database transaction.
	// If the function returns an error, the transaction is rolled back.
	// If the function succeeds, the transaction is committed.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides access to the repositories scoped
// to the current transaction.
type TransactionalRepositories interface {
	// ClientRepo returns the client repository scoped to the current transaction
	ClientRepo() client.Repository
	// BucketRepo returns the allocation bucket repository scoped to the current transaction
	BucketRepo() client.BucketRepository
}

// NoOpTransactionScope is a transaction scope that doesn't actually use
// transactions. This is useful for testing or when transaction support
// is not required.
type NoOpTransactionScope struct {
	clientRepo client.Repository
	bucketRepo client.BucketRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope with the given repositories.
func NewNoOpTransactionScope(clientRepo client.Repository, bucketRepo client.BucketRepository) *NoOpTransactionScope {
	return &NoOpTransactionScope{
		clientRepo: clientRepo,
		bucketRepo: bucketRepo,
	}
}

// Execute runs the function without a real transaction (for testing/compatibility).
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// ClientRepo returns the client repository.
func (s *NoOpTransactionScope) ClientRepo() client.Repository {
	return s.clientRepo
}

// BucketRepo returns the bucket repository.
func (s *NoOpTransactionScope) BucketRepo() client.BucketRepository {
	return s.bucketRepo
}

// Ensure NoOpTransactionScope implements both interfaces
var _ TransactionScope = (*NoOpTransactionScope)(nil)
var _ TransactionalRepositories = (*NoOpTransactionScope)(nil)
