package storage

import (
	"context"
	"fmt"
	"sync"
	"time"

	appdocument "github.com/practiq/backend/internal/application/document"
)

var _ appdocument.ObjectStorageService = (*StubObjectStorage)(nil)

// StubObjectStorage is an in-memory stand-in for development and tests.
// URLs it hands out are fake; an object "exists" once an upload URL has
// been generated for its key.
type StubObjectStorage struct {
	mu      sync.RWMutex
	objects map[string]struct{}
	baseURL string
}

// NewStubObjectStorage creates a stub storage backend
func NewStubObjectStorage() *StubObjectStorage {
	return &StubObjectStorage{
		objects: make(map[string]struct{}),
		baseURL: "http://localhost:8080/dev-storage",
	}
}

func (s *StubObjectStorage) GenerateUploadURL(_ context.Context, storageKey, _ string, expiresIn time.Duration) (string, time.Time, error) {
	if expiresIn <= 0 {
		expiresIn = defaultPresignExpiration
	}

	s.mu.Lock()
	s.objects[storageKey] = struct{}{}
	s.mu.Unlock()

	return fmt.Sprintf("%s/%s?method=PUT", s.baseURL, storageKey), time.Now().Add(expiresIn), nil
}

func (s *StubObjectStorage) GenerateDownloadURL(_ context.Context, storageKey string, expiresIn time.Duration) (string, time.Time, error) {
	if expiresIn <= 0 {
		expiresIn = defaultPresignExpiration
	}
	return fmt.Sprintf("%s/%s", s.baseURL, storageKey), time.Now().Add(expiresIn), nil
}

func (s *StubObjectStorage) DeleteObject(_ context.Context, storageKey string) error {
	s.mu.Lock()
	delete(s.objects, storageKey)
	s.mu.Unlock()
	return nil
}

func (s *StubObjectStorage) ObjectExists(_ context.Context, storageKey string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.objects[storageKey]
	return ok, nil
}
