package services

import (
	"context"
	"sync"
	"time"

	"github.com/srirammulukuntla11/vocalmaster/internal/core/domain"
)

type mockAnalyzer struct {
	trace domain.PitchTrace
	err   error
	calls int
}

func (m *mockAnalyzer) PitchTrace(ctx context.Context, _ domain.Upload) (domain.PitchTrace, error) {
	m.calls++
	return m.trace, m.err
}

type mockRepo struct {
	mu      sync.Mutex
	saved   map[string]domain.Artifact
	saveErr error
	pingErr error
}

func newMockRepo() *mockRepo {
	return &mockRepo{saved: make(map[string]domain.Artifact)}
}

func (m *mockRepo) Save(ctx context.Context, a domain.Artifact) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saved[a.ID] = a
	return nil
}

func (m *mockRepo) GetByID(ctx context.Context, id string) (domain.Artifact, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.saved[id]
	if !ok {
		return domain.Artifact{}, domain.ErrNotFound
	}
	return a, nil
}

func (m *mockRepo) ListExpired(ctx context.Context, now time.Time, limit int) ([]domain.Artifact, error) {
	return nil, nil
}

func (m *mockRepo) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.saved, id)
	return nil
}

func (m *mockRepo) Ping(ctx context.Context) error {
	return m.pingErr
}
