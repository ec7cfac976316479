package ports

import (
	"context"
	"time"

	"github.com/srirammulukuntla11/vocalmaster/internal/core/domain"
)

// ArtifactRepository stores the metadata of rendered tracks kept for download.
type ArtifactRepository interface {
	Save(ctx context.Context, a domain.Artifact) error
	GetByID(ctx context.Context, id string) (domain.Artifact, error)
	ListExpired(ctx context.Context, now time.Time, limit int) ([]domain.Artifact, error)
	Delete(ctx context.Context, id string) error
}

// HealthChecker is implemented by stores that can report their own
// reachability.
type HealthChecker interface {
	Ping(ctx context.Context) error
}
