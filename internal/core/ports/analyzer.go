package ports

import (
	"context"

	"github.com/srirammulukuntla11/vocalmaster/internal/core/domain"
)

// PitchAnalyzer turns an uploaded recording into a pitch trace.
type PitchAnalyzer interface {
	PitchTrace(ctx context.Context, upload domain.Upload) (domain.PitchTrace, error)
}
