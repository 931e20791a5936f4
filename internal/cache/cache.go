// Package cache keeps the public approved-project listing in Redis.
package cache

import (
	"context"

	"innovation_showcase/internal/models"
)

// Generation identifies the cache state a listing was read against.
// InvalidateApproved moves it forward, and SetApproved drops a write whose
// generation is no longer current.
type Generation int64

// Projects caches the approved listing. Implementations report a miss as
// (nil, gen, false, nil); gen is passed back to SetApproved.
type Projects interface {
	GetApproved(ctx context.Context) ([]models.Project, Generation, bool, error)
	SetApproved(ctx context.Context, gen Generation, projects []models.Project) error
	InvalidateApproved(ctx context.Context) error
}

// Nop is used when no Redis address is configured.
type Nop struct{}

var _ Projects = Nop{}

func (Nop) GetApproved(context.Context) ([]models.Project, Generation, bool, error) {
	return nil, 0, false, nil
}

func (Nop) SetApproved(context.Context, Generation, []models.Project) error { return nil }

func (Nop) InvalidateApproved(context.Context) error { return nil }
