package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/onnise/beyond-ads-scraper/internal/entity"
)

// ErrRunNotFound is returned when no run matches the identifier.
var ErrRunNotFound = errors.New("run not found")

// RunStore persists scrape runs and the listings they collect.
type RunStore interface {
	CreateRun(ctx context.Context, run *entity.Run) error
	UpdateRun(ctx context.Context, run *entity.Run) error
	GetRun(ctx context.Context, id uuid.UUID) (*entity.Run, error)
	ListRuns(ctx context.Context) ([]entity.Run, error)
	AddListing(ctx context.Context, listing entity.Listing) error
	Listings(ctx context.Context, runID uuid.UUID) ([]entity.Listing, error)
}
