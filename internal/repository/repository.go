package repository

import (
	"context"

	"shoe-store/internal/model"
)

// ShoeRepository defines the interface for shoe catalogue data access.
type ShoeRepository interface {
	// List retrieves shoes matching the filter, ordered and paginated as it asks.
	List(ctx context.Context, filter model.ShoeFilter) ([]model.Shoe, error)

	// GetBySlug retrieves a single shoe by its slug.
	// Returns nil without error when no shoe has that slug.
	GetBySlug(ctx context.Context, slug string) (*model.Shoe, error)

	// Create inserts a new shoe. Returns model.ErrDuplicateSlug if the slug is taken.
	Create(ctx context.Context, shoe *model.Shoe) error

	// Upsert inserts the shoes, replacing any existing shoe with the same slug,
	// in a single transaction. It returns the number of rows written.
	Upsert(ctx context.Context, shoes []model.Shoe) (int, error)
}
