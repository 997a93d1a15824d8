package service

import (
	"context"

	"shoe-store/internal/model"
)

// ListQuery selects a page of the catalogue.
type ListQuery struct {
	Section string
	Sort    string
	Limit   int
	Offset  int
}

// ShoeService defines storefront catalogue operations. Every shoe it returns
// is classified against the current time.
type ShoeService interface {
	// List retrieves a page of shoes for a section.
	List(ctx context.Context, q ListQuery) ([]model.ShoeCard, error)

	// GetBySlug retrieves a single shoe.
	GetBySlug(ctx context.Context, slug string) (*model.ShoeCard, error)

	// Create adds a shoe to the catalogue.
	Create(ctx context.Context, req *model.CreateShoeRequest) (*model.ShoeCard, error)

	// Import upserts shoes by slug and returns how many were written.
	Import(ctx context.Context, shoes []model.Shoe) (int, error)
}
