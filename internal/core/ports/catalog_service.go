package ports

import (
	"context"

	"github.com/shoply/catalog-system/internal/core/domain"
)

// CreateProductInput carries all data needed to create a product listing.
// Categories arrive as raw form values; the service normalizes them.
type CreateProductInput struct {
	Title      string
	Details    string
	Price      float64
	PriceSet   bool
	Rate       float64
	RateSet    bool
	Categories []string
	Image      *ImageUpload
}

// UpdateProductInput carries the fields of a partial edit. Nil means
// "leave unchanged"; Image is replaced only when a new upload is supplied.
type UpdateProductInput struct {
	Title   *string
	Details *string
	Price   *float64
	Rate    *float64
	Image   *ImageUpload
}

// CatalogService defines use-case operations for the product catalog.
type CatalogService interface {
	List(ctx context.Context) ([]*domain.Product, error)
	Get(ctx context.Context, id string) (*domain.Product, error)
	Create(ctx context.Context, input CreateProductInput) (*domain.Product, error)
	Update(ctx context.Context, id string, input UpdateProductInput) (*domain.Product, error)
	// Delete is idempotent: removing an absent product succeeds.
	Delete(ctx context.Context, id string) error
}
