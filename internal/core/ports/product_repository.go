package ports

import (
	"context"

	"github.com/shoply/catalog-system/internal/core/domain"
)

// ProductUpdate carries the fields of a partial update. Nil pointers leave
// the stored value untouched.
type ProductUpdate struct {
	Title   *string
	Details *string
	Price   *float64
	Rate    *float64
	Image   *string
}

// ProductRepository defines persistence operations for products.
type ProductRepository interface {
	Insert(ctx context.Context, p *domain.Product) (*domain.Product, error)
	FindAll(ctx context.Context) ([]*domain.Product, error)
	FindByID(ctx context.Context, id string) (*domain.Product, error)
	// Update applies a partial update and returns the resulting document.
	// Returns domain.ErrProductNotFound when no record matches id.
	Update(ctx context.Context, id string, upd ProductUpdate) (*domain.Product, error)
	// Delete removes the record. Deleting an absent id is not an error.
	Delete(ctx context.Context, id string) error
}
