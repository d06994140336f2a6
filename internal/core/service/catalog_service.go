package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/shoply/catalog-system/internal/core/domain"
	"github.com/shoply/catalog-system/internal/core/ports"
)

// CatalogService orchestrates validation, image delegation, and persistence
// for product CRUD.
type CatalogService struct {
	repo   ports.ProductRepository
	images ports.ImageStore
	logger zerolog.Logger
}

func NewCatalogService(repo ports.ProductRepository, images ports.ImageStore, logger zerolog.Logger) *CatalogService {
	return &CatalogService{repo: repo, images: images, logger: logger}
}

func (s *CatalogService) List(ctx context.Context) ([]*domain.Product, error) {
	return s.repo.FindAll(ctx)
}

func (s *CatalogService) Get(ctx context.Context, id string) (*domain.Product, error) {
	return s.repo.FindByID(ctx, id)
}

// Create validates the listing, stores the image, and persists the record.
// Nothing is persisted when validation or the image upload fails.
func (s *CatalogService) Create(ctx context.Context, input ports.CreateProductInput) (*domain.Product, error) {
	if fields := missingProductFields(input); len(fields) > 0 {
		return nil, &domain.ValidationError{Fields: fields}
	}

	// The store enforces the image allow-list; bytes are never inspected here.
	imageURL, err := s.images.Save(ctx, *input.Image)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	product := &domain.Product{
		Title:      input.Title,
		Details:    input.Details,
		Image:      imageURL,
		Price:      input.Price,
		Categories: domain.NormalizeCategories(input.Categories),
		Rating:     domain.Rating{Rate: input.Rate, Count: 1},
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	created, err := s.repo.Insert(ctx, product)
	if err != nil {
		s.logger.Error().Err(err).Str("title", input.Title).Msg("failed to create product")
		return nil, err
	}

	s.logger.Info().Str("product_id", created.ID).Str("title", created.Title).Msg("product created")
	return created, nil
}

// Update applies a partial edit. The image is replaced only when a new
// upload was supplied; all other absent fields stay untouched.
func (s *CatalogService) Update(ctx context.Context, id string, input ports.UpdateProductInput) (*domain.Product, error) {
	upd := ports.ProductUpdate{
		Title:   input.Title,
		Details: input.Details,
		Price:   input.Price,
		Rate:    input.Rate,
	}

	if input.Image != nil {
		imageURL, err := s.images.Save(ctx, *input.Image)
		if err != nil {
			return nil, err
		}
		upd.Image = &imageURL
	}

	updated, err := s.repo.Update(ctx, id, upd)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("product_id", id).Msg("product updated")
	return updated, nil
}

// Delete removes the record. Deleting an already-absent product succeeds.
func (s *CatalogService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Str("product_id", id).Msg("product deleted")
	return nil
}

func missingProductFields(input ports.CreateProductInput) []string {
	var fields []string
	if input.Title == "" {
		fields = append(fields, "title")
	}
	if input.Details == "" {
		fields = append(fields, "details")
	}
	if !input.PriceSet || input.Price < 0 {
		fields = append(fields, "price")
	}
	if !input.RateSet || input.Rate < 0 || input.Rate > 5 {
		fields = append(fields, "rating")
	}
	if input.Image == nil {
		fields = append(fields, "image")
	}
	return fields
}
