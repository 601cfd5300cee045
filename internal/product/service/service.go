// Package service provides the implementation of product-related business logic.
package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/abgdnv/storefront/internal/product/store"
)

// ProductService defines the methods for managing products.
// It abstracts the underlying business logic and data access.
type ProductService interface {
	// FindByID retrieves a single product by its unique identifier.
	// Returns ErrProductNotFound if no product exists with the given ID.
	FindByID(ctx context.Context, id int) (*ProductDto, error)

	// FindAll returns all available products.
	// Returns an empty slice if no products exist.
	FindAll(ctx context.Context) ([]ProductDto, error)

	// Create adds a new product to the system.
	// Returns error if the product cannot be created.
	Create(ctx context.Context, product ProductCreateDto) (*ProductDto, error)

	// Update merges patch over the product with the given ID.
	// Returns ErrProductNotFound if no product exists with the given ID.
	Update(ctx context.Context, id int, patch ProductPatchDto) (*ProductDto, error)

	// Exists reports ErrProductNotFound if no product exists with the given ID.
	Exists(ctx context.Context, id int) error

	// DeleteByID removes a product by its ID.
	// Returns ErrProductNotFound if no product exists with the given ID.
	DeleteByID(ctx context.Context, id int) error
}

// service implements ProductService and provides methods to manage products.
type service struct {
	repository store.ProductStore
	logger     *slog.Logger
}

// NewService creates a new instance of ProductService with the provided repository.
func NewService(repo store.ProductStore, logger *slog.Logger) ProductService {
	return &service{
		repository: repo,
		logger:     logger.With("component", "service"),
	}
}

// ProductDto represents the data transfer object for a product.
type ProductDto struct {
	ID          int     `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Details     string  `json:"details"`
}

// ProductCreateDto is the payload accepted when creating a product.
// A zero price counts as missing.
type ProductCreateDto struct {
	Name        string  `json:"name" validate:"required"`
	Description string  `json:"description"`
	Price       float64 `json:"price" validate:"required"`
	Details     string  `json:"details"`
}

// ProductPatchDto is a partial update; nil fields keep the stored value.
// Identity comes from the request path or query, never from the payload.
type ProductPatchDto struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price"`
	Details     *string  `json:"details"`
}

// FindByID retrieves a product by its ID and returns it as a ProductDto.
func (s *service) FindByID(ctx context.Context, id int) (*ProductDto, error) {
	product, err := s.repository.FindByID(id)
	if err != nil {
		s.logger.DebugContext(ctx, "Error fetching product by ID", "ID", id, "error", err)
		return nil, fmt.Errorf("failed to fetch product by ID %d: %w", id, err)
	}

	return toDto(product), nil
}

// FindAll retrieves a list of all products and returns them as ProductDTOs.
func (s *service) FindAll(ctx context.Context) ([]ProductDto, error) {
	products, err := s.repository.FindAll()
	if err != nil {
		s.logger.ErrorContext(ctx, "Error fetching products", "error", err)
		return nil, fmt.Errorf("failed to fetch products: %w", err)
	}
	productDTOs := make([]ProductDto, len(products))

	for i, item := range products {
		productDTOs[i] = *toDto(&item)
	}

	return productDTOs, nil
}

// Create creates a new product and returns it as a ProductDto.
func (s *service) Create(ctx context.Context, product ProductCreateDto) (*ProductDto, error) {
	p, err := s.repository.Create(store.Product{
		Name:        product.Name,
		Description: product.Description,
		Price:       product.Price,
		Details:     product.Details,
	})
	if err != nil {
		s.logger.ErrorContext(ctx, "Error creating product", "error", err)
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	return toDto(p), nil
}

// Update loads the product, merges patch over it and stores the result.
func (s *service) Update(ctx context.Context, id int, patch ProductPatchDto) (*ProductDto, error) {
	existing, err := s.repository.FindByID(id)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch product by ID %d: %w", id, err)
	}

	updated, err := s.repository.Update(Merge(*existing, patch, id))
	if err != nil {
		s.logger.ErrorContext(ctx, "Error updating product", "ID", id, "error", err)
		return nil, fmt.Errorf("failed to update product %d: %w", id, err)
	}

	return toDto(updated), nil
}

// Exists checks that a product with the given ID is stored.
func (s *service) Exists(_ context.Context, id int) error {
	if _, err := s.repository.FindByID(id); err != nil {
		return fmt.Errorf("failed to fetch product by ID %d: %w", id, err)
	}
	return nil
}

// DeleteByID deletes a product by its ID.
func (s *service) DeleteByID(_ context.Context, id int) error {
	if err := s.repository.DeleteByID(id); err != nil {
		return fmt.Errorf("failed to delete product %d: %w", id, err)
	}
	return nil
}

// Merge applies patch over existing field by field. Every non-nil patch field
// overrides the stored value; the ID is always set to id.
func Merge(existing store.Product, patch ProductPatchDto, id int) store.Product {
	merged := existing
	if patch.Name != nil {
		merged.Name = *patch.Name
	}
	if patch.Description != nil {
		merged.Description = *patch.Description
	}
	if patch.Price != nil {
		merged.Price = *patch.Price
	}
	if patch.Details != nil {
		merged.Details = *patch.Details
	}
	merged.ID = id
	return merged
}

// toDto converts a store.Product to a ProductDto.
func toDto(product *store.Product) *ProductDto {
	return &ProductDto{
		ID:          product.ID,
		Name:        product.Name,
		Description: product.Description,
		Price:       product.Price,
		Details:     product.Details,
	}
}
