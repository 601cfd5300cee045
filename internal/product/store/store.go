// Package store provides an interface for product storage operations.
package store

// ProductStore is an interface for product storage operations.
// It abstracts the underlying data store, allowing for different implementations (e.g., in-memory, database).
type ProductStore interface {
	// FindByID retrieves a single product by its unique identifier.
	// Returns ErrProductNotFound if no product exists with the given ID.
	FindByID(id int) (*Product, error)

	// FindAll returns all available products in insertion order.
	// Returns an empty slice if no products exist.
	FindAll() ([]Product, error)

	// Create adds a new product and assigns its ID.
	// Returns ErrInvalidProduct if the product has no name.
	Create(product Product) (*Product, error)

	// Update replaces the product whose ID matches product.ID.
	// Returns ErrProductNotFound if no product exists with that ID.
	Update(product Product) (*Product, error)

	// DeleteByID removes a product by its ID.
	// Returns ErrProductNotFound if no product exists with the given ID.
	DeleteByID(id int) error
}

// Product represents a product entity in the store.
type Product struct {
	ID          int
	Name        string
	Description string
	Price       float64
	Details     string
}
