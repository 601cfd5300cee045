package store

import (
	"slices"
	"sync"

	"github.com/abgdnv/storefront/internal/product/errors"
)

// inMemory implements ProductStore over an ordered slice held in process memory.
// Writes build a new slice and swap it in, so a FindAll snapshot is never mutated afterwards.
type inMemory struct {
	mu       sync.RWMutex
	products []Product
}

// NewInMemoryStore creates a new instance of ProductStore holding a copy of seed.
func NewInMemoryStore(seed ...Product) ProductStore {
	return &inMemory{
		products: slices.Clone(seed),
	}
}

// FindByID retrieves a product by its ID.
func (s *inMemory) FindByID(id int) (*Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.indexOf(id)
	if i < 0 {
		return nil, errors.ErrProductNotFound
	}
	p := s.products[i]
	return &p, nil
}

// FindAll retrieves all products.
func (s *inMemory) FindAll() ([]Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	list := make([]Product, len(s.products))
	copy(list, s.products)
	return list, nil
}

// Create assigns the next ID (current maximum plus one, 1 for an empty store) and appends the product.
func (s *inMemory) Create(product Product) (*Product, error) {
	if product.Name == "" {
		return nil, errors.ErrInvalidProduct
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	product.ID = s.nextID()
	next := make([]Product, len(s.products), len(s.products)+1)
	copy(next, s.products)
	s.products = append(next, product)

	return &product, nil
}

// Update replaces the stored product with the same ID.
func (s *inMemory) Update(product Product) (*Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(product.ID)
	if i < 0 {
		return nil, errors.ErrProductNotFound
	}
	next := slices.Clone(s.products)
	next[i] = product
	s.products = next

	return &product, nil
}

// DeleteByID deletes a product by its ID.
func (s *inMemory) DeleteByID(id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return errors.ErrProductNotFound
	}
	next := make([]Product, 0, len(s.products)-1)
	next = append(next, s.products[:i]...)
	s.products = append(next, s.products[i+1:]...)
	return nil
}

// indexOf returns the position of id or -1. Callers hold the lock.
func (s *inMemory) indexOf(id int) int {
	return slices.IndexFunc(s.products, func(p Product) bool { return p.ID == id })
}

// nextID returns one more than the highest stored ID. Callers hold the lock.
func (s *inMemory) nextID() int {
	maxID := 0
	for _, p := range s.products {
		maxID = max(maxID, p.ID)
	}
	return maxID + 1
}
