package store

import (
	"testing"

	"github.com/abgdnv/storefront/internal/product/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_InMemory_Create_AssignsIDs(t *testing.T) {
	testCases := []struct {
		name       string
		seed       []Product
		expectedID int
	}{
		{name: "empty store starts at 1", seed: nil, expectedID: 1},
		{name: "one more than the maximum", seed: []Product{{ID: 3, Name: "a"}, {ID: 7, Name: "b"}, {ID: 5, Name: "c"}}, expectedID: 8},
		{name: "seeded catalog", seed: SampleCatalog(), expectedID: 7},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			s := NewInMemoryStore(tc.seed...)
			// when
			created, err := s.Create(Product{Name: "New", Price: 10})
			// then
			require.NoError(t, err)
			assert.Equal(t, tc.expectedID, created.ID)
			for _, p := range tc.seed {
				assert.Greater(t, created.ID, p.ID)
			}
		})
	}
}

func Test_InMemory_Create_ReusesIDOfDeletedMaximum(t *testing.T) {
	s := NewInMemoryStore()
	first, err := s.Create(Product{Name: "first"})
	require.NoError(t, err)
	second, err := s.Create(Product{Name: "second"})
	require.NoError(t, err)

	require.NoError(t, s.DeleteByID(second.ID))
	third, err := s.Create(Product{Name: "third"})

	require.NoError(t, err)
	assert.Equal(t, first.ID+1, third.ID)
}

func Test_InMemory_Create_RejectsMissingName(t *testing.T) {
	s := NewInMemoryStore()

	created, err := s.Create(Product{Price: 10})

	assert.ErrorIs(t, err, errors.ErrInvalidProduct)
	assert.Nil(t, created)
	all, _ := s.FindAll()
	assert.Empty(t, all)
}

func Test_InMemory_FindByID(t *testing.T) {
	s := NewInMemoryStore(SampleCatalog()...)

	found, err := s.FindByID(2)
	require.NoError(t, err)
	assert.Equal(t, "Wireless Noise-Cancelling Headphones", found.Name)

	_, err = s.FindByID(42)
	assert.ErrorIs(t, err, errors.ErrProductNotFound)
}

func Test_InMemory_Update(t *testing.T) {
	s := NewInMemoryStore(SampleCatalog()...)

	updated, err := s.Update(Product{ID: 3, Name: "Watch 2", Price: 1})
	require.NoError(t, err)
	assert.Equal(t, 3, updated.ID)

	all, err := s.FindAll()
	require.NoError(t, err)
	assert.Equal(t, "Watch 2", all[2].Name, "update keeps the position")
	assert.Len(t, all, 6)

	_, err = s.Update(Product{ID: 99, Name: "ghost"})
	assert.ErrorIs(t, err, errors.ErrProductNotFound)
}

func Test_InMemory_DeleteByID(t *testing.T) {
	s := NewInMemoryStore(SampleCatalog()...)

	require.NoError(t, s.DeleteByID(1))

	_, err := s.FindByID(1)
	assert.ErrorIs(t, err, errors.ErrProductNotFound)
	assert.ErrorIs(t, s.DeleteByID(1), errors.ErrProductNotFound)

	all, _ := s.FindAll()
	require.Len(t, all, 5)
	assert.Equal(t, 2, all[0].ID)
}

func Test_InMemory_SnapshotsAreStable(t *testing.T) {
	// given
	s := NewInMemoryStore(SampleCatalog()...)
	before, err := s.FindAll()
	require.NoError(t, err)

	// when
	_, err = s.Update(Product{ID: 1, Name: "changed"})
	require.NoError(t, err)
	require.NoError(t, s.DeleteByID(2))
	before[0].Name = "mutated by caller"

	// then
	assert.Len(t, before, 6, "earlier snapshot is not affected by later writes")
	found, _ := s.FindByID(1)
	assert.Equal(t, "changed", found.Name, "caller mutation does not leak into the store")
}

func Test_InMemory_SeedIsCopied(t *testing.T) {
	seed := SampleCatalog()
	s := NewInMemoryStore(seed...)

	seed[0].Name = "mutated"

	found, err := s.FindByID(1)
	require.NoError(t, err)
	assert.Equal(t, "High-Performance Laptop", found.Name)
}

func Test_InMemory_NetEffect(t *testing.T) {
	s := NewInMemoryStore()
	a, _ := s.Create(Product{Name: "a", Price: 1})
	b, _ := s.Create(Product{Name: "b", Price: 2})
	c, _ := s.Create(Product{Name: "c", Price: 3})
	_, _ = s.Update(Product{ID: b.ID, Name: "b2", Price: 20})
	require.NoError(t, s.DeleteByID(a.ID))

	all, err := s.FindAll()

	require.NoError(t, err)
	assert.Equal(t, []Product{
		{ID: b.ID, Name: "b2", Price: 20},
		{ID: c.ID, Name: "c", Price: 3},
	}, all)
}
