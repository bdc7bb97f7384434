package seed

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"gayo/internal/domain"
	apperrors "gayo/internal/errors"
	"gayo/internal/menu/repository"
	"gayo/internal/store"
	"gayo/internal/testutil"
)

func newTestSeeder(t *testing.T, conn store.Connection) *Seeder {
	t.Helper()
	entries, err := DefaultCatalogue()
	require.NoError(t, err)
	acc := store.NewAccessor(conn, 0, zap.NewNop())
	return NewSeeder(repository.NewMenuRepository(acc), entries, zap.NewNop())
}

func TestDefaultCatalogue(t *testing.T) {
	entries, err := DefaultCatalogue()
	require.NoError(t, err)
	require.Len(t, entries, 7)

	black := entries[0].Item
	assert.Equal(t, "黑咖啡", black.Name)
	assert.Equal(t, domain.CategoryCoffee, black.Category)
	assert.Equal(t, 40, black.Price)
	assert.Nil(t, black.Size)
	assert.True(t, black.Available)

	want := []struct {
		name     string
		category domain.MenuCategory
		size     string
		price    int
	}{
		{"黑咖啡", domain.CategoryCoffee, "", 40},
		{"鮮奶咖啡", domain.CategoryCoffee, "", 55},
		{"特調咖啡", domain.CategorySignature, "", 45},
		{"掛耳包", domain.CategoryPack, "pack", 26},
		{"烏梅汁(小)", domain.CategorySeasonal, "small", 40},
		{"烏梅汁(大)", domain.CategorySeasonal, "large", 50},
		{"烏梅汁(600cc)", domain.CategorySeasonal, "bottle", 70},
	}
	for i, w := range want {
		got := entries[i].Item
		assert.Equal(t, w.name, got.Name)
		assert.Equal(t, w.category, got.Category)
		assert.Equal(t, w.price, got.Price)
		assert.True(t, got.Available)
		require.NotNil(t, got.Description)
		if w.size == "" {
			assert.Nil(t, got.Size, w.name)
		} else {
			require.NotNil(t, got.Size, w.name)
			assert.Equal(t, domain.MenuSize(w.size), *got.Size)
		}
	}
}

func TestParseCatalogue_InvalidItem(t *testing.T) {
	_, err := ParseCatalogue([]byte(`
- key: tea
  name: 紅茶
  category: tea
  price: 30
`))
	require.Error(t, err)
	_, ok := apperrors.IsValidationError(err)
	assert.True(t, ok)
}

func TestParseCatalogue_NegativePrice(t *testing.T) {
	_, err := ParseCatalogue([]byte(`
- key: free
  name: 黑咖啡
  category: coffee
  price: -1
`))
	_, ok := apperrors.IsValidationError(err)
	assert.True(t, ok)
}

func TestParseCatalogue_KeyRules(t *testing.T) {
	_, err := ParseCatalogue([]byte(`
- name: 黑咖啡
  category: coffee
  price: 40
`))
	assert.ErrorContains(t, err, "missing key")

	_, err = ParseCatalogue([]byte(`
- {key: a, name: x, category: coffee, price: 1}
- {key: a, name: y, category: coffee, price: 2}
`))
	assert.ErrorContains(t, err, "duplicate key")
}

func TestParseCatalogue_AvailableDefaultsTrue(t *testing.T) {
	entries, err := ParseCatalogue([]byte(`
- {key: a, name: x, category: drip, price: 1}
- {key: b, name: y, category: other, price: 2, available: false}
`))
	require.NoError(t, err)
	assert.True(t, entries[0].Item.Available)
	assert.False(t, entries[1].Item.Available)
}

func TestSeed_EmptyCollectionInsertsSeven(t *testing.T) {
	backend := testutil.NewMemoryBackend()
	seeder := newTestSeeder(t, store.Connected(backend))

	inserted, err := seeder.Seed(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 7, inserted)

	docs := backend.Docs(repository.Collection)
	require.Len(t, docs, 7)

	var black store.Document
	for _, d := range docs {
		if d["name"] == "黑咖啡" {
			black = d
		}
	}
	require.NotNil(t, black)
	assert.Equal(t, "coffee", black["category"])
	assert.Equal(t, 40, black["price"])
	assert.Nil(t, black["size"])
	assert.Equal(t, true, black["available"])
	assert.Equal(t, "seed:black-coffee", black[store.IDField])
}

func TestSeed_Idempotent(t *testing.T) {
	backend := testutil.NewMemoryBackend()
	seeder := newTestSeeder(t, store.Connected(backend))
	ctx := context.Background()

	_, err := seeder.Seed(ctx)
	require.NoError(t, err)

	inserted, err := seeder.Seed(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, inserted)
	assert.Len(t, backend.Docs(repository.Collection), 7)
}

func TestSeed_NonEmptyCollectionInsertsNothing(t *testing.T) {
	for _, existing := range []int{1, 3, 12} {
		backend := testutil.NewMemoryBackend()
		for i := 0; i < existing; i++ {
			backend.Seed(repository.Collection, store.Document{"name": "x", "category": "other"})
		}
		seeder := newTestSeeder(t, store.Connected(backend))

		inserted, err := seeder.Seed(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 0, inserted)
		assert.Equal(t, 0, backend.Inserts)
		assert.Len(t, backend.Docs(repository.Collection), existing)
	}
}

func TestSeed_RacingSeedersDoNotDuplicate(t *testing.T) {
	backend := testutil.NewMemoryBackend()
	entries, err := DefaultCatalogue()
	require.NoError(t, err)
	repo := repository.NewMenuRepository(store.NewAccessor(store.Connected(backend), 0, zap.NewNop()))

	// Both seeders observed an empty collection before either inserted.
	first := NewSeeder(emptyCount{repo}, entries, zap.NewNop())
	second := NewSeeder(emptyCount{repo}, entries, zap.NewNop())

	a, err := first.Seed(context.Background())
	require.NoError(t, err)
	b, err := second.Seed(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 7, a+b)
	assert.Len(t, backend.Docs(repository.Collection), 7)
}

type emptyCount struct {
	*repository.MenuRepository
}

func (emptyCount) Count(context.Context) (int64, error) { return 0, nil }

func TestSeed_UnavailableStoreIsNoop(t *testing.T) {
	seeder := newTestSeeder(t, store.Unavailable(errors.New("DATABASE_URL is not set")))

	inserted, err := seeder.Seed(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, 0, inserted)
}

func TestSeed_CountFailure(t *testing.T) {
	backend := testutil.NewMemoryBackend()
	backend.CountErr = errors.New("connection refused")
	seeder := newTestSeeder(t, store.Connected(backend))

	inserted, err := seeder.Seed(context.Background())
	require.Error(t, err)
	assert.Equal(t, 0, inserted)
	assert.Equal(t, 0, backend.Inserts)
}

func TestSeed_InsertFailure(t *testing.T) {
	backend := testutil.NewMemoryBackend()
	backend.InsertErr = errors.New("not primary")
	seeder := newTestSeeder(t, store.Connected(backend))

	_, err := seeder.Seed(context.Background())
	require.Error(t, err)
	_, ok := apperrors.IsStorageError(err)
	assert.True(t, ok)
}
