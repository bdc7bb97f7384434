package sqlstore

import (
	"context"
	"database/sql"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gayo/internal/domain"
	"gayo/internal/store"
	"gayo/internal/testutil"
)

// Unit Tests

func TestNew(t *testing.T) {
	db := &sql.DB{}
	s := New(db, MySQL)

	assert.NotNil(t, s)
	assert.Equal(t, db, s.db)
	assert.Equal(t, "mysql", s.Name())
}

func newSQLiteStore(t *testing.T) *Store {
	t.Helper()
	s := New(testutil.SetupTestSQLite(t), SQLite)
	require.NoError(t, s.EnsureSchema(context.Background()))
	return s
}

func TestSQLiteStore_InsertAndFind(t *testing.T) {
	s := newSQLiteStore(t)
	ctx := context.Background()

	item := domain.CafeMenuItem{Name: "黑咖啡", Category: domain.CategoryCoffee, Price: 40, Available: true}
	id, err := s.Insert(ctx, "cafemenuitem", item.Document())
	require.NoError(t, err)
	assert.Len(t, id, 36)

	docs, err := s.Find(ctx, "cafemenuitem", store.Filter{}, nil)
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, id, docs[0][store.IDField])

	decoded, err := domain.DecodeCafeMenuItem(docs[0])
	require.NoError(t, err)
	assert.Equal(t, item, decoded)
}

func TestSQLiteStore_GeneratedIDsAreUnique(t *testing.T) {
	s := newSQLiteStore(t)
	ctx := context.Background()

	seen := map[string]bool{}
	for i := 0; i < 20; i++ {
		id, err := s.Insert(ctx, "order", store.Document{"n": i})
		require.NoError(t, err)
		assert.False(t, seen[id])
		seen[id] = true
	}
}

func TestSQLiteStore_FindFilterAndProjection(t *testing.T) {
	s := newSQLiteStore(t)
	ctx := context.Background()

	for i, category := range []string{"coffee", "pack", "coffee"} {
		_, err := s.Insert(ctx, "cafemenuitem", store.Document{
			"name":     fmt.Sprintf("item-%d", i),
			"category": category,
			"price":    40,
		})
		require.NoError(t, err)
	}
	_, err := s.Insert(ctx, "order", store.Document{"category": "coffee"})
	require.NoError(t, err)

	docs, err := s.Find(ctx, "cafemenuitem", store.Filter{"category": "coffee", "price": 40}, store.Projection{"name"})
	require.NoError(t, err)
	require.Len(t, docs, 2)
	for _, d := range docs {
		assert.NotContains(t, d, "category")
		assert.Contains(t, d, "name")
	}

	n, err := s.Count(ctx, "cafemenuitem", store.Filter{"category": "coffee"})
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	n, err = s.Count(ctx, "cafemenuitem", store.Filter{})
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)
}

func TestSQLiteStore_InsertIfAbsent(t *testing.T) {
	s := newSQLiteStore(t)
	ctx := context.Background()

	inserted, err := s.InsertIfAbsent(ctx, "cafemenuitem", "seed:black-coffee", store.Document{"name": "黑咖啡"})
	require.NoError(t, err)
	assert.True(t, inserted)

	inserted, err = s.InsertIfAbsent(ctx, "cafemenuitem", "seed:black-coffee", store.Document{"name": "other"})
	require.NoError(t, err)
	assert.False(t, inserted)

	docs, err := s.Find(ctx, "cafemenuitem", store.Filter{}, nil)
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "seed:black-coffee", docs[0][store.IDField])
	assert.Equal(t, "黑咖啡", docs[0]["name"])
}

func TestSQLiteStore_FindKeepsInsertionOrder(t *testing.T) {
	s := newSQLiteStore(t)
	ctx := context.Background()

	keys := []string{"black-coffee", "latte", "house-blend", "drip-bag", "plum-juice-small", "plum-juice-large", "plum-juice-bottle"}
	for _, key := range keys {
		_, err := s.InsertIfAbsent(ctx, "cafemenuitem", "seed:"+key, store.Document{"key": key})
		require.NoError(t, err)
	}

	var names []string
	for i := 0; i < 5; i++ {
		name := fmt.Sprintf("customer-%d", i)
		_, err := s.Insert(ctx, "order", store.Document{"customer_name": name})
		require.NoError(t, err)
		names = append(names, name)
	}

	docs, err := s.Find(ctx, "cafemenuitem", store.Filter{}, nil)
	require.NoError(t, err)
	got := make([]string, 0, len(docs))
	for _, d := range docs {
		got = append(got, d["key"].(string))
	}
	assert.Equal(t, keys, got)

	orders, err := s.Find(ctx, "order", store.Filter{}, store.Projection{"customer_name"})
	require.NoError(t, err)
	gotNames := make([]string, 0, len(orders))
	for _, d := range orders {
		gotNames = append(gotNames, d["customer_name"].(string))
	}
	assert.Equal(t, names, gotNames)
}

func TestSQLiteStore_CollectionNames(t *testing.T) {
	s := newSQLiteStore(t)
	ctx := context.Background()

	names, err := s.CollectionNames(ctx)
	require.NoError(t, err)
	assert.Empty(t, names)

	for _, c := range []string{"order", "cafemenuitem", "order"} {
		_, err := s.Insert(ctx, c, store.Document{})
		require.NoError(t, err)
	}

	names, err = s.CollectionNames(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"cafemenuitem", "order"}, names)
}

func TestSQLiteStore_NestedOrderItems(t *testing.T) {
	s := newSQLiteStore(t)
	ctx := context.Background()

	order := domain.Order{
		CustomerName:    "A",
		Phone:           "123",
		PreferredMethod: domain.MethodPickup,
		Items:           []domain.OrderItem{{ItemName: "黑咖啡", Quantity: 2}},
	}
	_, err := s.Insert(ctx, "order", order.Document())
	require.NoError(t, err)

	docs, err := s.Find(ctx, "order", store.Filter{"customer_name": "A"}, nil)
	require.NoError(t, err)
	require.Len(t, docs, 1)

	items, ok := docs[0]["items"].([]any)
	require.True(t, ok)
	require.Len(t, items, 1)
	first := items[0].(map[string]any)
	assert.Equal(t, "黑咖啡", first["item_name"])
	assert.Equal(t, float64(2), first["quantity"])
}

func TestSQLiteStore_ClosedDatabase(t *testing.T) {
	s := newSQLiteStore(t)
	require.NoError(t, s.Close(context.Background()))

	_, err := s.Insert(context.Background(), "order", store.Document{})
	assert.Error(t, err)

	_, err = s.Find(context.Background(), "order", store.Filter{}, nil)
	assert.Error(t, err)
}

// Integration Tests

func TestMySQLStore_InsertFindCount(t *testing.T) {
	db := testutil.SetupTestMySQL(t)
	defer testutil.CleanupTestMySQL(t, db)

	s := New(db, MySQL)
	ctx := context.Background()
	require.NoError(t, s.EnsureSchema(ctx))
	_, err := db.Exec("DELETE FROM documents")
	require.NoError(t, err)

	id, err := s.Insert(ctx, "order", store.Document{"customer_name": "A", "phone": "123"})
	require.NoError(t, err)

	docs, err := s.Find(ctx, "order", store.Filter{"customer_name": "A"}, nil)
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, id, docs[0][store.IDField])

	inserted, err := s.InsertIfAbsent(ctx, "cafemenuitem", "seed:black-coffee", store.Document{"name": "黑咖啡"})
	require.NoError(t, err)
	assert.True(t, inserted)

	inserted, err = s.InsertIfAbsent(ctx, "cafemenuitem", "seed:black-coffee", store.Document{"name": "黑咖啡"})
	require.NoError(t, err)
	assert.False(t, inserted)

	n, err := s.Count(ctx, "cafemenuitem", store.Filter{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}
