package repository

import (
	"context"
	"fmt"

	"gayo/internal/domain"
	"gayo/internal/store"
)

// Collection holds CafeMenuItem documents.
var Collection = store.CollectionName(domain.CafeMenuItem{})

type DocumentStore interface {
	GetDocuments(ctx context.Context, collection string, filter store.Filter, projection store.Projection) ([]store.Document, error)
	CountDocuments(ctx context.Context, collection string, filter store.Filter) (int64, error)
	EnsureDocument(ctx context.Context, collection, id string, doc store.Document) (bool, error)
}

type MenuRepository struct {
	store DocumentStore
}

func NewMenuRepository(s DocumentStore) *MenuRepository {
	return &MenuRepository{store: s}
}

func (r *MenuRepository) FindAll(ctx context.Context) ([]domain.CafeMenuItem, error) {
	docs, err := r.store.GetDocuments(ctx, Collection, store.Filter{}, nil)
	if err != nil {
		return nil, err
	}

	items := make([]domain.CafeMenuItem, 0, len(docs))
	for _, doc := range docs {
		item, err := domain.DecodeCafeMenuItem(doc)
		if err != nil {
			return nil, fmt.Errorf("decoding menu item %v: %w", doc[store.IDField], err)
		}
		items = append(items, item)
	}

	return items, nil
}

func (r *MenuRepository) Count(ctx context.Context) (int64, error) {
	return r.store.CountDocuments(ctx, Collection, store.Filter{})
}

// InsertSeed writes item under a stable id derived from key. It reports
// false when that id is already present.
func (r *MenuRepository) InsertSeed(ctx context.Context, key string, item domain.CafeMenuItem) (bool, error) {
	return r.store.EnsureDocument(ctx, Collection, SeedID(key), item.Document())
}

func SeedID(key string) string {
	return "seed:" + key
}
