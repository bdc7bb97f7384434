package repository

import (
	"context"

	"gayo/internal/domain"
	"gayo/internal/store"
)

// Collection holds Order documents.
var Collection = store.CollectionName(domain.Order{})

type DocumentStore interface {
	CreateDocument(ctx context.Context, collection string, doc store.Document) (string, error)
}

type OrderRepository struct {
	store DocumentStore
}

func NewOrderRepository(s DocumentStore) *OrderRepository {
	return &OrderRepository{store: s}
}

// Create persists order and returns the store-generated id.
func (r *OrderRepository) Create(ctx context.Context, order domain.Order) (string, error) {
	return r.store.CreateDocument(ctx, Collection, order.Document())
}
