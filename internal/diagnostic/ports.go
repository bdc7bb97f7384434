package diagnostic

import (
	"context"

	"gayo/internal/store"
)

type StoreInspector interface {
	Status() store.Status
	CollectionNames(ctx context.Context, limit int) ([]string, error)
}
