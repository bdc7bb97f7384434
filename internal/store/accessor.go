package store

import (
	"context"
	"time"

	"go.uber.org/zap"

	apperrors "gayo/internal/errors"
)

type Accessor struct {
	conn      Connection
	opTimeout time.Duration
	logger    *zap.Logger
	now       func() time.Time
}

// NewAccessor wraps conn. A zero opTimeout leaves deadlines to the caller's
// context.
func NewAccessor(conn Connection, opTimeout time.Duration, logger *zap.Logger) *Accessor {
	return &Accessor{
		conn:      conn,
		opTimeout: opTimeout,
		logger:    logger,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

func (a *Accessor) Connection() Connection {
	return a.conn
}

func (a *Accessor) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if a.opTimeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, a.opTimeout)
}

// CreateDocument inserts one document, stamped with created_at and
// updated_at, and returns the store-generated id.
func (a *Accessor) CreateDocument(ctx context.Context, collection string, doc Document) (string, error) {
	backend, err := a.conn.Backend()
	if err != nil {
		return "", err
	}

	ctx, cancel := a.withTimeout(ctx)
	defer cancel()

	id, err := backend.Insert(ctx, collection, stamp(doc, a.now()))
	if err != nil {
		return "", apperrors.NewStorageError("insert into", collection, err)
	}

	a.logger.Debug("document created", zap.String("collection", collection), zap.String("id", id))
	return id, nil
}

// EnsureDocument inserts doc under a caller-chosen id unless that id is
// already taken. It reports whether a new document was written.
func (a *Accessor) EnsureDocument(ctx context.Context, collection, id string, doc Document) (bool, error) {
	backend, err := a.conn.Backend()
	if err != nil {
		return false, err
	}

	ctx, cancel := a.withTimeout(ctx)
	defer cancel()

	inserted, err := backend.InsertIfAbsent(ctx, collection, id, stamp(doc, a.now()))
	if err != nil {
		return false, apperrors.NewStorageError("upsert into", collection, err)
	}
	return inserted, nil
}

// GetDocuments returns every document matching filter in store-native order.
func (a *Accessor) GetDocuments(ctx context.Context, collection string, filter Filter, projection Projection) ([]Document, error) {
	backend, err := a.conn.Backend()
	if err != nil {
		return nil, err
	}

	ctx, cancel := a.withTimeout(ctx)
	defer cancel()

	if filter == nil {
		filter = Filter{}
	}
	docs, err := backend.Find(ctx, collection, filter, projection)
	if err != nil {
		return nil, apperrors.NewStorageError("find in", collection, err)
	}
	return docs, nil
}

func (a *Accessor) CountDocuments(ctx context.Context, collection string, filter Filter) (int64, error) {
	backend, err := a.conn.Backend()
	if err != nil {
		return 0, err
	}

	ctx, cancel := a.withTimeout(ctx)
	defer cancel()

	if filter == nil {
		filter = Filter{}
	}
	n, err := backend.Count(ctx, collection, filter)
	if err != nil {
		return 0, apperrors.NewStorageError("count", collection, err)
	}
	return n, nil
}

// CollectionNames lists at most limit collection names; limit <= 0 lists all.
func (a *Accessor) CollectionNames(ctx context.Context, limit int) ([]string, error) {
	backend, err := a.conn.Backend()
	if err != nil {
		return nil, err
	}

	ctx, cancel := a.withTimeout(ctx)
	defer cancel()

	names, err := backend.CollectionNames(ctx)
	if err != nil {
		return nil, apperrors.NewStorageError("list collections", "", err)
	}
	if limit > 0 && len(names) > limit {
		names = names[:limit]
	}
	return names, nil
}

type Status struct {
	Available bool
	Backend   string
	Database  string
	Reason    string
}

// Status describes the connection without touching the backend.
func (a *Accessor) Status() Status {
	backend, err := a.conn.Backend()
	if err != nil {
		return Status{Reason: a.conn.Reason().Error()}
	}
	s := Status{Available: true, Backend: backend.Name()}
	if named, ok := backend.(interface{ Database() string }); ok {
		s.Database = named.Database()
	}
	return s
}
