// Package store is the document store accessor. Handlers never talk to a
// database driver directly: they receive an Accessor built on a Connection,
// which is either Connected to a Backend or Unavailable.
package store

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"time"

	apperrors "gayo/internal/errors"
)

// Document is a schemaless record as stored in a collection.
type Document map[string]any

// Filter selects documents by top-level field equality. An empty filter
// matches every document in the collection.
type Filter map[string]any

// Projection lists the top-level fields to return. A nil projection returns
// whole documents.
type Projection []string

// IDField is the key under which backends report a document's identifier.
const IDField = "_id"

type Backend interface {
	Name() string
	Insert(ctx context.Context, collection string, doc Document) (string, error)
	// InsertIfAbsent stores doc under id unless a document with that id exists.
	InsertIfAbsent(ctx context.Context, collection, id string, doc Document) (bool, error)
	Find(ctx context.Context, collection string, filter Filter, projection Projection) ([]Document, error)
	Count(ctx context.Context, collection string, filter Filter) (int64, error)
	CollectionNames(ctx context.Context) ([]string, error)
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}

// Connection is the outcome of establishing the store at startup.
type Connection struct {
	backend Backend
	reason  error
}

func Connected(backend Backend) Connection {
	return Connection{backend: backend}
}

func Unavailable(reason error) Connection {
	if reason == nil {
		reason = errors.New("no connection established")
	}
	return Connection{reason: reason}
}

func (c Connection) Available() bool {
	return c.backend != nil
}

// Backend returns the connected backend or an UnavailableError.
func (c Connection) Backend() (Backend, error) {
	if c.backend == nil {
		return nil, apperrors.NewUnavailableError(c.reason)
	}
	return c.backend, nil
}

// Reason is nil for a connected store.
func (c Connection) Reason() error {
	if c.backend != nil {
		return nil
	}
	return c.reason
}

func (c Connection) Close(ctx context.Context) error {
	if c.backend == nil {
		return nil
	}
	return c.backend.Close(ctx)
}

// CollectionName derives a collection name from an entity's Go type name.
func CollectionName(entity any) string {
	t := reflect.TypeOf(entity)
	for t != nil && t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t == nil {
		return ""
	}
	return strings.ToLower(t.Name())
}

func (d Document) clone() Document {
	out := make(Document, len(d)+2)
	for k, v := range d {
		out[k] = v
	}
	return out
}

// Project keeps the projected fields plus the document id.
func (d Document) Project(p Projection) Document {
	if p == nil {
		return d
	}
	out := make(Document, len(p)+1)
	if id, ok := d[IDField]; ok {
		out[IDField] = id
	}
	for _, field := range p {
		if v, ok := d[field]; ok {
			out[field] = v
		}
	}
	return out
}

func (f Filter) Matches(d Document) bool {
	for k, want := range f {
		got, ok := d[k]
		if !ok || !reflect.DeepEqual(normalizeNumber(got), normalizeNumber(want)) {
			return false
		}
	}
	return true
}

// normalizeNumber lets filters written with Go ints match numbers that came
// back from JSON as float64.
func normalizeNumber(v any) any {
	switch n := v.(type) {
	case int:
		return float64(n)
	case int32:
		return float64(n)
	case int64:
		return float64(n)
	case float32:
		return float64(n)
	default:
		return v
	}
}

func stamp(doc Document, now time.Time) Document {
	out := doc.clone()
	out["created_at"] = now
	out["updated_at"] = now
	return out
}
