// Package database turns DATABASE_URL into a store.Connection. The URL
// scheme picks the backend: mongodb:// and mongodb+srv:// use MongoDB,
// mysql:// a MySQL documents table and sqlite:// an embedded SQLite file.
package database

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"gayo/internal/config"
	"gayo/internal/infrastructure/mongo"
	"gayo/internal/infrastructure/mysql"
	"gayo/internal/infrastructure/sqlite"
	"gayo/internal/store"
	"gayo/internal/store/mongostore"
	"gayo/internal/store/sqlstore"
)

var ErrNotConfigured = errors.New("DATABASE_URL is not set")

type Kind string

const (
	KindMongo  Kind = "mongodb"
	KindMySQL  Kind = "mysql"
	KindSQLite Kind = "sqlite"
)

// ParseURL splits a DATABASE_URL into the backend kind and the driver
// specific address.
func ParseURL(raw string) (Kind, string, error) {
	raw = strings.TrimSpace(raw)
	switch {
	case raw == "":
		return "", "", ErrNotConfigured
	case strings.HasPrefix(raw, "mongodb://"), strings.HasPrefix(raw, "mongodb+srv://"):
		return KindMongo, raw, nil
	case strings.HasPrefix(raw, "mysql://"):
		return KindMySQL, strings.TrimPrefix(raw, "mysql://"), nil
	case strings.HasPrefix(raw, "sqlite://"):
		return KindSQLite, strings.TrimPrefix(raw, "sqlite://"), nil
	case strings.HasPrefix(raw, "sqlite:"):
		return KindSQLite, strings.TrimPrefix(raw, "sqlite:"), nil
	default:
		scheme, _, _ := strings.Cut(raw, ":")
		return "", "", fmt.Errorf("unsupported database scheme %q", scheme)
	}
}

// Connect never fails: any problem yields store.Unavailable so the process
// keeps serving in degraded mode.
func Connect(ctx context.Context, cfg config.DatabaseConfig, logger *zap.Logger) store.Connection {
	backend, err := open(ctx, cfg)
	if err != nil {
		logger.Warn("document store unavailable", zap.Error(err))
		return store.Unavailable(err)
	}

	logger.Info("document store connected", zap.String("backend", backend.Name()))
	return store.Connected(backend)
}

func open(ctx context.Context, cfg config.DatabaseConfig) (store.Backend, error) {
	kind, addr, err := ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	if cfg.ConnectTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.ConnectTimeout)
		defer cancel()
	}

	switch kind {
	case KindMongo:
		if cfg.Name == "" {
			return nil, errors.New("DATABASE_NAME is not set")
		}
		client, err := mongo.NewClient(ctx, addr, cfg)
		if err != nil {
			return nil, err
		}
		return mongostore.New(client, cfg.Name), nil

	case KindMySQL:
		db, err := mysql.NewConnection(ctx, addr, cfg)
		if err != nil {
			return nil, err
		}
		s := sqlstore.New(db, sqlstore.MySQL)
		if err := s.EnsureSchema(ctx); err != nil {
			db.Close()
			return nil, err
		}
		return s, nil

	case KindSQLite:
		db, err := sqlite.NewConnection(ctx, addr)
		if err != nil {
			return nil, err
		}
		s := sqlstore.New(db, sqlstore.SQLite)
		if err := s.EnsureSchema(ctx); err != nil {
			db.Close()
			return nil, err
		}
		return s, nil
	}

	return nil, fmt.Errorf("unsupported database kind %q", kind)
}
