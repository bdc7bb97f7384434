package diagnostic

import (
	"context"
	"fmt"

	"gayo/internal/config"
	"gayo/internal/dto"
)

const (
	maxCollections  = 10
	maxErrorLength  = 50
	statusRunning   = "✅ Running"
	statusSet       = "✅ Set"
	statusNotSet    = "❌ Not Set"
	dbWorking       = "✅ Connected & Working"
	dbUninitialized = "⚠️  Available but not initialized"
	connConnected   = "Connected"
	connNone        = "Not Connected"
)

type Service struct {
	store StoreInspector
	db    config.DatabaseConfig
}

func NewService(store StoreInspector, db config.DatabaseConfig) *Service {
	return &Service{store: store, db: db}
}

// Diagnose reports store reachability and configuration presence. It never
// fails and never includes the configured values themselves.
func (s *Service) Diagnose(ctx context.Context) dto.DiagnosticResponse {
	resp := dto.DiagnosticResponse{
		Backend:          statusRunning,
		Database:         dbUninitialized,
		DatabaseURL:      presence(s.db.URL),
		DatabaseName:     presence(s.db.Name),
		ConnectionStatus: connNone,
		Collections:      []string{},
	}

	if !s.store.Status().Available {
		return resp
	}

	resp.ConnectionStatus = connConnected
	names, err := s.store.CollectionNames(ctx, maxCollections)
	if err != nil {
		resp.Database = fmt.Sprintf("⚠️  Connected but Error: %s", truncate(err.Error(), maxErrorLength))
		return resp
	}

	resp.Database = dbWorking
	resp.Collections = names
	return resp
}

func presence(v string) string {
	if v != "" {
		return statusSet
	}
	return statusNotSet
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
