package seed

import (
	"context"
	_ "embed"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"go.yaml.in/yaml/v3"

	"gayo/internal/domain"
	apperrors "gayo/internal/errors"
	"gayo/internal/schema"
)

//go:embed seed_menu.yaml
var defaultCatalogue []byte

type Entry struct {
	Key  string
	Item domain.CafeMenuItem
}

type catalogueItem struct {
	Key         string  `yaml:"key"`
	Name        string  `yaml:"name"`
	Category    string  `yaml:"category"`
	Description *string `yaml:"description"`
	Size        *string `yaml:"size"`
	Price       int     `yaml:"price"`
	Available   *bool   `yaml:"available"`
}

// ParseCatalogue decodes a YAML seed list and validates every item. Keys
// must be present and unique.
func ParseCatalogue(data []byte) ([]Entry, error) {
	var raw []catalogueItem
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing seed catalogue: %w", err)
	}

	entries := make([]Entry, 0, len(raw))
	seen := make(map[string]bool, len(raw))
	for i, r := range raw {
		if r.Key == "" {
			return nil, fmt.Errorf("seed item %d: missing key", i)
		}
		if seen[r.Key] {
			return nil, fmt.Errorf("seed item %d: duplicate key %q", i, r.Key)
		}
		seen[r.Key] = true

		item := domain.CafeMenuItem{
			Name:        r.Name,
			Category:    domain.MenuCategory(r.Category),
			Description: r.Description,
			Price:       r.Price,
			Available:   true,
		}
		if r.Size != nil {
			size := domain.MenuSize(*r.Size)
			item.Size = &size
		}
		if r.Available != nil {
			item.Available = *r.Available
		}

		if err := schema.ValidateMenuItem(item); err != nil {
			return nil, fmt.Errorf("seed item %q: %w", r.Key, err)
		}
		entries = append(entries, Entry{Key: r.Key, Item: item})
	}

	return entries, nil
}

// DefaultCatalogue is the embedded seven item opening menu.
func DefaultCatalogue() ([]Entry, error) {
	return ParseCatalogue(defaultCatalogue)
}

type MenuStore interface {
	Count(ctx context.Context) (int64, error)
	InsertSeed(ctx context.Context, key string, item domain.CafeMenuItem) (bool, error)
}

type Seeder struct {
	repo    MenuStore
	entries []Entry
	logger  *zap.Logger
}

func NewSeeder(repo MenuStore, entries []Entry, logger *zap.Logger) *Seeder {
	return &Seeder{
		repo:    repo,
		entries: entries,
		logger:  logger,
	}
}

// Seed writes the catalogue when the menu collection is empty and returns
// how many documents it inserted. An unavailable store is not an error.
// Inserts are keyed by the entry key, so seeders racing on the emptiness
// check cannot write the same item twice.
func (s *Seeder) Seed(ctx context.Context) (int, error) {
	count, err := s.repo.Count(ctx)
	if err != nil {
		if errors.Is(err, apperrors.ErrStoreUnavailable) {
			s.logger.Info("skipping menu seed, document store unavailable")
			return 0, nil
		}
		return 0, fmt.Errorf("counting menu items: %w", err)
	}

	if count > 0 {
		s.logger.Debug("menu already seeded", zap.Int64("count", count))
		return 0, nil
	}

	inserted := 0
	for _, e := range s.entries {
		ok, err := s.repo.InsertSeed(ctx, e.Key, e.Item)
		if err != nil {
			return inserted, fmt.Errorf("seeding %q: %w", e.Key, err)
		}
		if ok {
			inserted++
		}
	}

	s.logger.Info("menu seeded", zap.Int("inserted", inserted), zap.Int("catalogue", len(s.entries)))
	return inserted, nil
}
