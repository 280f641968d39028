package seed

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"

	"holding/internal/domain/models"
	"holding/internal/domain/repositories"
)

// ItemFile is the YAML shape of a catalog seed file.
type ItemFile struct {
	Items []ItemEntry `yaml:"items"`
}

// ItemEntry is one catalog item in the seed file.
type ItemEntry struct {
	Name        string   `yaml:"name"`
	Description string   `yaml:"description,omitempty"`
	Weight      *float64 `yaml:"weight,omitempty"`
	WeightUnit  string   `yaml:"weight_unit,omitempty"`
	Value       *float64 `yaml:"value,omitempty"`
	ValueUnit   string   `yaml:"value_unit,omitempty"`
	Containable bool     `yaml:"containable,omitempty"`
}

// ItemSeeder loads the base item catalog from YAML into the database.
type ItemSeeder struct {
	itemRepo repositories.ItemRepository
	logger   *slog.Logger
}

// NewItemSeeder creates a new item seeder
func NewItemSeeder(itemRepo repositories.ItemRepository, logger *slog.Logger) *ItemSeeder {
	return &ItemSeeder{
		itemRepo: itemRepo,
		logger:   logger,
	}
}

// SeedFromFile reads the YAML catalog and inserts every entry owned by
// the system owner. An already-populated catalog is left untouched so
// the seeder is safe to run at every startup.
func (s *ItemSeeder) SeedFromFile(ctx context.Context, path string, systemOwnerID int64) (int, error) {
	count, err := s.itemRepo.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("count items: %w", err)
	}
	if count > 0 {
		s.logger.Info("item catalog already seeded", "count", count)
		return 0, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("read seed file: %w", err)
	}

	var file ItemFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return 0, fmt.Errorf("parse seed file: %w", err)
	}

	items := make([]*models.Item, 0, len(file.Items))
	for _, entry := range file.Items {
		if entry.Name == "" {
			return 0, fmt.Errorf("seed entry without a name in %s", path)
		}
		items = append(items, entry.toModel(systemOwnerID))
	}

	if err := s.itemRepo.CreateBatch(ctx, items); err != nil {
		return 0, err
	}

	s.logger.Info("item catalog seeded", "count", len(items), "file", path)
	return len(items), nil
}

func (e ItemEntry) toModel(systemOwnerID int64) *models.Item {
	item := &models.Item{
		Name:        e.Name,
		Weight:      e.Weight,
		Value:       e.Value,
		Containable: e.Containable,
		CreatedByID: systemOwnerID,
	}
	if e.Description != "" {
		d := e.Description
		item.Description = &d
	}
	if e.WeightUnit != "" {
		u := e.WeightUnit
		item.WeightUnit = &u
	}
	if e.ValueUnit != "" {
		u := e.ValueUnit
		item.ValueUnit = &u
	}
	return item
}
