package seed

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"holding/internal/repository/postgres"
)

// RunSchema creates tables if they don't exist
func RunSchema(ctx context.Context, pool *pgxpool.Pool, tables *postgres.TableNames, tablePrefix string) error {
	createOwners := `
		CREATE TABLE IF NOT EXISTS ` + tables.Owners + ` (
			id BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
			external_id BIGINT NOT NULL,
			owner_type TEXT NOT NULL,
			user_name TEXT NOT NULL DEFAULT '',
			user_tag TEXT NOT NULL DEFAULT '',
			global_user_name TEXT NOT NULL DEFAULT '',
			primary_container_id BIGINT,
			guild_name TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ DEFAULT NOW(),
			updated_at TIMESTAMPTZ DEFAULT NOW(),
			UNIQUE(external_id, owner_type)
		)
	`
	if _, err := pool.Exec(ctx, createOwners); err != nil {
		return err
	}

	createUserSettings := `
		CREATE TABLE IF NOT EXISTS ` + tables.UserSettings + ` (
			owner_id BIGINT PRIMARY KEY REFERENCES ` + tables.Owners + `(id) ON DELETE CASCADE,
			ephemeral_container BOOLEAN NOT NULL DEFAULT TRUE,
			ephemeral_user BOOLEAN NOT NULL DEFAULT TRUE,
			ephemeral_item BOOLEAN NOT NULL DEFAULT TRUE,
			updated_at TIMESTAMPTZ DEFAULT NOW()
		)
	`
	if _, err := pool.Exec(ctx, createUserSettings); err != nil {
		return err
	}

	createItems := `
		CREATE TABLE IF NOT EXISTS ` + tables.Items + ` (
			id BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
			name TEXT NOT NULL,
			description TEXT,
			weight DOUBLE PRECISION,
			weight_unit TEXT,
			value DOUBLE PRECISION,
			value_unit TEXT,
			is_parent BOOLEAN NOT NULL DEFAULT FALSE,
			created_by_id BIGINT NOT NULL REFERENCES ` + tables.Owners + `(id),
			created_at TIMESTAMPTZ DEFAULT NOW(),
			updated_at TIMESTAMPTZ DEFAULT NOW()
		)
	`
	if _, err := pool.Exec(ctx, createItems); err != nil {
		return err
	}

	createContainers := `
		CREATE TABLE IF NOT EXISTS ` + tables.Containers + ` (
			id BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
			owner_id BIGINT NOT NULL REFERENCES ` + tables.Owners + `(id) ON DELETE CASCADE,
			name TEXT NOT NULL,
			description TEXT,
			kind TEXT,
			last_active_at TIMESTAMPTZ DEFAULT NOW(),
			created_at TIMESTAMPTZ DEFAULT NOW(),
			updated_at TIMESTAMPTZ DEFAULT NOW(),
			UNIQUE(owner_id, name)
		)
	`
	if _, err := pool.Exec(ctx, createContainers); err != nil {
		return err
	}

	createContainerItems := `
		CREATE TABLE IF NOT EXISTS ` + tables.ContainerItems + ` (
			id BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
			container_id BIGINT NOT NULL REFERENCES ` + tables.Containers + `(id) ON DELETE CASCADE,
			item_id BIGINT NOT NULL REFERENCES ` + tables.Items + `(id),
			quantity INTEGER NOT NULL DEFAULT 1,
			note TEXT,
			parent_id BIGINT REFERENCES ` + tables.ContainerItems + `(id) ON DELETE SET NULL,
			created_at TIMESTAMPTZ DEFAULT NOW(),
			updated_at TIMESTAMPTZ DEFAULT NOW()
		)
	`
	if _, err := pool.Exec(ctx, createContainerItems); err != nil {
		return err
	}

	indexes := []string{
		`CREATE INDEX IF NOT EXISTS idx_` + tablePrefix + `items_name ON ` + tables.Items + ` (LOWER(name))`,
		`CREATE INDEX IF NOT EXISTS idx_` + tablePrefix + `items_created_by ON ` + tables.Items + ` (created_by_id)`,
		`CREATE INDEX IF NOT EXISTS idx_` + tablePrefix + `containers_owner ON ` + tables.Containers + ` (owner_id, last_active_at DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_` + tablePrefix + `container_items_container ON ` + tables.ContainerItems + ` (container_id)`,
		`CREATE INDEX IF NOT EXISTS idx_` + tablePrefix + `container_items_parent ON ` + tables.ContainerItems + ` (parent_id)`,
	}

	for _, indexSQL := range indexes {
		if _, err := pool.Exec(ctx, indexSQL); err != nil {
			return err
		}
	}

	return nil
}

// DropAllTables drops all tables in reverse order (to respect foreign keys)
func DropAllTables(ctx context.Context, pool *pgxpool.Pool, tables *postgres.TableNames) error {
	drops := []string{
		tables.ContainerItems,
		tables.Containers,
		tables.Items,
		tables.UserSettings,
		tables.Owners,
	}
	for _, table := range drops {
		if _, err := pool.Exec(ctx, "DROP TABLE IF EXISTS "+table+" CASCADE"); err != nil {
			return err
		}
	}
	return nil
}
