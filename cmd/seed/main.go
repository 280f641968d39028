package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"holding/internal/config"
	"holding/internal/repository/postgres"
	"holding/internal/seed"
	serviceOwner "holding/internal/service/owner"
)

func main() {
	// Parse command-line flags
	dropTables := flag.Bool("drop-tables", false, "Drop all tables before seeding (fresh start)")
	schemaOnly := flag.Bool("schema-only", false, "Only set up schema, don't seed the item catalog")
	flag.Parse()

	// Load .env file
	_ = godotenv.Load()

	cfg := config.Load()

	// SAFETY: Prevent destructive operations in production
	if cfg.Environment == "prod" && *dropTables {
		log.Fatalf("BLOCKED: cannot run --drop-tables in production environment")
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	log.Printf("Seeding database (environment: %s, prefix: %s)", cfg.Environment, cfg.TablePrefix)

	ctx := context.Background()
	pool, err := postgres.CreateConnectionPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	tables := postgres.NewTableNames(cfg.TablePrefix)

	if *dropTables {
		log.Println("Dropping all tables...")
		if err := seed.DropAllTables(ctx, pool, tables); err != nil {
			log.Fatalf("Failed to drop tables: %v", err)
		}
		log.Println("Tables dropped")
	}

	log.Println("Ensuring database schema is up to date...")
	if err := seed.RunSchema(ctx, pool, tables, cfg.TablePrefix); err != nil {
		log.Fatalf("Failed to run schema: %v", err)
	}
	log.Println("Schema ready")

	if *schemaOnly {
		log.Println("Schema setup complete (schema-only mode)")
		return
	}

	// Create repositories and the owner service so the catalog rows get
	// a real system owner to hang off
	repoConfig := &postgres.RepositoryConfig{
		Pool:   pool,
		Tables: tables,
		Logger: logger,
	}
	ownerRepo := postgres.NewOwnerRepository(repoConfig)
	settingsRepo := postgres.NewUserSettingsRepository(repoConfig)
	itemRepo := postgres.NewItemRepository(repoConfig)

	ownerService := serviceOwner.NewOwnerService(ownerRepo, settingsRepo, logger)
	systemOwner, err := ownerService.EnsureSystemOwner(ctx)
	if err != nil {
		log.Fatalf("Failed to ensure system owner: %v", err)
	}

	seeder := seed.NewItemSeeder(itemRepo, logger)
	count, err := seeder.SeedFromFile(ctx, cfg.SeedFile, systemOwner.ID)
	if err != nil {
		log.Fatalf("Failed to seed item catalog: %v", err)
	}

	if count == 0 {
		log.Println("Item catalog already populated, nothing to do")
	} else {
		log.Printf("Seeded %d catalog items", count)
	}
}
