package postgres

import (
	"context"
	"embed"
	"fmt"
	"io/fs"

	"github.com/pressly/goose/v3"
	"gorm.io/gorm"
)

//go:embed migrations/*.sql
var embedMigrations embed.FS

// MigrationResult describes one applied migration.
type MigrationResult struct {
	Version int64
	Source  string
}

func newProvider(db *gorm.DB) (*goose.Provider, error) {
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	fsys, err := fs.Sub(embedMigrations, "migrations")
	if err != nil {
		return nil, err
	}
	return goose.NewProvider(goose.DialectPostgres, sqlDB, fsys)
}

// Migrate applies every pending schema migration.
//
// Example:
//
//	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
//	...
//	applied, err := postgres.Migrate(ctx, db)
func Migrate(ctx context.Context, db *gorm.DB) ([]MigrationResult, error) {
	provider, err := newProvider(db)
	if err != nil {
		return nil, fmt.Errorf("prepare migrations: %w", err)
	}

	results, err := provider.Up(ctx)
	if err != nil {
		return nil, fmt.Errorf("apply migrations: %w", err)
	}

	applied := make([]MigrationResult, 0, len(results))
	for _, r := range results {
		applied = append(applied, MigrationResult{Version: r.Source.Version, Source: r.Source.Path})
	}
	return applied, nil
}

// SchemaVersion reports the highest applied migration version.
func SchemaVersion(ctx context.Context, db *gorm.DB) (int64, error) {
	provider, err := newProvider(db)
	if err != nil {
		return 0, err
	}
	return provider.GetDBVersion(ctx)
}
