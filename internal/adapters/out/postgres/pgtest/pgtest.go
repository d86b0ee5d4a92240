// Package pgtest starts a throwaway PostgreSQL for integration tests and
// migrates it to the current schema.
package pgtest

import (
	"context"
	"fmt"
	"time"

	"parcelmybox/internal/adapters/out/postgres"
	"parcelmybox/internal/adapters/out/postgres/userrepo"
	"parcelmybox/internal/core/domain/model/kernel"
	"parcelmybox/internal/core/domain/model/user"

	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/gorm"
)

// Tables lists every table in dependency-safe truncation order.
var Tables = []string{
	"activity_entries",
	"support_requests",
	"pickup_requests",
	"invoice_lines",
	"invoices",
	"bills",
	"tracking_events",
	"shipments",
	"addresses",
	"users",
}

type Database struct {
	container *tcpostgres.PostgresContainer
	DB        *gorm.DB
	DSN       string
}

// Start runs postgres:15-alpine and applies the embedded migrations.
func Start(ctx context.Context) (*Database, error) {
	container, err := tcpostgres.Run(ctx,
		"postgres:15-alpine",
		tcpostgres.WithDatabase("testdb"),
		tcpostgres.WithUsername("testuser"),
		tcpostgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2)),
	)
	if err != nil {
		return nil, fmt.Errorf("start postgres container: %w", err)
	}

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		_ = container.Terminate(ctx)
		return nil, err
	}

	db, err := postgres.Open(dsn)
	if err != nil {
		_ = container.Terminate(ctx)
		return nil, err
	}

	if _, err = postgres.Migrate(ctx, db); err != nil {
		_ = container.Terminate(ctx)
		return nil, err
	}

	return &Database{container: container, DB: db, DSN: dsn}, nil
}

// Truncate empties every table while keeping the schema.
func (d *Database) Truncate(ctx context.Context) error {
	stmt := "TRUNCATE TABLE "
	for i, table := range Tables {
		if i > 0 {
			stmt += ", "
		}
		stmt += table
	}
	return d.DB.WithContext(ctx).Exec(stmt + " CASCADE").Error
}

func (d *Database) Terminate(ctx context.Context) error {
	if sqlDB, err := d.DB.DB(); err == nil {
		_ = sqlDB.Close()
	}
	return d.container.Terminate(ctx)
}

type noopTracker struct{}

func (noopTracker) TrackAggregate(kernel.UUID, any) {}

// SeedUser stores an active account so rows referencing users can be written.
func (d *Database) SeedUser(ctx context.Context, username string, role user.Role) (*user.User, error) {
	u, err := user.NewUser(kernel.NewUUID(), username+"@parcelmybox.test", username, "", "", "hash", role, time.Now())
	if err != nil {
		return nil, err
	}
	if err = userrepo.NewGormUserRepository(d.DB, noopTracker{}).Add(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}
