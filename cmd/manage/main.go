// Command manage runs one-off administration tasks against the ParcelMyBox
// database:
//
//	manage migrate
//	manage create-user -email a@b.c -username alice -password secret123 [-role staff]
//	manage mark-overdue
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"parcelmybox/cmd"
	"parcelmybox/internal/adapters/out/postgres"
	"parcelmybox/internal/core/application/usecases/commands"
	"parcelmybox/internal/core/domain/model/kernel"
	"parcelmybox/internal/core/domain/model/user"

	"github.com/labstack/gommon/log"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	configs, err := cmd.LoadConfig(".env")
	if err != nil {
		log.Fatalf("Error loading configuration: %v", err)
	}
	logger := cmd.NewLogger(configs, os.Stderr)

	if err = run(configs, logger, configs.DSN(), os.Args[1], os.Args[2:]); err != nil {
		log.Fatalf("%v", err)
	}
}

// run executes one task. Connections are closed before it returns, so main can
// exit on the error afterwards.
func run(configs cmd.Config, logger *slog.Logger, dsn, task string, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	gormDB, err := postgres.Open(dsn)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer func() {
		if sqlDB, err := gormDB.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}()

	switch task {
	case "migrate":
		applied, err := postgres.Migrate(ctx, gormDB)
		if err != nil {
			return fmt.Errorf("migrate database: %w", err)
		}
		version, err := postgres.SchemaVersion(ctx, gormDB)
		if err != nil {
			return fmt.Errorf("read schema version: %w", err)
		}
		fmt.Printf("applied %d migration(s), schema version %d\n", len(applied), version)
		return nil

	case "create-user", "mark-overdue":
		app, err := cmd.NewCompositionRoot(ctx, configs, gormDB, logger)
		if err != nil {
			return fmt.Errorf("wire application: %w", err)
		}
		defer func() {
			if err := app.Close(); err != nil {
				logger.Error("Failed to close connections", "error", err)
			}
		}()

		if task == "create-user" {
			if err = createUser(ctx, app, args); err != nil {
				return fmt.Errorf("create user: %w", err)
			}
			return nil
		}
		return markOverdue(ctx, app)

	default:
		usage()
		return fmt.Errorf("unknown task %q", task)
	}
}

func markOverdue(ctx context.Context, app *cmd.CompositionRoot) error {
	command, err := commands.NewMarkOverdueBillingCommand(time.Now())
	if err != nil {
		return fmt.Errorf("mark overdue: %w", err)
	}
	result, err := app.CreateMarkOverdueBillingCommandHandler().Handle(ctx, command)
	if err != nil {
		return fmt.Errorf("mark overdue: %w", err)
	}
	fmt.Printf("marked %d bill(s) and %d invoice(s) overdue\n", result.Bills, result.Invoices)
	return nil
}

func createUser(ctx context.Context, app *cmd.CompositionRoot, args []string) error {
	fs := flag.NewFlagSet("create-user", flag.ExitOnError)
	email := fs.String("email", "", "email address")
	username := fs.String("username", "", "username")
	password := fs.String("password", "", "password, at least 8 characters")
	fullName := fs.String("full-name", "", "full name")
	phone := fs.String("phone", "", "phone number")
	roleName := fs.String("role", "customer", "customer, staff or admin")
	if err := fs.Parse(args); err != nil {
		return err
	}

	role, err := user.ParseRole(*roleName)
	if err != nil {
		return err
	}
	userID := kernel.NewUUID()
	command, err := commands.NewRegisterUserCommand(userID, *email, *username, *password, *fullName, *phone, role)
	if err != nil {
		return err
	}
	if err = app.CreateRegisterUserCommandHandler().Handle(ctx, command); err != nil {
		return err
	}
	fmt.Printf("created %s user %s (%s)\n", role, *username, userID)
	return nil
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: manage <migrate|create-user|mark-overdue> [flags]")
}
