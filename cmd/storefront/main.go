// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"

	"codeberg.org/oliverandrich/go-storefront/internal/catalog"
	"codeberg.org/oliverandrich/go-storefront/internal/config"
	"codeberg.org/oliverandrich/go-storefront/internal/database"
	"codeberg.org/oliverandrich/go-storefront/internal/repository"
	"codeberg.org/oliverandrich/go-storefront/internal/server"
	"codeberg.org/oliverandrich/go-storefront/internal/services/session"
	"github.com/urfave/cli/v3"
)

// Version information (set via ldflags during build)
var (
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	if err := newCommand().Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func newCommand() *cli.Command {
	return &cli.Command{
		Name:    "storefront",
		Usage:   "Online storefront with orders and accounts",
		Version: fmt.Sprintf("%s (built %s)", Version, BuildTime),
		Flags:   config.Flags(),
		Action:  server.Run,
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "Start the web server (default)",
				Action: server.Run,
			},
			{
				Name:  "products",
				Usage: "Manage the product catalog",
				Commands: []*cli.Command{
					{
						Name:      "load",
						Usage:     "Create or update products from a TOML file",
						ArgsUsage: "FILE",
						Action:    loadProducts,
					},
				},
			},
			{
				Name:  "migrate",
				Usage: "Manage the database schema",
				Commands: []*cli.Command{
					{Name: "up", Usage: "Apply all pending migrations", Action: migrate(nil)},
					{Name: "down", Usage: "Roll back the last migration", Action: migrate(database.MigrateDown)},
					{Name: "reset", Usage: "Roll back all migrations", Action: migrate(database.MigrateReset)},
					{Name: "version", Usage: "Print the schema version", Action: migrate(nil)},
				},
			},
			{
				Name:  "genkey",
				Usage: "Print a random session key",
				Action: func(_ context.Context, cmd *cli.Command) error {
					key, err := session.GenerateKey()
					if err != nil {
						return err
					}
					_, err = fmt.Fprintln(cmd.Root().Writer, key)
					return err
				},
			},
		},
	}
}

func loadProducts(ctx context.Context, cmd *cli.Command) error {
	if cmd.Args().Len() != 1 {
		return fmt.Errorf("expected exactly one FILE argument")
	}
	cfg := config.NewFromCLI(cmd)

	f, err := os.Open(cmd.Args().First())
	if err != nil {
		return err
	}
	defer func() {
		_ = f.Close()
	}()

	products, err := catalog.Parse(f)
	if err != nil {
		return err
	}

	db, err := database.Open(cfg.Database.DSN)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() {
		_ = database.Close(db)
	}()

	if err := catalog.Import(ctx, repository.New(db), products); err != nil {
		return err
	}
	_, err = fmt.Fprintf(cmd.Root().Writer, "loaded %d products\n", len(products))
	return err
}

// migrate runs op after the database was opened, which applies pending
// migrations, and prints the resulting schema version.
func migrate(op func(*sql.DB) error) cli.ActionFunc {
	return func(_ context.Context, cmd *cli.Command) error {
		cfg := config.NewFromCLI(cmd)

		db, err := database.Open(cfg.Database.DSN)
		if err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}
		defer func() {
			_ = database.Close(db)
		}()

		if op != nil {
			if err := op(db.DB); err != nil {
				return err
			}
		}

		version, err := database.Version(db.DB)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(cmd.Root().Writer, "schema version %d\n", version)
		return err
	}
}
