// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"codeberg.org/oliverandrich/go-storefront/internal/database"
	"codeberg.org/oliverandrich/go-storefront/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newCommand()
	cmd.Writer = &out
	err := cmd.Run(context.Background(), append([]string{"storefront"}, args...))
	return out.String(), err
}

func TestProductsLoad(t *testing.T) {
	dir := t.TempDir()
	dsn := filepath.Join(dir, "shop.db")
	file := filepath.Join(dir, "products.toml")
	require.NoError(t, os.WriteFile(file, []byte(`
[[products]]
name = "Mug"
price = 1250
quantity = 20

[[products]]
name = "Teapot"
price = 3000
quantity = 5
`), 0o600))

	out, err := run(t, "--database-dsn", dsn, "products", "load", file)
	require.NoError(t, err)
	assert.Contains(t, out, "loaded 2 products")

	// Loading again updates instead of duplicating
	_, err = run(t, "--database-dsn", dsn, "products", "load", file)
	require.NoError(t, err)

	db, err := database.Open(dsn)
	require.NoError(t, err)
	defer func() {
		_ = db.Close()
	}()
	products, err := repository.New(db).ListProducts(context.Background())
	require.NoError(t, err)
	assert.Len(t, products, 2)
}

func TestProductsLoad_MissingArgument(t *testing.T) {
	_, err := run(t, "--database-dsn", filepath.Join(t.TempDir(), "shop.db"), "products", "load")

	assert.Error(t, err)
}

func TestMigrateVersion(t *testing.T) {
	out, err := run(t, "--database-dsn", filepath.Join(t.TempDir(), "shop.db"), "migrate", "version")

	require.NoError(t, err)
	assert.Contains(t, out, "schema version 4")
}

func TestGenKey(t *testing.T) {
	out, err := run(t, "genkey")

	require.NoError(t, err)
	assert.Len(t, bytes.TrimSpace([]byte(out)), 64)
}
