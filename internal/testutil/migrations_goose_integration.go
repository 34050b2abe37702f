//go:build integration

package testutil

import (
	"context"
	"path/filepath"
	"runtime"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Gunvolt24/wb_cart/internal/repo/postgres"
)

// MigrationsDir — <repo_root>/migrations, вычисленный от расположения этого файла.
func MigrationsDir() string {
	_, thisFile, _, _ := runtime.Caller(0)
	return filepath.Clean(filepath.Join(filepath.Dir(thisFile), "..", "..", "migrations"))
}

// ApplyMigrations — схема kv_store в тестовой БД тем же путём, что и при старте сервиса.
func ApplyMigrations(ctx context.Context, pool *pgxpool.Pool) error {
	return postgres.Migrate(ctx, pool, MigrationsDir(), nil)
}
