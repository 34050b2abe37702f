package postgres

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/Gunvolt24/wb_cart/internal/ports"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

// Лимиты жизненного цикла соединений пула.
const (
	maxConnLifetime = time.Hour
	maxConnIdleTime = 30 * time.Minute
)

// NewPool — пул соединений по DSN; maxConns > 0 переопределяет размер пула.
// Ping в конце — fail-fast при недоступной БД.
func NewPool(ctx context.Context, dsn string, maxConns int32) (*pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}
	if maxConns > 0 {
		cfg.MaxConns = maxConns
	}
	cfg.MaxConnLifetime = maxConnLifetime
	cfg.MaxConnIdleTime = maxConnIdleTime

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("new pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return pool, nil
}

// Migrate — применяет goose-миграции из dir поверх существующего пула.
// log == nil — вывод goose отключён.
func Migrate(ctx context.Context, pool *pgxpool.Pool, dir string, log ports.Logger) error {
	if dir == "" {
		return errors.New("migrations dir is empty")
	}
	if st, err := os.Stat(dir); err != nil || !st.IsDir() {
		return fmt.Errorf("migrations dir not found: %q", dir)
	}

	if log == nil {
		goose.SetLogger(goose.NopLogger())
	} else {
		goose.SetLogger(gooseLogger{ctx: ctx, log: log})
	}
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("goose set dialect: %w", err)
	}

	db := stdlib.OpenDBFromPool(pool)
	defer db.Close()

	if err := goose.UpContext(ctx, db, dir); err != nil {
		return fmt.Errorf("goose up: %w", err)
	}
	return nil
}

// gooseLogger — вывод goose через логгер сервиса.
type gooseLogger struct {
	ctx context.Context
	log ports.Logger
}

func (g gooseLogger) Printf(format string, v ...any) { g.log.Infof(g.ctx, "goose: "+format, v...) }

// Fatalf — goose считает сообщение фатальным; процесс не завершаем, ошибку вернёт UpContext.
func (g gooseLogger) Fatalf(format string, v ...any) { g.log.Errorf(g.ctx, "goose: "+format, v...) }
