package postgres

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
)

// NewDB подключается к хранилищу через database/sql драйвер: pgx или sqlite3
func NewDB(ctx context.Context, driver, dsn string) (*sqlx.DB, error) {
	dbCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	db, err := sqlx.ConnectContext(dbCtx, driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", driver, err)
	}

	if err = db.PingContext(dbCtx); err != nil {
		return nil, fmt.Errorf("failed to ping %s: %w", driver, err)
	}

	// sqlite не любит конкурентную запись
	if driver == "sqlite3" {
		db.SetMaxOpenConns(1)
	}

	slog.Info("connected to store", slog.String("driver", driver))

	return db, nil
}
