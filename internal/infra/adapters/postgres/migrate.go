package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/pressly/goose/v3"

	"github.com/qrave1/RoomSync/internal/infra/adapters/postgres/migrations"
)

// Migrate выполняет goose команду (up, down, status...) над встроенными миграциями
func Migrate(ctx context.Context, db *sql.DB, driver, command string, args ...string) error {
	goose.SetBaseFS(migrations.MigrationsFS)

	if err := goose.SetDialect(dialect(driver)); err != nil {
		return fmt.Errorf("goose: set dialect: %w", err)
	}

	if err := goose.RunContext(ctx, command, db, ".", args...); err != nil {
		return fmt.Errorf("goose: %s: %w", command, err)
	}

	return nil
}

func dialect(driver string) string {
	if driver == "sqlite3" {
		return "sqlite3"
	}

	return "postgres"
}
