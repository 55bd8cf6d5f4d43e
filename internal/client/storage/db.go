// Package storage opens the local SQLite database, applies migrations and
// hands out the repositories built on top of it.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/arcanedex/internal/client/migrations"
	"github.com/dmitrijs2005/arcanedex/internal/client/repositories/arcanes"
	"github.com/dmitrijs2005/arcanedex/internal/client/repositories/preferences"
	"github.com/dmitrijs2005/arcanedex/internal/filex"
	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"
)

type Repositories struct {
	Preferences preferences.Repository
	Arcanes     arcanes.Repository
	DB          *sql.DB
}

func (r *Repositories) Close() error {
	return r.DB.Close()
}

func RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	goose.SetLogger(goose.NopLogger())

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("set goose dialect: %w", err)
	}

	return goose.UpContext(ctx, db, ".")
}

// withPragmas appends the connection pragmas to a file DSN. modernc.org/sqlite
// reads them from _pragma query parameters so every pooled connection gets them.
func withPragmas(dsn string) string {
	if dsn == ":memory:" || strings.Contains(dsn, "mode=memory") {
		return dsn
	}
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	pragmas := []string{
		"_pragma=journal_mode(WAL)",
		"_pragma=busy_timeout(30000)",
		"_pragma=synchronous(NORMAL)",
	}
	return dsn + sep + strings.Join(pragmas, "&")
}

// Open opens (creating if needed) the database at dsn and runs migrations.
func Open(ctx context.Context, dsn string) (*sql.DB, error) {
	if !strings.HasPrefix(dsn, "file:") && dsn != ":memory:" {
		if _, err := filex.EnsureParentDir(dsn); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", withPragmas(dsn))
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if dsn == ":memory:" {
		// each new connection would see its own empty database
		db.SetMaxOpenConns(1)
	}

	if err := RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate database: %w", err)
	}
	return db, nil
}

func InitDatabase(ctx context.Context, dsn string) (*Repositories, error) {
	db, err := Open(ctx, dsn)
	if err != nil {
		return nil, err
	}

	return &Repositories{
		Preferences: preferences.NewSQLiteRepository(db),
		Arcanes:     arcanes.NewSQLiteRepository(db),
		DB:          db,
	}, nil
}
