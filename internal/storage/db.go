package storage

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path"
	"sort"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// MigrationPool is what the migration runner needs from a pool.
// *pgxpool.Pool satisfies it.
type MigrationPool interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

// PoolOptions tunes the connection pool. Zero values keep pgxpool defaults.
type PoolOptions struct {
	MaxConns        int32
	ApplicationName string
}

// Connect parses databaseURL, applies opts and pings the resulting pool.
func Connect(ctx context.Context, databaseURL string, opts PoolOptions) (*pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parsing database URL: %w", err)
	}
	if opts.MaxConns > 0 {
		cfg.MaxConns = opts.MaxConns
	}
	if opts.ApplicationName != "" {
		cfg.ConnConfig.RuntimeParams["application_name"] = opts.ApplicationName
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("creating pgxpool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}
	return pool, nil
}

const (
	ledgerDDL = `CREATE TABLE IF NOT EXISTS schema_migrations (
    version    TEXT        PRIMARY KEY,
    applied_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`
	ledgerLockSQL    = `SELECT pg_advisory_xact_lock($1)`
	ledgerAppliedSQL = `SELECT EXISTS (SELECT 1 FROM schema_migrations WHERE version = $1)`
	ledgerRecordSQL  = `INSERT INTO schema_migrations (version) VALUES ($1)`

	// migrationLockKey serialises migrations across API replicas sharing a database.
	migrationLockKey int64 = 0x77616e646572
)

// migration is one .sql file; its version is the file name without the extension.
type migration struct {
	version string
	sql     string
}

// RunMigrations applies every .sql file in migrationsDir that the
// schema_migrations ledger has not seen yet, in file name order.
// Each file runs in its own transaction together with its ledger row.
// It returns the number of files applied.
func RunMigrations(ctx context.Context, pool MigrationPool, migrationsDir string) (int, error) {
	migrations, err := loadMigrations(os.DirFS(migrationsDir))
	if err != nil {
		return 0, fmt.Errorf("loading migrations from %s: %w", migrationsDir, err)
	}
	if len(migrations) == 0 {
		return 0, nil
	}

	if err := inTx(ctx, pool, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx, ledgerDDL)
		return err
	}); err != nil {
		return 0, fmt.Errorf("creating migration ledger: %w", err)
	}

	applied := 0
	for _, m := range migrations {
		ran, err := apply(ctx, pool, m)
		if err != nil {
			return applied, fmt.Errorf("executing migration %s: %w", m.version, err)
		}
		if ran {
			applied++
		}
	}
	return applied, nil
}

func loadMigrations(fsys fs.FS) ([]migration, error) {
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return nil, err
	}

	var out []migration
	for _, e := range entries {
		if e.IsDir() || path.Ext(e.Name()) != ".sql" {
			continue
		}
		body, err := fs.ReadFile(fsys, e.Name())
		if err != nil {
			return nil, err
		}
		out = append(out, migration{version: strings.TrimSuffix(e.Name(), ".sql"), sql: string(body)})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].version < out[j].version })
	return out, nil
}

// apply runs m unless the ledger already lists it and reports whether it ran.
func apply(ctx context.Context, pool MigrationPool, m migration) (bool, error) {
	ran := false
	err := inTx(ctx, pool, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, ledgerLockSQL, migrationLockKey); err != nil {
			return fmt.Errorf("taking migration lock: %w", err)
		}

		var done bool
		if err := tx.QueryRow(ctx, ledgerAppliedSQL, m.version).Scan(&done); err != nil {
			return fmt.Errorf("checking ledger: %w", err)
		}
		if done {
			return nil
		}

		if _, err := tx.Exec(ctx, m.sql); err != nil {
			return err
		}
		if _, err := tx.Exec(ctx, ledgerRecordSQL, m.version); err != nil {
			return fmt.Errorf("recording version: %w", err)
		}
		ran = true
		return nil
	})
	if err != nil {
		return false, err
	}
	return ran, nil
}

// inTx runs fn in a transaction that is committed when fn succeeds and
// rolled back otherwise.
func inTx(ctx context.Context, pool MigrationPool, fn func(pgx.Tx) error) error {
	tx, err := pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	// Rollback after a successful commit is a no-op.
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}
