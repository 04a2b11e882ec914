package db

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	_ "github.com/lib/pq"

	"saylani-fulfillment/internal/log"
)

// DB wraps the database connection
type DB struct {
	*sql.DB
}

// New opens a Postgres connection from the provided connection string.
// Hosted providers usually require TLS; when the first ping fails and the
// string does not pin an sslmode, one retry is made with sslmode=disable
// for local databases.
func New(ctx context.Context, connectionString string) (*DB, error) {
	if connectionString == "" {
		return nil, fmt.Errorf("database connection string is required")
	}
	logger := log.WithComponent("db")

	sqlDB, err := sql.Open("postgres", connectionString)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := ping(ctx, sqlDB); err != nil {
		if strings.Contains(strings.ToLower(connectionString), "sslmode") {
			sqlDB.Close()
			return nil, fmt.Errorf("failed to ping database: %w", err)
		}
		logger.Warn().Err(err).Msg("retrying database connection with SSL disabled")
		sqlDB.Close()
		sqlDB, err = sql.Open("postgres", withSSLDisabled(connectionString))
		if err != nil {
			return nil, fmt.Errorf("failed to open database: %w", err)
		}
		if err := ping(ctx, sqlDB); err != nil {
			sqlDB.Close()
			return nil, fmt.Errorf("failed to ping database: %w", err)
		}
	}

	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(2)
	sqlDB.SetConnMaxIdleTime(5 * time.Minute)

	return &DB{DB: sqlDB}, nil
}

func ping(ctx context.Context, sqlDB *sql.DB) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	return sqlDB.PingContext(ctx)
}

func withSSLDisabled(connectionString string) string {
	if strings.Contains(connectionString, "?") {
		return connectionString + "&sslmode=disable"
	}
	return connectionString + "?sslmode=disable"
}

// HealthCheck verifies the database connection is healthy
func (db *DB) HealthCheck(ctx context.Context) error {
	return db.PingContext(ctx)
}

// Close closes the database connection
func (db *DB) Close() error {
	return db.DB.Close()
}

// RunMigrations applies every not-yet-applied NNN_name.sql file in
// migrationsDir, each in its own transaction.
func (db *DB) RunMigrations(ctx context.Context, migrationsDir string) error {
	logger := log.WithComponent("db")
	migrations, err := readMigrations(migrationsDir)
	if err != nil {
		return fmt.Errorf("failed to read migrations: %w", err)
	}

	if len(migrations) == 0 {
		logger.Info().Str("dir", migrationsDir).Msg("no migrations found")
		return nil
	}

	if err := db.createMigrationTable(ctx); err != nil {
		return fmt.Errorf("failed to create migration table: %w", err)
	}

	for _, migration := range migrations {
		applied, err := db.isMigrationApplied(ctx, migration.Number)
		if err != nil {
			return fmt.Errorf("failed to check migration status: %w", err)
		}
		if applied {
			logger.Debug().Int("version", migration.Number).Msg("migration already applied, skipping")
			continue
		}

		logger.Info().Int("version", migration.Number).Str("name", migration.Name).Msg("applying migration")

		tx, err := db.BeginTx(ctx, nil)
		if err != nil {
			return fmt.Errorf("failed to begin transaction: %w", err)
		}

		if _, err := tx.ExecContext(ctx, migration.SQL); err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to execute migration %d: %w", migration.Number, err)
		}

		if _, err := tx.ExecContext(ctx,
			"INSERT INTO schema_migrations (version, name) VALUES ($1, $2)",
			migration.Number,
			migration.Name,
		); err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to record migration: %w", err)
		}

		if err := tx.Commit(); err != nil {
			return fmt.Errorf("failed to commit migration: %w", err)
		}
	}

	return nil
}

// Migration represents a single migration file
type Migration struct {
	Number int
	Name   string
	SQL    string
}

// readMigrations reads all migration files from the migrations directory
func readMigrations(migrationsDir string) ([]Migration, error) {
	var migrations []Migration

	err := filepath.WalkDir(migrationsDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() || !strings.HasSuffix(path, ".sql") {
			return nil
		}

		filename := d.Name()
		// "001_initial_schema.sql" -> 1, "initial_schema"
		parts := strings.Split(filename, "_")
		if len(parts) < 2 {
			return nil
		}

		number, err := strconv.Atoi(parts[0])
		if err != nil {
			return nil
		}

		sqlBytes, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read migration file %s: %w", filename, err)
		}

		migrations = append(migrations, Migration{
			Number: number,
			Name:   strings.TrimSuffix(strings.Join(parts[1:], "_"), ".sql"),
			SQL:    string(sqlBytes),
		})

		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(migrations, func(i, j int) bool {
		return migrations[i].Number < migrations[j].Number
	})

	return migrations, nil
}

func (db *DB) createMigrationTable(ctx context.Context) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			name TEXT NOT NULL,
			applied_at TIMESTAMPTZ DEFAULT NOW()
		)
	`)
	return err
}

func (db *DB) isMigrationApplied(ctx context.Context, number int) (bool, error) {
	var count int
	err := db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM schema_migrations WHERE version = $1",
		number,
	).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
