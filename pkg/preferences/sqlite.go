package preferences

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"path"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

//go:embed migrations/*.sql
var migrations embed.FS

type SQLiteRepository struct {
	db  *sql.DB
	now func() time.Time
}

var _ Repository = &SQLiteRepository{}

// NewSQLiteRepository opens the database at dsn and applies the embedded
// migrations in file name order.
func NewSQLiteRepository(ctx context.Context, dsn string) (*SQLiteRepository, error) {
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %v", err)
	}

	dir, err := migrations.ReadDir("migrations")
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to read migrations directory: %v", err)
	}

	for _, entry := range dir {
		if entry.IsDir() {
			continue
		}

		migrationPath := path.Join("migrations", entry.Name())
		migration, err := migrations.ReadFile(migrationPath)
		if err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to read migration %s: %v", migrationPath, err)
		}

		if _, err := db.ExecContext(ctx, string(migration)); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to execute migration %s: %v", migrationPath, err)
		}
	}

	return &SQLiteRepository{
		db:  db,
		now: time.Now,
	}, nil
}

func (r *SQLiteRepository) Close(ctx context.Context) error {
	return r.db.Close()
}

func (r *SQLiteRepository) Get(ctx context.Context, key string) (string, error) {
	q := `
	SELECT value FROM preferences
	WHERE key = ?;
	`
	var value string
	if err := r.db.QueryRowContext(ctx, q, key).Scan(&value); err != nil {
		if err == sql.ErrNoRows {
			return "", &ErrNotFound{Key: key}
		}
		return "", fmt.Errorf("failed to scan preference %s: %v", key, err)
	}
	return value, nil
}

func (r *SQLiteRepository) Set(ctx context.Context, key, value string) error {
	q := `
	INSERT OR REPLACE INTO preferences (key, value, updated_at)
	VALUES (?, ?, ?);
	`
	if _, err := r.db.ExecContext(ctx, q, key, value, r.now().UnixMilli()); err != nil {
		return fmt.Errorf("failed to save preference %s: %v", key, err)
	}
	return nil
}
