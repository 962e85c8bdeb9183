// Package sqlite provides a Remote implementation on a shared SQLite file.
// It is meant for a synced folder or network mount reachable by every device.
package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/ersonp/mens/internal/domain"
	"github.com/ersonp/mens/internal/domain/ports"
	"github.com/ersonp/mens/internal/infrastructure/config"
	"github.com/ersonp/mens/internal/infrastructure/parsers"
)

//go:embed migrations/*.sql
var migrations embed.FS

// timeNow returns the current time (can be mocked in tests).
var timeNow = time.Now

// Repository implements ports.Remote using SQLite. The token is ignored.
type Repository struct {
	db   *sql.DB
	path string
}

// NewRepository opens the database and applies pending migrations.
func NewRepository(ctx context.Context, cfg config.SQLiteConfig) (*Repository, error) {
	if cfg.Path == "" {
		return nil, errors.New("sqlite path is required")
	}

	if cfg.Path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(cfg.Path), 0o755); err != nil {
			return nil, fmt.Errorf("creating database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite database: %w", err)
	}

	// Each :memory: connection is a separate database.
	if cfg.Path == ":memory:" {
		db.SetMaxOpenConns(1)
	}

	for _, pragma := range []string{
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	} {
		if _, err := db.ExecContext(ctx, pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("applying %q: %w", pragma, err)
		}
	}

	r := &Repository{db: db, path: cfg.Path}
	if err := r.migrate(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return r, nil
}

func (r *Repository) migrate(ctx context.Context) error {
	goose.SetBaseFS(migrations)
	goose.SetLogger(goose.NopLogger())
	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("setting migration dialect: %w", err)
	}
	if err := goose.UpContext(ctx, r.db, "migrations"); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}
	return nil
}

// Close closes the database connection.
func (r *Repository) Close() error {
	return r.db.Close()
}

// Path returns the database file path.
func (r *Repository) Path() string {
	return r.path
}

// ListNoteFiles returns every file of the resource except the metadata file, ordered by name.
func (r *Repository) ListNoteFiles(ctx context.Context, _ string, resourceID string) ([]string, error) {
	if resourceID == "" {
		return nil, domain.ErrResourceNotConfig
	}
	if err := r.checkResource(ctx, r.db, resourceID); err != nil {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT content FROM files WHERE resource_id = ? AND name <> ? ORDER BY name`,
		resourceID, ports.MetaFileName)
	if err != nil {
		return nil, fmt.Errorf("querying files: %w", err)
	}
	defer rows.Close()

	contents := []string{}
	for rows.Next() {
		var content string
		if err := rows.Scan(&content); err != nil {
			return nil, fmt.Errorf("scanning file: %w", err)
		}
		contents = append(contents, content)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating files: %w", err)
	}
	return contents, nil
}

// CreateResource inserts a new resource holding only the metadata file.
func (r *Repository) CreateResource(ctx context.Context, _ string) (*ports.Resource, error) {
	id := uuid.New().String()
	resource := &ports.Resource{ID: id, Handle: "sqlite://" + r.path + "#" + id}
	now := timeNow().UnixMilli()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO resources (id, handle, created_at) VALUES (?, ?, ?)`,
		resource.ID, resource.Handle, now); err != nil {
		return nil, fmt.Errorf("inserting resource: %w", err)
	}
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO files (resource_id, name, content, updated_at) VALUES (?, ?, ?, ?)`,
		id, ports.MetaFileName, parsers.MetaContent, now); err != nil {
		return nil, fmt.Errorf("inserting metadata file: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing resource: %w", err)
	}
	return resource, nil
}

// ReplaceAllFiles swaps the resource's note files in one transaction.
func (r *Repository) ReplaceAllFiles(ctx context.Context, _ string, resourceID string, files map[string]string) error {
	if resourceID == "" {
		return domain.ErrResourceNotConfig
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if err := r.checkResource(ctx, tx, resourceID); err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM files WHERE resource_id = ? AND name <> ?`,
		resourceID, ports.MetaFileName); err != nil {
		return fmt.Errorf("clearing files: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO files (resource_id, name, content, updated_at) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	now := timeNow().UnixMilli()
	for name, content := range files {
		if name == ports.MetaFileName {
			continue
		}
		if _, err := stmt.ExecContext(ctx, resourceID, name, content, now); err != nil {
			return fmt.Errorf("inserting %s: %w", name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing files: %w", err)
	}
	return nil
}

type queryer interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func (r *Repository) checkResource(ctx context.Context, q queryer, resourceID string) error {
	var id string
	err := q.QueryRowContext(ctx, `SELECT id FROM resources WHERE id = ?`, resourceID).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("sqlite resource %s: %w", resourceID, domain.ErrResourceNotFound)
	}
	if err != nil {
		return fmt.Errorf("looking up resource: %w", err)
	}
	return nil
}
