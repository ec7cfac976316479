// Package sqlite provides a SQLite-backed implementation of the artifact repository port.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3" // Import the driver anonymously

	"github.com/srirammulukuntla11/vocalmaster/internal/core/domain"
)

// Adapter implements the artifact repository port for SQLite
type Adapter struct {
	db *sql.DB
}

// NewAdapter creates a connection and runs the schema migration
func NewAdapter(storagePath string) (*Adapter, error) {
	db, err := sql.Open("sqlite3", storagePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite db: %w", err)
	}
	// One connection keeps ":memory:" databases shared and serializes writers.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping sqlite db: %w", err)
	}

	adapter := &Adapter{db: db}
	if err := adapter.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	return adapter, nil
}

// Close ensures the DB connection is closed gracefully
func (a *Adapter) Close() error {
	return a.db.Close()
}

// Ping reports whether the database is reachable.
func (a *Adapter) Ping(ctx context.Context) error {
	return a.db.PingContext(ctx)
}

const artifactColumns = `id, path, music_key, tempo, style, duration, size_bytes, created_at, expires_at`

func (a *Adapter) Save(ctx context.Context, art domain.Artifact) error {
	query := `
		INSERT INTO artifacts (` + artifactColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			path=excluded.path,
			music_key=excluded.music_key,
			tempo=excluded.tempo,
			style=excluded.style,
			duration=excluded.duration,
			size_bytes=excluded.size_bytes,
			created_at=excluded.created_at,
			expires_at=excluded.expires_at;
	`
	if _, err := a.db.ExecContext(ctx, query,
		art.ID,
		art.Path,
		art.Key,
		art.Tempo,
		art.Style,
		art.Duration,
		art.SizeBytes,
		toUnix(art.CreatedAt),
		toUnix(art.ExpiresAt),
	); err != nil {
		return fmt.Errorf("failed to save artifact %s: %w", art.ID, err)
	}
	return nil
}

func (a *Adapter) GetByID(ctx context.Context, id string) (domain.Artifact, error) {
	row := a.db.QueryRowContext(ctx, "SELECT "+artifactColumns+" FROM artifacts WHERE id = ?", id)
	art, err := scanArtifact(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Artifact{}, domain.ErrNotFound
		}
		return domain.Artifact{}, fmt.Errorf("failed to load artifact: %w", err)
	}
	return art, nil
}

// ListExpired returns up to limit artifacts whose expiry is at or before now,
// oldest first. A limit below 1 means no limit.
func (a *Adapter) ListExpired(ctx context.Context, now time.Time, limit int) ([]domain.Artifact, error) {
	if limit < 1 {
		limit = -1
	}
	rows, err := a.db.QueryContext(ctx, `
		SELECT `+artifactColumns+`
		FROM artifacts
		WHERE expires_at > 0 AND expires_at <= ?
		ORDER BY expires_at ASC
		LIMIT ?
	`, toUnix(now), limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list expired artifacts: %w", err)
	}
	defer rows.Close()

	var out []domain.Artifact
	for rows.Next() {
		art, err := scanArtifact(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan artifact: %w", err)
		}
		out = append(out, art)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate artifacts: %w", err)
	}
	return out, nil
}

// Delete removes an artifact record. Deleting an unknown id is not an error.
func (a *Adapter) Delete(ctx context.Context, id string) error {
	if _, err := a.db.ExecContext(ctx, "DELETE FROM artifacts WHERE id = ?", id); err != nil {
		return fmt.Errorf("failed to delete artifact %s: %w", id, err)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanArtifact(s scanner) (domain.Artifact, error) {
	var art domain.Artifact
	var created, expires int64
	if err := s.Scan(
		&art.ID,
		&art.Path,
		&art.Key,
		&art.Tempo,
		&art.Style,
		&art.Duration,
		&art.SizeBytes,
		&created,
		&expires,
	); err != nil {
		return domain.Artifact{}, err
	}
	art.CreatedAt = fromUnix(created)
	art.ExpiresAt = fromUnix(expires)
	return art, nil
}

// Timestamps are stored as Unix nanoseconds so they compare numerically.
func toUnix(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}
	return t.UnixNano()
}

func fromUnix(n int64) time.Time {
	if n == 0 {
		return time.Time{}
	}
	return time.Unix(0, n).UTC()
}

func (a *Adapter) migrate() error {
	query := `
	CREATE TABLE IF NOT EXISTS artifacts (
		id TEXT PRIMARY KEY,
		path TEXT NOT NULL,
		music_key TEXT NOT NULL,
		tempo INTEGER NOT NULL,
		style TEXT NOT NULL,
		duration REAL NOT NULL,
		size_bytes INTEGER NOT NULL DEFAULT 0,
		created_at INTEGER NOT NULL,
		expires_at INTEGER NOT NULL DEFAULT 0
	);

	CREATE INDEX IF NOT EXISTS idx_artifacts_expires_at ON artifacts(expires_at);
	`
	_, err := a.db.Exec(query)
	return err
}
