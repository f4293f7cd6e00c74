// Package store provides PostgreSQL persistence for generation run settings.
package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jonathan/applyforge/internal/types"
)

// Store wraps a PostgreSQL connection pool.
type Store struct {
	pool *pgxpool.Pool
}

// Connect establishes a connection pool to the database.
func Connect(ctx context.Context, databaseURL string) (*Store, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &Store{pool: pool}, nil
}

// Close closes the connection pool.
func (s *Store) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// EnsureSchema creates the settings table when it does not exist yet.
func (s *Store) EnsureSchema(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS generation_settings (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			name TEXT NOT NULL,
			resume_data JSONB,
			jobs_data JSONB,
			document_type TEXT NOT NULL,
			style_name TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`)
	if err != nil {
		return fmt.Errorf("failed to ensure schema: %w", err)
	}
	return nil
}

// SettingSnapshot is one saved generation setup: the resume, the job list,
// and the run options at the moment a run started. Snapshots are append-only.
type SettingSnapshot struct {
	ID           uuid.UUID               `json:"id"`
	Name         string                  `json:"name"`
	ResumeData   *types.ParsedResumeData `json:"resumeData"`
	JobsData     []types.JobTarget       `json:"jobsData"`
	DocumentType types.DocumentType      `json:"documentType"`
	StyleName    string                  `json:"styleName"`
	CreatedAt    time.Time               `json:"createdAt"`
}

// SaveSetting inserts a new snapshot and returns its ID. Existing snapshots
// are never updated.
func (s *Store) SaveSetting(ctx context.Context, snapshot SettingSnapshot) (uuid.UUID, error) {
	resumeJSON, err := json.Marshal(snapshot.ResumeData)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to marshal resume data: %w", err)
	}
	jobsJSON, err := json.Marshal(snapshot.JobsData)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to marshal jobs data: %w", err)
	}

	var id uuid.UUID
	err = s.pool.QueryRow(ctx,
		`INSERT INTO generation_settings (name, resume_data, jobs_data, document_type, style_name)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id`,
		snapshot.Name, resumeJSON, jobsJSON, string(snapshot.DocumentType), snapshot.StyleName,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to save setting: %w", err)
	}
	return id, nil
}

// GetSetting retrieves one snapshot by ID. Returns nil when not found.
func (s *Store) GetSetting(ctx context.Context, id uuid.UUID) (*SettingSnapshot, error) {
	var snapshot SettingSnapshot
	var resumeJSON, jobsJSON []byte
	var documentType string

	err := s.pool.QueryRow(ctx,
		`SELECT id, name, resume_data, jobs_data, document_type, style_name, created_at
		 FROM generation_settings WHERE id = $1`,
		id,
	).Scan(&snapshot.ID, &snapshot.Name, &resumeJSON, &jobsJSON, &documentType, &snapshot.StyleName, &snapshot.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get setting: %w", err)
	}

	snapshot.DocumentType = types.DocumentType(documentType)
	if len(resumeJSON) > 0 {
		if err := json.Unmarshal(resumeJSON, &snapshot.ResumeData); err != nil {
			return nil, fmt.Errorf("failed to unmarshal resume data: %w", err)
		}
	}
	if len(jobsJSON) > 0 {
		if err := json.Unmarshal(jobsJSON, &snapshot.JobsData); err != nil {
			return nil, fmt.Errorf("failed to unmarshal jobs data: %w", err)
		}
	}
	return &snapshot, nil
}

// ListRecent retrieves snapshots most recent first.
func (s *Store) ListRecent(ctx context.Context, limit int) ([]SettingSnapshot, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.pool.Query(ctx,
		`SELECT id, name, resume_data, jobs_data, document_type, style_name, created_at
		 FROM generation_settings ORDER BY created_at DESC LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list settings: %w", err)
	}
	defer rows.Close()

	var snapshots []SettingSnapshot
	for rows.Next() {
		var snapshot SettingSnapshot
		var resumeJSON, jobsJSON []byte
		var documentType string
		if err := rows.Scan(&snapshot.ID, &snapshot.Name, &resumeJSON, &jobsJSON, &documentType, &snapshot.StyleName, &snapshot.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan setting: %w", err)
		}
		snapshot.DocumentType = types.DocumentType(documentType)
		if len(resumeJSON) > 0 {
			if err := json.Unmarshal(resumeJSON, &snapshot.ResumeData); err != nil {
				return nil, fmt.Errorf("failed to unmarshal resume data: %w", err)
			}
		}
		if len(jobsJSON) > 0 {
			if err := json.Unmarshal(jobsJSON, &snapshot.JobsData); err != nil {
				return nil, fmt.Errorf("failed to unmarshal jobs data: %w", err)
			}
		}
		snapshots = append(snapshots, snapshot)
	}
	return snapshots, rows.Err()
}

// ClearAll deletes every snapshot. User-triggered only.
func (s *Store) ClearAll(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, `DELETE FROM generation_settings`); err != nil {
		return fmt.Errorf("failed to clear settings: %w", err)
	}
	return nil
}
