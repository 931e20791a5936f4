package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"innovation_showcase/internal/models"

	"github.com/goccy/go-json"
)

type ProjectSQLite struct {
	db *sql.DB
}

func NewProjectSQLite(db *sql.DB) *ProjectSQLite {
	return &ProjectSQLite{db: db}
}

var _ Projects = (*ProjectSQLite)(nil)

const (
	insertProjectSQL = `
		INSERT INTO projects (id, user_id, title, description, category, tags, video_link, image_url, status, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	selectProjectColumns = `SELECT id, user_id, title, description, category, tags, video_link, image_url, status, created_at FROM projects`
	selectProjectByIDSQL = selectProjectColumns + ` WHERE id = ?`

	// rowid keeps insertion order
	orderProjectsSQL = ` ORDER BY rowid ASC`

	updateProjectStatusSQL = `UPDATE projects SET status = ? WHERE id = ?`

	countProjectsByStatusSQL = `SELECT status, COUNT(*) FROM projects GROUP BY status`
)

// marshalTags converts the slice to a JSON string; nil becomes "[]".
func marshalTags(tags []string) (string, error) {
	if tags == nil {
		tags = []string{}
	}
	b, err := json.Marshal(tags)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// unmarshalTags parses a JSON string into a non-nil slice.
func unmarshalTags(s string) ([]string, error) {
	tags := []string{}
	if s == "" {
		return tags, nil
	}
	if err := json.Unmarshal([]byte(s), &tags); err != nil {
		return nil, err
	}
	return tags, nil
}

func nullString(p *string) sql.NullString {
	if p == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *p, Valid: true}
}

func stringPtr(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	s := ns.String
	return &s
}

// Create inserts a project row.
func (r *ProjectSQLite) Create(ctx context.Context, p models.Project) error {
	tags, err := marshalTags(p.Tags)
	if err != nil {
		return fmt.Errorf("marshal tags: %w", err)
	}
	created := p.CreatedAt
	if created.IsZero() {
		created = time.Now()
	}
	_, err = r.db.ExecContext(ctx, insertProjectSQL,
		p.ID,
		p.UserID,
		p.Title,
		p.Description,
		p.Category,
		tags,
		nullString(p.VideoLink),
		nullString(p.ImageURL),
		string(p.Status),
		created.UTC(),
	)
	if err != nil {
		return fmt.Errorf("insert project %q: %w", p.ID, err)
	}
	return nil
}

// List returns projects in insertion order, optionally filtered by status.
func (r *ProjectSQLite) List(ctx context.Context, f ProjectFilter) ([]models.Project, error) {
	q := selectProjectColumns
	var args []any
	if f.Status != "" {
		q += ` WHERE status = ?`
		args = append(args, string(f.Status))
	}
	q += orderProjectsSQL

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	defer rows.Close()

	out := make([]models.Project, 0, 16)
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	return out, nil
}

// GetByID returns ErrNotFound if the project does not exist.
func (r *ProjectSQLite) GetByID(ctx context.Context, id string) (*models.Project, error) {
	return getProject(ctx, r.db, id)
}

// SetStatus updates a single row inside a transaction and reads it back.
func (r *ProjectSQLite) SetStatus(ctx context.Context, id string, status models.ProjectStatus) (*models.Project, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin status update: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	res, err := tx.ExecContext(ctx, updateProjectStatusSQL, string(status), id)
	if err != nil {
		return nil, fmt.Errorf("update project %q status: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("rows affected for project %q: %w", id, err)
	}
	if n == 0 {
		return nil, ErrNotFound
	}

	p, err := getProject(ctx, tx, id)
	if err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit status update: %w", err)
	}
	return p, nil
}

// CountByStatus groups projects by status.
func (r *ProjectSQLite) CountByStatus(ctx context.Context) (map[models.ProjectStatus]int, error) {
	rows, err := r.db.QueryContext(ctx, countProjectsByStatusSQL)
	if err != nil {
		return nil, fmt.Errorf("count projects: %w", err)
	}
	defer rows.Close()

	out := make(map[models.ProjectStatus]int, 3)
	for rows.Next() {
		var (
			status string
			n      int
		)
		if err := rows.Scan(&status, &n); err != nil {
			return nil, fmt.Errorf("scan project count: %w", err)
		}
		out[models.ProjectStatus(status)] = n
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("count projects: %w", err)
	}
	return out, nil
}

type queryRower interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type scanner interface {
	Scan(dest ...any) error
}

func getProject(ctx context.Context, q queryRower, id string) (*models.Project, error) {
	p, err := scanProject(q.QueryRowContext(ctx, selectProjectByIDSQL, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

func scanProject(s scanner) (models.Project, error) {
	var (
		p         models.Project
		tags      string
		videoLink sql.NullString
		imageURL  sql.NullString
		status    string
	)
	if err := s.Scan(
		&p.ID,
		&p.UserID,
		&p.Title,
		&p.Description,
		&p.Category,
		&tags,
		&videoLink,
		&imageURL,
		&status,
		&p.CreatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Project{}, err
		}
		return models.Project{}, fmt.Errorf("scan project: %w", err)
	}

	parsed, err := unmarshalTags(tags)
	if err != nil {
		return models.Project{}, fmt.Errorf("decode tags of project %q: %w", p.ID, err)
	}
	p.Tags = parsed
	p.VideoLink = stringPtr(videoLink)
	p.ImageURL = stringPtr(imageURL)
	p.Status = models.ProjectStatus(status)
	p.CreatedAt = p.CreatedAt.UTC()
	return p, nil
}
