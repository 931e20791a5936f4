package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"innovation_showcase/internal/models"
)

var (
	// ErrNotFound is returned when a keyed record does not exist.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate is returned when a unique field is already taken.
	ErrDuplicate = errors.New("duplicate record")
)

// Users lookups return (nil, nil) when no user matches.
type Users interface {
	Create(ctx context.Context, u models.User) error
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
}

// ProjectFilter narrows List. A zero Status matches every project.
type ProjectFilter struct {
	Status models.ProjectStatus
}

type Projects interface {
	Create(ctx context.Context, p models.Project) error
	List(ctx context.Context, f ProjectFilter) ([]models.Project, error)
	GetByID(ctx context.Context, id string) (*models.Project, error)
	// SetStatus atomically updates one record and returns it.
	SetStatus(ctx context.Context, id string, status models.ProjectStatus) (*models.Project, error)
	CountByStatus(ctx context.Context) (map[models.ProjectStatus]int, error)
}

type Comments interface {
	Add(ctx context.Context, c models.Comment) error
	ListByProject(ctx context.Context, projectID string) ([]models.Comment, error)
}

type Events interface {
	Append(ctx context.Context, e models.AuditEvent) error
	List(ctx context.Context, from, to time.Time, typ string) ([]models.AuditEvent, error)
}

type Repository struct {
	Users    Users
	Projects Projects
	Comments Comments
	Events   Events
}

// NewRepository builds the SQLite-backed repositories.
func NewRepository(db *sql.DB) *Repository {
	return &Repository{
		Users:    NewUserSQLite(db),
		Projects: NewProjectSQLite(db),
		Comments: NewCommentSQLite(db),
		Events:   NewEventSQLite(db),
	}
}

// isUniqueViolation matches SQLite's constraint error text.
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
