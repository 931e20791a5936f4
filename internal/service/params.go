package service

import (
	"time"

	"innovation_showcase/internal/models"
)

type RegisterInput struct {
	Username string
	Email    string
	Password string
	Role     string // "", "user" or "admin"
}

// LoginInput identifies the user by username or email.
type LoginInput struct {
	Username string
	Email    string
	Password string
}

// AuthResult is returned by a successful register or login.
type AuthResult struct {
	Token string            `json:"token"`
	User  models.PublicUser `json:"user"`
}

type CreateProjectInput struct {
	OwnerID     string
	Title       string
	Description string
	Category    string
	Tags        []string
	VideoLink   string // optional
	ImageURL    string // optional
}

type AddCommentInput struct {
	ProjectID string
	AuthorID  string
	Content   string
}

// ModerationInput carries the requested status and who asked for it.
type ModerationInput struct {
	ProjectID     string
	Status        string
	RequesterID   string
	RequesterRole models.Role
}

// ModerationQueue is what the admin feed pushes.
type ModerationQueue struct {
	Stats   models.ProjectStats `json:"stats"`
	Pending []models.Project    `json:"pending"`
}

// LogFilter supports history filtering by time range and type.
type LogFilter struct {
	From time.Time // inclusive; zero means no lower bound
	To   time.Time // inclusive; zero means no upper bound
	Type string    // "", "USER_REGISTERED", "PROJECT_SUBMITTED", "PROJECT_STATUS_CHANGED", "COMMENT_ADDED"
}
