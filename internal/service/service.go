package service

import (
	"context"
	"time"

	"innovation_showcase/internal/cache"
	"innovation_showcase/internal/logger"
	"innovation_showcase/internal/models"
	"innovation_showcase/internal/repository"
)

// Authorization is the credential store: registration, login and token checks.
type Authorization interface {
	Register(ctx context.Context, in RegisterInput) (*AuthResult, error)
	Login(ctx context.Context, in LoginInput) (*AuthResult, error)
	ParseToken(accessToken string) (*Claims, error)
	Me(ctx context.Context, userID string) (*models.PublicUser, error)
	CreateAdmin(ctx context.Context, in RegisterInput) (*models.PublicUser, error)
}

// Projects covers submission and public/admin reads.
type Projects interface {
	Create(ctx context.Context, in CreateProjectInput) (*models.Project, error)
	ListApproved(ctx context.Context) ([]models.Project, error)
	ListAll(ctx context.Context, status string) ([]models.Project, error)
	Get(ctx context.Context, id string) (*models.Project, error)
	SeedSample(ctx context.Context) (bool, error)
}

// Comments is append-only.
type Comments interface {
	Add(ctx context.Context, in AddCommentInput) (*models.Comment, error)
	ListForProject(ctx context.Context, projectID string) ([]models.Comment, error)
}

// Moderation changes project status on behalf of an administrator.
type Moderation interface {
	SetStatus(ctx context.Context, in ModerationInput) (*models.Project, error)
	Approve(ctx context.Context, projectID, requesterID string, role models.Role) (*models.Project, error)
	Reject(ctx context.Context, projectID, requesterID string, role models.Role) (*models.Project, error)
}

// EventLog exposes the audit log with filtering access.
type EventLog interface {
	List(ctx context.Context, f LogFilter) ([]models.AuditEvent, error)
}

// Stats reports moderation queue figures. Run refreshes the project gauges
// until ctx is cancelled.
type Stats interface {
	GetStats(ctx context.Context) (models.ProjectStats, error)
	Queue(ctx context.Context) (ModerationQueue, error)
	Run(ctx context.Context, tick time.Duration)
}

// Service aggregates all sub-services.
type Service struct {
	Authorization
	Projects
	Comments
	Moderation
	EventLog
	Stats
}

// Deps carries what NewService needs besides the repositories.
type Deps struct {
	Auth  AuthOptions
	Cache cache.Projects
	Log   *logger.Logger
}

// NewService wires the repository layer into concrete services.
func NewService(repos *repository.Repository, deps Deps) *Service {
	projectCache := deps.Cache
	if projectCache == nil {
		projectCache = cache.Nop{}
	}
	return &Service{
		Authorization: NewAuthService(repos.Users, repos.Events, deps.Auth),
		Projects:      NewProjectService(repos.Projects, repos.Events, projectCache),
		Comments:      NewCommentService(repos.Comments, repos.Events),
		Moderation:    NewModerationService(repos.Projects, repos.Events, projectCache),
		EventLog:      NewEventLogService(repos.Events),
		Stats:         NewStatsService(repos.Projects, deps.Log),
	}
}
