package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"innovation_showcase/internal/cache"
	"innovation_showcase/internal/metrics"
	"innovation_showcase/internal/models"
	"innovation_showcase/internal/repository"

	"github.com/google/uuid"
)

// ModerationService applies admin decisions to projects.
type ModerationService struct {
	projects repository.Projects
	events   repository.Events
	cache    cache.Projects
}

func NewModerationService(projects repository.Projects, events repository.Events, c cache.Projects) *ModerationService {
	return &ModerationService{projects: projects, events: events, cache: c}
}

// statusChange is the metadata attached to PROJECT_STATUS_CHANGED events.
type statusChange struct {
	From models.ProjectStatus `json:"from"`
	To   models.ProjectStatus `json:"to"`
}

// SetStatus moves a project to in.Status. Only administrators may call it;
// any status may follow any other.
func (s *ModerationService) SetStatus(ctx context.Context, in ModerationInput) (*models.Project, error) {
	if in.RequesterRole != models.RoleAdmin {
		return nil, models.NewForbiddenError("admin access required")
	}
	status, ok := models.ParseProjectStatus(strings.ToLower(strings.TrimSpace(in.Status)))
	if !ok {
		return nil, models.NewValidationError("status must be pending, approved or rejected")
	}

	// Read for the audit trail only; the update below is the atomic step.
	before, err := s.projects.GetByID(ctx, in.ProjectID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, models.NewNotFoundError("project", in.ProjectID)
	}
	if err != nil {
		return nil, models.NewStorageError("get project", err)
	}

	updated, err := s.projects.SetStatus(ctx, in.ProjectID, status)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, models.NewNotFoundError("project", in.ProjectID)
	}
	if err != nil {
		return nil, models.NewStorageError("update project status", err)
	}

	metrics.ModerationDecisions.WithLabelValues(string(status)).Inc()
	_ = s.cache.InvalidateApproved(ctx)

	err = s.events.Append(ctx, models.AuditEvent{
		EventID:     uuid.NewString(),
		OccurredAt:  time.Now().UTC(),
		Type:        models.EventProjectStatusChanged,
		Description: fmt.Sprintf("project %q moved from %s to %s", updated.Title, before.Status, status),
		ActorID:     in.RequesterID,
		SubjectID:   updated.ID,
		Metadata:    statusChange{From: before.Status, To: status},
	})
	if err != nil {
		return nil, models.NewStorageError("append event", err)
	}
	return updated, nil
}

// Approve is SetStatus with status approved.
func (s *ModerationService) Approve(ctx context.Context, projectID, requesterID string, role models.Role) (*models.Project, error) {
	return s.SetStatus(ctx, ModerationInput{
		ProjectID: projectID, Status: string(models.StatusApproved),
		RequesterID: requesterID, RequesterRole: role,
	})
}

// Reject is SetStatus with status rejected.
func (s *ModerationService) Reject(ctx context.Context, projectID, requesterID string, role models.Role) (*models.Project, error) {
	return s.SetStatus(ctx, ModerationInput{
		ProjectID: projectID, Status: string(models.StatusRejected),
		RequesterID: requesterID, RequesterRole: role,
	})
}
