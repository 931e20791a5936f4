package service

import (
	"context"
	"strings"
	"time"

	"innovation_showcase/internal/models"
	"innovation_showcase/internal/repository"

	"github.com/google/uuid"
)

type CommentService struct {
	comments repository.Comments
	events   repository.Events
}

func NewCommentService(comments repository.Comments, events repository.Events) *CommentService {
	return &CommentService{comments: comments, events: events}
}

// Add appends a comment. The project id is only checked for presence.
func (s *CommentService) Add(ctx context.Context, in AddCommentInput) (*models.Comment, error) {
	projectID := strings.TrimSpace(in.ProjectID)
	content := strings.TrimSpace(in.Content)
	if projectID == "" || content == "" {
		return nil, models.NewValidationError("project_id and content are required")
	}

	c := models.Comment{
		ID:        uuid.NewString(),
		ProjectID: projectID,
		UserID:    in.AuthorID,
		Content:   content,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.comments.Add(ctx, c); err != nil {
		return nil, models.NewStorageError("add comment", err)
	}

	err := s.events.Append(ctx, models.AuditEvent{
		EventID:     uuid.NewString(),
		OccurredAt:  c.CreatedAt,
		Type:        models.EventCommentAdded,
		Description: "comment added",
		ActorID:     c.UserID,
		SubjectID:   c.ProjectID,
	})
	if err != nil {
		return nil, models.NewStorageError("append event", err)
	}
	return &c, nil
}

func (s *CommentService) ListForProject(ctx context.Context, projectID string) ([]models.Comment, error) {
	out, err := s.comments.ListByProject(ctx, projectID)
	if err != nil {
		return nil, models.NewStorageError("list comments", err)
	}
	if out == nil {
		out = []models.Comment{}
	}
	return out, nil
}
