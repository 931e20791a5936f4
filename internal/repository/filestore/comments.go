package filestore

import (
	"context"
	"time"

	"innovation_showcase/internal/models"
	"innovation_showcase/internal/repository"
)

// commentRecord is the comments.json shape.
type commentRecord struct {
	ID        string    `json:"id"`
	ProjectID string    `json:"projectId"`
	UserID    string    `json:"userId"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
}

func (r commentRecord) toModel() models.Comment {
	return models.Comment{
		ID:        r.ID,
		ProjectID: r.ProjectID,
		UserID:    r.UserID,
		Content:   r.Content,
		CreatedAt: r.CreatedAt,
	}
}

type Comments struct {
	c *collection[commentRecord]
}

var _ repository.Comments = (*Comments)(nil)

func NewComments(dir string) (*Comments, error) {
	c, err := newCollection[commentRecord](dir, commentsFile)
	if err != nil {
		return nil, err
	}
	return &Comments{c: c}, nil
}

func (s *Comments) Add(_ context.Context, cm models.Comment) error {
	if cm.CreatedAt.IsZero() {
		cm.CreatedAt = time.Now()
	}
	return s.c.update(func(comments []commentRecord) ([]commentRecord, error) {
		return append(comments, commentRecord{
			ID:        cm.ID,
			ProjectID: cm.ProjectID,
			UserID:    cm.UserID,
			Content:   cm.Content,
			CreatedAt: cm.CreatedAt.UTC(),
		}), nil
	})
}

func (s *Comments) ListByProject(_ context.Context, projectID string) ([]models.Comment, error) {
	out := make([]models.Comment, 0, 8)
	err := s.c.view(func(comments []commentRecord) error {
		for _, cm := range comments {
			if cm.ProjectID == projectID {
				out = append(out, cm.toModel())
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
