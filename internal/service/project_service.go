package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"innovation_showcase/internal/cache"
	"innovation_showcase/internal/models"
	"innovation_showcase/internal/repository"

	"github.com/google/uuid"
)

type ProjectService struct {
	projects repository.Projects
	events   repository.Events
	cache    cache.Projects
}

func NewProjectService(projects repository.Projects, events repository.Events, c cache.Projects) *ProjectService {
	return &ProjectService{projects: projects, events: events, cache: c}
}

// Create stores a new pending project owned by in.OwnerID.
func (s *ProjectService) Create(ctx context.Context, in CreateProjectInput) (*models.Project, error) {
	title := strings.TrimSpace(in.Title)
	description := strings.TrimSpace(in.Description)
	category := strings.TrimSpace(in.Category)
	if title == "" || description == "" || category == "" {
		return nil, models.NewValidationError("title, description and category are required")
	}
	if strings.TrimSpace(in.OwnerID) == "" {
		return nil, models.NewAuthError("owner is required")
	}

	p := models.Project{
		ID:          uuid.NewString(),
		UserID:      in.OwnerID,
		Title:       title,
		Description: description,
		Category:    category,
		Tags:        NormalizeTags(in.Tags),
		VideoLink:   optional(in.VideoLink),
		ImageURL:    optional(in.ImageURL),
		Status:      models.StatusPending,
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.projects.Create(ctx, p); err != nil {
		return nil, models.NewStorageError("create project", err)
	}

	err := s.events.Append(ctx, models.AuditEvent{
		EventID:     uuid.NewString(),
		OccurredAt:  p.CreatedAt,
		Type:        models.EventProjectSubmitted,
		Description: fmt.Sprintf("project %q submitted", p.Title),
		ActorID:     p.UserID,
		SubjectID:   p.ID,
	})
	if err != nil {
		return nil, models.NewStorageError("append event", err)
	}
	return &p, nil
}

// ListApproved returns the public listing. Cache failures fall back to storage.
func (s *ProjectService) ListApproved(ctx context.Context) ([]models.Project, error) {
	cached, gen, ok, err := s.cache.GetApproved(ctx)
	if err == nil && ok {
		return cached, nil
	}
	out, err := s.projects.List(ctx, repository.ProjectFilter{Status: models.StatusApproved})
	if err != nil {
		return nil, models.NewStorageError("list projects", err)
	}
	_ = s.cache.SetApproved(ctx, gen, out)
	return out, nil
}

// ListAll is the admin view; an empty status returns every project.
func (s *ProjectService) ListAll(ctx context.Context, status string) ([]models.Project, error) {
	var f repository.ProjectFilter
	if status = strings.ToLower(strings.TrimSpace(status)); status != "" {
		st, ok := models.ParseProjectStatus(status)
		if !ok {
			return nil, models.NewValidationError("status must be pending, approved or rejected")
		}
		f.Status = st
	}
	out, err := s.projects.List(ctx, f)
	if err != nil {
		return nil, models.NewStorageError("list projects", err)
	}
	return out, nil
}

func (s *ProjectService) Get(ctx context.Context, id string) (*models.Project, error) {
	p, err := s.projects.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, models.NewNotFoundError("project", id)
	}
	if err != nil {
		return nil, models.NewStorageError("get project", err)
	}
	return p, nil
}

// SeedSample inserts the demo project into an empty collection and reports
// whether it did.
func (s *ProjectService) SeedSample(ctx context.Context) (bool, error) {
	existing, err := s.projects.List(ctx, repository.ProjectFilter{})
	if err != nil {
		return false, models.NewStorageError("list projects", err)
	}
	if len(existing) > 0 {
		return false, nil
	}

	p := sampleProject()
	if err := s.projects.Create(ctx, p); err != nil {
		return false, models.NewStorageError("seed project", err)
	}
	_ = s.cache.InvalidateApproved(ctx)
	return true, nil
}

func sampleProject() models.Project {
	return models.Project{
		ID:     uuid.NewString(),
		UserID: "1",
		Title:  "Smart Home Automation System",
		Description: "An innovative IoT-based home automation system that allows users to control " +
			"their home appliances remotely using a mobile app. Features include energy monitoring, " +
			"security integration, and voice control capabilities.",
		Category:  "IoT",
		Tags:      []string{"IoT", "Home Automation", "Mobile App", "Energy Efficiency"},
		ImageURL:  optional("/uploads/sample-project.jpg"),
		Status:    models.StatusApproved,
		CreatedAt: time.Date(2024, time.April, 21, 12, 0, 0, 0, time.UTC),
	}
}

// NormalizeTags trims every tag and drops empties, keeping order.
func NormalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	return out
}

func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
