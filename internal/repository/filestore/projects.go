package filestore

import (
	"context"
	"time"

	"innovation_showcase/internal/models"
	"innovation_showcase/internal/repository"
)

// projectRecord is the projects.json shape written by earlier deployments.
type projectRecord struct {
	ID          string               `json:"id"`
	Title       string               `json:"title"`
	Description string               `json:"description"`
	Category    string               `json:"category"`
	Tags        []string             `json:"tags"`
	VideoLink   *string              `json:"video_link"`
	ImageURL    *string              `json:"imageUrl,omitempty"`
	UserID      string               `json:"userId"`
	CreatedAt   time.Time            `json:"createdAt"`
	Status      models.ProjectStatus `json:"status"`
}

func newProjectRecord(p models.Project) projectRecord {
	tags := p.Tags
	if tags == nil {
		tags = []string{}
	}
	return projectRecord{
		ID:          p.ID,
		Title:       p.Title,
		Description: p.Description,
		Category:    p.Category,
		Tags:        tags,
		VideoLink:   p.VideoLink,
		ImageURL:    p.ImageURL,
		UserID:      p.UserID,
		CreatedAt:   p.CreatedAt,
		Status:      p.Status,
	}
}

func (r projectRecord) toModel() models.Project {
	tags := r.Tags
	if tags == nil {
		tags = []string{}
	}
	return models.Project{
		ID:          r.ID,
		UserID:      r.UserID,
		Title:       r.Title,
		Description: r.Description,
		Category:    r.Category,
		Tags:        tags,
		VideoLink:   r.VideoLink,
		ImageURL:    r.ImageURL,
		Status:      r.Status,
		CreatedAt:   r.CreatedAt,
	}
}

type Projects struct {
	c *collection[projectRecord]
}

var _ repository.Projects = (*Projects)(nil)

func NewProjects(dir string) (*Projects, error) {
	c, err := newCollection[projectRecord](dir, projectsFile)
	if err != nil {
		return nil, err
	}
	return &Projects{c: c}, nil
}

func (s *Projects) Create(_ context.Context, p models.Project) error {
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now()
	}
	p.CreatedAt = p.CreatedAt.UTC()
	return s.c.update(func(projects []projectRecord) ([]projectRecord, error) {
		return append(projects, newProjectRecord(p)), nil
	})
}

func (s *Projects) List(_ context.Context, f repository.ProjectFilter) ([]models.Project, error) {
	out := make([]models.Project, 0, 16)
	err := s.c.view(func(projects []projectRecord) error {
		for _, p := range projects {
			if f.Status == "" || p.Status == f.Status {
				out = append(out, p.toModel())
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Projects) GetByID(_ context.Context, id string) (*models.Project, error) {
	var found *models.Project
	err := s.c.view(func(projects []projectRecord) error {
		for i := range projects {
			if projects[i].ID == id {
				p := projects[i].toModel()
				found = &p
				return nil
			}
		}
		return repository.ErrNotFound
	})
	if err != nil {
		return nil, err
	}
	return found, nil
}

// SetStatus mutates one record while holding the collection lock, so
// concurrent updates to different records never overwrite each other.
func (s *Projects) SetStatus(_ context.Context, id string, status models.ProjectStatus) (*models.Project, error) {
	var updated *models.Project
	err := s.c.update(func(projects []projectRecord) ([]projectRecord, error) {
		for i := range projects {
			if projects[i].ID == id {
				projects[i].Status = status
				p := projects[i].toModel()
				updated = &p
				return projects, nil
			}
		}
		return nil, repository.ErrNotFound
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *Projects) CountByStatus(_ context.Context) (map[models.ProjectStatus]int, error) {
	out := make(map[models.ProjectStatus]int, 3)
	err := s.c.view(func(projects []projectRecord) error {
		for _, p := range projects {
			out[p.Status]++
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
