package filestore

import (
	"fmt"
	"os"

	"innovation_showcase/internal/repository"
)

const (
	usersFile    = "users.json"
	projectsFile = "projects.json"
	commentsFile = "comments.json"
	eventsFile   = "events.json"
)

// New creates dir and any missing collection files, then returns the
// file-backed repositories.
func New(dir string) (*repository.Repository, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir %q: %w", dir, err)
	}

	users, err := NewUsers(dir)
	if err != nil {
		return nil, err
	}
	projects, err := NewProjects(dir)
	if err != nil {
		return nil, err
	}
	comments, err := NewComments(dir)
	if err != nil {
		return nil, err
	}
	events, err := NewEvents(dir)
	if err != nil {
		return nil, err
	}

	return &repository.Repository{
		Users:    users,
		Projects: projects,
		Comments: comments,
		Events:   events,
	}, nil
}
