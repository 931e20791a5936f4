package filestore

import (
	"context"
	"fmt"
	"time"

	"innovation_showcase/internal/models"
	"innovation_showcase/internal/repository"
)

// userRecord is the on-disk shape; unlike models.User it keeps the hash.
type userRecord struct {
	ID           string      `json:"id"`
	Username     string      `json:"username"`
	Email        string      `json:"email"`
	PasswordHash string      `json:"password"`
	Role         models.Role `json:"role"`
	CreatedAt    time.Time   `json:"createdAt"`
}

func (r userRecord) toModel() *models.User {
	return &models.User{
		ID:           r.ID,
		Username:     r.Username,
		Email:        r.Email,
		PasswordHash: r.PasswordHash,
		Role:         r.Role,
		CreatedAt:    r.CreatedAt,
	}
}

type Users struct {
	c *collection[userRecord]
}

var _ repository.Users = (*Users)(nil)

func NewUsers(dir string) (*Users, error) {
	c, err := newCollection[userRecord](dir, usersFile)
	if err != nil {
		return nil, err
	}
	return &Users{c: c}, nil
}

// Create appends a user; uniqueness is checked under the collection lock.
func (s *Users) Create(_ context.Context, u models.User) error {
	created := u.CreatedAt
	if created.IsZero() {
		created = time.Now()
	}
	return s.c.update(func(users []userRecord) ([]userRecord, error) {
		for _, existing := range users {
			if existing.Username == u.Username || existing.Email == u.Email {
				return nil, fmt.Errorf("insert user %q: %w", u.Username, repository.ErrDuplicate)
			}
		}
		return append(users, userRecord{
			ID:           u.ID,
			Username:     u.Username,
			Email:        u.Email,
			PasswordHash: u.PasswordHash,
			Role:         u.Role,
			CreatedAt:    created.UTC(),
		}), nil
	})
}

func (s *Users) GetByID(_ context.Context, id string) (*models.User, error) {
	return s.find(func(r userRecord) bool { return r.ID == id })
}

func (s *Users) GetByUsername(_ context.Context, username string) (*models.User, error) {
	return s.find(func(r userRecord) bool { return r.Username == username })
}

func (s *Users) GetByEmail(_ context.Context, email string) (*models.User, error) {
	return s.find(func(r userRecord) bool { return r.Email == email })
}

func (s *Users) find(match func(userRecord) bool) (*models.User, error) {
	var found *models.User
	err := s.c.view(func(users []userRecord) error {
		for _, r := range users {
			if match(r) {
				found = r.toModel()
				return nil
			}
		}
		return nil
	})
	return found, err
}
