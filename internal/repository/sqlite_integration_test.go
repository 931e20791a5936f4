package repository_test

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"innovation_showcase/internal/models"
	"innovation_showcase/internal/repository"
	"innovation_showcase/internal/repository/db"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openSQLiteRepo(t *testing.T) *repository.Repository {
	t.Helper()
	conn, err := db.InitDB(filepath.Join(t.TempDir(), "showcase.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return repository.NewRepository(conn)
}

func TestSQLite_UserUniqueness(t *testing.T) {
	repo := openSQLiteRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Users.Create(ctx, models.User{ID: "u1", Username: "alice", Email: "a@x.com", PasswordHash: "h", Role: models.RoleUser}))

	err := repo.Users.Create(ctx, models.User{ID: "u2", Username: "alice2", Email: "a@x.com", PasswordHash: "h", Role: models.RoleUser})
	assert.True(t, errors.Is(err, repository.ErrDuplicate), "got %v", err)

	u, err := repo.Users.GetByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.Equal(t, "alice", u.Username)

	missing, err := repo.Users.GetByUsername(ctx, "nobody")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestSQLite_ProjectLifecycle(t *testing.T) {
	repo := openSQLiteRepo(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		require.NoError(t, repo.Projects.Create(ctx, models.Project{
			ID:          fmt.Sprintf("p%d", i),
			UserID:      "u1",
			Title:       "T",
			Description: "D",
			Category:    "IoT",
			Tags:        []string{"a"},
			Status:      models.StatusPending,
			CreatedAt:   time.Now(),
		}))
	}

	approved, err := repo.Projects.List(ctx, repository.ProjectFilter{Status: models.StatusApproved})
	require.NoError(t, err)
	assert.Empty(t, approved)

	p, err := repo.Projects.SetStatus(ctx, "p1", models.StatusApproved)
	require.NoError(t, err)
	assert.Equal(t, models.StatusApproved, p.Status)
	assert.Equal(t, []string{"a"}, p.Tags)

	approved, err = repo.Projects.List(ctx, repository.ProjectFilter{Status: models.StatusApproved})
	require.NoError(t, err)
	require.Len(t, approved, 1)
	assert.Equal(t, "p1", approved[0].ID)

	all, err := repo.Projects.List(ctx, repository.ProjectFilter{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, []string{"p0", "p1", "p2"}, []string{all[0].ID, all[1].ID, all[2].ID})

	_, err = repo.Projects.SetStatus(ctx, "ghost", models.StatusApproved)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	counts, err := repo.Projects.CountByStatus(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, counts[models.StatusPending])
	assert.Equal(t, 1, counts[models.StatusApproved])
}

func TestSQLite_ConcurrentStatusUpdatesAreNotLost(t *testing.T) {
	repo := openSQLiteRepo(t)
	ctx := context.Background()

	const n = 20
	for i := 0; i < n; i++ {
		require.NoError(t, repo.Projects.Create(ctx, models.Project{
			ID: fmt.Sprintf("p%02d", i), UserID: "u", Title: "T", Description: "D", Category: "C",
			Status: models.StatusPending,
		}))
	}

	var wg sync.WaitGroup
	errs := make(chan error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if _, err := repo.Projects.SetStatus(ctx, fmt.Sprintf("p%02d", i), models.StatusApproved); err != nil {
				errs <- err
			}
		}(i)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Fatalf("SetStatus: %v", err)
	}

	approved, err := repo.Projects.List(ctx, repository.ProjectFilter{Status: models.StatusApproved})
	require.NoError(t, err)
	assert.Len(t, approved, n)
}

func TestSQLite_CommentsAndEvents(t *testing.T) {
	repo := openSQLiteRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Comments.Add(ctx, models.Comment{ID: "c1", ProjectID: "p1", UserID: "u1", Content: "first"}))
	require.NoError(t, repo.Comments.Add(ctx, models.Comment{ID: "c2", ProjectID: "p1", UserID: "u2", Content: "second"}))

	got, err := repo.Comments.ListByProject(ctx, "p1")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "first", got[0].Content)

	none, err := repo.Comments.ListByProject(ctx, "ghost")
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)

	require.NoError(t, repo.Events.Append(ctx, models.AuditEvent{Type: models.EventCommentAdded, Description: "x", SubjectID: "p1"}))
	events, err := repo.Events.List(ctx, time.Time{}, time.Time{}, "comment_added")
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "p1", events[0].SubjectID)
}
