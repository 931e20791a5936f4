package service

import (
	"context"
	"time"

	"innovation_showcase/internal/logger"
	"innovation_showcase/internal/metrics"
	"innovation_showcase/internal/models"
	"innovation_showcase/internal/repository"
)

// StatsService reports project counts per moderation status.
type StatsService struct {
	projects repository.Projects
	log      *logger.Logger
}

func NewStatsService(projects repository.Projects, log *logger.Logger) *StatsService {
	if log == nil {
		log = logger.Nop()
	}
	return &StatsService{projects: projects, log: log}
}

// GetStats counts projects by status.
func (s *StatsService) GetStats(ctx context.Context) (models.ProjectStats, error) {
	counts, err := s.projects.CountByStatus(ctx)
	if err != nil {
		return models.ProjectStats{}, models.NewStorageError("count projects", err)
	}
	st := models.ProjectStats{
		Pending:   counts[models.StatusPending],
		Approved:  counts[models.StatusApproved],
		Rejected:  counts[models.StatusRejected],
		UpdatedAt: time.Now().UTC(),
	}
	st.Total = st.Pending + st.Approved + st.Rejected
	return st, nil
}

// Queue returns the counts together with the projects awaiting review.
func (s *StatsService) Queue(ctx context.Context) (ModerationQueue, error) {
	st, err := s.GetStats(ctx)
	if err != nil {
		return ModerationQueue{}, err
	}
	pending, err := s.projects.List(ctx, repository.ProjectFilter{Status: models.StatusPending})
	if err != nil {
		return ModerationQueue{}, models.NewStorageError("list projects", err)
	}
	if pending == nil {
		pending = []models.Project{}
	}
	return ModerationQueue{Stats: st, Pending: pending}, nil
}

// Run refreshes the project gauges at the given interval until ctx is canceled.
// A failing or panicking refresh is logged and the loop carries on.
func (s *StatsService) Run(ctx context.Context, tick time.Duration) {
	s.refresh(ctx)

	t := time.NewTicker(tick)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			s.refresh(ctx)
		}
	}
}

func (s *StatsService) refresh(ctx context.Context) {
	defer func() {
		if r := recover(); r != nil {
			s.log.Errorw("stats_refresh_panic", "panic", r)
		}
	}()

	st, err := s.GetStats(ctx)
	if err != nil {
		// keep the last published values
		s.log.Warnw("stats_refresh_failed", "error", err)
		return
	}
	metrics.ProjectsByStatus.WithLabelValues(string(models.StatusPending)).Set(float64(st.Pending))
	metrics.ProjectsByStatus.WithLabelValues(string(models.StatusApproved)).Set(float64(st.Approved))
	metrics.ProjectsByStatus.WithLabelValues(string(models.StatusRejected)).Set(float64(st.Rejected))
}
