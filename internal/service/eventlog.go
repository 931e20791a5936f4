package service

import (
	"context"
	"strings"
	"time"

	"innovation_showcase/internal/models"
	"innovation_showcase/internal/repository"
)

type EventLogService struct {
	eventRepo repository.Events
}

func NewEventLogService(eventRepo repository.Events) *EventLogService {
	return &EventLogService{eventRepo: eventRepo}
}

const msgInvalidTimeRange = "invalid time range: from must be <= to"

// normalizeToUTC returns t in UTC, preserving zero time values.
func normalizeToUTC(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	return t.UTC()
}

// normalizeEventType trims spaces and uppercases the event type filter.
func normalizeEventType(s string) string {
	return strings.TrimSpace(strings.ToUpper(s))
}

// normalizeAndValidateFilter prepares query parameters and validates the time range.
func normalizeAndValidateFilter(f LogFilter) (time.Time, time.Time, string, error) {
	from := normalizeToUTC(f.From)
	to := normalizeToUTC(f.To)

	if !from.IsZero() && !to.IsZero() && from.After(to) {
		return time.Time{}, time.Time{}, "", models.NewValidationError(msgInvalidTimeRange)
	}

	return from, to, normalizeEventType(f.Type), nil
}

// List returns audit events in chronological order.
func (s *EventLogService) List(ctx context.Context, f LogFilter) ([]models.AuditEvent, error) {
	from, to, typ, err := normalizeAndValidateFilter(f)
	if err != nil {
		return nil, err
	}
	out, err := s.eventRepo.List(ctx, from, to, typ)
	if err != nil {
		return nil, models.NewStorageError("list events", err)
	}
	return out, nil
}
