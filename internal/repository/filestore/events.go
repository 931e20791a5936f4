package filestore

import (
	"context"
	"sort"
	"strings"
	"time"

	"innovation_showcase/internal/models"
	"innovation_showcase/internal/repository"

	"github.com/google/uuid"
)

// eventRecord uses the same camelCase keys as the other collections.
type eventRecord struct {
	EventID     string    `json:"eventId"`
	OccurredAt  time.Time `json:"occurredAt"`
	Type        string    `json:"type"`
	Description string    `json:"description"`
	ActorID     string    `json:"actorId,omitempty"`
	SubjectID   string    `json:"subjectId,omitempty"`
	Metadata    any       `json:"metadata,omitempty"`
}

func (r eventRecord) toModel() models.AuditEvent {
	return models.AuditEvent{
		EventID:     r.EventID,
		OccurredAt:  r.OccurredAt,
		Type:        r.Type,
		Description: r.Description,
		ActorID:     r.ActorID,
		SubjectID:   r.SubjectID,
		Metadata:    r.Metadata,
	}
}

type Events struct {
	c *collection[eventRecord]
}

var _ repository.Events = (*Events)(nil)

func NewEvents(dir string) (*Events, error) {
	c, err := newCollection[eventRecord](dir, eventsFile)
	if err != nil {
		return nil, err
	}
	return &Events{c: c}, nil
}

func (s *Events) Append(_ context.Context, e models.AuditEvent) error {
	if e.EventID == "" {
		e.EventID = uuid.NewString()
	}
	if e.OccurredAt.IsZero() {
		e.OccurredAt = time.Now()
	}
	e.OccurredAt = e.OccurredAt.UTC()
	e.Type = strings.ToUpper(strings.TrimSpace(e.Type))
	return s.c.update(func(events []eventRecord) ([]eventRecord, error) {
		return append(events, eventRecord{
			EventID:     e.EventID,
			OccurredAt:  e.OccurredAt,
			Type:        e.Type,
			Description: e.Description,
			ActorID:     e.ActorID,
			SubjectID:   e.SubjectID,
			Metadata:    e.Metadata,
		}), nil
	})
}

// List returns events filtered by [from, to] (inclusive) and/or type, ordered ASC.
func (s *Events) List(_ context.Context, from, to time.Time, typ string) ([]models.AuditEvent, error) {
	typ = strings.ToUpper(strings.TrimSpace(typ))
	out := make([]models.AuditEvent, 0, 64)
	err := s.c.view(func(events []eventRecord) error {
		for _, e := range events {
			if !from.IsZero() && e.OccurredAt.Before(from) {
				continue
			}
			if !to.IsZero() && e.OccurredAt.After(to) {
				continue
			}
			if typ != "" && e.Type != typ {
				continue
			}
			out = append(out, e.toModel())
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].OccurredAt.Before(out[j].OccurredAt) })
	return out, nil
}
