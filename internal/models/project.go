package models

import "time"

// ProjectStatus is the moderation state of a project.
type ProjectStatus string

const (
	StatusPending  ProjectStatus = "pending"
	StatusApproved ProjectStatus = "approved"
	StatusRejected ProjectStatus = "rejected"
)

// ParseProjectStatus reports whether s names a known status.
func ParseProjectStatus(s string) (ProjectStatus, bool) {
	switch ProjectStatus(s) {
	case StatusPending, StatusApproved, StatusRejected:
		return ProjectStatus(s), true
	default:
		return "", false
	}
}

// Project is a showcase submission.
type Project struct {
	ID          string        `json:"id"`
	UserID      string        `json:"user_id"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Category    string        `json:"category"`
	Tags        []string      `json:"tags"`
	VideoLink   *string       `json:"video_link"`
	ImageURL    *string       `json:"image_url,omitempty"`
	Status      ProjectStatus `json:"status"`
	CreatedAt   time.Time     `json:"created_at"`
}

// ProjectStats counts projects per moderation status.
type ProjectStats struct {
	Pending   int       `json:"pending"`
	Approved  int       `json:"approved"`
	Rejected  int       `json:"rejected"`
	Total     int       `json:"total"`
	UpdatedAt time.Time `json:"updated_at"`
}
