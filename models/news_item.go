package models

import (
	"time"

	"github.com/google/uuid"
)

// News item moderation statuses. Only approved items are eligible as
// production sources.
const (
	NewsStatusPending  = "pending"
	NewsStatusApproved = "approved"
	NewsStatusRejected = "rejected"
)

// NewsItem is a source article ingested from the upstream feed.
type NewsItem struct {
	ID        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	Summary   *string   `json:"summary,omitempty"` // Nullable TEXT
	Source    string    `json:"source"`
	URL       string    `json:"url"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
