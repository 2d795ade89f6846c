package models

import (
	"time"

	"github.com/google/uuid"
)

// Video production statuses. A record walks generating -> processing ->
// ready -> approved -> published; failed is reachable from the two
// in-flight states. The legal transitions live in internal/production.
const (
	StatusGenerating = "generating"
	StatusProcessing = "processing"
	StatusReady      = "ready"
	StatusApproved   = "approved"
	StatusPublished  = "published"
	StatusFailed     = "failed"
)

// VideoRecord represents one production attempt for a news item in a
// single language with a single avatar template.
type VideoRecord struct {
	ID             uuid.UUID  `json:"id"`
	NewsID         uuid.UUID  `json:"news_id"`
	Title          string     `json:"title"`
	Language       string     `json:"language"`
	AvatarTemplate string     `json:"avatar_template"`
	Status         string     `json:"status"`
	Script         string     `json:"script,omitempty"`
	ViralScore     *int       `json:"viral_score,omitempty"`  // Nullable INTEGER, set by the external scorer
	Progress       *int       `json:"progress,omitempty"`     // Nullable INTEGER, present only while in flight
	ErrorMessage   *string    `json:"error_message,omitempty"`
	StoragePath    *string    `json:"storage_path,omitempty"` // Path of the finished asset in the bucket
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// InFlight reports whether the record is still being rendered. Progress
// must be present exactly while this is true.
func (v *VideoRecord) InFlight() bool {
	return v.Status == StatusGenerating || v.Status == StatusProcessing
}

// Active reports whether the record counts against the one-active-record
// rule for its (news, language, avatar) triple. Everything but failed is
// active; failed records stay visible for diagnosis but do not block a
// fresh dispatch.
func (v *VideoRecord) Active() bool {
	return v.Status != StatusFailed
}
