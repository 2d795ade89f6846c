// Package store holds the repositories behind the production workflow.
// Handlers and controllers depend on the interfaces here, never on a
// concrete backend; the Supabase implementation is the production one
// and the memory implementation backs tests and local development.
package store

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"newsanchor/api-gateway/models"
)

// ErrNotFound is returned when a database record is not found.
var ErrNotFound = errors.New("record not found")

// ErrDuplicateActive is returned when a video insert would create a
// second non-failed record for the same (news, language, avatar)
// triple. Failed records never block a fresh dispatch.
var ErrDuplicateActive = errors.New("an active record already exists for this news item, language and avatar")

// VideoStore persists video production records. Records are never
// deleted: failed ones stay visible for diagnosis.
type VideoStore interface {
	// CreateVideo inserts a new record, enforcing the one-active-record
	// rule for the record's (news, language, avatar) triple.
	CreateVideo(ctx context.Context, rec *models.VideoRecord) error
	GetVideo(ctx context.Context, id uuid.UUID) (*models.VideoRecord, error)
	// ListVideos returns records, newest first, optionally filtered by
	// status ("" means all).
	ListVideos(ctx context.Context, status string) ([]models.VideoRecord, error)
	CountVideosByStatus(ctx context.Context) (map[string]int, error)

	// SetProgress records a render tick. The status is written together
	// with the progress so the generating -> processing flip and the
	// first tick land in one update.
	SetProgress(ctx context.Context, id uuid.UUID, status string, progress int) error
	// MarkReady finishes a render: stores the script, score and asset
	// path, clears progress.
	MarkReady(ctx context.Context, id uuid.UUID, script string, viralScore *int, storagePath string) error
	// MarkFailed records a terminal render error and clears progress.
	MarkFailed(ctx context.Context, id uuid.UUID, message string) error
	// SetStatus moves a record between the non-progress states
	// (ready -> approved, approved -> published).
	SetStatus(ctx context.Context, id uuid.UUID, status string) error
	// ResetForEdit puts a record back into processing with progress 0,
	// optionally replacing the script.
	ResetForEdit(ctx context.Context, id uuid.UUID, script *string) error
}

// NewsStore persists ingested source articles.
type NewsStore interface {
	// UpsertNews inserts an item unless one with the same URL already
	// exists. Returns true when a new row was created.
	UpsertNews(ctx context.Context, item *models.NewsItem) (bool, error)
	GetNews(ctx context.Context, id uuid.UUID) (*models.NewsItem, error)
	ListNews(ctx context.Context, status string) ([]models.NewsItem, error)
	CountNewsByStatus(ctx context.Context) (map[string]int, error)
}
