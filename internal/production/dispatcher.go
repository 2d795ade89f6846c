// Package production implements the video production workflow: the
// generation and batch dispatchers, the edit/regeneration controller,
// the approval controller, and the status state machine they share.
package production

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"newsanchor/api-gateway/internal/catalog"
	"newsanchor/api-gateway/internal/store"
	"newsanchor/api-gateway/models"
)

// Service wires the workflow controllers to their dependencies.
type Service struct {
	videos  store.VideoStore
	news    store.NewsStore
	catalog *catalog.Catalog
	queue   RenderQueue
	log     *logrus.Logger
}

func NewService(videos store.VideoStore, news store.NewsStore, cat *catalog.Catalog, queue RenderQueue, log *logrus.Logger) *Service {
	return &Service{
		videos:  videos,
		news:    news,
		catalog: cat,
		queue:   queue,
		log:     log,
	}
}

// DispatchRequest is a single-language generation request.
type DispatchRequest struct {
	NewsID       uuid.UUID
	Language     string
	Avatar       string
	CustomScript string
}

// Dispatch creates one video record in generating state and enqueues it
// for rendering. Unknown language or avatar returns ErrInvalidArgument
// with no record created; a duplicate active triple returns
// store.ErrDuplicateActive.
func (s *Service) Dispatch(ctx context.Context, req DispatchRequest) (*models.VideoRecord, error) {
	lang, ok := s.catalog.Language(req.Language)
	if !ok {
		return nil, fmt.Errorf("%w: unknown language %q", ErrInvalidArgument, req.Language)
	}
	avatar, ok := s.catalog.Avatar(req.Avatar)
	if !ok {
		return nil, fmt.Errorf("%w: unknown avatar template %q", ErrInvalidArgument, req.Avatar)
	}

	newsItem, err := s.news.GetNews(ctx, req.NewsID)
	if err != nil {
		return nil, fmt.Errorf("looking up news item %s: %w", req.NewsID, err)
	}

	zero := 0
	now := time.Now()
	rec := &models.VideoRecord{
		ID:             uuid.New(),
		NewsID:         newsItem.ID,
		Title:          newsItem.Title,
		Language:       lang.Code,
		AvatarTemplate: avatar.ID,
		Status:         models.StatusGenerating,
		Script:         req.CustomScript,
		Progress:       &zero,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := s.videos.CreateVideo(ctx, rec); err != nil {
		return nil, err
	}

	order := RenderOrder{
		VideoID:      rec.ID,
		NewsID:       rec.NewsID,
		Title:        rec.Title,
		Language:     lang,
		Avatar:       avatar,
		CustomScript: req.CustomScript,
	}
	if err := s.queue.EnqueueRender(order); err != nil {
		// The record exists but no render will run for it; fail it so it
		// does not block a re-dispatch of the same triple.
		if markErr := s.videos.MarkFailed(ctx, rec.ID, fmt.Sprintf("enqueue failed: %v", err)); markErr != nil {
			s.log.WithError(markErr).WithField("video_id", rec.ID).Error("Failed to mark record failed after enqueue error")
		}
		return nil, fmt.Errorf("enqueueing render for %s: %w", rec.ID, err)
	}

	s.log.WithFields(logrus.Fields{
		"video_id": rec.ID,
		"news_id":  rec.NewsID,
		"language": rec.Language,
		"avatar":   rec.AvatarTemplate,
	}).Info("Dispatched video generation")
	return rec, nil
}

// BatchResult is the per-language outcome of a batch dispatch.
type BatchResult struct {
	Language string              `json:"language"`
	Record   *models.VideoRecord `json:"record,omitempty"`
	Error    string              `json:"error,omitempty"`
}

// DispatchBatch fans one news item out to several languages. Each
// language dispatches independently: one failure never rolls back the
// others, because the per-language render pipelines have independent
// failure modes. Duplicate codes in the input are deduplicated.
func (s *Service) DispatchBatch(ctx context.Context, newsID uuid.UUID, languages []string, avatar string) ([]BatchResult, error) {
	deduped := dedupe(languages)
	if len(deduped) == 0 {
		return nil, fmt.Errorf("%w: languages must be a non-empty set", ErrInvalidArgument)
	}
	if _, ok := s.catalog.Avatar(avatar); !ok {
		return nil, fmt.Errorf("%w: unknown avatar template %q", ErrInvalidArgument, avatar)
	}

	results := make([]BatchResult, 0, len(deduped))
	for _, lang := range deduped {
		rec, err := s.Dispatch(ctx, DispatchRequest{
			NewsID:   newsID,
			Language: lang,
			Avatar:   avatar,
		})
		if err != nil {
			s.log.WithError(err).WithFields(logrus.Fields{
				"news_id":  newsID,
				"language": lang,
			}).Warn("Batch dispatch failed for language")
			results = append(results, BatchResult{Language: lang, Error: err.Error()})
			continue
		}
		results = append(results, BatchResult{Language: lang, Record: rec})
	}
	return results, nil
}

func dedupe(codes []string) []string {
	seen := make(map[string]bool, len(codes))
	out := make([]string, 0, len(codes))
	for _, c := range codes {
		if c == "" || seen[c] {
			continue
		}
		seen[c] = true
		out = append(out, c)
	}
	return out
}
