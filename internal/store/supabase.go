package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	supa "github.com/supabase-community/supabase-go"

	"newsanchor/api-gateway/models"
)

const (
	videoTable = "video_records"
	newsTable  = "news_items"
)

// SupabaseStore is the production VideoStore/NewsStore, backed by
// Supabase PostgREST. The one-active-record rule is additionally backed
// in the schema by a partial unique index on
// (news_id, language, avatar_template) where status <> 'failed', so the
// pre-insert check here and a concurrent insert cannot both win.
type SupabaseStore struct {
	client *supa.Client
}

func NewSupabaseStore(client *supa.Client) *SupabaseStore {
	return &SupabaseStore{client: client}
}

func (s *SupabaseStore) CreateVideo(ctx context.Context, rec *models.VideoRecord) error {
	var active []models.VideoRecord
	body, _, err := s.client.From(videoTable).
		Select("id,status", "", false).
		Eq("news_id", rec.NewsID.String()).
		Eq("language", rec.Language).
		Eq("avatar_template", rec.AvatarTemplate).
		Neq("status", models.StatusFailed).
		Execute()
	if err != nil {
		return fmt.Errorf("checking active records: %w", err)
	}
	if err := json.Unmarshal(body, &active); err != nil {
		return fmt.Errorf("decoding active record check: %w", err)
	}
	if len(active) > 0 {
		return ErrDuplicateActive
	}

	var inserted []models.VideoRecord
	_, err = s.client.From(videoTable).
		Insert(rec, false, "", "representation", "").
		ExecuteTo(&inserted)
	if err != nil {
		return fmt.Errorf("inserting video record: %w", err)
	}
	if len(inserted) == 0 {
		return fmt.Errorf("no record returned after insert, id: %s", rec.ID)
	}
	return nil
}

func (s *SupabaseStore) GetVideo(ctx context.Context, id uuid.UUID) (*models.VideoRecord, error) {
	var rec models.VideoRecord
	_, err := s.client.From(videoTable).
		Select("*", "", false).
		Eq("id", id.String()).
		Single().
		ExecuteTo(&rec)
	if err != nil {
		return nil, ErrNotFound
	}
	return &rec, nil
}

func (s *SupabaseStore) ListVideos(ctx context.Context, status string) ([]models.VideoRecord, error) {
	q := s.client.From(videoTable).Select("*", "", false)
	if status != "" {
		q = q.Eq("status", status)
	}
	body, _, err := q.Execute()
	if err != nil {
		return nil, fmt.Errorf("listing video records: %w", err)
	}
	var records []models.VideoRecord
	if err := json.Unmarshal(body, &records); err != nil {
		return nil, fmt.Errorf("decoding video records: %w", err)
	}
	sort.Slice(records, func(i, j int) bool { return records[i].CreatedAt.After(records[j].CreatedAt) })
	return records, nil
}

func (s *SupabaseStore) CountVideosByStatus(ctx context.Context) (map[string]int, error) {
	body, _, err := s.client.From(videoTable).Select("status", "", false).Execute()
	if err != nil {
		return nil, fmt.Errorf("counting video records: %w", err)
	}
	var rows []struct {
		Status string `json:"status"`
	}
	if err := json.Unmarshal(body, &rows); err != nil {
		return nil, fmt.Errorf("decoding status counts: %w", err)
	}
	counts := make(map[string]int)
	for _, r := range rows {
		counts[r.Status]++
	}
	return counts, nil
}

func (s *SupabaseStore) SetProgress(ctx context.Context, id uuid.UUID, status string, progress int) error {
	return s.updateVideo(id, map[string]interface{}{
		"status":   status,
		"progress": progress,
	})
}

func (s *SupabaseStore) MarkReady(ctx context.Context, id uuid.UUID, script string, viralScore *int, storagePath string) error {
	updates := map[string]interface{}{
		"status":        models.StatusReady,
		"script":        script,
		"storage_path":  storagePath,
		"progress":      nil,
		"error_message": nil,
	}
	if viralScore != nil {
		updates["viral_score"] = *viralScore
	}
	return s.updateVideo(id, updates)
}

func (s *SupabaseStore) MarkFailed(ctx context.Context, id uuid.UUID, message string) error {
	return s.updateVideo(id, map[string]interface{}{
		"status":        models.StatusFailed,
		"error_message": message,
		"progress":      nil,
	})
}

func (s *SupabaseStore) SetStatus(ctx context.Context, id uuid.UUID, status string) error {
	return s.updateVideo(id, map[string]interface{}{
		"status":   status,
		"progress": nil,
	})
}

func (s *SupabaseStore) ResetForEdit(ctx context.Context, id uuid.UUID, script *string) error {
	updates := map[string]interface{}{
		"status":   models.StatusProcessing,
		"progress": 0,
	}
	if script != nil {
		updates["script"] = *script
	}
	return s.updateVideo(id, updates)
}

func (s *SupabaseStore) updateVideo(id uuid.UUID, updates map[string]interface{}) error {
	updates["updated_at"] = time.Now()

	_, count, err := s.client.From(videoTable).
		Update(updates, "", "exact").
		Eq("id", id.String()).
		Execute()
	if err != nil {
		return fmt.Errorf("updating video record %s: %w", id, err)
	}
	if count == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *SupabaseStore) UpsertNews(ctx context.Context, item *models.NewsItem) (bool, error) {
	body, _, err := s.client.From(newsTable).
		Select("id", "", false).
		Eq("url", item.URL).
		Execute()
	if err != nil {
		return false, fmt.Errorf("checking existing news item: %w", err)
	}
	var existing []struct {
		ID uuid.UUID `json:"id"`
	}
	if err := json.Unmarshal(body, &existing); err != nil {
		return false, fmt.Errorf("decoding news check: %w", err)
	}
	if len(existing) > 0 {
		return false, nil
	}

	var inserted []models.NewsItem
	_, err = s.client.From(newsTable).
		Insert(item, false, "", "representation", "").
		ExecuteTo(&inserted)
	if err != nil {
		return false, fmt.Errorf("inserting news item: %w", err)
	}
	return true, nil
}

func (s *SupabaseStore) GetNews(ctx context.Context, id uuid.UUID) (*models.NewsItem, error) {
	var item models.NewsItem
	_, err := s.client.From(newsTable).
		Select("*", "", false).
		Eq("id", id.String()).
		Single().
		ExecuteTo(&item)
	if err != nil {
		return nil, ErrNotFound
	}
	return &item, nil
}

func (s *SupabaseStore) ListNews(ctx context.Context, status string) ([]models.NewsItem, error) {
	q := s.client.From(newsTable).Select("*", "", false)
	if status != "" {
		q = q.Eq("status", status)
	}
	body, _, err := q.Execute()
	if err != nil {
		return nil, fmt.Errorf("listing news items: %w", err)
	}
	var items []models.NewsItem
	if err := json.Unmarshal(body, &items); err != nil {
		return nil, fmt.Errorf("decoding news items: %w", err)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].CreatedAt.After(items[j].CreatedAt) })
	return items, nil
}

func (s *SupabaseStore) CountNewsByStatus(ctx context.Context) (map[string]int, error) {
	body, _, err := s.client.From(newsTable).Select("status", "", false).Execute()
	if err != nil {
		return nil, fmt.Errorf("counting news items: %w", err)
	}
	var rows []struct {
		Status string `json:"status"`
	}
	if err := json.Unmarshal(body, &rows); err != nil {
		return nil, fmt.Errorf("decoding news counts: %w", err)
	}
	counts := make(map[string]int)
	for _, r := range rows {
		counts[r.Status]++
	}
	return counts, nil
}
