package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"newsanchor/api-gateway/models"
)

// MemoryStore is an in-memory VideoStore and NewsStore. It backs tests
// and local development where no Supabase project is configured.
type MemoryStore struct {
	mu     sync.RWMutex
	videos map[uuid.UUID]*models.VideoRecord
	news   map[uuid.UUID]*models.NewsItem
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		videos: make(map[uuid.UUID]*models.VideoRecord),
		news:   make(map[uuid.UUID]*models.NewsItem),
	}
}

func (s *MemoryStore) CreateVideo(ctx context.Context, rec *models.VideoRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.videos {
		if existing.NewsID == rec.NewsID &&
			existing.Language == rec.Language &&
			existing.AvatarTemplate == rec.AvatarTemplate &&
			existing.Active() {
			return ErrDuplicateActive
		}
	}

	cp := *rec
	s.videos[rec.ID] = &cp
	return nil
}

func (s *MemoryStore) GetVideo(ctx context.Context, id uuid.UUID) (*models.VideoRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.videos[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *rec
	return &cp, nil
}

func (s *MemoryStore) ListVideos(ctx context.Context, status string) ([]models.VideoRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.VideoRecord, 0, len(s.videos))
	for _, rec := range s.videos {
		if status != "" && rec.Status != status {
			continue
		}
		out = append(out, *rec)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (s *MemoryStore) CountVideosByStatus(ctx context.Context) (map[string]int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	counts := make(map[string]int)
	for _, rec := range s.videos {
		counts[rec.Status]++
	}
	return counts, nil
}

func (s *MemoryStore) SetProgress(ctx context.Context, id uuid.UUID, status string, progress int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.videos[id]
	if !ok {
		return ErrNotFound
	}
	rec.Status = status
	rec.Progress = &progress
	rec.UpdatedAt = time.Now()
	return nil
}

func (s *MemoryStore) MarkReady(ctx context.Context, id uuid.UUID, script string, viralScore *int, storagePath string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.videos[id]
	if !ok {
		return ErrNotFound
	}
	rec.Status = models.StatusReady
	rec.Script = script
	rec.ViralScore = viralScore
	rec.StoragePath = &storagePath
	rec.Progress = nil
	rec.ErrorMessage = nil
	rec.UpdatedAt = time.Now()
	return nil
}

func (s *MemoryStore) MarkFailed(ctx context.Context, id uuid.UUID, message string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.videos[id]
	if !ok {
		return ErrNotFound
	}
	rec.Status = models.StatusFailed
	rec.ErrorMessage = &message
	rec.Progress = nil
	rec.UpdatedAt = time.Now()
	return nil
}

func (s *MemoryStore) SetStatus(ctx context.Context, id uuid.UUID, status string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.videos[id]
	if !ok {
		return ErrNotFound
	}
	rec.Status = status
	rec.Progress = nil
	rec.UpdatedAt = time.Now()
	return nil
}

func (s *MemoryStore) ResetForEdit(ctx context.Context, id uuid.UUID, script *string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.videos[id]
	if !ok {
		return ErrNotFound
	}
	rec.Status = models.StatusProcessing
	zero := 0
	rec.Progress = &zero
	if script != nil {
		rec.Script = *script
	}
	rec.UpdatedAt = time.Now()
	return nil
}

func (s *MemoryStore) UpsertNews(ctx context.Context, item *models.NewsItem) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.news {
		if existing.URL == item.URL {
			return false, nil
		}
	}
	cp := *item
	s.news[item.ID] = &cp
	return true, nil
}

func (s *MemoryStore) GetNews(ctx context.Context, id uuid.UUID) (*models.NewsItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	item, ok := s.news[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *item
	return &cp, nil
}

func (s *MemoryStore) ListNews(ctx context.Context, status string) ([]models.NewsItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.NewsItem, 0, len(s.news))
	for _, item := range s.news {
		if status != "" && item.Status != status {
			continue
		}
		out = append(out, *item)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (s *MemoryStore) CountNewsByStatus(ctx context.Context) (map[string]int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	counts := make(map[string]int)
	for _, item := range s.news {
		counts[item.Status]++
	}
	return counts, nil
}
