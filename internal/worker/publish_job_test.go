package worker

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"newsanchor/api-gateway/internal/renderclient"
	"newsanchor/api-gateway/internal/store"
	"newsanchor/api-gateway/models"
)

type fakePublisher struct {
	err      error
	requests []renderclient.PublishRequest
}

func (p *fakePublisher) Publish(ctx context.Context, req renderclient.PublishRequest) error {
	if p.err != nil {
		return p.err
	}
	p.requests = append(p.requests, req)
	return nil
}

func (p *fakePublisher) Health(ctx context.Context) error { return nil }

func TestPublishJobMarksPublished(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemoryStore()
	rec := seedRecord(t, s)
	require.NoError(t, s.SetProgress(ctx, rec.ID, models.StatusProcessing, 90))
	require.NoError(t, s.MarkReady(ctx, rec.ID, "script", nil, "videos/out.mp4"))
	require.NoError(t, s.SetStatus(ctx, rec.ID, models.StatusApproved))

	pub := &fakePublisher{}
	job := &PublishJob{VideoID: rec.ID, Videos: s, Publisher: pub, Log: quietLogger(), Timeout: time.Second}
	require.NoError(t, job.Execute())

	got, err := s.GetVideo(ctx, rec.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusPublished, got.Status)
	require.Len(t, pub.requests, 1)
	assert.Equal(t, "videos/out.mp4", pub.requests[0].StoragePath)
}

func TestPublishJobSkipsNonApproved(t *testing.T) {
	s := store.NewMemoryStore()
	rec := seedRecord(t, s) // still generating

	pub := &fakePublisher{}
	job := &PublishJob{VideoID: rec.ID, Videos: s, Publisher: pub, Log: quietLogger(), Timeout: time.Second}
	require.NoError(t, job.Execute())

	got, err := s.GetVideo(context.Background(), rec.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusGenerating, got.Status)
	assert.Empty(t, pub.requests)
}

func TestPublishJobFailureKeepsApproved(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemoryStore()
	rec := seedRecord(t, s)
	require.NoError(t, s.SetProgress(ctx, rec.ID, models.StatusProcessing, 90))
	require.NoError(t, s.MarkReady(ctx, rec.ID, "script", nil, "videos/out.mp4"))
	require.NoError(t, s.SetStatus(ctx, rec.ID, models.StatusApproved))

	pub := &fakePublisher{err: errors.New("upload rejected")}
	job := &PublishJob{VideoID: rec.ID, Videos: s, Publisher: pub, Log: quietLogger(), Timeout: time.Second}
	assert.Error(t, job.Execute())

	got, err := s.GetVideo(ctx, rec.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusApproved, got.Status)
}
