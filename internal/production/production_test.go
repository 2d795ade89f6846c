package production

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"newsanchor/api-gateway/internal/catalog"
	"newsanchor/api-gateway/internal/store"
	"newsanchor/api-gateway/models"
)

// fakeQueue records enqueued work and can be told to fail for specific
// languages, which is how batch independence is exercised.
type fakeQueue struct {
	renders   []RenderOrder
	publishes []uuid.UUID
	failFor   map[string]error
}

func newFakeQueue() *fakeQueue {
	return &fakeQueue{failFor: make(map[string]error)}
}

func (q *fakeQueue) EnqueueRender(order RenderOrder) error {
	if err, ok := q.failFor[order.Language.Code]; ok {
		return err
	}
	q.renders = append(q.renders, order)
	return nil
}

func (q *fakeQueue) EnqueuePublish(videoID uuid.UUID) error {
	q.publishes = append(q.publishes, videoID)
	return nil
}

type fixture struct {
	svc    *Service
	store  *store.MemoryStore
	queue  *fakeQueue
	newsID uuid.UUID
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	s := store.NewMemoryStore()
	q := newFakeQueue()
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)

	item := &models.NewsItem{
		ID:        uuid.New(),
		Title:     "Central bank raises rates",
		Source:    "wire",
		URL:       "https://news.example/rates",
		Status:    models.NewsStatusApproved,
		CreatedAt: time.Now(),
	}
	_, err := s.UpsertNews(context.Background(), item)
	require.NoError(t, err)

	return &fixture{
		svc:    NewService(s, s, catalog.Default(), q, log),
		store:  s,
		queue:  q,
		newsID: item.ID,
	}
}

func TestDispatchCreatesGeneratingRecord(t *testing.T) {
	f := newFixture(t)

	rec, err := f.svc.Dispatch(context.Background(), DispatchRequest{
		NewsID:   f.newsID,
		Language: "pt-BR",
		Avatar:   "dark_anchor",
	})
	require.NoError(t, err)

	assert.Equal(t, models.StatusGenerating, rec.Status)
	assert.Equal(t, "Central bank raises rates", rec.Title)
	require.NotNil(t, rec.Progress)
	assert.Equal(t, 0, *rec.Progress)
	require.Len(t, f.queue.renders, 1)
	assert.Equal(t, rec.ID, f.queue.renders[0].VideoID)
	assert.Equal(t, "camila", f.queue.renders[0].Language.VoiceName)
}

func TestDispatchUnknownLanguageCreatesNothing(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Dispatch(context.Background(), DispatchRequest{
		NewsID:   f.newsID,
		Language: "xx-XX",
		Avatar:   "dark_anchor",
	})
	assert.ErrorIs(t, err, ErrInvalidArgument)

	all, err := f.store.ListVideos(context.Background(), "")
	require.NoError(t, err)
	assert.Empty(t, all)
	assert.Empty(t, f.queue.renders)
}

func TestDispatchUnknownAvatarCreatesNothing(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Dispatch(context.Background(), DispatchRequest{
		NewsID:   f.newsID,
		Language: "pt-BR",
		Avatar:   "missing_avatar",
	})
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestDispatchRejectsDuplicateActiveTriple(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	req := DispatchRequest{NewsID: f.newsID, Language: "pt-BR", Avatar: "dark_anchor"}
	_, err := f.svc.Dispatch(ctx, req)
	require.NoError(t, err)

	_, err = f.svc.Dispatch(ctx, req)
	assert.ErrorIs(t, err, store.ErrDuplicateActive)

	all, err := f.store.ListVideos(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestDispatchAfterFailureIsAllowed(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	req := DispatchRequest{NewsID: f.newsID, Language: "pt-BR", Avatar: "dark_anchor"}
	rec, err := f.svc.Dispatch(ctx, req)
	require.NoError(t, err)
	require.NoError(t, f.store.MarkFailed(ctx, rec.ID, "render crashed"))

	_, err = f.svc.Dispatch(ctx, req)
	assert.NoError(t, err)
}

func TestDispatchEnqueueFailureFailsRecord(t *testing.T) {
	f := newFixture(t)
	f.queue.failFor["pt-BR"] = errors.New("queue full")

	_, err := f.svc.Dispatch(context.Background(), DispatchRequest{
		NewsID:   f.newsID,
		Language: "pt-BR",
		Avatar:   "dark_anchor",
	})
	require.Error(t, err)

	failed, err := f.store.ListVideos(context.Background(), models.StatusFailed)
	require.NoError(t, err)
	require.Len(t, failed, 1)
	assert.Nil(t, failed[0].Progress)
}

func TestDispatchBatchConcreteScenario(t *testing.T) {
	f := newFixture(t)

	results, err := f.svc.DispatchBatch(context.Background(), f.newsID, []string{"pt-BR", "en-US"}, "dark_anchor")
	require.NoError(t, err)
	require.Len(t, results, 2)

	for i, lang := range []string{"pt-BR", "en-US"} {
		require.NotNil(t, results[i].Record, "language %s should have a record", lang)
		assert.Equal(t, lang, results[i].Record.Language)
		assert.Equal(t, models.StatusGenerating, results[i].Record.Status)
		assert.Equal(t, "dark_anchor", results[i].Record.AvatarTemplate)
	}
	assert.Len(t, f.queue.renders, 2)
}

func TestDispatchBatchPartialFailureKeepsSiblings(t *testing.T) {
	f := newFixture(t)
	f.queue.failFor["es-ES"] = errors.New("voice pipeline unavailable")

	results, err := f.svc.DispatchBatch(context.Background(), f.newsID, []string{"pt-BR", "es-ES", "en-US"}, "dark_anchor")
	require.NoError(t, err)
	require.Len(t, results, 3)

	assert.NotNil(t, results[0].Record)
	assert.Nil(t, results[1].Record)
	assert.NotEmpty(t, results[1].Error)
	assert.NotNil(t, results[2].Record)
}

func TestDispatchBatchDedupesLanguages(t *testing.T) {
	f := newFixture(t)

	results, err := f.svc.DispatchBatch(context.Background(), f.newsID, []string{"pt-BR", "pt-BR", "en-US"}, "dark_anchor")
	require.NoError(t, err)
	assert.Len(t, results, 2)
}

func TestDispatchBatchEmptyLanguagesRejected(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.DispatchBatch(context.Background(), f.newsID, nil, "dark_anchor")
	assert.ErrorIs(t, err, ErrInvalidArgument)
}
