package production

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"newsanchor/api-gateway/internal/store"
	"newsanchor/api-gateway/models"
)

func TestApproveReadyVideo(t *testing.T) {
	f := newFixture(t)
	rec := f.readyVideo(t, "pt-BR")

	got, err := f.svc.Approve(context.Background(), rec.ID)
	require.NoError(t, err)

	assert.Equal(t, models.StatusApproved, got.Status)
	assert.Nil(t, got.Progress)
	require.Len(t, f.queue.publishes, 1)
	assert.Equal(t, rec.ID, f.queue.publishes[0])
}

func TestApprovePublishedIsInvalidState(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	rec := f.readyVideo(t, "pt-BR")
	require.NoError(t, f.store.SetStatus(ctx, rec.ID, models.StatusApproved))
	require.NoError(t, f.store.SetStatus(ctx, rec.ID, models.StatusPublished))

	_, err := f.svc.Approve(ctx, rec.ID)
	assert.ErrorIs(t, err, ErrInvalidState)
}

func TestApproveGeneratingIsInvalidState(t *testing.T) {
	f := newFixture(t)

	rec, err := f.svc.Dispatch(context.Background(), DispatchRequest{
		NewsID:   f.newsID,
		Language: "pt-BR",
		Avatar:   "dark_anchor",
	})
	require.NoError(t, err)

	_, err = f.svc.Approve(context.Background(), rec.ID)
	assert.ErrorIs(t, err, ErrInvalidState)
}

func TestApproveUnknownVideo(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Approve(context.Background(), uuid.New())
	assert.ErrorIs(t, err, store.ErrNotFound)
}
