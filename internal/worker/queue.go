package worker

import (
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"newsanchor/api-gateway/internal/newsfetch"
	"newsanchor/api-gateway/internal/production"
	"newsanchor/api-gateway/internal/renderclient"
	"newsanchor/api-gateway/internal/store"
)

// Queue is the production.RenderQueue implementation: it packages
// workflow orders into jobs and submits them to the pool.
type Queue struct {
	pool          *Pool
	videos        store.VideoStore
	news          store.NewsStore
	renderer      renderclient.RenderService
	publisher     renderclient.Publisher
	feed          newsfetch.Fetcher
	log           *logrus.Logger
	pollInterval  time.Duration
	renderTimeout time.Duration
}

func NewQueue(
	pool *Pool,
	videos store.VideoStore,
	news store.NewsStore,
	renderer renderclient.RenderService,
	publisher renderclient.Publisher,
	feed newsfetch.Fetcher,
	log *logrus.Logger,
	pollInterval, renderTimeout time.Duration,
) *Queue {
	return &Queue{
		pool:          pool,
		videos:        videos,
		news:          news,
		renderer:      renderer,
		publisher:     publisher,
		feed:          feed,
		log:           log,
		pollInterval:  pollInterval,
		renderTimeout: renderTimeout,
	}
}

func (q *Queue) EnqueueRender(order production.RenderOrder) error {
	return q.pool.Submit(&RenderJob{
		Order:        order,
		Videos:       q.videos,
		Renderer:     q.renderer,
		Log:          q.log,
		PollInterval: q.pollInterval,
		Timeout:      q.renderTimeout,
	})
}

func (q *Queue) EnqueuePublish(videoID uuid.UUID) error {
	return q.pool.Submit(&PublishJob{
		VideoID:   videoID,
		Videos:    q.videos,
		Publisher: q.publisher,
		Log:       q.log,
		Timeout:   q.renderTimeout,
	})
}

func (q *Queue) EnqueueNewsFetch() error {
	return q.pool.Submit(&NewsFetchJob{
		News:    q.news,
		Feed:    q.feed,
		Log:     q.log,
		Timeout: q.renderTimeout,
	})
}
