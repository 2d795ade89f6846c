package worker

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"newsanchor/api-gateway/internal/newsfetch"
	"newsanchor/api-gateway/internal/store"
	"newsanchor/api-gateway/models"
)

// NewsFetchJob pulls the upstream feed and stores unseen articles as
// pending news items. Items the store has already seen (same URL) are
// skipped, so re-triggering ingestion is harmless.
type NewsFetchJob struct {
	News    store.NewsStore
	Feed    newsfetch.Fetcher
	Log     *logrus.Logger
	Timeout time.Duration
}

func (j *NewsFetchJob) ID() string {
	return "newsfetch/" + time.Now().Format("20060102T150405")
}

func (j *NewsFetchJob) Execute() error {
	ctx, cancel := context.WithTimeout(context.Background(), j.Timeout)
	defer cancel()

	articles, err := j.Feed.Fetch(ctx)
	if err != nil {
		return fmt.Errorf("fetching feed: %w", err)
	}

	created := 0
	for _, a := range articles {
		if a.URL == "" || a.Title == "" {
			continue
		}
		now := time.Now()
		item := &models.NewsItem{
			ID:        uuid.New(),
			Title:     a.Title,
			Source:    a.Source,
			URL:       a.URL,
			Status:    models.NewsStatusPending,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if a.Summary != "" {
			summary := a.Summary
			item.Summary = &summary
		}
		isNew, err := j.News.UpsertNews(ctx, item)
		if err != nil {
			j.Log.WithError(err).WithField("url", a.URL).Error("Failed to store news item")
			continue
		}
		if isNew {
			created++
		}
	}

	j.Log.WithFields(logrus.Fields{
		"fetched": len(articles),
		"created": created,
	}).Info("News ingestion finished")
	return nil
}
