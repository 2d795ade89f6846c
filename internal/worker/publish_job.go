package worker

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"newsanchor/api-gateway/internal/renderclient"
	"newsanchor/api-gateway/internal/store"
	"newsanchor/api-gateway/models"
)

// PublishJob hands an approved record to the external publisher and
// marks it published on success. On failure the record stays approved so
// the operator can re-approve or investigate; publishing is the only
// edge out of approved besides an edit.
type PublishJob struct {
	VideoID   uuid.UUID
	Videos    store.VideoStore
	Publisher renderclient.Publisher
	Log       *logrus.Logger
	Timeout   time.Duration
}

func (j *PublishJob) ID() string {
	return "publish/" + j.VideoID.String()
}

func (j *PublishJob) Execute() error {
	ctx, cancel := context.WithTimeout(context.Background(), j.Timeout)
	defer cancel()

	rec, err := j.Videos.GetVideo(ctx, j.VideoID)
	if err != nil {
		return fmt.Errorf("loading record %s: %w", j.VideoID, err)
	}
	if rec.Status != models.StatusApproved {
		// The record moved on (e.g. an edit re-entered processing)
		// between approval and this job running; nothing to publish.
		j.Log.WithFields(logrus.Fields{
			"video_id": rec.ID,
			"status":   rec.Status,
		}).Warn("Skipping publish for non-approved record")
		return nil
	}

	storagePath := ""
	if rec.StoragePath != nil {
		storagePath = *rec.StoragePath
	}
	err = j.Publisher.Publish(ctx, renderclient.PublishRequest{
		VideoID:     rec.ID.String(),
		Title:       rec.Title,
		Language:    rec.Language,
		StoragePath: storagePath,
	})
	if err != nil {
		return fmt.Errorf("publishing %s: %w", rec.ID, err)
	}

	if err := j.Videos.SetStatus(ctx, rec.ID, models.StatusPublished); err != nil {
		return fmt.Errorf("marking %s published: %w", rec.ID, err)
	}
	j.Log.WithField("video_id", rec.ID).Info("Video published")
	return nil
}
