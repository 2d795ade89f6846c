package worker

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"newsanchor/api-gateway/internal/production"
	"newsanchor/api-gateway/internal/renderclient"
	"newsanchor/api-gateway/internal/store"
	"newsanchor/api-gateway/models"
)

// RenderJob drives one video record through the render service: submit
// the work order, poll for progress, and land the record in ready or
// failed. Progress ticks flip the record from generating to processing
// on the first running poll.
type RenderJob struct {
	Order        production.RenderOrder
	Videos       store.VideoStore
	Renderer     renderclient.RenderService
	Log          *logrus.Logger
	PollInterval time.Duration
	Timeout      time.Duration
}

func (j *RenderJob) ID() string {
	return "render/" + j.Order.VideoID.String()
}

func (j *RenderJob) Execute() error {
	ctx, cancel := context.WithTimeout(context.Background(), j.Timeout)
	defer cancel()

	req := renderclient.RenderRequest{
		VideoID:             j.Order.VideoID.String(),
		NewsID:              j.Order.NewsID.String(),
		Title:               j.Order.Title,
		LanguageCode:        j.Order.Language.Code,
		VoiceName:           j.Order.Language.VoiceName,
		AvatarID:            j.Order.Avatar.ID,
		AvatarStyle:         j.Order.Avatar.Style,
		Script:              j.Order.CustomScript,
		Instruction:         j.Order.Instruction,
		RegenerateScript:    j.Order.Regenerate.Script,
		RegenerateVoiceover: j.Order.Regenerate.Voiceover,
		RegenerateAvatar:    j.Order.Regenerate.Avatar,
	}

	jobID, err := j.Renderer.StartRender(ctx, req)
	if err != nil {
		j.fail(fmt.Sprintf("starting render: %v", err))
		return err
	}

	ticker := time.NewTicker(j.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			err := fmt.Errorf("render timed out after %s", j.Timeout)
			j.fail(err.Error())
			return err
		case <-ticker.C:
			status, err := j.Renderer.JobStatus(ctx, jobID)
			if err != nil {
				// Transient poll failures are not terminal; the timeout
				// bounds how long we keep trying.
				j.Log.WithError(err).WithField("video_id", j.Order.VideoID).Warn("Render status poll failed")
				continue
			}

			switch status.State {
			case renderclient.JobQueued:
				// Not started yet, keep waiting.
			case renderclient.JobRunning:
				progress := status.Progress
				if progress < 0 {
					progress = 0
				} else if progress > 100 {
					progress = 100
				}
				if err := j.Videos.SetProgress(ctx, j.Order.VideoID, models.StatusProcessing, progress); err != nil {
					j.Log.WithError(err).WithField("video_id", j.Order.VideoID).Error("Failed to record render progress")
				}
			case renderclient.JobDone:
				if err := j.Videos.MarkReady(ctx, j.Order.VideoID, status.Script, status.ViralScore, status.StoragePath); err != nil {
					return fmt.Errorf("marking record ready: %w", err)
				}
				return nil
			case renderclient.JobError:
				j.fail(status.Error)
				return fmt.Errorf("render failed: %s", status.Error)
			default:
				j.Log.WithFields(logrus.Fields{
					"video_id": j.Order.VideoID,
					"state":    status.State,
				}).Warn("Render service reported unknown state")
			}
		}
	}
}

func (j *RenderJob) fail(message string) {
	// A fresh context: the job context may already be expired.
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := j.Videos.MarkFailed(ctx, j.Order.VideoID, message); err != nil {
		j.Log.WithError(err).WithField("video_id", j.Order.VideoID).Error("Failed to mark record failed")
	}
}
