package production

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"newsanchor/api-gateway/models"
)

// Approve queues a ready record for publishing. Only ready records can
// be approved; everything else returns ErrInvalidState. The publish
// itself runs on the worker pool against the external publisher, and the
// record moves to published only when that job reports success.
func (s *Service) Approve(ctx context.Context, id uuid.UUID) (*models.VideoRecord, error) {
	rec, err := s.videos.GetVideo(ctx, id)
	if err != nil {
		return nil, err
	}
	if rec.Status != models.StatusReady {
		return nil, fmt.Errorf("%w: cannot approve a %s video", ErrInvalidState, rec.Status)
	}

	if err := s.videos.SetStatus(ctx, rec.ID, models.StatusApproved); err != nil {
		return nil, err
	}

	if err := s.queue.EnqueuePublish(rec.ID); err != nil {
		// Approval stands: the record stays approved and publishing can
		// be retried manually.
		s.log.WithError(err).WithField("video_id", rec.ID).Warn("Failed to enqueue publish job")
	}

	s.log.WithField("video_id", rec.ID).Info("Video approved")
	return s.videos.GetVideo(ctx, rec.ID)
}
