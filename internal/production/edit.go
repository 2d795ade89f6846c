package production

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"newsanchor/api-gateway/models"
)

// EditRequest selects which aspects of a finished video to regenerate.
// This is a partial-update contract: a voiceover-only edit must not
// re-render the avatar, and vice versa.
type EditRequest struct {
	Script            bool   `json:"script"`
	Voiceover         bool   `json:"voiceover"`
	Avatar            bool   `json:"avatar"`
	CustomInstruction bool   `json:"custom_instruction"`
	InstructionText   string `json:"instruction_text,omitempty"`
}

// Edit transitions a ready or approved record back to processing and
// enqueues a partial regeneration of the flagged aspects. A request with
// no flag set is rejected: a no-op edit would burn a render cycle for
// nothing. Editing an in-flight or published record returns
// ErrInvalidState and leaves the record unmodified.
func (s *Service) Edit(ctx context.Context, id uuid.UUID, req EditRequest) (*models.VideoRecord, error) {
	if !req.Script && !req.Voiceover && !req.Avatar && !req.CustomInstruction {
		return nil, fmt.Errorf("%w: at least one regeneration flag must be set", ErrInvalidArgument)
	}
	if req.CustomInstruction && strings.TrimSpace(req.InstructionText) == "" {
		return nil, fmt.Errorf("%w: custom_instruction requires instruction_text", ErrInvalidArgument)
	}

	rec, err := s.videos.GetVideo(ctx, id)
	if err != nil {
		return nil, err
	}
	if !CanTransition(rec.Status, models.StatusProcessing) {
		return nil, fmt.Errorf("%w: cannot edit a %s video", ErrInvalidState, rec.Status)
	}

	lang, ok := s.catalog.Language(rec.Language)
	if !ok {
		return nil, fmt.Errorf("record %s references unknown language %q", rec.ID, rec.Language)
	}
	avatar, ok := s.catalog.Avatar(rec.AvatarTemplate)
	if !ok {
		return nil, fmt.Errorf("record %s references unknown avatar %q", rec.ID, rec.AvatarTemplate)
	}

	if err := s.videos.ResetForEdit(ctx, rec.ID, nil); err != nil {
		return nil, err
	}

	order := RenderOrder{
		VideoID:     rec.ID,
		NewsID:      rec.NewsID,
		Title:       rec.Title,
		Language:    lang,
		Avatar:      avatar,
		Instruction: req.InstructionText,
		Regenerate: RegenerateFlags{
			Script:    req.Script,
			Voiceover: req.Voiceover,
			Avatar:    req.Avatar,
		},
	}
	if err := s.queue.EnqueueRender(order); err != nil {
		if markErr := s.videos.MarkFailed(ctx, rec.ID, fmt.Sprintf("enqueue failed: %v", err)); markErr != nil {
			s.log.WithError(markErr).WithField("video_id", rec.ID).Error("Failed to mark record failed after enqueue error")
		}
		return nil, fmt.Errorf("enqueueing regeneration for %s: %w", rec.ID, err)
	}

	s.log.WithFields(logrus.Fields{
		"video_id":  rec.ID,
		"script":    req.Script,
		"voiceover": req.Voiceover,
		"avatar":    req.Avatar,
	}).Info("Dispatched video regeneration")

	return s.videos.GetVideo(ctx, rec.ID)
}
