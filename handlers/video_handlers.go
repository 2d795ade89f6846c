package handlers

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"newsanchor/api-gateway/internal/production"
	"newsanchor/api-gateway/internal/store"
	"newsanchor/api-gateway/models"
	"newsanchor/api-gateway/utils"
)

var validate = validator.New()

// GenerateVideoRequest is the body of POST /api/videos/generate.
type GenerateVideoRequest struct {
	NewsID       string `json:"news_id" validate:"required,uuid4"`
	Language     string `json:"language" validate:"required"`
	Avatar       string `json:"avatar" validate:"required"`
	CustomScript string `json:"custom_script,omitempty"`
}

// BatchGenerateRequest is the body of POST /api/videos/batch-generate.
type BatchGenerateRequest struct {
	NewsID    string   `json:"news_id" validate:"required,uuid4"`
	Languages []string `json:"languages" validate:"required,min=1"`
	Avatar    string   `json:"avatar" validate:"required"`
}

// GenerateVideo dispatches a single-language production request.
func (h *ApplicationHandler) GenerateVideo(c *fiber.Ctx) error {
	payload := new(GenerateVideoRequest)
	if err := c.BodyParser(payload); err != nil {
		return utils.RespondWithError(c, fiber.StatusBadRequest, fmt.Sprintf("Invalid request body: %v", err))
	}
	if err := validate.Struct(payload); err != nil {
		return utils.RespondWithError(c, fiber.StatusBadRequest,
			fmt.Sprintf("Validation failed: %v", utils.FormatValidationErrors(err)))
	}

	newsID, err := uuid.Parse(payload.NewsID)
	if err != nil {
		return utils.RespondWithError(c, fiber.StatusBadRequest, "Invalid news ID format")
	}

	rec, err := h.Production.Dispatch(c.Context(), production.DispatchRequest{
		NewsID:       newsID,
		Language:     payload.Language,
		Avatar:       payload.Avatar,
		CustomScript: payload.CustomScript,
	})
	if err != nil {
		return h.respondWorkflowError(c, err)
	}
	return utils.RespondWithJSON(c, fiber.StatusCreated, rec)
}

// BatchGenerateVideos fans one news item out to several languages. The
// response always carries the per-language outcome list; one language
// failing does not fail the request.
func (h *ApplicationHandler) BatchGenerateVideos(c *fiber.Ctx) error {
	payload := new(BatchGenerateRequest)
	if err := c.BodyParser(payload); err != nil {
		return utils.RespondWithError(c, fiber.StatusBadRequest, fmt.Sprintf("Invalid request body: %v", err))
	}
	if err := validate.Struct(payload); err != nil {
		return utils.RespondWithError(c, fiber.StatusBadRequest,
			fmt.Sprintf("Validation failed: %v", utils.FormatValidationErrors(err)))
	}

	newsID, err := uuid.Parse(payload.NewsID)
	if err != nil {
		return utils.RespondWithError(c, fiber.StatusBadRequest, "Invalid news ID format")
	}

	results, err := h.Production.DispatchBatch(c.Context(), newsID, payload.Languages, payload.Avatar)
	if err != nil {
		return h.respondWorkflowError(c, err)
	}
	return utils.RespondWithJSON(c, fiber.StatusCreated, results)
}

// ListVideos returns production records, newest first, optionally
// filtered with ?status=.
func (h *ApplicationHandler) ListVideos(c *fiber.Ctx) error {
	records, err := h.Videos.ListVideos(c.Context(), c.Query("status"))
	if err != nil {
		h.Logger.WithError(err).Error("Failed to list video records")
		return utils.RespondWithError(c, fiber.StatusInternalServerError, "Failed to fetch videos")
	}
	return utils.RespondWithJSON(c, fiber.StatusOK, records)
}

// GetVideoStats returns the production aggregates behind the videos
// page header.
func (h *ApplicationHandler) GetVideoStats(c *fiber.Ctx) error {
	records, err := h.Videos.ListVideos(c.Context(), "")
	if err != nil {
		h.Logger.WithError(err).Error("Failed to list video records for stats")
		return utils.RespondWithError(c, fiber.StatusInternalServerError, "Failed to compute video stats")
	}

	stats := models.VideoStats{
		ByStatus:   make(map[string]int),
		ByLanguage: make(map[string]int),
	}
	scoreSum, scored := 0, 0
	for _, rec := range records {
		stats.ByStatus[rec.Status]++
		stats.ByLanguage[rec.Language]++
		if rec.ViralScore != nil {
			scoreSum += *rec.ViralScore
			scored++
		}
	}
	if scored > 0 {
		avg := float64(scoreSum) / float64(scored)
		stats.AvgViralScore = &avg
	}
	return utils.RespondWithJSON(c, fiber.StatusOK, stats)
}

// ApproveVideo moves a ready record to approved and queues publishing.
func (h *ApplicationHandler) ApproveVideo(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return utils.RespondWithError(c, fiber.StatusBadRequest, "Invalid video ID format")
	}

	rec, err := h.Production.Approve(c.Context(), id)
	if err != nil {
		return h.respondWorkflowError(c, err)
	}
	return utils.RespondWithJSON(c, fiber.StatusOK, rec)
}

// EditVideo re-enters a finished record into processing, regenerating
// only the flagged aspects.
func (h *ApplicationHandler) EditVideo(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return utils.RespondWithError(c, fiber.StatusBadRequest, "Invalid video ID format")
	}

	payload := new(production.EditRequest)
	if err := c.BodyParser(payload); err != nil {
		return utils.RespondWithError(c, fiber.StatusBadRequest, fmt.Sprintf("Invalid request body: %v", err))
	}

	rec, err := h.Production.Edit(c.Context(), id, *payload)
	if err != nil {
		return h.respondWorkflowError(c, err)
	}
	return utils.RespondWithJSON(c, fiber.StatusOK, rec)
}

// DownloadVideo redirects to a signed URL for the finished asset.
func (h *ApplicationHandler) DownloadVideo(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return utils.RespondWithError(c, fiber.StatusBadRequest, "Invalid video ID format")
	}

	rec, err := h.Videos.GetVideo(c.Context(), id)
	if err != nil {
		return h.respondWorkflowError(c, err)
	}
	if rec.InFlight() || rec.Status == models.StatusFailed || rec.StoragePath == nil {
		return utils.RespondWithError(c, fiber.StatusConflict, "Video has no downloadable asset yet")
	}

	url, err := h.Signer.SignedDownloadURL(*rec.StoragePath)
	if err != nil {
		h.Logger.WithError(err).WithField("video_id", rec.ID).Error("Failed to sign download URL")
		return utils.RespondWithError(c, fiber.StatusInternalServerError, "Failed to generate download URL")
	}
	return c.Redirect(url, fiber.StatusFound)
}

// respondWorkflowError maps workflow errors onto the HTTP surface so
// the dashboard can tell "you can't do that right now" (409) apart from
// "that request is wrong" (400) and generic failures.
func (h *ApplicationHandler) respondWorkflowError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, production.ErrInvalidArgument):
		return utils.RespondWithError(c, fiber.StatusBadRequest, err.Error())
	case errors.Is(err, production.ErrInvalidState), errors.Is(err, store.ErrDuplicateActive):
		return utils.RespondWithError(c, fiber.StatusConflict, err.Error())
	case errors.Is(err, store.ErrNotFound):
		return utils.RespondWithError(c, fiber.StatusNotFound, "Record not found")
	default:
		h.Logger.WithError(err).Error("Workflow operation failed")
		return utils.RespondWithError(c, fiber.StatusInternalServerError, "Operation failed")
	}
}
