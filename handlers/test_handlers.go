package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"newsanchor/api-gateway/internal/production"
	"newsanchor/api-gateway/models"
	"newsanchor/api-gateway/utils"
)

const smokeTestURL = "smoke-test://video-pipeline"

// TestVideoPipeline dispatches one real render for a fixture news item
// so an operator can verify the whole chain (queue, render service,
// storage) without touching editorial content. The fixture id is
// derived from its URL, so repeated runs reuse the same item.
func (h *ApplicationHandler) TestVideoPipeline(c *fiber.Ctx) error {
	now := time.Now()
	item := &models.NewsItem{
		ID:        uuid.NewSHA1(uuid.NameSpaceURL, []byte(smokeTestURL)),
		Title:     "Pipeline smoke test",
		Source:    "internal",
		URL:       smokeTestURL,
		Status:    models.NewsStatusApproved,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if _, err := h.News.UpsertNews(c.Context(), item); err != nil {
		h.Logger.WithError(err).Error("Failed to store smoke test news item")
		return utils.RespondWithError(c, fiber.StatusInternalServerError, "Failed to prepare smoke test")
	}

	lang := h.Catalog.Languages[0]
	avatar := h.Catalog.Avatars[0]
	rec, err := h.Production.Dispatch(c.Context(), production.DispatchRequest{
		NewsID:   item.ID,
		Language: lang.Code,
		Avatar:   avatar.ID,
	})
	if err != nil {
		return h.respondWorkflowError(c, err)
	}
	return utils.RespondWithJSON(c, fiber.StatusAccepted, rec)
}
