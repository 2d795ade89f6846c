package handlers

import (
	"github.com/gofiber/fiber/v2"

	"newsanchor/api-gateway/models"
	"newsanchor/api-gateway/utils"
)

// FetchNews triggers an ingestion run against the upstream feed. The
// run is asynchronous: the response only acknowledges the trigger.
func (h *ApplicationHandler) FetchNews(c *fiber.Ctx) error {
	if err := h.Ingest.EnqueueNewsFetch(); err != nil {
		h.Logger.WithError(err).Error("Failed to enqueue news ingestion")
		return utils.RespondWithError(c, fiber.StatusServiceUnavailable, "Ingestion queue is busy, try again shortly")
	}
	return utils.RespondWithJSON(c, fiber.StatusAccepted, fiber.Map{
		"message": "News ingestion started",
	})
}

// ListNews returns ingested items, optionally filtered with ?status=.
// The dashboard uses ?status=approved to list production sources.
func (h *ApplicationHandler) ListNews(c *fiber.Ctx) error {
	status := c.Query("status")
	switch status {
	case "", models.NewsStatusPending, models.NewsStatusApproved, models.NewsStatusRejected:
	default:
		return utils.RespondWithError(c, fiber.StatusBadRequest, "Unknown news status filter")
	}

	items, err := h.News.ListNews(c.Context(), status)
	if err != nil {
		h.Logger.WithError(err).Error("Failed to list news items")
		return utils.RespondWithError(c, fiber.StatusInternalServerError, "Failed to fetch news")
	}
	return utils.RespondWithJSON(c, fiber.StatusOK, items)
}
