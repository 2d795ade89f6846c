package handlers

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	"newsanchor/api-gateway/models"
	"newsanchor/api-gateway/utils"
)

// GetDashboardStats returns the aggregate counters the dashboard home
// polls every 30s.
func (h *ApplicationHandler) GetDashboardStats(c *fiber.Ctx) error {
	videoCounts, err := h.Videos.CountVideosByStatus(c.Context())
	if err != nil {
		h.Logger.WithError(err).Error("Failed to count video records")
		return utils.RespondWithError(c, fiber.StatusInternalServerError, "Failed to compute dashboard stats")
	}
	newsCounts, err := h.News.CountNewsByStatus(c.Context())
	if err != nil {
		h.Logger.WithError(err).Error("Failed to count news items")
		return utils.RespondWithError(c, fiber.StatusInternalServerError, "Failed to compute dashboard stats")
	}

	total := 0
	for _, n := range videoCounts {
		total += n
	}
	stats := models.DashboardStats{
		TotalVideos:     total,
		VideosInFlight:  videoCounts[models.StatusGenerating] + videoCounts[models.StatusProcessing],
		VideosReady:     videoCounts[models.StatusReady] + videoCounts[models.StatusApproved],
		VideosPublished: videoCounts[models.StatusPublished],
		VideosFailed:    videoCounts[models.StatusFailed],
		NewsPending:     newsCounts[models.NewsStatusPending],
		NewsApproved:    newsCounts[models.NewsStatusApproved],
	}
	return utils.RespondWithJSON(c, fiber.StatusOK, stats)
}

// GetActiveJobs returns the in-flight records the dashboard polls every
// 5s for the job list.
func (h *ApplicationHandler) GetActiveJobs(c *fiber.Ctx) error {
	jobs := make([]models.ActiveJob, 0)
	for _, status := range []string{models.StatusGenerating, models.StatusProcessing} {
		records, err := h.Videos.ListVideos(c.Context(), status)
		if err != nil {
			h.Logger.WithError(err).Error("Failed to list in-flight records")
			return utils.RespondWithError(c, fiber.StatusInternalServerError, "Failed to fetch active jobs")
		}
		for _, rec := range records {
			progress := 0
			if rec.Progress != nil {
				progress = *rec.Progress
			}
			jobs = append(jobs, models.ActiveJob{
				VideoID:   rec.ID,
				Title:     rec.Title,
				Language:  rec.Language,
				Status:    rec.Status,
				Progress:  progress,
				StartedAt: rec.CreatedAt,
			})
		}
	}
	return utils.RespondWithJSON(c, fiber.StatusOK, jobs)
}

// GetAPIStatus probes the external collaborators for the api-status
// panel, polled every 60s.
func (h *ApplicationHandler) GetAPIStatus(c *fiber.Ctx) error {
	statuses := make([]models.ServiceStatus, 0, len(h.Probes))
	for _, probe := range h.Probes {
		ctx, cancel := context.WithTimeout(c.Context(), 3*time.Second)
		start := time.Now()
		err := probe.Check(ctx)
		cancel()

		st := models.ServiceStatus{
			Name:      probe.Name,
			Healthy:   err == nil,
			LatencyMS: time.Since(start).Milliseconds(),
		}
		if err != nil {
			st.Detail = err.Error()
		}
		statuses = append(statuses, st)
	}
	return utils.RespondWithJSON(c, fiber.StatusOK, statuses)
}
