package handlers

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"newsanchor/api-gateway/internal/catalog"
	"newsanchor/api-gateway/internal/production"
	"newsanchor/api-gateway/internal/store"
	"newsanchor/api-gateway/middleware"
)

// IngestQueue is what the news handlers expect from the worker queue.
type IngestQueue interface {
	EnqueueNewsFetch() error
}

// AssetSigner turns a storage path into a time-limited download URL.
type AssetSigner interface {
	SignedDownloadURL(path string) (string, error)
}

// ServiceProbe is one external collaborator health check for the
// api-status panel.
type ServiceProbe struct {
	Name  string
	Check func(ctx context.Context) error
}

// ApplicationHandler holds shared dependencies for handlers.
type ApplicationHandler struct {
	Logger     *logrus.Logger
	Videos     store.VideoStore
	News       store.NewsStore
	Catalog    *catalog.Catalog
	Production *production.Service
	Ingest     IngestQueue
	Signer     AssetSigner
	Probes     []ServiceProbe
	LoginURL   string
}

// RegisterRoutes mounts the full HTTP surface on the app. The login
// redirect stays outside the token check so an unauthenticated dashboard
// can still reach it.
func (h *ApplicationHandler) RegisterRoutes(app *fiber.App, serviceToken string) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status":  "ok",
			"message": "API Gateway is healthy",
		})
	})

	app.Get("/api/login", h.Login)

	api := app.Group("/api", middleware.RequireServiceToken(serviceToken))

	api.Get("/dashboard/stats", h.GetDashboardStats)
	api.Get("/dashboard/jobs", h.GetActiveJobs)
	api.Get("/dashboard/api-status", h.GetAPIStatus)

	api.Post("/news/fetch", h.FetchNews)
	api.Get("/news", h.ListNews)

	api.Post("/test/video-pipeline", h.TestVideoPipeline)

	api.Get("/videos", h.ListVideos)
	api.Get("/videos/stats", h.GetVideoStats)
	api.Post("/videos/generate", h.GenerateVideo)
	api.Post("/videos/batch-generate", h.BatchGenerateVideos)
	api.Put("/videos/:id/approve", h.ApproveVideo)
	api.Put("/videos/:id/edit", h.EditVideo)
	api.Get("/videos/:id/download", h.DownloadVideo)
}

// Login redirects the dashboard to the external auth provider.
func (h *ApplicationHandler) Login(c *fiber.Ctx) error {
	return c.Redirect(h.LoginURL, fiber.StatusFound)
}
