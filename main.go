package main

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"

	"newsanchor/api-gateway/config"
	"newsanchor/api-gateway/handlers"
	"newsanchor/api-gateway/internal/catalog"
	"newsanchor/api-gateway/internal/newsfetch"
	"newsanchor/api-gateway/internal/production"
	"newsanchor/api-gateway/internal/renderclient"
	"newsanchor/api-gateway/internal/store"
	"newsanchor/api-gateway/internal/worker"
	"newsanchor/api-gateway/middleware"
)

func main() {
	config.InitLogger()
	log := config.Log

	cfg, err := config.Load("config/config.yaml")
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	cat, err := catalog.Load(cfg.CatalogPath)
	if err != nil {
		log.Fatalf("Failed to load language/avatar catalog: %v", err)
	}
	log.Infof("Catalog loaded: %d languages, %d avatars", len(cat.Languages), len(cat.Avatars))

	// Supabase is optional in development: without it the service runs on
	// the in-memory store and downloads are disabled.
	var (
		videos store.VideoStore
		news   store.NewsStore
		signer handlers.AssetSigner
	)
	if cfg.Supabase.URL != "" && cfg.Supabase.ServiceKey != "" {
		if err := config.InitSupabase(cfg); err != nil {
			log.Fatalf("Failed to initialize Supabase: %v", err)
		}
		sb := store.NewSupabaseStore(config.SupabaseClient)
		videos, news = sb, sb
		signer = &handlers.SupabaseSigner{
			Client:    config.SupabaseClient,
			Bucket:    cfg.Supabase.Bucket,
			ExpirySec: 3600,
		}
	} else {
		log.Warn("Supabase not configured, using in-memory store")
		mem := store.NewMemoryStore()
		videos, news = mem, mem
		signer = noSigner{}
	}

	renderer := renderclient.NewClient(cfg.Render.Addr)
	publisher := renderclient.NewPublisherClient(cfg.Publisher.Addr)
	feed := newsfetch.NewClient(cfg.NewsFeed.Addr)

	pool := worker.NewPool(cfg.Worker.Count, cfg.Worker.QueueSize, log)
	pool.Run()
	defer pool.Stop()

	queue := worker.NewQueue(
		pool, videos, news, renderer, publisher, feed, log,
		time.Duration(cfg.Render.PollSeconds)*time.Second,
		time.Duration(cfg.Render.TimeoutMins)*time.Minute,
	)

	prod := production.NewService(videos, news, cat, queue, log)

	h := &handlers.ApplicationHandler{
		Logger:     log,
		Videos:     videos,
		News:       news,
		Catalog:    cat,
		Production: prod,
		Ingest:     queue,
		Signer:     signer,
		Probes: []handlers.ServiceProbe{
			{Name: "render-service", Check: renderer.Health},
			{Name: "publisher", Check: publisher.Health},
			{Name: "news-feed", Check: feed.Health},
		},
		LoginURL: cfg.Server.LoginURL,
	}

	app := fiber.New()
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))
	app.Use(middleware.RequestLogger(log))

	h.RegisterRoutes(app, cfg.Server.ServiceToken)

	log.Infof("Starting API Gateway on %s...", cfg.Server.Port)
	log.Fatal(app.Listen(cfg.Server.Port))
}

// noSigner stands in when no storage backend is configured.
type noSigner struct{}

func (noSigner) SignedDownloadURL(string) (string, error) {
	return "", fiber.ErrNotImplemented
}
