package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"
)

// Config holds everything the service needs at startup. Values come from
// config.yaml and can be overridden per-field with environment variables,
// which is how deployments inject secrets.
type Config struct {
	Server struct {
		Port         string `yaml:"port"`
		ServiceToken string `yaml:"service_token"`
		LoginURL     string `yaml:"login_url"`
	} `yaml:"server"`
	Supabase struct {
		URL        string `yaml:"url"`
		ServiceKey string `yaml:"service_key"`
		Bucket     string `yaml:"bucket"`
	} `yaml:"supabase"`
	Render struct {
		Addr         string `yaml:"addr"`
		PollSeconds  int    `yaml:"poll_seconds"`
		TimeoutMins  int    `yaml:"timeout_minutes"`
	} `yaml:"render"`
	Publisher struct {
		Addr string `yaml:"addr"`
	} `yaml:"publisher"`
	NewsFeed struct {
		Addr string `yaml:"addr"`
	} `yaml:"news_feed"`
	Worker struct {
		Count     int `yaml:"count"`
		QueueSize int `yaml:"queue_size"`
	} `yaml:"worker"`
	CatalogPath string `yaml:"catalog_path"`
}

var AppConfig *Config

// Load reads the YAML config file at path, then applies environment
// overrides. A missing file is not fatal: everything can come from the
// environment.
func Load(path string) (*Config, error) {
	// .env is optional; godotenv only fills variables that are unset.
	_ = godotenv.Load()

	cfg := defaults()

	if f, err := os.Open(path); err == nil {
		defer f.Close()
		if err := yaml.NewDecoder(f).Decode(cfg); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", path, err)
		}
	}

	applyEnv(cfg)

	if cfg.Server.Port == "" {
		cfg.Server.Port = ":8080"
	}
	AppConfig = cfg
	return cfg, nil
}

func defaults() *Config {
	cfg := &Config{}
	cfg.Server.Port = ":8080"
	cfg.Server.LoginURL = "/auth/login"
	cfg.Supabase.Bucket = "rendered-videos"
	cfg.Render.PollSeconds = 5
	cfg.Render.TimeoutMins = 20
	cfg.Worker.Count = 4
	cfg.Worker.QueueSize = 64
	cfg.CatalogPath = "config/catalog.yaml"
	return cfg
}

func applyEnv(cfg *Config) {
	setString(&cfg.Server.Port, "PORT")
	setString(&cfg.Server.ServiceToken, "SERVICE_TOKEN")
	setString(&cfg.Server.LoginURL, "LOGIN_URL")
	setString(&cfg.Supabase.URL, "SUPABASE_URL")
	setString(&cfg.Supabase.ServiceKey, "SUPABASE_SERVICE_KEY")
	setString(&cfg.Supabase.Bucket, "SUPABASE_BUCKET")
	setString(&cfg.Render.Addr, "RENDER_SERVICE_ADDR")
	setString(&cfg.Publisher.Addr, "PUBLISHER_ADDR")
	setString(&cfg.NewsFeed.Addr, "NEWS_FEED_ADDR")
	setString(&cfg.CatalogPath, "CATALOG_PATH")
	setInt(&cfg.Worker.Count, "WORKER_COUNT")
	setInt(&cfg.Worker.QueueSize, "WORKER_QUEUE_SIZE")
	setInt(&cfg.Render.PollSeconds, "RENDER_POLL_SECONDS")
	setInt(&cfg.Render.TimeoutMins, "RENDER_TIMEOUT_MINUTES")
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}
