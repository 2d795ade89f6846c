package config

import (
	"fmt"

	supa "github.com/supabase-community/supabase-go"
)

var SupabaseClient *supa.Client

// InitSupabase initializes the Supabase client from the loaded config.
// The service key is required: the API writes video and news rows and
// signs storage download URLs, neither of which the anon role can do.
func InitSupabase(cfg *Config) error {
	if cfg.Supabase.URL == "" || cfg.Supabase.ServiceKey == "" {
		return fmt.Errorf("supabase url and service key must be configured")
	}

	client, err := supa.NewClient(cfg.Supabase.URL, cfg.Supabase.ServiceKey, nil)
	if err != nil {
		return fmt.Errorf("initializing supabase client: %w", err)
	}

	SupabaseClient = client
	Log.Info("Supabase client initialized successfully.")
	return nil
}
