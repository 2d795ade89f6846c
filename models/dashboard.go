package models

import (
	"time"

	"github.com/google/uuid"
)

// DashboardStats is the aggregate view polled by the dashboard home.
type DashboardStats struct {
	TotalVideos     int `json:"total_videos"`
	VideosInFlight  int `json:"videos_in_flight"`
	VideosReady     int `json:"videos_ready"`
	VideosPublished int `json:"videos_published"`
	VideosFailed    int `json:"videos_failed"`
	NewsPending     int `json:"news_pending"`
	NewsApproved    int `json:"news_approved"`
}

// VideoStats is the production aggregate behind /api/videos/stats.
type VideoStats struct {
	ByStatus       map[string]int `json:"by_status"`
	ByLanguage     map[string]int `json:"by_language"`
	AvgViralScore  *float64       `json:"avg_viral_score,omitempty"`
}

// ActiveJob is the dashboard's view of an in-flight record.
type ActiveJob struct {
	VideoID   uuid.UUID `json:"video_id"`
	Title     string    `json:"title"`
	Language  string    `json:"language"`
	Status    string    `json:"status"`
	Progress  int       `json:"progress"`
	StartedAt time.Time `json:"started_at"`
}

// ServiceStatus reports the health of one external collaborator for the
// api-status panel.
type ServiceStatus struct {
	Name      string `json:"name"`
	Healthy   bool   `json:"healthy"`
	Detail    string `json:"detail,omitempty"`
	LatencyMS int64  `json:"latency_ms"`
}
