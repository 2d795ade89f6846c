// Package renderclient wraps the external render service that turns
// script + voice + avatar into a finished video asset. The service is a
// collaborator, not part of this codebase: this client only starts jobs
// and polls their status.
package renderclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Render job states as reported by the render service.
const (
	JobQueued  = "queued"
	JobRunning = "running"
	JobDone    = "done"
	JobError   = "error"
)

// RenderRequest is the work order posted to the render service. The
// regenerate flags make a partial re-render: unset aspects keep their
// existing assets.
type RenderRequest struct {
	VideoID             string `json:"video_id"`
	NewsID              string `json:"news_id"`
	Title               string `json:"title"`
	LanguageCode        string `json:"language_code"`
	VoiceName           string `json:"voice_name"`
	AvatarID            string `json:"avatar_id"`
	AvatarStyle         string `json:"avatar_style"`
	Script              string `json:"script,omitempty"`
	Instruction         string `json:"instruction,omitempty"`
	RegenerateScript    bool   `json:"regenerate_script,omitempty"`
	RegenerateVoiceover bool   `json:"regenerate_voiceover,omitempty"`
	RegenerateAvatar    bool   `json:"regenerate_avatar,omitempty"`
}

// JobStatus is one poll result for a render job.
type JobStatus struct {
	State       string `json:"state"`
	Progress    int    `json:"progress"`
	Script      string `json:"script,omitempty"`
	ViralScore  *int   `json:"viral_score,omitempty"`
	StoragePath string `json:"storage_path,omitempty"`
	Error       string `json:"error,omitempty"`
}

// RenderService is the operations the workflow expects from the render
// backend. The concrete implementation is the HTTP client below; tests
// substitute their own.
type RenderService interface {
	StartRender(ctx context.Context, req RenderRequest) (string, error)
	JobStatus(ctx context.Context, jobID string) (*JobStatus, error)
	Health(ctx context.Context) error
}

// Client is the HTTP implementation of RenderService.
type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 30 * time.Second},
	}
}

// StartRender submits a work order and returns the render job id.
func (c *Client) StartRender(ctx context.Context, req RenderRequest) (string, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("marshal render request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/renders", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create render request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("render service request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusAccepted && resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("render service returned status %d", resp.StatusCode)
	}

	var out struct {
		JobID string `json:"job_id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("decode render response: %w", err)
	}
	if out.JobID == "" {
		return "", fmt.Errorf("render service returned empty job id")
	}
	return out.JobID, nil
}

// JobStatus fetches the current state of a render job.
func (c *Client) JobStatus(ctx context.Context, jobID string) (*JobStatus, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/v1/renders/"+jobID, nil)
	if err != nil {
		return nil, fmt.Errorf("create status request: %w", err)
	}

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("render status request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("render service returned status %d for job %s", resp.StatusCode, jobID)
	}

	var status JobStatus
	if err := json.NewDecoder(resp.Body).Decode(&status); err != nil {
		return nil, fmt.Errorf("decode job status: %w", err)
	}
	return &status, nil
}

func (c *Client) Health(ctx context.Context) error {
	return probe(ctx, c.http, c.baseURL+"/healthz")
}

func probe(ctx context.Context, client *http.Client, url string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 400 {
		return fmt.Errorf("health probe returned status %d", resp.StatusCode)
	}
	return nil
}
