package renderclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// PublishRequest asks the publisher to push a finished asset to its
// distribution channels.
type PublishRequest struct {
	VideoID     string `json:"video_id"`
	Title       string `json:"title"`
	Language    string `json:"language"`
	StoragePath string `json:"storage_path"`
}

// Publisher is the external publishing collaborator (YouTube et al.).
type Publisher interface {
	Publish(ctx context.Context, req PublishRequest) error
	Health(ctx context.Context) error
}

// PublisherClient is the HTTP implementation of Publisher.
type PublisherClient struct {
	baseURL string
	http    *http.Client
}

func NewPublisherClient(baseURL string) *PublisherClient {
	return &PublisherClient{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 60 * time.Second},
	}
}

func (c *PublisherClient) Publish(ctx context.Context, req PublishRequest) error {
	body, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("marshal publish request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/publish", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create publish request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return fmt.Errorf("publisher request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("publisher returned status %d", resp.StatusCode)
	}
	return nil
}

func (c *PublisherClient) Health(ctx context.Context) error {
	return probe(ctx, c.http, c.baseURL+"/healthz")
}
