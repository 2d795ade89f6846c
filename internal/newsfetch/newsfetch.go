// Package newsfetch pulls articles from the upstream news feed. The
// feed is an external collaborator; this client only lists what it
// currently offers and leaves moderation to the dashboard.
package newsfetch

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Article is one feed entry as served by the upstream API.
type Article struct {
	Title   string `json:"title"`
	Summary string `json:"summary,omitempty"`
	Source  string `json:"source"`
	URL     string `json:"url"`
}

// Fetcher lists the articles currently offered by the feed.
type Fetcher interface {
	Fetch(ctx context.Context) ([]Article, error)
	Health(ctx context.Context) error
}

// Client is the HTTP implementation of Fetcher.
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

func (c *Client) Fetch(ctx context.Context) ([]Article, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/v1/articles", nil)
	if err != nil {
		return nil, fmt.Errorf("create feed request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("feed request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("feed returned status %d", resp.StatusCode)
	}

	var articles []Article
	if err := json.NewDecoder(resp.Body).Decode(&articles); err != nil {
		return nil, fmt.Errorf("decode feed response: %w", err)
	}
	return articles, nil
}

func (c *Client) Health(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/healthz", nil)
	if err != nil {
		return err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 400 {
		return fmt.Errorf("health probe returned status %d", resp.StatusCode)
	}
	return nil
}
