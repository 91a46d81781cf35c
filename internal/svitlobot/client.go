// Package svitlobot reads the crowd-sourced power map feed: one text line
// per reporting channel, fields separated by a ";&&&;" sequence. The feed
// is best-effort data; a single garbled row must never take down the batch.
package svitlobot

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"outage-bot/internal/fetch"
)

// Client fetches the channel rows.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a svitlobot client with a tight 1s per-attempt timeout;
// this source is optional and must not hold up the reply.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 1 * time.Second,
		},
	}
}

// Fetch downloads the feed and returns the rows that survive parsing.
func (c *Client) Fetch(ctx context.Context) ([]PowerRow, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	req.Header.Set("Accept", "*/*")
	req.Header.Set("Origin", "https://svitlobot.in.ua")
	req.Header.Set("Referer", "https://svitlobot.in.ua/")
	req.Header.Set("User-Agent", browserUA)
	req.Header.Set("Cache-Control", "no-cache, no-store, must-revalidate")
	req.Header.Set("Pragma", "no-cache")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("GET %s: %w", c.baseURL, err)
	}

	body, err := fetch.ReadBody(resp)
	if err != nil {
		return nil, err
	}

	return ParseRows(string(body)), nil
}

// ParseRows splits the feed into lines and keeps every row that parses.
func ParseRows(text string) []PowerRow {
	lines := strings.Split(strings.TrimSpace(text), "\n")
	rows := make([]PowerRow, 0, len(lines))
	for _, line := range lines {
		if row, ok := ParseRow(line); ok {
			rows = append(rows, row)
		}
	}
	return rows
}

const browserUA = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/144.0.0.0 Safari/537.36"
