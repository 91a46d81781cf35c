// Package dtek talks to the regional utility's shutdowns endpoint and
// decodes its schedule payload. The endpoint is an authenticated AJAX call:
// it wants a CSRF token and session cookie lifted from a browser session,
// plus a current-time form field that doubles as a cache buster.
package dtek

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"outage-bot/internal/dates"
	"outage-bot/internal/fetch"
)

// ErrBadPayload marks a 2xx response whose body is not the expected JSON.
var ErrBadPayload = errors.New("dtek: malformed response payload")

const methodName = "getHomeNum"

// Credentials are the per-deployment secrets and address identifiers the
// endpoint authenticates with.
type Credentials struct {
	CSRFToken string
	Cookie    string
	City      string
	Street    string
}

// Client fetches house schedules from DTEK.
type Client struct {
	baseURL    string
	creds      Credentials
	httpClient *http.Client
}

// NewClient creates a DTEK client. Each attempt is bounded by a 2s timeout
// so the retry loop keeps control over the overall budget.
func NewClient(baseURL string, creds Credentials) *Client {
	return &Client{
		baseURL: baseURL,
		creds:   creds,
		httpClient: &http.Client{
			Timeout: 2 * time.Second,
		},
	}
}

// Fetch issues one getHomeNum call stamped with now and decodes the
// response. Non-2xx statuses surface as *fetch.HTTPError; undecodable
// bodies wrap ErrBadPayload.
func (c *Client) Fetch(ctx context.Context, now time.Time) (*Response, error) {
	form := url.Values{}
	form.Set("method", methodName)
	form.Set("data[0][name]", "city")
	form.Set("data[0][value]", c.creds.City)
	form.Set("data[1][name]", "street")
	form.Set("data[1][value]", c.creds.Street)
	form.Set("data[2][name]", "updateFact")
	form.Set("data[2][value]", dates.CurrentStamp(now))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	req.Header.Set("Accept", "application/json, text/javascript, */*; q=0.01")
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded; charset=UTF-8")
	req.Header.Set("X-Requested-With", "XMLHttpRequest")
	req.Header.Set("Referer", strings.TrimSuffix(c.baseURL, "/ajax")+"/shutdowns")
	req.Header.Set("User-Agent", browserUA)
	req.Header.Set("X-CSRF-Token", c.creds.CSRFToken)
	req.Header.Set("Cookie", c.creds.Cookie)
	req.Header.Set("Cache-Control", "no-cache, no-store, must-revalidate")
	req.Header.Set("Pragma", "no-cache")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("POST %s: %w", c.baseURL, err)
	}

	body, err := fetch.ReadBody(resp)
	if err != nil {
		return nil, err
	}

	var result Response
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadPayload, err)
	}
	return &result, nil
}

const browserUA = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/142.0.0.0 Safari/537.36"
