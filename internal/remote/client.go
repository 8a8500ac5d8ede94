package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"docassist/internal/industry"
	"docassist/internal/shared/telemetry"
)

// ErrNotConfigured is returned when no backend URL is set.
var ErrNotConfigured = errors.New("remote analysis not configured")

const (
	analyzePath     = "/documents/analyze-text"
	maxResponseSize = 4 << 20
)

// StatusError reports a non-success HTTP status from the backend.
type StatusError struct {
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("remote analysis returned status %d", e.StatusCode)
}

// Client calls the optional remote analysis backend.
type Client struct {
	baseURL string
	http    *http.Client
	catalog *industry.Catalog
}

// NewClient returns a client for baseURL. An empty baseURL yields a client whose
// calls fail with ErrNotConfigured.
func NewClient(baseURL string, timeout time.Duration, catalog *industry.Catalog) *Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		http:    &http.Client{Timeout: timeout},
		catalog: catalog,
	}
}

// Configured reports whether a backend URL is set.
func (c *Client) Configured() bool {
	return c != nil && c.baseURL != ""
}

type analyzeTextRequest struct {
	Text         string `json:"text"`
	Title        string `json:"title,omitempty"`
	SaveDocument bool   `json:"saveDocument"`
}

// Analyze submits text to the backend and normalizes its answer.
func (c *Client) Analyze(ctx context.Context, text, title string) (Result, error) {
	if !c.Configured() {
		return Result{}, ErrNotConfigured
	}

	payload, err := json.Marshal(analyzeTextRequest{Text: text, Title: title})
	if err != nil {
		return Result{}, fmt.Errorf("encode remote request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+analyzePath, bytes.NewReader(payload))
	if err != nil {
		return Result{}, fmt.Errorf("build remote request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return Result{}, fmt.Errorf("remote analysis: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return Result{}, fmt.Errorf("read remote response: %w", err)
	}

	// 206 carries the backend's degraded fallback analysis.
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusPartialContent {
		telemetry.Warn("remote.analyze.status", map[string]any{
			"status":      resp.StatusCode,
			"duration_ms": float64(time.Since(start).Microseconds()) / 1000.0,
		})
		return Result{}, &StatusError{StatusCode: resp.StatusCode}
	}

	res, err := Normalize(body, c.catalog)
	if err != nil {
		return Result{}, err
	}
	if resp.StatusCode == http.StatusPartialContent {
		res.Partial = true
	}
	telemetry.Debug("remote.analyze.complete", map[string]any{
		"status":      resp.StatusCode,
		"industry":    res.Report.DetectedIndustry.Industry.ID,
		"duration_ms": float64(time.Since(start).Microseconds()) / 1000.0,
	})
	return res, nil
}
