package registry

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"
)

// DefaultBatchSize is how many vehicles are pushed per progress step.
const DefaultBatchSize = 150

// Client pushes registry payloads to the vehicles API.
type Client struct {
	baseURL string
	token   string
	httpc   *http.Client
}

// NewClient returns a client for the API at baseURL authenticating with the
// given bearer token.
func NewClient(baseURL, token string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		httpc:   &http.Client{Timeout: 30 * time.Second},
	}
}

// PushReport summarises a Push run.
type PushReport struct {
	Pushed int
	Failed int
}

// Push uploads payloads to POST /vehicles/add one at a time, in batches of
// batchSize between progress callbacks. Individual upload failures are
// counted, not fatal, but a run where every upload failed returns an error.
// progress is invoked after every batch if non-nil.
func (c *Client) Push(ctx context.Context, payloads []Payload, batchSize int, progress func(done, total int)) (PushReport, error) {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}

	var report PushReport
	for start := 0; start < len(payloads); start += batchSize {
		end := start + batchSize
		if end > len(payloads) {
			end = len(payloads)
		}
		for _, p := range payloads[start:end] {
			if err := c.pushOne(ctx, p); err != nil {
				if ctx.Err() != nil {
					return report, fmt.Errorf("registry.Client.Push: %w", ctx.Err())
				}
				report.Failed++
				continue
			}
			report.Pushed++
		}
		if progress != nil {
			progress(end, len(payloads))
		}
	}

	// A run where nothing landed must not look like success to whatever
	// scheduled it; individual failures stay non-fatal only while at least
	// one vehicle gets through.
	if report.Pushed == 0 && report.Failed > 0 {
		return report, fmt.Errorf("registry.Client.Push: all %d uploads failed", report.Failed)
	}
	return report, nil
}

func (c *Client) pushOne(ctx context.Context, p Payload) error {
	body, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("registry.Client: marshal %s: %w", p.VIN, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/vehicles/add", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("registry.Client: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("registry.Client: post %s: %w", p.VIN, err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode >= 300 {
		return fmt.Errorf("registry.Client: post %s: status %d", p.VIN, resp.StatusCode)
	}
	return nil
}

// Download fetches the registry archive at url into a temporary file and
// returns its path. The caller removes the file when done.
func Download(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("registry.Download: %w", err)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("registry.Download: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("registry.Download: status %d", resp.StatusCode)
	}

	tmp, err := os.CreateTemp("", "registry-*.zip")
	if err != nil {
		return "", fmt.Errorf("registry.Download: %w", err)
	}
	if _, err := io.Copy(tmp, resp.Body); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return "", fmt.Errorf("registry.Download: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return "", fmt.Errorf("registry.Download: %w", err)
	}
	return tmp.Name(), nil
}
