package geometry

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"golang.org/x/time/rate"
)

// Client fetches boundary GeoJSON from the reference source. Fetches are
// rate-limited so repeated renders cannot hammer the upstream host; the
// boundary set changes once a year at most.
type Client struct {
	http    *http.Client
	limiter *rate.Limiter
}

// NewClient builds a boundary client with a 30s request timeout and a
// limiter allowing one upstream fetch per 10 seconds with a small burst.
func NewClient() *Client {
	return &Client{
		http:    &http.Client{Timeout: 30 * time.Second},
		limiter: rate.NewLimiter(rate.Every(10*time.Second), 2),
	}
}

// Fetch downloads and parses a county FeatureCollection from url.
func (c *Client) Fetch(ctx context.Context, url string) (*Boundaries, error) {
	data, err := c.get(ctx, url)
	if err != nil {
		return nil, err
	}
	return ParseCounties(data)
}

// FetchStateLabels downloads a state FeatureCollection and returns its
// centroid labels.
func (c *Client) FetchStateLabels(ctx context.Context, url string) ([]StateLabel, error) {
	data, err := c.get(ctx, url)
	if err != nil {
		return nil, err
	}
	return ParseStateLabels(data)
}

func (c *Client) get(ctx context.Context, url string) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch boundaries: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch boundaries: %s returned %d", url, resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}

// LoadCountiesFile parses a county FeatureCollection from a local file,
// the offline alternative to Fetch.
func LoadCountiesFile(path string) (*Boundaries, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseCounties(data)
}

// LoadStateLabelsFile parses state labels from a local file.
func LoadStateLabelsFile(path string) ([]StateLabel, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseStateLabels(data)
}
