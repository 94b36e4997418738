// Package provider retrieves cat images from the cataas API.
package provider

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"
)

// Image is a fetched image: the exact URL it came from and its bytes.
type Image struct {
	Ref  string
	Data []byte
}

// ImageProvider fetches a single random image. Implemented by Client;
// the interface exists for the batch fetcher's tests.
type ImageProvider interface {
	FetchImage(ctx context.Context) (Image, error)
}

// Client talks to the image endpoint. A client-side rate limiter keeps
// batch fetches polite.
type Client struct {
	baseURL string
	client  *http.Client
	limiter *rate.Limiter
}

// NewClient creates a Client for baseURL with the given per-request
// timeout and request rate cap.
func NewClient(baseURL string, timeout time.Duration, perSecond float64) *Client {
	if perSecond <= 0 {
		perSecond = 5
	}
	return &Client{
		baseURL: baseURL,
		client: &http.Client{
			Timeout: timeout,
		},
		limiter: rate.NewLimiter(rate.Limit(perSecond), 1),
	}
}

// FetchImage performs one GET against the endpoint. Every request
// carries a unique cache-busting parameter so the provider returns a
// fresh image rather than a cached one.
func (c *Client) FetchImage(ctx context.Context) (Image, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return Image{}, fmt.Errorf("rate limit wait: %w", err)
	}

	ref, err := c.requestURL()
	if err != nil {
		return Image{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, ref, nil)
	if err != nil {
		return Image{}, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", "pawdeck/0.1 (https://github.com/abelbrown/pawdeck)")

	resp, err := c.client.Do(req)
	if err != nil {
		return Image{}, fmt.Errorf("failed to fetch image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Image{}, fmt.Errorf("HTTP error: %d %s", resp.StatusCode, resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return Image{}, fmt.Errorf("failed to read image body: %w", err)
	}
	if len(data) == 0 {
		return Image{}, fmt.Errorf("empty image body from %s", ref)
	}

	return Image{Ref: ref, Data: data}, nil
}

func (c *Client) requestURL() (string, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return "", fmt.Errorf("invalid provider URL %q: %w", c.baseURL, err)
	}
	q := u.Query()
	q.Set("r", uuid.NewString())
	u.RawQuery = q.Encode()
	return u.String(), nil
}
