// Package geocode resolves free-text destinations to coordinates via the
// OpenStreetMap Nominatim API. The service is documented as unreliable and
// rate-limited; callers must treat every failure as non-fatal.
package geocode

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/sethvargo/go-retry"
)

// ErrUnavailable is returned when the geocoding backend cannot be reached or
// returns an unusable response. The service layer logs and swallows it — it
// never reaches an API caller as an error.
var ErrUnavailable = errors.New("geocoding unavailable")

// DefaultBaseURL is the public Nominatim endpoint.
const DefaultBaseURL = "https://nominatim.openstreetmap.org"

// userAgent identifies this application per the Nominatim usage policy.
const userAgent = "HiVoyage/1.0"

// Coordinates is a resolved latitude/longitude pair.
type Coordinates struct {
	Latitude  float64
	Longitude float64
}

// Client resolves a destination string to coordinates.
// Resolve returns (nil, nil) when the destination is simply unknown, and a
// wrapped ErrUnavailable when the backend itself failed.
type Client interface {
	Resolve(ctx context.Context, destination string) (*Coordinates, error)
}

// Nominatim is the HTTP implementation of Client.
type Nominatim struct {
	baseURL string
	http    *http.Client
}

// NewNominatim constructs a Nominatim client. baseURL may be empty, in which
// case DefaultBaseURL is used. timeout bounds each individual request.
func NewNominatim(baseURL string, timeout time.Duration) *Nominatim {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Nominatim{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
	}
}

// searchResult mirrors the fields we use from a Nominatim response entry.
// Nominatim returns lat/lon as strings.
type searchResult struct {
	Lat string `json:"lat"`
	Lon string `json:"lon"`
}

// Resolve looks up the first search result for the destination.
// Transient failures are retried twice with fibonacci backoff; the overall
// attempt budget stays within a few seconds so trip creation is never held
// hostage by a slow upstream.
func (c *Nominatim) Resolve(ctx context.Context, destination string) (*Coordinates, error) {
	reqURL := fmt.Sprintf("%s/search?q=%s&format=json&limit=1", c.baseURL, url.QueryEscape(destination))

	var coords *Coordinates
	backoff := retry.WithMaxRetries(2, retry.NewFibonacci(500*time.Millisecond))
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		result, err := c.search(ctx, reqURL)
		if err != nil {
			return retry.RetryableError(err)
		}
		coords = result
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("geocode.Nominatim.Resolve %q: %w: %w", destination, ErrUnavailable, err)
	}
	return coords, nil
}

// search performs one request. A successful response with no results returns
// (nil, nil): the destination is unknown, which is not an upstream failure.
func (c *Nominatim) search(ctx context.Context, reqURL string) (*Coordinates, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	var results []searchResult
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if len(results) == 0 {
		return nil, nil
	}

	lat, err := strconv.ParseFloat(results[0].Lat, 64)
	if err != nil {
		return nil, fmt.Errorf("parse lat: %w", err)
	}
	lon, err := strconv.ParseFloat(results[0].Lon, 64)
	if err != nil {
		return nil, fmt.Errorf("parse lon: %w", err)
	}
	return &Coordinates{Latitude: lat, Longitude: lon}, nil
}
