package wigle

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/UnknownOlympus/wiglebt/internal/models"
)

// SearchBaseURL -- WiGLE bluetooth search endpoint.
const SearchBaseURL = "https://api.wigle.net/api/v2/bluetooth/search"

// Locator is an interface that defines a method for resolving a bluetooth
// hardware address to a coordinate pair. The Locate method takes a context
// and the device address as input, and returns the triangulated coordinates
// or an error if the device is unknown.
type Locator interface {
	Locate(ctx context.Context, netid string) (*models.Coordinates, error)
}

// HTTPClient defines the interface for making HTTP requests.
// This allows for easy mocking in tests.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client implements the Locator interface using the WiGLE bluetooth search API.
type Client struct {
	client  HTTPClient   // HTTP client for making requests
	baseURL string       // Base URL for the WiGLE API
	auth    string       // Pre-encoded Basic credential, sent verbatim
	log     *slog.Logger // Logger for logging operations
}

// searchResponse represents the JSON response from the WiGLE bluetooth search API.
type searchResponse struct {
	Results []searchResult `json:"results"`
}

// searchResult carries the fields extracted from a single observation.
type searchResult struct {
	Trilat  float64 `json:"trilat"`  // Triangulated latitude
	Trilong float64 `json:"trilong"` // Triangulated longitude
}

// ErrNoResults is returned when the WiGLE API has no observations for a device.
var ErrNoResults = errors.New("no results found")

// NewClient creates a new WiGLE search client. The credential is the
// Base64-encoded "user:key" pair from the config file; it is used as-is in
// the Authorization header.
func NewClient(auth string, log *slog.Logger) *Client {
	const timeout = 10
	return &Client{
		client: &http.Client{
			Timeout: timeout * time.Second,
		},
		baseURL: SearchBaseURL,
		auth:    auth,
		log:     log,
	}
}

// NewClientWithHTTP creates a WiGLE client with a custom HTTP client.
// Useful for testing with mocked HTTP clients.
func NewClientWithHTTP(client HTTPClient, auth string, log *slog.Logger) *Client {
	return &Client{
		client:  client,
		baseURL: SearchBaseURL,
		auth:    auth,
		log:     log,
	}
}

// Locate resolves a bluetooth hardware address to the coordinates WiGLE has
// on record for it. Only the first result is consulted; the API orders
// results by relevance and the tool never disambiguates among candidates.
//
// The address is embedded in the URL verbatim, without query escaping: the
// API expects the raw colon-separated form. Callers must not assume the
// identifier is sanitized.
func (c *Client) Locate(ctx context.Context, netid string) (*models.Coordinates, error) {
	c.log.DebugContext(ctx, "Searching WiGLE for bluetooth device", "netid", netid)

	reqURL := c.baseURL + "?onlymine=false&netid=" + netid

	c.log.DebugContext(ctx, "WiGLE request URL", "url", reqURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Basic "+c.auth)
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute search request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		c.log.ErrorContext(ctx, "WiGLE API error", "status", resp.StatusCode, "body", string(body))
		return nil, fmt.Errorf("wigle API returned status %d: %s", resp.StatusCode, string(body))
	}

	var data searchResponse
	if err = json.Unmarshal(body, &data); err != nil {
		c.log.ErrorContext(ctx, "Failed to parse WiGLE response", "error", err, "body", string(body))
		return nil, fmt.Errorf("failed to decode search response: %w", err)
	}

	if len(data.Results) == 0 {
		return nil, ErrNoResults
	}

	first := data.Results[0]
	c.log.DebugContext(ctx, "WiGLE found result", "lat", first.Trilat, "lon", first.Trilong)

	return &models.Coordinates{
		Latitude:  first.Trilat,
		Longitude: first.Trilong,
	}, nil
}
