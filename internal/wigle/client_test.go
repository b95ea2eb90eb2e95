package wigle_test

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net/http"
	"testing"

	"github.com/UnknownOlympus/wiglebt/internal/wigle"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockHTTPClient is a mock implementation of HTTPClient for testing.
type mockHTTPClient struct {
	doFunc func(req *http.Request) (*http.Response, error)
}

func (m *mockHTTPClient) Do(req *http.Request) (*http.Response, error) {
	return m.doFunc(req)
}

func TestClient_Locate(t *testing.T) {
	ctx := context.Background()
	logger := slog.Default()

	t.Run("successful lookup", func(t *testing.T) {
		mockClient := &mockHTTPClient{
			doFunc: func(req *http.Request) (*http.Response, error) {
				// Verify request parameters
				assert.Equal(t, "GET", req.Method)
				assert.Contains(t, req.URL.String(), "api.wigle.net")
				assert.Equal(t, "/api/v2/bluetooth/search", req.URL.Path)
				assert.Equal(t, "false", req.URL.Query().Get("onlymine"))
				assert.Equal(t, "AA:BB:CC:DD:EE:FF", req.URL.Query().Get("netid"))
				assert.Equal(t, "Basic dGVzdDprZXk=", req.Header.Get("Authorization"))
				assert.Equal(t, "application/json", req.Header.Get("Accept"))

				// Return mock response
				responseBody := `{"success":true,"results":[{"trilat":37.1,"trilong":-122.5}]}`
				return &http.Response{
					StatusCode: http.StatusOK,
					Body:       io.NopCloser(bytes.NewBufferString(responseBody)),
				}, nil
			},
		}

		client := wigle.NewClientWithHTTP(mockClient, "dGVzdDprZXk=", logger)
		coords, err := client.Locate(ctx, "AA:BB:CC:DD:EE:FF")

		require.NoError(t, err)
		require.NotNil(t, coords)
		assert.InEpsilon(t, 37.1, coords.Latitude, 0.0001)
		assert.InEpsilon(t, -122.5, coords.Longitude, 0.0001)
	})

	t.Run("identifier is embedded without escaping", func(t *testing.T) {
		mockClient := &mockHTTPClient{
			doFunc: func(req *http.Request) (*http.Response, error) {
				assert.Equal(t, "onlymine=false&netid=AA:BB:CC:DD:EE:FF", req.URL.RawQuery)

				return &http.Response{
					StatusCode: http.StatusOK,
					Body:       io.NopCloser(bytes.NewBufferString(`{"results":[{"trilat":1,"trilong":2}]}`)),
				}, nil
			},
		}

		client := wigle.NewClientWithHTTP(mockClient, "dGVzdDprZXk=", logger)
		_, err := client.Locate(ctx, "AA:BB:CC:DD:EE:FF")

		require.NoError(t, err)
	})

	t.Run("only the first result is used", func(t *testing.T) {
		mockClient := &mockHTTPClient{
			doFunc: func(_ *http.Request) (*http.Response, error) {
				responseBody := `{"results":[{"trilat":10.5,"trilong":20.5},{"trilat":99,"trilong":99}]}`
				return &http.Response{
					StatusCode: http.StatusOK,
					Body:       io.NopCloser(bytes.NewBufferString(responseBody)),
				}, nil
			},
		}

		client := wigle.NewClientWithHTTP(mockClient, "dGVzdDprZXk=", logger)
		coords, err := client.Locate(ctx, "AA:BB:CC:DD:EE:FF")

		require.NoError(t, err)
		require.NotNil(t, coords)
		assert.InEpsilon(t, 10.5, coords.Latitude, 0.0001)
		assert.InEpsilon(t, 20.5, coords.Longitude, 0.0001)
	})

	t.Run("empty results from API", func(t *testing.T) {
		mockClient := &mockHTTPClient{
			doFunc: func(_ *http.Request) (*http.Response, error) {
				responseBody := `{"success":true,"results":[]}`
				return &http.Response{
					StatusCode: http.StatusOK,
					Body:       io.NopCloser(bytes.NewBufferString(responseBody)),
				}, nil
			},
		}

		client := wigle.NewClientWithHTTP(mockClient, "dGVzdDprZXk=", logger)
		coords, err := client.Locate(ctx, "00:00:00:00:00:00")

		require.Error(t, err)
		require.Nil(t, coords)
		assert.ErrorIs(t, err, wigle.ErrNoResults)
	})

	t.Run("missing results key treated as empty", func(t *testing.T) {
		mockClient := &mockHTTPClient{
			doFunc: func(_ *http.Request) (*http.Response, error) {
				return &http.Response{
					StatusCode: http.StatusOK,
					Body:       io.NopCloser(bytes.NewBufferString(`{"success":true}`)),
				}, nil
			},
		}

		client := wigle.NewClientWithHTTP(mockClient, "dGVzdDprZXk=", logger)
		coords, err := client.Locate(ctx, "00:00:00:00:00:00")

		require.Error(t, err)
		require.Nil(t, coords)
		assert.ErrorIs(t, err, wigle.ErrNoResults)
	})

	t.Run("HTTP error status surfaces the raw body", func(t *testing.T) {
		mockClient := &mockHTTPClient{
			doFunc: func(_ *http.Request) (*http.Response, error) {
				responseBody := `{"success":false,"message":"too many queries today"}`
				return &http.Response{
					StatusCode: http.StatusUnauthorized,
					Body:       io.NopCloser(bytes.NewBufferString(responseBody)),
				}, nil
			},
		}

		client := wigle.NewClientWithHTTP(mockClient, "dGVzdDprZXk=", logger)
		coords, err := client.Locate(ctx, "AA:BB:CC:DD:EE:FF")

		require.Error(t, err)
		require.Nil(t, coords)
		assert.Contains(t, err.Error(), "wigle API returned status 401")
		assert.Contains(t, err.Error(), `{"success":false,"message":"too many queries today"}`)
	})

	t.Run("invalid JSON response", func(t *testing.T) {
		mockClient := &mockHTTPClient{
			doFunc: func(_ *http.Request) (*http.Response, error) {
				return &http.Response{
					StatusCode: http.StatusOK,
					Body:       io.NopCloser(bytes.NewBufferString(`invalid json`)),
				}, nil
			},
		}

		client := wigle.NewClientWithHTTP(mockClient, "dGVzdDprZXk=", logger)
		coords, err := client.Locate(ctx, "AA:BB:CC:DD:EE:FF")

		require.Error(t, err)
		require.Nil(t, coords)
		assert.Contains(t, err.Error(), "failed to decode search response")
	})

	t.Run("HTTP client returns error", func(t *testing.T) {
		mockClient := &mockHTTPClient{
			doFunc: func(_ *http.Request) (*http.Response, error) {
				return nil, assert.AnError
			},
		}

		client := wigle.NewClientWithHTTP(mockClient, "dGVzdDprZXk=", logger)
		coords, err := client.Locate(ctx, "AA:BB:CC:DD:EE:FF")

		require.Error(t, err)
		require.Nil(t, coords)
		assert.Contains(t, err.Error(), "failed to execute search request")
	})

	t.Run("context cancellation", func(t *testing.T) {
		newCtx, cancel := context.WithCancel(context.Background())
		cancel() // Cancel immediately

		mockClient := &mockHTTPClient{
			doFunc: func(req *http.Request) (*http.Response, error) {
				return nil, req.Context().Err()
			},
		}

		client := wigle.NewClientWithHTTP(mockClient, "dGVzdDprZXk=", logger)
		coords, err := client.Locate(newCtx, "AA:BB:CC:DD:EE:FF")

		require.Error(t, err)
		require.Nil(t, coords)
	})
}

func TestNewClient(t *testing.T) {
	client := wigle.NewClient("dGVzdDprZXk=", slog.Default())

	require.NotNil(t, client)
}
