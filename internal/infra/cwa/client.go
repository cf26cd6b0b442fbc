// Package cwa talks to the Central Weather Administration open-data platform
// and adapts each dataset's raw shape into the domain records. Every dataset
// has its own envelope; the adapters live in one file per dataset.
package cwa

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	apperrors "github.com/yijuchen/cwabot/pkg/errors"
)

const defaultBaseURL = "https://opendata.cwa.gov.tw/api/v1/rest/datastore"

// Dataset identifiers on the open-data platform.
const (
	datasetObservation = "O-A0003-001" // staffed station observations
	dataset36Hour      = "F-C0032-001" // county 36-hour forecast
	datasetWeekly      = "F-D0047-091" // county one-week forecast
	datasetHourly      = "F-D0047-089" // town 3-day hourly forecast
	datasetUVIndex     = "O-A0005-001" // daily UV index maxima
	datasetTyphoon     = "W-C0034-005" // tropical cyclone warnings
)

// Store caches raw dataset payloads so repeated queries inside the TTL skip
// the upstream round trip.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, payload []byte, ttl time.Duration) error
}

// Config carries the client settings.
type Config struct {
	BaseURL  string
	APIKey   string
	Timeout  time.Duration
	CacheTTL time.Duration
}

// Client fetches CWA datasets.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	store      Store
	cacheTTL   time.Duration
	logger     *slog.Logger
}

// NewClient builds an API client. store may be nil to disable caching.
func NewClient(cfg Config, store Store, logger *slog.Logger) *Client {
	base := strings.TrimSpace(cfg.BaseURL)
	if base == "" {
		base = defaultBaseURL
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	ttl := cfg.CacheTTL
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &Client{
		baseURL:    strings.TrimRight(base, "/"),
		apiKey:     cfg.APIKey,
		httpClient: &http.Client{Timeout: timeout},
		store:      store,
		cacheTTL:   ttl,
		logger:     logger.With("component", "cwa_client"),
	}
}

// successEnvelope is the outer wrapper shared by every dataset. The platform
// reports success as the string "true".
type successEnvelope struct {
	Success string `json:"success"`
}

func (c *Client) fetch(ctx context.Context, dataset string, params url.Values) ([]byte, error) {
	key := cacheKey(dataset, params)
	if c.store != nil {
		payload, ok, err := c.store.Get(ctx, key)
		if err != nil {
			c.logger.Warn("weather cache read failed", "key", key, "error", err)
		} else if ok {
			return payload, nil
		}
	}

	endpoint := fmt.Sprintf("%s/%s", c.baseURL, dataset)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, apperrors.Wrap("weather_upstream", "build cwa request", err)
	}
	query := url.Values{}
	for name, values := range params {
		for _, v := range values {
			query.Add(name, v)
		}
	}
	query.Set("Authorization", c.apiKey)
	query.Set("format", "JSON")
	req.URL.RawQuery = query.Encode()

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, apperrors.Wrap("weather_upstream", "cwa request failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		return nil, apperrors.Wrap("weather_upstream",
			fmt.Sprintf("cwa request error: dataset=%s status=%d body=%s", dataset, resp.StatusCode, string(payload)), nil)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apperrors.Wrap("weather_upstream", "read cwa response", err)
	}

	var env successEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, apperrors.Wrap("weather_decode", "decode cwa envelope", err)
	}
	if env.Success != "true" {
		return nil, apperrors.Wrap("weather_upstream", fmt.Sprintf("cwa reported failure: dataset=%s", dataset), nil)
	}

	if c.store != nil {
		if err := c.store.Set(ctx, key, body, c.cacheTTL); err != nil {
			c.logger.Warn("weather cache write failed", "key", key, "error", err)
		}
	}
	return body, nil
}

// cacheKey derives a stable key from the dataset and its query parameters.
// The authorization key never enters the cache namespace.
func cacheKey(dataset string, params url.Values) string {
	key := "cwa:" + dataset
	if enc := params.Encode(); enc != "" {
		key += "?" + enc
	}
	return key
}
