package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"yelpcamp/internal/models"
)

const DefaultMapTilerURL = "https://api.maptiler.com"

// MapTiler calls the MapTiler forward geocoding endpoint.
type MapTiler struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

// NewMapTiler creates a client. A zero timeout leaves the client without one.
func NewMapTiler(baseURL, apiKey string, timeout time.Duration) *MapTiler {
	if baseURL == "" {
		baseURL = DefaultMapTilerURL
	}
	return &MapTiler{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		client:  &http.Client{Timeout: timeout},
	}
}

type featureCollection struct {
	Features []struct {
		Geometry struct {
			Type        string    `json:"type"`
			Coordinates []float64 `json:"coordinates"`
		} `json:"geometry"`
		PlaceName string `json:"place_name"`
	} `json:"features"`
}

// Forward returns the first feature for query, or ErrNoMatch.
func (m *MapTiler) Forward(ctx context.Context, query string) (Result, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return Result{}, ErrNoMatch
	}

	endpoint := fmt.Sprintf("%s/geocoding/%s.json?%s", m.baseURL, url.PathEscape(query),
		url.Values{"key": {m.apiKey}, "limit": {"1"}}.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return Result{}, fmt.Errorf("build geocode request: %w", err)
	}

	resp, err := m.client.Do(req)
	if err != nil {
		return Result{}, fmt.Errorf("geocode request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Result{}, fmt.Errorf("geocode returned %s", resp.Status)
	}

	var fc featureCollection
	if err := json.NewDecoder(resp.Body).Decode(&fc); err != nil {
		return Result{}, fmt.Errorf("decode geocode response: %w", err)
	}
	if len(fc.Features) == 0 || len(fc.Features[0].Geometry.Coordinates) < 2 {
		return Result{}, ErrNoMatch
	}

	f := fc.Features[0]
	return Result{
		Geometry:  models.NewPoint(f.Geometry.Coordinates[0], f.Geometry.Coordinates[1]),
		PlaceName: f.PlaceName,
	}, nil
}
