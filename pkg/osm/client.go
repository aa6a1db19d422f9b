// Package osm translates place names into coordinates using OpenStreetMap's
// Nominatim service, so a host can place a measurement point by name.
package osm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/NERVsystems/mapmeasure/pkg/cache"
	"github.com/NERVsystems/mapmeasure/pkg/geo"
	"github.com/NERVsystems/mapmeasure/pkg/version"
)

// NominatimBaseURL is the public Nominatim endpoint.
const NominatimBaseURL = "https://nominatim.openstreetmap.org"

// DefaultUserAgent is sent with every request; Nominatim's usage policy
// requires an identifying User-Agent.
var DefaultUserAgent = version.Get().UserAgent()

// ErrNoResults is returned when Nominatim finds nothing for a query.
var ErrNoResults = errors.New("no results found")

// StatusError is a non-200 response from the geocoding service.
type StatusError struct {
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("geocoding service returned status %d", e.StatusCode)
}

// Place is a geocoded location.
type Place struct {
	ID       string       `json:"id,omitempty"`
	Name     string       `json:"name"`
	Location geo.Location `json:"location"`
}

// Config configures a Geocoder. Zero values take defaults.
type Config struct {
	BaseURL    string
	UserAgent  string
	RPS        float64
	Burst      int
	CacheTTL   time.Duration
	CacheSize  int
	HTTPClient *http.Client
	Logger     *slog.Logger
}

// Geocoder is a rate-limited, cached Nominatim client.
type Geocoder struct {
	baseURL   string
	userAgent string
	client    *http.Client
	limiter   *RateLimiter
	cache     *cache.TTLCache[string, Place]
	logger    *slog.Logger
}

// NewGeocoder builds a Geocoder from cfg.
func NewGeocoder(cfg Config) *Geocoder {
	if cfg.BaseURL == "" {
		cfg.BaseURL = NominatimBaseURL
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = DefaultUserAgent
	}
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = 5 * time.Minute
	}
	if cfg.CacheSize <= 0 {
		cfg.CacheSize = 1000
	}
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = &http.Client{
			Transport: &http.Transport{
				MaxIdleConns:        10,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
			Timeout: 10 * time.Second,
		}
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	limiter := NewRateLimiter()
	if cfg.RPS > 0 {
		burst := cfg.Burst
		if burst <= 0 {
			burst = 1
		}
		limiter.SetLimit(ServiceNominatim, cfg.RPS, burst)
	}

	return &Geocoder{
		baseURL:   strings.TrimRight(cfg.BaseURL, "/"),
		userAgent: cfg.UserAgent,
		client:    cfg.HTTPClient,
		limiter:   limiter,
		cache:     cache.NewTTLCache[string, Place](cfg.CacheTTL, time.Minute, cfg.CacheSize),
		logger:    cfg.Logger,
	}
}

// Close stops the cache cleanup goroutine.
func (g *Geocoder) Close() {
	g.cache.Stop()
}

// Geocode resolves query to the best matching place.
func (g *Geocoder) Geocode(ctx context.Context, query string) (Place, error) {
	query = strings.Join(strings.Fields(query), " ")
	if query == "" {
		return Place{}, errors.New("query must not be empty")
	}

	key := strings.ToLower(query)
	if p, ok := g.cache.Get(key); ok {
		g.logger.Debug("geocode cache hit", "query", query)
		return p, nil
	}

	reqURL, err := url.Parse(g.baseURL + "/search")
	if err != nil {
		return Place{}, fmt.Errorf("failed to parse URL: %w", err)
	}
	q := reqURL.Query()
	q.Set("q", query)
	q.Set("format", "json")
	q.Set("limit", "1")
	reqURL.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL.String(), nil)
	if err != nil {
		return Place{}, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", g.userAgent)

	if err := g.limiter.Wait(ctx, ServiceNominatim); err != nil {
		return Place{}, fmt.Errorf("rate limit wait: %w", err)
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return Place{}, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Place{}, &StatusError{StatusCode: resp.StatusCode}
	}

	var results []struct {
		PlaceID     json.Number `json:"place_id"`
		DisplayName string      `json:"display_name"`
		Lat         string      `json:"lat"`
		Lon         string      `json:"lon"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return Place{}, fmt.Errorf("failed to decode response: %w", err)
	}
	if len(results) == 0 {
		return Place{}, ErrNoResults
	}

	r := results[0]
	lat, err := strconv.ParseFloat(r.Lat, 64)
	if err != nil {
		return Place{}, fmt.Errorf("invalid latitude %q: %w", r.Lat, err)
	}
	lon, err := strconv.ParseFloat(r.Lon, 64)
	if err != nil {
		return Place{}, fmt.Errorf("invalid longitude %q: %w", r.Lon, err)
	}

	place := Place{
		ID:       r.PlaceID.String(),
		Name:     r.DisplayName,
		Location: geo.Location{Latitude: lat, Longitude: lon},
	}
	g.cache.Set(key, place)
	g.logger.Debug("geocoded place", "query", query, "location", place.Location.String())
	return place, nil
}
