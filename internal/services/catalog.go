package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/mymusic/internal/models"
	"github.com/desertthunder/mymusic/internal/shared"
	"golang.org/x/oauth2"
	"golang.org/x/time/rate"
)

// CatalogService implements [Catalog] over the catalog proxy's HTTP API.
type CatalogService struct {
	endpoint    string
	httpClient  *http.Client
	limiter     *rate.Limiter
	searchLimit int
	hasKey      bool
	logger      *log.Logger
}

// NewCatalogService creates a catalog client from cfg.
//
// base supplies the underlying transport and may be nil. The API key is not required up front;
// requests fail with [shared.ErrMissingAPIKey] until one is configured.
func NewCatalogService(cfg shared.CatalogConfig, base *http.Client, logger *log.Logger) *CatalogService {
	if base == nil {
		base = http.DefaultClient
	}

	ctx := context.WithValue(context.Background(), oauth2.HTTPClient, base)
	client := oauth2.NewClient(ctx, oauth2.StaticTokenSource(&oauth2.Token{
		AccessToken: cfg.APIKey,
		TokenType:   "Bearer",
	}))

	limit := rate.Inf
	if cfg.RateLimit > 0 {
		limit = rate.Limit(cfg.RateLimit)
	}

	searchLimit := cfg.SearchLimit
	if searchLimit <= 0 {
		searchLimit = DefaultSearchLimit
	}

	return &CatalogService{
		endpoint:    strings.TrimRight(cfg.Endpoint, "/"),
		httpClient:  client,
		limiter:     rate.NewLimiter(limit, 1),
		searchLimit: searchLimit,
		hasKey:      cfg.APIKey != "",
		logger:      logger,
	}
}

// Request performs an authenticated call to <endpoint>/<path> and decodes the JSON body into result.
//
// result may be nil to discard the body.
func (c *CatalogService) Request(ctx context.Context, method, path string, params url.Values, result any) error {
	if !c.hasKey {
		return shared.ErrMissingAPIKey
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("%w: rate limiter: %w", shared.ErrAPIRequest, err)
	}

	target := c.endpoint + "/" + strings.TrimLeft(path, "/")
	if len(params) > 0 {
		target += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, target, nil)
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %w", shared.ErrAPIRequest, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", shared.ErrAPIRequest, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		if c.logger != nil {
			c.logger.Warn("catalog request failed", "path", path, "status", resp.StatusCode)
		}
		return fmt.Errorf("%w: status %d: %s", shared.ErrAPIRequest, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	if result != nil {
		if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
			return fmt.Errorf("%w: failed to decode response: %w", shared.ErrAPIRequest, err)
		}
	}

	return nil
}

// Search returns up to limit tracks matching query. A limit <= 0 uses the configured search limit.
func (c *CatalogService) Search(ctx context.Context, query string, limit int) ([]models.Track, error) {
	if limit <= 0 {
		limit = c.searchLimit
	}

	params := url.Values{}
	params.Set("q", query)
	params.Set("type", "track")
	params.Set("limit", strconv.Itoa(limit))

	var resp searchResponse
	if err := c.Request(ctx, http.MethodGet, "search", params, &resp); err != nil {
		return nil, err
	}

	tracks := make([]models.Track, 0, len(resp.Tracks.Items))
	for _, item := range resp.Tracks.Items {
		tracks = append(tracks, item.ToTrack())
	}
	return tracks, nil
}

// Track looks up a single track by ID.
func (c *CatalogService) Track(ctx context.Context, id string) (models.Track, error) {
	if id == "" {
		return models.Track{}, fmt.Errorf("%w: track id", shared.ErrMissingArgument)
	}

	params := url.Values{}
	params.Set("ids", id)

	var resp tracksResponse
	if err := c.Request(ctx, http.MethodGet, "tracks", params, &resp); err != nil {
		return models.Track{}, err
	}

	for _, t := range resp.Tracks {
		if t != nil && t.ID == id {
			return t.ToTrack(), nil
		}
	}
	return models.Track{}, fmt.Errorf("%w: %s", ErrTrackNotFound, id)
}
