// Package catalog translates inbound filter sets into the external media
// catalog's query dialect and relays responses verbatim. It never caches
// and never retries.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	json "github.com/goccy/go-json"

	"github.com/movie-magic/movie-magic-backend/internal/domain"
)

// ErrUpstream is returned when the catalog call fails for any reason:
// transport error, timeout, or a non-200 status.
var ErrUpstream = errors.New("catalog: upstream failure")

// detailsBundle is always appended to detail requests so credits, trailers
// and images arrive in the same round trip.
const detailsBundle = "credits,videos,images"

// SearchParams is the inbound filter set for a catalog search.
type SearchParams struct {
	Query     string
	MediaType domain.MediaType
	Page      int
	GenreIDs  string // comma-joined genre ids, matched as any-of
	Year      *int
	YearFrom  *int
	YearTo    *int
	MinRating *float64
	Language  string
}

// Client is the contract for querying the catalog service.
type Client interface {
	Search(ctx context.Context, params SearchParams) (json.RawMessage, error)
	Details(ctx context.Context, mediaType domain.MediaType, id int64, language string) (json.RawMessage, error)
	Similar(ctx context.Context, mediaType domain.MediaType, id int64, language string, page int) (json.RawMessage, error)
}

// HTTPClient implements Client over HTTP.
type HTTPClient struct {
	baseURL         *url.URL
	apiKey          string
	defaultLanguage string
	client          *http.Client
	logger          *log.Logger
}

// NewHTTPClient constructs a new HTTP-backed catalog client.
func NewHTTPClient(baseURL, apiKey, defaultLanguage string, timeout time.Duration, logger *log.Logger) (*HTTPClient, error) {
	if logger == nil {
		logger = log.Default()
	}
	parsed, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse catalog url: %w", err)
	}
	if defaultLanguage == "" {
		defaultLanguage = "en-US"
	}
	return &HTTPClient{
		baseURL:         parsed,
		apiKey:          apiKey,
		defaultLanguage: defaultLanguage,
		client: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				Proxy: http.ProxyFromEnvironment,
				DialContext: (&net.Dialer{
					Timeout:   timeout,
					KeepAlive: 30 * time.Second,
				}).DialContext,
				TLSHandshakeTimeout:   timeout,
				ResponseHeaderTimeout: timeout,
				ExpectContinueTimeout: 1 * time.Second,
			},
		},
		logger: logger,
	}, nil
}

// Search queries /search/{type} with the translated filter set.
func (c *HTTPClient) Search(ctx context.Context, params SearchParams) (json.RawMessage, error) {
	mediaType := params.MediaType
	if mediaType == "" {
		mediaType = domain.MediaTypeMovie
	}
	query := c.translateSearch(params)
	return c.get(ctx, fmt.Sprintf("/search/%s", mediaType), query)
}

// Details fetches one item with credits, videos and images bundled in.
func (c *HTTPClient) Details(ctx context.Context, mediaType domain.MediaType, id int64, language string) (json.RawMessage, error) {
	query := url.Values{}
	query.Set("append_to_response", detailsBundle)
	query.Set("language", c.languageOrDefault(language))
	return c.get(ctx, fmt.Sprintf("/%s/%d", mediaType, id), query)
}

// Similar fetches the catalog's similar-items page for one item.
func (c *HTTPClient) Similar(ctx context.Context, mediaType domain.MediaType, id int64, language string, page int) (json.RawMessage, error) {
	if page <= 0 {
		page = 1
	}
	query := url.Values{}
	query.Set("language", c.languageOrDefault(language))
	query.Set("page", strconv.Itoa(page))
	return c.get(ctx, fmt.Sprintf("/%s/%d/similar", mediaType, id), query)
}

// translateSearch maps the inbound filter set into the catalog dialect.
// An exact year constraint suppresses any year range.
func (c *HTTPClient) translateSearch(params SearchParams) url.Values {
	query := url.Values{}
	query.Set("query", params.Query)

	page := params.Page
	if page <= 0 {
		page = 1
	}
	query.Set("page", strconv.Itoa(page))

	if params.GenreIDs != "" {
		query.Set("with_genres", params.GenreIDs)
	}
	if params.Year != nil {
		query.Set("primary_release_year", strconv.Itoa(*params.Year))
	} else {
		if params.YearFrom != nil {
			query.Set("primary_release_date.gte", fmt.Sprintf("%04d-01-01", *params.YearFrom))
		}
		if params.YearTo != nil {
			query.Set("primary_release_date.lte", fmt.Sprintf("%04d-12-31", *params.YearTo))
		}
	}
	if params.MinRating != nil {
		query.Set("vote_average.gte", strconv.FormatFloat(*params.MinRating, 'f', -1, 64))
	}
	query.Set("language", c.languageOrDefault(params.Language))

	return query
}

func (c *HTTPClient) languageOrDefault(language string) string {
	if strings.TrimSpace(language) == "" {
		return c.defaultLanguage
	}
	return language
}

// get performs the catalog request and relays the body verbatim.
func (c *HTTPClient) get(ctx context.Context, path string, query url.Values) (json.RawMessage, error) {
	query.Set("api_key", c.apiKey)
	endpoint := *c.baseURL
	endpoint.Path = endpoint.Path + path
	endpoint.RawQuery = query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		c.logger.Printf("catalog: request %s failed: %v", path, err)
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.logger.Printf("catalog: unexpected status %d for %s", resp.StatusCode, path)
		return nil, fmt.Errorf("%w: status %d", ErrUpstream, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	return json.RawMessage(body), nil
}
