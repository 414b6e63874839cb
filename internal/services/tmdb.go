// TMDB implementation of [Catalog]
//
// Response types based on https://developer.themoviedb.org/reference/search-movie
// and https://developer.themoviedb.org/reference/movie-details
package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/desertthunder/reel/internal/shared"
	"golang.org/x/oauth2"
	"golang.org/x/time/rate"
)

const defaultTimeout = 10 * time.Second

// tmdbSearchResponse wraps the paginated search payload. Only the first page
// is consumed; the selection view shows every result it contains.
type tmdbSearchResponse struct {
	Page    int            `json:"page"`
	Results []SearchResult `json:"results"`
	Total   int            `json:"total_results"`
}

// TMDBService implements the [Catalog] interface against the TMDB v3 API.
//
// The access token is carried by an [oauth2.StaticTokenSource] so every
// request is sent with the bearer header, and outbound calls are paced by a
// [rate.Limiter] to stay inside TMDB's request budget.
type TMDBService struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
	timeout    time.Duration
}

// TMDBOpts contains configuration options for creating a TMDBService.
type TMDBOpts struct {
	BaseURL        string
	AccessToken    string
	Timeout        time.Duration
	RequestsPerSec int
	HTTPClient     *http.Client // overrides the oauth2 transport, used by tests
}

// NewTMDBService creates a TMDB catalog client with the given options.
func NewTMDBService(opts TMDBOpts) (*TMDBService, error) {
	if opts.BaseURL == "" {
		return nil, fmt.Errorf("%w: catalog base URL", shared.ErrMissingArgument)
	}

	client := opts.HTTPClient
	if client == nil {
		if opts.AccessToken == "" {
			return nil, shared.ErrMissingCredentials
		}
		src := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: opts.AccessToken, TokenType: "Bearer"})
		client = oauth2.NewClient(context.Background(), src)
	}

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	rps := opts.RequestsPerSec
	if rps <= 0 {
		rps = 4
	}

	return &TMDBService{
		baseURL:    strings.TrimRight(opts.BaseURL, "/"),
		httpClient: client,
		limiter:    rate.NewLimiter(rate.Limit(rps), rps),
		timeout:    timeout,
	}, nil
}

func (s *TMDBService) Name() string {
	return "TMDB"
}

// Search queries the catalog for movies matching a free-text title.
func (s *TMDBService) Search(ctx context.Context, query string) ([]SearchResult, error) {
	if strings.TrimSpace(query) == "" {
		return nil, fmt.Errorf("%w: search query", shared.ErrMissingArgument)
	}

	endpoint := "/search/movie?query=" + url.QueryEscape(query)

	var response tmdbSearchResponse
	if err := s.doRequest(ctx, endpoint, &response); err != nil {
		return nil, err
	}

	return response.Results, nil
}

// Detail retrieves full metadata for a catalog entry and validates that the
// fields the collection depends on are present.
func (s *TMDBService) Detail(ctx context.Context, catalogID int64) (*MovieDetail, error) {
	endpoint := "/movie/" + strconv.FormatInt(catalogID, 10)

	var detail MovieDetail
	if err := s.doRequest(ctx, endpoint, &detail); err != nil {
		return nil, err
	}

	if detail.Title == "" || detail.ReleaseDate == "" || detail.Overview == "" || detail.PosterPath == "" {
		return nil, fmt.Errorf("%w: detail for id %d is missing required fields", shared.ErrCatalogResponse, catalogID)
	}

	return &detail, nil
}

// doRequest performs a rate-limited GET against the TMDB API with a per-call
// timeout, classifying every failure mode into a shared sentinel.
func (s *TMDBService) doRequest(ctx context.Context, endpoint string, result any) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	if err := s.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("%w: %v", shared.ErrCatalogRequest, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrCatalogRequest, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%w: status %d", shared.ErrCatalogStatus, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return fmt.Errorf("%w: %v", shared.ErrCatalogResponse, err)
	}

	return nil
}

// Year parses the release year as the leading token of the release date
// string ("2021-10-13" yields 2021).
func (d *MovieDetail) Year() (int, error) {
	token, _, _ := strings.Cut(d.ReleaseDate, "-")
	year, err := strconv.Atoi(token)
	if err != nil {
		return 0, fmt.Errorf("%w: release date %q", shared.ErrCatalogResponse, d.ReleaseDate)
	}
	return year, nil
}

// PosterURL joins the configured image base URL with the poster path fragment.
func (d *MovieDetail) PosterURL(imageBase string) string {
	return strings.TrimRight(imageBase, "/") + d.PosterPath
}
