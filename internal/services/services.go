// package services implements clients for external movie metadata APIs
package services

import "context"

// Catalog defines the interface for the external movie metadata service.
//
// Implementations perform search and detail lookups used by the add flow.
type Catalog interface {
	Search(ctx context.Context, query string) ([]SearchResult, error)  // Search returns candidate movies matching a free-text title query
	Detail(ctx context.Context, catalogID int64) (*MovieDetail, error) // Detail returns full metadata for a single catalog entry
	Name() string                                                      // Name identifies the backing service for logging
}

// SearchResult is one candidate entry from the catalog search endpoint.
type SearchResult struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	ReleaseDate string `json:"release_date"`
	Overview    string `json:"overview"`
	PosterPath  string `json:"poster_path"`
}

// MovieDetail is the catalog's full record for a single movie.
type MovieDetail struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	ReleaseDate string `json:"release_date"`
	Overview    string `json:"overview"`
	PosterPath  string `json:"poster_path"`
}
