package shared

import "fmt"

var (
	// Configuration errors
	ErrMissingConfig      = fmt.Errorf("configuration not found")
	ErrInvalidConfig      = fmt.Errorf("invalid configuration")
	ErrMissingCredentials = fmt.Errorf("missing catalog access token")

	// Storage errors
	ErrMovieNotFound  = fmt.Errorf("movie not found")
	ErrDuplicateTitle = fmt.Errorf("movie title already in collection")

	// Catalog errors
	ErrCatalogRequest  = fmt.Errorf("catalog request failed")
	ErrCatalogStatus   = fmt.Errorf("catalog returned an error status")
	ErrCatalogResponse = fmt.Errorf("catalog returned an unexpected response")

	// Input validation errors
	ErrInvalidInput    = fmt.Errorf("invalid input")
	ErrMissingArgument = fmt.Errorf("missing required argument")
	ErrInvalidArgument = fmt.Errorf("invalid argument")
)
