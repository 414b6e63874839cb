package services_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	tu "github.com/desertthunder/reel/internal/testing"

	. "github.com/desertthunder/reel/internal/services"
	"github.com/desertthunder/reel/internal/shared"
)

func newTestService(t *testing.T, baseURL string) *TMDBService {
	t.Helper()

	srv, err := NewTMDBService(TMDBOpts{
		BaseURL:     baseURL,
		AccessToken: "test-token",
	})
	if err != nil {
		t.Fatalf("failed to create service: %v", err)
	}
	return srv
}

func TestTMDBService(t *testing.T) {
	t.Run("NewTMDBService", func(t *testing.T) {
		t.Run("Missing Base URL", func(t *testing.T) {
			_, err := NewTMDBService(TMDBOpts{AccessToken: "token"})
			if !errors.Is(err, shared.ErrMissingArgument) {
				t.Errorf("expected ErrMissingArgument, got %v", err)
			}
		})

		t.Run("Missing Token", func(t *testing.T) {
			_, err := NewTMDBService(TMDBOpts{BaseURL: "https://example.com"})
			if !errors.Is(err, shared.ErrMissingCredentials) {
				t.Errorf("expected ErrMissingCredentials, got %v", err)
			}
		})

		t.Run("Name", func(t *testing.T) {
			srv := newTestService(t, "https://example.com")
			if srv.Name() != "TMDB" {
				t.Errorf("expected service name TMDB, got %s", srv.Name())
			}
		})
	})

	t.Run("Search", func(t *testing.T) {
		t.Run("Success", func(t *testing.T) {
			var gotAuth, gotQuery string
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotAuth = r.Header.Get("Authorization")
				gotQuery = r.URL.Query().Get("query")

				if r.URL.Path != "/search/movie" {
					t.Errorf("unexpected path %s", r.URL.Path)
				}

				fmt.Fprint(w, `{"page":1,"results":[{"id":438631,"title":"Dune","release_date":"2021-10-13","overview":"Paul Atreides.","poster_path":"/abc.jpg"}],"total_results":1}`)
			}))
			defer server.Close()

			srv := newTestService(t, server.URL)
			results, err := srv.Search(context.Background(), "Dune")
			if err != nil {
				t.Fatalf("search failed: %v", err)
			}

			if gotAuth != "Bearer test-token" {
				t.Errorf("expected bearer token header, got %q", gotAuth)
			}
			if gotQuery != "Dune" {
				t.Errorf("expected query Dune, got %q", gotQuery)
			}
			if len(results) != 1 || results[0].ID != 438631 {
				t.Errorf("unexpected results: %+v", results)
			}
		})

		t.Run("Empty Query", func(t *testing.T) {
			srv := newTestService(t, "https://example.com")
			if _, err := srv.Search(context.Background(), "  "); !errors.Is(err, shared.ErrMissingArgument) {
				t.Errorf("expected ErrMissingArgument, got %v", err)
			}
		})

		t.Run("Error Status", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusUnauthorized)
			}))
			defer server.Close()

			srv := newTestService(t, server.URL)
			if _, err := srv.Search(context.Background(), "Dune"); !errors.Is(err, shared.ErrCatalogStatus) {
				t.Errorf("expected ErrCatalogStatus, got %v", err)
			}
		})

		t.Run("Malformed Body", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				fmt.Fprint(w, `{"results": not json`)
			}))
			defer server.Close()

			srv := newTestService(t, server.URL)
			if _, err := srv.Search(context.Background(), "Dune"); !errors.Is(err, shared.ErrCatalogResponse) {
				t.Errorf("expected ErrCatalogResponse, got %v", err)
			}
		})

		t.Run("Network Failure", func(t *testing.T) {
			client := &http.Client{Transport: tu.NewMockRoundTripper(nil, errors.New("connection refused"))}

			srv, err := NewTMDBService(TMDBOpts{BaseURL: "https://example.com", HTTPClient: client})
			if err != nil {
				t.Fatalf("failed to create service: %v", err)
			}

			if _, err := srv.Search(context.Background(), "Dune"); !errors.Is(err, shared.ErrCatalogRequest) {
				t.Errorf("expected ErrCatalogRequest, got %v", err)
			}
		})
	})

	t.Run("Detail", func(t *testing.T) {
		t.Run("Success", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Path != "/movie/438631" {
					t.Errorf("unexpected path %s", r.URL.Path)
				}
				fmt.Fprint(w, `{"id":438631,"title":"Dune","release_date":"2021-10-13","overview":"Paul Atreides.","poster_path":"/abc.jpg"}`)
			}))
			defer server.Close()

			srv := newTestService(t, server.URL)
			detail, err := srv.Detail(context.Background(), 438631)
			if err != nil {
				t.Fatalf("detail failed: %v", err)
			}

			if detail.Title != "Dune" || detail.PosterPath != "/abc.jpg" {
				t.Errorf("unexpected detail: %+v", detail)
			}
		})

		t.Run("Missing Required Fields", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				fmt.Fprint(w, `{"id":438631,"title":"Dune"}`)
			}))
			defer server.Close()

			srv := newTestService(t, server.URL)
			if _, err := srv.Detail(context.Background(), 438631); !errors.Is(err, shared.ErrCatalogResponse) {
				t.Errorf("expected ErrCatalogResponse, got %v", err)
			}
		})
	})

	t.Run("MovieDetail", func(t *testing.T) {
		t.Run("Year", func(t *testing.T) {
			detail := &MovieDetail{ReleaseDate: "2021-10-13"}
			year, err := detail.Year()
			if err != nil {
				t.Fatalf("failed to parse year: %v", err)
			}
			if year != 2021 {
				t.Errorf("expected year 2021, got %d", year)
			}
		})

		t.Run("Year Invalid Date", func(t *testing.T) {
			detail := &MovieDetail{ReleaseDate: "soon"}
			if _, err := detail.Year(); !errors.Is(err, shared.ErrCatalogResponse) {
				t.Errorf("expected ErrCatalogResponse, got %v", err)
			}
		})

		t.Run("PosterURL", func(t *testing.T) {
			detail := &MovieDetail{PosterPath: "/abc.jpg"}
			got := detail.PosterURL("https://image.tmdb.org/t/p/original/")
			want := "https://image.tmdb.org/t/p/original/abc.jpg"
			if got != want {
				t.Errorf("expected %s, got %s", want, got)
			}
		})
	})
}
