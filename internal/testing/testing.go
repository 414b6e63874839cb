// package testing contains shared testing utilities
package testing

import (
	"context"
	"errors"
	"net/http"
	"os"
	"testing"

	"github.com/desertthunder/reel/internal/services"
)

// MockCatalog is a test double for [services.Catalog].
//
// Results and errors are set per test; the zero value answers every call
// with empty data.
type MockCatalog struct {
	SearchResults []services.SearchResult
	SearchErr     error
	DetailResult  *services.MovieDetail
	DetailErr     error

	SearchCalls []string
	DetailCalls []int64
}

func (m *MockCatalog) Search(ctx context.Context, query string) ([]services.SearchResult, error) {
	m.SearchCalls = append(m.SearchCalls, query)
	if m.SearchErr != nil {
		return nil, m.SearchErr
	}
	return m.SearchResults, nil
}

func (m *MockCatalog) Detail(ctx context.Context, catalogID int64) (*services.MovieDetail, error) {
	m.DetailCalls = append(m.DetailCalls, catalogID)
	if m.DetailErr != nil {
		return nil, m.DetailErr
	}
	return m.DetailResult, nil
}

func (m *MockCatalog) Name() string { return "mock" }

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// MockRoundTripper allows custom HTTP responses for testing
type MockRoundTripper struct {
	response *http.Response
	err      error
}

func NewMockRoundTripper(r *http.Response, e error) *MockRoundTripper {
	return &MockRoundTripper{response: r, err: e}
}

func (m *MockRoundTripper) RoundTrip(*http.Request) (*http.Response, error) {
	return m.response, m.err
}

func AssertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("File does not exist: %s", path)
	}
}
