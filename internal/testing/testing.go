// package testing contains shared testing utilities
package testing

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"strings"
	"sync"
	"testing"

	"github.com/desertthunder/mymusic/internal/models"
	"github.com/desertthunder/mymusic/internal/shared"
)

// MockCatalog is a test double for services.Catalog.
//
// Search returns every track whose name contains the query (case-insensitive), capped at limit.
type MockCatalog struct {
	Tracks []models.Track
	Err    error

	mu      sync.Mutex
	queries []string
}

func (m *MockCatalog) Search(ctx context.Context, query string, limit int) ([]models.Track, error) {
	m.mu.Lock()
	m.queries = append(m.queries, query)
	m.mu.Unlock()

	if m.Err != nil {
		return nil, m.Err
	}

	var out []models.Track
	for _, t := range m.Tracks {
		if strings.Contains(strings.ToLower(t.Name), strings.ToLower(query)) {
			out = append(out, t)
		}
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}

func (m *MockCatalog) Track(ctx context.Context, id string) (models.Track, error) {
	if m.Err != nil {
		return models.Track{}, m.Err
	}
	for _, t := range m.Tracks {
		if t.ID == id {
			return t, nil
		}
	}
	return models.Track{}, errors.New("track not found")
}

// Queries returns the queries Search received, in order.
func (m *MockCatalog) Queries() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.queries...)
}

// SampleTracks returns a small fixed catalog.
func SampleTracks() []models.Track {
	return []models.Track{
		{ID: "t1", Name: "Blue Monday", Artists: []string{"New Order"}, Album: "Power, Corruption & Lies", URI: "spotify:track:t1", DurationMS: 448000},
		{ID: "t2", Name: "Blue in Green", Artists: []string{"Miles Davis"}, Album: "Kind of Blue", URI: "spotify:track:t2", DurationMS: 337000},
		{ID: "t3", Name: "Heroes", Artists: []string{"David Bowie"}, Album: "Heroes", URI: "spotify:track:t3", DurationMS: 371000},
	}
}

// OpenTestDB opens a migrated in-memory database that is closed when the test ends.
func OpenTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := shared.OpenDatabase(shared.DatabaseConfig{Path: ":memory:"})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

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

// FCloser simulates a failure when reading response body
type FCloser struct{}

func (f *FCloser) Read(p []byte) (n int, err error) {
	return 0, errors.New("read failed")
}

func (f *FCloser) Close() error {
	return nil
}

func AssertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("File does not exist: %s", path)
	}
}

func MustReadFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}
	return string(content)
}
