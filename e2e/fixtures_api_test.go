//go:build e2e && unix

package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
)

// Agency mirrors the API's agency record
type Agency struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Slug      string `json:"slug"`
	WordCount int    `json:"word_count"`
	Sections  int    `json:"sections"`
}

// FixtureAPI serves canned agency data the way the real API does
type FixtureAPI struct {
	srv *httptest.Server

	mu       sync.Mutex
	agencies []Agency
	children map[string][]Agency
	failing  map[string]bool // path prefix -> respond 500
	missing  map[string]bool // listed slugs whose detail is a 404
}

// FixtureOption configures a FixtureAPI
type FixtureOption func(*FixtureAPI)

// WithAgencies replaces the default agency list
func WithAgencies(agencies ...Agency) FixtureOption {
	return func(f *FixtureAPI) {
		f.agencies = agencies
	}
}

// WithChildren sets the child agencies of slug
func WithChildren(slug string, children ...Agency) FixtureOption {
	return func(f *FixtureAPI) {
		f.children[slug] = children
	}
}

// WithFailure makes every request under prefix fail with a 500
func WithFailure(prefix string) FixtureOption {
	return func(f *FixtureAPI) {
		f.failing[prefix] = true
	}
}

// WithMissingDetail lists slug but answers its detail request with a 404
func WithMissingDetail(slug string) FixtureOption {
	return func(f *FixtureAPI) {
		f.missing[slug] = true
	}
}

// DefaultAgencies is the list most tests run against
func DefaultAgencies() []Agency {
	return []Agency{
		{ID: "1", Name: "Department of Agriculture", Slug: "agriculture", WordCount: 120000, Sections: 800},
		{ID: "2", Name: "Department of Energy", Slug: "energy", WordCount: 95000, Sections: 650},
		{ID: "3", Name: "Agricultural Marketing Service", Slug: "ams", WordCount: 40000, Sections: 300},
		{ID: "4", Name: "Federal Election Commission", Slug: "fec", WordCount: 15000, Sections: 90},
	}
}

// NewFixtureAPI starts a fixture server that is closed with the test
func NewFixtureAPI(t *testing.T, opts ...FixtureOption) *FixtureAPI {
	t.Helper()
	f := &FixtureAPI{
		agencies: DefaultAgencies(),
		children: map[string][]Agency{},
		failing:  map[string]bool{},
		missing:  map[string]bool{},
	}
	for _, opt := range opts {
		opt(f)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/api/agencies", f.handleAgencies)
	mux.HandleFunc("/api/agencies/", f.handleAgency)
	mux.HandleFunc("/api/corrections", func(w http.ResponseWriter, r *http.Request) {
		f.reply(w, r, []map[string]int{
			{"year": 2022, "corrections": 120},
			{"year": 2023, "corrections": 240},
		})
	})
	mux.HandleFunc("/api/statistics/total", func(w http.ResponseWriter, r *http.Request) {
		f.reply(w, r, map[string]int{
			"total_agencies": 4,
			"total_sections": 1840,
			"total_words":    270000,
		})
	})

	f.srv = httptest.NewServer(mux)
	t.Cleanup(f.srv.Close)
	return f
}

// URL returns the base URL to pass as --api-url
func (f *FixtureAPI) URL() string {
	return f.srv.URL
}

// SetFailure toggles failures for prefix while the app is running
func (f *FixtureAPI) SetFailure(prefix string, failing bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failing[prefix] = failing
}

func (f *FixtureAPI) handleAgencies(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	agencies := f.agencies
	f.mu.Unlock()
	f.reply(w, r, agencies)
}

func (f *FixtureAPI) handleAgency(w http.ResponseWriter, r *http.Request) {
	slug := strings.TrimPrefix(r.URL.Path, "/api/agencies/")

	f.mu.Lock()
	defer f.mu.Unlock()
	for _, a := range f.agencies {
		if a.Slug == slug && !f.missing[slug] {
			children := f.children[slug]
			if children == nil {
				children = []Agency{}
			}
			f.replyLocked(w, r, map[string]any{"agency": a, "children": children})
			return
		}
	}
	http.Error(w, `{"detail": "Agency not found"}`, http.StatusNotFound)
}

func (f *FixtureAPI) reply(w http.ResponseWriter, r *http.Request, v any) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.replyLocked(w, r, v)
}

func (f *FixtureAPI) replyLocked(w http.ResponseWriter, r *http.Request, v any) {
	for prefix, failing := range f.failing {
		if failing && strings.HasPrefix(r.URL.Path, prefix) {
			http.Error(w, `{"detail": "internal error"}`, http.StatusInternalServerError)
			return
		}
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}
