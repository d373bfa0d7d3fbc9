// Package scraper drives a browser through a Google Maps search and extracts
// the raw fields of every listing it opens.
package scraper

import (
	"context"
	"errors"
)

var (
	// ErrNoResults means the results list never appeared.
	ErrNoResults = errors.New("failed to find results (timeout or blocking)")
	// ErrExhausted means scrolling produced no new listings.
	ErrExhausted = errors.New("no more results found")
	// ErrDetailTimeout means a listing's detail panel did not load in time.
	ErrDetailTimeout = errors.New("timeout waiting for listing details")
	// ErrNotStarted is returned by Step before Start succeeded.
	ErrNotStarted = errors.New("scraper not started")
)

// RawPlace holds the unprocessed text read from a listing's detail panel.
type RawPlace struct {
	Name           string   `json:"name"`
	Address        string   `json:"address"`
	Website        string   `json:"website"`
	WebsiteText    string   `json:"website_text"`
	Phone          string   `json:"phone"`
	ReviewsCount   string   `json:"reviews_count"`
	ReviewsAverage string   `json:"reviews_average"`
	InfoLines      []string `json:"info_lines"`
	OpensAt        string   `json:"opens_at"`
	OpensAtAlt     string   `json:"opens_at_alt"`
	PlaceType      string   `json:"place_type"`
	Introduction   string   `json:"introduction"`
	MapsURL        string   `json:"maps_url"`
}

// Page is the browser surface the scraper needs.
type Page interface {
	Navigate(ctx context.Context, url string) error
	AcceptConsent(ctx context.Context) (bool, error)
	WaitForResults(ctx context.Context) error
	CountListings(ctx context.Context) (int, error)
	ScrollResults(ctx context.Context) error
	// OpenListing clicks the listing at index and waits for its details. It
	// returns the listing's maps URL.
	OpenListing(ctx context.Context, index int) (string, error)
	ReadPlace(ctx context.Context) (RawPlace, error)
	Content(ctx context.Context) (string, error)
	Screenshot(ctx context.Context) ([]byte, error)
	Close() error
}

// Launcher starts a browser session.
type Launcher interface {
	Launch(ctx context.Context) (Page, error)
}

// LauncherFunc adapts a function to Launcher.
type LauncherFunc func(ctx context.Context) (Page, error)

// Launch calls f.
func (f LauncherFunc) Launch(ctx context.Context) (Page, error) {
	return f(ctx)
}
