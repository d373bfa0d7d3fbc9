package scraper

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

const searchURLFormat = "https://www.google.com/maps/search/%s?hl=en"

// Options tunes the scraping loop.
type Options struct {
	// ScrollPause is how long to wait for new listings after a scroll.
	ScrollPause time.Duration
	// SettleDelay is how long to wait after the detail panel appears.
	SettleDelay time.Duration
	// ConsentPause is how long to wait after clicking a consent button.
	ConsentPause time.Duration
	// DebugDir receives page dumps when the results list fails to load.
	DebugDir string
	// OnScroll is called before the results list is scrolled.
	OnScroll func()
	Logger   *logrus.Logger
}

func (o Options) withDefaults() Options {
	if o.ScrollPause <= 0 {
		o.ScrollPause = 2 * time.Second
	}
	if o.SettleDelay < 0 {
		o.SettleDelay = 0
	}
	if o.ConsentPause <= 0 {
		o.ConsentPause = 2 * time.Second
	}
	if o.Logger == nil {
		o.Logger = logrus.StandardLogger()
	}
	return o
}

// Scraper walks the results list of a single search one listing per Step.
type Scraper struct {
	launcher  Launcher
	opts      Options
	log       *logrus.Entry
	page      Page
	processed int
	available int
}

// New builds a scraper over launcher.
func New(launcher Launcher, opts Options) *Scraper {
	opts = opts.withDefaults()
	return &Scraper{
		launcher: launcher,
		opts:     opts,
		log:      opts.Logger.WithField("component", "scraper"),
	}
}

// SearchURL builds the maps search URL for query.
func SearchURL(query string) string {
	return fmt.Sprintf(searchURLFormat, url.PathEscape(strings.TrimSpace(query)))
}

// Start launches the browser, opens the search and waits for the results
// list. It returns ErrNoResults when the list never appears.
func (s *Scraper) Start(ctx context.Context, query string) error {
	if s.page != nil {
		return errors.New("scraper already started")
	}
	page, err := s.launcher.Launch(ctx)
	if err != nil {
		return fmt.Errorf("launch browser: %w", err)
	}
	s.page = page
	s.processed, s.available = 0, 0

	target := SearchURL(query)
	s.log.WithField("url", target).Info("navigating")
	if err := page.Navigate(ctx, target); err != nil {
		s.dumpDebug(ctx, "debug")
		return fmt.Errorf("navigate: %w", err)
	}

	clicked, err := page.AcceptConsent(ctx)
	if err != nil {
		s.log.WithError(err).Warn("consent handling failed")
	}
	if clicked {
		s.log.Info("clicked consent button")
		if err := sleep(ctx, s.opts.ConsentPause); err != nil {
			return err
		}
	}

	s.log.Info("waiting for results")
	if err := page.WaitForResults(ctx); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		s.log.WithError(err).Warn("no results found or page took too long to load")
		s.dumpDebug(ctx, "debug_no_results")
		return fmt.Errorf("%w: %v", ErrNoResults, err)
	}
	return nil
}

// Step opens the next unprocessed listing and returns its raw fields. It
// returns (nil, nil) when a listing is skipped, and ErrExhausted once
// scrolling yields no new listings.
func (s *Scraper) Step(ctx context.Context) (*RawPlace, error) {
	if s.page == nil {
		return nil, ErrNotStarted
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if s.processed >= s.available {
		if err := s.refill(ctx); err != nil {
			return nil, err
		}
	}

	index := s.processed
	s.processed++
	entry := s.log.WithField("listing", index+1)

	mapsURL, err := s.page.OpenListing(ctx, index)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		if errors.Is(err, ErrDetailTimeout) {
			entry.Warn("timeout waiting for details")
		} else {
			entry.WithError(err).Warn("failed to open listing")
		}
		return nil, nil
	}

	if err := sleep(ctx, s.opts.SettleDelay); err != nil {
		return nil, err
	}

	place, err := s.page.ReadPlace(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		entry.WithError(err).Warn("failed to extract listing")
		return nil, nil
	}
	if place.MapsURL == "" {
		place.MapsURL = mapsURL
	}
	return &place, nil
}

// refill counts the visible listings and scrolls when all of them were
// processed.
func (s *Scraper) refill(ctx context.Context) error {
	count, err := s.page.CountListings(ctx)
	if err != nil {
		return fmt.Errorf("count listings: %w", err)
	}
	s.available = count
	if s.processed < s.available {
		return nil
	}

	s.log.WithFields(logrus.Fields{
		"available": count,
		"processed": s.processed,
	}).Info("scrolling for more results")
	if s.opts.OnScroll != nil {
		s.opts.OnScroll()
	}
	if err := s.page.ScrollResults(ctx); err != nil {
		return fmt.Errorf("scroll results: %w", err)
	}
	if err := sleep(ctx, s.opts.ScrollPause); err != nil {
		return err
	}

	count, err = s.page.CountListings(ctx)
	if err != nil {
		return fmt.Errorf("count listings: %w", err)
	}
	if count <= s.available {
		return ErrExhausted
	}
	s.available = count
	return nil
}

// Processed reports how many listings were opened so far.
func (s *Scraper) Processed() int {
	return s.processed
}

// Stop closes the browser. It is safe to call more than once.
func (s *Scraper) Stop() error {
	if s.page == nil {
		return nil
	}
	err := s.page.Close()
	s.page = nil
	return err
}

func (s *Scraper) dumpDebug(ctx context.Context, name string) {
	if s.opts.DebugDir == "" || s.page == nil {
		return
	}
	if err := os.MkdirAll(s.opts.DebugDir, 0o755); err != nil {
		s.log.WithError(err).Warn("create debug dir")
		return
	}
	if html, err := s.page.Content(ctx); err == nil {
		path := filepath.Join(s.opts.DebugDir, name+".html")
		if err := os.WriteFile(path, []byte(html), 0o644); err != nil {
			s.log.WithError(err).Warn("write debug html")
		}
	}
	if shot, err := s.page.Screenshot(ctx); err == nil && len(shot) > 0 {
		path := filepath.Join(s.opts.DebugDir, name+".png")
		if err := os.WriteFile(path, shot, 0o644); err != nil {
			s.log.WithError(err).Warn("write debug screenshot")
		}
	}
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
