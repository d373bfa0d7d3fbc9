package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/onnise/beyond-ads-scraper/internal/catalog"
	"github.com/onnise/beyond-ads-scraper/internal/dto"
	"github.com/onnise/beyond-ads-scraper/internal/entity"
	"github.com/onnise/beyond-ads-scraper/internal/logging"
	"github.com/onnise/beyond-ads-scraper/internal/repository"
	"github.com/onnise/beyond-ads-scraper/internal/scraper"
)

// Status messages shown to the operator while a run progresses.
const (
	msgStarting     = "Starting..."
	msgInitializing = "Initializing browser..."
	msgNavigating   = "Navigating to Google Maps..."
	msgNoResults    = "Failed to find results (Timeout or Blocking)."
	msgScraping     = "Scraping in progress..."
	msgScrolling    = "Scrolling for more results..."
	msgExhausted    = "No more results found."
	msgFinished     = "Finished."
	msgStopped      = "Stopped."
)

const notifyTimeout = 10 * time.Second

// Notifier is told about every run that reaches a terminal state.
type Notifier interface {
	NotifyRun(ctx context.Context, run entity.Run) error
}

// RunService starts, tracks and stops scrape runs.
type RunService struct {
	store    repository.RunStore
	launcher scraper.Launcher
	log      *logrus.Logger
	scrape   scraper.Options
	checker  *WebsiteChecker
	notifier Notifier
	now      func() time.Time

	slots  chan struct{}
	mu     sync.Mutex
	active map[uuid.UUID]context.CancelFunc
	wg     sync.WaitGroup
}

// RunOption configures a RunService.
type RunOption func(*RunService)

// WithMaxConcurrentRuns bounds how many browsers may run at once.
func WithMaxConcurrentRuns(n int) RunOption {
	return func(s *RunService) {
		if n > 0 {
			s.slots = make(chan struct{}, n)
		}
	}
}

// WithScraperOptions tunes the browser walk of every run.
func WithScraperOptions(opts scraper.Options) RunOption {
	return func(s *RunService) {
		s.scrape = opts
	}
}

// WithRunWebsiteChecker verifies websites of accepted listings.
func WithRunWebsiteChecker(checker *WebsiteChecker) RunOption {
	return func(s *RunService) {
		s.checker = checker
	}
}

// WithNotifier posts finished runs to n.
func WithNotifier(n Notifier) RunOption {
	return func(s *RunService) {
		s.notifier = n
	}
}

// WithRunLogger overrides the logger.
func WithRunLogger(l *logrus.Logger) RunOption {
	return func(s *RunService) {
		if l != nil {
			s.log = l
		}
	}
}

// NewRunService wires a run service over a store and a browser launcher.
func NewRunService(store repository.RunStore, launcher scraper.Launcher, opts ...RunOption) *RunService {
	s := &RunService{
		store:    store,
		launcher: launcher,
		log:      logging.Logger(),
		now:      time.Now,
		slots:    make(chan struct{}, 1),
		active:   make(map[uuid.UUID]context.CancelFunc),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.scrape.Logger == nil {
		s.scrape.Logger = s.log
	}
	return s
}

// Start validates req, records a pending run and scrapes it in the background.
// The returned run is a snapshot; poll Get for progress.
func (s *RunService) Start(ctx context.Context, req dto.ScrapeRequest) (*entity.Run, error) {
	req, err := normalizeRequest(req)
	if err != nil {
		return nil, err
	}

	select {
	case s.slots <- struct{}{}:
	default:
		return nil, ErrBusy
	}

	run := entity.Run{
		ID:              uuid.New(),
		Query:           req.Query,
		Industry:        req.Industry,
		Area:            req.Area,
		Target:          req.MaxResults,
		IncludeSubAreas: req.IncludeSubAreas,
		Status:          entity.RunPending,
		Message:         msgStarting,
		RequestedBy:     req.RequestedBy,
		StartedAt:       s.now().UTC(),
	}
	if err := s.store.CreateRun(ctx, &run); err != nil {
		<-s.slots
		return nil, fmt.Errorf("create run: %w", err)
	}

	runCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	s.mu.Lock()
	s.active[run.ID] = cancel
	s.mu.Unlock()

	s.wg.Add(1)
	go s.execute(runCtx, run, req)

	snapshot := run
	return &snapshot, nil
}

// Get returns the current state of a run.
func (s *RunService) Get(ctx context.Context, id uuid.UUID) (*entity.Run, error) {
	run, err := s.store.GetRun(ctx, id)
	if err != nil {
		return nil, translateStoreErr(err)
	}
	return run, nil
}

// List returns known runs, newest first.
func (s *RunService) List(ctx context.Context) ([]entity.Run, error) {
	runs, err := s.store.ListRuns(ctx)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	return runs, nil
}

// Listings returns the deduplicated listings collected so far.
func (s *RunService) Listings(ctx context.Context, id uuid.UUID) ([]entity.Listing, error) {
	listings, err := s.store.Listings(ctx, id)
	if err != nil {
		return nil, translateStoreErr(err)
	}
	return Dedupe(listings), nil
}

// Export returns a finished run with its listings. Active runs yield ErrRunActive.
func (s *RunService) Export(ctx context.Context, id uuid.UUID) (*entity.Run, []entity.Listing, error) {
	run, err := s.Get(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if !run.Status.Finished() {
		return run, nil, ErrRunActive
	}
	listings, err := s.Listings(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	return run, listings, nil
}

// Stop cancels an active run. Stopping a finished run is a no-op.
func (s *RunService) Stop(ctx context.Context, id uuid.UUID) (*entity.Run, error) {
	s.mu.Lock()
	cancel, ok := s.active[id]
	s.mu.Unlock()
	if ok {
		cancel()
	}
	return s.Get(ctx, id)
}

// Wait blocks until every run goroutine returned.
func (s *RunService) Wait() {
	s.wg.Wait()
}

// Shutdown cancels all active runs and waits for them until ctx expires.
func (s *RunService) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	for _, cancel := range s.active {
		cancel()
	}
	s.mu.Unlock()

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *RunService) execute(ctx context.Context, run entity.Run, req dto.ScrapeRequest) {
	defer s.wg.Done()
	defer func() { <-s.slots }()
	defer func() {
		s.mu.Lock()
		if cancel, ok := s.active[run.ID]; ok {
			cancel()
			delete(s.active, run.ID)
		}
		s.mu.Unlock()
	}()

	log := s.log.WithFields(logrus.Fields{"run_id": run.ID, "query": run.Query})
	save := func() {
		// Persist even after Stop cancelled ctx.
		if err := s.store.UpdateRun(context.WithoutCancel(ctx), &run); err != nil {
			log.WithError(err).Warn("failed to persist run state")
		}
	}
	finish := func(status entity.RunStatus, message string, runErr error) {
		now := s.now().UTC()
		run.Status = status
		run.Message = message
		run.FinishedAt = &now
		if runErr != nil {
			run.Error = runErr.Error()
		}
		save()
		log.WithFields(logrus.Fields{
			"status":     status,
			"found":      run.Found,
			"processed":  run.Processed,
			"filtered":   run.Filtered,
			"duplicates": run.Duplicates,
		}).Info("run finished")
		s.notify(ctx, run, log)
	}
	defer func() {
		if r := recover(); r != nil {
			finish(entity.RunFailed, fmt.Sprintf("Error: %v", r), fmt.Errorf("panic: %v", r))
		}
	}()

	run.Status = entity.RunRunning
	run.Message = msgInitializing
	save()

	opts := s.scrape
	opts.OnScroll = func() {
		run.Message = msgScrolling
		save()
	}
	sc := scraper.New(s.launcher, opts)
	defer func() {
		if err := sc.Stop(); err != nil {
			log.WithError(err).Warn("failed to close browser")
		}
	}()

	run.Message = msgNavigating
	save()
	if err := sc.Start(ctx, run.Query); err != nil {
		switch {
		case ctx.Err() != nil:
			finish(entity.RunStopped, msgStopped, nil)
		case errors.Is(err, scraper.ErrNoResults):
			finish(entity.RunCompleted, msgNoResults, nil)
		default:
			finish(entity.RunFailed, "Error: "+err.Error(), err)
		}
		return
	}

	run.Message = msgScraping
	save()

	procOpts := []ProcessorOption{WithRequireValidPhone(req.RequireValidPhone), WithClock(s.now)}
	if s.checker != nil {
		procOpts = append(procOpts, WithWebsiteChecker(s.checker))
	}
	processor := NewListingProcessor(NewAreaMatcher(catalog.Resolve(run.Area), run.IncludeSubAreas), procOpts...)
	seen := NewDeduplicator()

	for run.Found < run.Target {
		place, err := sc.Step(ctx)
		run.Processed = sc.Processed()
		if err != nil {
			switch {
			case ctx.Err() != nil:
				finish(entity.RunStopped, msgStopped, nil)
				return
			case errors.Is(err, scraper.ErrExhausted):
				run.Message = msgExhausted
				save()
				log.Info("no more results found")
			default:
				finish(entity.RunFailed, "Error: "+err.Error(), err)
				return
			}
			break
		}
		if place == nil {
			save()
			continue
		}

		listing, verdict := processor.Process(ctx, *place, ListingMeta{
			RunID:    run.ID,
			Industry: run.Industry,
			Area:     run.Area,
			Position: run.Processed - 1,
		})
		entry := log.WithFields(logrus.Fields{"name": listing.Name, "verdict": verdict})
		if verdict != VerdictAccepted {
			run.Filtered++
			entry.Debug("listing rejected")
			save()
			continue
		}
		if seen.Seen(listing) {
			run.Duplicates++
			run.Message = "Skipping duplicate: " + listing.Name
			entry.Debug("duplicate listing")
			save()
			continue
		}
		if err := s.store.AddListing(context.WithoutCancel(ctx), listing); err != nil {
			finish(entity.RunFailed, "Error: "+err.Error(), err)
			return
		}
		run.Found++
		run.Message = "Found: " + listing.Name
		entry.Info("listing found")
		save()
	}

	finish(entity.RunCompleted, msgFinished, nil)
}

func (s *RunService) notify(ctx context.Context, run entity.Run, log *logrus.Entry) {
	if s.notifier == nil {
		return
	}
	nctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), notifyTimeout)
	defer cancel()
	if err := s.notifier.NotifyRun(nctx, run); err != nil {
		log.WithError(err).Warn("run notification failed")
	}
}

// normalizeRequest maps industry and area onto catalog values and applies
// the result bounds. A preset Query allows free-form searches without a catalog area.
func normalizeRequest(req dto.ScrapeRequest) (dto.ScrapeRequest, error) {
	req.Query = strings.TrimSpace(req.Query)

	switch {
	case strings.TrimSpace(req.Industry) != "":
		industry, ok := catalog.CanonicalIndustry(req.Industry)
		if !ok {
			return req, &ValidationError{Field: "industry", Message: fmt.Sprintf("unknown industry %q", req.Industry)}
		}
		req.Industry = industry
	case req.Query == "":
		return req, &ValidationError{Field: "industry", Message: "is required"}
	}

	switch {
	case strings.TrimSpace(req.Area) != "":
		area, ok := catalog.CanonicalArea(req.Area)
		if !ok {
			return req, &ValidationError{Field: "area", Message: fmt.Sprintf("unknown area %q", req.Area)}
		}
		req.Area = area
	case req.Query == "":
		return req, &ValidationError{Field: "area", Message: "is required"}
	default:
		req.IncludeSubAreas = false
	}

	if req.MaxResults == 0 {
		req.MaxResults = catalog.DefaultResults
	}
	if req.MaxResults < 1 || req.MaxResults > catalog.MaxResults {
		return req, &ValidationError{Field: "max_results", Message: fmt.Sprintf("must be between 1 and %d", catalog.MaxResults)}
	}

	if req.Query == "" {
		req.Query = catalog.SearchQuery(req.Industry, req.Area)
	}
	return req, nil
}

func translateStoreErr(err error) error {
	if errors.Is(err, repository.ErrRunNotFound) {
		return ErrRunNotFound
	}
	return err
}
