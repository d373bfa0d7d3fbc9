package repository

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"

	"github.com/onnise/beyond-ads-scraper/internal/entity"
)

type runRecord struct {
	mu       sync.Mutex
	run      entity.Run
	listings []entity.Listing
}

// MemoryRunStore keeps runs in process memory and forgets them after ttl.
type MemoryRunStore struct {
	items *cache.Cache
	ttl   time.Duration
}

// NewMemoryRunStore builds an in-memory store. A non-positive ttl keeps runs forever.
func NewMemoryRunStore(ttl time.Duration) *MemoryRunStore {
	expiration := ttl
	cleanup := ttl
	if ttl <= 0 {
		expiration = cache.NoExpiration
		cleanup = 0
	}
	return &MemoryRunStore{items: cache.New(expiration, cleanup), ttl: expiration}
}

var _ RunStore = (*MemoryRunStore)(nil)

// CreateRun stores a new run.
func (s *MemoryRunStore) CreateRun(_ context.Context, run *entity.Run) error {
	if run == nil {
		return fmt.Errorf("run payload is nil")
	}
	if err := s.items.Add(run.ID.String(), &runRecord{run: *run}, s.ttl); err != nil {
		return fmt.Errorf("create run: %w", err)
	}
	return nil
}

// UpdateRun replaces the stored run and refreshes its expiry.
func (s *MemoryRunStore) UpdateRun(_ context.Context, run *entity.Run) error {
	if run == nil {
		return fmt.Errorf("run payload is nil")
	}
	rec, err := s.record(run.ID)
	if err != nil {
		return err
	}
	rec.mu.Lock()
	rec.run = *run
	rec.mu.Unlock()
	s.items.Set(run.ID.String(), rec, s.ttl)
	return nil
}

// GetRun returns a copy of the stored run.
func (s *MemoryRunStore) GetRun(_ context.Context, id uuid.UUID) (*entity.Run, error) {
	rec, err := s.record(id)
	if err != nil {
		return nil, err
	}
	rec.mu.Lock()
	defer rec.mu.Unlock()
	run := rec.run
	return &run, nil
}

// ListRuns returns every live run, newest first.
func (s *MemoryRunStore) ListRuns(_ context.Context) ([]entity.Run, error) {
	items := s.items.Items()
	runs := make([]entity.Run, 0, len(items))
	for _, item := range items {
		rec, ok := item.Object.(*runRecord)
		if !ok {
			continue
		}
		rec.mu.Lock()
		runs = append(runs, rec.run)
		rec.mu.Unlock()
	}
	sort.Slice(runs, func(i, j int) bool {
		return runs[i].StartedAt.After(runs[j].StartedAt)
	})
	return runs, nil
}

// AddListing appends a listing to its run.
func (s *MemoryRunStore) AddListing(_ context.Context, listing entity.Listing) error {
	rec, err := s.record(listing.RunID)
	if err != nil {
		return err
	}
	rec.mu.Lock()
	rec.listings = append(rec.listings, listing)
	rec.mu.Unlock()
	return nil
}

// Listings returns the listings collected for a run in insertion order.
func (s *MemoryRunStore) Listings(_ context.Context, runID uuid.UUID) ([]entity.Listing, error) {
	rec, err := s.record(runID)
	if err != nil {
		return nil, err
	}
	rec.mu.Lock()
	defer rec.mu.Unlock()
	return append([]entity.Listing(nil), rec.listings...), nil
}

func (s *MemoryRunStore) record(id uuid.UUID) (*runRecord, error) {
	value, ok := s.items.Get(id.String())
	if !ok {
		return nil, ErrRunNotFound
	}
	rec, ok := value.(*runRecord)
	if !ok {
		return nil, ErrRunNotFound
	}
	return rec, nil
}
