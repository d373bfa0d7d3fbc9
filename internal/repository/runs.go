package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/onnise/beyond-ads-scraper/internal/entity"
)

type pgxPool interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

var _ pgxPool = (*pgxpool.Pool)(nil)

// PGXRunStore implements RunStore using pgx.
type PGXRunStore struct {
	pool pgxPool
}

// NewPGXRunStore wires a pgx backed run store.
func NewPGXRunStore(pool *pgxpool.Pool) *PGXRunStore {
	return &PGXRunStore{pool: pool}
}

var _ RunStore = (*PGXRunStore)(nil)

const runColumns = `id, query, industry, area, target, include_sub_areas, status, message,
            processed, found, filtered, duplicates, error, requested_by, started_at, finished_at`

// CreateRun inserts a new run row.
func (r *PGXRunStore) CreateRun(ctx context.Context, run *entity.Run) error {
	if run == nil {
		return fmt.Errorf("run payload is nil")
	}

	query := `
        INSERT INTO scrape_runs (` + runColumns + `)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
    `
	_, err := r.pool.Exec(ctx, query,
		run.ID,
		run.Query,
		run.Industry,
		run.Area,
		run.Target,
		run.IncludeSubAreas,
		string(run.Status),
		run.Message,
		run.Processed,
		run.Found,
		run.Filtered,
		run.Duplicates,
		run.Error,
		run.RequestedBy,
		run.StartedAt,
		timeOrNil(run.FinishedAt),
	)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}
	return nil
}

// UpdateRun stores the progress counters and status of a run.
func (r *PGXRunStore) UpdateRun(ctx context.Context, run *entity.Run) error {
	if run == nil {
		return fmt.Errorf("run payload is nil")
	}

	query := `
        UPDATE scrape_runs SET
            status = $2,
            message = $3,
            processed = $4,
            found = $5,
            filtered = $6,
            duplicates = $7,
            error = $8,
            finished_at = $9
        WHERE id = $1
    `
	tag, err := r.pool.Exec(ctx, query,
		run.ID,
		string(run.Status),
		run.Message,
		run.Processed,
		run.Found,
		run.Filtered,
		run.Duplicates,
		run.Error,
		timeOrNil(run.FinishedAt),
	)
	if err != nil {
		return fmt.Errorf("update run: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrRunNotFound
	}
	return nil
}

// InterruptedMessage is the status text of runs cut short by a restart.
const InterruptedMessage = "Error: interrupted"

// FailInterrupted marks runs left pending or running by a previous process as
// failed, so their stored listings become exportable again.
func (r *PGXRunStore) FailInterrupted(ctx context.Context, at time.Time) (int64, error) {
	query := `
        UPDATE scrape_runs SET
            status = $1,
            message = $2,
            error = $3,
            finished_at = $4
        WHERE status IN ($5, $6)
    `
	tag, err := r.pool.Exec(ctx, query,
		string(entity.RunFailed),
		InterruptedMessage,
		"interrupted",
		at,
		string(entity.RunPending),
		string(entity.RunRunning),
	)
	if err != nil {
		return 0, fmt.Errorf("fail interrupted runs: %w", err)
	}
	return tag.RowsAffected(), nil
}

// GetRun fetches a run by identifier.
func (r *PGXRunStore) GetRun(ctx context.Context, id uuid.UUID) (*entity.Run, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+runColumns+` FROM scrape_runs WHERE id = $1`, id)
	run, err := scanRun(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrRunNotFound
		}
		return nil, fmt.Errorf("query run: %w", err)
	}
	return run, nil
}

// ListRuns returns the most recent runs first.
func (r *PGXRunStore) ListRuns(ctx context.Context) ([]entity.Run, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+runColumns+` FROM scrape_runs ORDER BY started_at DESC LIMIT 100`)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var runs []entity.Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		runs = append(runs, *run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}
	return runs, nil
}

const listingColumns = `run_id, position, name, phone, phone_raw, phone_local, phone_type, phone_valid,
            address, website, instagram, facebook, area, industry, reviews_count, reviews_average,
            store_shopping, in_store_pickup, store_delivery, place_type, opens_at, introduction,
            maps_url, score, score_breakdown, scraped_at`

// AddListing inserts a listing. Re-inserting the same position is a no-op.
func (r *PGXRunStore) AddListing(ctx context.Context, l entity.Listing) error {
	breakdown := l.ScoreBreakdown
	if breakdown == nil {
		breakdown = map[string]int{}
	}
	breakdownJSON, err := json.Marshal(breakdown)
	if err != nil {
		return fmt.Errorf("marshal score breakdown: %w", err)
	}

	query := `
        INSERT INTO listings (` + listingColumns + `)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16,
                $17, $18, $19, $20, $21, $22, $23, $24, $25::jsonb, $26)
        ON CONFLICT (run_id, position) DO NOTHING
    `
	_, err = r.pool.Exec(ctx, query,
		l.RunID,
		l.Position,
		l.Name,
		l.Phone,
		l.PhoneRaw,
		l.PhoneLocal,
		string(l.PhoneType),
		l.PhoneValid,
		l.Address,
		l.Website,
		l.Instagram,
		l.Facebook,
		l.Area,
		l.Industry,
		intOrNil(l.ReviewsCount),
		floatOrNil(l.ReviewsAverage),
		l.StoreShopping,
		l.InStorePickup,
		l.StoreDelivery,
		l.PlaceType,
		l.OpensAt,
		l.Introduction,
		l.MapsURL,
		l.Score,
		string(breakdownJSON),
		l.ScrapedAt,
	)
	if err != nil {
		return fmt.Errorf("insert listing %q: %w", l.Name, err)
	}
	return nil
}

// Listings returns the listings of a run ordered by position.
func (r *PGXRunStore) Listings(ctx context.Context, runID uuid.UUID) ([]entity.Listing, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+listingColumns+` FROM listings WHERE run_id = $1 ORDER BY position`, runID)
	if err != nil {
		return nil, fmt.Errorf("list listings: %w", err)
	}
	defer rows.Close()

	return scanListings(rows)
}

func scanRun(row pgx.Row) (*entity.Run, error) {
	var (
		run      entity.Run
		status   string
		finished sql.NullTime
	)
	err := row.Scan(
		&run.ID,
		&run.Query,
		&run.Industry,
		&run.Area,
		&run.Target,
		&run.IncludeSubAreas,
		&status,
		&run.Message,
		&run.Processed,
		&run.Found,
		&run.Filtered,
		&run.Duplicates,
		&run.Error,
		&run.RequestedBy,
		&run.StartedAt,
		&finished,
	)
	if err != nil {
		return nil, err
	}
	run.Status = entity.RunStatus(status)
	if finished.Valid {
		ts := finished.Time
		run.FinishedAt = &ts
	}
	return &run, nil
}

func scanListings(rows pgx.Rows) ([]entity.Listing, error) {
	var listings []entity.Listing
	for rows.Next() {
		var (
			l         entity.Listing
			phoneType string
			reviews   sql.NullInt64
			average   sql.NullFloat64
			breakdown []byte
		)
		err := rows.Scan(
			&l.RunID,
			&l.Position,
			&l.Name,
			&l.Phone,
			&l.PhoneRaw,
			&l.PhoneLocal,
			&phoneType,
			&l.PhoneValid,
			&l.Address,
			&l.Website,
			&l.Instagram,
			&l.Facebook,
			&l.Area,
			&l.Industry,
			&reviews,
			&average,
			&l.StoreShopping,
			&l.InStorePickup,
			&l.StoreDelivery,
			&l.PlaceType,
			&l.OpensAt,
			&l.Introduction,
			&l.MapsURL,
			&l.Score,
			&breakdown,
			&l.ScrapedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan listing: %w", err)
		}

		l.PhoneType = entity.PhoneType(phoneType)
		if reviews.Valid {
			cast := int(reviews.Int64)
			l.ReviewsCount = &cast
		}
		if average.Valid {
			val := average.Float64
			l.ReviewsAverage = &val
		}
		if len(breakdown) > 0 {
			if err := json.Unmarshal(breakdown, &l.ScoreBreakdown); err != nil {
				return nil, fmt.Errorf("unmarshal score breakdown: %w", err)
			}
		}

		listings = append(listings, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate listings: %w", err)
	}
	return listings, nil
}

func timeOrNil(value *time.Time) any {
	if value == nil {
		return nil
	}
	return *value
}

func floatOrNil(value *float64) any {
	if value == nil {
		return nil
	}
	return *value
}

func intOrNil(value *int) any {
	if value == nil {
		return nil
	}
	return *value
}
