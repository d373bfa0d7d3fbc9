package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/onnise/beyond-ads-scraper/internal/entity"
	"github.com/onnise/beyond-ads-scraper/internal/scraper"
	"github.com/onnise/beyond-ads-scraper/internal/service/scoring"
)

// Verdict is the processing outcome for one raw listing.
type Verdict string

const (
	VerdictAccepted     Verdict = "accepted"
	VerdictMissingName  Verdict = "missing_name"
	VerdictOutsideArea  Verdict = "outside_area"
	VerdictInvalidPhone Verdict = "invalid_phone"
)

const noIntroduction = "None Found"

// ListingMeta carries the run context stamped on every listing.
type ListingMeta struct {
	RunID    uuid.UUID
	Industry string
	Area     string
	Position int
}

// ListingProcessor turns raw scraped fields into validated listings.
type ListingProcessor struct {
	matcher           AreaMatcher
	requireValidPhone bool
	checker           *WebsiteChecker
	now               func() time.Time
}

// ProcessorOption configures optional behaviour.
type ProcessorOption func(*ListingProcessor)

// WithRequireValidPhone drops listings whose phone fails validation.
func WithRequireValidPhone(required bool) ProcessorOption {
	return func(p *ListingProcessor) {
		p.requireValidPhone = required
	}
}

// WithWebsiteChecker blanks websites that do not answer.
func WithWebsiteChecker(checker *WebsiteChecker) ProcessorOption {
	return func(p *ListingProcessor) {
		p.checker = checker
	}
}

// WithClock overrides the timestamp source.
func WithClock(now func() time.Time) ProcessorOption {
	return func(p *ListingProcessor) {
		if now != nil {
			p.now = now
		}
	}
}

// NewListingProcessor builds a processor filtering on matcher.
func NewListingProcessor(matcher AreaMatcher, opts ...ProcessorOption) *ListingProcessor {
	p := &ListingProcessor{
		matcher: matcher,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Process validates raw and reports whether it should be kept. The returned
// listing is populated even when rejected so callers can log it.
func (p *ListingProcessor) Process(ctx context.Context, raw scraper.RawPlace, meta ListingMeta) (entity.Listing, Verdict) {
	listing := entity.Listing{
		RunID:        meta.RunID,
		Position:     meta.Position,
		Name:         strings.TrimSpace(raw.Name),
		Address:      strings.TrimSpace(raw.Address),
		Area:         meta.Area,
		Industry:     meta.Industry,
		PlaceType:    strings.TrimSpace(raw.PlaceType),
		Introduction: strings.TrimSpace(raw.Introduction),
		MapsURL:      strings.TrimSpace(raw.MapsURL),
		ScrapedAt:    p.now().UTC(),
	}
	if listing.Introduction == "" {
		listing.Introduction = noIntroduction
	}

	phone := ClassifyPhone(raw.Phone)
	listing.PhoneRaw = phone.Raw
	listing.PhoneLocal = phone.Local
	listing.PhoneType = phone.Type
	listing.PhoneValid = phone.Valid
	if phone.Valid {
		listing.Phone = phone.E164
	}

	link := raw.Website
	if strings.TrimSpace(link) == "" {
		link = raw.WebsiteText
	}
	site := ClassifyWebsite(link)
	listing.Website = site.Website
	listing.Instagram = site.Instagram
	listing.Facebook = site.Facebook

	listing.ReviewsCount = scraper.ParseReviewsCount(raw.ReviewsCount)
	listing.ReviewsAverage = scraper.ParseReviewsAverage(raw.ReviewsAverage)
	info := scraper.ParseStoreInfo(raw.InfoLines)
	listing.StoreShopping = info.Shopping
	listing.InStorePickup = info.Pickup
	listing.StoreDelivery = info.Delivery
	listing.OpensAt = scraper.ParseOpensAt(raw.OpensAt)
	if listing.OpensAt == "" {
		listing.OpensAt = scraper.ParseOpensAt(raw.OpensAtAlt)
	}

	if listing.Name == "" {
		return listing, VerdictMissingName
	}
	if !p.matcher.Match(listing.Address) {
		return listing, VerdictOutsideArea
	}
	if p.requireValidPhone && !listing.PhoneValid {
		return listing, VerdictInvalidPhone
	}

	if p.checker != nil && listing.Website != "" && !p.checker.Reachable(ctx, listing.Website) {
		listing.Website = ""
	}

	score := scoring.ComputeScore(scoring.ListingFeatures{
		PhoneValid:     listing.PhoneValid,
		Mobile:         listing.PhoneType == entity.PhoneMobile,
		Website:        listing.Website,
		Instagram:      listing.Instagram,
		Facebook:       listing.Facebook,
		ReviewsCount:   listing.ReviewsCount,
		ReviewsAverage: listing.ReviewsAverage,
		Address:        listing.Address,
		OpensAt:        listing.OpensAt,
		PlaceType:      listing.PlaceType,
		Introduction:   listing.Introduction,
	})
	listing.Score = score.Total
	listing.ScoreBreakdown = score.Breakdown

	return listing, VerdictAccepted
}
