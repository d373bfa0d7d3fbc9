// Package scrapertest provides an in-memory scraper.Page for tests.
package scrapertest

import (
	"context"
	"fmt"
	"sync"

	"github.com/onnise/beyond-ads-scraper/internal/scraper"
)

// Page serves Places as if they were a maps results list. Visible listings
// grow by PageSize on every scroll.
type Page struct {
	mu sync.Mutex

	Places   []scraper.RawPlace
	Visible  int
	PageSize int

	NavigateErr    error
	WaitErr        error
	ConsentButton  bool
	DetailTimeouts map[int]bool
	HTML           string

	Navigated []string
	Opened    []int
	Scrolls   int
	Closed    bool
	// BeforeOpen runs before each OpenListing call.
	BeforeOpen func(index int)

	current int
}

// Launcher returns a launcher that always hands out p.
func Launcher(p *Page) scraper.Launcher {
	return scraper.LauncherFunc(func(ctx context.Context) (scraper.Page, error) {
		return p, nil
	})
}

// FailingLauncher returns a launcher that always fails with err.
func FailingLauncher(err error) scraper.Launcher {
	return scraper.LauncherFunc(func(ctx context.Context) (scraper.Page, error) {
		return nil, err
	})
}

func (p *Page) Navigate(ctx context.Context, url string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Navigated = append(p.Navigated, url)
	return p.NavigateErr
}

func (p *Page) AcceptConsent(ctx context.Context) (bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	clicked := p.ConsentButton
	p.ConsentButton = false
	return clicked, nil
}

func (p *Page) WaitForResults(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.WaitErr != nil {
		return p.WaitErr
	}
	if len(p.Places) == 0 {
		return fmt.Errorf("no listings")
	}
	return nil
}

func (p *Page) CountListings(ctx context.Context) (int, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.visible(), nil
}

func (p *Page) ScrollResults(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Scrolls++
	step := p.PageSize
	if step <= 0 {
		step = len(p.Places)
	}
	p.Visible = p.visible() + step
	return nil
}

func (p *Page) OpenListing(ctx context.Context, index int) (string, error) {
	if p.BeforeOpen != nil {
		p.BeforeOpen(index)
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Opened = append(p.Opened, index)
	if index >= p.visible() {
		return "", fmt.Errorf("listing %d not visible", index)
	}
	if p.DetailTimeouts[index] {
		return "", scraper.ErrDetailTimeout
	}
	p.current = index
	return fmt.Sprintf("https://www.google.com/maps/place/listing-%d", index), nil
}

func (p *Page) ReadPlace(ctx context.Context) (scraper.RawPlace, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.Places[p.current], nil
}

func (p *Page) Content(ctx context.Context) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.HTML, nil
}

func (p *Page) Screenshot(ctx context.Context) ([]byte, error) {
	return []byte{0x89, 'P', 'N', 'G'}, nil
}

func (p *Page) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Closed = true
	return nil
}

// IsClosed reports whether Close was called.
func (p *Page) IsClosed() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.Closed
}

func (p *Page) visible() int {
	v := p.Visible
	if v <= 0 && p.PageSize > 0 {
		v = p.PageSize
	}
	if v <= 0 || v > len(p.Places) {
		v = len(p.Places)
	}
	return v
}
