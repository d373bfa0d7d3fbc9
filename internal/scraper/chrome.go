package scraper

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/chromedp/chromedp"

	"github.com/onnise/beyond-ads-scraper/internal/config"
)

const (
	listingSelector = `a[href*="/maps/place"]`
	detailSelector  = `h1.DUwDvf`
)

// ChromeLauncher starts headless Chrome sessions through chromedp.
type ChromeLauncher struct {
	cfg config.BrowserConfig
}

// NewChromeLauncher builds a launcher from browser settings.
func NewChromeLauncher(cfg config.BrowserConfig) *ChromeLauncher {
	return &ChromeLauncher{cfg: cfg}
}

// Launch allocates a browser tied to ctx. Cancelling ctx closes it.
func (l *ChromeLauncher) Launch(ctx context.Context) (Page, error) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", l.cfg.Headless),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("lang", "en-US"),
		chromedp.WindowSize(1366, 900),
		chromedp.UserAgent(l.cfg.UserAgent),
	)
	if l.cfg.ChromePath != "" {
		opts = append(opts, chromedp.ExecPath(l.cfg.ChromePath))
	}

	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, opts...)
	browserCtx, browserCancel := chromedp.NewContext(allocCtx)

	// the first Run must use the browser context itself, otherwise the
	// browser dies with the first derived timeout
	if err := chromedp.Run(browserCtx); err != nil {
		browserCancel()
		allocCancel()
		return nil, err
	}

	return &chromePage{
		ctx: browserCtx,
		cfg: l.cfg,
		cancel: func() {
			browserCancel()
			allocCancel()
		},
	}, nil
}

type chromePage struct {
	ctx    context.Context
	cfg    config.BrowserConfig
	cancel context.CancelFunc
}

func (p *chromePage) run(ctx context.Context, timeout time.Duration, actions ...chromedp.Action) error {
	var (
		runCtx context.Context
		cancel context.CancelFunc
	)
	if timeout > 0 {
		runCtx, cancel = context.WithTimeout(p.ctx, timeout)
	} else {
		runCtx, cancel = context.WithCancel(p.ctx)
	}
	defer cancel()
	stop := context.AfterFunc(ctx, cancel)
	defer stop()

	err := chromedp.Run(runCtx, actions...)
	if err != nil && ctx.Err() != nil {
		return ctx.Err()
	}
	return err
}

func (p *chromePage) Navigate(ctx context.Context, url string) error {
	return p.run(ctx, p.cfg.NavigationTimeout, chromedp.Navigate(url))
}

func (p *chromePage) AcceptConsent(ctx context.Context) (bool, error) {
	var clicked bool
	err := p.run(ctx, 10*time.Second, chromedp.Evaluate(consentScript, &clicked))
	return clicked, err
}

func (p *chromePage) WaitForResults(ctx context.Context) error {
	return p.run(ctx, p.cfg.ResultsTimeout, chromedp.WaitVisible(listingSelector, chromedp.ByQuery))
}

func (p *chromePage) CountListings(ctx context.Context) (int, error) {
	var count int
	err := p.run(ctx, 10*time.Second, chromedp.Evaluate(countScript, &count))
	return count, err
}

func (p *chromePage) ScrollResults(ctx context.Context) error {
	return p.run(ctx, 10*time.Second, chromedp.Evaluate(scrollScript, nil))
}

func (p *chromePage) OpenListing(ctx context.Context, index int) (string, error) {
	var previous string
	if err := p.run(ctx, 5*time.Second, chromedp.Evaluate(headerScript, &previous)); err != nil {
		return "", err
	}

	var href string
	if err := p.run(ctx, 10*time.Second, chromedp.Evaluate(fmt.Sprintf(clickScript, index), &href)); err != nil {
		return "", err
	}
	if href == "" {
		return "", fmt.Errorf("listing %d not found", index)
	}

	err := p.run(ctx, p.cfg.DetailTimeout+time.Second,
		chromedp.PollFunction(detailReadyScript, nil,
			chromedp.WithPollingArgs(previous),
			chromedp.WithPollingInterval(100*time.Millisecond),
			chromedp.WithPollingTimeout(p.cfg.DetailTimeout),
		),
	)
	if err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		if errors.Is(err, chromedp.ErrPollingTimeout) || errors.Is(err, context.DeadlineExceeded) {
			return href, ErrDetailTimeout
		}
		return href, err
	}
	return href, nil
}

func (p *chromePage) ReadPlace(ctx context.Context) (RawPlace, error) {
	var payload string
	if err := p.run(ctx, 10*time.Second, chromedp.Evaluate(detailScript, &payload)); err != nil {
		return RawPlace{}, err
	}
	var place RawPlace
	if strings.TrimSpace(payload) == "" {
		return place, errors.New("empty detail payload")
	}
	if err := json.Unmarshal([]byte(payload), &place); err != nil {
		return RawPlace{}, fmt.Errorf("decode detail payload: %w", err)
	}
	return place, nil
}

func (p *chromePage) Content(ctx context.Context) (string, error) {
	var html string
	err := p.run(ctx, 10*time.Second, chromedp.OuterHTML("html", &html, chromedp.ByQuery))
	return html, err
}

func (p *chromePage) Screenshot(ctx context.Context) ([]byte, error) {
	var buf []byte
	err := p.run(ctx, 10*time.Second, chromedp.CaptureScreenshot(&buf))
	return buf, err
}

func (p *chromePage) Close() error {
	if p.cancel != nil {
		p.cancel()
		p.cancel = nil
	}
	return nil
}
