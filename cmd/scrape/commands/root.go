package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/onnise/beyond-ads-scraper/internal/config"
	"github.com/onnise/beyond-ads-scraper/internal/dto"
	"github.com/onnise/beyond-ads-scraper/internal/entity"
	"github.com/onnise/beyond-ads-scraper/internal/export"
	"github.com/onnise/beyond-ads-scraper/internal/logging"
	"github.com/onnise/beyond-ads-scraper/internal/repository"
	"github.com/onnise/beyond-ads-scraper/internal/scraper"
	"github.com/onnise/beyond-ads-scraper/internal/service"
)

const pollInterval = 500 * time.Millisecond

type options struct {
	search   string
	total    int
	output   string
	appendTo bool
	industry string
	area     string
	xlsx     bool
	detail   string
	headless bool
}

var opts options

var rootCmd = &cobra.Command{
	Use:   "scrape",
	Short: "Scrape Lebanese business listings from Google Maps into a spreadsheet.",
	Example: `  scrape -s "dentists in Beirut" -t 20
  scrape --industry Dentists --area Beirut -t 50 --xlsx`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return run(cmd, opts)
	},
}

func init() {
	flags := rootCmd.Flags()
	flags.StringVarP(&opts.search, "search", "s", "real estate companies in Beirut", "free-form search query")
	flags.IntVarP(&opts.total, "total", "t", 5, "number of listings to collect")
	flags.StringVarP(&opts.output, "output", "o", "result.csv", "output file")
	flags.BoolVar(&opts.appendTo, "append", false, "append rows to an existing CSV file")
	flags.StringVar(&opts.industry, "industry", "", "catalog industry, used with --area instead of --search")
	flags.StringVar(&opts.area, "area", "", "catalog area, used with --industry instead of --search")
	flags.BoolVar(&opts.xlsx, "xlsx", false, "write an Excel workbook instead of CSV")
	flags.StringVar(&opts.detail, "detail", "basic", "column layout: basic or full")
	flags.BoolVar(&opts.headless, "headless", true, "run Chrome without a window")
	rootCmd.MarkFlagsMutuallyExclusive("append", "xlsx")
}

// ExecuteContext runs the root command and exits non-zero on failure.
func ExecuteContext(ctx context.Context) {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func buildRequest(o options) (dto.ScrapeRequest, error) {
	if o.total <= 0 {
		return dto.ScrapeRequest{}, errors.New("--total must be positive")
	}
	req := dto.ScrapeRequest{MaxResults: o.total}
	switch {
	case o.industry != "" && o.area != "":
		req.Industry, req.Area = o.industry, o.area
	case o.industry != "" || o.area != "":
		return dto.ScrapeRequest{}, errors.New("--industry and --area must be used together")
	default:
		req.Query = strings.TrimSpace(o.search)
		if req.Query == "" {
			return dto.ScrapeRequest{}, errors.New("--search must not be empty")
		}
	}
	return req, nil
}

func outputPath(o options) string {
	if !o.xlsx {
		return o.output
	}
	ext := filepath.Ext(o.output)
	if strings.EqualFold(ext, ".xlsx") {
		return o.output
	}
	return strings.TrimSuffix(o.output, ext) + ".xlsx"
}

func run(cmd *cobra.Command, o options) error {
	req, err := buildRequest(o)
	if err != nil {
		return err
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("headless") {
		cfg.Browser.Headless = o.headless
	}
	logger := logging.Configure(cfg.LogLevel, cfg.LogFormat)

	runs := service.NewRunService(
		repository.NewMemoryRunStore(0),
		scraper.NewChromeLauncher(cfg.Browser),
		service.WithRunLogger(logger),
		service.WithScraperOptions(scraper.Options{DebugDir: cfg.Browser.DebugDir, Logger: logger}),
	)

	ctx := cmd.Context()
	started, err := runs.Start(ctx, req)
	if err != nil {
		return err
	}

	bar := progressbar.Default(int64(started.Target), started.Query)
	final, err := follow(ctx, runs, started, bar)
	if err != nil {
		return err
	}
	_ = bar.Finish()

	listings, err := runs.Listings(context.WithoutCancel(ctx), final.ID)
	if err != nil {
		return err
	}
	logger.WithFields(logrus.Fields{
		"status":     final.Status,
		"found":      final.Found,
		"filtered":   final.Filtered,
		"duplicates": final.Duplicates,
	}).Info(final.Message)
	if final.Status == entity.RunFailed {
		return errors.New(final.Message)
	}
	if len(listings) == 0 {
		return nil
	}

	path := outputPath(o)
	cols := export.Layout(o.detail)
	if o.xlsx {
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		if err := export.WriteXLSX(f, listings, cols); err != nil {
			f.Close()
			return err
		}
		if err := f.Close(); err != nil {
			return err
		}
	} else if _, err := export.SaveCSV(path, listings, cols, o.appendTo); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Saved %d listings to %s\n", len(listings), path)
	return nil
}

// follow polls the run until it finishes, stopping it when ctx is cancelled.
func follow(ctx context.Context, runs *service.RunService, started *entity.Run, bar *progressbar.ProgressBar) (*entity.Run, error) {
	bg := context.WithoutCancel(ctx)
	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			if _, err := runs.Stop(bg, started.ID); err != nil {
				return nil, err
			}
			runs.Wait()
			return runs.Get(bg, started.ID)
		case <-ticker.C:
		}

		current, err := runs.Get(bg, started.ID)
		if err != nil {
			return nil, err
		}
		_ = bar.Set(current.Found)
		bar.Describe(current.Message)
		if current.Status.Finished() {
			runs.Wait()
			return current, nil
		}
	}
}
