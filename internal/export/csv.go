// Package export renders listings as CSV and XLSX files.
package export

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/onnise/beyond-ads-scraper/internal/entity"
	"github.com/onnise/beyond-ads-scraper/internal/service"
)

// bom makes Excel open the file as UTF-8.
const bom = "\ufeff"

// WriteCSV writes a BOM, the header and one row per deduplicated listing.
func WriteCSV(w io.Writer, listings []entity.Listing, cols []Column) error {
	if _, err := io.WriteString(w, bom); err != nil {
		return fmt.Errorf("write bom: %w", err)
	}
	return writeRows(w, service.Dedupe(listings), cols, true)
}

// SaveCSV writes listings to path and returns the number of rows written.
// With appendRows an existing file keeps its content and header.
func SaveCSV(path string, listings []entity.Listing, cols []Column, appendRows bool) (int, error) {
	listings = service.Dedupe(listings)
	if len(listings) == 0 {
		return 0, nil
	}

	exists := false
	if info, err := os.Stat(path); err == nil && info.Size() > 0 {
		exists = true
	} else if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return 0, fmt.Errorf("stat %s: %w", path, err)
	}

	flags := os.O_CREATE | os.O_WRONLY | os.O_TRUNC
	if appendRows {
		flags = os.O_CREATE | os.O_WRONLY | os.O_APPEND
	}
	f, err := os.OpenFile(path, flags, 0o644)
	if err != nil {
		return 0, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	header := !(appendRows && exists)
	if header {
		if _, err := io.WriteString(f, bom); err != nil {
			return 0, fmt.Errorf("write bom: %w", err)
		}
	}
	if err := writeRows(f, listings, cols, header); err != nil {
		return 0, err
	}
	return len(listings), f.Close()
}

func writeRows(w io.Writer, listings []entity.Listing, cols []Column, header bool) error {
	cw := csv.NewWriter(w)
	if header {
		if err := cw.Write(headers(cols)); err != nil {
			return fmt.Errorf("write header: %w", err)
		}
	}
	for _, l := range listings {
		if err := cw.Write(record(l, cols)); err != nil {
			return fmt.Errorf("write row %q: %w", l.Name, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// FileName builds "Scrape_<query>_<count>.<ext>" with a filesystem-safe query.
func FileName(query string, count int, ext string) string {
	safe := strings.NewReplacer(" ", "_", ",", "", "/", "-").Replace(strings.TrimSpace(query))
	return fmt.Sprintf("Scrape_%s_%d.%s", safe, count, strings.TrimPrefix(ext, "."))
}
