package export

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"

	"github.com/onnise/beyond-ads-scraper/internal/entity"
	"github.com/onnise/beyond-ads-scraper/internal/service"
)

const (
	sheetName     = "Sheet1"
	maxColWidth   = 100
	linkFontColor = "0563C1"
)

// WriteXLSX renders deduplicated listings into a single-sheet workbook with
// clickable links and column widths fitted to the content.
func WriteXLSX(w io.Writer, listings []entity.Listing, cols []Column) error {
	listings = service.Dedupe(listings)

	f := excelize.NewFile()
	defer f.Close()

	linkStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Color: linkFontColor, Underline: "single"},
	})
	if err != nil {
		return fmt.Errorf("create link style: %w", err)
	}

	widths := make([]int, len(cols))
	for i, h := range headers(cols) {
		if err := setCell(f, i+1, 1, h); err != nil {
			return err
		}
		widths[i] = utf8.RuneCountInString(h)
	}

	for r, l := range listings {
		row := r + 2
		for i, c := range cols {
			value := c.Value(l)
			if err := setCell(f, i+1, row, value); err != nil {
				return err
			}
			widths[i] = max(widths[i], utf8.RuneCountInString(value))
			if !c.Link || !strings.HasPrefix(value, "http") {
				continue
			}
			cell, _ := excelize.CoordinatesToCellName(i+1, row)
			if err := f.SetCellHyperLink(sheetName, cell, value, "External"); err != nil {
				return fmt.Errorf("set hyperlink %s: %w", cell, err)
			}
			if err := f.SetCellStyle(sheetName, cell, cell, linkStyle); err != nil {
				return fmt.Errorf("style hyperlink %s: %w", cell, err)
			}
		}
	}

	for i, width := range widths {
		name, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return fmt.Errorf("column name: %w", err)
		}
		if err := f.SetColWidth(sheetName, name, name, float64(min(width+2, maxColWidth))); err != nil {
			return fmt.Errorf("set width %s: %w", name, err)
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func setCell(f *excelize.File, col, row int, value string) error {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return fmt.Errorf("cell name: %w", err)
	}
	if err := f.SetCellStr(sheetName, cell, value); err != nil {
		return fmt.Errorf("set %s: %w", cell, err)
	}
	return nil
}
