package orderexport

import (
	"encoding/csv"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
	"time"

	"carte/internal/cart"
)

// UTF-8 BOM bytes for Excel compatibility on Windows.
var BOM = []byte{0xEF, 0xBB, 0xBF}

// columns defines the header row shared by the CSV and XLSX exports.
var columns = []string{
	"Section",
	"Item",
	"Original Name",
	"Quantity",
	"Unit Price",
	"Line Total",
	"Currency",
	"Wildcard",
	"Wildcard Reason",
}

// Writer wraps csv.Writer for exporting an order.
type Writer struct {
	csv *csv.Writer
}

// NewWriter creates a Writer that writes CSV to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{csv: csv.NewWriter(w)}
}

// WriteHeader writes the header row.
func (w *Writer) WriteHeader() error {
	return w.csv.Write(columns)
}

// WriteSummary writes one row per order line followed by the total row.
func (w *Writer) WriteSummary(s cart.Summary) error {
	for i := range s.Lines {
		if err := w.csv.Write(lineToRow(&s.Lines[i])); err != nil {
			return err
		}
	}
	return w.csv.Write(totalRow(s))
}

// Flush flushes the underlying csv.Writer buffer.
func (w *Writer) Flush() {
	w.csv.Flush()
}

// Error returns any error from the underlying csv.Writer.
func (w *Writer) Error() error {
	return w.csv.Error()
}

// WriteCSV writes the BOM, the header and the whole order to out.
func WriteCSV(out io.Writer, s cart.Summary) error {
	if _, err := out.Write(BOM); err != nil {
		return fmt.Errorf("writing bom: %w", err)
	}
	w := NewWriter(out)
	if err := w.WriteHeader(); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	if err := w.WriteSummary(s); err != nil {
		return fmt.Errorf("writing order: %w", err)
	}
	w.Flush()
	return w.Error()
}

func lineToRow(l *cart.SummaryLine) []string {
	row := make([]string, len(columns))
	row[0] = l.SectionTitle
	row[1] = l.Name
	row[2] = l.OriginalName
	row[3] = strconv.Itoa(l.Quantity)
	if l.Price != nil {
		row[4] = formatAmount(l.Price.Amount)
		row[6] = l.Price.Currency
	}
	row[5] = formatAmount(l.LineTotal)
	row[7] = formatBool(l.IsWildcard)
	row[8] = l.WildcardReason
	return row
}

func totalRow(s cart.Summary) []string {
	row := make([]string, len(columns))
	row[0] = "Total"
	row[3] = strconv.Itoa(s.ItemCount)
	row[5] = strconv.FormatFloat(s.Total, 'f', 2, 64)
	row[6] = s.Currency
	return row
}

func formatAmount(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', 2, 64)
}

func formatBool(v bool) string {
	if v {
		return "Yes"
	}
	return "No"
}

// nonAlphanumeric matches characters that are not alphanumeric, hyphen, or underscore.
var nonAlphanumeric = regexp.MustCompile(`[^a-zA-Z0-9_-]+`)

// multiUnderscore matches consecutive underscores.
var multiUnderscore = regexp.MustCompile(`_{2,}`)

// SanitizeFilename cleans a name for use in Content-Disposition.
func SanitizeFilename(name string) string {
	s := nonAlphanumeric.ReplaceAllString(name, "_")
	s = multiUnderscore.ReplaceAllString(s, "_")
	s = strings.Trim(s, "_")
	if len(s) > 100 {
		s = s[:100]
	}
	return s
}

// BuildFilename returns order_{reference}_{YYYY-MM-DD}.{ext}.
func BuildFilename(reference, ext string, at time.Time) string {
	return fmt.Sprintf("order_%s_%s.%s", SanitizeFilename(reference), at.Format("2006-01-02"), ext)
}
