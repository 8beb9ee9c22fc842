package orderexport

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"carte/internal/cart"
)

const sheetName = "Order"

// WriteXLSX writes the order as a single-sheet workbook. reference is shown
// above the table.
func WriteXLSX(out io.Writer, s cart.Summary, reference string) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return fmt.Errorf("naming sheet: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("creating style: %w", err)
	}

	if err := f.SetSheetRow(sheetName, "A1", &[]interface{}{"Order", reference}); err != nil {
		return err
	}
	header := make([]interface{}, len(columns))
	for i, c := range columns {
		header[i] = c
	}
	if err := f.SetSheetRow(sheetName, "A3", &header); err != nil {
		return err
	}
	lastCol, _ := excelize.ColumnNumberToName(len(columns))
	if err := f.SetCellStyle(sheetName, "A3", lastCol+"3", bold); err != nil {
		return err
	}

	row := 4
	for i := range s.Lines {
		l := &s.Lines[i]
		values := []interface{}{l.SectionTitle, l.Name, l.OriginalName, l.Quantity, nil, nil, nil, formatBool(l.IsWildcard), l.WildcardReason}
		if l.Price != nil {
			if l.Price.Amount != nil {
				values[4] = *l.Price.Amount
			}
			values[6] = l.Price.Currency
		}
		if l.LineTotal != nil {
			values[5] = *l.LineTotal
		}
		if err := f.SetSheetRow(sheetName, fmt.Sprintf("A%d", row), &values); err != nil {
			return err
		}
		row++
	}

	totalCell := fmt.Sprintf("A%d", row)
	if err := f.SetSheetRow(sheetName, totalCell, &[]interface{}{"Total", nil, nil, s.ItemCount, nil, s.Total, s.Currency}); err != nil {
		return err
	}
	if err := f.SetCellStyle(sheetName, totalCell, fmt.Sprintf("%s%d", lastCol, row), bold); err != nil {
		return err
	}
	if err := f.SetColWidth(sheetName, "A", "C", 28); err != nil {
		return err
	}

	if _, err := f.WriteTo(out); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}
