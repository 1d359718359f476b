package export

import (
	"fmt"
	"io"

	"github.com/sangkips/salesdesk-api/internal/domain/entity"
	"github.com/xuri/excelize/v2"
)

const salesSheet = "Sales"

var salesHeadings = []string{"Date", "Product", "Quantity", "Unit Price", "Total", "Status", "Customer", "Notes"}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// saleRow returns the cell values of one sale in heading order
func saleRow(s entity.Sale) []interface{} {
	return []interface{}{
		s.Date,
		s.ProductName,
		s.Quantity,
		s.UnitPrice,
		s.TotalAmount,
		s.Status.String(),
		deref(s.CustomerName),
		deref(s.Notes),
	}
}

// WriteSalesXLSX writes the sales as a single-sheet workbook to w
func WriteSalesXLSX(w io.Writer, sales []entity.Sale) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", salesSheet); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}

	headings := make([]interface{}, len(salesHeadings))
	for i, h := range salesHeadings {
		headings[i] = h
	}
	if err := f.SetSheetRow(salesSheet, "A1", &headings); err != nil {
		return fmt.Errorf("failed to write headings: %w", err)
	}

	for i, s := range sales {
		row := saleRow(s)
		if err := f.SetSheetRow(salesSheet, fmt.Sprintf("A%d", i+2), &row); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}
