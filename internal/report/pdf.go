package report

import (
	"bytes"
	"fmt"
	"strconv"
	"time"

	"github.com/jung-kurt/gofpdf"
)

// PDFColumns is the fixed column order of the exported table. Downstream
// tooling keys on it, so it never changes.
var PDFColumns = []string{
	"Month",
	"Total Orders",
	"Ad Spent (INR)",
	"Total Expenses (INR)",
	"Realised Earning (INR)",
}

var pdfColWidths = []float64{40, 28, 38, 40, 44}

// RenderPDF lays the monthly table out as a paginated A4 document: title on
// the first page, page numbers and the generation timestamp in every
// footer.
func RenderPDF(buckets []MonthBucket, generatedAt time.Time) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Monthly Summary Report", false)
	pdf.AliasNbPages("")

	pdf.SetFooterFunc(func() {
		pdf.SetY(-15)
		pdf.SetFont("Helvetica", "", 9)
		pdf.SetTextColor(150, 150, 150)
		pdf.CellFormat(0, 10,
			fmt.Sprintf("Page %d of {nb}", pdf.PageNo()),
			"", 0, "L", false, 0, "")
		pdf.CellFormat(0, 10,
			"Generated on: "+generatedAt.Format("02 Jan 2006"),
			"", 0, "R", false, 0, "")
	})

	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.SetTextColor(40, 40, 40)
	pdf.CellFormat(0, 12, "Monthly Summary Report", "", 1, "L", false, 0, "")
	pdf.Ln(4)

	// Header row
	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetFillColor(230, 230, 230)
	pdf.SetTextColor(0, 0, 0)
	for i, col := range PDFColumns {
		pdf.CellFormat(pdfColWidths[i], 9, col, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(50, 50, 50)
	fill := false
	for _, b := range buckets {
		pdf.SetFillColor(245, 245, 245)
		cells := []string{
			b.Label,
			strconv.Itoa(b.TotalOrders),
			FormatINR(b.AdSpent),
			FormatINR(b.TotalExpenses),
			FormatINR(b.RealisedEarning),
		}
		for i, cell := range cells {
			align := "R"
			if i == 0 {
				align = "L"
			}
			pdf.CellFormat(pdfColWidths[i], 8, cell, "1", 0, align, fill, 0, "")
		}
		pdf.Ln(-1)
		fill = !fill
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render summary pdf: %w", err)
	}
	return buf.Bytes(), nil
}
