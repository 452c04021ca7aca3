package report

import (
	"bytes"
	"fmt"
	"strconv"
	"time"

	"github.com/jung-kurt/gofpdf"

	"example.com/graycode/internal/common"
)

// SavePDF renders the run report into a PDF document. When the report
// carries a digest, a QR code of it is placed beside the summary.
func SavePDF(rep RunReport, out string, qrSize int) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Gray Code Run Report", false)
	pdf.SetAuthor("graygen", false)
	pdf.SetCreator("graygen", false)
	pdf.SetMargins(15, 20, 15)
	pdf.SetAutoPageBreak(true, 20)
	pdf.AddPage()

	addPDFTitle(pdf, "Gray Code Run Report")
	top := pdf.GetY()
	addSummarySection(pdf, rep)
	if rep.Sha256 != "" {
		if err := addDigestQR(pdf, rep.Sha256, qrSize, top); err != nil {
			return err
		}
	}
	addPreviewSection(pdf, rep)

	if pdf.Err() {
		return pdf.Error()
	}
	return pdf.OutputFileAndClose(out)
}

func addPDFTitle(pdf *gofpdf.Fpdf, title string) {
	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, title)
	pdf.Ln(12)
}

func addSummarySection(pdf *gofpdf.Fpdf, rep RunReport) {
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, "Summary")
	pdf.Ln(8)

	pdf.SetFont("Helvetica", "", 11)
	items := []struct {
		label string
		value string
	}{
		{label: "Digits", value: strconv.Itoa(rep.NumBits)},
		{label: "Radix", value: strconv.Itoa(rep.Radix)},
		{label: "Words", value: common.FormatCount(rep.Rows)},
		{label: "Output", value: emptyFallback(rep.Output, "-")},
		{label: "Output size", value: common.FormatBytes(rep.OutputBytes)},
		{label: "Compute time", value: fmt.Sprintf("%.3f s", rep.ComputeSeconds)},
		{label: "Write time", value: fmt.Sprintf("%.3f s", rep.WriteSeconds)},
		{label: "Created", value: rep.CreatedAt.Format(time.RFC3339)},
	}
	for _, item := range items {
		pdf.CellFormat(35, 6, item.label, "", 0, "L", false, 0, "")
		pdf.CellFormat(0, 6, item.value, "", 1, "L", false, 0, "")
	}
	if rep.Sha256 != "" {
		pdf.SetFont("Courier", "", 8)
		pdf.CellFormat(35, 6, "SHA-256", "", 0, "L", false, 0, "")
		pdf.CellFormat(0, 6, rep.Sha256, "", 1, "L", false, 0, "")
	}
	pdf.Ln(4)
}

func addDigestQR(pdf *gofpdf.Fpdf, sha string, size int, top float64) error {
	png, err := DigestToQR(sha, size)
	if err != nil {
		return fmt.Errorf("digest qr: %w", err)
	}
	opts := gofpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("digest-qr", opts, bytes.NewReader(png))
	pageW, _ := pdf.GetPageSize()
	_, _, right, _ := pdf.GetMargins()
	const side = 35.0
	pdf.ImageOptions("digest-qr", pageW-right-side, top, side, side, false, opts, 0, "")
	return nil
}

func addPreviewSection(pdf *gofpdf.Fpdf, rep RunReport) {
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, fmt.Sprintf("First %d words", len(rep.Preview)))
	pdf.Ln(9)

	if len(rep.Preview) == 0 {
		pdf.SetFont("Helvetica", "", 11)
		pdf.MultiCell(0, 6, "No words recorded.", "", "L", false)
		return
	}
	pdf.SetFont("Courier", "", 10)
	for i, word := range rep.Preview {
		pdf.CellFormat(15, 5, strconv.Itoa(i), "", 0, "R", false, 0, "")
		pdf.CellFormat(0, 5, "  "+word, "", 1, "L", false, 0, "")
	}
	if rep.Rows > int64(len(rep.Preview)) {
		pdf.SetFont("Helvetica", "I", 9)
		pdf.MultiCell(0, 5, fmt.Sprintf("... %s more words in %s", common.FormatCount(rep.Rows-int64(len(rep.Preview))), rep.Output), "", "L", false)
	}
}

func emptyFallback(val, fallback string) string {
	if val == "" {
		return fallback
	}
	return val
}
