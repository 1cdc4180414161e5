// Package report assembles the paginated PDF from a rasterized dashboard
// capture.
package report

import (
	"bytes"
	"fmt"
	"log"
	"time"

	"aesthetica/internal/models"

	"github.com/go-pdf/fpdf"
)

const (
	footerFontSize = 9
	footerMargin   = 10 // mm from page edges
)

var ptBRMonths = [...]string{
	"janeiro", "fevereiro", "março", "abril", "maio", "junho",
	"julho", "agosto", "setembro", "outubro", "novembro", "dezembro",
}

// FormatTimestampPTBR renders the footer timestamp the way the dashboard
// displays dates, e.g. "05 de janeiro de 2026, 14:30".
func FormatTimestampPTBR(t time.Time) string {
	return fmt.Sprintf("%02d de %s de %d, %02d:%02d",
		t.Day(), ptBRMonths[t.Month()-1], t.Year(), t.Hour(), t.Minute())
}

// PageOffsets returns the vertical offset at which the full capture is
// placed on each page. The image is taller than one page, so each page
// draws it at a more negative offset and reveals the next slice. Always
// at least one page.
func PageOffsets(contentHeight, pageHeight float64) []float64 {
	var offsets []float64
	position := 0.0
	for heightLeft := contentHeight; heightLeft > 0; heightLeft -= pageHeight {
		offsets = append(offsets, position)
		position -= pageHeight
	}
	if len(offsets) == 0 {
		offsets = []float64{0}
	}
	return offsets
}

// PageCount is the number of A4 pages a capture of the given height in
// page units occupies.
func PageCount(contentHeight, pageHeight float64) int {
	return len(PageOffsets(contentHeight, pageHeight))
}

// Exporter turns a capture into a downloadable A4 portrait document.
type Exporter struct {
	now func() time.Time
}

func NewExporter() *Exporter {
	return &Exporter{now: time.Now}
}

// Export lays the capture across as many pages as its height needs and
// stamps every page with the footer and 1-indexed page number. Returns
// the document bytes and the suggested download name.
func (e *Exporter) Export(capture *Capture, result *models.AnalysisResult) ([]byte, string, error) {
	if capture == nil || len(capture.PNG) == 0 {
		return nil, "", fmt.Errorf("nothing captured to export")
	}
	if capture.Width <= 0 || capture.Height <= 0 {
		return nil, "", fmt.Errorf("invalid capture dimensions %dx%d", capture.Width, capture.Height)
	}
	now := e.now()

	pdf := fpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pageWidth, pageHeight := pdf.GetPageSize()

	// Fit the capture to the page width; height follows the same ratio.
	ratio := pageWidth / float64(capture.Width)
	contentHeight := float64(capture.Height) * ratio

	pdf.SetTitle("Análise Aesthetica AI - "+reportSubject(result), true)
	pdf.SetSubject("Auditoria de Criativo", true)
	pdf.SetCreator("Aesthetica AI Platform", true)
	pdf.SetAuthor("Aesthetica AI", true)

	opts := fpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("dashboard", opts, bytes.NewReader(capture.PNG))

	timestamp := FormatTimestampPTBR(now)
	offsets := PageOffsets(contentHeight, pageHeight)
	for i, position := range offsets {
		pdf.AddPage()
		pdf.ImageOptions("dashboard", 0, position, pageWidth, contentHeight, false, opts, 0, "")

		pdf.SetFont("Helvetica", "", footerFontSize)
		pdf.SetTextColor(150, 150, 150)
		left := tr(fmt.Sprintf("Aesthetica AI - Relatório Gerado em %s", timestamp))
		right := tr(fmt.Sprintf("Página %d", i+1))
		pdf.Text(footerMargin, pageHeight-footerMargin, left)
		pdf.Text(pageWidth-footerMargin-pdf.GetStringWidth(right), pageHeight-footerMargin, right)
	}

	if err := pdf.Error(); err != nil {
		return nil, "", fmt.Errorf("assemble pdf: %w", err)
	}
	var out bytes.Buffer
	if err := pdf.Output(&out); err != nil {
		return nil, "", fmt.Errorf("encode pdf: %w", err)
	}

	name := fmt.Sprintf("Relatorio-Aesthetica-%s.pdf", now.Format("2006-01-02"))
	log.Printf("Exported %d-page report (%d bytes) as %s", len(offsets), out.Len(), name)
	return out.Bytes(), name, nil
}

func reportSubject(result *models.AnalysisResult) string {
	if result != nil && result.Metrics.Branding != nil && result.Metrics.Branding.Name != "" {
		return result.Metrics.Branding.Name
	}
	return "Relatório"
}
