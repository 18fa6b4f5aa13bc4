package pdf

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"

	"profix/internal/services"
)

// Generator — интерфейс (удобно мокать в тестах)
type Generator interface {
	SummaryPDF(summary services.AnalyticsSummary) ([]byte, error)
}

// ReportGenerator — реализация
type ReportGenerator struct {
	fontName string
}

func NewReportGenerator() *ReportGenerator {
	return &ReportGenerator{fontName: "Helvetica"}
}

// SummaryPDF — одностраничная сводка для выгрузки из админки.
func (g *ReportGenerator) SummaryPDF(summary services.AnalyticsSummary) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("ProFix — operations summary", false)
	pdf.SetAuthor("ProFix", false)
	pdf.SetMargins(20, 20, 20)
	pdf.SetAutoPageBreak(true, 20)
	pdf.AddPage()

	// ===== Заголовок
	pdf.SetFont(g.fontName, "B", 18)
	pdf.CellFormat(0, 10, "OPERATIONS SUMMARY", "", 1, "C", false, 0, "")

	pdf.SetFont(g.fontName, "", 12)
	sub := fmt.Sprintf("Generated %s", time.Now().Format("02.01.2006 15:04"))
	pdf.CellFormat(0, 7, sub, "", 1, "C", false, 0, "")
	g.hr(pdf)
	pdf.Ln(3)

	// ===== Тренд заявок
	g.sectionTitle(pdf, "Requests per month")
	if len(summary.Trend) == 0 {
		g.emptyLine(pdf)
	}
	for _, p := range summary.Trend {
		g.kvLine(pdf, p.Month, fmt.Sprintf("%d", p.Requests))
	}
	pdf.Ln(2)
	g.hr(pdf)

	// ===== Статусы
	g.sectionTitle(pdf, "Status distribution")
	if len(summary.StatusDistribution) == 0 {
		g.emptyLine(pdf)
	}
	for _, s := range summary.StatusDistribution {
		g.kvLine(pdf, s.Name, fmt.Sprintf("%d", s.Value))
	}
	pdf.Ln(2)
	g.hr(pdf)

	// ===== Загрузка PM
	g.sectionTitle(pdf, "Manager workload")
	if len(summary.Workload) == 0 {
		g.emptyLine(pdf)
	}
	for _, w := range summary.Workload {
		g.kvLine(pdf, w.Name, fmt.Sprintf("%d", w.Projects))
	}
	pdf.Ln(2)
	g.hr(pdf)

	// ===== Популярные услуги
	g.sectionTitle(pdf, "Popular services")
	if len(summary.PopularServices) == 0 {
		g.emptyLine(pdf)
	}
	for _, p := range summary.PopularServices {
		g.kvLine(pdf, p.Name, fmt.Sprintf("%d", p.Count))
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render summary pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func (g *ReportGenerator) sectionTitle(pdf *gofpdf.Fpdf, title string) {
	pdf.SetFont(g.fontName, "B", 13)
	pdf.CellFormat(0, 8, title, "", 1, "L", false, 0, "")
	pdf.SetFont(g.fontName, "", 11)
}

func (g *ReportGenerator) kvLine(pdf *gofpdf.Fpdf, key, value string) {
	pdf.SetFont(g.fontName, "", 11)
	pdf.CellFormat(120, 6, key, "", 0, "L", false, 0, "")
	pdf.CellFormat(0, 6, value, "", 1, "R", false, 0, "")
}

func (g *ReportGenerator) emptyLine(pdf *gofpdf.Fpdf) {
	pdf.SetFont(g.fontName, "I", 11)
	pdf.CellFormat(0, 6, "no data yet", "", 1, "L", false, 0, "")
}

func (g *ReportGenerator) hr(pdf *gofpdf.Fpdf) {
	x, y := pdf.GetX(), pdf.GetY()
	pdf.SetDrawColor(180, 180, 180)
	pdf.Line(20, y, 190, y)
	pdf.SetXY(x, y+2)
}
