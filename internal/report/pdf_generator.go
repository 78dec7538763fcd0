package report

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/jung-kurt/gofpdf"
	"github.com/user/fluvis_go/internal/analysis"
)

const (
	inchToMm               = 25.4
	pdfPageWidthLandscape  = 11 * inchToMm // Letter landscape
	pdfPageHeightLandscape = 8.5 * inchToMm
	pdfMargin              = 0.5 * inchToMm
	pdfContentWidth        = pdfPageWidthLandscape - (2 * pdfMargin)

	// EpidemicCurveKey is the plotImages key for the epidemic curve PNG.
	EpidemicCurveKey = "epidemic_curve"

	topDaysShown = 10
)

// ReportMeta describes where the report data came from.
type ReportMeta struct {
	Title         string
	SourcePath    string
	InfectedState int
	Labels        StateLabeler
	Warnings      []string // Parse and analysis warnings to list in the report
}

// pdfStyler tracks the flowing Y position while content is added.
type pdfStyler struct {
	pdf         *gofpdf.Fpdf
	styles      map[string]func()
	lineHeight  float64
	currentY    float64
	pageBottom  float64
	contentTopY float64
}

func newPDFStyler(pdf *gofpdf.Fpdf) *pdfStyler {
	s := &pdfStyler{
		pdf:         pdf,
		styles:      make(map[string]func()),
		lineHeight:  6, // mm
		pageBottom:  pdfPageHeightLandscape - pdfMargin,
		contentTopY: pdfMargin,
	}
	s.currentY = s.contentTopY
	s.styles["h1"] = func() {
		s.pdf.SetFont("Arial", "B", 16)
		s.pdf.SetTextColor(0, 0, 0)
	}
	s.styles["h2"] = func() {
		s.pdf.SetFont("Arial", "B", 14)
		s.pdf.SetTextColor(0, 0, 0)
	}
	s.styles["normal"] = func() {
		s.pdf.SetFont("Arial", "", 10)
		s.pdf.SetTextColor(0, 0, 0)
	}
	s.styles["tableHeader"] = func() {
		s.pdf.SetFont("Arial", "B", 9)
		s.pdf.SetFillColor(200, 200, 200)
		s.pdf.SetTextColor(0, 0, 0)
	}
	s.styles["tableCell"] = func() {
		s.pdf.SetFont("Arial", "", 9)
		s.pdf.SetTextColor(50, 50, 50)
	}
	s.styles["tableCellPeak"] = func() {
		s.pdf.SetFont("Arial", "B", 9)
		s.pdf.SetTextColor(200, 0, 0)
	}
	return s
}

func (s *pdfStyler) applyStyle(styleName string) {
	if fn, ok := s.styles[styleName]; ok {
		fn()
		return
	}
	s.styles["normal"]()
}

func (s *pdfStyler) newPage() {
	s.pdf.AddPage()
	s.currentY = s.contentTopY
}

func (s *pdfStyler) checkAddPage(neededHeight float64) {
	if s.currentY+neededHeight > s.pageBottom {
		s.newPage()
	}
}

func (s *pdfStyler) writeParagraph(text string, styleName string, align string) {
	s.applyStyle(styleName)
	lines := s.pdf.SplitLines([]byte(text), pdfContentWidth)
	s.checkAddPage(float64(len(lines)) * s.lineHeight)

	s.pdf.SetXY(pdfMargin, s.currentY)
	s.pdf.MultiCell(pdfContentWidth, s.lineHeight, text, "", align, false)
	s.currentY = s.pdf.GetY() + 1
}

func (s *pdfStyler) addSpacer(height float64) {
	s.currentY += height
	if s.currentY > s.pageBottom {
		s.newPage()
	}
}

// writeTable draws headers and rows; highlight marks a row in the peak style.
func (s *pdfStyler) writeTable(headers []string, rows [][]string, highlight func(int) bool) {
	colWidth := pdfContentWidth / float64(len(headers))

	drawHeader := func() {
		s.applyStyle("tableHeader")
		x := pdfMargin
		for _, h := range headers {
			s.pdf.SetXY(x, s.currentY)
			s.pdf.CellFormat(colWidth, s.lineHeight, h, "1", 0, "C", true, 0, "")
			x += colWidth
		}
		s.currentY += s.lineHeight
	}

	s.checkAddPage(2 * s.lineHeight)
	drawHeader()
	for i, row := range rows {
		if s.currentY+s.lineHeight > s.pageBottom {
			s.newPage()
			drawHeader() // Repeat headers on continuation pages
		}
		if highlight != nil && highlight(i) {
			s.applyStyle("tableCellPeak")
		} else {
			s.applyStyle("tableCell")
		}
		x := pdfMargin
		for _, cell := range row {
			s.pdf.SetXY(x, s.currentY)
			s.pdf.CellFormat(colWidth, s.lineHeight, cell, "1", 0, "C", false, 0, "")
			x += colWidth
		}
		s.currentY += s.lineHeight
	}
}

func (s *pdfStyler) addImage(imageBytes []byte, imageName string, width, height float64, caption string) {
	s.pdf.RegisterImageOptionsReader(imageName, gofpdf.ImageOptions{ImageType: "PNG"}, bytes.NewReader(imageBytes))
	if width > pdfContentWidth {
		height *= pdfContentWidth / width
		width = pdfContentWidth
	}

	captionHeight := 0.0
	if caption != "" {
		captionHeight = s.lineHeight + 1
	}
	s.checkAddPage(height + captionHeight)

	s.pdf.ImageOptions(imageName, pdfMargin, s.currentY, width, height, false, gofpdf.ImageOptions{ImageType: "PNG"}, 0, "")
	s.currentY += height

	if caption != "" {
		s.addSpacer(1)
		s.writeParagraph(caption, "normal", "C")
	}
	s.addSpacer(2)
}

// BuildPDFReport writes the census report to path. An empty census still
// produces a one-page report saying there is no data.
func BuildPDFReport(path string, res *analysis.CensusResults, meta ReportMeta, plotImages map[string][]byte) error {
	labels := labelerOrDefault(meta.Labels)
	title := meta.Title
	if title == "" {
		title = "Flu Transmission Census"
	}

	pdf := gofpdf.New("L", "mm", "Letter", "")
	pdf.SetMargins(pdfMargin, pdfMargin, pdfMargin)
	pdf.SetAutoPageBreak(false, pdfMargin)
	pdf.SetTitle(title, false)
	pdf.AddPage()

	styler := newPDFStyler(pdf)

	days := 0
	if res != nil {
		days = len(res.Days)
	}
	styler.writeParagraph(fmt.Sprintf("%s (%d Days)", title, days), "h1", "C")
	styler.addSpacer(5)
	if meta.SourcePath != "" {
		styler.writeParagraph(fmt.Sprintf("Source: %s", meta.SourcePath), "normal", "L")
	}
	styler.writeParagraph(fmt.Sprintf("Infected state: %d (%s)", meta.InfectedState, labels.Label(meta.InfectedState)), "normal", "L")
	styler.addSpacer(5)

	if res == nil || len(res.Days) == 0 {
		styler.writeParagraph("No data: the dataset holds no days.", "normal", "L")
		return pdf.OutputFileAndClose(path)
	}

	styler.writeParagraph("Summary", "h2", "L")
	last := res.Days[len(res.Days)-1]
	styler.writeParagraph(fmt.Sprintf("Grid: %d x %d cells. Peak: day %d with %d infected (%.1f%%).",
		res.Days[0].Rows, res.Days[0].Cols, res.PeakDay, res.PeakInfected, res.Days[res.PeakDay].InfectedFraction*100), "normal", "L")
	styler.writeParagraph(fmt.Sprintf("New infections: %d. Recoveries: %d. Infected on final day %d: %d.",
		res.TotalNewInfections, res.TotalRecoveries, last.Day, last.Infected), "normal", "L")
	styler.addSpacer(5)

	styler.writeParagraph("Daily Census", "h2", "L")
	rows := make([][]string, 0, len(res.Days))
	for _, d := range res.Days {
		rows = append(rows, censusRow(res, d))
	}
	styler.writeTable(censusHeaders(res, labels), rows, func(i int) bool { return i == res.PeakDay })
	styler.addSpacer(5)

	styler.writeParagraph(fmt.Sprintf("Top %d Days by Infected Cells", topDaysShown), "h2", "L")
	rankRows := make([][]string, 0, topDaysShown)
	for i, item := range res.RankedDays {
		if i >= topDaysShown {
			break
		}
		rankRows = append(rankRows, []string{
			strconv.Itoa(i + 1),
			strconv.Itoa(item.Day),
			strconv.Itoa(item.Infected),
			fmt.Sprintf("%.1f", item.Fraction*100),
		})
	}
	styler.writeTable([]string{"Rank", "Day", "Infected", "Infected %"}, rankRows, nil)

	styler.newPage()
	styler.writeParagraph("Epidemic Curve", "h1", "C")
	styler.addSpacer(5)
	imgWidth := pdfContentWidth * 0.9
	imgHeight := imgWidth / 2 // Plot is rendered at 2:1
	if imgBytes, ok := plotImages[EpidemicCurveKey]; ok && len(imgBytes) > 0 {
		styler.addImage(imgBytes, EpidemicCurveKey, imgWidth, imgHeight, "Cells per state by day; dashed line shows new infections")
	} else {
		styler.writeParagraph("Epidemic curve not available.", "normal", "L")
	}

	warnings := append(append([]string{}, meta.Warnings...), res.AnalysisErrors...)
	if len(warnings) > 0 {
		styler.addSpacer(5)
		styler.writeParagraph("Warnings", "h2", "L")
		for _, w := range warnings {
			styler.writeParagraph("- "+w, "normal", "L")
		}
	}

	return pdf.OutputFileAndClose(path)
}
