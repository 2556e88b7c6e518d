package report

import (
	"strings"

	tl "github.com/tuumbleweed/tintlog/logger"
	"github.com/tuumbleweed/tintlog/palette"

	"daily-sales-report/src/pkg/sales"
)

const (
	headerRowHeight = 8.0
	lineHeight      = 6.0
)

// surface is the part of the PDF document the table is drawn with.
type surface interface {
	AddPage()
	PageNo() int
	GetY() float64
	SetXY(x, y float64)
	GetPageSize() (width, height float64)
	GetMargins() (left, top, right, bottom float64)
	CellFormat(w, h float64, txtStr, borderStr string, ln int, alignStr string, fill bool, link int, linkStr string)
	MultiCell(w, h float64, txtStr, borderStr, alignStr string, fill bool)
	SplitLines(txt []byte, w float64) [][]byte
	Ln(h float64)
}

/*
tableLayout draws a bordered table whose widest column word-wraps. The
wrapped column decides the height of its row and every cell in the row is
drawn at that height. A row that would cross the bottom margin moves to a
new page, which starts with the header row again.
*/
type tableLayout struct {
	doc       surface
	translate func(string) string
	columns   []string
	widths    []float64
	wrapIndex int

	// headerPages records the pages the header row was drawn on.
	headerPages map[int]bool
}

func newTableLayout(doc surface, translate func(string) string, columns []string, widths []float64) *tableLayout {
	if len(columns) > len(widths) {
		tl.Log(
			tl.Warning, palette.PurpleBright, "Only %s column widths configured; leaving out columns '%s'",
			len(widths), strings.Join(columns[len(widths):], "', '"),
		)
		columns = columns[:len(widths)]
	}

	layout := &tableLayout{
		doc:         doc,
		translate:   translate,
		columns:     columns,
		widths:      widths[:len(columns)],
		headerPages: make(map[int]bool),
	}
	for index, width := range layout.widths {
		if width > layout.widths[layout.wrapIndex] {
			layout.wrapIndex = index
		}
	}
	return layout
}

func (layout *tableLayout) pageBreakTrigger() float64 {
	_, pageHeight := layout.doc.GetPageSize()
	_, _, _, bottomMargin := layout.doc.GetMargins()
	return pageHeight - bottomMargin
}

func (layout *tableLayout) header() {
	for index, column := range layout.columns {
		layout.doc.CellFormat(layout.widths[index], headerRowHeight, layout.translate(column), "1", 0, "C", false, 0, "")
	}
	layout.doc.Ln(headerRowHeight)
	layout.headerPages[layout.doc.PageNo()] = true
}

// rowHeight is the height the wrapped column needs for text.
func (layout *tableLayout) rowHeight(text string) float64 {
	lines := layout.doc.SplitLines([]byte(layout.translate(text)), layout.widths[layout.wrapIndex])
	lineCount := len(lines)
	if lineCount < 1 {
		lineCount = 1
	}
	return lineHeight * float64(lineCount)
}

func (layout *tableLayout) render(records []sales.Record) {
	if len(layout.columns) == 0 {
		return
	}
	layout.header()

	for _, record := range records {
		wrapText := record.Value(layout.columns[layout.wrapIndex])
		height := layout.rowHeight(wrapText)

		if layout.doc.GetY()+height > layout.pageBreakTrigger() {
			layout.doc.AddPage()
			layout.header()
		}

		left, _, _, _ := layout.doc.GetMargins()
		yStart := layout.doc.GetY()
		x := left

		for index, column := range layout.columns {
			layout.doc.SetXY(x, yStart)
			text := layout.translate(record.Value(column))
			if index == layout.wrapIndex {
				layout.doc.MultiCell(layout.widths[index], lineHeight, text, "1", "L", false)
			} else {
				layout.doc.CellFormat(layout.widths[index], height, text, "1", 0, "L", false, 0, "")
			}
			x += layout.widths[index]
		}

		layout.doc.SetXY(left, yStart+height)
	}
}
