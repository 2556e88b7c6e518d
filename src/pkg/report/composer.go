// Package report renders one PDF sales report per salesperson.
package report

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"
	tl "github.com/tuumbleweed/tintlog/logger"
	"github.com/tuumbleweed/tintlog/palette"
	"github.com/tuumbleweed/xerr"

	"daily-sales-report/src/pkg/sales"
	"daily-sales-report/src/pkg/util"
)

// FileNamePhrase separates the salesperson name from the date in report file names.
const FileNamePhrase = " sales report for "

const (
	fileDateLayout  = "02-01-06"
	titleDateLayout = "02-01-2006"
	logoImageName   = "logo"

	// logo placement on the first page, in mm
	logoX     = 9.0
	logoY     = 6.0
	logoWidth = 30.0
	logoGap   = 2.0
)

// Options configures the composer.
type Options struct {
	OutputDir       string
	Title           string
	LogoPath        string
	ExcludedColumns []string
	ColumnWidths    []float64
}

// GeneratedReport is a report PDF written to disk for one salesperson.
type GeneratedReport struct {
	Salesperson string
	Date        time.Time
	Path        string
}

// Composer writes report PDFs into its output directory.
type Composer struct {
	options Options
	logo    []byte
	// logoHeight is the drawn height of the logo in mm.
	logoHeight float64
}

/*
NewComposer prepares the output directory and the logo.

A logo file that is missing or unreadable is logged and the reports are
rendered without it.
*/
func NewComposer(options Options) (composer *Composer, e *xerr.Error) {
	e = util.EnsureDirectory(options.OutputDir)
	if e != nil {
		return nil, e
	}

	composer = &Composer{options: options}

	if strings.TrimSpace(options.LogoPath) == "" {
		return composer, e
	}
	if !util.FileExists(options.LogoPath) {
		tl.Log(tl.Warning, palette.PurpleBright, "Logo '%s' is %s; reports will have no logo", options.LogoPath, "missing")
		return composer, e
	}

	logo, aspect, logoErr := loadLogo(options.LogoPath)
	if logoErr != nil {
		tl.Log(tl.Warning, palette.PurpleBright, "Unable to load logo '%s': '%s'", options.LogoPath, logoErr)
		return composer, e
	}
	composer.logo = logo
	composer.logoHeight = logoWidth * aspect

	return composer, e
}

/*
FileName returns the deterministic report file name for a salesperson and
date: "{name} sales report for DD-MM-YY.pdf", with path separators in the
name replaced so the result is a single file name.
*/
func FileName(salesperson string, reportDate time.Time) string {
	name := strings.TrimSpace(salesperson)
	name = strings.NewReplacer("/", "-", "\\", "-").Replace(name)
	return name + FileNamePhrase + reportDate.Format(fileDateLayout) + ".pdf"
}

/*
VisibleColumns drops the excluded columns from columns, keeping order.
Excluded names that are not present are ignored.
*/
func VisibleColumns(columns []string, excluded []string) []string {
	skip := make(map[string]bool, len(excluded))
	for _, column := range excluded {
		skip[column] = true
	}

	visible := make([]string, 0, len(columns))
	for _, column := range columns {
		if skip[column] {
			continue
		}
		visible = append(visible, column)
	}
	return visible
}

/*
Compose renders the group's report and writes it to the output directory.

columns are the table's columns in file order; the excluded ones are left
out of the rendered table. The summary is computed over every record of the
group regardless of which columns are shown.
*/
func (composer *Composer) Compose(group sales.Group, columns []string, reportDate time.Time) (generated GeneratedReport, e *xerr.Error) {
	pdf, layout := composer.render(group, columns, reportDate)

	outputPath := filepath.Join(composer.options.OutputDir, FileName(group.Salesperson, reportDate))
	writeErr := pdf.OutputFileAndClose(outputPath)
	if writeErr != nil {
		e = xerr.NewError(writeErr, "write report PDF", outputPath)
		return generated, e
	}

	generated = GeneratedReport{
		Salesperson: group.Salesperson,
		Date:        reportDate,
		Path:        outputPath,
	}

	tl.Log(
		tl.Info1, palette.Green, "PDF saved for '%s' (%s rows, %s pages, table on %s) to '%s'",
		group.Salesperson, util.FormatIntHuman(len(group.Records)), util.FormatIntHuman(pdf.PageNo()),
		util.FormatIntHuman(len(layout.headerPages)), outputPath,
	)
	return generated, e
}

/*
ComposeAll renders every group, stopping at the first write failure.

Groups whose names give the same file name (e.g. "Dr. B" and "Dr. B ") are
merged into one report first, so no PDF is overwritten and every path is
generated once.
*/
func (composer *Composer) ComposeAll(groups []sales.Group, columns []string, reportDate time.Time) (generated []GeneratedReport, e *xerr.Error) {
	for _, group := range MergeByFileName(groups, reportDate) {
		report, composeErr := composer.Compose(group, columns, reportDate)
		if composeErr != nil {
			return generated, composeErr
		}
		generated = append(generated, report)
	}
	return generated, e
}

/*
MergeByFileName joins groups that would be written to the same report file.
The merged group keeps the first group's name and position, with the rows of
the later groups appended in order.
*/
func MergeByFileName(groups []sales.Group, reportDate time.Time) []sales.Group {
	merged := make([]sales.Group, 0, len(groups))
	indexByFile := make(map[string]int)

	for _, group := range groups {
		fileName := FileName(group.Salesperson, reportDate)
		index, exists := indexByFile[fileName]
		if !exists {
			indexByFile[fileName] = len(merged)
			records := append([]sales.Record(nil), group.Records...)
			merged = append(merged, sales.Group{Salesperson: group.Salesperson, Records: records})
			continue
		}

		tl.Log(
			tl.Warning, palette.PurpleBold, "Salesperson '%s' shares report file '%s' with '%s'; merging their rows",
			group.Salesperson, fileName, merged[index].Salesperson,
		)
		merged[index].Records = append(merged[index].Records, group.Records...)
	}
	return merged
}

// titleTop is where the title starts on the first page: below the logo when there is one.
func (composer *Composer) titleTop(topMargin float64) float64 {
	if composer.logo == nil {
		return topMargin
	}
	return max(topMargin, logoY+composer.logoHeight+logoGap)
}

func (composer *Composer) render(group sales.Group, columns []string, reportDate time.Time) (*fpdf.Fpdf, *tableLayout) {
	pdf := fpdf.New("P", "mm", "A4", "")
	translate := pdf.UnicodeTranslatorFromDescriptor("")
	title := composer.options.Title

	if composer.logo != nil {
		pdf.RegisterImageOptionsReader(logoImageName, fpdf.ImageOptions{ImageType: "PNG"}, bytes.NewReader(composer.logo))
	}

	pdf.SetHeaderFunc(func() {
		if composer.logo != nil && pdf.PageNo() == 1 {
			pdf.ImageOptions(logoImageName, logoX, logoY, logoWidth, 0, false, fpdf.ImageOptions{ImageType: "PNG"}, 0, "")
			_, topMargin, _, _ := pdf.GetMargins()
			pdf.SetY(composer.titleTop(topMargin))
		}
		pdf.SetFont("Arial", "B", 14)
		pdf.CellFormat(0, 10, translate(title), "", 1, "C", false, 0, "")
		pdf.Ln(5)
	})
	pdf.SetFooterFunc(func() {
		pdf.SetY(-15)
		pdf.SetFont("Arial", "I", 8)
		pdf.CellFormat(0, 10, fmt.Sprintf("Page %d", pdf.PageNo()), "", 0, "C", false, 0, "")
	})

	pdf.AddPage()

	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(0, 10, translate("Salesperson: "+group.Salesperson), "", 1, "L", false, 0, "")
	pdf.Ln(3)
	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(0, 8, "Report date: "+reportDate.Format(titleDateLayout), "", 1, "L", false, 0, "")

	visible := VisibleColumns(columns, composer.options.ExcludedColumns)
	layout := newTableLayout(pdf, translate, visible, composer.options.ColumnWidths)
	pdf.SetFont("Arial", "", 10)
	layout.render(group.Records)
	pdf.Ln(2)

	summary := Summarize(group)
	pdf.SetFont("Arial", "B", 11)
	pdf.CellFormat(0, 11, fmt.Sprintf("Unique clients: %d", summary.UniqueClients), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 10, "Total sales: "+summary.TotalSales, "", 1, "L", false, 0, "")

	return pdf, layout
}

// Summary is the block printed under the table.
type Summary struct {
	UniqueClients int
	TotalSales    string
}

// Summarize computes the summary over all of the group's records.
func Summarize(group sales.Group) Summary {
	return Summary{
		UniqueClients: group.UniqueClients(),
		TotalSales:    group.TotalSales().StringFixed(2),
	}
}
