package sales

import (
	"fmt"
	"strings"
	"time"

	tl "github.com/tuumbleweed/tintlog/logger"
	"github.com/tuumbleweed/tintlog/palette"
	"github.com/tuumbleweed/xerr"

	"daily-sales-report/src/pkg/util"
)

const (
	minProbeRows = 1
	maxProbeRows = 20
)

// LoadOptions controls how the export is read.
type LoadOptions struct {
	// ProbeRows is how many leading rows may be tried as the header row.
	ProbeRows int
	Rules     ColumnRules
}

/*
dateLayouts are tried in order for the date column. Day comes first, as the
exports are written; an ISO date is still accepted.
*/
var dateLayouts = []string{
	"2-1-2006",
	"2/1/2006",
	"2.1.2006",
	"2-1-2006 15:04",
	"2/1/2006 15:04",
	"2.1.2006 15:04",
	"2-1-2006 15:04:05",
	"2/1/2006 15:04:05",
	"2.1.2006 15:04:05",
	"2-1-06",
	"2/1/06",
	"2.1.06",
	"2006-1-2",
	"2006-1-2 15:04:05",
	time.RFC3339,
}

/*
ParseDayFirst parses a date cell and returns the calendar date at midnight
UTC. The time of day, if any, is discarded.
*/
func ParseDayFirst(raw string) (date time.Time, ok bool) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return date, false
	}

	for _, layout := range dateLayouts {
		parsed, parseErr := time.Parse(layout, trimmed)
		if parseErr == nil {
			return time.Date(parsed.Year(), parsed.Month(), parsed.Day(), 0, 0, 0, 0, time.UTC), true
		}
	}
	return date, false
}

/*
LoadTable reads the Latin-1 encoded, comma separated export at filePath.

The header row is not always the first one: the leading rows are tried in
turn (up to options.ProbeRows) until one has a column that looks like a date
column. Headers are trimmed and renamed through options.Rules. The sales
column is cleaned with PrepareSalesToken and NormalizeValue; rows whose date
does not parse are dropped and counted in Table.Dropped.

It fails when the file cannot be read, when no header row is found within the
probe bound, or when the table has no sales column.
*/
func LoadTable(filePath string, options LoadOptions) (table Table, e *xerr.Error) {
	rows, e := util.ReadLatin1CSV(filePath)
	if e != nil {
		return table, e
	}

	probeRows := util.Clamp(options.ProbeRows, minProbeRows, maxProbeRows)
	dateSubstrings := options.Rules.SubstringsFor(ColumnDate)
	if len(dateSubstrings) == 0 {
		dateSubstrings = []string{ColumnDate}
	}

	headerIndex, found := findHeaderRow(rows, probeRows, dateSubstrings)
	if !found {
		err := fmt.Errorf("no column resembling %q in the first %d rows", dateSubstrings, probeRows)
		e = xerr.NewError(err, "find header row", filePath)
		return table, e
	}
	tl.Log(tl.Info1, palette.Cyan, "Header row found after skipping %s rows", util.FormatIntHuman(headerIndex))

	table.Columns = options.Rules.RenameHeaders(rows[headerIndex])
	tl.Log(tl.Verbose, palette.CyanDim, "Columns: '%s'", strings.Join(table.Columns, "', '"))

	if !table.HasColumn(ColumnSales) {
		err := fmt.Errorf("column %q not found", ColumnSales)
		e = xerr.NewError(err, "sales column not found", filePath)
		return table, e
	}
	if !table.HasColumn(ColumnDate) {
		err := fmt.Errorf("column %q not found", ColumnDate)
		e = xerr.NewError(err, "date column not found", filePath)
		return table, e
	}

	for _, row := range rows[headerIndex+1:] {
		record, ok := buildRecord(table.Columns, row)
		if !ok {
			table.Dropped++
			continue
		}
		table.Records = append(table.Records, record)
	}

	tl.Log(
		tl.Info1, palette.Green, "Loaded %s rows from '%s' (%s dropped for an unparseable date)",
		util.FormatIntHuman(len(table.Records)), filePath, util.FormatIntHuman(table.Dropped),
	)

	return table, e
}

func findHeaderRow(rows [][]string, probeRows int, dateSubstrings []string) (headerIndex int, found bool) {
	for skip := 0; skip < probeRows && skip < len(rows); skip++ {
		for _, cell := range rows[skip] {
			trimmed := strings.TrimSpace(cell)
			for _, substring := range dateSubstrings {
				if strings.Contains(trimmed, substring) {
					return skip, true
				}
			}
		}
	}
	return 0, false
}

func buildRecord(columns []string, row []string) (record Record, ok bool) {
	record.Fields = make(map[string]string, len(columns))
	for index, column := range columns {
		cell := ""
		if index < len(row) {
			cell = row[index]
		}
		record.Fields[column] = cell
	}

	date, ok := ParseDayFirst(record.Fields[ColumnDate])
	if !ok {
		return record, false
	}

	record.Date = date
	record.Sales = NormalizeValue(PrepareSalesToken(record.Fields[ColumnSales]))
	record.Salesperson = record.Fields[ColumnSalesperson]
	record.Client = record.Fields[ColumnClient]
	record.Description = record.Fields[ColumnDescription]
	return record, true
}
