package sales

import (
	"fmt"
	"time"

	tl "github.com/tuumbleweed/tintlog/logger"
	"github.com/tuumbleweed/tintlog/palette"
	"github.com/tuumbleweed/xerr"

	"daily-sales-report/src/pkg/util"
)

/*
ReportDate returns the business day a run on today reports on: Saturday when
today is Monday, the previous calendar day otherwise. The result is a
calendar date at midnight UTC.
*/
func ReportDate(today time.Time) time.Time {
	daysBack := 1
	if today.Weekday() == time.Monday {
		daysBack = 2
	}
	date := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)
	return date.AddDate(0, 0, -daysBack)
}

// SameDay compares calendar dates only.
func SameDay(first time.Time, second time.Time) bool {
	firstYear, firstMonth, firstDay := first.Date()
	secondYear, secondMonth, secondDay := second.Date()
	return firstYear == secondYear && firstMonth == secondMonth && firstDay == secondDay
}

// FilterByDate keeps the records dated on date, in their original order.
func FilterByDate(records []Record, date time.Time) []Record {
	selected := make([]Record, 0)
	for _, record := range records {
		if SameDay(record.Date, date) {
			selected = append(selected, record)
		}
	}
	return selected
}

/*
SelectForReport computes the report date for today and keeps the table's
rows for that date. An empty selection is an error: the run has nothing to
report and must stop before generating or sending anything.
*/
func SelectForReport(table Table, today time.Time) (selected []Record, reportDate time.Time, e *xerr.Error) {
	reportDate = ReportDate(today)
	selected = FilterByDate(table.Records, reportDate)

	if len(selected) == 0 {
		err := fmt.Errorf("no rows dated %s", reportDate.Format("02-01-2006"))
		e = xerr.NewError(err, "no data found for report date", reportDate.Format("2006-01-02"))
		return selected, reportDate, e
	}

	tl.Log(
		tl.Notice, palette.BlueBold, "Generating report for %s (%s of %s rows)",
		reportDate.Format("02-01-2006"), util.FormatIntHuman(len(selected)), util.FormatIntHuman(len(table.Records)),
	)
	return selected, reportDate, e
}
