package sales

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(year int, month time.Month, dayOfMonth int) time.Time {
	return time.Date(year, month, dayOfMonth, 0, 0, 0, 0, time.UTC)
}

func TestReportDate(t *testing.T) {
	// 2026-10-19 is a Monday
	monday := time.Date(2026, time.October, 19, 8, 0, 0, 0, time.Local)
	assert.Equal(t, day(2026, time.October, 17), ReportDate(monday))
	assert.Equal(t, time.Saturday, ReportDate(monday).Weekday())

	for offset := 1; offset < 7; offset++ {
		today := monday.AddDate(0, 0, offset)
		want := day(today.Year(), today.Month(), today.Day()).AddDate(0, 0, -1)
		assert.Equal(t, want, ReportDate(today), today.Weekday().String())
	}
}

func TestReportDateAcrossMonthBoundary(t *testing.T) {
	// 2026-06-01 is a Monday
	assert.Equal(t, day(2026, time.May, 30), ReportDate(time.Date(2026, time.June, 1, 12, 0, 0, 0, time.Local)))
	assert.Equal(t, day(2026, time.December, 31), ReportDate(time.Date(2027, time.January, 1, 0, 0, 0, 0, time.Local)))
}

func TestFilterByDate(t *testing.T) {
	records := []Record{
		{Salesperson: "A", Date: day(2026, time.October, 16)},
		{Salesperson: "B", Date: day(2026, time.October, 17)},
		{Salesperson: "C", Date: day(2026, time.October, 18)},
		{Salesperson: "D", Date: day(2026, time.October, 17)},
	}

	selected := FilterByDate(records, day(2026, time.October, 17))
	require.Len(t, selected, 2)
	assert.Equal(t, "B", selected[0].Salesperson)
	assert.Equal(t, "D", selected[1].Salesperson)
}

func TestSelectForReportEmptyIsFatal(t *testing.T) {
	table := Table{Records: []Record{{Salesperson: "A", Date: day(2026, time.October, 1)}}}

	_, reportDate, e := SelectForReport(table, time.Date(2026, time.October, 18, 9, 0, 0, 0, time.Local))
	assert.NotNil(t, e)
	assert.Equal(t, day(2026, time.October, 17), reportDate)
}

func TestSelectForReport(t *testing.T) {
	table := Table{Records: []Record{
		{Salesperson: "A", Date: day(2026, time.October, 17)},
		{Salesperson: "A", Date: day(2026, time.October, 16)},
	}}

	selected, _, e := SelectForReport(table, time.Date(2026, time.October, 18, 9, 0, 0, 0, time.Local))
	require.Nil(t, e)
	assert.Len(t, selected, 1)
}

func TestGroupBySalesperson(t *testing.T) {
	records := []Record{
		{Salesperson: "Dr. B", Client: "1", Sales: decimal.RequireFromString("1.00")},
		{Salesperson: "Dr. A", Client: "2", Sales: decimal.RequireFromString("2.00")},
		{Salesperson: "Dr. B", Client: "1", Sales: decimal.RequireFromString("3.00")},
		{Salesperson: "Dr. B ", Client: "", Sales: decimal.RequireFromString("4.00")},
	}

	groups := GroupBySalesperson(records)
	require.Len(t, groups, 3)
	assert.Equal(t, "Dr. B", groups[0].Salesperson)
	assert.Equal(t, "Dr. A", groups[1].Salesperson)
	assert.Equal(t, "Dr. B ", groups[2].Salesperson, "grouping key is not normalized")

	total := 0
	for _, group := range groups {
		total += len(group.Records)
	}
	assert.Equal(t, len(records), total)

	assert.True(t, decimal.RequireFromString("4.00").Equal(groups[0].TotalSales()))
	assert.Equal(t, 1, groups[0].UniqueClients())
	assert.Equal(t, 0, groups[2].UniqueClients())
}

func TestEndToEndCleaningSum(t *testing.T) {
	group := Group{Salesperson: "Dr. A"}
	for _, raw := range []string{"1.234,56", "50", "-10,00"} {
		group.Records = append(group.Records, Record{
			Salesperson: "Dr. A",
			Sales:       NormalizeValue(PrepareSalesToken(raw)),
		})
	}

	// 1234.56 + 0.50 - 10.00
	assert.Equal(t, "1225.06", group.TotalSales().StringFixed(2))
}
