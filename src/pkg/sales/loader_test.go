package sales

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"

	"daily-sales-report/src/pkg/config"
)

var testRules = ColumnRules{
	{Substring: "Datum", Canonical: ColumnDate},
	{Substring: "Omzet", Canonical: ColumnSales},
	{Substring: "Tandarts", Canonical: ColumnSalesperson},
	{Substring: "Patient", Canonical: ColumnClient},
	{Substring: "Omschrijving", Canonical: ColumnDescription},
}

// shippedRules are the column rules the binary runs with when the config sets none.
func shippedRules() ColumnRules {
	rules := make(ColumnRules, 0)
	for _, rule := range config.DefaultValueConfig().ColumnRules {
		rules = append(rules, ColumnRule{Substring: rule.Substring, Canonical: rule.Canonical})
	}
	return rules
}

// writeLatin1 writes content to a temp file encoded as ISO-8859-1.
func writeLatin1(t *testing.T, content string) string {
	t.Helper()
	encoded, err := charmap.ISO8859_1.NewEncoder().String(content)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "Verrichtingen 17-10-2026.csv")
	require.NoError(t, os.WriteFile(path, []byte(encoded), 0o644))
	return path
}

func TestLoadTableProbesHeaderAndCleans(t *testing.T) {
	content := "Export verrichtingen\n" +
		"Gegenereerd op 18-10-2026\n" +
		" Tandarts naam , Patient: code ,Omschrijving,Datum behandeling, Omzet (EUR) \n" +
		"Dr. A,P001,Controle,17-10-2026,\"1.234,56\"\n" +
		"Dr. A,P002,Röntgenfoto,17-10-2026,50\n" +
		"Dr. B,P003,Vulling,niet bekend,\"10,00\"\n" +
		"Dr. A,P001,Correctie,17/10/2026,\"-10,00\"\n" +
		"Dr. B,P004,Consult,16-10-2026 14:30,abc\n"
	path := writeLatin1(t, content)

	table, e := LoadTable(path, LoadOptions{ProbeRows: 5, Rules: testRules})
	require.Nil(t, e)

	assert.Equal(t, []string{ColumnSalesperson, ColumnClient, ColumnDescription, ColumnDate, ColumnSales}, table.Columns)
	require.Len(t, table.Records, 4)
	assert.Equal(t, 1, table.Dropped)

	first := table.Records[0]
	assert.Equal(t, "Dr. A", first.Salesperson)
	assert.Equal(t, "P001", first.Client)
	assert.Equal(t, time.Date(2026, time.October, 17, 0, 0, 0, 0, time.UTC), first.Date)
	assert.True(t, decimal.RequireFromString("1234.56").Equal(first.Sales))

	assert.Equal(t, "Röntgenfoto", table.Records[1].Description)
	assert.True(t, decimal.RequireFromString("0.50").Equal(table.Records[1].Sales))
	assert.True(t, decimal.RequireFromString("-10.00").Equal(table.Records[2].Sales))

	last := table.Records[3]
	assert.Equal(t, time.Date(2026, time.October, 16, 0, 0, 0, 0, time.UTC), last.Date)
	assert.True(t, last.Sales.IsZero(), "unparseable sales default to zero")
}

func TestLoadTableHeaderBeyondProbeBound(t *testing.T) {
	content := "a\nb\nc\nTandarts,Datum,Omzet\nDr. A,17-10-2026,100\n"
	path := writeLatin1(t, content)

	_, e := LoadTable(path, LoadOptions{ProbeRows: 3, Rules: testRules})
	assert.NotNil(t, e)

	table, e := LoadTable(path, LoadOptions{ProbeRows: 4, Rules: testRules})
	require.Nil(t, e)
	assert.Len(t, table.Records, 1)
}

func TestLoadTableMissingSalesColumn(t *testing.T) {
	path := writeLatin1(t, "Tandarts,Datum\nDr. A,17-10-2026\n")

	_, e := LoadTable(path, LoadOptions{ProbeRows: 5, Rules: testRules})
	assert.NotNil(t, e)
}

func TestLoadTableMissingFile(t *testing.T) {
	_, e := LoadTable(filepath.Join(t.TempDir(), "absent.csv"), LoadOptions{ProbeRows: 5, Rules: testRules})
	assert.NotNil(t, e)
}

func TestLoadTableShortRows(t *testing.T) {
	path := writeLatin1(t, "Tandarts,Datum,Omzet,Patient\nDr. A,17-10-2026\n")

	table, e := LoadTable(path, LoadOptions{ProbeRows: 5, Rules: testRules})
	require.Nil(t, e)
	require.Len(t, table.Records, 1)
	assert.True(t, table.Records[0].Sales.IsZero())
	assert.Equal(t, "", table.Records[0].Client)
}

func TestRenameHeaders(t *testing.T) {
	renamed := testRules.RenameHeaders([]string{" Datum ", "Omzet", "Omzet excl", "Notitie"})
	assert.Equal(t, []string{ColumnDate, ColumnSales, "Omzet excl", "Notitie"}, renamed)
}

func TestRenameHeadersNeverDuplicates(t *testing.T) {
	cases := []struct {
		name    string
		headers []string
		want    []string
	}{
		{"later header already has the canonical name", []string{"Omzet", "Sales", "Datum"}, []string{ColumnSales, "Sales (2)", ColumnDate}},
		{"earlier header has a later canonical name", []string{"Sales", "Omzet"}, []string{"Sales (2)", ColumnSales}},
		{"identical unmatched headers", []string{"Notitie", " Notitie "}, []string{"Notitie", "Notitie (2)"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			renamed := testRules.RenameHeaders(tc.headers)
			assert.Equal(t, tc.want, renamed)

			seen := make(map[string]bool)
			for _, name := range renamed {
				assert.False(t, seen[name], "duplicate column %q", name)
				seen[name] = true
			}
		})
	}
}

func TestShippedRulesEnglishHeaders(t *testing.T) {
	path := writeLatin1(t, "Date,Salesperson,Client,Description,Sales\n"+
		"17-10-2026,Dr. A,C1,Check-up,\"100,00\"\n"+
		"17-10-2026,Dr. B,C2,Filling,\"25,50\"\n")

	table, e := LoadTable(path, LoadOptions{ProbeRows: 5, Rules: shippedRules()})
	require.Nil(t, e)
	assert.Equal(t, []string{ColumnDate, ColumnSalesperson, ColumnClient, ColumnDescription, ColumnSales}, table.Columns)

	groups := GroupBySalesperson(table.Records)
	require.Len(t, groups, 2)
	assert.Equal(t, "Dr. A", groups[0].Salesperson)
	assert.Equal(t, "Dr. B", groups[1].Salesperson)
	assert.True(t, decimal.RequireFromString("25.50").Equal(groups[1].TotalSales()))
}

func TestShippedRulesDutchHeaders(t *testing.T) {
	path := writeLatin1(t, "Overzicht\n"+
		"Tandarts,Patient,Omschrijving,Datum,Omzet\n"+
		"Dr. Müller,P1,Controle,17-10-2026,\"1.234,56\"\n")

	table, e := LoadTable(path, LoadOptions{ProbeRows: 5, Rules: shippedRules()})
	require.Nil(t, e)
	assert.Equal(t, []string{ColumnSalesperson, ColumnClient, ColumnDescription, ColumnDate, ColumnSales}, table.Columns)
	require.Len(t, table.Records, 1)
	assert.Equal(t, "Dr. Müller", table.Records[0].Salesperson)
	assert.True(t, decimal.RequireFromString("1234.56").Equal(table.Records[0].Sales))
}

func TestCanonical(t *testing.T) {
	canonical, matched := testRules.Canonical("Patient: code")
	assert.True(t, matched)
	assert.Equal(t, ColumnClient, canonical)

	_, matched = testRules.Canonical("Behandeling")
	assert.False(t, matched)
}

func TestParseDayFirst(t *testing.T) {
	cases := []struct {
		raw  string
		want time.Time
		ok   bool
	}{
		{"03-04-2026", time.Date(2026, time.April, 3, 0, 0, 0, 0, time.UTC), true},
		{"3/4/2026", time.Date(2026, time.April, 3, 0, 0, 0, 0, time.UTC), true},
		{"03.04.2026 08:15", time.Date(2026, time.April, 3, 0, 0, 0, 0, time.UTC), true},
		{"03-04-26", time.Date(2026, time.April, 3, 0, 0, 0, 0, time.UTC), true},
		{"2026-04-03", time.Date(2026, time.April, 3, 0, 0, 0, 0, time.UTC), true},
		{"", time.Time{}, false},
		{"31-02-2026", time.Time{}, false},
		{"tomorrow", time.Time{}, false},
	}

	for _, tc := range cases {
		t.Run(tc.raw, func(t *testing.T) {
			got, ok := ParseDayFirst(tc.raw)
			assert.Equal(t, tc.ok, ok)
			if tc.ok {
				assert.Equal(t, tc.want, got)
			}
		})
	}
}
