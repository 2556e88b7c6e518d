// Package sales loads the daily export, cleans its values and selects the
// rows that belong in the report.
package sales

import (
	"time"

	"github.com/shopspring/decimal"
)

// Canonical column names the rest of the run relies on.
const (
	ColumnDate        = "Date"
	ColumnSales       = "Sales"
	ColumnSalesperson = "Salesperson"
	ColumnClient      = "Client"
	ColumnDescription = "Description"
)

/*
Record is one cleaned row of the export.

Fields keeps every cell of the row keyed by its (renamed) column header, so
columns the run does not interpret still reach the report table. Sales and
Date hold the coerced values of the sales and date columns.
*/
type Record struct {
	Salesperson string
	Client      string
	Description string
	Sales       decimal.Decimal
	Date        time.Time
	Fields      map[string]string
}

// Value returns the cell for column, with Sales rendered from its cleaned amount.
func (record Record) Value(column string) string {
	if column == ColumnSales {
		return record.Sales.StringFixed(2)
	}
	if column == ColumnDate {
		return record.Date.Format("02-01-2006")
	}
	return record.Fields[column]
}

// Table is the loaded export: its column headers in file order and its rows.
type Table struct {
	Columns []string
	Records []Record
	Dropped int
}

// HasColumn reports whether the table has a column named name.
func (table Table) HasColumn(name string) bool {
	for _, column := range table.Columns {
		if column == name {
			return true
		}
	}
	return false
}
