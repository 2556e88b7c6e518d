package util

import (
	"encoding/csv"
	"os"

	"github.com/tuumbleweed/xerr"
	"golang.org/x/text/encoding/charmap"
)

/*
ReadLatin1CSV reads every row of a comma separated, ISO-8859-1 encoded file.

Rows may have differing field counts and stray quotes are tolerated, as the
office exports are not strict CSV. Blank lines are skipped.
*/
func ReadLatin1CSV(filePath string) (rows [][]string, e *xerr.Error) {
	file, openErr := os.Open(filePath)
	if openErr != nil {
		e = xerr.NewError(openErr, "open CSV file", filePath)
		return nil, e
	}
	defer func() {
		_ = file.Close()
	}()

	reader := csv.NewReader(charmap.ISO8859_1.NewDecoder().Reader(file))
	reader.Comma = ','
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	rows, readErr := reader.ReadAll()
	if readErr != nil {
		e = xerr.NewError(readErr, "parse CSV file", filePath)
		return nil, e
	}
	return rows, e
}
