// Package dispatch resolves report recipients and mails each report.
package dispatch

import (
	"fmt"
	"strings"

	"github.com/agnivade/levenshtein"
	tl "github.com/tuumbleweed/tintlog/logger"
	"github.com/tuumbleweed/tintlog/palette"
	"github.com/tuumbleweed/xerr"

	"daily-sales-report/src/pkg/util"
)

// LookupOptions names the lookup table's columns by a substring of their header.
type LookupOptions struct {
	NameColumn  string
	EmailColumn string
}

// Recipients maps a trimmed salesperson name to an email address.
type Recipients struct {
	emailByName map[string]string
	names       []string
}

// NewRecipients builds a lookup from name/email pairs; later names overwrite earlier ones.
func NewRecipients(pairs [][2]string) Recipients {
	recipients := Recipients{emailByName: make(map[string]string)}
	for _, pair := range pairs {
		recipients.add(pair[0], pair[1])
	}
	return recipients
}

func (recipients *Recipients) add(name string, emailAddress string) {
	trimmedName := strings.TrimSpace(name)
	if trimmedName == "" {
		return
	}
	if _, exists := recipients.emailByName[trimmedName]; !exists {
		recipients.names = append(recipients.names, trimmedName)
	}
	recipients.emailByName[trimmedName] = strings.TrimSpace(emailAddress)
}

/*
Lookup returns the address stored for name. found is true whenever the name
is in the table, even if its address is empty.
*/
func (recipients Recipients) Lookup(name string) (emailAddress string, found bool) {
	emailAddress, found = recipients.emailByName[strings.TrimSpace(name)]
	return emailAddress, found
}

// Len is the number of distinct names.
func (recipients Recipients) Len() int {
	return len(recipients.names)
}

/*
Closest returns the table name with the smallest edit distance to name, for
hinting at typos when a lookup misses. Names further than half their length
away are not suggested.
*/
func (recipients Recipients) Closest(name string) (closest string, found bool) {
	target := strings.ToLower(strings.TrimSpace(name))
	bestDistance := -1

	for _, candidate := range recipients.names {
		distance := levenshtein.ComputeDistance(target, strings.ToLower(candidate))
		if bestDistance < 0 || distance < bestDistance {
			closest = candidate
			bestDistance = distance
		}
	}

	if bestDistance < 0 || bestDistance > len(target)/2 {
		return "", false
	}
	return closest, true
}

/*
LoadRecipients reads the Latin-1 lookup table at filePath.

The first row is the header. The name and email columns are the first
headers containing options.NameColumn and options.EmailColumn; when either is
not found the first two columns are used. Names are trimmed and the last row
for a name wins.
*/
func LoadRecipients(filePath string, options LookupOptions) (recipients Recipients, e *xerr.Error) {
	rows, e := util.ReadLatin1CSV(filePath)
	if e != nil {
		return recipients, e
	}
	if len(rows) == 0 {
		err := fmt.Errorf("lookup table is empty")
		e = xerr.NewError(err, "load recipient lookup", filePath)
		return recipients, e
	}

	nameIndex, emailIndex := lookupColumns(rows[0], options)
	if nameIndex < 0 || emailIndex < 0 {
		err := fmt.Errorf("lookup table needs a name and an email column, header is %q", rows[0])
		e = xerr.NewError(err, "load recipient lookup", filePath)
		return recipients, e
	}

	recipients = Recipients{emailByName: make(map[string]string)}
	for _, row := range rows[1:] {
		if nameIndex >= len(row) {
			continue
		}
		emailAddress := ""
		if emailIndex < len(row) {
			emailAddress = row[emailIndex]
		}
		recipients.add(row[nameIndex], emailAddress)
	}

	tl.Log(tl.Info1, palette.Green, "Loaded %s recipients from '%s'", util.FormatIntHuman(recipients.Len()), filePath)
	return recipients, e
}

func lookupColumns(header []string, options LookupOptions) (nameIndex int, emailIndex int) {
	nameIndex, emailIndex = -1, -1
	for index, column := range header {
		trimmed := strings.TrimSpace(column)
		if nameIndex < 0 && options.NameColumn != "" && strings.Contains(trimmed, options.NameColumn) {
			nameIndex = index
			continue
		}
		if emailIndex < 0 && options.EmailColumn != "" && strings.Contains(trimmed, options.EmailColumn) {
			emailIndex = index
		}
	}

	if nameIndex < 0 || emailIndex < 0 {
		if len(header) < 2 {
			return -1, -1
		}
		return 0, 1
	}
	return nameIndex, emailIndex
}
