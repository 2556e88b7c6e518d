// Package source finds the daily export to work on and brings a copy of it
// into the working directory.
package source

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"time"

	tl "github.com/tuumbleweed/tintlog/logger"
	"github.com/tuumbleweed/tintlog/palette"
	"github.com/tuumbleweed/xerr"

	"daily-sales-report/src/pkg/util"
)

// fileDateLayout is the date embedded in export file names, e.g. 17-10-2026.
const fileDateLayout = "02-01-2006"

// Candidate is an export file whose name carries a parseable date.
type Candidate struct {
	Name string
	Date time.Time
}

/*
CompilePattern compiles the export file name pattern.

The pattern must have at least one capture group; the first group holds the
DD-MM-YYYY date.
*/
func CompilePattern(pattern string) (compiled *regexp.Regexp, e *xerr.Error) {
	compiled, compileErr := regexp.Compile(pattern)
	if compileErr != nil {
		e = xerr.NewError(compileErr, "compile source file pattern", pattern)
		return nil, e
	}
	if compiled.NumSubexp() < 1 {
		err := fmt.Errorf("pattern has no capture group for the file date")
		e = xerr.NewError(err, "validate source file pattern", pattern)
		return nil, e
	}
	return compiled, e
}

/*
ListCandidates returns every file in dirPath whose name matches pattern and
whose captured date parses as DD-MM-YYYY. Names that match but carry an
invalid date are skipped.
*/
func ListCandidates(dirPath string, pattern *regexp.Regexp) (candidates []Candidate, e *xerr.Error) {
	entries, readErr := os.ReadDir(dirPath)
	if readErr != nil {
		e = xerr.NewError(readErr, "read source directory", dirPath)
		return nil, e
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		match := pattern.FindStringSubmatch(entry.Name())
		if match == nil {
			continue
		}

		fileDate, parseErr := time.Parse(fileDateLayout, match[1])
		if parseErr != nil {
			tl.Log(tl.Verbose, palette.YellowDim, "Skipping '%s': embedded date '%s' is %s", entry.Name(), match[1], "invalid")
			continue
		}

		candidates = append(candidates, Candidate{Name: entry.Name(), Date: fileDate})
	}

	return candidates, e
}

/*
Closest picks the candidate whose date is nearest to today, in whole days,
in either direction. On a tie the first candidate in directory order wins.
*/
func Closest(candidates []Candidate, today time.Time) (closest Candidate, found bool) {
	todayDate := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)
	bestDiff := 0

	for _, candidate := range candidates {
		diff := daysBetween(candidate.Date, todayDate)
		if !found || diff < bestDiff {
			closest = candidate
			bestDiff = diff
			found = true
		}
	}

	return closest, found
}

func daysBetween(first time.Time, second time.Time) int {
	hours := first.Sub(second).Hours()
	if hours < 0 {
		hours = -hours
	}
	return int(hours / 24)
}

/*
FindClosestFile scans dirPath for exports matching pattern and returns the
full path of the one dated closest to today.

Finding nothing is an error: there is no report to build without a source.
*/
func FindClosestFile(dirPath string, pattern string, today time.Time) (filePath string, fileDate time.Time, e *xerr.Error) {
	compiled, e := CompilePattern(pattern)
	if e != nil {
		return "", fileDate, e
	}

	candidates, e := ListCandidates(dirPath, compiled)
	if e != nil {
		return "", fileDate, e
	}

	closest, found := Closest(candidates, today)
	if !found {
		err := fmt.Errorf("no file in '%s' matches '%s'", dirPath, pattern)
		e = xerr.NewError(err, "no matching source file found", dirPath)
		return "", fileDate, e
	}

	filePath = filepath.Join(dirPath, closest.Name)
	tl.Log(
		tl.Info1, palette.Cyan, "Closest file found: '%s' (dated %s, %s candidates)",
		closest.Name, closest.Date.Format(fileDateLayout), util.FormatIntHuman(len(candidates)),
	)

	return filePath, closest.Date, e
}

/*
CopyToDir copies filePath into destinationDir, keeping the base name, and
returns the path of the copy.

Copying onto itself (source already in destinationDir) is a no-op.
*/
func CopyToDir(filePath string, destinationDir string) (copiedPath string, e *xerr.Error) {
	e = util.EnsureDirectory(destinationDir)
	if e != nil {
		return "", e
	}

	copiedPath = filepath.Join(destinationDir, filepath.Base(filePath))

	sourceAbs, absErr := filepath.Abs(filePath)
	if absErr != nil {
		e = xerr.NewError(absErr, "resolve source path", filePath)
		return "", e
	}
	destinationAbs, absErr := filepath.Abs(copiedPath)
	if absErr != nil {
		e = xerr.NewError(absErr, "resolve destination path", copiedPath)
		return "", e
	}
	if sourceAbs == destinationAbs {
		tl.Log(tl.Info1, palette.Cyan, "Source '%s' is %s", filePath, "already in the working directory")
		return copiedPath, e
	}

	e = util.CopyFile(filePath, copiedPath)
	if e != nil {
		return "", e
	}

	tl.Log(tl.Info1, palette.Green, "Copied file to '%s'", copiedPath)
	return copiedPath, e
}
