package dispatch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	tl "github.com/tuumbleweed/tintlog/logger"
	"github.com/tuumbleweed/tintlog/palette"
	"github.com/tuumbleweed/xerr"
	"golang.org/x/time/rate"

	"daily-sales-report/src/pkg/report"
	"daily-sales-report/src/pkg/util"
)

// MailSender delivers one message with one attached file.
type MailSender interface {
	Send(ctx context.Context, recipient string, subject string, body string, attachmentPath string) *xerr.Error
}

// Summary counts what happened to each report.
type Summary struct {
	Sent    int
	Skipped int
	Failed  int
}

// Dispatcher mails generated reports to the salespeople they belong to.
type Dispatcher struct {
	recipients Recipients
	sender     MailSender
	body       string
	limiter    *rate.Limiter
}

/*
NewDispatcher returns a dispatcher sending at most ratePerSecond messages per
second; zero or less means no pacing.
*/
func NewDispatcher(recipients Recipients, sender MailSender, body string, ratePerSecond float64) *Dispatcher {
	limit := rate.Inf
	if ratePerSecond > 0 {
		limit = rate.Limit(ratePerSecond)
	}
	return &Dispatcher{
		recipients: recipients,
		sender:     sender,
		body:       body,
		limiter:    rate.NewLimiter(limit, 1),
	}
}

// Subject is the mail subject for a salesperson's report.
func Subject(salesperson string, reportDate time.Time) string {
	return fmt.Sprintf("Sales Report - %s (%s)", salesperson, reportDate.Format("02-01-2006"))
}

// SalespersonFromFileName returns the part of a report file name before FileNamePhrase.
func SalespersonFromFileName(fileName string) string {
	prefix, _, _ := strings.Cut(filepath.Base(fileName), report.FileNamePhrase)
	return strings.TrimSpace(prefix)
}

/*
Dispatch mails every report in order. A report is skipped when its
salesperson is not in the lookup, has no address, or its file is gone; a
failed send is logged. Neither stops the remaining reports.
*/
func (dispatcher *Dispatcher) Dispatch(ctx context.Context, reports []report.GeneratedReport) (summary Summary) {
	for _, generated := range reports {
		outcome := dispatcher.dispatchOne(ctx, generated)
		switch outcome {
		case outcomeSent:
			summary.Sent++
		case outcomeSkipped:
			summary.Skipped++
		case outcomeFailed:
			summary.Failed++
		}
	}

	tl.Log(
		tl.Notice, palette.GreenBold, "Dispatch done. Sent: '%s', skipped: '%s', failed: '%s'",
		summary.Sent, summary.Skipped, summary.Failed,
	)
	return summary
}

type outcome int

const (
	outcomeSent outcome = iota
	outcomeSkipped
	outcomeFailed
)

func (dispatcher *Dispatcher) dispatchOne(ctx context.Context, generated report.GeneratedReport) outcome {
	salesperson := SalespersonFromFileName(generated.Path)

	emailAddress, found := dispatcher.recipients.Lookup(salesperson)
	if !found {
		tl.Log(tl.Warning, palette.PurpleBold, "No email entry found for '%s'", salesperson)
		if suggestion, isClose := dispatcher.recipients.Closest(salesperson); isClose {
			tl.Log(tl.Warning1, palette.PurpleDim, "Closest lookup name is '%s'", suggestion)
		}
		return outcomeSkipped
	}
	if emailAddress == "" {
		tl.Log(tl.Warning, palette.PurpleBold, "Email address is %s for '%s'", "empty", salesperson)
		return outcomeSkipped
	}
	if !util.FileExists(generated.Path) {
		tl.Log(tl.Error, palette.RedBold, "Attachment file not found: '%s'", generated.Path)
		return outcomeSkipped
	}

	waitErr := dispatcher.limiter.Wait(ctx)
	if waitErr != nil {
		tl.Log(tl.Error, palette.RedBold, "Failed to send email to '%s': '%s'", salesperson, waitErr)
		return outcomeFailed
	}

	tl.Log(tl.Info, palette.Cyan, "Email found for '%s': '%s'. Sending...", salesperson, emailAddress)
	sendErr := dispatcher.sender.Send(ctx, emailAddress, Subject(salesperson, generated.Date), dispatcher.body, generated.Path)
	if sendErr != nil {
		tl.Log(tl.Error, palette.RedBold, "Failed to send email to '%s': '%s'", salesperson, sendErr)
		return outcomeFailed
	}

	tl.Log(tl.Info1, palette.Green, "Email sent successfully to '%s'", salesperson)
	return outcomeSent
}

/*
ListReports finds the report PDFs in dirPath written for reportDate, sorted
by file name. It lets reports be sent again without regenerating them.
*/
func ListReports(dirPath string, reportDate time.Time) (reports []report.GeneratedReport, e *xerr.Error) {
	entries, readErr := os.ReadDir(dirPath)
	if readErr != nil {
		e = xerr.NewError(readErr, "read report directory", dirPath)
		return nil, e
	}

	suffix := report.FileName("", reportDate)
	names := make([]string, 0)
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), suffix) {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)

	for _, name := range names {
		reports = append(reports, report.GeneratedReport{
			Salesperson: SalespersonFromFileName(name),
			Date:        reportDate,
			Path:        filepath.Join(dirPath, name),
		})
	}
	return reports, e
}

// KeepSalespeople narrows reports to the named salespeople. Blank names are ignored; no names keeps everything.
func KeepSalespeople(reports []report.GeneratedReport, names []string) []report.GeneratedReport {
	wanted := make(map[string]bool)
	for _, name := range names {
		if trimmed := strings.TrimSpace(name); trimmed != "" {
			wanted[trimmed] = true
		}
	}
	if len(wanted) == 0 {
		return reports
	}

	kept := make([]report.GeneratedReport, 0, len(wanted))
	for _, generated := range reports {
		if wanted[generated.Salesperson] {
			kept = append(kept, generated)
		}
	}
	return kept
}
