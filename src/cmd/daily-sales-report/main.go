package main

import (
	"context"
	"flag"
	"os"
	"os/signal"

	"github.com/google/uuid"
	tl "github.com/tuumbleweed/tintlog/logger"
	"github.com/tuumbleweed/tintlog/palette"
	"github.com/tuumbleweed/xerr"

	"daily-sales-report/src/pkg/config"
	"daily-sales-report/src/pkg/dispatch"
	"daily-sales-report/src/pkg/email"
	"daily-sales-report/src/pkg/report"
	"daily-sales-report/src/pkg/sales"
	"daily-sales-report/src/pkg/source"
	"daily-sales-report/src/pkg/util"
)

/*
Pick the export closest to today, keep the rows of the last business day,
write one PDF per salesperson and mail each PDF to its owner.

Anything wrong with the export or the lookup table stops the run; a single
salesperson without an address or a failed send only gets logged.
*/
func main() {
	config.CheckIfEnvVarsPresent(email.EnvVarNames()...)

	// common flags
	configPath := flag.String("config", "./cfg/config.json", "Path to your configuration file.")
	// program's custom flags
	todayFlag := flag.String("today", "", "Run as if today were this date (YYYY-MM-DD). Default is the current date")
	dryRun := flag.Bool("dry-run", false, "Generate reports and log the emails instead of sending them")

	// parse and init config
	flag.Parse()
	config.InitializeConfig(*configPath)

	today := util.TodayFromFlag(*todayFlag, "today")
	runID := uuid.NewString()
	tl.Log(
		tl.Notice, palette.BlueBold, "%s daily sales report. Run id: '%s', today: '%s'",
		"Running", runID, today.Format("2006-01-02"),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	// select the export and keep a working copy of it
	sourcePath, fileDate, e := source.FindClosestFile(config.Cfg.SourceDir, config.Cfg.SourceFilePattern, today)
	e.QuitIf(xerr.ErrorTypeError)
	tl.Log(tl.Info, palette.Cyan, "Using export '%s' dated '%s'", sourcePath, fileDate.Format("02-01-2006"))

	workingCopy, e := source.CopyToDir(sourcePath, config.Cfg.WorkDir)
	e.QuitIf(xerr.ErrorTypeError)

	// load, filter and group
	table, e := sales.LoadTable(workingCopy, sales.LoadOptions{
		ProbeRows: config.Cfg.HeaderProbeRows,
		Rules:     columnRules(config.Cfg.ColumnRules),
	})
	e.QuitIf(xerr.ErrorTypeError)

	selected, reportDate, e := sales.SelectForReport(table, today)
	e.QuitIf(xerr.ErrorTypeError)

	groups := sales.GroupBySalesperson(selected)
	tl.Log(
		tl.Info, palette.Cyan, "Report date '%s': '%s' rows for '%s' salespeople",
		reportDate.Format("02-01-2006"), util.FormatIntHuman(len(selected)), util.FormatIntHuman(len(groups)),
	)

	// compose one PDF per salesperson
	composer, e := report.NewComposer(report.Options{
		OutputDir:       config.Cfg.OutputDir,
		Title:           config.Cfg.ReportTitle,
		LogoPath:        config.Cfg.LogoPath,
		ExcludedColumns: config.Cfg.ExcludedColumns,
		ColumnWidths:    config.Cfg.ColumnWidths,
	})
	e.QuitIf(xerr.ErrorTypeError)

	generated, e := composer.ComposeAll(groups, table.Columns, reportDate)
	e.QuitIf(xerr.ErrorTypeError)

	// mail them
	recipients, e := dispatch.LoadRecipients(config.Cfg.LookupFile, dispatch.LookupOptions{
		NameColumn:  config.Cfg.LookupNameColumn,
		EmailColumn: config.Cfg.LookupEmailColumn,
	})
	e.QuitIf(xerr.ErrorTypeError)

	sender := email.Sender{
		Provider:   email.Provider(config.Cfg.EmailProvider),
		From:       config.Cfg.SenderAddress,
		SendEmails: !*dryRun,
		Headers:    map[string]string{"X-Report-Run-ID": runID},
	}
	dispatcher := dispatch.NewDispatcher(recipients, sender, config.Cfg.EmailBody, config.Cfg.SendRatePerSecond)
	summary := dispatcher.Dispatch(ctx, generated)

	tl.Log(
		tl.Notice, palette.GreenBold, "%s. Reports: '%s', sent: '%s', skipped: '%s', failed: '%s'",
		"Done", util.FormatIntHuman(len(generated)), util.FormatIntHuman(summary.Sent),
		util.FormatIntHuman(summary.Skipped), util.FormatIntHuman(summary.Failed),
	)
}

func columnRules(configured []config.ColumnRule) sales.ColumnRules {
	rules := make(sales.ColumnRules, 0, len(configured))
	for _, rule := range configured {
		rules = append(rules, sales.ColumnRule{Substring: rule.Substring, Canonical: rule.Canonical})
	}
	return rules
}
