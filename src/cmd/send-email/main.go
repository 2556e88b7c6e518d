// entrypoint with subprograms for checking and repeating email delivery
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"
	tl "github.com/tuumbleweed/tintlog/logger"
	"github.com/tuumbleweed/tintlog/palette"
	"github.com/tuumbleweed/xerr"

	"daily-sales-report/src/pkg/config"
	"daily-sales-report/src/pkg/dispatch"
	"daily-sales-report/src/pkg/email"
	"daily-sales-report/src/pkg/sales"
	"daily-sales-report/src/pkg/util"
)

/*
Pick provider and use it to send a test email to the specified address.
An attachment can be added to check that PDFs get through.
*/
func testProvider(subprogram string, flags []string) {
	config.CheckIfEnvVarsPresent(email.EnvVarNames()...)

	// common flags
	subprogramCmd := flag.NewFlagSet(subprogram, flag.ExitOnError)
	configPath := subprogramCmd.String("config", "./cfg/config.json", "Path to your configuration file.")

	// custom flags
	provider := subprogramCmd.String("provider", "", "Provider to use when sending emails. Default is email_provider from config")
	senderAddress := subprogramCmd.String("sender", "", "Sender's address. Default is sender_address from config")
	recipientAddress := subprogramCmd.String("recipient", "", "Recipient's address, comma separated for several")
	subject := subprogramCmd.String("subject", "Test subject", "Subject of an email")
	text := subprogramCmd.String("text", "This is a test message.", "Text body of an email")
	attachmentPath := subprogramCmd.String("attachment", "", "Optional file to attach")

	// parse and init config
	xerr.QuitIfError(subprogramCmd.Parse(flags), "Unable to subprogramCmd.Parse")
	config.InitializeConfig(*configPath)

	if *provider == "" {
		*provider = config.Cfg.EmailProvider
	}
	if *senderAddress == "" {
		*senderAddress = config.Cfg.SenderAddress
	}
	util.RequiredFlag(senderAddress, "sender")
	util.RequiredFlag(recipientAddress, "recipient")
	util.RequiredFlag(provider, "provider")
	util.EnsureFlags()

	var attachments []email.Attachment
	if *attachmentPath != "" {
		attachment, e := email.AttachmentFromFile(*attachmentPath)
		e.QuitIf(xerr.ErrorTypeError)
		attachments = append(attachments, attachment)
	}

	recipientAddresses := strings.Split(*recipientAddress, ",")
	tl.Log(tl.Verbose, palette.BlueDim, "Full Email:\n```\n%s\n```", *text)

	sendEmails := true
	e := email.SendMessage(email.Provider(*provider), &sendEmails, *senderAddress, recipientAddresses, *subject, *text, "", attachments)
	e.QuitIf(xerr.ErrorTypeError)
}

/*
Send the reports already written for a date again, without regenerating
them. The date defaults to the report date derived from today.
*/
func resend(subprogram string, flags []string) {
	config.CheckIfEnvVarsPresent(email.EnvVarNames()...)

	// common flags
	subprogramCmd := flag.NewFlagSet(subprogram, flag.ExitOnError)
	configPath := subprogramCmd.String("config", "./cfg/config.json", "Path to your configuration file.")

	// custom flags
	dateFlag := subprogramCmd.String("date", "", "Report date to resend (YYYY-MM-DD). Default is the last business day")
	only := subprogramCmd.String("only", "", "Resend only to these salespeople, comma separated")
	dryRun := subprogramCmd.Bool("dry-run", false, "Log the emails instead of sending them")

	// parse and init config
	xerr.QuitIfError(subprogramCmd.Parse(flags), "Unable to subprogramCmd.Parse")
	config.InitializeConfig(*configPath)

	reportDate := sales.ReportDate(util.TodayFromFlag("", "date"))
	if *dateFlag != "" {
		reportDate = util.TodayFromFlag(*dateFlag, "date")
	}

	reports, e := dispatch.ListReports(config.Cfg.OutputDir, reportDate)
	e.QuitIf(xerr.ErrorTypeError)
	reports = dispatch.KeepSalespeople(reports, strings.Split(*only, ","))
	if len(reports) == 0 {
		tl.Log(tl.Warning, palette.YellowBold, "No reports for '%s' in '%s'", reportDate.Format("02-01-2006"), config.Cfg.OutputDir)
		os.Exit(1)
	}

	recipients, e := dispatch.LoadRecipients(config.Cfg.LookupFile, dispatch.LookupOptions{
		NameColumn:  config.Cfg.LookupNameColumn,
		EmailColumn: config.Cfg.LookupEmailColumn,
	})
	e.QuitIf(xerr.ErrorTypeError)

	runID := uuid.NewString()
	tl.Log(tl.Notice, palette.BlueBold, "Resending '%s' reports. Run id: '%s'", util.FormatIntHuman(len(reports)), runID)

	sender := email.Sender{
		Provider:   email.Provider(config.Cfg.EmailProvider),
		From:       config.Cfg.SenderAddress,
		SendEmails: !*dryRun,
		Headers:    map[string]string{"X-Report-Run-ID": runID},
	}
	summary := dispatch.NewDispatcher(recipients, sender, config.Cfg.EmailBody, config.Cfg.SendRatePerSecond).
		Dispatch(context.Background(), reports)
	if summary.Failed > 0 {
		os.Exit(1)
	}
}

func main() {
	// Check if there are enough arguments
	if len(os.Args) < 2 {
		tl.Log(tl.Error, palette.Red, "Usage: %s", "go run src/cmd/send-email/main.go subprogram_name(test-provider or resend)")
		os.Exit(1)
	}
	subprogram := os.Args[1]
	flags := os.Args[2:]

	// Switch subprogram based on the first argument
	switch subprogram {
	case "test-provider":
		testProvider(subprogram, flags)
	case "resend":
		resend(subprogram, flags)
	default:
		tl.Log(tl.Error, palette.Red, "Unknown subprogram: %s", fmt.Sprintf("'%s'", subprogram))
		os.Exit(1)
	}
}
