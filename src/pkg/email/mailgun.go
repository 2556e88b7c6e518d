package email

import (
	"context"
	"os"
	"strings"

	"github.com/mailgun/mailgun-go/v4"
	tl "github.com/tuumbleweed/tintlog/logger"
	"github.com/tuumbleweed/tintlog/palette"
	"github.com/tuumbleweed/xerr"
)

/*
sendWithMailgun sends through the Mailgun HTTP API.

Needs MAILGUN_DOMAIN and MAILGUN_API_KEY. Set MAILGUN_API_BASE=eu for domains
hosted in the EU region.
*/
func sendWithMailgun(ctx context.Context, message Message) (e *xerr.Error) {
	domain, e := requireEnv("MAILGUN_DOMAIN")
	if e != nil {
		return e
	}
	apiKey, e := requireEnv("MAILGUN_API_KEY")
	if e != nil {
		return e
	}

	mg := mailgun.NewMailgun(domain, apiKey)
	if strings.EqualFold(strings.TrimSpace(os.Getenv("MAILGUN_API_BASE")), "eu") {
		mg.SetAPIBase(mailgun.APIBaseEU)
	}

	mgMessage := mg.NewMessage(message.Sender, message.Subject, message.Text, message.Recipients...)
	if message.Html != "" {
		mgMessage.SetHtml(message.Html)
	}
	for _, attachment := range message.Attachments {
		mgMessage.AddBufferAttachment(attachment.Filename, attachment.Content)
	}
	for key, value := range message.Headers {
		mgMessage.AddHeader(key, value)
	}

	response, id, sendErr := mg.Send(ctx, mgMessage)
	if sendErr != nil {
		e = xerr.NewError(sendErr, "send via mailgun", strings.Join(message.Recipients, ","))
		return e
	}

	tl.Log(tl.Verbose, palette.CyanDim, "Mailgun accepted message '%s': '%s'", id, response)
	return nil
}
