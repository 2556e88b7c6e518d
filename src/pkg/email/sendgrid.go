package email

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/sendgrid/rest"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	tl "github.com/tuumbleweed/tintlog/logger"
	"github.com/tuumbleweed/tintlog/palette"
	"github.com/tuumbleweed/xerr"
)

// sendWithSendgrid sends through the SendGrid v3 API. Needs SENDGRID_API_KEY.
func sendWithSendgrid(ctx context.Context, message Message) (e *xerr.Error) {
	apiKey, e := requireEnv("SENDGRID_API_KEY")
	if e != nil {
		return e
	}

	client := sendgrid.NewSendClient(apiKey)
	response, sendErr := client.SendWithContext(ctx, buildSendgridMessage(message))
	if sendErr != nil {
		e = xerr.NewError(sendErr, "send via sendgrid", strings.Join(message.Recipients, ","))
		return e
	}

	return checkSendgridResponse(response)
}

func buildSendgridMessage(message Message) *mail.SGMailV3 {
	sgMessage := mail.NewV3Mail()
	sgMessage.SetFrom(mail.NewEmail("", message.Sender))
	sgMessage.Subject = message.Subject

	personalization := mail.NewPersonalization()
	for _, recipient := range message.Recipients {
		personalization.AddTos(mail.NewEmail("", recipient))
	}
	sgMessage.AddPersonalizations(personalization)

	// SendGrid rejects empty content values, so parts are only added when set.
	if message.Text != "" {
		sgMessage.AddContent(mail.NewContent("text/plain", message.Text))
	}
	if message.Html != "" {
		sgMessage.AddContent(mail.NewContent("text/html", message.Html))
	}

	for _, attachment := range message.Attachments {
		sgAttachment := mail.NewAttachment()
		sgAttachment.SetContent(base64.StdEncoding.EncodeToString(attachment.Content))
		sgAttachment.SetType(attachment.ContentType)
		sgAttachment.SetFilename(attachment.Filename)
		sgAttachment.SetDisposition("attachment")
		sgMessage.AddAttachment(sgAttachment)
	}

	for key, value := range message.Headers {
		sgMessage.SetHeader(key, value)
	}

	return sgMessage
}

// checkSendgridResponse turns a non-2xx API answer into an error.
func checkSendgridResponse(response *rest.Response) (e *xerr.Error) {
	if response == nil {
		err := fmt.Errorf("empty response")
		return xerr.NewError(err, "read sendgrid response", "")
	}
	if response.StatusCode < 200 || response.StatusCode > 299 {
		err := fmt.Errorf("status %d: %s", response.StatusCode, response.Body)
		return xerr.NewError(err, "sendgrid rejected message", fmt.Sprintf("%d", response.StatusCode))
	}

	tl.Log(tl.Verbose, palette.CyanDim, "SendGrid accepted message with status %s", response.StatusCode)
	return nil
}
