// Package email sends messages with attachments through one of several
// outbound mail providers.
package email

import (
	"context"
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strings"
	"time"

	tl "github.com/tuumbleweed/tintlog/logger"
	"github.com/tuumbleweed/tintlog/palette"
	"github.com/tuumbleweed/xerr"
)

type Provider string

const (
	ProviderMailgun  Provider = "mailgun"
	ProviderSendgrid Provider = "sendgrid"
	ProviderSES      Provider = "ses"
	ProviderSMTP     Provider = "smtp"
)

// sendTimeout bounds a single provider call.
const sendTimeout = 60 * time.Second

// Attachment is a file sent along with a message.
type Attachment struct {
	Filename    string
	ContentType string
	Content     []byte
}

// Message is everything a provider needs to send one email.
type Message struct {
	Sender      string
	Recipients  []string
	Subject     string
	Text        string
	Html        string
	Attachments []Attachment
	Headers     map[string]string
}

/*
AttachmentFromFile reads filePath into an Attachment named after the file.
The content type follows the extension, falling back to a binary stream.
*/
func AttachmentFromFile(filePath string) (attachment Attachment, e *xerr.Error) {
	content, readErr := os.ReadFile(filePath)
	if readErr != nil {
		e = xerr.NewError(readErr, "read attachment file", filePath)
		return attachment, e
	}

	contentType := mime.TypeByExtension(strings.ToLower(filepath.Ext(filePath)))
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	attachment = Attachment{
		Filename:    filepath.Base(filePath),
		ContentType: contentType,
		Content:     content,
	}
	return attachment, e
}

/*
SendMessage sends one message through provider.

When sendEmails points to false the message is only logged; this is how dry
runs go through the whole flow without contacting a provider.
*/
func SendMessage(
	provider Provider, sendEmails *bool, sender string, recipients []string,
	subject string, text string, html string, attachments []Attachment,
) (e *xerr.Error) {
	message := Message{
		Sender:      sender,
		Recipients:  recipients,
		Subject:     subject,
		Text:        text,
		Html:        html,
		Attachments: attachments,
	}

	ctx, cancel := context.WithTimeout(context.Background(), sendTimeout)
	defer cancel()

	return SendMessageContext(ctx, provider, sendEmails, message)
}

// SendMessageContext is SendMessage for a prepared Message and a caller's context.
func SendMessageContext(ctx context.Context, provider Provider, sendEmails *bool, message Message) (e *xerr.Error) {
	e = validateMessage(message)
	if e != nil {
		return e
	}

	if sendEmails != nil && !*sendEmails {
		tl.Log(
			tl.Notice, palette.YellowBold, "Not sending (%s): '%s' to '%s' with %s attachments",
			"dry run", message.Subject, strings.Join(message.Recipients, ", "), len(message.Attachments),
		)
		return nil
	}

	tl.Log(
		tl.Info, palette.Blue, "Sending '%s' to '%s' via %s",
		message.Subject, strings.Join(message.Recipients, ", "), provider,
	)
	startTime := time.Now()

	switch provider {
	case ProviderMailgun:
		e = sendWithMailgun(ctx, message)
	case ProviderSendgrid:
		e = sendWithSendgrid(ctx, message)
	case ProviderSES:
		e = sendWithSES(ctx, message)
	case ProviderSMTP:
		e = sendWithSMTP(message)
	default:
		err := fmt.Errorf("unknown email provider %q", provider)
		e = xerr.NewError(err, "pick email provider", string(provider))
	}
	if e != nil {
		return e
	}

	tl.Log(tl.Info1, palette.Green, "Sent via %s in %s", provider, time.Since(startTime).Round(time.Millisecond))
	return nil
}

func validateMessage(message Message) (e *xerr.Error) {
	if strings.TrimSpace(message.Sender) == "" {
		err := fmt.Errorf("sender address is empty")
		return xerr.NewError(err, "validate message", message.Subject)
	}
	if len(message.Recipients) == 0 {
		err := fmt.Errorf("no recipients")
		return xerr.NewError(err, "validate message", message.Subject)
	}
	for _, recipient := range message.Recipients {
		if strings.TrimSpace(recipient) == "" {
			err := fmt.Errorf("empty recipient address")
			return xerr.NewError(err, "validate message", message.Subject)
		}
	}
	return nil
}

// requireEnv returns the value of name or an error naming the variable.
func requireEnv(name string) (value string, e *xerr.Error) {
	value = strings.TrimSpace(os.Getenv(name))
	if value == "" {
		err := fmt.Errorf("environment variable %s is not set", name)
		e = xerr.NewError(err, "read provider credentials", name)
	}
	return value, e
}

// EnvVarNames lists the credential variables read by each provider.
func EnvVarNames() []string {
	return []string{
		"AWS_ACCESS_KEY_ID", "AWS_SECRET_ACCESS_KEY", "AWS_REGION", // amazon ses
		"MAILGUN_DOMAIN", "MAILGUN_API_KEY", // mailgun
		"SENDGRID_API_KEY", // sendgrid
		"SMTP_HOST",        // smtp
	}
}
