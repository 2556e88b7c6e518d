package email

import (
	"context"

	"github.com/tuumbleweed/xerr"
)

/*
Sender sends a single-recipient message with one file attached through a
fixed provider. Headers are added to every message it sends.
*/
type Sender struct {
	Provider   Provider
	From       string
	SendEmails bool
	Headers    map[string]string
}

// Send mails attachmentPath to recipient.
func (sender Sender) Send(ctx context.Context, recipient string, subject string, body string, attachmentPath string) (e *xerr.Error) {
	attachment, e := AttachmentFromFile(attachmentPath)
	if e != nil {
		return e
	}

	ctx, cancel := context.WithTimeout(ctx, sendTimeout)
	defer cancel()

	sendEmails := sender.SendEmails
	message := Message{
		Sender:      sender.From,
		Recipients:  []string{recipient},
		Subject:     subject,
		Text:        body,
		Attachments: []Attachment{attachment},
		Headers:     sender.Headers,
	}
	return SendMessageContext(ctx, sender.Provider, &sendEmails, message)
}
