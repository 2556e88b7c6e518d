package email

import (
	"net"
	"net/smtp"
	"os"
	"strings"

	"github.com/tuumbleweed/xerr"
)

/*
sendWithSMTP hands the message to an SMTP relay.

Needs SMTP_HOST; SMTP_PORT defaults to 587. Authentication is only used when
SMTP_USER is set.
*/
func sendWithSMTP(message Message) (e *xerr.Error) {
	host, e := requireEnv("SMTP_HOST")
	if e != nil {
		return e
	}
	port := strings.TrimSpace(os.Getenv("SMTP_PORT"))
	if port == "" {
		port = "587"
	}

	var auth smtp.Auth
	if user := strings.TrimSpace(os.Getenv("SMTP_USER")); user != "" {
		auth = smtp.PlainAuth("", user, os.Getenv("SMTP_PASS"), host)
	}

	raw, e := BuildMIME(message)
	if e != nil {
		return e
	}

	addr := net.JoinHostPort(host, port)
	sendErr := smtp.SendMail(addr, auth, message.Sender, message.Recipients, raw)
	if sendErr != nil {
		e = xerr.NewError(sendErr, "send via smtp", addr)
		return e
	}
	return nil
}
