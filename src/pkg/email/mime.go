package email

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"mime"
	"mime/multipart"
	"net/textproto"
	"sort"
	"strings"
	"time"

	"github.com/tuumbleweed/xerr"
)

// base64LineLength is the RFC 2045 limit for encoded lines.
const base64LineLength = 76

/*
BuildMIME renders message as a multipart/mixed RFC 5322 message: a text
part (multipart/alternative when Html is set) followed by one base64 part per
attachment. Used by the providers that accept raw messages.
*/
func BuildMIME(message Message) (raw []byte, e *xerr.Error) {
	var buffer bytes.Buffer
	writer := multipart.NewWriter(&buffer)

	headers := map[string]string{
		"From":         message.Sender,
		"To":           strings.Join(message.Recipients, ", "),
		"Subject":      mime.QEncoding.Encode("utf-8", message.Subject),
		"Date":         time.Now().Format(time.RFC1123Z),
		"MIME-Version": "1.0",
		"Content-Type": fmt.Sprintf("multipart/mixed; boundary=%q", writer.Boundary()),
	}
	for key, value := range message.Headers {
		headers[key] = value
	}

	keys := make([]string, 0, len(headers))
	for key := range headers {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		fmt.Fprintf(&buffer, "%s: %s\r\n", key, headers[key])
	}
	buffer.WriteString("\r\n")

	partErr := writeBody(writer, message)
	if partErr != nil {
		e = xerr.NewError(partErr, "write message body", message.Subject)
		return nil, e
	}

	for _, attachment := range message.Attachments {
		partErr = writeAttachment(writer, attachment)
		if partErr != nil {
			e = xerr.NewError(partErr, "write attachment part", attachment.Filename)
			return nil, e
		}
	}

	closeErr := writer.Close()
	if closeErr != nil {
		e = xerr.NewError(closeErr, "close multipart writer", message.Subject)
		return nil, e
	}

	return buffer.Bytes(), e
}

func writeBody(writer *multipart.Writer, message Message) error {
	if message.Html == "" {
		return writeTextPart(writer, "text/plain; charset=utf-8", message.Text)
	}

	var alternative bytes.Buffer
	alternativeWriter := multipart.NewWriter(&alternative)
	err := writeTextPart(alternativeWriter, "text/plain; charset=utf-8", message.Text)
	if err != nil {
		return err
	}
	err = writeTextPart(alternativeWriter, "text/html; charset=utf-8", message.Html)
	if err != nil {
		return err
	}
	err = alternativeWriter.Close()
	if err != nil {
		return err
	}

	header := textproto.MIMEHeader{}
	header.Set("Content-Type", fmt.Sprintf("multipart/alternative; boundary=%q", alternativeWriter.Boundary()))
	part, err := writer.CreatePart(header)
	if err != nil {
		return err
	}
	_, err = part.Write(alternative.Bytes())
	return err
}

func writeTextPart(writer *multipart.Writer, contentType string, text string) error {
	header := textproto.MIMEHeader{}
	header.Set("Content-Type", contentType)
	header.Set("Content-Transfer-Encoding", "base64")
	part, err := writer.CreatePart(header)
	if err != nil {
		return err
	}
	_, err = part.Write(wrapBase64([]byte(text)))
	return err
}

func writeAttachment(writer *multipart.Writer, attachment Attachment) error {
	header := textproto.MIMEHeader{}
	header.Set("Content-Type", attachment.ContentType)
	header.Set("Content-Transfer-Encoding", "base64")
	header.Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": attachment.Filename}))
	part, err := writer.CreatePart(header)
	if err != nil {
		return err
	}
	_, err = part.Write(wrapBase64(attachment.Content))
	return err
}

func wrapBase64(content []byte) []byte {
	encoded := base64.StdEncoding.EncodeToString(content)

	var wrapped bytes.Buffer
	for start := 0; start < len(encoded); start += base64LineLength {
		end := start + base64LineLength
		if end > len(encoded) {
			end = len(encoded)
		}
		wrapped.WriteString(encoded[start:end])
		wrapped.WriteString("\r\n")
	}
	return wrapped.Bytes()
}
