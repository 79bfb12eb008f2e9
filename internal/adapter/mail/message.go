package mail

import (
	"bytes"
	"fmt"
	"io"

	"quiz-folio/internal/domain"

	"gopkg.in/gomail.v2"
)

// composeMIME renders msg as a multipart MIME message ready for SMTP DATA.
func composeMIME(from, fromName string, msg *domain.EmailMessage) ([]byte, error) {
	m := gomail.NewMessage()
	m.SetHeader("From", m.FormatAddress(from, fromName))
	if msg.ToName != "" {
		m.SetHeader("To", m.FormatAddress(msg.To, msg.ToName))
	} else {
		m.SetHeader("To", msg.To)
	}
	m.SetHeader("Subject", msg.Subject)
	m.SetBody("text/html", msg.HTMLBody)

	for _, att := range msg.Attachments {
		content := att.Content
		settings := []gomail.FileSetting{
			gomail.SetCopyFunc(func(w io.Writer) error {
				_, err := w.Write(content)
				return err
			}),
		}
		if att.ContentType != "" {
			settings = append(settings, gomail.SetHeader(map[string][]string{
				"Content-Type": {att.ContentType},
			}))
		}

		if att.Inline {
			m.Embed(att.Filename, settings...)
		} else {
			m.Attach(att.Filename, settings...)
		}
	}

	var buf bytes.Buffer
	if _, err := m.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("failed to compose message: %w", err)
	}
	return buf.Bytes(), nil
}
