package service

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"strings"
)

const (
	resumeTemplate        = "resume.html"
	contactThanksTemplate = "contact_thanks.html"
	contactAdminTemplate  = "contact_admin.html"
)

//go:embed templates/*.html
var templateFS embed.FS

var mailTemplates = template.Must(template.ParseFS(templateFS, "templates/*.html"))

type resumeMailData struct {
	Salutation   string
	JobTitle     string
	Company      string
	JobURL       string
	AdvertisedOn string
	SenderName   string
	PortfolioURL string
}

type contactThanksData struct {
	Salutation string
	Message    string
	SenderName string
}

type contactAdminData struct {
	Salutation string
	Name       string
	Email      string
	Phone      string
	Message    string
	ReceivedAt string
}

func renderMail(name string, data interface{}) (string, error) {
	var buf bytes.Buffer
	if err := mailTemplates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("failed to render mail template %s: %w", name, err)
	}
	return buf.String(), nil
}

// salutation greets name, or uses fallback when the name is blank.
func salutation(name, fallback string) string {
	if name = strings.TrimSpace(name); name != "" {
		return "Hi " + name
	}
	return fallback
}
