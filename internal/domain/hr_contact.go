package domain

import (
	"strings"
	"time"
)

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// HRContact is a recruiter record targeted by resume outreach.
type HRContact struct {
	ID           string
	Name         string
	Emails       []string
	Company      string
	JobTitle     string
	JobURL       string
	AdvertisedOn string
	EmailSubject string
	TimesSent    int
	CreatedAt    time.Time
	LastSentAt   *time.Time
	SendHistory  []MailSendInfo
}

// CompanyKey is the normalised company name used to look up a tailored resume.
func (h *HRContact) CompanyKey() string {
	return NormalizeName(h.Company)
}

// MailSendInfo is one append-only row of an HR contact's send history.
type MailSendInfo struct {
	ID          string
	HRContactID string
	JobURL      string
	SentAt      time.Time
}

// PageWindow is a 1-based page of a listing.
type PageWindow struct {
	Page     int
	PageSize int
}

// Normalize clamps the page to at least 1 and the size to 1..MaxPageSize, defaulting to DefaultPageSize.
func (p PageWindow) Normalize() PageWindow {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PageSize <= 0 {
		p.PageSize = DefaultPageSize
	}
	if p.PageSize > MaxPageSize {
		p.PageSize = MaxPageSize
	}
	return p
}

// Offset is the number of rows skipped before the page starts.
func (p PageWindow) Offset() int {
	n := p.Normalize()
	return (n.Page - 1) * n.PageSize
}

// IsLastPage reports whether no rows exist after the page, given the total match count.
func (p PageWindow) IsLastPage(total int) bool {
	n := p.Normalize()
	return n.Page*n.PageSize >= total
}

// HRContactFilter selects one page of HR contacts.
// Page is 1-based.
type HRContactFilter struct {
	SearchText string
	Page       int
	PageSize   int
}

func (f HRContactFilter) window() PageWindow {
	return PageWindow{Page: f.Page, PageSize: f.PageSize}
}

// Normalize clamps the page window and lower-cases the search text.
func (f HRContactFilter) Normalize() HRContactFilter {
	w := f.window().Normalize()
	f.Page, f.PageSize = w.Page, w.PageSize
	f.SearchText = NormalizeName(f.SearchText)
	return f
}

func (f HRContactFilter) Offset() int {
	return f.window().Offset()
}

func (f HRContactFilter) IsLastPage(total int) bool {
	return f.window().IsLastPage(total)
}

// NormalizeName trims and lower-cases s.
func NormalizeName(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// OutreachSubjects holds the subject lines used by the resume mailer.
type OutreachSubjects struct {
	Default  string
	Reminder string
	Outreach string
}

// Select picks the subject for a contact that has already been mailed timesSent times.
// Rules apply in order: reminder on multiples of 5 past 5, outreach on multiples of 4 past 5,
// then the stored override, then the default.
func (s OutreachSubjects) Select(timesSent int, override string) string {
	if timesSent > 5 && timesSent%5 == 0 {
		return s.Reminder
	}
	if timesSent > 5 && timesSent%4 == 0 {
		return s.Outreach
	}
	if strings.TrimSpace(override) != "" {
		return override
	}
	return s.Default
}
