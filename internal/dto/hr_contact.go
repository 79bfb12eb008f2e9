package dto

import "time"

// HRContactRequest creates or edits an HR contact.
// HREmail is a comma-separated list. JobTitle wins over Role when both are set.
// @Description Request body for HR contacts
type HRContactRequest struct {
	HRName       string `json:"hrName" form:"hrName"`
	HREmail      string `json:"hrEmail" form:"hrEmail"`
	Company      string `json:"company" form:"company"`
	JobTitle     string `json:"jobTitle" form:"jobTitle"`
	Role         string `json:"role" form:"role"`
	JobURL       string `json:"jobURL" form:"jobURL"`
	AdvertisedOn string `json:"advertisedOn" form:"advertisedOn"`
	EmailSubject string `json:"emailSubject" form:"emailSubject"`
	// Wait blocks the request until the resume mail job finishes.
	Wait bool `json:"wait" form:"wait"`
}

// MailSendInfoResponse is one send history row
type MailSendInfoResponse struct {
	ID     string    `json:"id"`
	JobURL string    `json:"jobURL,omitempty"`
	SentAt time.Time `json:"sentAt"`
}

// HRContactResponse represents an HR contact in the API response
type HRContactResponse struct {
	ID           string                 `json:"id"`
	HRName       string                 `json:"hrName"`
	Emails       []string               `json:"emails"`
	Company      string                 `json:"company"`
	JobTitle     string                 `json:"jobTitle"`
	JobURL       string                 `json:"jobURL,omitempty"`
	AdvertisedOn string                 `json:"advertisedOn,omitempty"`
	EmailSubject string                 `json:"emailSubject,omitempty"`
	TimesSent    int                    `json:"timesSent"`
	CreatedAt    time.Time              `json:"createdAt"`
	LastSentAt   *time.Time             `json:"lastSentAt,omitempty"`
	SendHistory  []MailSendInfoResponse `json:"sendHistory,omitempty"`
}

// HRContactPageResponse is one page of search results
type HRContactPageResponse struct {
	Items      []HRContactResponse `json:"items"`
	Page       int                 `json:"page"`
	PageSize   int                 `json:"page_size"`
	Total      int                 `json:"total"`
	IsLastPage bool                `json:"is_last_page"`
}

const (
	MailJobQueued = "queued"
	MailJobSent   = "sent"
	MailJobFailed = "failed"
)

// SendResumeResponse reports a resume mail job
type SendResumeResponse struct {
	JobID     string             `json:"job_id"`
	Status    string             `json:"status"`
	Error     string             `json:"error,omitempty"`
	HRContact *HRContactResponse `json:"hr_contact,omitempty"`
}
