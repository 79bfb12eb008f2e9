package domain

import "time"

// ContactQuery is a write-once "contact me" form submission.
type ContactQuery struct {
	ID        string
	Name      string
	Email     string
	Phone     string
	Message   string
	CreatedAt time.Time
}

const (
	ContactThankYouSubject     = "Thank you for contacting!"
	ContactNotificationSubject = "Somebody wants to connect to you!"
	ContactFlashMessage        = "Thank You for contacting, we will connect to you at the earliest."
)
