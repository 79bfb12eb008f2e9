package dto

import "time"

// ContactQueryRequest is the "contact me" form
// @Description Request body for the contact form
type ContactQueryRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Message string `json:"message"`
}

// ContactQueryResponse carries the flash message shown to the visitor
type ContactQueryResponse struct {
	ID      string `json:"id"`
	Message string `json:"message"`
}

// ContactQueryItem is a stored query as listed to the admin
type ContactQueryItem struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone,omitempty"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

// ContactQueryPageResponse is one page of stored queries
type ContactQueryPageResponse struct {
	Items      []ContactQueryItem `json:"items"`
	Page       int                `json:"page"`
	PageSize   int                `json:"page_size"`
	Total      int                `json:"total"`
	IsLastPage bool               `json:"is_last_page"`
}
