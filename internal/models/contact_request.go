package models

import "time"

// ContactRequest is an appointment or contact form submission.
type ContactRequest struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone,omitempty"`
	Message   string    `json:"message"`
	ClientIP  string    `json:"-"`
	CreatedAt time.Time `json:"created_at"`
}

// SubmitContactRequest is the request body for the contact form.
type SubmitContactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone,omitempty"`
	Message string `json:"message"`
}
