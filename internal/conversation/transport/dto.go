// Package transport defines the request and response bodies of the
// conversation API.
package transport

// RespondRequest is one inbound user message.
type RespondRequest struct {
	Message     string `json:"message" validate:"required,min=1,max=4000"`
	SessionID   string `json:"session_id" validate:"required,min=1,max=128"`
	Platform    string `json:"platform" validate:"omitempty,oneof=web whatsapp"`
	PhoneNumber string `json:"phone_number" validate:"omitempty,max=32"`
}

// SubmitPhoneRequest carries a phone number for a session awaiting one.
type SubmitPhoneRequest struct {
	SessionID   string `json:"session_id" validate:"required,min=1,max=128"`
	PhoneNumber string `json:"phone_number" validate:"required,min=10,max=20"`
}

// StartResponse opens a new conversation.
type StartResponse struct {
	SessionID string `json:"session_id"`
	Response  string `json:"response"`
}
