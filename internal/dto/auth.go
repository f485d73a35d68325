package dto

// LoginRequest carries the shared admin password.
type LoginRequest struct {
	Password string `json:"password" binding:"required"`
}

// TestEmailRequest optionally overrides the test email recipient.
type TestEmailRequest struct {
	To string `json:"to,omitempty"`
}
