package model

// ContactMessage is a contact-form submission. It is never persisted —
// the only consumer is the outbound mail sender, which formats it into a
// single notification email.
type ContactMessage struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Message string `json:"message"`
}
