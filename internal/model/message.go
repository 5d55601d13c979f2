package model

// Message is a contact-form submission.
type Message struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Subject   string `json:"subject,omitempty"`
	Body      string `json:"message"`
	Timestamp int64  `json:"timestamp"`
}
