package email

// ResetCodeEmail carries a one-time password reset code to a talent
type ResetCodeEmail struct {
	Email     string `json:"email"`
	Name      string `json:"name"`
	Code      string `json:"code"`
	ExpiresIn string `json:"expires_in"`
}

// Message is a plain-text mail ready for the relay
type Message struct {
	From    string
	To      []string
	Subject string
	Body    string
}
