package dto

// ContactRequest defines the expected payload for the contact form endpoint.
// Validation happens in the service layer so the first failing rule determines
// the reported error.
type ContactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}
