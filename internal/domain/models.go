package domain

// SearchCriteria is the form payload sent to the search endpoint
type SearchCriteria struct {
	Email  string `json:"email" validate:"required,email"`
	Number string `json:"number" validate:"omitempty,paired_digits"`
}

// UserRecord is a single match returned by the search endpoint
type UserRecord struct {
	Email  string `json:"email"`
	Number string `json:"number"`
}
