package model

// ErrorResponse is the uniform envelope every failure serializes to.
// Message is a string for plain failures and an object keyed by field
// name for validation failures.
type ErrorResponse struct {
	Status    int    `json:"status"`
	Message   any    `json:"message"`
	Timestamp string `json:"timestamp"`
	Path      string `json:"path"`
}

// MessageResponse is the payload of delete confirmations.
type MessageResponse struct {
	Message string `json:"message"`
}

// Page bounds a list query. Zero values fall back to the defaults.
type Page struct {
	Limit  int
	Offset int
}

const (
	DefaultPageLimit = 10
	MaxPageLimit     = 50
)

// Normalize clamps the page to the allowed range.
func (p Page) Normalize() Page {
	if p.Limit <= 0 {
		p.Limit = DefaultPageLimit
	}
	if p.Limit > MaxPageLimit {
		p.Limit = MaxPageLimit
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
	return p
}
