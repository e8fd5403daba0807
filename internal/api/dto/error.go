package dto

// ErrorResponse is the body of 401, 404 and 500 responses
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
	Code    int    `json:"code,omitempty"`
}

// ValidationErrorResponse maps each invalid field to its message
type ValidationErrorResponse map[string]string

// HealthResponse is the body of GET /health
type HealthResponse struct {
	Status string `json:"status"`
	Time   string `json:"time"`
}
