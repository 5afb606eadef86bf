package server

// FormPost is the urlencoded body posted by the page's form
type FormPost struct {
	URL     string `form:"url"`
	Format  string `form:"format"`
	Bitrate string `form:"bitrate"`
}

// UpdateFormRequest changes any subset of a form's fields
type UpdateFormRequest struct {
	URL     *string `json:"url"`
	Format  *string `json:"format"`
	Bitrate *int    `json:"bitrate"`
}

// ValidateRequest is the body of a URL validation request
type ValidateRequest struct {
	URL string `json:"url"`
}

// ValidateResponse reports whether a URL passed validation
type ValidateResponse struct {
	URL    string `json:"url"`
	Valid  bool   `json:"valid"`
	Source string `json:"source"`
}

// MessageResponse represents a generic message payload used for success responses.
type MessageResponse struct {
	Message string `json:"message"`
}

// ErrorResponse represents a generic error payload used for error responses.
type ErrorResponse struct {
	Error string `json:"error"`
}
