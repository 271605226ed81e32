package http

// ErrorBody is the JSON body of every error response.
type ErrorBody struct {
	Error string `json:"error" example:"Query is required"`
}

// ValidationError represents validation error detail.
type ValidationError struct {
	Code    string                 `json:"code,omitempty" example:"ERR_REQUIRED"`
	Field   string                 `json:"field,omitempty" example:"query"`
	Message string                 `json:"message,omitempty" example:"Query is required"`
	Params  map[string]interface{} `json:"params,omitempty"`
}
