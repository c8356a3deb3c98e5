package dto

// ErrorResponse is the uniform error body returned by the HTTP layer.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// PageResponse echoes the paging parameters of a listing.
type PageResponse struct {
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
}
