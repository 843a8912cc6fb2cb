package dto

// PageResponse metadatos de página en respuestas. Page es 1-indexado.
type PageResponse struct {
	Page     int  `json:"page"`
	PageSize int  `json:"page_size"`
	Total    int  `json:"total"`
	NumPages int  `json:"num_pages"`
	HasNext  bool `json:"has_next"`
}

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
