package models

// Page is the backend's pagination envelope, shared by every paginated
// list endpoint.
type Page[T any] struct {
	Items      []T `json:"items"`
	TotalCount int `json:"totalCount"`
	PageNumber int `json:"pageNumber"`
	PageSize   int `json:"pageSize"`
	TotalPages int `json:"totalPages"`
}

// HasPrev reports whether a previous page exists.
func (p *Page[T]) HasPrev() bool {
	return p.PageNumber > 1
}

// HasNext reports whether a further page exists.
func (p *Page[T]) HasNext() bool {
	return p.PageNumber < p.TotalPages
}
