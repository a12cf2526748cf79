package types

// Pagination represents pagination metadata of one table page.
type Pagination struct {
	TotalCount  int  `json:"total_count"`
	Page        int  `json:"page"`
	Limit       int  `json:"limit"`
	TotalPages  int  `json:"total_pages"`
	ShowingFrom int  `json:"showing_from"`
	ShowingTo   int  `json:"showing_to"`
	CanPrevious bool `json:"can_previous"`
	CanNext     bool `json:"can_next"`
}
