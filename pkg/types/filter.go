package types

// Filter represents query parameters for the branch table: search, sort and page.
type Filter struct {
	Search string            `json:"search,omitempty"`
	Sort   map[string]string `json:"sort,omitempty"`
	Page   int               `json:"page"`
}

// http://localhost:8080/api/branches?search=Khujand&sort[code]=desc&page=0
