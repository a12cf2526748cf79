package types

// BaseEntity - временные метки в формате ISO-8601, как их видит страница и файл экспорта.
type BaseEntity struct {
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}
