package dto

import (
	"github.com/aarondl/null/v8"

	"branch-manager/pkg/types"
)

// CreateBranchDTO - значения формы в режиме создания.
type CreateBranchDTO struct {
	Name    string `json:"name" form:"name" validate:"required,not_blank"`
	Code    string `json:"code" form:"code" validate:"required,not_blank"`
	Address string `json:"address" form:"address" validate:"required,not_blank"`
	City    string `json:"city" form:"city" validate:"required,not_blank"`
	State   string `json:"state" form:"state" validate:"required,not_blank"`
	Phone   string `json:"phone" form:"phone" validate:"required,not_blank"`
	Email   string `json:"email" form:"email" validate:"required,not_blank"`
	Status  string `json:"status" form:"status" validate:"required,branch_status"`
}

// UpdateBranchDTO - только изменённые поля; Valid=false значит "не трогать".
type UpdateBranchDTO struct {
	Name    null.String `json:"name" validate:"omitnil,not_blank"`
	Code    null.String `json:"code" validate:"omitnil,not_blank"`
	Address null.String `json:"address" validate:"omitnil,not_blank"`
	City    null.String `json:"city" validate:"omitnil,not_blank"`
	State   null.String `json:"state" validate:"omitnil,not_blank"`
	Phone   null.String `json:"phone" validate:"omitnil,not_blank"`
	Email   null.String `json:"email" validate:"omitnil,not_blank"`
	Status  null.String `json:"status" validate:"omitnil,branch_status"`
}

// IsEmpty - ни одно поле не было передано.
func (d UpdateBranchDTO) IsEmpty() bool {
	return !d.Name.Valid && !d.Code.Valid && !d.Address.Valid && !d.City.Valid &&
		!d.State.Valid && !d.Phone.Valid && !d.Email.Valid && !d.Status.Valid
}

type BranchDTO struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Code      string `json:"code"`
	Address   string `json:"address"`
	City      string `json:"city"`
	State     string `json:"state"`
	Phone     string `json:"phone"`
	Email     string `json:"email"`
	Status    string `json:"status"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

// BranchRowDTO - строка таблицы: только видимые колонки и бейдж статуса.
type BranchRowDTO struct {
	ID          string `json:"id"`
	Code        string `json:"code"`
	Name        string `json:"name"`
	City        string `json:"city"`
	State       string `json:"state"`
	Status      string `json:"status"`
	StatusBadge string `json:"status_badge"`
}

type TableColumnDTO struct {
	ID       string `json:"id"`
	Header   string `json:"header"`
	Sortable bool   `json:"sortable"`
	// "asc", "desc" или ""
	SortDirection string `json:"sort_direction,omitempty"`
}

type BranchTableDTO struct {
	Columns    []TableColumnDTO `json:"columns"`
	Rows       []BranchRowDTO   `json:"rows"`
	Search     string           `json:"search,omitempty"`
	Pagination types.Pagination `json:"pagination"`
}

// ImportResultDTO - итог импорта. Коллизии и пустые id только сообщаются, не исправляются.
type ImportResultDTO struct {
	Imported     int      `json:"imported"`
	Total        int      `json:"total"`
	EmptyIDs     int      `json:"empty_ids"`
	DuplicateIDs []string `json:"duplicate_ids,omitempty"`
}
