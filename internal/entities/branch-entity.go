package entities

import (
	"branch-manager/pkg/types"
)

type BranchStatus string

const (
	BranchStatusActive   BranchStatus = "active"
	BranchStatusInactive BranchStatus = "inactive"
)

func (s BranchStatus) Valid() bool {
	return s == BranchStatusActive || s == BranchStatusInactive
}

// Branch - филиал. Поля строковые: после импорта в них лежит ровно то, что было в файле.
type Branch struct {
	ID      string       `json:"id"`
	Name    string       `json:"name"`
	Code    string       `json:"code"`
	Address string       `json:"address"`
	City    string       `json:"city"`
	State   string       `json:"state"`
	Phone   string       `json:"phone"`
	Email   string       `json:"email"`
	Status  BranchStatus `json:"status"`

	types.BaseEntity
}

// BranchFields - порядок атрибутов в файле экспорта и заголовки для импорта.
var BranchFields = []string{
	"id", "name", "code", "address", "city", "state", "phone", "email", "status", "createdAt", "updatedAt",
}

// FieldValue возвращает значение атрибута по имени из BranchFields.
func (b *Branch) FieldValue(field string) string {
	switch field {
	case "id":
		return b.ID
	case "name":
		return b.Name
	case "code":
		return b.Code
	case "address":
		return b.Address
	case "city":
		return b.City
	case "state":
		return b.State
	case "phone":
		return b.Phone
	case "email":
		return b.Email
	case "status":
		return string(b.Status)
	case "createdAt":
		return b.CreatedAt
	case "updatedAt":
		return b.UpdatedAt
	}
	return ""
}

// SetFieldValue записывает значение атрибута; неизвестные имена игнорируются.
func (b *Branch) SetFieldValue(field, value string) bool {
	switch field {
	case "id":
		b.ID = value
	case "name":
		b.Name = value
	case "code":
		b.Code = value
	case "address":
		b.Address = value
	case "city":
		b.City = value
	case "state":
		b.State = value
	case "phone":
		b.Phone = value
	case "email":
		b.Email = value
	case "status":
		b.Status = BranchStatus(value)
	case "createdAt":
		b.CreatedAt = value
	case "updatedAt":
		b.UpdatedAt = value
	default:
		return false
	}
	return true
}
