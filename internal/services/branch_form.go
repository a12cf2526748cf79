package services

import (
	"github.com/aarondl/null/v8"

	"branch-manager/internal/dto"
	"branch-manager/internal/entities"
	apperrors "branch-manager/pkg/errors"
)

type FormMode string

const (
	FormClosed FormMode = ""
	FormCreate FormMode = "create"
	FormEdit   FormMode = "edit"
)

// StructValidator - то же, что echo.Validator.
type StructValidator interface {
	Validate(i interface{}) error
}

// FormResult - что отдаёт форма при отправке.
// В режиме создания заполнен Create, в режиме редактирования - Changes (только изменённые поля).
type FormResult struct {
	Mode     FormMode
	BranchID string
	Create   *dto.CreateBranchDTO
	Changes  *dto.UpdateBranchDTO
}

// BranchForm - модальная форма создания/редактирования филиала.
type BranchForm struct {
	mode      FormMode
	original  entities.Branch
	validator StructValidator
}

func NewBranchForm(validator StructValidator) *BranchForm {
	return &BranchForm{validator: validator}
}

func (f *BranchForm) Mode() FormMode { return f.mode }

func (f *BranchForm) IsOpen() bool { return f.mode != FormClosed }

func (f *BranchForm) BranchID() string {
	if f.mode != FormEdit {
		return ""
	}
	return f.original.ID
}

func (f *BranchForm) Title() string {
	if f.mode == FormEdit {
		return "Edit Branch"
	}
	return "Add New Branch"
}

func (f *BranchForm) OpenCreate() {
	f.mode = FormCreate
	f.original = entities.Branch{}
}

func (f *BranchForm) OpenEdit(branch entities.Branch) {
	f.mode = FormEdit
	f.original = branch
}

// Cancel закрывает форму, введённые данные пропадают.
func (f *BranchForm) Cancel() {
	f.mode = FormClosed
	f.original = entities.Branch{}
}

// Values - начальные значения полей формы.
func (f *BranchForm) Values() dto.CreateBranchDTO {
	if f.mode != FormEdit {
		return dto.CreateBranchDTO{Status: string(entities.BranchStatusActive)}
	}
	b := f.original
	return dto.CreateBranchDTO{
		Name:    b.Name,
		Code:    b.Code,
		Address: b.Address,
		City:    b.City,
		State:   b.State,
		Phone:   b.Phone,
		Email:   b.Email,
		Status:  string(b.Status),
	}
}

// Submit проверяет обязательные поля и закрывает форму.
// При ошибке валидации форма остаётся открытой.
func (f *BranchForm) Submit(input dto.CreateBranchDTO) (*FormResult, error) {
	if f.mode == FormClosed {
		return nil, apperrors.ErrFormClosed
	}
	if f.validator != nil {
		if err := f.validator.Validate(&input); err != nil {
			return nil, err
		}
	}

	res := &FormResult{Mode: f.mode}
	if f.mode == FormCreate {
		res.Create = &input
	} else {
		res.BranchID = f.original.ID
		changes := diffBranch(f.original, input)
		res.Changes = &changes
	}

	f.Cancel()
	return res, nil
}

func diffBranch(original entities.Branch, input dto.CreateBranchDTO) dto.UpdateBranchDTO {
	changed := func(before, after string) null.String {
		if before == after {
			return null.String{}
		}
		return null.StringFrom(after)
	}
	return dto.UpdateBranchDTO{
		Name:    changed(original.Name, input.Name),
		Code:    changed(original.Code, input.Code),
		Address: changed(original.Address, input.Address),
		City:    changed(original.City, input.City),
		State:   changed(original.State, input.State),
		Phone:   changed(original.Phone, input.Phone),
		Email:   changed(original.Email, input.Email),
		Status:  changed(string(original.Status), input.Status),
	}
}
