package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"branch-manager/internal/entities"
	apperrors "branch-manager/pkg/errors"
	"branch-manager/pkg/validation"
)

func TestBranchForm_CreateDefaults(t *testing.T) {
	form := NewBranchForm(validation.New())
	assert.False(t, form.IsOpen())

	form.OpenCreate()
	assert.True(t, form.IsOpen())
	assert.Equal(t, "Add New Branch", form.Title())
	assert.Equal(t, "active", form.Values().Status)
	assert.Empty(t, form.Values().Name)
	assert.Empty(t, form.BranchID())
}

func TestBranchForm_SubmitCreate(t *testing.T) {
	form := NewBranchForm(validation.New())
	form.OpenCreate()

	res, err := form.Submit(validCreateDTO("DSH-01", "Душанбе"))
	require.NoError(t, err)
	assert.Equal(t, FormCreate, res.Mode)
	require.NotNil(t, res.Create)
	assert.Equal(t, "DSH-01", res.Create.Code)
	assert.Nil(t, res.Changes)
	assert.False(t, form.IsOpen(), "После отправки форма закрывается")
}

func TestBranchForm_SubmitRejectsMissingFields(t *testing.T) {
	form := NewBranchForm(validation.New())
	form.OpenCreate()

	input := validCreateDTO("DSH-01", "Душанбе")
	input.Email = "   "
	input.Status = "closed"

	_, err := form.Submit(input)
	require.Error(t, err)
	assert.True(t, form.IsOpen(), "При ошибке валидации форма остаётся открытой")
}

func TestBranchForm_EditReturnsOnlyChanges(t *testing.T) {
	original := entities.Branch{
		ID: "a", Name: "Старое имя", Code: "C-1", Address: "ул. 1", City: "Душанбе",
		State: "Душанбе", Phone: "1", Email: "a@example.com", Status: entities.BranchStatusActive,
	}
	form := NewBranchForm(validation.New())
	form.OpenEdit(original)

	assert.Equal(t, "Edit Branch", form.Title())
	assert.Equal(t, "a", form.BranchID())

	values := form.Values()
	assert.Equal(t, "Старое имя", values.Name)
	values.Name = "Новое имя"
	values.Status = "inactive"

	res, err := form.Submit(values)
	require.NoError(t, err)
	assert.Equal(t, FormEdit, res.Mode)
	assert.Equal(t, "a", res.BranchID)
	require.NotNil(t, res.Changes)
	assert.Equal(t, "Новое имя", res.Changes.Name.String)
	assert.True(t, res.Changes.Status.Valid)
	assert.False(t, res.Changes.Code.Valid, "Неизменённые поля не передаются")
	assert.False(t, res.Changes.City.Valid)
}

func TestBranchForm_CancelDiscards(t *testing.T) {
	form := NewBranchForm(validation.New())
	form.OpenEdit(entities.Branch{ID: "a"})
	form.Cancel()

	assert.False(t, form.IsOpen())
	_, err := form.Submit(validCreateDTO("x", "y"))
	assert.ErrorIs(t, err, apperrors.ErrFormClosed)
}
