package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"go.uber.org/zap"

	"branch-manager/internal/dto"
	apperrors "branch-manager/pkg/errors"
	"branch-manager/pkg/utils"
)

type ViewMode string

const (
	ViewModeList ViewMode = "list"
	ViewModeGrid ViewMode = "grid"
)

// FormView - состояние модального окна для отрисовки.
type FormView struct {
	Title    string
	Mode     FormMode
	BranchID string
	Values   dto.CreateBranchDTO
	Errors   []string
}

// PageState - всё, что нужно для отрисовки страницы.
type PageState struct {
	Table         dto.BranchTableDTO
	Form          *FormView
	PendingDelete *dto.BranchDTO
	ViewMode      ViewMode
	FullScreen    bool
	Notice        string
}

// AppState - состояние единственной сессии страницы. Меняется только через свои методы.
type AppState struct {
	mu sync.Mutex

	branches *BranchService
	transfer *BranchTransferService
	table    *BranchTable
	form     *BranchForm

	formValues    *dto.CreateBranchDTO
	formErrors    []string
	pendingDelete string
	viewMode      ViewMode
	fullScreen    bool
	notice        string

	logger *zap.Logger
}

func NewAppState(
	branches *BranchService,
	transfer *BranchTransferService,
	table *BranchTable,
	form *BranchForm,
	logger *zap.Logger,
) *AppState {
	return &AppState{
		branches: branches,
		transfer: transfer,
		table:    table,
		form:     form,
		viewMode: ViewModeList,
		logger:   logger,
	}
}

// Snapshot пересчитывает таблицу по текущему хранилищу.
func (a *AppState) Snapshot(ctx context.Context) PageState {
	a.mu.Lock()
	defer a.mu.Unlock()

	state := PageState{
		Table:      a.table.View(a.branches.GetAll(ctx)),
		ViewMode:   a.viewMode,
		FullScreen: a.fullScreen,
		Notice:     a.notice,
	}
	a.notice = ""

	if a.form.IsOpen() {
		values := a.form.Values()
		if a.formValues != nil {
			values = *a.formValues
		}
		state.Form = &FormView{
			Title:    a.form.Title(),
			Mode:     a.form.Mode(),
			BranchID: a.form.BranchID(),
			Values:   values,
			Errors:   a.formErrors,
		}
	}

	if a.pendingDelete != "" {
		if b, err := a.branches.FindBranch(ctx, a.pendingDelete); err == nil {
			state.PendingDelete = b
		} else {
			a.pendingDelete = ""
		}
	}
	return state
}

// -----------------------------------------------------------
// TABLE
// -----------------------------------------------------------

func (a *AppState) ToggleSort(column string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.table.ToggleSort(column)
}

func (a *AppState) SetFilter(search string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.table.SetFilter(search)
}

func (a *AppState) NextPage(ctx context.Context) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.table.NextPage(a.branches.GetAll(ctx))
}

func (a *AppState) PreviousPage(ctx context.Context) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.table.PreviousPage(a.branches.GetAll(ctx))
}

// -----------------------------------------------------------
// TOOLBAR
// -----------------------------------------------------------

// SetViewMode меняет только подсветку иконки, на таблицу не влияет.
func (a *AppState) SetViewMode(mode ViewMode) error {
	if mode != ViewModeList && mode != ViewModeGrid {
		return fmt.Errorf("%w: режим %q", apperrors.ErrBadRequest, mode)
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	a.viewMode = mode
	return nil
}

func (a *AppState) ToggleFullScreen() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.fullScreen = !a.fullScreen
	return a.fullScreen
}

// -----------------------------------------------------------
// FORM
// -----------------------------------------------------------

func (a *AppState) OpenCreateForm() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.resetFormLocked()
	a.form.OpenCreate()
}

func (a *AppState) OpenEditForm(ctx context.Context, id string) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	// Нужна сама запись, а не DTO: форма сравнивает с ней введённые значения
	for _, b := range a.branches.GetAll(ctx) {
		if b.ID == id {
			a.resetFormLocked()
			a.form.OpenEdit(b)
			return nil
		}
	}
	return apperrors.ErrNotFound
}

func (a *AppState) CancelForm() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.resetFormLocked()
	a.form.Cancel()
}

func (a *AppState) resetFormLocked() {
	a.formValues = nil
	a.formErrors = nil
}

// SubmitForm отправляет форму. Ошибки валидации оставляют окно открытым с введёнными данными.
func (a *AppState) SubmitForm(ctx context.Context, input dto.CreateBranchDTO) (*dto.BranchDTO, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	res, err := a.form.Submit(input)
	if err != nil {
		if msgs := utils.ValidationMessages(err); msgs != nil {
			a.formValues = &input
			a.formErrors = msgs
		}
		return nil, err
	}
	a.resetFormLocked()

	switch res.Mode {
	case FormCreate:
		return a.branches.CreateBranch(ctx, *res.Create)
	case FormEdit:
		return a.branches.UpdateBranch(ctx, res.BranchID, *res.Changes)
	}
	return nil, apperrors.ErrFormClosed
}

// -----------------------------------------------------------
// DELETE
// -----------------------------------------------------------

// RequestDelete показывает диалог подтверждения.
func (a *AppState) RequestDelete(ctx context.Context, id string) error {
	if _, err := a.branches.FindBranch(ctx, id); err != nil {
		return err
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	a.pendingDelete = id
	return nil
}

// ResolveDelete закрывает диалог; удаляет только при confirmed=true.
func (a *AppState) ResolveDelete(ctx context.Context, id string, confirmed bool) (bool, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.pendingDelete = ""

	confirm := Cancelled
	if confirmed {
		confirm = Confirmed
	}
	return a.branches.DeleteBranch(ctx, id, confirm)
}

// -----------------------------------------------------------
// BULK TRANSFER
// -----------------------------------------------------------

func (a *AppState) FileName() string { return a.transfer.FileName() }

func (a *AppState) Export(ctx context.Context, w io.Writer) error {
	return a.transfer.Export(ctx, w)
}

func (a *AppState) Import(ctx context.Context, src io.Reader) (*dto.ImportResultDTO, error) {
	res, err := a.transfer.Import(ctx, src)

	a.mu.Lock()
	defer a.mu.Unlock()
	if err != nil {
		a.logger.Warn("Импорт из файла не выполнен", zap.Error(err))
		var httpErr *apperrors.HttpError
		if errors.As(err, &httpErr) {
			a.notice = httpErr.Message
		} else {
			a.notice = err.Error()
		}
		return nil, err
	}
	a.notice = fmt.Sprintf("Импортировано записей: %d", res.Imported)
	return res, nil
}

// Notify - сообщение для следующей отрисовки страницы.
func (a *AppState) Notify(message string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.notice = message
}
