package controllers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"branch-manager/config"
	"branch-manager/internal/dto"
	"branch-manager/internal/services"
	apperrors "branch-manager/pkg/errors"
	"branch-manager/pkg/utils"
)

// UIController - серверная страница таблицы. Все действия меняют AppState
// и возвращают на главную (POST-redirect-GET).
type UIController struct {
	state       *services.AppState
	uploadRules config.UploadConfig
	logger      *zap.Logger
}

func NewUIController(state *services.AppState, uploadRules config.UploadConfig, logger *zap.Logger) *UIController {
	return &UIController{
		state:       state,
		uploadRules: uploadRules,
		logger:      logger,
	}
}

func (c *UIController) home(ctx echo.Context) error {
	return ctx.Redirect(http.StatusSeeOther, "/")
}

// fail показывает ошибку на странице вместо JSON-ответа.
func (c *UIController) fail(ctx echo.Context, err error, msg string) error {
	c.logger.Warn(msg, zap.Error(err), zap.String("uri", ctx.Request().RequestURI))

	var httpErr *apperrors.HttpError
	if errors.As(err, &httpErr) {
		c.state.Notify(httpErr.Message)
	} else {
		c.state.Notify(msg)
	}
	return c.home(ctx)
}

func (c *UIController) Index(ctx echo.Context) error {
	return ctx.Render(http.StatusOK, "index.html", c.state.Snapshot(ctx.Request().Context()))
}

// -----------------------------------------------------------
// TABLE
// -----------------------------------------------------------

func (c *UIController) Sort(ctx echo.Context) error {
	if err := c.state.ToggleSort(ctx.Param("column")); err != nil {
		return c.fail(ctx, err, "Эта колонка не сортируется")
	}
	return c.home(ctx)
}

func (c *UIController) Filter(ctx echo.Context) error {
	c.state.SetFilter(ctx.FormValue("search"))
	return c.home(ctx)
}

func (c *UIController) NextPage(ctx echo.Context) error {
	c.state.NextPage(ctx.Request().Context())
	return c.home(ctx)
}

func (c *UIController) PreviousPage(ctx echo.Context) error {
	c.state.PreviousPage(ctx.Request().Context())
	return c.home(ctx)
}

// -----------------------------------------------------------
// TOOLBAR
// -----------------------------------------------------------

func (c *UIController) SetViewMode(ctx echo.Context) error {
	if err := c.state.SetViewMode(services.ViewMode(ctx.Param("mode"))); err != nil {
		return c.fail(ctx, err, "Неизвестный режим отображения")
	}
	return c.home(ctx)
}

func (c *UIController) ToggleFullScreen(ctx echo.Context) error {
	c.state.ToggleFullScreen()
	return c.home(ctx)
}

// -----------------------------------------------------------
// FORM
// -----------------------------------------------------------

func (c *UIController) NewBranch(ctx echo.Context) error {
	c.state.OpenCreateForm()
	return c.home(ctx)
}

func (c *UIController) EditBranch(ctx echo.Context) error {
	if err := c.state.OpenEditForm(ctx.Request().Context(), ctx.Param("id")); err != nil {
		return c.fail(ctx, err, "Филиал не найден")
	}
	return c.home(ctx)
}

func (c *UIController) SubmitForm(ctx echo.Context) error {
	var d dto.CreateBranchDTO
	if err := ctx.Bind(&d); err != nil {
		return c.fail(ctx, err, "Неверный формат данных")
	}

	if _, err := c.state.SubmitForm(ctx.Request().Context(), d); err != nil {
		// ошибки валидации уже лежат в состоянии формы
		if utils.ValidationMessages(err) != nil {
			return c.home(ctx)
		}
		return c.fail(ctx, err, "Не удалось сохранить филиал")
	}
	return c.home(ctx)
}

func (c *UIController) CancelForm(ctx echo.Context) error {
	c.state.CancelForm()
	return c.home(ctx)
}

// -----------------------------------------------------------
// DELETE
// -----------------------------------------------------------

func (c *UIController) ConfirmDelete(ctx echo.Context) error {
	if err := c.state.RequestDelete(ctx.Request().Context(), ctx.Param("id")); err != nil {
		return c.fail(ctx, err, "Филиал не найден")
	}
	return c.home(ctx)
}

func (c *UIController) DeleteBranch(ctx echo.Context) error {
	confirmed := ctx.FormValue("confirm") == "yes"
	if _, err := c.state.ResolveDelete(ctx.Request().Context(), ctx.Param("id"), confirmed); err != nil {
		return c.fail(ctx, err, "Не удалось удалить филиал")
	}
	return c.home(ctx)
}

// -----------------------------------------------------------
// BULK TRANSFER
// -----------------------------------------------------------

func (c *UIController) Export(ctx echo.Context) error {
	if err := writeWorkbook(ctx, c.state); err != nil {
		return c.fail(ctx, err, "Не удалось выгрузить филиалы")
	}
	return nil
}

func (c *UIController) Import(ctx echo.Context) error {
	if _, err := importUpload(ctx, c.state.Import, c.uploadRules, c.logger); err != nil {
		return c.fail(ctx, err, "Не удалось импортировать файл")
	}
	return c.home(ctx)
}
