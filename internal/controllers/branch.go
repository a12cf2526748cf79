package controllers

import (
	"net/http"
	"strconv"

	"branch-manager/config"
	"branch-manager/internal/dto"
	"branch-manager/internal/services"
	apperrors "branch-manager/pkg/errors"
	"branch-manager/pkg/utils"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type BranchController struct {
	branchService   *services.BranchService
	transferService *services.BranchTransferService
	uploadRules     config.UploadConfig
	pageSize        int
	logger          *zap.Logger
}

func NewBranchController(
	branchService *services.BranchService,
	transferService *services.BranchTransferService,
	uploadRules config.UploadConfig,
	pageSize int,
	logger *zap.Logger,
) *BranchController {
	return &BranchController{
		branchService:   branchService,
		transferService: transferService,
		uploadRules:     uploadRules,
		pageSize:        pageSize,
		logger:          logger,
	}
}

func (c *BranchController) GetBranches(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()
	filter := utils.ParseFilterFromQuery(ctx.QueryParams())

	page := services.BuildPage(c.branchService.GetAll(reqCtx), services.TableQueryFromFilter(filter), c.pageSize)
	return utils.SuccessResponse(ctx, page, "Список филиалов успешно получен", http.StatusOK)
}

func (c *BranchController) FindBranch(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()
	id := ctx.Param("id")

	res, err := c.branchService.FindBranch(reqCtx, id)
	if err != nil {
		return utils.ErrorResponse(ctx, apperrors.NewHttpError(http.StatusNotFound, "Филиал не найден", err, map[string]interface{}{"id": id}), c.logger)
	}

	return utils.SuccessResponse(ctx, res, "Филиал успешно найден", http.StatusOK)
}

func (c *BranchController) CreateBranch(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()
	var d dto.CreateBranchDTO
	if err := ctx.Bind(&d); err != nil {
		return utils.ErrorResponse(ctx, apperrors.NewBadRequestError("Неверный формат данных"), c.logger)
	}
	if err := ctx.Validate(&d); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.branchService.CreateBranch(reqCtx, d)
	if err != nil {
		c.logger.Error("Ошибка при создании филиала", zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	return utils.SuccessResponse(ctx, res, "Филиал успешно создан", http.StatusCreated)
}

func (c *BranchController) UpdateBranch(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()
	id := ctx.Param("id")

	var d dto.UpdateBranchDTO
	if err := ctx.Bind(&d); err != nil {
		return utils.ErrorResponse(ctx, apperrors.NewBadRequestError("Неверный формат данных"), c.logger)
	}
	if err := ctx.Validate(&d); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.branchService.UpdateBranch(reqCtx, id, d)
	if err != nil {
		c.logger.Error("Ошибка при обновлении филиала", zap.Error(err), zap.String("id", id))
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	return utils.SuccessResponse(ctx, res, "Филиал успешно обновлен", http.StatusOK)
}

// DeleteBranch удаляет только с ?confirm=true, иначе 409 и хранилище не меняется.
func (c *BranchController) DeleteBranch(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()
	id := ctx.Param("id")
	confirmed, _ := strconv.ParseBool(ctx.QueryParam("confirm"))

	confirm := services.Cancelled
	if confirmed {
		confirm = services.Confirmed
	}

	if err := services.RequireConfirmation(c.branchService.DeleteBranch(reqCtx, id, confirm)); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	return ctx.NoContent(http.StatusNoContent)
}

func (c *BranchController) ExportBranches(ctx echo.Context) error {
	if err := writeWorkbook(ctx, c.transferService); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return nil
}

func (c *BranchController) ImportBranches(ctx echo.Context) error {
	res, err := importUpload(ctx, c.transferService.Import, c.uploadRules, c.logger)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Импорт филиалов выполнен", http.StatusOK)
}
