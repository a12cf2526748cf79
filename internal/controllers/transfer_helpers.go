package controllers

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"branch-manager/config"
	"branch-manager/internal/dto"
	"branch-manager/internal/services"
	apperrors "branch-manager/pkg/errors"
	"branch-manager/pkg/validation"
)

type importFunc func(ctx context.Context, src io.Reader) (*dto.ImportResultDTO, error)

type exporter interface {
	FileName() string
	Export(ctx context.Context, w io.Writer) error
}

func writeWorkbook(ctx echo.Context, exp exporter) error {
	var buf bytes.Buffer
	if err := exp.Export(ctx.Request().Context(), &buf); err != nil {
		return err
	}
	ctx.Response().Header().Set(echo.HeaderContentDisposition, "attachment; filename="+exp.FileName())
	return ctx.Blob(http.StatusOK, services.XLSXContentType, buf.Bytes())
}

// importUpload проверяет загруженный файл и передаёт его импорту.
func importUpload(ctx echo.Context, run importFunc, rules config.UploadConfig, logger *zap.Logger) (*dto.ImportResultDTO, error) {
	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		return nil, apperrors.NewHttpError(http.StatusBadRequest, "Файл не был передан", apperrors.ErrBadRequest, nil)
	}

	src, err := fileHeader.Open()
	if err != nil {
		return nil, apperrors.NewHttpError(http.StatusInternalServerError, "Ошибка обработки файла", err, nil)
	}
	defer src.Close()

	if err := validation.ValidateFile(fileHeader, src, rules); err != nil {
		return nil, apperrors.NewHttpError(http.StatusBadRequest, err.Error(), apperrors.ErrUnsupportedFile,
			map[string]interface{}{"filename": fileHeader.Filename})
	}

	res, err := run(ctx.Request().Context(), src)
	if err != nil {
		if errors.Is(err, apperrors.ErrUnreadableWorkbook) || errors.Is(err, apperrors.ErrEmptyWorkbook) {
			return nil, apperrors.NewHttpError(http.StatusBadRequest, "Не удалось прочитать файл Excel", err,
				map[string]interface{}{"filename": fileHeader.Filename})
		}
		return nil, err
	}

	logger.Info("Файл импортирован", zap.String("filename", fileHeader.Filename), zap.Int("rows", res.Imported))
	return res, nil
}
