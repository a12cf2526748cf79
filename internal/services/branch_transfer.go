package services

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"branch-manager/internal/dto"
	"branch-manager/internal/entities"
	"branch-manager/internal/events"
	"branch-manager/internal/repositories"
	"branch-manager/pkg/config"
	apperrors "branch-manager/pkg/errors"
)

const XLSXContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// BranchTransferService - выгрузка хранилища в xlsx и загрузка из xlsx.
type BranchTransferService struct {
	*BaseService
	branchRepository repositories.BranchRepositoryInterface
	sheetName        string
	fileName         string
	readTimeout      time.Duration
	maxBytes         int64
}

func NewBranchTransferService(
	branchRepository repositories.BranchRepositoryInterface,
	base *BaseService,
	cfg config.TransferConfig,
) *BranchTransferService {
	s := &BranchTransferService{
		BaseService:      base,
		branchRepository: branchRepository,
		sheetName:        cfg.ExportSheetName,
		fileName:         cfg.ExportFileName,
		readTimeout:      cfg.ImportReadTimeout,
		maxBytes:         cfg.ImportMaxSizeMB * 1024 * 1024,
	}
	if s.sheetName == "" {
		s.sheetName = "Branches"
	}
	if s.fileName == "" {
		s.fileName = "branches.xlsx"
	}
	return s
}

func (s *BranchTransferService) FileName() string { return s.fileName }

// -----------------------------------------------------------
// EXPORT
// -----------------------------------------------------------

// Export пишет всё хранилище целиком, без учёта фильтра и страницы таблицы.
func (s *BranchTransferService) Export(ctx context.Context, w io.Writer) error {
	branches := s.branchRepository.List(ctx)

	f, err := BuildWorkbook(branches, s.sheetName)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.Write(w); err != nil {
		return fmt.Errorf("ошибка записи книги Excel: %w", err)
	}
	s.logger.Info("Экспорт филиалов выполнен", zap.Int("rows", len(branches)))
	return nil
}

// Ширины колонок name, address и меток времени
var exportColumnWidths = []struct {
	from, to string
	width    float64
}{
	{"B", "B", 25},
	{"D", "D", 40},
	{"J", "K", 26},
}

// BuildWorkbook - один лист, строка заголовков с именами атрибутов, по строке на запись.
func BuildWorkbook(branches []entities.Branch, sheet string) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		f.Close()
		return nil, fmt.Errorf("ошибка переименования листа: %w", err)
	}

	headers := make([]interface{}, len(entities.BranchFields))
	for i, field := range entities.BranchFields {
		headers[i] = field
	}
	if err := f.SetSheetRow(sheet, "A1", &headers); err != nil {
		f.Close()
		return nil, fmt.Errorf("ошибка записи заголовков: %w", err)
	}

	lastHeader, _ := excelize.CoordinatesToCellName(len(headers), 1)
	style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("ошибка создания стиля заголовков: %w", err)
	}
	if err := f.SetCellStyle(sheet, "A1", lastHeader, style); err != nil {
		f.Close()
		return nil, fmt.Errorf("ошибка оформления заголовков: %w", err)
	}

	for i := range branches {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		row := make([]interface{}, len(entities.BranchFields))
		for j, field := range entities.BranchFields {
			row[j] = branches[i].FieldValue(field)
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			f.Close()
			return nil, fmt.Errorf("ошибка записи строки %d: %w", i+2, err)
		}
	}

	for _, w := range exportColumnWidths {
		if err := f.SetColWidth(sheet, w.from, w.to, w.width); err != nil {
			f.Close()
			return nil, fmt.Errorf("ошибка установки ширины колонок %s:%s: %w", w.from, w.to, err)
		}
	}
	return f, nil
}

// -----------------------------------------------------------
// IMPORT
// -----------------------------------------------------------

type acquireResult struct {
	data []byte
	err  error
}

// Acquire - первая фаза импорта: байты файла читаются в отдельной горутине.
// Отмена ctx или таймаут (если задан) прерывают ожидание; по умолчанию таймаута нет.
func (s *BranchTransferService) Acquire(ctx context.Context, src io.Reader) ([]byte, error) {
	if s.readTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.readTimeout)
		defer cancel()
	}

	reader := src
	if s.maxBytes > 0 {
		reader = io.LimitReader(src, s.maxBytes+1)
	}

	done := make(chan acquireResult, 1)
	go func() {
		data, err := io.ReadAll(reader)
		done <- acquireResult{data: data, err: err}
	}()

	select {
	case res := <-done:
		if res.err != nil {
			return nil, fmt.Errorf("ошибка чтения файла: %w", res.err)
		}
		if s.maxBytes > 0 && int64(len(res.data)) > s.maxBytes {
			return nil, apperrors.NewBadRequestError(fmt.Sprintf("размер файла превышает лимит в %d байт", s.maxBytes))
		}
		return res.data, nil
	case <-ctx.Done():
		return nil, fmt.Errorf("чтение файла прервано: %w", ctx.Err())
	}
}

// ParseWorkbook - вторая фаза импорта, синхронная. Берётся только первый лист,
// первая строка - заголовки. Схема не проверяется: что было в ячейках, то и попадёт в записи.
func ParseWorkbook(data []byte) ([]entities.Branch, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrUnreadableWorkbook, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, apperrors.ErrEmptyWorkbook
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrUnreadableWorkbook, err)
	}
	if len(rows) == 0 {
		return []entities.Branch{}, nil
	}

	fields := make([]string, len(rows[0]))
	for i, header := range rows[0] {
		fields[i] = matchField(header)
	}

	branches := make([]entities.Branch, 0, len(rows)-1)
	for _, row := range rows[1:] {
		if isBlankRow(row) {
			continue
		}
		var b entities.Branch
		for i, field := range fields {
			if field == "" || i >= len(row) {
				continue
			}
			b.SetFieldValue(field, row[i])
		}
		branches = append(branches, b)
	}
	return branches, nil
}

// matchField сопоставляет заголовок колонки с атрибутом: без учёта регистра и пробелов по краям.
func matchField(header string) string {
	h := strings.TrimSpace(header)
	for _, field := range entities.BranchFields {
		if strings.EqualFold(h, field) {
			return field
		}
	}
	return ""
}

func isBlankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// Import читает файл, разбирает первый лист и дописывает все записи в конец хранилища.
// Без замены, без дедупликации, без проставления меток времени. Пустые и повторяющиеся
// id попадают в отчёт и в лог, но не исправляются.
func (s *BranchTransferService) Import(ctx context.Context, src io.Reader) (*dto.ImportResultDTO, error) {
	data, err := s.Acquire(ctx, src)
	if err != nil {
		return nil, err
	}

	branches, err := ParseWorkbook(data)
	if err != nil {
		return nil, err
	}

	result := s.inspect(ctx, branches)
	s.branchRepository.Append(ctx, branches...)
	result.Total = s.branchRepository.Count(ctx)

	if result.EmptyIDs > 0 || len(result.DuplicateIDs) > 0 {
		s.logger.Warn("Импорт принял записи с пустыми или повторяющимися ID",
			zap.Int("empty_ids", result.EmptyIDs),
			zap.Strings("duplicate_ids", result.DuplicateIDs),
		)
	}
	s.logger.Info("Импорт филиалов выполнен", zap.Int("imported", result.Imported), zap.Int("total", result.Total))

	ids := make([]string, 0, len(branches))
	for i := range branches {
		ids = append(ids, branches[i].ID)
	}
	s.PublishChanged(ctx, events.BranchActionImported, result.Total, ids...)
	return result, nil
}

func (s *BranchTransferService) inspect(ctx context.Context, incoming []entities.Branch) *dto.ImportResultDTO {
	seen := make(map[string]bool)
	for _, b := range s.branchRepository.List(ctx) {
		seen[b.ID] = true
	}

	result := &dto.ImportResultDTO{Imported: len(incoming)}
	dup := make(map[string]bool)
	for i := range incoming {
		id := incoming[i].ID
		if id == "" {
			result.EmptyIDs++
			continue
		}
		if seen[id] {
			dup[id] = true
		}
		seen[id] = true
	}
	for id := range dup {
		result.DuplicateIDs = append(result.DuplicateIDs, id)
	}
	sort.Strings(result.DuplicateIDs)
	return result
}
