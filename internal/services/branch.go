package services

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"branch-manager/internal/dto"
	"branch-manager/internal/entities"
	"branch-manager/internal/events"
	"branch-manager/internal/repositories"
	apperrors "branch-manager/pkg/errors"
	"branch-manager/pkg/utils"
)

// Confirmer - блокирующий диалог подтверждения удаления.
type Confirmer interface {
	Confirm(ctx context.Context, branch entities.Branch) bool
}

type ConfirmFunc func(ctx context.Context, branch entities.Branch) bool

func (f ConfirmFunc) Confirm(ctx context.Context, branch entities.Branch) bool { return f(ctx, branch) }

// Готовые ответы на диалог подтверждения
var (
	Confirmed = ConfirmFunc(func(context.Context, entities.Branch) bool { return true })
	Cancelled = ConfirmFunc(func(context.Context, entities.Branch) bool { return false })
)

type BranchService struct {
	*BaseService
	branchRepository repositories.BranchRepositoryInterface
	newID            func() string
}

func NewBranchService(branchRepository repositories.BranchRepositoryInterface, base *BaseService) *BranchService {
	return &BranchService{
		BaseService:      base,
		branchRepository: branchRepository,
		newID:            uuid.NewString,
	}
}

// SetIDGenerator подменяет генератор идентификаторов (используется в тестах).
func (s *BranchService) SetIDGenerator(gen func() string) {
	s.newID = gen
}

func (s *BranchService) GetAll(ctx context.Context) []entities.Branch {
	return s.branchRepository.List(ctx)
}

func (s *BranchService) FindBranch(ctx context.Context, id string) (*dto.BranchDTO, error) {
	branch, err := s.branchRepository.Find(ctx, id)
	if err != nil {
		return nil, err
	}
	res := BranchToDTO(*branch)
	return &res, nil
}

func (s *BranchService) CreateBranch(ctx context.Context, d dto.CreateBranchDTO) (*dto.BranchDTO, error) {
	id := s.newID()
	// импорт мог принести любые id, поэтому проверяем коллизию явно
	for {
		if _, err := s.branchRepository.Find(ctx, id); err != nil {
			break
		}
		s.logger.Warn("Сгенерированный ID уже занят, генерируем заново", zap.String("id", id))
		id = s.newID()
	}

	stamp := utils.FormatISO(s.now())
	branch := entities.Branch{
		ID:      id,
		Name:    d.Name,
		Code:    d.Code,
		Address: d.Address,
		City:    d.City,
		State:   d.State,
		Phone:   d.Phone,
		Email:   d.Email,
		Status:  entities.BranchStatus(d.Status),
	}
	branch.CreatedAt = stamp
	branch.UpdatedAt = stamp

	s.branchRepository.Append(ctx, branch)
	s.PublishChanged(ctx, events.BranchActionCreated, s.branchRepository.Count(ctx), id)

	res := BranchToDTO(branch)
	return &res, nil
}

// UpdateBranch сливает переданные поля с записью и обновляет updatedAt.
// id и createdAt не меняются никогда.
func (s *BranchService) UpdateBranch(ctx context.Context, id string, d dto.UpdateBranchDTO) (*dto.BranchDTO, error) {
	now := s.now()
	var changed []string
	updated, err := s.branchRepository.Update(ctx, id, func(b *entities.Branch) {
		changed = utils.ApplyUpdates(b, d)
		b.UpdatedAt = utils.NextStamp(now, b.CreatedAt, b.UpdatedAt)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Debug("Филиал обновлен", zap.String("id", id), zap.Strings("changed", changed))
	s.PublishChanged(ctx, events.BranchActionUpdated, s.branchRepository.Count(ctx), id)

	res := BranchToDTO(*updated)
	return &res, nil
}

// DeleteBranch удаляет филиал только после подтверждения.
// Отказ от подтверждения - не ошибка: возвращается false, хранилище не меняется.
func (s *BranchService) DeleteBranch(ctx context.Context, id string, confirm Confirmer) (bool, error) {
	branch, err := s.branchRepository.Find(ctx, id)
	if err != nil {
		return false, err
	}
	if confirm == nil || !confirm.Confirm(ctx, *branch) {
		s.logger.Debug("Удаление филиала отменено", zap.String("id", id))
		return false, nil
	}

	if _, err := s.branchRepository.Remove(ctx, id); err != nil {
		return false, err
	}
	s.PublishChanged(ctx, events.BranchActionDeleted, s.branchRepository.Count(ctx), id)
	return true, nil
}

// RequireConfirmation превращает отказ в ошибку для JSON API.
func RequireConfirmation(deleted bool, err error) error {
	if err != nil {
		return err
	}
	if !deleted {
		return apperrors.ErrConfirmationRequired
	}
	return nil
}

func BranchToDTO(b entities.Branch) dto.BranchDTO {
	return dto.BranchDTO{
		ID:        b.ID,
		Name:      b.Name,
		Code:      b.Code,
		Address:   b.Address,
		City:      b.City,
		State:     b.State,
		Phone:     b.Phone,
		Email:     b.Email,
		Status:    string(b.Status),
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
	}
}
