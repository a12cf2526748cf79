package repositories

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"branch-manager/internal/entities"
	apperrors "branch-manager/pkg/errors"
)

// Интерфейс
type BranchRepositoryInterface interface {
	List(ctx context.Context) []entities.Branch
	Find(ctx context.Context, id string) (*entities.Branch, error)
	Count(ctx context.Context) int
	Append(ctx context.Context, branches ...entities.Branch)
	Update(ctx context.Context, id string, apply func(b *entities.Branch)) (*entities.Branch, error)
	Remove(ctx context.Context, id string) (int, error)
}

// BranchRepository хранит упорядоченный список филиалов в памяти на время сессии.
type BranchRepository struct {
	mu       sync.RWMutex
	branches []entities.Branch
	logger   *zap.Logger
}

func NewBranchRepository(logger *zap.Logger) BranchRepositoryInterface {
	return &BranchRepository{logger: logger}
}

// -----------------------------------------------------------
// READ
// -----------------------------------------------------------

func (r *BranchRepository) List(ctx context.Context) []entities.Branch {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]entities.Branch, len(r.branches))
	copy(out, r.branches)
	return out
}

func (r *BranchRepository) Find(ctx context.Context, id string) (*entities.Branch, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for i := range r.branches {
		if r.branches[i].ID == id {
			b := r.branches[i]
			return &b, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (r *BranchRepository) Count(ctx context.Context) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.branches)
}

// -----------------------------------------------------------
// WRITE
// -----------------------------------------------------------

func (r *BranchRepository) Append(ctx context.Context, branches ...entities.Branch) {
	if len(branches) == 0 {
		return
	}
	r.mu.Lock()
	r.branches = append(r.branches, branches...)
	total := len(r.branches)
	r.mu.Unlock()

	r.logger.Debug("Филиалы добавлены в хранилище", zap.Int("added", len(branches)), zap.Int("total", total))
}

// Update применяет apply ко всем записям с данным id (после импорта id может повторяться)
// и возвращает копию первой из них.
func (r *BranchRepository) Update(ctx context.Context, id string, apply func(b *entities.Branch)) (*entities.Branch, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var first *entities.Branch
	for i := range r.branches {
		if r.branches[i].ID != id {
			continue
		}
		apply(&r.branches[i])
		if first == nil {
			b := r.branches[i]
			first = &b
		}
	}
	if first == nil {
		return nil, apperrors.ErrNotFound
	}
	return first, nil
}

// Remove удаляет все записи с данным id, остальные сохраняют порядок.
func (r *BranchRepository) Remove(ctx context.Context, id string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	kept := make([]entities.Branch, 0, len(r.branches))
	removed := 0
	for _, b := range r.branches {
		if b.ID == id {
			removed++
			continue
		}
		kept = append(kept, b)
	}
	if removed == 0 {
		return 0, apperrors.ErrNotFound
	}
	r.branches = kept
	return removed, nil
}
