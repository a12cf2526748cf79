package services

import (
	"context"
	"testing"
	"time"

	"github.com/aarondl/null/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"branch-manager/internal/dto"
	"branch-manager/internal/entities"
	"branch-manager/internal/events"
	apperrors "branch-manager/pkg/errors"
	"branch-manager/pkg/utils"
)

func TestBranchService_CreateBranch(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	seedBranches(t, env.repo, entities.Branch{ID: "old", Name: "Старый"})

	res, err := env.branches.CreateBranch(ctx, validCreateDTO("DSH-01", "Душанбе Центр"))
	require.NoError(t, err)

	assert.Equal(t, "branch-1", res.ID)
	assert.Equal(t, "2024-03-01T09:30:00.000Z", res.CreatedAt)
	assert.Equal(t, res.CreatedAt, res.UpdatedAt, "При создании метки должны совпадать")

	list := env.repo.List(ctx)
	require.Len(t, list, 2)
	assert.Equal(t, "old", list[0].ID)
	assert.Equal(t, "branch-1", list[1].ID, "Новая запись добавляется в конец")
	assert.Equal(t, entities.BranchStatusActive, list[1].Status)
}

func TestBranchService_CreateBranchRegeneratesTakenID(t *testing.T) {
	env := newTestEnv(t)
	seedBranches(t, env.repo, entities.Branch{ID: "branch-1"})

	res, err := env.branches.CreateBranch(context.Background(), validCreateDTO("KHJ-01", "Худжанд"))
	require.NoError(t, err)
	assert.Equal(t, "branch-2", res.ID)
}

func TestBranchService_CreateBranchPublishesEvent(t *testing.T) {
	env := newTestEnv(t)
	changes := subscribeChanges(env.bus)

	res, err := env.branches.CreateBranch(context.Background(), validCreateDTO("KHJ-01", "Худжанд"))
	require.NoError(t, err)

	select {
	case ev := <-changes:
		changed, ok := ev.(events.BranchChangedEvent)
		require.True(t, ok)
		assert.Equal(t, events.BranchActionCreated, changed.Action)
		assert.Equal(t, []string{res.ID}, changed.IDs)
		assert.Equal(t, 1, changed.Total)
	case <-time.After(time.Second):
		t.Fatal("Событие об изменении хранилища не опубликовано")
	}
}

func TestBranchService_UpdateBranchMergesFields(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	created, err := env.branches.CreateBranch(ctx, validCreateDTO("DSH-01", "Душанбе Центр"))
	require.NoError(t, err)

	env.clock.Advance(time.Hour)
	updated, err := env.branches.UpdateBranch(ctx, created.ID, dto.UpdateBranchDTO{
		Name:   null.StringFrom("Душанбе Север"),
		Status: null.StringFrom("inactive"),
	})
	require.NoError(t, err)

	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, created.CreatedAt, updated.CreatedAt, "createdAt не меняется при редактировании")
	assert.Equal(t, "2024-03-01T10:30:00.000Z", updated.UpdatedAt)
	assert.Equal(t, "Душанбе Север", updated.Name)
	assert.Equal(t, "inactive", updated.Status)
	assert.Equal(t, created.Code, updated.Code, "Непереданные поля сохраняются")
	assert.Equal(t, created.City, updated.City)
}

func TestBranchService_UpdateBranchAdvancesStampWithoutClockMove(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	created, err := env.branches.CreateBranch(ctx, validCreateDTO("DSH-01", "Душанбе Центр"))
	require.NoError(t, err)

	first, err := env.branches.UpdateBranch(ctx, created.ID, dto.UpdateBranchDTO{})
	require.NoError(t, err)
	second, err := env.branches.UpdateBranch(ctx, created.ID, dto.UpdateBranchDTO{})
	require.NoError(t, err)

	assert.Greater(t, first.UpdatedAt, created.UpdatedAt)
	assert.Greater(t, second.UpdatedAt, first.UpdatedAt)
}

func TestBranchService_UpdateBranchNeverBeforeCreatedAt(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	created, err := env.branches.CreateBranch(ctx, validCreateDTO("DSH-01", "Душанбе Центр"))
	require.NoError(t, err)

	env.clock.Set(time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC))
	updated, err := env.branches.UpdateBranch(ctx, created.ID, dto.UpdateBranchDTO{City: null.StringFrom("Бохтар")})
	require.NoError(t, err)

	assert.GreaterOrEqual(t, updated.UpdatedAt, updated.CreatedAt)
}

func TestBranchService_UpdateBranchNotFound(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.branches.UpdateBranch(context.Background(), "zzz", dto.UpdateBranchDTO{Name: null.StringFrom("x")})
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestBranchService_DeleteBranchRequiresConfirmation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	seedBranches(t, env.repo, entities.Branch{ID: "a"}, entities.Branch{ID: "b"}, entities.Branch{ID: "c"})

	deleted, err := env.branches.DeleteBranch(ctx, "b", Cancelled)
	require.NoError(t, err)
	assert.False(t, deleted)
	assert.Equal(t, 3, env.repo.Count(ctx), "Отказ не должен менять хранилище")

	deleted, err = env.branches.DeleteBranch(ctx, "b", nil)
	require.NoError(t, err)
	assert.False(t, deleted, "Без подтверждения удаление не выполняется")

	deleted, err = env.branches.DeleteBranch(ctx, "b", Confirmed)
	require.NoError(t, err)
	assert.True(t, deleted)

	var left []string
	for _, b := range env.repo.List(ctx) {
		left = append(left, b.ID)
	}
	assert.Equal(t, []string{"a", "c"}, left)
}

func TestBranchService_DeleteBranchAsksAboutTheRightRecord(t *testing.T) {
	env := newTestEnv(t)
	seedBranches(t, env.repo, entities.Branch{ID: "a", Name: "Первый"})

	var asked entities.Branch
	_, err := env.branches.DeleteBranch(context.Background(), "a", ConfirmFunc(func(ctx context.Context, b entities.Branch) bool {
		asked = b
		return false
	}))
	require.NoError(t, err)
	assert.Equal(t, "Первый", asked.Name)
}

func TestBranchService_DeleteBranchNotFound(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.branches.DeleteBranch(context.Background(), "zzz", Confirmed)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestRequireConfirmation(t *testing.T) {
	assert.NoError(t, RequireConfirmation(true, nil))
	assert.ErrorIs(t, RequireConfirmation(false, nil), apperrors.ErrConfirmationRequired)
	assert.ErrorIs(t, RequireConfirmation(false, apperrors.ErrNotFound), apperrors.ErrNotFound)
}

func TestBranchToDTO(t *testing.T) {
	b := entities.Branch{ID: "a", Name: "n", Status: entities.BranchStatusInactive}
	b.CreatedAt = utils.FormatISO(time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC))

	d := BranchToDTO(b)
	assert.Equal(t, "inactive", d.Status)
	assert.Equal(t, "2024-01-02T03:04:05.000Z", d.CreatedAt)
}
