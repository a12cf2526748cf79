package services

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"

	"branch-manager/internal/dto"
	"branch-manager/internal/entities"
	"branch-manager/internal/repositories"
	"branch-manager/pkg/config"
	"branch-manager/pkg/eventbus"
)

// fakeClock - часы, которые двигаются только вручную.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.Set(c.Now().Add(d))
}

func sequentialIDs(prefix string) func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("%s-%d", prefix, n)
	}
}

type testEnv struct {
	repo     repositories.BranchRepositoryInterface
	bus      *eventbus.Bus
	clock    *fakeClock
	branches *BranchService
	transfer *BranchTransferService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	logger := zap.NewNop()

	repo := repositories.NewBranchRepository(logger)
	bus := eventbus.New(logger)
	clock := newFakeClock()

	base := NewBaseService(bus, logger)
	base.SetClock(clock.Now)

	branches := NewBranchService(repo, base)
	branches.SetIDGenerator(sequentialIDs("branch"))

	transfer := NewBranchTransferService(repo, base, config.TransferConfig{
		ExportFileName:  "branches.xlsx",
		ExportSheetName: "Branches",
		ImportMaxSizeMB: 10,
	})

	return &testEnv{repo: repo, bus: bus, clock: clock, branches: branches, transfer: transfer}
}

func validCreateDTO(code, name string) dto.CreateBranchDTO {
	return dto.CreateBranchDTO{
		Name:    name,
		Code:    code,
		Address: "пр. Рудаки 1",
		City:    "Душанбе",
		State:   "Душанбе",
		Phone:   "+992 900 00 00 00",
		Email:   "branch@example.com",
		Status:  "active",
	}
}

// seedBranches кладёт записи прямо в хранилище, минуя сервис.
func seedBranches(t *testing.T, repo repositories.BranchRepositoryInterface, branches ...entities.Branch) {
	t.Helper()
	repo.Append(context.Background(), branches...)
}

// subscribeChanges собирает опубликованные события изменения хранилища.
func subscribeChanges(bus *eventbus.Bus) <-chan eventbus.Event {
	ch := make(chan eventbus.Event, 16)
	bus.Subscribe("branch.changed", func(ctx context.Context, event eventbus.Event) error {
		ch <- event
		return nil
	})
	return ch
}
