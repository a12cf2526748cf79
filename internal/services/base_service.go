package services

import (
	"context"
	"time"

	"go.uber.org/zap"

	"branch-manager/internal/events"
	"branch-manager/pkg/eventbus"
	"branch-manager/pkg/utils"
)

// BaseService - общее для сервисов, меняющих хранилище: часы, шина событий, логгер.
type BaseService struct {
	bus    *eventbus.Bus
	clock  utils.Clock
	logger *zap.Logger
}

func NewBaseService(bus *eventbus.Bus, logger *zap.Logger) *BaseService {
	return &BaseService{bus: bus, clock: time.Now, logger: logger}
}

// SetClock подменяет источник времени (используется в тестах).
func (s *BaseService) SetClock(clock utils.Clock) {
	s.clock = clock
}

func (s *BaseService) now() time.Time {
	return s.clock()
}

// PublishChanged сообщает слушателям, что таблицу нужно пересчитать.
func (s *BaseService) PublishChanged(ctx context.Context, action string, total int, ids ...string) {
	s.logger.Debug("Хранилище филиалов изменено",
		zap.String("action", action),
		zap.Strings("ids", ids),
		zap.Int("total", total),
	)
	if s.bus == nil {
		return
	}
	s.bus.Publish(ctx, events.BranchChangedEvent{Action: action, IDs: ids, Total: total})
}
