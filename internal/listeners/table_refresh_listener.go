package listeners

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"branch-manager/internal/events"
	"branch-manager/pkg/eventbus"
)

const BranchesChangedMessage = "branches.changed"

// Broadcaster - то, чем хаб websocket рассылает сообщения открытым страницам.
type Broadcaster interface {
	Broadcast(ctx context.Context, payload interface{}, messageType string) error
}

// TableRefreshListener просит открытые страницы перерисовать таблицу после изменения хранилища.
type TableRefreshListener struct {
	broadcaster Broadcaster
	logger      *zap.Logger
}

func NewTableRefreshListener(broadcaster Broadcaster, logger *zap.Logger) *TableRefreshListener {
	return &TableRefreshListener{broadcaster: broadcaster, logger: logger}
}

func (l *TableRefreshListener) Register(bus *eventbus.Bus) {
	bus.Subscribe(events.BranchChangedEventName, l.handleBranchChanged)
	l.logger.Info("TableRefreshListener подписан на событие", zap.String("event", events.BranchChangedEventName))
}

func (l *TableRefreshListener) handleBranchChanged(ctx context.Context, event eventbus.Event) error {
	changed, ok := event.(events.BranchChangedEvent)
	if !ok {
		return fmt.Errorf("неожиданный тип события %T", event)
	}
	return l.broadcaster.Broadcast(ctx, changed, BranchesChangedMessage)
}
