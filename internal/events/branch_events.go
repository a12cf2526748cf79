package events

const BranchChangedEventName = "branch.changed"

// Действия над хранилищем филиалов
const (
	BranchActionCreated  = "created"
	BranchActionUpdated  = "updated"
	BranchActionDeleted  = "deleted"
	BranchActionImported = "imported"
)

// BranchChangedEvent - хранилище изменилось, таблицу нужно пересчитать.
type BranchChangedEvent struct {
	Action string   `json:"action"`
	IDs    []string `json:"ids,omitempty"`
	Total  int      `json:"total"`
}

// Name - реализуем интерфейс eventbus.Event
func (e BranchChangedEvent) Name() string {
	return BranchChangedEventName
}
