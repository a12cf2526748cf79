package services

import (
	"fmt"
	"sort"
	"strings"

	"golang.org/x/text/cases"

	"branch-manager/internal/dto"
	"branch-manager/internal/entities"
	apperrors "branch-manager/pkg/errors"
	"branch-manager/pkg/types"
)

const DefaultPageSize = 10

type SortDirection string

const (
	SortNone SortDirection = ""
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

// Бейджи статуса: всё, что не active, рисуется как inactive
const (
	StatusBadgeActive   = "active"
	StatusBadgeInactive = "inactive"
)

type TableColumn struct {
	ID       string
	Header   string
	Sortable bool
	value    func(b *entities.Branch) string
}

// BranchColumns - колонки таблицы в порядке отображения.
var BranchColumns = []TableColumn{
	{ID: "code", Header: "Branch Code", Sortable: true, value: func(b *entities.Branch) string { return b.Code }},
	{ID: "name", Header: "Branch Name", Sortable: true, value: func(b *entities.Branch) string { return b.Name }},
	{ID: "city", Header: "City", Sortable: true, value: func(b *entities.Branch) string { return b.City }},
	{ID: "state", Header: "State", Sortable: true, value: func(b *entities.Branch) string { return b.State }},
	{ID: "status", Header: "Status", Sortable: true, value: func(b *entities.Branch) string { return string(b.Status) }},
	{ID: "actions", Header: "Actions"},
}

func findColumn(id string) (TableColumn, bool) {
	for _, c := range BranchColumns {
		if c.ID == id {
			return c, true
		}
	}
	return TableColumn{}, false
}

// TableQuery - состояние представления: фильтр, сортировка, страница (с нуля).
type TableQuery struct {
	Search        string
	SortColumn    string
	SortDirection SortDirection
	Page          int
}

// TableQueryFromFilter берёт первую допустимую сортировку в порядке колонок.
func TableQueryFromFilter(f types.Filter) TableQuery {
	q := TableQuery{Search: f.Search, Page: f.Page}
	for _, c := range BranchColumns {
		if !c.Sortable {
			continue
		}
		if dir, ok := f.Sort[c.ID]; ok {
			q.SortColumn = c.ID
			q.SortDirection = SortDirection(dir)
			break
		}
	}
	return q
}

// BuildPage строит страницу таблицы из текущего содержимого хранилища.
// Номер страницы в запросе зажимается в допустимый диапазон.
func BuildPage(branches []entities.Branch, q TableQuery, pageSize int) dto.BranchTableDTO {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}

	rows := filterBranches(branches, q.Search)
	sortBranches(rows, q.SortColumn, q.SortDirection)

	total := len(rows)
	pageCount := (total + pageSize - 1) / pageSize
	page := clampPage(q.Page, pageCount)

	start := page * pageSize
	end := start + pageSize
	if end > total {
		end = total
	}

	out := dto.BranchTableDTO{
		Columns: columnsDTO(q),
		Rows:    make([]dto.BranchRowDTO, 0, end-start),
		Search:  q.Search,
		Pagination: types.Pagination{
			TotalCount:  total,
			Page:        page,
			Limit:       pageSize,
			TotalPages:  pageCount,
			CanPrevious: page > 0,
			CanNext:     page < pageCount-1,
		},
	}
	if total > 0 {
		out.Pagination.ShowingFrom = start + 1
		out.Pagination.ShowingTo = end
	}

	for i := start; i < end; i++ {
		out.Rows = append(out.Rows, rowDTO(&rows[i]))
	}
	return out
}

func clampPage(page, pageCount int) int {
	if page >= pageCount {
		page = pageCount - 1
	}
	if page < 0 {
		page = 0
	}
	return page
}

// filterBranches - регистронезависимый поиск подстроки по видимым колонкам.
func filterBranches(branches []entities.Branch, search string) []entities.Branch {
	needle := foldKey(strings.TrimSpace(search))
	out := make([]entities.Branch, 0, len(branches))
	for i := range branches {
		if needle == "" || rowMatches(&branches[i], needle) {
			out = append(out, branches[i])
		}
	}
	return out
}

func rowMatches(b *entities.Branch, needle string) bool {
	for _, c := range BranchColumns {
		if c.value == nil {
			continue
		}
		if strings.Contains(foldKey(c.value(b)), needle) {
			return true
		}
	}
	return false
}

// sortBranches - стабильная сортировка: равные ключи сохраняют порядок хранилища
// в обоих направлениях.
func sortBranches(rows []entities.Branch, column string, dir SortDirection) {
	col, ok := findColumn(column)
	if !ok || !col.Sortable || dir == SortNone {
		return
	}
	sort.SliceStable(rows, func(i, j int) bool {
		a := foldKey(col.value(&rows[i]))
		b := foldKey(col.value(&rows[j]))
		if dir == SortDesc {
			return a > b
		}
		return a < b
	})
}

// foldKey - ключ для сравнения без учёта регистра (Unicode case folding).
func foldKey(s string) string {
	return cases.Fold().String(s)
}

func columnsDTO(q TableQuery) []dto.TableColumnDTO {
	cols := make([]dto.TableColumnDTO, 0, len(BranchColumns))
	for _, c := range BranchColumns {
		col := dto.TableColumnDTO{ID: c.ID, Header: c.Header, Sortable: c.Sortable}
		if c.ID == q.SortColumn {
			col.SortDirection = string(q.SortDirection)
		}
		cols = append(cols, col)
	}
	return cols
}

func rowDTO(b *entities.Branch) dto.BranchRowDTO {
	badge := StatusBadgeInactive
	if b.Status == entities.BranchStatusActive {
		badge = StatusBadgeActive
	}
	return dto.BranchRowDTO{
		ID:          b.ID,
		Code:        b.Code,
		Name:        b.Name,
		City:        b.City,
		State:       b.State,
		Status:      string(b.Status),
		StatusBadge: badge,
	}
}

// BranchTable - табличное представление одной сессии страницы.
type BranchTable struct {
	pageSize int
	query    TableQuery
}

func NewBranchTable(pageSize int) *BranchTable {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &BranchTable{pageSize: pageSize}
}

func (t *BranchTable) Query() TableQuery { return t.query }

// ToggleSort: новая колонка - по возрастанию; та же колонка asc -> desc -> без сортировки.
func (t *BranchTable) ToggleSort(column string) error {
	col, ok := findColumn(column)
	if !ok || !col.Sortable {
		return fmt.Errorf("%w: колонка %q не сортируется", apperrors.ErrBadRequest, column)
	}

	switch {
	case t.query.SortColumn != column || t.query.SortDirection == SortNone:
		t.query.SortColumn = column
		t.query.SortDirection = SortAsc
	case t.query.SortDirection == SortAsc:
		t.query.SortDirection = SortDesc
	default:
		t.query.SortColumn = ""
		t.query.SortDirection = SortNone
	}
	return nil
}

// SetFilter меняет строку поиска и возвращает на первую страницу.
func (t *BranchTable) SetFilter(search string) {
	t.query.Search = search
	t.query.Page = 0
}

// NextPage / PreviousPage ничего не делают на границах.
func (t *BranchTable) NextPage(branches []entities.Branch) {
	view := t.View(branches)
	if view.Pagination.CanNext {
		t.query.Page++
	}
}

func (t *BranchTable) PreviousPage(branches []entities.Branch) {
	view := t.View(branches)
	if view.Pagination.CanPrevious {
		t.query.Page--
	}
}

func (t *BranchTable) GoToPage(branches []entities.Branch, page int) {
	t.query.Page = page
	t.View(branches)
}

// View пересчитывает страницу и запоминает зажатый номер страницы.
func (t *BranchTable) View(branches []entities.Branch) dto.BranchTableDTO {
	view := BuildPage(branches, t.query, t.pageSize)
	t.query.Page = view.Pagination.Page
	return view
}
