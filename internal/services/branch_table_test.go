package services

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"branch-manager/internal/dto"
	"branch-manager/internal/entities"
	apperrors "branch-manager/pkg/errors"
	"branch-manager/pkg/types"
)

func makeBranches(n int) []entities.Branch {
	out := make([]entities.Branch, 0, n)
	for i := 1; i <= n; i++ {
		out = append(out, entities.Branch{
			ID:     fmt.Sprintf("id-%02d", i),
			Code:   fmt.Sprintf("BR-%02d", i),
			Name:   fmt.Sprintf("Филиал %02d", i),
			City:   "Душанбе",
			State:  "Душанбе",
			Status: entities.BranchStatusActive,
		})
	}
	return out
}

func rowIDs(page dto.BranchTableDTO) []string {
	out := make([]string, 0, len(page.Rows))
	for _, r := range page.Rows {
		out = append(out, r.ID)
	}
	return out
}

func TestBuildPage_PaginatesByTen(t *testing.T) {
	branches := makeBranches(25)

	cases := []struct {
		page     int
		rows     int
		from, to int
		prev     bool
		next     bool
	}{
		{page: 0, rows: 10, from: 1, to: 10, prev: false, next: true},
		{page: 1, rows: 10, from: 11, to: 20, prev: true, next: true},
		{page: 2, rows: 5, from: 21, to: 25, prev: true, next: false},
	}
	for _, tc := range cases {
		t.Run(fmt.Sprintf("page %d", tc.page), func(t *testing.T) {
			page := BuildPage(branches, TableQuery{Page: tc.page}, DefaultPageSize)
			assert.Len(t, page.Rows, tc.rows)
			assert.Equal(t, tc.from, page.Pagination.ShowingFrom)
			assert.Equal(t, tc.to, page.Pagination.ShowingTo)
			assert.Equal(t, 25, page.Pagination.TotalCount)
			assert.Equal(t, 3, page.Pagination.TotalPages)
			assert.Equal(t, tc.prev, page.Pagination.CanPrevious)
			assert.Equal(t, tc.next, page.Pagination.CanNext)
		})
	}
}

func TestBuildPage_ClampsPage(t *testing.T) {
	branches := makeBranches(25)

	page := BuildPage(branches, TableQuery{Page: 99}, DefaultPageSize)
	assert.Equal(t, 2, page.Pagination.Page)

	page = BuildPage(branches, TableQuery{Page: -3}, DefaultPageSize)
	assert.Equal(t, 0, page.Pagination.Page)
}

func TestBuildPage_Empty(t *testing.T) {
	page := BuildPage(nil, TableQuery{}, DefaultPageSize)

	assert.Empty(t, page.Rows)
	assert.Equal(t, 0, page.Pagination.TotalCount)
	assert.Equal(t, 0, page.Pagination.ShowingFrom)
	assert.Equal(t, 0, page.Pagination.ShowingTo)
	assert.False(t, page.Pagination.CanPrevious)
	assert.False(t, page.Pagination.CanNext)
	assert.Len(t, page.Columns, len(BranchColumns))
}

func TestBuildPage_StoreOrderWithoutSort(t *testing.T) {
	branches := []entities.Branch{{ID: "c", Code: "C"}, {ID: "a", Code: "A"}, {ID: "b", Code: "B"}}

	page := BuildPage(branches, TableQuery{}, DefaultPageSize)
	assert.Equal(t, []string{"c", "a", "b"}, rowIDs(page))
}

func TestBuildPage_SortIsStable(t *testing.T) {
	branches := []entities.Branch{
		{ID: "1", City: "Худжанд"},
		{ID: "2", City: "Душанбе"},
		{ID: "3", City: "худжанд"},
		{ID: "4", City: "Душанбе"},
	}

	asc := BuildPage(branches, TableQuery{SortColumn: "city", SortDirection: SortAsc}, DefaultPageSize)
	assert.Equal(t, []string{"2", "4", "1", "3"}, rowIDs(asc), "Равные ключи сохраняют порядок хранилища")

	desc := BuildPage(branches, TableQuery{SortColumn: "city", SortDirection: SortDesc}, DefaultPageSize)
	assert.Equal(t, []string{"1", "3", "2", "4"}, rowIDs(desc))

	for _, c := range asc.Columns {
		if c.ID == "city" {
			assert.Equal(t, "asc", c.SortDirection)
		} else {
			assert.Empty(t, c.SortDirection)
		}
	}
}

func TestBuildPage_FilterIsCaseInsensitive(t *testing.T) {
	branches := []entities.Branch{
		{ID: "1", Name: "Центральный", City: "Душанбе", Status: entities.BranchStatusActive},
		{ID: "2", Name: "Северный", City: "Худжанд", Status: entities.BranchStatusInactive},
		{ID: "3", Name: "Южный", City: "Бохтар", Code: "HUJ-3", Status: entities.BranchStatusActive},
	}

	page := BuildPage(branches, TableQuery{Search: "  ХУДЖАНД "}, DefaultPageSize)
	assert.Equal(t, []string{"2"}, rowIDs(page))

	page = BuildPage(branches, TableQuery{Search: "inactive"}, DefaultPageSize)
	assert.Equal(t, []string{"2"}, rowIDs(page))

	page = BuildPage(branches, TableQuery{Search: "huj"}, DefaultPageSize)
	assert.Equal(t, []string{"3"}, rowIDs(page))

	page = BuildPage(branches, TableQuery{Search: "нет такого"}, DefaultPageSize)
	assert.Empty(t, page.Rows)
}

func TestBuildPage_StatusBadge(t *testing.T) {
	branches := []entities.Branch{
		{ID: "1", Status: entities.BranchStatusActive},
		{ID: "2", Status: entities.BranchStatusInactive},
		{ID: "3", Status: "closed"},
	}

	page := BuildPage(branches, TableQuery{}, DefaultPageSize)
	require.Len(t, page.Rows, 3)
	assert.Equal(t, StatusBadgeActive, page.Rows[0].StatusBadge)
	assert.Equal(t, StatusBadgeInactive, page.Rows[1].StatusBadge)
	assert.Equal(t, StatusBadgeInactive, page.Rows[2].StatusBadge, "Неизвестный статус рисуется как inactive")
}

func TestBranchTable_ToggleSortCycle(t *testing.T) {
	table := NewBranchTable(DefaultPageSize)

	require.NoError(t, table.ToggleSort("name"))
	assert.Equal(t, TableQuery{SortColumn: "name", SortDirection: SortAsc}, table.Query())

	require.NoError(t, table.ToggleSort("name"))
	assert.Equal(t, SortDesc, table.Query().SortDirection)

	require.NoError(t, table.ToggleSort("name"))
	assert.Equal(t, SortNone, table.Query().SortDirection)
	assert.Empty(t, table.Query().SortColumn)

	require.NoError(t, table.ToggleSort("name"))
	require.NoError(t, table.ToggleSort("code"))
	assert.Equal(t, TableQuery{SortColumn: "code", SortDirection: SortAsc}, table.Query(), "Новая колонка начинает с asc")
}

func TestBranchTable_ToggleSortRejectsUnknownColumn(t *testing.T) {
	table := NewBranchTable(DefaultPageSize)

	assert.ErrorIs(t, table.ToggleSort("actions"), apperrors.ErrBadRequest)
	assert.ErrorIs(t, table.ToggleSort("phone"), apperrors.ErrBadRequest)
	assert.Equal(t, TableQuery{}, table.Query())
}

func TestBranchTable_NavigationStopsAtBounds(t *testing.T) {
	branches := makeBranches(25)
	table := NewBranchTable(DefaultPageSize)

	table.PreviousPage(branches)
	assert.Equal(t, 0, table.Query().Page)

	table.NextPage(branches)
	table.NextPage(branches)
	table.NextPage(branches)
	assert.Equal(t, 2, table.Query().Page)

	table.PreviousPage(branches)
	assert.Equal(t, 1, table.Query().Page)
}

func TestBranchTable_SetFilterResetsPage(t *testing.T) {
	branches := makeBranches(25)
	table := NewBranchTable(DefaultPageSize)
	table.GoToPage(branches, 2)
	require.Equal(t, 2, table.Query().Page)

	table.SetFilter("Филиал 1")
	assert.Equal(t, 0, table.Query().Page)

	view := table.View(branches)
	assert.Equal(t, 10, view.Pagination.TotalCount, "Филиал 10..19")
}

func TestBranchTable_ViewClampsAfterShrink(t *testing.T) {
	table := NewBranchTable(DefaultPageSize)
	table.GoToPage(makeBranches(25), 2)

	view := table.View(makeBranches(5))
	assert.Equal(t, 0, view.Pagination.Page)
	assert.Equal(t, 0, table.Query().Page)
}

func TestTableQueryFromFilter(t *testing.T) {
	q := TableQueryFromFilter(types.Filter{
		Search: "душ",
		Sort:   map[string]string{"phone": "asc", "city": "desc"},
		Page:   2,
	})

	assert.Equal(t, TableQuery{Search: "душ", SortColumn: "city", SortDirection: SortDesc, Page: 2}, q)
}
