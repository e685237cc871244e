package listtable

import (
	"net/url"
	"strconv"

	"github.com/usecakework/monolog-viewer/lib/logstore"
	"github.com/usecakework/monolog-viewer/lib/types"
)

var columnLabels = map[string]string{
	"level":   "Log Level",
	"time":    "Date / Time",
	"message": "Message",
	"channel": "Channel",
	"app":     "App",
}

// DefaultColumns returns the five log columns in display order, all sortable.
func DefaultColumns() []types.Column {
	columns := make([]types.Column, 0, len(logstore.Columns))
	for _, key := range logstore.Columns {
		columns = append(columns, types.Column{Key: key, Label: columnLabels[key], Sortable: true})
	}
	return columns
}

// BuildViewModel aggregates already formatted rows and the page bounds.
func BuildViewModel(columns []types.Column, rows []types.DisplayRow, totalCount, page, perPage int) types.TableViewModel {
	if perPage < 1 {
		perPage = 1
	}
	if totalCount < 0 {
		totalCount = 0
	}
	if rows == nil {
		rows = []types.DisplayRow{}
	}

	totalPages := TotalPages(totalCount, perPage)
	cols := make([]types.Column, len(columns))
	copy(cols, columns)

	return types.TableViewModel{
		Columns: cols,
		Rows:    rows,
		Pagination: types.Pagination{
			TotalItems:  totalCount,
			PerPage:     perPage,
			CurrentPage: clamp(page, 1, max(1, totalPages)),
			TotalPages:  totalPages,
		},
		NoItems: totalCount == 0,
	}
}

// TotalPages is ceil(total/perPage); zero rows means zero pages.
func TotalPages(total, perPage int) int {
	if total <= 0 || perPage <= 0 {
		return 0
	}
	return (total + perPage - 1) / perPage
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// PageURL links to one page of a normalized query. The active sort and page
// size are always carried so navigation does not lose state.
func PageURL(basePath string, q logstore.Query, page int) string {
	v := url.Values{}
	v.Set("orderby", q.OrderBy)
	v.Set("order", q.Order)
	v.Set("per_page", strconv.Itoa(q.PerPage))
	if page > 1 {
		v.Set("page", strconv.Itoa(page))
	}
	return basePath + "?" + v.Encode()
}

func addLinks(vm *types.TableViewModel, basePath string, q logstore.Query) {
	vm.OrderBy = q.OrderBy
	vm.Order = q.Order

	link := func(orderBy, order string, page int) string {
		return PageURL(basePath, logstore.Query{OrderBy: orderBy, Order: order, PerPage: q.PerPage}, page)
	}

	for i := range vm.Columns {
		col := &vm.Columns[i]
		if !col.Sortable {
			continue
		}
		next := "asc"
		if col.Key == q.OrderBy {
			col.SortedBy = q.Order
			if q.Order == "asc" {
				next = "desc"
			}
		}
		col.SortURL = link(col.Key, next, 1)
	}

	p := &vm.Pagination
	if p.CurrentPage > 1 {
		p.FirstURL = link(q.OrderBy, q.Order, 1)
		p.PrevURL = link(q.OrderBy, q.Order, p.CurrentPage-1)
	}
	if p.CurrentPage < p.TotalPages {
		p.NextURL = link(q.OrderBy, q.Order, p.CurrentPage+1)
		p.LastURL = link(q.OrderBy, q.Order, p.TotalPages)
	}
}
