package logstore

import (
	"math"
	"strings"

	log "github.com/sirupsen/logrus"
)

const (
	DefaultOrderBy = "time"
	DefaultOrder   = "asc"
)

// Columns in display order. These are the only values that may appear in an
// ORDER BY clause.
var Columns = []string{"level", "time", "message", "channel", "app"}

var orderColumns = map[string]string{
	"level":   "`level`",
	"time":    "`time`",
	"message": "`message`",
	"channel": "`channel`",
	"app":     "`app`",
}

var orderDirections = map[string]string{
	"asc":  "ASC",
	"desc": "DESC",
}

type Limits struct {
	PerPage    int
	MaxPerPage int
}

var DefaultLimits = Limits{PerPage: 100, MaxPerPage: 500}

type Query struct {
	OrderBy string
	Order   string
	Page    int
	PerPage int
}

// Normalize maps every field onto an allowed value. Unknown sort columns and
// directions fall back to the defaults instead of failing the request.
func (q Query) Normalize(limits Limits) Query {
	if limits.MaxPerPage <= 0 {
		limits.MaxPerPage = DefaultLimits.MaxPerPage
	}
	if limits.PerPage <= 0 || limits.PerPage > limits.MaxPerPage {
		limits.PerPage = min(DefaultLimits.PerPage, limits.MaxPerPage)
	}

	orderBy := strings.ToLower(strings.TrimSpace(q.OrderBy))
	if _, ok := orderColumns[orderBy]; !ok {
		if q.OrderBy != "" {
			log.WithField("orderby", q.OrderBy).Debug("Unknown sort column, using default")
		}
		orderBy = DefaultOrderBy
	}

	order := strings.ToLower(strings.TrimSpace(q.Order))
	if _, ok := orderDirections[order]; !ok {
		if q.Order != "" {
			log.WithField("order", q.Order).Debug("Unknown sort direction, using default")
		}
		order = DefaultOrder
	}

	page := q.Page
	if page < 1 {
		page = 1
	}

	perPage := q.PerPage
	if perPage <= 0 {
		perPage = limits.PerPage
	}
	if perPage > limits.MaxPerPage {
		perPage = limits.MaxPerPage
	}
	// keeps Offset from overflowing
	if maxPage := math.MaxInt / perPage; page > maxPage {
		page = maxPage
	}

	return Query{OrderBy: orderBy, Order: order, Page: page, PerPage: perPage}
}

func (q Query) Offset() int {
	return (q.Page - 1) * q.PerPage
}

// orderClause must only be called on a normalized query.
func (q Query) orderClause() string {
	col, ok := orderColumns[q.OrderBy]
	if !ok {
		col = orderColumns[DefaultOrderBy]
	}
	dir, ok := orderDirections[q.Order]
	if !ok {
		dir = orderDirections[DefaultOrder]
	}
	return "ORDER BY " + col + " " + dir
}
