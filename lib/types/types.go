package types

import "html/template"

// LogEntry is one row of the Monolog log table. Values are kept as scanned so a
// malformed level or timestamp still reaches the formatter instead of failing the
// whole page.
type LogEntry struct {
	Level   string `json:"level"`
	Time    string `json:"time"`
	Message string `json:"message"`
	Channel string `json:"channel"`
	App     string `json:"app"`
}

// LevelCell is the rendered severity. Empty when the level is unknown.
type LevelCell struct {
	Code  string        `json:"code"`
	Class string        `json:"class"`
	Icon  template.HTML `json:"icon"`
	Label template.HTML `json:"label"`
}

type TimeCell struct {
	Date template.HTML `json:"date"`
	Time template.HTML `json:"time"`
}

// DisplayRow cells are already HTML-escaped.
type DisplayRow struct {
	Level   LevelCell     `json:"level"`
	Time    TimeCell      `json:"time"`
	Message template.HTML `json:"message"`
	Masked  bool          `json:"masked"`
	Channel template.HTML `json:"channel"`
	App     template.HTML `json:"app"`
}

type Column struct {
	Key      string `json:"key"`
	Label    string `json:"label"`
	Sortable bool   `json:"sortable"`
	// set by the presenter
	SortURL  string `json:"sort_url,omitempty"`
	SortedBy string `json:"sorted,omitempty"`
}

type Pagination struct {
	TotalItems  int `json:"total_items"`
	PerPage     int `json:"per_page"`
	CurrentPage int `json:"current_page"`
	TotalPages  int `json:"total_pages"`

	FirstURL string `json:"first_url,omitempty"`
	PrevURL  string `json:"prev_url,omitempty"`
	NextURL  string `json:"next_url,omitempty"`
	LastURL  string `json:"last_url,omitempty"`
}

type TableViewModel struct {
	Columns     []Column     `json:"columns"`
	Rows        []DisplayRow `json:"rows"`
	Pagination  Pagination   `json:"pagination"`
	OrderBy     string       `json:"orderby"`
	Order       string       `json:"order"`
	NoItems     bool         `json:"no_items"`
	Unavailable bool         `json:"unavailable"`
}

type GetLogsRequest struct {
	OrderBy string `json:"orderby"`
	Order   string `json:"order"`
	Page    int    `json:"page"`
	PerPage int    `json:"per_page"`
}
