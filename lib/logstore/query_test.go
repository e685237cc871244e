package logstore

import (
	"math"
	"testing"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   Query
		want Query
	}{
		{"defaults", Query{}, Query{OrderBy: "time", Order: "asc", Page: 1, PerPage: 100}},
		{"valid", Query{OrderBy: "channel", Order: "desc", Page: 4, PerPage: 20}, Query{OrderBy: "channel", Order: "desc", Page: 4, PerPage: 20}},
		{"case", Query{OrderBy: " App ", Order: "DESC", Page: 1, PerPage: 1}, Query{OrderBy: "app", Order: "desc", Page: 1, PerPage: 1}},
		{"unknown column", Query{OrderBy: "id"}, Query{OrderBy: "time", Order: "asc", Page: 1, PerPage: 100}},
		{"injection", Query{OrderBy: "time DESC, (SELECT SLEEP(5))", Order: "asc; --"}, Query{OrderBy: "time", Order: "asc", Page: 1, PerPage: 100}},
		{"negative page", Query{Page: -3}, Query{OrderBy: "time", Order: "asc", Page: 1, PerPage: 100}},
		{"huge per page", Query{PerPage: 100000}, Query{OrderBy: "time", Order: "asc", Page: 1, PerPage: 500}},
		{"negative per page", Query{PerPage: -1}, Query{OrderBy: "time", Order: "asc", Page: 1, PerPage: 100}},
		{"huge page", Query{Page: math.MaxInt}, Query{OrderBy: "time", Order: "asc", Page: math.MaxInt / 100, PerPage: 100}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.in.Normalize(DefaultLimits); got != tt.want {
				t.Errorf("Normalize() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestNormalizeCustomLimits(t *testing.T) {
	got := Query{}.Normalize(Limits{PerPage: 25, MaxPerPage: 50})
	if got.PerPage != 25 {
		t.Errorf("PerPage = %d, want 25", got.PerPage)
	}
	got = Query{PerPage: 80}.Normalize(Limits{PerPage: 25, MaxPerPage: 50})
	if got.PerPage != 50 {
		t.Errorf("PerPage = %d, want 50", got.PerPage)
	}
	// default above max is pulled down
	got = Query{}.Normalize(Limits{PerPage: 200, MaxPerPage: 50})
	if got.PerPage != 50 {
		t.Errorf("PerPage = %d, want 50", got.PerPage)
	}
}

func TestOffset(t *testing.T) {
	q := Query{Page: 3, PerPage: 100}
	if q.Offset() != 200 {
		t.Errorf("Offset() = %d, want 200", q.Offset())
	}
}

func TestOffsetNeverOverflows(t *testing.T) {
	for _, perPage := range []int{1, 7, 50, 100, 500} {
		q := Query{Page: math.MaxInt, PerPage: perPage}.Normalize(DefaultLimits)
		if q.Offset() < 0 {
			t.Errorf("per_page %d: Offset() = %d", perPage, q.Offset())
		}
	}
}

func TestOrderClauseNeverUsesRawInput(t *testing.T) {
	q := Query{OrderBy: "message`; DROP TABLE wp_log; --", Order: "desc"}
	if got := q.orderClause(); got != "ORDER BY `time` DESC" {
		t.Errorf("orderClause() = %q", got)
	}
}
