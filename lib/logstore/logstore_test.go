package logstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"
)

var entryColumns = []string{"level", "time", "message", "channel", "app"}

func newMockStore(t *testing.T) (*MySQLStore, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	store, err := New(db, "wp_", DefaultLimits)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return store, mock
}

func pageSQL(order string) string {
	return "SELECT `level`, `time`, `message`, `channel`, `app` FROM `wp_log` " + order + " LIMIT ? OFFSET ?"
}

func expectCount(mock sqlmock.Sqlmock, total int) {
	mock.ExpectQuery("SELECT COUNT(*) FROM `wp_log`").
		WillReturnRows(sqlmock.NewRows([]string{"COUNT(*)"}).AddRow(total))
}

func TestFetchPageLastPage(t *testing.T) {
	store, mock := newMockStore(t)

	rows := sqlmock.NewRows(entryColumns)
	for i := 0; i < 50; i++ {
		rows.AddRow(200, 1700000000+i, fmt.Sprintf("message %d", i), "cron", "backup")
	}

	expectCount(mock, 250)
	mock.ExpectQuery(pageSQL("ORDER BY `time` ASC")).
		WithArgs(100, 200).
		WillReturnRows(rows)

	page, err := store.FetchPage(context.Background(), Query{Page: 3, PerPage: 100})
	if err != nil {
		t.Fatalf("FetchPage: %v", err)
	}
	if page.Total != 250 {
		t.Errorf("Total = %d, want 250", page.Total)
	}
	if len(page.Entries) != 50 {
		t.Errorf("len(Entries) = %d, want 50", len(page.Entries))
	}
	if got := page.Entries[0]; got.Level != "200" || got.Time != "1700000000" || got.Channel != "cron" {
		t.Errorf("first entry = %+v", got)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestFetchPageRejectsUnknownSortColumn(t *testing.T) {
	tests := []struct {
		orderBy string
		order   string
		clause  string
	}{
		{"time; DROP TABLE wp_log", "asc", "ORDER BY `time` ASC"},
		{"id", "desc", "ORDER BY `time` DESC"},
		{"LEVEL", "DESC", "ORDER BY `level` DESC"},
		{"message", "sideways", "ORDER BY `message` ASC"},
		{"channel", "desc, (SELECT 1)", "ORDER BY `channel` ASC"},
		{"", "", "ORDER BY `time` ASC"},
	}

	for _, tt := range tests {
		t.Run(tt.orderBy+"/"+tt.order, func(t *testing.T) {
			store, mock := newMockStore(t)
			expectCount(mock, 1)
			mock.ExpectQuery(pageSQL(tt.clause)).
				WithArgs(100, 0).
				WillReturnRows(sqlmock.NewRows(entryColumns))

			page, err := store.FetchPage(context.Background(), Query{OrderBy: tt.orderBy, Order: tt.order})
			if err != nil {
				t.Fatalf("FetchPage: %v", err)
			}
			if len(page.Entries) != 0 || page.Total != 1 {
				t.Errorf("page = %+v", page)
			}
			if err := mock.ExpectationsWereMet(); err != nil {
				t.Error(err)
			}
		})
	}
}

func TestFetchPageEmptyTable(t *testing.T) {
	store, mock := newMockStore(t)
	expectCount(mock, 0)

	page, err := store.FetchPage(context.Background(), Query{})
	if err != nil {
		t.Fatalf("FetchPage: %v", err)
	}
	if len(page.Entries) != 0 || page.Total != 0 {
		t.Errorf("page = %+v, want empty", page)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestFetchPageHugePage(t *testing.T) {
	store, mock := newMockStore(t)
	expectCount(mock, 250)

	page, err := store.FetchPage(context.Background(), Query{Page: math.MaxInt, PerPage: 100})
	if err != nil {
		t.Fatalf("FetchPage: %v", err)
	}
	if len(page.Entries) != 0 || page.Total != 250 {
		t.Errorf("page = %+v, want no entries and total 250", page)
	}
	// no page query is issued past the end
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestFetchPageNullColumns(t *testing.T) {
	store, mock := newMockStore(t)

	expectCount(mock, 1)
	mock.ExpectQuery(pageSQL("ORDER BY `level` DESC")).
		WithArgs(10, 0).
		WillReturnRows(sqlmock.NewRows(entryColumns).AddRow(nil, nil, "hello", nil, "app"))

	page, err := store.FetchPage(context.Background(), Query{OrderBy: "level", Order: "desc", PerPage: 10})
	if err != nil {
		t.Fatalf("FetchPage: %v", err)
	}
	got := page.Entries[0]
	if got.Level != "" || got.Time != "" || got.Message != "hello" || got.App != "app" {
		t.Errorf("entry = %+v", got)
	}
}

func TestFetchPageMissingTable(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectQuery("SELECT COUNT(*) FROM `wp_log`").
		WillReturnError(&mysql.MySQLError{Number: 1146, Message: "Table 'wp.wp_log' doesn't exist"})

	_, err := store.FetchPage(context.Background(), Query{})
	if !errors.Is(err, ErrStoreUnavailable) {
		t.Fatalf("err = %v, want ErrStoreUnavailable", err)
	}
	if !isMissingTable(err) {
		t.Errorf("expected the mysql error to stay inspectable, got %v", err)
	}
}

func TestFetchPageQueryFailure(t *testing.T) {
	store, mock := newMockStore(t)

	expectCount(mock, 10)
	mock.ExpectQuery(pageSQL("ORDER BY `time` ASC")).
		WithArgs(100, 0).
		WillReturnError(sql.ErrConnDone)

	_, err := store.FetchPage(context.Background(), Query{})
	if !errors.Is(err, ErrStoreUnavailable) {
		t.Fatalf("err = %v, want ErrStoreUnavailable", err)
	}
	if !errors.Is(err, sql.ErrConnDone) {
		t.Errorf("err = %v, want wrapped sql.ErrConnDone", err)
	}
}

func TestNewRejectsBadPrefix(t *testing.T) {
	for _, prefix := range []string{"wp`; DROP", "wp-", "wp log"} {
		if _, err := New(nil, prefix, DefaultLimits); !errors.Is(err, ErrInvalidTable) {
			t.Errorf("New(%q) err = %v, want ErrInvalidTable", prefix, err)
		}
	}
	if _, err := New(nil, "", DefaultLimits); err != nil {
		t.Errorf("empty prefix should be allowed: %v", err)
	}
}
