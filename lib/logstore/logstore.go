package logstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"regexp"

	"github.com/go-sql-driver/mysql"
	"github.com/prometheus/client_golang/prometheus"
	log "github.com/sirupsen/logrus"
	"github.com/usecakework/monolog-viewer/lib/types"
)

var (
	ErrStoreUnavailable = errors.New("log store unavailable")
	ErrInvalidTable     = errors.New("invalid log table prefix")
)

// MySQL error number for a missing table.
const errNoSuchTable = 1146

var tablePrefix = regexp.MustCompile(`^[A-Za-z0-9_]*$`)

type Page struct {
	Entries []types.LogEntry
	Total   int
}

// Reader is the read side of the log table.
type Reader interface {
	FetchPage(ctx context.Context, q Query) (Page, error)
}

type MySQLStore struct {
	db     *sql.DB
	table  string
	limits Limits
}

// New returns a reader over `<prefix>log`, the table Monolog's MySQL handler writes.
func New(db *sql.DB, prefix string, limits Limits) (*MySQLStore, error) {
	if !tablePrefix.MatchString(prefix) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidTable, prefix)
	}
	return &MySQLStore{
		db:     db,
		table:  "`" + prefix + "log`",
		limits: limits,
	}, nil
}

func (s *MySQLStore) Limits() Limits {
	return s.limits
}

// FetchPage returns the entries of one page and the total row count. The query
// is normalized again here so nothing outside the allow-list reaches the SQL.
func (s *MySQLStore) FetchPage(ctx context.Context, q Query) (Page, error) {
	q = q.Normalize(s.limits)

	conn, err := s.db.Conn(ctx)
	if err != nil {
		queriesTotal.WithLabelValues("connect", "error").Inc()
		return Page{}, s.unavailable(err)
	}
	defer conn.Close()

	total, err := s.count(ctx, conn)
	if err != nil {
		return Page{}, err
	}

	if q.Offset() >= total {
		return Page{Total: total}, nil
	}

	entries, err := s.entries(ctx, conn, q)
	if err != nil {
		return Page{}, err
	}

	return Page{Entries: entries, Total: total}, nil
}

func (s *MySQLStore) Ping(ctx context.Context) error {
	if err := s.db.PingContext(ctx); err != nil {
		return s.unavailable(err)
	}
	return nil
}

func (s *MySQLStore) count(ctx context.Context, conn *sql.Conn) (int, error) {
	timer := prometheus.NewTimer(queryDuration.WithLabelValues("count"))
	defer timer.ObserveDuration()

	var total int
	err := conn.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+s.table).Scan(&total)
	if err != nil {
		queriesTotal.WithLabelValues("count", status(err)).Inc()
		return 0, s.unavailable(err)
	}
	queriesTotal.WithLabelValues("count", "ok").Inc()
	return total, nil
}

func (s *MySQLStore) entries(ctx context.Context, conn *sql.Conn, q Query) ([]types.LogEntry, error) {
	timer := prometheus.NewTimer(queryDuration.WithLabelValues("page"))
	defer timer.ObserveDuration()

	query := fmt.Sprintf("SELECT `level`, `time`, `message`, `channel`, `app` FROM %s %s LIMIT ? OFFSET ?", s.table, q.orderClause())
	rows, err := conn.QueryContext(ctx, query, q.PerPage, q.Offset())
	if err != nil {
		queriesTotal.WithLabelValues("page", status(err)).Inc()
		return nil, s.unavailable(err)
	}
	defer rows.Close()

	entries := make([]types.LogEntry, 0, q.PerPage)
	for rows.Next() {
		var level, ts, message, channel, app sql.NullString
		if err := rows.Scan(&level, &ts, &message, &channel, &app); err != nil {
			queriesTotal.WithLabelValues("page", "error").Inc()
			return nil, s.unavailable(err)
		}
		entries = append(entries, types.LogEntry{
			Level:   level.String,
			Time:    ts.String,
			Message: message.String,
			Channel: channel.String,
			App:     app.String,
		})
	}
	if err := rows.Err(); err != nil {
		queriesTotal.WithLabelValues("page", "error").Inc()
		return nil, s.unavailable(err)
	}

	queriesTotal.WithLabelValues("page", "ok").Inc()
	return entries, nil
}

func (s *MySQLStore) unavailable(err error) error {
	if isMissingTable(err) {
		log.WithField("table", s.table).Error("Log table does not exist")
	} else {
		log.WithError(err).Error("Log store query failed")
	}
	return fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
}

func isMissingTable(err error) bool {
	var mysqlErr *mysql.MySQLError
	return errors.As(err, &mysqlErr) && mysqlErr.Number == errNoSuchTable
}

func status(err error) string {
	if isMissingTable(err) {
		return "missing_table"
	}
	return "error"
}
