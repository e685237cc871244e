package listtable

import (
	"context"
	"embed"
	"html/template"
	"io"

	log "github.com/sirupsen/logrus"
	"github.com/usecakework/monolog-viewer/lib/logformat"
	"github.com/usecakework/monolog-viewer/lib/logstore"
	"github.com/usecakework/monolog-viewer/lib/types"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

var pageTemplate = template.Must(template.ParseFS(templateFS, "templates/*.tmpl"))

// ListTable is what the admin page needs from a table.
type ListTable interface {
	Columns() []types.Column
	SortableColumns() map[string]bool
	PreparePage(ctx context.Context, q logstore.Query) error
	Render(w io.Writer) error
}

type Options struct {
	Title         string
	BasePath      string
	StylesheetURL string
	Limits        logstore.Limits
}

// Table is built per request; the reader and formatter it wraps are shared.
type Table struct {
	store     logstore.Reader
	formatter *logformat.Formatter
	opts      Options
	vm        types.TableViewModel
}

var _ ListTable = (*Table)(nil)

func New(store logstore.Reader, formatter *logformat.Formatter, opts Options) *Table {
	if opts.Title == "" {
		opts.Title = "Monolog Viewer"
	}
	if opts.Limits == (logstore.Limits{}) {
		opts.Limits = logstore.DefaultLimits
	}
	return &Table{
		store:     store,
		formatter: formatter,
		opts:      opts,
		vm:        BuildViewModel(DefaultColumns(), nil, 0, 1, opts.Limits.PerPage),
	}
}

func (t *Table) Columns() []types.Column {
	return DefaultColumns()
}

func (t *Table) SortableColumns() map[string]bool {
	sortable := make(map[string]bool)
	for _, c := range t.Columns() {
		if c.Sortable {
			sortable[c.Key] = true
		}
	}
	return sortable
}

// PreparePage loads and formats one page. A store failure still leaves a
// renderable "no logs available" view; the error is returned for the caller to
// log or map to a status code.
func (t *Table) PreparePage(ctx context.Context, q logstore.Query) error {
	q = q.Normalize(t.opts.Limits)

	page, err := t.store.FetchPage(ctx, q)
	if err != nil {
		log.WithError(err).Warn("Could not load log page")
		t.vm = BuildViewModel(t.Columns(), nil, 0, 1, q.PerPage)
		t.vm.Unavailable = true
		addLinks(&t.vm, t.opts.BasePath, q)
		return err
	}

	rows := t.formatter.FormatEntries(page.Entries)
	t.vm = BuildViewModel(t.Columns(), rows, page.Total, q.Page, q.PerPage)
	addLinks(&t.vm, t.opts.BasePath, q)
	return nil
}

func (t *Table) ViewModel() types.TableViewModel {
	return t.vm
}

type pageData struct {
	Title         string
	StylesheetURL string
	BasePath      string
	types.TableViewModel
}

func (t *Table) Render(w io.Writer) error {
	return pageTemplate.ExecuteTemplate(w, "page", pageData{
		Title:          t.opts.Title,
		StylesheetURL:  t.opts.StylesheetURL,
		BasePath:       t.opts.BasePath,
		TableViewModel: t.vm,
	})
}
