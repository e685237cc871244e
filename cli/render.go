package main

import (
	"fmt"
	"html"
	"html/template"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/usecakework/monolog-viewer/lib/logformat"
	"github.com/usecakework/monolog-viewer/lib/types"
)

// text turns a pre-escaped cell back into terminal text.
func text(h template.HTML) string {
	return html.UnescapeString(string(h))
}

func renderLogs(w io.Writer, vm *types.TableViewModel) {
	if vm.Unavailable {
		fmt.Fprintln(w, "The log table is unavailable right now.")
		return
	}
	if vm.NoItems || len(vm.Rows) == 0 {
		fmt.Fprintln(w, "No logs available.")
		return
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.AppendHeader(table.Row{"Level", "Date", "Time", "Message", "Channel", "App"})
	for _, row := range vm.Rows {
		level := strings.TrimSpace(text(row.Level.Icon) + " " + text(row.Level.Label))
		t.AppendRow(table.Row{
			level,
			text(row.Time.Date),
			text(row.Time.Time),
			text(row.Message),
			text(row.Channel),
			text(row.App),
		})
	}
	t.Render()

	p := vm.Pagination
	fmt.Fprintf(w, "page %d of %d (%d items)\n", p.CurrentPage, p.TotalPages, p.TotalItems)
}

func renderLevels(w io.Writer) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.AppendHeader(table.Row{"Code", "Name", "Icon", "Label"})
	for _, l := range logformat.Levels {
		t.AppendRow(table.Row{l.Code, l.Name, l.Icon, l.Label})
	}
	t.Render()
}
