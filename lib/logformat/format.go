package logformat

import (
	"html"
	"html/template"
	"strconv"
	"strings"
	"time"

	"github.com/usecakework/monolog-viewer/lib/types"
)

const (
	SerializedPlaceholder = "-- serialized data --"
	TimePlaceholder       = "-"

	dateLayout = "02.01.2006"
	timeLayout = "15:04:05"
)

// Formatter turns stored rows into escaped display rows. It holds no mutable
// state and is safe to share between requests.
type Formatter struct {
	loc *time.Location
}

// New returns a formatter rendering timestamps in loc, or UTC if loc is nil.
func New(loc *time.Location) *Formatter {
	if loc == nil {
		loc = time.UTC
	}
	return &Formatter{loc: loc}
}

func (f *Formatter) FormatEntry(entry types.LogEntry) types.DisplayRow {
	message, masked := f.Message(entry.Message)
	return types.DisplayRow{
		Level:   f.Level(entry.Level),
		Time:    f.Time(entry.Time),
		Message: message,
		Masked:  masked,
		Channel: escape(entry.Channel),
		App:     escape(entry.App),
	}
}

func (f *Formatter) FormatEntries(entries []types.LogEntry) []types.DisplayRow {
	rows := make([]types.DisplayRow, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, f.FormatEntry(e))
	}
	return rows
}

func (f *Formatter) Level(raw string) types.LevelCell {
	l, ok := LookupLevel(raw)
	if !ok {
		return types.LevelCell{}
	}
	return types.LevelCell{
		Code:  strconv.Itoa(l.Code),
		Class: "monolog-" + l.Name,
		Icon:  template.HTML(l.Icon),
		Label: template.HTML(l.Label),
	}
}

func (f *Formatter) Time(raw string) types.TimeCell {
	secs, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		return types.TimeCell{Date: TimePlaceholder, Time: TimePlaceholder}
	}
	t := time.Unix(secs, 0).In(f.loc)
	return types.TimeCell{
		Date: template.HTML(t.Format(dateLayout)),
		Time: template.HTML(t.Format(timeLayout)),
	}
}

// Message masks serialized payloads and escapes everything else.
func (f *Formatter) Message(raw string) (template.HTML, bool) {
	if IsSerialized(raw) {
		return SerializedPlaceholder, true
	}
	return escape(raw), false
}

func escape(s string) template.HTML {
	return template.HTML(html.EscapeString(s))
}
