package logformat

import (
	"strconv"
	"strings"
)

type Level struct {
	Code  int
	Name  string
	Icon  string
	Label string
}

// Levels are Monolog's severities (RFC 5424 ordering) in ascending order.
var Levels = []Level{
	{100, "debug", "🐞", "Debug"},
	{200, "info", "ℹ️", "Info"},
	{250, "notice", "🗒", "Notice"},
	{300, "warning", "⚠️", "Warning"},
	{400, "error", "❌", "Error"},
	{500, "critical", "🔥", "Critical"},
	{550, "alert", "🛎", "Alert"},
	{600, "emergency", "🚨", "Emergency"},
}

var levelsByCode = func() map[int]Level {
	m := make(map[int]Level, len(Levels))
	for _, l := range Levels {
		m[l.Code] = l
	}
	return m
}()

// LookupLevel accepts only unsigned base-10 digits without leading zeros that
// spell one of the known codes.
func LookupLevel(raw string) (Level, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" || raw[0] < '1' || raw[0] > '9' {
		return Level{}, false
	}
	code, err := strconv.Atoi(raw)
	if err != nil {
		return Level{}, false
	}
	l, ok := levelsByCode[code]
	return l, ok
}
