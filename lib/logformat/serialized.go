package logformat

import (
	"strconv"
	"strings"

	"github.com/elliotchance/phpserialize"
)

// IsSerialized reports whether msg is a PHP serialize() payload whose top-level
// value is an array or object. Serialized scalars, including b:0;, are not
// treated as payloads and render as ordinary text.
func IsSerialized(msg string) (serialized bool) {
	if len(msg) < 6 || !strings.HasSuffix(msg, "}") {
		return false
	}

	// log messages are arbitrary text and the decoder can panic on truncated input
	defer func() {
		if recover() != nil {
			serialized = false
		}
	}()

	switch msg[0] {
	case 'a':
		return decodesAsArray(msg)
	case 'O':
		// an object body has the same layout as an array body
		rest, ok := className(msg[1:])
		return ok && decodesAsArray("a"+rest)
	case 'C':
		return isCustomSerialized(msg[1:])
	}
	return false
}

func decodesAsArray(msg string) bool {
	_, err := phpserialize.UnmarshalAssociativeArray([]byte(msg))
	return err == nil
}

// isCustomSerialized checks `:<n>:"<class>":<len>:{<len bytes>}`, the
// Serializable form the decoder does not handle. Its payload is opaque.
func isCustomSerialized(s string) bool {
	rest, ok := className(s)
	if !ok || !strings.HasPrefix(rest, ":") {
		return false
	}
	n, rest, ok := length(rest[1:])
	if !ok || !strings.HasPrefix(rest, ":{") {
		return false
	}
	return len(rest) == n+3
}

// className consumes `:<n>:"<n bytes>"` and returns what follows.
func className(s string) (string, bool) {
	if !strings.HasPrefix(s, ":") {
		return "", false
	}
	n, rest, ok := length(s[1:])
	if !ok || !strings.HasPrefix(rest, `:"`) || len(rest) < n+3 || rest[n+2] != '"' {
		return "", false
	}
	return rest[n+3:], true
}

// length reads a leading non-negative decimal.
func length(s string) (int, string, bool) {
	i := 0
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	if i == 0 {
		return 0, s, false
	}
	n, err := strconv.Atoi(s[:i])
	if err != nil {
		return 0, s, false
	}
	return n, s[i:], true
}
