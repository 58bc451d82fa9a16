package properties

import (
	"bytes"
	"strings"
)

const (
	// CommentMarker starts a comment line.
	CommentMarker = "#"
	// Delimiter separates a property key from its value.
	Delimiter = "="
)

// Parse splits data into entries, one per line. A final line without a
// trailing newline is still an entry. Parse never fails: lines that are not
// comments, blanks, or key=value pairs become passthrough entries.
func Parse(data []byte) Entries {
	var entries Entries
	rest := string(data)
	for rest != "" {
		line, tail, found := strings.Cut(rest, "\n")
		entries = append(entries, parseLine(line))
		if !found {
			break
		}
		rest = tail
	}
	return entries
}

// ParseString is Parse for string input.
func ParseString(s string) Entries {
	return Parse([]byte(s))
}

// Serialize renders entries in order, each terminated by a newline.
func Serialize(entries []Entry) []byte {
	var b bytes.Buffer
	for _, e := range entries {
		b.WriteString(e.line())
		b.WriteByte('\n')
	}
	return b.Bytes()
}

func parseLine(line string) Entry {
	switch kindOf(line) {
	case KindBlank:
		return Blank()
	case KindComment:
		text := strings.TrimPrefix(line, CommentMarker)
		return Comment(strings.TrimLeft(text, " \t"))
	case KindProperty:
		i := indexDelimiter(line)
		return Property(line[:i], line[i+len(Delimiter):])
	default:
		return Passthrough(line)
	}
}

func kindOf(line string) Kind {
	switch {
	case strings.TrimSpace(line) == "":
		return KindBlank
	case strings.HasPrefix(line, CommentMarker):
		return KindComment
	}
	if i := indexDelimiter(line); i >= 0 && strings.TrimSpace(line[:i]) != "" {
		return KindProperty
	}
	return KindPassthrough
}

// indexDelimiter returns the index of the first delimiter not escaped by an
// odd run of backslashes, or -1.
func indexDelimiter(s string) int {
	offset := 0
	for {
		i := strings.Index(s[offset:], Delimiter)
		if i < 0 {
			return -1
		}
		at := offset + i
		if trailingBackslashes(s[:at])%2 == 0 {
			return at
		}
		offset = at + len(Delimiter)
	}
}

func trailingBackslashes(s string) int {
	n := 0
	for i := len(s) - 1; i >= 0 && s[i] == '\\'; i-- {
		n++
	}
	return n
}
