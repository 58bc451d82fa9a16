package properties

import (
	"fmt"
	"strings"
)

// Kind discriminates the line variants of a property file.
type Kind int

const (
	KindComment Kind = iota
	KindBlank
	KindProperty
	KindPassthrough
)

// String returns a short name for the kind.
func (k Kind) String() string {
	switch k {
	case KindComment:
		return "comment"
	case KindBlank:
		return "blank"
	case KindProperty:
		return "property"
	case KindPassthrough:
		return "passthrough"
	default:
		return "unknown"
	}
}

// Entry is one line of a property file.
type Entry struct {
	Kind Kind
	// Key and Value are set for KindProperty, verbatim as they appear on
	// either side of the first unescaped delimiter.
	Key   string
	Value string
	// Text is the comment text (without the marker) for KindComment, or the
	// raw line for KindPassthrough.
	Text string
}

// Comment returns a comment entry.
func Comment(text string) Entry {
	return Entry{Kind: KindComment, Text: text}
}

// Blank returns an empty-line entry.
func Blank() Entry {
	return Entry{Kind: KindBlank}
}

// Property returns a key=value entry.
func Property(key, value string) Entry {
	return Entry{Kind: KindProperty, Key: key, Value: value}
}

// Passthrough returns an entry that is written back exactly as given.
func Passthrough(raw string) Entry {
	return Entry{Kind: KindPassthrough, Text: raw}
}

// line renders the entry without its terminator.
func (e Entry) line() string {
	switch e.Kind {
	case KindComment:
		return CommentMarker + " " + e.Text
	case KindProperty:
		return e.Key + Delimiter + e.Value
	case KindPassthrough:
		return e.Text
	default:
		return ""
	}
}

// String renders the entry as it appears in the file.
func (e Entry) String() string {
	return e.line()
}

// Validate reports the first entry that would not survive a
// serialize-then-parse round trip unchanged.
func Validate(entries []Entry) error {
	for i, e := range entries {
		if err := e.validate(); err != nil {
			return fmt.Errorf("entry %d (%s): %w", i, e.Kind, err)
		}
	}
	return nil
}

func (e Entry) validate() error {
	switch e.Kind {
	case KindBlank:
		if e.Key != "" || e.Value != "" || e.Text != "" {
			return fmt.Errorf("blank entry carries text")
		}
	case KindComment:
		if strings.ContainsAny(e.Text, "\n") {
			return fmt.Errorf("comment contains a newline")
		}
		if e.Text != strings.TrimLeft(e.Text, " \t") {
			return fmt.Errorf("comment starts with whitespace")
		}
	case KindProperty:
		if strings.TrimSpace(e.Key) == "" {
			return fmt.Errorf("empty key")
		}
		if strings.HasPrefix(e.Key, CommentMarker) {
			return fmt.Errorf("key %q starts with the comment marker", e.Key)
		}
		if indexDelimiter(e.Key) >= 0 {
			return fmt.Errorf("key %q contains an unescaped delimiter", e.Key)
		}
		if trailingBackslashes(e.Key)%2 == 1 {
			return fmt.Errorf("key %q escapes the delimiter", e.Key)
		}
		if strings.ContainsAny(e.Key+e.Value, "\n") {
			return fmt.Errorf("property %q contains a newline", e.Key)
		}
	case KindPassthrough:
		if strings.ContainsAny(e.Text, "\n") {
			return fmt.Errorf("passthrough contains a newline")
		}
		if kindOf(e.Text) != KindPassthrough {
			return fmt.Errorf("passthrough %q parses as %s", e.Text, kindOf(e.Text))
		}
	default:
		return fmt.Errorf("unknown kind %d", e.Kind)
	}
	return nil
}
