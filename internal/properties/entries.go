package properties

import "strings"

// Entries is an ordered property file. The helpers below are what modifiers
// use to edit a parsed file in place.
type Entries []Entry

// Append adds entries at the end.
func (es *Entries) Append(entries ...Entry) {
	*es = append(*es, entries...)
}

// Find returns the index of the first property whose key matches, or -1.
// Keys are compared with surrounding whitespace trimmed.
func (es Entries) Find(key string) int {
	key = strings.TrimSpace(key)
	for i, e := range es {
		if e.Kind == KindProperty && strings.TrimSpace(e.Key) == key {
			return i
		}
	}
	return -1
}

// Get returns the value of the first property with the given key, trimmed.
func (es Entries) Get(key string) (string, bool) {
	i := es.Find(key)
	if i < 0 {
		return "", false
	}
	return strings.TrimSpace(es[i].Value), true
}

// Upsert replaces the value of the first property with the given key in
// place, or appends a new property when the key is absent.
func (es *Entries) Upsert(key, value string) {
	if i := es.Find(key); i >= 0 {
		(*es)[i].Value = value
		return
	}
	es.Append(Property(key, value))
}

// Remove deletes every property with the given key and reports whether any
// was present.
func (es *Entries) Remove(key string) bool {
	key = strings.TrimSpace(key)
	kept := (*es)[:0]
	removed := false
	for _, e := range *es {
		if e.Kind == KindProperty && strings.TrimSpace(e.Key) == key {
			removed = true
			continue
		}
		kept = append(kept, e)
	}
	*es = kept
	return removed
}

// Clone returns a copy that shares no backing array with es.
func (es Entries) Clone() Entries {
	if es == nil {
		return nil
	}
	out := make(Entries, len(es))
	copy(out, es)
	return out
}
