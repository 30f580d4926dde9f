// Package querystring builds and parses URL query strings the way browser
// code does with encodeURIComponent.
package querystring

import (
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"
)

// Entry is one key/value pair. Values are stringified: nil becomes "null",
// slices are comma joined and numbers use their shortest form.
type Entry struct {
	Key   string
	Value any
}

// Options configures FromEntries.
type Options struct {
	// Raw disables value encoding.
	Raw bool

	// Prefix is prepended to the result. Nil means "?".
	Prefix *string
}

// NoPrefix is an Options.Prefix producing a bare query string.
var NoPrefix = new(string)

func (o Options) prefix() string {
	if o.Prefix == nil {
		return "?"
	}
	return *o.Prefix
}

// FromEntries joins entries as key=value pairs in order. Keys are never
// encoded; values are unless opts.Raw is set.
func FromEntries(entries []Entry, opts Options) string {
	parts := make([]string, 0, len(entries))
	for _, e := range entries {
		v := stringify(e.Value)
		if !opts.Raw {
			v = EscapeComponent(v)
		}
		parts = append(parts, e.Key+"="+v)
	}
	return opts.prefix() + strings.Join(parts, "&")
}

// FromMap is FromEntries over m with keys in lexical order.
func FromMap(m map[string]any, opts Options) string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	entries := make([]Entry, len(keys))
	for i, k := range keys {
		entries[i] = Entry{Key: k, Value: m[k]}
	}
	return FromEntries(entries, opts)
}

// Parse splits a query string into its pairs in order. A leading "?" is
// ignored, a pair without "=" has an empty value and anything after a
// second "=" is dropped. Values that fail to decode are kept raw.
func Parse(qs string) []Entry {
	qs = strings.TrimPrefix(qs, "?")
	pairs := strings.Split(qs, "&")

	out := make([]Entry, 0, len(pairs))
	for _, pair := range pairs {
		parts := strings.Split(pair, "=")
		value := ""
		if len(parts) > 1 {
			value = parts[1]
			if decoded, err := url.PathUnescape(value); err == nil {
				value = decoded
			}
		}
		out = append(out, Entry{Key: parts[0], Value: value})
	}
	return out
}

// ToMap parses qs into a map. Later keys win.
func ToMap(qs string) map[string]string {
	out := make(map[string]string)
	for _, e := range Parse(qs) {
		out[e.Key] = e.Value.(string)
	}
	return out
}

// EscapeComponent escapes s like encodeURIComponent: everything but ASCII
// letters, digits and -_.!~*'() is percent-encoded as UTF-8.
func EscapeComponent(s string) string {
	const hex = "0123456789ABCDEF"
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if unreserved(c) {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('%')
		b.WriteByte(hex[c>>4])
		b.WriteByte(hex[c&15])
	}
	return b.String()
}

func unreserved(c byte) bool {
	switch {
	case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
		return true
	}
	return strings.IndexByte("-_.!~*'()", c) >= 0
}

func stringify(v any) string {
	switch v := v.(type) {
	case nil:
		return "null"
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32)
	case []any:
		parts := make([]string, len(v))
		for i, item := range v {
			if item != nil {
				parts[i] = stringify(item)
			}
		}
		return strings.Join(parts, ",")
	case []string:
		return strings.Join(v, ",")
	default:
		return fmt.Sprint(v)
	}
}
