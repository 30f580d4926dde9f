package component

import (
	"strings"

	"github.com/tidwall/gjson"

	"github.com/vango-dev/toolbox/pkg/dom"
	"github.com/vango-dev/toolbox/pkg/strcase"
)

// Props holds component properties.
type Props map[string]any

// Clone returns a shallow copy of p.
func (p Props) Clone() Props {
	out := make(Props, len(p))
	for k, v := range p {
		out[k] = v
	}
	return out
}

// String returns the prop as a string, or def when absent or not a string.
func (p Props) String(key, def string) string {
	if s, ok := p[key].(string); ok {
		return s
	}
	return def
}

// Float returns the prop as a float64, or def when absent or not numeric.
func (p Props) Float(key string, def float64) float64 {
	switch v := p[key].(type) {
	case float64:
		return v
	case float32:
		return float64(v)
	case int:
		return float64(v)
	case int64:
		return float64(v)
	default:
		return def
	}
}

// Bool returns the prop as a bool, or def when absent or not a bool.
func (p Props) Bool(key string, def bool) bool {
	if b, ok := p[key].(bool); ok {
		return b
	}
	return def
}

// Strings returns the prop as a string slice. JSON arrays of strings are
// accepted; def is returned otherwise.
func (p Props) Strings(key string, def []string) []string {
	switch v := p[key].(type) {
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				return def
			}
			out = append(out, s)
		}
		return out
	default:
		return def
	}
}

// Floats returns the prop as a float64 slice, or def.
func (p Props) Floats(key string, def []float64) []float64 {
	switch v := p[key].(type) {
	case []float64:
		return v
	case []any:
		out := make([]float64, 0, len(v))
		for _, item := range v {
			f, ok := item.(float64)
			if !ok {
				return def
			}
			out = append(out, f)
		}
		return out
	default:
		return def
	}
}

// DecodeValue decodes a data-attribute value. The three cases are:
//
//   - syntactically valid JSON decodes to its value (numbers as float64,
//     objects as map[string]any, arrays as []any, null as nil);
//   - the empty string decodes to true, so a bare attribute acts as a flag;
//   - anything else is the raw string.
func DecodeValue(raw string) any {
	switch {
	case gjson.Valid(raw):
		return gjson.Parse(raw).Value()
	case raw == "":
		return true
	default:
		return raw
	}
}

// elementProps decodes the data-attributes of el, skipping the reserved
// marker attributes.
func elementProps(el *dom.Node, m Markers) Props {
	props := Props{}
	reserved := m.reservedPrefixes()

	for _, entry := range dom.Dataset(el) {
		if hasAnyPrefix(entry.Key, reserved) {
			continue
		}
		props[strcase.FromDashed(entry.Key)] = DecodeValue(entry.Value)
	}
	return props
}

func hasAnyPrefix(s string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(s, p) {
			return true
		}
	}
	return false
}
