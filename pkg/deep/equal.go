// Package deep compares, merges and diffs loosely typed values: the
// map[string]any / []any trees produced by JSON decoding, plus scalars and
// DOM nodes.
package deep

import (
	"bytes"
	"encoding/json"
	"math"
	"reflect"

	"github.com/vango-dev/toolbox/pkg/dom"
)

// Equal reports whether a and b are structurally equal.
//
// Values of different kinds (null, bool, number, string, function, object)
// are never equal. DOM nodes and functions compare by identity. Values whose
// JSON encoding carries all of their state compare by encoding, so ordered
// records that marshal their keys in order are order-sensitive while Go maps
// are not. Inside such values NaN and infinities encode as null and
// functions held in map[string]any or []any encode as they do in a browser:
// dropped from objects and null in arrays. Everything else (structs with
// unexported fields, channels) is compared with reflect.DeepEqual.
func Equal(a, b any) bool {
	if kindOf(a) != kindOf(b) {
		return false
	}

	na, aIsNode := a.(*dom.Node)
	nb, bIsNode := b.(*dom.Node)
	if aIsNode || bIsNode {
		return aIsNode && bIsNode && na == nb
	}
	if kindOf(a) == kindFunc {
		return reflect.ValueOf(a).Pointer() == reflect.ValueOf(b).Pointer()
	}

	a, b = jsonSafe(a), jsonSafe(b)
	if !encodesFully(reflect.ValueOf(a), 0) || !encodesFully(reflect.ValueOf(b), 0) {
		return reflect.DeepEqual(a, b)
	}

	ja, errA := json.Marshal(a)
	jb, errB := json.Marshal(b)
	if errA != nil || errB != nil {
		return reflect.DeepEqual(a, b)
	}
	return bytes.Equal(ja, jb)
}

// jsonSafe rewrites the values JSON cannot encode inside scalars and
// map[string]any / []any trees. Other containers are returned unchanged.
func jsonSafe(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, e := range t {
			if kindOf(e) == kindFunc {
				continue
			}
			out[k] = jsonSafe(e)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			if kindOf(e) != kindFunc {
				out[i] = jsonSafe(e)
			}
		}
		return out
	}

	rv := reflect.ValueOf(v)
	if rv.IsValid() && (rv.Kind() == reflect.Float32 || rv.Kind() == reflect.Float64) {
		if f := rv.Float(); math.IsNaN(f) || math.IsInf(f, 0) {
			return nil
		}
	}
	return v
}

var marshalerType = reflect.TypeOf((*json.Marshaler)(nil)).Elem()

// maxDepth bounds the walk; deeper (or cyclic) values fall back to
// reflect.DeepEqual.
const maxDepth = 64

// encodesFully reports whether the JSON encoding of v reflects every part
// of its state.
func encodesFully(v reflect.Value, depth int) bool {
	if depth > maxDepth {
		return false
	}
	if !v.IsValid() {
		return true
	}
	if v.Type().Implements(marshalerType) {
		return true
	}

	switch v.Kind() {
	case reflect.Bool, reflect.String,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	case reflect.Interface, reflect.Pointer:
		return v.IsNil() || encodesFully(v.Elem(), depth+1)
	case reflect.Map:
		if k := v.Type().Key().Kind(); k != reflect.String {
			return false
		}
		iter := v.MapRange()
		for iter.Next() {
			if !encodesFully(iter.Value(), depth+1) {
				return false
			}
		}
		return true
	case reflect.Slice, reflect.Array:
		for i := 0; i < v.Len(); i++ {
			if !encodesFully(v.Index(i), depth+1) {
				return false
			}
		}
		return true
	case reflect.Struct:
		t := v.Type()
		for i := 0; i < t.NumField(); i++ {
			f := t.Field(i)
			if !f.IsExported() || f.Tag.Get("json") == "-" {
				return false
			}
			if !encodesFully(v.Field(i), depth+1) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

type kind uint8

const (
	kindNull kind = iota
	kindBool
	kindNumber
	kindString
	kindFunc
	kindObject
)

func kindOf(v any) kind {
	if v == nil {
		return kindNull
	}
	switch reflect.TypeOf(v).Kind() {
	case reflect.Bool:
		return kindBool
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return kindNumber
	case reflect.String:
		return kindString
	case reflect.Func:
		return kindFunc
	default:
		return kindObject
	}
}
