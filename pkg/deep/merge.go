package deep

import (
	"reflect"
	"sort"
)

// MergeOptions configures Merge.
type MergeOptions struct {
	// Clone copies mergeable values taken from either side instead of
	// sharing them with the result.
	Clone bool
}

// Merge deep-merges source into target and returns the result; neither input
// is modified.
//
// Maps merge key by key. Arrays merge index by index: missing slots take the
// source entry, mergeable entries merge recursively, and scalar entries not
// already present in target are appended. A non-array source merged into an
// array target (or vice versa) yields the source.
func Merge(target, source any, opts MergeOptions) any {
	if src, ok := source.([]any); ok {
		if dst, ok := target.([]any); ok {
			return mergeArrays(dst, src, opts)
		}
		return maybeClone(source, opts)
	}
	return mergeObjects(target, source, opts)
}

func canMerge(v any) bool {
	switch v.(type) {
	case map[string]any, []any:
		return true
	default:
		return false
	}
}

func emptyEntity(v any) any {
	if _, ok := v.([]any); ok {
		return []any{}
	}
	return map[string]any{}
}

func maybeClone(v any, opts MergeOptions) any {
	if opts.Clone && canMerge(v) {
		return Merge(emptyEntity(v), v, opts)
	}
	return v
}

func mergeArrays(target, source []any, opts MergeOptions) []any {
	dst := make([]any, len(target), len(target)+len(source))
	copy(dst, target)

	for i, entry := range source {
		switch {
		case i >= len(dst):
			dst = append(dst, maybeClone(entry, opts))
		case dst[i] == nil:
			dst[i] = maybeClone(entry, opts)
		case canMerge(entry):
			var t any
			if i < len(target) {
				t = target[i]
			}
			dst[i] = Merge(t, entry, opts)
		case indexOf(target, entry) == -1:
			dst = append(dst, maybeClone(entry, opts))
		}
	}

	return dst
}

func mergeObjects(target, source any, opts MergeOptions) map[string]any {
	dst := map[string]any{}

	tgt, _ := target.(map[string]any)
	for key, v := range tgt {
		dst[key] = maybeClone(v, opts)
	}

	src, _ := source.(map[string]any)
	for _, key := range sortedKeys(src) {
		v := src[key]
		if !canMerge(v) || !truthy(tgt[key]) {
			dst[key] = maybeClone(v, opts)
		} else {
			dst[key] = Merge(tgt[key], v, opts)
		}
	}

	return dst
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// indexOf finds entry in list using == for comparable values.
func indexOf(list []any, entry any) int {
	if entry != nil && !reflect.TypeOf(entry).Comparable() {
		return -1
	}
	for i, v := range list {
		if v == nil || reflect.TypeOf(v).Comparable() {
			if v == entry {
				return i
			}
		}
	}
	return -1
}

func truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case string:
		return t != ""
	case float64:
		return t != 0
	case int:
		return t != 0
	default:
		return true
	}
}

// Clone returns a deep copy of the map[string]any / []any containers in v.
// Other values are returned as is.
func Clone(v any) any {
	return maybeClone(v, MergeOptions{Clone: true})
}
