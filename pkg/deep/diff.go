package deep

// Diff returns the differences between two values.
//
// When both values are maps the result is a map holding, for every key whose
// values differ, the recursive diff of those values; keys only present in b
// map to [nil, value]. Otherwise the result is the pair [a, b].
func Diff(a, b any) any {
	ma, okA := a.(map[string]any)
	mb, okB := b.(map[string]any)
	if !okA || !okB {
		return [2]any{a, b}
	}

	out := map[string]any{}
	for _, key := range sortedKeys(ma) {
		value := ma[key]
		if !Equal(mb[key], value) {
			out[key] = Diff(value, mb[key])
		}
	}
	for _, key := range sortedKeys(mb) {
		if _, ok := ma[key]; !ok {
			out[key] = [2]any{nil, mb[key]}
		}
	}
	return out
}
