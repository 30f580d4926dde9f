package store

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestStateKeyOrder(t *testing.T) {
	s := Of(E("b", 1), E("10", 2), E("a", 3), E("2", 4), E("01", 5), E("-1", 6))

	want := []string{"2", "10", "b", "a", "01", "-1"}
	if got := s.Keys(); !reflect.DeepEqual(got, want) {
		t.Errorf("Keys() = %v, want %v", got, want)
	}
}

func TestStateSetKeepsPosition(t *testing.T) {
	s := Of(E("a", 1), E("b", 2), E("a", 3))
	if !reflect.DeepEqual(s.Keys(), []string{"a", "b"}) || s.Value("a") != 3 {
		t.Errorf("state = %v %v", s.Keys(), s.Map())
	}
	if s.Len() != 2 {
		t.Errorf("Len() = %d", s.Len())
	}
}

func TestStateZeroValue(t *testing.T) {
	var s State
	if s.Len() != 0 || s.Value("x") != nil {
		t.Error("zero State should be empty")
	}
	c := s.Clone()
	c.Set("x", 1)
	if s.Len() != 0 {
		t.Error("Clone must not share storage")
	}
}

func TestFromMap(t *testing.T) {
	s := FromMap(map[string]any{"z": 1, "a": 2, "5": 3})
	if !reflect.DeepEqual(s.Keys(), []string{"5", "a", "z"}) {
		t.Errorf("Keys() = %v", s.Keys())
	}
}

func TestStateJSON(t *testing.T) {
	s := Of(E("b", 1), E("a", []any{"x"}), E("1", nil))

	data, err := json.Marshal(s)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != `{"1":null,"b":1,"a":["x"]}` {
		t.Errorf("Marshal = %s", data)
	}

	var decoded State
	if err := json.Unmarshal([]byte(`{"z":1,"y":{"k":true},"x":[1,2]}`), &decoded); err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(decoded.Keys(), []string{"z", "y", "x"}) {
		t.Errorf("decoded keys = %v", decoded.Keys())
	}
	if !reflect.DeepEqual(decoded.Value("y"), map[string]any{"k": true}) {
		t.Errorf("decoded y = %v", decoded.Value("y"))
	}

	if err := json.Unmarshal([]byte(`[1,2]`), &decoded); err == nil {
		t.Error("Unmarshal of an array should fail")
	}
}

func TestEntries(t *testing.T) {
	s := Of(E("x", 1), E("0", 2))
	want := []Entry{{"0", 2}, {"x", 1}}
	if got := s.Entries(); !reflect.DeepEqual(got, want) {
		t.Errorf("Entries() = %v", got)
	}
}
