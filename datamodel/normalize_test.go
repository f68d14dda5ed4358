package datamodel

import (
	"reflect"
	"testing"
)

func TestConvertKeysToStr(t *testing.T) {
	inner := NewSpaceData(map[string]any{"level": "inner"})
	inner.Set(7, "seven")
	inner.Set("eight", 8)

	sd := NewSpaceData(map[string]any{"level": "outer"})
	sd.Set(1, inner)
	sd.Set("two", 2)

	out := ConvertKeysToStr(sd)

	if got := out.Keys(); !reflect.DeepEqual(got, []any{"1", "two"}) {
		t.Errorf("Keys = %v; want [1 two] as strings", got)
	}

	sub, ok := out.Get("1")
	if !ok {
		t.Fatal("nested container missing under stringified key")
	}
	subSD := sub.(*SpaceData)
	if got := subSD.Keys(); !reflect.DeepEqual(got, []any{"7", "eight"}) {
		t.Errorf("nested Keys = %v; want [7 eight] as strings", got)
	}
	if subSD.Attrs["level"] != "inner" {
		t.Error("nested attribute mapping not preserved")
	}
	if out.Attrs["level"] != "outer" {
		t.Error("top-level attribute mapping not preserved")
	}
}

func TestConvertKeysCollision(t *testing.T) {
	sd := NewSpaceData(nil)
	sd.Set(1, "a")
	sd.Set("1", "b")

	out := ConvertKeysToStr(sd)

	if out.Len() != 1 {
		t.Fatalf("Len = %d; want a single collapsed key", out.Len())
	}
	v, ok := out.Get("1")
	if !ok {
		t.Fatal("collapsed key missing")
	}
	// last-write-wins: exactly one of the two original values survives
	if v != "a" && v != "b" {
		t.Errorf("collapsed value = %v; want one of the originals", v)
	}
}

func TestConvertKeysPlainMaps(t *testing.T) {
	sd := NewSpaceData(nil)
	sd.Set("m", map[any]any{3: "three", "s": "str"})

	out := ConvertKeysToStr(sd)

	v, _ := out.Get("m")
	want := map[string]any{"3": "three", "s": "str"}
	if !reflect.DeepEqual(v, want) {
		t.Errorf("plain map = %v; want %v", v, want)
	}
}

func TestConvertKeysLeavesValues(t *testing.T) {
	arr := NewDataArray([]any{1, 2}, nil)
	sd := NewSpaceData(nil)
	sd.Set(5, arr)

	out := ConvertKeysToStr(sd)

	v, _ := out.Get("5")
	if v != any(arr) {
		t.Error("non-mapping values must pass through by reference")
	}
}
