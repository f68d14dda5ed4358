package datamodel

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/robert-malhotra/go-datamodel/internal/codec"
	"github.com/robert-malhotra/go-datamodel/store"
)

func tempFile(t *testing.T, name string) string {
	t.Helper()
	return filepath.Join(t.TempDir(), name)
}

func TestStoreRoundTrip(t *testing.T) {
	colors := NewDataArray([]any{"red", "green", "blue"},
		map[string]any{"Units": "none"})
	inner := NewSpaceData(map[string]any{"Instrument": "MAG"})
	inner.Set("Colors", colors)
	inner.Set("Empty", NewDataArray(nil, nil))

	sd := NewSpaceData(map[string]any{"MissionName": "BigSat1"})
	sd.Set("Sensors", inner)

	path := tempFile(t, "roundtrip.sdc")
	if err := ToFile(path, sd); err != nil {
		t.Fatalf("ToFile failed: %v", err)
	}

	back, err := FromFile(path)
	if err != nil {
		t.Fatalf("FromFile failed: %v", err)
	}

	if back.Attrs["MissionName"] != "BigSat1" {
		t.Errorf("global attr = %v; want BigSat1", back.Attrs["MissionName"])
	}

	sub, ok := back.Get("Sensors")
	if !ok {
		t.Fatal("nested group missing after round trip")
	}
	subSD := sub.(*SpaceData)
	if subSD.Attrs["Instrument"] != "MAG" {
		t.Errorf("group attr = %v; want MAG", subSD.Attrs["Instrument"])
	}

	v, ok := subSD.Get("Colors")
	if !ok {
		t.Fatal("dataset missing after round trip")
	}
	arr := v.(*DataArray)
	want := []any{"red", "green", "blue"}
	if !reflect.DeepEqual(arr.Data(), want) {
		t.Errorf("payload = %#v; want %#v", arr.Data(), want)
	}
	if arr.Attrs()["Units"] != "none" {
		t.Errorf("dataset attr = %v; want none", arr.Attrs()["Units"])
	}

	e, ok := subSD.Get("Empty")
	if !ok {
		t.Fatal("empty dataset missing after round trip")
	}
	if e.(*DataArray).Data() != nil {
		t.Errorf("empty dataset payload = %v; want nil", e.(*DataArray).Data())
	}
}

func TestExportNormalizesKeys(t *testing.T) {
	inner := NewSpaceData(nil)
	inner.Set("cat", "kitty")
	sd := NewSpaceData(nil)
	sd.Set(4, inner)

	path := tempFile(t, "numkeys.sdc")
	if err := ToFile(path, sd); err != nil {
		t.Fatalf("ToFile failed: %v", err)
	}

	back, err := FromFile(path)
	if err != nil {
		t.Fatalf("FromFile failed: %v", err)
	}
	if _, ok := back.Get("4"); !ok {
		t.Errorf("keys = %v; want the integer key written as %q", back.Keys(), "4")
	}
}

func TestExportTimeFallback(t *testing.T) {
	t0 := time.Date(2012, 9, 1, 11, 30, 0, 0, time.UTC)
	t1 := t0.Add(time.Minute)
	sd := NewSpaceData(nil)
	sd.Set("Epoch", NewDataArray([]time.Time{t0, t1}, nil))

	path := tempFile(t, "times.sdc")
	if err := ToFile(path, sd); err != nil {
		t.Fatalf("ToFile failed: %v", err)
	}

	back, err := FromFile(path)
	if err != nil {
		t.Fatalf("FromFile failed: %v", err)
	}
	v, _ := back.Get("Epoch")
	want := []any{"2012-09-01T11:30:00Z", "2012-09-01T11:31:00Z"}
	if !reflect.DeepEqual(v.(*DataArray).Data(), want) {
		t.Errorf("payload = %#v; want text-encoded %#v", v.(*DataArray).Data(), want)
	}
}

func TestExportAttrHandling(t *testing.T) {
	sd := NewSpaceData(map[string]any{
		"Text":     "hello",
		"Zero":     0,
		"EmptySeq": []any{},
		"When":     time.Date(2012, 9, 1, 0, 0, 0, 0, time.UTC),
		"Mixed":    []any{1.5, time.Date(2012, 9, 1, 0, 0, 0, 0, time.UTC)},
		"Bad":      map[string]any{"not": "storable"},
	})

	path := tempFile(t, "attrs.sdc")
	if err := ToFile(path, sd); err != nil {
		t.Fatalf("ToFile failed: %v", err)
	}

	back, err := FromFile(path)
	if err != nil {
		t.Fatalf("FromFile failed: %v", err)
	}

	if back.Attrs["Text"] != "hello" {
		t.Errorf("Text = %v; want hello", back.Attrs["Text"])
	}
	if _, ok := back.Attrs["Zero"]; !ok {
		t.Error("zero-valued scalar attribute was dropped")
	}
	if back.Attrs["EmptySeq"] != "" {
		t.Errorf("EmptySeq = %#v; want the empty-text placeholder", back.Attrs["EmptySeq"])
	}
	if back.Attrs["When"] != "2012-09-01T00:00:00Z" {
		t.Errorf("When = %v; want ISO-8601 text", back.Attrs["When"])
	}
	mixed, ok := back.Attrs["Mixed"].([]any)
	if !ok || len(mixed) != 2 || mixed[1] != "2012-09-01T00:00:00Z" {
		t.Errorf("Mixed = %#v; want the time element text-encoded", back.Attrs["Mixed"])
	}
	if _, ok := back.Attrs["Bad"]; ok {
		t.Error("unstorable attribute was written instead of skipped")
	}
}

func TestExportSkipsPlainValues(t *testing.T) {
	sd := NewSpaceData(nil)
	sd.Set("plain", 42) // neither container nor data array
	sd.Set("kept", NewDataArray("x", nil))

	path := tempFile(t, "skip.sdc")
	if err := ToFile(path, sd); err != nil {
		t.Fatalf("ToFile failed: %v", err)
	}

	back, err := FromFile(path)
	if err != nil {
		t.Fatalf("FromFile failed: %v", err)
	}
	if back.Has("plain") {
		t.Error("plain scalar entry was written instead of skipped")
	}
	if !back.Has("kept") {
		t.Error("data array entry missing")
	}
}

func TestOverwriteDisallowed(t *testing.T) {
	path := tempFile(t, "exists.sdc")
	if err := os.WriteFile(path, []byte("occupied"), 0o644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	err := ToFile(path, NewSpaceData(nil), WithOverwrite(false))
	if !errors.Is(err, store.ErrFileExists) {
		t.Errorf("ToFile error = %v; want store.ErrFileExists", err)
	}
}

// rawNode mirrors the store's on-disk node layout so the test can write a
// file containing a node kind the store never produces.
type rawNode struct {
	Kind     uint8               `cbor:"1,keyasint"`
	Order    []string            `cbor:"3,keyasint,omitempty"`
	Children map[string]*rawNode `cbor:"4,keyasint,omitempty"`
}

func TestImportUnknownNodeKind(t *testing.T) {
	body, err := codec.Marshal(&rawNode{
		Kind:     1,
		Order:    []string{"weird"},
		Children: map[string]*rawNode{"weird": {Kind: 9}},
	})
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	raw := append([]byte{'S', 'D', 'C', '1', 1, 0}, body...)

	path := tempFile(t, "unknown.sdc")
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	sd, err := FromFile(path)
	if !errors.Is(err, ErrUnknownNodeKind) {
		t.Errorf("FromFile error = %v; want ErrUnknownNodeKind", err)
	}
	if sd != nil {
		t.Error("failed import returned a partial container")
	}
}

func TestFromGroupLeavesHandleOpen(t *testing.T) {
	path := tempFile(t, "handle.sdc")
	sd := NewSpaceData(nil)
	sd.Set("x", NewDataArray("v", nil))
	if err := ToFile(path, sd); err != nil {
		t.Fatalf("ToFile failed: %v", err)
	}

	f, err := store.Open(path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer f.Close()

	if _, err := FromGroup(f.Root()); err != nil {
		t.Fatalf("FromGroup failed: %v", err)
	}
	// the caller-supplied handle must still be usable
	if _, err := f.OpenDataset("x"); err != nil {
		t.Errorf("handle unusable after FromGroup: %v", err)
	}
}
