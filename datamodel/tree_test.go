package datamodel

import (
	"strings"
	"testing"
)

func TestTree(t *testing.T) {
	sd := nestedFixture()
	out := sd.Tree(TreeOptions{})

	for _, label := range []string{"1", "dog", "pig", "fish", "a", "b", "4", "cat", "5"} {
		if !strings.Contains(out, label) {
			t.Errorf("tree output missing %q:\n%s", label, out)
		}
	}
	if strings.Contains(out, ":") {
		t.Errorf("tree output lists attributes without the option:\n%s", out)
	}
}

func TestTreeWithAttrs(t *testing.T) {
	sd := NewSpaceData(map[string]any{"MissionName": "BigSat1"})
	sd.Set("Counts", NewDataArray([]any{1, 2}, map[string]any{"Units": "cnts/s"}))

	out := sd.Tree(TreeOptions{Attrs: true})

	for _, label := range []string{":MissionName", "Counts", ":Units"} {
		if !strings.Contains(out, label) {
			t.Errorf("tree output missing %q:\n%s", label, out)
		}
	}
}
