package datamodel

import (
	"fmt"

	"github.com/charmbracelet/lipgloss/tree"
)

// TreeOptions configures the rendered tree view.
type TreeOptions struct {
	// Attrs also lists attribute names, prefixed with ":", under the
	// node that carries them.
	Attrs bool
}

// Tree renders the container as a nested tree, one branch per entry.
func (sd *SpaceData) Tree(opts TreeOptions) string {
	root := tree.Root("+")
	addTreeChildren(root, sd, opts)
	return root.String()
}

func addTreeChildren(t *tree.Tree, sd *SpaceData, opts TreeOptions) {
	if opts.Attrs {
		for _, name := range sortedAttrNames(sd.Attrs) {
			t.Child(":" + name)
		}
	}
	for _, key := range sd.Keys() {
		label := fmt.Sprint(key)
		value, _ := sd.Get(key)
		switch val := value.(type) {
		case *SpaceData:
			sub := tree.Root(label)
			addTreeChildren(sub, val, opts)
			t.Child(sub)
		case *DataArray:
			if opts.Attrs && len(val.Attrs()) > 0 {
				sub := tree.Root(label)
				for _, name := range sortedAttrNames(val.Attrs()) {
					sub.Child(":" + name)
				}
				t.Child(sub)
				continue
			}
			t.Child(label)
		default:
			t.Child(label)
		}
	}
}
