package store

import (
	"fmt"
	"path"
)

// WalkFunc is called for each object during traversal.
// p is the full path to the object, obj is either *Group or *Dataset.
// Return nil to continue walking, or an error to stop.
type WalkFunc func(p string, obj interface{}, err error) error

// Walk traverses all objects (groups and datasets) in the hierarchy
// starting from g, in creation order. The callback is called for each
// group and dataset, including the starting group.
func Walk(g *Group, fn WalkFunc) error {
	return walkGroup(g, fn)
}

func walkGroup(g *Group, fn WalkFunc) error {
	if err := fn(g.Path(), g, nil); err != nil {
		return err
	}

	for _, name := range g.Members() {
		childPath := path.Join(g.Path(), name)

		kind, err := g.ChildKind(name)
		if err != nil {
			if err := fn(childPath, nil, err); err != nil {
				return err
			}
			continue
		}

		switch kind {
		case KindGroup:
			child, err := g.OpenGroup(name)
			if err != nil {
				return err
			}
			if err := walkGroup(child, fn); err != nil {
				return err
			}
		case KindDataset:
			child, err := g.OpenDataset(name)
			if err != nil {
				return err
			}
			if err := fn(childPath, child, nil); err != nil {
				return err
			}
		default:
			kindErr := fmt.Errorf("%q has unrecognized kind %d", childPath, kind)
			if err := fn(childPath, nil, kindErr); err != nil {
				return err
			}
		}
	}

	return nil
}
