package store

import (
	"fmt"
	"path"
	"sort"
	"strings"
)

// Group represents a group node in an open store file.
type Group struct {
	file *File
	path string
	n    *node
}

// Name returns the group name (last component of path).
func (g *Group) Name() string {
	if g.path == "/" {
		return "/"
	}
	return path.Base(g.path)
}

// Path returns the full path to this group.
func (g *Group) Path() string {
	return g.path
}

// Members returns the names of all child nodes in creation order.
func (g *Group) Members() []string {
	names := make([]string, len(g.n.Order))
	copy(names, g.n.Order)
	return names
}

// NumObjects returns the number of child nodes.
func (g *Group) NumObjects() int {
	return len(g.n.Order)
}

// ChildKind returns the node kind recorded for the named child. The value
// is returned as stored, so callers can detect kinds this package does not
// itself produce.
func (g *Group) ChildKind(name string) (NodeKind, error) {
	child, ok := g.n.Children[name]
	if !ok {
		return 0, fmt.Errorf("child %q: %w", name, ErrNotFound)
	}
	return NodeKind(child.Kind), nil
}

// OpenGroup opens a subgroup by relative path.
func (g *Group) OpenGroup(relativePath string) (*Group, error) {
	obj, err := g.open(relativePath)
	if err != nil {
		return nil, err
	}
	group, ok := obj.(*Group)
	if !ok {
		return nil, ErrNotGroup
	}
	return group, nil
}

// OpenDataset opens a dataset by relative path.
func (g *Group) OpenDataset(relativePath string) (*Dataset, error) {
	obj, err := g.open(relativePath)
	if err != nil {
		return nil, err
	}
	dataset, ok := obj.(*Dataset)
	if !ok {
		return nil, ErrNotDataset
	}
	return dataset, nil
}

// open resolves a relative path to a *Group or *Dataset.
func (g *Group) open(relativePath string) (interface{}, error) {
	parts := SplitPath(relativePath)
	if len(parts) == 0 {
		return g, nil
	}

	cur := g.n
	curPath := g.path
	for i, name := range parts {
		child, ok := cur.Children[name]
		if !ok {
			return nil, fmt.Errorf("finding %q: %w", name, ErrNotFound)
		}
		curPath = path.Join(curPath, name)

		if i == len(parts)-1 {
			switch NodeKind(child.Kind) {
			case KindGroup:
				return &Group{file: g.file, path: curPath, n: child}, nil
			case KindDataset:
				return &Dataset{file: g.file, path: curPath, n: child}, nil
			default:
				return nil, fmt.Errorf("%q has unrecognized kind %d", curPath, child.Kind)
			}
		}

		if NodeKind(child.Kind) != KindGroup {
			return nil, fmt.Errorf("%q is not a group", curPath)
		}
		cur = child
	}

	return nil, fmt.Errorf("empty path")
}

// CreateGroup creates a new subgroup with the given name.
func (g *Group) CreateGroup(name string) (*Group, error) {
	if err := g.checkCreate(name); err != nil {
		return nil, err
	}

	child := newGroupNode()
	g.addChild(name, child)
	return &Group{file: g.file, path: childPath(g.path, name), n: child}, nil
}

// CreateDataset creates a new dataset holding the given value. The value
// may be a scalar or (nested) slices of signed/unsigned integers, floats,
// bools, or strings; nil creates an empty dataset. Other element types fail
// with ErrUnsupportedType.
func (g *Group) CreateDataset(name string, value interface{}) (*Dataset, error) {
	if err := g.checkCreate(name); err != nil {
		return nil, err
	}
	if err := checkValue(value); err != nil {
		return nil, fmt.Errorf("dataset %q: %w", name, err)
	}

	child := &node{Kind: uint8(KindDataset), Data: value}
	g.addChild(name, child)
	return &Dataset{file: g.file, path: childPath(g.path, name), n: child}, nil
}

func (g *Group) checkCreate(name string) error {
	if !g.file.writable {
		return ErrReadOnly
	}
	if g.file.closed {
		return ErrClosed
	}
	if name == "" || strings.Contains(name, "/") {
		return fmt.Errorf("%q: %w", name, ErrInvalidName)
	}
	if _, ok := g.n.Children[name]; ok {
		return fmt.Errorf("%q: %w", name, ErrObjectExists)
	}
	return nil
}

func (g *Group) addChild(name string, child *node) {
	if g.n.Children == nil {
		g.n.Children = make(map[string]*node)
	}
	g.n.Children[name] = child
	g.n.Order = append(g.n.Order, name)
}

func childPath(parent, name string) string {
	if parent == "/" {
		return "/" + name
	}
	return parent + "/" + name
}

// Attrs returns the attribute names for this group, sorted.
func (g *Group) Attrs() []string {
	return attrNames(g.n)
}

// Attr returns an attribute value by name.
func (g *Group) Attr(name string) (interface{}, bool) {
	v, ok := g.n.Attrs[name]
	return v, ok
}

// HasAttr returns true if the group has an attribute with the given name.
func (g *Group) HasAttr(name string) bool {
	_, ok := g.n.Attrs[name]
	return ok
}

// SetAttr sets an attribute on the group. Attribute values are restricted
// to the same scalar/slice/string kinds as dataset payloads.
func (g *Group) SetAttr(name string, value interface{}) error {
	return setAttr(g.file, g.n, name, value)
}

func attrNames(n *node) []string {
	names := make([]string, 0, len(n.Attrs))
	for name := range n.Attrs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func setAttr(f *File, n *node, name string, value interface{}) error {
	if !f.writable {
		return ErrReadOnly
	}
	if f.closed {
		return ErrClosed
	}
	if name == "" {
		return fmt.Errorf("attribute name: %w", ErrInvalidName)
	}
	if err := checkValue(value); err != nil {
		return fmt.Errorf("attribute %q: %w", name, err)
	}
	if n.Attrs == nil {
		n.Attrs = make(map[string]any)
	}
	n.Attrs[name] = value
	return nil
}
