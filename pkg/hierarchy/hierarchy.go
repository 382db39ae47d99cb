package hierarchy

import (
	"cmp"
	"math"
	"slices"
	"strconv"

	"github.com/matzehuels/packview/pkg/errors"
)

// Item is a node of the built tree with its derived attributes.
type Item struct {
	Node     *Node
	Index    int     // position in Tree.Items (breadth-first)
	Depth    int     // 0 for the root
	Height   int     // 0 for leaves
	Value    float64 // aggregated subtree value
	Parent   *Item
	Children []*Item // sorted by descending Value
}

// Name returns the node's label.
func (it *Item) Name() string { return it.Node.Name }

// IsLeaf reports whether the item has no children.
func (it *Item) IsLeaf() bool { return len(it.Children) == 0 }

// IsRoot reports whether the item has no parent.
func (it *Item) IsRoot() bool { return it.Parent == nil }

// Ancestors returns the item followed by its parents up to the root.
func (it *Item) Ancestors() []*Item {
	var out []*Item
	for n := it; n != nil; n = n.Parent {
		out = append(out, n)
	}
	return out
}

// Tree is a validated, sized and sorted hierarchy.
type Tree struct {
	Root  *Item
	Items []*Item // breadth-first, root first
}

// New validates root and builds the tree.
func New(root *Node) (*Tree, error) {
	if root == nil {
		return nil, errors.New(errors.ErrCodeInvalidData, "hierarchy has no root")
	}
	if err := validate(root, label(root, "", 0)); err != nil {
		return nil, err
	}

	r := build(root, nil, 0)
	t := &Tree{Root: r}
	queue := []*Item{r}
	for len(queue) > 0 {
		it := queue[0]
		queue = queue[1:]
		it.Index = len(t.Items)
		t.Items = append(t.Items, it)
		queue = append(queue, it.Children...)
	}
	return t, nil
}

// Len returns the number of items.
func (t *Tree) Len() int { return len(t.Items) }

// Leaves returns the number of leaf items.
func (t *Tree) Leaves() int {
	n := 0
	for _, it := range t.Items {
		if it.IsLeaf() {
			n++
		}
	}
	return n
}

// Find returns the first item named name in breadth-first order.
func (t *Tree) Find(name string) (*Item, bool) {
	for _, it := range t.Items {
		if it.Name() == name {
			return it, true
		}
	}
	return nil, false
}

func build(n *Node, parent *Item, depth int) *Item {
	it := &Item{Node: n, Depth: depth, Parent: parent}
	if len(n.Children) == 0 {
		it.Value = *n.Value
		return it
	}

	it.Children = make([]*Item, len(n.Children))
	for i, c := range n.Children {
		child := build(c, it, depth+1)
		it.Children[i] = child
		it.Value += child.Value
		it.Height = max(it.Height, child.Height+1)
	}
	slices.SortStableFunc(it.Children, func(a, b *Item) int {
		return cmp.Compare(b.Value, a.Value)
	})
	return it
}

func validate(n *Node, path string) error {
	if len(n.Children) == 0 {
		if n.Value == nil {
			return errors.New(errors.ErrCodeInvalidData, "leaf %s has no value", path)
		}
		v := *n.Value
		if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
			return errors.New(errors.ErrCodeInvalidData, "leaf %s has value %v, want a positive number", path, v)
		}
		return nil
	}
	if n.Value != nil {
		return errors.New(errors.ErrCodeInvalidData, "internal node %s carries its own value", path)
	}
	for i, c := range n.Children {
		if c == nil {
			return errors.New(errors.ErrCodeInvalidData, "node %s has a null child at index %d", path, i)
		}
		if err := validate(c, label(c, path, i)); err != nil {
			return err
		}
	}
	return nil
}

// label renders a node position for error messages, e.g. "flare/vis[3]".
func label(n *Node, parent string, index int) string {
	name := n.Name
	if name == "" {
		name = "[" + strconv.Itoa(index) + "]"
	}
	if parent == "" {
		return name
	}
	return parent + "/" + name
}
