package hierarchy

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/packview/pkg/errors"
)

// Node is one element of the input record.
type Node struct {
	Name     string   `json:"name"`
	Value    *float64 `json:"value,omitempty"`
	Children []*Node  `json:"children,omitempty"`
}

// Leaf returns a leaf node with the given value.
func Leaf(name string, value float64) *Node {
	return &Node{Name: name, Value: &value}
}

// Branch returns an internal node with the given children.
func Branch(name string, children ...*Node) *Node {
	return &Node{Name: name, Children: children}
}

// ReadJSON decodes a hierarchy record from r.
//
// ReadJSON only checks that r holds a single JSON object; use [New] to
// validate the shape. ReadJSON does not close r.
func ReadJSON(r io.Reader) (*Node, error) {
	dec := json.NewDecoder(r)
	var root *Node
	if err := dec.Decode(&root); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidData, err, "decode hierarchy")
	}
	if root == nil {
		return nil, errors.New(errors.ErrCodeInvalidData, "hierarchy record is null")
	}
	if dec.More() {
		return nil, errors.New(errors.ErrCodeInvalidData, "trailing data after hierarchy record")
	}
	return root, nil
}

// ImportJSON reads the hierarchy record stored at path.
func ImportJSON(path string) (*Node, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
		}
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadJSON(f)
}
