package hierarchy

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/packview/pkg/errors"
)

func names(items []*Item) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.Name()
	}
	return out
}

func TestNewSortsChildrenByDescendingValue(t *testing.T) {
	tree, err := New(Branch("root", Leaf("x", 3), Leaf("y", 1), Leaf("z", 2)))
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	var got []float64
	for _, c := range tree.Root.Children {
		got = append(got, c.Value)
	}
	want := []float64{3, 2, 1}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("child values = %v, want %v", got, want)
		}
	}
}

func TestNewSortIsStable(t *testing.T) {
	tree, err := New(Branch("root",
		Leaf("first", 2), Leaf("big", 5), Leaf("second", 2), Leaf("third", 2),
	))
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	got := strings.Join(names(tree.Root.Children), ",")
	if want := "big,first,second,third"; got != want {
		t.Errorf("order = %s, want %s", got, want)
	}
}

func TestNewSumsSubtreeValues(t *testing.T) {
	tree, err := New(Branch("root",
		Branch("a", Leaf("a1", 1), Leaf("a2", 2)),
		Branch("b", Branch("b1", Leaf("b11", 4))),
	))
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	tests := []struct {
		name   string
		value  float64
		depth  int
		height int
	}{
		{"root", 7, 0, 3},
		{"a", 3, 1, 1},
		{"b", 4, 1, 2},
		{"b1", 4, 2, 1},
		{"b11", 4, 3, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			it, ok := tree.Find(tt.name)
			if !ok {
				t.Fatalf("Find(%q) failed", tt.name)
			}
			if it.Value != tt.value {
				t.Errorf("Value = %v, want %v", it.Value, tt.value)
			}
			if it.Depth != tt.depth {
				t.Errorf("Depth = %d, want %d", it.Depth, tt.depth)
			}
			if it.Height != tt.height {
				t.Errorf("Height = %d, want %d", it.Height, tt.height)
			}
		})
	}
}

func TestNewBreadthFirstIndex(t *testing.T) {
	tree, err := New(Branch("root",
		Branch("a", Leaf("a1", 1)),
		Branch("b", Leaf("b1", 5)),
	))
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	got := strings.Join(names(tree.Items), ",")
	if want := "root,b,a,b1,a1"; got != want {
		t.Errorf("Items = %s, want %s", got, want)
	}
	for i, it := range tree.Items {
		if it.Index != i {
			t.Errorf("Items[%d].Index = %d", i, it.Index)
		}
	}
	if tree.Len() != 5 || tree.Leaves() != 2 {
		t.Errorf("Len/Leaves = %d/%d, want 5/2", tree.Len(), tree.Leaves())
	}
}

func TestNewRejectsMalformedData(t *testing.T) {
	zero := 0.0
	tests := []struct {
		name string
		root *Node
		want string
	}{
		{"nil root", nil, "no root"},
		{"leaf without value", Branch("root", &Node{Name: "a"}), "leaf root/a has no value"},
		{"empty children without value", &Node{Name: "root", Children: []*Node{}}, "leaf root has no value"},
		{"zero value", Branch("root", Leaf("a", 0)), "want a positive number"},
		{"negative value", Branch("root", Leaf("a", -2)), "want a positive number"},
		{"internal value", &Node{Name: "root", Value: &zero, Children: []*Node{Leaf("a", 1)}}, "carries its own value"},
		{"null child", Branch("root", Leaf("a", 1), nil), "null child at index 1"},
		{"unnamed path", Branch("root", Branch("", &Node{})), "leaf root/[0]/[0] has no value"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.root)
			if err == nil {
				t.Fatal("expected error")
			}
			if !errors.Is(err, errors.ErrCodeInvalidData) {
				t.Errorf("code = %v, want %v", errors.GetCode(err), errors.ErrCodeInvalidData)
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not mention %q", err, tt.want)
			}
		})
	}
}

func TestAncestors(t *testing.T) {
	tree, err := New(Branch("root", Branch("a", Leaf("b", 1))))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	b, _ := tree.Find("b")
	if got := strings.Join(names(b.Ancestors()), ","); got != "b,a,root" {
		t.Errorf("Ancestors = %s", got)
	}
	if !tree.Root.IsRoot() || b.IsRoot() || !b.IsLeaf() {
		t.Error("root/leaf predicates wrong")
	}
}

func TestReadJSON(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		root, err := ReadJSON(strings.NewReader(`{"name":"root","children":[{"name":"a","value":10},{"name":"b","value":5}]}`))
		if err != nil {
			t.Fatalf("ReadJSON: %v", err)
		}
		if root.Name != "root" || len(root.Children) != 2 || *root.Children[0].Value != 10 {
			t.Errorf("unexpected decode: %+v", root)
		}
	})

	for name, input := range map[string]string{
		"syntax error": `{"name":`,
		"null":         `null`,
		"array":        `[{"name":"a"}]`,
		"trailing":     `{"name":"a","value":1} {"name":"b"}`,
	} {
		t.Run(name, func(t *testing.T) {
			_, err := ReadJSON(strings.NewReader(input))
			if !errors.Is(err, errors.ErrCodeInvalidData) {
				t.Errorf("ReadJSON(%q) error = %v, want INVALID_DATA", input, err)
			}
		})
	}
}

func TestImportJSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "data.json")
	if err := os.WriteFile(path, []byte(`{"name":"root","children":[{"name":"a","value":1}]}`), 0o644); err != nil {
		t.Fatal(err)
	}

	root, err := ImportJSON(path)
	if err != nil {
		t.Fatalf("ImportJSON: %v", err)
	}
	if root.Name != "root" {
		t.Errorf("Name = %q", root.Name)
	}

	_, err = ImportJSON(filepath.Join(dir, "missing.json"))
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("missing file error = %v, want FILE_NOT_FOUND", err)
	}
}
