package pack

import (
	"math"
	"strconv"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/matzehuels/packview/pkg/hierarchy"
)

// buildTree groups leaves bottom-up, fanout at a time, until one root remains.
func buildTree(values []float64, fanout int) *hierarchy.Node {
	level := make([]*hierarchy.Node, len(values))
	for i, v := range values {
		level[i] = hierarchy.Leaf("leaf"+strconv.Itoa(i), v)
	}
	depth := 0
	for len(level) > 1 {
		var next []*hierarchy.Node
		for i := 0; i < len(level); i += fanout {
			end := min(i+fanout, len(level))
			name := "n" + strconv.Itoa(depth) + "-" + strconv.Itoa(i)
			next = append(next, hierarchy.Branch(name, level[i:end]...))
		}
		level = next
		depth++
	}
	return hierarchy.Branch("root", level...)
}

// TestPackInvariants checks containment and non-overlap for random trees.
func TestPackInvariants(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping property-based test in short mode")
	}

	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 60
	properties := gopter.NewProperties(parameters)

	const (
		width  = 960.0
		height = 720.0
		tol    = 1e-6 * width
	)

	layout := func(values []float64, fanout int, padding float64) (*hierarchy.Tree, *Layout, bool) {
		if len(values) == 0 {
			return nil, nil, false
		}
		tree, err := hierarchy.New(buildTree(values, fanout))
		if err != nil {
			return nil, nil, false
		}
		l, err := Compute(tree, Options{Width: width, Height: height, Padding: padding})
		if err != nil {
			return nil, nil, false
		}
		return tree, l, true
	}

	values := gen.SliceOf(gen.Float64Range(0.1, 100))
	fanouts := gen.IntRange(2, 6)
	paddings := gen.Float64Range(0, 8)

	properties.Property("children lie inside their parent", prop.ForAll(
		func(values []float64, fanout int, padding float64) bool {
			tree, l, ok := layout(values, fanout, padding)
			if !ok {
				return len(values) == 0
			}
			for _, it := range tree.Items {
				if it.Parent == nil {
					continue
				}
				c, p := l.Circle(it), l.Circle(it.Parent)
				if dist(c, p)+c.R > p.R+tol {
					return false
				}
			}
			return true
		},
		values, fanouts, paddings,
	))

	properties.Property("siblings do not overlap", prop.ForAll(
		func(values []float64, fanout int, padding float64) bool {
			tree, l, ok := layout(values, fanout, padding)
			if !ok {
				return len(values) == 0
			}
			for _, it := range tree.Items {
				for i, a := range it.Children {
					for _, b := range it.Children[i+1:] {
						ca, cb := l.Circle(a), l.Circle(b)
						if dist(ca, cb) < ca.R+cb.R-tol {
							return false
						}
					}
				}
			}
			return true
		},
		values, fanouts, paddings,
	))

	properties.Property("root frames the viewport", prop.ForAll(
		func(values []float64, fanout int) bool {
			tree, l, ok := layout(values, fanout, DefaultPadding)
			if !ok {
				return len(values) == 0
			}
			r := l.Circle(tree.Root)
			return r.X == width/2 && r.Y == height/2 && math.Abs(r.R-height/2) < tol
		},
		values, fanouts,
	))

	properties.Property("leaf area is proportional to value", prop.ForAll(
		func(values []float64, fanout int) bool {
			tree, l, ok := layout(values, fanout, DefaultPadding)
			if !ok {
				return len(values) == 0
			}
			var k float64
			for _, it := range tree.Items {
				if !it.IsLeaf() {
					continue
				}
				ratio := l.Circle(it).R / math.Sqrt(it.Value)
				if k == 0 {
					k = ratio
				} else if math.Abs(ratio-k) > 1e-9*k {
					return false
				}
			}
			return true
		},
		values, fanouts,
	))

	properties.TestingRun(t)
}
