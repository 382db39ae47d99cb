package cli

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/matzehuels/packview/pkg/hierarchy"
	"github.com/matzehuels/packview/pkg/pipeline"
)

const testData = `{
  "name": "flare",
  "children": [
    {"name": "analytics", "children": [
      {"name": "cluster", "value": 3},
      {"name": "graph", "value": 2}
    ]},
    {"name": "util", "value": 1}
  ]
}`

func writeTestData(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "flare.json")
	if err := os.WriteFile(path, []byte(testData), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func testTree(t *testing.T) *hierarchy.Tree {
	t.Helper()
	root, err := hierarchy.ReadJSON(strings.NewReader(testData))
	if err != nil {
		t.Fatal(err)
	}
	tree, err := hierarchy.New(root)
	if err != nil {
		t.Fatal(err)
	}
	return tree
}

func TestParseFormats(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"empty defaults to svg", "", []string{"svg"}},
		{"single format", "png", []string{"png"}},
		{"multiple formats", "svg,png,json", []string{"svg", "png", "json"}},
		{"spaces trimmed", "svg, json", []string{"svg", "json"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseFormats(tt.input)
			if strings.Join(got, "|") != strings.Join(tt.want, "|") {
				t.Errorf("parseFormats(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestOutputPath(t *testing.T) {
	tests := []struct {
		name   string
		format string
		n      int
		input  string
		output string
		want   string
	}{
		{"default from input", "svg", 1, "data/flare.json", "", "data/flare.svg"},
		{"explicit single", "png", 1, "flare.json", "out/chart.png", "out/chart.png"},
		{"explicit single odd extension", "svg", 1, "flare.json", "chart.txt", "chart.txt"},
		{"multiple from base", "json", 2, "flare.json", "out/chart", "out/chart.json"},
		{"multiple strips known extension", "png", 2, "flare.json", "out/chart.svg", "out/chart.png"},
		{"multiple default", "png", 3, "flare.json", "", "flare.png"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := outputPath(tt.format, tt.n, tt.input, tt.output); got != tt.want {
				t.Errorf("outputPath() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestWriteArtifacts(t *testing.T) {
	dir := t.TempDir()
	artifacts := map[string][]byte{"svg": []byte("<svg/>"), "json": []byte("{}")}

	paths, err := writeArtifacts(artifacts, []string{"svg", "json"}, "flare.json", filepath.Join(dir, "nested", "chart"))
	if err != nil {
		t.Fatal(err)
	}
	if len(paths) != 2 {
		t.Fatalf("paths = %v", paths)
	}
	for _, p := range paths {
		data, err := os.ReadFile(p)
		if err != nil {
			t.Fatal(err)
		}
		format := strings.TrimPrefix(filepath.Ext(p), ".")
		if !bytes.Equal(data, artifacts[format]) {
			t.Errorf("%s = %q, want %q", p, data, artifacts[format])
		}
	}

	if _, err := writeArtifacts(artifacts, []string{"svg", "json"}, "flare.json", "-"); err == nil {
		t.Error("stdout with multiple formats should fail")
	}
}

func TestStatsLine(t *testing.T) {
	line := statsLine(5, 3, "analytics", true)
	for _, want := range []string{"5 nodes", "3 leaves", "focus analytics", iconCached} {
		if !strings.Contains(line, want) {
			t.Errorf("statsLine missing %q: %q", want, line)
		}
	}
	if line := statsLine(5, 3, "", false); strings.Contains(line, "focus") || !strings.Contains(line, iconFresh) {
		t.Errorf("statsLine = %q", line)
	}
}

func TestFocusPickerModel(t *testing.T) {
	m := NewFocusPickerModel(testTree(t))

	names := make([]string, len(m.Items))
	for i, it := range m.Items {
		names[i] = it.Name()
	}
	if got := strings.Join(names, ","); got != "flare,analytics" {
		t.Fatalf("picker items = %s, want internal nodes only", got)
	}

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyDown})
	next, cmd := next.Update(tea.KeyMsg{Type: tea.KeyEnter})
	final := next.(FocusPickerModel)
	if final.Selected == nil || final.Selected.Name() != "analytics" {
		t.Fatalf("selected = %v, want analytics", final.Selected)
	}
	if cmd == nil {
		t.Error("enter should quit the program")
	}

	if view := final.View(); !strings.Contains(view, "flare / analytics") {
		t.Errorf("view missing path label:\n%s", view)
	}
}

func TestFocusPickerQuit(t *testing.T) {
	m := NewFocusPickerModel(testTree(t))
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if next.(FocusPickerModel).Selected != nil {
		t.Error("esc should not select")
	}
	if cmd == nil {
		t.Error("esc should quit the program")
	}
}

func TestRenderCommand(t *testing.T) {
	isolate(t)
	data := writeTestData(t)
	out := filepath.Join(t.TempDir(), "chart")

	c := New(io.Discard, LogInfo)
	root := c.RootCommand()
	root.SetArgs([]string{"render", data, "-o", out, "-f", "svg,json", "--focus", "analytics", "--no-cache", "--width", "400", "--height", "300"})

	captureStdout(t, func() {
		if err := root.ExecuteContext(context.Background()); err != nil {
			t.Fatalf("render: %v", err)
		}
	})

	svg, err := os.ReadFile(out + ".svg")
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Contains(svg, []byte(`viewBox="-200.0 -150.0 400.0 300.0"`)) {
		t.Errorf("svg missing centred viewBox:\n%s", svg)
	}
	if _, err := os.Stat(out + ".json"); err != nil {
		t.Errorf("json artifact: %v", err)
	}
}

func TestRenderCommandRejectsFocusAndPick(t *testing.T) {
	isolate(t)
	root := New(io.Discard, LogInfo).RootCommand()
	root.SetArgs([]string{"render", writeTestData(t), "--focus", "analytics", "--pick"})
	root.SetErr(io.Discard)
	if err := root.Execute(); err == nil {
		t.Error("--focus with --pick should fail")
	}
}

func TestRenderCommandInvalidFormat(t *testing.T) {
	isolate(t)
	root := New(io.Discard, LogInfo).RootCommand()
	root.SetArgs([]string{"render", writeTestData(t), "-f", "pdf"})
	root.SetErr(io.Discard)
	if err := root.Execute(); err == nil {
		t.Error("pdf should be rejected")
	}
}

func TestSetCLIDefaults(t *testing.T) {
	var opts pipeline.Options
	setCLIDefaults(&opts)
	if opts.Width != pipeline.DefaultWidth || opts.Height != pipeline.DefaultHeight {
		t.Errorf("size = %vx%v", opts.Width, opts.Height)
	}
	if opts.Padding != 3 {
		t.Errorf("padding = %v, want 3", opts.Padding)
	}
	if len(opts.Formats) != 1 || opts.Formats[0] != pipeline.FormatSVG {
		t.Errorf("formats = %v", opts.Formats)
	}
}
