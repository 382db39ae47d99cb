package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/packview/pkg/hierarchy"
	"github.com/matzehuels/packview/pkg/pipeline"
)

// renderFlags holds command-line state for the render command that does not
// map onto pipeline.Options directly.
type renderFlags struct {
	output  string
	formats string
	pick    bool
	noCache bool
}

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	var flags renderFlags
	opts := pipeline.Options{}
	setCLIDefaults(&opts)

	cmd := &cobra.Command{
		Use:   "render [data.json]",
		Short: "Render a snapshot of the chart",
		Long: `Render a snapshot of the chart as SVG, PNG or JSON.

The data file is packed into a width x height frame and zoomed to the focus
node (the root by default), exactly as the browser would show it after the
zoom transition settles. Use --pick to choose the focus interactively.

Artifacts are cached by the content of the data file and every option that
affects the output; --no-cache bypasses the cache, --refresh rewrites it.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if flags.pick && opts.Focus != "" {
				return fmt.Errorf("--focus and --pick are mutually exclusive")
			}
			opts.Formats = parseFormats(flags.formats)
			if err := pipeline.ValidateFormats(opts.Formats); err != nil {
				return err
			}
			opts.DataPath = args[0]
			return c.runRender(cmd.Context(), opts, flags)
		},
	}

	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "output file (single format, - for stdout) or base path (multiple)")
	cmd.Flags().StringVarP(&flags.formats, "format", "f", "", "output format(s): svg (default), png, json (comma-separated)")
	cmd.Flags().StringVar(&opts.Focus, "focus", "", "name of the node to zoom to")
	cmd.Flags().BoolVar(&flags.pick, "pick", false, "choose the focus node interactively")
	cmd.Flags().Float64Var(&opts.Width, "width", opts.Width, "frame width")
	cmd.Flags().Float64Var(&opts.Height, "height", opts.Height, "frame height")
	cmd.Flags().Float64Var(&opts.Padding, "padding", opts.Padding, "gap between sibling circles")
	cmd.Flags().Float64Var(&opts.Scale, "scale", opts.Scale, "PNG pixel density")
	cmd.Flags().StringVar(&opts.Title, "title", "", "SVG document title")
	cmd.Flags().BoolVar(&flags.noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.Refresh, "refresh", false, "re-render and overwrite cached artifacts")

	return cmd
}

// runRender executes the pipeline and writes the artifacts.
func (c *CLI) runRender(ctx context.Context, opts pipeline.Options, flags renderFlags) error {
	opts.Logger = loggerFromContext(ctx)

	if flags.pick {
		focus, err := pickFocus(ctx, opts)
		if err != nil {
			return err
		}
		opts.Focus = focus
	}

	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	runner, err := c.newRunner(ctx, cfg.CacheURL, flags.noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	logDone := timed(opts.Logger)
	spin := startSpinner(ctx, fmt.Sprintf("Rendering %s...", filepath.Base(opts.DataPath)))

	result, err := runner.Execute(ctx, opts)
	if err != nil {
		spin.fail("Render failed")
		return fmt.Errorf("render: %w", err)
	}
	spin.stop()
	logDone(fmt.Sprintf("Rendered %d artifact(s)", len(result.Artifacts)))

	paths, err := writeArtifacts(result.Artifacts, opts.Formats, opts.DataPath, flags.output)
	if err != nil {
		return err
	}
	if flags.output == "-" {
		return nil
	}

	printSuccess("Rendered %s", opts.DataPath)
	printStats(result.Stats.NodeCount, result.Stats.LeafCount, opts.Focus, result.CacheInfo.RenderHit)
	for _, p := range paths {
		printFile(p)
	}
	printNextStep("Explore interactively", appName+" serve --data "+opts.DataPath)
	return nil
}

// pickFocus loads the data file and lets the user choose a focus node.
// Aborting the picker returns context.Canceled.
func pickFocus(ctx context.Context, opts pipeline.Options) (string, error) {
	tree, _, err := pipeline.Load(ctx, opts)
	if err != nil {
		return "", err
	}
	selected, err := runPicker(ctx, tree)
	if err != nil {
		return "", err
	}
	if selected == nil {
		return "", context.Canceled
	}
	if selected.IsRoot() {
		return "", nil
	}
	return selected.Name(), nil
}

func runPicker(ctx context.Context, tree *hierarchy.Tree) (*hierarchy.Item, error) {
	final, err := tea.NewProgram(NewFocusPickerModel(tree), tea.WithContext(ctx), tea.WithOutput(os.Stderr)).Run()
	if err != nil {
		return nil, fmt.Errorf("focus picker: %w", err)
	}
	return final.(FocusPickerModel).Selected, nil
}

// writeArtifacts writes each format to its output path and returns the
// paths written. A single format with an explicit output goes exactly there
// ("-" is stdout); otherwise files are named <base>.<format>.
func writeArtifacts(artifacts map[string][]byte, formats []string, input, output string) ([]string, error) {
	if output == "-" && len(formats) != 1 {
		return nil, fmt.Errorf("-o - requires a single format")
	}

	var paths []string
	for _, format := range formats {
		path := outputPath(format, len(formats), input, output)
		if err := writeFile(path, artifacts[format]); err != nil {
			return nil, fmt.Errorf("write %s: %w", format, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}

func outputPath(format string, n int, input, output string) string {
	if n == 1 && output != "" {
		return output
	}
	return basePath(output, input) + "." + format
}

// basePath strips a known format extension from output, or derives the base
// from the input file when output is empty.
func basePath(output, input string) string {
	if output == "" {
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := filepath.Ext(output)
	if pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

func openOutput(path string) (io.WriteCloser, error) {
	if path == "-" {
		return nopCloser{os.Stdout}, nil
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}
	return os.Create(path)
}

func writeFile(path string, data []byte) error {
	out, err := openOutput(path)
	if err != nil {
		return err
	}
	if _, err := out.Write(data); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
