// Package pipeline renders snapshots of a packed hierarchy.
//
// The pipeline runs the same stages as the browser chart, without the
// browser:
//
//  1. Load: read the data file and build the hierarchy
//  2. Layout: pack the circles for the requested frame size
//  3. Focus: zoom to the requested node and settle the transition
//  4. Render: write the settled frame as SVG, PNG or JSON
//
// Rendered artifacts are cached by the digest of the data bytes and every
// option that changes the output.
//
//	runner := pipeline.NewRunner(c, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    DataPath: "data.json",
//	    Focus:    "analytics",
//	    Formats:  []string{"svg", "png"},
//	})
//	svg := result.Artifacts["svg"]
package pipeline

import (
	"fmt"
	"io"
	"math"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/packview/pkg/cache"
	"github.com/matzehuels/packview/pkg/errors"
	"github.com/matzehuels/packview/pkg/hierarchy"
	"github.com/matzehuels/packview/pkg/pack"
	"github.com/matzehuels/packview/pkg/zoom"
)

// =============================================================================
// Default Values
// =============================================================================

const (
	// DefaultWidth is the default frame width in pixels.
	DefaultWidth = 960.0

	// DefaultHeight is the default frame height in pixels.
	DefaultHeight = 960.0

	// DefaultScale is the default PNG scale factor.
	DefaultScale = 2.0

	// TTLArtifact is how long rendered artifacts stay cached.
	TTLArtifact = 7 * 24 * time.Hour
)

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatJSON = "json"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatPNG:  true,
	FormatJSON: true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for a pipeline run.
type Options struct {
	// Load options. Data, when set, is used instead of reading DataPath;
	// DataPath is then only used in messages.
	DataPath string `json:"data_path,omitempty"`
	Data     []byte `json:"-"`

	// Layout options. Padding is used as given; the CLI defaults it to
	// pack.DefaultPadding.
	Width   float64 `json:"width,omitempty"`
	Height  float64 `json:"height,omitempty"`
	Padding float64 `json:"padding"`

	// Focus names the node to zoom to. Empty means the root.
	Focus string `json:"focus,omitempty"`

	// Render options
	Formats []string `json:"formats,omitempty"`
	Title   string   `json:"title,omitempty"`
	Scale   float64  `json:"scale,omitempty"`

	// Refresh skips cache lookups; fresh artifacts are still stored.
	Refresh bool `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	Tree   *hierarchy.Tree
	Layout *pack.Layout
	Frame  zoom.Frame

	// DataHash is the SHA-256 digest of the data bytes.
	DataHash string

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	Stats     Stats
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	NodeCount  int
	LeafCount  int
	DataBytes  int
	LoadTime   time.Duration
	LayoutTime time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache hits for the render stage.
type CacheInfo struct {
	Hits      []string // formats served from the cache
	RenderHit bool     // whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: svg, png, json)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks required fields and applies defaults.
// Calling it more than once has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.Data == nil {
		if err := errors.ValidateDataPath(o.DataPath); err != nil {
			return err
		}
	}

	o.SetLayoutDefaults()
	if err := errors.ValidateDimensions(o.Width, o.Height); err != nil {
		return err
	}
	if err := errors.ValidatePadding(o.Padding); err != nil {
		return err
	}

	o.SetRenderDefaults()
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if o.Scale <= 0 || math.IsInf(o.Scale, 0) || math.IsNaN(o.Scale) {
		return errors.New(errors.ErrCodeInvalidInput, "scale must be positive and finite, got %v", o.Scale)
	}

	o.validated = true
	return nil
}

// SetLayoutDefaults sets default values for layout computation.
func (o *Options) SetLayoutDefaults() {
	if o.Width == 0 {
		o.Width = DefaultWidth
	}
	if o.Height == 0 {
		o.Height = DefaultHeight
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// PackOptions returns the layout options.
func (o *Options) PackOptions() pack.Options {
	return pack.Options{Width: o.Width, Height: o.Height, Padding: o.Padding}
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	k := cache.ArtifactKeyOpts{
		Format:  format,
		Width:   o.Width,
		Height:  o.Height,
		Padding: o.Padding,
		Focus:   o.Focus,
	}
	switch format {
	case FormatSVG:
		k.Title = o.Title
	case FormatPNG:
		k.Scale = o.Scale
	}
	return k
}

func (o *Options) source() string {
	if o.DataPath != "" {
		return o.DataPath
	}
	return "<data>"
}

func wrapStage(stage string, err error) error {
	return fmt.Errorf("%s: %w", stage, err)
}
