// Package pipeline runs the load → build → export sequence of csrgraph.
//
// It centralizes what the command line tool does with an input file, so
// that every command (build, stats, batch, dot) loads, converts and caches
// graphs the same way.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Load: read a Market file or edge list into a native COO, or read a
//     binary CSR image directly
//  2. Build: convert the COO into the requested CSR structure
//  3. Export: write binary, Market, DIMACS and DOT/SVG outputs concurrently
//
// Reproducible builds (no unseeded randomness) are cached as binary images
// keyed by the input content hash and the build options. A seeded
// randomized build restores its vertex permutation from the seed on a hit.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    Input:     "web-Google.mtx",
//	    Direction: "undirected",
//	    Sort:      true,
//	    Exports:   pipeline.Exports{Binary: "web-Google.csr"},
//	}
//	result, err := pipeline.Execute[int32, int32](ctx, runner, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer result.Graph.Release()
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/csrgraph/pkg/errors"
	"github.com/matzehuels/csrgraph/pkg/graph"
	"github.com/matzehuels/csrgraph/pkg/graphio"
	"github.com/matzehuels/csrgraph/pkg/stats"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and config files
// =============================================================================

const (
	// DefaultFormat detects the input format from the file name and banner.
	DefaultFormat = string(graphio.FormatAuto)

	// DefaultDirection keeps the native direction of the input.
	DefaultDirection = "native"

	// DefaultDensity is the fraction of edges kept by an
	// undirected-to-directed conversion.
	DefaultDensity = graph.DefaultDensity

	// DefaultCacheTTL is how long built graphs stay in the cache.
	DefaultCacheTTL = 7 * 24 * time.Hour
)

// Directions is the set of accepted direction names.
var Directions = []string{"native", "directed", "undirected"}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Exports names the output files of a build. Empty paths are skipped.
type Exports struct {
	Binary string `json:"binary,omitempty"`
	Market string `json:"market,omitempty"`
	Dimacs string `json:"dimacs,omitempty"`
	Dot    string `json:"dot,omitempty"` // .dot writes DOT source, anything else SVG
}

// Formats lists the export kinds with a path set, in a fixed order.
func (e Exports) Formats() []string {
	var out []string
	for _, f := range []struct{ name, path string }{
		{"binary", e.Binary}, {"market", e.Market}, {"dimacs", e.Dimacs}, {"dot", e.Dot},
	} {
		if f.path != "" {
			out = append(out, f.name)
		}
	}
	return out
}

// Options contains all configuration for one pipeline run.
type Options struct {
	// Load options
	Input  string `json:"input"`
	Format string `json:"format,omitempty"`

	// Structure options
	Direction string `json:"direction,omitempty"`
	Reverse   bool   `json:"reverse,omitempty"`
	COO       bool   `json:"coo,omitempty"`

	// Build options
	Print         bool    `json:"print,omitempty"`
	Sort          bool    `json:"sort,omitempty"`
	Randomize     bool    `json:"randomize,omitempty"`
	Seed          *uint64 `json:"seed,omitempty"`
	Density       float64 `json:"density,omitempty"`
	SelectionSeed *uint64 `json:"selection_seed,omitempty"`
	MemoryLimit   uint64  `json:"memory_limit,omitempty"`

	// Output options
	Exports Exports `json:"exports,omitempty"`
	Stats   bool    `json:"stats,omitempty"`

	// Cache options
	Refresh  bool          `json:"refresh,omitempty"` // rebuild and overwrite the cached graph
	CacheTTL time.Duration `json:"cache_ttl,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result[V, E graph.Integer] struct {
	// Graph is the built graph. The caller owns it.
	Graph *graph.Graph[V, E]

	// InputHash is the content hash of the input file.
	InputHash string

	// Distribution and Analysis are set when Options.Stats is.
	Distribution *stats.Distribution
	Analysis     *stats.Analysis

	// Stats contains timing and size information.
	Stats Stats

	// CacheHit reports whether the graph came from the cache.
	CacheHit bool
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Vertices   int
	Edges      int
	Mode       graph.Mode
	LoadTime   time.Duration
	BuildTime  time.Duration
	ExportTime time.Duration
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateDirection checks that a direction name is valid.
func ValidateDirection(direction string) error {
	return errors.ValidateChoice("direction", direction, Directions...)
}

// ValidateFormat checks that an input format name is valid.
func ValidateFormat(format string) error {
	return errors.ValidateChoice("format", format, graphio.Formats...)
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks required fields and applies defaults.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := errors.ValidatePath(o.Input); err != nil {
		return err
	}
	o.SetDefaults()
	if err := ValidateFormat(o.Format); err != nil {
		return err
	}
	if err := ValidateDirection(o.Direction); err != nil {
		return err
	}
	if err := errors.ValidateDensity(o.Density); err != nil {
		return err
	}
	for _, p := range []string{o.Exports.Binary, o.Exports.Market, o.Exports.Dimacs, o.Exports.Dot} {
		if p == "" {
			continue
		}
		if err := errors.ValidatePath(p); err != nil {
			return err
		}
	}
	o.validated = true
	return nil
}

// SetDefaults fills unset fields with the package defaults.
func (o *Options) SetDefaults() {
	if o.Format == "" {
		o.Format = DefaultFormat
	}
	if o.Direction == "" {
		o.Direction = DefaultDirection
	}
	if o.Density == 0 {
		o.Density = DefaultDensity
	}
	if o.CacheTTL == 0 {
		o.CacheTTL = DefaultCacheTTL
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// Requested returns the structure asked for by the options.
func (o *Options) Requested() (graph.Structure, error) {
	dir, err := graph.ParseDirection(o.Direction)
	if err != nil {
		return graph.Structure{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid direction")
	}
	return graph.Structure{Direction: dir, Reverse: o.Reverse, COO: o.COO}, nil
}

// BuildOptions returns the converter options.
func (o *Options) BuildOptions() graph.Options {
	return graph.Options{
		Print:       o.Print,
		Sort:        o.Sort,
		Randomize:   o.Randomize,
		Seed:        o.Seed,
		Selector:    graph.RandomSelector{Density: o.Density, Seed: o.SelectionSeed},
		MemoryLimit: o.MemoryLimit,
		Logger:      o.Logger,
	}
}

// Reproducible reports whether the vertex labeling of two runs with these
// options is the same. Only reproducible builds are cached. An unseeded
// edge selection also varies between runs, but whether one happens depends
// on the input, so BuildGraph checks it after resolving the build mode.
func (o *Options) Reproducible() bool {
	return !o.Randomize || o.Seed != nil
}

// Cacheable reports whether the built graph may be read from and written
// to the cache. Print mode always converts, and the binary image does not
// carry the kept edge list.
func (o *Options) Cacheable() bool {
	return o.Reproducible() && !o.Print && !o.COO
}
