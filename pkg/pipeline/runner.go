package pipeline

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/csrgraph/pkg/cache"
	"github.com/matzehuels/csrgraph/pkg/errors"
	"github.com/matzehuels/csrgraph/pkg/graph"
	"github.com/matzehuels/csrgraph/pkg/graphio"
	"github.com/matzehuels/csrgraph/pkg/observability"
	"github.com/matzehuels/csrgraph/pkg/stats"
)

// Runner encapsulates pipeline execution with caching.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the complete load → build → export pipeline with caching.
// V and E select the vertex and edge integer widths of the built graph.
func Execute[V, E graph.Integer](ctx context.Context, r *Runner, opts Options) (*Result[V, E], error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	result := &Result[V, E]{}
	g, err := BuildGraph(ctx, r, opts, result)
	if err != nil {
		return nil, err
	}
	result.Graph = g
	result.Stats.Vertices = g.NumVertices()
	result.Stats.Edges = g.NumEdges()

	r.Logger.Info("built graph",
		"vertices", g.NumVertices(),
		"edges", g.NumEdges(),
		"structure", g.Structure(),
		"cached", result.CacheHit,
		"duration", result.Stats.BuildTime)

	if opts.Stats {
		d := stats.DegreeDistribution(g)
		a := stats.Analyze(g)
		result.Distribution, result.Analysis = &d, &a
	}

	if formats := opts.Exports.Formats(); len(formats) > 0 {
		start := time.Now()
		observability.Pipeline().OnExportStart(ctx, formats)
		err := Export(ctx, g, opts.Exports)
		result.Stats.ExportTime = time.Since(start)
		observability.Pipeline().OnExportComplete(ctx, formats, result.Stats.ExportTime, err)
		if err != nil {
			g.Release()
			return nil, fmt.Errorf("export: %w", err)
		}
		r.Logger.Info("exported graph",
			"formats", formats,
			"duration", result.Stats.ExportTime)
	}

	return result, nil
}

// BuildGraph loads opts.Input and converts it, or reads the graph from the
// cache when the build is reproducible. Load and build timings and the
// cache outcome are recorded in result. A directed build that selects
// edges from an undirected input is only stored when the selection is
// seeded.
func BuildGraph[V, E graph.Integer](ctx context.Context, r *Runner, opts Options, result *Result[V, E]) (*graph.Graph[V, E], error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	format, err := inputFormat(opts)
	if err != nil {
		return nil, err
	}
	if format == graphio.FormatBinary {
		return loadBinary[V, E](ctx, r, opts, result)
	}

	var key string
	if opts.Cacheable() {
		hash, err := cache.HashFile(opts.Input)
		if err != nil {
			return nil, inputError(opts.Input, err)
		}
		result.InputHash = hash
		key = r.Keyer.GraphKey(hash, opts.keyOpts(format, graphio.TypeTag[V, E]()))
		if !opts.Refresh {
			if g := cached[V, E](ctx, r, key); g != nil {
				if err := restorePermutation(g, opts); err != nil {
					g.Release()
					return nil, err
				}
				result.CacheHit = true
				return g, nil
			}
		}
	}

	loadStart := time.Now()
	observability.Pipeline().OnLoadStart(ctx, string(format), opts.Input)
	coo, err := graphio.ReadFile[V](opts.Input, format)
	result.Stats.LoadTime = time.Since(loadStart)
	observability.Pipeline().OnLoadComplete(ctx, string(format), opts.Input, len(coo.Edges), result.Stats.LoadTime, err)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	requested, err := opts.Requested()
	if err != nil {
		return nil, err
	}
	mode, _ := graph.Resolve(coo.Direction, requested)
	result.Stats.Mode = mode

	buildStart := time.Now()
	observability.Pipeline().OnBuildStart(ctx, mode.String(), coo.NumVertices, uint64(len(coo.Edges)))
	g, err := graph.Build[V, E](coo, requested, opts.BuildOptions())
	result.Stats.BuildTime = time.Since(buildStart)
	edges := 0
	if g != nil {
		edges = g.NumEdges()
	}
	observability.Pipeline().OnBuildComplete(ctx, mode.String(), edges, result.Stats.BuildTime, err)
	if err != nil {
		return nil, err
	}

	if key != "" && mode == graph.ModeUndirectedToDirected && opts.SelectionSeed == nil {
		r.Logger.Debug("not caching an unseeded edge selection", "input", opts.Input)
		key = ""
	}
	if key != "" {
		store(ctx, r, key, g, opts.CacheTTL)
	}
	return g, nil
}

// restorePermutation reattaches the relabeling of a seeded randomized
// build, which the binary image does not carry.
func restorePermutation[V, E graph.Integer](g *graph.Graph[V, E], opts Options) error {
	if !opts.Randomize || opts.Seed == nil {
		return nil
	}
	return g.SetPermutation(graph.SeededPermutation[V](g.NumVertices(), *opts.Seed))
}

// loadBinary reads a previously built graph. Structure options do not
// apply to it.
func loadBinary[V, E graph.Integer](ctx context.Context, r *Runner, opts Options, result *Result[V, E]) (*graph.Graph[V, E], error) {
	start := time.Now()
	observability.Pipeline().OnLoadStart(ctx, string(graphio.FormatBinary), opts.Input)
	g, err := graphio.ReadBinaryFile[V, E](opts.Input)
	result.Stats.LoadTime = time.Since(start)
	edges := 0
	if g != nil {
		edges = g.NumEdges()
	}
	observability.Pipeline().OnLoadComplete(ctx, string(graphio.FormatBinary), opts.Input, edges, result.Stats.LoadTime, err)
	if err != nil {
		return nil, err
	}
	if opts.Direction != DefaultDirection && opts.Direction != g.Structure().Direction.String() {
		r.Logger.Warn("binary input keeps its stored structure",
			"requested", opts.Direction,
			"stored", g.Structure())
	}
	return g, nil
}

// cached returns the graph stored under key, or nil on a miss. Entries that
// fail to decode are dropped.
func cached[V, E graph.Integer](ctx context.Context, r *Runner, key string) *graph.Graph[V, E] {
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil {
		r.Logger.Warn("cache lookup failed", "err", err)
		return nil
	}
	if !hit {
		observability.Cache().OnCacheMiss(ctx, "graph")
		return nil
	}
	g, err := graphio.UnmarshalBinary[V, E](data)
	if err != nil {
		r.Logger.Warn("dropping unreadable cache entry", "err", err)
		_ = r.Cache.Delete(ctx, key)
		observability.Cache().OnCacheMiss(ctx, "graph")
		return nil
	}
	observability.Cache().OnCacheHit(ctx, "graph")
	return g
}

// store writes the binary image of g to the cache. Failures are logged;
// the build itself succeeded.
func store[V, E graph.Integer](ctx context.Context, r *Runner, key string, g *graph.Graph[V, E], ttl time.Duration) {
	data, err := graphio.MarshalBinary(g)
	if err != nil {
		r.Logger.Warn("cache encode failed", "err", err)
		return
	}
	if err := r.Cache.Set(ctx, key, data, ttl); err != nil {
		r.Logger.Warn("cache write failed", "err", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, "graph", len(data))
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}

func inputFormat(opts Options) (graphio.Format, error) {
	format, err := graphio.ParseFormat(opts.Format)
	if err != nil {
		return "", err
	}
	if format == graphio.FormatAuto {
		return graphio.DetectFormat(opts.Input)
	}
	return format, nil
}

func inputError(path string, err error) error {
	if os.IsNotExist(err) {
		return errors.Wrap(errors.ErrCodeFileNotFound, err, "input %s not found", path)
	}
	return errors.Wrap(errors.ErrCodeInvalidPath, err, "read %s", path)
}

func (o *Options) keyOpts(format graphio.Format, types string) cache.GraphKeyOpts {
	k := cache.GraphKeyOpts{
		Format:    string(format),
		Direction: o.Direction,
		Reverse:   o.Reverse,
		Sort:      o.Sort,
		Randomize: o.Randomize,
		Types:     types,
	}
	if o.Randomize && o.Seed != nil {
		k.Seed = *o.Seed
	}
	if o.Direction == "directed" {
		k.Density = o.Density
		if o.SelectionSeed != nil {
			k.SelectionSeed = *o.SelectionSeed
		}
	}
	return k
}
