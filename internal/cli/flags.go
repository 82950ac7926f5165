package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/csrgraph/pkg/graph"
	"github.com/matzehuels/csrgraph/pkg/graphio"
	"github.com/matzehuels/csrgraph/pkg/pipeline"
)

// buildFlags holds the flags shared by every command that builds a graph.
type buildFlags struct {
	config        string
	format        string
	direction     string
	reverse       bool
	coo           bool
	print         bool
	sort          bool
	randomize     bool
	seed          uint64
	density       float64
	selectionSeed uint64
	wide          bool
	memoryLimit   uint64
	noCache       bool
	refresh       bool
	redis         string
}

// settings are the resolved options that live outside pipeline.Options.
type settings struct {
	wide  bool
	cache cacheSettings
}

// register adds the build flags to cmd.
func (f *buildFlags) register(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.StringVar(&f.config, "config", "", "TOML configuration file")
	fs.StringVar(&f.format, "format", pipeline.DefaultFormat, "input format: auto, market, edgelist, binary")
	fs.StringVar(&f.direction, "direction", pipeline.DefaultDirection, "graph direction: native, directed, undirected")
	fs.BoolVar(&f.reverse, "reverse", false, "keep an in-edge adjacency (directed graphs)")
	fs.BoolVar(&f.coo, "coo", false, "keep the reduced edge list")
	fs.BoolVar(&f.print, "print", false, "report removed edges and conversion phases")
	fs.BoolVar(&f.sort, "sort", false, "sort every adjacency range")
	fs.BoolVar(&f.randomize, "randomize", false, "relabel vertices through a random permutation")
	fs.Uint64Var(&f.seed, "seed", 0, "seed of the vertex permutation (default: random)")
	fs.Float64Var(&f.density, "density", pipeline.DefaultDensity, "fraction of edges kept when converting undirected to directed")
	fs.Uint64Var(&f.selectionSeed, "selection-seed", 0, "seed of the edge selection (default: random)")
	fs.BoolVar(&f.wide, "wide", false, "use 64-bit vertex ids and offsets")
	fs.Uint64Var(&f.memoryLimit, "memory-limit", 0, "maximum bytes a build may allocate (0: unlimited)")
	fs.BoolVar(&f.noCache, "no-cache", false, "disable caching")
	fs.BoolVar(&f.refresh, "refresh", false, "rebuild and overwrite the cached graph")
	fs.StringVar(&f.redis, "redis", "", "cache built graphs in the Redis server at this address")

	_ = cmd.RegisterFlagCompletionFunc("format",
		cobra.FixedCompletions(graphio.Formats, cobra.ShellCompDirectiveNoFileComp))
	_ = cmd.RegisterFlagCompletionFunc("direction",
		cobra.FixedCompletions(pipeline.Directions, cobra.ShellCompDirectiveNoFileComp))
}

// resolve loads the configuration file, if any, and applies the flags set
// on the command line on top of it.
func (f *buildFlags) resolve(cmd *cobra.Command, input string) (pipeline.Options, settings, error) {
	var cfg pipeline.Config
	if f.config != "" {
		var err error
		if cfg, err = pipeline.LoadConfig(f.config); err != nil {
			return pipeline.Options{}, settings{}, err
		}
	}

	opts := cfg.Options(input)
	s := settings{
		wide:  cfg.Build.Wide,
		cache: cacheSettings{disabled: cfg.Cache.Disabled, redisAddr: cfg.Cache.RedisAddr},
	}

	set := cmd.Flags().Changed
	if set("format") {
		opts.Format = f.format
	}
	if set("direction") {
		opts.Direction = f.direction
	}
	if set("reverse") {
		opts.Reverse = f.reverse
	}
	if set("coo") {
		opts.COO = f.coo
	}
	if set("print") {
		opts.Print = f.print
	}
	if set("sort") {
		opts.Sort = f.sort
	}
	if set("randomize") {
		opts.Randomize = f.randomize
	}
	if set("seed") {
		opts.Seed = graph.Seed(f.seed)
	}
	if set("density") {
		opts.Density = f.density
	}
	if set("selection-seed") {
		opts.SelectionSeed = graph.Seed(f.selectionSeed)
	}
	if set("memory-limit") {
		opts.MemoryLimit = f.memoryLimit
	}
	if set("wide") {
		s.wide = f.wide
	}
	if set("no-cache") {
		s.cache.disabled = f.noCache
	}
	if set("redis") {
		s.cache.redisAddr = f.redis
	}
	opts.Refresh = f.refresh
	return opts, s, nil
}
