package pipeline

import (
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/csrgraph/pkg/errors"
)

// Config is the TOML configuration file of the command line tool.
//
//	[structure]
//	direction = "undirected"
//
//	[build]
//	sort = true
//	seed = 42
//
//	[export]
//	binary = "out.csr"
//
//	[cache]
//	ttl = "24h"
type Config struct {
	Structure StructureConfig `toml:"structure"`
	Build     BuildConfig     `toml:"build"`
	Export    ExportConfig    `toml:"export"`
	Cache     CacheConfig     `toml:"cache"`
}

// StructureConfig selects the structure of the built graph.
type StructureConfig struct {
	Direction string `toml:"direction"`
	Reverse   bool   `toml:"reverse"`
	COO       bool   `toml:"coo"`
}

// BuildConfig holds converter options.
type BuildConfig struct {
	Format        string  `toml:"format"`
	Print         bool    `toml:"print"`
	Sort          bool    `toml:"sort"`
	Randomize     bool    `toml:"randomize"`
	Seed          *uint64 `toml:"seed"`
	Density       float64 `toml:"density"`
	SelectionSeed *uint64 `toml:"selection_seed"`
	Wide          bool    `toml:"wide"`
	MemoryLimit   uint64  `toml:"memory_limit"`
}

// ExportConfig names output files.
type ExportConfig struct {
	Binary string `toml:"binary"`
	Market string `toml:"market"`
	Dimacs string `toml:"dimacs"`
	Dot    string `toml:"dot"`
}

// CacheConfig selects the cache backend.
type CacheConfig struct {
	Disabled  bool          `toml:"disabled"`
	RedisAddr string        `toml:"redis_addr"`
	TTL       time.Duration `toml:"ttl"`
}

// LoadConfig reads a TOML configuration file. Unknown keys are an error.
func LoadConfig(path string) (Config, error) {
	if err := errors.ValidatePath(path); err != nil {
		return Config{}, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Config{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "config %s not found", path)
		}
		return Config{}, errors.Wrap(errors.ErrCodeInvalidPath, err, "read config %s", path)
	}
	return ParseConfig(string(data))
}

// ParseConfig decodes TOML configuration text.
func ParseConfig(data string) (Config, error) {
	var cfg Config
	md, err := toml.Decode(data, &cfg)
	if err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "parse config")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, errors.New(errors.ErrCodeInvalidInput, "unknown config keys: %s", strings.Join(keys, ", "))
	}
	return cfg, nil
}

// Options converts the configuration into pipeline options for input.
func (c Config) Options(input string) Options {
	return Options{
		Input:         input,
		Format:        c.Build.Format,
		Direction:     c.Structure.Direction,
		Reverse:       c.Structure.Reverse,
		COO:           c.Structure.COO,
		Print:         c.Build.Print,
		Sort:          c.Build.Sort,
		Randomize:     c.Build.Randomize,
		Seed:          c.Build.Seed,
		Density:       c.Build.Density,
		SelectionSeed: c.Build.SelectionSeed,
		MemoryLimit:   c.Build.MemoryLimit,
		Exports: Exports{
			Binary: c.Export.Binary,
			Market: c.Export.Market,
			Dimacs: c.Export.Dimacs,
			Dot:    c.Export.Dot,
		},
		CacheTTL: c.Cache.TTL,
	}
}
