package cache

// GraphKeyOpts are the build options that change a built graph.
// Only reproducible builds are cached, so seeds are always set.
type GraphKeyOpts struct {
	Format        string  `json:"format"`
	Direction     string  `json:"direction"`
	Reverse       bool    `json:"reverse"`
	Sort          bool    `json:"sort"`
	Randomize     bool    `json:"randomize"`
	Seed          uint64  `json:"seed,omitempty"`
	Density       float64 `json:"density,omitempty"`
	SelectionSeed uint64  `json:"selection_seed,omitempty"`
	Types         string  `json:"types"` // binary type tag, e.g. "int32int32"
}

// Keyer derives cache keys.
type Keyer interface {
	// GraphKey returns the key of a built graph.
	GraphKey(inputHash string, opts GraphKeyOpts) string
}

// DefaultKeyer produces "graph:<hash>" keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// GraphKey hashes the input hash together with the options.
func (DefaultKeyer) GraphKey(inputHash string, opts GraphKeyOpts) string {
	return hashKey("graph", inputHash, opts)
}

// ScopedKeyer prefixes every key, so that several tenants or tool versions
// can share one backend.
//
//	keyer := cache.NewScopedKeyer(cache.NewDefaultKeyer(), "v1:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer wraps inner (DefaultKeyer if nil) with a prefix.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

// GraphKey returns the prefixed key of the inner keyer.
func (k *ScopedKeyer) GraphKey(inputHash string, opts GraphKeyOpts) string {
	return k.prefix + k.inner.GraphKey(inputHash, opts)
}
