package mods

import "context"

// LayerKind tells how a layer was registered.
type LayerKind int

const (
	// LayerTransform runs the layers it wraps, then its own logic.
	LayerTransform LayerKind = iota
	// LayerBase reads the native file, runs the layers it wraps, and writes
	// the file.
	LayerBase
	// LayerRaw decides itself when to run the layers it wraps.
	LayerRaw
)

func (k LayerKind) String() string {
	switch k {
	case LayerTransform:
		return "transform"
	case LayerBase:
		return "base"
	case LayerRaw:
		return "raw"
	default:
		return "unknown"
	}
}

// Layer describes one registered layer of a chain. Prev is the index of
// the layer it wraps, or -1 for the identity at the bottom of the chain.
type Layer struct {
	Index int
	Name  string
	Kind  LayerKind
	Prev  int
}

// Registration identifies a registration the registry ignored.
type Registration struct {
	Platform Platform
	FileKey  string
	Name     string
}

type record struct {
	Layer
	run rawLayer
}

// chain holds the layers of one (platform, file key) in registration order.
// The last record is the outermost layer.
type chain struct {
	platform Platform
	fileKey  string
	seed     func() any
	records  []record
}

func (c *chain) layers() []Layer {
	out := make([]Layer, len(c.records))
	for i, r := range c.records {
		out[i] = r.Layer
	}
	return out
}

func (c *chain) head() int {
	return len(c.records) - 1
}

func (c *chain) count(kind LayerKind) int {
	n := 0
	for _, r := range c.records {
		if r.Kind == kind {
			n++
		}
	}
	return n
}

type registry struct {
	chains    map[Platform]map[string]*chain
	platforms []Platform
	keys      map[Platform][]string
	ignored   []Registration
}

func (r *registry) chain(p Platform, fileKey string) *chain {
	return r.chains[p][fileKey]
}

func (r *registry) add(p Platform, fileKey, name string, kind LayerKind, seed func() any, run rawLayer) {
	if !p.Supported() {
		r.ignored = append(r.ignored, Registration{Platform: p, FileKey: fileKey, Name: name})
		return
	}

	if r.chains == nil {
		r.chains = make(map[Platform]map[string]*chain)
		r.keys = make(map[Platform][]string)
	}
	byKey, ok := r.chains[p]
	if !ok {
		byKey = make(map[string]*chain)
		r.chains[p] = byKey
		r.platforms = append(r.platforms, p)
	}
	c, ok := byKey[fileKey]
	if !ok {
		c = &chain{platform: p, fileKey: fileKey, seed: seed}
		byKey[fileKey] = c
		r.keys[p] = append(r.keys[p], fileKey)
	}

	c.records = append(c.records, record{
		Layer: Layer{Index: len(c.records), Name: name, Kind: kind, Prev: c.head()},
		run:   run,
	})
}

func register[T any](cfg *Config, key Key[T], name string, kind LayerKind, mod Mod[T]) *Config {
	if name == "" {
		name = key.Name
	}
	seed := func() any { return key.seed() }
	cfg.registry.add(key.Platform, key.Name, name, kind, seed, mod.erase())
	return cfg
}

// Apply registers fn as the new outermost layer for key. fn receives the
// request produced by everything registered before it. Registering for an
// unsupported platform is recorded and otherwise ignored.
func Apply[T any](cfg *Config, key Key[T], name string, fn Transform[T]) *Config {
	mod := func(ctx context.Context, req *Request[T], next Next[T]) (*Request[T], error) {
		out, err := next(ctx, req)
		if err != nil {
			return nil, err
		}
		return fn(ctx, out)
	}
	return register(cfg, key, name, LayerTransform, mod)
}

// WithMod registers mod as the new outermost layer for key. Unlike Apply,
// mod chooses when to invoke the layers it wraps.
func WithMod[T any](cfg *Config, key Key[T], name string, mod Mod[T]) *Config {
	return register(cfg, key, name, LayerRaw, mod)
}
