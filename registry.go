package quickcheck

import "fmt"

type entry struct {
	gen    GenFunc
	shrink ShrinkFunc
}

// Registry maps type descriptors to generator/shrinker pairs. It is
// read-mostly: built-ins are installed by NewRegistry and callers may add or
// override entries before any driver run starts. Registration is not
// synchronized against concurrent resolution; register first, run later.
type Registry struct {
	entries       map[string]entry
	specialFloats bool
}

// RegistryOption adjusts the built-in generators of a new registry.
type RegistryOption func(*Registry)

// WithoutSpecialFloats removes NaN and the infinities from the float
// generator's edge-value pool.
func WithoutSpecialFloats() RegistryOption {
	return func(r *Registry) { r.specialFloats = false }
}

// NewRegistry returns a registry pre-populated with generators and shrink
// strategies for every built-in kind.
func NewRegistry(opts ...RegistryOption) *Registry {
	r := &Registry{
		entries:       make(map[string]entry),
		specialFloats: true,
	}
	for _, opt := range opts {
		opt(r)
	}
	r.Register(Bool(), genBool, shrinkBool)
	r.Register(Int(), genInt, shrinkInt)
	r.Register(Float(), genFloat(r.specialFloats), shrinkFloat)
	r.Register(Rune(), genRune, shrinkRune)
	r.Register(String(), genString, shrinkString)
	r.Register(Bytes(), genBytes, shrinkBytes)
	return r
}

// Register installs or overrides the generator/shrinker pair for d. Last
// write wins, which is how built-ins are customized. A nil shrinker means
// values of this type are never simplified.
func (r *Registry) Register(d Descriptor, gen GenFunc, shrink ShrinkFunc) {
	if shrink == nil {
		shrink = NoShrink
	}
	r.entries[d.Key()] = entry{gen: gen, shrink: shrink}
}

// Resolve returns the generator/shrinker pair for d. Explicit registrations
// win; otherwise structural descriptors are synthesized recursively from
// their elements. Unknown leaves fail with ErrUnregisteredType.
func (r *Registry) Resolve(d Descriptor) (GenFunc, ShrinkFunc, error) {
	if e, ok := r.entries[d.Key()]; ok {
		return e.gen, e.shrink, nil
	}
	switch d.kind {
	case KindIntRange:
		return genIntRange(d), shrinkInt, nil
	case KindOptional:
		g, s, err := r.Resolve(d.elems[0])
		if err != nil {
			return nil, nil, err
		}
		return optionalGen(d, g), optionalShrink(d, s), nil
	case KindSequence:
		g, s, err := r.Resolve(d.elems[0])
		if err != nil {
			return nil, nil, err
		}
		return sequenceGen(d, g), sequenceShrink(d, s), nil
	case KindTuple, KindChoice:
		gens := make([]GenFunc, len(d.elems))
		shrinks := make([]ShrinkFunc, len(d.elems))
		for i, e := range d.elems {
			g, s, err := r.Resolve(e)
			if err != nil {
				return nil, nil, err
			}
			gens[i], shrinks[i] = g, s
		}
		if d.kind == KindTuple {
			return tupleGen(d, gens), tupleShrink(d, shrinks), nil
		}
		if len(gens) == 0 {
			return nil, nil, fmt.Errorf("%w: empty choice", ErrUnregisteredType)
		}
		return choiceGen(d, gens), choiceShrink(d, shrinks), nil
	case KindMapping:
		kg, ks, err := r.Resolve(d.elems[0])
		if err != nil {
			return nil, nil, err
		}
		vg, vs, err := r.Resolve(d.elems[1])
		if err != nil {
			return nil, nil, err
		}
		return mappingGen(d, kg, vg), mappingShrink(d, ks, vs), nil
	}
	return nil, nil, fmt.Errorf("%w: %s", ErrUnregisteredType, d.Key())
}

// defaultGenSize is the envelope used by the one-shot Generate helpers,
// matching a mid-run trial of a default driver configuration.
const defaultGenSize = 30

// Generate draws a single value of shape d from a fresh source seeded with
// seed at the given size.
func (r *Registry) Generate(d Descriptor, seed int64, size int) (Value, error) {
	gen, _, err := r.Resolve(d)
	if err != nil {
		return Value{}, err
	}
	return gen(NewSource(seed), size)
}

// Shrink returns the shrink candidates of v under its registered strategy.
func (r *Registry) Shrink(v Value) ([]Value, error) {
	_, shrink, err := r.Resolve(v.Desc())
	if err != nil {
		return nil, err
	}
	return shrink(v), nil
}

// The process-wide default registry backing the package-level API.
var defaultRegistry = NewRegistry()

// DefaultRegistry returns the process-wide registry used by the
// package-level Register, Generate and RunProperty functions.
func DefaultRegistry() *Registry { return defaultRegistry }

// Register installs a generator/shrinker pair into the default registry.
func Register(d Descriptor, gen GenFunc, shrink ShrinkFunc) {
	defaultRegistry.Register(d, gen, shrink)
}

// Generate draws one value of shape d from the default registry, seeded.
func Generate(d Descriptor, seed int64) (Value, error) {
	return defaultRegistry.Generate(d, seed, defaultGenSize)
}
