package quickcheck

// GenFunc produces one value of a fixed shape from the shared random source
// at the given size. Generators are stateless: given identical source state
// and size they must return identical values. A generator may fail when a
// constraint cannot be satisfied, which aborts the current trial only.
type GenFunc func(src *Source, size int) (Value, error)

// ShrinkFunc returns a finite, ordered list of candidates derived from v,
// each strictly smaller than v under the type's well-founded measure and
// simplest first. It must be pure: no randomness, no inclusion of v itself.
type ShrinkFunc func(v Value) []Value

// ConstGen returns a generator that ignores the source and size and always
// produces v.
func ConstGen(v Value) GenFunc {
	return func(*Source, int) (Value, error) { return v, nil }
}

// NoShrink is the shrink strategy of values that cannot be simplified.
func NoShrink(Value) []Value { return nil }

// zeroValue builds the canonical smallest value of a shape: zero, false,
// empty, absent. Choice zeroes to its first alternative. Custom types have
// no intrinsic zero, so ok is false for them (and for anything containing
// them).
func zeroValue(d Descriptor) (Value, bool) {
	switch d.kind {
	case KindBool:
		return makeValue(d, false), true
	case KindInt:
		return makeValue(d, int64(0)), true
	case KindIntRange:
		return makeValue(d, clampInt64(0, d.low, d.high)), true
	case KindFloat:
		return makeValue(d, float64(0)), true
	case KindRune:
		return makeValue(d, ' '), true
	case KindString:
		return makeValue(d, ""), true
	case KindBytes:
		return makeValue(d, []byte{}), true
	case KindOptional:
		return makeValue(d, nil), true
	case KindSequence:
		return makeValue(d, []Value{}), true
	case KindMapping:
		return makeValue(d, []Pair{}), true
	case KindTuple:
		elems := make([]Value, len(d.elems))
		for i, e := range d.elems {
			z, ok := zeroValue(e)
			if !ok {
				return Value{}, false
			}
			elems[i] = z
		}
		return makeValue(d, elems), true
	case KindChoice:
		if len(d.elems) == 0 {
			return Value{}, false
		}
		z, ok := zeroValue(d.elems[0])
		if !ok {
			return Value{}, false
		}
		return makeValue(d, choiceData{alt: 0, elem: z}), true
	}
	return Value{}, false
}

func clampInt64(v, low, high int64) int64 {
	if v < low {
		return low
	}
	if v > high {
		return high
	}
	return v
}
