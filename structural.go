package quickcheck

import "fmt"

// Structural combinators. Children are always drawn at the caller's size,
// undivided: size bounds nesting breadth, not element complexity.

func optionalGen(d Descriptor, elem GenFunc) GenFunc {
	return func(src *Source, size int) (Value, error) {
		if src.Float64() < d.prob {
			return makeValue(d, nil), nil
		}
		v, err := elem(src, size)
		if err != nil {
			return Value{}, err
		}
		return makeValue(d, v), nil
	}
}

func optionalShrink(d Descriptor, elem ShrinkFunc) ShrinkFunc {
	return func(v Value) []Value {
		if !v.Present() {
			return nil
		}
		out := []Value{makeValue(d, nil)}
		for _, c := range elem(v.Elem()) {
			out = append(out, makeValue(d, c))
		}
		return out
	}
}

func sequenceGen(d Descriptor, elem GenFunc) GenFunc {
	return func(src *Source, size int) (Value, error) {
		n := src.UniformLength(size)
		elems := make([]Value, n)
		for i := 0; i < n; i++ {
			v, err := elem(src, size)
			if err != nil {
				return Value{}, err
			}
			elems[i] = v
		}
		return makeValue(d, elems), nil
	}
}

// sequenceShrink candidates, in order: empty, every single-element removal,
// every in-place element shrink. Length never grows.
func sequenceShrink(d Descriptor, elem ShrinkFunc) ShrinkFunc {
	return func(v Value) []Value {
		elems := v.Seq()
		if len(elems) == 0 {
			return nil
		}
		out := []Value{makeValue(d, []Value{})}
		if len(elems) > 1 {
			for i := range elems {
				rest := make([]Value, 0, len(elems)-1)
				rest = append(rest, elems[:i]...)
				rest = append(rest, elems[i+1:]...)
				out = append(out, makeValue(d, rest))
			}
		}
		for i := range elems {
			for _, c := range elem(elems[i]) {
				next := make([]Value, len(elems))
				copy(next, elems)
				next[i] = c
				out = append(out, makeValue(d, next))
			}
		}
		return out
	}
}

func tupleGen(d Descriptor, comps []GenFunc) GenFunc {
	return func(src *Source, size int) (Value, error) {
		elems := make([]Value, len(comps))
		for i, g := range comps {
			v, err := g(src, size)
			if err != nil {
				return Value{}, err
			}
			elems[i] = v
		}
		return makeValue(d, elems), nil
	}
}

// tupleShrink simplifies one component at a time, in declared order, holding
// the others fixed.
func tupleShrink(d Descriptor, comps []ShrinkFunc) ShrinkFunc {
	return func(v Value) []Value {
		elems := v.Tuple()
		var out []Value
		for i := range elems {
			for _, c := range comps[i](elems[i]) {
				next := make([]Value, len(elems))
				copy(next, elems)
				next[i] = c
				out = append(out, makeValue(d, next))
			}
		}
		return out
	}
}

func choiceGen(d Descriptor, alts []GenFunc) GenFunc {
	return func(src *Source, size int) (Value, error) {
		i, err := src.UniformInt(0, int64(len(alts)-1))
		if err != nil {
			return Value{}, err
		}
		v, err := alts[i](src, size)
		if err != nil {
			return Value{}, err
		}
		return makeValue(d, choiceData{alt: int(i), elem: v}), nil
	}
}

// choiceShrink tries earlier-declared alternatives (at their canonical zero
// value) before simplifying within the current one.
func choiceShrink(d Descriptor, alts []ShrinkFunc) ShrinkFunc {
	return func(v Value) []Value {
		cur := v.Alt()
		var out []Value
		for j := 0; j < cur; j++ {
			if z, ok := zeroValue(d.elems[j]); ok {
				out = append(out, makeValue(d, choiceData{alt: j, elem: z}))
			}
		}
		for _, c := range alts[cur](v.Chosen()) {
			out = append(out, makeValue(d, choiceData{alt: cur, elem: c}))
		}
		return out
	}
}

// mappingResampleBudget bounds the extra key draws a unique-keys mapping may
// spend before the trial is abandoned.
const mappingResampleBudget = 100

func mappingGen(d Descriptor, key, val GenFunc) GenFunc {
	return func(src *Source, size int) (Value, error) {
		n := src.UniformLength(size)
		pairs := make([]Pair, 0, n)
		budget := mappingResampleBudget
		for i := 0; i < n; i++ {
			k, err := key(src, size)
			if err != nil {
				return Value{}, err
			}
			if d.unique {
				for containsKey(pairs, k) {
					if budget == 0 {
						return Value{}, fmt.Errorf("%w: %d unique keys of %s",
							ErrGenerationExhausted, n, d.elems[0].Key())
					}
					budget--
					if k, err = key(src, size); err != nil {
						return Value{}, err
					}
				}
			}
			v, err := val(src, size)
			if err != nil {
				return Value{}, err
			}
			pairs = append(pairs, Pair{Key: k, Val: v})
		}
		return makeValue(d, pairs), nil
	}
}

func containsKey(pairs []Pair, k Value) bool {
	for _, p := range pairs {
		if valueEqual(p.Key, k) {
			return true
		}
	}
	return false
}

// mappingShrink works like a sequence over pairs; under unique keys any
// candidate that would collide two keys is dropped.
func mappingShrink(d Descriptor, key, val ShrinkFunc) ShrinkFunc {
	return func(v Value) []Value {
		pairs := v.Pairs()
		if len(pairs) == 0 {
			return nil
		}
		out := []Value{makeValue(d, []Pair{})}
		if len(pairs) > 1 {
			for i := range pairs {
				rest := make([]Pair, 0, len(pairs)-1)
				rest = append(rest, pairs[:i]...)
				rest = append(rest, pairs[i+1:]...)
				out = append(out, makeValue(d, rest))
			}
		}
		for i := range pairs {
			for _, c := range key(pairs[i].Key) {
				if d.unique && collides(pairs, i, c) {
					continue
				}
				next := make([]Pair, len(pairs))
				copy(next, pairs)
				next[i] = Pair{Key: c, Val: pairs[i].Val}
				out = append(out, makeValue(d, next))
			}
			for _, c := range val(pairs[i].Val) {
				next := make([]Pair, len(pairs))
				copy(next, pairs)
				next[i] = Pair{Key: pairs[i].Key, Val: c}
				out = append(out, makeValue(d, next))
			}
		}
		return out
	}
}

func collides(pairs []Pair, skip int, k Value) bool {
	for i, p := range pairs {
		if i != skip && valueEqual(p.Key, k) {
			return true
		}
	}
	return false
}
