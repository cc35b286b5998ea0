package quickcheck

import (
	"math"
	"unicode/utf8"
)

// Builtin generators. Magnitude and length envelopes are functions of size
// only, and they only ever widen as size grows.

func genBool(src *Source, _ int) (Value, error) {
	return NewBool(src.Bool()), nil
}

func shrinkBool(v Value) []Value {
	if v.Bool() {
		return []Value{makeValue(v.desc, false)}
	}
	return nil
}

func genInt(src *Source, size int) (Value, error) {
	n, err := src.UniformInt(-int64(size), int64(size))
	if err != nil {
		return Value{}, err
	}
	return NewInt(n), nil
}

// genIntRange anchors the envelope at the bound closest to zero and widens
// it with size, staying inside [low, high] throughout.
func genIntRange(d Descriptor) GenFunc {
	return func(src *Source, size int) (Value, error) {
		base := clampInt64(0, d.low, d.high)
		lo := base - int64(size)
		if lo > base || lo < d.low { // wrapped or out of range
			lo = d.low
		}
		hi := base + int64(size)
		if hi < base || hi > d.high {
			hi = d.high
		}
		n, err := src.UniformInt(lo, hi)
		if err != nil {
			return Value{}, err
		}
		return makeValue(d, n), nil
	}
}

// shrinkInt64Chain lists strictly smaller integers, simplest first: zero,
// the positive twin of a negative, the halving chain toward zero, then one
// step toward zero.
func shrinkInt64Chain(v int64) []int64 {
	if v == 0 {
		return nil
	}
	var out []int64
	seen := map[int64]bool{v: true}
	add := func(c int64) {
		if !seen[c] {
			seen[c] = true
			out = append(out, c)
		}
	}
	add(0)
	if v < 0 && v != math.MinInt64 {
		add(-v)
	}
	for h := v / 2; h != 0; h /= 2 {
		add(h)
	}
	if v > 0 {
		add(v - 1)
	} else {
		add(v + 1)
	}
	return out
}

func shrinkInt(v Value) []Value {
	chain := shrinkInt64Chain(v.Int())
	out := make([]Value, 0, len(chain))
	for _, c := range chain {
		if v.desc.kind == KindIntRange && (c < v.desc.low || c > v.desc.high) {
			continue
		}
		out = append(out, makeValue(v.desc, c))
	}
	return out
}

// floatEdges is the pool of edge values the float generator occasionally
// emits. NaN and the infinities are dropped under WithoutSpecialFloats.
func floatEdges(specials bool) []float64 {
	edges := []float64{0, math.MaxFloat64, -math.MaxFloat64, math.SmallestNonzeroFloat64}
	if specials {
		edges = append(edges, math.NaN(), math.Inf(1), math.Inf(-1))
	}
	return edges
}

func genFloat(specials bool) GenFunc {
	edges := floatEdges(specials)
	return func(src *Source, size int) (Value, error) {
		if src.UniformLength(31) == 0 {
			i, err := src.UniformInt(0, int64(len(edges)-1))
			if err != nil {
				return Value{}, err
			}
			return NewFloat(edges[i]), nil
		}
		f := src.Float64() * float64(size)
		if src.Bool() {
			f = -f
		}
		return NewFloat(f), nil
	}
}

func shrinkFloat(v Value) []Value {
	f := v.Float()
	if f == 0 {
		return nil
	}
	zero := makeValue(v.desc, float64(0))
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return []Value{zero}
	}
	out := []Value{zero}
	if f < 0 {
		out = append(out, makeValue(v.desc, -f))
	}
	if t := math.Trunc(f); t != f && math.Abs(t) < math.Abs(f) {
		out = append(out, makeValue(v.desc, t))
	}
	h := f / 2
	for i := 0; i < 24 && math.Abs(h) >= 1e-9; i++ {
		out = append(out, makeValue(v.desc, h))
		h /= 2
	}
	return out
}

const maxRune = 0x10FFFF

func genRune(src *Source, size int) (Value, error) {
	maxCP := int64(0x20 + size*64)
	if maxCP > maxRune {
		maxCP = maxRune
	}
	for i := 0; i < 16; i++ {
		n, err := src.UniformInt(0, maxCP)
		if err != nil {
			return Value{}, err
		}
		if utf8.ValidRune(rune(n)) {
			return NewRune(rune(n)), nil
		}
	}
	// surrogate-dense corner of the draw range, settle for a space
	return NewRune(' '), nil
}

func shrinkRune(v Value) []Value {
	var out []Value
	for _, c := range shrinkInt64Chain(int64(v.Rune())) {
		if c >= 0 && c <= maxRune && utf8.ValidRune(rune(c)) {
			out = append(out, makeValue(v.desc, rune(c)))
		}
	}
	return out
}

func genString(src *Source, size int) (Value, error) {
	n := src.UniformLength(size)
	runes := make([]rune, n)
	for i := 0; i < n; i++ {
		r, err := genRune(src, size)
		if err != nil {
			return Value{}, err
		}
		runes[i] = r.Rune()
	}
	return NewString(string(runes)), nil
}

// shrinkString orders candidates like any sequence: empty, each one-rune
// removal, then each in-place rune simplification.
func shrinkString(v Value) []Value {
	runes := []rune(v.Str())
	if len(runes) == 0 {
		return nil
	}
	out := []Value{makeValue(v.desc, "")}
	if len(runes) > 1 {
		for i := range runes {
			rest := make([]rune, 0, len(runes)-1)
			rest = append(rest, runes[:i]...)
			rest = append(rest, runes[i+1:]...)
			out = append(out, makeValue(v.desc, string(rest)))
		}
	}
	for i := range runes {
		for _, c := range shrinkInt64Chain(int64(runes[i])) {
			if c < 0 || c > maxRune || !utf8.ValidRune(rune(c)) {
				continue
			}
			next := make([]rune, len(runes))
			copy(next, runes)
			next[i] = rune(c)
			out = append(out, makeValue(v.desc, string(next)))
		}
	}
	return out
}

func genBytes(src *Source, size int) (Value, error) {
	n := src.UniformLength(size)
	buf := make([]byte, n)
	for i := 0; i < n; i++ {
		b, err := src.UniformInt(0, 0xff)
		if err != nil {
			return Value{}, err
		}
		buf[i] = byte(b)
	}
	return NewBytes(buf), nil
}

func shrinkBytes(v Value) []Value {
	buf := v.Bytes()
	if len(buf) == 0 {
		return nil
	}
	out := []Value{makeValue(v.desc, []byte{})}
	if len(buf) > 1 {
		for i := range buf {
			rest := make([]byte, 0, len(buf)-1)
			rest = append(rest, buf[:i]...)
			rest = append(rest, buf[i+1:]...)
			out = append(out, makeValue(v.desc, rest))
		}
	}
	for i := range buf {
		for _, c := range shrinkInt64Chain(int64(buf[i])) {
			if c < 0 || c > 0xff {
				continue
			}
			next := make([]byte, len(buf))
			copy(next, buf)
			next[i] = byte(c)
			out = append(out, makeValue(v.desc, next))
		}
	}
	return out
}
