package quickcheck

import (
	"fmt"
	"unicode/utf8"
)

// Pair is one key/value entry of a generated mapping. Mappings are kept as
// ordered pair lists, never Go maps, so that no unordered iteration can leak
// into shrink or replay decisions.
type Pair struct {
	Key Value
	Val Value
}

type choiceData struct {
	alt  int
	elem Value
}

// Value is an immutable generated instance tagged with its descriptor. The
// engine never inspects a Value beyond its tag; accessors panic when used
// against the wrong kind, mirroring reflect.Value.
type Value struct {
	desc Descriptor
	data interface{}
}

// Desc returns the descriptor this value was generated from.
func (v Value) Desc() Descriptor { return v.desc }

func (v Value) mustKind(ks ...Kind) {
	for _, k := range ks {
		if v.desc.kind == k {
			return
		}
	}
	panic(fmt.Sprintf("quickcheck: value of kind %v accessed as %v", v.desc.kind, ks))
}

// Bool returns the boolean payload.
func (v Value) Bool() bool { v.mustKind(KindBool); return v.data.(bool) }

// Int returns the integer payload.
func (v Value) Int() int64 { v.mustKind(KindInt, KindIntRange); return v.data.(int64) }

// Float returns the floating point payload.
func (v Value) Float() float64 { v.mustKind(KindFloat); return v.data.(float64) }

// Rune returns the codepoint payload.
func (v Value) Rune() rune { v.mustKind(KindRune); return v.data.(rune) }

// Str returns the string payload.
func (v Value) Str() string { v.mustKind(KindString); return v.data.(string) }

// Bytes returns the byte string payload. The slice must not be mutated.
func (v Value) Bytes() []byte { v.mustKind(KindBytes); return v.data.([]byte) }

// Any returns the payload of a custom-typed value.
func (v Value) Any() interface{} { v.mustKind(KindCustom); return v.data }

// Seq returns the elements of a sequence. The slice must not be mutated.
func (v Value) Seq() []Value { v.mustKind(KindSequence); return v.data.([]Value) }

// Tuple returns the components of a tuple. The slice must not be mutated.
func (v Value) Tuple() []Value { v.mustKind(KindTuple); return v.data.([]Value) }

// Pairs returns the entries of a mapping. The slice must not be mutated.
func (v Value) Pairs() []Pair { v.mustKind(KindMapping); return v.data.([]Pair) }

// Present reports whether an optional value holds an element.
func (v Value) Present() bool { v.mustKind(KindOptional); return v.data != nil }

// Elem returns the element of a present optional value.
func (v Value) Elem() Value {
	v.mustKind(KindOptional)
	if v.data == nil {
		panic("quickcheck: Elem of absent optional")
	}
	return v.data.(Value)
}

// Alt returns the index of the alternative a choice value was drawn from.
func (v Value) Alt() int { v.mustKind(KindChoice); return v.data.(choiceData).alt }

// Chosen returns the inner value of a choice.
func (v Value) Chosen() Value { v.mustKind(KindChoice); return v.data.(choiceData).elem }

// Typed value constructors, for custom generators and tests.

// NewBool wraps a boolean.
func NewBool(b bool) Value { return Value{desc: Bool(), data: b} }

// NewInt wraps an integer under the unbounded integer descriptor.
func NewInt(i int64) Value { return Value{desc: Int(), data: i} }

// NewFloat wraps a float.
func NewFloat(f float64) Value { return Value{desc: Float(), data: f} }

// NewRune wraps a codepoint.
func NewRune(r rune) Value { return Value{desc: Rune(), data: r} }

// NewString wraps a string.
func NewString(s string) Value { return Value{desc: String(), data: s} }

// NewBytes wraps a byte string. The caller yields ownership of the slice.
func NewBytes(b []byte) Value { return Value{desc: Bytes(), data: b} }

// NewCustom wraps an arbitrary payload under a named custom descriptor.
func NewCustom(name string, payload interface{}) Value {
	return Value{desc: Custom(name), data: payload}
}

func makeValue(d Descriptor, data interface{}) Value { return Value{desc: d, data: data} }

// Interface lowers the value to plain Go data for display or encoding:
// booleans, int64, float64, single-rune strings, strings, []byte,
// []interface{} for sequences and tuples, nil or the element for optionals,
// map[string]interface{}{"alt","value"} for choices and [][2]interface{}
// for mappings.
func (v Value) Interface() interface{} {
	switch v.desc.kind {
	case KindBool:
		return v.data.(bool)
	case KindInt, KindIntRange:
		return v.data.(int64)
	case KindFloat:
		return v.data.(float64)
	case KindRune:
		return string(v.data.(rune))
	case KindString:
		return v.data.(string)
	case KindBytes:
		return v.data.([]byte)
	case KindCustom:
		return v.data
	case KindOptional:
		if v.data == nil {
			return nil
		}
		return v.data.(Value).Interface()
	case KindSequence, KindTuple:
		elems := v.data.([]Value)
		out := make([]interface{}, len(elems))
		for i, e := range elems {
			out[i] = e.Interface()
		}
		return out
	case KindChoice:
		c := v.data.(choiceData)
		return map[string]interface{}{"alt": c.alt, "value": c.elem.Interface()}
	case KindMapping:
		pairs := v.data.([]Pair)
		out := make([][2]interface{}, len(pairs))
		for i, p := range pairs {
			out[i] = [2]interface{}{p.Key.Interface(), p.Val.Interface()}
		}
		return out
	}
	return nil
}

// FromInterface lifts plain Go data (as produced by Interface, or decoded
// from JSON) into a Value of the given shape. Numbers may arrive as int,
// int64 or float64; mappings as [][2]... or []interface{} of two-element
// lists; choices as {"alt": i, "value": x}.
func FromInterface(d Descriptor, data interface{}) (Value, error) {
	switch d.kind {
	case KindBool:
		b, ok := data.(bool)
		if !ok {
			return Value{}, fmt.Errorf("%s: want bool, got %T", d.Key(), data)
		}
		return makeValue(d, b), nil
	case KindInt, KindIntRange:
		i, err := toInt64(data)
		if err != nil {
			return Value{}, fmt.Errorf("%s: %v", d.Key(), err)
		}
		return makeValue(d, i), nil
	case KindFloat:
		switch n := data.(type) {
		case float64:
			return makeValue(d, n), nil
		case int:
			return makeValue(d, float64(n)), nil
		case int64:
			return makeValue(d, float64(n)), nil
		}
		return Value{}, fmt.Errorf("%s: want float, got %T", d.Key(), data)
	case KindRune:
		s, ok := data.(string)
		if !ok || utf8.RuneCountInString(s) != 1 {
			return Value{}, fmt.Errorf("%s: want single-rune string, got %#v", d.Key(), data)
		}
		r, _ := utf8.DecodeRuneInString(s)
		return makeValue(d, r), nil
	case KindString:
		s, ok := data.(string)
		if !ok {
			return Value{}, fmt.Errorf("%s: want string, got %T", d.Key(), data)
		}
		return makeValue(d, s), nil
	case KindBytes:
		b, ok := data.([]byte)
		if !ok {
			s, sok := data.(string)
			if !sok {
				return Value{}, fmt.Errorf("%s: want bytes, got %T", d.Key(), data)
			}
			b = []byte(s)
		}
		return makeValue(d, b), nil
	case KindCustom:
		return makeValue(d, data), nil
	case KindOptional:
		if data == nil {
			return makeValue(d, nil), nil
		}
		elem, err := FromInterface(d.elems[0], data)
		if err != nil {
			return Value{}, err
		}
		return makeValue(d, elem), nil
	case KindSequence:
		items, ok := data.([]interface{})
		if !ok {
			return Value{}, fmt.Errorf("%s: want list, got %T", d.Key(), data)
		}
		elems := make([]Value, len(items))
		for i, it := range items {
			e, err := FromInterface(d.elems[0], it)
			if err != nil {
				return Value{}, err
			}
			elems[i] = e
		}
		return makeValue(d, elems), nil
	case KindTuple:
		items, ok := data.([]interface{})
		if !ok || len(items) != len(d.elems) {
			return Value{}, fmt.Errorf("%s: want %d-element list, got %#v", d.Key(), len(d.elems), data)
		}
		elems := make([]Value, len(items))
		for i, it := range items {
			e, err := FromInterface(d.elems[i], it)
			if err != nil {
				return Value{}, err
			}
			elems[i] = e
		}
		return makeValue(d, elems), nil
	case KindChoice:
		m, ok := data.(map[string]interface{})
		if !ok {
			return Value{}, fmt.Errorf("%s: want {alt, value} object, got %T", d.Key(), data)
		}
		alt, err := toInt64(m["alt"])
		if err != nil || alt < 0 || int(alt) >= len(d.elems) {
			return Value{}, fmt.Errorf("%s: bad alternative index %v", d.Key(), m["alt"])
		}
		elem, err := FromInterface(d.elems[alt], m["value"])
		if err != nil {
			return Value{}, err
		}
		return makeValue(d, choiceData{alt: int(alt), elem: elem}), nil
	case KindMapping:
		var items [][2]interface{}
		switch raw := data.(type) {
		case [][2]interface{}:
			items = raw
		case []interface{}:
			for _, it := range raw {
				kv, ok := it.([]interface{})
				if !ok || len(kv) != 2 {
					return Value{}, fmt.Errorf("%s: want [key, value] pairs, got %#v", d.Key(), it)
				}
				items = append(items, [2]interface{}{kv[0], kv[1]})
			}
		default:
			return Value{}, fmt.Errorf("%s: want pair list, got %T", d.Key(), data)
		}
		pairs := make([]Pair, len(items))
		for i, kv := range items {
			k, err := FromInterface(d.elems[0], kv[0])
			if err != nil {
				return Value{}, err
			}
			val, err := FromInterface(d.elems[1], kv[1])
			if err != nil {
				return Value{}, err
			}
			pairs[i] = Pair{Key: k, Val: val}
		}
		return makeValue(d, pairs), nil
	}
	return Value{}, fmt.Errorf("%w: cannot build values of kind %v", ErrBadDescriptor, d.kind)
}

func toInt64(data interface{}) (int64, error) {
	switch n := data.(type) {
	case int:
		return int64(n), nil
	case int64:
		return n, nil
	case float64:
		i := int64(n)
		if float64(i) != n {
			return 0, fmt.Errorf("non-integral number %v", n)
		}
		return i, nil
	}
	return 0, fmt.Errorf("want integer, got %T", data)
}

// valueEqual reports deep structural equality between two values. NaN floats
// compare unequal, matching Go semantics.
func valueEqual(a, b Value) bool {
	if a.desc.kind != b.desc.kind {
		return false
	}
	switch a.desc.kind {
	case KindBool:
		return a.data.(bool) == b.data.(bool)
	case KindInt, KindIntRange:
		return a.data.(int64) == b.data.(int64)
	case KindFloat:
		return a.data.(float64) == b.data.(float64)
	case KindRune:
		return a.data.(rune) == b.data.(rune)
	case KindString:
		return a.data.(string) == b.data.(string)
	case KindBytes:
		x, y := a.data.([]byte), b.data.([]byte)
		if len(x) != len(y) {
			return false
		}
		for i := range x {
			if x[i] != y[i] {
				return false
			}
		}
		return true
	case KindCustom:
		return a.data == b.data
	case KindOptional:
		if (a.data == nil) != (b.data == nil) {
			return false
		}
		if a.data == nil {
			return true
		}
		return valueEqual(a.data.(Value), b.data.(Value))
	case KindSequence, KindTuple:
		x, y := a.data.([]Value), b.data.([]Value)
		if len(x) != len(y) {
			return false
		}
		for i := range x {
			if !valueEqual(x[i], y[i]) {
				return false
			}
		}
		return true
	case KindChoice:
		x, y := a.data.(choiceData), b.data.(choiceData)
		return x.alt == y.alt && valueEqual(x.elem, y.elem)
	case KindMapping:
		x, y := a.data.([]Pair), b.data.([]Pair)
		if len(x) != len(y) {
			return false
		}
		for i := range x {
			if !valueEqual(x[i].Key, y[i].Key) || !valueEqual(x[i].Val, y[i].Val) {
				return false
			}
		}
		return true
	}
	return false
}
