package quickcheck

import (
	"strconv"
	"strings"
)

// Kind enumerates the shapes a Descriptor can take.
type Kind int

const (
	KindBool Kind = iota + 1
	KindInt
	KindIntRange
	KindFloat
	KindRune
	KindString
	KindBytes
	KindCustom
	KindOptional
	KindSequence
	KindTuple
	KindChoice
	KindMapping
)

var kindNames = map[Kind]string{
	KindBool:     "boolean",
	KindInt:      "integer",
	KindIntRange: "integer-range",
	KindFloat:    "float",
	KindRune:     "rune",
	KindString:   "string",
	KindBytes:    "bytes",
	KindCustom:   "custom",
	KindOptional: "optional",
	KindSequence: "sequence",
	KindTuple:    "tuple",
	KindChoice:   "choice",
	KindMapping:  "mapping",
}

func (k Kind) String() string {
	if n, ok := kindNames[k]; ok {
		return n
	}
	return "unknown"
}

// Descriptor identifies the shape of a generated value. Descriptors are
// structural: two descriptors built the same way render the same Key, and
// the Key is what the registry indexes on. The element graph is always a
// tree, recursive shapes are not expressible.
type Descriptor struct {
	kind   Kind
	elems  []Descriptor
	name   string  // custom type name
	low    int64   // integer-range lower bound
	high   int64   // integer-range upper bound
	prob   float64 // optional absence probability
	unique bool    // mapping unique-keys flag
}

// DefaultAbsentProbability is the chance an Optional generates "absent".
const DefaultAbsentProbability = 0.5

// Bool describes a boolean.
func Bool() Descriptor { return Descriptor{kind: KindBool} }

// Int describes an integer whose magnitude envelope grows with size.
func Int() Descriptor { return Descriptor{kind: KindInt} }

// IntRange describes an integer bounded to [low, high].
func IntRange(low, high int64) Descriptor {
	return Descriptor{kind: KindIntRange, low: low, high: high}
}

// Float describes a floating point value.
func Float() Descriptor { return Descriptor{kind: KindFloat} }

// Rune describes a single valid unicode codepoint.
func Rune() Descriptor { return Descriptor{kind: KindRune} }

// String describes a text string, possibly empty.
func String() Descriptor { return Descriptor{kind: KindString} }

// Bytes describes a byte string, possibly empty.
func Bytes() Descriptor { return Descriptor{kind: KindBytes} }

// Custom describes an opaque user type. It resolves only if a generator was
// explicitly registered for it.
func Custom(name string) Descriptor { return Descriptor{kind: KindCustom, name: name} }

// Optional describes a value of elem that is absent half the time.
func Optional(elem Descriptor) Descriptor {
	return OptionalP(elem, DefaultAbsentProbability)
}

// OptionalP describes a value of elem that is absent with probability p.
func OptionalP(elem Descriptor, p float64) Descriptor {
	return Descriptor{kind: KindOptional, prob: p, elems: []Descriptor{elem}}
}

// Sequence describes a variable-length list of elem values.
func Sequence(elem Descriptor) Descriptor {
	return Descriptor{kind: KindSequence, elems: []Descriptor{elem}}
}

// Tuple describes a fixed-arity product of the given components.
func Tuple(components ...Descriptor) Descriptor {
	return Descriptor{kind: KindTuple, elems: append([]Descriptor(nil), components...)}
}

// Choice describes a union of the given alternatives. Generated values carry
// the index of the alternative chosen; shrinking prefers earlier, simpler
// alternatives.
func Choice(alternatives ...Descriptor) Descriptor {
	return Descriptor{kind: KindChoice, elems: append([]Descriptor(nil), alternatives...)}
}

// Mapping describes a list of key/value pairs. Duplicate keys are permitted.
func Mapping(key, val Descriptor) Descriptor {
	return Descriptor{kind: KindMapping, elems: []Descriptor{key, val}}
}

// UniqueMapping is Mapping with duplicate keys resampled away. Generation
// fails with ErrGenerationExhausted when the resample budget runs out.
func UniqueMapping(key, val Descriptor) Descriptor {
	d := Mapping(key, val)
	d.unique = true
	return d
}

// Kind reports the descriptor's shape kind.
func (d Descriptor) Kind() Kind { return d.kind }

// Elems returns the child descriptors, in declared order.
func (d Descriptor) Elems() []Descriptor {
	return append([]Descriptor(nil), d.elems...)
}

// Name reports the custom type name, empty for built-in kinds.
func (d Descriptor) Name() string { return d.name }

// Bounds reports the inclusive bounds of an integer-range descriptor.
func (d Descriptor) Bounds() (low, high int64) { return d.low, d.high }

// AbsentProbability reports the optional descriptor's absence probability.
func (d Descriptor) AbsentProbability() float64 { return d.prob }

// UniqueKeys reports whether a mapping descriptor requires unique keys.
func (d Descriptor) UniqueKeys() bool { return d.unique }

// Key renders the canonical textual form of the descriptor. Structurally
// equal descriptors render equal keys; ParseDescriptor accepts the output.
func (d Descriptor) Key() string {
	var b strings.Builder
	d.writeKey(&b)
	return b.String()
}

func (d Descriptor) writeKey(b *strings.Builder) {
	switch d.kind {
	case KindIntRange:
		b.WriteString("integer-range(")
		b.WriteString(strconv.FormatInt(d.low, 10))
		b.WriteByte(',')
		b.WriteString(strconv.FormatInt(d.high, 10))
		b.WriteByte(')')
	case KindCustom:
		b.WriteString("custom(")
		b.WriteString(d.name)
		b.WriteByte(')')
	case KindOptional:
		b.WriteString("optional(")
		b.WriteString(strconv.FormatFloat(d.prob, 'g', -1, 64))
		b.WriteByte(',')
		d.elems[0].writeKey(b)
		b.WriteByte(')')
	case KindSequence, KindTuple, KindChoice:
		b.WriteString(d.kind.String())
		b.WriteByte('(')
		for i, e := range d.elems {
			if i > 0 {
				b.WriteByte(',')
			}
			e.writeKey(b)
		}
		b.WriteByte(')')
	case KindMapping:
		if d.unique {
			b.WriteString("mapping-unique(")
		} else {
			b.WriteString("mapping(")
		}
		d.elems[0].writeKey(b)
		b.WriteByte(',')
		d.elems[1].writeKey(b)
		b.WriteByte(')')
	default:
		b.WriteString(d.kind.String())
	}
}

func (d Descriptor) String() string { return d.Key() }

// Equals reports structural equality of two descriptors.
func (d Descriptor) Equals(other Descriptor) bool {
	return d.Key() == other.Key()
}
