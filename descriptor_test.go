package quickcheck

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDescriptorKeys(t *testing.T) {
	cases := map[string]Descriptor{
		"boolean":                     Bool(),
		"integer":                     Int(),
		"integer-range(-5,200)":       IntRange(-5, 200),
		"float":                       Float(),
		"rune":                        Rune(),
		"string":                      String(),
		"bytes":                       Bytes(),
		"custom(widget)":              Custom("widget"),
		"optional(0.5,integer)":       Optional(Int()),
		"optional(0.25,string)":       OptionalP(String(), 0.25),
		"sequence(integer)":           Sequence(Int()),
		"tuple(integer,string)":       Tuple(Int(), String()),
		"choice(boolean,float)":       Choice(Bool(), Float()),
		"mapping(string,integer)":     Mapping(String(), Int()),
		"mapping-unique(rune,bytes)":  UniqueMapping(Rune(), Bytes()),
		"sequence(tuple(integer,sequence(boolean)))": Sequence(Tuple(Int(), Sequence(Bool()))),
	}
	for want, d := range cases {
		assert.Equal(t, want, d.Key())
	}
}

func TestDescriptorStructuralEquality(t *testing.T) {
	assert.True(t, Sequence(Int()).Equals(Sequence(Int())))
	assert.False(t, Sequence(Int()).Equals(Sequence(Float())))
	assert.False(t, Mapping(Bool(), Bool()).Equals(UniqueMapping(Bool(), Bool())))
	assert.False(t, Optional(Int()).Equals(OptionalP(Int(), 0.1)))
}

func TestParseDescriptorRoundTrip(t *testing.T) {
	descs := []Descriptor{
		Bool(),
		Int(),
		IntRange(0, 255),
		IntRange(-10, -1),
		Float(),
		Rune(),
		String(),
		Bytes(),
		Custom("user_id"),
		Optional(Int()),
		OptionalP(Sequence(String()), 0.125),
		Sequence(Mapping(String(), Int())),
		Tuple(Int(), Choice(Bool(), String()), Bytes()),
		UniqueMapping(Int(), Sequence(Float())),
	}
	for _, d := range descs {
		got, err := ParseDescriptor(d.Key())
		require.NoError(t, err, d.Key())
		assert.Equal(t, d.Key(), got.Key())
	}
}

func TestParseDescriptorDefaultedOptional(t *testing.T) {
	d, err := ParseDescriptor("optional(integer)")
	require.NoError(t, err)
	assert.Equal(t, Optional(Int()).Key(), d.Key())
}

func TestParseDescriptorSpaces(t *testing.T) {
	d, err := ParseDescriptor("mapping( string , sequence(integer) )")
	require.NoError(t, err)
	assert.Equal(t, "mapping(string,sequence(integer))", d.Key())
}

func TestParseDescriptorErrors(t *testing.T) {
	bad := []string{
		"",
		"frobnicator",
		"sequence",
		"sequence()",
		"sequence(integer,integer)",
		"tuple()",
		"mapping(string)",
		"integer-range(1)",
		"integer-range(a,b)",
		"optional(2.0,integer)",
		"sequence(integer))",
		"custom()",
	}
	for _, s := range bad {
		_, err := ParseDescriptor(s)
		assert.ErrorIs(t, err, ErrBadDescriptor, "input %q", s)
	}
}
