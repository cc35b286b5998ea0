package quickcheck

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSequenceLengthEnvelope(t *testing.T) {
	reg := NewRegistry()
	d := Sequence(Int())
	for _, size := range []int{0, 1, 6, 30} {
		v, err := reg.Generate(d, 17, size)
		require.NoError(t, err)
		assert.LessOrEqual(t, len(v.Seq()), size)
	}
}

func TestSequenceShrinkNeverGrows(t *testing.T) {
	reg := NewRegistry()
	d := Sequence(Int())
	var v Value
	for seed := int64(1); ; seed++ {
		require.Less(t, seed, int64(100), "no non-empty sequence drawn")
		got, err := reg.Generate(d, seed, 20)
		require.NoError(t, err)
		if len(got.Seq()) > 0 {
			v = got
			break
		}
	}

	cands, err := reg.Shrink(v)
	require.NoError(t, err)
	require.NotEmpty(t, cands)
	assert.Empty(t, cands[0].Seq(), "empty sequence comes first")
	for _, c := range cands {
		assert.LessOrEqual(t, len(c.Seq()), len(v.Seq()))
		assert.False(t, valueEqual(c, v), "candidates never include the original")
	}
}

// seqMeasure is (length, elementwise magnitude) folded into one well-founded
// number for small test inputs.
func seqMeasure(v Value) uint64 {
	m := uint64(len(v.Seq())) << 32
	for _, e := range v.Seq() {
		m += intMeasure(e.Int())
	}
	return m
}

func TestSequenceShrinkStrictlyDecreasing(t *testing.T) {
	reg := NewRegistry()
	v, err := reg.Generate(Sequence(Int()), 31, 12)
	require.NoError(t, err)
	cands, err := reg.Shrink(v)
	require.NoError(t, err)
	for _, c := range cands {
		assert.Less(t, seqMeasure(c), seqMeasure(v))
	}
}

func TestShrinkSelfApplicationTerminates(t *testing.T) {
	// repeatedly following the last (largest) candidate must still bottom
	// out well inside the defensive step ceiling
	reg := NewRegistry()
	for _, d := range []Descriptor{Int(), String(), Sequence(Int()), Tuple(Int(), Bool())} {
		v, err := reg.Generate(d, 47, 15)
		require.NoError(t, err)
		_, shrink, err := reg.Resolve(d)
		require.NoError(t, err)

		steps := 0
		for {
			cands := shrink(v)
			if len(cands) == 0 {
				break
			}
			v = cands[len(cands)-1]
			steps++
			require.Less(t, steps, 100000, "shrink of %s did not terminate", d.Key())
		}
	}
}

func TestOptionalGeneration(t *testing.T) {
	reg := NewRegistry()

	neverAbsent, err := reg.Generate(OptionalP(Int(), 0), 3, 10)
	require.NoError(t, err)
	assert.True(t, neverAbsent.Present())

	alwaysAbsent, err := reg.Generate(OptionalP(Int(), 1), 3, 10)
	require.NoError(t, err)
	assert.False(t, alwaysAbsent.Present())
}

func TestOptionalShrinkAbsentFirst(t *testing.T) {
	reg := NewRegistry()
	d := OptionalP(Int(), 0)
	v, err := reg.Generate(d, 3, 10)
	require.NoError(t, err)
	require.True(t, v.Present())

	cands, err := reg.Shrink(v)
	require.NoError(t, err)
	require.NotEmpty(t, cands)
	assert.False(t, cands[0].Present(), "absent comes first")

	absent := makeValue(d, nil)
	empty, err := reg.Shrink(absent)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestTupleShrinkHoldsOtherComponents(t *testing.T) {
	reg := NewRegistry()
	d := Tuple(Int(), String())
	v := makeValue(d, []Value{NewInt(4), NewString("ab")})

	cands, err := reg.Shrink(v)
	require.NoError(t, err)
	require.NotEmpty(t, cands)
	for _, c := range cands {
		comps := c.Tuple()
		require.Len(t, comps, 2)
		// exactly one component differs per candidate
		changed := 0
		if comps[0].Int() != int64(4) {
			changed++
		}
		if comps[1].Str() != "ab" {
			changed++
		}
		assert.Equal(t, 1, changed)
	}
	// integer candidates come before string candidates (declared order)
	assert.Equal(t, int64(0), cands[0].Tuple()[0].Int())
}

func TestChoiceTagsAlternative(t *testing.T) {
	reg := NewRegistry()
	d := Choice(Bool(), Int(), String())
	src := NewSource(9)
	gen, _, err := reg.Resolve(d)
	require.NoError(t, err)
	for i := 0; i < 200; i++ {
		v, err := gen(src, 10)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, v.Alt(), 0)
		assert.Less(t, v.Alt(), 3)
		assert.Equal(t, d.Elems()[v.Alt()].Key(), v.Chosen().Desc().Key())
	}
}

func TestChoiceShrinkPrefersEarlierAlternative(t *testing.T) {
	reg := NewRegistry()
	d := Choice(Bool(), Int())
	v := makeValue(d, choiceData{alt: 1, elem: NewInt(5)})

	cands, err := reg.Shrink(v)
	require.NoError(t, err)
	require.NotEmpty(t, cands)
	assert.Equal(t, 0, cands[0].Alt(), "earlier alternative first")
	assert.False(t, cands[0].Chosen().Bool())
	for _, c := range cands[1:] {
		assert.Equal(t, 1, c.Alt())
		assert.Less(t, abs64(c.Chosen().Int()), int64(5))
	}
}

func TestMappingDuplicateKeysAllowed(t *testing.T) {
	reg := NewRegistry()
	// boolean keys collide constantly; plain mappings must not care
	d := Mapping(Bool(), Int())
	for seed := int64(1); seed <= 20; seed++ {
		_, err := reg.Generate(d, seed, 10)
		require.NoError(t, err)
	}
}

func TestUniqueMappingExhaustsOnTinyKeyDomain(t *testing.T) {
	reg := NewRegistry()
	reg.Register(Custom("only"), ConstGen(NewCustom("only", "k")), nil)
	d := UniqueMapping(Custom("only"), Bool())

	sawExhaustion := false
	for seed := int64(1); seed <= 50; seed++ {
		v, err := reg.Generate(d, seed, 10)
		if err != nil {
			assert.ErrorIs(t, err, ErrGenerationExhausted)
			sawExhaustion = true
			continue
		}
		// a one-key domain can only ever fill zero or one slot
		assert.LessOrEqual(t, len(v.Pairs()), 1)
	}
	assert.True(t, sawExhaustion, "resample budget never tripped")
}

func TestUniqueMappingKeysUnique(t *testing.T) {
	reg := NewRegistry()
	d := UniqueMapping(Int(), Bool())
	for seed := int64(1); seed <= 20; seed++ {
		v, err := reg.Generate(d, seed, 8)
		if err != nil {
			require.True(t, errors.Is(err, ErrGenerationExhausted))
			continue
		}
		pairs := v.Pairs()
		for i := range pairs {
			for j := i + 1; j < len(pairs); j++ {
				assert.False(t, valueEqual(pairs[i].Key, pairs[j].Key))
			}
		}
	}
}

func TestUniqueMappingShrinkKeepsKeysUnique(t *testing.T) {
	d := UniqueMapping(Int(), Bool())
	v := makeValue(d, []Pair{
		{Key: NewInt(0), Val: NewBool(false)},
		{Key: NewInt(7), Val: NewBool(true)},
	})
	reg := NewRegistry()
	cands, err := reg.Shrink(v)
	require.NoError(t, err)
	for _, c := range cands {
		pairs := c.Pairs()
		for i := range pairs {
			for j := i + 1; j < len(pairs); j++ {
				assert.False(t, valueEqual(pairs[i].Key, pairs[j].Key),
					"candidate %v collided keys", c.Interface())
			}
		}
	}
}
