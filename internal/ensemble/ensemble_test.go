package ensemble

import (
	"errors"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/letterid/internal/letters"
)

func newRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed+1))
}

func newTestEnsemble(t *testing.T, attributes int, seed uint64) *Ensemble {
	t.Helper()
	e, err := New(attributes, newRand(seed))
	require.NoError(t, err)
	return e
}

func TestNew_InvalidAttributeCount(t *testing.T) {
	for _, n := range []int{0, -3} {
		_, err := New(n, newRand(1))
		var iac *ErrInvalidAttributeCount
		require.True(t, errors.As(err, &iac))
		assert.Equal(t, n, iac.Count)
	}
}

func TestNew_ClassifierCount(t *testing.T) {
	e := newTestEnsemble(t, 16, 1)
	assert.Equal(t, 325, e.Len())
	assert.Equal(t, PairCount, e.Len())
	assert.Equal(t, 16, e.AttributeCount())
}

func TestNew_EveryClassifierHasAttributeCount(t *testing.T) {
	e := newTestEnsemble(t, 7, 2)
	for _, p := range AllPairs() {
		clf, err := e.ClassifierFor(p.Low, p.High)
		require.NoError(t, err)
		assert.Equal(t, 7, clf.WeightCount())
	}
}

func TestClassifierFor_Symmetric(t *testing.T) {
	e := newTestEnsemble(t, 4, 3)
	seen := make(map[any]Pair)
	for _, a := range letters.All() {
		for _, b := range letters.All() {
			if a == b {
				continue
			}
			ab, err := e.ClassifierFor(a, b)
			require.NoError(t, err)
			ba, err := e.ClassifierFor(b, a)
			require.NoError(t, err)
			assert.Same(t, ab, ba)

			p, _ := NewPair(a, b)
			if prev, ok := seen[ab]; ok {
				assert.Equal(t, prev, p, "classifier shared by two pairs")
			}
			seen[ab] = p
		}
	}
	assert.Len(t, seen, 325)
}

func TestClassifierFor_SelfComparison(t *testing.T) {
	e := newTestEnsemble(t, 4, 4)
	clf, err := e.ClassifierFor('A', 'A')
	assert.Nil(t, clf)
	var sc *ErrSelfComparison
	require.True(t, errors.As(err, &sc))
	assert.Equal(t, letters.Label('A'), sc.Label)
}

func TestClassifierFor_OutOfRange(t *testing.T) {
	e := newTestEnsemble(t, 4, 5)
	tests := []struct {
		name string
		a, b letters.Label
		bad  letters.Label
	}{
		{"digit first", '1', 'B', '1'},
		{"digit second", 'B', '1', '1'},
		{"lowercase", 'a', 'Z', 'a'},
		{"bracket", 'A', '[', '['},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clf, err := e.ClassifierFor(tt.a, tt.b)
			assert.Nil(t, clf)
			var oor *letters.ErrLabelOutOfRange
			require.True(t, errors.As(err, &oor))
			assert.Equal(t, tt.bad, oor.Label)
		})
	}
}

func TestClassifierFor_NotFound(t *testing.T) {
	e := newTestEnsemble(t, 4, 6)
	e.classifiers['C'-'A']['D'-'A'] = nil

	_, err := e.ClassifierFor('D', 'C')
	var nf *ErrNotFound
	require.True(t, errors.As(err, &nf))
	assert.Equal(t, Pair{Low: 'C', High: 'D'}, nf.Pair)
}

func TestClassifiersInvolving(t *testing.T) {
	e := newTestEnsemble(t, 4, 7)
	for _, c := range letters.All() {
		got, err := e.ClassifiersInvolving(c)
		require.NoError(t, err)
		require.Len(t, got, 25)

		i := 0
		for _, other := range letters.All() {
			if other == c {
				continue
			}
			want, err := e.ClassifierFor(other, c)
			require.NoError(t, err)
			assert.Same(t, want, got[i])
			i++
		}
	}

	_, err := e.ClassifiersInvolving('?')
	var oor *letters.ErrLabelOutOfRange
	assert.True(t, errors.As(err, &oor))
}

func TestNewPair(t *testing.T) {
	p, err := NewPair('Q', 'C')
	require.NoError(t, err)
	assert.Equal(t, Pair{Low: 'C', High: 'Q'}, p)
	assert.Equal(t, "C/Q", p.String())

	pairs := AllPairs()
	require.Len(t, pairs, 325)
	assert.Equal(t, Pair{Low: 'A', High: 'B'}, pairs[0])
	assert.Equal(t, Pair{Low: 'Y', High: 'Z'}, pairs[len(pairs)-1])
	for _, p := range pairs {
		assert.Less(t, p.Low, p.High)
	}
}
