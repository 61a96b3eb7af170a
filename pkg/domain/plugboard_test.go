package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlugboard_Symmetry(t *testing.T) {
	pb, err := NewPlugboard(Pair{'A', 'B'}, Pair{'c', 'd'})
	require.NoError(t, err)

	assert.Equal(t, 'B', pb.Swap('A'))
	assert.Equal(t, 'A', pb.Swap('B'))
	assert.Equal(t, 'D', pb.Swap('C'))
	assert.Equal(t, 'C', pb.Swap('D'))

	for _, c := range "EFGHIJKLMNOPQRSTUVWXYZ" {
		assert.Equal(t, c, pb.Swap(c), "unplugged letters map to themselves")
	}

	assert.Equal(t, []Pair{{'A', 'B'}, {'C', 'D'}}, pb.Pairs())
}

func TestPlugboard_Empty(t *testing.T) {
	pb, err := NewPlugboard()
	require.NoError(t, err)
	for _, c := range Alphabet {
		assert.Equal(t, c, pb.Swap(c))
	}
	assert.Empty(t, pb.Pairs())
}

func TestPlugboard_Errors(t *testing.T) {
	_, err := NewPlugboard(Pair{'A', 'A'})
	assert.ErrorIs(t, err, ErrInvalidPlugboardPair)

	_, err = NewPlugboard(Pair{'A', '1'})
	assert.ErrorIs(t, err, ErrInvalidPlugboardPair)

	_, err = NewPlugboard(Pair{'A', 'B'}, Pair{'B', 'C'})
	assert.ErrorIs(t, err, ErrDuplicatePlugboardMapping)

	_, err = NewPlugboard(Pair{'A', 'B'}, Pair{'b', 'a'})
	assert.ErrorIs(t, err, ErrDuplicatePlugboardMapping)
}

func TestParsePair(t *testing.T) {
	p, err := ParsePair(" qz ")
	require.NoError(t, err)
	assert.Equal(t, Pair{'Q', 'Z'}, p)
	assert.Equal(t, "QZ", p.String())

	_, err = ParsePair("ABC")
	assert.ErrorIs(t, err, ErrInvalidPlugboardPair)
}
