package config

import (
	"errors"
	"testing"

	"github.com/aretw0/enigma/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePositions(t *testing.T) {
	tests := []struct {
		in   string
		want []int
	}{
		{"", nil},
		{"24,3,21", []int{24, 3, 21}},
		{" 0 , 1 ", []int{0, 1}},
		{"Y,d,V", []int{24, 3, 21}},
		{"A,5", []int{0, 5}},
	}
	for _, tt := range tests {
		got, err := ParsePositions(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	for _, bad := range []string{"26", "-1", "AB", "1,,2", "?"} {
		_, err := ParsePositions(bad)
		assert.True(t, errors.Is(err, domain.ErrInvalidPosition), "input %q: %v", bad, err)
	}
}

func TestFormatPositions(t *testing.T) {
	assert.Equal(t, "24,3,21", FormatPositions([]int{24, 3, 21}))
	assert.Equal(t, "", FormatPositions(nil))
}
