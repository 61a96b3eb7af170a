package config

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/aretw0/enigma/pkg/domain"
)

// ParsePositions reads rotor positions in rotor index order, either as
// comma-separated numbers ("24,3,21") or as letters ("Y,D,V").
// An empty string yields nil.
func ParsePositions(s string) ([]int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}

	fields := strings.Split(s, ",")
	out := make([]int, 0, len(fields))
	for _, f := range fields {
		f = strings.TrimSpace(f)
		if n, err := strconv.Atoi(f); err == nil {
			if n < 0 || n >= domain.AlphabetSize {
				return nil, fmt.Errorf("%w: %d", domain.ErrInvalidPosition, n)
			}
			out = append(out, n)
			continue
		}
		r := []rune(strings.ToUpper(f))
		if len(r) != 1 || !domain.IsLetter(r[0]) {
			return nil, fmt.Errorf("%w: %q", domain.ErrInvalidPosition, f)
		}
		out = append(out, domain.IndexOf(r[0]))
	}
	return out, nil
}

// FormatPositions is the inverse of ParsePositions for numeric positions.
func FormatPositions(positions []int) string {
	parts := make([]string, len(positions))
	for i, p := range positions {
		parts[i] = strconv.Itoa(p)
	}
	return strings.Join(parts, ",")
}
