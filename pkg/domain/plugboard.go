package domain

import (
	"fmt"
	"strings"
)

// Pair is an unordered plugboard connection between two letters.
type Pair [2]rune

// ParsePair reads a two-letter pair such as "AB".
func ParsePair(s string) (Pair, error) {
	r := []rune(strings.ToUpper(strings.TrimSpace(s)))
	if len(r) != 2 {
		return Pair{}, fmt.Errorf("%w: %q", ErrInvalidPlugboardPair, s)
	}
	return Pair{r[0], r[1]}, nil
}

func (p Pair) String() string {
	return string(p[:])
}

// Plugboard is a symmetric letter-swap table applied before and after the rotors.
type Plugboard struct {
	mapping [AlphabetSize]int
	pairs   []Pair
}

// NewPlugboard builds a plugboard from disjoint pairs. No pairs yields the identity board.
func NewPlugboard(pairs ...Pair) (*Plugboard, error) {
	p := &Plugboard{}
	for i := range p.mapping {
		p.mapping[i] = i
	}

	used := make(map[int]Pair, 2*len(pairs))
	for _, pair := range pairs {
		a, b := IndexOf(toUpper(pair[0])), IndexOf(toUpper(pair[1]))
		if a < 0 || b < 0 || a == b {
			return nil, fmt.Errorf("%w: %q", ErrInvalidPlugboardPair, pair.String())
		}
		for _, idx := range []int{a, b} {
			if prev, ok := used[idx]; ok {
				return nil, fmt.Errorf("%w: %c in %s and %s", ErrDuplicatePlugboardMapping,
					LetterAt(idx), prev, pair)
			}
		}
		norm := Pair{LetterAt(a), LetterAt(b)}
		used[a], used[b] = norm, norm
		p.mapping[a], p.mapping[b] = b, a
		p.pairs = append(p.pairs, norm)
	}
	return p, nil
}

// Swap returns the letter c is connected to, or c itself if unplugged.
func (p *Plugboard) Swap(c rune) rune {
	return LetterAt(p.mapping[IndexOf(c)])
}

// Pairs returns the configured connections in the order they were given.
func (p *Plugboard) Pairs() []Pair {
	out := make([]Pair, len(p.pairs))
	copy(out, p.pairs)
	return out
}
