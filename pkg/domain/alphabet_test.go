package domain

import "testing"

func TestAlphabet(t *testing.T) {
	if AlphabetSize != 26 {
		t.Fatalf("AlphabetSize = %d", AlphabetSize)
	}
	for i, c := range Alphabet {
		if IndexOf(c) != i {
			t.Errorf("IndexOf(%c) = %d, want %d", c, IndexOf(c), i)
		}
		if LetterAt(i) != c {
			t.Errorf("LetterAt(%d) = %c, want %c", i, LetterAt(i), c)
		}
	}
	if LetterAt(-1) != 'Z' || LetterAt(26) != 'A' {
		t.Errorf("LetterAt does not wrap: %c %c", LetterAt(-1), LetterAt(26))
	}
	for _, c := range "a1 -Äz" {
		if IsLetter(c) || IndexOf(c) != -1 {
			t.Errorf("%q treated as a letter", c)
		}
	}
}

func TestWindow(t *testing.T) {
	if got := Window([]int{0, 1, 25}); got != "ZBA" {
		t.Errorf("Window = %q, want %q", got, "ZBA")
	}
}
