package domain

// Alphabet is the fixed ordered alphabet shared by every component.
// Index 0 is 'A' and index 25 is 'Z'.
const Alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// AlphabetSize is the number of letters in Alphabet.
const AlphabetSize = len(Alphabet)

// IsLetter reports whether c is one of the 26 uppercase letters.
func IsLetter(c rune) bool {
	return c >= 'A' && c <= 'Z'
}

// IndexOf returns the alphabet position of c, or -1 if c is not a letter.
func IndexOf(c rune) int {
	if !IsLetter(c) {
		return -1
	}
	return int(c - 'A')
}

// LetterAt returns the letter at position i, reducing i modulo 26 first.
// Negative offsets wrap around, so LetterAt(-1) is 'Z'.
func LetterAt(i int) rune {
	return rune(Alphabet[mod(i)])
}

func mod(i int) int {
	i %= AlphabetSize
	if i < 0 {
		i += AlphabetSize
	}
	return i
}
