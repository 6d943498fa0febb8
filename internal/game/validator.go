package game

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/dcrodman/wordduel/internal/dictionary"
)

// Validator decides whether a guess is legal. A Validator keeps casing state
// and must not be shared between matches.
type Validator struct {
	dictionary dictionary.Lexicon
	lower      cases.Caser
}

func NewValidator(lexicon dictionary.Lexicon) *Validator {
	return &Validator{
		dictionary: lexicon,
		lower:      cases.Lower(language.Und),
	}
}

// Normalize trims surrounding whitespace from a raw guess and folds it to
// lowercase.
func (v *Validator) Normalize(guess []byte) string {
	return v.lower.String(strings.TrimSpace(string(guess)))
}

// Validate returns the normalized guess and whether it is accepted: it has to
// be spelled from the board's letters, be a dictionary word, and not have
// been accepted earlier in the round. Guesses containing non-ASCII bytes are
// rejected before folding, since some runes lowercase into a-z (U+212A is k).
func (v *Validator) Validate(board Board, guess []byte, record *GuessRecord) (string, bool) {
	word := v.Normalize(guess)

	if !isASCII(guess) {
		return word, false
	}
	if !IsFormable(board, word) {
		return word, false
	}
	if !v.dictionary.Contains(word) {
		return word, false
	}
	if record.Contains(word) {
		return word, false
	}
	return word, true
}

func isASCII(guess []byte) bool {
	for _, c := range guess {
		if c >= utf8.RuneSelf {
			return false
		}
	}
	return true
}

// IsFormable reports whether every letter of word can be taken from the board,
// using each board letter at most once.
func IsFormable(board Board, word string) bool {
	var available [26]int
	for _, c := range board {
		if c >= 'a' && c <= 'z' {
			available[c-'a']++
		}
	}

	for i := 0; i < len(word); i++ {
		c := word[i]
		if c < 'a' || c > 'z' || available[c-'a'] == 0 {
			return false
		}
		available[c-'a']--
	}
	return true
}
