package game

import (
	"math/rand"
	"strings"
	"sync"
)

const (
	alphabet = "abcdefghijklmnopqrstuvwxyz"
	vowels   = "aeiou"
)

// Board is the set of letters dealt for a round. Letters may repeat.
type Board []byte

func (b Board) String() string { return string(b) }

// HasVowel reports whether at least one of a, e, i, o, u is on the board.
func (b Board) HasVowel() bool {
	return strings.ContainsAny(string(b), vowels)
}

// BoardSource deals the board for every round of a match.
type BoardSource interface {
	Generate(size int) Board
}

// BoardGenerator deals random boards. One generator is seeded at startup and
// shared by every match, so access to the source is serialized.
type BoardGenerator struct {
	mu  sync.Mutex
	rng *rand.Rand
}

func NewBoardGenerator(seed int64) *BoardGenerator {
	return &BoardGenerator{rng: rand.New(rand.NewSource(seed))}
}

// Generate returns size uniformly random lowercase letters, redrawing the
// whole board until it contains a vowel. A non-positive size yields an empty
// board.
func (g *BoardGenerator) Generate(size int) Board {
	if size <= 0 {
		return Board{}
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	board := make(Board, size)
	for {
		for i := range board {
			board[i] = alphabet[g.rng.Intn(len(alphabet))]
		}
		if board.HasVowel() {
			return board
		}
	}
}
