package game

import (
	"sync"
	"testing"
)

func TestBoardGenerator_Generate(t *testing.T) {
	gen := NewBoardGenerator(1)

	for size := 1; size <= 12; size++ {
		for i := 0; i < 200; i++ {
			board := gen.Generate(size)
			if len(board) != size {
				t.Fatalf("Generate(%d) returned %d letters", size, len(board))
			}
			if !board.HasVowel() {
				t.Fatalf("Generate(%d) = %s has no vowel", size, board)
			}
			for _, c := range board {
				if c < 'a' || c > 'z' {
					t.Fatalf("Generate(%d) = %q contains %q", size, board, c)
				}
			}
		}
	}
}

func TestBoardGenerator_SingleLetterIsVowel(t *testing.T) {
	gen := NewBoardGenerator(42)

	seen := make(map[byte]bool)
	for i := 0; i < 500; i++ {
		seen[gen.Generate(1)[0]] = true
	}
	for c := range seen {
		if !(Board{c}).HasVowel() {
			t.Errorf("Generate(1) produced consonant %q", c)
		}
	}
}

func TestBoardGenerator_EmptyBoard(t *testing.T) {
	if board := NewBoardGenerator(1).Generate(0); len(board) != 0 {
		t.Errorf("Generate(0) = %q, want empty board", board)
	}
}

func TestBoardGenerator_ConcurrentUse(t *testing.T) {
	gen := NewBoardGenerator(7)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				if !gen.Generate(5).HasVowel() {
					t.Error("Generate(5) returned a board without a vowel")
				}
			}
		}()
	}
	wg.Wait()
}
