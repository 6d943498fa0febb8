package dictionary

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// Lexicon is the membership test the guess validator needs.
type Lexicon interface {
	Contains(word string) bool
}

// Build reads a newline-delimited word list from filePath into a new Trie.
// skipped counts the non-blank lines that could not be stored because they
// contain something other than lowercase letters.
func Build(filePath string) (trie *Trie, skipped int, err error) {
	f, err := os.Open(filePath)
	if err != nil {
		return nil, 0, fmt.Errorf("error opening dictionary: %w", err)
	}
	defer f.Close()

	trie, skipped, err = Load(f)
	if err != nil {
		return nil, 0, fmt.Errorf("error reading dictionary %s: %w", filePath, err)
	}
	return trie, skipped, nil
}

// maxLineLength bounds a single line of the word list. Longer lines are
// skipped and counted rather than failing the load.
const maxLineLength = 4096

// Load builds a Trie from one word per line. Surrounding whitespace is trimmed
// and blank lines are ignored. Entries are not case folded.
func Load(r io.Reader) (*Trie, int, error) {
	trie := NewTrie()
	skipped := 0

	reader := bufio.NewReaderSize(r, maxLineLength)
	for {
		line, isPrefix, err := reader.ReadLine()
		if err == io.EOF {
			return trie, skipped, nil
		}
		if err != nil {
			return nil, 0, err
		}

		if isPrefix {
			skipped++
			if err := skipLine(reader); err == io.EOF {
				return trie, skipped, nil
			} else if err != nil {
				return nil, 0, err
			}
			continue
		}

		word := strings.TrimSpace(string(line))
		if word == "" {
			continue
		}
		if err := trie.Insert(word); err != nil {
			skipped++
		}
	}
}

// skipLine discards the rest of a line that didn't fit in the buffer.
func skipLine(reader *bufio.Reader) error {
	for {
		_, isPrefix, err := reader.ReadLine()
		if err != nil || !isPrefix {
			return err
		}
	}
}
