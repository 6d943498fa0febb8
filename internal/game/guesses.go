package game

// GuessRecord holds the words accepted so far in the current round.
type GuessRecord struct {
	words map[string]struct{}
}

func NewGuessRecord() *GuessRecord {
	return &GuessRecord{words: make(map[string]struct{})}
}

func (r *GuessRecord) Add(word string) {
	r.words[word] = struct{}{}
}

func (r *GuessRecord) Contains(word string) bool {
	_, ok := r.words[word]
	return ok
}

func (r *GuessRecord) Len() int {
	return len(r.words)
}

// Reset forgets every word, which happens whenever a new round starts.
func (r *GuessRecord) Reset() {
	r.words = make(map[string]struct{})
}
