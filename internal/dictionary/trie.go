// Package dictionary implements the word list used to decide whether a guess
// is a real word. Words are stored in a 26-way prefix tree keyed by the
// lowercase letters a-z.
package dictionary

import "fmt"

const alphabetSize = 26

type node struct {
	children [alphabetSize]*node
	leaf     bool
}

// numChildren returns how many child slots are populated.
func (n *node) numChildren() int {
	count := 0
	for _, child := range n.children {
		if child != nil {
			count++
		}
	}
	return count
}

// Trie is a prefix tree of lowercase words. It is not safe for concurrent
// mutation, but any number of goroutines may call Search on a Trie that is
// no longer being modified.
type Trie struct {
	root  *node
	count int
}

func NewTrie() *Trie {
	return &Trie{root: &node{}}
}

func index(c byte) (int, bool) {
	if c < 'a' || c > 'z' {
		return 0, false
	}
	return int(c - 'a'), true
}

// Insert adds word to the trie. Inserting a word that is already present
// leaves the trie unchanged. Only the letters a-z can be stored.
func (t *Trie) Insert(word string) error {
	for i := 0; i < len(word); i++ {
		if _, ok := index(word[i]); !ok {
			return fmt.Errorf("cannot insert %q: character %q is not a lowercase letter", word, word[i])
		}
	}

	current := t.root
	for i := 0; i < len(word); i++ {
		idx, _ := index(word[i])
		if current.children[idx] == nil {
			current.children[idx] = &node{}
		}
		current = current.children[idx]
	}
	if !current.leaf {
		current.leaf = true
		t.count++
	}
	return nil
}

// find returns the node reached by walking word from the root, or nil if the
// path doesn't exist.
func (t *Trie) find(word string) *node {
	current := t.root
	for i := 0; i < len(word); i++ {
		idx, ok := index(word[i])
		if !ok || current.children[idx] == nil {
			return nil
		}
		current = current.children[idx]
	}
	return current
}

// Search returns true only if word was inserted as a whole word; a word that
// is just a prefix of other entries is not a match.
func (t *Trie) Search(word string) bool {
	n := t.find(word)
	return n != nil && n.leaf
}

// Contains is an alias of Search.
func (t *Trie) Contains(word string) bool {
	return t.Search(word)
}

// Len returns the number of words in the trie.
func (t *Trie) Len() int {
	return t.count
}

// divergence walks the path of word and returns the position of the deepest
// node that is shared with some other entry: either it has children besides
// the next letter of word or another word ends there. The node at that position
// must survive a delete of word. found is false if no such node exists, i.e. the
// whole path belongs to word alone.
func (t *Trie) divergence(word string) (position int, found bool) {
	current := t.root
	for i := 0; i < len(word); i++ {
		idx, ok := index(word[i])
		if !ok || current.children[idx] == nil {
			break
		}
		if current.numChildren() > 1 || (i > 0 && current.leaf) {
			position, found = i, true
		}
		current = current.children[idx]
	}
	return position, found
}

// LongestCommonPrefix returns the part of word that is shared with other
// entries in the trie: word itself if its path never branches, otherwise the
// prefix ending just before the deepest branch point along the path. A shorter
// word ending on the path is a branch point too, so with car and cart stored
// the prefix of cart is car.
func (t *Trie) LongestCommonPrefix(word string) string {
	position, found := t.divergence(word)
	if !found {
		return word
	}
	return word[:position]
}

// Delete removes word if it is present as a whole word. Every node on the
// suffix below the longest common prefix is detached as a single subtree, so
// nodes shared with other entries are never touched. Longer words that
// continue below word are kept: deleting cat leaves cats in place. It returns
// whether word was removed.
func (t *Trie) Delete(word string) bool {
	end := t.find(word)
	if end == nil || !end.leaf {
		return false
	}

	// Other words continue below this one, so only the marker goes.
	if end.numChildren() > 0 || word == "" {
		end.leaf = false
		t.count--
		return true
	}

	// With no divergence the detached subtree starts right below the root.
	position, _ := t.divergence(word)

	parent := t.root
	for i := 0; i < position; i++ {
		idx, _ := index(word[i])
		parent = parent.children[idx]
	}
	idx, _ := index(word[position])
	parent.children[idx] = nil
	t.count--
	return true
}
