package rewrite

import (
	"iter"

	"github.com/benbjohnson/immutable"
)

// trieNode is a node-per-symbol trie node. It may hold at most one rule
// identifier as its payload; the path from root to that node spells the
// rule's source term.
//
// Children are stored in a benbjohnson/immutable.Map rather than a plain Go
// map, mirroring the teacher's util/hset.HSet use of immutable.Hasher for
// value-typed hashable keys (Symbol here plays the role SimpleType plays
// there). Payload-absent nodes are retained once created, per spec.md §9's
// design note, to make future insertions under the same prefix cheap.
type trieNode struct {
	children   *immutable.Map[Symbol, *trieNode]
	payload    RuleID
	hasPayload bool
}

func newTrieNode() *trieNode {
	return &trieNode{children: immutable.NewMap[Symbol, *trieNode](symbolHasher{})}
}

// Trie maps terms to rule identifiers by prefix.
type Trie struct {
	root *trieNode
}

// NewTrie returns an empty trie.
func NewTrie() *Trie {
	return &Trie{root: newTrieNode()}
}

// Get looks up the payload stored at exactly term, if any.
func (t *Trie) Get(term Term) (RuleID, bool) {
	node := t.root
	for i := 0; i < term.Len(); i++ {
		child, ok := node.children.Get(term.At(i))
		if !ok {
			return 0, false
		}
		node = child
	}
	return node.payload, node.hasPayload
}

// Set stores payload at term, creating intermediate nodes as needed.
func (t *Trie) Set(term Term, payload RuleID) {
	node := t.root
	for i := 0; i < term.Len(); i++ {
		sym := term.At(i)
		child, ok := node.children.Get(sym)
		if !ok {
			child = newTrieNode()
			node.children = node.children.Set(sym, child)
		}
		node = child
	}
	node.payload = payload
	node.hasPayload = true
}

// Clear removes the payload at term, if present. The node itself is kept.
func (t *Trie) Clear(term Term) {
	node := t.root
	for i := 0; i < term.Len(); i++ {
		child, ok := node.children.Get(term.At(i))
		if !ok {
			return
		}
		node = child
	}
	node.hasPayload = false
}

// LongestPrefix walks as far as symbol children match term from the root,
// returning the deepest node reached and how many symbols were consumed.
func (t *Trie) LongestPrefix(term Term) (node *trieNode, consumed int) {
	node = t.root
	for consumed < term.Len() {
		child, ok := node.children.Get(term.At(consumed))
		if !ok {
			return node, consumed
		}
		node = child
		consumed++
	}
	return node, consumed
}

// Subtree returns the node reached by following prefix from the root, or
// (nil, false) if no such path exists.
func (t *Trie) Subtree(prefix Term) (*trieNode, bool) {
	node := t.root
	for i := 0; i < prefix.Len(); i++ {
		child, ok := node.children.Get(prefix.At(i))
		if !ok {
			return nil, false
		}
		node = child
	}
	return node, true
}

// ElementsOf enumerates every payload in the subtree rooted at node, each
// paired with the symbol path from node to the payload's own node.
func (t *Trie) ElementsOf(node *trieNode) iter.Seq2[Term, RuleID] {
	return func(yield func(Term, RuleID) bool) {
		if node == nil {
			return
		}
		var path []Symbol
		var walk func(n *trieNode) bool
		walk = func(n *trieNode) bool {
			if n.hasPayload {
				if !yield(NewTerm(path...), n.payload) {
					return false
				}
			}
			itr := n.children.Iterator()
			for !itr.Done() {
				sym, child := itr.Next()
				path = append(path, sym)
				cont := walk(child)
				path = path[:len(path)-1]
				if !cont {
					return false
				}
			}
			return true
		}
		walk(node)
	}
}
