package lexicon

import (
	"sort"

	"github.com/tategaki/tategaki/core"
)

// Builder accumulates (surface, left_id, right_id, word_cost, feature)
// tuples and freezes them into a double-array Lexicon. It is the
// in-process analog of dictionary compilation from source CSV, scoped
// down to what a library needs to build lexicons for tests and small
// embedded use: no CSV parsing, no external compiler. Grounded on the
// same build-node-then-freeze approach as the double-array reference's
// datBackend, adapted from a dense-rune alphabet to raw UTF-8 bytes.
type Builder struct {
	lexType core.LexType
	root    *buildNode
	nextID  int

	words []wordEntry
}

type wordEntry struct {
	surface  []byte
	leftID   uint16
	rightID  uint16
	wordCost int16
	feature  string
}

type buildNode struct {
	id       int
	children map[byte]*buildNode
	termIDs  []uint32
}

// NewBuilder creates a Builder for the given namespace.
func NewBuilder(lexType core.LexType) *Builder {
	return &Builder{
		lexType: lexType,
		root:    &buildNode{id: int(Root), children: make(map[byte]*buildNode)},
		nextID:  int(Root) + 1,
	}
}

// Add registers one entry and returns its word_id, stable after Freeze.
func (b *Builder) Add(surface []byte, leftID, rightID uint16, wordCost int16, feature string) uint32 {
	wordID := uint32(len(b.words))
	b.words = append(b.words, wordEntry{
		surface:  append([]byte(nil), surface...),
		leftID:   leftID,
		rightID:  rightID,
		wordCost: wordCost,
		feature:  feature,
	})

	node := b.root
	for _, c := range surface {
		child := node.children[c]
		if child == nil {
			child = &buildNode{id: b.nextID, children: make(map[byte]*buildNode)}
			b.nextID++
			node.children[c] = child
		}
		node = child
	}
	node.termIDs = append(node.termIDs, wordID)
	return wordID
}

// Stats summarizes trie construction, mirroring the double-array
// reference's Stats() idiom for the build-time backend.
type Stats struct {
	NumWords   int
	TotalSlots int
	UsedSlots  int
	MaxStateID int
}

// Freeze runs the BFS base/check assignment pass and returns the
// immutable Lexicon. The Builder must not be reused afterward.
func (b *Builder) Freeze() (*Lexicon, Stats) {
	base := make([]int32, b.nextID)
	check := make([]int32, b.nextID)

	queue := []*buildNode{b.root}
	for q := 0; q < len(queue); q++ {
		n := queue[q]
		if len(n.children) == 0 {
			continue
		}
		labels := sortedByteLabels(n.children)
		bs := findBase(check, labels)
		ensureLen(&base, bs+int(labels[len(labels)-1])+1)
		ensureLen(&check, bs+int(labels[len(labels)-1])+1)
		base[n.id] = int32(bs)
		for _, label := range labels {
			t := bs + int(label)
			child := n.children[label]
			child.id = t
			check[t] = int32(n.id)
			queue = append(queue, child)
		}
	}

	numStates := len(base)
	termOffset := make([]int32, numStates)
	termCount := make([]int32, numStates)
	var termWordIDs []uint32
	used := 0
	for _, n := range queue {
		if len(n.termIDs) == 0 {
			continue
		}
		ids := append([]uint32(nil), n.termIDs...)
		sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
		termOffset[n.id] = int32(len(termWordIDs))
		termCount[n.id] = int32(len(ids))
		termWordIDs = append(termWordIDs, ids...)
	}
	for i, c := range check {
		if i == int(Root) || c != 0 {
			used++
		}
	}

	l := &Lexicon{
		lexType:     b.lexType,
		da:          DoubleArray{Base: base, Check: check},
		TermOffset:  termOffset,
		TermCount:   termCount,
		TermWordIDs: termWordIDs,
	}

	var blob []byte
	featureOffset := make([]uint32, len(b.words)+1)
	l.WordLeft = make([]uint16, len(b.words))
	l.WordRight = make([]uint16, len(b.words))
	l.WordCost = make([]int16, len(b.words))
	for i, w := range b.words {
		l.WordLeft[i] = w.leftID
		l.WordRight[i] = w.rightID
		l.WordCost[i] = w.wordCost
		featureOffset[i] = uint32(len(blob))
		blob = append(blob, w.feature...)
	}
	featureOffset[len(b.words)] = uint32(len(blob))
	l.FeatureOffset = featureOffset
	l.FeatureBlob = blob

	stats := Stats{
		NumWords:   len(b.words),
		TotalSlots: numStates,
		UsedSlots:  used,
		MaxStateID: numStates - 1,
	}
	return l, stats
}

func sortedByteLabels(children map[byte]*buildNode) []byte {
	labels := make([]byte, 0, len(children))
	for c := range children {
		labels = append(labels, c)
	}
	sort.Slice(labels, func(i, j int) bool { return labels[i] < labels[j] })
	return labels
}

// findBase returns the smallest base >= 1 such that base+label is free
// (check == 0) for every label in labels, mirroring the double-array
// reference's linear-scan findDATBase.
func findBase(check []int32, labels []byte) int {
	for base := 1; ; base++ {
		ok := true
		for _, label := range labels {
			t := base + int(label)
			if t < len(check) && check[t] != 0 {
				ok = false
				break
			}
		}
		if ok {
			return base
		}
	}
}

func ensureLen(s *[]int32, n int) {
	if n <= len(*s) {
		return
	}
	*s = append(*s, make([]int32, n-len(*s))...)
}
