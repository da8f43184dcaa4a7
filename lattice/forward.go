package lattice

import (
	"github.com/tategaki/tategaki/charclass"
	"github.com/tategaki/tategaki/connector"
	"github.com/tategaki/tategaki/core"
	"github.com/tategaki/tategaki/lexicon"
	"github.com/tategaki/tategaki/util"
)

type candidate struct {
	end             int
	word            core.WordIdx
	leftID, rightID uint16
	wordCost        int32
}

// Forward builds the lattice for input under dict and opts, then walks
// the back-pointer chain from EOS to BOS, returning tokens in surface
// order. It mutates l in place, reusing l's buffers across calls.
func Forward(l *Lattice, dict *Dictionary, input []byte, opts Options) []Token {
	l.Reset(len(input))

	// Offset 0: synthetic BOS node.
	l.nodes[0] = append(l.nodes[0], Node{
		Begin: 0, End: 0, Word: core.WordIdx{}, WordCost: 0,
		LeftID: core.BOSEOSConnectionID, RightID: core.BOSEOSConnectionID,
		PredOffset: 0, MinTotal: 0, BestPrev: -1,
	})

	for b := 0; b < len(input); b++ {
		predOffset := l.predecessorOf(b)
		if len(l.nodes[predOffset]) == 0 {
			// Unreachable offset; nothing can extend from here.
			continue
		}
		if opts.IgnoreSpace && util.IsWhitespaceByte(input[b]) {
			runEnd := b
			for runEnd < len(input) && util.IsWhitespaceByte(input[runEnd]) {
				runEnd++
			}
			// No node is inserted for the skipped run itself: the next
			// candidate's Begin moves to runEnd, but its predecessor
			// lookup stays pinned at predOffset, the real pre-whitespace
			// node list, so its LeftID/RightID connect at zero added
			// cost instead of through a synthetic BOS/EOS-id bridge.
			l.bridgeWhitespace(runEnd, predOffset)
			b = runEnd - 1
			continue
		}

		var cands []candidate
		cands = collectLexiconCandidates(dict, input, b, cands)

		invoke := len(cands) == 0
		if !invoke {
			cp, _ := util.DecodeRuneAt(input, b)
			invoke = dict.Unknown.Table.ShouldInvoke(cp)
		}
		if invoke {
			cands = collectUnknownCandidates(dict, input, b, opts, cands)
		}

		if len(cands) == 0 {
			// Must-make-progress fallback: no lexicon or unknown-word
			// candidate exists at this offset, so force one to keep the
			// search advancing.
			l.stats.FallbackOffsets.Add(uint32(b))
			_, size := util.DecodeRuneAt(input, b)
			if size == 0 {
				size = 1
			}
			end := b + size
			if end > len(input) {
				end = len(input)
			}
			p := dict.unknownWordParam(charclass.Default)
			cands = append(cands, candidate{
				end: end, word: core.WordIdx{LexType: core.Unknown, WordID: uint32(charclass.Default)},
				leftID: p.LeftID, rightID: p.RightID, wordCost: int32(p.WordCost),
			})
		}

		for _, c := range cands {
			addNode(l, dict, predOffset, b, c)
		}
	}

	eosOffset := len(input)
	predOffset := l.predecessorOf(eosOffset)
	eosIdx := addEOS(l, dict, predOffset, eosOffset)
	return traceBack(l, dict, input, eosOffset, eosIdx)
}

func collectLexiconCandidates(dict *Dictionary, input []byte, b int, out []candidate) []candidate {
	for _, lx := range dict.lexicons() {
		lt := lx.LexType()
		lx.CommonPrefixMatches(input, b, func(m lexicon.Match) {
			for _, wordID := range m.WordIDs {
				p := lx.WordParam(wordID)
				out = append(out, candidate{
					end: m.End, word: core.WordIdx{LexType: lt, WordID: wordID},
					leftID: p.LeftID, rightID: p.RightID, wordCost: int32(p.WordCost),
				})
			}
		})
	}
	return out
}

func collectUnknownCandidates(dict *Dictionary, input []byte, b int, opts Options, out []candidate) []candidate {
	dict.Unknown.Emit(input, b, int(opts.MaxGroupingLen), func(c charclass.Candidate) {
		p := dict.unknownWordParam(c.Category)
		out = append(out, candidate{
			end: c.End, word: core.WordIdx{LexType: core.Unknown, WordID: uint32(c.Category)},
			leftID: p.LeftID, rightID: p.RightID, wordCost: int32(p.WordCost),
		})
	})
	return out
}

// addNode computes min_total over every predecessor listed at
// predOffset (the real, never-bridged node list; see Node.PredOffset),
// records the back-pointer (ties broken toward the earlier-indexed
// predecessor) and appends the new node, whose own surface span begins
// at begin, to nodes[c.end].
func addNode(l *Lattice, dict *Dictionary, predOffset, begin int, c candidate) {
	wordCost := c.wordCost + connector.RightBias(dict.Connector, c.rightID)

	best := int32(-1)
	var bestTotal int32
	preds := l.nodes[predOffset]
	for i, p := range preds {
		total := p.MinTotal + dict.Connector.Cost(p.RightID, c.leftID) + wordCost
		if best == -1 || total < bestTotal {
			best = int32(i)
			bestTotal = total
		}
	}

	l.nodes[c.end] = append(l.nodes[c.end], Node{
		Begin: begin, End: c.end, Word: c.word, WordCost: wordCost,
		LeftID: c.leftID, RightID: c.rightID,
		PredOffset: predOffset, MinTotal: bestTotal, BestPrev: best,
	})
}

// addEOS inserts the synthetic EOS node at offset end, connecting from
// the best predecessor among nodes[predOffset], and returns its index
// within nodes[end].
func addEOS(l *Lattice, dict *Dictionary, predOffset, end int) int {
	preds := l.nodes[predOffset]
	best := int32(-1)
	var bestTotal int32
	for i, p := range preds {
		total := p.MinTotal + dict.Connector.Cost(p.RightID, core.BOSEOSConnectionID)
		if best == -1 || total < bestTotal {
			best = int32(i)
			bestTotal = total
		}
	}
	eos := Node{
		Begin: end, End: end, Word: core.WordIdx{}, WordCost: 0,
		LeftID: core.BOSEOSConnectionID, RightID: core.BOSEOSConnectionID,
		PredOffset: predOffset, MinTotal: bestTotal, BestPrev: best,
	}
	l.nodes[end] = append(l.nodes[end], eos)
	return len(l.nodes[end]) - 1
}

// traceBack follows back-pointers from the EOS node at
// nodes[eosOffset][eosIdx] back to BOS, reversing them into
// surface-order tokens. BOS lives at nodes[0][0] by construction;
// reaching it (rather than EOS, which is never itself emitted) stops
// the walk. Empty input yields no tokens.
func traceBack(l *Lattice, dict *Dictionary, input []byte, eosOffset, eosIdx int) []Token {
	eos := l.nodes[eosOffset][eosIdx]

	var nodes []Node
	offset, idx := eos.PredOffset, eos.BestPrev
	for idx != -1 {
		if offset == 0 && idx == 0 {
			break // reached BOS
		}
		n := l.nodes[offset][idx]
		nodes = append(nodes, n)
		offset, idx = n.PredOffset, n.BestPrev
	}

	tokens := make([]Token, len(nodes))
	for i, n := range nodes {
		tokens[len(nodes)-1-i] = Token{Begin: n.Begin, End: n.End, Word: n.Word, Feature: wordFeature(dict, n.Word)}
	}
	return tokens
}

// wordFeature dispatches to whichever lexicon owns idx's namespace —
// System, User or Unknown — so callers never need to branch on
// LexType themselves to resolve a feature string.
func wordFeature(dict *Dictionary, idx core.WordIdx) string {
	switch idx.LexType {
	case core.System:
		return dict.System.WordFeature(idx.WordID)
	case core.User:
		return dict.User.WordFeature(idx.WordID)
	default:
		return dict.UnknownLexicon.WordFeature(idx.WordID)
	}
}
