package charclass

import "github.com/tategaki/tategaki/util"

// Candidate is one synthesized lattice edge spanning input[offset:End]
// under Category. Its (left_id, right_id, cost, feature) record is not
// carried here: the caller looks it up via WordIdx{Unknown, WordID}
// against the unknown lexicon BuildUnknownLexicon derives from the
// same table, the same dispatch a System or User word_id gets.
type Candidate struct {
	End      int
	Category Category
}

// UnknownHandler synthesizes lattice candidates at offsets the
// lexicon is silent at (or chooses to invoke alongside), grouping a
// run of same-category code points or emitting one fixed-length
// candidate, depending on the category's Rule.
type UnknownHandler struct {
	Table *Table
}

func NewUnknownHandler(t *Table) *UnknownHandler {
	return &UnknownHandler{Table: t}
}

// Emit decodes the code point at offset, looks up its CategorySet, and
// calls fn once per synthesized candidate across every category in
// the set. maxGroupLen caps how many code points a grouped category's
// run may span (0 = unlimited), matching the tokenizer's
// max_grouping_len flag.
func (h *UnknownHandler) Emit(input []byte, offset int, maxGroupLen int, fn func(Candidate)) {
	if offset >= len(input) {
		return
	}
	cp, _ := util.DecodeRuneAt(input, offset)
	set := h.Table.CategorySetAt(cp)

	set.Each(func(c Category) {
		rule := h.Table.Rule(c)
		if rule.Group {
			end := h.runEnd(input, offset, c, maxGroupLen)
			fn(Candidate{End: end, Category: c})
			return
		}
		end := offset
		for k := uint16(0); k < rule.Length; k++ {
			if end >= len(input) {
				break
			}
			next, size := util.DecodeRuneAt(input, end)
			if k > 0 && !h.Table.CategorySetAt(next).Has(c) {
				break
			}
			end += size
			fn(Candidate{End: end, Category: c})
		}
	})
}

// runEnd returns the byte offset where the contiguous run of code
// points sharing category c, starting at offset, ends (or where it
// has consumed maxGroupLen code points, if that bound is positive).
func (h *UnknownHandler) runEnd(input []byte, offset int, c Category, maxGroupLen int) int {
	end := offset
	for n := 0; end < len(input) && (maxGroupLen <= 0 || n < maxGroupLen); n++ {
		cp, size := util.DecodeRuneAt(input, end)
		if !h.Table.CategorySetAt(cp).Has(c) {
			break
		}
		end += size
	}
	return end
}
