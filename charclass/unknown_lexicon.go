package charclass

import (
	"github.com/tategaki/tategaki/core"
	"github.com/tategaki/tategaki/lexicon"
)

// BuildUnknownLexicon derives the unknown lexicon from t's per-category
// rules: one dense word_id per category, WordID equal to the Category's
// own bit position, carrying the (left_id, right_id, word_cost, feature)
// tuple every synthesized Candidate of that category resolves to. This is
// what lets an unknown-category token be looked up through
// WordIdx{Unknown, WordID} exactly like a System or User word, instead of
// the category rule's fields being read directly at tokenize time.
func BuildUnknownLexicon(t *Table) *lexicon.Lexicon {
	b := lexicon.NewBuilder(core.Unknown)
	for i, r := range t.Rules {
		b.Add([]byte{byte(i)}, r.LeftID, r.RightID, r.WordCost, r.Feature)
	}
	l, _ := b.Freeze()
	return l
}
