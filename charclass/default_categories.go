package charclass

// DefaultTable builds an IPADIC-style character property table: fixed
// Unicode ranges for each of DefaultCategories(), with rule defaults
// chosen from the usual char.def conventions (kanji runs of up to 2
// code points get their own cost class, hiragana/katakana group into
// full runs, ASCII alpha/numeric group into full runs bounded only by
// the tokenizer's max grouping length, so a run like "ABC123" splits
// into an alpha group and a numeric group).
func DefaultTable() *Table {
	rules := make([]Rule, 32)
	rules[Kanji] = Rule{Group: false, Length: 2, LeftID: 100, RightID: 100, WordCost: 2000, Feature: "名詞,一般,*,*,*,*,*"}
	rules[Hiragana] = Rule{Group: true, LeftID: 101, RightID: 101, WordCost: 800, Feature: "名詞,一般,*,*,*,*,*"}
	rules[Katakana] = Rule{Group: true, LeftID: 102, RightID: 102, WordCost: 800, Feature: "名詞,一般,*,*,*,*,*"}
	rules[KanjiNumeric] = Rule{Invoke: true, Group: false, Length: 4, LeftID: 103, RightID: 103, WordCost: 1500, Feature: "名詞,数,*,*,*,*,*"}
	rules[Alpha] = Rule{Group: true, LeftID: 104, RightID: 104, WordCost: 2500, Feature: "名詞,一般,*,*,*,*,*"}
	rules[Numeric] = Rule{Group: true, LeftID: 105, RightID: 105, WordCost: 2500, Feature: "名詞,数,*,*,*,*,*"}
	rules[Greek] = Rule{Group: true, LeftID: 104, RightID: 104, WordCost: 3000, Feature: "名詞,一般,*,*,*,*,*"}
	rules[Cyrillic] = Rule{Group: true, LeftID: 104, RightID: 104, WordCost: 3000, Feature: "名詞,一般,*,*,*,*,*"}
	rules[Symbol] = Rule{Group: false, Length: 1, LeftID: 106, RightID: 106, WordCost: 3500, Feature: "記号,一般,*,*,*,*,*"}
	rules[Space] = Rule{Group: true, LeftID: 0, RightID: 0, WordCost: 0, Feature: "記号,空白,*,*,*,*,*"}
	rules[Default] = Rule{Group: false, Length: 1, LeftID: 107, RightID: 107, WordCost: 4000, Feature: "名詞,一般,*,*,*,*,*"}

	t := NewTable(rules)

	t.SetRange(0x4E00, 0x9FFF, NewCategorySet(Kanji))
	t.SetRange(0x3400, 0x4DBF, NewCategorySet(Kanji))
	t.SetRange(0x20000, 0x2FFFF, NewCategorySet(Kanji)) // CJK extensions, e.g. 𩸽
	t.SetRange(0x3041, 0x309F, NewCategorySet(Hiragana))
	t.SetRange(0x30A0, 0x30FF, NewCategorySet(Katakana))
	t.SetRange(0xFF66, 0xFF9F, NewCategorySet(Katakana)) // halfwidth katakana
	for cp := rune('0'); cp <= '9'; cp++ {
		t.Set(cp, NewCategorySet(Numeric))
	}
	kanjiDigits := []rune{'〇', '一', '二', '三', '四', '五', '六', '七', '八', '九', '十', '百', '千', '万', '億'}
	for _, cp := range kanjiDigits {
		t.Set(cp, NewCategorySet(Kanji, KanjiNumeric))
	}
	for cp := rune('A'); cp <= 'Z'; cp++ {
		t.Set(cp, NewCategorySet(Alpha))
	}
	for cp := rune('a'); cp <= 'z'; cp++ {
		t.Set(cp, NewCategorySet(Alpha))
	}
	t.SetRange(0xFF21, 0xFF3A, NewCategorySet(Alpha)) // fullwidth latin upper
	t.SetRange(0xFF41, 0xFF5A, NewCategorySet(Alpha)) // fullwidth latin lower
	t.SetRange(0x0391, 0x03A9, NewCategorySet(Greek))
	t.SetRange(0x03B1, 0x03C9, NewCategorySet(Greek))
	t.SetRange(0x0410, 0x044F, NewCategorySet(Cyrillic))
	for _, cp := range []rune{' ', '\t', '　'} {
		t.Set(cp, NewCategorySet(Space))
	}
	for _, cp := range []rune{'。', '、', '「', '」', '・', '！', '？', '.', ',', '!', '?'} {
		t.Set(cp, NewCategorySet(Symbol))
	}

	return t
}
