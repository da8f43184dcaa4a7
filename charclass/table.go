package charclass

// Rule is the per-category record holding the unknown-word handler's
// invoke/group/length policy plus the lexicon-shaped fields every
// candidate synthesized under this category carries (left_id,
// right_id, word cost and a feature template).
type Rule struct {
	Invoke   bool
	Group    bool
	Length   uint16
	LeftID   uint16
	RightID  uint16
	WordCost int16
	Feature  string
}

// topSize covers every high byte of a 21-bit code point
// (0..0x10FFFF), i.e. cp>>8 ranges over [0, 0x10FF].
const topSize = 0x1100
const pageSize = 256

// Table is the two-level paged code-point -> CategorySet lookup,
// adapted from the double-array reference's PagedMapBMP (there bounded
// to the Basic Multilingual Plane; widened here to the full Unicode
// range since Japanese text regularly uses supplementary plane kanji).
// Top[hi] is a 1-based page index
// into Pages, 0 meaning "page absent" (-> Default category). The same
// struct backs both a freshly built table (Set/EnsurePage) and a
// zero-copy decoded one (Decode): both are just []uint32 slices,
// differing only in how they were allocated.
type Table struct {
	Top   []uint32
	Pages []uint32
	Rules []Rule
}

// NewTable returns an empty table with the given per-category rules,
// indexed by Category bit position.
func NewTable(rules []Rule) *Table {
	return &Table{Top: make([]uint32, topSize), Rules: rules}
}

// EnsurePage returns the 1-based page index for high byte hi,
// allocating a fresh all-zero page if none exists yet.
func (t *Table) EnsurePage(hi uint32) uint32 {
	if pi := t.Top[hi]; pi != 0 {
		return pi
	}
	t.Pages = append(t.Pages, make([]uint32, pageSize)...)
	pi := uint32(len(t.Pages) / pageSize)
	t.Top[hi] = pi
	return pi
}

// Set assigns the category set for a single code point.
func (t *Table) Set(cp rune, set CategorySet) {
	hi := uint32(cp) >> 8
	if set == 0 {
		return
	}
	pi := t.EnsurePage(hi)
	base := (pi - 1) * pageSize
	t.Pages[base+uint32(cp)&0xFF] = uint32(set)
}

// SetRange assigns set to every code point in [lo, hi].
func (t *Table) SetRange(lo, hi rune, set CategorySet) {
	for cp := lo; cp <= hi; cp++ {
		t.Set(cp, set)
	}
}

// CategorySetAt returns the CategorySet for cp, or a set containing
// only Default if cp falls in an unpopulated page.
func (t *Table) CategorySetAt(cp rune) CategorySet {
	hi := uint32(cp) >> 8
	if int(hi) >= len(t.Top) {
		return NewCategorySet(Default)
	}
	pi := t.Top[hi]
	if pi == 0 {
		return NewCategorySet(Default)
	}
	base := (pi - 1) * pageSize
	set := CategorySet(t.Pages[base+uint32(cp)&0xFF])
	if set == 0 {
		return NewCategorySet(Default)
	}
	return set
}

// Rule returns the rule record for c, or the zero Rule if c has none
// configured.
func (t *Table) Rule(c Category) Rule {
	if int(c) < len(t.Rules) {
		return t.Rules[c]
	}
	return Rule{}
}

// ShouldInvoke reports whether the unknown handler must be consulted
// at cp even when the lexicon already matched there.
func (t *Table) ShouldInvoke(cp rune) bool {
	invoke := false
	t.CategorySetAt(cp).Each(func(c Category) {
		if t.Rule(c).Invoke {
			invoke = true
		}
	})
	return invoke
}
