package lexicon

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/tategaki/tategaki/connector"
	"github.com/tategaki/tategaki/core"
)

// LoadCSV builds a user lexicon from a MeCab-style CSV reader: one
// entry per line, "surface,left_id,right_id,word_cost,feature", where
// feature is everything after the fourth comma taken verbatim (so a
// feature template may itself contain commas without escaping). This
// is the runtime counterpart to the archived-lexicon load path: rather
// than decoding a prebuilt trie, it compiles one from source text the
// way a caller assembling a user dictionary on the fly would, the same
// entry point the original tokenizer exposes for resetting a user
// lexicon from a reader rather than only from a compiled archive.
//
// conn validates every left_id/right_id against the dictionary's
// connector before the lexicon is frozen: an id lexicon.LoadCSV builds
// but conn doesn't recognize would silently price every edge through
// it as garbage at tokenize time instead of failing fast here.
func LoadCSV(r io.Reader, conn connector.View) (*Lexicon, error) {
	b := NewBuilder(core.User)

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1<<20)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimRight(sc.Text(), "\r\n")
		if line == "" {
			continue
		}

		fields := strings.SplitN(line, ",", 5)
		if len(fields) < 5 {
			return nil, fmt.Errorf("lexicon: line %d: a csv row must have five fields at least, got %q", lineNo, line)
		}
		surface := fields[0]
		if surface == "" {
			continue // matches the reference's skip-empty-surface behavior
		}

		leftID, err := parseConnID(fields[1])
		if err != nil {
			return nil, fmt.Errorf("lexicon: line %d: left_id: %w", lineNo, err)
		}
		rightID, err := parseConnID(fields[2])
		if err != nil {
			return nil, fmt.Errorf("lexicon: line %d: right_id: %w", lineNo, err)
		}
		if int(leftID) >= conn.NumLeft() {
			return nil, fmt.Errorf("lexicon: line %d: left_id %d out of range for connector (num_left=%d)", lineNo, leftID, conn.NumLeft())
		}
		if int(rightID) >= conn.NumRight() {
			return nil, fmt.Errorf("lexicon: line %d: right_id %d out of range for connector (num_right=%d)", lineNo, rightID, conn.NumRight())
		}

		wordCost, err := strconv.ParseInt(fields[3], 10, 16)
		if err != nil {
			return nil, fmt.Errorf("lexicon: line %d: word_cost: %w", lineNo, err)
		}

		b.Add([]byte(surface), leftID, rightID, int16(wordCost), fields[4])
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("lexicon: reading csv: %w", err)
	}

	l, _ := b.Freeze()
	return l, nil
}

func parseConnID(s string) (uint16, error) {
	v, err := strconv.ParseUint(s, 10, 16)
	if err != nil {
		return 0, err
	}
	return uint16(v), nil
}
