// Package segment turns an ordered stream of diarized word tokens into
// per-speaker segments and question sentences
package segment

import "strings"

// Token is one word-level transcription unit from the STT engine
type Token struct {
	Word       string
	Normalized string // punctuated/smart-formatted form; falls back to Word
	Start      float64
	End        float64
	Confidence float64
	Speaker    int
}

// text returns the display form preferred for transcripts
func (t Token) text() string {
	if t.Normalized != "" {
		return t.Normalized
	}
	return t.Word
}

// Segment is a contiguous run of tokens from one speaker
type Segment struct {
	Speaker int
	Text    string
	Start   float64
	End     float64
	Words   int
}

// Duration returns the segment length in seconds
func (s Segment) Duration() float64 { return s.End - s.Start }

// Question is a sentence ending in a question mark. It may straddle a
// speaker-turn boundary; Speaker is the speaker of the terminating token
type Question struct {
	Text      string
	Timestamp float64 // start of the first token of the sentence
	Speaker   int
}

// Segmenter is an incremental splitter. Feed it tokens in arrival order;
// it closes a segment whenever the speaker index changes and keeps the
// trailing run open until Flush. The zero value is not ready; use New
type Segmenter struct {
	open     bool
	speaker  int
	words    []string
	segStart float64
	segEnd   float64

	qOpen  bool
	qWords []string
	qStart float64
}

// New returns an empty Segmenter
func New() *Segmenter { return &Segmenter{} }

// Feed consumes tokens in order and returns the segments finalized by
// speaker changes inside this call, plus any questions completed by a
// `?`-terminal token. The trailing run stays open (see Open and Flush)
func (g *Segmenter) Feed(tokens ...Token) ([]Segment, []Question) {
	var segs []Segment
	var qs []Question

	for _, tok := range tokens {
		if q, ok := g.feedQuestion(tok); ok {
			qs = append(qs, q)
		}

		if !g.open {
			g.begin(tok)
			continue
		}
		if tok.Speaker != g.speaker {
			if s, ok := g.close(); ok {
				segs = append(segs, s)
			}
			g.begin(tok)
			continue
		}
		g.words = append(g.words, tok.text())
		g.segEnd = tok.End
	}
	return segs, qs
}

// Open returns a snapshot of the provisionally open segment, if any.
// Its End may still grow on subsequent Feed calls
func (g *Segmenter) Open() (Segment, bool) {
	if !g.open {
		return Segment{}, false
	}
	return g.snapshot(), true
}

// Flush closes the open segment at end of stream and resets the segmenter
// for reuse. Question state is reset too; an unterminated sentence is not
// a question
func (g *Segmenter) Flush() (Segment, bool) {
	s, ok := g.close()
	g.qOpen = false
	g.qWords = g.qWords[:0]
	return s, ok
}

func (g *Segmenter) begin(tok Token) {
	g.open = true
	g.speaker = tok.Speaker
	g.words = append(g.words[:0], tok.text())
	g.segStart = tok.Start
	g.segEnd = tok.End
}

func (g *Segmenter) close() (Segment, bool) {
	if !g.open {
		return Segment{}, false
	}
	s := g.snapshot()
	g.open = false
	g.words = g.words[:0]
	if s.Text == "" {
		// nothing worth persisting
		return Segment{}, false
	}
	return s, true
}

func (g *Segmenter) snapshot() Segment {
	return Segment{
		Speaker: g.speaker,
		Text:    strings.TrimSpace(strings.Join(g.words, " ")),
		Start:   g.segStart,
		End:     g.segEnd,
		Words:   len(g.words),
	}
}

// feedQuestion advances the rolling sentence buffer and emits a Question
// when the token's word ends the sentence with a question mark
func (g *Segmenter) feedQuestion(tok Token) (Question, bool) {
	if !g.qOpen {
		g.qOpen = true
		g.qStart = tok.Start
		g.qWords = g.qWords[:0]
	}
	g.qWords = append(g.qWords, tok.text())
	if !strings.HasSuffix(strings.TrimSpace(tok.text()), "?") {
		return Question{}, false
	}
	q := Question{
		Text:      strings.TrimSpace(strings.Join(g.qWords, " ")),
		Timestamp: g.qStart,
		Speaker:   tok.Speaker,
	}
	g.qOpen = false
	g.qWords = g.qWords[:0]
	return q, true
}

// Split runs the segmenter over a complete token sequence in one pass.
// Output is identical to feeding the same tokens incrementally and flushing
func Split(tokens []Token) ([]Segment, []Question) {
	g := New()
	segs, qs := g.Feed(tokens...)
	if s, ok := g.Flush(); ok {
		segs = append(segs, s)
	}
	return segs, qs
}
