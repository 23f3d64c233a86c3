package keyword

import (
	"log/slog"
	"strings"
)

// Result is the immutable outcome of scoring one input text.
type Result struct {
	Sentiment  Label          `json:"sentiment"`
	Score      float64        `json:"score"`
	PhraseHits map[string]int `json:"phrase_hits"`
	TokenHits  map[string]int `json:"token_hits"`
}

// Analyzer scores free text against weighted phrase and token tables.
// It holds no per-call state and is safe for concurrent use once built.
type Analyzer struct {
	tables     *Tables
	thresholds Thresholds
}

// NewAnalyzer builds an analyzer over the given tables and thresholds.
// Nil tables fall back to the built-in dictionaries.
func NewAnalyzer(tables *Tables, thresholds Thresholds) (*Analyzer, error) {
	if err := thresholds.Validate(); err != nil {
		return nil, err
	}
	if tables == nil {
		tables = DefaultTables()
	}
	return &Analyzer{tables: tables, thresholds: thresholds}, nil
}

// Analyze scores text and classifies the total. Scoring cannot fail: empty
// input, pure whitespace or text with no matches all come back neutral with
// score 0 and empty hit maps.
func (a *Analyzer) Analyze(text string) Result {
	normalized := Normalize(text)

	phraseScore, phraseHits, remaining := a.matchPhrases(normalized)
	tokenScore, tokenHits := a.matchTokens(remaining)

	total := phraseScore + tokenScore
	return Result{
		Sentiment:  a.thresholds.Classify(total),
		Score:      total,
		PhraseHits: phraseHits,
		TokenHits:  tokenHits,
	}
}

// AnalyzeDebug behaves exactly like Analyze but additionally emits the
// intermediate hit maps and total score to the structured logger at debug
// level. The returned result is unchanged.
func (a *Analyzer) AnalyzeDebug(text string) Result {
	res := a.Analyze(text)
	slog.Debug("Keyword analysis intermediates",
		"phrase_hits", res.PhraseHits,
		"token_hits", res.TokenHits,
		"score", res.Score,
	)
	return res
}

// matchPhrases scores multi-word phrases in table order. Every non-overlapping
// occurrence of a phrase is counted, then erased from the working text so its
// characters are never seen again by later phrases or the token matcher.
// Erasure order makes the first-declared phrase win on overlap.
func (a *Analyzer) matchPhrases(text string) (float64, map[string]int, string) {
	score := 0.0
	hits := make(map[string]int)
	remaining := text

	for _, p := range a.tables.phrases {
		if !strings.Contains(remaining, p.Text) {
			continue
		}
		var n int
		remaining, n = consume(remaining, p.Text)
		hits[p.Text] = n
		score += p.Weight * float64(n)
	}

	return score, hits, remaining
}

// consume replaces every non-overlapping occurrence of phrase with a single
// space in one left-to-right pass over the text, returning the survivor and
// the occurrence count. A single buffer write per segment keeps this linear
// instead of rebuilding the whole string per occurrence.
func consume(text, phrase string) (string, int) {
	var b strings.Builder
	b.Grow(len(text))

	count := 0
	for {
		i := strings.Index(text, phrase)
		if i < 0 {
			b.WriteString(text)
			break
		}
		b.WriteString(text[:i])
		b.WriteByte(' ')
		text = text[i+len(phrase):]
		count++
	}

	return b.String(), count
}

// matchTokens scores single words in the phrase-stripped residual text.
// Each token is credited once per occurrence, under the first category in
// categoryOrder that contains it.
func (a *Analyzer) matchTokens(text string) (float64, map[string]int) {
	score := 0.0
	hits := make(map[string]int)

	for _, tok := range tokenize(text) {
		for _, cat := range categoryOrder {
			weight, ok := a.tables.tokens[cat][tok]
			if !ok {
				continue
			}
			score += weight
			hits[tok]++
			break
		}
	}

	return score, hits
}

// tokenize extracts maximal runs of ASCII letters and apostrophes. Any other
// byte, digits included, is a boundary and is discarded. Digit-only entries
// like "420" are therefore only ever reachable through the phrase table.
func tokenize(text string) []string {
	var tokens []string
	start := -1

	for i := 0; i < len(text); i++ {
		c := text[i]
		if (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c == '\'' {
			if start < 0 {
				start = i
			}
			continue
		}
		if start >= 0 {
			tokens = append(tokens, text[start:i])
			start = -1
		}
	}
	if start >= 0 {
		tokens = append(tokens, text[start:])
	}

	return tokens
}
