package keyword

import (
	"fmt"
	"sort"

	"github.com/guardline/guardline/internal/errors"
)

// Label is the three-way classification derived from the aggregate score.
type Label string

const (
	LabelPositive Label = "positive"
	LabelNegative Label = "negative"
	LabelNeutral  Label = "neutral"
)

// Category names a token weight group. Membership is mutually exclusive per
// word: a token is credited under the first category that contains it.
type Category string

const (
	CategoryPositive Category = "positive"
	CategoryNegative Category = "negative"
	CategoryNeutral  Category = "neutral"
)

// categoryOrder is the fixed order in which token categories are examined.
// The token matcher stops at the first category containing a token, so this
// order decides which weight wins for words listed in more than one category.
var categoryOrder = []Category{CategoryPositive, CategoryNegative, CategoryNeutral}

// Phrase is one weighted multi-word entry of the phrase table.
type Phrase struct {
	Text   string
	Weight float64
}

// Tables holds the phrase and token dictionaries used by the Analyzer.
//
// Phrases keep their declaration order: the phrase matcher erases matched
// text as it goes, so an earlier phrase wins when two phrases overlap. Merge
// may only be called before the tables are handed to an Analyzer.
type Tables struct {
	phrases     []Phrase
	phraseIndex map[string]int
	tokens      map[Category]map[string]float64
}

// NewTables builds tables from an ordered phrase list and per-category token
// weights. A phrase repeated in the input keeps its first position and takes
// the last declared weight. Missing categories start empty.
func NewTables(phrases []Phrase, tokens map[Category]map[string]float64) *Tables {
	t := &Tables{
		phrases:     make([]Phrase, 0, len(phrases)),
		phraseIndex: make(map[string]int, len(phrases)),
		tokens:      make(map[Category]map[string]float64, len(categoryOrder)),
	}

	for _, p := range phrases {
		t.setPhrase(p.Text, p.Weight)
	}

	for _, cat := range categoryOrder {
		t.tokens[cat] = make(map[string]float64, len(tokens[cat]))
		for word, weight := range tokens[cat] {
			t.tokens[cat][word] = weight
		}
	}

	return t
}

// DefaultTables returns tables populated with the built-in dictionaries.
func DefaultTables() *Tables {
	return NewTables(defaultPhrases, defaultTokens)
}

func (t *Tables) setPhrase(text string, weight float64) {
	if i, ok := t.phraseIndex[text]; ok {
		t.phrases[i].Weight = weight
		return
	}
	t.phraseIndex[text] = len(t.phrases)
	t.phrases = append(t.phrases, Phrase{Text: text, Weight: weight})
}

// Phrases returns a copy of the phrase table in declaration order.
func (t *Tables) Phrases() []Phrase {
	out := make([]Phrase, len(t.phrases))
	copy(out, t.phrases)
	return out
}

// TokenWeight reports the weight of word in the given category.
func (t *Tables) TokenWeight(cat Category, word string) (float64, bool) {
	w, ok := t.tokens[cat][word]
	return w, ok
}

// Merge applies an override set on top of the existing tables. Phrase
// overrides insert or overwrite, never remove; new phrases are appended in
// sorted key order so the resulting table order is deterministic. Token
// overrides require an already existing category.
//
// The merge is atomic: every category is validated before any entry is
// applied, so a failed merge leaves the tables untouched.
func (t *Tables) Merge(o *Overrides) error {
	if o == nil {
		return nil
	}

	for _, cat := range sortedKeys(o.Tokens) {
		if _, ok := t.tokens[Category(cat)]; !ok {
			return errors.ConfigurationError(fmt.Sprintf("unknown token category %q", cat)).
				WithContext("category", cat)
		}
	}

	for _, text := range sortedKeys(o.Phrases) {
		t.setPhrase(text, o.Phrases[text])
	}

	for _, cat := range sortedKeys(o.Tokens) {
		words := o.Tokens[cat]
		for _, word := range sortedKeys(words) {
			t.tokens[Category(cat)][word] = words[word]
		}
	}

	return nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Thresholds are the classification cut points. NegativeAt must be strictly
// below PositiveAt so the three label ranges are disjoint and exhaustive.
type Thresholds struct {
	PositiveAt float64
	NegativeAt float64
}

// DefaultThresholds returns the built-in classification thresholds.
func DefaultThresholds() Thresholds {
	return Thresholds{PositiveAt: 1.0, NegativeAt: -1.0}
}

// Validate checks the NegativeAt < PositiveAt invariant.
func (th Thresholds) Validate() error {
	if th.NegativeAt >= th.PositiveAt {
		return errors.ConfigurationError("thresholds invalid: NegativeAt must be below PositiveAt").
			WithContext("positive_at", th.PositiveAt).
			WithContext("negative_at", th.NegativeAt)
	}
	return nil
}

// Classify maps a total score to a label. Equality at either boundary
// resolves to the named class, not neutral.
func (th Thresholds) Classify(total float64) Label {
	switch {
	case total >= th.PositiveAt:
		return LabelPositive
	case total <= th.NegativeAt:
		return LabelNegative
	default:
		return LabelNeutral
	}
}
