package keyword

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/guardline/guardline/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeOverrideFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "keywords.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadOverrides_MissingFile(t *testing.T) {
	_, err := LoadOverrides(filepath.Join(t.TempDir(), "nope.json"))

	require.Error(t, err)
	assert.True(t, errors.IsNotFound(err))
}

func TestLoadOverrides_MalformedWeights(t *testing.T) {
	path := writeOverrideFile(t, `{"phrases": {"free candy": "very bad"}}`)

	_, err := LoadOverrides(path)

	require.Error(t, err)
	assert.True(t, errors.IsValidation(err))
}

func TestLoadOverrides_NonObjectSection(t *testing.T) {
	path := writeOverrideFile(t, `{"tokens": ["positive"]}`)

	_, err := LoadOverrides(path)

	require.Error(t, err)
	assert.True(t, errors.IsValidation(err))
}

func TestLoadOverrides_IgnoresUnknownTopLevelKeys(t *testing.T) {
	path := writeOverrideFile(t, `{"phrases": {"free candy": -1.5}, "comment": "ignored"}`)

	o, err := LoadOverrides(path)

	require.NoError(t, err)
	assert.Equal(t, map[string]float64{"free candy": -1.5}, o.Phrases)
}

func TestMerge_UnknownCategory(t *testing.T) {
	tables := DefaultTables()

	err := tables.Merge(&Overrides{
		Tokens: map[string]map[string]float64{
			"toxic": {"slur": -3.0},
		},
	})

	require.Error(t, err)
	assert.True(t, errors.IsConfiguration(err))
	assert.Contains(t, err.Error(), "toxic")
}

func TestMerge_AtomicOnUnknownCategory(t *testing.T) {
	tables := DefaultTables()

	err := tables.Merge(&Overrides{
		Phrases: map[string]float64{"free candy": -1.5},
		Tokens: map[string]map[string]float64{
			"positive": {"helpline": 1.5},
			"toxic":    {"slur": -3.0},
		},
	})
	require.Error(t, err)

	// Validation happens before anything is applied, so the valid entries
	// from the failed call must not be visible.
	_, ok := tables.TokenWeight(CategoryPositive, "helpline")
	assert.False(t, ok)
	for _, p := range tables.Phrases() {
		assert.NotEqual(t, "free candy", p.Text)
	}
}

func TestMerge_InsertAndOverwritePhrases(t *testing.T) {
	tables := NewTables([]Phrase{{"alpha", -1.0}, {"beta", -2.0}}, nil)

	err := tables.Merge(&Overrides{
		Phrases: map[string]float64{
			"beta":  -5.0,
			"gamma": -3.0,
			"delta": -4.0,
		},
	})
	require.NoError(t, err)

	// Existing phrases keep their position; new ones append in sorted order.
	assert.Equal(t, []Phrase{
		{"alpha", -1.0},
		{"beta", -5.0},
		{"delta", -4.0},
		{"gamma", -3.0},
	}, tables.Phrases())
}

func TestMerge_TokensVisibleToAnalyzer(t *testing.T) {
	tables := DefaultTables()
	require.NoError(t, tables.Merge(&Overrides{
		Tokens: map[string]map[string]float64{
			"positive": {"helpline": 1.5},
		},
	}))

	a, err := NewAnalyzer(tables, DefaultThresholds())
	require.NoError(t, err)

	res := a.Analyze("call the helpline")
	assert.Equal(t, 1.5, res.Score)
	assert.Equal(t, LabelPositive, res.Sentiment)
}

func TestMerge_NilOverrides(t *testing.T) {
	tables := DefaultTables()
	require.NoError(t, tables.Merge(nil))
}

func TestMergeFile_EndToEnd(t *testing.T) {
	path := writeOverrideFile(t, `{
		"phrases": {"free candy": -1.5},
		"tokens": {"negative": {"creep": -1.0}}
	}`)

	tables := DefaultTables()
	require.NoError(t, tables.MergeFile(path))

	a, err := NewAnalyzer(tables, DefaultThresholds())
	require.NoError(t, err)

	res := a.Analyze("free candy from a creep")
	assert.Equal(t, -2.5, res.Score)
	assert.Equal(t, LabelNegative, res.Sentiment)
}
