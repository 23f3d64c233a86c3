package keyword

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/guardline/guardline/internal/errors"
)

// Overrides is the external override format: phrase weights plus per-category
// token weights. Unknown top-level keys in the source document are ignored.
type Overrides struct {
	Phrases map[string]float64            `json:"phrases"`
	Tokens  map[string]map[string]float64 `json:"tokens"`
}

// LoadOverrides reads and decodes a JSON override file. A missing file is a
// not-found error; a document whose sections or weights have the wrong shape
// is a validation error.
func LoadOverrides(path string) (*Overrides, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NotFoundError(fmt.Sprintf("keyword override file %s not found", path)).
				WithContext("path", path)
		}
		return nil, errors.InternalError("failed to read keyword override file", err).
			WithContext("path", path)
	}

	var o Overrides
	if err := json.Unmarshal(data, &o); err != nil {
		return nil, errors.ValidationError("malformed keyword override file").
			WithCause(err).
			WithContext("path", path)
	}

	return &o, nil
}

// MergeFile loads the override file at path and merges it into the tables.
func (t *Tables) MergeFile(path string) error {
	o, err := LoadOverrides(path)
	if err != nil {
		return err
	}
	return t.Merge(o)
}
