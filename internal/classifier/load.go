package classifier

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"slices"

	"github.com/wealthyways/wealthyways/internal/advisor"
)

// Load errors. Both are fatal for the session; there is nothing to retry.
var (
	ErrModelNotFound = errors.New("model file not found")
	ErrModelCorrupt  = errors.New("model file is corrupt")
)

// Load reads and validates the model artifact at path.
func Load(path string) (*Model, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path comes from the user's own config
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrModelNotFound, path)
		}
		return nil, fmt.Errorf("reading model %s: %w", path, err)
	}

	m, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	m.path = path
	return m, nil
}

// Parse decodes and validates an artifact held in memory.
func Parse(data []byte) (*Model, error) {
	var a Artifact
	if err := json.Unmarshal(data, &a); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrModelCorrupt, err)
	}
	return New(a)
}

// New validates a and wraps it as a Model.
func New(a Artifact) (*Model, error) {
	if err := a.validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrModelCorrupt, err)
	}
	return &Model{artifact: a, columns: a.Features}, nil
}

func (a Artifact) validate() error {
	if a.Format != FormatV1 {
		return fmt.Errorf("unsupported format %q", a.Format)
	}

	if len(a.Features) != len(advisor.Features) {
		return fmt.Errorf("want %d features, got %d", len(advisor.Features), len(a.Features))
	}
	for _, f := range advisor.Features {
		if !slices.Contains(a.Features, f) {
			return fmt.Errorf("missing feature %q", f)
		}
	}

	if len(a.Classes) == 0 {
		return errors.New("no classes")
	}
	for _, c := range a.Classes {
		if !advisor.Category(c).Known() {
			return fmt.Errorf("class %q is not a known category", c)
		}
	}

	if len(a.Estimators) == 0 {
		return errors.New("no estimators")
	}
	for i, t := range a.Estimators {
		if err := t.validate(len(a.Features), len(a.Classes)); err != nil {
			return fmt.Errorf("estimator %d: %w", i, err)
		}
	}
	return nil
}

func (t Tree) validate(nFeatures, nClasses int) error {
	n := len(t.ChildrenLeft)
	if n == 0 {
		return errors.New("empty tree")
	}
	if len(t.ChildrenRight) != n || len(t.Feature) != n || len(t.Threshold) != n || len(t.Value) != n {
		return errors.New("node arrays differ in length")
	}

	for i := 0; i < n; i++ {
		if len(t.Value[i]) != nClasses {
			return fmt.Errorf("node %d: value has %d entries, want %d", i, len(t.Value[i]), nClasses)
		}
		l, r := t.ChildrenLeft[i], t.ChildrenRight[i]
		if l == leaf || r == leaf {
			if l != r {
				return fmt.Errorf("node %d: only one child is a leaf marker", i)
			}
			continue
		}
		// sklearn numbers children after their parent; requiring it rules out cycles.
		if l <= i || l >= n || r <= i || r >= n {
			return fmt.Errorf("node %d: child index out of range", i)
		}
		if t.Feature[i] < 0 || t.Feature[i] >= nFeatures {
			return fmt.Errorf("node %d: feature index %d out of range", i, t.Feature[i])
		}
	}
	return nil
}
