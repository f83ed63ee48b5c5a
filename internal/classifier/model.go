// Package classifier loads the trained finance-advisor model from disk and
// runs predictions on snapshots.
//
// The artifact is a JSON export of a scikit-learn decision tree or random
// forest: one or more estimators in sklearn's flat tree_ layout (parallel
// children_left / children_right / feature / threshold / value arrays).
package classifier

import (
	"fmt"

	"github.com/wealthyways/wealthyways/internal/advisor"
)

// FormatV1 is the only artifact format tag this package understands.
const FormatV1 = "wealthyways.tree-ensemble/v1"

const leaf = -1

// Artifact is the on-disk representation of a trained model.
type Artifact struct {
	Format     string   `json:"format"`
	Name       string   `json:"name,omitempty"`
	Features   []string `json:"features"`
	Classes    []string `json:"classes"`
	Estimators []Tree   `json:"estimators"`
}

// Tree is a single decision tree in sklearn's array layout. Node 0 is the root.
type Tree struct {
	ChildrenLeft  []int       `json:"children_left"`
	ChildrenRight []int       `json:"children_right"`
	Feature       []int       `json:"feature"`
	Threshold     []float64   `json:"threshold"`
	Value         [][]float64 `json:"value"`
}

// Info summarizes a loaded model.
type Info struct {
	Name     string   `json:"name"`
	Path     string   `json:"path"`
	Features []string `json:"features"`
	Classes  []string `json:"classes"`
	Trees    int      `json:"trees"`
	MaxDepth int      `json:"max_depth"`
	Nodes    int      `json:"nodes"`
}

// Model is a validated, read-only classifier. It is safe for concurrent use.
type Model struct {
	path     string
	artifact Artifact
	columns  []string // snapshot feature for each artifact feature index
}

var _ advisor.Classifier = (*Model)(nil)

// Predict returns the class label for s. Each tree votes with its leaf's
// normalized class weights; the label with the highest mean probability wins
// and ties go to the earlier class.
func (m *Model) Predict(s advisor.Snapshot) (string, error) {
	row := make([]float64, len(m.columns))
	for i, col := range m.columns {
		v, ok := s.Value(col)
		if !ok {
			return "", fmt.Errorf("unknown feature column %q", col)
		}
		row[i] = v
	}

	proba := make([]float64, len(m.artifact.Classes))
	for _, t := range m.artifact.Estimators {
		weights := t.Value[t.leafFor(row)]
		var total float64
		for _, w := range weights {
			total += w
		}
		if total <= 0 {
			continue
		}
		for c, w := range weights {
			proba[c] += w / total
		}
	}

	best := 0
	for c := 1; c < len(proba); c++ {
		if proba[c] > proba[best] {
			best = c
		}
	}
	return m.artifact.Classes[best], nil
}

// leafFor walks the tree from the root and returns the index of the leaf
// reached by row. Validation guarantees children point forward, so the walk
// terminates.
func (t Tree) leafFor(row []float64) int {
	node := 0
	for t.ChildrenLeft[node] != leaf {
		if row[t.Feature[node]] <= t.Threshold[node] {
			node = t.ChildrenLeft[node]
		} else {
			node = t.ChildrenRight[node]
		}
	}
	return node
}

func (t Tree) depth() int {
	var walk func(node int) int
	walk = func(node int) int {
		if t.ChildrenLeft[node] == leaf {
			return 0
		}
		return 1 + max(walk(t.ChildrenLeft[node]), walk(t.ChildrenRight[node]))
	}
	return walk(0)
}

// Info describes the model for logs and the model command.
func (m *Model) Info() Info {
	info := Info{
		Name:     m.artifact.Name,
		Path:     m.path,
		Features: append([]string(nil), m.artifact.Features...),
		Classes:  append([]string(nil), m.artifact.Classes...),
		Trees:    len(m.artifact.Estimators),
	}
	for _, t := range m.artifact.Estimators {
		info.MaxDepth = max(info.MaxDepth, t.depth())
		info.Nodes += len(t.ChildrenLeft)
	}
	return info
}
