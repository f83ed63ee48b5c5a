package advisor

import (
	"errors"
	"fmt"
)

// ErrNoClassifier is returned when Evaluate is called without a loaded model.
var ErrNoClassifier = errors.New("no classifier loaded")

// Classifier is a trained model that labels a snapshot.
type Classifier interface {
	Predict(s Snapshot) (string, error)
}

// Advice is the full outcome of evaluating one snapshot.
type Advice struct {
	Snapshot     Snapshot `json:"snapshot"`
	Category     Category `json:"category"`
	Message      string   `json:"advice"`
	Tone         Tone     `json:"tone"`
	Score        float64  `json:"score"`
	DisplayRatio float64  `json:"display_ratio"`
	Tier         Tier     `json:"tier"`
	Commentary   string   `json:"commentary"`
}

// Evaluate classifies s with model and derives the saving score and advice.
// It has no side effects; the same snapshot and model always give the same
// result.
func Evaluate(s Snapshot, model Classifier) (Advice, error) {
	if model == nil {
		return Advice{}, ErrNoClassifier
	}
	if err := s.Validate(); err != nil {
		return Advice{}, err
	}

	label, err := model.Predict(s)
	if err != nil {
		return Advice{}, fmt.Errorf("predicting category: %w", err)
	}
	category, err := ParseCategory(label)
	if err != nil {
		return Advice{}, err
	}

	score := SavingScore(s)
	tier := TierFor(score)

	return Advice{
		Snapshot:     s,
		Category:     category,
		Message:      category.Advice(),
		Tone:         category.Tone(),
		Score:        score,
		DisplayRatio: DisplayRatio(score),
		Tier:         tier,
		Commentary:   tier.Commentary(),
	}, nil
}
