package forecast

import (
	"fmt"

	randomforest "github.com/malaschitz/randomForest"

	"github.com/julianstephens/moodcast/internal/logger"
	"github.com/julianstephens/moodcast/internal/models"
)

// voter is a fitted ensemble: it returns one vote weight per class.
type voter interface {
	Vote(x []float64) []float64
}

// fitFunc trains an ensemble of n trees on X and y.
type fitFunc func(X [][]float64, y []int, n int) voter

func fitForest(X [][]float64, y []int, n int) voter {
	forest := &randomforest.Forest{
		Data: randomforest.ForestData{X: X, Class: y},
	}
	forest.Train(n)
	return forest
}

// Classifier predicts a mood class per weekday from one-hot weekday features.
type Classifier struct {
	encoder *Encoder
	trees   int
	fit     fitFunc
	model   voter
}

// NewClassifier returns an untrained random forest classifier of the given size
// that decodes its predictions with enc.
func NewClassifier(enc *Encoder, trees int) *Classifier {
	return &Classifier{encoder: enc, trees: trees, fit: fitForest}
}

// Trained reports whether Train has succeeded.
func (c *Classifier) Trained() bool {
	return c.model != nil
}

// Train fits the ensemble. A training set with a single class is valid.
func (c *Classifier) Train(features [][]float64, labels []int) (err error) {
	if len(features) == 0 {
		return fmt.Errorf("%w: no training rows", ErrTraining)
	}
	if len(features) != len(labels) {
		return fmt.Errorf("%w: %d feature rows but %d labels", ErrTraining, len(features), len(labels))
	}
	for i, row := range features {
		if len(row) != c.encoder.Width() {
			return fmt.Errorf("%w: row %d has %d columns, want %d", ErrTraining, i, len(row), c.encoder.Width())
		}
		if labels[i] < 0 || labels[i] >= c.encoder.Classes() {
			return fmt.Errorf("%w: label %d out of range", ErrTraining, labels[i])
		}
	}

	defer func() {
		if r := recover(); r != nil {
			c.model = nil
			err = fmt.Errorf("%w: %v", ErrTraining, r)
		}
	}()

	logger.Debug("Training classifier", "rows", len(features), "trees", c.trees)
	c.model = c.fit(features, labels, c.trees)
	if c.model == nil {
		return fmt.Errorf("%w: no model produced", ErrTraining)
	}
	logger.Debug("Classifier training completed")
	return nil
}

// Predict returns the class with the most votes for row; ties go to the lower class.
func (c *Classifier) Predict(row []float64) (int, error) {
	if c.model == nil {
		return 0, ErrNotTrained
	}
	votes := c.model.Vote(row)
	if len(votes) == 0 {
		return 0, fmt.Errorf("%w: classifier returned no votes", ErrUnknownMood)
	}
	best := 0
	for class, v := range votes {
		if v > votes[best] {
			best = class
		}
	}
	return best, nil
}

// PredictAll predicts a mood for every weekday, Monday first.
func (c *Classifier) PredictAll() ([]models.Mood, error) {
	if c.model == nil {
		return nil, ErrNotTrained
	}
	moods := make([]models.Mood, 0, len(models.WeekdayVocabulary))
	for _, wd := range models.WeekdayVocabulary {
		code, err := c.Predict(c.encoder.EncodeWeekday(wd))
		if err != nil {
			return nil, fmt.Errorf("%s: %w", wd, err)
		}
		mood, err := c.encoder.DecodeMood(code)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", wd, err)
		}
		moods = append(moods, mood)
	}
	return moods, nil
}
