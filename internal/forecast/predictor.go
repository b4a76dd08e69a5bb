package forecast

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/julianstephens/moodcast/internal/constants"
	apperrors "github.com/julianstephens/moodcast/internal/errors"
	"github.com/julianstephens/moodcast/internal/logger"
	"github.com/julianstephens/moodcast/internal/models"
)

// Option configures a Predictor.
type Option func(*Predictor)

// WithClock sets the source of "now" used for the week boundary.
func WithClock(now func() time.Time) Option {
	return func(p *Predictor) {
		if now != nil {
			p.now = now
		}
	}
}

// WithSeedFunc sets the seed source for random activity draws.
func WithSeedFunc(seed SeedFunc) Option {
	return func(p *Predictor) {
		if seed != nil {
			p.seed = seed
		}
	}
}

// WithTrees sets the classifier ensemble size.
func WithTrees(n int) Option {
	return func(p *Predictor) {
		if n > 0 {
			p.trees = n
		}
	}
}

// Predictor runs the forecast pipeline once. Each Predict call builds its own
// encoder and classifier; nothing trained survives into another call.
type Predictor struct {
	now   func() time.Time
	seed  SeedFunc
	trees int

	window     Window
	summaries  []DailySummary
	encoder    *Encoder
	classifier *Classifier
}

// NewPredictor returns a predictor using the wall clock, TimeSeed and
// constants.ForestTrees unless overridden.
func NewPredictor(opts ...Option) *Predictor {
	p := &Predictor{
		now:   time.Now,
		seed:  TimeSeed,
		trees: constants.ForestTrees,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Predict turns the logs into a forecast for Monday through Sunday.
func (p *Predictor) Predict(logs []models.MoodLog) (Prediction, error) {
	window, err := NewWindow(logs, p.now())
	if err != nil {
		return nil, err
	}
	p.window = window

	p.summaries = NewAggregator(window, p.seed).Summarize(window.Filter(logs))

	p.encoder = NewEncoder()
	features, labels, err := p.encoder.Encode(p.summaries)
	if err != nil {
		return nil, err
	}

	p.classifier = NewClassifier(p.encoder, p.trees)
	if err := p.classifier.Train(features, labels); err != nil {
		return nil, err
	}

	moods, err := p.classifier.PredictAll()
	if err != nil {
		return nil, err
	}
	return Assemble(p.summaries, moods)
}

// Window returns the lookback window of the last Predict call.
func (p *Predictor) Window() Window {
	return p.window
}

// Summaries returns the per-weekday summaries of the last Predict call.
func (p *Predictor) Summaries() []DailySummary {
	return p.summaries
}

// Handle is the request/response boundary: it decodes a JSON array of mood
// logs and returns one compact JSON object, either the forecast or
// {"error": "..."}. It never panics or returns an error.
func Handle(input []byte, opts ...Option) []byte {
	out, err := handle(input, opts...)
	if err != nil {
		logger.Error("Prediction failed", "error", err)
		return apperrors.Payload(err)
	}
	return out
}

func handle(input []byte, opts ...Option) (out []byte, err error) {
	defer func() {
		if r := recover(); r != nil {
			out, err = nil, fmt.Errorf("unexpected failure: %v", r)
		}
	}()

	logs, err := ParseLogs(input)
	if err != nil {
		return nil, err
	}

	prediction, err := NewPredictor(opts...).Predict(logs)
	if err != nil {
		return nil, err
	}

	data, err := json.Marshal(Result{DailyPredictions: prediction})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSerialization, err)
	}
	return data, nil
}
