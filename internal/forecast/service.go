package forecast

import (
	"fmt"
	"strings"
	"time"

	"github.com/julianstephens/moodcast/internal/constants"
	"github.com/julianstephens/moodcast/internal/logger"
	"github.com/julianstephens/moodcast/internal/models"
)

// LogSource is the part of a mood log store a forecast needs.
type LogSource interface {
	GetMoodLogs(since, until time.Time, includeDeleted bool) ([]models.MoodLog, error)
}

// Response is the store-backed forecast result. Predictions is empty when
// there is not enough history; Message then says why.
type Response struct {
	Success     bool       `json:"success"`
	Predictions Prediction `json:"predictions"`
	Message     string     `json:"message,omitempty"`
}

// Service forecasts from the logs held in a store.
type Service struct {
	source LogSource
	now    func() time.Time
	opts   []Option
}

// NewService returns a service reading from source. opts are passed to every
// Predictor it creates; WithClock also sets the fetch range.
func NewService(source LogSource, opts ...Option) *Service {
	probe := NewPredictor(opts...)
	return &Service{source: source, now: probe.now, opts: opts}
}

// Forecast loads the recent logs and runs the pipeline over them.
func (s *Service) Forecast() (Response, error) {
	now := s.now()
	since := now.AddDate(0, 0, -constants.StoreFetchDays)
	logs, err := s.source.GetMoodLogs(since, time.Time{}, false)
	if err != nil {
		return Response{}, fmt.Errorf("failed to load mood logs: %w", err)
	}

	if len(logs) < constants.MinLogsForForecast {
		logger.Info("Not enough mood logs for a forecast", "logs", len(logs), "required", constants.MinLogsForForecast)
		return Response{Success: true, Predictions: Prediction{}, Message: constants.NotEnoughDataMessage}, nil
	}

	prediction, err := NewPredictor(s.opts...).Predict(normalizeStored(logs))
	if err != nil {
		return Response{}, err
	}
	return Response{Success: true, Predictions: prediction}, nil
}

// ForecastInput returns the stored logs of the fetch range in the format the
// prediction boundary accepts.
func (s *Service) ForecastInput() ([]byte, error) {
	since := s.now().AddDate(0, 0, -constants.StoreFetchDays)
	logs, err := s.source.GetMoodLogs(since, time.Time{}, false)
	if err != nil {
		return nil, fmt.Errorf("failed to load mood logs: %w", err)
	}
	return EncodeLogs(normalizeStored(logs))
}

// Trace is a debugging view of one pipeline run.
type Trace struct {
	WindowStart time.Time  `json:"window_start"`
	WindowEnd   time.Time  `json:"window_end"`
	Logs        int        `json:"logs"`
	Summaries   []TraceDay `json:"summaries"`
	Predictions Prediction `json:"predictions"`
}

// TraceDay is the aggregated history of one weekday.
type TraceDay struct {
	Weekday    string   `json:"weekday"`
	Mood       string   `json:"mood"`
	Activities []string `json:"activities"`
}

// Trace runs the pipeline over the fetch range like Forecast, without the
// minimum history check, and reports its intermediate state.
func (s *Service) Trace() (Trace, error) {
	since := s.now().AddDate(0, 0, -constants.StoreFetchDays)
	logs, err := s.source.GetMoodLogs(since, time.Time{}, false)
	if err != nil {
		return Trace{}, fmt.Errorf("failed to load mood logs: %w", err)
	}

	p := NewPredictor(s.opts...)
	prediction, err := p.Predict(normalizeStored(logs))
	if err != nil {
		return Trace{}, err
	}

	w := p.Window()
	t := Trace{WindowStart: w.Start, WindowEnd: w.End, Logs: len(logs), Predictions: prediction}
	for _, d := range p.Summaries() {
		t.Summaries = append(t.Summaries, TraceDay{Weekday: d.Weekday.String(), Mood: string(d.Mood), Activities: d.Activities})
	}
	return t, nil
}

func normalizeStored(logs []models.MoodLog) []models.MoodLog {
	out := make([]models.MoodLog, len(logs))
	for i, l := range logs {
		l.Mood = strings.ToLower(l.Mood)
		if l.Activities == nil {
			l.Activities = []string{}
		}
		out[i] = l
	}
	return out
}
