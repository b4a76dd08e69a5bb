package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/atotto/clipboard"

	apperrors "github.com/julianstephens/moodcast/internal/errors"
	"github.com/julianstephens/moodcast/internal/forecast"
	"github.com/julianstephens/moodcast/internal/logger"
	"github.com/julianstephens/moodcast/internal/notifier"
)

var (
	clipboardWrite = clipboard.WriteAll
	notifyForecast = func(p forecast.Prediction, ctx *Context) error {
		return notifier.New().NotifyForecast(p, ctx.Clock().Weekday())
	}
)

// PredictCmd reads a JSON array of mood logs on stdin and writes the weekly
// forecast, or {"error": ...}, as one line of JSON. It never fails.
type PredictCmd struct {
	FromStore bool `help:"Forecast from stored mood logs instead of stdin."`
	Copy      bool `help:"Also copy the JSON output to the clipboard."`
	Notify    bool `help:"Send today's forecast to the daylit tray app."`
}

func (c *PredictCmd) Run(ctx *Context) error {
	var out []byte
	if c.FromStore {
		out = c.fromStore(ctx)
	} else {
		out = c.fromStdin(ctx)
	}

	if _, err := fmt.Fprintln(ctx.Out(), string(out)); err != nil {
		logger.Error("Failed to write forecast", "error", err)
	}

	if c.Copy {
		if err := clipboardWrite(string(out)); err != nil {
			logger.Warn("Failed to copy forecast to clipboard", "error", err)
		}
	}
	if c.Notify {
		c.notify(ctx, out)
	}
	return nil
}

func (c *PredictCmd) fromStdin(ctx *Context) []byte {
	input, err := io.ReadAll(ctx.In())
	if err != nil {
		return apperrors.Payload(fmt.Errorf("%w: %v", forecast.ErrInputParse, err))
	}
	return forecast.Handle(input, forecast.WithClock(ctx.Clock))
}

func (c *PredictCmd) fromStore(ctx *Context) []byte {
	if err := ctx.LoadStore(); err != nil {
		logger.Error("Failed to load storage", "error", err)
		return apperrors.Payload(err)
	}
	resp, err := forecast.NewService(ctx.Store, forecast.WithClock(ctx.Clock)).Forecast()
	if err != nil {
		logger.Error("Prediction failed", "error", err)
		return apperrors.Payload(err)
	}
	data, err := json.Marshal(resp)
	if err != nil {
		return apperrors.Payload(fmt.Errorf("%w: %v", forecast.ErrSerialization, err))
	}
	return data
}

// notify sends today's forecast from either output shape. Errors are logged only.
func (c *PredictCmd) notify(ctx *Context, out []byte) {
	var decoded struct {
		DailyPredictions forecast.Prediction `json:"daily_predictions"`
		Predictions      forecast.Prediction `json:"predictions"`
	}
	if err := json.Unmarshal(out, &decoded); err != nil {
		logger.Warn("Cannot notify, forecast output unreadable", "error", err)
		return
	}
	p := decoded.DailyPredictions
	if len(p) == 0 {
		p = decoded.Predictions
	}
	if len(p) == 0 {
		logger.Info("No forecast to notify")
		return
	}
	if err := notifyForecast(p, ctx); err != nil {
		logger.Warn("Failed to send forecast notification", "error", err)
	}
}
