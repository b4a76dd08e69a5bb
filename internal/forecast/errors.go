package forecast

import "errors"

// Stage errors. Every one of them is converted to an {"error": "..."}
// payload at the boundary; callers match them with errors.Is.
var (
	ErrInputParse    = errors.New("invalid input")
	ErrEmptyInput    = errors.New("no mood log entries")
	ErrSchema        = errors.New("invalid mood log entry")
	ErrUnknownMood   = errors.New("mood outside vocabulary")
	ErrTraining      = errors.New("model training failed")
	ErrNotTrained    = errors.New("model has not been trained")
	ErrSerialization = errors.New("failed to serialize prediction")
)
