package constants

const (
	// LookbackDays is the width of the history window that ends at the start of the current week.
	LookbackDays = 28
	// StoreFetchDays is how far back stored logs are loaded for a store-backed forecast.
	StoreFetchDays = 30
	// MinLogsForForecast is the minimum number of stored logs before a forecast is attempted.
	MinLogsForForecast = 7
	// ForestTrees is the number of decision trees in the classifier ensemble.
	ForestTrees = 100
	// MaxRepresentativeActivities caps the activities carried per weekday.
	MaxRepresentativeActivities = 2
	// VolatileMoodThreshold is the number of distinct moods that makes a weekday volatile.
	VolatileMoodThreshold = 3

	MoodUnknown          = "unknown"
	NoPredictionSentinel = "No prediction available"
	NotEnoughDataMessage = "Need at least one week of mood data for predictions"
)
