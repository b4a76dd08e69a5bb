package constants

// Suggested values offered by the interactive log form. Free text is still
// accepted for every list field.
var (
	SuggestedActivities = []string{"Studying", "Exam", "Work", "Reading", "Gaming", "Music", "Movie", "Drinking", "Relax"}
	SuggestedSocial     = []string{"Family", "Friends", "Relationship", "Colleagues", "Pets"}
	SuggestedHealth     = []string{"Exercise", "Walk", "Run", "Eat healthy"}
	SleepQualities      = []string{"1", "2", "3", "4"}
)

const (
	// DefaultListDays is how many days of logs `log list` and the TUI show.
	DefaultListDays = 14
)
