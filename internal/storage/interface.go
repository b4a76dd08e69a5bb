package storage

import (
	"time"

	"github.com/julianstephens/moodcast/internal/migration"
	"github.com/julianstephens/moodcast/internal/models"
)

// Provider is implemented by every mood log backend.
type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Mood logs
	AddMoodLog(models.MoodLog) error
	GetMoodLog(id string) (models.MoodLog, error)
	// GetMoodLogs returns logs with since <= timestamp < until, oldest first.
	// A zero since or until leaves that end of the range open.
	GetMoodLogs(since, until time.Time, includeDeleted bool) ([]models.MoodLog, error)
	// GetAllMoodLogs returns every stored log, deleted ones included.
	GetAllMoodLogs() ([]models.MoodLog, error)
	DeleteMoodLog(id string) error
	RestoreMoodLog(id string) error

	// Utils
	GetConfigPath() string
}

// Migrator is implemented by backends that track schema migrations.
type Migrator interface {
	PendingMigrations() ([]migration.Migration, error)
}
