package sqlite

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/julianstephens/moodcast/internal/models"
)

const moodLogColumns = `id, logged_at, mood, activities, social, health, sleep_quality, created_at, deleted_at`

type rowScanner interface {
	Scan(dest ...any) error
}

// AddMoodLog inserts a mood log, replacing any stored log with the same id.
func (s *Store) AddMoodLog(l models.MoodLog) error {
	activities, err := encodeList(l.Activities)
	if err != nil {
		return err
	}
	social, err := encodeList(l.Social)
	if err != nil {
		return err
	}
	health, err := encodeList(l.Health)
	if err != nil {
		return err
	}

	createdAt := l.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}
	var deletedAt sql.NullString
	if l.DeletedAt != nil {
		deletedAt = sql.NullString{String: l.DeletedAt.UTC().Format(time.RFC3339), Valid: true}
	}

	_, err = s.db.Exec(`
		INSERT INTO mood_logs (id, logged_at, logged_ns, mood, activities, social, health, sleep_quality, created_at, deleted_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			logged_at = excluded.logged_at,
			logged_ns = excluded.logged_ns,
			mood = excluded.mood,
			activities = excluded.activities,
			social = excluded.social,
			health = excluded.health,
			sleep_quality = excluded.sleep_quality,
			deleted_at = excluded.deleted_at`,
		l.ID, l.Timestamp.Format(time.RFC3339Nano), l.Timestamp.UnixNano(), l.Mood,
		activities, social, health, l.SleepQuality,
		createdAt.UTC().Format(time.RFC3339), deletedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save mood log: %w", err)
	}
	return nil
}

// GetMoodLog returns a non-deleted mood log by id.
func (s *Store) GetMoodLog(id string) (models.MoodLog, error) {
	row := s.db.QueryRow(`SELECT `+moodLogColumns+` FROM mood_logs WHERE id = ? AND deleted_at IS NULL`, id)
	l, err := scanMoodLog(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.MoodLog{}, fmt.Errorf("%w: %s", models.ErrMoodLogNotFound, id)
	}
	return l, err
}

// GetMoodLogs returns logs with since <= timestamp < until, oldest first. A
// zero until leaves the range open-ended.
func (s *Store) GetMoodLogs(since, until time.Time, includeDeleted bool) ([]models.MoodLog, error) {
	query := `SELECT ` + moodLogColumns + ` FROM mood_logs WHERE 1 = 1`
	var args []any
	if !since.IsZero() {
		query += ` AND logged_ns >= ?`
		args = append(args, since.UnixNano())
	}
	if !until.IsZero() {
		query += ` AND logged_ns < ?`
		args = append(args, until.UnixNano())
	}
	if !includeDeleted {
		query += ` AND deleted_at IS NULL`
	}
	query += ` ORDER BY logged_ns, id`

	return s.queryMoodLogs(query, args...)
}

// GetAllMoodLogs returns every stored log, deleted ones included, oldest first.
func (s *Store) GetAllMoodLogs() ([]models.MoodLog, error) {
	return s.queryMoodLogs(`SELECT ` + moodLogColumns + ` FROM mood_logs ORDER BY logged_ns, id`)
}

// DeleteMoodLog soft-deletes a mood log.
func (s *Store) DeleteMoodLog(id string) error {
	res, err := s.db.Exec(`UPDATE mood_logs SET deleted_at = ? WHERE id = ? AND deleted_at IS NULL`,
		time.Now().UTC().Format(time.RFC3339), id)
	if err != nil {
		return fmt.Errorf("failed to delete mood log: %w", err)
	}
	return requireAffected(res, id)
}

// RestoreMoodLog clears the deletion mark of a soft-deleted mood log.
func (s *Store) RestoreMoodLog(id string) error {
	res, err := s.db.Exec(`UPDATE mood_logs SET deleted_at = NULL WHERE id = ? AND deleted_at IS NOT NULL`, id)
	if err != nil {
		return fmt.Errorf("failed to restore mood log: %w", err)
	}
	return requireAffected(res, id)
}

func (s *Store) queryMoodLogs(query string, args ...any) ([]models.MoodLog, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var logs []models.MoodLog
	for rows.Next() {
		l, err := scanMoodLog(rows)
		if err != nil {
			return nil, err
		}
		logs = append(logs, l)
	}
	return logs, rows.Err()
}

func scanMoodLog(row rowScanner) (models.MoodLog, error) {
	var l models.MoodLog
	var loggedAt, activities, social, health, createdAt string
	var deletedAt sql.NullString

	if err := row.Scan(&l.ID, &loggedAt, &l.Mood, &activities, &social, &health, &l.SleepQuality, &createdAt, &deletedAt); err != nil {
		return models.MoodLog{}, err
	}

	ts, err := time.Parse(time.RFC3339Nano, loggedAt)
	if err != nil {
		return models.MoodLog{}, fmt.Errorf("mood log %s has invalid timestamp %q: %w", l.ID, loggedAt, err)
	}
	l.Timestamp = ts

	if l.CreatedAt, err = time.Parse(time.RFC3339, createdAt); err != nil {
		return models.MoodLog{}, fmt.Errorf("mood log %s has invalid created_at %q: %w", l.ID, createdAt, err)
	}
	if deletedAt.Valid {
		d, err := time.Parse(time.RFC3339, deletedAt.String)
		if err != nil {
			return models.MoodLog{}, fmt.Errorf("mood log %s has invalid deleted_at %q: %w", l.ID, deletedAt.String, err)
		}
		l.DeletedAt = &d
	}

	for _, f := range []struct {
		raw  string
		dest *[]string
	}{{activities, &l.Activities}, {social, &l.Social}, {health, &l.Health}} {
		if err := json.Unmarshal([]byte(f.raw), f.dest); err != nil {
			return models.MoodLog{}, fmt.Errorf("mood log %s has invalid list column: %w", l.ID, err)
		}
	}
	return l, nil
}

func encodeList(items []string) (string, error) {
	if items == nil {
		items = []string{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		return "", fmt.Errorf("failed to encode list: %w", err)
	}
	return string(data), nil
}

func requireAffected(res sql.Result, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", models.ErrMoodLogNotFound, id)
	}
	return nil
}
