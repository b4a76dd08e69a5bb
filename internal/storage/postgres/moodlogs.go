package postgres

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/julianstephens/moodcast/internal/models"
)

const moodLogColumns = `id, logged_at, mood, activities, social, health, sleep_quality, created_at, deleted_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func (s *Store) AddMoodLog(l models.MoodLog) error {
	lists := make([]string, 0, 3)
	for _, items := range [][]string{l.Activities, l.Social, l.Health} {
		if items == nil {
			items = []string{}
		}
		data, err := json.Marshal(items)
		if err != nil {
			return fmt.Errorf("failed to encode list: %w", err)
		}
		lists = append(lists, string(data))
	}

	createdAt := l.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}
	var deletedAt sql.NullString
	if l.DeletedAt != nil {
		deletedAt = sql.NullString{String: l.DeletedAt.UTC().Format(time.RFC3339), Valid: true}
	}

	_, err := s.db.Exec(`
INSERT INTO mood_logs (id, logged_at, logged_ns, mood, activities, social, health, sleep_quality, created_at, deleted_at)
VALUES ($1, $2, $3, $4, $5::jsonb, $6::jsonb, $7::jsonb, $8, $9, $10)
ON CONFLICT (id) DO UPDATE SET
	logged_at = EXCLUDED.logged_at,
	logged_ns = EXCLUDED.logged_ns,
	mood = EXCLUDED.mood,
	activities = EXCLUDED.activities,
	social = EXCLUDED.social,
	health = EXCLUDED.health,
	sleep_quality = EXCLUDED.sleep_quality,
	deleted_at = EXCLUDED.deleted_at`,
		l.ID, l.Timestamp.Format(time.RFC3339Nano), l.Timestamp.UnixNano(), l.Mood,
		lists[0], lists[1], lists[2], l.SleepQuality,
		createdAt.UTC().Format(time.RFC3339), deletedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save mood log: %w", err)
	}
	return nil
}

func (s *Store) GetMoodLog(id string) (models.MoodLog, error) {
	row := s.db.QueryRow(`SELECT `+moodLogColumns+` FROM mood_logs WHERE id = $1 AND deleted_at IS NULL`, id)
	l, err := scanMoodLog(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.MoodLog{}, fmt.Errorf("%w: %s", models.ErrMoodLogNotFound, id)
	}
	return l, err
}

func (s *Store) GetMoodLogs(since, until time.Time, includeDeleted bool) ([]models.MoodLog, error) {
	query := `SELECT ` + moodLogColumns + ` FROM mood_logs WHERE 1 = 1`
	var args []any
	if !since.IsZero() {
		args = append(args, since.UnixNano())
		query += ` AND logged_ns >= $` + strconv.Itoa(len(args))
	}
	if !until.IsZero() {
		args = append(args, until.UnixNano())
		query += ` AND logged_ns < $` + strconv.Itoa(len(args))
	}
	if !includeDeleted {
		query += ` AND deleted_at IS NULL`
	}
	query += ` ORDER BY logged_ns, id`

	return s.queryMoodLogs(query, args...)
}

func (s *Store) GetAllMoodLogs() ([]models.MoodLog, error) {
	return s.queryMoodLogs(`SELECT ` + moodLogColumns + ` FROM mood_logs ORDER BY logged_ns, id`)
}

func (s *Store) DeleteMoodLog(id string) error {
	res, err := s.db.Exec(`UPDATE mood_logs SET deleted_at = $1 WHERE id = $2 AND deleted_at IS NULL`,
		time.Now().UTC().Format(time.RFC3339), id)
	if err != nil {
		return fmt.Errorf("failed to delete mood log: %w", err)
	}
	return requireAffected(res, id)
}

func (s *Store) RestoreMoodLog(id string) error {
	res, err := s.db.Exec(`UPDATE mood_logs SET deleted_at = NULL WHERE id = $1 AND deleted_at IS NOT NULL`, id)
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
	var loggedAt, createdAt string
	var activities, social, health []byte
	var deletedAt sql.NullString

	if err := row.Scan(&l.ID, &loggedAt, &l.Mood, &activities, &social, &health, &l.SleepQuality, &createdAt, &deletedAt); err != nil {
		return models.MoodLog{}, err
	}

	var err error
	if l.Timestamp, err = time.Parse(time.RFC3339Nano, loggedAt); err != nil {
		return models.MoodLog{}, fmt.Errorf("mood log %s has invalid timestamp %q: %w", l.ID, loggedAt, err)
	}
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

	if err := json.Unmarshal(activities, &l.Activities); err != nil {
		return models.MoodLog{}, fmt.Errorf("mood log %s has invalid activities: %w", l.ID, err)
	}
	if err := json.Unmarshal(social, &l.Social); err != nil {
		return models.MoodLog{}, fmt.Errorf("mood log %s has invalid social: %w", l.ID, err)
	}
	if err := json.Unmarshal(health, &l.Health); err != nil {
		return models.MoodLog{}, fmt.Errorf("mood log %s has invalid health: %w", l.ID, err)
	}
	return l, nil
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
