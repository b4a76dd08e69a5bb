package backups

import (
	"bytes"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/julianstephens/moodcast/internal/cli"
	"github.com/julianstephens/moodcast/internal/models"
	"github.com/julianstephens/moodcast/internal/storage/postgres"
	"github.com/julianstephens/moodcast/internal/storage/sqlite"
)

func setupTestContext(t *testing.T) (*cli.Context, *sqlite.Store, *bytes.Buffer) {
	t.Helper()
	store := sqlite.NewStore(filepath.Join(t.TempDir(), "moodcast.db"))
	if err := store.Init(); err != nil {
		t.Fatalf("failed to initialize store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	var out bytes.Buffer
	return &cli.Context{Store: store, Stdout: &out}, store, &out
}

func addLog(t *testing.T, store *sqlite.Store, id string) {
	t.Helper()
	l := models.MoodLog{ID: id, Timestamp: time.Date(2026, 10, 1, 9, 0, 0, 0, time.UTC), Mood: "fine"}
	if err := store.AddMoodLog(l); err != nil {
		t.Fatalf("AddMoodLog() error = %v", err)
	}
}

func TestBackupCreateAndList(t *testing.T) {
	ctx, _, out := setupTestContext(t)

	if err := (&BackupListCmd{}).Run(ctx); err != nil {
		t.Fatalf("backup list failed: %v", err)
	}
	if !strings.Contains(out.String(), "No backups found.") {
		t.Errorf("empty list output = %q", out.String())
	}

	out.Reset()
	if err := (&BackupCreateCmd{}).Run(ctx); err != nil {
		t.Fatalf("backup create failed: %v", err)
	}
	if !strings.Contains(out.String(), "✓ Backup created: moodcast-") {
		t.Errorf("create output = %q", out.String())
	}

	out.Reset()
	if err := (&BackupListCmd{}).Run(ctx); err != nil {
		t.Fatalf("backup list failed: %v", err)
	}
	if !strings.Contains(out.String(), "Available backups (1 total") {
		t.Errorf("list output = %q", out.String())
	}
}

func TestBackupRestore(t *testing.T) {
	ctx, store, out := setupTestContext(t)
	addLog(t, store, "before")

	if err := (&BackupCreateCmd{}).Run(ctx); err != nil {
		t.Fatalf("backup create failed: %v", err)
	}
	addLog(t, store, "after")

	mgr, err := manager(ctx)
	if err != nil {
		t.Fatal(err)
	}
	backups, err := mgr.ListBackups()
	if err != nil || len(backups) != 1 {
		t.Fatalf("ListBackups() = %v, %v", backups, err)
	}
	name := filepath.Base(backups[0].Path)

	t.Run("cancelled", func(t *testing.T) {
		out.Reset()
		ctx.Stdin = strings.NewReader("n\n")
		if err := (&BackupRestoreCmd{BackupFile: name}).Run(ctx); err != nil {
			t.Fatalf("backup restore failed: %v", err)
		}
		if !strings.Contains(out.String(), "Restore cancelled.") {
			t.Errorf("output = %q", out.String())
		}
		if _, err := store.GetMoodLog("after"); err != nil {
			t.Errorf("cancelled restore changed data: %v", err)
		}
	})

	t.Run("confirmed", func(t *testing.T) {
		out.Reset()
		ctx.Stdin = strings.NewReader("yes\n")
		if err := (&BackupRestoreCmd{BackupFile: name}).Run(ctx); err != nil {
			t.Fatalf("backup restore failed: %v", err)
		}
		if !strings.Contains(out.String(), "✓ Database restored successfully!") {
			t.Errorf("output = %q", out.String())
		}

		if err := store.Load(); err != nil {
			t.Fatalf("Load() after restore error = %v", err)
		}
		if _, err := store.GetMoodLog("before"); err != nil {
			t.Errorf("restored database is missing the backed up log: %v", err)
		}
		if _, err := store.GetMoodLog("after"); !errors.Is(err, models.ErrMoodLogNotFound) {
			t.Errorf("GetMoodLog(after) error = %v, want ErrMoodLogNotFound", err)
		}
	})
}

func TestBackupRestoreMissingFile(t *testing.T) {
	ctx, _, _ := setupTestContext(t)
	if err := (&BackupRestoreCmd{BackupFile: "nope.db", Yes: true}).Run(ctx); err == nil {
		t.Error("restoring a missing backup error = nil")
	}
}

func TestBackupRejectsPostgres(t *testing.T) {
	ctx := &cli.Context{Store: postgres.New("postgres://user@localhost/moodcast"), Stdout: &bytes.Buffer{}}

	cmds := map[string]interface{ Run(*cli.Context) error }{
		"create":  &BackupCreateCmd{},
		"list":    &BackupListCmd{},
		"restore": &BackupRestoreCmd{BackupFile: "x.db", Yes: true},
	}
	for name, cmd := range cmds {
		t.Run(name, func(t *testing.T) {
			if err := cmd.Run(ctx); !errors.Is(err, errPostgresBackups) {
				t.Errorf("error = %v, want errPostgresBackups", err)
			}
		})
	}
}
