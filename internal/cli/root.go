package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/julianstephens/moodcast/internal/backup"
	"github.com/julianstephens/moodcast/internal/constants"
	"github.com/julianstephens/moodcast/internal/keyring"
	"github.com/julianstephens/moodcast/internal/logger"
	"github.com/julianstephens/moodcast/internal/storage"
	"github.com/julianstephens/moodcast/internal/utils"
)

// Context is passed to every command's Run method.
type Context struct {
	Store storage.Provider
	// StoreErr is set when the configured store could not be resolved.
	// Commands that never touch storage still run.
	StoreErr error

	Stdin    io.Reader
	Stdout   io.Writer
	Now      func() time.Time
	Location *time.Location
}

// ResolveStore picks the mood log store. A trusted connection string from
// MOODCAST_DB_CONNECTION or the keyring wins when --config was left at its
// default.
func ResolveStore(config string) (storage.Provider, error) {
	if config == constants.DefaultConfigPath {
		if connStr, source := keyring.ResolveConnectionString(); connStr != "" {
			logger.Debug("Using trusted PostgreSQL connection", "source", source)
			return storage.OpenTrusted(connStr), nil
		}
	}
	return storage.Open(config)
}

// LoadStore opens the configured store.
func (c *Context) LoadStore() error {
	if c.StoreErr != nil {
		return c.StoreErr
	}
	if c.Store == nil {
		return fmt.Errorf("no storage configured")
	}
	return c.Store.Load()
}

func (c *Context) In() io.Reader {
	if c.Stdin == nil {
		return os.Stdin
	}
	return c.Stdin
}

func (c *Context) Out() io.Writer {
	if c.Stdout == nil {
		return os.Stdout
	}
	return c.Stdout
}

// Clock returns the current time in the configured location.
func (c *Context) Clock() time.Time {
	now := time.Now
	if c.Now != nil {
		now = c.Now
	}
	if c.Location != nil {
		return now().In(c.Location)
	}
	return now()
}

// SetTimezone sets the location used by Clock.
func (c *Context) SetTimezone(tz string) error {
	loc, err := utils.LoadLocation(tz)
	if err != nil {
		return fmt.Errorf("invalid timezone %q: %w", tz, err)
	}
	c.Location = loc
	return nil
}

// PerformAutomaticBackup creates an automatic backup and silently handles errors.
// PostgreSQL stores are skipped.
func (c *Context) PerformAutomaticBackup() {
	if c.Store == nil || storage.IsPostgres(c.Store) {
		return
	}
	mgr := backup.NewManager(c.Store.GetConfigPath())
	if _, err := mgr.CreateBackup(); err != nil {
		logger.Warn("Automatic backup failed", "error", err)
	}
}

// PrintJSON writes v as indented JSON.
func (c *Context) PrintJSON(v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	_, err = fmt.Fprintln(c.Out(), string(data))
	return err
}
