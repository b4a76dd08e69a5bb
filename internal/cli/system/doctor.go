package system

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/julianstephens/moodcast/internal/backup"
	"github.com/julianstephens/moodcast/internal/cli"
	"github.com/julianstephens/moodcast/internal/constants"
	"github.com/julianstephens/moodcast/internal/keyring"
	"github.com/julianstephens/moodcast/internal/models"
	"github.com/julianstephens/moodcast/internal/storage"
	"github.com/julianstephens/moodcast/internal/utils"
)

type DoctorCmd struct{}

type check struct {
	name string
	// needsDB checks are skipped when the database cannot be loaded.
	needsDB bool
	// warnOnly failures do not fail the command.
	warnOnly bool
	run      func(ctx *cli.Context) error
}

var doctorChecks = []check{
	{name: "Schema version", needsDB: true, run: checkMigrationsComplete},
	{name: "Backups present", warnOnly: true, run: checkBackupsPresent},
	{name: "Data validation", needsDB: true, run: checkValidation},
	{name: "Forecast data", needsDB: true, warnOnly: true, run: checkForecastData},
	{name: "Clock/timezone", run: checkClockTimezone},
	{name: "OS keyring", warnOnly: true, run: checkKeyring},
}

func (cmd *DoctorCmd) Run(ctx *cli.Context) error {
	out := ctx.Out()
	fmt.Fprintln(out, "Running diagnostics...")
	fmt.Fprintln(out)

	hasError := false
	dbReachable := false
	if err := ctx.LoadStore(); err != nil {
		report(out, "Database reachable", err, false)
		hasError = true
	} else {
		report(out, "Database reachable", nil, false)
		dbReachable = true
	}

	for _, c := range doctorChecks {
		if c.needsDB && !dbReachable {
			fmt.Fprintf(out, "⊘ %s: SKIPPED (database not reachable)\n", c.name)
			continue
		}
		err := c.run(ctx)
		report(out, c.name, err, c.warnOnly)
		if err != nil && !c.warnOnly {
			hasError = true
		}
	}

	fmt.Fprintln(out)
	if hasError {
		fmt.Fprintln(out, "Diagnostics completed with errors.")
		return fmt.Errorf("one or more health checks failed")
	}
	fmt.Fprintln(out, "All diagnostics passed!")
	return nil
}

func report(out io.Writer, name string, err error, warnOnly bool) {
	switch {
	case err == nil:
		fmt.Fprintf(out, "✓ %s: OK\n", name)
	case warnOnly:
		fmt.Fprintf(out, "⚠ %s: WARNING\n", name)
		fmt.Fprintf(out, "   %v\n", err)
	default:
		fmt.Fprintf(out, "❌ %s: FAIL\n", name)
		fmt.Fprintf(out, "   Error: %v\n", err)
	}
}

func checkMigrationsComplete(ctx *cli.Context) error {
	migrator, ok := ctx.Store.(storage.Migrator)
	if !ok {
		return nil
	}
	pending, err := migrator.PendingMigrations()
	if err != nil {
		return fmt.Errorf("failed to check migrations: %w", err)
	}
	if len(pending) > 0 {
		return fmt.Errorf("migrations incomplete: %d pending, next is %s (run 'moodcast init')", len(pending), pending[0].Name)
	}
	return nil
}

func checkBackupsPresent(ctx *cli.Context) error {
	if ctx.Store == nil || storage.IsPostgres(ctx.Store) {
		return nil
	}
	mgr := backup.NewManager(ctx.Store.GetConfigPath())
	backups, err := mgr.ListBackups()
	if err != nil {
		return fmt.Errorf("failed to list backups: %w", err)
	}
	if len(backups) == 0 {
		return fmt.Errorf("no backups found - consider creating one with 'moodcast backup create'")
	}
	return nil
}

func checkValidation(ctx *cli.Context) error {
	logs, err := ctx.Store.GetAllMoodLogs()
	if err != nil {
		return fmt.Errorf("failed to get mood logs: %w", err)
	}

	ids := make(map[string]bool, len(logs))
	invalid := 0
	for _, l := range logs {
		if ids[l.ID] {
			return fmt.Errorf("duplicate mood log ID found: %s", l.ID)
		}
		ids[l.ID] = true
		if err := l.Validate(); err != nil {
			invalid++
		}
	}
	if invalid > 0 {
		return fmt.Errorf("found %d invalid mood logs (valid moods: %s)", invalid, models.KnownMoodList())
	}
	return nil
}

func checkForecastData(ctx *cli.Context) error {
	since := ctx.Clock().AddDate(0, 0, -constants.StoreFetchDays)
	logs, err := ctx.Store.GetMoodLogs(since, time.Time{}, false)
	if err != nil {
		return fmt.Errorf("failed to get mood logs: %w", err)
	}
	if len(logs) < constants.MinLogsForForecast {
		return fmt.Errorf("%d mood logs in the last %d days, a forecast needs %d", len(logs), constants.StoreFetchDays, constants.MinLogsForForecast)
	}
	return nil
}

func checkClockTimezone(ctx *cli.Context) error {
	if tz := os.Getenv(constants.EnvTimezone); tz != "" && !utils.ValidateTimezone(tz) {
		return fmt.Errorf("%s=%q is not a valid IANA timezone", constants.EnvTimezone, tz)
	}
	now := ctx.Clock()
	if now.Year() < 2020 || now.Year() > 2100 {
		return fmt.Errorf("system time appears incorrect: %s", now.Format(time.RFC3339))
	}
	return nil
}

func checkKeyring(ctx *cli.Context) error {
	if !keyring.IsAvailable() {
		return keyring.ErrKeyringUnavailable
	}
	return nil
}
