package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"

	"github.com/julianstephens/moodcast/internal/cli"
	"github.com/julianstephens/moodcast/internal/cli/backups"
	"github.com/julianstephens/moodcast/internal/cli/logs"
	"github.com/julianstephens/moodcast/internal/cli/system"
	"github.com/julianstephens/moodcast/internal/constants"
	apperrors "github.com/julianstephens/moodcast/internal/errors"
	"github.com/julianstephens/moodcast/internal/logger"
	"github.com/julianstephens/moodcast/internal/storage"
	"github.com/julianstephens/moodcast/internal/storage/postgres"
)

type CLI struct {
	Version  kong.VersionFlag
	Config   string `help:"SQLite path or PostgreSQL connection string. Connection strings given here must not embed a password; use the OS keyring or MOODCAST_DB_CONNECTION instead." env:"MOODCAST_CONFIG" default:"~/.config/moodcast/moodcast.db"`
	Debug    bool   `help:"Log debug output to stderr." env:"MOODCAST_DEBUG"`
	Timezone string `help:"IANA timezone used for \"today\" and log timestamps." env:"MOODCAST_TIMEZONE"`

	Predict cli.PredictCmd `cmd:"" help:"Forecast the coming week from mood logs (JSON on stdin)." default:"withargs"`
	Log     struct {
		Add     logs.LogAddCmd     `cmd:"" help:"Record a mood log."`
		List    logs.LogListCmd    `cmd:"" help:"List recent mood logs."`
		Delete  logs.LogDeleteCmd  `cmd:"" help:"Delete a mood log."`
		Restore logs.LogRestoreCmd `cmd:"" help:"Restore a deleted mood log."`
		Import  logs.LogImportCmd  `cmd:"" help:"Import mood logs from JSON."`
		Export  logs.LogExportCmd  `cmd:"" help:"Export mood logs as predict input."`
	} `cmd:"" help:"Manage mood logs."`
	Init   system.InitCmd   `cmd:"" help:"Initialize moodcast storage."`
	Doctor system.DoctorCmd `cmd:"" help:"Run health checks and diagnostics."`
	Tui    system.TuiCmd    `cmd:"" help:"Launch the interactive TUI."`
	Diag   system.DebugCmd  `cmd:"" name:"debug" help:"Debug commands for troubleshooting."`
	Backup struct {
		Create  backups.BackupCreateCmd  `cmd:"" help:"Create a manual backup." default:"1"`
		List    backups.BackupListCmd    `cmd:"" help:"List available backups."`
		Restore backups.BackupRestoreCmd `cmd:"" help:"Restore from a backup."`
	} `cmd:"" help:"Manage database backups."`
	Keyring struct {
		Set    system.KeyringSetCmd    `cmd:"" help:"Store a PostgreSQL connection string in the OS keyring."`
		Get    system.KeyringGetCmd    `cmd:"" help:"Show the stored connection string."`
		Delete system.KeyringDeleteCmd `cmd:"" help:"Remove the stored connection string."`
		Status system.KeyringStatusCmd `cmd:"" help:"Check OS keyring availability."`
	} `cmd:"" help:"Manage database credentials in the OS keyring."`
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer, options ...kong.Option) int {
	var c CLI
	options = append([]kong.Option{
		kong.Name(constants.AppName),
		kong.Description("Weekly mood forecasts from your mood logs"),
		kong.UsageOnError(),
		kong.Writers(stdout, stderr),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{"version": constants.Version},
	}, options...)

	parser, err := kong.New(&c, options...)
	if err != nil {
		apperrors.Fatal(err)
	}
	kctx, err := parser.Parse(args)
	if err != nil {
		parser.Errorf("%s", err)
		return 1
	}

	if err := logger.Init(logger.Config{Debug: c.Debug, ConfigDir: configDir(c.Config)}); err != nil {
		fmt.Fprintf(stderr, "Warning: failed to initialize logging: %v\n", err)
	}

	appCtx := &cli.Context{Stdin: stdin, Stdout: stdout}
	appCtx.Store, appCtx.StoreErr = cli.ResolveStore(c.Config)
	if appCtx.Store != nil {
		defer appCtx.Store.Close()
	}
	if c.Timezone != "" {
		if err := appCtx.SetTimezone(c.Timezone); err != nil {
			logger.Warn("Ignoring timezone", "error", err)
		}
	}

	if err := kctx.Run(appCtx); err != nil {
		logger.Error("Command execution failed", "command", kctx.Command(), "error", err)
		fmt.Fprintln(stderr, apperrors.Formatf("%s: %v", kctx.Command(), err))
		return 1
	}
	return 0
}

// configDir is where logs go: next to the SQLite file, or the default
// config directory for PostgreSQL.
func configDir(config string) string {
	if !postgres.IsConnString(config) {
		if path, err := storage.ExpandPath(config); err == nil {
			return filepath.Dir(path)
		}
	}
	dir, err := storage.ExpandPath(filepath.Dir(constants.DefaultConfigPath))
	if err != nil {
		return filepath.Join(os.TempDir(), constants.AppName)
	}
	return dir
}
