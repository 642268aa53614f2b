package main

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/julianstephens/streakline/internal/cli"
	"github.com/julianstephens/streakline/internal/cli/backups"
	"github.com/julianstephens/streakline/internal/cli/settings"
	"github.com/julianstephens/streakline/internal/cli/system"
	"github.com/julianstephens/streakline/internal/config"
	"github.com/julianstephens/streakline/internal/constants"
	"github.com/julianstephens/streakline/internal/errors"
	"github.com/julianstephens/streakline/internal/keyring"
	"github.com/julianstephens/streakline/internal/logger"
	"github.com/julianstephens/streakline/internal/storage"
)

var CLI struct {
	Version    kong.VersionFlag
	DB         string `name:"db" help:"SQLite path, PostgreSQL connection string, or 'keyring'. PostgreSQL strings must NOT embed a password; store those with 'keyring set' and pass 'keyring'." type:"string"`
	ConfigFile string `name:"config-file" help:"YAML config file. Defaults to $STREAKLINE_CONFIG." type:"path"`
	DebugLog   bool   `name:"debug" help:"Log debug output to stderr."`

	Init      system.InitCmd       `cmd:"" help:"Initialize streakline storage."`
	Migrate   system.MigrateCmd    `cmd:"" help:"Run database migrations."`
	Doctor    system.DoctorCmd     `cmd:"" help:"Run health checks and diagnostics."`
	Tui       system.TuiCmd        `cmd:"" help:"Launch the goal dashboard." default:"1"`
	Goal      cli.GoalCmd          `cmd:"" help:"Manage goals."`
	Log       cli.LogCmd           `cmd:"" help:"Log a completion for a goal."`
	Streak    cli.StreakCmd        `cmd:"" help:"Show streaks."`
	History   cli.HistoryCmd       `cmd:"" help:"Show which recent days have a completion."`
	Milestone cli.MilestoneCmd     `cmd:"" help:"Manage milestones."`
	Settings  settings.SettingsCmd `cmd:"" help:"Manage application settings."`
	Remind    system.RemindCmd     `cmd:"" help:"Notify about streaks that end unless logged today."`
	Backup    struct {
		Create  backups.BackupCreateCmd  `cmd:"" help:"Create a manual backup." default:"1"`
		List    backups.BackupListCmd    `cmd:"" help:"List available backups."`
		Restore backups.BackupRestoreCmd `cmd:"" help:"Restore from a backup."`
	} `cmd:"" help:"Manage database backups."`
	Keyring system.KeyringCmd `cmd:"" help:"Manage the PostgreSQL connection string in the OS keyring."`
	Debug   system.DebugCmd   `cmd:"" hidden:"" help:"Debug commands for troubleshooting."`
}

func main() {
	kctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Track daily goals and keep your streaks alive"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{"version": constants.Version},
	)

	ctx := context.Background()

	cfg, err := config.Load(ctx, CLI.ConfigFile)
	if err != nil {
		errors.Fatal(err)
	}
	if CLI.DB != "" {
		cfg.DB = CLI.DB
	}

	if err := logger.Init(logger.Config{
		Debug:     CLI.DebugLog,
		Level:     cfg.LogLevel,
		ConfigDir: logDir(cfg.DB),
	}); err != nil {
		errors.Fatalf("failed to initialize logger: %v", err)
	}
	logger.Debug("Starting", "version", constants.Version, "command", kctx.Command())

	command := strings.Fields(kctx.Command())[0]

	// Keyring commands manage the connection string itself, so they must run
	// before it exists.
	var store storage.Provider
	if command != "keyring" {
		store, err = cli.OpenStore(cfg.DB)
		if err != nil {
			errors.Fatal(err)
		}
		defer store.Close()

		// init creates the database; doctor reports load failures itself.
		if command != "init" && command != "doctor" {
			if err := store.Load(); err != nil {
				errors.Fatal(err)
			}
		}
	}

	appCtx := cli.NewContext(ctx, store, cfg)
	if err := kctx.Run(appCtx); err != nil {
		if store != nil {
			store.Close()
		}
		errors.Fatal(err)
	}
}

// logDir keeps logs next to a SQLite database, otherwise in the user config dir.
func logDir(db string) string {
	if db != constants.KeyringConfigValue && !keyring.IsPostgres(db) {
		if path, err := cli.ExpandHome(db); err == nil {
			return filepath.Dir(path)
		}
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return filepath.Join(os.TempDir(), constants.AppName)
	}
	return filepath.Join(dir, constants.AppName)
}
