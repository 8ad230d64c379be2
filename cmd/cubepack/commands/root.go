// Package commands implements the cubepack command line.
package commands

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"strings"

	"github.com/piwi3910/cubepack/internal/model"
	"github.com/piwi3910/cubepack/internal/project"
	"github.com/piwi3910/cubepack/internal/store"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Version is set at build time with -ldflags "-X ...commands.Version=v1.2.3".
var Version = "dev"

// flagKeys maps command flags onto config keys. Only the flags of the
// command being run are bound.
var flagKeys = map[string]string{
	"log-level":       "log_level",
	"log-format":      "log_format",
	"listen":          "listen",
	"db":              "database",
	"otel-endpoint":   "otel_endpoint",
	"candidate-order": "candidate_order",
	"item-order":      "item_order",
}

// app carries the state shared across subcommands.
type app struct {
	v           *viper.Viper
	cfgFile     string
	cfgPath     string
	catalogFile string
	cfg         model.AppConfig
	logger      *slog.Logger
}

func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// NewRootCmd builds the full command tree.
func NewRootCmd() *cobra.Command {
	a := &app{v: viper.New()}

	root := &cobra.Command{
		Use:   "cubepack",
		Short: "3D bin packing for cuboid items",
		Long: `cubepack places cuboid items into fixed-size bins using an
extreme-point first-fit heuristic, and serves the packer over HTTP.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.initConfig(cmd)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.cfgFile, "config", "", "config file (default ~/.cubepack/config.json)")
	pf.StringVar(&a.catalogFile, "catalog", "", "container catalog file (default ~/.cubepack/catalog.json)")
	pf.String("log-level", "info", "log level: debug, info, warn, error")
	pf.String("log-format", "json", "log format: json or text")

	root.AddCommand(
		a.newServeCmd(),
		a.newPackCmd(),
		a.newImportCmd(),
		a.newExportCmd(),
		a.newCompareCmd(),
		a.newMigrateCmd(),
		a.newHistoryCmd(),
		a.newConfigCmd(),
		a.newCatalogCmd(),
		a.newBackupCmd(),
	)
	return root
}

// initConfig layers defaults, the config file, CUBEPACK_* environment
// variables and flags into a.cfg, then installs the logger.
func (a *app) initConfig(cmd *cobra.Command) error {
	a.cfgPath = a.cfgFile
	if a.cfgPath == "" {
		a.cfgPath = project.DefaultConfigPath()
	}
	if a.catalogFile == "" {
		a.catalogFile = project.DefaultCatalogPath()
	}

	v := a.v
	v.SetConfigFile(a.cfgPath)
	v.SetConfigType("json")
	v.SetEnvPrefix("CUBEPACK")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	setDefaults(v, model.DefaultAppConfig())
	// CORS_ORIGINS and PORT are accepted unprefixed for container platforms.
	if err := v.BindEnv("cors_origins", "CUBEPACK_CORS_ORIGINS", "CORS_ORIGINS"); err != nil {
		return fmt.Errorf("bind env: %w", err)
	}

	if err := bindFlags(v, cmd.Flags()); err != nil {
		return err
	}

	if err := v.ReadInConfig(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("read config %s: %w", a.cfgPath, err)
	}
	if err := v.Unmarshal(&a.cfg); err != nil {
		return fmt.Errorf("decode config: %w", err)
	}
	if port := os.Getenv("PORT"); port != "" && !v.InConfig("listen") &&
		os.Getenv("CUBEPACK_LISTEN") == "" && !flagChanged(cmd, "listen") {
		a.cfg.Listen = ":" + port
	}

	logger, err := newLogger(a.cfg.LogLevel, a.cfg.LogFormat, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	a.logger = logger
	slog.SetDefault(logger)
	return nil
}

func setDefaults(v *viper.Viper, cfg model.AppConfig) {
	v.SetDefault("listen", cfg.Listen)
	v.SetDefault("database", cfg.Database)
	v.SetDefault("cors_origins", cfg.CORSOrigins)
	v.SetDefault("otel_endpoint", cfg.OtelEndpoint)
	v.SetDefault("candidate_order", cfg.CandidateOrder)
	v.SetDefault("item_order", cfg.ItemOrder)
	v.SetDefault("price_per_m3", cfg.PricePerM3)
	v.SetDefault("minimum_charge", cfg.MinimumCharge)
	v.SetDefault("log_level", cfg.LogLevel)
	v.SetDefault("log_format", cfg.LogFormat)
	v.SetDefault("recent_files", cfg.RecentFiles)
}

func bindFlags(v *viper.Viper, flags *pflag.FlagSet) error {
	var err error
	flags.VisitAll(func(f *pflag.Flag) {
		if key, ok := flagKeys[f.Name]; ok && err == nil {
			err = v.BindPFlag(key, f)
		}
	})
	return err
}

func flagChanged(cmd *cobra.Command, name string) bool {
	f := cmd.Flags().Lookup(name)
	return f != nil && f.Changed
}

func newLogger(level, format string, w io.Writer) (*slog.Logger, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("log level %q: %w", level, err)
	}
	opts := &slog.HandlerOptions{Level: lvl}

	switch strings.ToLower(format) {
	case "json", "":
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	case "text":
		return slog.New(slog.NewTextHandler(w, opts)), nil
	default:
		return nil, fmt.Errorf("unknown log format %q", format)
	}
}

// openStore opens the configured database and applies pending migrations.
func (a *app) openStore() (*store.DB, error) {
	if a.cfg.Database == "" {
		return nil, errors.New("no database configured")
	}
	db, err := store.Open(a.cfg.Database)
	if err != nil {
		return nil, err
	}
	if err := db.MigrateUp(); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

// rememberFile records path in the recent file list when a config file
// exists. Failures are only logged.
func (a *app) rememberFile(path string) {
	if _, err := os.Stat(a.cfgPath); err != nil {
		return
	}
	cfg, err := project.LoadAppConfig(a.cfgPath)
	if err != nil {
		a.logger.Warn("failed to load config", "path", a.cfgPath, "error", err)
		return
	}
	cfg = project.AddRecentFile(cfg, path, 10)
	if err := project.SaveAppConfig(a.cfgPath, cfg); err != nil {
		a.logger.Warn("failed to save config", "path", a.cfgPath, "error", err)
	}
}
