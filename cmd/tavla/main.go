package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	charmLog "github.com/charmbracelet/log"
	"github.com/hylla/tavla/internal/adapters/storage/sqlite"
	"github.com/hylla/tavla/internal/adapters/storage/tomlfile"
	"github.com/hylla/tavla/internal/app"
	"github.com/hylla/tavla/internal/config"
	"github.com/hylla/tavla/internal/platform"
	"github.com/hylla/tavla/internal/tui"
)

// version stores a package-level helper value.
var version = "dev"

// program represents program data used by this package.
type program interface {
	Run() (tea.Model, error)
}

// programFactory stores a package-level helper value.
var programFactory = func(m tea.Model) program {
	return tea.NewProgram(m)
}

// main handles main.
func main() {
	if err := run(context.Background(), os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// run runs the requested command flow.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	_ = ctx // reserved for future store backends that take a context
	if stdout == nil {
		stdout = io.Discard
	}
	if stderr == nil {
		stderr = io.Discard
	}

	fs := flag.NewFlagSet("tavla", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	var (
		configPath string
		dataPath   string
		appName    string
		devMode    bool
		showVer    bool
	)
	defaultDevMode := version == "dev"
	if envDev, ok := parseBoolEnv("TAVLA_DEV_MODE"); ok {
		defaultDevMode = envDev
	}
	if envApp := strings.TrimSpace(os.Getenv("TAVLA_APP_NAME")); envApp != "" {
		appName = envApp
	} else {
		appName = "tavla"
	}
	fs.StringVar(&configPath, "config", "", "path to config TOML")
	fs.StringVar(&dataPath, "data", "", "path to the board file (overrides config)")
	fs.StringVar(&appName, "app", appName, "application name for config/data path resolution")
	fs.BoolVar(&devMode, "dev", defaultDevMode, "use dev mode paths (<app>-dev)")
	fs.BoolVar(&showVer, "version", false, "show version")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if showVer {
		_, _ = fmt.Fprintf(stdout, "tavla %s\n", version)
		return nil
	}

	paths, err := platform.DefaultPathsWithOptions(platform.Options{
		AppName: appName,
		DevMode: devMode,
	})
	if err != nil {
		return err
	}

	command := firstArg(fs.Args())
	switch command {
	case "paths":
		_, _ = fmt.Fprintf(stdout, "app: %s\n", appName)
		_, _ = fmt.Fprintf(stdout, "dev_mode: %t\n", devMode)
		_, _ = fmt.Fprintf(stdout, "config: %s\n", paths.ConfigPath)
		_, _ = fmt.Fprintf(stdout, "data_dir: %s\n", paths.DataDir)
		_, _ = fmt.Fprintf(stdout, "data: %s\n", paths.DataPath)
		_, _ = fmt.Fprintf(stdout, "db: %s\n", paths.DBPath)
		return nil
	case "", "export", "import":
		// Continue.
	default:
		return fmt.Errorf("unknown command: %s", command)
	}

	dataOverridden := strings.TrimSpace(dataPath) != ""
	if configPath == "" {
		if envPath := strings.TrimSpace(os.Getenv("TAVLA_CONFIG")); envPath != "" {
			configPath = envPath
		} else {
			configPath = paths.ConfigPath
		}
	}
	if !dataOverridden {
		if envPath := strings.TrimSpace(os.Getenv("TAVLA_DATA_PATH")); envPath != "" {
			dataPath = envPath
			dataOverridden = true
		} else {
			dataPath = paths.DataPath
		}
	}

	defaultCfg := config.Default(dataPath)
	cfg, err := config.Load(configPath, defaultCfg)
	if err != nil {
		return fmt.Errorf("load config %q: %w", configPath, err)
	}
	if dataOverridden {
		cfg.Storage.Path = dataPath
	} else if cfg.Storage.Backend == config.StorageBackendSQLite && cfg.Storage.Path == dataPath {
		// Backend switched in config without an explicit path; use the
		// database location instead of the TOML default.
		cfg.Storage.Path = paths.DBPath
	}

	logger, closeLogger, err := newRuntimeLogger(stderr, appName, devMode, cfg.Logging.Level, command == "", paths.DataDir)
	if err != nil {
		return fmt.Errorf("configure runtime logger: %w", err)
	}
	defer func() {
		if closeErr := closeLogger(); closeErr != nil {
			_, _ = fmt.Fprintf(stderr, "warning: close runtime log sink: %v\n", closeErr)
		}
	}()

	logger.Info("startup configuration resolved", "app", appName, "dev_mode", devMode, "command", command)
	logger.Debug("runtime paths resolved", "config_path", configPath, "data_dir", paths.DataDir, "data_path", cfg.Storage.Path)
	logger.Info("configuration loaded", "config_path", configPath, "backend", cfg.Storage.Backend, "log_level", cfg.Logging.Level)

	store, closeStore, err := openStore(cfg)
	if err != nil {
		logger.Error("store open failed", "backend", cfg.Storage.Backend, "path", cfg.Storage.Path, "err", err)
		return fmt.Errorf("open store: %w", err)
	}
	defer func() {
		if closeErr := closeStore(); closeErr != nil {
			logger.Warn("store close failed", "path", cfg.Storage.Path, "err", closeErr)
		}
	}()
	logger.Info("store ready", "backend", cfg.Storage.Backend, "path", cfg.Storage.Path)

	svc, err := app.NewService(store, time.Now, logger)
	if err != nil {
		return fmt.Errorf("initialize service: %w", err)
	}

	switch command {
	case "":
		logger.Info("command flow start", "command", "tui")
	case "export":
		logger.Info("command flow start", "command", "export")
		if err := runExport(svc, fs.Args()[1:], stdout); err != nil {
			logger.Error("command flow failed", "command", "export", "err", err)
			return fmt.Errorf("run export command: %w", err)
		}
		logger.Info("command flow complete", "command", "export")
		return nil
	case "import":
		logger.Info("command flow start", "command", "import")
		if err := runImport(svc, fs.Args()[1:]); err != nil {
			logger.Error("command flow failed", "command", "import", "err", err)
			return fmt.Errorf("run import command: %w", err)
		}
		logger.Info("command flow complete", "command", "import")
		return nil
	}

	if err := svc.EnsureSeedList(cfg.Board.SeedList); err != nil {
		return fmt.Errorf("seed board: %w", err)
	}

	m := tui.NewModel(svc, tui.WithKeys(tui.KeyOverrides{
		Undo:        cfg.Keys.Undo,
		Redo:        cfg.Keys.Redo,
		NewList:     cfg.Keys.NewList,
		NewItem:     cfg.Keys.NewItem,
		DeleteItem:  cfg.Keys.DeleteItem,
		PromoteItem: cfg.Keys.PromoteItem,
		PromoteList: cfg.Keys.PromoteList,
	}))
	logger.Info("starting tui program loop")
	if _, err := programFactory(m).Run(); err != nil {
		logger.Error("tui program terminated with error", "err", err)
		return fmt.Errorf("run tui program: %w", err)
	}
	// The quit key saves before exiting; save again in case the program
	// ended some other way.
	if err := svc.Save(); err != nil {
		return fmt.Errorf("save on exit: %w", err)
	}
	logger.Info("command flow complete", "command", "tui")
	return nil
}

// openStore builds the configured persistence adapter. The returned closer is
// a no-op for file stores.
func openStore(cfg config.Config) (app.Store, func() error, error) {
	switch cfg.Storage.Backend {
	case config.StorageBackendSQLite:
		store, err := sqlite.Open(cfg.Storage.Path)
		if err != nil {
			return nil, nil, err
		}
		return store, store.Close, nil
	case config.StorageBackendTOML:
		store, err := tomlfile.New(cfg.Storage.Path)
		if err != nil {
			return nil, nil, err
		}
		return store, func() error { return nil }, nil
	default:
		return nil, nil, fmt.Errorf("unknown storage backend: %q", cfg.Storage.Backend)
	}
}

// runExport runs the requested command flow.
func runExport(svc *app.Service, args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("tavla export", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	var outPath string
	fs.StringVar(&outPath, "out", "-", "output file path ('-' for stdout)")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("parse export flags: %w", err)
	}
	if len(fs.Args()) > 0 {
		return fmt.Errorf("unexpected export arguments: %v", fs.Args())
	}

	snap := svc.ExportSnapshot()
	encoded, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("encode snapshot json: %w", err)
	}
	encoded = append(encoded, '\n')

	if outPath == "-" {
		if _, err := stdout.Write(encoded); err != nil {
			return fmt.Errorf("write snapshot to stdout: %w", err)
		}
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return fmt.Errorf("create export output dir: %w", err)
	}
	if err := os.WriteFile(outPath, encoded, 0o644); err != nil {
		return fmt.Errorf("write export file: %w", err)
	}
	return nil
}

// runImport runs the requested command flow.
func runImport(svc *app.Service, args []string) error {
	fs := flag.NewFlagSet("tavla import", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	var inPath string
	fs.StringVar(&inPath, "in", "", "input snapshot JSON file")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("parse import flags: %w", err)
	}
	if len(fs.Args()) > 0 {
		return fmt.Errorf("unexpected import arguments: %v", fs.Args())
	}
	if inPath == "" {
		return fmt.Errorf("--in is required")
	}

	content, err := os.ReadFile(inPath)
	if err != nil {
		return fmt.Errorf("read import file: %w", err)
	}
	var snap app.Snapshot
	if err := json.Unmarshal(content, &snap); err != nil {
		return fmt.Errorf("decode snapshot json: %w", err)
	}
	if err := svc.ImportSnapshot(snap); err != nil {
		return fmt.Errorf("import snapshot: %w", err)
	}
	return nil
}

// firstArg handles first arg.
func firstArg(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}

// newRuntimeLogger builds the single runtime log sink. While the TUI owns the
// terminal the console stays quiet; dev mode routes events to a logfmt file
// under the data dir instead.
func newRuntimeLogger(stderr io.Writer, appName string, devMode bool, levelName string, tuiActive bool, dataDir string) (*charmLog.Logger, func() error, error) {
	level, err := charmLog.ParseLevel(levelName)
	if err != nil {
		return nil, nil, fmt.Errorf("parse logging level %q: %w", levelName, err)
	}
	noClose := func() error { return nil }

	if !tuiActive {
		logger := charmLog.NewWithOptions(stderr, charmLog.Options{
			Level:           level,
			Prefix:          appName,
			ReportTimestamp: true,
			TimeFormat:      time.RFC3339,
			Formatter:       charmLog.TextFormatter,
		})
		return logger, noClose, nil
	}

	if !devMode {
		return charmLog.New(io.Discard), noClose, nil
	}

	logPath := filepath.Join(dataDir, "log", fmt.Sprintf("%s-%s.log", appName, time.Now().UTC().Format("20060102")))
	if err := os.MkdirAll(filepath.Dir(logPath), 0o755); err != nil {
		return nil, nil, fmt.Errorf("create dev log dir: %w", err)
	}
	logFile, err := os.OpenFile(logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open dev log file: %w", err)
	}
	logger := charmLog.NewWithOptions(logFile, charmLog.Options{
		Level:           level,
		Prefix:          appName,
		ReportTimestamp: true,
		TimeFormat:      time.RFC3339,
		Formatter:       charmLog.LogfmtFormatter,
	})
	return logger, logFile.Close, nil
}

// parseBoolEnv parses input into a normalized form.
func parseBoolEnv(name string) (bool, bool) {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return false, false
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, false
	}
	return v, true
}
