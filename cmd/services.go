package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"go.uber.org/zap"

	"github.com/xvierd/habit-cli/internal/adapters/notification"
	"github.com/xvierd/habit-cli/internal/adapters/storage"
	"github.com/xvierd/habit-cli/internal/config"
	"github.com/xvierd/habit-cli/internal/logging"
	"github.com/xvierd/habit-cli/internal/ports"
	"github.com/xvierd/habit-cli/internal/services"
)

// appDeps groups all service-layer dependencies initialized at startup.
type appDeps struct {
	storage  ports.Storage
	habits   *services.HabitService
	profiles *services.ProfileService
	state    *services.StateService
	notifier *notification.Notifier
	config   *config.Config
	logger   *zap.Logger
}

// app holds all initialized service dependencies.
// Populated by initializeServices() and accessible to all commands.
var app appDeps

// initializeServices sets up all the required services and adapters.
func initializeServices() error {
	if configPath != "" {
		config.SetConfigFile(configPath)
	}

	cfg, loadErr := config.Load()
	app.config = cfg
	if loadErr != nil {
		// If config loading fails, use defaults
		app.config = config.DefaultConfig()
		if dir, expandErr := config.ExpandPath(app.config.Storage.DataDir); expandErr == nil {
			app.config.Storage.DataDir = dir
		}
	}

	dataPath := dbPath
	if dataPath == "" {
		dataPath = app.config.Storage.DataDir
	}

	logPath := ""
	if !verbose {
		logPath = filepath.Join(dataDir(dataPath), "habit.log")
	}
	var err error
	app.logger, err = logging.New(app.config.Log.Level, logPath)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	if loadErr != nil {
		app.logger.Warn("Using default configuration", zap.Error(loadErr))
	}
	app.logger.Debug("Opening storage",
		zap.String("backend", app.config.Storage.Backend),
		zap.String("path", dataPath))

	app.storage, err = storage.Open(app.config.Storage.Backend, dataPath)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}

	app.notifier = notification.New(&app.config.Notifications)

	app.habits = services.NewHabitService(app.storage.Snapshots(), ports.SystemClock, app.notifier, app.logger)
	app.habits.SetWeekStart(app.config.WeekStart())
	app.profiles = services.NewProfileService(app.storage.Profiles(), app.habits, app.logger)
	app.state = services.NewStateService(app.habits, app.profiles)

	if err := app.habits.Load(context.Background()); err != nil {
		return err
	}

	return nil
}

// dataDir returns the directory holding path, which may itself be a
// directory or a data file inside one.
func dataDir(path string) string {
	if filepath.Ext(path) != "" {
		return filepath.Dir(path)
	}
	return path
}

// cleanupServices closes all resources.
func cleanupServices() error {
	if app.logger != nil {
		_ = app.logger.Sync()
	}
	if app.storage != nil {
		err := app.storage.Close()
		app.storage = nil
		return err
	}
	return nil
}

// setupSignalHandler sets up a context that cancels on interrupt signals.
func setupSignalHandler() context.Context {
	ctx, cancel := context.WithCancel(context.Background())

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigChan
		cancel()
	}()

	return ctx
}
