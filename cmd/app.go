package cmd

import (
	"context"
	"fmt"

	"github.com/kozaktomas/face-attendance/internal/attendance"
	"github.com/kozaktomas/face-attendance/internal/config"
	"github.com/kozaktomas/face-attendance/internal/cooldown"
	"github.com/kozaktomas/face-attendance/internal/facematch"
	"github.com/kozaktomas/face-attendance/internal/fingerprint"
	"github.com/kozaktomas/face-attendance/internal/logger"
	"github.com/kozaktomas/face-attendance/internal/profiles"
	"github.com/kozaktomas/face-attendance/internal/sheets"
	"go.uber.org/zap"
)

// app holds the components shared by the commands.
type app struct {
	cfg      *config.Config
	logger   *zap.Logger
	store    *profiles.Store
	guard    *cooldown.Guard
	engine   *facematch.Engine
	dailyLog *attendance.DailyLog
	recorder *attendance.Recorder
}

// loadConfig reads the config file, env vars and validates the result.
func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadFile(configFile)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// normalizeOptions converts the matching config to normalizer options.
func normalizeOptions(cfg *config.Config) fingerprint.Options {
	return fingerprint.Options{
		Size:       cfg.Matching.ImageSize,
		KernelSize: cfg.Matching.BlurKernel,
		MaxPixels:  cfg.Matching.MaxPixels,
	}
}

// newApp wires the components. Remote sinks are only set up when withSinks is
// true, so offline commands never touch the network.
func newApp(ctx context.Context, cfg *config.Config, withSinks bool) (*app, error) {
	log, err := logger.New(cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("creating logger: %w", err)
	}

	store, err := profiles.Open(cfg.Storage.ProfilesDir)
	if err != nil {
		return nil, err
	}

	dailyLog, err := attendance.OpenDailyLog(cfg.Storage.LogsDir)
	if err != nil {
		return nil, err
	}

	guard := cooldown.New(cfg.Cooldown.Window())
	engine := facematch.NewEngine(store,
		facematch.WithThreshold(cfg.Matching.Threshold),
		facematch.WithNormalizeOptions(normalizeOptions(cfg)),
		facematch.WithCooldown(guard),
		facematch.WithLogger(log.Named("facematch")),
	)

	recorderOpts := []attendance.Option{
		attendance.WithLogger(log.Named("attendance")),
		attendance.WithSyncTimeout(cfg.Sheets.Timeout()),
	}
	if withSinks {
		if sink := newSheetsSink(ctx, cfg.Sheets, log); sink != nil {
			recorderOpts = append(recorderOpts, attendance.WithSink(sink))
		}
	}

	return &app{
		cfg:      cfg,
		logger:   log,
		store:    store,
		guard:    guard,
		engine:   engine,
		dailyLog: dailyLog,
		recorder: attendance.NewRecorder(dailyLog, guard, recorderOpts...),
	}, nil
}

// newSheetsSink returns the spreadsheet sink, or nil when it is not
// configured or cannot be created. Attendance keeps working locally either way.
func newSheetsSink(ctx context.Context, cfg config.SheetsConfig, log *zap.Logger) attendance.Sink {
	if !cfg.Enabled() {
		log.Info("google sheets sync disabled, no spreadsheet id configured")
		return nil
	}
	client, err := sheets.New(ctx, cfg)
	if err != nil {
		log.Warn("google sheets sync disabled", zap.Error(err))
		return nil
	}
	log.Info("google sheets sync enabled",
		zap.String("spreadsheet_id", cfg.SpreadsheetID),
		zap.String("range", cfg.Range),
	)
	return client
}

// close flushes buffered log entries.
func (a *app) close() {
	_ = a.logger.Sync()
}
