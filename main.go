package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"qrcheckin.klederson.com/internal/app"
	"qrcheckin.klederson.com/internal/camera"
	"qrcheckin.klederson.com/internal/checkin"
	"qrcheckin.klederson.com/internal/config"
	"qrcheckin.klederson.com/internal/profile"
	"qrcheckin.klederson.com/internal/qr"
	"qrcheckin.klederson.com/internal/store"
	"qrcheckin.klederson.com/internal/telemetry"
	"qrcheckin.klederson.com/internal/webhook"
)

const dbFile = "qr-checkin.db"

var (
	flagDemo    bool
	flagDevice  string
	flagLocale  string
	flagEvent   string
	flagLogFile string
	flagDataDir string
	flagAddr    string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "qr-checkin",
		Short: "QR Check-In - Terminal event check-in kiosk",
		Long: `QR Check-In scans attendee QR codes from a camera, verifies them against
the check-in webhook with the operator's DEAuth credential and asks the
operator to confirm each check-in.

Real scanning reads a V4L2 camera (/dev/video0 by default).
Use --demo to run against a built-in webhook and a synthetic camera.`,
		SilenceUsage: true,
		RunE:         run,
	}

	flags := rootCmd.PersistentFlags()
	flags.BoolVar(&flagDemo, "demo", false, "Run with a demo camera and a local demo webhook")
	flags.StringVar(&flagDevice, "device", "", "V4L2 camera device (default from QRCHECKIN_CAMERA_DEVICE)")
	flags.StringVar(&flagLocale, "locale", "", "UI language: zh-TW or en-US")
	flags.StringVar(&flagEvent, "event", "", "Event ID sent with every check-in")
	flags.StringVar(&flagLogFile, "log-file", "", "Log file path")
	flags.StringVar(&flagDataDir, "data-dir", "", "Directory for the settings database")

	serveCmd := &cobra.Command{
		Use:   "serve-mock",
		Short: "Run the demo webhook on its own",
		Long: `serve-mock runs the demo webhook with the built-in roster. Point a kiosk at
it with QRCHECKIN_CHECKIN_URL=http://<addr>/webhook/checkin and friends.`,
		RunE: serveMock,
	}
	serveCmd.Flags().StringVar(&flagAddr, "addr", "127.0.0.1:8787", "Listen address")
	rootCmd.AddCommand(serveCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadConfig reads the environment, then applies explicitly set flags.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return config.Config{}, err
	}
	f := cmd.Flags()
	if f.Changed("demo") {
		cfg.Demo = flagDemo
	}
	if f.Changed("device") {
		cfg.CameraDevice = flagDevice
	}
	if f.Changed("locale") {
		cfg.Locale = flagLocale
	}
	if f.Changed("event") {
		cfg.EventID = flagEvent
	}
	if f.Changed("log-file") {
		cfg.LogFile = flagLogFile
	}
	if f.Changed("data-dir") {
		cfg.DataDir = flagDataDir
	}
	return cfg, cfg.Validate()
}

// openLog writes logs to a file; the terminal belongs to the UI.
func openLog(cfg config.Config) (*slog.Logger, func() error, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		level = slog.LevelInfo
	}
	f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	return slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: level})), f.Close, nil
}

func run(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	log, closeLog, err := openLog(cfg)
	if err != nil {
		return err
	}
	defer closeLog()
	slog.SetDefault(log)

	ctx := cmd.Context()
	shutdownTracing, err := telemetry.Setup(ctx, "qr-checkin", config.AppVersion, cfg.OTelEndpoint)
	if err != nil {
		return err
	}
	defer func() {
		if err := shutdownTracing(context.Background()); err != nil {
			log.Warn("tracing shutdown", "error", err)
		}
	}()

	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}
	db, err := store.OpenSQLite(filepath.Join(cfg.DataDir, dbFile))
	if err != nil {
		return err
	}
	defer db.Close()

	// The credential lives only as long as the process.
	creds := store.NewCredentials(store.NewMemory(), log)
	settings := store.NewSettings(db, profile.SystemProber{}, log)

	var source camera.Source
	if cfg.Demo {
		srv := webhook.NewServer(webhook.DemoRoster(cfg.EventID), cfg.DemoCredential, cfg.DefaultToken, log)
		base, stop, err := srv.Start("127.0.0.1:0")
		if err != nil {
			return err
		}
		defer stop(context.Background())
		cfg.Endpoints = webhook.Endpoints(base)
		creds.Save(ctx, cfg.DemoCredential)
		source = camera.NewMock(camera.DemoPayloads)
	} else {
		source = camera.NewV4L2(cfg.CameraDevice, log)
	}

	log.Info("starting", "version", config.AppVersion, "event", cfg.EventID, "demo", cfg.Demo)
	model := app.New(app.Deps{
		Config:      cfg,
		Camera:      source,
		Decoder:     qr.NewZXing(),
		Remote:      checkin.New(cfg.Endpoints, cfg.RequestTimeout, log),
		Credentials: creds,
		Settings:    settings,
		Log:         log,
	})

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithFPS(30),
	)

	final, err := p.Run()
	if m, ok := final.(app.Model); ok {
		m.Close()
	}
	return err
}

func serveMock(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	log := slog.New(slog.NewTextHandler(os.Stderr, nil))

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := webhook.NewServer(webhook.DemoRoster(cfg.EventID), cfg.DemoCredential, cfg.DefaultToken, log)
	fmt.Fprintf(os.Stderr, "Demo webhook for event %s on http://%s (DEAuth credential %q)\n",
		cfg.EventID, flagAddr, cfg.DemoCredential)
	return srv.Serve(ctx, flagAddr)
}
