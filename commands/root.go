package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/msaldanha/nulldev/client"
	"github.com/msaldanha/nulldev/config"
	"github.com/msaldanha/nulldev/timeline"
	"github.com/msaldanha/nulldev/viewer"
)

var (
	configPath string
	debug      bool
	gatewayURL string

	rootCmd = &cobra.Command{
		Use:   "nulldev",
		Short: "DF character lookup and timeline viewer",
		Long: `nulldev looks up DF characters by server and name and shows their recent
timeline: item drops, dungeon and raid clears, guild events and level-ups.

The upstream API key lives only in the gateway process (DF_API_KEY). The
viewers talk to the gateway and never see it.

Examples:
  DF_API_KEY=... nulldev serve --addr :8080
  nulldev browse --gateway http://localhost:8080/proxy
  nulldev lookup --server cain --name Nulldev --all`,
		SilenceUsage: true,
	}
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "",
		"Path to a YAML configuration file")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false,
		"Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&gatewayURL, "gateway", "",
		"Gateway proxy URL used by the viewers (overrides config)")

	rootCmd.AddCommand(serveCmd, browseCmd, lookupCmd, initCmd)
}

func Execute() error {
	return rootCmd.Execute()
}

func loadConfig() (*config.Config, error) {
	cfg, er := config.Load(configPath)
	if er != nil {
		return nil, er
	}
	if gatewayURL != "" {
		cfg.Viewer.GatewayURL = gatewayURL
	}
	if debug {
		cfg.Logging.Level = "debug"
	}
	return cfg, nil
}

// newLogger builds the process logger. Without a log file, quiet callers get
// a no-op logger so nothing is written over a terminal UI.
func newLogger(cfg config.LoggingConfig, quiet bool) (*zap.Logger, error) {
	if cfg.File == "" && quiet {
		return zap.NewNop(), nil
	}
	level, er := zapcore.ParseLevel(cfg.Level)
	if er != nil {
		return nil, er
	}
	zc := zap.NewProductionConfig()
	if debug {
		zc = zap.NewDevelopmentConfig()
	}
	zc.Level = zap.NewAtomicLevelAt(level)
	if cfg.File != "" {
		path := expandPath(cfg.File)
		if er := os.MkdirAll(filepath.Dir(path), 0o755); er != nil {
			return nil, fmt.Errorf("failed to create log directory: %w", er)
		}
		zc.OutputPaths = []string{path}
		zc.ErrorOutputPaths = []string{path}
	}
	return zc.Build()
}

// newViewer wires the gateway client, normalizer and controllers used by
// both viewers.
func newViewer(cfg *config.Config, logger *zap.Logger) (*viewer.SearchController, *viewer.TimelineLoader, error) {
	c, er := client.NewClient(client.Options{
		GatewayURL: cfg.Viewer.GatewayURL,
		Logger:     logger,
	})
	if er != nil {
		return nil, nil, er
	}
	n, er := timeline.NewNormalizer(cfg.Images.BaseURL, cfg.Normalizer.Rules...)
	if er != nil {
		return nil, nil, er
	}
	loader, er := viewer.NewTimelineLoader(viewer.LoaderOptions{
		Gateway:    c,
		Normalizer: n,
		PageSize:   cfg.Viewer.PageSize,
		WindowDays: cfg.Viewer.WindowDays,
		Logger:     logger,
	})
	if er != nil {
		return nil, nil, er
	}
	return viewer.NewSearchController(c, cfg.Viewer.SearchLimit, logger), loader, nil
}

func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, _ := os.UserHomeDir()
		path = filepath.Join(home, path[2:])
	}
	absPath, er := filepath.Abs(path)
	if er != nil {
		return path
	}
	return absPath
}
