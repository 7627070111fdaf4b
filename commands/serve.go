package commands

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/msaldanha/nulldev/gateway"
)

var (
	serveAddr string

	serveCmd = &cobra.Command{
		Use:   "serve",
		Short: "Run the proxy gateway that attaches the API key",
		RunE:  runServe,
	}
)

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "",
		"Listen address (overrides config)")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, er := loadConfig()
	if er != nil {
		return er
	}
	if er := cfg.RequireAPIKey(); er != nil {
		return er
	}
	if serveAddr != "" {
		cfg.Gateway.Addr = serveAddr
	}

	logger, er := newLogger(cfg.Logging, false)
	if er != nil {
		return er
	}
	defer func() { _ = logger.Sync() }()

	srv, er := gateway.NewServer(gateway.Options{
		Url:             cfg.Gateway.Addr,
		Path:            cfg.Gateway.Path,
		UpstreamBaseURL: cfg.Gateway.UpstreamBaseURL,
		APIKey:          cfg.APIKey,
		Logger:          logger,
	})
	if er != nil {
		logger.Error("Failed to create gateway", zap.Error(er))
		return er
	}
	return srv.Run()
}
