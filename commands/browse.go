package commands

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/msaldanha/nulldev/tui"
)

var (
	browseServer string

	browseCmd = &cobra.Command{
		Use:   "browse",
		Short: "Search characters and scroll through their timeline",
		RunE:  runBrowse,
	}
)

func init() {
	browseCmd.Flags().StringVarP(&browseServer, "server", "s", "",
		"Initial server (cain, diregie, siroco, prey, casillas, hilder, anton, bakal)")
}

func runBrowse(cmd *cobra.Command, args []string) error {
	cfg, er := loadConfig()
	if er != nil {
		return er
	}
	logger, er := newLogger(cfg.Logging, true)
	if er != nil {
		return er
	}
	defer func() { _ = logger.Sync() }()

	search, loader, er := newViewer(cfg, logger)
	if er != nil {
		return er
	}

	server := cfg.Viewer.DefaultServer
	if browseServer != "" {
		server = browseServer
	}

	m := tui.NewModel(tui.Options{
		Search:          search,
		Loader:          loader,
		ServerID:        server,
		ImageBaseURL:    cfg.Images.BaseURL,
		ScrollThreshold: cfg.Viewer.ScrollThreshold,
		Logger:          logger,
	})
	_, er = tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion()).Run()
	return er
}
