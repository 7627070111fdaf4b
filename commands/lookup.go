package commands

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"

	"github.com/msaldanha/nulldev/err"
	"github.com/msaldanha/nulldev/models"
	"github.com/msaldanha/nulldev/timeline"
	"github.com/msaldanha/nulldev/viewer"
)

const (
	ErrNoCharacterFound = err.Error("no character found")
	ErrMissingName      = err.Error("a character name is required")
)

var (
	lookupServer string
	lookupName   string
	lookupID     string
	lookupPages  int
	lookupAll    bool
	lookupJSON   bool

	lookupCmd = &cobra.Command{
		Use:   "lookup",
		Short: "Print a character's timeline without the interactive viewer",
		RunE:  runLookup,
	}
)

func init() {
	lookupCmd.Flags().StringVarP(&lookupServer, "server", "s", "",
		"Server to search (defaults to viewer.default_server)")
	lookupCmd.Flags().StringVarP(&lookupName, "name", "n", "",
		"Character name to search for")
	lookupCmd.Flags().StringVar(&lookupID, "id", "",
		"Pick the result with this character id instead of the best name match")
	lookupCmd.Flags().IntVarP(&lookupPages, "pages", "p", 1,
		"Number of timeline pages to fetch")
	lookupCmd.Flags().BoolVar(&lookupAll, "all", false,
		"Fetch every page in the window")
	lookupCmd.Flags().BoolVar(&lookupJSON, "json", false,
		"Print JSON instead of a table")
}

type lookupResult struct {
	Server    string                  `json:"server"`
	Character models.Character        `json:"character"`
	Portrait  string                  `json:"portrait"`
	Events    []timeline.DisplayEvent `json:"events"`
	HasMore   bool                    `json:"hasMore"`
	Error     string                  `json:"error,omitempty"`
}

func runLookup(cmd *cobra.Command, args []string) error {
	if strings.TrimSpace(lookupName) == "" {
		return ErrMissingName
	}
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
	if lookupServer != "" {
		server = lookupServer
	}
	session, er := viewer.NewSession(viewer.SessionOptions{
		ServerID: server,
		Search:   search,
		Loader:   loader,
		Logger:   logger,
	})
	if er != nil {
		return er
	}

	res, er := lookup(cmd.Context(), session, server, lookupName, lookupID, lookupPages, lookupAll)
	if er != nil {
		return er
	}
	res.Portrait = res.Character.PortraitURL(cfg.Images.BaseURL, server)
	return writeLookup(cmd.OutOrStdout(), res, lookupJSON)
}

// lookup searches for name, selects one of the results and loads up to
// pages timeline pages, or all of them when all is set.
func lookup(ctx context.Context, s *viewer.Session, server, name, id string, pages int, all bool) (lookupResult, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	s.Search(ctx, server, name)
	st := s.State()
	if st.SearchError != "" {
		return lookupResult{}, fmt.Errorf("%s", st.SearchError)
	}
	ch, ok := pickCharacter(st.Characters, name, id)
	if !ok {
		return lookupResult{}, ErrNoCharacterFound
	}

	s.Select(ctx, ch)
	for loaded := 1; all || loaded < pages; loaded++ {
		if s.State().TimelineError != "" || !s.LoadMore(ctx) {
			break
		}
	}

	st = s.State()
	return lookupResult{
		Server:    viewer.ServerOf(st),
		Character: ch,
		Events:    st.Events,
		HasMore:   st.Paging.HasMore,
		Error:     st.TimelineError,
	}, nil
}

func pickCharacter(rows []models.Character, name, id string) (models.Character, bool) {
	if len(rows) == 0 {
		return models.Character{}, false
	}
	if id != "" {
		for _, c := range rows {
			if c.ID == id {
				return c, true
			}
		}
		return models.Character{}, false
	}
	for _, c := range rows {
		if c.Name == name {
			return c, true
		}
	}
	return rows[0], true
}

func writeLookup(w io.Writer, res lookupResult, asJSON bool) error {
	if asJSON {
		if res.Events == nil {
			res.Events = []timeline.DisplayEvent{}
		}
		b, er := sonic.ConfigStd.MarshalIndent(res, "", "  ")
		if er != nil {
			return er
		}
		_, er = fmt.Fprintln(w, string(b))
		return er
	}

	c := res.Character
	fmt.Fprintf(w, "%s [%s] Lv.%d %s\n", c.Name, models.ServerLabel(res.Server), c.Level, c.JobGrowName)
	fmt.Fprintln(w, res.Portrait)
	if res.Error != "" {
		fmt.Fprintln(w, res.Error)
	}

	catWidth := 0
	for _, e := range res.Events {
		catWidth = max(catWidth, runewidth.StringWidth(string(e.Category)))
	}
	for _, e := range res.Events {
		line := fmt.Sprintf("%-16s  %s  %s", e.Date, runewidth.FillRight(string(e.Category), catWidth), e.Text)
		if _, er := fmt.Fprintln(w, strings.TrimRight(line, " ")); er != nil {
			return er
		}
	}
	if res.HasMore {
		fmt.Fprintln(w, "...")
	}
	return nil
}
