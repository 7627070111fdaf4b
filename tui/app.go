package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/msaldanha/nulldev/models"
	"github.com/msaldanha/nulldev/viewer"
)

type focus int

const (
	focusSearch focus = iota
	focusResults
	focusTimeline
)

const defaultScrollThreshold = 5

type Options struct {
	Search          *viewer.SearchController
	Loader          *viewer.TimelineLoader
	ServerID        string
	ImageBaseURL    string
	ScrollThreshold int
	Logger          *zap.Logger
}

// actionsMsg carries the outcome of a request back into Update.
type actionsMsg struct {
	actions []viewer.Action
}

type Model struct {
	search       *viewer.SearchController
	loader       *viewer.TimelineLoader
	imageBaseURL string
	threshold    int
	logger       *zap.Logger

	state     viewer.State
	serverIdx int
	input     textinput.Model
	cursor    int
	resultTop int
	timeline  viewport.Model
	focus     focus
	showIcons bool
	width     int
	height    int
}

func NewModel(opts Options) Model {
	in := textinput.New()
	in.Placeholder = "캐릭터명"
	in.CharLimit = 32
	in.Focus()

	serverIdx := 0
	for i, s := range models.Servers {
		if s.ID == opts.ServerID {
			serverIdx = i
		}
	}

	threshold := opts.ScrollThreshold
	if threshold <= 0 {
		threshold = defaultScrollThreshold
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	m := Model{
		search:       opts.Search,
		loader:       opts.Loader,
		imageBaseURL: opts.ImageBaseURL,
		threshold:    threshold,
		logger:       logger.Named("TUI"),
		state:        viewer.NewState(models.Servers[serverIdx].ID, opts.Loader.PageSize()),
		serverIdx:    serverIdx,
		input:        in,
		timeline:     viewport.New(80, 10),
		width:        80,
		height:       24,
	}
	m.resize()
	return m
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// State returns the current view snapshot.
func (m Model) State() viewer.State {
	return m.state
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		return m, nil

	case actionsMsg:
		for _, a := range msg.actions {
			m.state = viewer.Reduce(m.state, a)
		}
		m.clampCursor()
		m.refreshTimeline()
		return m, nil

	case tea.MouseMsg:
		var cmd tea.Cmd
		m.timeline, cmd = m.timeline.Update(msg)
		return m.checkScroll(cmd)

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "tab":
			m.cycleFocus()
			return m, nil
		case "esc":
			m.setFocus(focusSearch)
			return m, nil
		}
		switch m.focus {
		case focusSearch:
			return m.updateSearch(msg)
		case focusResults:
			return m.updateResults(msg)
		case focusTimeline:
			return m.updateTimeline(msg)
		}
	}
	return m, nil
}

func (m Model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		return m.startSearch()
	case "ctrl+n":
		m.serverIdx = (m.serverIdx + 1) % len(models.Servers)
		return m, nil
	case "ctrl+p":
		m.serverIdx = (m.serverIdx + len(models.Servers) - 1) % len(models.Servers)
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) updateResults(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
		m.scrollResults()
	case "down", "j":
		if m.cursor < len(m.state.Characters)-1 {
			m.cursor++
		}
		m.scrollResults()
	case "enter":
		if len(m.state.Characters) == 0 {
			return m, nil
		}
		m.state = viewer.Reduce(m.state, viewer.CharacterSelected{Character: m.state.Characters[m.cursor]})
		m.refreshTimeline()
		m.timeline.GotoTop()
		m.setFocus(focusTimeline)
		return m.startPage()
	}
	return m, nil
}

func (m Model) updateTimeline(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "i":
		m.showIcons = !m.showIcons
		m.refreshTimeline()
		return m, nil
	}
	var cmd tea.Cmd
	m.timeline, cmd = m.timeline.Update(msg)
	return m.checkScroll(cmd)
}

func (m Model) startSearch() (tea.Model, tea.Cmd) {
	name := m.input.Value()
	if name == "" || m.state.Searching {
		return m, nil
	}
	serverID := models.Servers[m.serverIdx].ID
	m.state = viewer.Reduce(m.state, viewer.SearchStarted{ServerID: serverID, Query: name})
	m.cursor = 0
	m.resultTop = 0

	search := m.search
	return m, func() tea.Msg {
		acts := make([]viewer.Action, 0, 2)
		if a := search.Run(context.Background(), serverID, name); a != nil {
			acts = append(acts, a)
		}
		return actionsMsg{actions: append(acts, viewer.SearchFinished{})}
	}
}

func (m Model) startPage() (tea.Model, tea.Cmd) {
	if !m.state.CanLoadMore() {
		return m, nil
	}
	m.state = viewer.Reduce(m.state, viewer.PageStarted{Offset: m.state.Paging.Offset})
	st := m.state
	loader := m.loader
	return m, func() tea.Msg {
		a := loader.FetchPage(context.Background(), viewer.ServerOf(st), st.Selected.ID, st.Paging.Offset)
		return actionsMsg{actions: []viewer.Action{a, viewer.PageFinished{}}}
	}
}

// checkScroll starts the next page when the viewport is close to the end.
func (m Model) checkScroll(cmd tea.Cmd) (tea.Model, tea.Cmd) {
	if !m.state.ShouldLoadMore(m.remainingLines(), m.threshold) {
		return m, cmd
	}
	next, pageCmd := m.startPage()
	return next, tea.Batch(cmd, pageCmd)
}

func (m Model) remainingLines() int {
	remaining := m.timeline.TotalLineCount() - (m.timeline.YOffset + m.timeline.Height)
	if remaining < 0 {
		return 0
	}
	return remaining
}

func (m *Model) cycleFocus() {
	m.setFocus((m.focus + 1) % 3)
}

func (m *Model) setFocus(f focus) {
	m.focus = f
	if f == focusSearch {
		m.input.Focus()
	} else {
		m.input.Blur()
	}
}

func (m *Model) clampCursor() {
	if m.cursor >= len(m.state.Characters) {
		m.cursor = max(0, len(m.state.Characters)-1)
	}
	m.scrollResults()
}

// scrollResults moves the visible window of results so the cursor row is
// always drawn.
func (m *Model) scrollResults() {
	if m.cursor < m.resultTop {
		m.resultTop = m.cursor
	}
	if m.cursor >= m.resultTop+resultRows {
		m.resultTop = m.cursor - resultRows + 1
	}
	m.resultTop = max(0, min(m.resultTop, len(m.state.Characters)-resultRows))
}

func (m *Model) resize() {
	m.timeline.Width = max(20, m.width)
	m.timeline.Height = max(3, m.height-m.headerHeight()-footerLines)
	m.refreshTimeline()
}
