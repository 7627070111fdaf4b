package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/msaldanha/nulldev/models"
	"github.com/msaldanha/nulldev/timeline"
)

const (
	resultRows   = 10
	headerLines  = 5 + resultRows
	footerLines  = 2
	loadingText  = "불러오는 중..."
	searchingTxt = "검색 중..."
)

func (m Model) headerHeight() int {
	return headerLines
}

func (m Model) View() string {
	var b strings.Builder

	server := models.Servers[m.serverIdx]
	b.WriteString(titleStyle.Render("nulldev kr") + serverStyle.Render(server.Label) + "\n")
	b.WriteString(m.input.View() + "\n")
	b.WriteString(m.renderSearchStatus() + "\n")

	b.WriteString(m.panelTitle(focusResults, m.resultsTitle()) + "\n")
	for i := m.resultTop; i < m.resultTop+resultRows; i++ {
		if i < len(m.state.Characters) {
			b.WriteString(m.renderCharacter(i))
		}
		b.WriteString("\n")
	}

	b.WriteString(m.panelTitle(focusTimeline, m.timelineTitle()) + "\n")
	b.WriteString(m.timeline.View() + "\n")
	b.WriteString(m.renderTimelineStatus() + "\n")
	b.WriteString(helpStyle.Render("  Tab: 이동  Enter: 검색/선택  Ctrl+N/P: 서버  i: 아이콘  Esc: 검색창  Ctrl+C: 종료"))
	return b.String()
}

func (m Model) panelTitle(f focus, title string) string {
	if m.focus == f {
		return focusedPanelTitleStyle.Render(title)
	}
	return panelTitleStyle.Render(title)
}

func (m Model) resultsTitle() string {
	n := len(m.state.Characters)
	if n <= resultRows {
		return fmt.Sprintf("검색 결과 (%d)", n)
	}
	return fmt.Sprintf("검색 결과 (%d-%d / %d)", m.resultTop+1, min(m.resultTop+resultRows, n), n)
}

func (m Model) renderSearchStatus() string {
	switch {
	case m.state.Searching:
		return dimStyle.Render(searchingTxt)
	case m.state.SearchError != "":
		return errorStyle.Render(m.state.SearchError)
	}
	return ""
}

func (m Model) renderCharacter(i int) string {
	ch := m.state.Characters[i]
	row := fmt.Sprintf("%s (%dLv)", ch.Name, ch.Level)
	if ch.JobGrowName != "" {
		row += "  " + ch.JobGrowName
	}
	if i == m.cursor && m.focus == focusResults {
		return lipgloss.PlaceHorizontal(m.width, lipgloss.Left, selectedStyle.Render(row))
	}
	return normalStyle.Render(row)
}

func (m Model) timelineTitle() string {
	ch := m.state.Selected
	if ch == nil {
		return "타임라인"
	}
	return fmt.Sprintf("타임라인 - %s (%dLv)", ch.Name, ch.Level)
}

func (m Model) renderTimelineStatus() string {
	st := m.state
	switch {
	case st.Selected == nil:
		return ""
	case st.Paging.Loading:
		return dimStyle.Render(loadingText)
	case st.TimelineError != "":
		return errorStyle.Render(st.TimelineError)
	case !st.Paging.HasMore:
		return dimStyle.Render(fmt.Sprintf("최근 이벤트를 모두 불러왔습니다 (%d건)", len(st.Events)))
	}
	return dimStyle.Render(fmt.Sprintf("%d건", len(st.Events)))
}

func (m *Model) refreshTimeline() {
	var b strings.Builder
	if ch := m.state.Selected; ch != nil {
		b.WriteString(dimStyle.Render(ch.PortraitURL(m.imageBaseURL, m.state.ServerID)) + "\n")
	}
	for _, ev := range m.state.Events {
		b.WriteString(m.renderEvent(ev) + "\n")
	}
	m.timeline.SetContent(b.String())
}

func (m Model) renderEvent(ev timeline.DisplayEvent) string {
	line := dimStyle.Render(ev.Date) + " " + categoryStyle(ev.Category).Render(ev.Text)
	if m.showIcons && ev.IconURL != "" {
		line += " " + dimStyle.Render(ev.IconURL)
	}
	return line
}
