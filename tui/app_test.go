package tui_test

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/golang/mock/gomock"
	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
	"go.uber.org/zap"

	"github.com/msaldanha/nulldev/models"
	"github.com/msaldanha/nulldev/timeline"
	"github.com/msaldanha/nulldev/tui"
	"github.com/msaldanha/nulldev/viewer"
)

func rawEvents(n int) []timeline.RawEvent {
	evs := make([]timeline.RawEvent, n)
	for i := range evs {
		evs[i] = timeline.RawEvent{Code: "203", Date: "2024-05-01 10:00", Data: map[string]any{"itemName": fmt.Sprintf("item %d", i)}}
	}
	return evs
}

// run executes cmd and every command batched inside it, returning the
// messages they produce.
func run(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		out := make([]tea.Msg, 0)
		for _, c := range batch {
			out = append(out, run(c)...)
		}
		return out
	}
	return []tea.Msg{msg}
}

var _ = Describe("TUI", func() {

	var mockCtrl *gomock.Controller
	var gw *viewer.MockGateway
	var m tui.Model

	nulldev := models.Character{ServerID: "cain", ID: "abc123", Name: "Nulldev", Level: 110}

	update := func(msg tea.Msg) tea.Cmd {
		next, cmd := m.Update(msg)
		m = next.(tui.Model)
		return cmd
	}

	deliver := func(cmd tea.Cmd) {
		for _, msg := range run(cmd) {
			update(msg)
		}
	}

	typeText := func(s string) {
		update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)})
	}

	newModel := func(searchLimit int) tui.Model {
		logger := zap.NewNop()

		n, er := timeline.NewNormalizer("https://img-api.neople.co.kr/df")
		Expect(er).To(BeNil())
		loader, er := viewer.NewTimelineLoader(viewer.LoaderOptions{
			Gateway:    gw,
			Normalizer: n,
			PageSize:   100,
			Now:        func() time.Time { return time.Date(2024, 5, 31, 0, 0, 0, 0, time.UTC) },
			Logger:     logger,
		})
		Expect(er).To(BeNil())

		return tui.NewModel(tui.Options{
			Search:          viewer.NewSearchController(gw, searchLimit, logger),
			Loader:          loader,
			ServerID:        "cain",
			ImageBaseURL:    "https://img-api.neople.co.kr/df",
			ScrollThreshold: 5,
			Logger:          logger,
		})
	}

	BeforeEach(func() {
		mockCtrl = gomock.NewController(GinkgoT())
		gw = viewer.NewMockGateway(mockCtrl)
		m = newModel(10)
		update(tea.WindowSizeMsg{Width: 100, Height: 40})
	})

	AfterEach(func() {
		mockCtrl.Finish()
	})

	It("Should not search with an empty name", func() {
		cmd := update(tea.KeyMsg{Type: tea.KeyEnter})
		Expect(cmd).To(BeNil())
		Expect(m.State().Searching).To(BeFalse())
	})

	It("Should search, select and load a short timeline", func() {
		gw.EXPECT().SearchCharacters(gomock.Any(), "cain", "Nulldev", 10).Return([]models.Character{nulldev}, nil)
		gw.EXPECT().GetTimeline(gomock.Any(), "cain", "abc123", gomock.Any()).
			DoAndReturn(func(_, _, _ any, q models.TimelineQuery) ([]timeline.RawEvent, error) {
				Expect(q.Offset).To(Equal(0))
				Expect(q.Limit).To(Equal(100))
				return rawEvents(60), nil
			})

		typeText("Nulldev")
		cmd := update(tea.KeyMsg{Type: tea.KeyEnter})
		Expect(m.State().Searching).To(BeTrue())
		deliver(cmd)
		Expect(m.State().Searching).To(BeFalse())
		Expect(m.View()).To(ContainSubstring("Nulldev (110Lv)"))

		update(tea.KeyMsg{Type: tea.KeyTab})
		cmd = update(tea.KeyMsg{Type: tea.KeyEnter})
		Expect(m.State().Paging.Loading).To(BeTrue())
		deliver(cmd)

		st := m.State()
		Expect(st.Paging.Loading).To(BeFalse())
		Expect(st.Paging.HasMore).To(BeFalse())
		Expect(st.Events).To(HaveLen(60))
		Expect(m.View()).To(ContainSubstring("item 0 획득"))
	})

	It("Should load the next page when scrolled near the bottom", func() {
		offsets := make([]int, 0)
		gw.EXPECT().SearchCharacters(gomock.Any(), "cain", "Nulldev", 10).Return([]models.Character{nulldev}, nil)
		gw.EXPECT().GetTimeline(gomock.Any(), "cain", "abc123", gomock.Any()).
			DoAndReturn(func(_, _, _ any, q models.TimelineQuery) ([]timeline.RawEvent, error) {
				offsets = append(offsets, q.Offset)
				return rawEvents(100), nil
			}).Times(2)

		typeText("Nulldev")
		deliver(update(tea.KeyMsg{Type: tea.KeyEnter}))
		update(tea.KeyMsg{Type: tea.KeyTab})
		deliver(update(tea.KeyMsg{Type: tea.KeyEnter}))
		Expect(m.State().Events).To(HaveLen(100))

		var pageCmd tea.Cmd
		for i := 0; i < 20 && pageCmd == nil; i++ {
			pageCmd = update(tea.KeyMsg{Type: tea.KeyPgDown})
		}
		Expect(pageCmd).ToNot(BeNil())
		Expect(m.State().Paging.Loading).To(BeTrue())
		Expect(update(tea.KeyMsg{Type: tea.KeyPgDown})).To(BeNil())

		deliver(pageCmd)
		Expect(offsets).To(Equal([]int{0, 100}))
		Expect(m.State().Events).To(HaveLen(200))
	})

	It("Should not reload a failed first page on scroll", func() {
		gw.EXPECT().SearchCharacters(gomock.Any(), "cain", "Nulldev", 10).Return([]models.Character{nulldev}, nil)
		gw.EXPECT().GetTimeline(gomock.Any(), "cain", "abc123", gomock.Any()).
			Return(nil, models.ErrRequestFailed).Times(1)

		typeText("Nulldev")
		deliver(update(tea.KeyMsg{Type: tea.KeyEnter}))
		update(tea.KeyMsg{Type: tea.KeyTab})
		deliver(update(tea.KeyMsg{Type: tea.KeyEnter}))
		Expect(m.State().TimelineError).To(Equal(viewer.MsgRequestFailed))

		for i := 0; i < 5; i++ {
			deliver(update(tea.KeyMsg{Type: tea.KeyPgDown}))
		}
		Expect(m.State().Paging.Loading).To(BeFalse())
		Expect(m.View()).To(ContainSubstring(viewer.MsgRequestFailed))
	})

	It("Should scroll the result list past the visible rows", func() {
		rows := make([]models.Character, 15)
		for i := range rows {
			rows[i] = models.Character{ServerID: "cain", ID: fmt.Sprintf("id%02d", i), Name: fmt.Sprintf("c%02d", i), Level: 100}
		}
		gw.EXPECT().SearchCharacters(gomock.Any(), "cain", "c", 15).Return(rows, nil)
		gw.EXPECT().GetTimeline(gomock.Any(), "cain", "id12", gomock.Any()).Return(rawEvents(1), nil)

		m = newModel(15)
		update(tea.WindowSizeMsg{Width: 100, Height: 40})
		typeText("c")
		deliver(update(tea.KeyMsg{Type: tea.KeyEnter}))
		update(tea.KeyMsg{Type: tea.KeyTab})
		for i := 0; i < 12; i++ {
			update(tea.KeyMsg{Type: tea.KeyDown})
		}

		view := m.View()
		Expect(view).To(ContainSubstring("c12 (100Lv)"))
		Expect(view).ToNot(ContainSubstring("c00 (100Lv)"))
		Expect(view).To(ContainSubstring("(4-13 / 15)"))

		deliver(update(tea.KeyMsg{Type: tea.KeyEnter}))
		Expect(m.State().Selected.ID).To(Equal("id12"))
	})

	It("Should show a search failure", func() {
		gw.EXPECT().SearchCharacters(gomock.Any(), "cain", "x", 10).Return(nil, models.ErrMalformedResponse)

		typeText("x")
		deliver(update(tea.KeyMsg{Type: tea.KeyEnter}))
		Expect(m.State().Characters).To(BeEmpty())
		Expect(m.View()).To(ContainSubstring(viewer.MsgMalformedResponse))
	})

	It("Should cycle servers", func() {
		gw.EXPECT().SearchCharacters(gomock.Any(), "diregie", "x", 10).Return([]models.Character{}, nil)

		update(tea.KeyMsg{Type: tea.KeyCtrlN})
		typeText("x")
		deliver(update(tea.KeyMsg{Type: tea.KeyEnter}))
		Expect(m.State().ServerID).To(Equal("diregie"))
	})
})
