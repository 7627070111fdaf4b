package viewer

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/msaldanha/nulldev/models"
)

type SessionOptions struct {
	ServerID        string
	Search          *SearchController
	Loader          *TimelineLoader
	ScrollThreshold int
	Logger          *zap.Logger
}

// Session owns the state of one view and drives it through Reduce. At most
// one search and one timeline page are in flight at any time.
type Session struct {
	mtx       *sync.Mutex
	state     State
	search    *SearchController
	loader    *TimelineLoader
	threshold int
	logger    *zap.Logger
}

func NewSession(opts SessionOptions) (*Session, error) {
	if opts.Search == nil {
		return nil, ErrInvalidParameterSearch
	}
	if opts.Loader == nil {
		return nil, ErrInvalidParameterLoader
	}
	threshold := opts.ScrollThreshold
	if threshold <= 0 {
		threshold = DefaultScrollThreshold
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Session{
		mtx:       new(sync.Mutex),
		state:     NewState(opts.ServerID, opts.Loader.PageSize()),
		search:    opts.Search,
		loader:    opts.Loader,
		threshold: threshold,
		logger:    logger.Named("Session"),
	}, nil
}

func (s *Session) State() State {
	s.mtx.Lock()
	defer s.mtx.Unlock()
	return s.state
}

// Search replaces the result list with the characters matching name. An
// empty name, or a search already in flight, makes it a no-op.
func (s *Session) Search(ctx context.Context, serverID, name string) {
	if name == "" {
		return
	}
	s.mtx.Lock()
	if s.state.Searching {
		s.mtx.Unlock()
		return
	}
	s.state = Reduce(s.state, SearchStarted{ServerID: serverID, Query: name})
	s.mtx.Unlock()

	defer s.dispatch(SearchFinished{})
	if a := s.search.Run(ctx, serverID, name); a != nil {
		s.dispatch(a)
	}
}

// Select starts the timeline of ch from the first page.
func (s *Session) Select(ctx context.Context, ch models.Character) {
	s.dispatch(CharacterSelected{Character: ch})
	s.loadPage(ctx)
}

// LoadMore requests the next page. It returns false when no request was
// made because nothing is selected, the timeline is exhausted or a page is
// already in flight.
func (s *Session) LoadMore(ctx context.Context) bool {
	return s.loadPage(ctx)
}

// OnScroll is called with the distance left to the bottom of the timeline.
func (s *Session) OnScroll(ctx context.Context, remaining int) bool {
	if !s.State().ShouldLoadMore(remaining, s.threshold) {
		return false
	}
	return s.loadPage(ctx)
}

func (s *Session) loadPage(ctx context.Context) bool {
	s.mtx.Lock()
	if !s.state.CanLoadMore() {
		s.mtx.Unlock()
		return false
	}
	s.state = Reduce(s.state, PageStarted{Offset: s.state.Paging.Offset})
	st := s.state
	s.mtx.Unlock()

	defer s.dispatch(PageFinished{})
	s.dispatch(s.loader.FetchPage(ctx, ServerOf(st), st.Selected.ID, st.Paging.Offset))
	return true
}

func (s *Session) dispatch(a Action) {
	s.mtx.Lock()
	defer s.mtx.Unlock()
	s.state = Reduce(s.state, a)
}

// ServerOf returns the server of the selected character, falling back to
// the server the search ran on.
func ServerOf(st State) string {
	if st.Selected != nil && st.Selected.ServerID != "" {
		return st.Selected.ServerID
	}
	return st.ServerID
}
