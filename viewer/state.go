package viewer

import (
	"github.com/msaldanha/nulldev/models"
	"github.com/msaldanha/nulldev/timeline"
)

const (
	DefaultPageSize        = 100
	DefaultSearchLimit     = 10
	DefaultWindowDays      = 30
	DefaultScrollThreshold = 100
)

type PagingState struct {
	Offset   int
	PageSize int
	HasMore  bool
	Loading  bool
	// Failed is set by a failed page and blocks further loads until the
	// next selection.
	Failed bool
}

// State is one snapshot of a view. Reduce never mutates a State it is
// given, slices are copied before they change.
type State struct {
	ServerID    string
	Query       string
	Characters  []models.Character
	Searching   bool
	SearchError string

	Selected      *models.Character
	Events        []timeline.DisplayEvent
	Paging        PagingState
	TimelineError string
}

func NewState(serverID string, pageSize int) State {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return State{
		ServerID: serverID,
		Paging:   PagingState{PageSize: pageSize},
	}
}

// CanLoadMore reports whether a next page may be requested now.
func (s State) CanLoadMore() bool {
	return s.Selected != nil && s.Paging.HasMore && !s.Paging.Loading && !s.Paging.Failed
}

// ShouldLoadMore reports whether a scroll position with remaining distance
// to the bottom triggers the next page.
func (s State) ShouldLoadMore(remaining, threshold int) bool {
	return remaining < threshold && s.CanLoadMore()
}
