package viewer

import (
	"github.com/msaldanha/nulldev/models"
	"github.com/msaldanha/nulldev/timeline"
)

// Reduce applies a to s and returns the next snapshot.
func Reduce(s State, a Action) State {
	switch a := a.(type) {
	case SearchStarted:
		s.ServerID = a.ServerID
		s.Query = a.Query
		s.Searching = true
		s.SearchError = ""
	case SearchSucceeded:
		s.Characters = copyCharacters(a.Characters)
		s.SearchError = ""
	case SearchFailed:
		s.Characters = []models.Character{}
		s.SearchError = Message(a.Err)
	case SearchFinished:
		s.Searching = false
	case CharacterSelected:
		ch := a.Character
		s.Selected = &ch
		s.Events = []timeline.DisplayEvent{}
		s.TimelineError = ""
		s.Paging = PagingState{
			PageSize: s.Paging.PageSize,
			HasMore:  true,
		}
	case PageStarted:
		s.Paging.Loading = true
		s.TimelineError = ""
	case PageLoaded:
		if a.Offset == 0 {
			s.Events = copyEvents(nil, a.Events)
		} else {
			s.Events = copyEvents(s.Events, a.Events)
		}
		if a.Count < s.Paging.PageSize {
			s.Paging.HasMore = false
		} else {
			s.Paging.Offset = a.Offset + s.Paging.PageSize
		}
	case PageFailed:
		if a.Offset == 0 {
			s.Events = []timeline.DisplayEvent{}
		}
		s.Paging.Failed = true
		s.TimelineError = Message(a.Err)
	case PageFinished:
		s.Paging.Loading = false
	}
	return s
}

func copyCharacters(in []models.Character) []models.Character {
	out := make([]models.Character, len(in))
	copy(out, in)
	return out
}

func copyEvents(prev, next []timeline.DisplayEvent) []timeline.DisplayEvent {
	out := make([]timeline.DisplayEvent, 0, len(prev)+len(next))
	out = append(out, prev...)
	return append(out, next...)
}
