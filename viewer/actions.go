package viewer

import (
	"github.com/msaldanha/nulldev/models"
	"github.com/msaldanha/nulldev/timeline"
)

type Action interface {
	isAction()
}

type SearchStarted struct {
	ServerID string
	Query    string
}

type SearchSucceeded struct {
	Characters []models.Character
}

type SearchFailed struct {
	Err error
}

// SearchFinished releases the searching flag. It follows every search,
// whatever the outcome.
type SearchFinished struct{}

type CharacterSelected struct {
	Character models.Character
}

type PageStarted struct {
	Offset int
}

type PageLoaded struct {
	Offset int
	// Count is the number of rows the upstream returned, before skipped
	// events were dropped.
	Count  int
	Events []timeline.DisplayEvent
}

type PageFailed struct {
	Offset int
	Err    error
}

// PageFinished releases the loading flag. It follows every page request.
type PageFinished struct{}

func (SearchStarted) isAction()     {}
func (SearchSucceeded) isAction()   {}
func (SearchFailed) isAction()      {}
func (SearchFinished) isAction()    {}
func (CharacterSelected) isAction() {}
func (PageStarted) isAction()       {}
func (PageLoaded) isAction()        {}
func (PageFailed) isAction()        {}
func (PageFinished) isAction()      {}
