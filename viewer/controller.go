package viewer

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/msaldanha/nulldev/models"
	"github.com/msaldanha/nulldev/timeline"
)

// SearchController runs character searches against the gateway.
type SearchController struct {
	gw     Gateway
	limit  int
	logger *zap.Logger
}

func NewSearchController(gw Gateway, limit int, logger *zap.Logger) *SearchController {
	if limit <= 0 {
		limit = DefaultSearchLimit
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SearchController{
		gw:     gw,
		limit:  limit,
		logger: logger.Named("Search"),
	}
}

// Run searches name on serverID. It returns nil for an empty name, which is
// not an error and must not touch the view.
func (c *SearchController) Run(ctx context.Context, serverID, name string) Action {
	if name == "" {
		return nil
	}
	rows, er := c.gw.SearchCharacters(ctx, serverID, name, c.limit)
	if er != nil {
		c.logger.Warn("Search failed", zap.String("server", serverID), zap.Error(er))
		return SearchFailed{Err: er}
	}
	if rows == nil {
		rows = []models.Character{}
	}
	c.logger.Debug("Search done", zap.String("server", serverID), zap.Int("rows", len(rows)))
	return SearchSucceeded{Characters: rows}
}

type LoaderOptions struct {
	Gateway    Gateway
	Normalizer *timeline.Normalizer
	PageSize   int
	WindowDays int
	Now        func() time.Time
	Logger     *zap.Logger
}

// TimelineLoader fetches and normalizes one timeline page at a time.
type TimelineLoader struct {
	gw         Gateway
	normalizer *timeline.Normalizer
	pageSize   int
	windowDays int
	now        func() time.Time
	logger     *zap.Logger
}

func NewTimelineLoader(opts LoaderOptions) (*TimelineLoader, error) {
	if opts.Gateway == nil {
		return nil, ErrInvalidParameterGateway
	}
	if opts.Normalizer == nil {
		return nil, ErrInvalidParameterNormalizer
	}
	l := &TimelineLoader{
		gw:         opts.Gateway,
		normalizer: opts.Normalizer,
		pageSize:   opts.PageSize,
		windowDays: opts.WindowDays,
		now:        opts.Now,
		logger:     opts.Logger,
	}
	if l.pageSize <= 0 {
		l.pageSize = DefaultPageSize
	}
	if l.windowDays <= 0 {
		l.windowDays = DefaultWindowDays
	}
	if l.now == nil {
		l.now = time.Now
	}
	if l.logger == nil {
		l.logger = zap.NewNop()
	}
	l.logger = l.logger.Named("TimelineLoader")
	return l, nil
}

func (l *TimelineLoader) PageSize() int {
	return l.pageSize
}

// Window returns the date range of a request issued now.
func (l *TimelineLoader) Window() (time.Time, time.Time) {
	end := l.now()
	return end.AddDate(0, 0, -l.windowDays), end
}

// FetchPage requests the page at offset and returns PageLoaded or PageFailed.
func (l *TimelineLoader) FetchPage(ctx context.Context, serverID, characterID string, offset int) Action {
	start, end := l.Window()
	logger := l.logger.With(zap.String("character", characterID), zap.Int("offset", offset))

	rows, er := l.gw.GetTimeline(ctx, serverID, characterID, models.TimelineQuery{
		StartDate: start,
		EndDate:   end,
		Limit:     l.pageSize,
		Offset:    offset,
	})
	if er != nil {
		logger.Warn("Timeline page failed", zap.Error(er))
		return PageFailed{Offset: offset, Err: er}
	}

	events := l.normalizer.NormalizeAll(rows)
	logger.Debug("Timeline page loaded", zap.Int("rows", len(rows)), zap.Int("events", len(events)))
	return PageLoaded{Offset: offset, Count: len(rows), Events: events}
}
