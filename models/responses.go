package models

import (
	"fmt"
	"time"

	"github.com/msaldanha/nulldev/timeline"
)

// DateLayout is the compact timestamp format the timeline endpoint expects.
const DateLayout = "20060102T1504"

// UpstreamLocation is the zone DateLayout timestamps are read in upstream.
var UpstreamLocation = time.FixedZone("KST", 9*60*60)

type SearchResponse struct {
	Rows  []Character `json:"rows"`
	Error any         `json:"error,omitempty"`
}

type TimelineResponse struct {
	Timeline *TimelinePage       `json:"timeline,omitempty"`
	Rows     []timeline.RawEvent `json:"rows,omitempty"`
	Error    any                 `json:"error,omitempty"`
}

type TimelinePage struct {
	Rows []timeline.RawEvent `json:"rows"`
	Next string              `json:"next,omitempty"`
}

// Events returns the rows of the page wherever the upstream placed them.
func (r TimelineResponse) Events() []timeline.RawEvent {
	if r.Timeline != nil && r.Timeline.Rows != nil {
		return r.Timeline.Rows
	}
	return r.Rows
}

// TimelineQuery is one offset/limit window over a date range.
type TimelineQuery struct {
	StartDate time.Time
	EndDate   time.Time
	Limit     int
	Offset    int
}

// ErrorMessage extracts a readable message from an embedded error value,
// either a plain string or the upstream {status, code, message} object.
func ErrorMessage(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case map[string]any:
		msg, _ := t["message"].(string)
		code, _ := t["code"].(string)
		switch {
		case msg != "" && code != "":
			return fmt.Sprintf("%s (%s)", msg, code)
		case msg != "":
			return msg
		case code != "":
			return code
		}
		return "unknown error"
	default:
		return fmt.Sprint(t)
	}
}
