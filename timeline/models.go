package timeline

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Code is an upstream event code. The API sends it as a number, older
// payloads and tests use strings; both decode to the same value. A code
// that is neither decodes to "" so one odd row never fails a whole page.
type Code string

func (c *Code) UnmarshalJSON(data []byte) error {
	*c = ""
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}
	if data[0] == '"' {
		var s string
		if er := json.Unmarshal(data, &s); er == nil {
			*c = Code(strings.TrimSpace(s))
		}
		return nil
	}
	if n, er := strconv.ParseInt(string(data), 10, 64); er == nil {
		*c = Code(strconv.FormatInt(n, 10))
		return nil
	}
	// 203.0 and 2.03e2 are still 203.
	f, er := strconv.ParseFloat(string(data), 64)
	if er == nil && f == math.Trunc(f) && math.Abs(f) < 1<<53 {
		*c = Code(strconv.FormatInt(int64(f), 10))
	}
	return nil
}

func (c Code) String() string {
	return string(c)
}

// RawEvent is one timeline row as returned by the upstream API.
type RawEvent struct {
	Code Code           `json:"code"`
	Name string         `json:"name,omitempty"`
	Date string         `json:"date,omitempty"`
	Data map[string]any `json:"data,omitempty"`
}

// DisplayEvent is a RawEvent rendered for the viewer.
type DisplayEvent struct {
	Code     Code     `json:"code"`
	Name     string   `json:"name,omitempty"`
	Text     string   `json:"text"`
	Category Category `json:"category,omitempty"`
	IconURL  string   `json:"iconUrl,omitempty"`
	Date     string   `json:"date,omitempty"`
}

// Field returns the payload value for key rendered as text, or "" when the
// key is absent or holds something that has no text form.
func (r RawEvent) Field(key string) string {
	v, ok := r.Data[key]
	if !ok || v == nil {
		return ""
	}
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(t), 'f', -1, 32)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case json.Number:
		return t.String()
	case bool:
		return strconv.FormatBool(t)
	default:
		return ""
	}
}
