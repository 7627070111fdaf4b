package viewer

import (
	"errors"
	"strings"

	"github.com/msaldanha/nulldev/models"
)

const (
	MsgRequestFailed     = "데이터를 불러오지 못했습니다. 잠시 후 다시 시도해 주세요."
	MsgMalformedResponse = "서버 응답 형식이 올바르지 않습니다."
	MsgUpstreamError     = "API 오류가 발생했습니다"
)

// Message turns an error into the text shown next to the affected panel.
func Message(er error) string {
	switch {
	case er == nil:
		return ""
	case errors.Is(er, models.ErrUpstream):
		detail := strings.TrimPrefix(er.Error(), models.ErrUpstream.Error())
		detail = strings.TrimLeft(detail, ": ")
		if detail == "" {
			return MsgUpstreamError
		}
		return MsgUpstreamError + ": " + detail
	case errors.Is(er, models.ErrMalformedResponse):
		return MsgMalformedResponse
	default:
		return MsgRequestFailed
	}
}
