package models

import "github.com/msaldanha/nulldev/err"

const (
	ErrRequestFailed     = err.Error("request failed")
	ErrMalformedResponse = err.Error("malformed response")
	ErrUpstream          = err.Error("upstream error")
	ErrMissingParameters = err.Error("Missing parameters")
)
