package gateway

import "github.com/msaldanha/nulldev/err"

const (
	ErrMissingAPIKey       = err.Error("missing upstream api key")
	ErrInvalidUpstreamURL  = err.Error("invalid upstream base url")
	ErrUpstreamUnreachable = err.Error("upstream unreachable")
	ErrInvalidUpstreamBody = err.Error("upstream returned a non JSON body")
	ErrProxyFailure        = err.Error("proxy server error")
)
