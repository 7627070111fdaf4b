package viewer

import "github.com/msaldanha/nulldev/err"

const (
	ErrInvalidParameterGateway    = err.Error("invalid parameter gateway")
	ErrInvalidParameterNormalizer = err.Error("invalid parameter normalizer")
	ErrInvalidParameterSearch     = err.Error("invalid parameter search controller")
	ErrInvalidParameterLoader     = err.Error("invalid parameter timeline loader")
)
