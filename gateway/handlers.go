package gateway

import (
	"net/url"
	"strings"

	"github.com/google/uuid"
	"github.com/kataras/iris/v12"
	"go.uber.org/zap"

	"github.com/msaldanha/nulldev/models"
)

const requestIDHeader = "X-Request-Id"

func (s *Server) buildHandlers() {
	s.app.Get(s.opts.Path, s.proxy)
}

func (s *Server) proxy(ctx iris.Context) {
	reqID := uuid.New().String()
	ctx.Header(requestIDHeader, reqID)
	logger := s.logger.With(zap.String("request_id", reqID))

	query := ctx.Request().URL.Query()
	apiPath := strings.Join(query[pathParam], "/")
	if strings.Trim(apiPath, "/ ") == "" {
		logger.Debug("Rejecting request without path")
		returnError(ctx, models.ErrMissingParameters, getStatusCodeForError(models.ErrMissingParameters))
		return
	}

	params := url.Values{}
	for k, vs := range query {
		if k == pathParam || k == apiKeyParam {
			continue
		}
		params[k] = vs
	}
	logger = logger.With(zap.String("path", apiPath), zap.Strings("params", paramNames(params)))

	res, er := s.upstream.Get(ctx.Request().Context(), apiPath, params)
	if er != nil {
		logger.Error("Proxy request failed", zap.Error(er))
		returnError(ctx, ErrProxyFailure, getStatusCodeForError(er))
		return
	}

	logger.Info("Proxy request done", zap.Int("status", res.Status))
	ctx.StatusCode(res.Status)
	ctx.ContentType("application/json")
	_, _ = ctx.Write(res.Body)
}

func paramNames(params url.Values) []string {
	names := make([]string, 0, len(params))
	for k := range params {
		names = append(names, k)
	}
	return names
}
