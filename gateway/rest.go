package gateway

import (
	"errors"
	"net/http"
	"strings"

	"github.com/iris-contrib/middleware/cors"
	"github.com/kataras/iris/v12"
	"github.com/kataras/iris/v12/middleware/logger"
	"github.com/kataras/iris/v12/middleware/recover"
	"go.uber.org/zap"

	"github.com/msaldanha/nulldev/models"
)

const (
	DefaultPath = "/proxy"

	pathParam = "path"
)

var (
	allowedMethods = []string{"GET", "OPTIONS", "PATCH", "DELETE", "POST", "PUT"}
	allowedHeaders = []string{
		"X-CSRF-Token", "X-Requested-With", "Accept", "Accept-Version", "Content-Length",
		"Content-MD5", "Content-Type", "Date", "X-Api-Version",
	}
)

type Options struct {
	Url             string
	Path            string
	UpstreamBaseURL string
	APIKey          string
	HTTPClient      *http.Client
	Logger          *zap.Logger
}

type Response struct {
	Error string `json:"error,omitempty"`
}

type Server struct {
	app      *iris.Application
	opts     Options
	upstream *Upstream
	logger   *zap.Logger
}

func NewServer(opts Options) (*Server, error) {
	upstream, er := NewUpstream(opts.UpstreamBaseURL, opts.APIKey, opts.HTTPClient)
	if er != nil {
		return nil, er
	}
	if opts.Path == "" {
		opts.Path = DefaultPath
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}

	app := iris.New()
	app.Use(recover.New())
	app.Use(logger.New())

	crs := cors.New(cors.Options{
		AllowedOrigins:     []string{"*"},
		AllowedMethods:     allowedMethods,
		AllowedHeaders:     allowedHeaders,
		OptionsPassthrough: true,
	})
	app.UseRouter(crs)

	srv := &Server{
		app:      app,
		opts:     opts,
		upstream: upstream,
		logger:   opts.Logger.Named("Gateway"),
	}
	app.UseRouter(srv.preflight)

	srv.buildHandlers()

	return srv, nil
}

func (s *Server) Run() error {
	s.logger.Info("Gateway listening", zap.String("addr", s.opts.Url), zap.String("path", s.opts.Path))
	return s.app.Run(iris.Addr(s.opts.Url))
}

// Handler builds the application and returns it as a plain http.Handler.
func (s *Server) Handler() (http.Handler, error) {
	if er := s.app.Build(); er != nil {
		return nil, er
	}
	return s.app, nil
}

// preflight answers every OPTIONS request before routing.
func (s *Server) preflight(ctx iris.Context) {
	if ctx.Method() != iris.MethodOptions {
		ctx.Next()
		return
	}
	ctx.Header("Access-Control-Allow-Origin", "*")
	ctx.Header("Access-Control-Allow-Methods", strings.Join(allowedMethods, ","))
	ctx.Header("Access-Control-Allow-Headers", strings.Join(allowedHeaders, ", "))
	ctx.StatusCode(iris.StatusOK)
}

func returnError(ctx iris.Context, er error, statusCode int) {
	ctx.StatusCode(statusCode)
	_ = ctx.JSON(Response{Error: er.Error()})
}

func getStatusCodeForError(er error) int {
	switch {
	case errors.Is(er, models.ErrMissingParameters):
		return iris.StatusBadRequest
	default:
		return iris.StatusInternalServerError
	}
}
