package echoapi

import (
	"context"
	"net/http"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"

	"github.com/campusdesk/portal/core"
	"github.com/campusdesk/portal/core/academic"
	"github.com/campusdesk/portal/core/progress"
	"github.com/campusdesk/portal/core/user"
)

type (
	Options struct {
		Address        string
		Debug          bool
		TestMode       bool
		DisableReqLogs bool
		Logger         core.Logger
		SignalShutdown func()

		Validate   *validator.Validate
		Translator ut.Translator

		UserSvc     *user.Service
		AcademicSvc *academic.Service
		ProgressSvc *progress.Service
		MailSvc     core.EmailService
	}

	Server interface {
		http.Handler
		Start() error
		Stop(context.Context) error
	}

	server struct {
		opts *Options
		app  *echo.Echo
	}
)

var _ Server = (*server)(nil)

func NewServer(opts *Options) Server {
	s := &server{
		opts: opts,
		app:  echo.New(),
	}
	s.setup()
	return s
}

func (s *server) setup() {
	s.app.HideBanner = true
	s.app.Pre(middleware.RemoveTrailingSlash())
	if !s.opts.DisableReqLogs {
		s.app.Use(middleware.Logger())
	}
	// do not recover in DEV|TEST mode
	if !(s.opts.Debug || s.opts.TestMode) {
		s.app.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{LogLevel: log.ERROR}))
	}

	s.app.HTTPErrorHandler = newAppHTTPErrorHandler(s.opts.Logger, s.opts.Translator, s.opts.SignalShutdown)
	s.app.Debug = s.opts.Debug

	s.app.GET("/", home)

	v1 := s.app.Group("/v1")
	jwt := middleware.JWTWithConfig(appJWTConfig)
	authed := []echo.MiddlewareFunc{jwt, activeUserMiddleware(s.opts.UserSvc)}

	registerUserAPI(v1, authed, s.opts)
	registerSubjectAPI(v1, authed, s.opts)
	registerAssignmentAPI(v1, authed, s.opts)
	registerStaffAPI(v1, authed, s.opts)
	registerReportAPI(v1, authed, s.opts)
}

func (s *server) Start() error {
	return s.app.Start(s.opts.Address)
}

func (s *server) Stop(ctx context.Context) error {
	return s.app.Shutdown(ctx)
}

func (s *server) ServeHTTP(w http.ResponseWriter, r *http.Request) { // for tests
	s.app.ServeHTTP(w, r)
}

func home(ctx echo.Context) error {
	return ctx.String(http.StatusOK, "Welcome to "+core.Conf.AppName+" API!")
}

type SuccessResponse struct {
	Success string `json:"success"`
}
