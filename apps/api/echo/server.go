package echoapi

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"

	"github.com/Eddy-C127/dance-academy/core"
	"github.com/Eddy-C127/dance-academy/core/access"
	"github.com/Eddy-C127/dance-academy/core/attendance"
	"github.com/Eddy-C127/dance-academy/core/evaluation"
	"github.com/Eddy-C127/dance-academy/core/event"
	"github.com/Eddy-C127/dance-academy/core/payment"
	"github.com/Eddy-C127/dance-academy/core/report"
	"github.com/Eddy-C127/dance-academy/core/student"
	"github.com/Eddy-C127/dance-academy/core/user"
)

type (
	Options struct {
		Address        string
		DisableReqLogs bool

		UserSvc       user.Service
		StudentSvc    *student.Service
		AttendanceSvc *attendance.Service
		EvaluationSvc *evaluation.Service
		PaymentSvc    *payment.Service
		EventSvc      *event.Service
		ReportSvc     *report.Service

		Logger         core.Logger
		SignalShutdown func()
	}

	Server interface {
		http.Handler
		Start()
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
	s.app.Pre(middleware.RemoveTrailingSlash())
	if !s.opts.DisableReqLogs {
		s.app.Use(middleware.Logger())
	}
	// do not recover in DEV|TEST mode
	if !(core.Conf.Debug || core.Conf.TestMode) {
		s.app.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{LogLevel: log.ERROR}))
	}

	s.app.HTTPErrorHandler = newAppHTTPErrorHandler(s.opts.Logger, s.opts.SignalShutdown)
	s.app.Debug = core.Conf.Debug

	s.app.GET("/", home)

	v1 := s.app.Group("/v1")
	jwt := middleware.JWTWithConfig(appJWTConfig)
	authed := policyMiddleware(access.AnyAuthenticated)

	registerUserAPI(v1, jwt, s.opts.UserSvc)
	registerStudentAPI(v1, jwt, authed, s.opts.StudentSvc)
	registerAttendanceAPI(v1, jwt, authed, s.opts.AttendanceSvc, s.opts.StudentSvc)
	registerEvaluationAPI(v1, jwt, authed, s.opts.EvaluationSvc)
	registerPaymentAPI(v1, jwt, authed, s.opts.PaymentSvc)
	registerEventAPI(v1, jwt, s.opts.EventSvc)
	registerAdminAPI(v1, jwt, s.opts.ReportSvc, s.opts.PaymentSvc)
}

func (s *server) Start() {
	s.app.Logger.Fatal(s.app.Start(s.opts.Address))
}

func (s *server) Stop(ctx context.Context) error {
	return s.app.Shutdown(ctx)
}

func (s *server) ServeHTTP(w http.ResponseWriter, r *http.Request) { // for tests
	s.app.ServeHTTP(w, r)
}

func home(ctx echo.Context) error {
	return ctx.String(http.StatusOK, "Welcome to the Academia API!")
}
