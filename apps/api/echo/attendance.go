package echoapi

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/Eddy-C127/dance-academy/core/attendance"
	"github.com/Eddy-C127/dance-academy/core/student"
)

type attendanceApi struct {
	svc    *attendance.Service
	stuSvc *student.Service
}

func registerAttendanceAPI(g *echo.Group, jwt, authed echo.MiddlewareFunc, svc *attendance.Service, stuSvc *student.Service) {
	api := attendanceApi{svc: svc, stuSvc: stuSvc}

	ag := g.Group("/attendance", jwt, authed)
	ag.GET("", api.query)
	ag.POST("", api.record, teacherMiddleware())
}

type attendanceQueryRequest struct {
	StudentID string    `query:"student_id"`
	Class     string    `query:"class"`
	From      time.Time `query:"from"`
	To        time.Time `query:"to"`
}

// query lists attendance records. A parent only sees records of their own
// children, no matter what student is requested.
func (api *attendanceApi) query(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return err
	}

	var req attendanceQueryRequest
	if err := ctx.Bind(&req); err != nil {
		return ctx.JSON(http.StatusOK, []attendance.Attendance{})
	}

	if claims.IsParent {
		if req.StudentID == "" {
			return ctx.JSON(http.StatusOK, []attendance.Attendance{})
		}
		if _, err := api.stuSvc.GetForGuardian(ctx.Request().Context(), req.StudentID, claims.Subject); err != nil {
			if errors.Cause(err) == student.ErrNotFound {
				return errHttpNotFound
			}
			return errors.Wrap(err, "checking student guardianship")
		}
	}

	atts, err := api.svc.Query(ctx.Request().Context(), &attendance.QueryFilter{
		StudentID: req.StudentID,
		Class:     req.Class,
		From:      req.From,
		To:        req.To,
	})
	if err != nil {
		return errors.Wrap(err, "querying attendance")
	}
	if atts == nil {
		atts = []attendance.Attendance{}
	}
	return ctx.JSON(http.StatusOK, atts)
}

func (api *attendanceApi) record(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return err
	}

	var data attendance.NewAttendance
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewAttendance")
	}
	if err := data.Validate(); err != nil {
		return err
	}

	att, err := api.svc.Record(ctx.Request().Context(), data, claims.Subject)
	if err != nil {
		return errors.Wrap(err, "recording attendance")
	}
	return ctx.JSON(http.StatusCreated, att)
}
