package echoapi

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/Eddy-C127/dance-academy/core"
	"github.com/Eddy-C127/dance-academy/core/student"
)

type studentApi struct {
	svc *student.Service
}

func registerStudentAPI(g *echo.Group, jwt, authed echo.MiddlewareFunc, svc *student.Service) {
	api := studentApi{svc: svc}

	sg := g.Group("/students", jwt, authed)
	sg.GET("", api.query)
	sg.POST("", api.create, adminMiddleware())
	sg.GET("/roster", api.roster, teacherMiddleware())
	sg.GET("/leaderboard", api.leaderboard)
	sg.GET("/:id", api.retrieve)
}

// query lists students for the caller. A parent gets the overview of their
// own children; staff get the plain student list, optionally filtered.
func (api *studentApi) query(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return err
	}

	if claims.IsParent {
		overviews, err := api.svc.GuardianOverview(ctx.Request().Context(), claims.Subject)
		if err != nil {
			return errors.Wrap(err, "assembling guardian overview")
		}
		return ctx.JSON(http.StatusOK, overviews)
	}

	filter := new(student.QueryFilter)
	if err := ctx.Bind(filter); err != nil {
		return ctx.JSON(http.StatusOK, []student.Student{})
	}
	students, err := api.svc.Query(ctx.Request().Context(), filter)
	if err != nil {
		return errors.Wrap(err, "querying students")
	}
	if students == nil {
		students = []student.Student{}
	}
	return ctx.JSON(http.StatusOK, students)
}

func (api *studentApi) create(ctx echo.Context) error {
	var data student.NewStudent
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewStudent")
	}
	if err := data.Validate(); err != nil {
		return err
	}

	stu, err := api.svc.Create(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "creating student")
	}
	return ctx.JSON(http.StatusCreated, stu)
}

func (api *studentApi) roster(ctx echo.Context) error {
	specialty := core.CleanString(ctx.QueryParam("specialty"))
	if specialty == "" {
		specialty = core.Conf.Academy.DefaultSpecialty
	}
	level := core.CleanString(ctx.QueryParam("level"))
	if level == "" {
		level = core.Conf.Academy.DefaultLevel
	}
	class := core.CleanString(ctx.QueryParam("class"))
	if class == "" {
		class = core.Conf.Academy.DefaultClass
	}

	roster, err := api.svc.Roster(ctx.Request().Context(), specialty, level, class, time.Now().UTC())
	if err != nil {
		return errors.Wrap(err, "assembling roster")
	}
	return ctx.JSON(http.StatusOK, roster)
}

func (api *studentApi) leaderboard(ctx echo.Context) error {
	top, err := api.svc.Leaderboard(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "querying leaderboard")
	}
	if top == nil {
		top = []student.Student{}
	}
	return ctx.JSON(http.StatusOK, top)
}

// retrieve fetches a single student. Parents can only see their own children;
// anyone else's child is a 404.
func (api *studentApi) retrieve(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return err
	}

	var stu student.Student
	if claims.IsParent {
		stu, err = api.svc.GetForGuardian(ctx.Request().Context(), ctx.Param("id"), claims.Subject)
	} else {
		stu, err = api.svc.GetByID(ctx.Request().Context(), ctx.Param("id"))
	}
	if err != nil {
		if errors.Cause(err) == student.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "finding student by ID")
	}
	return ctx.JSON(http.StatusOK, stu)
}
