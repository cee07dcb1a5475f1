package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/Eddy-C127/dance-academy/core/evaluation"
)

// evaluation list size when the request does not ask for a specific student
const evaluationFeedLimit = 20

type evaluationApi struct {
	svc *evaluation.Service
}

func registerEvaluationAPI(g *echo.Group, jwt, authed echo.MiddlewareFunc, svc *evaluation.Service) {
	api := evaluationApi{svc: svc}

	eg := g.Group("/evaluations", jwt, authed)
	eg.GET("", api.query)
	eg.POST("", api.create, teacherMiddleware())
}

func (api *evaluationApi) query(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return err
	}

	filter := &evaluation.QueryFilter{
		StudentID: ctx.QueryParam("student_id"),
		Limit:     evaluationFeedLimit,
	}
	// teachers browse their own submissions by default
	if claims.IsTeacher && filter.StudentID == "" {
		filter.TeacherID = claims.Subject
	}

	evals, err := api.svc.Query(ctx.Request().Context(), filter)
	if err != nil {
		return errors.Wrap(err, "querying evaluations")
	}
	if evals == nil {
		evals = []evaluation.Evaluation{}
	}
	return ctx.JSON(http.StatusOK, evals)
}

func (api *evaluationApi) create(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return err
	}

	var data evaluation.NewEvaluation
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewEvaluation")
	}
	if err := data.Validate(); err != nil {
		return err
	}

	res, err := api.svc.Create(ctx.Request().Context(), data, claims.Subject)
	if err != nil {
		return errors.Wrap(err, "creating evaluation")
	}
	return ctx.JSON(http.StatusCreated, res)
}
