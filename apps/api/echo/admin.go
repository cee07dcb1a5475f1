package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/Eddy-C127/dance-academy/core"
	"github.com/Eddy-C127/dance-academy/core/payment"
	"github.com/Eddy-C127/dance-academy/core/report"
)

type adminApi struct {
	reportSvc *report.Service
	pmtSvc    *payment.Service
}

func registerAdminAPI(g *echo.Group, jwt echo.MiddlewareFunc, reportSvc *report.Service, pmtSvc *payment.Service) {
	api := adminApi{reportSvc: reportSvc, pmtSvc: pmtSvc}

	ag := g.Group("/admin", jwt, adminMiddleware())
	ag.GET("/dashboard", api.dashboard)
	ag.POST("/payments/:id/remind", api.remindPayment)
}

func (api *adminApi) dashboard(ctx echo.Context) error {
	dash, err := api.reportSvc.Dashboard(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "assembling dashboard")
	}
	return ctx.JSON(http.StatusOK, dash)
}

func (api *adminApi) remindPayment(ctx echo.Context) error {
	err := api.pmtSvc.Remind(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		switch errors.Cause(err) {
		case payment.ErrNotFound:
			return errHttpNotFound
		case payment.ErrAlreadyPaid:
			return core.NewValidationError(payment.ErrAlreadyPaid)
		}
		return errors.Wrap(err, "sending payment reminder")
	}
	return ctx.JSON(http.StatusOK, SuccessResponse{Success: "Reminder sent to the guardian."})
}
