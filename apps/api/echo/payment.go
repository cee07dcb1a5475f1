package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/Eddy-C127/dance-academy/core"
	"github.com/Eddy-C127/dance-academy/core/payment"
)

type paymentApi struct {
	svc *payment.Service
}

func registerPaymentAPI(g *echo.Group, jwt, authed echo.MiddlewareFunc, svc *payment.Service) {
	api := paymentApi{svc: svc}

	pg := g.Group("/payments", jwt, authed)
	pg.GET("", api.query)
	pg.POST("", api.create, adminMiddleware())
	pg.POST("/:id/pay", api.pay)
}

// query lists payments. A parent gets their children's charges; admins see
// everything, optionally filtered.
func (api *paymentApi) query(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return err
	}

	var pmts []payment.Payment
	if claims.IsParent {
		pmts, err = api.svc.QueryForGuardian(ctx.Request().Context(), claims.Subject)
	} else if claims.IsAdmin {
		filter := &payment.QueryFilter{
			StudentID: ctx.QueryParam("student_id"),
			Status:    ctx.QueryParam("status"),
		}
		pmts, err = api.svc.Query(ctx.Request().Context(), filter)
	} else {
		return errHttpForbidden
	}
	if err != nil {
		return errors.Wrap(err, "querying payments")
	}
	if pmts == nil {
		pmts = []payment.Payment{}
	}
	return ctx.JSON(http.StatusOK, pmts)
}

func (api *paymentApi) create(ctx echo.Context) error {
	var data payment.NewPayment
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewPayment")
	}
	if err := data.Validate(); err != nil {
		return err
	}

	pmt, err := api.svc.Create(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "creating payment")
	}
	return ctx.JSON(http.StatusCreated, pmt)
}

// pay settles one of the caller's payments. Another family's payment is a
// 404, an already settled one a validation error.
func (api *paymentApi) pay(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return err
	}

	pmt, err := api.svc.Pay(ctx.Request().Context(), ctx.Param("id"), claims.Subject)
	if err != nil {
		switch errors.Cause(err) {
		case payment.ErrNotFound:
			return errHttpNotFound
		case payment.ErrAlreadyPaid:
			return core.NewValidationError(payment.ErrAlreadyPaid)
		}
		return errors.Wrap(err, "settling payment")
	}
	return ctx.JSON(http.StatusOK, pmt)
}
