package echoapi

import (
	"github.com/labstack/echo/v4"

	"github.com/Eddy-C127/dance-academy/core/access"
)

// policyMiddleware gates a route group on the route policy. The policy's
// verdicts translate to API statuses: a login redirect becomes 401, a home
// redirect becomes 403.
func policyMiddleware(required access.RoleClass) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			switch access.Decide(contextSession(ctx), required) {
			case access.Allow:
				return next(ctx)
			case access.RedirectToLogin:
				return errUnauthorized
			default:
				return errHttpForbidden
			}
		}
	}
}

// teacherMiddleware guards the recording endpoints: only a teacher may
// submit attendance or evaluations, matching the role stamped on the
// created records.
func teacherMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			claims, err := getContextClaims(ctx)
			if err != nil {
				return errUnauthorized
			}
			if !claims.IsTeacher {
				return errHttpForbidden
			}
			return next(ctx)
		}
	}
}

func adminMiddleware() echo.MiddlewareFunc {
	return policyMiddleware(access.AdminOnly)
}
