package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

//contextに入っているroleがOPERATORかADMINかを確認します。

func OperatorRoleGuard() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			rawRole := c.Get(CtxOperatorRoleKey)
			role, ok := rawRole.(string)
			if !ok || role == "" {
				return c.JSON(http.StatusUnauthorized, errorJSON("unauthorized"))
			}

			switch role {
			case "OPERATOR", "ADMIN":
				return next(c)
			default:
				return c.JSON(http.StatusForbidden, errorJSON("operator only"))
			}
		}
	}
}
