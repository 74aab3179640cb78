package server

import (
	"github.com/CaduValezzi/FIAP-3ESA-csharp-cp3-2025/internal/handler"
	"github.com/CaduValezzi/FIAP-3ESA-csharp-cp3-2025/internal/middleware"

	"github.com/labstack/echo/v4"
)

func RegisterRoutes(e *echo.Echo, d Deps) {
	handler.RegisterHealth(e)

	ops := e.Group("/operacoes")
	//シークレットがあるときだけ認証する
	if d.OperatorJWTSecret != "" {
		ops.Use(middleware.AuthJWT(d.OperatorJWTSecret))
		ops.Use(middleware.OperatorRoleGuard())
	}

	d.Stock.RegisterRoutes(ops)
	d.Orders.RegisterRoutes(ops)
}
