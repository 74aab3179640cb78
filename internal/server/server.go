package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/CaduValezzi/FIAP-3ESA-csharp-cp3-2025/internal/handler"
	"github.com/CaduValezzi/FIAP-3ESA-csharp-cp3-2025/internal/middleware"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
)

type Deps struct {
	Stock             *handler.StockHandler
	Orders            *handler.OrderHandler
	Logger            *zap.Logger
	OperatorJWTSecret string
}

// New はミドルウェアとルートを登録したechoを返す
func New(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(echomw.Recover())
	e.Use(echomw.RequestIDWithConfig(echomw.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(middleware.RequestLogger(d.Logger))

	RegisterRoutes(e, d)
	return e
}

// ctxがキャンセルされたら止める
func Start(ctx context.Context, addr string, e *echo.Echo) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- e.Start(addr)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return e.Shutdown(shutdownCtx)
	}
}
