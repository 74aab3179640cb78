package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/CaduValezzi/FIAP-3ESA-csharp-cp3-2025/internal/domain/stockfile"
	"github.com/CaduValezzi/FIAP-3ESA-csharp-cp3-2025/internal/usecase"

	"github.com/labstack/echo/v4"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

// exposeInternal=true なら500の本文に元エラーを含める（prod以外）
func writeError(c echo.Context, err error, exposeInternal bool) error {
	if err == nil {
		return nil
	}
	if he, ok := usecase.AsHTTPError(err); ok {
		msg := he.Message
		if he.Status >= http.StatusInternalServerError {
			c.Logger().Error(err)
			if exposeInternal && he.Cause != nil {
				msg = "erro interno do servidor: " + he.Cause.Error()
			}
		}
		return c.JSON(he.Status, ErrorResponse{Error: msg})
	}

	//500
	c.Logger().Error(err)
	if exposeInternal {
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "erro interno do servidor: " + err.Error()})
	}
	return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
}

// ?data=DDMMYY があればその日、無ければ今日
func resolveDay(c echo.Context, clock usecase.Clock) (time.Time, bool) {
	v := strings.TrimSpace(c.QueryParam("data"))
	if v == "" {
		return clock.Now(), true
	}
	day, err := stockfile.ParseStamp(v)
	if err != nil {
		return time.Time{}, false
	}
	return day, true
}
