package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/CaduValezzi/FIAP-3ESA-csharp-cp3-2025/internal/usecase"

	"github.com/labstack/echo/v4"
)

type OrderHandler struct {
	uc             *usecase.OrderUsecase
	clock          usecase.Clock
	exposeInternal bool
}

func NewOrderHandler(uc *usecase.OrderUsecase, clock usecase.Clock, exposeInternal bool) *OrderHandler {
	return &OrderHandler{uc: uc, clock: clock, exposeInternal: exposeInternal}
}

func (h *OrderHandler) RegisterRoutes(g *echo.Group) {
	g.POST("/SalvarPedidos", h.save)
	g.GET("/Pedidos/:id", h.get)
}

func (h *OrderHandler) save(c echo.Context) error {
	day, ok := resolveDay(c, h.clock)
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid data"})
	}

	out, err := h.uc.SaveOrders(c.Request().Context(), day)
	if err != nil {
		return writeError(c, err, h.exposeInternal)
	}
	return c.String(http.StatusOK, fmt.Sprintf("Pedido #%d salvo com sucesso.", out.OrderID))
}

func (h *OrderHandler) get(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	out, err := h.uc.GetOrder(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err, h.exposeInternal)
	}
	return c.JSON(http.StatusOK, out)
}
