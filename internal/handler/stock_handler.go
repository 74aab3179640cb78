package handler

import (
	"net/http"
	"strconv"

	"github.com/CaduValezzi/FIAP-3ESA-csharp-cp3-2025/internal/usecase"

	"github.com/labstack/echo/v4"
)

// /operacoes の在庫まわり
type StockHandler struct {
	uc             *usecase.StockUsecase
	clock          usecase.Clock
	exposeInternal bool
}

// DI
func NewStockHandler(uc *usecase.StockUsecase, clock usecase.Clock, exposeInternal bool) *StockHandler {
	return &StockHandler{uc: uc, clock: clock, exposeInternal: exposeInternal}
}

// /operacoes グループにルートを登録
func (h *StockHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/GetInfo", h.getInfo)
	g.GET("/Arquivos", h.bundleStatus)
	g.POST("/GerarEstoqueInicial", h.generateInitial)
	g.POST("/GerarEstoqueFinal", h.generateFinal)
	g.POST("/AtualizarEstoque", h.commit)
}

func (h *StockHandler) getInfo(c echo.Context) error {
	var bandID *int64
	if v := c.QueryParam("bandaId"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid bandaId"})
		}
		bandID = &id
	}

	out, err := h.uc.GetInfo(c.Request().Context(), bandID)
	if err != nil {
		return writeError(c, err, h.exposeInternal)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *StockHandler) bundleStatus(c echo.Context) error {
	day, ok := resolveDay(c, h.clock)
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid data"})
	}

	out, err := h.uc.GetBundleStatus(c.Request().Context(), day)
	if err != nil {
		return writeError(c, err, h.exposeInternal)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *StockHandler) generateInitial(c echo.Context) error {
	day, ok := resolveDay(c, h.clock)
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid data"})
	}

	out, err := h.uc.GenerateInitialStock(c.Request().Context(), day)
	if err != nil {
		return writeError(c, err, h.exposeInternal)
	}
	return c.String(http.StatusOK, out.Text)
}

func (h *StockHandler) generateFinal(c echo.Context) error {
	day, ok := resolveDay(c, h.clock)
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid data"})
	}

	out, err := h.uc.GenerateFinalStock(c.Request().Context(), day)
	if err != nil {
		return writeError(c, err, h.exposeInternal)
	}
	return c.String(http.StatusOK, out.Text)
}

func (h *StockHandler) commit(c echo.Context) error {
	day, ok := resolveDay(c, h.clock)
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid data"})
	}

	if _, err := h.uc.CommitStock(c.Request().Context(), day); err != nil {
		return writeError(c, err, h.exposeInternal)
	}
	return c.String(http.StatusOK, "Estoque atualizado com sucesso.")
}
