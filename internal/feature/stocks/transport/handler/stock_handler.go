// Package handler provides the HTTP handlers for the stocks feature.
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"broker_backend/internal/feature/stocks/domain"
	"broker_backend/internal/feature/stocks/domain/entity"
	"broker_backend/internal/feature/stocks/transport/http/dto"
	"broker_backend/internal/feature/stocks/usecase"
)

// StockUsecase defines the stock operations consumed by the HTTP layer.
// Following Go convention: interfaces are defined by the consumer (handler), not the provider (usecase).
type StockUsecase interface {
	ListStocks(ctx context.Context) ([]entity.Stock, error)
	GetStockByID(ctx context.Context, id string) (*entity.Stock, error)
	CreateStock(ctx context.Context, in usecase.StockInput) (*entity.Stock, error)
	UpdateStock(ctx context.Context, id string, in usecase.StockInput) (*entity.Stock, error)
	DeleteStock(ctx context.Context, id string) error
	ValidateStock(in usecase.StockInput) error
}

// StockHandler handles HTTP requests for stock CRUD operations.
type StockHandler struct {
	uc StockUsecase
}

// NewStockHandler creates a new StockHandler.
func NewStockHandler(uc StockUsecase) *StockHandler {
	return &StockHandler{uc: uc}
}

// List returns every stock as a JSON array.
func (h *StockHandler) List(c *gin.Context) {
	stocks, err := h.uc.ListStocks(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	out := make([]dto.StockResponse, 0, len(stocks))
	for i := range stocks {
		out = append(out, dto.FromEntity(&stocks[i]))
	}
	c.JSON(http.StatusOK, out)
}

// Get returns the stock with the given id, or 404 when it is unknown.
func (h *StockHandler) Get(c *gin.Context) {
	stock, err := h.uc.GetStockByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if stock == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "stock not found"})
		return
	}
	c.JSON(http.StatusOK, dto.FromEntity(stock))
}

// Create validates the request body and persists a new stock.
// Constraint violations are returned as 400 with the full violation
// list; a validation failure performs no write.
func (h *StockHandler) Create(c *gin.Context) {
	var req dto.StockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("create stock: malformed request", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	stock, err := h.uc.CreateStock(c.Request.Context(), toInput(req))
	if err != nil {
		h.writeError(c, err)
		return
	}
	slog.Info("stock created", "id", stock.ID, "symbol", stock.Symbol)
	c.JSON(http.StatusCreated, dto.FromEntity(stock))
}

// Update overwrites the stock with the given id. The id is preserved;
// an unknown id returns 404 without creating a record.
func (h *StockHandler) Update(c *gin.Context) {
	var req dto.StockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	stock, err := h.uc.UpdateStock(c.Request.Context(), c.Param("id"), toInput(req))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if stock == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "stock not found"})
		return
	}
	c.JSON(http.StatusOK, dto.FromEntity(stock))
}

// Delete removes the stock with the given id. Unknown ids are a no-op
// and still answer 204.
func (h *StockHandler) Delete(c *gin.Context) {
	if err := h.uc.DeleteStock(c.Request.Context(), c.Param("id")); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

// Validate runs the constraint rules over the request body without
// persisting anything.
func (h *StockHandler) Validate(c *gin.Context) {
	var req dto.StockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	if err := h.uc.ValidateStock(toInput(req)); err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "ok"})
}

// writeError maps a usecase error onto an HTTP response. Validation
// failures carry their violation list; everything else is opaque.
func (h *StockHandler) writeError(c *gin.Context, err error) {
	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":      verr.Error(),
			"violations": verr.Violations,
		})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}

func toInput(req dto.StockRequest) usecase.StockInput {
	return usecase.StockInput{
		Symbol:      req.Symbol,
		CompanyName: req.CompanyName,
		Price:       req.Price,
	}
}
