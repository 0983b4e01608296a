// Package handler provides the HTTP handlers for the logolookup feature.
package handler

import (
	"context"
	"io"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"broker_backend/internal/feature/logolookup/domain/entity"
	"broker_backend/internal/feature/logolookup/transport/http/dto"
)

// LogoLookupUsecase defines the identification operation consumed by the HTTP layer.
// Following Go convention: interfaces are defined by the consumer (handler), not the provider (usecase).
type LogoLookupUsecase interface {
	IdentifyStock(ctx context.Context, imageData []byte) (*entity.StockMatch, error)
}

// LogoLookupHandler handles image uploads that identify stocks by logo.
type LogoLookupHandler struct {
	uc LogoLookupUsecase
}

// NewLogoLookupHandler creates a new LogoLookupHandler.
func NewLogoLookupHandler(uc LogoLookupUsecase) *LogoLookupHandler {
	return &LogoLookupHandler{uc: uc}
}

// Identify accepts a multipart upload under the "image" field and
// answers with the best-matching stock, or 404 when no detected logo
// corresponds to a known stock.
func (h *LogoLookupHandler) Identify(c *gin.Context) {
	file, err := c.FormFile("image")
	if err != nil {
		slog.Warn("identify stock: missing image file", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, gin.H{"error": "image file is required"})
		return
	}

	f, err := file.Open()
	if err != nil {
		slog.Error("identify stock: failed to open upload", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to read image"})
		return
	}
	defer func() {
		if err := f.Close(); err != nil {
			slog.Warn("identify stock: failed to close upload", "error", err)
		}
	}()

	imageData, err := io.ReadAll(f)
	if err != nil {
		slog.Error("identify stock: failed to read upload", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to read image"})
		return
	}

	match, err := h.uc.IdentifyStock(c.Request.Context(), imageData)
	if err != nil {
		slog.Error("identify stock: identification failed", "error", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "stock identification failed"})
		return
	}
	if match == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no matching stock found"})
		return
	}

	slog.Info("stock identified", "symbol", match.Stock.Symbol, "logo", match.LogoName, "confidence", match.Confidence)
	c.JSON(http.StatusOK, dto.FromMatch(match))
}
