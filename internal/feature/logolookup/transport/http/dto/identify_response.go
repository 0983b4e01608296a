// Package dto defines the HTTP request and response shapes for the
// logolookup feature.
package dto

import (
	"broker_backend/internal/feature/logolookup/domain/entity"
	stockdto "broker_backend/internal/feature/stocks/transport/http/dto"
)

// IdentifyResponse is the result of identifying a stock from an image.
type IdentifyResponse struct {
	Stock      stockdto.StockResponse `json:"stock"`
	LogoName   string                 `json:"logoName"`
	Confidence float32                `json:"confidence"`
	Brief      string                 `json:"brief,omitempty"`
}

// FromMatch converts a domain match into its response shape.
func FromMatch(m *entity.StockMatch) IdentifyResponse {
	return IdentifyResponse{
		Stock:      stockdto.FromEntity(m.Stock),
		LogoName:   m.LogoName,
		Confidence: m.Confidence,
		Brief:      m.Brief,
	}
}
