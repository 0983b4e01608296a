package dto

import (
	"github.com/shopspring/decimal"

	"broker_backend/internal/feature/stocks/domain/entity"
)

// StockResponse represents one stock in an HTTP response.
type StockResponse struct {
	ID          string          `json:"id"`
	Symbol      string          `json:"symbol"`
	CompanyName string          `json:"companyName"`
	Price       decimal.Decimal `json:"price"`
}

// FromEntity converts a domain stock into its response shape.
func FromEntity(s *entity.Stock) StockResponse {
	return StockResponse{
		ID:          s.ID,
		Symbol:      s.Symbol,
		CompanyName: s.CompanyName,
		Price:       s.Price,
	}
}
