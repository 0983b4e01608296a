// Package dto defines data transfer objects for the stocks feature's HTTP transport layer.
package dto

import "github.com/shopspring/decimal"

// StockRequest represents the request body for creating, updating or
// validating a stock.
//
// Field constraints are deliberately not declared as binding tags: the
// domain rule table evaluates every constraint and reports all
// violations together, which gin's binding would short-circuit into a
// single opaque 400.
type StockRequest struct {
	Symbol      string          `json:"symbol"`
	CompanyName string          `json:"companyName"`
	Price       decimal.Decimal `json:"price"`
}
