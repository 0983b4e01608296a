// Package validation provides the default constraint rules for stock input.
package validation

import (
	"strings"

	"broker_backend/internal/feature/stocks/domain"
	"broker_backend/internal/feature/stocks/usecase"
)

// rule pairs a field constraint with the message reported when the
// constraint does not hold.
type rule struct {
	field   string
	message string
	valid   func(in usecase.StockInput) bool
}

// StockRules validates stock input against a declarative rule table.
// Every rule is evaluated; nothing short-circuits on the first failure.
type StockRules struct {
	rules []rule
}

// StockRules implements the usecase's validation port.
var _ usecase.StockValidator = (*StockRules)(nil)

// NewStockRules creates the default rule set: non-blank symbol,
// non-blank company name, non-negative price.
func NewStockRules() *StockRules {
	return &StockRules{
		rules: []rule{
			{
				field:   "symbol",
				message: "must not be blank",
				valid: func(in usecase.StockInput) bool {
					return strings.TrimSpace(in.Symbol) != ""
				},
			},
			{
				field:   "companyName",
				message: "must not be blank",
				valid: func(in usecase.StockInput) bool {
					return strings.TrimSpace(in.CompanyName) != ""
				},
			},
			{
				field:   "price",
				message: "must not be negative",
				valid: func(in usecase.StockInput) bool {
					return !in.Price.IsNegative()
				},
			},
		},
	}
}

// Validate runs the full rule table and returns one violation per
// failed rule, in declaration order.
func (v *StockRules) Validate(in usecase.StockInput) []domain.Violation {
	var violations []domain.Violation
	for _, r := range v.rules {
		if !r.valid(in) {
			violations = append(violations, domain.Violation{
				Field:   r.field,
				Message: r.message,
			})
		}
	}
	return violations
}
