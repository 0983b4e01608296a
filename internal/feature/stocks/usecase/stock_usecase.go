// Package usecase implements the business logic for stock operations.
package usecase

import (
	"context"

	"github.com/shopspring/decimal"

	"broker_backend/internal/feature/stocks/domain"
	"broker_backend/internal/feature/stocks/domain/entity"
)

// StockInput carries the fields of a stock minus its identity. It is
// used to create new stocks, to validate candidate data, and as the
// field carrier for updates.
type StockInput struct {
	Symbol      string
	CompanyName string
	Price       decimal.Decimal
}

// StockRepository abstracts the persistence layer for stock entities.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type StockRepository interface {
	// FindAll returns every persisted stock in storage order.
	FindAll(ctx context.Context) ([]entity.Stock, error)

	// FindByID returns the stock with the given id, or (nil, nil) when
	// no such stock exists. Absence is not an error.
	FindByID(ctx context.Context, id string) (*entity.Stock, error)

	// Save persists the stock, assigning an id on first save, and
	// returns the persisted instance.
	Save(ctx context.Context, stock *entity.Stock) (*entity.Stock, error)

	// DeleteByID removes the stock with the given id. Deleting an
	// unknown id is a no-op.
	DeleteByID(ctx context.Context, id string) error
}

// StockValidator checks a candidate input against the declared field
// constraints and returns every violation found, not just the first.
type StockValidator interface {
	Validate(in StockInput) []domain.Violation
}

// stockUsecase orchestrates validation and persistence for stocks.
// It holds no state of its own; every call is a single synchronous
// step against the injected ports.
type stockUsecase struct {
	stocks    StockRepository
	validator StockValidator
}

// NewStockUsecase creates a new stockUsecase with the given ports.
func NewStockUsecase(stocks StockRepository, validator StockValidator) *stockUsecase {
	return &stockUsecase{stocks: stocks, validator: validator}
}

// ListStocks returns every persisted stock. No filtering, no pagination.
func (u *stockUsecase) ListStocks(ctx context.Context) ([]entity.Stock, error) {
	return u.stocks.FindAll(ctx)
}

// GetStockByID returns the stock with the given id, or (nil, nil) when
// the id is unknown.
func (u *stockUsecase) GetStockByID(ctx context.Context, id string) (*entity.Stock, error) {
	return u.stocks.FindByID(ctx, id)
}

// CreateStock builds a stock from the input, validates the input, and
// persists the new stock. On a constraint violation it returns a
// *domain.ValidationError and performs no persistence call.
func (u *stockUsecase) CreateStock(ctx context.Context, in StockInput) (*entity.Stock, error) {
	stock := &entity.Stock{
		Symbol:      in.Symbol,
		CompanyName: in.CompanyName,
		Price:       in.Price,
	}
	if err := u.ValidateStock(in); err != nil {
		return nil, err
	}
	return u.stocks.Save(ctx, stock)
}

// UpdateStock overwrites symbol, company name and price of the stock
// with the given id and persists it, preserving the id. It returns
// (nil, nil) and performs no write when the id is unknown.
//
// Unlike CreateStock, no input validation runs here; the update path
// accepts the fields as given.
func (u *stockUsecase) UpdateStock(ctx context.Context, id string, in StockInput) (*entity.Stock, error) {
	stock, err := u.stocks.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if stock == nil {
		return nil, nil
	}

	stock.Symbol = in.Symbol
	stock.CompanyName = in.CompanyName
	stock.Price = in.Price

	return u.stocks.Save(ctx, stock)
}

// DeleteStock removes the stock with the given id. It does not check
// existence first; deleting an unknown id is a silent no-op.
func (u *stockUsecase) DeleteStock(ctx context.Context, id string) error {
	return u.stocks.DeleteByID(ctx, id)
}

// ValidateStock runs every declared constraint against the input and
// collects all violations. It returns a *domain.ValidationError when
// the violation set is non-empty, nil otherwise. Pure, no side effects.
func (u *stockUsecase) ValidateStock(in StockInput) error {
	violations := u.validator.Validate(in)
	if len(violations) > 0 {
		return &domain.ValidationError{Violations: violations}
	}
	return nil
}

// ValidateAndCreateStock validates the input first and only then builds
// and persists the stock. Functionally this mirrors CreateStock; it is
// kept as a separate entry point for callers that validate up front and
// discard the persisted instance.
func (u *stockUsecase) ValidateAndCreateStock(ctx context.Context, in StockInput) error {
	if err := u.ValidateStock(in); err != nil {
		return err
	}

	stock := &entity.Stock{
		Symbol:      in.Symbol,
		CompanyName: in.CompanyName,
		Price:       in.Price,
	}
	_, err := u.stocks.Save(ctx, stock)
	return err
}
