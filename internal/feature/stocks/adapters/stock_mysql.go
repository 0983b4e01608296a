// Package adapters provides the repository implementations for the stocks feature.
package adapters

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"broker_backend/internal/feature/stocks/domain/entity"
	"broker_backend/internal/feature/stocks/usecase"
)

// stockMySQL implements the StockRepository interface on top of GORM.
type stockMySQL struct {
	db *gorm.DB
}

// Compile-time check that stockMySQL satisfies the usecase port.
var _ usecase.StockRepository = (*stockMySQL)(nil)

// NewStockRepository creates a new stockMySQL repository with the given
// DB connection.
func NewStockRepository(db *gorm.DB) *stockMySQL {
	return &stockMySQL{db: db}
}

// FindAll returns every stock in storage order.
func (r *stockMySQL) FindAll(ctx context.Context) ([]entity.Stock, error) {
	var stocks []entity.Stock
	if err := r.db.WithContext(ctx).Find(&stocks).Error; err != nil {
		return nil, err
	}
	return stocks, nil
}

// FindByID returns the stock with the given id, or (nil, nil) when no
// row matches. A missing record is absence, not an error.
func (r *stockMySQL) FindByID(ctx context.Context, id string) (*entity.Stock, error) {
	var s entity.Stock
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&s).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &s, nil
}

// Save persists the stock and returns the persisted instance. An empty
// id takes the create path, where the BeforeCreate hook assigns a UUID;
// a non-empty id updates the existing row in place.
func (r *stockMySQL) Save(ctx context.Context, stock *entity.Stock) (*entity.Stock, error) {
	if err := r.db.WithContext(ctx).Save(stock).Error; err != nil {
		return nil, err
	}
	return stock, nil
}

// DeleteByID removes the stock with the given id. GORM reports no error
// when nothing matches, which gives delete its no-op semantics for
// unknown ids.
func (r *stockMySQL) DeleteByID(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&entity.Stock{}, "id = ?", id).Error
}

// FindByCompanyName returns the first stock whose company name matches
// the given name case-insensitively, or (nil, nil) when none does. Used
// by the logo lookup feature to resolve detected brands.
func (r *stockMySQL) FindByCompanyName(ctx context.Context, name string) (*entity.Stock, error) {
	var s entity.Stock
	if err := r.db.WithContext(ctx).
		Where("LOWER(company_name) = LOWER(?)", name).
		First(&s).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &s, nil
}
