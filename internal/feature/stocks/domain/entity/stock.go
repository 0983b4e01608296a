// Package entity defines the domain models for the stocks feature.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Stock represents a listed security tracked by the broker.
// The ID is assigned by the persistence layer on first save and is
// never changed by updates.
type Stock struct {
	ID          string          `gorm:"primaryKey;size:36" json:"id"`
	Symbol      string          `gorm:"size:20;not null;index" json:"symbol"`
	CompanyName string          `gorm:"size:255;not null" json:"companyName"`
	Price       decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"price"`
	CreatedAt   time.Time       `json:"-"`
	UpdatedAt   time.Time       `json:"-"`
}

// BeforeCreate assigns a UUID so that identity comes from the
// repository rather than the caller.
func (s *Stock) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return nil
}
