package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Product struct {
	Id          string          `json:"id" gorm:"primaryKey"`
	SKU         string          `json:"sku" gorm:"not null;uniqueIndex"`
	Name        string          `json:"name" gorm:"not null"`
	Description string          `json:"description"`
	UnitPrice   decimal.Decimal `json:"unit_price" gorm:"type:numeric(12,2)"`
	TaxRate     decimal.Decimal `json:"tax_rate" gorm:"type:numeric(5,2)"` // IVA percent, e.g. 19
	TaxCategory string          `json:"tax_category" gorm:"default:'IVA'"` // IVA | EXENTO | EXCLUIDO
	Active      bool            `json:"-" gorm:"default:true"`
}

func (product *Product) BeforeCreate(tx *gorm.DB) (err error) {
	// UUID version 4
	product.Id = uuid.NewString()
	return
}
