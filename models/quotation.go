package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// Quotation statuses. Only DRAFT quotations are editable or deletable;
// CONVERTED is terminal and freezes every field.
const (
	QuotationStatusDraft     = "DRAFT"
	QuotationStatusSent      = "SENT"
	QuotationStatusAccepted  = "ACCEPTED"
	QuotationStatusRejected  = "REJECTED"
	QuotationStatusExpired   = "EXPIRED"
	QuotationStatusConverted = "CONVERTED"
)

type Quotation struct {
	ID              uint      `json:"id" gorm:"primaryKey"`
	QuotationNumber string    `json:"quotation_number" gorm:"unique"`
	CustomerID      *uint     `json:"customer_id" gorm:"index"`
	Customer        *Customer `json:"customer,omitempty" gorm:"foreignKey:CustomerID;references:Id"`

	Items    []QuotationItem `json:"items" gorm:"foreignKey:QuotationID;constraint:OnDelete:CASCADE"`
	Subtotal decimal.Decimal `json:"subtotal" gorm:"type:numeric(12,2)"`
	TaxTotal decimal.Decimal `json:"tax_total" gorm:"type:numeric(12,2)"`
	Total    decimal.Decimal `json:"total" gorm:"type:numeric(12,2)"`

	Status     string     `json:"status" gorm:"type:varchar(20);default:'DRAFT';index"`
	ValidUntil *time.Time `json:"valid_until"`
	SentAt     *time.Time `json:"sent_at"`

	// Populated only on conversion.
	ConvertedToInvoiceID *uint      `json:"converted_to_invoice_id"`
	ConvertedAt          *time.Time `json:"converted_at"`

	Notes string `json:"notes"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type QuotationItem struct {
	ID          uint            `json:"id" gorm:"primaryKey"`
	QuotationID uint            `json:"-" gorm:"index"`
	ProductID   string          `json:"product_id" gorm:"not null;index"`
	Product     Product         `json:"-" gorm:"foreignKey:ProductID;references:Id;constraint:OnUpdate:RESTRICT,OnDelete:RESTRICT"`
	Description string          `json:"description"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price" gorm:"type:numeric(12,2)"`
	TaxRate     decimal.Decimal `json:"tax_rate" gorm:"type:numeric(5,2)"`
	Discount    decimal.Decimal `json:"discount" gorm:"type:numeric(5,2)"`
	TaxCategory string          `json:"tax_category"`
	NetPrice    decimal.Decimal `json:"net_price" gorm:"type:numeric(12,2)"`
	TaxAmount   decimal.Decimal `json:"tax_amount" gorm:"type:numeric(12,2)"`
	GrossPrice  decimal.Decimal `json:"gross_price" gorm:"type:numeric(12,2)"`
}

// QuotationVersion is an immutable snapshot, written when a quotation is
// sent and again when it is converted.
type QuotationVersion struct {
	ID          uint           `json:"id" gorm:"primaryKey"`
	QuotationID uint           `json:"quotation_id" gorm:"index:idx_quotation_versions_quotation_id_version_no,unique,priority:1"`
	VersionNo   int            `json:"version_no" gorm:"not null;index:idx_quotation_versions_quotation_id_version_no,unique,priority:2"`
	Kind        string         `json:"kind" gorm:"type:VARCHAR(20)"` // "sent" | "converted"
	Snapshot    datatypes.JSON `json:"snapshot" gorm:"type:jsonb"`
	CreatedAt   time.Time      `json:"created_at"`
}
