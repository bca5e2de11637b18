package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Invoice statuses. DRAFT invoices are freely editable; PAID and
// CANCELLED are terminal and read-only.
const (
	InvoiceStatusDraft     = "DRAFT"
	InvoiceStatusSent      = "SENT"
	InvoiceStatusOverdue   = "OVERDUE"
	InvoiceStatusPaid      = "PAID"
	InvoiceStatusCancelled = "CANCELLED"
)

// Payment rollup states, derived from recorded payments vs. total.
const (
	PaymentStatusUnpaid        = "UNPAID"
	PaymentStatusPartiallyPaid = "PARTIALLY_PAID"
	PaymentStatusPaid          = "PAID"
)

// Invoice is the current/live state of a commercial document.
type Invoice struct {
	ID            uint      `json:"id" gorm:"primaryKey"`
	InvoiceNumber string    `json:"invoice_number" gorm:"unique"`
	CustomerID    *uint     `json:"customer_id" gorm:"index"`
	Customer      *Customer `json:"customer,omitempty" gorm:"foreignKey:CustomerID;references:Id"`

	// Live items (latest state)
	Items    []InvoiceItem   `json:"items" gorm:"foreignKey:InvoiceID;constraint:OnDelete:CASCADE"`
	Subtotal decimal.Decimal `json:"subtotal" gorm:"type:numeric(12,2)"`
	TaxTotal decimal.Decimal `json:"tax_total" gorm:"type:numeric(12,2)"`
	Total    decimal.Decimal `json:"total" gorm:"type:numeric(12,2)"`

	// State
	Status        string     `json:"status" gorm:"type:varchar(20);default:'DRAFT';index"`
	PaymentStatus string     `json:"payment_status" gorm:"type:varchar(20);default:'UNPAID';index"`
	IssuedAt      *time.Time `json:"issued_at"`
	DueDate       *time.Time `json:"due_date" gorm:"index"`
	CancelledAt   *time.Time `json:"cancelled_at"`

	// Payments rollup
	PaidTotal decimal.Decimal `json:"paid_total" gorm:"type:numeric(12,2)"`

	Notes string `json:"notes"`

	Reminders []CollectionReminder `json:"reminders,omitempty" gorm:"foreignKey:InvoiceID"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Mutable reports whether the invoice still accepts field or item writes.
func (i *Invoice) Mutable() bool {
	return i.Status != InvoiceStatusPaid && i.Status != InvoiceStatusCancelled
}

type InvoiceItem struct {
	ID          uint            `json:"id" gorm:"primaryKey"`
	InvoiceID   uint            `json:"-" gorm:"index"`
	ProductID   string          `json:"product_id" gorm:"not null;index"`
	Product     Product         `json:"-" gorm:"foreignKey:ProductID;references:Id;constraint:OnUpdate:RESTRICT,OnDelete:RESTRICT"`
	Description string          `json:"description"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price" gorm:"type:numeric(12,2)"`
	TaxRate     decimal.Decimal `json:"tax_rate" gorm:"type:numeric(5,2)"`
	Discount    decimal.Decimal `json:"discount" gorm:"type:numeric(5,2)"` // percent per line
	TaxCategory string          `json:"tax_category"`
	NetPrice    decimal.Decimal `json:"net_price" gorm:"type:numeric(12,2)"`
	TaxAmount   decimal.Decimal `json:"tax_amount" gorm:"type:numeric(12,2)"`
	GrossPrice  decimal.Decimal `json:"gross_price" gorm:"type:numeric(12,2)"`
}

// Payment survives status changes; linked to invoice.
type Payment struct {
	ID        uint            `json:"id" gorm:"primaryKey"`
	InvoiceID uint            `json:"invoice_id" gorm:"index:idx_payments_invoice_paid_at,priority:1"`
	Amount    decimal.Decimal `json:"amount" gorm:"type:numeric(12,2)"`
	Method    string          `json:"method"`
	Reference string          `json:"reference"`
	Note      string          `json:"note"`
	PaidAt    time.Time       `json:"paid_at" gorm:"index:idx_payments_invoice_paid_at,priority:2"`
	CreatedAt time.Time       `json:"created_at"`
}
