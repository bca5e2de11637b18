package services

import (
	"fmt"
	"time"

	"github.com/DanielEsLoH/StockFlow-sub011/models"
	"github.com/DanielEsLoH/StockFlow-sub011/utils"

	"github.com/shopspring/decimal"
)

const (
	ActionSendInvoice   Action = "send"
	ActionMarkPaid      Action = "mark_paid"
	ActionMarkOverdue   Action = "mark_overdue"
	ActionCancelInvoice Action = "cancel"
)

// InvoiceMachine: DRAFT → SENT → {PAID, OVERDUE, CANCELLED}; OVERDUE can
// still be paid or cancelled. PAID and CANCELLED are terminal.
var InvoiceMachine = NewMachine("invoices").
	Permit(ActionSendInvoice, "sent", models.InvoiceStatusSent, models.InvoiceStatusDraft).
	Permit(ActionMarkPaid, "marked paid", models.InvoiceStatusPaid, models.InvoiceStatusSent, models.InvoiceStatusOverdue).
	Permit(ActionMarkOverdue, "marked overdue", models.InvoiceStatusOverdue, models.InvoiceStatusSent).
	Permit(ActionCancelInvoice, "cancelled", models.InvoiceStatusCancelled,
		models.InvoiceStatusDraft, models.InvoiceStatusSent, models.InvoiceStatusOverdue)

// EnsureInvoiceMutable rejects field or item writes once an invoice is paid
// or cancelled.
func EnsureInvoiceMutable(inv *models.Invoice) error {
	if inv.Mutable() {
		return nil
	}
	return &StateError{
		Entity:  "invoices",
		Current: inv.Status,
		msg:     fmt.Sprintf("invoice %s can no longer be modified (status %s)", inv.InvoiceNumber, inv.Status),
	}
}

// SendInvoice issues a draft invoice and stamps IssuedAt. If no due date was
// set, it defaults to 30 days out so the collection schedule has an anchor.
func SendInvoice(inv *models.Invoice, now time.Time) error {
	next, err := InvoiceMachine.Apply(ActionSendInvoice, inv.Status)
	if err != nil {
		return err
	}
	inv.Status = next
	inv.IssuedAt = &now
	if inv.DueDate == nil {
		due := now.AddDate(0, 0, 30)
		inv.DueDate = &due
	}
	return nil
}

func MarkInvoicePaid(inv *models.Invoice) error {
	next, err := InvoiceMachine.Apply(ActionMarkPaid, inv.Status)
	if err != nil {
		return err
	}
	inv.Status = next
	inv.PaymentStatus = models.PaymentStatusPaid
	return nil
}

func MarkInvoiceOverdue(inv *models.Invoice) error {
	next, err := InvoiceMachine.Apply(ActionMarkOverdue, inv.Status)
	if err != nil {
		return err
	}
	inv.Status = next
	return nil
}

func CancelInvoice(inv *models.Invoice, now time.Time) error {
	next, err := InvoiceMachine.Apply(ActionCancelInvoice, inv.Status)
	if err != nil {
		return err
	}
	inv.Status = next
	inv.CancelledAt = &now
	return nil
}

// ComputeLineTotals fills net/tax/gross on one line from quantity, unit
// price, per-line discount percent and tax rate percent.
func ComputeLineTotals(quantity int, unitPrice, discount, taxRate decimal.Decimal) (net, tax, gross decimal.Decimal) {
	qty := decimal.NewFromInt(int64(quantity))
	net = utils.RoundMoney(unitPrice.Mul(qty).Mul(decimal.NewFromInt(1).Sub(utils.Percent(discount))))
	tax = utils.RoundMoney(net.Mul(utils.Percent(taxRate)))
	gross = net.Add(tax)
	return
}

// ApplyPayment records one payment's effect on the invoice rollup. Once the
// paid total covers the invoice total, the invoice itself transitions to
// PAID through the machine.
func ApplyPayment(inv *models.Invoice, amount decimal.Decimal) error {
	if amount.IsNegative() {
		return fmt.Errorf("payment amount cannot be negative")
	}
	inv.PaidTotal = utils.RoundMoney(inv.PaidTotal.Add(amount))

	switch {
	case inv.PaidTotal.GreaterThanOrEqual(inv.Total) && inv.Total.IsPositive():
		if err := MarkInvoicePaid(inv); err != nil {
			return err
		}
	case inv.PaidTotal.IsPositive():
		inv.PaymentStatus = models.PaymentStatusPartiallyPaid
	default:
		inv.PaymentStatus = models.PaymentStatusUnpaid
	}
	return nil
}
