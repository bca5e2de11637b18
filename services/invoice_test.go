package services

import (
	"testing"
	"time"

	"github.com/DanielEsLoH/StockFlow-sub011/models"

	"github.com/shopspring/decimal"
)

func TestComputeLineTotals(t *testing.T) {
	tests := []struct {
		name      string
		quantity  int
		unitPrice string
		discount  string
		taxRate   string
		wantNet   string
		wantTax   string
		wantGross string
	}{
		{"plain IVA line", 2, "100", "0", "19", "200", "38", "238"},
		{"line discount", 3, "50", "10", "19", "135", "25.65", "160.65"},
		{"tax exempt", 1, "80", "0", "0", "80", "0", "80"},
		{"rounding", 1, "33.33", "0", "19", "33.33", "6.33", "39.66"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			net, tax, gross := ComputeLineTotals(
				tt.quantity,
				decimal.RequireFromString(tt.unitPrice),
				decimal.RequireFromString(tt.discount),
				decimal.RequireFromString(tt.taxRate),
			)
			if !net.Equal(decimal.RequireFromString(tt.wantNet)) {
				t.Errorf("net = %s, want %s", net, tt.wantNet)
			}
			if !tax.Equal(decimal.RequireFromString(tt.wantTax)) {
				t.Errorf("tax = %s, want %s", tax, tt.wantTax)
			}
			if !gross.Equal(decimal.RequireFromString(tt.wantGross)) {
				t.Errorf("gross = %s, want %s", gross, tt.wantGross)
			}
		})
	}
}

func TestInvoiceTransitions(t *testing.T) {
	now := time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC)

	t.Run("send stamps issued and default due date", func(t *testing.T) {
		inv := models.Invoice{Status: models.InvoiceStatusDraft}
		if err := SendInvoice(&inv, now); err != nil {
			t.Fatalf("SendInvoice: %v", err)
		}
		if inv.Status != models.InvoiceStatusSent {
			t.Errorf("status = %s, want SENT", inv.Status)
		}
		if inv.IssuedAt == nil || !inv.IssuedAt.Equal(now) {
			t.Errorf("IssuedAt = %v", inv.IssuedAt)
		}
		if inv.DueDate == nil || !inv.DueDate.Equal(now.AddDate(0, 0, 30)) {
			t.Errorf("DueDate = %v, want now+30d", inv.DueDate)
		}
	})

	t.Run("send keeps an explicit due date", func(t *testing.T) {
		due := now.AddDate(0, 0, 60)
		inv := models.Invoice{Status: models.InvoiceStatusDraft, DueDate: &due}
		if err := SendInvoice(&inv, now); err != nil {
			t.Fatalf("SendInvoice: %v", err)
		}
		if !inv.DueDate.Equal(due) {
			t.Errorf("DueDate = %v, want %v", inv.DueDate, due)
		}
	})

	t.Run("overdue only from sent", func(t *testing.T) {
		inv := models.Invoice{Status: models.InvoiceStatusDraft}
		if err := MarkInvoiceOverdue(&inv); err == nil {
			t.Error("overdue from draft succeeded")
		}
		inv.Status = models.InvoiceStatusSent
		if err := MarkInvoiceOverdue(&inv); err != nil {
			t.Fatalf("overdue from sent: %v", err)
		}
	})

	t.Run("paid from sent or overdue", func(t *testing.T) {
		for _, from := range []string{models.InvoiceStatusSent, models.InvoiceStatusOverdue} {
			inv := models.Invoice{Status: from}
			if err := MarkInvoicePaid(&inv); err != nil {
				t.Fatalf("paid from %s: %v", from, err)
			}
			if inv.PaymentStatus != models.PaymentStatusPaid {
				t.Errorf("payment status = %s, want PAID", inv.PaymentStatus)
			}
		}
		inv := models.Invoice{Status: models.InvoiceStatusCancelled}
		if err := MarkInvoicePaid(&inv); err == nil {
			t.Error("paid from cancelled succeeded")
		}
	})

	t.Run("terminal states reject every action", func(t *testing.T) {
		for _, status := range []string{models.InvoiceStatusPaid, models.InvoiceStatusCancelled} {
			inv := models.Invoice{Status: status}
			if err := SendInvoice(&inv, now); err == nil {
				t.Errorf("send from %s succeeded", status)
			}
			if err := CancelInvoice(&inv, now); err == nil {
				t.Errorf("cancel from %s succeeded", status)
			}
			if inv.Status != status {
				t.Errorf("failed action mutated status from %s to %s", status, inv.Status)
			}
		}
	})
}

func TestEnsureInvoiceMutable(t *testing.T) {
	for _, status := range []string{models.InvoiceStatusDraft, models.InvoiceStatusSent, models.InvoiceStatusOverdue} {
		inv := models.Invoice{Status: status}
		if err := EnsureInvoiceMutable(&inv); err != nil {
			t.Errorf("writes rejected for %s: %v", status, err)
		}
	}
	for _, status := range []string{models.InvoiceStatusPaid, models.InvoiceStatusCancelled} {
		inv := models.Invoice{InvoiceNumber: "FV-1", Status: status}
		if err := EnsureInvoiceMutable(&inv); err == nil {
			t.Errorf("writes allowed for %s", status)
		}
	}
}

func TestApplyPayment(t *testing.T) {
	mk := func(total string, paid string) models.Invoice {
		return models.Invoice{
			Status:        models.InvoiceStatusSent,
			PaymentStatus: models.PaymentStatusUnpaid,
			Total:         decimal.RequireFromString(total),
			PaidTotal:     decimal.RequireFromString(paid),
		}
	}

	t.Run("partial payment", func(t *testing.T) {
		inv := mk("238", "0")
		if err := ApplyPayment(&inv, decimal.NewFromInt(100)); err != nil {
			t.Fatalf("ApplyPayment: %v", err)
		}
		if inv.PaymentStatus != models.PaymentStatusPartiallyPaid {
			t.Errorf("payment status = %s, want PARTIALLY_PAID", inv.PaymentStatus)
		}
		if inv.Status != models.InvoiceStatusSent {
			t.Errorf("status = %s, want SENT still", inv.Status)
		}
	})

	t.Run("covering payment settles the invoice", func(t *testing.T) {
		inv := mk("238", "100")
		if err := ApplyPayment(&inv, decimal.NewFromInt(138)); err != nil {
			t.Fatalf("ApplyPayment: %v", err)
		}
		if inv.Status != models.InvoiceStatusPaid {
			t.Errorf("status = %s, want PAID", inv.Status)
		}
		if inv.PaymentStatus != models.PaymentStatusPaid {
			t.Errorf("payment status = %s, want PAID", inv.PaymentStatus)
		}
	})

	t.Run("negative amount rejected", func(t *testing.T) {
		inv := mk("238", "0")
		if err := ApplyPayment(&inv, decimal.NewFromInt(-5)); err == nil {
			t.Error("negative payment accepted")
		}
	})
}
