package services

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/DanielEsLoH/StockFlow-sub011/models"
	"github.com/DanielEsLoH/StockFlow-sub011/utils"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	ActionSendQuotation Action = "send"
	ActionAccept        Action = "accept"
	ActionReject        Action = "reject"
	ActionExpire        Action = "expire"
	ActionConvert       Action = "convert"
	ActionEdit          Action = "edit"
	ActionDelete        Action = "delete"
)

// QuotationMachine: DRAFT → SENT → {ACCEPTED, REJECTED, EXPIRED};
// ACCEPTED → CONVERTED. Edits and deletes are only legal while DRAFT.
// The edit/delete "transitions" keep the document in DRAFT; they exist so
// the same guard-and-message machinery covers mutation too.
var QuotationMachine = NewMachine("quotations").
	Permit(ActionSendQuotation, "sent", models.QuotationStatusSent, models.QuotationStatusDraft).
	Permit(ActionAccept, "accepted", models.QuotationStatusAccepted, models.QuotationStatusSent).
	Permit(ActionReject, "rejected", models.QuotationStatusRejected, models.QuotationStatusSent).
	Permit(ActionExpire, "expired", models.QuotationStatusExpired, models.QuotationStatusSent).
	Permit(ActionConvert, "converted", models.QuotationStatusConverted, models.QuotationStatusAccepted).
	Permit(ActionEdit, "edited", models.QuotationStatusDraft, models.QuotationStatusDraft).
	Permit(ActionDelete, "deleted", models.QuotationStatusDraft, models.QuotationStatusDraft)

// SendQuotation marks a draft quotation as sent and snapshots it.
func SendQuotation(db *gorm.DB, q *models.Quotation, now time.Time) error {
	next, err := QuotationMachine.Apply(ActionSendQuotation, q.Status)
	if err != nil {
		return err
	}
	q.Status = next
	q.SentAt = &now
	if err := db.Save(q).Error; err != nil {
		return fmt.Errorf("quotation update failed: %w", err)
	}
	return snapshotQuotation(db, q, "sent")
}

func AcceptQuotation(q *models.Quotation) error {
	next, err := QuotationMachine.Apply(ActionAccept, q.Status)
	if err != nil {
		return err
	}
	q.Status = next
	return nil
}

func RejectQuotation(q *models.Quotation) error {
	next, err := QuotationMachine.Apply(ActionReject, q.Status)
	if err != nil {
		return err
	}
	q.Status = next
	return nil
}

func ExpireQuotation(q *models.Quotation) error {
	next, err := QuotationMachine.Apply(ActionExpire, q.Status)
	if err != nil {
		return err
	}
	q.Status = next
	return nil
}

// EnsureQuotationEditable guards field mutation and item rewrites.
func EnsureQuotationEditable(q *models.Quotation) error {
	_, err := QuotationMachine.Apply(ActionEdit, q.Status)
	return err
}

// EnsureQuotationDeletable guards deletion.
func EnsureQuotationDeletable(q *models.Quotation) error {
	_, err := QuotationMachine.Apply(ActionDelete, q.Status)
	return err
}

// BuildInvoiceFromQuotation maps an accepted quotation into a new draft-free
// invoice: every line carries over 1:1 (product, quantity, unit price, tax
// rate, discount, tax category), the customer and notes come along, and the
// due date is now + 30 days regardless of the quotation's ValidUntil.
// Pure mapping; persistence is ConvertQuotation's job.
func BuildInvoiceFromQuotation(q *models.Quotation, now time.Time) models.Invoice {
	due := now.AddDate(0, 0, 30)

	items := make([]models.InvoiceItem, len(q.Items))
	for i, line := range q.Items {
		net, tax, gross := ComputeLineTotals(line.Quantity, line.UnitPrice, line.Discount, line.TaxRate)
		items[i] = models.InvoiceItem{
			ProductID:   line.ProductID,
			Description: line.Description,
			Quantity:    line.Quantity,
			UnitPrice:   line.UnitPrice,
			TaxRate:     line.TaxRate,
			Discount:    line.Discount,
			TaxCategory: line.TaxCategory,
			NetPrice:    net,
			TaxAmount:   tax,
			GrossPrice:  gross,
		}
	}

	inv := models.Invoice{
		InvoiceNumber: "FV-" + now.Format("20060102") + "-" + utils.RandomRef(6),
		CustomerID:    q.CustomerID,
		Items:         items,
		Status:        models.InvoiceStatusSent,
		PaymentStatus: models.PaymentStatusUnpaid,
		IssuedAt:      &now,
		DueDate:       &due,
		Notes:         q.Notes,
	}
	for _, it := range items {
		inv.Subtotal = inv.Subtotal.Add(it.NetPrice)
		inv.TaxTotal = inv.TaxTotal.Add(it.TaxAmount)
	}
	inv.Total = inv.Subtotal.Add(inv.TaxTotal)
	return inv
}

// ConvertQuotation turns an ACCEPTED quotation into an invoice inside the
// caller's tenant transaction. The quotation ends CONVERTED with the new
// invoice id stamped; a jsonb snapshot freezes what was converted. If the
// invoice insert fails, the status update is never reached and the
// transaction rolls back as a whole.
func ConvertQuotation(db *gorm.DB, q *models.Quotation, now time.Time) (*models.Invoice, error) {
	next, err := QuotationMachine.Apply(ActionConvert, q.Status)
	if err != nil {
		return nil, err
	}

	inv := BuildInvoiceFromQuotation(q, now)
	if err := db.Create(&inv).Error; err != nil {
		return nil, fmt.Errorf("invoice creation failed: %w", err)
	}

	q.Status = next
	q.ConvertedToInvoiceID = &inv.ID
	q.ConvertedAt = &now
	if err := db.Save(q).Error; err != nil {
		return nil, fmt.Errorf("quotation update failed: %w", err)
	}

	if err := snapshotQuotation(db, q, "converted"); err != nil {
		return nil, err
	}
	return &inv, nil
}

// snapshotQuotation appends an immutable jsonb version of the quotation.
func snapshotQuotation(db *gorm.DB, q *models.Quotation, kind string) error {
	blob, err := json.Marshal(q)
	if err != nil {
		return fmt.Errorf("quotation snapshot marshal failed: %w", err)
	}

	var last int
	row := db.Model(&models.QuotationVersion{}).
		Where("quotation_id = ?", q.ID).
		Select("COALESCE(MAX(version_no), 0)").
		Row()
	if err := row.Scan(&last); err != nil {
		return fmt.Errorf("quotation version lookup failed: %w", err)
	}

	version := models.QuotationVersion{
		QuotationID: q.ID,
		VersionNo:   last + 1,
		Kind:        kind,
		Snapshot:    datatypes.JSON(blob),
	}
	if err := db.Create(&version).Error; err != nil {
		return fmt.Errorf("quotation snapshot insert failed: %w", err)
	}
	return nil
}
