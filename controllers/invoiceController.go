package controllers

import (
	"time"

	"github.com/DanielEsLoH/StockFlow-sub011/database"
	"github.com/DanielEsLoH/StockFlow-sub011/middlewares"
	"github.com/DanielEsLoH/StockFlow-sub011/models"
	"github.com/DanielEsLoH/StockFlow-sub011/services"
	"github.com/DanielEsLoH/StockFlow-sub011/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

// LineItemDTO is shared by invoices and quotations: the same line shape
// flows through both documents and carries over 1:1 on conversion.
type LineItemDTO struct {
	ProductID   string          `json:"product_id" validate:"required"`
	Description string          `json:"description"`
	Quantity    int             `json:"quantity" validate:"required,min=1"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	TaxRate     decimal.Decimal `json:"tax_rate"`
	Discount    decimal.Decimal `json:"discount"`
	TaxCategory string          `json:"tax_category"`
}

type CreateInvoiceDTO struct {
	InvoiceNumber string        `json:"invoice_number"`
	CustomerID    *uint         `json:"customer_id"`
	DueDate       *time.Time    `json:"due_date"`
	Notes         string        `json:"notes"`
	Items         []LineItemDTO `json:"items" validate:"required,min=1,dive"`
}

type UpdateInvoiceDTO struct {
	CustomerID *uint          `json:"customer_id"`
	DueDate    *time.Time     `json:"due_date"`
	Notes      *string        `json:"notes"`
	Items      *[]LineItemDTO `json:"items" validate:"omitempty,min=1,dive"`
}

type CreatePaymentDTO struct {
	Amount    decimal.Decimal `json:"amount"`
	Method    string          `json:"method" validate:"required"`
	Reference string          `json:"reference"`
	Note      string          `json:"note"`
	PaidAt    *time.Time      `json:"paid_at"`
}

func buildInvoiceItems(lines []LineItemDTO) ([]models.InvoiceItem, decimal.Decimal, decimal.Decimal) {
	items := make([]models.InvoiceItem, len(lines))
	var subtotal, taxTotal decimal.Decimal
	for i, line := range lines {
		net, tax, gross := services.ComputeLineTotals(line.Quantity, line.UnitPrice, line.Discount, line.TaxRate)
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
		subtotal = subtotal.Add(net)
		taxTotal = taxTotal.Add(tax)
	}
	return items, subtotal, taxTotal
}

func CreateInvoice(c *fiber.Ctx) error {
	var dto CreateInvoiceDTO
	if err := middlewares.BindAndValidate(c, &dto); err != nil {
		return err
	}

	db, err := database.GetTenantDB(c)
	if err != nil {
		return fiber.NewError(fiber.StatusUnauthorized, err.Error())
	}

	if dto.CustomerID != nil {
		var customer models.Customer
		if err := db.First(&customer, "id = ?", *dto.CustomerID).Error; err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "customer not found")
		}
	}

	items, subtotal, taxTotal := buildInvoiceItems(dto.Items)

	number := dto.InvoiceNumber
	if number == "" {
		number = "FV-" + time.Now().Format("20060102") + "-" + utils.RandomRef(6)
	}

	invoice := models.Invoice{
		InvoiceNumber: number,
		CustomerID:    dto.CustomerID,
		Items:         items,
		Subtotal:      subtotal,
		TaxTotal:      taxTotal,
		Total:         subtotal.Add(taxTotal),
		Status:        models.InvoiceStatusDraft,
		PaymentStatus: models.PaymentStatusUnpaid,
		DueDate:       dto.DueDate,
		Notes:         dto.Notes,
	}
	if err := db.Create(&invoice).Error; err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "could not create invoice")
	}
	return c.Status(fiber.StatusCreated).JSON(invoice)
}

func GetInvoices(c *fiber.Ctx) error {
	db, err := database.GetTenantDB(c)
	if err != nil {
		return fiber.NewError(fiber.StatusUnauthorized, err.Error())
	}

	q := db.Preload("Items").Preload("Customer")
	if status := c.Query("status"); status != "" {
		q = q.Where("status = ?", status)
	}

	var invoices []models.Invoice
	if err := q.Order("created_at DESC").Find(&invoices).Error; err != nil {
		return err
	}
	return c.JSON(fiber.Map{"invoices": invoices})
}

func GetInvoice(c *fiber.Ctx) error {
	db, err := database.GetTenantDB(c)
	if err != nil {
		return fiber.NewError(fiber.StatusUnauthorized, err.Error())
	}

	var invoice models.Invoice
	if err := db.Preload("Items").Preload("Customer").Preload("Reminders").
		First(&invoice, "id = ?", c.Params("id")).Error; err != nil {
		return err
	}
	return c.JSON(invoice)
}

// UpdateInvoice rewrites header fields and (optionally) the full item set.
// Writes are rejected once the invoice is paid or cancelled.
func UpdateInvoice(c *fiber.Ctx) error {
	var dto UpdateInvoiceDTO
	if err := middlewares.BindAndValidate(c, &dto); err != nil {
		return err
	}

	db, err := database.GetTenantDB(c)
	if err != nil {
		return fiber.NewError(fiber.StatusUnauthorized, err.Error())
	}

	var invoice models.Invoice
	if err := db.Preload("Items").First(&invoice, "id = ?", c.Params("id")).Error; err != nil {
		return err
	}
	if err := services.EnsureInvoiceMutable(&invoice); err != nil {
		return err
	}

	if dto.CustomerID != nil {
		invoice.CustomerID = dto.CustomerID
	}
	if dto.DueDate != nil {
		invoice.DueDate = dto.DueDate
	}
	if dto.Notes != nil {
		invoice.Notes = *dto.Notes
	}
	if dto.Items != nil {
		if err := db.Where("invoice_id = ?", invoice.ID).Delete(&models.InvoiceItem{}).Error; err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "could not replace invoice items")
		}
		items, subtotal, taxTotal := buildInvoiceItems(*dto.Items)
		invoice.Items = items
		invoice.Subtotal = subtotal
		invoice.TaxTotal = taxTotal
		invoice.Total = subtotal.Add(taxTotal)
	}

	if err := db.Save(&invoice).Error; err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "could not update invoice")
	}
	return c.JSON(invoice)
}

// invoiceAction loads, applies a status transition, and persists.
func invoiceAction(c *fiber.Ctx, apply func(*models.Invoice) error) error {
	db, err := database.GetTenantDB(c)
	if err != nil {
		return fiber.NewError(fiber.StatusUnauthorized, err.Error())
	}

	var invoice models.Invoice
	if err := db.First(&invoice, "id = ?", c.Params("id")).Error; err != nil {
		return err
	}
	if err := apply(&invoice); err != nil {
		return err
	}
	if err := db.Save(&invoice).Error; err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "could not update invoice")
	}
	return c.JSON(invoice)
}

func SendInvoice(c *fiber.Ctx) error {
	now := time.Now()
	return invoiceAction(c, func(inv *models.Invoice) error {
		return services.SendInvoice(inv, now)
	})
}

func PayInvoice(c *fiber.Ctx) error {
	return invoiceAction(c, services.MarkInvoicePaid)
}

func MarkInvoiceOverdue(c *fiber.Ctx) error {
	return invoiceAction(c, services.MarkInvoiceOverdue)
}

func CancelInvoice(c *fiber.Ctx) error {
	now := time.Now()
	return invoiceAction(c, func(inv *models.Invoice) error {
		return services.CancelInvoice(inv, now)
	})
}

func CreatePayment(c *fiber.Ctx) error {
	var dto CreatePaymentDTO
	if err := middlewares.BindAndValidate(c, &dto); err != nil {
		return err
	}

	db, err := database.GetTenantDB(c)
	if err != nil {
		return fiber.NewError(fiber.StatusUnauthorized, err.Error())
	}

	var invoice models.Invoice
	if err := db.First(&invoice, "id = ?", c.Params("id")).Error; err != nil {
		return err
	}
	if invoice.Status == models.InvoiceStatusCancelled {
		return fiber.NewError(fiber.StatusConflict, "cancelled invoices cannot receive payments")
	}

	paidAt := time.Now()
	if dto.PaidAt != nil {
		paidAt = *dto.PaidAt
	}
	payment := models.Payment{
		InvoiceID: invoice.ID,
		Amount:    utils.RoundMoney(dto.Amount),
		Method:    dto.Method,
		Reference: dto.Reference,
		Note:      dto.Note,
		PaidAt:    paidAt,
	}
	if err := db.Create(&payment).Error; err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "could not record payment")
	}

	if err := services.ApplyPayment(&invoice, payment.Amount); err != nil {
		return err
	}
	if err := db.Save(&invoice).Error; err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "could not update invoice rollup")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"payment": payment,
		"invoice": invoice,
	})
}

func ListPayments(c *fiber.Ctx) error {
	db, err := database.GetTenantDB(c)
	if err != nil {
		return fiber.NewError(fiber.StatusUnauthorized, err.Error())
	}

	var payments []models.Payment
	if err := db.Where("invoice_id = ?", c.Params("id")).Order("paid_at").Find(&payments).Error; err != nil {
		return err
	}
	return c.JSON(fiber.Map{"payments": payments})
}
