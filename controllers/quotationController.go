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

type CreateQuotationDTO struct {
	QuotationNumber string        `json:"quotation_number"`
	CustomerID      *uint         `json:"customer_id"`
	ValidUntil      *time.Time    `json:"valid_until"`
	Notes           string        `json:"notes"`
	Items           []LineItemDTO `json:"items" validate:"required,min=1,dive"`
}

type UpdateQuotationDTO struct {
	CustomerID *uint          `json:"customer_id"`
	ValidUntil *time.Time     `json:"valid_until"`
	Notes      *string        `json:"notes"`
	Items      *[]LineItemDTO `json:"items" validate:"omitempty,min=1,dive"`
}

func buildQuotationItems(lines []LineItemDTO) ([]models.QuotationItem, decimal.Decimal, decimal.Decimal) {
	items := make([]models.QuotationItem, len(lines))
	var subtotal, taxTotal decimal.Decimal
	for i, line := range lines {
		net, tax, gross := services.ComputeLineTotals(line.Quantity, line.UnitPrice, line.Discount, line.TaxRate)
		items[i] = models.QuotationItem{
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

func CreateQuotation(c *fiber.Ctx) error {
	var dto CreateQuotationDTO
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

	items, subtotal, taxTotal := buildQuotationItems(dto.Items)

	number := dto.QuotationNumber
	if number == "" {
		number = "COT-" + time.Now().Format("20060102") + "-" + utils.RandomRef(6)
	}

	quotation := models.Quotation{
		QuotationNumber: number,
		CustomerID:      dto.CustomerID,
		Items:           items,
		Subtotal:        subtotal,
		TaxTotal:        taxTotal,
		Total:           subtotal.Add(taxTotal),
		Status:          models.QuotationStatusDraft,
		ValidUntil:      dto.ValidUntil,
		Notes:           dto.Notes,
	}
	if err := db.Create(&quotation).Error; err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "could not create quotation")
	}
	return c.Status(fiber.StatusCreated).JSON(quotation)
}

func GetQuotations(c *fiber.Ctx) error {
	db, err := database.GetTenantDB(c)
	if err != nil {
		return fiber.NewError(fiber.StatusUnauthorized, err.Error())
	}

	q := db.Preload("Items").Preload("Customer")
	if status := c.Query("status"); status != "" {
		q = q.Where("status = ?", status)
	}

	var quotations []models.Quotation
	if err := q.Order("created_at DESC").Find(&quotations).Error; err != nil {
		return err
	}
	return c.JSON(fiber.Map{"quotations": quotations})
}

func GetQuotation(c *fiber.Ctx) error {
	db, err := database.GetTenantDB(c)
	if err != nil {
		return fiber.NewError(fiber.StatusUnauthorized, err.Error())
	}

	var quotation models.Quotation
	if err := db.Preload("Items").Preload("Customer").
		First(&quotation, "id = ?", c.Params("id")).Error; err != nil {
		return err
	}
	return c.JSON(quotation)
}

// UpdateQuotation mutates fields and items; legal only while DRAFT.
func UpdateQuotation(c *fiber.Ctx) error {
	var dto UpdateQuotationDTO
	if err := middlewares.BindAndValidate(c, &dto); err != nil {
		return err
	}

	db, err := database.GetTenantDB(c)
	if err != nil {
		return fiber.NewError(fiber.StatusUnauthorized, err.Error())
	}

	var quotation models.Quotation
	if err := db.Preload("Items").First(&quotation, "id = ?", c.Params("id")).Error; err != nil {
		return err
	}
	if err := services.EnsureQuotationEditable(&quotation); err != nil {
		return err
	}

	if dto.CustomerID != nil {
		quotation.CustomerID = dto.CustomerID
	}
	if dto.ValidUntil != nil {
		quotation.ValidUntil = dto.ValidUntil
	}
	if dto.Notes != nil {
		quotation.Notes = *dto.Notes
	}
	if dto.Items != nil {
		if err := db.Where("quotation_id = ?", quotation.ID).Delete(&models.QuotationItem{}).Error; err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "could not replace quotation items")
		}
		items, subtotal, taxTotal := buildQuotationItems(*dto.Items)
		quotation.Items = items
		quotation.Subtotal = subtotal
		quotation.TaxTotal = taxTotal
		quotation.Total = subtotal.Add(taxTotal)
	}

	if err := db.Save(&quotation).Error; err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "could not update quotation")
	}
	return c.JSON(quotation)
}

// DeleteQuotation removes a quotation; legal only while DRAFT.
func DeleteQuotation(c *fiber.Ctx) error {
	db, err := database.GetTenantDB(c)
	if err != nil {
		return fiber.NewError(fiber.StatusUnauthorized, err.Error())
	}

	var quotation models.Quotation
	if err := db.First(&quotation, "id = ?", c.Params("id")).Error; err != nil {
		return err
	}
	if err := services.EnsureQuotationDeletable(&quotation); err != nil {
		return err
	}

	if err := db.Select("Items").Delete(&quotation).Error; err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "could not delete quotation")
	}
	return c.JSON(fiber.Map{"message": "success"})
}

// quotationAction loads, applies a status transition, and persists.
func quotationAction(c *fiber.Ctx, apply func(*models.Quotation) error) error {
	db, err := database.GetTenantDB(c)
	if err != nil {
		return fiber.NewError(fiber.StatusUnauthorized, err.Error())
	}

	var quotation models.Quotation
	if err := db.Preload("Items").First(&quotation, "id = ?", c.Params("id")).Error; err != nil {
		return err
	}
	if err := apply(&quotation); err != nil {
		return err
	}
	if err := db.Save(&quotation).Error; err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "could not update quotation")
	}
	return c.JSON(quotation)
}

func SendQuotation(c *fiber.Ctx) error {
	db, err := database.GetTenantDB(c)
	if err != nil {
		return fiber.NewError(fiber.StatusUnauthorized, err.Error())
	}

	var quotation models.Quotation
	if err := db.Preload("Items").First(&quotation, "id = ?", c.Params("id")).Error; err != nil {
		return err
	}
	if err := services.SendQuotation(db, &quotation, time.Now()); err != nil {
		return err
	}
	return c.JSON(quotation)
}

func AcceptQuotation(c *fiber.Ctx) error {
	return quotationAction(c, services.AcceptQuotation)
}

func RejectQuotation(c *fiber.Ctx) error {
	return quotationAction(c, services.RejectQuotation)
}

func ExpireQuotation(c *fiber.Ctx) error {
	return quotationAction(c, services.ExpireQuotation)
}

// ConvertQuotation turns an accepted quotation into an invoice. Runs inside
// the request's tenant transaction: if the invoice insert fails, the
// quotation status never changes.
func ConvertQuotation(c *fiber.Ctx) error {
	db, err := database.GetTenantDB(c)
	if err != nil {
		return fiber.NewError(fiber.StatusUnauthorized, err.Error())
	}

	var quotation models.Quotation
	if err := db.Preload("Items").First(&quotation, "id = ?", c.Params("id")).Error; err != nil {
		return err
	}

	invoice, err := services.ConvertQuotation(db, &quotation, time.Now())
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"quotation": quotation,
		"invoice":   invoice,
	})
}

func GetQuotationVersions(c *fiber.Ctx) error {
	db, err := database.GetTenantDB(c)
	if err != nil {
		return fiber.NewError(fiber.StatusUnauthorized, err.Error())
	}

	var versions []models.QuotationVersion
	if err := db.Where("quotation_id = ?", c.Params("id")).Order("version_no").Find(&versions).Error; err != nil {
		return err
	}
	return c.JSON(fiber.Map{"versions": versions})
}
