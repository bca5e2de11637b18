package controllers

import (
	"github.com/DanielEsLoH/StockFlow-sub011/database"
	"github.com/DanielEsLoH/StockFlow-sub011/middlewares"
	"github.com/DanielEsLoH/StockFlow-sub011/models"
	"github.com/DanielEsLoH/StockFlow-sub011/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

type CreateProductDTO struct {
	SKU         string          `json:"sku" validate:"required"`
	Name        string          `json:"name" validate:"required"`
	Description string          `json:"description"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	TaxRate     decimal.Decimal `json:"tax_rate"`
	TaxCategory string          `json:"tax_category" validate:"omitempty,oneof=IVA EXENTO EXCLUIDO"`
}

type UpdateProductDTO struct {
	Name        *string          `json:"name"`
	Description *string          `json:"description"`
	UnitPrice   *decimal.Decimal `json:"unit_price"`
	TaxRate     *decimal.Decimal `json:"tax_rate"`
	TaxCategory *string          `json:"tax_category" validate:"omitempty,oneof=IVA EXENTO EXCLUIDO"`
}

// CreateProducts accepts a batch so a catalog can be loaded in one call.
func CreateProducts(c *fiber.Ctx) error {
	var dtos []CreateProductDTO
	if err := c.BodyParser(&dtos); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if len(dtos) == 0 {
		return fiber.NewError(fiber.StatusBadRequest, "empty product list")
	}
	for i := range dtos {
		if err := middlewares.ValidateStruct(&dtos[i]); err != nil {
			return err
		}
		utils.NormalizeDTO(&dtos[i])
	}

	db, err := database.GetTenantDB(c)
	if err != nil {
		return fiber.NewError(fiber.StatusUnauthorized, err.Error())
	}

	products := make([]models.Product, len(dtos))
	for i, dto := range dtos {
		category := dto.TaxCategory
		if category == "" {
			category = "IVA"
		}
		products[i] = models.Product{
			SKU:         dto.SKU,
			Name:        dto.Name,
			Description: dto.Description,
			UnitPrice:   utils.RoundMoney(dto.UnitPrice),
			TaxRate:     dto.TaxRate,
			TaxCategory: category,
			Active:      true,
		}
	}
	if err := db.Create(&products).Error; err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "could not create products")
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"products": products})
}

func GetProducts(c *fiber.Ctx) error {
	db, err := database.GetTenantDB(c)
	if err != nil {
		return fiber.NewError(fiber.StatusUnauthorized, err.Error())
	}

	var products []models.Product
	if err := db.Where("active = ?", true).Order("name").Find(&products).Error; err != nil {
		return err
	}
	return c.JSON(fiber.Map{"products": products})
}

func UpdateProduct(c *fiber.Ctx) error {
	var dto UpdateProductDTO
	if err := middlewares.BindAndValidate(c, &dto); err != nil {
		return err
	}
	utils.NormalizePtrDTO(&dto)

	db, err := database.GetTenantDB(c)
	if err != nil {
		return fiber.NewError(fiber.StatusUnauthorized, err.Error())
	}

	var product models.Product
	if err := db.First(&product, "id = ?", c.Params("id")).Error; err != nil {
		return err
	}

	updates := utils.UpdatesFromPtrDTO(&dto, nil)
	if len(updates) > 0 {
		if err := db.Model(&product).Updates(updates).Error; err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "could not update product")
		}
	}
	return c.JSON(product)
}

// DeleteProduct soft-disables; invoice lines keep their FK.
func DeleteProduct(c *fiber.Ctx) error {
	db, err := database.GetTenantDB(c)
	if err != nil {
		return fiber.NewError(fiber.StatusUnauthorized, err.Error())
	}

	var product models.Product
	if err := db.First(&product, "id = ?", c.Params("id")).Error; err != nil {
		return err
	}
	if err := db.Model(&product).Update("active", false).Error; err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "could not disable product")
	}
	return c.JSON(fiber.Map{"message": "success"})
}
