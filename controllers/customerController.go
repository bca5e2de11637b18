package controllers

import (
	"github.com/DanielEsLoH/StockFlow-sub011/database"
	"github.com/DanielEsLoH/StockFlow-sub011/middlewares"
	"github.com/DanielEsLoH/StockFlow-sub011/models"
	"github.com/DanielEsLoH/StockFlow-sub011/utils"

	"github.com/gofiber/fiber/v2"
)

type CreateCustomerDTO struct {
	Name         string `json:"name" validate:"required"`
	Document     string `json:"document" validate:"required"`
	DocumentType string `json:"document_type" validate:"omitempty,oneof=NIT CC CE"`
	Email        string `json:"email" validate:"required,email"`
	Phone        string `json:"phone"`
	Address      string `json:"address"`
	City         string `json:"city"`
	Notes        string `json:"notes"`
}

type UpdateCustomerDTO struct {
	Name    *string `json:"name"`
	Email   *string `json:"email" validate:"omitempty,email"`
	Phone   *string `json:"phone"`
	Address *string `json:"address"`
	City    *string `json:"city"`
	Notes   *string `json:"notes"`
}

func CreateCustomer(c *fiber.Ctx) error {
	var dto CreateCustomerDTO
	if err := middlewares.BindAndValidate(c, &dto); err != nil {
		return err
	}
	utils.NormalizeDTO(&dto)

	db, err := database.GetTenantDB(c)
	if err != nil {
		return fiber.NewError(fiber.StatusUnauthorized, err.Error())
	}

	docType := dto.DocumentType
	if docType == "" {
		docType = "NIT"
	}
	customer := models.Customer{
		Name:         dto.Name,
		Document:     dto.Document,
		DocumentType: docType,
		Email:        dto.Email,
		Phone:        dto.Phone,
		Address:      dto.Address,
		City:         dto.City,
		Notes:        dto.Notes,
		Active:       true,
	}
	if err := db.Create(&customer).Error; err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "could not create customer")
	}
	return c.Status(fiber.StatusCreated).JSON(customer)
}

func GetCustomers(c *fiber.Ctx) error {
	db, err := database.GetTenantDB(c)
	if err != nil {
		return fiber.NewError(fiber.StatusUnauthorized, err.Error())
	}

	var customers []models.Customer
	if err := db.Where("active = ?", true).Order("name").Find(&customers).Error; err != nil {
		return err
	}
	return c.JSON(fiber.Map{"customers": customers})
}

func GetCustomer(c *fiber.Ctx) error {
	db, err := database.GetTenantDB(c)
	if err != nil {
		return fiber.NewError(fiber.StatusUnauthorized, err.Error())
	}

	var customer models.Customer
	if err := db.First(&customer, "id = ?", c.Params("id")).Error; err != nil {
		return err
	}
	return c.JSON(customer)
}

func UpdateCustomer(c *fiber.Ctx) error {
	var dto UpdateCustomerDTO
	if err := middlewares.BindAndValidate(c, &dto); err != nil {
		return err
	}
	utils.NormalizePtrDTO(&dto)

	db, err := database.GetTenantDB(c)
	if err != nil {
		return fiber.NewError(fiber.StatusUnauthorized, err.Error())
	}

	var customer models.Customer
	if err := db.First(&customer, "id = ?", c.Params("id")).Error; err != nil {
		return err
	}

	updates := utils.UpdatesFromPtrDTO(&dto, nil)
	if len(updates) > 0 {
		if err := db.Model(&customer).Updates(updates).Error; err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "could not update customer")
		}
	}
	return c.JSON(customer)
}
