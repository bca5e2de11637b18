package controllers

import (
	"github.com/DanielEsLoH/StockFlow-sub011/database"
	"github.com/DanielEsLoH/StockFlow-sub011/middlewares"
	"github.com/DanielEsLoH/StockFlow-sub011/models"
	"github.com/DanielEsLoH/StockFlow-sub011/utils"

	"github.com/gofiber/fiber/v2"
)

type CreateWarehouseDTO struct {
	Code    string `json:"code" validate:"required"`
	Name    string `json:"name" validate:"required"`
	Address string `json:"address"`
	City    string `json:"city"`
}

type UpdateWarehouseDTO struct {
	Name    *string `json:"name"`
	Address *string `json:"address"`
	City    *string `json:"city"`
}

func CreateWarehouse(c *fiber.Ctx) error {
	var dto CreateWarehouseDTO
	if err := middlewares.BindAndValidate(c, &dto); err != nil {
		return err
	}
	utils.NormalizeDTO(&dto)

	db, err := database.GetTenantDB(c)
	if err != nil {
		return fiber.NewError(fiber.StatusUnauthorized, err.Error())
	}

	warehouse := models.Warehouse{
		Code:    dto.Code,
		Name:    dto.Name,
		Address: dto.Address,
		City:    dto.City,
		Active:  true,
	}
	if err := db.Create(&warehouse).Error; err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "could not create warehouse")
	}
	return c.Status(fiber.StatusCreated).JSON(warehouse)
}

func GetWarehouses(c *fiber.Ctx) error {
	db, err := database.GetTenantDB(c)
	if err != nil {
		return fiber.NewError(fiber.StatusUnauthorized, err.Error())
	}

	var warehouses []models.Warehouse
	if err := db.Where("active = ?", true).Order("code").Find(&warehouses).Error; err != nil {
		return err
	}
	return c.JSON(fiber.Map{"warehouses": warehouses})
}

func UpdateWarehouse(c *fiber.Ctx) error {
	var dto UpdateWarehouseDTO
	if err := middlewares.BindAndValidate(c, &dto); err != nil {
		return err
	}
	utils.NormalizePtrDTO(&dto)

	db, err := database.GetTenantDB(c)
	if err != nil {
		return fiber.NewError(fiber.StatusUnauthorized, err.Error())
	}

	var warehouse models.Warehouse
	if err := db.First(&warehouse, "id = ?", c.Params("id")).Error; err != nil {
		return err
	}

	updates := utils.UpdatesFromPtrDTO(&dto, nil)
	if len(updates) > 0 {
		if err := db.Model(&warehouse).Updates(updates).Error; err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "could not update warehouse")
		}
	}
	return c.JSON(warehouse)
}

func DeleteWarehouse(c *fiber.Ctx) error {
	db, err := database.GetTenantDB(c)
	if err != nil {
		return fiber.NewError(fiber.StatusUnauthorized, err.Error())
	}

	var warehouse models.Warehouse
	if err := db.First(&warehouse, "id = ?", c.Params("id")).Error; err != nil {
		return err
	}
	if err := db.Model(&warehouse).Update("active", false).Error; err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "could not disable warehouse")
	}
	return c.JSON(fiber.Map{"message": "success"})
}
