package controllers

import (
	"errors"
	"fmt"
	"net/mail"
	"regexp"
	"strings"
	"time"

	"github.com/DanielEsLoH/StockFlow-sub011/database"
	"github.com/DanielEsLoH/StockFlow-sub011/middlewares"
	"github.com/DanielEsLoH/StockFlow-sub011/models"
	"github.com/DanielEsLoH/StockFlow-sub011/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type RegisterDTO struct {
	FirstName       string `json:"first_name" validate:"required"`
	LastName        string `json:"last_name" validate:"required"`
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required,min=8"`
	PasswordConfirm string `json:"password_confirm" validate:"required"`
	CompanyName     string `json:"company_name" validate:"required"`
	NIT             string `json:"nit" validate:"required"`
	Address         string `json:"address" validate:"required"`
	City            string `json:"city" validate:"required"`
	Country         string `json:"country"`
	Phone           string `json:"phone"`
}

// Register creates the user, the company, and the company's tenant schema.
func Register(c *fiber.Ctx) error {
	var dto RegisterDTO
	if err := middlewares.BindAndValidate(c, &dto); err != nil {
		return err
	}
	utils.NormalizeDTO(&dto)

	if dto.Password != dto.PasswordConfirm {
		return fiber.NewError(fiber.StatusBadRequest, "passwords do not match")
	}

	var existing models.User
	err := database.DB.Where("email = ?", dto.Email).First(&existing).Error
	if err == nil {
		return fiber.NewError(fiber.StatusBadRequest, "email already exists")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	schemaName, err := tenantSchemaName(dto.CompanyName)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	var company models.Company
	txErr := database.DB.Transaction(func(tx *gorm.DB) error {
		user := models.User{
			FirstName:  dto.FirstName,
			LastName:   dto.LastName,
			Email:      dto.Email,
			SchemaName: schemaName,
		}
		if err := user.SetPassword(dto.Password); err != nil {
			return err
		}
		if err := tx.Create(&user).Error; err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "could not create user")
		}

		country := dto.Country
		if country == "" {
			country = "Colombia"
		}
		company = models.Company{
			CompanyName: dto.CompanyName,
			NIT:         dto.NIT,
			Address:     dto.Address,
			City:        dto.City,
			Country:     country,
			Phone:       dto.Phone,
			Email:       dto.Email,
			UserId:      user.Id,
			SchemaName:  schemaName,
			Active:      true,
		}
		if err := tx.Create(&company).Error; err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "could not create company")
		}

		if err := tx.Exec("CREATE SCHEMA IF NOT EXISTS " + schemaName).Error; err != nil {
			return fmt.Errorf("schema creation failed: %w", err)
		}
		return nil
	})
	if txErr != nil {
		return txErr
	}

	if err := database.MigrateTenantSchema(schemaName); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "could not migrate tenant schema")
	}

	database.DB.Preload("User").First(&company, "id = ?", company.Id)
	return c.JSON(company)
}

// tenantSchemaName sanitizes the company name into a safe Postgres schema
// identifier (only letters, digits, underscores; must not start with a digit).
func tenantSchemaName(companyName string) (string, error) {
	safe := strings.ToLower(strings.TrimSpace(companyName))
	safe = strings.ReplaceAll(safe, " ", "_")
	valid := regexp.MustCompile(`^[a-z_][a-z0-9_]*$`)
	if !valid.MatchString(safe) {
		return "", fmt.Errorf("invalid schema name after sanitization: %s", safe)
	}
	return safe, nil
}

func Login(c *fiber.Ctx) error {
	var data map[string]string
	if err := c.BodyParser(&data); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if _, err := mail.ParseAddress(data["email"]); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid email format")
	}

	var user models.User
	err := database.DB.Table("public.users").Where("email = ?", data["email"]).First(&user).Error
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid credentials")
	}

	if err := user.ComparePassword(data["password"]); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid credentials")
	}

	token, err := middlewares.GenerateJWT(user.Id, user.SchemaName)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "could not issue token")
	}

	// Keep the tenant schema current with the latest model shape.
	if err := database.MigrateTenantSchema(user.SchemaName); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "could not migrate tenant schema")
	}

	return c.JSON(fiber.Map{
		"token":  token,
		"schema": user.SchemaName,
		"user": fiber.Map{
			"id":    user.Id,
			"name":  user.FirstName + " " + user.LastName,
			"email": user.Email,
		},
	})
}

func Logout(c *fiber.Ctx) error {
	cookie := fiber.Cookie{
		Name:     "jwt",
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
	}
	c.Cookie(&cookie)
	return c.JSON(fiber.Map{
		"message": "success",
	})
}
