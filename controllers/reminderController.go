package controllers

import (
	"time"

	"github.com/DanielEsLoH/StockFlow-sub011/database"
	"github.com/DanielEsLoH/StockFlow-sub011/middlewares"
	"github.com/DanielEsLoH/StockFlow-sub011/models"
	"github.com/DanielEsLoH/StockFlow-sub011/services"
	"github.com/DanielEsLoH/StockFlow-sub011/utils"

	"github.com/gofiber/fiber/v2"
)

type CreateReminderDTO struct {
	InvoiceID   uint      `json:"invoice_id" validate:"required"`
	Channel     string    `json:"channel" validate:"omitempty,oneof=EMAIL SMS WHATSAPP"`
	ScheduledAt time.Time `json:"scheduled_at" validate:"required"`
	Message     string    `json:"message" validate:"required"`
	Notes       string    `json:"notes"`
}

type FailReminderDTO struct {
	Notes string `json:"notes"`
}

// CreateReminder records a manual contact attempt against an invoice.
func CreateReminder(c *fiber.Ctx) error {
	var dto CreateReminderDTO
	if err := middlewares.BindAndValidate(c, &dto); err != nil {
		return err
	}

	db, err := database.GetTenantDB(c)
	if err != nil {
		return fiber.NewError(fiber.StatusUnauthorized, err.Error())
	}

	var invoice models.Invoice
	if err := db.First(&invoice, "id = ?", dto.InvoiceID).Error; err != nil {
		return err
	}

	channel := dto.Channel
	if channel == "" {
		channel = models.ReminderChannelEmail
	}
	reminder := models.CollectionReminder{
		InvoiceID:   invoice.ID,
		CustomerID:  invoice.CustomerID,
		Type:        models.ReminderTypeManual,
		Channel:     channel,
		ScheduledAt: dto.ScheduledAt,
		ScheduledOn: utils.BeginningOfDay(dto.ScheduledAt),
		Status:      models.ReminderStatusPending,
		Message:     dto.Message,
		Notes:       dto.Notes,
	}
	if err := db.Create(&reminder).Error; err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "could not create reminder")
	}
	return c.Status(fiber.StatusCreated).JSON(reminder)
}

func GetReminders(c *fiber.Ctx) error {
	db, err := database.GetTenantDB(c)
	if err != nil {
		return fiber.NewError(fiber.StatusUnauthorized, err.Error())
	}

	q := db.Preload("Customer")
	if status := c.Query("status"); status != "" {
		q = q.Where("status = ?", status)
	}
	if invoiceID := c.Query("invoice_id"); invoiceID != "" {
		q = q.Where("invoice_id = ?", invoiceID)
	}

	var reminders []models.CollectionReminder
	if err := q.Order("scheduled_at").Find(&reminders).Error; err != nil {
		return err
	}
	return c.JSON(fiber.Map{"reminders": reminders})
}

func GetReminder(c *fiber.Ctx) error {
	db, err := database.GetTenantDB(c)
	if err != nil {
		return fiber.NewError(fiber.StatusUnauthorized, err.Error())
	}

	var reminder models.CollectionReminder
	if err := db.Preload("Customer").First(&reminder, "id = ?", c.Params("id")).Error; err != nil {
		return err
	}
	return c.JSON(reminder)
}

// GenerateReminders runs the scheduler for the current tenant on demand.
// Safe to re-run: the dedup rule makes repeated calls a no-op.
func GenerateReminders(c *fiber.Ctx) error {
	db, err := database.GetTenantDB(c)
	if err != nil {
		return fiber.NewError(fiber.StatusUnauthorized, err.Error())
	}

	scheduler := services.NewReminderScheduler(nil)
	count, err := scheduler.GenerateForTenant(db, time.Now())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"generated": count})
}

func CancelReminder(c *fiber.Ctx) error {
	db, err := database.GetTenantDB(c)
	if err != nil {
		return fiber.NewError(fiber.StatusUnauthorized, err.Error())
	}

	var reminder models.CollectionReminder
	if err := db.First(&reminder, "id = ?", c.Params("id")).Error; err != nil {
		return err
	}
	if err := services.CancelReminder(&reminder); err != nil {
		return err
	}
	if err := db.Save(&reminder).Error; err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "could not update reminder")
	}
	return c.JSON(reminder)
}

// FailReminder lets an operator record an out-of-band delivery failure.
func FailReminder(c *fiber.Ctx) error {
	var dto FailReminderDTO
	if err := middlewares.BindAndValidate(c, &dto); err != nil {
		return err
	}

	db, err := database.GetTenantDB(c)
	if err != nil {
		return fiber.NewError(fiber.StatusUnauthorized, err.Error())
	}

	var reminder models.CollectionReminder
	if err := db.First(&reminder, "id = ?", c.Params("id")).Error; err != nil {
		return err
	}
	if err := services.MarkReminderFailed(&reminder, dto.Notes); err != nil {
		return err
	}
	if err := db.Save(&reminder).Error; err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "could not update reminder")
	}
	return c.JSON(reminder)
}

// SendReminder dispatches a pending reminder over its channel and records
// the outcome: SENT on success, FAILED (with the delivery error in notes)
// otherwise. Terminal either way; a failed reminder is never retried.
func SendReminder(c *fiber.Ctx) error {
	db, err := database.GetTenantDB(c)
	if err != nil {
		return fiber.NewError(fiber.StatusUnauthorized, err.Error())
	}

	var reminder models.CollectionReminder
	if err := db.Preload("Customer").First(&reminder, "id = ?", c.Params("id")).Error; err != nil {
		return err
	}

	// Guard before attempting delivery so terminal reminders fail fast.
	if _, err := services.ReminderMachine.Apply(services.ActionMarkSent, reminder.Status); err != nil {
		return err
	}

	notifier := services.NewNotifierFromEnv()
	if sendErr := notifier.Dispatch(&reminder, reminder.Customer); sendErr != nil {
		if err := services.MarkReminderFailed(&reminder, sendErr.Error()); err != nil {
			return err
		}
		if err := db.Save(&reminder).Error; err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "could not update reminder")
		}
		return c.Status(fiber.StatusBadGateway).JSON(reminder)
	}

	if err := services.MarkReminderSent(&reminder, time.Now()); err != nil {
		return err
	}
	if err := db.Save(&reminder).Error; err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "could not update reminder")
	}
	return c.JSON(reminder)
}
