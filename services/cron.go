package services

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/DanielEsLoH/StockFlow-sub011/database"
	"github.com/DanielEsLoH/StockFlow-sub011/models"
	"github.com/DanielEsLoH/StockFlow-sub011/utils"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

// StartReminderCron schedules the daily collection run for every active
// tenant. The same logic is reachable per tenant through the HTTP surface,
// so an external cron hitting the endpoint works too; this in-process runner
// is just the batteries-included default. Schedule override: REMINDER_CRON.
func StartReminderCron() *cron.Cron {
	spec := os.Getenv("REMINDER_CRON")
	if spec == "" {
		spec = "0 9 * * *" // daily at 9 AM
	}

	c := cron.New()
	if _, err := c.AddFunc(spec, RunDailyCollection); err != nil {
		log.Printf("reminder cron not started: %v", err)
		return c
	}
	c.Start()
	log.Printf("reminder cron started (%s)", spec)
	return c
}

// RunDailyCollection walks all active tenants and, per tenant schema:
// flips SENT invoices past their due date to OVERDUE, expires quotations
// past their validity, and generates any missing collection reminders.
func RunDailyCollection() {
	now := time.Now()

	var companies []models.Company
	if err := database.DB.Table("public.companies").Where("active = ?", true).Find(&companies).Error; err != nil {
		log.Printf("collection run: company query failed: %v", err)
		return
	}

	scheduler := NewReminderScheduler(nil)
	for _, company := range companies {
		// One transaction per tenant: SET LOCAL pins the schema for every
		// statement of the sweep and reverts when the TX ends.
		err := database.WithTenant(company.SchemaName, func(db *gorm.DB) error {
			if err := MarkOverdueInvoices(db, now); err != nil {
				return fmt.Errorf("overdue sweep: %w", err)
			}
			if err := ExpireQuotations(db, now); err != nil {
				return fmt.Errorf("quotation expiry: %w", err)
			}
			count, err := scheduler.GenerateForTenant(db, now)
			if err != nil {
				return err
			}
			if count > 0 {
				log.Printf("collection run: tenant %s: %d reminders generated", company.SchemaName, count)
			}
			return nil
		})
		if err != nil {
			log.Printf("collection run: tenant %s: %v", company.SchemaName, err)
		}
	}
}

// MarkOverdueInvoices transitions SENT invoices whose due date has passed.
func MarkOverdueInvoices(db *gorm.DB, now time.Time) error {
	var invoices []models.Invoice
	err := db.Where("status = ?", models.InvoiceStatusSent).
		Where("due_date IS NOT NULL AND due_date < ?", utils.BeginningOfDay(now)).
		Find(&invoices).Error
	if err != nil {
		return err
	}
	for i := range invoices {
		inv := &invoices[i]
		if err := MarkInvoiceOverdue(inv); err != nil {
			continue // raced with a payment or cancel; leave it
		}
		if err := db.Model(inv).Update("status", inv.Status).Error; err != nil {
			return err
		}
		log.Printf("invoice %s overdue by %d days", inv.InvoiceNumber, utils.DaysBetween(*inv.DueDate, now))
	}
	return nil
}

// ExpireQuotations transitions SENT quotations past their ValidUntil.
func ExpireQuotations(db *gorm.DB, now time.Time) error {
	var quotations []models.Quotation
	err := db.Where("status = ?", models.QuotationStatusSent).
		Where("valid_until IS NOT NULL AND valid_until < ?", now).
		Find(&quotations).Error
	if err != nil {
		return err
	}
	for i := range quotations {
		q := &quotations[i]
		if err := ExpireQuotation(q); err != nil {
			continue
		}
		if err := db.Model(q).Update("status", q.Status).Error; err != nil {
			return err
		}
	}
	return nil
}
