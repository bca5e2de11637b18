package services

import (
	"fmt"
	"time"

	"github.com/DanielEsLoH/StockFlow-sub011/models"
	"github.com/DanielEsLoH/StockFlow-sub011/utils"

	"gorm.io/gorm"
)

// ReminderOffset is one entry of the generation schedule: a signed day count
// relative to the invoice due date and the reminder type it produces.
type ReminderOffset struct {
	Days int
	Type string
}

// DefaultSchedule: a courtesy nudge three days before the due date, one on
// the day itself, and escalating overdue notices at 7, 15 and 30 days.
// Invoices overdue past the last entry receive no further automatic
// reminders.
var DefaultSchedule = []ReminderOffset{
	{Days: -3, Type: models.ReminderTypeBeforeDue},
	{Days: 0, Type: models.ReminderTypeOnDue},
	{Days: 7, Type: models.ReminderTypeAfterDue},
	{Days: 15, Type: models.ReminderTypeAfterDue},
	{Days: 30, Type: models.ReminderTypeAfterDue},
}

// ReminderScheduler computes which collection reminders an invoice is missing.
// The schedule is injected so the rule table can be swapped without touching
// the generation logic.
type ReminderScheduler struct {
	Schedule []ReminderOffset
}

func NewReminderScheduler(schedule []ReminderOffset) *ReminderScheduler {
	if len(schedule) == 0 {
		schedule = DefaultSchedule
	}
	return &ReminderScheduler{Schedule: schedule}
}

// Generate walks the schedule for each invoice and returns the PENDING
// reminder rows to create. Eligibility (status SENT/OVERDUE, payment status
// UNPAID/PARTIALLY_PAID) is the caller's query precondition and is not
// re-validated here. Rules:
//   - invoices without a due date are skipped, not errored on;
//   - a schedule point whose moment has not arrived yet (candidate strictly
//     after now) is withheld until a later run;
//   - a reminder of the same type already scheduled on the same calendar day
//     is a duplicate, regardless of time of day.
func (s *ReminderScheduler) Generate(now time.Time, invoices []models.Invoice) []models.CollectionReminder {
	var out []models.CollectionReminder

	for i := range invoices {
		inv := &invoices[i]
		if inv.DueDate == nil {
			continue
		}

		existing := make(map[string]bool, len(inv.Reminders))
		for _, r := range inv.Reminders {
			existing[dedupKey(r.Type, r.ScheduledAt)] = true
		}

		for _, off := range s.Schedule {
			candidate := inv.DueDate.AddDate(0, 0, off.Days)
			if candidate.After(now) {
				continue
			}
			key := dedupKey(off.Type, candidate)
			if existing[key] {
				continue
			}
			existing[key] = true

			out = append(out, models.CollectionReminder{
				InvoiceID:   inv.ID,
				CustomerID:  inv.CustomerID,
				Type:        off.Type,
				Channel:     models.ReminderChannelEmail,
				ScheduledAt: candidate,
				ScheduledOn: utils.BeginningOfDay(candidate),
				Status:      models.ReminderStatusPending,
				Message:     reminderMessage(off, inv.InvoiceNumber),
			})
		}
	}
	return out
}

func dedupKey(reminderType string, at time.Time) string {
	return reminderType + "|" + at.Format("2006-01-02")
}

// reminderMessage builds the customer-facing text. The day count is the
// absolute schedule offset, not the distance from the run time.
func reminderMessage(off ReminderOffset, invoiceNumber string) string {
	days := off.Days
	if days < 0 {
		days = -days
	}
	switch off.Type {
	case models.ReminderTypeBeforeDue:
		return fmt.Sprintf("Recuerde que su factura %s vence en %d días. Le agradecemos programar su pago.", invoiceNumber, days)
	case models.ReminderTypeOnDue:
		return fmt.Sprintf("Su factura %s vence el día de hoy. Le agradecemos realizar su pago.", invoiceNumber)
	default:
		return fmt.Sprintf("Su factura %s presenta %d días de mora. Le solicitamos realizar el pago a la mayor brevedad.", invoiceNumber, days)
	}
}

// GenerateForTenant loads the tenant's eligible invoices, runs the scheduler,
// and bulk-inserts whatever is missing. Returns how many reminders were
// created. The insert is a single batch; atomicity is the transaction's
// concern, not the scheduler's.
func (s *ReminderScheduler) GenerateForTenant(db *gorm.DB, now time.Time) (int, error) {
	var invoices []models.Invoice
	err := db.Preload("Reminders").
		Where("due_date IS NOT NULL").
		Where("status IN ?", []string{models.InvoiceStatusSent, models.InvoiceStatusOverdue}).
		Where("payment_status IN ?", []string{models.PaymentStatusUnpaid, models.PaymentStatusPartiallyPaid}).
		Find(&invoices).Error
	if err != nil {
		return 0, fmt.Errorf("eligible invoice query failed: %w", err)
	}

	reminders := s.Generate(now, invoices)
	if len(reminders) == 0 {
		return 0, nil
	}
	if err := db.CreateInBatches(reminders, 100).Error; err != nil {
		return 0, fmt.Errorf("reminder bulk insert failed: %w", err)
	}
	return len(reminders), nil
}
