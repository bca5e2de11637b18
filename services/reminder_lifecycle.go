package services

import (
	"time"

	"github.com/DanielEsLoH/StockFlow-sub011/models"
)

const (
	ActionMarkSent   Action = "mark_sent"
	ActionMarkFailed Action = "mark_failed"
	ActionCancel     Action = "cancel"
)

// Every terminal transition is legal only from PENDING; once a reminder
// leaves PENDING its status never changes again.
var ReminderMachine = NewMachine("reminders").
	Permit(ActionMarkSent, "marked sent", models.ReminderStatusSent, models.ReminderStatusPending).
	Permit(ActionMarkFailed, "marked failed", models.ReminderStatusFailed, models.ReminderStatusPending).
	Permit(ActionCancel, "cancelled", models.ReminderStatusCancelled, models.ReminderStatusPending)

// MarkReminderSent moves a pending reminder to SENT and stamps SentAt.
func MarkReminderSent(r *models.CollectionReminder, now time.Time) error {
	next, err := ReminderMachine.Apply(ActionMarkSent, r.Status)
	if err != nil {
		return err
	}
	r.Status = next
	r.SentAt = &now
	return nil
}

// MarkReminderFailed moves a pending reminder to FAILED, optionally recording
// what went wrong. There is no retry or reschedule; follow-up is a manual
// re-create.
func MarkReminderFailed(r *models.CollectionReminder, notes string) error {
	next, err := ReminderMachine.Apply(ActionMarkFailed, r.Status)
	if err != nil {
		return err
	}
	r.Status = next
	if notes != "" {
		r.Notes = notes
	}
	return nil
}

// CancelReminder moves a pending reminder to CANCELLED.
func CancelReminder(r *models.CollectionReminder) error {
	next, err := ReminderMachine.Apply(ActionCancel, r.Status)
	if err != nil {
		return err
	}
	r.Status = next
	return nil
}
