package services

import (
	"errors"
	"testing"
	"time"

	"github.com/DanielEsLoH/StockFlow-sub011/models"
)

func TestMachineApply(t *testing.T) {
	m := NewMachine("widgets").
		Permit("activate", "activated", "ACTIVE", "NEW").
		Permit("retire", "retired", "RETIRED", "NEW", "ACTIVE")

	tests := []struct {
		name    string
		action  Action
		current string
		want    string
		wantErr bool
	}{
		{"legal single-source", "activate", "NEW", "ACTIVE", false},
		{"legal multi-source first", "retire", "NEW", "RETIRED", false},
		{"legal multi-source second", "retire", "ACTIVE", "RETIRED", false},
		{"illegal source", "activate", "ACTIVE", "", true},
		{"illegal from terminal", "retire", "RETIRED", "", true},
		{"unknown action", "explode", "NEW", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := m.Apply(tt.action, tt.current)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("Apply(%s, %s) succeeded, want error", tt.action, tt.current)
				}
				return
			}
			if err != nil {
				t.Fatalf("Apply(%s, %s): %v", tt.action, tt.current, err)
			}
			if got != tt.want {
				t.Errorf("Apply(%s, %s) = %s, want %s", tt.action, tt.current, got, tt.want)
			}
		})
	}
}

func TestMachineCan(t *testing.T) {
	if !InvoiceMachine.Can(ActionSendInvoice, models.InvoiceStatusDraft) {
		t.Error("send should be legal from DRAFT")
	}
	if InvoiceMachine.Can(ActionSendInvoice, models.InvoiceStatusPaid) {
		t.Error("send should be illegal from PAID")
	}
	if InvoiceMachine.Can("explode", models.InvoiceStatusDraft) {
		t.Error("unknown action should be illegal")
	}
}

func TestMachineGuardMessage(t *testing.T) {
	_, err := ReminderMachine.Apply(ActionCancel, models.ReminderStatusSent)
	if err == nil {
		t.Fatal("cancelling a sent reminder succeeded")
	}
	var se *StateError
	if !errors.As(err, &se) {
		t.Fatalf("error type %T, want *StateError", err)
	}
	if se.Error() != "only pending reminders can be cancelled" {
		t.Errorf("guard message = %q", se.Error())
	}
	if se.Current != models.ReminderStatusSent {
		t.Errorf("Current = %s, want SENT", se.Current)
	}
}

// Every terminal action from every terminal state must fail, whatever the
// combination.
func TestReminderTerminalStatesAreFrozen(t *testing.T) {
	terminal := []string{
		models.ReminderStatusSent,
		models.ReminderStatusFailed,
		models.ReminderStatusCancelled,
	}
	now := time.Now()

	for _, status := range terminal {
		actions := []struct {
			name string
			run  func(*models.CollectionReminder) error
		}{
			{"mark sent", func(r *models.CollectionReminder) error { return MarkReminderSent(r, now) }},
			{"mark failed", func(r *models.CollectionReminder) error { return MarkReminderFailed(r, "x") }},
			{"cancel", CancelReminder},
		}
		for _, a := range actions {
			r := models.CollectionReminder{Status: status}
			if err := a.run(&r); err == nil {
				t.Errorf("%s from %s succeeded, want invalid-state", a.name, status)
			}
			if r.Status != status {
				t.Errorf("%s from %s mutated status to %s", a.name, status, r.Status)
			}
		}
	}
}

func TestMarkReminderSentStampsSentAt(t *testing.T) {
	now := time.Date(2026, 8, 30, 9, 0, 0, 0, time.UTC)
	r := models.CollectionReminder{Status: models.ReminderStatusPending}
	if err := MarkReminderSent(&r, now); err != nil {
		t.Fatalf("MarkReminderSent: %v", err)
	}
	if r.Status != models.ReminderStatusSent {
		t.Errorf("status = %s, want SENT", r.Status)
	}
	if r.SentAt == nil || !r.SentAt.Equal(now) {
		t.Errorf("SentAt = %v, want %v", r.SentAt, now)
	}
}

func TestMarkReminderFailedRecordsNotes(t *testing.T) {
	r := models.CollectionReminder{Status: models.ReminderStatusPending, Notes: "original"}
	if err := MarkReminderFailed(&r, "smtp connection refused"); err != nil {
		t.Fatalf("MarkReminderFailed: %v", err)
	}
	if r.Status != models.ReminderStatusFailed {
		t.Errorf("status = %s, want FAILED", r.Status)
	}
	if r.Notes != "smtp connection refused" {
		t.Errorf("notes = %q", r.Notes)
	}

	// Empty notes leave whatever was there.
	r2 := models.CollectionReminder{Status: models.ReminderStatusPending, Notes: "keep"}
	if err := MarkReminderFailed(&r2, ""); err != nil {
		t.Fatalf("MarkReminderFailed: %v", err)
	}
	if r2.Notes != "keep" {
		t.Errorf("notes = %q, want original preserved", r2.Notes)
	}
}
