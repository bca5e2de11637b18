package services

import (
	"strings"
	"testing"
	"time"

	"github.com/DanielEsLoH/StockFlow-sub011/models"
)

func dueInvoice(id uint, due time.Time, reminders ...models.CollectionReminder) models.Invoice {
	customerID := uint(7)
	return models.Invoice{
		ID:            id,
		InvoiceNumber: "FV-20260801-TEST01",
		CustomerID:    &customerID,
		Status:        models.InvoiceStatusSent,
		PaymentStatus: models.PaymentStatusUnpaid,
		DueDate:       &due,
		Reminders:     reminders,
	}
}

func TestGenerateOffsets(t *testing.T) {
	due := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		now       time.Time
		wantTypes []string
	}{
		{
			name:      "ten days past due yields -3, 0 and +7",
			now:       due.AddDate(0, 0, 10),
			wantTypes: []string{models.ReminderTypeBeforeDue, models.ReminderTypeOnDue, models.ReminderTypeAfterDue},
		},
		{
			name:      "one day past due withholds +7",
			now:       due.AddDate(0, 0, 1),
			wantTypes: []string{models.ReminderTypeBeforeDue, models.ReminderTypeOnDue},
		},
		{
			name:      "long overdue produces the whole schedule and nothing more",
			now:       due.AddDate(0, 0, 45),
			wantTypes: []string{models.ReminderTypeBeforeDue, models.ReminderTypeOnDue, models.ReminderTypeAfterDue, models.ReminderTypeAfterDue, models.ReminderTypeAfterDue},
		},
		{
			name:      "due far in the future yields nothing",
			now:       due.AddDate(0, 0, -10),
			wantTypes: nil,
		},
	}

	s := NewReminderScheduler(nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := s.Generate(tt.now, []models.Invoice{dueInvoice(1, due)})
			if len(got) != len(tt.wantTypes) {
				t.Fatalf("generated %d reminders, want %d", len(got), len(tt.wantTypes))
			}
			for i, r := range got {
				if r.Type != tt.wantTypes[i] {
					t.Errorf("reminder %d type = %s, want %s", i, r.Type, tt.wantTypes[i])
				}
				if r.Status != models.ReminderStatusPending {
					t.Errorf("reminder %d status = %s, want PENDING", i, r.Status)
				}
				if r.Channel != models.ReminderChannelEmail {
					t.Errorf("reminder %d channel = %s, want EMAIL", i, r.Channel)
				}
				if r.InvoiceID != 1 {
					t.Errorf("reminder %d invoice id = %d, want 1", i, r.InvoiceID)
				}
				if r.CustomerID == nil || *r.CustomerID != 7 {
					t.Errorf("reminder %d did not carry the invoice customer", i)
				}
			}
		})
	}
}

func TestGenerateIdempotent(t *testing.T) {
	due := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	now := due.AddDate(0, 0, 10)
	s := NewReminderScheduler(nil)

	first := s.Generate(now, []models.Invoice{dueInvoice(1, due)})
	if len(first) != 3 {
		t.Fatalf("first run generated %d reminders, want 3", len(first))
	}

	// Feed the first run's output back as existing history: second run must
	// be a no-op.
	second := s.Generate(now, []models.Invoice{dueInvoice(1, due, first...)})
	if len(second) != 0 {
		t.Fatalf("second run generated %d reminders, want 0", len(second))
	}
}

func TestGenerateDedupByCalendarDay(t *testing.T) {
	due := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	now := due.AddDate(0, 0, 1)

	// Existing ON_DUE reminder at a different clock time on the due day:
	// still a duplicate.
	existing := models.CollectionReminder{
		Type:        models.ReminderTypeOnDue,
		ScheduledAt: time.Date(2026, 8, 1, 23, 59, 0, 0, time.UTC),
	}

	s := NewReminderScheduler(nil)
	got := s.Generate(now, []models.Invoice{dueInvoice(1, due, existing)})
	if len(got) != 1 {
		t.Fatalf("generated %d reminders, want 1 (only BEFORE_DUE)", len(got))
	}
	if got[0].Type != models.ReminderTypeBeforeDue {
		t.Errorf("type = %s, want BEFORE_DUE", got[0].Type)
	}
}

func TestGenerateSkipsMissingDueDate(t *testing.T) {
	s := NewReminderScheduler(nil)
	inv := models.Invoice{ID: 1, Status: models.InvoiceStatusSent, PaymentStatus: models.PaymentStatusUnpaid}
	if got := s.Generate(time.Now(), []models.Invoice{inv}); len(got) != 0 {
		t.Fatalf("generated %d reminders for an invoice without due date, want 0", len(got))
	}
}

func TestGenerateMessages(t *testing.T) {
	due := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	now := due.AddDate(0, 0, 10)
	s := NewReminderScheduler(nil)

	got := s.Generate(now, []models.Invoice{dueInvoice(1, due)})
	if len(got) != 3 {
		t.Fatalf("generated %d reminders, want 3", len(got))
	}

	// Day counts come from the schedule offset, not the run time.
	if !strings.Contains(got[0].Message, "vence en 3 días") {
		t.Errorf("BEFORE_DUE message = %q, want mention of 3 days until due", got[0].Message)
	}
	if !strings.Contains(got[1].Message, "vence el día de hoy") {
		t.Errorf("ON_DUE message = %q, want due-today wording", got[1].Message)
	}
	if !strings.Contains(got[2].Message, "7 días de mora") {
		t.Errorf("AFTER_DUE message = %q, want mention of 7 days overdue", got[2].Message)
	}
	for i, r := range got {
		if !strings.Contains(r.Message, "FV-20260801-TEST01") {
			t.Errorf("reminder %d message does not name the invoice: %q", i, r.Message)
		}
	}
}

func TestGenerateCustomSchedule(t *testing.T) {
	due := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	now := due.AddDate(0, 0, 90)

	s := NewReminderScheduler([]ReminderOffset{
		{Days: 60, Type: models.ReminderTypeAfterDue},
	})
	got := s.Generate(now, []models.Invoice{dueInvoice(1, due)})
	if len(got) != 1 {
		t.Fatalf("generated %d reminders, want 1", len(got))
	}
	want := due.AddDate(0, 0, 60)
	if !got[0].ScheduledAt.Equal(want) {
		t.Errorf("scheduled at %v, want %v", got[0].ScheduledAt, want)
	}
}

func TestGenerateScheduledOnTruncation(t *testing.T) {
	due := time.Date(2026, 8, 1, 18, 30, 0, 0, time.UTC)
	now := due.AddDate(0, 0, 1)
	s := NewReminderScheduler(nil)

	got := s.Generate(now, []models.Invoice{dueInvoice(1, due)})
	for _, r := range got {
		h, m, sec := r.ScheduledOn.Clock()
		if h != 0 || m != 0 || sec != 0 {
			t.Errorf("ScheduledOn %v is not truncated to the calendar day", r.ScheduledOn)
		}
		if r.ScheduledOn.Day() != r.ScheduledAt.Day() {
			t.Errorf("ScheduledOn %v does not match ScheduledAt %v day", r.ScheduledOn, r.ScheduledAt)
		}
	}
}
