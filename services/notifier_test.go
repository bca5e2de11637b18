package services

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/DanielEsLoH/StockFlow-sub011/models"
)

type fakeSender struct {
	to      string
	message string
	err     error
}

func (f *fakeSender) Send(to, message string) error {
	f.to = to
	f.message = message
	return f.err
}

func TestDispatchRoutesByChannel(t *testing.T) {
	customer := &models.Customer{
		Name:  "Ferretería El Tornillo",
		Email: "pagos@eltornillo.co",
		Phone: "+573001234567",
	}

	tests := []struct {
		channel string
		wantTo  string
		pick    func(n *Notifier) *fakeSender
	}{
		{models.ReminderChannelEmail, "pagos@eltornillo.co", func(n *Notifier) *fakeSender { return n.Email.(*fakeSender) }},
		{models.ReminderChannelSMS, "+573001234567", func(n *Notifier) *fakeSender { return n.SMS.(*fakeSender) }},
		{models.ReminderChannelWhatsApp, "+573001234567", func(n *Notifier) *fakeSender { return n.WhatsApp.(*fakeSender) }},
	}

	for _, tc := range tests {
		t.Run(tc.channel, func(t *testing.T) {
			n := &Notifier{Email: &fakeSender{}, SMS: &fakeSender{}, WhatsApp: &fakeSender{}}
			reminder := models.CollectionReminder{
				Channel: tc.channel,
				Message: "Su factura FV-001 vence pronto",
			}

			if err := n.Dispatch(&reminder, customer); err != nil {
				t.Fatalf("Dispatch: %v", err)
			}
			used := tc.pick(n)
			if used.to != tc.wantTo {
				t.Errorf("sent to %q, want %q", used.to, tc.wantTo)
			}
			if used.message != reminder.Message {
				t.Errorf("message = %q", used.message)
			}
			// The other two senders must stay untouched.
			for _, s := range []*fakeSender{n.Email.(*fakeSender), n.SMS.(*fakeSender), n.WhatsApp.(*fakeSender)} {
				if s != used && s.to != "" {
					t.Errorf("channel %s also reached %q", tc.channel, s.to)
				}
			}
		})
	}
}

func TestDispatchRejectsUnknownChannel(t *testing.T) {
	n := &Notifier{Email: &fakeSender{}, SMS: &fakeSender{}, WhatsApp: &fakeSender{}}
	reminder := models.CollectionReminder{Channel: "PIGEON"}
	if err := n.Dispatch(&reminder, &models.Customer{Email: "x@y.co"}); err == nil {
		t.Fatal("unknown channel dispatched")
	}
}

func TestDispatchRequiresCustomer(t *testing.T) {
	n := &Notifier{Email: &fakeSender{}, SMS: &fakeSender{}, WhatsApp: &fakeSender{}}
	reminder := models.CollectionReminder{ID: 7, Channel: models.ReminderChannelEmail}
	if err := n.Dispatch(&reminder, nil); err == nil {
		t.Fatal("dispatch without customer succeeded")
	}
}

// A failed delivery must land the reminder in FAILED with the delivery error
// recorded, and a successful one in SENT with SentAt stamped. Either way the
// reminder is terminal afterwards.
func TestDispatchOutcomeFlow(t *testing.T) {
	customer := &models.Customer{Email: "pagos@eltornillo.co"}

	t.Run("failure records notes", func(t *testing.T) {
		n := &Notifier{Email: &fakeSender{err: errors.New("smtp send failed: relay refused")}}
		reminder := models.CollectionReminder{
			Channel: models.ReminderChannelEmail,
			Status:  models.ReminderStatusPending,
		}

		sendErr := n.Dispatch(&reminder, customer)
		if sendErr == nil {
			t.Fatal("expected delivery error")
		}
		if err := MarkReminderFailed(&reminder, sendErr.Error()); err != nil {
			t.Fatalf("MarkReminderFailed: %v", err)
		}
		if reminder.Status != models.ReminderStatusFailed {
			t.Errorf("status = %s, want FAILED", reminder.Status)
		}
		if !strings.Contains(reminder.Notes, "relay refused") {
			t.Errorf("notes = %q, want delivery error recorded", reminder.Notes)
		}
		if err := MarkReminderSent(&reminder, time.Now()); err == nil {
			t.Error("failed reminder accepted mark sent")
		}
	})

	t.Run("success stamps sent", func(t *testing.T) {
		n := &Notifier{Email: &fakeSender{}}
		reminder := models.CollectionReminder{
			Channel: models.ReminderChannelEmail,
			Status:  models.ReminderStatusPending,
		}

		if err := n.Dispatch(&reminder, customer); err != nil {
			t.Fatalf("Dispatch: %v", err)
		}
		sentAt := time.Date(2026, 8, 30, 9, 0, 0, 0, time.UTC)
		if err := MarkReminderSent(&reminder, sentAt); err != nil {
			t.Fatalf("MarkReminderSent: %v", err)
		}
		if reminder.Status != models.ReminderStatusSent {
			t.Errorf("status = %s, want SENT", reminder.Status)
		}
		if reminder.SentAt == nil || !reminder.SentAt.Equal(sentAt) {
			t.Errorf("SentAt = %v, want %v", reminder.SentAt, sentAt)
		}
	})
}
