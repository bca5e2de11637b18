package models

import "time"

// Reminder types. BEFORE_DUE/ON_DUE/AFTER_DUE come from the auto-generator
// schedule; MANUAL reminders are created by an operator with an explicit
// scheduled time.
const (
	ReminderTypeBeforeDue = "BEFORE_DUE"
	ReminderTypeOnDue     = "ON_DUE"
	ReminderTypeAfterDue  = "AFTER_DUE"
	ReminderTypeManual    = "MANUAL"
)

// Delivery channels.
const (
	ReminderChannelEmail    = "EMAIL"
	ReminderChannelSMS      = "SMS"
	ReminderChannelWhatsApp = "WHATSAPP"
)

// Reminder statuses. PENDING is the only non-terminal state: once a
// reminder is sent, failed, or cancelled it never changes again.
const (
	ReminderStatusPending   = "PENDING"
	ReminderStatusSent      = "SENT"
	ReminderStatusFailed    = "FAILED"
	ReminderStatusCancelled = "CANCELLED"
)

// CollectionReminder is one scheduled contact attempt for an unpaid invoice.
type CollectionReminder struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	InvoiceID  uint      `json:"invoice_id" gorm:"not null;index"`
	Invoice    *Invoice  `json:"-" gorm:"foreignKey:InvoiceID"`
	CustomerID *uint     `json:"customer_id" gorm:"index"`
	Customer   *Customer `json:"customer,omitempty" gorm:"foreignKey:CustomerID;references:Id"`

	Type    string `json:"type" gorm:"type:varchar(20);not null"`
	Channel string `json:"channel" gorm:"type:varchar(20);default:'EMAIL'"`

	ScheduledAt time.Time `json:"scheduled_at" gorm:"not null"`
	// ScheduledOn is ScheduledAt truncated to the calendar day. It is the
	// dedup granularity and carries the uniqueness constraint.
	ScheduledOn time.Time  `json:"-" gorm:"type:date;not null"`
	SentAt      *time.Time `json:"sent_at"`

	Status  string `json:"status" gorm:"type:varchar(20);default:'PENDING';index"`
	Message string `json:"message" gorm:"type:text"`
	Notes   string `json:"notes" gorm:"type:text"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
