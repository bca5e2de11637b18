package services

import (
	"fmt"
	"net/smtp"
	"os"
	"strings"

	"github.com/DanielEsLoH/StockFlow-sub011/models"

	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
)

// Sender delivers one message to one destination over a single channel.
type Sender interface {
	Send(to, message string) error
}

// TwilioSender covers SMS and WhatsApp. WhatsApp destinations get the
// "whatsapp:" prefix Twilio expects.
type TwilioSender struct {
	client   *twilio.RestClient
	from     string
	whatsapp bool
}

func NewTwilioSender(whatsapp bool) *TwilioSender {
	from := os.Getenv("TWILIO_PHONE_NUMBER")
	if whatsapp {
		from = os.Getenv("TWILIO_WHATSAPP_NUMBER")
	}
	return &TwilioSender{
		client: twilio.NewRestClientWithParams(twilio.ClientParams{
			Username: os.Getenv("TWILIO_ACCOUNT_SID"),
			Password: os.Getenv("TWILIO_AUTH_TOKEN"),
		}),
		from:     from,
		whatsapp: whatsapp,
	}
}

func (t *TwilioSender) Send(to, message string) error {
	if strings.TrimSpace(to) == "" {
		return fmt.Errorf("destination phone number missing")
	}
	from := t.from
	if t.whatsapp {
		to = "whatsapp:" + to
		from = "whatsapp:" + from
	}

	params := &twilioApi.CreateMessageParams{}
	params.SetTo(to)
	params.SetFrom(from)
	params.SetBody(message)

	if _, err := t.client.Api.CreateMessage(params); err != nil {
		return fmt.Errorf("twilio send failed: %w", err)
	}
	return nil
}

// SMTPSender handles the EMAIL channel through plain SMTP. No mail service
// SDK is involved; the SMTP relay is configured via environment.
type SMTPSender struct {
	host string
	port string
	from string
	auth smtp.Auth
}

func NewSMTPSender() *SMTPSender {
	host := os.Getenv("SMTP_HOST")
	port := os.Getenv("SMTP_PORT")
	if port == "" {
		port = "587"
	}
	user := os.Getenv("SMTP_USER")
	pass := os.Getenv("SMTP_PASSWORD")

	var auth smtp.Auth
	if user != "" {
		auth = smtp.PlainAuth("", user, pass, host)
	}
	return &SMTPSender{host: host, port: port, from: os.Getenv("SMTP_FROM"), auth: auth}
}

func (s *SMTPSender) Send(to, message string) error {
	if strings.TrimSpace(to) == "" {
		return fmt.Errorf("destination email missing")
	}
	if s.host == "" {
		return fmt.Errorf("SMTP not configured (set SMTP_HOST)")
	}
	body := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: Recordatorio de pago\r\n\r\n%s\r\n", s.from, to, message)
	if err := smtp.SendMail(s.host+":"+s.port, s.auth, s.from, []string{to}, []byte(body)); err != nil {
		return fmt.Errorf("smtp send failed: %w", err)
	}
	return nil
}

// Notifier routes a reminder to the sender matching its channel.
type Notifier struct {
	Email    Sender
	SMS      Sender
	WhatsApp Sender
}

func NewNotifierFromEnv() *Notifier {
	return &Notifier{
		Email:    NewSMTPSender(),
		SMS:      NewTwilioSender(false),
		WhatsApp: NewTwilioSender(true),
	}
}

// Dispatch delivers the reminder's message to the customer over the
// reminder's channel. It does not touch reminder status; the caller marks
// sent or failed based on the returned error.
func (n *Notifier) Dispatch(r *models.CollectionReminder, customer *models.Customer) error {
	if customer == nil {
		return fmt.Errorf("reminder %d has no customer to contact", r.ID)
	}
	switch r.Channel {
	case models.ReminderChannelSMS:
		return n.SMS.Send(customer.Phone, r.Message)
	case models.ReminderChannelWhatsApp:
		return n.WhatsApp.Send(customer.Phone, r.Message)
	case models.ReminderChannelEmail:
		return n.Email.Send(customer.Email, r.Message)
	default:
		return fmt.Errorf("unknown reminder channel %q", r.Channel)
	}
}
