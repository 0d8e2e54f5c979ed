package mailer

import (
	"fmt"
	"time"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

const timeLayout = "02 Jan 2006 15:04 MST"

// Client клиент отправки уведомлений через SendGrid
// Все отправки best-effort: неудача логируется вызывающим кодом и никогда
// не влияет на результат уже зафиксированного бронирования
type Client struct {
	client    *sendgrid.Client
	fromEmail string
	fromName  string
	enabled   bool
	log       Logger
}

// NewClient создает новый экземпляр клиента уведомлений
// При enabled=false все вызовы возвращают ErrDisabled
func NewClient(apiKey, fromEmail, fromName string, enabled bool, log Logger) *Client {
	c := &Client{
		fromEmail: fromEmail,
		fromName:  fromName,
		enabled:   enabled,
		log:       log,
	}
	if enabled {
		c.client = sendgrid.NewSendClient(apiKey)
	}
	return c
}

// SendBookingConfirmed отправляет письмо-подтверждение бронирования
func (c *Client) SendBookingConfirmed(n BookingNotification) error {
	subject := fmt.Sprintf("Запись подтверждена — %s", n.ScheduleName)
	body := fmt.Sprintf(
		"Здравствуйте, %s!\n\n"+
			"Ваша запись подтверждена.\n\n"+
			"Расписание: %s\n"+
			"Начало: %s\n"+
			"Окончание: %s\n"+
			"Номер записи: %s\n",
		n.RecipientName,
		n.ScheduleName,
		c.formatTime(n.StartAt, n.Zone),
		c.formatTime(n.EndAt, n.Zone),
		n.BookingID,
	)
	return c.send(n, subject, body)
}

// SendBookingCancelled отправляет письмо об отмене бронирования
func (c *Client) SendBookingCancelled(n BookingNotification) error {
	subject := fmt.Sprintf("Запись отменена — %s", n.ScheduleName)
	body := fmt.Sprintf(
		"Здравствуйте, %s!\n\n"+
			"Ваша запись отменена.\n\n"+
			"Расписание: %s\n"+
			"Начало: %s\n"+
			"Номер записи: %s\n",
		n.RecipientName,
		n.ScheduleName,
		c.formatTime(n.StartAt, n.Zone),
		n.BookingID,
	)
	return c.send(n, subject, body)
}

func (c *Client) send(n BookingNotification, subject, body string) error {
	if !c.enabled {
		return ErrDisabled
	}
	if n.RecipientEmail == "" {
		c.log.Info("Mailer: no recipient email for booking %s, skipping notification", n.BookingID)
		return nil
	}

	from := mail.NewEmail(c.fromName, c.fromEmail)
	to := mail.NewEmail(n.RecipientName, n.RecipientEmail)
	message := mail.NewSingleEmail(from, subject, to, body, "")

	resp, err := c.client.Send(message)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSendFailed, err)
	}
	if resp.StatusCode >= 400 {
		return fmt.Errorf("%w: unexpected status code %d: %s", ErrSendFailed, resp.StatusCode, resp.Body)
	}

	return nil
}

func (c *Client) formatTime(t time.Time, zone *time.Location) string {
	if zone == nil {
		zone = time.UTC
	}
	return t.In(zone).Format(timeLayout)
}
