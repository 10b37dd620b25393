package mailer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/ceramicalma/ALMA-BookingService/internal/domain"
)

// Client клиент почтового сервиса студии
type Client struct {
	baseURL    string
	apiKey     string
	from       string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр почтового клиента
func NewClient(baseURL, apiKey, from string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		from:    from,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// Send отправляет письмо через почтовый сервис
func (c *Client) Send(ctx context.Context, email EmailRequest) error {
	url := fmt.Sprintf("%s/v1/emails", c.baseURL)

	payload, err := json.Marshal(struct {
		EmailRequest
		From string `json:"from"`
	}{EmailRequest: email, From: c.from})
	if err != nil {
		return fmt.Errorf("%w: failed to marshal request: %v", ErrInternal, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	// Обработка статус-кодов
	switch resp.StatusCode {
	case http.StatusOK, http.StatusCreated, http.StatusAccepted:
		// Продолжаем обработку
	default:
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	var emailResp EmailResponse
	if err := json.NewDecoder(resp.Body).Decode(&emailResp); err != nil {
		return fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	c.log.Info("Email sent: id=%s, to=%s, subject=%q", emailResp.ID, email.To, email.Subject)
	return nil
}

// SendPreBookingConfirmation отправляет письмо с инструкциями по оплате.
// При недоступности почтового сервиса возвращает ErrServiceDegraded:
// бронирование уже создано, письмо не должно его блокировать.
func (c *Client) SendPreBookingConfirmation(ctx context.Context, booking *domain.Booking, bank domain.BankDetails) error {
	var slots strings.Builder
	for _, slot := range booking.Slots {
		slots.WriteString(fmt.Sprintf("<li>%s a las %s</li>", slot.Date, slot.Time.Format12()))
	}

	body := fmt.Sprintf(
		`<h2>¡Hola %s!</h2>
<p>Hemos recibido tu solicitud de reserva <strong>%s</strong>.</p>
<p>Para confirmarla, realiza el pago de <strong>%.2f €</strong> a la siguiente cuenta:</p>
<p>%s — %s<br/>Cuenta: %s (%s)<br/>Concepto: %s</p>
<p>Fechas reservadas:</p><ul>%s</ul>
<p>Nos vemos en el taller. — Cerámica Alma</p>`,
		booking.UserInfo.FirstName,
		booking.BookingCode,
		booking.Price,
		bank.BankName,
		bank.AccountHolder,
		bank.AccountNumber,
		bank.AccountType,
		booking.BookingCode,
		slots.String(),
	)

	return c.sendWithGracefulDegradation(ctx, EmailRequest{
		To:       booking.UserInfo.Email,
		Subject:  fmt.Sprintf("Tu reserva %s — instrucciones de pago", booking.BookingCode),
		HTMLBody: body,
	})
}

// SendPaymentReceipt отправляет подтверждение получения оплаты
func (c *Client) SendPaymentReceipt(ctx context.Context, booking *domain.Booking) error {
	body := fmt.Sprintf(
		`<h2>¡Gracias %s!</h2>
<p>Hemos recibido tu pago de <strong>%.2f €</strong> para la reserva <strong>%s</strong>.</p>
<p>Tu plaza está confirmada. ¡Te esperamos!</p>
<p>— Cerámica Alma</p>`,
		booking.UserInfo.FirstName,
		booking.Price,
		booking.BookingCode,
	)

	return c.sendWithGracefulDegradation(ctx, EmailRequest{
		To:       booking.UserInfo.Email,
		Subject:  fmt.Sprintf("Pago recibido — reserva %s confirmada", booking.BookingCode),
		HTMLBody: body,
	})
}

// SendClassReminder отправляет напоминание о предстоящем занятии
func (c *Client) SendClassReminder(ctx context.Context, booking *domain.Booking, slot domain.TimeSlot) error {
	body := fmt.Sprintf(
		`<h2>¡Hola %s!</h2>
<p>Te recordamos tu clase de cerámica el <strong>%s</strong> a las <strong>%s</strong>.</p>
<p>Reserva: %s</p>
<p>¡Te esperamos en el taller! — Cerámica Alma</p>`,
		booking.UserInfo.FirstName,
		slot.Date,
		slot.Time.Format12(),
		booking.BookingCode,
	)

	return c.sendWithGracefulDegradation(ctx, EmailRequest{
		To:       booking.UserInfo.Email,
		Subject:  fmt.Sprintf("Recordatorio: clase el %s a las %s", slot.Date, slot.Time.Format12()),
		HTMLBody: body,
	})
}

func (c *Client) sendWithGracefulDegradation(ctx context.Context, email EmailRequest) error {
	if err := c.Send(ctx, email); err != nil {
		// Почтовый сервис недоступен или ответил ошибкой: письмо теряется,
		// но операция с бронированием не откатывается
		c.log.Error("Mail service unavailable, applying graceful degradation for to=%s: %v", email.To, err)
		return fmt.Errorf("%w: to=%s, error=%v", ErrServiceDegraded, email.To, err)
	}
	return nil
}
