package whatsapp

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/m04kA/SMC-BeautyBooking/internal/domain"
)

// Client отправляет владельцу салона уведомления в WhatsApp через CallMeBot HTTP API
type Client struct {
	baseURL    string
	phone      string
	apiKey     string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента
func NewClient(baseURL, phone, apiKey string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		phone:   phone,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

func (c *Client) Name() string {
	return "whatsapp"
}

// Publish отправляет сообщение для событий, о которых нужно знать владельцу.
// Остальные события пропускаются без ошибки.
func (c *Client) Publish(ctx context.Context, event domain.BookingEvent) error {
	text, ok := FormatMessage(event)
	if !ok {
		return nil
	}
	return c.SendMessage(ctx, text)
}

// SendMessage отправляет произвольный текст
func (c *Client) SendMessage(ctx context.Context, text string) error {
	query := url.Values{}
	query.Set("phone", c.phone)
	query.Set("text", text)
	query.Set("apikey", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+query.Encode(), nil)
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: failed to execute request: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	// Обработка статус-кодов
	switch {
	case resp.StatusCode == http.StatusOK:
		c.log.Info("WhatsApp message sent to owner")
		return nil
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return fmt.Errorf("%w: status %d", ErrUnauthorized, resp.StatusCode)
	case resp.StatusCode >= http.StatusInternalServerError:
		return fmt.Errorf("%w: status %d", ErrUnavailable, resp.StatusCode)
	default:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}
}

// FormatMessage текст уведомления; второе значение false для событий без уведомления
func FormatMessage(event domain.BookingEvent) (string, bool) {
	var title string
	switch event.Type {
	case domain.EventBookingCreated:
		title = "New booking request"
	case domain.EventBookingCancelled:
		title = "Booking cancelled"
	default:
		return "", false
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s %s\n", title, event.Reference)
	fmt.Fprintf(&b, "Name: %s\n", event.CustomerName)
	fmt.Fprintf(&b, "Phone: %s\n", event.CustomerPhone)
	fmt.Fprintf(&b, "Service: %s\n", event.ServiceName)
	fmt.Fprintf(&b, "Date: %s\n", event.Date)
	fmt.Fprintf(&b, "Time: %s", event.Time)
	if event.Notes != "" {
		fmt.Fprintf(&b, "\nNotes: %s", event.Notes)
	}
	return b.String(), true
}
