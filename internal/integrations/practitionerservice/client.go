package practitionerservice

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Logger интерфейс логгера для клиента справочника
type Logger interface {
	Info(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Client клиент для работы со справочником врачей
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента справочника врачей
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// GetPractitioner получает карточку врача по ID
func (c *Client) GetPractitioner(ctx context.Context, practitionerID int64) (*Practitioner, error) {
	url := fmt.Sprintf("%s/internal/practitioners/%d", c.baseURL, practitionerID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		// Сетевые ошибки и таймауты - справочник недоступен
		c.log.Error("GetPractitioner: directory unavailable for practitioner id=%d: %v", practitionerID, err)
		return nil, fmt.Errorf("%w: %v", ErrServiceUnavailable, err)
	}
	defer resp.Body.Close()

	// Обработка статус-кодов
	switch resp.StatusCode {
	case http.StatusOK:
		// Продолжаем обработку
	case http.StatusBadRequest:
		return nil, fmt.Errorf("%w: invalid practitioner ID format", ErrInvalidResponse)
	case http.StatusNotFound:
		return nil, ErrPractitionerNotFound
	default:
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: unexpected status code %d: %s", ErrServiceUnavailable, resp.StatusCode, string(body))
	}

	// Парсим ответ
	var practitioner Practitioner
	if err := json.NewDecoder(resp.Body).Decode(&practitioner); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	return &practitioner, nil
}

// GetDayOverride получает переопределение доступности врача на дату.
// Если переопределения нет, возвращает ErrNoOverride - врач доступен
// по обычному расписанию.
func (c *Client) GetDayOverride(ctx context.Context, practitionerID int64, date string) (*DayOverride, error) {
	url := fmt.Sprintf("%s/internal/practitioners/%d/overrides/%s", c.baseURL, practitionerID, date)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Error("GetDayOverride: directory unavailable for practitioner id=%d date=%s: %v", practitionerID, date, err)
		return nil, fmt.Errorf("%w: %v", ErrServiceUnavailable, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		// Продолжаем обработку
	case http.StatusBadRequest:
		return nil, fmt.Errorf("%w: invalid practitioner ID or date format", ErrInvalidResponse)
	case http.StatusNotFound:
		return nil, ErrNoOverride
	default:
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: unexpected status code %d: %s", ErrServiceUnavailable, resp.StatusCode, string(body))
	}

	var override DayOverride
	if err := json.NewDecoder(resp.Body).Decode(&override); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	return &override, nil
}
