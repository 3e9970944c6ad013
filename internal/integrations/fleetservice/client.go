package fleetservice

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Client клиент для работы с FleetService (каталог лодок и тарифы)
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента FleetService
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// GetBoat получает лодку с тарифом за человека
func (c *Client) GetBoat(ctx context.Context, boatID int64) (*Boat, error) {
	url := fmt.Sprintf("%s/internal/boats/%d", c.baseURL, boatID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusBadRequest:
		return nil, fmt.Errorf("%w: invalid boat ID format", ErrInvalidResponse)
	case http.StatusNotFound:
		return nil, ErrBoatNotFound
	default:
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	var boat Boat
	if err := json.NewDecoder(resp.Body).Decode(&boat); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	if boat.PerPersonRate < 0 {
		return nil, fmt.Errorf("%w: negative per person rate %.2f", ErrInvalidResponse, boat.PerPersonRate)
	}

	return &boat, nil
}

// GetBoatWithGracefulDegradation получает лодку с graceful degradation.
// При недоступности FleetService возвращает ErrServiceDegraded - вызывающий код
// показывает минимальные цены слотов вместо расчета по тарифу.
func (c *Client) GetBoatWithGracefulDegradation(ctx context.Context, boatID int64) (*Boat, error) {
	c.log.Info("Fetching boat rate for boat_id=%d", boatID)

	boat, err := c.GetBoat(ctx, boatID)
	if err != nil {
		// Лодки нет - это бизнес-ошибка, пробрасываем как есть
		if errors.Is(err, ErrBoatNotFound) {
			c.log.Info("Boat boat_id=%d not found in fleet", boatID)
			return nil, err
		}

		c.log.Error("FleetService unavailable, applying graceful degradation for boat_id=%d: %v", boatID, err)
		return nil, fmt.Errorf("%w: boat_id=%d, error=%v", ErrServiceDegraded, boatID, err)
	}

	c.log.Info("Successfully fetched boat boat_id=%d, rate=%.2f, capacity=%d", boatID, boat.PerPersonRate, boat.Capacity)
	return boat, nil
}
