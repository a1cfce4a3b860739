package geo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/mugangish/shelter-backend/internal/logger"
)

// GeocodeResult — координаты и нормализованный адрес, найденные геокодером.
type GeocodeResult struct {
	Address string  `json:"address"`
	Lat     float64 `json:"lat"`
	Lng     float64 `json:"lng"`
}

// Geocoder переводит свободный текст адреса в координаты через внешний
// Nominatim-совместимый сервис.
type Geocoder struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
}

// NewGeocoder создаёт клиент геокодера.
func NewGeocoder(baseURL, apiKey string) *Geocoder {
	return &Geocoder{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		baseURL:    baseURL,
		apiKey:     apiKey,
	}
}

// nominatimPlace — одна запись ответа /search.
type nominatimPlace struct {
	DisplayName string `json:"display_name"`
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
}

// Forward ищет координаты по адресу. Возвращает первый результат.
func (g *Geocoder) Forward(ctx context.Context, address string) (*GeocodeResult, error) {
	if address == "" {
		return nil, fmt.Errorf("geocoder: адрес не может быть пустым")
	}

	q := url.Values{}
	q.Set("q", address)
	q.Set("format", "json")
	q.Set("limit", "1")
	q.Set("countrycodes", "il")
	if g.apiKey != "" {
		q.Set("key", g.apiKey)
	}

	reqURL := fmt.Sprintf("%s/search?%s", g.baseURL, q.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("geocoder: не удалось создать запрос: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("geocoder: ошибка запроса: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		if logger.Log != nil {
			logger.Log.WithFields(logrus.Fields{
				"status": resp.StatusCode,
				"body":   string(body),
			}).Error("geocoder: сервис вернул ошибку")
		}
		return nil, fmt.Errorf("geocoder: сервис вернул статус %d", resp.StatusCode)
	}

	var places []nominatimPlace
	if err := json.NewDecoder(resp.Body).Decode(&places); err != nil {
		return nil, fmt.Errorf("geocoder: не удалось разобрать ответ: %w", err)
	}

	if len(places) == 0 {
		return nil, fmt.Errorf("geocoder: адрес %q не найден", address)
	}

	lat, err := strconv.ParseFloat(places[0].Lat, 64)
	if err != nil {
		return nil, fmt.Errorf("geocoder: некорректная широта в ответе: %w", err)
	}
	lng, err := strconv.ParseFloat(places[0].Lon, 64)
	if err != nil {
		return nil, fmt.Errorf("geocoder: некорректная долгота в ответе: %w", err)
	}

	if !ValidCoordinates(lat, lng) {
		return nil, fmt.Errorf("geocoder: координаты вне допустимого диапазона")
	}

	return &GeocodeResult{
		Address: places[0].DisplayName,
		Lat:     lat,
		Lng:     lng,
	}, nil
}
