package service

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/clothingadvisor/backend/internal/domain"
	"github.com/clothingadvisor/backend/pkg/utils"
)

// WeatherAPIBridge talks to a standalone weather-api service (cmd/weather-api).
type WeatherAPIBridge struct {
	serviceURL string
	httpClient *http.Client
}

// NewWeatherAPIBridge creates a new weather-api bridge
func NewWeatherAPIBridge(serviceURL string, timeout time.Duration) *WeatherAPIBridge {
	return &WeatherAPIBridge{
		serviceURL: serviceURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

type weatherAPIErrorBody struct {
	Error *domain.WeatherAPIError `json:"error"`
}

// CurrentWeather calls GET /api/weather on the weather-api service
func (b *WeatherAPIBridge) CurrentWeather(ctx context.Context, zipCode string) (domain.WeatherData, error) {
	if !utils.IsZipCode(zipCode) {
		return domain.WeatherData{}, domain.NewWeatherAPIError(domain.ErrCodeInvalidZip, "zip code must be 5 digits")
	}

	endpoint := fmt.Sprintf("%s/api/weather?zip_code=%s", b.serviceURL, url.QueryEscape(zipCode))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return domain.WeatherData{}, fmt.Errorf("weather_bridge: failed to create request: %w", err)
	}

	resp, err := b.httpClient.Do(req)
	if err != nil {
		return domain.WeatherData{}, transportError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var body weatherAPIErrorBody
		if err := json.NewDecoder(resp.Body).Decode(&body); err == nil && body.Error != nil && body.Error.Code != "" {
			return domain.WeatherData{}, body.Error
		}
		return domain.WeatherData{}, statusError(resp.StatusCode, zipCode)
	}

	var weather domain.WeatherData
	if err := json.NewDecoder(resp.Body).Decode(&weather); err != nil {
		return domain.WeatherData{}, domain.NewWeatherAPIError(domain.ErrCodeAPIError, "weather_bridge: failed to decode response: "+err.Error())
	}

	if weather.PrecipitationProbability != nil {
		p := utils.Clamp(*weather.PrecipitationProbability, 0, 1)
		weather.PrecipitationProbability = &p
	}
	weather.Humidity = utils.ClampInt(weather.Humidity, 0, 100)

	return weather, nil
}

// Health checks weather-api connectivity
func (b *WeatherAPIBridge) Health(ctx context.Context) error {
	endpoint := fmt.Sprintf("%s/health", b.serviceURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("weather_bridge: failed to create health request: %w", err)
	}

	resp, err := b.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("weather_bridge: health check failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("weather_bridge: health check returned status %d", resp.StatusCode)
	}

	return nil
}
