package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/clothingadvisor/backend/internal/domain"
	"github.com/clothingadvisor/backend/pkg/utils"
)

// WeatherService fetches current conditions from OpenWeatherMap.
type WeatherService struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
	now        func() time.Time
}

// NewWeatherService creates a new weather service. With an empty apiKey it
// serves seasonal mock weather.
func NewWeatherService(apiKey, baseURL string, timeout time.Duration, logger *slog.Logger) *WeatherService {
	return &WeatherService{
		apiKey:  apiKey,
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
		now:    time.Now,
	}
}

// OpenWeatherResponse represents the OpenWeatherMap current weather response
type OpenWeatherResponse struct {
	Main struct {
		Temp      float64 `json:"temp"`
		FeelsLike float64 `json:"feels_like"`
		Humidity  int     `json:"humidity"`
	} `json:"main"`
	Weather []struct {
		Main        string `json:"main"`
		Description string `json:"description"`
	} `json:"weather"`
	Wind struct {
		Speed float64 `json:"speed"`
	} `json:"wind"`
	Rain map[string]float64 `json:"rain"`
	Snow map[string]float64 `json:"snow"`
	Name string             `json:"name"`
}

// CurrentWeather fetches current weather for a US zip code
func (s *WeatherService) CurrentWeather(ctx context.Context, zipCode string) (domain.WeatherData, error) {
	if !utils.IsZipCode(zipCode) {
		return domain.WeatherData{}, domain.NewWeatherAPIError(domain.ErrCodeInvalidZip, "zip code must be 5 digits")
	}

	if s.apiKey == "" {
		return s.getMockWeather(zipCode), nil
	}

	params := url.Values{}
	params.Set("zip", zipCode+",US")
	params.Set("appid", s.apiKey)
	params.Set("units", "imperial")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return domain.WeatherData{}, fmt.Errorf("weather: failed to create request: %w", err)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		s.logger.Error("weather request failed", "zip_code", zipCode, "error", err)
		return domain.WeatherData{}, transportError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		s.logger.Warn("weather api returned non-200", "zip_code", zipCode, "status", resp.StatusCode)
		return domain.WeatherData{}, statusError(resp.StatusCode, zipCode)
	}

	var owResp OpenWeatherResponse
	if err := json.NewDecoder(resp.Body).Decode(&owResp); err != nil {
		return domain.WeatherData{}, domain.NewWeatherAPIError(domain.ErrCodeAPIError, "invalid weather data received: "+err.Error())
	}
	if len(owResp.Weather) == 0 {
		return domain.WeatherData{}, domain.NewWeatherAPIError(domain.ErrCodeAPIError, "weather conditions missing from response")
	}

	weather := domain.WeatherData{
		ZipCode:     zipCode,
		Location:    owResp.Name,
		Temperature: utils.RoundTo(owResp.Main.Temp, 1),
		FeelsLike:   utils.RoundTo(owResp.Main.FeelsLike, 1),
		Humidity:    utils.ClampInt(owResp.Main.Humidity, 0, 100),
		WindSpeed:   utils.RoundTo(owResp.Wind.Speed, 1),
		Description: owResp.Weather[0].Description,
		Timestamp:   s.now(),
	}

	weather.PrecipitationType = precipitationKind(owResp)
	if weather.HasPrecipitation() {
		// current conditions: precipitation is being observed, not forecast
		observed := 1.0
		weather.PrecipitationProbability = &observed
	}

	s.logger.Info("weather data retrieved", "zip_code", zipCode, "location", weather.Location)
	return weather, nil
}

// precipitationKind prefers measured volumes and falls back to the condition group.
func precipitationKind(r OpenWeatherResponse) domain.PrecipitationType {
	switch {
	case r.Snow["1h"] > 0 || r.Snow["3h"] > 0:
		return domain.PrecipitationSnow
	case r.Rain["1h"] > 0 || r.Rain["3h"] > 0:
		return domain.PrecipitationRain
	}

	switch strings.ToLower(r.Weather[0].Main) {
	case "snow":
		return domain.PrecipitationSnow
	case "rain", "drizzle", "thunderstorm":
		return domain.PrecipitationRain
	}
	return domain.PrecipitationNone
}

func transportError(err error) error {
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return domain.NewWeatherAPIError(domain.ErrCodeTimeout, err.Error())
	}
	return domain.NewWeatherAPIError(domain.ErrCodeNetworkError, err.Error())
}

func statusError(status int, zipCode string) error {
	switch status {
	case http.StatusNotFound:
		return domain.NewWeatherAPIError(domain.ErrCodeInvalidZip, fmt.Sprintf("zip code %s not found", zipCode))
	case http.StatusTooManyRequests:
		return domain.NewWeatherAPIError(domain.ErrCodeRateLimit, "upstream rate limit reached")
	default:
		return domain.NewWeatherAPIError(domain.ErrCodeAPIError, fmt.Sprintf("upstream returned status %d", status))
	}
}

// getMockWeather returns simulated seasonal weather
func (s *WeatherService) getMockWeather(zipCode string) domain.WeatherData {
	month := s.now().Month()
	var temp, feelsLike, wind float64
	var description string
	var precip domain.PrecipitationType
	var humidity int

	switch {
	case month >= 12 || month <= 2: // Winter
		temp, feelsLike, wind = 24.0, 15.0, 12.0
		description = "light snow"
		precip = domain.PrecipitationSnow
		humidity = 80
	case month >= 3 && month <= 5: // Spring
		temp, feelsLike, wind = 54.0, 52.0, 18.0
		description = "light rain"
		precip = domain.PrecipitationRain
		humidity = 70
	case month >= 6 && month <= 8: // Summer
		temp, feelsLike, wind = 86.0, 90.0, 6.0
		description = "clear sky"
		humidity = 75
	default: // Autumn
		temp, feelsLike, wind = 46.0, 41.0, 10.0
		description = "overcast clouds"
		humidity = 65
	}

	return domain.WeatherData{
		ZipCode:           zipCode,
		Location:          "Demo City",
		Temperature:       temp,
		FeelsLike:         feelsLike,
		Humidity:          humidity,
		WindSpeed:         wind,
		Description:       description,
		PrecipitationType: precip,
		Timestamp:         s.now(),
		IsMock:            true,
	}
}
