package domain

import "time"

// PrecipitationType is the kind of precipitation reported for a location.
// The zero value means no precipitation.
type PrecipitationType string

const (
	PrecipitationNone PrecipitationType = ""
	PrecipitationRain PrecipitationType = "rain"
	PrecipitationSnow PrecipitationType = "snow"
)

// WeatherData represents current weather conditions for a US zip code.
// Temperatures are in Fahrenheit and wind speed in mph.
type WeatherData struct {
	ZipCode                  string            `json:"zip_code"`
	Location                 string            `json:"location"`
	Temperature              float64           `json:"temperature"`
	FeelsLike                float64           `json:"feels_like"`
	Humidity                 int               `json:"humidity"`
	WindSpeed                float64           `json:"wind_speed"`
	Description              string            `json:"description"`
	PrecipitationType        PrecipitationType `json:"precipitation_type,omitempty"`
	PrecipitationProbability *float64          `json:"precipitation_probability,omitempty"`
	Timestamp                time.Time         `json:"timestamp"`
	IsMock                   bool              `json:"is_mock"`
}

// HasPrecipitation reports whether any precipitation is expected.
func (w WeatherData) HasPrecipitation() bool {
	return w.PrecipitationType != PrecipitationNone
}

// WeatherResponse wraps weather data with metadata
type WeatherResponse struct {
	Data    WeatherData `json:"data"`
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
}
