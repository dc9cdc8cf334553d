package configs

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

type Cfg struct {
	WeatherAPIKey   string `mapstructure:"WEATHER_API_KEY"`
	WeatherProvider string `mapstructure:"WEATHER_PROVIDER"`
	WeatherBaseURL  string `mapstructure:"WEATHER_BASE_URL"`
	HTTPPort        string `mapstructure:"HTTP_PORT"`
	RequestTimeout  int    `mapstructure:"REQUEST_TIMEOUT"`
	ZipkinURL       string `mapstructure:"ZIPKIN_URL"`
	LogLevel        string `mapstructure:"LOG_LEVEL"`
}

// LoadConfig reads a .env file from path when one exists and falls back to
// environment variables for anything not set there.
func LoadConfig(path string) (*Cfg, error) {
	v := viper.New()
	v.SetConfigFile(filepath.Join(path, ".env"))
	v.SetConfigType("env")
	v.AutomaticEnv()

	v.SetDefault("WEATHER_API_KEY", "")
	v.SetDefault("WEATHER_PROVIDER", "weatherapi")
	v.SetDefault("WEATHER_BASE_URL", "https://api.weatherapi.com/v1")
	v.SetDefault("HTTP_PORT", "8080")
	v.SetDefault("REQUEST_TIMEOUT", 10)
	v.SetDefault("ZIPKIN_URL", "http://zipkin:9411/api/v2/spans")
	v.SetDefault("LOG_LEVEL", "info")

	if err := v.ReadInConfig(); err != nil {
		var pathErr *os.PathError
		if !errors.As(err, &pathErr) {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	var cfg Cfg
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}
	if cfg.WeatherAPIKey == "" {
		return nil, errors.New("WEATHER_API_KEY is required")
	}
	if cfg.WeatherProvider != "weatherapi" && cfg.WeatherProvider != "openweathermap" {
		return nil, fmt.Errorf("unknown weather provider %q", cfg.WeatherProvider)
	}
	if cfg.RequestTimeout <= 0 {
		return nil, fmt.Errorf("invalid request timeout %d", cfg.RequestTimeout)
	}
	return &cfg, nil
}
