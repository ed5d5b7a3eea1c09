package config

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	HTTPAddr           string        `envconfig:"HTTP_ADDR" default:":8080" validate:"required"`
	LogLevel           string        `envconfig:"LOG_LEVEL" default:"info" validate:"oneof=debug info warn error"`
	LogFormat          string        `envconfig:"LOG_FORMAT" default:"json" validate:"oneof=json text"`
	ShutdownTimeout    time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"10s" validate:"gt=0"`
	CORSAllowedOrigins []string      `envconfig:"CORS_ALLOWED_ORIGINS" default:"*" validate:"min=1"`

	// Stormglass weather provider.
	StormglassAPIKey  string        `envconfig:"STORMGLASS_API_KEY" validate:"required"`
	StormglassBaseURL string        `envconfig:"STORMGLASS_BASE_URL" default:"https://api.stormglass.io/v2" validate:"required,url"`
	StormglassTimeout time.Duration `envconfig:"STORMGLASS_TIMEOUT" default:"10s" validate:"gt=0"`
	WeatherCacheTTL   time.Duration `envconfig:"WEATHER_CACHE_TTL" default:"30m" validate:"gt=0"`
	WeatherCacheSize  int           `envconfig:"WEATHER_CACHE_SIZE" default:"1000" validate:"min=1"`

	// Number of crops returned in a recommendation.
	TopCrops int `envconfig:"TOP_CROPS" default:"5" validate:"min=1"`

	// Advisory sweep and Kafka publishing.
	KafkaBrokers       []string      `envconfig:"KAFKA_BROKERS"`
	KafkaAdvisoryTopic string        `envconfig:"KAFKA_ADVISORY_TOPIC" default:"crop-advisories" validate:"required"`
	SweepEnabled       bool          `envconfig:"SWEEP_ENABLED" default:"false"`
	SweepInterval      time.Duration `envconfig:"SWEEP_INTERVAL" default:"30m" validate:"gt=0"`
	SweepConcurrency   int           `envconfig:"SWEEP_CONCURRENCY" default:"4" validate:"min=1,max=64"`
}

// Load reads configuration from environment variables, applying defaults where
// unset. A .env file in the working directory is loaded first if present;
// variables already in the environment win.
func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}

	if err := newValidator().Struct(cfg); err != nil {
		return nil, describe(err)
	}

	if cfg.SweepEnabled && len(cfg.KafkaBrokers) == 0 {
		return nil, errors.New("SWEEP_ENABLED is true but KAFKA_BROKERS is not set")
	}

	return &cfg, nil
}

// newValidator reports fields by their environment variable name.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		if name := f.Tag.Get("envconfig"); name != "" {
			return name
		}
		return f.Name
	})
	return v
}

func describe(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("validate config: %w", err)
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		switch fe.Tag() {
		case "required":
			msgs = append(msgs, fe.Field()+" is required")
		case "oneof":
			msgs = append(msgs, fmt.Sprintf("%s must be one of [%s], got %q", fe.Field(), fe.Param(), fe.Value()))
		default:
			msgs = append(msgs, fmt.Sprintf("invalid %s: failed %s=%s (got %v)", fe.Field(), fe.Tag(), fe.Param(), fe.Value()))
		}
	}
	return errors.New(strings.Join(msgs, "; "))
}
