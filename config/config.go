package config

import (
	"errors"
	"fmt"
	"io/fs"
	"sync"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog/log"
)

type Config struct {
	Server struct {
		Env      string `envconfig:"ENV"`
		LogLevel string `envconfig:"LOG_LEVEL" default:"info"`
		Port     string `envconfig:"PORT"      default:"8080"`
		Host     string `envconfig:"HOST"`
		Shutdown struct {
			CleanupPeriodSeconds int64 `envconfig:"CLEANUP_PERIOD_SECONDS"`
			GracePeriodSeconds   int64 `envconfig:"GRACE_PERIOD_SECONDS"`
		} `envconfig:"SHUTDOWN"`
	} `envconfig:"SERVER"`

	App struct {
		Name     string `envconfig:"APP_NAME"`
		Timezone string `envconfig:"TIMEZONE" default:"UTC"`
		CORS     struct {
			AllowCredentials bool     `envconfig:"ALLOW_CREDENTIALS"`
			AllowedHeaders   []string `envconfig:"ALLOWED_HEADERS"`
			AllowedMethods   []string `envconfig:"ALLOWED_METHODS"`
			AllowedOrigins   []string `envconfig:"ALLOWED_ORIGINS"`
			Enable           bool     `envconfig:"ENABLE"`
			MaxAgeSeconds    int      `envconfig:"MAX_AGE_SECONDS"`
		} `envconfig:"CORS"`
		RateLimiter struct {
			Enable        bool `envconfig:"ENABLE"`
			MaxRequests   int  `envconfig:"MAX_REQUESTS"   default:"60"`
			WindowSeconds int  `envconfig:"WINDOW_SECONDS" default:"60"`
		} `envconfig:"RATE_LIMITER"`
		APIKey  string `envconfig:"API_KEY"`
		Booking struct {
			RefundWindowHours        float64  `envconfig:"REFUND_WINDOW_HOURS"         default:"24"`
			DepositAmount            float64  `envconfig:"DEPOSIT_AMOUNT"              default:"50"`
			Currency                 string   `envconfig:"CURRENCY"                    default:"usd"`
			ServiceAreaZipPrefixes   []string `envconfig:"SERVICE_AREA_ZIP_PREFIXES"`
			SideEffectTimeoutSeconds int      `envconfig:"SIDE_EFFECT_TIMEOUT_SECONDS" default:"10"`
		} `envconfig:"BOOKING"`
		Cookie struct {
			Name   string `envconfig:"NAME"   default:"token"`
			Secure bool   `envconfig:"SECURE"`
		} `envconfig:"COOKIE"`
	} `envconfig:"APP"`

	Cache struct {
		Redis struct {
			Primary struct {
				Host     string `envconfig:"HOST"`
				Port     string `envconfig:"PORT"`
				Password string `envconfig:"PASSWORD"`
				DB       int    `envconfig:"DB"`
			} `envconfig:"PRIMARY"`
		} `envconfig:"REDIS"`
		TTL int `envconfig:"TTL" default:"300"`
	} `envconfig:"CACHE"`

	JWT struct {
		AccessSecret     string `envconfig:"ACCESS_SECRET"`
		RefreshSecret    string `envconfig:"REFRESH_SECRET"`
		AccessExpireMin  int    `envconfig:"ACCESS_EXPIRE_MIN"  default:"15"`
		RefreshExpireMin int    `envconfig:"REFRESH_EXPIRE_MIN" default:"10080"`
	} `envconfig:"JWT"`

	DB struct {
		Postgres struct {
			MaxRetry       int    `envconfig:"MAX_RETRY"`
			RetryWaitTime  int    `envconfig:"RETRY_WAIT_TIME"`
			MigrationTable string `envconfig:"MIGRATION_TABLE" default:"schema_migrations"`
			AutoMigrate    bool   `envconfig:"AUTO_MIGRATE"`
			Prefix         string `envconfig:"PREFIX"`
			Read           struct {
				Host     string `envconfig:"HOST"`
				Port     string `envconfig:"PORT"`
				Username string `envconfig:"USER"`
				Password string `envconfig:"PASSWORD"`
				Name     string `envconfig:"NAME"`
				Timezone string `envconfig:"TIMEZONE"`
				SSLMode  string `envconfig:"SSL_MODE"`
			} `envconfig:"READ"`
			Write struct {
				Host     string `envconfig:"HOST"`
				Port     string `envconfig:"PORT"`
				Username string `envconfig:"USER"`
				Password string `envconfig:"PASSWORD"`
				Name     string `envconfig:"NAME"`
				Timezone string `envconfig:"TIMEZONE"`
				SSLMode  string `envconfig:"SSL_MODE"`
			} `envconfig:"WRITE"`
		} `envconfig:"POSTGRES"`
	} `envconfig:"DB"`

	Kafka struct {
		Brokers []string `envconfig:"BROKERS"`
		SASL    struct {
			Username string `envconfig:"USERNAME"`
			Password string `envconfig:"PASSWORD"`
		} `envconfig:"SASL"`
		Topics struct {
			Booking string `envconfig:"BOOKING" default:"booking-events"`
			Payment string `envconfig:"PAYMENT" default:"payment-events"`
		} `envconfig:"TOPICS"`
	} `envconfig:"KAFKA"`

	External struct {
		Otel struct {
			Endpoint string `envconfig:"ENDPOINT"`
		} `envconfig:"OTEL"`
		S3 struct {
			BucketName      string `envconfig:"BUCKET_NAME"`
			PublicDomain    string `envconfig:"PUBLIC_DOMAIN"`
			APIEndpoint     string `envconfig:"API_ENDPOINT"`
			AccessKeyID     string `envconfig:"ACCESS_KEY_ID"`
			SecretAccessKey string `envconfig:"SECRET_ACCESS_KEY"`
			InviteDirectory string `envconfig:"INVITE_DIRECTORY" default:"invites"`
		} `envconfig:"S3"`
		Stripe struct {
			SecretKey     string `envconfig:"SECRET_KEY"`
			WebhookSecret string `envconfig:"WEBHOOK_SECRET"`
		} `envconfig:"STRIPE"`
		MailerSend struct {
			APIKey     string `envconfig:"API_KEY"`
			FromName   string `envconfig:"FROM_NAME"`
			FromEmail  string `envconfig:"FROM_EMAIL"`
			AdminEmail string `envconfig:"ADMIN_EMAIL"`
		} `envconfig:"MAILERSEND"`
	} `envconfig:"EXTERNAL"`
}

var (
	conf    *Config
	confErr error
	once    sync.Once
)

// Load merges path into the process environment, when the file exists, and
// decodes the environment into a Config. Exported variables win over the file.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(path); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}

		log.Warn().Str("path", path).Msg("env file not found, using process environment")
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate rejects settings the services cannot run with.
func (c *Config) Validate() error {
	var errs []error

	if c.App.RateLimiter.Enable && (c.App.RateLimiter.MaxRequests <= 0 || c.App.RateLimiter.WindowSeconds <= 0) {
		errs = append(errs, errors.New("rate limiter needs positive MAX_REQUESTS and WINDOW_SECONDS"))
	}

	if c.App.Booking.RefundWindowHours < 0 {
		errs = append(errs, errors.New("REFUND_WINDOW_HOURS must not be negative"))
	}

	if c.App.Booking.DepositAmount < 0 {
		errs = append(errs, errors.New("DEPOSIT_AMOUNT must not be negative"))
	}

	if c.JWT.AccessExpireMin < 0 || c.JWT.RefreshExpireMin < 0 {
		errs = append(errs, errors.New("JWT expiry must not be negative"))
	}

	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	return nil
}

// Get loads .env once and returns the shared Config. A broken configuration
// is fatal.
func Get() *Config {
	once.Do(func() {
		conf, confErr = Load(".env")
	})

	if confErr != nil {
		log.Fatal().Err(confErr).Msg("failed to load configuration")
	}

	return conf
}
