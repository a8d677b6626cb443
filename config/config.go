package config

import (
	"os"
	"sync"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog/log"
)

// Config is a struct that holds all configuration variables of the app.
type Config struct {
	Server struct {
		Env      string `envconfig:"SERVER_ENV" default:"development"`
		LogLevel string `envconfig:"SERVER_LOG_LEVEL" default:"info"`
		Port     string `envconfig:"SERVER_PORT" default:"8080"`
		Shutdown struct {
			CleanupPeriodSeconds int64 `envconfig:"SERVER_SHUTDOWN_CLEANUP_PERIOD_SECONDS" default:"15"`
			GracePeriodSeconds   int64 `envconfig:"SERVER_SHUTDOWN_GRACE_PERIOD_SECONDS" default:"30"`
		}
	}

	App struct {
		Name     string `envconfig:"APP_NAME" default:"lodge"`
		URL      string `envconfig:"APP_URL" default:"http://localhost:8080"`
		Timezone string `envconfig:"APP_TIMEZONE" default:"UTC"`
		CORS     struct {
			AllowCredentials bool     `envconfig:"APP_CORS_ALLOW_CREDENTIALS" default:"true"`
			AllowedHeaders   []string `envconfig:"APP_CORS_ALLOWED_HEADERS" default:"Accept,Authorization,Content-Type"`
			AllowedMethods   []string `envconfig:"APP_CORS_ALLOWED_METHODS" default:"GET,POST,PUT,PATCH,DELETE,OPTIONS"`
			AllowedOrigins   []string `envconfig:"APP_CORS_ALLOWED_ORIGINS" default:"*"`
			Enable           bool     `envconfig:"APP_CORS_ENABLE" default:"true"`
			MaxAgeSeconds    int      `envconfig:"APP_CORS_MAX_AGE_SECONDS" default:"300"`
		}
		RateLimiter struct {
			Enable            bool  `envconfig:"APP_RATE_LIMITER_ENABLE" default:"false"`
			MaxRequests       int64 `envconfig:"APP_RATE_LIMITER_MAX_REQUESTS" default:"100"`
			WindowSizeSeconds int64 `envconfig:"APP_RATE_LIMITER_WINDOW_SIZE_SECONDS" default:"60"`
		}
	}

	Hotel struct {
		Name    string `envconfig:"HOTEL_NAME" default:"Hotel Grand Plaza"`
		Address string `envconfig:"HOTEL_ADDRESS" default:"123 Luxury Street, Hospitality City"`
	}

	Cache struct {
		TTL   int `envconfig:"CACHE_TTL_SECONDS" default:"300"`
		Redis struct {
			Primary struct {
				Host     string `envconfig:"CACHE_REDIS_PRIMARY_HOST" default:"localhost"`
				Port     string `envconfig:"CACHE_REDIS_PRIMARY_PORT" default:"6379"`
				Password string `envconfig:"CACHE_REDIS_PRIMARY_PASSWORD"`
				DB       int    `envconfig:"CACHE_REDIS_PRIMARY_DB" default:"0"`
			}
		}
	}

	JWT struct {
		SecretKey            string `envconfig:"JWT_SECRET_KEY"`
		AccessTokenDuration  int64  `envconfig:"JWT_ACCESS_TOKEN_DURATION_MINUTES" default:"15"`
		RefreshTokenDuration int64  `envconfig:"JWT_REFRESH_TOKEN_DURATION_MINUTES" default:"10080"`
		Issuer               string `envconfig:"JWT_ISSUER" default:"lodge"`
	}

	DB struct {
		Postgres struct {
			Prefix         string `envconfig:"DB_POSTGRES_PREFIX"`
			MigrationTable string `envconfig:"DB_POSTGRES_MIGRATION_TABLE" default:"schema_migrations"`
			MaxRetry       int    `envconfig:"DB_POSTGRES_MAX_RETRY" default:"5"`
			RetryWaitTime  int    `envconfig:"DB_POSTGRES_RETRY_WAIT_TIME_SECONDS" default:"5"`
			Read           struct {
				Host     string `envconfig:"DB_POSTGRES_READ_HOST" default:"localhost"`
				Port     string `envconfig:"DB_POSTGRES_READ_PORT" default:"5432"`
				Username string `envconfig:"DB_POSTGRES_READ_USER" default:"postgres"`
				Password string `envconfig:"DB_POSTGRES_READ_PASSWORD"`
				Name     string `envconfig:"DB_POSTGRES_READ_NAME" default:"lodge"`
				SSLMode  string `envconfig:"DB_POSTGRES_READ_SSL_MODE" default:"disable"`
			}
			Write struct {
				Host     string `envconfig:"DB_POSTGRES_WRITE_HOST" default:"localhost"`
				Port     string `envconfig:"DB_POSTGRES_WRITE_PORT" default:"5432"`
				Username string `envconfig:"DB_POSTGRES_WRITE_USER" default:"postgres"`
				Password string `envconfig:"DB_POSTGRES_WRITE_PASSWORD"`
				Name     string `envconfig:"DB_POSTGRES_WRITE_NAME" default:"lodge"`
				SSLMode  string `envconfig:"DB_POSTGRES_WRITE_SSL_MODE" default:"disable"`
			}
		}
	}

	Kafka struct {
		Enable        bool     `envconfig:"KAFKA_ENABLE" default:"false"`
		Brokers       []string `envconfig:"KAFKA_BROKERS" default:"localhost:9092"`
		ConsumerGroup string   `envconfig:"KAFKA_CONSUMER_GROUP" default:"lodge"`
		Topics        struct {
			BookingEvents string `envconfig:"KAFKA_TOPICS_BOOKING_EVENTS" default:"lodge.booking.events"`
		}
		SASL struct {
			Enable   bool   `envconfig:"KAFKA_SASL_ENABLE" default:"false"`
			Username string `envconfig:"KAFKA_SASL_USERNAME"`
			Password string `envconfig:"KAFKA_SASL_PASSWORD"`
		}
	}

	External struct {
		Otel struct {
			Enable   bool   `envconfig:"EXTERNAL_OTEL_ENABLE" default:"false"`
			Endpoint string `envconfig:"EXTERNAL_OTEL_ENDPOINT" default:"localhost:4317"`
		}
		S3 struct {
			APIEndpoint     string `envconfig:"EXTERNAL_S3_API_ENDPOINT"`
			PublicDomain    string `envconfig:"EXTERNAL_S3_PUBLIC_DOMAIN"`
			AccessKeyID     string `envconfig:"EXTERNAL_S3_ACCESS_KEY_ID"`
			SecretAccessKey string `envconfig:"EXTERNAL_S3_SECRET_ACCESS_KEY"`
			BucketName      string `envconfig:"EXTERNAL_S3_BUCKET_NAME" default:"lodge"`
			RoomImageDir    string `envconfig:"EXTERNAL_S3_ROOM_IMAGE_DIR" default:"rooms"`
		}
		PDF struct {
			BinaryPath string `envconfig:"EXTERNAL_PDF_BINARY_PATH" default:"/usr/local/bin/wkhtmltopdf"`
		}
	}
}

var (
	conf Config
	once sync.Once
)

// Get returns the singleton config instance, loading it on first use.
func Get() *Config {
	once.Do(func() {
		if err := godotenv.Load(); err != nil {
			log.Info().Msg("No .env file found, reading config from environment")
		}

		if err := envconfig.Process("", &conf); err != nil {
			log.Fatal().Err(err).Msg("Failed to process config")
			os.Exit(1)
		}
	})

	return &conf
}
