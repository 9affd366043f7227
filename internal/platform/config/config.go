package config

import (
	"log"
	"time"

	"github.com/SscSPs/life_management_app/internal/core/domain"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	defaultPort              = "8080"
	defaultJWTSecret         = "a-very-secret-key-should-be-longer-and-random"
	defaultJWTExpiry         = time.Hour
	defaultJWTIssuer         = "life-management-app"
	defaultAMQPExchange      = "lma.finance"
	defaultLoginRateLimit    = "5-M"
	defaultOverviewWindow    = 6
	defaultMigrationsPath    = "file://migrations"
	defaultFrontendBaseURL   = "http://localhost:3000"
	defaultDefaultCurrency   = domain.GBP
	maxOverviewWindowMonths  = 60
)

// Config holds application configuration.
type Config struct {
	DatabaseURL       string
	Port              string
	IsProduction      bool
	EnableDBCheck     bool
	MigrationsPath    string
	JWTSecret         string
	JWTExpiryDuration time.Duration
	JWTIssuer         string

	// External OAuth Providers
	GoogleClientID     string
	GoogleClientSecret string
	GoogleRedirectURL  string
	FrontendBaseURL    string

	PosthogAPIKey string

	// Ledger events. An empty AMQPURL disables publishing.
	AMQPURL      string
	AMQPExchange string

	LoginRateLimit       string
	OverviewWindowMonths int
	DefaultCurrency      domain.Currency
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	v := viper.New()
	v.SetDefault("PGSQL_URL", "")
	v.SetDefault("PORT", defaultPort)
	v.SetDefault("IS_PRODUCTION", false)
	v.SetDefault("ENABLE_DB_CHECK", false)
	v.SetDefault("MIGRATIONS_PATH", defaultMigrationsPath)
	v.SetDefault("JWT_SECRET", "")
	v.SetDefault("JWT_EXPIRY_DURATION", defaultJWTExpiry.String())
	v.SetDefault("JWT_ISSUER", defaultJWTIssuer)
	v.SetDefault("GOOGLE_CLIENT_ID", "")
	v.SetDefault("GOOGLE_CLIENT_SECRET", "")
	v.SetDefault("GOOGLE_REDIRECT_URL", "")
	v.SetDefault("FRONTEND_BASE_URL", defaultFrontendBaseURL)
	v.SetDefault("POSTHOG_API_KEY", "")
	v.SetDefault("AMQP_URL", "")
	v.SetDefault("AMQP_EXCHANGE", defaultAMQPExchange)
	v.SetDefault("LOGIN_RATE_LIMIT", defaultLoginRateLimit)
	v.SetDefault("OVERVIEW_WINDOW_MONTHS", defaultOverviewWindow)
	v.SetDefault("DEFAULT_CURRENCY", string(defaultDefaultCurrency))

	// Environment variables override .env values and defaults.
	v.AutomaticEnv()

	return fromViper(v), nil
}

func fromViper(v *viper.Viper) *Config {
	cfg := &Config{
		DatabaseURL:        v.GetString("PGSQL_URL"),
		Port:               v.GetString("PORT"),
		IsProduction:       v.GetBool("IS_PRODUCTION"),
		EnableDBCheck:      v.GetBool("ENABLE_DB_CHECK"),
		MigrationsPath:     v.GetString("MIGRATIONS_PATH"),
		JWTSecret:          v.GetString("JWT_SECRET"),
		JWTIssuer:          v.GetString("JWT_ISSUER"),
		GoogleClientID:     v.GetString("GOOGLE_CLIENT_ID"),
		GoogleClientSecret: v.GetString("GOOGLE_CLIENT_SECRET"),
		GoogleRedirectURL:  v.GetString("GOOGLE_REDIRECT_URL"),
		FrontendBaseURL:    v.GetString("FRONTEND_BASE_URL"),
		PosthogAPIKey:      v.GetString("POSTHOG_API_KEY"),
		AMQPURL:            v.GetString("AMQP_URL"),
		AMQPExchange:       v.GetString("AMQP_EXCHANGE"),
		LoginRateLimit:     v.GetString("LOGIN_RATE_LIMIT"),
	}

	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}
	if cfg.Port == "" {
		cfg.Port = defaultPort
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}
	if cfg.MigrationsPath == "" {
		cfg.MigrationsPath = defaultMigrationsPath
	}

	if cfg.JWTSecret == "" {
		cfg.JWTSecret = defaultJWTSecret // !! CHANGE IN PRODUCTION !!
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}

	jwtExpiryStr := v.GetString("JWT_EXPIRY_DURATION")
	jwtExpiry, err := time.ParseDuration(jwtExpiryStr)
	if err != nil || jwtExpiry <= 0 {
		jwtExpiry = defaultJWTExpiry
		log.Printf("Warning: Invalid value for JWT_EXPIRY_DURATION ('%s'). Defaulting to %s.\n", jwtExpiryStr, jwtExpiry)
	}
	cfg.JWTExpiryDuration = jwtExpiry

	if cfg.JWTIssuer == "" {
		cfg.JWTIssuer = defaultJWTIssuer
		log.Printf("Warning: JWT_ISSUER not set. Defaulting to %s.\n", cfg.JWTIssuer)
	}

	if cfg.GoogleClientID == "" || cfg.GoogleClientSecret == "" || cfg.GoogleRedirectURL == "" {
		log.Println("Warning: GOOGLE_CLIENT_ID, GOOGLE_CLIENT_SECRET or GOOGLE_REDIRECT_URL not set. Google sign-in will not function.")
	}
	if cfg.AMQPURL == "" {
		log.Println("Warning: AMQP_URL not set. Ledger events will not be published.")
	}
	if cfg.AMQPExchange == "" {
		cfg.AMQPExchange = defaultAMQPExchange
	}
	if cfg.LoginRateLimit == "" {
		cfg.LoginRateLimit = defaultLoginRateLimit
	}

	window := v.GetInt("OVERVIEW_WINDOW_MONTHS")
	if window < 1 || window > maxOverviewWindowMonths {
		log.Printf("Warning: Invalid value for OVERVIEW_WINDOW_MONTHS (%d). Defaulting to %d.\n", window, defaultOverviewWindow)
		window = defaultOverviewWindow
	}
	cfg.OverviewWindowMonths = window

	currency, err := domain.ParseCurrency(v.GetString("DEFAULT_CURRENCY"))
	if err != nil {
		log.Printf("Warning: Invalid value for DEFAULT_CURRENCY ('%s'). Defaulting to %s.\n", v.GetString("DEFAULT_CURRENCY"), defaultDefaultCurrency)
		currency = defaultDefaultCurrency
	}
	cfg.DefaultCurrency = currency

	return cfg
}
