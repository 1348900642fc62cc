package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config contains application configuration parameters
type Config struct {
	// Server configuration
	Port         string        `json:"port"`
	Host         string        `json:"host"`
	ReadTimeout  time.Duration `json:"read_timeout"`
	WriteTimeout time.Duration `json:"write_timeout"`
	IdleTimeout  time.Duration `json:"idle_timeout"`

	// Backend REST API configuration
	BackendBaseURL    string        `json:"backend_base_url"`
	IndicatorsBaseURL string        `json:"indicators_base_url"`
	GeocoderBaseURL   string        `json:"geocoder_base_url"`
	HTTPClientTimeout time.Duration `json:"http_client_timeout"`

	// Database configuration
	DBName          string        `json:"db_name"`
	DBPath          string        `json:"db_path"`
	MaxOpenConns    int           `json:"max_open_conns"`
	MaxIdleConns    int           `json:"max_idle_conns"`
	ConnMaxLifetime time.Duration `json:"conn_max_lifetime"`

	// Redis configuration
	RedisAddr     string `json:"redis_addr"`
	RedisPassword string `json:"redis_password"`
	RedisDB       int    `json:"redis_db"`

	// App configuration
	Environment string `json:"environment"` // development, production
	LogLevel    string `json:"log_level"`   // debug, info, warn, error

	// Business logic configuration
	BundleDiscountRate float64       `json:"bundle_discount_rate"` // discount applied to the full plan bundle
	PaymentSettleDelay time.Duration `json:"payment_settle_delay"` // processing -> paid
	PaymentPollPeriod  time.Duration `json:"payment_poll_period"`
	IndicatorCacheTTL  time.Duration `json:"indicator_cache_ttl"`
}

// NewConfig creates and returns a new configuration instance
func NewConfig() (*Config, error) {
	cfg := &Config{
		// Server defaults
		Port:         ":8081",
		Host:         "0.0.0.0",
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,

		// Backend defaults
		BackendBaseURL:    "http://localhost:8080",
		IndicatorsBaseURL: "https://mindicador.cl",
		GeocoderBaseURL:   "https://nominatim.openstreetmap.org",
		HTTPClientTimeout: 15 * time.Second,

		// Database defaults
		DBName:          "tupyme.db",
		DBPath:          "./data/",
		MaxOpenConns:    25,
		MaxIdleConns:    5,
		ConnMaxLifetime: 5 * time.Minute,

		// Redis defaults
		RedisAddr:     "localhost:6379",
		RedisPassword: "",
		RedisDB:       0,

		// App defaults
		Environment: "development",
		LogLevel:    "info",

		// Business defaults
		BundleDiscountRate: 0.15,
		PaymentSettleDelay: 4 * time.Second,
		PaymentPollPeriod:  time.Second,
		IndicatorCacheTTL:  time.Hour,
	}

	// Override with environment variables if set
	if port := os.Getenv("PORT"); port != "" {
		if port[0] != ':' {
			cfg.Port = ":" + port
		} else {
			cfg.Port = port
		}
	}

	if host := os.Getenv("HOST"); host != "" {
		cfg.Host = host
	}

	if backendURL := os.Getenv("BACKEND_BASE_URL"); backendURL != "" {
		cfg.BackendBaseURL = backendURL
	}

	if indicatorsURL := os.Getenv("INDICATORS_BASE_URL"); indicatorsURL != "" {
		cfg.IndicatorsBaseURL = indicatorsURL
	}

	if geocoderURL := os.Getenv("GEOCODER_BASE_URL"); geocoderURL != "" {
		cfg.GeocoderBaseURL = geocoderURL
	}

	if dbName := os.Getenv("DB_NAME"); dbName != "" {
		cfg.DBName = dbName
	}

	if dbPath := os.Getenv("DB_PATH"); dbPath != "" {
		cfg.DBPath = dbPath
	}

	if redisAddr := os.Getenv("REDIS_ADDR"); redisAddr != "" {
		cfg.RedisAddr = redisAddr
	}

	if redisPassword := os.Getenv("REDIS_PASSWORD"); redisPassword != "" {
		cfg.RedisPassword = redisPassword
	}

	if env := os.Getenv("ENVIRONMENT"); env != "" {
		cfg.Environment = env
	}

	if logLevel := os.Getenv("LOG_LEVEL"); logLevel != "" {
		cfg.LogLevel = logLevel
	}

	// Parse numeric environment variables
	if redisDB := os.Getenv("REDIS_DB"); redisDB != "" {
		if db, err := strconv.Atoi(redisDB); err == nil {
			cfg.RedisDB = db
		}
	}

	if maxOpenConns := os.Getenv("DB_MAX_OPEN_CONNS"); maxOpenConns != "" {
		if conns, err := strconv.Atoi(maxOpenConns); err == nil {
			cfg.MaxOpenConns = conns
		}
	}

	if maxIdleConns := os.Getenv("DB_MAX_IDLE_CONNS"); maxIdleConns != "" {
		if conns, err := strconv.Atoi(maxIdleConns); err == nil {
			cfg.MaxIdleConns = conns
		}
	}

	if discountRate := os.Getenv("BUNDLE_DISCOUNT_RATE"); discountRate != "" {
		if rate, err := strconv.ParseFloat(discountRate, 64); err == nil {
			cfg.BundleDiscountRate = rate
		}
	}

	// Parse duration environment variables
	if readTimeout := os.Getenv("READ_TIMEOUT"); readTimeout != "" {
		if timeout, err := time.ParseDuration(readTimeout); err == nil {
			cfg.ReadTimeout = timeout
		}
	}

	if writeTimeout := os.Getenv("WRITE_TIMEOUT"); writeTimeout != "" {
		if timeout, err := time.ParseDuration(writeTimeout); err == nil {
			cfg.WriteTimeout = timeout
		}
	}

	if idleTimeout := os.Getenv("IDLE_TIMEOUT"); idleTimeout != "" {
		if timeout, err := time.ParseDuration(idleTimeout); err == nil {
			cfg.IdleTimeout = timeout
		}
	}

	if clientTimeout := os.Getenv("HTTP_CLIENT_TIMEOUT"); clientTimeout != "" {
		if timeout, err := time.ParseDuration(clientTimeout); err == nil {
			cfg.HTTPClientTimeout = timeout
		}
	}

	if connMaxLifetime := os.Getenv("DB_CONN_MAX_LIFETIME"); connMaxLifetime != "" {
		if lifetime, err := time.ParseDuration(connMaxLifetime); err == nil {
			cfg.ConnMaxLifetime = lifetime
		}
	}

	if settleDelay := os.Getenv("PAYMENT_SETTLE_DELAY"); settleDelay != "" {
		if delay, err := time.ParseDuration(settleDelay); err == nil {
			cfg.PaymentSettleDelay = delay
		}
	}

	if pollPeriod := os.Getenv("PAYMENT_POLL_PERIOD"); pollPeriod != "" {
		if period, err := time.ParseDuration(pollPeriod); err == nil {
			cfg.PaymentPollPeriod = period
		}
	}

	if cacheTTL := os.Getenv("INDICATOR_CACHE_TTL"); cacheTTL != "" {
		if ttl, err := time.ParseDuration(cacheTTL); err == nil {
			cfg.IndicatorCacheTTL = ttl
		}
	}

	return cfg, nil
}

// IsDevelopment returns true if the environment is development
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction returns true if the environment is production
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// GetDatabasePath returns the full path to the database file
func (c *Config) GetDatabasePath() string {
	return c.DBPath + c.DBName
}

// GetServerAddress returns the server address
func (c *Config) GetServerAddress() string {
	return c.Host + c.Port
}

// ValidateConfig validates the configuration
func (c *Config) ValidateConfig() error {
	if c.BackendBaseURL == "" {
		return fmt.Errorf("backend base URL is required")
	}

	if c.IndicatorsBaseURL == "" {
		return fmt.Errorf("indicators base URL is required")
	}

	if c.GeocoderBaseURL == "" {
		return fmt.Errorf("geocoder base URL is required")
	}

	if c.DBName == "" {
		return fmt.Errorf("database name is required")
	}

	if c.BundleDiscountRate < 0 || c.BundleDiscountRate >= 1 {
		return fmt.Errorf("bundle discount rate must be in [0, 1)")
	}

	if c.PaymentSettleDelay <= 0 {
		return fmt.Errorf("payment settle delay must be positive")
	}

	if c.PaymentPollPeriod <= 0 {
		return fmt.Errorf("payment poll period must be positive")
	}

	if c.IndicatorCacheTTL <= 0 {
		return fmt.Errorf("indicator cache TTL must be positive")
	}

	return nil
}
