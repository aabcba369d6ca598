// internal/config/config.go
// Centralized configuration management
// Loads from environment variables with sensible defaults

package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration
type Config struct {
	// Server
	Port        string
	Environment string
	BaseURL     string // Used when building tokenized links in emails

	// Airtable (the record store; all entities live here)
	AirtableAPIKey string
	AirtableBaseID string
	AirtableURL    string

	// Redis (optional, rate limiter backing store)
	RedisURL string

	// Security
	JWTSecret         string
	BCryptCost        int
	AccessTokenExpiry time.Duration
	LinkTokenExpiry   time.Duration // cv/proceed-pass/interview/chat links

	// Matching
	MinMatchScore float64
	ShortlistSize int
	MaxCandidates int

	// Email Configuration
	EmailProvider string // "smtp", "sendgrid", or "mock"
	EmailFrom     string
	EmailFromName string

	// SMTP
	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string

	// SendGrid
	SendGridAPIKey string

	// SMS Configuration
	SMSProvider string // "twilio" or "mock"

	// Twilio
	TwilioAccountSID  string
	TwilioAuthToken   string
	TwilioPhoneNumber string

	// Google Calendar (VIP concierge free/busy lookup)
	GoogleCredentialsFile string
	ConciergeCalendarID   string

	// CV upload storage
	UseS3              bool
	AWSRegion          string
	AWSAccessKeyID     string
	AWSSecretAccessKey string
	S3Bucket           string
	LocalUploadDir     string

	// Rate Limiting (public token endpoints)
	RateLimitMax    int
	RateLimitWindow time.Duration

	// Notification Settings
	EnableEmailNotifications bool
	EnableSMSNotifications   bool
}

// Load reads configuration from environment variables
func Load() *Config {
	cfg := &Config{
		// Server
		Port:        getEnv("PORT", "8080"),
		Environment: getEnv("ENVIRONMENT", "development"),
		BaseURL:     getEnv("BASE_URL", ""),

		// Airtable
		AirtableAPIKey: getEnv("AIRTABLE_API_KEY", ""),
		AirtableBaseID: getEnv("AIRTABLE_BASE_ID", ""),
		AirtableURL:    getEnv("AIRTABLE_URL", "https://api.airtable.com/v0"),

		// Redis
		RedisURL: getEnv("REDIS_URL", ""),

		// Security
		JWTSecret:         getEnv("JWT_SECRET", "your-super-secret-key-change-this-in-production"),
		BCryptCost:        getEnvInt("BCRYPT_COST", 10),
		AccessTokenExpiry: getEnvDuration("ACCESS_TOKEN_EXPIRY", "24h"),
		LinkTokenExpiry:   getEnvDuration("LINK_TOKEN_EXPIRY", "168h"), // 7 days

		// Matching
		MinMatchScore: getEnvFloat("MIN_MATCH_SCORE", 60),
		ShortlistSize: getEnvInt("SHORTLIST_SIZE", 10),
		MaxCandidates: getEnvInt("MAX_CANDIDATES", 100),

		// Email
		EmailProvider: getEnv("EMAIL_PROVIDER", "mock"),
		EmailFrom:     getEnv("EMAIL_FROM", "hello@hellonanny.co"),
		EmailFromName: getEnv("EMAIL_FROM_NAME", "HelloNanny"),

		// SMTP
		SMTPHost:     getEnv("SMTP_HOST", ""),
		SMTPPort:     getEnvInt("SMTP_PORT", 587),
		SMTPUsername: getEnv("SMTP_USERNAME", ""),
		SMTPPassword: getEnv("SMTP_PASSWORD", ""),

		// SendGrid
		SendGridAPIKey: getEnv("SENDGRID_API_KEY", ""),

		// SMS
		SMSProvider:       getEnv("SMS_PROVIDER", "mock"),
		TwilioAccountSID:  getEnv("TWILIO_ACCOUNT_SID", ""),
		TwilioAuthToken:   getEnv("TWILIO_AUTH_TOKEN", ""),
		TwilioPhoneNumber: getEnv("TWILIO_PHONE_NUMBER", ""),

		// Calendar
		GoogleCredentialsFile: getEnv("GOOGLE_CREDENTIALS_FILE", ""),
		ConciergeCalendarID:   getEnv("CONCIERGE_CALENDAR_ID", ""),

		// Storage
		UseS3:              getEnvBool("USE_S3", false),
		AWSRegion:          getEnv("AWS_REGION", "us-east-1"),
		AWSAccessKeyID:     getEnv("AWS_ACCESS_KEY_ID", ""),
		AWSSecretAccessKey: getEnv("AWS_SECRET_ACCESS_KEY", ""),
		S3Bucket:           getEnv("S3_BUCKET_NAME", "hellonanny-cv-uploads"),
		LocalUploadDir:     getEnv("LOCAL_UPLOAD_DIR", "./uploads"),

		// Rate limiting
		RateLimitMax:    getEnvInt("RATE_LIMIT_MAX", 30),
		RateLimitWindow: getEnvDuration("RATE_LIMIT_WINDOW", "1m"),

		// Notifications
		EnableEmailNotifications: getEnvBool("ENABLE_EMAIL_NOTIFICATIONS", true),
		EnableSMSNotifications:   getEnvBool("ENABLE_SMS_NOTIFICATIONS", false),
	}

	// Set BaseURL if not provided
	if cfg.BaseURL == "" {
		if cfg.Environment == "production" {
			cfg.BaseURL = "https://app.hellonanny.co"
		} else {
			cfg.BaseURL = fmt.Sprintf("http://localhost:%s", cfg.Port)
		}
	}

	return cfg
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.JWTSecret == "your-super-secret-key-change-this-in-production" && c.Environment == "production" {
		return fmt.Errorf("JWT secret must be changed for production")
	}

	if c.AirtableAPIKey == "" || c.AirtableBaseID == "" {
		if c.Environment == "production" {
			return fmt.Errorf("Airtable API key and base ID are required")
		}
	}

	if c.MinMatchScore < 0 || c.MinMatchScore > 100 {
		return fmt.Errorf("minimum match score must be between 0 and 100")
	}

	if c.ShortlistSize < 1 || c.ShortlistSize > c.MaxCandidates {
		return fmt.Errorf("invalid shortlist size configuration")
	}

	switch c.EmailProvider {
	case "smtp":
		if c.SMTPHost == "" || c.SMTPUsername == "" || c.SMTPPassword == "" {
			if c.Environment == "production" {
				return fmt.Errorf("SMTP configuration incomplete for production")
			}
		}
	case "sendgrid":
		if c.SendGridAPIKey == "" {
			if c.Environment == "production" {
				return fmt.Errorf("SendGrid API key is required for production")
			}
		}
	case "mock":
		if c.Environment == "production" {
			return fmt.Errorf("mock email provider cannot be used in production")
		}
	default:
		return fmt.Errorf("invalid email provider: %s", c.EmailProvider)
	}

	switch c.SMSProvider {
	case "twilio":
		if c.TwilioAccountSID == "" || c.TwilioAuthToken == "" || c.TwilioPhoneNumber == "" {
			if c.EnableSMSNotifications {
				return fmt.Errorf("Twilio configuration incomplete but SMS notifications are enabled")
			}
		}
	case "mock":
		if c.Environment == "production" && c.EnableSMSNotifications {
			return fmt.Errorf("mock SMS provider cannot be used in production with SMS notifications enabled")
		}
	default:
		return fmt.Errorf("invalid SMS provider: %s", c.SMSProvider)
	}

	if c.UseS3 {
		if c.AWSAccessKeyID == "" || c.AWSSecretAccessKey == "" || c.S3Bucket == "" {
			return fmt.Errorf("S3 configuration incomplete")
		}
	} else if c.LocalUploadDir == "" {
		return fmt.Errorf("local upload directory not specified")
	}

	if c.RateLimitMax < 1 {
		return fmt.Errorf("rate limit values must be positive")
	}

	return nil
}

// IsProduction returns true if running in production
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// IsDevelopment returns true if running in development
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// Helper functions

// getEnv gets a string value from environment with a default
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt gets an integer value from environment with a default
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

// getEnvFloat gets a float value from environment with a default
func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatVal, err := strconv.ParseFloat(value, 64); err == nil {
			return floatVal
		}
	}
	return defaultValue
}

// getEnvDuration gets a duration value from environment with a default
func getEnvDuration(key string, defaultValue string) time.Duration {
	value := getEnv(key, defaultValue)
	duration, err := time.ParseDuration(value)
	if err != nil {
		duration, _ = time.ParseDuration(defaultValue)
	}
	return duration
}

// getEnvBool gets a boolean value from environment with a default
func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}
