package config

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds every environment-derived setting. It is loaded once in
// main and handed to constructors; nothing reads the environment at call
// time.
type Config struct {
	DatabaseURL string
	Port        string
	JWTSecret   string
	RulesPhrase string

	Email   EmailConfig
	Message MessageConfig
	Storage StorageConfig
}

// EmailConfig configures the SendGrid confirmation sender.
type EmailConfig struct {
	APIKey    string
	FromEmail string
	FromName  string
}

// MessageConfig configures the Twilio staff-notification sender.
// StaffNumber is the single fixed recipient for booking alerts.
type MessageConfig struct {
	AccountSID  string
	AuthToken   string
	FromNumber  string
	StaffNumber string
}

// StorageConfig configures the S3 bucket holding car images.
type StorageConfig struct {
	Region          string
	Bucket          string
	AccessKeyID     string
	SecretAccessKey string
}

// Load reads the environment (optionally via a .env file) into a Config.
// Only DATABASE_URL is fatal here; provider credentials are checked by
// the endpoints that need them so the rest of the API stays up.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	cfg := &Config{
		DatabaseURL: os.Getenv("DATABASE_URL"),
		Port:        getEnv("PORT", "8080"),
		JWTSecret:   os.Getenv("JWT_SECRET"),
		RulesPhrase: getEnv("RULES_PHRASE", "I AGREE"),
		Email: EmailConfig{
			APIKey:    os.Getenv("SENDGRID_API_KEY"),
			FromEmail: os.Getenv("SENDGRID_FROM_EMAIL"),
			FromName:  getEnv("SENDGRID_FROM_NAME", "Saif Auto"),
		},
		Message: MessageConfig{
			AccountSID:  os.Getenv("TWILIO_ACCOUNT_SID"),
			AuthToken:   os.Getenv("TWILIO_AUTH_TOKEN"),
			FromNumber:  os.Getenv("TWILIO_FROM_NUMBER"),
			StaffNumber: os.Getenv("TWILIO_STAFF_NUMBER"),
		},
		Storage: StorageConfig{
			Region:          getEnv("AWS_REGION", "eu-west-3"),
			Bucket:          os.Getenv("AWS_S3_BUCKET"),
			AccessKeyID:     os.Getenv("AWS_ACCESS_KEY_ID"),
			SecretAccessKey: os.Getenv("AWS_SECRET_ACCESS_KEY"),
		},
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL not set")
	}
	return cfg, nil
}

// Missing reports which of the config's required fields are unset, so an
// endpoint can fail fast naming the missing variables.
func (c EmailConfig) Missing() []string {
	var missing []string
	if c.APIKey == "" {
		missing = append(missing, "SENDGRID_API_KEY")
	}
	if c.FromEmail == "" {
		missing = append(missing, "SENDGRID_FROM_EMAIL")
	}
	return missing
}

func (c MessageConfig) Missing() []string {
	var missing []string
	if c.AccountSID == "" {
		missing = append(missing, "TWILIO_ACCOUNT_SID")
	}
	if c.AuthToken == "" {
		missing = append(missing, "TWILIO_AUTH_TOKEN")
	}
	if c.FromNumber == "" {
		missing = append(missing, "TWILIO_FROM_NUMBER")
	}
	if c.StaffNumber == "" {
		missing = append(missing, "TWILIO_STAFF_NUMBER")
	}
	return missing
}

// MissingError formats a fail-fast error naming the absent variables.
func MissingError(vars []string) error {
	return fmt.Errorf("missing required environment variables: %s", strings.Join(vars, ", "))
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
