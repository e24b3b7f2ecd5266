package config

import (
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
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

	// FrontendBaseURL is used to build public share links.
	FrontendBaseURL    string
	CORSAllowedOrigins []string

	// Email
	ResendAPIKey string
	ResendFrom   string

	// File storage
	GCSBucket          string
	GCSCredentialsFile string
	MaxUploadBytes     int64

	// Analytics
	PosthogAPIKey string

	// Rate limits, in ulule/limiter formatted notation ("5-M", "20-H").
	LoginRateLimit  string
	PublicRateLimit string

	// Invoicing
	InvoiceNumberPrefix string
	InvoiceDueDays      int
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("ENABLE_DB_CHECK", false)
	viper.SetDefault("MIGRATIONS_PATH", "file://migrations")
	viper.SetDefault("JWT_SECRET", "a-very-secret-key-should-be-longer-and-random")
	viper.SetDefault("JWT_EXPIRY_DURATION", "24h")
	viper.SetDefault("JWT_ISSUER", "nexkeep")
	viper.SetDefault("GOOGLE_CLIENT_ID", "")
	viper.SetDefault("GOOGLE_CLIENT_SECRET", "")
	viper.SetDefault("GOOGLE_REDIRECT_URL", "")
	viper.SetDefault("FRONTEND_BASE_URL", "http://localhost:3000")
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	viper.SetDefault("RESEND_API_KEY", "")
	viper.SetDefault("RESEND_FROM", "NexKeep <noreply@resend.dev>")
	viper.SetDefault("GCS_BUCKET", "")
	viper.SetDefault("GCS_CREDENTIALS_FILE", "")
	viper.SetDefault("MAX_UPLOAD_BYTES", 10*1024*1024)
	viper.SetDefault("POSTHOG_API_KEY", "")
	viper.SetDefault("LOGIN_RATE_LIMIT", "5-M")
	viper.SetDefault("PUBLIC_RATE_LIMIT", "20-H")
	viper.SetDefault("INVOICE_NUMBER_PREFIX", "FAC")
	viper.SetDefault("INVOICE_DUE_DAYS", 30)

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	if cfg.Port == "" {
		cfg.Port = "8080"
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}

	cfg.JWTSecret = viper.GetString("JWT_SECRET")
	if cfg.JWTSecret == "" {
		cfg.JWTSecret = "a-very-secret-key-should-be-longer-and-random" // !! CHANGE IN PRODUCTION !!
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}

	jwtExpiryStr := viper.GetString("JWT_EXPIRY_DURATION")
	jwtExpiryDuration, err := time.ParseDuration(jwtExpiryStr)
	if err != nil {
		jwtExpiryDuration = 24 * time.Hour
		if jwtExpiryStr != "" {
			log.Printf("Warning: Invalid value for JWT_EXPIRY_DURATION ('%s'). Defaulting to %s.\n", jwtExpiryStr, jwtExpiryDuration.String())
		}
	}
	cfg.JWTExpiryDuration = jwtExpiryDuration

	cfg.JWTIssuer = viper.GetString("JWT_ISSUER")
	if cfg.JWTIssuer == "" {
		cfg.JWTIssuer = "nexkeep"
	}

	cfg.GoogleClientID = viper.GetString("GOOGLE_CLIENT_ID")
	cfg.GoogleClientSecret = viper.GetString("GOOGLE_CLIENT_SECRET")
	cfg.GoogleRedirectURL = viper.GetString("GOOGLE_REDIRECT_URL")
	if cfg.GoogleClientID == "" || cfg.GoogleClientSecret == "" {
		log.Println("Warning: GOOGLE_CLIENT_ID or GOOGLE_CLIENT_SECRET not set. Google sign-in will not function.")
	}

	cfg.FrontendBaseURL = strings.TrimRight(viper.GetString("FRONTEND_BASE_URL"), "/")
	cfg.CORSAllowedOrigins = splitList(viper.GetString("CORS_ALLOWED_ORIGINS"))

	cfg.ResendAPIKey = viper.GetString("RESEND_API_KEY")
	cfg.ResendFrom = viper.GetString("RESEND_FROM")
	if cfg.ResendAPIKey == "" {
		log.Println("Warning: RESEND_API_KEY not set. Emails will only be logged.")
	}

	cfg.GCSBucket = viper.GetString("GCS_BUCKET")
	cfg.GCSCredentialsFile = viper.GetString("GCS_CREDENTIALS_FILE")
	if cfg.GCSBucket == "" {
		log.Println("Warning: GCS_BUCKET not set. File uploads are disabled.")
	}
	cfg.MaxUploadBytes = viper.GetInt64("MAX_UPLOAD_BYTES")

	cfg.PosthogAPIKey = viper.GetString("POSTHOG_API_KEY")
	cfg.LoginRateLimit = viper.GetString("LOGIN_RATE_LIMIT")
	cfg.PublicRateLimit = viper.GetString("PUBLIC_RATE_LIMIT")

	cfg.InvoiceNumberPrefix = viper.GetString("INVOICE_NUMBER_PREFIX")
	cfg.InvoiceDueDays = viper.GetInt("INVOICE_DUE_DAYS")
	if cfg.InvoiceDueDays <= 0 {
		log.Printf("Warning: Invalid value for INVOICE_DUE_DAYS (%d). Defaulting to 30.\n", cfg.InvoiceDueDays)
		cfg.InvoiceDueDays = 30
	}

	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")
	cfg.EnableDBCheck = viper.GetBool("ENABLE_DB_CHECK")
	cfg.MigrationsPath = viper.GetString("MIGRATIONS_PATH")

	return cfg, nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
