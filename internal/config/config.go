package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all runtime configuration loaded from environment variables.
type Config struct {
	AppPort string
	AppEnv  string

	AWSRegion      string
	AWSEndpointURL string // empty in prod, set to LocalStack URL in dev
	AWSAccessKeyID string
	AWSSecretKey   string
	DynamoTables   DynamoTables
	S3BucketName   string

	JWTSecret string
	JWTExpiry time.Duration

	SMTPHost     string
	SMTPPort     string
	SMTPFrom     string
	SMTPUsername string
	SMTPPassword string

	SNSRegion string

	GoogleClientID        string
	GoogleCredentialsJSON string // service-account JSON for the Sheets mirror
	SheetID               string // spreadsheet the signup/contact mirror appends to

	AllowedOrigins []string // CORS allowed origins
}

// DynamoTables holds the DynamoDB table name for each entity.
type DynamoTables struct {
	Users     string
	Products  string
	Blogs     string
	Countries string
	States    string
	Cities    string
	Bookings  string
	Contacts  string
}

// ErrMissingJWTSecret is returned when JWT_SECRET is unset. The server
// refuses to start without it rather than falling back to a default.
var ErrMissingJWTSecret = errors.New("JWT_SECRET is required")

// Load reads all configuration from environment variables.
func Load() (*Config, error) {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return nil, ErrMissingJWTSecret
	}

	return &Config{
		AppPort: getEnv("APP_PORT", "3000"),
		AppEnv:  getEnv("APP_ENV", "development"),

		AWSRegion:      getEnv("AWS_REGION", "us-east-1"),
		AWSEndpointURL: getEnv("AWS_ENDPOINT_URL", ""),
		AWSAccessKeyID: getEnv("AWS_ACCESS_KEY_ID", ""),
		AWSSecretKey:   getEnv("AWS_SECRET_ACCESS_KEY", ""),
		DynamoTables: DynamoTables{
			Users:     getEnv("DYNAMO_TABLE_USERS", "users"),
			Products:  getEnv("DYNAMO_TABLE_PRODUCTS", "products"),
			Blogs:     getEnv("DYNAMO_TABLE_BLOGS", "blogs"),
			Countries: getEnv("DYNAMO_TABLE_COUNTRIES", "countries"),
			States:    getEnv("DYNAMO_TABLE_STATES", "states"),
			Cities:    getEnv("DYNAMO_TABLE_CITIES", "cities"),
			Bookings:  getEnv("DYNAMO_TABLE_BOOKINGS", "bookings"),
			Contacts:  getEnv("DYNAMO_TABLE_CONTACTS", "contact_messages"),
		},
		S3BucketName: getEnv("S3_BUCKET_NAME", "friskytrails-media"),

		JWTSecret: secret,
		JWTExpiry: time.Duration(getEnvInt("JWT_EXPIRY_DAYS", 7)) * 24 * time.Hour,

		SMTPHost:     getEnv("SMTP_HOST", "localhost"),
		SMTPPort:     getEnv("SMTP_PORT", "1025"),
		SMTPFrom:     getEnv("SMTP_FROM", "noreply@friskytrails.in"),
		SMTPUsername: getEnv("SMTP_USERNAME", ""),
		SMTPPassword: getEnv("SMTP_PASSWORD", ""),

		SNSRegion: getEnv("SNS_REGION", "us-east-1"),

		GoogleClientID:        getEnv("GOOGLE_CLIENT_ID", ""),
		GoogleCredentialsJSON: getEnv("GOOGLE_CREDENTIALS_JSON", ""),
		SheetID:               getEnv("GOOGLE_SHEET_ID", ""),

		AllowedOrigins: strings.Split(getEnv("ALLOWED_ORIGINS", "*"), ","),
	}, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
