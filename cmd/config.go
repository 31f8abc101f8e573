package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Storage backends.
const (
	StorageMemory   = "memory"
	StoragePostgres = "postgres"
)

// Notification transports.
const (
	TransportLog = "log"
	TransportSQS = "sqs"
)

type Config struct {
	HTTPPort string
	MCPPort  string
	APIToken string
	MCPToken string
	LogLevel string

	VendorContact   string
	BusinessName    string
	BusinessAddress string
	BusinessMapLink string
	BusinessHours   string
	CurrencySymbol  string
	SeedMenu        bool

	Storage    string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string
	DBDriver   string

	NotifyTransport     string
	AWSRegion           string
	SQSQueueURL         string
	DispatchWorkers     int
	DispatchQueueSize   int
	OutboxRelaySchedule string
	OutboxMaxAttempts   int
}

// LoadConfig reads the environment, first loading envFile when it exists.
// Variables already set in the environment win over the file.
func LoadConfig(envFile string) (Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("failed to load %s: %w", envFile, err)
		}
	}

	var errList []error
	intVar := func(key string, def int) int {
		v, err := envInt(key, def)
		errList = append(errList, err)
		return v
	}
	boolVar := func(key string, def bool) bool {
		v, err := envBool(key, def)
		errList = append(errList, err)
		return v
	}

	cfg := Config{
		HTTPPort: envString("HTTP_PORT", "8080"),
		MCPPort:  envString("MCP_PORT", envString("PORT", "8085")),
		APIToken: os.Getenv("API_TOKEN"),
		MCPToken: os.Getenv("MCP_TOKEN"),
		LogLevel: envString("LOG_LEVEL", "info"),

		VendorContact:   envString("VENDOR_CONTACT", os.Getenv("WHATSAPP_NUMBER")),
		BusinessName:    envString("BUSINESS_NAME", "Manglore FishMonger"),
		BusinessAddress: envString("BUSINESS_ADDRESS", "Fish Market Road, Mangalore, Karnataka 575001"),
		BusinessMapLink: envString("BUSINESS_MAP_LINK", "https://maps.app.goo.gl/EXAMPLE"),
		BusinessHours:   envString("BUSINESS_HOURS", "Open daily 6AM-8PM"),
		CurrencySymbol:  envString("CURRENCY_SYMBOL", "₹"),
		SeedMenu:        boolVar("SEED_MENU", false),

		Storage:    strings.ToLower(envString("STORAGE", StorageMemory)),
		DBHost:     os.Getenv("DB_HOST"),
		DBPort:     envString("DB_PORT", "5432"),
		DBUser:     os.Getenv("DB_USER"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBName:     os.Getenv("DB_NAME"),
		DBSslMode:  envString("DB_SSLMODE", "disable"),
		DBDriver:   envString("DB_DRIVER", "pgx"),

		NotifyTransport:     strings.ToLower(envString("NOTIFY_TRANSPORT", TransportLog)),
		AWSRegion:           os.Getenv("AWS_REGION"),
		SQSQueueURL:         os.Getenv("SQS_QUEUE_URL"),
		DispatchWorkers:     intVar("DISPATCH_WORKERS", 4),
		DispatchQueueSize:   intVar("DISPATCH_QUEUE_SIZE", 256),
		OutboxRelaySchedule: os.Getenv("OUTBOX_RELAY_SCHEDULE"),
		OutboxMaxAttempts:   intVar("OUTBOX_MAX_ATTEMPTS", 5),
	}

	if err := errors.Join(append(errList, cfg.Validate())...); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the settings that have no usable default.
func (c Config) Validate() error {
	var errList []error

	if c.APIToken == "" {
		errList = append(errList, errors.New("API_TOKEN is required"))
	}
	if c.MCPToken == "" {
		errList = append(errList, errors.New("MCP_TOKEN is required"))
	}
	if strings.TrimSpace(c.VendorContact) == "" {
		errList = append(errList, errors.New("VENDOR_CONTACT is required"))
	}

	switch c.Storage {
	case StorageMemory:
	case StoragePostgres:
		if c.DBHost == "" || c.DBUser == "" || c.DBName == "" {
			errList = append(errList, errors.New("DB_HOST, DB_USER and DB_NAME are required for postgres storage"))
		}
	default:
		errList = append(errList, fmt.Errorf("STORAGE must be %q or %q, got %q", StorageMemory, StoragePostgres, c.Storage))
	}

	switch c.NotifyTransport {
	case TransportLog:
	case TransportSQS:
		if c.SQSQueueURL == "" {
			errList = append(errList, errors.New("SQS_QUEUE_URL is required for the sqs transport"))
		}
	default:
		errList = append(errList, fmt.Errorf("NOTIFY_TRANSPORT must be %q or %q, got %q", TransportLog, TransportSQS, c.NotifyTransport))
	}

	return errors.Join(errList...)
}

func envString(key, def string) string {
	if v, ok := os.LookupEnv(key); ok && strings.TrimSpace(v) != "" {
		return strings.TrimSpace(v)
	}
	return def
}

func envInt(key string, def int) (int, error) {
	v := envString(key, "")
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def, fmt.Errorf("%s must be an integer: %w", key, err)
	}
	return n, nil
}

func envBool(key string, def bool) (bool, error) {
	v := envString(key, "")
	if v == "" {
		return def, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def, fmt.Errorf("%s must be a boolean: %w", key, err)
	}
	return b, nil
}
