package config

import (
	"fmt"
	"os"
	"strings"
)

const defaultDSN = "host=localhost port=5432 dbname=banking_ledger user=postgres password=postgres sslmode=disable"
const defaultHTTPAddr = ":8080"
const defaultChannelID = "LedgerApp"
const defaultChannelKey = "LedgerKey001"
const defaultMigrationsDir = "migrations"

// StorageDriver selects the ledger store backing cmd/server. The memory
// driver exists for demos and local runs without Postgres.
type StorageDriver string

const (
	StorageDriverPostgres StorageDriver = "postgres"
	StorageDriverMemory   StorageDriver = "memory"
)

type Config struct {
	DatabaseDSN   string
	HTTPAddr      string
	ChannelID     string
	ChannelKey    string
	MigrationsDir string
	StorageDriver StorageDriver
}

func Load() (Config, error) {
	dsn := strings.TrimSpace(os.Getenv("DATABASE_DSN"))
	if dsn == "" {
		dsn = defaultDSN
	}

	addr := strings.TrimSpace(os.Getenv("HTTP_ADDR"))
	if addr == "" {
		addr = defaultHTTPAddr
	}

	channelID := strings.TrimSpace(os.Getenv("CHANNEL_ID"))
	if channelID == "" {
		channelID = defaultChannelID
	}

	channelKey := strings.TrimSpace(os.Getenv("CHANNEL_KEY"))
	if channelKey == "" {
		channelKey = defaultChannelKey
	}

	migrationsDir := strings.TrimSpace(os.Getenv("MIGRATIONS_DIR"))
	if migrationsDir == "" {
		migrationsDir = defaultMigrationsDir
	}

	driver := StorageDriver(strings.ToLower(strings.TrimSpace(os.Getenv("STORAGE_DRIVER"))))
	switch driver {
	case "":
		driver = StorageDriverPostgres
	case StorageDriverPostgres, StorageDriverMemory:
	default:
		return Config{}, fmt.Errorf("unsupported STORAGE_DRIVER %q", driver)
	}

	return Config{
		DatabaseDSN:   dsn,
		HTTPAddr:      addr,
		ChannelID:     channelID,
		ChannelKey:    channelKey,
		MigrationsDir: migrationsDir,
		StorageDriver: driver,
	}, nil
}
