package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Default source locations.
const (
	DefaultRegistryURL       = "http://chargepoints.dft.gov.uk/api/retrieve/registry/format/csv/"
	DefaultRegistryFile      = "/tmp/national-charge-point-registry.csv"
	DefaultVehiclesFile      = "veh0171.ods"
	DefaultVehiclesLinkRegex = `veh0171.*\.(ods|xlsx)$`
)

// Config holds all configuration for the application.
type Config struct {
	RegistryURL         string
	RegistryFile        string
	RegistryEncoding    string
	VehiclesFile        string
	VehiclesPageURL     string
	VehiclesLinkPattern string
	ChartsDir           string
	InServiceStatus     string
	PartialYear         int
	RatioYear           int
	DBConnString        string
	DBName              string
	Port                string
	Origin              string
	Serve               bool
	LogLevel            string
	HTTPTimeout         time.Duration
}

// LoadFromEnv loads configuration from environment variables,
// values from an optional .env file are applied first.
func LoadFromEnv() *Config {
	_ = godotenv.Load()

	return &Config{
		RegistryURL:         getEnv("REGISTRY_URL", DefaultRegistryURL),
		RegistryFile:        getEnv("REGISTRY_FILE", DefaultRegistryFile),
		RegistryEncoding:    getEnv("REGISTRY_ENCODING", ""),
		VehiclesFile:        getEnv("VEHICLES_FILE", DefaultVehiclesFile),
		VehiclesPageURL:     getEnv("VEHICLES_PAGE_URL", ""),
		VehiclesLinkPattern: getEnv("VEHICLES_LINK_PATTERN", DefaultVehiclesLinkRegex),
		ChartsDir:           getEnv("CHARTS_DIR", "charts"),
		InServiceStatus:     getEnv("IN_SERVICE_STATUS", "In service"),
		PartialYear:         getEnvInt("PARTIAL_YEAR", 2021),
		RatioYear:           getEnvInt("RATIO_YEAR", 2020),
		DBConnString:        getEnv("DB_CONN_STRING", ""),
		DBName:              getEnv("DB_NAME", "evcharging"),
		Port:                getEnv("PORT", "8080"),
		Origin:              getEnv("ORIGIN", "*"),
		Serve:               getEnvBool("SERVE", false),
		LogLevel:            getEnv("LOG_LEVEL", "info"),
		HTTPTimeout:         getEnvDuration("HTTP_TIMEOUT", 2*time.Minute),
	}
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	val, err := strconv.Atoi(getEnv(key, ""))
	if err != nil {
		return fallback
	}
	return val
}

func getEnvBool(key string, fallback bool) bool {
	val, err := strconv.ParseBool(getEnv(key, ""))
	if err != nil {
		return fallback
	}
	return val
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	val, err := time.ParseDuration(getEnv(key, ""))
	if err != nil {
		return fallback
	}
	return val
}
