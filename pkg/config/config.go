package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	OCR      OCRConfig
	Storage  StorageConfig
	Parser   ParserConfig
	Logger   LoggerConfig
}

type ServerConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type OCRConfig struct {
	TessdataDir string
	Languages   string
}

type StorageConfig struct {
	UploadDir string
}

type ParserConfig struct {
	// DayFirstDates flips ambiguous slash dates from the MM/DD default
	// to DD/MM for firms whose clients print day-first receipts.
	DayFirstDates bool
}

type LoggerConfig struct {
	Level string
}

func Load() (*Config, error) {
	// Try to load .env from the current directory or project root;
	// absent files are fine, plain environment variables still apply
	// (useful for Docker/K8s).
	envFiles := []string{".env", "../.env", "../../.env"}
	for _, envFile := range envFiles {
		if err := godotenv.Load(envFile); err == nil {
			break
		}
	}

	readTimeout, _ := strconv.Atoi(getEnv("SERVER_READ_TIMEOUT", "30"))
	writeTimeout, _ := strconv.Atoi(getEnv("SERVER_WRITE_TIMEOUT", "30"))
	dayFirst := getEnv("PARSER_DAY_FIRST_DATES", "false") == "true"

	return &Config{
		Server: ServerConfig{
			Port:         getEnv("SERVER_PORT", "8080"),
			ReadTimeout:  time.Duration(readTimeout) * time.Second,
			WriteTimeout: time.Duration(writeTimeout) * time.Second,
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			DBName:   getEnv("DB_NAME", "receiptai"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		OCR: OCRConfig{
			TessdataDir: getEnv("TESSDATA_PREFIX", ""),
			Languages:   getEnv("OCR_LANGUAGES", "eng"),
		},
		Storage: StorageConfig{
			UploadDir: getEnv("UPLOAD_DIR", "uploads"),
		},
		Parser: ParserConfig{
			DayFirstDates: dayFirst,
		},
		Logger: LoggerConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
	}, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
