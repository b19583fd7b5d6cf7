// internal/config/config.go
package config

import (
	"log"
	"os"
	"sync"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Cache    CacheConfig
	Rates    RatesConfig
	Export   ExportConfig
	Drive    DriveConfig
}

type ServerConfig struct {
	Port           string
	Mode           string
	ReadTimeout    int
	WriteTimeout   int
	AllowedOrigins []string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type CacheConfig struct {
	Enabled           bool
	RedisURL          string
	RedisHost         string
	RedisPort         string
	RedisPassword     string
	RedisDB           int
	SummaryTTLSeconds int
}

// RatesConfig holds the default display currency and the conversion rates,
// expressed as units of the currency per one GBP.
type RatesConfig struct {
	DisplayCurrency string
	USDPerGBP       float64
	EURPerGBP       float64
}

type ExportConfig struct {
	OutputDir string
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	Region    string
	UseSSL    bool
}

type DriveConfig struct {
	CredentialsJSON string
	FolderID        string
	DownloadDir     string
}

var (
	once     sync.Once
	instance *Config
)

func Load() *Config {
	once.Do(func() {
		// Load .env file if it exists
		_ = godotenv.Load()

		// Set default values
		viper.SetDefault("SERVER_PORT", "8080")
		viper.SetDefault("SERVER_MODE", "debug")
		viper.SetDefault("SERVER_READ_TIMEOUT", 15)
		viper.SetDefault("SERVER_WRITE_TIMEOUT", 15)
		viper.SetDefault("SERVER_ALLOWED_ORIGINS", []string{"*"})
		viper.SetDefault("DB_HOST", "localhost")
		viper.SetDefault("DB_PORT", "5432")
		viper.SetDefault("DB_USER", "postgres")
		viper.SetDefault("DB_PASSWORD", "postgres")
		viper.SetDefault("DB_NAME", "hypevault")
		viper.SetDefault("DB_SSLMODE", "disable")
		viper.SetDefault("CACHE_ENABLED", false)
		viper.SetDefault("REDIS_URL", "")
		viper.SetDefault("REDIS_HOST", "127.0.0.1")
		viper.SetDefault("REDIS_PORT", "6379")
		viper.SetDefault("REDIS_PASSWORD", "")
		viper.SetDefault("REDIS_DB", 0)
		viper.SetDefault("CACHE_SUMMARY_TTL_SECONDS", 60)
		viper.SetDefault("DISPLAY_CURRENCY", "GBP")
		viper.SetDefault("RATE_USD_PER_GBP", 1.27)
		viper.SetDefault("RATE_EUR_PER_GBP", 1.17)
		viper.SetDefault("EXPORT_OUTPUT_DIR", "./data/reports")
		viper.SetDefault("EXPORT_S3_ENDPOINT", "")
		viper.SetDefault("EXPORT_S3_ACCESS_KEY", "")
		viper.SetDefault("EXPORT_S3_SECRET_KEY", "")
		viper.SetDefault("EXPORT_S3_BUCKET", "")
		viper.SetDefault("EXPORT_S3_REGION", "us-east-1")
		viper.SetDefault("EXPORT_S3_USE_SSL", true)
		viper.SetDefault("DRIVE_FOLDER_ID", "")
		viper.SetDefault("DRIVE_DOWNLOAD_DIR", "./data/imports")

		// Read from environment variables
		viper.AutomaticEnv()

		// Ensure local working directories exist
		ensureDir(viper.GetString("EXPORT_OUTPUT_DIR"))
		ensureDir(viper.GetString("DRIVE_DOWNLOAD_DIR"))

		instance = &Config{
			Server: ServerConfig{
				Port:           viper.GetString("SERVER_PORT"),
				Mode:           viper.GetString("SERVER_MODE"),
				ReadTimeout:    viper.GetInt("SERVER_READ_TIMEOUT"),
				WriteTimeout:   viper.GetInt("SERVER_WRITE_TIMEOUT"),
				AllowedOrigins: viper.GetStringSlice("SERVER_ALLOWED_ORIGINS"),
			},
			Database: DatabaseConfig{
				Host:     viper.GetString("DB_HOST"),
				Port:     viper.GetString("DB_PORT"),
				User:     viper.GetString("DB_USER"),
				Password: viper.GetString("DB_PASSWORD"),
				DBName:   viper.GetString("DB_NAME"),
				SSLMode:  viper.GetString("DB_SSLMODE"),
			},
			Cache: CacheConfig{
				Enabled:           viper.GetBool("CACHE_ENABLED"),
				RedisURL:          viper.GetString("REDIS_URL"),
				RedisHost:         viper.GetString("REDIS_HOST"),
				RedisPort:         viper.GetString("REDIS_PORT"),
				RedisPassword:     viper.GetString("REDIS_PASSWORD"),
				RedisDB:           viper.GetInt("REDIS_DB"),
				SummaryTTLSeconds: viper.GetInt("CACHE_SUMMARY_TTL_SECONDS"),
			},
			Rates: RatesConfig{
				DisplayCurrency: viper.GetString("DISPLAY_CURRENCY"),
				USDPerGBP:       viper.GetFloat64("RATE_USD_PER_GBP"),
				EURPerGBP:       viper.GetFloat64("RATE_EUR_PER_GBP"),
			},
			Export: ExportConfig{
				OutputDir: viper.GetString("EXPORT_OUTPUT_DIR"),
				Endpoint:  viper.GetString("EXPORT_S3_ENDPOINT"),
				AccessKey: viper.GetString("EXPORT_S3_ACCESS_KEY"),
				SecretKey: viper.GetString("EXPORT_S3_SECRET_KEY"),
				Bucket:    viper.GetString("EXPORT_S3_BUCKET"),
				Region:    viper.GetString("EXPORT_S3_REGION"),
				UseSSL:    viper.GetBool("EXPORT_S3_USE_SSL"),
			},
			Drive: DriveConfig{
				CredentialsJSON: os.Getenv("GOOGLE_DRIVE_CREDENTIALS_JSON"),
				FolderID:        viper.GetString("DRIVE_FOLDER_ID"),
				DownloadDir:     viper.GetString("DRIVE_DOWNLOAD_DIR"),
			},
		}
	})

	return instance
}

func ensureDir(dir string) {
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		if err := os.MkdirAll(dir, 0755); err != nil {
			log.Fatalf("Failed to create directory %s: %v", dir, err)
		}
	}
}
