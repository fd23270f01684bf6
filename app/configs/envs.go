package configs

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type ENV struct {
	AppEnv string
	AppURL string
	Port   string
	LogSQL bool

	DBDriver   string
	DBHost     string
	DBUser     string
	DBPassword string
	DBName     string
	DBPort     string
	DBSSLMode  string

	AppAuthKey string
	AppEncKey  string
	CSRFKey    string

	StorageDriver    string
	StorageDir       string
	StoragePublicURL string
	S3Bucket         string
	S3Region         string
	S3Endpoint       string
	S3AccessKey      string
	S3SecretKey      string

	CurrencySymbol string
}

// LoadEnv reads the process environment, loading .env first when present.
func LoadEnv() ENV {
	if err := godotenv.Load(".env"); err != nil {
		log.Println("Warning: No .env file found ")
	}

	return ENV{
		AppEnv:           getEnv("APP_ENV", "development"),
		AppURL:           getEnv("APP_URL", "http://localhost:8080"),
		Port:             getEnv("APP_PORT", ":8080"),
		LogSQL:           os.Getenv("DB_LOG_SQL") == "true",
		DBDriver:         getEnv("DB_DRIVER", "mysql"),
		DBHost:           getEnv("DB_HOST", "127.0.0.1"),
		DBUser:           os.Getenv("DB_USER"),
		DBPassword:       os.Getenv("DB_PASSWORD"),
		DBName:           os.Getenv("DB_NAME"),
		DBPort:           os.Getenv("DB_PORT"),
		DBSSLMode:        getEnv("DB_SSLMODE", "disable"),
		AppAuthKey:       os.Getenv("APP_AUTH_KEY"),
		AppEncKey:        os.Getenv("APP_ENC_KEY"),
		CSRFKey:          os.Getenv("CSRF_KEY"),
		StorageDriver:    getEnv("STORAGE_DRIVER", "disk"),
		StorageDir:       getEnv("STORAGE_DIR", "uploads"),
		StoragePublicURL: getEnv("STORAGE_PUBLIC_URL", "/uploads"),
		S3Bucket:         os.Getenv("S3_BUCKET"),
		S3Region:         getEnv("S3_REGION", "us-east-1"),
		S3Endpoint:       os.Getenv("S3_ENDPOINT"),
		S3AccessKey:      os.Getenv("S3_ACCESS_KEY"),
		S3SecretKey:      os.Getenv("S3_SECRET_KEY"),
		CurrencySymbol:   getEnv("CURRENCY_SYMBOL", "Rs. "),
	}
}

func (e ENV) IsProduction() bool {
	return e.AppEnv == "production"
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
