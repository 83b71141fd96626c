package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	ServerPort string

	JWTSecret      string
	JWTExpiryHours int

	// VerifierIDs is the allow-list of user ids permitted to flip
	// verified flags. Loaded once at startup, read-only afterwards.
	VerifierIDs []string

	UploadDir    string
	UploadPrefix string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	SuggestionLimit  int
	SuggestionTTLSec int

	LogLevel string
	LogJSON  bool
	LogFile  string

	AuthRatePerSec float64
	AuthRateBurst  int

	CORSOrigins []string
}

func Load() *Config {
	err := godotenv.Load()
	if err != nil {
		log.Println("⚠️  No .env file found, using system environment variables")
	}

	return &Config{
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "pedalboard_user"),
		DBPassword: getEnv("DB_PASSWORD", "pedalboard_pass"),
		DBName:     getEnv("DB_NAME", "pedalboard_db"),
		ServerPort: getEnv("SERVER_PORT", "8080"),

		JWTSecret:      getEnv("JWT_SECRET", "supersecretkey"),
		JWTExpiryHours: getEnvInt("JWT_EXPIRY_HOURS", 24),

		VerifierIDs: getEnvList("VERIFIER_IDS"),

		UploadDir:    getEnv("UPLOAD_DIR", "./uploads"),
		UploadPrefix: getEnv("UPLOAD_PREFIX", "/uploads"),

		RedisAddr:     getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getEnvInt("REDIS_DB", 0),

		SuggestionLimit:  getEnvInt("SUGGESTION_LIMIT", 20),
		SuggestionTTLSec: getEnvInt("SUGGESTION_TTL_SEC", 60),

		LogLevel: getEnv("LOG_LEVEL", "info"),
		LogJSON:  getEnvBool("LOG_JSON", false),
		LogFile:  getEnv("LOG_FILE", ""),

		AuthRatePerSec: getEnvFloat("AUTH_RATE_PER_SEC", 5),
		AuthRateBurst:  getEnvInt("AUTH_RATE_BURST", 10),

		CORSOrigins: getEnvList("CORS_ORIGINS"),
	}
}

func getEnv(key, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if value, exists := os.LookupEnv(key); exists {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultVal
}

func getEnvFloat(key string, defaultVal float64) float64 {
	if value, exists := os.LookupEnv(key); exists {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultVal
}

func getEnvBool(key string, defaultVal bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultVal
}

// getEnvList splits a comma-separated variable, dropping empty entries.
func getEnvList(key string) []string {
	raw, exists := os.LookupEnv(key)
	if !exists {
		return nil
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
