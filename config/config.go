package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

var (
	Port    string
	LogMode string

	// Durable store
	StoreBackend string
	SQLitePath   string
	DatabaseURL  string
	MongoURI     string
	DBName       string
	RedisAddr    string
	RedisPrefix  string
	StoreTimeout time.Duration

	// Recommendation gateway
	GeminiAPIKey      string
	GeminiChatModel   string
	GeminiImageModel  string
	ImageMaxDimension int

	// Closet behaviour
	DeleteGrace time.Duration

	// Optional S3 media offload
	AWSRegion     string
	AWSBucketName string
)

// LoadConfig loads environment variables from .env file
func LoadConfig() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using default values or system environment variables")
	}

	Port = getenv("PORT", "8080")
	LogMode = getenv("LOG_MODE", "dev")

	StoreBackend = strings.ToLower(getenv("STORE_BACKEND", "sqlite"))
	SQLitePath = getenv("SQLITE_PATH", "closet.sqlite")
	DatabaseURL = os.Getenv("DATABASE_URL")
	MongoURI = getenv("MONGO_URI", "mongodb://localhost:27017/")
	DBName = getenv("DB_NAME", "closet")
	RedisAddr = getenv("REDIS_ADDR", "localhost:6379")
	RedisPrefix = getenv("REDIS_PREFIX", "closet:")
	StoreTimeout = getDuration("STORE_TIMEOUT", 5*time.Second)

	// Not validated here: a missing key only fails the first gateway call.
	GeminiAPIKey = os.Getenv("GEMINI_API_KEY")
	GeminiChatModel = getenv("GEMINI_CHAT_MODEL", "gemini-2.5-flash")
	GeminiImageModel = getenv("GEMINI_IMAGE_MODEL", "gemini-2.5-flash-image-preview")
	ImageMaxDimension = getInt("IMAGE_MAX_DIMENSION", 1024)

	DeleteGrace = time.Duration(getInt("DELETE_GRACE_MS", 300)) * time.Millisecond

	AWSRegion = getenv("AWS_REGION", "us-east-1")
	AWSBucketName = os.Getenv("AWS_BUCKET_NAME")
}

func getenv(name, def string) string {
	v := strings.TrimSpace(os.Getenv(name))
	if v == "" {
		return def
	}
	return v
}

func getInt(name string, def int) int {
	v := strings.TrimSpace(os.Getenv(name))
	if v == "" {
		return def
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("Invalid %s=%q, using %d", name, v, def)
		return def
	}
	return i
}

func getDuration(name string, def time.Duration) time.Duration {
	v := strings.TrimSpace(os.Getenv(name))
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		log.Printf("Invalid %s=%q, using %s", name, v, def)
		return def
	}
	return d
}
