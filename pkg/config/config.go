package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Port                    string
	Env                     string
	FirebaseCredentialsPath string
	PostgresConnStr         string
	MongoURI                string
	MongoDatabase           string
	RedisAddr               string
	RedisPassword           string
	NatsURL                 string
	JWTSecret               string
	AutoApprovePosts        bool
	ModerationToken         string
	Storage                 StorageConfig
}

type StorageConfig struct {
	Endpoint   string
	AccessKey  string
	SecretKey  string
	UseSSL     bool
	UserBucket string
	PostBucket string
}

// Load reads the environment, after merging a .env file when one exists
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, assuming environment variables are set.")
	}
	return &Config{
		Port:                    getEnv("PORT", "8080"),
		Env:                     getEnv("ENV", "development"),
		FirebaseCredentialsPath: getEnv("FIREBASE_CREDENTIALS_PATH", "./firebase_credentials.json"),
		PostgresConnStr:         getEnv("POSTGRES_CONN_STR", ""),
		MongoURI:                getEnv("MONGO_URI", ""),
		MongoDatabase:           getEnv("MONGO_DB", "promptswipe"),
		RedisAddr:               getEnv("REDIS_ADDR", ""),
		RedisPassword:           getEnv("REDIS_PASSWORD", ""),
		NatsURL:                 getEnv("NATS_URL", ""),
		JWTSecret:               getEnv("JWT_SECRET", ""),
		AutoApprovePosts:        getBool("AUTO_APPROVE_POSTS", true),
		ModerationToken:         getEnv("MODERATION_TOKEN", ""),
		Storage: StorageConfig{
			Endpoint:   getEnv("STORAGE_ENDPOINT", "localhost:9000"),
			AccessKey:  getEnv("STORAGE_ACCESS_KEY", ""),
			SecretKey:  getEnv("STORAGE_SECRET_KEY", ""),
			UseSSL:     getBool("STORAGE_USE_SSL", false),
			UserBucket: getEnv("STORAGE_USER_BUCKET", "user-avatars"),
			PostBucket: getEnv("STORAGE_POST_BUCKET", "user-posts"),
		},
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		log.Printf("Ignoring invalid %s=%q, using %v", key, value, defaultValue)
		return defaultValue
	}
	return b
}
