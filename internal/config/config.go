package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string

	ServerPort string

	JWTSecret string
	// IdPSharedSecret verifies identity assertions from the federated
	// identity provider.
	IdPSharedSecret string

	AccessTokenMaxAge  int // seconds
	RefreshTokenMaxAge int // seconds, sessions without "remember"
	RememberMeMaxAge   int // seconds, sessions with "remember"

	PostsPerPage int

	RedisURL        string
	MailWorkerCount int

	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	MailSender   string

	TranslatorURL    string
	TranslatorAPIKey string
}

func LoadConfig() (*Config, error) {
	err := godotenv.Load()
	if err != nil {
		log.Println("No .env file found or error loading it, relying on environment variables")
	}

	return &Config{
		DBHost:     os.Getenv("DB_HOST"),
		DBPort:     os.Getenv("DB_PORT"),
		DBUser:     os.Getenv("DB_USER"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBName:     os.Getenv("DB_NAME"),

		ServerPort: envString("SERVER_PORT", "8080"),

		JWTSecret:       os.Getenv("JWT_SECRET"),
		IdPSharedSecret: os.Getenv("IDP_SHARED_SECRET"),

		AccessTokenMaxAge:  envInt("ACCESS_TOKEN_MAX_AGE", 900),
		RefreshTokenMaxAge: envInt("REFRESH_TOKEN_MAX_AGE", 86400),
		RememberMeMaxAge:   envInt("REMEMBER_ME_MAX_AGE", 2592000),

		PostsPerPage: envInt("POSTS_PER_PAGE", 10),

		RedisURL:        envString("REDIS_URL", "redis://localhost:6379"),
		MailWorkerCount: envInt("MAIL_WORKER_COUNT", 2),

		SMTPHost:     os.Getenv("SMTP_HOST"),
		SMTPPort:     envInt("SMTP_PORT", 587),
		SMTPUsername: os.Getenv("SMTP_USERNAME"),
		SMTPPassword: os.Getenv("SMTP_PASSWORD"),
		MailSender:   os.Getenv("MAIL_SENDER"),

		TranslatorURL:    os.Getenv("TRANSLATOR_URL"),
		TranslatorAPIKey: os.Getenv("TRANSLATOR_API_KEY"),
	}, nil
}

func envString(key, fallback string) string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	return v
}

func envInt(key string, fallback int) int {
	v, err := strconv.Atoi(os.Getenv(key))
	if err != nil || v <= 0 {
		return fallback
	}
	return v
}
