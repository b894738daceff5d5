package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config is loaded once at process start and handed to constructors; core
// logic never reads the environment directly.
type Config struct {
	Port                 string
	DatabaseURL          string
	JWTSecret            string
	JWTRefreshSecret     string
	SessionTTL           time.Duration
	RefreshTTL           time.Duration
	VerificationCodeTTL  time.Duration
	ResetTokenTTL        time.Duration
	AllowOrigins         []string
	FrontendBaseURL      string
	LogstashTCPAddr      string
	SMTPHost             string
	SMTPPort             string
	SMTPUsername         string
	SMTPPassword         string
	SMTPFrom             string
	MinIOEndpoint        string
	MinIOAccessKey       string
	MinIOSecretKey       string
	MinIOUseSSL          bool
	MinIOBucketProfile   string
	MinIOPublicURL       string
	ProfilePhotoMaxBytes int64
}

func Load() Config {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found: %v", err)
	}

	photoMax := int64(5 * 1024 * 1024)
	if v, err := strconv.ParseInt(getenv("PROFILE_PHOTO_MAX_BYTES", "5242880"), 10, 64); err == nil && v > 0 {
		photoMax = v
	}

	return Config{
		Port:                 getenv("PORT", "8080"),
		DatabaseURL:          must("DATABASE_URL"),
		JWTSecret:            must("JWT_SECRET"),
		JWTRefreshSecret:     must("JWT_REFRESH_SECRET"),
		SessionTTL:           duration("SESSION_TTL", 24*time.Hour),
		RefreshTTL:           duration("REFRESH_TTL", 7*24*time.Hour),
		VerificationCodeTTL:  duration("VERIFICATION_CODE_TTL", 10*time.Minute),
		ResetTokenTTL:        duration("RESET_TOKEN_TTL", time.Hour),
		AllowOrigins:         splitAndTrim(getenv("ALLOW_ORIGINS", "*")),
		FrontendBaseURL:      getenv("FRONTEND_BASE_URL", "http://localhost:3000"),
		LogstashTCPAddr:      getenv("LOGSTASH_TCP_ADDR", ""),
		SMTPHost:             getenv("SMTP_HOST", ""),
		SMTPPort:             getenv("SMTP_PORT", ""),
		SMTPUsername:         getenv("SMTP_USERNAME", ""),
		SMTPPassword:         getenv("SMTP_PASSWORD", ""),
		SMTPFrom:             getenv("SMTP_FROM", ""),
		MinIOEndpoint:        getenv("MINIO_ENDPOINT", ""),
		MinIOAccessKey:       getenv("MINIO_ACCESS_KEY", ""),
		MinIOSecretKey:       getenv("MINIO_SECRET_KEY", ""),
		MinIOUseSSL:          getenv("MINIO_USE_SSL", "false") == "true",
		MinIOBucketProfile:   getenv("MINIO_BUCKET_PROFILE", "school-profile"),
		MinIOPublicURL:       getenv("MINIO_PUBLIC_URL", ""),
		ProfilePhotoMaxBytes: photoMax,
	}
}

func duration(k string, d time.Duration) time.Duration {
	raw := getenv(k, "")
	if raw == "" {
		return d
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil || parsed <= 0 {
		log.Printf("Warning: invalid duration for %s: %q, using default %s", k, raw, d)
		return d
	}
	return parsed
}

func splitAndTrim(input string) []string {
	parts := strings.Split(input, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		trimmed := strings.TrimSpace(p)
		if trimmed != "" {
			out = append(out, trimmed)
		}
	}
	if len(out) == 0 {
		return []string{"*"}
	}
	return out
}

func getenv(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func must(k string) string {
	v := os.Getenv(k)
	if v == "" {
		panic("missing env: " + k)
	}
	return v
}
