package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/joho/godotenv"
)

var loadEnv sync.Once

// Config returns the value of an environment variable after the .env file
// has been loaded.
func Config(key string) string {
	loadEnv.Do(func() {
		if err := godotenv.Load(".env"); err != nil {
			log.Println("no .env file, using process environment")
		}
	})
	return os.Getenv(key)
}

type Settings struct {
	Env       string
	Port      string
	Origins   string
	JWTSecret string
	Timezone  *time.Location

	// DBDriver is "postgres" or "sqlite". SQLite serves local runs and tests.
	DBDriver   string
	DBPath     string
	DBHost     string
	DBPort     int
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// RealtimeDriver selects the change feed: "redis" or "postgres".
	RealtimeDriver string
	RedisAddr      string
	RedisPassword  string
	RedisDB        int

	RabbitURL string

	CloudinaryCloud  string
	CloudinaryKey    string
	CloudinarySecret string
	UploadMaxWidth   int

	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	SMTPFrom     string
	OwnerEmail   string
	PublicURL    string

	BookingSerialize bool
	BookingRate      float64
	BookingBurst     int

	DigestAt        string
	ThemeResyncSpec string

	AdminUsername string
	AdminPassword string
}

func Load() Settings {
	loc, err := time.LoadLocation(envStr("APP_TIMEZONE", "Europe/Paris"))
	if err != nil {
		log.Printf("invalid APP_TIMEZONE, falling back to UTC: %v", err)
		loc = time.UTC
	}
	return Settings{
		Env:       envStr("APP_ENV", "dev"),
		Port:      envStr("APP_PORT", "8002"),
		Origins:   envStr("CORS_ORIGINS", "http://localhost:5173"),
		JWTSecret: envStr("JWT_SECRET", "changeme"),
		Timezone:  loc,

		DBDriver:   strings.ToLower(envStr("DB_DRIVER", "postgres")),
		DBPath:     envStr("DB_PATH", "restaurant.db"),
		DBHost:     envStr("DB_HOST", "localhost"),
		DBPort:     envInt("DB_PORT", 5432),
		DBUser:     envStr("DB_USER", "postgres"),
		DBPassword: Config("DB_PASSWORD"),
		DBName:     envStr("DB_NAME", "restaurant"),
		DBSSLMode:  envStr("DB_SSLMODE", "disable"),

		RealtimeDriver: strings.ToLower(envStr("REALTIME_DRIVER", "redis")),
		RedisAddr:      envStr("REDIS_ADDR", "localhost:6379"),
		RedisPassword:  Config("REDIS_PASSWORD"),
		RedisDB:        envInt("REDIS_DB", 0),

		RabbitURL: Config("RABBITMQ_URL"),

		CloudinaryCloud:  Config("CLOUDINARY_CLOUD_NAME"),
		CloudinaryKey:    Config("CLOUDINARY_API_KEY"),
		CloudinarySecret: Config("CLOUDINARY_API_SECRET"),
		UploadMaxWidth:   envInt("UPLOAD_MAX_WIDTH", 1920),

		SMTPHost:     Config("SMTP_HOST"),
		SMTPPort:     envInt("SMTP_PORT", 587),
		SMTPUsername: Config("SMTP_USERNAME"),
		SMTPPassword: Config("SMTP_PASSWORD"),
		SMTPFrom:     envStr("SMTP_FROM", "reservations@localhost"),
		OwnerEmail:   Config("OWNER_EMAIL"),
		PublicURL:    envStr("PUBLIC_URL", "http://localhost:5173"),

		BookingSerialize: envBool("BOOKING_SERIALIZE", true),
		BookingRate:      envFloat("BOOKING_RATE_PER_SEC", 0.2),
		BookingBurst:     envInt("BOOKING_BURST", 3),

		DigestAt:        envStr("DIGEST_AT", "08:00"),
		ThemeResyncSpec: envStr("THEME_RESYNC_SPEC", "*/5 * * * *"),

		AdminUsername: envStr("ADMIN_USERNAME", "admin"),
		AdminPassword: envStr("ADMIN_PASSWORD", "changeme123"),
	}
}

// DSN builds the Postgres connection string shared by gorm and pgx.
func (s Settings) DSN() string {
	return "host=" + s.DBHost +
		" port=" + strconv.Itoa(s.DBPort) +
		" user=" + s.DBUser +
		" password=" + s.DBPassword +
		" dbname=" + s.DBName +
		" sslmode=" + s.DBSSLMode
}

func envStr(k, d string) string {
	if v := Config(k); v != "" {
		return v
	}
	return d
}

func envInt(k string, d int) int {
	v := Config(k)
	if v == "" {
		return d
	}
	if n, err := strconv.Atoi(v); err == nil {
		return n
	}
	return d
}

func envFloat(k string, d float64) float64 {
	v := Config(k)
	if v == "" {
		return d
	}
	if f, err := strconv.ParseFloat(v, 64); err == nil {
		return f
	}
	return d
}

func envBool(k string, d bool) bool {
	switch strings.ToLower(Config(k)) {
	case "1", "true", "yes", "on":
		return true
	case "0", "false", "no", "off":
		return false
	}
	return d
}
