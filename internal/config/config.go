package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
)

var productionOrigins = []string{
	"https://personal-website6.vercel.app",
	"https://www.ultrawavelet.me",
	"https://ultrawavelet.me",
	"https://webprog-cecilio.vercel.app",
}

type Config struct {
	ServerPort string
	Env        string

	StoreDriver         string
	MongoURI            string
	MongoDBName         string
	StoreConnectTimeout time.Duration

	DatabaseURL string
	DBHost      string
	DBPort      string
	DBUser      string
	DBPass      string
	DBName      string
	DBSSLMode   string

	RedisURL string
	RedisTTL time.Duration

	AllowedOrigins []string

	ChatRetention  int
	ChatReadLimit  int
	PresenceWindow time.Duration
}

func LoadConfig() Config {
	env := getEnv("ENV", getEnv("NODE_ENV", "development"))

	return Config{
		ServerPort:          getEnv("PORT", "5000"),
		Env:                 env,
		StoreDriver:         strings.ToLower(getEnv("STORE_DRIVER", "mongo")),
		MongoURI:            getEnv("MONGO_URI", ""),
		MongoDBName:         getEnv("MONGO_DB_NAME", "portfolio_db"),
		StoreConnectTimeout: getEnvAsDuration("MONGO_CONNECT_TIMEOUT", 5*time.Second),
		DatabaseURL:         getEnv("DATABASE_URL", ""),
		DBHost:              getEnv("DB_HOST", "localhost"),
		DBPort:              getEnv("DB_PORT", "5432"),
		DBUser:              getEnv("DB_USER", "postgres"),
		DBPass:              getEnv("DB_PASSWORD", "password"),
		DBName:              getEnv("DB_NAME", "portfolio_db"),
		DBSSLMode:           getEnv("DB_SSLMODE", "disable"),
		RedisURL:            getEnv("REDIS_URL", ""),
		RedisTTL:            getEnvAsDuration("REDIS_TTL", 30*time.Second),
		AllowedOrigins:      allowedOrigins(env, getEnv("FRONTEND_URL", "")),
		ChatRetention:       getEnvAsInt("CHAT_RETENTION", 20),
		ChatReadLimit:       getEnvAsInt("CHAT_READ_LIMIT", 100),
		PresenceWindow:      getEnvAsDuration("PRESENCE_WINDOW", 5*time.Minute),
	}
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// AllowsAnyOrigin is true when the origin list is the single wildcard.
func (c *Config) AllowsAnyOrigin() bool {
	return len(c.AllowedOrigins) == 1 && c.AllowedOrigins[0] == "*"
}

// PostgresDSN prefers DATABASE_URL (the form Supabase hands out) over the DB_* parts.
func (c *Config) PostgresDSN() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		c.DBHost, c.DBUser, c.DBPass, c.DBName, c.DBPort, c.DBSSLMode,
	)
}

// RedactedPostgresDSN is PostgresDSN with the password masked, for logging.
func (c *Config) RedactedPostgresDSN() string {
	if c.DatabaseURL != "" {
		u, err := url.Parse(c.DatabaseURL)
		if err != nil {
			return "(unparseable DATABASE_URL)"
		}
		return u.Redacted()
	}
	masked := *c
	if masked.DBPass != "" {
		masked.DBPass = "xxxxx"
	}
	return masked.PostgresDSN()
}

// RedactedMongoURI hides credentials so the URI can be logged.
func (c *Config) RedactedMongoURI() string {
	u, err := url.Parse(c.MongoURI)
	if err != nil || u.User == nil {
		return c.MongoURI
	}
	return u.Redacted()
}

func allowedOrigins(env, raw string) []string {
	if raw != "" {
		origins := strings.Split(raw, ",")
		out := make([]string, 0, len(origins))
		for _, o := range origins {
			if o = strings.TrimSpace(o); o != "" {
				out = append(out, o)
			}
		}
		return out
	}
	if env == "production" {
		return append([]string(nil), productionOrigins...)
	}
	return []string{"*"}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	if value, exists := os.LookupEnv(key); exists {
		if v, err := strconv.Atoi(value); err == nil {
			return v
		}
	}
	return fallback
}

func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if v, err := time.ParseDuration(value); err == nil {
			return v
		}
	}
	return fallback
}
