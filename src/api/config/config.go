package config

import (
	"log"
	"os"
	"strconv"
)

type Config struct {
	MySQLDSN  string
	RedisURL  string
	JWTSecret string
	Port      string

	// Session lifetime in hours; the Redis liveness key and the JWT exp
	// claim share it.
	SessionTTLHours int

	// Google provider is credential-free per user; the process-wide key
	// is used instead.
	GeminiAPIKey string

	// Federated login.
	GoogleClientID     string
	GoogleClientSecret string
	GoogleRedirectURL  string

	// Social publishing targets.
	DiscordBotToken  string
	DiscordChannelID string
	SocialWebhooks   map[string]string // platform -> webhook URL
}

func getenv(key, def string) string {
	v := os.Getenv(key)
	if v == "" {
		if def == "" {
			log.Fatalf("missing env %s", key)
		}
		return def
	}
	return v
}

func Load() Config {
	ttl, _ := strconv.Atoi(getenv("SESSION_TTL_HOURS", "24"))

	webhooks := map[string]string{}
	if u := os.Getenv("FACEBOOK_WEBHOOK_URL"); u != "" {
		webhooks["facebook"] = u
	}
	if u := os.Getenv("TWITTER_WEBHOOK_URL"); u != "" {
		webhooks["twitter"] = u
	}

	return Config{
		MySQLDSN:        getenv("MYSQL_DSN", "draftforge:draftforge@tcp(127.0.0.1:3306)/draftforge?parseTime=true"),
		RedisURL:        getenv("REDIS_URL", "redis://127.0.0.1:6379/0"),
		JWTSecret:       getenv("JWT_SECRET", ""),
		Port:            getenv("PORT", "8080"),
		SessionTTLHours: ttl,

		GeminiAPIKey: os.Getenv("GEMINI_API_KEY"),

		GoogleClientID:     os.Getenv("GOOGLE_CLIENT_ID"),
		GoogleClientSecret: os.Getenv("GOOGLE_CLIENT_SECRET"),
		GoogleRedirectURL:  os.Getenv("GOOGLE_REDIRECT_URL"),

		DiscordBotToken:  os.Getenv("DISCORD_BOT_TOKEN"),
		DiscordChannelID: os.Getenv("DISCORD_CHANNEL_ID"),
		SocialWebhooks:   webhooks,
	}
}
