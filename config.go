package main

import (
	"os"
	"strconv"
	"time"
)

// config is everything main reads from the environment (or .env).
type config struct {
	Port          string
	LogLevel      string
	ClientOrigin  string
	SessionSecret string
	Production    bool

	AdvanceDelay time.Duration
	GameTTL      time.Duration

	GeminiAPIKey  string
	GeminiModel   string
	GeminiVoice   string
	SpeechCacheDB string // empty disables the on-disk tier
	SpeechOutput  string // "" (browser only) or "aplay"
	AplayDevice   string
}

func loadConfig() config {
	return config{
		Port:          getEnv("PORT", "5175"),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		ClientOrigin:  getEnv("CLIENT_ORIGIN", "http://localhost:5173"),
		SessionSecret: getEnv("SESSION_SECRET", "dev_secret_change_me"),
		Production:    os.Getenv("NODE_ENV") == "production",

		AdvanceDelay: time.Duration(envInt("ADVANCE_DELAY_MS", 2000)) * time.Millisecond,
		GameTTL:      time.Duration(envInt("GAME_TTL_MINUTES", 120)) * time.Minute,

		GeminiAPIKey:  os.Getenv("GEMINI_API_KEY"),
		GeminiModel:   os.Getenv("GEMINI_MODEL"),
		GeminiVoice:   os.Getenv("GEMINI_VOICE"),
		SpeechCacheDB: os.Getenv("SPEECH_CACHE_DB"),
		SpeechOutput:  os.Getenv("SPEECH_OUTPUT"),
		AplayDevice:   os.Getenv("APLAY_DEVICE"),
	}
}

// getEnv returns the value of k or def if unset/empty.
func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

// envInt parses k as an int, falling back to def when unset or malformed.
func envInt(k string, def int) int {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}
