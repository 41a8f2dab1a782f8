package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfigDefaults(t *testing.T) {
	for _, k := range []string{"PORT", "ADVANCE_DELAY_MS", "GAME_TTL_MINUTES", "NODE_ENV", "GEMINI_API_KEY"} {
		t.Setenv(k, "")
	}
	cfg := loadConfig()
	assert.Equal(t, "5175", cfg.Port)
	assert.Equal(t, 2*time.Second, cfg.AdvanceDelay)
	assert.Equal(t, 2*time.Hour, cfg.GameTTL)
	assert.False(t, cfg.Production)
	assert.Empty(t, cfg.GeminiAPIKey)
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("ADVANCE_DELAY_MS", "500")
	t.Setenv("GAME_TTL_MINUTES", "bogus")
	t.Setenv("NODE_ENV", "production")
	t.Setenv("SPEECH_OUTPUT", "aplay")

	cfg := loadConfig()
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 500*time.Millisecond, cfg.AdvanceDelay)
	assert.Equal(t, 2*time.Hour, cfg.GameTTL, "malformed ints fall back to the default")
	assert.True(t, cfg.Production)
	assert.Equal(t, "aplay", cfg.SpeechOutput)
}

func TestNewSpeakerDisabledWithoutKey(t *testing.T) {
	spk, closeFn := newSpeaker(config{})
	assert.Nil(t, spk)
	closeFn()
}

func TestNewSpeakerWithDiskCache(t *testing.T) {
	spk, closeFn := newSpeaker(config{
		GeminiAPIKey:  "k",
		SpeechCacheDB: t.TempDir() + "/speech.db",
		SpeechOutput:  "aplay",
	})
	defer closeFn()
	assert.NotNil(t, spk)
	assert.True(t, spk.HasOutput())
}
