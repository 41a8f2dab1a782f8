package main

import (
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/pinyin-pop/apps/go-server/internal/httpserver"
	"github.com/robalobadob/pinyin-pop/apps/go-server/internal/speech"
	"github.com/robalobadob/pinyin-pop/apps/go-server/internal/store"
	"github.com/robalobadob/pinyin-pop/apps/go-server/internal/words"
)

func main() {
	_ = godotenv.Load()
	cfg := loadConfig()
	if lvl, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}

	if err := words.Init(); err != nil {
		log.Fatal().Err(err).Msg("failed to load word lists")
	}

	spk, closeSpeech := newSpeaker(cfg)
	defer closeSpeech()

	mem := store.NewMemoryStore(cfg.GameTTL)
	srv := httpserver.New(mem, httpserver.Config{
		ClientOrigin:  cfg.ClientOrigin,
		SessionSecret: cfg.SessionSecret,
		SessionTTL:    cfg.GameTTL,
		Secure:        cfg.Production,
		AdvanceDelay:  cfg.AdvanceDelay,
		Lists:         words.Get(),
		Speaker:       spk,
	})
	log.Info().Str("port", cfg.Port).Bool("speech", spk != nil).Msg("starting go-server")
	if err := srv.Start(":" + cfg.Port); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}

// newSpeaker wires the speech adapter from config. Without an API key the
// game runs silently.
func newSpeaker(cfg config) (*speech.Speaker, func()) {
	if cfg.GeminiAPIKey == "" {
		log.Warn().Msg("GEMINI_API_KEY not set; speech disabled")
		return nil, func() {}
	}
	opts := speech.Options{SampleRate: speech.DefaultSampleRate}
	closeFn := func() {}

	if cfg.SpeechCacheDB != "" {
		disk, err := speech.OpenSQLiteStore(cfg.SpeechCacheDB, speech.DefaultSampleRate)
		if err != nil {
			log.Fatal().Err(err).Str("dsn", cfg.SpeechCacheDB).Msg("open speech cache")
		}
		opts.Disk = disk
		closeFn = func() { _ = disk.Close() }
	}
	switch cfg.SpeechOutput {
	case "":
	case "aplay":
		opts.Output = speech.AplayOutput{Device: cfg.AplayDevice}
	default:
		log.Warn().Str("output", cfg.SpeechOutput).Msg("unknown SPEECH_OUTPUT; ignoring")
	}

	synth := speech.NewGemini(cfg.GeminiAPIKey, cfg.GeminiModel, cfg.GeminiVoice)
	return speech.NewSpeaker(synth, opts), closeFn
}
