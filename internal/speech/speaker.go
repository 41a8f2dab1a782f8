// Package speech pronounces syllable labels: label → pronunciation table →
// remote synthesizer → PCM decode → memo cache → audio output.
//
// Nothing in this package is allowed to disturb the game. Play swallows and
// logs every error; Clip returns errors only to callers that asked for bytes
// (the HTTP handler), which answer with an error status and move on.
package speech

import (
	"context"
	"fmt"

	"github.com/patrickmn/go-cache"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/singleflight"
)

// Options configures NewSpeaker. Disk and Output are optional.
type Options struct {
	SampleRate int
	Disk       PCMStore
	Output     Output
}

// Speaker resolves, synthesizes, caches and plays labels.
type Speaker struct {
	synth      Synthesizer
	disk       PCMStore
	out        Output
	sampleRate int

	// memo holds decoded clips keyed by the original label. The vocabulary
	// is a few dozen syllables, so entries never expire.
	memo  *cache.Cache
	group singleflight.Group
}

// NewSpeaker returns a Speaker backed by synth.
func NewSpeaker(synth Synthesizer, opts Options) *Speaker {
	if opts.SampleRate <= 0 {
		opts.SampleRate = DefaultSampleRate
	}
	return &Speaker{
		synth:      synth,
		disk:       opts.Disk,
		out:        opts.Output,
		sampleRate: opts.SampleRate,
		memo:       cache.New(cache.NoExpiration, 0),
	}
}

// Cached reports whether label has a decoded clip in memory.
func (s *Speaker) Cached(label string) bool {
	_, ok := s.memo.Get(label)
	return ok
}

// HasOutput reports whether Play will produce sound locally.
func (s *Speaker) HasOutput() bool { return s.out != nil }

// Clip returns the decoded audio for label, synthesizing it on a miss.
// Concurrent misses for the same label share one provider call.
func (s *Speaker) Clip(ctx context.Context, label string) (Clip, error) {
	if v, ok := s.memo.Get(label); ok {
		return v.(Clip), nil
	}
	v, err, _ := s.group.Do(label, func() (any, error) {
		if v, ok := s.memo.Get(label); ok {
			return v.(Clip), nil
		}
		raw, err := s.fetch(ctx, label)
		if err != nil {
			return Clip{}, err
		}
		clip := Decode(raw, s.sampleRate)
		s.memo.Set(label, clip, cache.NoExpiration)
		return clip, nil
	})
	if err != nil {
		return Clip{}, err
	}
	return v.(Clip), nil
}

// fetch loads raw PCM from disk or the synthesizer, writing back to disk on
// a provider hit.
func (s *Speaker) fetch(ctx context.Context, label string) ([]byte, error) {
	if s.disk != nil {
		raw, ok, err := s.disk.Load(ctx, label)
		if err != nil {
			log.Warn().Err(err).Str("label", label).Msg("speech disk cache read")
		} else if ok {
			return raw, nil
		}
	}
	if s.synth == nil {
		return nil, fmt.Errorf("speech: no synthesizer configured")
	}
	raw, err := s.synth.Synthesize(ctx, Pronunciation(label))
	if err != nil {
		return nil, err
	}
	if len(raw) < 2 {
		return nil, ErrNoAudio
	}
	if s.disk != nil {
		if err := s.disk.Store(ctx, label, raw); err != nil {
			log.Warn().Err(err).Str("label", label).Msg("speech disk cache write")
		}
	}
	return raw, nil
}

// Play resolves label and sends it to the output. Errors are logged, never
// returned. Without an output it only warms the cache.
func (s *Speaker) Play(ctx context.Context, label string) {
	clip, err := s.Clip(ctx, label)
	if err != nil {
		log.Error().Err(err).Str("label", label).Msg("speech synthesis failed")
		return
	}
	if s.out == nil {
		return
	}
	if err := s.out.Play(ctx, clip); err != nil {
		log.Error().Err(err).Str("label", label).Msg("speech playback failed")
	}
}

// PlayAsync runs Play on its own goroutine so callers never wait on audio.
func (s *Speaker) PlayAsync(label string) {
	go s.Play(context.Background(), label)
}
