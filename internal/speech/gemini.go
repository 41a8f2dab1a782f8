package speech

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const (
	DefaultGeminiBaseURL = "https://generativelanguage.googleapis.com"
	DefaultGeminiModel   = "gemini-2.5-flash-preview-tts"
	DefaultGeminiVoice   = "Kore"
)

// ErrNoAudio means the provider answered without any audio payload.
var ErrNoAudio = errors.New("speech: no audio in response")

// Synthesizer turns text into raw mono s16le PCM at DefaultSampleRate.
type Synthesizer interface {
	Synthesize(ctx context.Context, text string) ([]byte, error)
}

// GeminiSynthesizer calls the Gemini generateContent REST endpoint with the
// AUDIO response modality.
type GeminiSynthesizer struct {
	APIKey  string
	Model   string
	Voice   string
	BaseURL string
	Client  *http.Client
}

// NewGemini returns a synthesizer with default model, voice and a traced client.
func NewGemini(apiKey, model, voice string) *GeminiSynthesizer {
	if model == "" {
		model = DefaultGeminiModel
	}
	if voice == "" {
		voice = DefaultGeminiVoice
	}
	return &GeminiSynthesizer{
		APIKey:  apiKey,
		Model:   model,
		Voice:   voice,
		BaseURL: DefaultGeminiBaseURL,
		Client: &http.Client{
			Timeout:   20 * time.Second,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}
}

type geminiPart struct {
	Text       string `json:"text,omitempty"`
	InlineData *struct {
		MimeType string `json:"mimeType"`
		Data     string `json:"data"`
	} `json:"inlineData,omitempty"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiRequest struct {
	Contents         []geminiContent `json:"contents"`
	GenerationConfig struct {
		ResponseModalities []string `json:"responseModalities"`
		SpeechConfig       struct {
			VoiceConfig struct {
				PrebuiltVoiceConfig struct {
					VoiceName string `json:"voiceName"`
				} `json:"prebuiltVoiceConfig"`
			} `json:"voiceConfig"`
		} `json:"speechConfig"`
	} `json:"generationConfig"`
}

type geminiResponse struct {
	Candidates []struct {
		Content geminiContent `json:"content"`
	} `json:"candidates"`
}

// Synthesize requests speech for text and returns the decoded PCM bytes.
func (g *GeminiSynthesizer) Synthesize(ctx context.Context, text string) ([]byte, error) {
	var req geminiRequest
	req.Contents = []geminiContent{{Parts: []geminiPart{{Text: text}}}}
	req.GenerationConfig.ResponseModalities = []string{"AUDIO"}
	req.GenerationConfig.SpeechConfig.VoiceConfig.PrebuiltVoiceConfig.VoiceName = g.Voice

	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("speech: encode request: %w", err)
	}
	url := g.BaseURL + "/v1beta/models/" + g.Model + ":generateContent"
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("speech: build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-goog-api-key", g.APIKey)

	client := g.Client
	if client == nil {
		client = http.DefaultClient
	}
	res, err := client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("speech: request: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode/100 != 2 {
		msg, _ := io.ReadAll(io.LimitReader(res.Body, 512))
		return nil, fmt.Errorf("speech: provider status %d: %s", res.StatusCode, bytes.TrimSpace(msg))
	}

	var out geminiResponse
	if err := json.NewDecoder(res.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("speech: decode response: %w", err)
	}
	if len(out.Candidates) == 0 || len(out.Candidates[0].Content.Parts) == 0 ||
		out.Candidates[0].Content.Parts[0].InlineData == nil ||
		out.Candidates[0].Content.Parts[0].InlineData.Data == "" {
		return nil, ErrNoAudio
	}
	raw, err := base64.StdEncoding.DecodeString(out.Candidates[0].Content.Parts[0].InlineData.Data)
	if err != nil {
		return nil, fmt.Errorf("speech: decode audio: %w", err)
	}
	return raw, nil
}
