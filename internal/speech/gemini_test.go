package speech

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestGemini(t *testing.T, h http.HandlerFunc) *GeminiSynthesizer {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	g := NewGemini("test-key", "", "")
	g.BaseURL = srv.URL
	g.Client = srv.Client()
	return g
}

func TestGemini_Synthesize(t *testing.T) {
	pcm := []byte{1, 2, 3, 4}
	g := newTestGemini(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1beta/models/"+DefaultGeminiModel+":generateContent", r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("x-goog-api-key"))

		var req geminiRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "七", req.Contents[0].Parts[0].Text)
		assert.Equal(t, []string{"AUDIO"}, req.GenerationConfig.ResponseModalities)
		assert.Equal(t, DefaultGeminiVoice, req.GenerationConfig.SpeechConfig.VoiceConfig.PrebuiltVoiceConfig.VoiceName)

		_, _ = w.Write([]byte(`{"candidates":[{"content":{"parts":[{"inlineData":{"mimeType":"audio/L16;rate=24000","data":"` +
			base64.StdEncoding.EncodeToString(pcm) + `"}}]}}]}`))
	})

	got, err := g.Synthesize(context.Background(), "七")
	require.NoError(t, err)
	assert.Equal(t, pcm, got)
}

func TestGemini_NoAudio(t *testing.T) {
	g := newTestGemini(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"candidates":[]}`))
	})
	_, err := g.Synthesize(context.Background(), "qi")
	assert.ErrorIs(t, err, ErrNoAudio)
}

func TestGemini_HTTPError(t *testing.T) {
	g := newTestGemini(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"quota"}`, http.StatusTooManyRequests)
	})
	_, err := g.Synthesize(context.Background(), "qi")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "429")
}

func TestGemini_BadBase64(t *testing.T) {
	g := newTestGemini(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"candidates":[{"content":{"parts":[{"inlineData":{"data":"%%%"}}]}}]}`))
	})
	_, err := g.Synthesize(context.Background(), "qi")
	assert.Error(t, err)
}
