package translatetext

import (
	"context"
	"encoding/json"
	"encoding/pem"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"canara-formfill/internal/common/config"
	commonhttp "canara-formfill/internal/common/http"
	"canara-formfill/internal/common/logger"
)

type recordedRequest struct {
	Path    string
	Query   map[string]string
	Key     string
	Region  string
	Body    []requestItem
	Content string
}

func translatorStub(t *testing.T, calls *int32, last *recordedRequest, reply func(w http.ResponseWriter)) http.HandlerFunc {
	t.Helper()
	return func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(calls, 1)
		if last != nil {
			raw, _ := io.ReadAll(r.Body)
			var body []requestItem
			_ = json.Unmarshal(raw, &body)
			*last = recordedRequest{
				Path:    r.URL.Path,
				Query:   map[string]string{"api-version": r.URL.Query().Get("api-version"), "to": r.URL.Query().Get("to")},
				Key:     r.Header.Get("Ocp-Apim-Subscription-Key"),
				Region:  r.Header.Get("Ocp-Apim-Subscription-Region"),
				Body:    body,
				Content: r.Header.Get("Content-Type"),
			}
		}
		reply(w)
	}
}

func replyJSON(status int, body string) func(w http.ResponseWriter) {
	return func(w http.ResponseWriter) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}
}

func newHandler(t *testing.T, cfg *Config) (*Handler, *observer.ObservedLogs) {
	t.Helper()
	core, logs := observer.New(zap.DebugLevel)
	return NewHandler(cfg, logger.NewZapAdapter(zap.New(core)), nil), logs
}

func enabledConfig(endpoint string) *Config {
	return &Config{
		Endpoint:       NormalizeEndpoint(endpoint),
		Key:            "test-key",
		APIVersion:     "3.0",
		TargetLanguage: "en",
		Timeout:        2 * time.Second,
	}
}

func TestNormalizeEndpoint(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"", ""},
		{"   ", ""},
		{"https://api.cognitive.microsofttranslator.com", "https://api.cognitive.microsofttranslator.com/translate"},
		{"https://api.cognitive.microsofttranslator.com///", "https://api.cognitive.microsofttranslator.com/translate"},
		{"  https://host/translator/text/v3.0/translate  ", "https://host/translator/text/v3.0/translate"},
		{"https://host/translate?x=1", "https://host/translate?x=1"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizeEndpoint(tt.raw), tt.raw)
	}
}

func TestLoadConfig(t *testing.T) {
	cfg := LoadConfig(&config.TranslatorConfig{
		Endpoint:      " https://host/ ",
		Key:           " k ",
		Region:        "centralindia",
		CABundle:      "/etc/ca.pem",
		SkipSSLVerify: true,
		Timeout:       2500,
	})

	assert.Equal(t, "https://host/translate", cfg.Endpoint)
	assert.Equal(t, "k", cfg.Key)
	assert.Equal(t, "3.0", cfg.APIVersion)
	assert.Equal(t, "en", cfg.TargetLanguage)
	assert.Equal(t, 2500*time.Millisecond, cfg.Timeout)
	assert.Equal(t, commonhttp.TrustSkipVerify, cfg.TLS.Mode())
	assert.True(t, cfg.Enabled())

	defaults := LoadConfig(nil)
	assert.False(t, defaults.Enabled())
	assert.Equal(t, 10*time.Second, defaults.Timeout)
}

func TestExecute_Translates(t *testing.T) {
	var (
		calls int32
		last  recordedRequest
	)
	srv := httptest.NewServer(translatorStub(t, &calls, &last,
		replyJSON(http.StatusOK, `[{"detectedLanguage":{"language":"kn","score":1.0},"translations":[{"text":"Ravi","to":"en"}]}]`)))
	defer srv.Close()

	cfg := enabledConfig(srv.URL)
	cfg.Region = "centralindia"
	h, _ := newHandler(t, cfg)

	out := h.Execute(context.Background(), &Input{Text: "ರವಿ"})

	assert.Equal(t, &Output{Text: "Ravi", Outcome: OutcomeTranslated}, out)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
	assert.Equal(t, "/translate", last.Path)
	assert.Equal(t, map[string]string{"api-version": "3.0", "to": "en"}, last.Query)
	assert.Equal(t, "test-key", last.Key)
	assert.Equal(t, "centralindia", last.Region)
	assert.Contains(t, last.Content, "application/json")
	assert.Equal(t, []requestItem{{Text: "ರವಿ"}}, last.Body)
}

func TestExecute_NoRegionHeaderWhenUnset(t *testing.T) {
	var (
		calls int32
		last  recordedRequest
	)
	srv := httptest.NewServer(translatorStub(t, &calls, &last,
		replyJSON(http.StatusOK, `[{"translations":[{"text":"ok"}]}]`)))
	defer srv.Close()

	h, _ := newHandler(t, enabledConfig(srv.URL))
	assert.Equal(t, "ok", h.Translate(context.Background(), "x"))
	assert.Empty(t, last.Region)
}

func TestExecute_EmptyInputMakesNoCall(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(translatorStub(t, &calls, nil, replyJSON(http.StatusOK, `[]`)))
	defer srv.Close()

	h, _ := newHandler(t, enabledConfig(srv.URL))
	out := h.Execute(context.Background(), &Input{Text: ""})

	assert.Equal(t, &Output{Text: "", Outcome: OutcomeEmpty}, out)
	assert.Zero(t, atomic.LoadInt32(&calls))
}

func TestExecute_DisabledIsIdentity(t *testing.T) {
	tests := []struct {
		name string
		cfg  *Config
	}{
		{"no endpoint", &Config{Key: "k"}},
		{"no key", &Config{Endpoint: "https://host/translate"}},
		{"nothing", LoadConfig(nil)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, logs := newHandler(t, tt.cfg)
			out := h.Execute(context.Background(), &Input{Text: "ಕನ್ನಡ"})

			assert.Equal(t, &Output{Text: "ಕನ್ನಡ", Outcome: OutcomeDisabled}, out)
			assert.Equal(t, 1, logs.FilterMessage("Translator not configured; returning original text.").Len())
		})
	}
}

func TestExecute_FailuresPassThrough(t *testing.T) {
	tests := []struct {
		name  string
		reply func(w http.ResponseWriter)
	}{
		{"server error", replyJSON(http.StatusInternalServerError, `{"error":"boom"}`)},
		{"unauthorized", replyJSON(http.StatusUnauthorized, `{"error":{"code":401000}}`)},
		{"malformed json", replyJSON(http.StatusOK, `[{"translations":`)},
		{"object instead of array", replyJSON(http.StatusOK, `{"translations":[{"text":"x"}]}`)},
		{"empty array", replyJSON(http.StatusOK, `[]`)},
		{"no translations", replyJSON(http.StatusOK, `[{}]`)},
		{"empty translations", replyJSON(http.StatusOK, `[{"translations":[]}]`)},
		{"missing text key", replyJSON(http.StatusOK, `[{"translations":[{"to":"en"}]}]`)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var calls int32
			srv := httptest.NewServer(translatorStub(t, &calls, nil, tt.reply))
			defer srv.Close()

			h, logs := newHandler(t, enabledConfig(srv.URL))
			out := h.Execute(context.Background(), &Input{Text: "ಮೊತ್ತ"})

			assert.Equal(t, &Output{Text: "ಮೊತ್ತ", Outcome: OutcomeFailed}, out)
			assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
			assert.Equal(t, 1, logs.FilterMessage("Translation failed; returning original text.").Len())
		})
	}
}

func TestExecute_EmptyTranslationIsUsed(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(translatorStub(t, &calls, nil,
		replyJSON(http.StatusOK, `[{"translations":[{"text":""}]}]`)))
	defer srv.Close()

	h, _ := newHandler(t, enabledConfig(srv.URL))
	out := h.Execute(context.Background(), &Input{Text: "x"})
	assert.Equal(t, &Output{Text: "", Outcome: OutcomeTranslated}, out)
}

func TestExecute_Timeout(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer srv.Close()

	cfg := enabledConfig(srv.URL)
	cfg.Timeout = 50 * time.Millisecond
	h, logs := newHandler(t, cfg)

	start := time.Now()
	out := h.Execute(context.Background(), &Input{Text: "slow"})

	assert.Equal(t, &Output{Text: "slow", Outcome: OutcomeFailed}, out)
	assert.Less(t, time.Since(start), time.Second)
	entries := logs.FilterMessage("Translation failed; returning original text.").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "TRANSLATION_TIMEOUT", entries[0].ContextMap()["errorCode"])
}

func TestExecute_ConnectionRefused(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	h, _ := newHandler(t, enabledConfig(url))
	assert.Equal(t, "text", h.Translate(context.Background(), "text"))
}

func TestExecute_TLSTrustModes(t *testing.T) {
	var calls int32
	srv := httptest.NewTLSServer(translatorStub(t, &calls, nil,
		replyJSON(http.StatusOK, `[{"translations":[{"text":"Amount"}]}]`)))
	defer srv.Close()

	caPath := filepath.Join(t.TempDir(), "ca.pem")
	require.NoError(t, os.WriteFile(caPath,
		pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: srv.Certificate().Raw}), 0o600))

	tests := []struct {
		name    string
		tls     commonhttp.TLSOptions
		want    Output
		tlsLogs int
	}{
		{"system store", commonhttp.TLSOptions{}, Output{Text: "ಮೊತ್ತ", Outcome: OutcomeFailed}, 1},
		{"skip verify", commonhttp.TLSOptions{SkipVerify: true}, Output{Text: "Amount", Outcome: OutcomeTranslated}, 0},
		{"custom CA", commonhttp.TLSOptions{CABundle: caPath}, Output{Text: "Amount", Outcome: OutcomeTranslated}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := enabledConfig(srv.URL)
			cfg.TLS = tt.tls
			h, logs := newHandler(t, cfg)

			out := h.Execute(context.Background(), &Input{Text: "ಮೊತ್ತ"})

			assert.Equal(t, tt.want, *out)
			assert.Equal(t, tt.tlsLogs,
				logs.FilterMessage("SSL error calling translator. Check TRANSLATOR_CA_BUNDLE or TRANSLATOR_SKIP_SSL_VERIFY.").Len())
		})
	}
}

func TestExecute_UnreadableCABundlePassesThrough(t *testing.T) {
	var calls int32
	srv := httptest.NewTLSServer(translatorStub(t, &calls, nil, replyJSON(http.StatusOK, `[]`)))
	defer srv.Close()

	cfg := enabledConfig(srv.URL)
	cfg.TLS = commonhttp.TLSOptions{CABundle: filepath.Join(t.TempDir(), "missing.pem")}
	h, logs := newHandler(t, cfg)

	out := h.Execute(context.Background(), &Input{Text: "ಹೆಸರು"})

	assert.Equal(t, &Output{Text: "ಹೆಸರು", Outcome: OutcomeFailed}, out)
	assert.Zero(t, atomic.LoadInt32(&calls))
	assert.Equal(t, 1, logs.FilterMessage("translator TLS configuration invalid; values will pass through untranslated").Len())
	assert.Equal(t, 1, logs.FilterMessage("Translation failed; returning original text.").Len())
}
