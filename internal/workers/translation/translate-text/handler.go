// internal/workers/translation/translate-text/handler.go
package translatetext

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"encoding/json"
	"errors"
	"fmt"
	"net"

	apperrors "canara-formfill/internal/common/errors"
	commonhttp "canara-formfill/internal/common/http"
	"canara-formfill/internal/common/logger"
	"canara-formfill/internal/common/metrics"
	"canara-formfill/internal/common/observability"
)

const (
	TaskType = "translate-text"
)

var (
	ErrTranslatorConfig   = errors.New("TRANSLATOR_CONFIG_INVALID")
	ErrTranslatorTLS      = errors.New("TRANSLATOR_TLS_ERROR")
	ErrTranslatorTimeout  = errors.New("TRANSLATOR_TIMEOUT")
	ErrTranslatorStatus   = errors.New("TRANSLATOR_BAD_STATUS")
	ErrTranslatorResponse = errors.New("TRANSLATOR_BAD_RESPONSE")
)

// Handler translates single strings through the Microsoft Translator REST API.
// It never fails a caller: every problem is logged and the input comes back
// unchanged.
type Handler struct {
	config    *Config
	client    *commonhttp.Client
	clientErr error
	logger    logger.Logger
	obs       *observability.Observability
}

func NewHandler(config *Config, log logger.Logger, obs *observability.Observability) *Handler {
	h := &Handler{
		config: config,
		logger: log.With(map[string]interface{}{
			"taskType": TaskType,
		}),
		obs: obs,
	}

	if !config.Enabled() {
		h.logger.Info("translator not configured; values pass through untranslated", nil)
		return h
	}

	client, err := commonhttp.NewClient(config.Timeout, config.TLS)
	if err != nil {
		h.clientErr = fmt.Errorf("%w: %v", ErrTranslatorConfig, err)
		h.logger.Error("translator TLS configuration invalid; values will pass through untranslated", map[string]interface{}{
			"error":    err.Error(),
			"caBundle": config.TLS.CABundle,
		})
		return h
	}
	h.client = client

	h.logger.Info("translator configured", map[string]interface{}{
		"endpoint":  config.Endpoint,
		"trustMode": string(client.Mode()),
		"timeout":   config.Timeout.String(),
	})
	return h
}

// Translate returns the English rendering of text, or text itself when the
// translator is disabled or fails.
func (h *Handler) Translate(ctx context.Context, text string) string {
	return h.Execute(ctx, &Input{Text: text}).Text
}

func (h *Handler) Execute(ctx context.Context, input *Input) *Output {
	output := h.execute(ctx, input.Text)

	metrics.TranslationCalls.WithLabelValues(string(output.Outcome)).Inc()
	h.obs.RecordTranslation(ctx, string(output.Outcome))
	return output
}

func (h *Handler) execute(ctx context.Context, text string) *Output {
	if text == "" {
		return &Output{Text: "", Outcome: OutcomeEmpty}
	}

	log := logger.FromContext(ctx, h.logger)

	if !h.config.Enabled() {
		log.Info("Translator not configured; returning original text.", nil)
		return &Output{Text: text, Outcome: OutcomeDisabled}
	}

	translated, err := h.call(ctx, text)
	if err != nil {
		h.logFailure(log, err, text)
		return &Output{Text: text, Outcome: OutcomeFailed}
	}

	return &Output{Text: translated, Outcome: OutcomeTranslated}
}

func (h *Handler) call(ctx context.Context, text string) (string, error) {
	if h.clientErr != nil {
		return "", h.clientErr
	}

	req := h.client.R().
		SetContext(ctx).
		SetHeader("Ocp-Apim-Subscription-Key", h.config.Key).
		SetHeader("Content-Type", "application/json").
		SetQueryParam("api-version", h.config.APIVersion).
		SetQueryParam("to", h.config.TargetLanguage).
		SetBody([]requestItem{{Text: text}})
	if h.config.Region != "" {
		req.SetHeader("Ocp-Apim-Subscription-Region", h.config.Region)
	}

	resp, err := req.Post(h.config.Endpoint)
	if err != nil {
		return "", classifyTransportError(err)
	}
	if !resp.IsSuccess() {
		return "", fmt.Errorf("%w: translator returned %d", ErrTranslatorStatus, resp.StatusCode())
	}

	var payload []responseItem
	if err := json.Unmarshal(resp.Body(), &payload); err != nil {
		return "", fmt.Errorf("%w: %v", ErrTranslatorResponse, err)
	}
	if len(payload) == 0 || len(payload[0].Translations) == 0 || payload[0].Translations[0].Text == nil {
		return "", fmt.Errorf("%w: no translations[0].text in response", ErrTranslatorResponse)
	}

	return *payload[0].Translations[0].Text, nil
}

func classifyTransportError(err error) error {
	var (
		verifyErr    *tls.CertificateVerificationError
		authorityErr x509.UnknownAuthorityError
		invalidErr   x509.CertificateInvalidError
		hostnameErr  x509.HostnameError
		recordErr    tls.RecordHeaderError
		netErr       net.Error
	)

	switch {
	case errors.As(err, &verifyErr), errors.As(err, &authorityErr),
		errors.As(err, &invalidErr), errors.As(err, &hostnameErr),
		errors.As(err, &recordErr):
		return fmt.Errorf("%w: %v", ErrTranslatorTLS, err)
	case errors.Is(err, context.DeadlineExceeded):
		return fmt.Errorf("%w: %v", ErrTranslatorTimeout, err)
	case errors.As(err, &netErr) && netErr.Timeout():
		return fmt.Errorf("%w: %v", ErrTranslatorTimeout, err)
	default:
		return err
	}
}

func (h *Handler) logFailure(log logger.Logger, err error, text string) {
	code := apperrors.ErrCodeTranslationFailed
	msg := "Translation failed; returning original text."

	switch {
	case errors.Is(err, ErrTranslatorTLS):
		code = apperrors.ErrCodeTranslationTLS
		msg = "SSL error calling translator. Check TRANSLATOR_CA_BUNDLE or TRANSLATOR_SKIP_SSL_VERIFY."
	case errors.Is(err, ErrTranslatorTimeout):
		code = apperrors.ErrCodeTranslationTimeout
	}

	stdErr := apperrors.NewTranslationError(code, err)
	log.Error(msg, map[string]interface{}{
		"errorCode":  string(stdErr.Code),
		"error":      stdErr.Details,
		"textLength": len(text),
	})
}
