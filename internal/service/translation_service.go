package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/classconnect/classconnect-api/internal/dto"
	appErrors "github.com/classconnect/classconnect-api/pkg/errors"
)

// TranslationConfig tunes the provider chain.
type TranslationConfig struct {
	Endpoints        []string
	RequestTimeout   time.Duration
	FailureThreshold int
}

// providerState tracks consecutive failures for one endpoint. A provider
// whose failure streak reaches the threshold is skipped until Reset is
// called or a later successful probe clears it.
type providerState struct {
	URL                 string
	ConsecutiveFailures int
}

// Open reports whether the breaker for this provider is open.
func (p *providerState) open(threshold int) bool {
	return threshold > 0 && p.ConsecutiveFailures >= threshold
}

// TranslationService forwards free text to an ordered list of hosted
// translation endpoints. Ordering is fixed preference, not load balancing:
// the first healthy provider always wins.
type TranslationService struct {
	client    *http.Client
	logger    *zap.Logger
	threshold int

	mu        sync.Mutex
	providers []*providerState
}

// NewTranslationService constructs the service.
func NewTranslationService(cfg TranslationConfig, logger *zap.Logger) *TranslationService {
	if logger == nil {
		logger = zap.NewNop()
	}
	timeout := cfg.RequestTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	threshold := cfg.FailureThreshold
	if threshold <= 0 {
		threshold = 3
	}
	providers := make([]*providerState, 0, len(cfg.Endpoints))
	for _, url := range cfg.Endpoints {
		providers = append(providers, &providerState{URL: url})
	}
	return &TranslationService{
		client:    &http.Client{Timeout: timeout},
		logger:    logger,
		threshold: threshold,
		providers: providers,
	}
}

type libreTranslateRequest struct {
	Q      string `json:"q"`
	Source string `json:"source"`
	Target string `json:"target"`
	Format string `json:"format"`
}

type libreTranslateResponse struct {
	TranslatedText string `json:"translatedText"`
}

// Translate tries each provider in order and returns the first structured
// success. Per-endpoint failures are logged and suppressed until the whole
// list is exhausted.
func (s *TranslationService) Translate(ctx context.Context, req dto.TranslateRequest) (*dto.TranslateResponse, error) {
	if strings.TrimSpace(req.Text) == "" || strings.TrimSpace(req.TargetLang) == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "text and targetLang are required")
	}
	source := req.SourceLang
	if source == "" {
		source = "auto"
	}

	for _, provider := range s.snapshot() {
		if s.isOpen(provider.URL) {
			s.logger.Debug("skipping open translation provider", zap.String("url", provider.URL))
			continue
		}

		translated, err := s.callProvider(ctx, provider.URL, libreTranslateRequest{
			Q:      req.Text,
			Source: source,
			Target: req.TargetLang,
			Format: "text",
		})
		if err != nil {
			s.recordFailure(provider.URL)
			s.logger.Warn("translation provider failed, trying next",
				zap.String("url", provider.URL), zap.Error(err))
			continue
		}

		s.recordSuccess(provider.URL)
		return &dto.TranslateResponse{Translated: translated}, nil
	}

	return nil, appErrors.Clone(appErrors.ErrTranslationUnavailable, "")
}

// Reset closes every provider breaker. Exposed for operators after an
// upstream outage clears.
func (s *TranslationService) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.providers {
		p.ConsecutiveFailures = 0
	}
}

// ProviderStatus describes one provider's breaker state.
type ProviderStatus struct {
	URL                 string `json:"url"`
	ConsecutiveFailures int    `json:"consecutive_failures"`
	Open                bool   `json:"open"`
}

// Status reports breaker state for all providers in preference order.
func (s *TranslationService) Status() []ProviderStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	statuses := make([]ProviderStatus, 0, len(s.providers))
	for _, p := range s.providers {
		statuses = append(statuses, ProviderStatus{
			URL:                 p.URL,
			ConsecutiveFailures: p.ConsecutiveFailures,
			Open:                p.open(s.threshold),
		})
	}
	return statuses
}

func (s *TranslationService) callProvider(ctx context.Context, url string, payload libreTranslateRequest) (string, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("marshal translate payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build translate request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("call translate endpoint: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		io.Copy(io.Discard, io.LimitReader(resp.Body, 4096)) //nolint:errcheck
		return "", fmt.Errorf("translate endpoint returned status %d", resp.StatusCode)
	}

	var parsed libreTranslateResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("decode translate response: %w", err)
	}
	if parsed.TranslatedText == "" {
		return "", fmt.Errorf("translate endpoint returned empty result")
	}

	return parsed.TranslatedText, nil
}

func (s *TranslationService) snapshot() []providerState {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]providerState, 0, len(s.providers))
	for _, p := range s.providers {
		out = append(out, *p)
	}
	return out
}

func (s *TranslationService) isOpen(url string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.providers {
		if p.URL == url {
			return p.open(s.threshold)
		}
	}
	return false
}

func (s *TranslationService) recordFailure(url string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.providers {
		if p.URL == url {
			p.ConsecutiveFailures++
			return
		}
	}
}

func (s *TranslationService) recordSuccess(url string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.providers {
		if p.URL == url {
			p.ConsecutiveFailures = 0
			return
		}
	}
}
