package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	appErrors "github.com/noah-isme/mentorhub-api/pkg/errors"
)

type quoteCache interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
}

// QuoteService proxies the third-party stock-quote API for the
// demo-trading page. The upstream call carries a timeout (the legacy
// backend had none) and responses are cached per symbol.
type QuoteService struct {
	baseURL  string
	client   *http.Client
	cache    quoteCache
	cacheTTL time.Duration
	logger   *zap.Logger
}

// NewQuoteService constructs a QuoteService.
func NewQuoteService(baseURL string, timeout time.Duration, cache quoteCache, cacheTTL time.Duration, logger *zap.Logger) *QuoteService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &QuoteService{
		baseURL:  strings.TrimRight(baseURL, "/"),
		client:   &http.Client{Timeout: timeout},
		cache:    cache,
		cacheTTL: cacheTTL,
		logger:   logger,
	}
}

// Quote returns the upstream quote payload for the symbol. The second
// return value reports whether the payload came from cache.
func (s *QuoteService) Quote(ctx context.Context, symbol string) (json.RawMessage, bool, error) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	if symbol == "" {
		return nil, false, appErrors.Clone(appErrors.ErrValidation, "symbol is required")
	}

	cacheKey := "quotes:" + symbol
	if s.cache != nil {
		var cached json.RawMessage
		if err := s.cache.Get(ctx, cacheKey, &cached); err == nil {
			return cached, true, nil
		} else if !errors.Is(err, appErrors.ErrCacheMiss) {
			s.logger.Warn("quote cache read failed", zap.Error(err))
		}
	}

	reqURL := fmt.Sprintf("%s/%s", s.baseURL, url.PathEscape(symbol))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, false, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to build quote request")
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, false, appErrors.Wrap(err, appErrors.ErrUpstream.Code, appErrors.ErrUpstream.Status, appErrors.ErrUpstream.Message)
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode != http.StatusOK {
		return nil, false, appErrors.Clone(appErrors.ErrUpstream, fmt.Sprintf("quote API returned %d", resp.StatusCode))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, false, appErrors.Wrap(err, appErrors.ErrUpstream.Code, appErrors.ErrUpstream.Status, "failed to read quote response")
	}
	if !json.Valid(body) {
		return nil, false, appErrors.Clone(appErrors.ErrUpstream, "quote API returned invalid JSON")
	}

	payload := json.RawMessage(body)
	if s.cache != nil {
		if err := s.cache.Set(ctx, cacheKey, payload, s.cacheTTL); err != nil {
			s.logger.Warn("quote cache write failed", zap.Error(err))
		}
	}

	return payload, false, nil
}
