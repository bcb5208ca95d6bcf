package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appErrors "github.com/noah-isme/mentorhub-api/pkg/errors"
)

func TestQuoteServiceFetchesAndCaches(t *testing.T) {
	var hits int
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		assert.Equal(t, "/TSLA", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"symbol":"TSLA","price":412.5}`)) //nolint:errcheck
	}))
	defer upstream.Close()

	cache := &fakeCache{}
	svc := NewQuoteService(upstream.URL, time.Second, cache, time.Minute, nil)

	payload, cached, err := svc.Quote(context.Background(), "tsla")
	require.NoError(t, err)
	assert.False(t, cached)
	assert.JSONEq(t, `{"symbol":"TSLA","price":412.5}`, string(payload))

	payload, cached, err = svc.Quote(context.Background(), " TSLA ")
	require.NoError(t, err)
	assert.True(t, cached)
	assert.JSONEq(t, `{"symbol":"TSLA","price":412.5}`, string(payload))
	assert.Equal(t, 1, hits)
}

func TestQuoteServiceEmptySymbol(t *testing.T) {
	svc := NewQuoteService("http://unused", time.Second, nil, 0, nil)

	_, _, err := svc.Quote(context.Background(), "   ")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestQuoteServiceUpstreamFailure(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer upstream.Close()

	svc := NewQuoteService(upstream.URL, time.Second, nil, 0, nil)

	_, _, err := svc.Quote(context.Background(), "AAPL")
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrUpstream.Code, appErr.Code)
	assert.Equal(t, http.StatusBadGateway, appErr.Status)
}

func TestQuoteServiceInvalidUpstreamBody(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("<html>not json</html>")) //nolint:errcheck
	}))
	defer upstream.Close()

	svc := NewQuoteService(upstream.URL, time.Second, nil, 0, nil)

	_, _, err := svc.Quote(context.Background(), "AAPL")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrUpstream.Code, appErrors.FromError(err).Code)
}
