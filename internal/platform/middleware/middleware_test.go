// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware_test

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/yomira-kids/internal/platform/constants"
	"github.com/taibuivan/yomira-kids/internal/platform/ctxutil"
	"github.com/taibuivan/yomira-kids/internal/platform/middleware"
)

type corsConfig struct {
	development bool
	suffix      string
}

func (c corsConfig) IsDevelopment() bool  { return c.development }
func (c corsConfig) OriginSuffix() string { return c.suffix }

func okHandler() http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, _ *http.Request) {
		writer.WriteHeader(http.StatusOK)
	})
}

/*
TestRequestID verifies that an incoming ID is preserved and a missing one is generated.
*/
func TestRequestID(t *testing.T) {
	var seen string
	handler := middleware.RequestID()(http.HandlerFunc(func(_ http.ResponseWriter, request *http.Request) {
		seen = ctxutil.GetRequestID(request.Context())
	}))

	// 1. Client-supplied ID is echoed
	request := httptest.NewRequest(http.MethodGet, "/", nil)
	request.Header.Set(constants.HeaderXRequestID, "abc")
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)

	assert.Equal(t, "abc", seen)
	assert.Equal(t, "abc", recorder.Header().Get(constants.HeaderXRequestID))

	// 2. Missing ID is generated (UUID string)
	recorder = httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Len(t, seen, 36)
	assert.Equal(t, seen, recorder.Header().Get(constants.HeaderXRequestID))
}

/*
TestStructuredLogger_InjectsLoggerAndKeepsFlusher checks the per-request logger
and that streaming handlers can still flush through the recorder.
*/
func TestStructuredLogger_InjectsLoggerAndKeepsFlusher(t *testing.T) {
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))

	handler := middleware.StructuredLogger(logger)(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.NotEqual(t, slog.Default(), ctxutil.GetLogger(request.Context()))

		_, ok := writer.(http.Flusher)
		assert.True(t, ok)
		writer.WriteHeader(http.StatusTeapot)
	}))

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusTeapot, recorder.Code)
}

/*
TestRateLimitWith_RejectsAfterBurst exhausts a one-token bucket.
*/
func TestRateLimitWith_RejectsAfterBurst(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	handler := middleware.RateLimitWith(ctx, 0.001, 1)(okHandler())

	first := httptest.NewRecorder()
	handler.ServeHTTP(first, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, first.Code)

	second := httptest.NewRecorder()
	handler.ServeHTTP(second, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusTooManyRequests, second.Code)
	assert.Contains(t, second.Body.String(), "TOO_MANY_REQUESTS")

	// A different client has its own bucket
	other := httptest.NewRequest(http.MethodGet, "/", nil)
	other.Header.Set(constants.HeaderXRealIP, "10.0.0.9")
	third := httptest.NewRecorder()
	handler.ServeHTTP(third, other)
	assert.Equal(t, http.StatusOK, third.Code)
}

func TestPanicRecovery(t *testing.T) {
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	handler := middleware.PanicRecovery(logger)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))

	recorder := httptest.NewRecorder()
	require.NotPanics(t, func() {
		handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/", nil))
	})

	assert.Equal(t, http.StatusInternalServerError, recorder.Code)
}

/*
TestCORS covers development, allowed suffix, rejected origin and preflight.
*/
func TestCORS(t *testing.T) {
	tests := []struct {
		name        string
		cfg         corsConfig
		origin      string
		wantAllowed bool
	}{
		{"development_allows_all", corsConfig{development: true}, "http://localhost:19006", true},
		{"production_suffix_match", corsConfig{suffix: "yomira.app"}, "https://kids.yomira.app", true},
		{"production_rejects_other", corsConfig{suffix: "yomira.app"}, "https://evil.example", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := middleware.CORS(tt.cfg)(okHandler())

			request := httptest.NewRequest(http.MethodGet, "/", nil)
			request.Header.Set(constants.HeaderOrigin, tt.origin)
			recorder := httptest.NewRecorder()
			handler.ServeHTTP(recorder, request)

			if tt.wantAllowed {
				assert.Equal(t, tt.origin, recorder.Header().Get("Access-Control-Allow-Origin"))
			} else {
				assert.Empty(t, recorder.Header().Get("Access-Control-Allow-Origin"))
			}
		})
	}

	t.Run("preflight", func(t *testing.T) {
		handler := middleware.CORS(corsConfig{development: true})(okHandler())

		request := httptest.NewRequest(http.MethodOptions, "/", nil)
		request.Header.Set(constants.HeaderOrigin, "http://localhost")
		recorder := httptest.NewRecorder()
		handler.ServeHTTP(recorder, request)

		assert.Equal(t, http.StatusNoContent, recorder.Code)
	})
}

func TestRealIP(t *testing.T) {
	request := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.Equal(t, "192.0.2.1", middleware.RealIP(request))

	request.Header.Set(constants.HeaderXForwardedFor, "203.0.113.7, 10.0.0.1")
	assert.Equal(t, "203.0.113.7", middleware.RealIP(request))

	request.Header.Set(constants.HeaderXRealIP, "198.51.100.2")
	assert.Equal(t, "198.51.100.2", middleware.RealIP(request))
}
