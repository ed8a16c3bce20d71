// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package api_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/yomira-kids/internal/api"
	"github.com/taibuivan/yomira-kids/internal/core/book"
	"github.com/taibuivan/yomira-kids/internal/platform/config"
	"github.com/taibuivan/yomira-kids/internal/platform/constants"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func newTestServer(t *testing.T, deps api.HealthDependencies, feed http.Handler) http.Handler {
	t.Helper()

	books, err := book.LoadCatalog()
	require.NoError(t, err)
	store, err := book.NewMemoryStore(books)
	require.NoError(t, err)

	log := discardLogger()
	liveness, readiness := api.NewHealthHandlers(deps, log)

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	cfg := &config.Config{ServerPort: "0", Environment: "development", FeaturedCount: 3}

	server := api.NewServer(ctx, cfg, log, api.Handlers{
		Liveness:  liveness,
		Readiness: readiness,
		Book:      book.NewHandler(book.NewService(store, cfg.FeaturedCount)),
		Feed:      feed,
	})
	return server.Handler()
}

func get(handler http.Handler, target string) *httptest.ResponseRecorder {
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, target, nil))
	return recorder
}

/*
TestServer_Routes checks that every route group is mounted behind the middleware chain.
*/
func TestServer_Routes(t *testing.T) {
	feed := http.HandlerFunc(func(writer http.ResponseWriter, _ *http.Request) {
		writer.WriteHeader(http.StatusAccepted)
	})
	handler := newTestServer(t, api.HealthDependencies{}, feed)

	tests := []struct {
		target string
		status int
	}{
		{"/health", http.StatusOK},
		{"/ready", http.StatusOK},
		{"/api/v1/home", http.StatusOK},
		{"/api/v1/books", http.StatusOK},
		{"/api/v1/books/1/pages/1", http.StatusOK},
		{"/api/v1/favorites", http.StatusOK},
		{"/api/v1/events", http.StatusAccepted},
		{"/api/v1/unknown", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.target, func(t *testing.T) {
			recorder := get(handler, tt.target)
			assert.Equal(t, tt.status, recorder.Code)
			assert.NotEmpty(t, recorder.Header().Get(constants.HeaderXRequestID))
		})
	}
}

func TestLiveness(t *testing.T) {
	recorder := get(newTestServer(t, api.HealthDependencies{}, nil), "/health")

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.JSONEq(t, `{"data":{"status":"ok","app":"yomira-kids","version":"`+constants.AppVersion+`"}}`, recorder.Body.String())
}

/*
TestReadiness reports ready when all checks pass and degraded otherwise.
*/
func TestReadiness(t *testing.T) {
	tests := []struct {
		name       string
		deps       api.HealthDependencies
		wantStatus int
		wantState  string
		wantChecks int
	}{
		{"no_dependencies", api.HealthDependencies{}, http.StatusOK, "ready", 0},
		{
			"all_healthy",
			api.HealthDependencies{
				CheckCatalog: func() error { return nil },
				CheckCache:   func() error { return nil },
			},
			http.StatusOK, "ready", 2,
		},
		{
			"redis_down",
			api.HealthDependencies{
				CheckCatalog: func() error { return nil },
				CheckCache:   func() error { return errors.New("dial tcp: connection refused") },
			},
			http.StatusServiceUnavailable, "degraded", 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := get(newTestServer(t, tt.deps, nil), "/ready")
			assert.Equal(t, tt.wantStatus, recorder.Code)

			var body struct {
				Data struct {
					Status string `json:"status"`
					Checks []struct {
						Name  string `json:"name"`
						OK    bool   `json:"ok"`
						Error string `json:"error"`
					} `json:"checks"`
				} `json:"data"`
			}
			require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))

			assert.Equal(t, tt.wantState, body.Data.Status)
			assert.Len(t, body.Data.Checks, tt.wantChecks)
		})
	}
}
