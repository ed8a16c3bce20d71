// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package requestutil_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"

	requestutil "github.com/taibuivan/yomira-kids/internal/platform/request"
)

// withParams attaches chi URL parameters to a bare request.
func withParams(params map[string]string) *http.Request {
	routeContext := chi.NewRouteContext()
	for key, value := range params {
		routeContext.URLParams.Add(key, value)
	}

	request := httptest.NewRequest(http.MethodGet, "/", nil)
	return request.WithContext(context.WithValue(request.Context(), chi.RouteCtxKey, routeContext))
}

func TestID(t *testing.T) {
	request := withParams(map[string]string{"identifier": " 2 "})

	assert.Equal(t, "2", requestutil.ID(request, "identifier"))
	assert.Empty(t, requestutil.ID(request, "missing"))
}

/*
TestIntParam covers parsed, missing and malformed values.
*/
func TestIntParam(t *testing.T) {
	request := withParams(map[string]string{"number": "3", "bad": "three"})

	value, ok := requestutil.IntParam(request, "number")
	assert.True(t, ok)
	assert.Equal(t, 3, value)

	_, ok = requestutil.IntParam(request, "bad")
	assert.False(t, ok)

	_, ok = requestutil.IntParam(request, "missing")
	assert.False(t, ok)
}
