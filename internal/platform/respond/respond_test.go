// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package respond_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/yomira-kids/internal/platform/apperr"
	"github.com/taibuivan/yomira-kids/internal/platform/respond"
	"github.com/taibuivan/yomira-kids/pkg/pagination"
)

func TestOK(t *testing.T) {
	recorder := httptest.NewRecorder()
	respond.OK(recorder, map[string]string{"id": "1"})

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "application/json; charset=utf-8", recorder.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"data":{"id":"1"}}`, recorder.Body.String())
}

func TestPaginated(t *testing.T) {
	recorder := httptest.NewRecorder()
	respond.Paginated(recorder, []int{1, 2}, pagination.NewMeta(1, 2, 3))

	assert.JSONEq(t,
		`{"data":[1,2],"meta":{"page":1,"limit":2,"total":3,"total_pages":2,"has_next":true}}`,
		recorder.Body.String(),
	)
}

/*
TestError maps application errors to their status and hides unexpected ones.
*/
func TestError(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		body   string
	}{
		{
			"not_found",
			apperr.NotFound("Book"),
			http.StatusNotFound,
			`{"error":"Book not found","code":"NOT_FOUND"}`,
		},
		{
			"validation",
			apperr.ValidationError("Validation failed", apperr.FieldError{Field: "number", Message: "Out of range"}),
			http.StatusBadRequest,
			`{"error":"Validation failed","code":"VALIDATION_ERROR","details":[{"field":"number","message":"Out of range"}]}`,
		},
		{
			"unexpected",
			errors.New("disk on fire"),
			http.StatusInternalServerError,
			`{"error":"An unexpected error occurred","code":"INTERNAL_ERROR"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := httptest.NewRecorder()
			respond.Error(recorder, httptest.NewRequest(http.MethodGet, "/", nil), tt.err)

			assert.Equal(t, tt.status, recorder.Code)
			assert.JSONEq(t, tt.body, recorder.Body.String())
		})
	}
}
