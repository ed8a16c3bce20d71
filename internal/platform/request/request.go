// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package requestutil provides utilities for extracting data from HTTP requests.

It abstracts away the underlying router's parameter extraction so handlers do
not depend on chi directly.
*/
package requestutil

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
)

/*
ID retrieves a named URL parameter (ID/Slug) from the request.

The value is trimmed; chi has already percent-decoded it.
*/
func ID(request *http.Request, name string) string {
	return strings.TrimSpace(chi.URLParam(request, name))
}

/*
IntParam retrieves a named URL parameter as an integer.

Returns:
  - int: The parsed value, 0 on failure
  - bool: false if the parameter is missing or not an integer
*/
func IntParam(request *http.Request, name string) (int, bool) {
	raw := chi.URLParam(request, name)
	if raw == "" {
		return 0, false
	}

	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}

	return value, true
}
