// CRS-System - Conversational Product Recommendation Storefront
// Copyright 2026 yourhu
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/yourhu/CRS-System

package api

import (
	"net/http"

	json "github.com/goccy/go-json"
)

// errorResponse is the uniform error payload.
type errorResponse struct {
	Error string `json:"error"`
}

// writeJSON writes a JSON response with proper headers.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	//nolint:errcheck // HTTP response write errors are not recoverable
	json.NewEncoder(w).Encode(data)
}

// writeError writes a uniform JSON error response.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}
