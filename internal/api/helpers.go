// Betsync - Real-time Sync Client for the Betting Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/betsync

package api

import (
	"fmt"
	"hash/fnv"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/tomtom215/betsync/internal/models"
	"github.com/tomtom215/betsync/internal/validation"
)

// sanitizeLogValue strips control characters from client-supplied values
// before they reach the log.
func sanitizeLogValue(s string) string {
	return strings.Map(func(r rune) rune {
		if r < 0x20 || r == 0x7f {
			return -1
		}
		return r
	}, s)
}

// respondJSON writes response with an ETag. A matching If-None-Match gets
// 304 without a body.
func respondJSON(w http.ResponseWriter, r *http.Request, status int, response *models.APIResponse) {
	data, err := json.Marshal(response)
	if err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("Failed to marshal JSON response")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	etag, err := responseETag(response)
	if err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("Failed to compute ETag")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("ETag", etag)

	if status == http.StatusOK && r.Header.Get("If-None-Match") == etag {
		w.WriteHeader(http.StatusNotModified)
		return
	}

	w.WriteHeader(status)
	if _, err := w.Write(data); err != nil {
		zerolog.Ctx(r.Context()).Debug().Err(err).Msg("Failed to write JSON response")
	}
}

// respondSuccess wraps data in a success envelope. count is set for lists.
func respondSuccess(w http.ResponseWriter, r *http.Request, status int, data any, count *int) {
	respondJSON(w, r, status, &models.APIResponse{
		Status:   "success",
		Data:     data,
		Metadata: models.Metadata{Timestamp: time.Now().UTC(), Count: count},
	})
}

func respondError(w http.ResponseWriter, r *http.Request, status int, code, message string, err error) {
	if err != nil {
		zerolog.Ctx(r.Context()).Warn().
			Str("code", code).
			Str("error", sanitizeLogValue(err.Error())).
			Msg("Status API error")
	}

	respondJSON(w, r, status, &models.APIResponse{
		Status:   "error",
		Metadata: models.Metadata{Timestamp: time.Now().UTC()},
		Error:    &models.APIError{Code: code, Message: message},
	})
}

// respondValidationError writes a 400 for a failed query struct.
func respondValidationError(w http.ResponseWriter, r *http.Request, verr *validation.StructError) {
	apiErr := verr.ToAPIError()
	respondError(w, r, http.StatusBadRequest, apiErr.Code, apiErr.Message, nil)
}

// responseETag hashes the response without its generation timestamp, so
// two responses with the same content share a validator.
func responseETag(response *models.APIResponse) (string, error) {
	stable := *response
	stable.Metadata.Timestamp = time.Time{}
	data, err := json.Marshal(&stable)
	if err != nil {
		return "", err
	}
	return generateETag(data), nil
}

// generateETag returns a weak validator over data.
func generateETag(data []byte) string {
	h := fnv.New64a()
	_, _ = h.Write(data)
	return `W/"` + strconv.FormatUint(h.Sum64(), 16) + `"`
}

// parseIntParam reads an optional integer query parameter. A missing
// parameter returns 0.
func parseIntParam(r *http.Request, key string) (int, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer", key)
	}
	return v, nil
}

func intPtr(v int) *int { return &v }
