// Betsync - Real-time Sync Client for the Betting Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/betsync

// Package validation provides struct validation using go-playground/validator v10.
//
// A single validator instance is shared by the whole process so struct
// metadata is parsed once. It validates the loaded configuration and the
// query parameters accepted by the status API.
//
// # Quick Start
//
//	type FeedQuery struct {
//	    Limit int `validate:"omitempty,min=1,max=1000"`
//	}
//
//	if verr := validation.ValidateStruct(&q); verr != nil {
//	    apiErr := verr.ToAPIError()
//	    respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message)
//	    return
//	}
//
// # Custom Tags
//
//   - wspath: an absolute URL path such as "/ws", without query or fragment
//
// # Error Messages
//
// Field errors are translated to short English sentences ("Port must be at
// most 65535"). Multiple errors are joined with "; ".
package validation
