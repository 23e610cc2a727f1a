package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// APIError is returned when the server sends a non-2xx status, a non-success
// envelope, or when the request timed out.
type APIError struct {
	Status  int
	Message string
	Field   string
	Errors  map[string]string

	cause error
}

func (e *APIError) Error() string {
	if e.Status == 0 {
		return "api: " + e.Message
	}
	return fmt.Sprintf("api: %d — %s", e.Status, e.Message)
}

func (e *APIError) Unwrap() error {
	return e.cause
}

// failureBody is the expected failure shape.
type failureBody struct {
	Message string            `json:"message"`
	Field   string            `json:"field"`
	Errors  map[string]string `json:"errors"`
	Error   string            `json:"error"`
}

func parseErrorBody(status int, data []byte) error {
	var body failureBody
	if json.Unmarshal(data, &body) == nil {
		msg := body.Message
		if msg == "" {
			msg = body.Error
		}
		if msg == "" && len(body.Errors) > 0 {
			msg = firstFieldError(body.Errors)
		}
		if msg != "" || body.Field != "" || len(body.Errors) > 0 {
			return &APIError{Status: status, Message: msg, Field: body.Field, Errors: body.Errors}
		}
	}

	text := strings.TrimSpace(string(data))
	if text == "" || strings.HasPrefix(text, "{") || strings.HasPrefix(text, "<") {
		text = http.StatusText(status)
	}
	return &APIError{Status: status, Message: text}
}

func firstFieldError(errs map[string]string) string {
	// deterministic: lowest field name wins
	var key string
	for k := range errs {
		if key == "" || k < key {
			key = k
		}
	}
	return errs[key]
}

// IsCanceled reports whether err stems from the caller aborting the request.
// Cancelled requests are never surfaced to the user.
func IsCanceled(err error) bool {
	return err != nil && errors.Is(err, context.Canceled)
}

// Message extracts a human-readable message from err, using fallback when the
// server did not provide one.
func Message(err error, fallback string) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}
