// Package http serves the JSON API.
//
// This file implements the builder for JSON responses. Every API response
// uses the {success, data} or {success, error} envelope.

package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"fintrack/internal/auth"
	"fintrack/internal/core"
	"fintrack/internal/log"
	"fintrack/internal/services"
	"fintrack/internal/storage"
)

// Envelope is the body of every /api response.
type Envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

// JSONResponseBuilder provides a fluent API for building JSON responses.
type JSONResponseBuilder struct {
	statusCode int
	body       any
	headers    map[string]string
}

// NewJSONResponse creates a builder with a 200 status and no body.
func NewJSONResponse() *JSONResponseBuilder {
	return &JSONResponseBuilder{
		statusCode: http.StatusOK,
		headers:    make(map[string]string),
	}
}

func (b *JSONResponseBuilder) Status(code int) *JSONResponseBuilder {
	b.statusCode = code
	return b
}

func (b *JSONResponseBuilder) Header(name, value string) *JSONResponseBuilder {
	b.headers[name] = value
	return b
}

// Data wraps v in a success envelope.
func (b *JSONResponseBuilder) Data(v any) *JSONResponseBuilder {
	b.body = Envelope{Success: true, Data: v}
	return b
}

// Error sets an error envelope with message.
func (b *JSONResponseBuilder) Error(message string) *JSONResponseBuilder {
	b.body = Envelope{Success: false, Error: message}
	return b
}

// Raw sets a body that is encoded as is, without an envelope.
func (b *JSONResponseBuilder) Raw(v any) *JSONResponseBuilder {
	b.body = v
	return b
}

// Write sends the built response to w.
func (b *JSONResponseBuilder) Write(w http.ResponseWriter) {
	for name, value := range b.headers {
		w.Header().Set(name, value)
	}
	if b.body == nil {
		w.WriteHeader(b.statusCode)
		return
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(b.statusCode)
	_ = json.NewEncoder(w).Encode(b.body)
}

// OK writes data with status 200.
func OK(w http.ResponseWriter, data any) {
	NewJSONResponse().Data(data).Write(w)
}

// Created writes data with status 201.
func Created(w http.ResponseWriter, data any) {
	NewJSONResponse().Status(http.StatusCreated).Data(data).Write(w)
}

// ErrorResponse creates an error envelope with statusCode.
func ErrorResponse(statusCode int, message string) *JSONResponseBuilder {
	return NewJSONResponse().Status(statusCode).Error(message)
}

func BadRequestError(message string) *JSONResponseBuilder {
	return ErrorResponse(http.StatusBadRequest, message)
}

func UnprocessableEntityError(message string) *JSONResponseBuilder {
	return ErrorResponse(http.StatusUnprocessableEntity, message)
}

func NotFoundError(message string) *JSONResponseBuilder {
	return ErrorResponse(http.StatusNotFound, message)
}

func InternalServerError(message string) *JSONResponseBuilder {
	return ErrorResponse(http.StatusInternalServerError, message)
}

func MethodNotAllowedError(allowedMethods string) *JSONResponseBuilder {
	return ErrorResponse(http.StatusMethodNotAllowed, "Method Not Allowed").Header("Allow", allowedMethods)
}

// statusFor maps service and store errors to HTTP status codes.
func statusFor(err error) (int, string) {
	switch {
	case services.IsValidation(err), core.IsValidationError(err):
		return http.StatusUnprocessableEntity, "validation_error"
	case errors.Is(err, storage.ErrNotFound):
		return http.StatusNotFound, "not_found"
	case errors.Is(err, storage.ErrConflict):
		return http.StatusConflict, "conflict"
	case errors.Is(err, auth.ErrMissingToken), errors.Is(err, auth.ErrInvalidToken), errors.Is(err, auth.ErrMissingSubject):
		return http.StatusUnauthorized, "unauthorized"
	default:
		return http.StatusInternalServerError, "internal"
	}
}

// writeError answers with the envelope for err. Client errors carry the
// error text; server errors are logged and answered generically.
func writeError(w http.ResponseWriter, r *http.Request, op string, err error) {
	status, kind := statusFor(err)
	logger := log.FromContext(r.Context())
	userID, _ := auth.UserID(r.Context())

	if status >= http.StatusInternalServerError {
		log.LogError(r.Context(), logger, "Request failed", err, log.ComponentHTTP, op,
			log.NewFields().WithUser(userID).WithHTTPRequest(r.Method, r.URL.Path, r.URL.RawQuery, ""))
		InternalServerError("Internal server error").Write(w)
		return
	}

	logger.DebugContext(r.Context(), "Request rejected",
		log.FieldOperation, op,
		log.FieldUserID, userID,
		log.FieldError, err,
		"kind", kind)

	msg := err.Error()
	switch status {
	case http.StatusNotFound:
		msg = "Not found"
	case http.StatusUnauthorized:
		msg = "Invalid token"
	}
	ErrorResponse(status, msg).Write(w)
}
