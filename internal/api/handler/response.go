package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"repayment-engine/internal/api/handler/dto"
	"repayment-engine/internal/pkg/apperrors"
	"strconv"

	"github.com/go-chi/chi/v5"
)

func decodeJSON(r *http.Request, v any) error {
	if r.Body == nil {
		return fmt.Errorf("no request body")
	}
	defer r.Body.Close()
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	return decoder.Decode(v)
}

func respondJSON(w http.ResponseWriter, status int, payload any) {
	if payload == nil {
		w.WriteHeader(status)
		return
	}
	response, err := json.Marshal(payload)
	if err != nil {
		slog.Default().Error("Failed to marshal JSON response", "error", err)
		http.Error(w, `{"error":{"message":"Internal server error"}}`, http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(response)
}

func respondError(w http.ResponseWriter, err error) {
	status, message, field := http.StatusInternalServerError, "An unexpected error occurred.", ""
	var validationError *apperrors.ValidationError

	switch {
	case errors.As(err, &validationError):
		status, message, field = http.StatusBadRequest, validationError.Message, validationError.Field
	case errors.Is(err, apperrors.ErrNotFound):
		status, message = http.StatusNotFound, "Resource not found."
	case errors.Is(err, apperrors.ErrInvalidArgument), errors.Is(err, apperrors.ErrValidation):
		status, message = http.StatusBadRequest, err.Error()
	case errors.Is(err, apperrors.ErrInvalidPaymentAmount),
		errors.Is(err, apperrors.ErrUnsupportedCurrency),
		errors.Is(err, apperrors.ErrCurrencyMismatch),
		errors.Is(err, apperrors.ErrInactiveUser):
		status, message = http.StatusBadRequest, err.Error()
	case errors.Is(err, apperrors.ErrConcurrencyConflict):
		status, message = http.StatusConflict, "The loan is being updated concurrently, retry the request."
	case errors.Is(err, apperrors.ErrAlreadyExists):
		status, message = http.StatusConflict, err.Error()
	default:
		slog.Default().Error("Unhandled internal error", "error", err)
	}

	resp := dto.ErrorResponse{
		Error: dto.ErrorDetail{
			Message: message,
			Field:   field,
		},
	}
	respondJSON(w, status, resp)
}

func idFromURL(r *http.Request, param string) (int64, error) {
	idStr := chi.URLParam(r, param)
	if idStr == "" {
		return 0, fmt.Errorf("%w: %s not found in URL path", apperrors.ErrInvalidArgument, param)
	}
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: invalid %s format in URL path: %s", apperrors.ErrInvalidArgument, param, idStr)
	}
	return id, nil
}

// logLevelFor keeps expected client errors out of the error log.
func logLevelFor(err error) slog.Level {
	var validationError *apperrors.ValidationError
	switch {
	case errors.As(err, &validationError),
		errors.Is(err, apperrors.ErrNotFound),
		errors.Is(err, apperrors.ErrInvalidArgument),
		errors.Is(err, apperrors.ErrValidation),
		errors.Is(err, apperrors.ErrInvalidPaymentAmount),
		errors.Is(err, apperrors.ErrUnsupportedCurrency),
		errors.Is(err, apperrors.ErrCurrencyMismatch),
		errors.Is(err, apperrors.ErrInactiveUser),
		errors.Is(err, apperrors.ErrConcurrencyConflict):
		return slog.LevelWarn
	default:
		return slog.LevelError
	}
}
