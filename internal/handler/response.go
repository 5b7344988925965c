package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"referral-platform/internal/model"
	"referral-platform/pkg/apierror"
)

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeMessage(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, model.MessageResponse{Message: message})
}

// writeError maps domain failures onto the platform's flat {message} bodies.
// Anything unclassified becomes a generic 500 with the detail kept
// server-side.
func writeError(w http.ResponseWriter, err error) {
	var apiErr *apierror.APIError
	if errors.As(err, &apiErr) {
		writeMessage(w, apiErr.HTTPStatus, apiErr.Message)
		return
	}

	switch {
	case errors.Is(err, model.ErrUserNotFound):
		writeMessage(w, http.StatusNotFound, "User not found")
	case errors.Is(err, model.ErrDuplicateEmail):
		writeMessage(w, http.StatusBadRequest, "User with this email already exists")
	case errors.Is(err, model.ErrDuplicateUsername):
		writeMessage(w, http.StatusBadRequest, "Username is already taken")
	case errors.Is(err, model.ErrInvalidCredentials):
		writeMessage(w, http.StatusBadRequest, "Invalid credentials")
	case errors.Is(err, model.ErrInsufficientBalance):
		writeMessage(w, http.StatusBadRequest, "Insufficient wallet balance")
	case errors.Is(err, model.ErrTokenInvalid), errors.Is(err, model.ErrTokenExpired):
		writeJSON(w, http.StatusUnauthorized, model.VerifyResponse{Valid: false, Message: "Invalid token"})
	case errors.Is(err, model.ErrForbidden):
		writeMessage(w, http.StatusForbidden, "Access denied")
	case errors.Is(err, model.ErrUnauthorized):
		writeJSON(w, http.StatusUnauthorized, model.VerifyResponse{Valid: false, Message: "No token provided"})
	default:
		slog.Error("unhandled error in writeError", "error", err.Error())
		writeMessage(w, http.StatusInternalServerError, "Internal server error")
	}
}
