package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"freelancehub/exceptions"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
)

type errorResponse struct {
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", slog.String("error", err.Error()))
	}
}

// writeError answers with the exception's status and message. Anything
// else is logged and hidden behind a generic 500.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	var appErr *exceptions.Exception
	if errors.As(err, &appErr) {
		writeJSON(w, appErr.StatusCode, errorResponse{Message: appErr.Message})
		return
	}

	slog.ErrorContext(r.Context(), "request failed",
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path),
		slog.String("request_id", chimiddleware.GetReqID(r.Context())),
		slog.String("error", err.Error()),
	)
	writeJSON(w, http.StatusInternalServerError, errorResponse{Message: "Server Error"})
}

func decodeJSON(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return exceptions.ErrInvalidJSON
	}
	return nil
}
