package middleware

import (
	"encoding/json"
	"fmt"
	"net/http"
	"trivia-api/internal/logger"

	chimw "github.com/go-chi/chi/v5/middleware"
)

// AppError represents a failed request. Code selects the response; Message
// and Error are logged and never shown to the client.
type AppError struct {
	Error   error
	Message string
	Code    int
}

// AppHandler is a custom handler function type that returns an AppError.
type AppHandler func(http.ResponseWriter, *http.Request) *AppError

// ErrorResponse is the JSON body of every failed request.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   int    `json:"error"`
	Message string `json:"message"`
}

var statusMessages = map[int]string{
	http.StatusBadRequest:          "bad request",
	http.StatusNotFound:            "resource not found",
	http.StatusMethodNotAllowed:    "method not allowed",
	http.StatusUnprocessableEntity: "unprocessable",
	http.StatusInternalServerError: "internal server error",
}

// StatusMessage returns the client-facing message for an error status.
// Codes outside the table are reported as internal server errors.
func StatusMessage(code int) (int, string) {
	if msg, ok := statusMessages[code]; ok {
		return code, msg
	}
	return http.StatusInternalServerError, statusMessages[http.StatusInternalServerError]
}

// WriteError writes the JSON error envelope for code.
func WriteError(w http.ResponseWriter, code int) {
	code, msg := StatusMessage(code)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Success: false, Error: code, Message: msg})
}

// Error is a middleware that converts handler errors and panics into JSON
// error responses. Server faults are logged at error level, client errors at
// debug level.
func Error(log logger.Logger) func(AppHandler) http.Handler {
	return func(next AppHandler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			reqLog := log.With(map[string]interface{}{
				"request_id": chimw.GetReqID(r.Context()),
				"method":     r.Method,
				"path":       r.URL.Path,
			})

			defer func() {
				if rec := recover(); rec != nil {
					if rec == http.ErrAbortHandler {
						panic(rec)
					}
					err, ok := rec.(error)
					if !ok {
						err = fmt.Errorf("%v", rec)
					}
					reqLog.Error(err, "Panic recovered")
					WriteError(w, http.StatusInternalServerError)
				}
			}()

			appErr := next(w, r)
			if appErr == nil {
				return
			}
			code, _ := StatusMessage(appErr.Code)
			if code >= http.StatusInternalServerError {
				reqLog.Error(appErr.Error, appErr.Message)
			} else {
				reqLog.With(map[string]interface{}{"status": code, "error": errString(appErr.Error)}).Debug(appErr.Message)
			}
			WriteError(w, code)
		})
	}
}

func errString(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
