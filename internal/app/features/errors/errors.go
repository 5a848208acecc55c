// internal/app/features/errors/errors.go
package errors

import (
	"encoding/json"
	"net/http"

	"github.com/dalemusser/memberhub/internal/app/system/httpmw"
	"go.uber.org/zap"
)

// errorBody is the JSON shape of every error response.
type errorBody struct {
	Error string `json:"error"`
}

// WriteJSON writes v as a JSON response with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteError writes {"error": msg} with the given status.
func WriteError(w http.ResponseWriter, status int, msg string) {
	WriteJSON(w, status, errorBody{Error: msg})
}

// ErrorLogger logs server-side failures and answers them with a generic 500.
type ErrorLogger struct {
	Log *zap.Logger
}

// NewErrorLogger constructs an ErrorLogger around the app logger.
func NewErrorLogger(logger *zap.Logger) *ErrorLogger {
	return &ErrorLogger{Log: logger}
}

// LogServerError logs msg and err with request context and writes a 500.
// The client only sees a generic message.
func (e *ErrorLogger) LogServerError(w http.ResponseWriter, r *http.Request, msg string, err error) {
	e.Log.Error(msg,
		zap.Error(err),
		zap.String("request_id", httpmw.RequestIDFrom(r.Context())),
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
	)
	WriteError(w, http.StatusInternalServerError, "internal server error")
}

// Handler serves JSON fallbacks for unmatched routes and methods.
type Handler struct{}

// NewHandler constructs an errors Handler.
func NewHandler() *Handler {
	return &Handler{}
}

// NotFound answers routes that matched nothing.
func (h *Handler) NotFound(w http.ResponseWriter, r *http.Request) {
	WriteError(w, http.StatusNotFound, "Not found")
}

// MethodNotAllowed answers known routes hit with an unsupported method.
func (h *Handler) MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
}
