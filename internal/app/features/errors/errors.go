// internal/app/features/errors/errors.go
package errors

import (
	"net/http"
	"runtime/debug"

	"github.com/dalemusser/alumnihub/internal/app/system/jsonio"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// InternalMessage is the only thing clients learn about a server failure.
const InternalMessage = "Internal server error."

// ErrorLogger logs request failures and writes the JSON error response.
type ErrorLogger struct {
	log *zap.Logger
}

// NewErrorLogger constructs an ErrorLogger.
func NewErrorLogger(logger *zap.Logger) *ErrorLogger {
	return &ErrorLogger{log: logger}
}

func requestFields(r *http.Request, id string) []zap.Field {
	return []zap.Field{
		zap.String("request_id", id),
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
	}
}

// LogServerError logs err at error level under a fresh request ID and
// answers 500 with a generic message. The ID is echoed in X-Request-ID so
// a report can be matched to the log line.
func (e *ErrorLogger) LogServerError(w http.ResponseWriter, r *http.Request, msg string, err error) {
	id := uuid.NewString()
	e.log.Error(msg, append(requestFields(r, id), zap.Error(err))...)
	w.Header().Set("X-Request-ID", id)
	jsonio.Message(w, http.StatusInternalServerError, InternalMessage)
}

// LogBadRequest logs err at debug level and answers 400 with userMsg.
func (e *ErrorLogger) LogBadRequest(w http.ResponseWriter, r *http.Request, msg string, err error, userMsg string) {
	e.log.Debug(msg, zap.String("path", r.URL.Path), zap.Error(err))
	jsonio.Message(w, http.StatusBadRequest, userMsg)
}

// Warn logs a failed best-effort side effect. Nothing is written to w.
func (e *ErrorLogger) Warn(r *http.Request, msg string, err error) {
	e.log.Warn(msg, zap.String("path", r.URL.Path), zap.Error(err))
}

// Recoverer turns a panic in next into a logged 500.
func (e *ErrorLogger) Recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if rec == http.ErrAbortHandler {
				panic(rec)
			}
			id := uuid.NewString()
			e.log.Error("panic serving request", append(requestFields(r, id),
				zap.Any("panic", rec),
				zap.ByteString("stack", debug.Stack()),
			)...)
			w.Header().Set("X-Request-ID", id)
			jsonio.Message(w, http.StatusInternalServerError, InternalMessage)
		}()
		next.ServeHTTP(w, r)
	})
}

// Handler serves the router's fallback responses.
// No DB needed.
type Handler struct{}

// NewHandler constructs an errors Handler.
func NewHandler() *Handler {
	return &Handler{}
}

// NotFound answers unknown routes.
func (h *Handler) NotFound(w http.ResponseWriter, r *http.Request) {
	jsonio.Message(w, http.StatusNotFound, "Not found.")
}

// MethodNotAllowed answers known routes hit with the wrong method.
func (h *Handler) MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	jsonio.Message(w, http.StatusMethodNotAllowed, "Method not allowed.")
}
