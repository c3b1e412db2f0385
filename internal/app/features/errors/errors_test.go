package errors_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	uierrors "github.com/dalemusser/alumnihub/internal/app/features/errors"
	"github.com/dalemusser/alumnihub/internal/testutil"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestLogServerError_HidesDetail(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	el := uierrors.NewErrorLogger(zap.New(core))

	rec := testutil.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/events", nil)
	el.LogServerError(rec, req, "list events failed", errors.New("connection refused"))

	rec.AssertStatus(t, http.StatusInternalServerError)
	rec.AssertMessage(t, uierrors.InternalMessage)

	id := rec.Header().Get("X-Request-ID")
	if id == "" {
		t.Fatal("expected X-Request-ID header")
	}
	entries := logs.FilterMessage("list events failed").All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 log entry, got %d", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields["request_id"] != id || fields["path"] != "/api/events" {
		t.Errorf("fields: %v", fields)
	}
}

func TestLogBadRequest(t *testing.T) {
	el := uierrors.NewErrorLogger(zap.NewNop())
	rec := testutil.NewRecorder()
	el.LogBadRequest(rec, httptest.NewRequest(http.MethodPost, "/", nil), "decode", errors.New("eof"), "Invalid request body.")

	rec.AssertStatus(t, http.StatusBadRequest)
	rec.AssertMessage(t, "Invalid request body.")
}

func TestRecoverer(t *testing.T) {
	core, logs := observer.New(zapcore.ErrorLevel)
	el := uierrors.NewErrorLogger(zap.New(core))

	h := el.Recoverer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))
	rec := testutil.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	rec.AssertStatus(t, http.StatusInternalServerError)
	if logs.FilterMessage("panic serving request").Len() != 1 {
		t.Error("expected panic to be logged")
	}
}

func TestNotFound(t *testing.T) {
	rec := testutil.NewRecorder()
	uierrors.NewHandler().NotFound(rec, httptest.NewRequest(http.MethodGet, "/nope", nil))
	rec.AssertStatus(t, http.StatusNotFound)
	rec.AssertMessage(t, "Not found.")
}
