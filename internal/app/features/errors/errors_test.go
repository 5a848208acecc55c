package errors_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	uierrors "github.com/dalemusser/memberhub/internal/app/features/errors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestWriteError(t *testing.T) {
	rec := httptest.NewRecorder()
	uierrors.WriteError(rec, http.StatusNotFound, "Member not found")

	if rec.Code != http.StatusNotFound {
		t.Errorf("status: got %d, want %d", rec.Code, http.StatusNotFound)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type: got %q, want application/json", ct)
	}
	if got, want := rec.Body.String(), "{\"error\":\"Member not found\"}\n"; got != want {
		t.Errorf("body: got %q, want %q", got, want)
	}
}

func TestLogServerError_HidesCause(t *testing.T) {
	core, logs := observer.New(zapcore.ErrorLevel)
	errLog := uierrors.NewErrorLogger(zap.New(core))

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/members", nil)
	errLog.LogServerError(rec, req, "list members failed", errors.New("connection refused"))

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status: got %d, want 500", rec.Code)
	}
	if got := rec.Body.String(); got != "{\"error\":\"internal server error\"}\n" {
		t.Errorf("body leaked details: %q", got)
	}
	if logs.FilterMessage("list members failed").Len() != 1 {
		t.Error("expected the failure to be logged")
	}
}

func TestHandler_Fallbacks(t *testing.T) {
	h := uierrors.NewHandler()

	rec := httptest.NewRecorder()
	h.NotFound(rec, httptest.NewRequest(http.MethodGet, "/nope", nil))
	if rec.Code != http.StatusNotFound {
		t.Errorf("NotFound status: got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	h.MethodNotAllowed(rec, httptest.NewRequest(http.MethodPost, "/health", nil))
	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("MethodNotAllowed status: got %d", rec.Code)
	}
}
