package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"homebuddy-auth/internal/observability/logging"
)

func TestWithRequestAndTraceGeneratesIDs(t *testing.T) {
	var seenReq, seenTrace string
	h := WithRequestAndTrace(logging.Discard())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seenReq = RequestIDFromContext(r.Context())
		seenTrace = TraceIDFromContext(r.Context())
		w.WriteHeader(http.StatusTeapot)
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	if seenReq == "" || seenTrace == "" {
		t.Fatalf("expected ids in context, got %q / %q", seenReq, seenTrace)
	}
	if rec.Header().Get(HeaderRequestID) != seenReq {
		t.Fatalf("expected request id to be echoed, got %q", rec.Header().Get(HeaderRequestID))
	}
	if rec.Code != http.StatusTeapot {
		t.Fatalf("expected status to pass through, got %d", rec.Code)
	}
}

func TestWithRequestAndTraceKeepsIncomingIDs(t *testing.T) {
	var seen string
	h := WithRequestAndTrace(logging.Discard())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = RequestIDFromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(HeaderRequestID, "req-123")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if seen != "req-123" {
		t.Fatalf("expected incoming request id, got %q", seen)
	}
}

func TestContextAccessorsOnEmptyContext(t *testing.T) {
	ctx := context.Background()
	if RequestIDFromContext(ctx) != "" || TraceIDFromContext(ctx) != "" {
		t.Fatalf("expected empty ids")
	}
	base := logging.Discard()
	if Logger(ctx, base) != base {
		t.Fatalf("expected base logger when no ids are present")
	}
}
