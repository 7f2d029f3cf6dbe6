package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/kozaktomas/face-attendance/internal/constants"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

var okHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
})

func TestCORS_Wildcard(t *testing.T) {
	handler := CORS([]string{"*"})(okHandler)

	req := httptest.NewRequest(http.MethodPost, "/recognize", nil)
	req.Header.Set("Origin", "http://kiosk.local:8081")
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, req)

	if got := recorder.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("expected wildcard origin, got '%s'", got)
	}
}

func TestCORS_AllowList(t *testing.T) {
	handler := CORS([]string{"https://kiosk.example", " "})(okHandler)

	tests := []struct {
		origin string
		want   string
	}{
		{"https://kiosk.example", "https://kiosk.example"},
		{"https://evil.example", ""},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.origin, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/health", nil)
			if tt.origin != "" {
				req.Header.Set("Origin", tt.origin)
			}
			recorder := httptest.NewRecorder()
			handler.ServeHTTP(recorder, req)

			if got := recorder.Header().Get("Access-Control-Allow-Origin"); got != tt.want {
				t.Errorf("expected origin '%s', got '%s'", tt.want, got)
			}
		})
	}
}

func TestCORS_Preflight(t *testing.T) {
	called := false
	handler := CORS([]string{"*"})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))

	req := httptest.NewRequest(http.MethodOptions, "/register", nil)
	req.Header.Set("Origin", "http://kiosk.local")
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, req)

	if recorder.Code != http.StatusOK {
		t.Errorf("expected 200 for preflight, got %d", recorder.Code)
	}
	if called {
		t.Error("preflight should not reach the handler")
	}
}

func TestRateLimit_RejectsAfterBurst(t *testing.T) {
	handler := RateLimit(0.001, 2)(okHandler)

	codes := make([]int, 3)
	for i := range codes {
		recorder := httptest.NewRecorder()
		handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodPost, "/recognize", nil))
		codes[i] = recorder.Code

		if i == 2 {
			var body map[string]any
			if err := json.Unmarshal(recorder.Body.Bytes(), &body); err != nil {
				t.Fatalf("failed to parse body: %v", err)
			}
			if body["success"] != false || body["message"] != constants.MsgTooManyRequests {
				t.Errorf("unexpected body %v", body)
			}
		}
	}

	if codes[0] != http.StatusOK || codes[1] != http.StatusOK || codes[2] != http.StatusTooManyRequests {
		t.Errorf("expected 200, 200, 429, got %v", codes)
	}
}

func TestRateLimit_Disabled(t *testing.T) {
	handler := RateLimit(0, 0)(okHandler)

	for range 50 {
		recorder := httptest.NewRecorder()
		handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodPost, "/recognize", nil))
		if recorder.Code != http.StatusOK {
			t.Fatalf("expected 200 with limiting disabled, got %d", recorder.Code)
		}
	}
}

func TestRequestLogger(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	handler := RequestLogger(zap.New(core))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/recognize", nil))

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("expected one log entry, got %d", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields["path"] != "/recognize" {
		t.Errorf("expected path field, got %v", fields["path"])
	}
	if fields["status"] != int64(http.StatusNotFound) {
		t.Errorf("expected status 404, got %v (%T)", fields["status"], fields["status"])
	}
}
