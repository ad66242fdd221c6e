package server

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func serveWith(cfg SecurityConfig, method, origin string) (*httptest.ResponseRecorder, bool) {
	reached := false
	h := SecurityMiddleware(cfg, func(w http.ResponseWriter, _ *http.Request) {
		reached = true
		w.WriteHeader(http.StatusTeapot)
	})
	req := httptest.NewRequest(method, "/metrics", http.NoBody)
	if origin != "" {
		req.Header.Set("Origin", origin)
	}
	w := httptest.NewRecorder()
	h(w, req)
	return w, reached
}

func TestSecurityHeaders(t *testing.T) {
	t.Parallel()
	w, reached := serveWith(DefaultSecurityConfig(), http.MethodGet, "")
	if !reached || w.Code != http.StatusTeapot {
		t.Fatalf("GET must reach the wrapped handler (reached=%v, code=%d)", reached, w.Code)
	}
	for header, want := range map[string]string{
		"X-Content-Type-Options":  "nosniff",
		"X-Frame-Options":         "DENY",
		"Referrer-Policy":         "strict-origin-when-cross-origin",
		"Content-Security-Policy": "default-src 'none'; frame-ancestors 'none'",
	} {
		if got := w.Header().Get(header); got != want {
			t.Errorf("%s = %q, want %q", header, got, want)
		}
	}
}

func TestCORSOrigins(t *testing.T) {
	t.Parallel()
	scraper := "https://grafana.example"
	tests := []struct {
		name       string
		cfg        SecurityConfig
		origin     string
		wantOrigin string
	}{
		{"wildcard", DefaultSecurityConfig(), scraper, "*"},
		{"listed origin is echoed", SecurityConfig{EnableCORS: true, AllowedOrigins: []string{scraper}}, scraper, scraper},
		{"unlisted origin", SecurityConfig{EnableCORS: true, AllowedOrigins: []string{scraper}}, "https://evil.example", ""},
		{"missing origin", SecurityConfig{EnableCORS: true, AllowedOrigins: []string{scraper}}, "", ""},
		{"cors disabled", SecurityConfig{AllowedOrigins: []string{"*"}}, scraper, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			w, _ := serveWith(tt.cfg, http.MethodGet, tt.origin)
			if got := w.Header().Get("Access-Control-Allow-Origin"); got != tt.wantOrigin {
				t.Errorf("Allow-Origin = %q, want %q", got, tt.wantOrigin)
			}
			if tt.wantOrigin == "" && w.Header().Get("Access-Control-Allow-Methods") != "" {
				t.Error("Allow-Methods set without an allowed origin")
			}
		})
	}
}

func TestPreflightShortCircuits(t *testing.T) {
	t.Parallel()
	w, reached := serveWith(DefaultSecurityConfig(), http.MethodOptions, "https://grafana.example")
	if reached {
		t.Error("OPTIONS must not reach the wrapped handler")
	}
	if w.Code != http.StatusNoContent {
		t.Errorf("status = %d, want %d", w.Code, http.StatusNoContent)
	}
	if got := w.Header().Get("Access-Control-Allow-Methods"); got != "GET, OPTIONS" {
		t.Errorf("Allow-Methods = %q", got)
	}
}
