package tracking

import (
	"net/http"
	"strings"
	"testing"
	"time"
)

func TestDetectDevice(t *testing.T) {
	cases := []struct {
		ua   string
		want string
	}{
		{"Mozilla/5.0 (Linux; Android 14; Pixel 8) AppleWebKit/537.36", "mobile"},
		{"Mozilla/5.0 (iPhone; CPU iPhone OS 17_0 like Mac OS X)", "mobile"},
		{"Mozilla/5.0 (iPad; CPU OS 16_6 like Mac OS X)", "tablet"},
		{"Mozilla/5.0 (Linux; Tablet; rv:109.0)", "tablet"},
		{"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36", "desktop"},
		{"curl/8.4.0", "desktop"},
		{"", "unknown"},
		{"   ", "unknown"},
	}
	for _, c := range cases {
		if got := DetectDevice(c.ua); got != c.want {
			t.Fatalf("DetectDevice(%q) = %q, want %q", c.ua, got, c.want)
		}
	}
}

func TestClientIP(t *testing.T) {
	h := http.Header{}
	h.Set("X-Forwarded-For", "203.0.113.9, 10.0.0.1")
	if got := ClientIP(h); got != "203.0.113.9" {
		t.Fatalf("expected first forwarded hop, got %q", got)
	}

	h = http.Header{}
	h.Set("X-Real-IP", "198.51.100.7")
	if got := ClientIP(h); got != "198.51.100.7" {
		t.Fatalf("expected x-real-ip, got %q", got)
	}

	if got := ClientIP(http.Header{}); got != "unknown" {
		t.Fatalf("expected unknown, got %q", got)
	}
}

func TestNewSessionIDFormat(t *testing.T) {
	now := time.Now()
	id := NewSessionID(now)
	if !strings.HasPrefix(id, "sess_") {
		t.Fatalf("unexpected prefix: %s", id)
	}
	parts := strings.Split(id, "_")
	if len(parts) != 3 || len(parts[2]) != 9 {
		t.Fatalf("unexpected shape: %s", id)
	}
}
