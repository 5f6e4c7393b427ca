package tracking

import (
	"math/rand"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// DetectDevice classifies a user agent by substring. Empty UA is "unknown";
// anything that is neither mobile nor tablet counts as desktop.
func DetectDevice(userAgent string) string {
	if strings.TrimSpace(userAgent) == "" {
		return "unknown"
	}
	ua := strings.ToLower(userAgent)
	switch {
	case strings.Contains(ua, "mobile"), strings.Contains(ua, "android"), strings.Contains(ua, "iphone"):
		return "mobile"
	case strings.Contains(ua, "tablet"), strings.Contains(ua, "ipad"):
		return "tablet"
	}
	return "desktop"
}

// ClientIP picks the caller address from proxy headers; first hop of
// X-Forwarded-For wins, then X-Real-IP.
func ClientIP(h http.Header) string {
	if fwd := h.Get("X-Forwarded-For"); fwd != "" {
		return strings.TrimSpace(strings.Split(fwd, ",")[0])
	}
	if real := h.Get("X-Real-IP"); real != "" {
		return strings.TrimSpace(real)
	}
	return "unknown"
}

const base36 = "0123456789abcdefghijklmnopqrstuvwxyz"

// NewSessionID mints a sess_<unix-ms>_<rand> token. Time-based plus random
// tail: unique with overwhelming probability, not cryptographically so — a
// collision is a data-quality risk only.
func NewSessionID(t time.Time) string {
	tail := make([]byte, 9)
	for i := range tail {
		tail[i] = base36[rand.Intn(len(base36))]
	}
	return "sess_" + strconv.FormatInt(t.UnixMilli(), 10) + "_" + string(tail)
}
