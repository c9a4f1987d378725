package httpserver

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ej8899/homelab-web-server/internal/config"
	"github.com/ej8899/homelab-web-server/internal/sysinfo"
)

const sentinelDocRoot = "/srv/secret-docroot"

func newTestRouter(t *testing.T, cfg config.Config) http.Handler {
	t.Helper()
	if cfg.DocumentRoot == "" {
		cfg.DocumentRoot = sentinelDocRoot
	}
	r, err := NewRouter(RouterDeps{
		Config: cfg,
		Sys:    sysinfo.NewCollector(cfg.DiskPath, cfg.DocumentRoot),
	})
	if err != nil {
		t.Fatalf("NewRouter: %v", err)
	}
	return r
}

func get(h http.Handler, target, remoteAddr string, hdr map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	req.RemoteAddr = remoteAddr
	for k, v := range hdr {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestReportPagePublicViewerRedacted(t *testing.T) {
	h := newTestRouter(t, config.Config{})

	rec := get(h, "/", "203.0.113.7:4444", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d; want 200", rec.Code)
	}
	body := rec.Body.String()

	if !strings.Contains(body, "System Information") {
		t.Error("page missing title")
	}
	if strings.Contains(body, sentinelDocRoot) {
		t.Error("public viewer sees the document root")
	}
	if strings.Contains(body, "Request Details") {
		t.Error("public viewer sees the request details section")
	}
}

func TestReportPagePrivateViewerSeesRequestDetails(t *testing.T) {
	h := newTestRouter(t, config.Config{})

	rec := get(h, "/", "192.168.1.10:4444", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d; want 200", rec.Code)
	}
	body := rec.Body.String()

	if !strings.Contains(body, "Request Details") {
		t.Error("private viewer missing request details section")
	}
	if !strings.Contains(body, sentinelDocRoot) {
		t.Error("private viewer missing document root")
	}
}

func TestForwardedForOverridesConnectionAddress(t *testing.T) {
	h := newTestRouter(t, config.Config{})

	// LAN connection address, but the forwarded chain says the real client
	// is public: the page must redact.
	rec := get(h, "/", "192.168.1.10:4444", map[string]string{
		"X-Forwarded-For": "203.0.113.7",
	})
	if strings.Contains(rec.Body.String(), sentinelDocRoot) {
		t.Error("forwarded public viewer sees the document root")
	}
}

func TestReflectedHeaderValuesAreEscaped(t *testing.T) {
	h := newTestRouter(t, config.Config{})

	rec := get(h, "/", "192.168.1.10:4444", map[string]string{
		"X-Forwarded-For": "<script>alert(1)</script>",
	})
	body := rec.Body.String()

	if strings.Contains(body, "<script>alert(1)</script>") {
		t.Error("reflected header value reached the page unescaped")
	}
	if !strings.Contains(body, "&lt;script&gt;") {
		t.Error("escaped header value missing from the page")
	}
}

func TestRobotsDirectives(t *testing.T) {
	h := newTestRouter(t, config.Config{})

	for _, target := range []string{"/", "/api/system"} {
		rec := get(h, target, "127.0.0.1:4444", nil)
		if got := rec.Header().Get("X-Robots-Tag"); got != "noindex, nofollow" {
			t.Errorf("%s: X-Robots-Tag = %q", target, got)
		}
	}

	rec := get(h, "/", "127.0.0.1:4444", nil)
	if !strings.Contains(rec.Body.String(), `<meta name="robots" content="noindex, nofollow">`) {
		t.Error("page missing robots meta tag")
	}
}

func TestAPISystemRedaction(t *testing.T) {
	h := newTestRouter(t, config.Config{})

	var pub map[string]json.RawMessage
	rec := get(h, "/api/system", "203.0.113.7:4444", nil)
	if err := json.Unmarshal(rec.Body.Bytes(), &pub); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if _, ok := pub["request"]; ok {
		t.Error("public JSON report carries request info")
	}
	if string(pub["viewer_class"]) != `"public"` {
		t.Errorf("viewer_class = %s", pub["viewer_class"])
	}

	var priv map[string]json.RawMessage
	rec = get(h, "/api/system", "10.20.30.40:4444", nil)
	if err := json.Unmarshal(rec.Body.Bytes(), &priv); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if _, ok := priv["request"]; !ok {
		t.Error("private JSON report missing request info")
	}
}

func TestSubnetAllowlist(t *testing.T) {
	h := newTestRouter(t, config.Config{AllowedSubnets: []string{"10.0.0.0/8"}})

	if rec := get(h, "/", "8.8.8.8:1234", nil); rec.Code != http.StatusForbidden {
		t.Errorf("outside subnet: status = %d; want 403", rec.Code)
	}
	if rec := get(h, "/", "10.1.2.3:1234", nil); rec.Code != http.StatusOK {
		t.Errorf("inside subnet: status = %d; want 200", rec.Code)
	}
}

func TestSubnetAllowlistRejectsBadCIDR(t *testing.T) {
	_, err := NewRouter(RouterDeps{
		Config: config.Config{AllowedSubnets: []string{"not-a-cidr"}},
		Sys:    sysinfo.NewCollector("/", "/tmp"),
	})
	if err == nil {
		t.Fatal("expected error for malformed CIDR")
	}
}
