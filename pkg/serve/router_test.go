package serve

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
)

func TestRouter(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(WithRegistry(reg))
	p := NewPreview(testPage("routed"), WithMetrics(m))
	defer p.Close()

	srv := httptest.NewServer(NewRouter(RouterConfig{Preview: p, Gatherer: reg}))
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/")
	if err != nil {
		t.Fatalf("GET /: %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	if !strings.Contains(string(body), "<body>routed</body>") {
		t.Errorf("GET / body = %q", body)
	}

	resp, err = http.Get(srv.URL + "/metrics")
	if err != nil {
		t.Fatalf("GET /metrics: %v", err)
	}
	body, _ = io.ReadAll(resp.Body)
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("GET /metrics status = %d", resp.StatusCode)
	}
	if !strings.Contains(string(body), `markup_renders_total{route="/",status="success"} 1`) {
		t.Errorf("metrics missing render counter:\n%s", body)
	}

	conn := dialPreview(t, srv, "/_markup/preview")
	waitForClients(t, p, 1)
	p.Update(testPage("again"))
	if msg := readMessage(t, conn); msg.Type != MessageReload {
		t.Errorf("message type = %q", msg.Type)
	}
}

func TestRouterMetricsDisabled(t *testing.T) {
	p := NewPreview(testPage("x"))
	r := NewRouter(RouterConfig{Preview: p, MetricsPath: "-"})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestRouterUnknownPath(t *testing.T) {
	r := NewRouter(RouterConfig{Preview: NewPreview(testPage("x"))})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/missing", nil))
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}
