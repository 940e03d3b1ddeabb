package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/vango-dev/markup/internal/errors"
	"github.com/vango-dev/markup/pkg/element"
)

func writeTemp(t *testing.T, name, data string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestRenderToStdout(t *testing.T) {
	head := writeTemp(t, "head.html", "<head><title>t</title></head>")
	body := writeTemp(t, "body.html", "<body>b</body>")

	out, _, err := execute(t, "render", "--head", head, "--body", body)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	want := "<!DOCTYPE html><html><head><title>t</title></head><body>b</body></html>"
	if diff := cmp.Diff(want, out); diff != "" {
		t.Errorf("output mismatch (-want +got):\n%s", diff)
	}
}

func TestRenderHeadOnly(t *testing.T) {
	head := writeTemp(t, "head.html", "<head></head>")

	out, _, err := execute(t, "render", "--head", head)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if want := "<!DOCTYPE html><html><head></head></html>"; out != want {
		t.Errorf("got %q, want %q", out, want)
	}
}

func TestRenderEmpty(t *testing.T) {
	out, _, err := execute(t, "render")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if want := "<!DOCTYPE html><html></html>"; out != want {
		t.Errorf("got %q, want %q", out, want)
	}
}

func TestRenderMarkdownSanitized(t *testing.T) {
	body := writeTemp(t, "body.md", "Hello <script>alert(1)</script> **world**\n")

	out, _, err := execute(t, "render", "--body", body, "--sanitize")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.HasPrefix(out, "<!DOCTYPE html><html>") || !strings.HasSuffix(out, "</html>") {
		t.Errorf("missing document frame: %q", out)
	}
	if !strings.Contains(out, "<strong>world</strong>") {
		t.Errorf("markdown not converted: %q", out)
	}
	if strings.Contains(out, "<script") {
		t.Errorf("script survived sanitizing: %q", out)
	}
}

func TestRenderToFile(t *testing.T) {
	head := writeTemp(t, "head.html", "<head></head>")
	output := filepath.Join(t.TempDir(), "index.html")

	out, stderr, err := execute(t, "render", "--head", head, "-o", output)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if out != "" {
		t.Errorf("stdout should be empty, got %q", out)
	}
	if !strings.Contains(stderr, "Wrote "+output) {
		t.Errorf("stderr = %q, want confirmation", stderr)
	}

	data, err := os.ReadFile(output)
	if err != nil {
		t.Fatal(err)
	}
	if want := "<!DOCTYPE html><html><head></head></html>"; string(data) != want {
		t.Errorf("file = %q, want %q", data, want)
	}
}

func TestRenderMissingSource(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "nope.html")

	_, _, err := execute(t, "render", "--body", missing)
	if !errors.HasCode(err, "E002") {
		t.Fatalf("err = %v, want E002", err)
	}
}

func TestRenderWithConfig(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "head.html"), []byte("<head></head>"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "body.html"), []byte("<body></body>"), 0644); err != nil {
		t.Fatal(err)
	}
	cfgPath := filepath.Join(dir, "markup.yaml")
	cfgData := "document:\n  head: head.html\n  body: body.html\n"
	if err := os.WriteFile(cfgPath, []byte(cfgData), 0644); err != nil {
		t.Fatal(err)
	}

	out, _, err := execute(t, "--config", cfgPath, "render")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if want := "<!DOCTYPE html><html><head></head><body></body></html>"; out != want {
		t.Errorf("got %q, want %q", out, want)
	}
}

func TestRenderBadConfig(t *testing.T) {
	cfgPath := writeTemp(t, "markup.yaml", "server:\n  port: 99999\n")

	_, _, err := execute(t, "--config", cfgPath, "render")
	if !errors.HasCode(err, "E120") {
		t.Fatalf("err = %v, want E120", err)
	}
}

func TestVersionShort(t *testing.T) {
	out, _, err := execute(t, "version", "--short")
	if err != nil {
		t.Fatalf("version: %v", err)
	}
	if out != version+"\n" {
		t.Errorf("got %q, want %q", out, version+"\n")
	}
}

func TestVersionLong(t *testing.T) {
	out, _, err := execute(t, "version")
	if err != nil {
		t.Fatalf("version: %v", err)
	}
	for _, want := range []string{"markup " + version, "Commit:", "Go version:"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestBuildDocumentTrailer(t *testing.T) {
	doc, err := buildDocument(sources{}, element.Text("<script></script>"))
	if err != nil {
		t.Fatal(err)
	}
	got, err := element.String(doc)
	if err != nil {
		t.Fatal(err)
	}
	if want := "<!DOCTYPE html><html><script></script></html>"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestSourcesMerge(t *testing.T) {
	s := sources{head: "h.html"}.merge("config-head.html", "config-body.md", true)
	want := sources{head: "h.html", body: "config-body.md", sanitize: true}
	if diff := cmp.Diff(want, s, cmp.AllowUnexported(sources{})); diff != "" {
		t.Errorf("merge mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"h.html", "config-body.md"}, s.paths()); diff != "" {
		t.Errorf("paths mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := loadConfig(&globalOptions{})
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if cfg.Server.Port != 3000 {
		t.Errorf("port = %d, want default", cfg.Server.Port)
	}
}

func TestPublishRequiresBucket(t *testing.T) {
	_, _, err := execute(t, "publish")
	if !errors.HasCode(err, "E021") {
		t.Fatalf("err = %v, want E021", err)
	}
}
