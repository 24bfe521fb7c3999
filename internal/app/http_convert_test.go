package app

import (
	"net/http"
	"strings"
	"testing"
)

func TestConversionRequiresSession(t *testing.T) {
	ts := newTestServer(t, nil)

	for _, path := range []string{
		"/api/validate",
		"/api/convert/format",
		"/api/convert/minify",
		"/api/convert/markdown",
		"/api/convert/markdown/extract",
		"/api/convert/yaml",
		"/api/convert/yaml/parse",
		"/api/repair",
	} {
		status, payload := ts.request(t, http.MethodPost, path, "", map[string]any{"content": "{}"})
		if status != http.StatusUnauthorized {
			t.Fatalf("%s status = %d, payload = %v", path, status, payload)
		}
		if payload["code"] != "UNAUTHORIZED" {
			t.Fatalf("%s expected UNAUTHORIZED, got %v", path, payload["code"])
		}
	}
}

func TestFormatEndpoint(t *testing.T) {
	ts := newTestServer(t, nil)
	token := ts.signUp(t, "avery@example.com")

	status, payload := ts.request(t, http.MethodPost, "/api/convert/format", token, map[string]any{
		"content": `{"b":1,"a":2}`,
	})
	if status != http.StatusOK {
		t.Fatalf("status = %d, payload = %v", status, payload)
	}
	if payload["valid"] != true {
		t.Fatalf("expected valid payload, got %v", payload)
	}
	if payload["result"] != "{\n  \"b\": 1,\n  \"a\": 2\n}" {
		t.Fatalf("unexpected result: %q", payload["result"])
	}
}

func TestFormatEndpointTabIndent(t *testing.T) {
	ts := newTestServer(t, nil)
	token := ts.signUp(t, "avery@example.com")

	status, payload := ts.request(t, http.MethodPost, "/api/convert/format", token, map[string]any{
		"content": `{"a":1}`,
		"indent":  "tab",
	})
	if status != http.StatusOK {
		t.Fatalf("status = %d, payload = %v", status, payload)
	}
	if payload["result"] != "{\n\t\"a\": 1\n}" {
		t.Fatalf("unexpected result: %q", payload["result"])
	}
}

func TestFormatEndpointRejectsBadIndent(t *testing.T) {
	ts := newTestServer(t, nil)
	token := ts.signUp(t, "avery@example.com")

	for _, indent := range []any{-1, "wide", true} {
		status, payload := ts.request(t, http.MethodPost, "/api/convert/format", token, map[string]any{
			"content": `{"a":1}`,
			"indent":  indent,
		})
		if status != http.StatusUnprocessableEntity {
			t.Fatalf("indent %v status = %d, payload = %v", indent, status, payload)
		}
		if payload["code"] != "VALIDATION_ERROR" {
			t.Fatalf("indent %v expected VALIDATION_ERROR, got %v", indent, payload["code"])
		}
	}
}

func TestConversionInvalidInputReturns422(t *testing.T) {
	ts := newTestServer(t, nil)
	token := ts.signUp(t, "avery@example.com")

	status, payload := ts.request(t, http.MethodPost, "/api/convert/minify", token, map[string]any{
		"content": `{"a":`,
	})
	if status != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, payload = %v", status, payload)
	}
	if payload["valid"] != false {
		t.Fatalf("expected invalid payload, got %v", payload)
	}
	msg, _ := payload["error"].(string)
	if msg == "" {
		t.Fatal("expected parser diagnostic in payload")
	}
}

func TestValidateEndpoint(t *testing.T) {
	ts := newTestServer(t, nil)
	token := ts.signUp(t, "avery@example.com")

	status, payload := ts.request(t, http.MethodPost, "/api/validate", token, map[string]any{
		"content": `{"a": 1,}`,
	})
	if status != http.StatusOK {
		t.Fatalf("status = %d", status)
	}
	if payload["valid"] != false {
		t.Fatalf("expected invalid verdict, got %v", payload)
	}
	msg, _ := payload["error"].(string)
	if !strings.Contains(msg, "offset") {
		t.Fatalf("expected diagnostic with offset, got %q", msg)
	}
}

func TestMarkdownExtractEndpoint(t *testing.T) {
	ts := newTestServer(t, nil)
	token := ts.signUp(t, "avery@example.com")

	status, payload := ts.request(t, http.MethodPost, "/api/convert/markdown/extract", token, map[string]any{
		"content": "```json\n{\"x\": 1}\n```\n",
	})
	if status != http.StatusOK {
		t.Fatalf("status = %d, payload = %v", status, payload)
	}
	if payload["result"] != "{\n  \"x\": 1\n}" {
		t.Fatalf("unexpected result: %q", payload["result"])
	}

	status, payload = ts.request(t, http.MethodPost, "/api/convert/markdown/extract", token, map[string]any{
		"content": "no fences here",
	})
	if status != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d", status)
	}
	if payload["error"] != "no JSON code blocks found" {
		t.Fatalf("unexpected error: %v", payload["error"])
	}
}

func TestOversizedInputRejected(t *testing.T) {
	ts := newTestServer(t, nil)
	token := ts.signUp(t, "avery@example.com")
	ts.service.cfg.MaxInputBytes = 256

	status, payload := ts.request(t, http.MethodPost, "/api/convert/minify", token, map[string]any{
		"content": strings.Repeat("x", 1024),
	})
	if status != http.StatusRequestEntityTooLarge {
		t.Fatalf("status = %d, payload = %v", status, payload)
	}
	if payload["code"] != "INPUT_TOO_LARGE" {
		t.Fatalf("expected INPUT_TOO_LARGE, got %v", payload["code"])
	}
}

func TestRepairEndpointUnavailable(t *testing.T) {
	ts := newTestServer(t, nil)
	token := ts.signUp(t, "avery@example.com")

	status, payload := ts.request(t, http.MethodPost, "/api/repair", token, map[string]any{
		"content": "{",
	})
	if status != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, payload = %v", status, payload)
	}
	if payload["code"] != "REPAIR_UNAVAILABLE" {
		t.Fatalf("expected REPAIR_UNAVAILABLE, got %v", payload["code"])
	}
}
