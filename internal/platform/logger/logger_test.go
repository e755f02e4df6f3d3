package logger

import (
	"strings"
	"testing"
)

func TestSanitizeKVsRedactsCredentials(t *testing.T) {
	out := sanitizeKVs([]interface{}{
		"gemini_api_key", "AIza-secret",
		"model", "gemini-2.5-flash",
		"client_ip", "10.0.0.7",
		"dangling",
	})
	if len(out) != 7 {
		t.Fatalf("unexpected length: %d", len(out))
	}
	if out[1] != "[REDACTED]" {
		t.Fatalf("api key not redacted: %v", out[1])
	}
	if out[3] != "gemini-2.5-flash" {
		t.Fatalf("model changed: %v", out[3])
	}
	ip, _ := out[5].(string)
	if !strings.HasPrefix(ip, "hash:") || len(ip) != len("hash:")+12 {
		t.Fatalf("client_ip not hashed: %q", ip)
	}
	if out[6] != "dangling" {
		t.Fatalf("dangling key dropped: %v", out[6])
	}
}

func TestSanitizeValueNestedMap(t *testing.T) {
	got := sanitizeValue("headers", map[string]interface{}{
		"Authorization": "Bearer abc",
		"Accept":        "application/json",
	})
	m, ok := got.(map[string]interface{})
	if !ok {
		t.Fatalf("expected map, got %T", got)
	}
	if m["Authorization"] != "[REDACTED]" {
		t.Fatalf("authorization not redacted: %v", m["Authorization"])
	}
	if m["Accept"] != "application/json" {
		t.Fatalf("accept changed: %v", m["Accept"])
	}
}

func TestNopLoggerAcceptsCalls(t *testing.T) {
	log := Nop()
	log.With("component", "test").Info("hello", "k", "v")
	log.Sync()
}

func TestSanitizeKVsKeepsTokenCounts(t *testing.T) {
	out := sanitizeKVs([]interface{}{
		"input_tok_count", 11,
		"output_tok_count", 7,
		"refresh_token", "abc",
	})
	if out[1] != 11 || out[3] != 7 {
		t.Fatalf("token counts redacted: %v", out)
	}
	if out[5] != "[REDACTED]" {
		t.Fatalf("token value not redacted: %v", out[5])
	}
}
