package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestContextFieldsPropagate(t *testing.T) {
	var buf bytes.Buffer
	logg := New(Options{ServiceName: "test", Output: &buf, Level: zerolog.InfoLevel})

	ctx := logg.WithRequestID(context.Background(), "req-123")
	ctx = logg.WithCollection(ctx, "requests")
	logg.Info(ctx, "hello")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("log output is not JSON: %v", err)
	}
	if entry["request_id"] != "req-123" {
		t.Fatalf("request_id missing: %v", entry)
	}
	if entry["collection"] != "requests" {
		t.Fatalf("collection missing: %v", entry)
	}
	if entry["service"] != "test" {
		t.Fatalf("service missing: %v", entry)
	}
}

func TestWarnStackToggle(t *testing.T) {
	var buf bytes.Buffer
	logg := New(Options{ServiceName: "test", Output: &buf, WarnStack: true})
	logg.Warn(context.Background(), "careful")
	if !strings.Contains(buf.String(), "stack") {
		t.Fatal("warn with WarnStack should include a stack field")
	}

	buf.Reset()
	logg = New(Options{ServiceName: "test", Output: &buf})
	logg.Warn(context.Background(), "careful")
	if strings.Contains(buf.String(), "goroutine") {
		t.Fatal("warn without WarnStack should not include a stack trace")
	}
}

func TestParseLevel(t *testing.T) {
	if ParseLevel("debug") != zerolog.DebugLevel {
		t.Fatal("debug level not parsed")
	}
	if ParseLevel("nope") != zerolog.InfoLevel {
		t.Fatal("unknown level should fall back to info")
	}
}
