package logx

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/rs/zerolog/log"
)

// Init mutates globals; these tests are not parallel.

func TestInitWriterJSON(t *testing.T) {
	var buf bytes.Buffer
	InitWriter(&buf, Config{Service: "test-svc"})

	log.Info().Str("intent", "view_analytics").Msg("classified")
	log.Debug().Msg("hidden")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("got %d lines, want 1 (debug filtered): %q", len(lines), buf.String())
	}
	var entry map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &entry); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if entry["service"] != "test-svc" || entry["intent"] != "view_analytics" || entry["message"] != "classified" {
		t.Fatalf("entry = %v", entry)
	}
}

func TestInitWriterContextFallback(t *testing.T) {
	var buf bytes.Buffer
	InitWriter(&buf, Config{Debug: true})

	log.Ctx(context.Background()).Debug().Msg("from context")
	if !strings.Contains(buf.String(), "from context") {
		t.Fatalf("context logger dropped event: %q", buf.String())
	}
}
