package logger

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestAuditLogger_Log(t *testing.T) {
	tmpDir := t.TempDir()
	logPath := filepath.Join(tmpDir, "test_audit.jsonl")

	logger, err := New(logPath)
	if err != nil {
		t.Fatalf("failed to create logger: %v", err)
	}
	defer func() {
		_ = logger.Close()
	}()

	event := AuditEvent{
		Timestamp: "2026-02-02T12:00:00Z",
		Previous:  "Initial",
		Proposed:  "Test State",
		Decision:  DecisionAccept,
		State:     "Test State",
	}

	if err := logger.Log(event); err != nil {
		t.Fatalf("failed to log event: %v", err)
	}

	_ = logger.Close()

	data, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("failed to read log file: %v", err)
	}

	var parsed AuditEvent
	if err := json.Unmarshal(data, &parsed); err != nil {
		t.Fatalf("failed to parse log line as JSON: %v", err)
	}

	if parsed.Proposed != "Test State" {
		t.Errorf("expected proposed 'Test State', got '%s'", parsed.Proposed)
	}

	if parsed.Decision != DecisionAccept {
		t.Errorf("expected decision 'ACCEPT', got '%s'", parsed.Decision)
	}
}

func TestAuditLogger_RedactsPayloads(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "audit.jsonl")

	lg, err := New(logPath)
	if err != nil {
		t.Fatalf("failed to create logger: %v", err)
	}

	event := AuditEvent{
		Timestamp: "2026-02-02T12:00:00Z",
		Previous:  "Initial",
		Proposed:  "data:image/png;base64,iVBORw0KGgoAAAANSUhEUgAAAAEAAAAB",
		Decision:  DecisionBlock,
		Signals:   []string{"data_uri_image", "base64_marker"},
		State:     "[DLP-BLOCKED]",
	}
	if err := lg.Record(event); err != nil {
		t.Fatalf("Record failed: %v", err)
	}
	_ = lg.Close()

	data, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("failed to read log file: %v", err)
	}
	if strings.Contains(string(data), "iVBORw0KGgo") {
		t.Errorf("expected payload to be redacted, got %s", data)
	}
	if !strings.Contains(string(data), "[REDACTED]") {
		t.Errorf("expected [REDACTED] placeholder, got %s", data)
	}
}

func TestAuditLogger_AppendsLines(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "audit.jsonl")

	for i := 0; i < 2; i++ {
		lg, err := New(logPath)
		if err != nil {
			t.Fatalf("failed to create logger: %v", err)
		}
		for _, d := range []string{DecisionAccept, DecisionBlock} {
			if err := lg.Log(AuditEvent{Decision: d}); err != nil {
				t.Fatalf("Log failed: %v", err)
			}
		}
		_ = lg.Close()
	}

	f, err := os.Open(logPath)
	if err != nil {
		t.Fatalf("failed to open log: %v", err)
	}
	defer f.Close()

	lines := 0
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		var e AuditEvent
		if err := json.Unmarshal(scanner.Bytes(), &e); err != nil {
			t.Fatalf("line %d is not JSON: %v", lines+1, err)
		}
		lines++
	}
	if lines != 4 {
		t.Errorf("expected 4 lines, got %d", lines)
	}
}

func TestAuditLogger_Rotation(t *testing.T) {
	tmpDir := t.TempDir()
	logPath := filepath.Join(tmpDir, "audit.jsonl")

	// Pre-create the log file already at the rotation limit.
	big := make([]byte, defaultMaxLogBytes)
	if err := os.WriteFile(logPath, big, 0600); err != nil {
		t.Fatalf("failed to seed large log file: %v", err)
	}

	lg, err := New(logPath)
	if err != nil {
		t.Fatalf("failed to create logger: %v", err)
	}
	defer func() { _ = lg.Close() }()

	event := AuditEvent{
		Timestamp: "2026-03-01T00:00:00Z",
		Proposed:  "Depth 5 processed",
		Decision:  DecisionAccept,
	}
	if err := lg.Log(event); err != nil {
		t.Fatalf("Log after rotation failed: %v", err)
	}

	// .1 backup must exist
	if _, err := os.Stat(logPath + ".1"); err != nil {
		t.Errorf("expected rotated file %s.1 to exist: %v", logPath, err)
	}

	// Fresh log must be small (just the one new line)
	info, err := os.Stat(logPath)
	if err != nil {
		t.Fatalf("fresh log file missing: %v", err)
	}
	if info.Size() >= defaultMaxLogBytes {
		t.Errorf("fresh log file is still %d bytes; expected < %d", info.Size(), defaultMaxLogBytes)
	}
}

func TestAuditLogger_FilePermissions(t *testing.T) {
	tmpDir := t.TempDir()
	logPath := filepath.Join(tmpDir, "secure_audit.jsonl")

	logger, err := New(logPath)
	if err != nil {
		t.Fatalf("failed to create logger: %v", err)
	}
	_ = logger.Close()

	info, err := os.Stat(logPath)
	if err != nil {
		t.Fatalf("failed to stat log file: %v", err)
	}

	perm := info.Mode().Perm()
	if perm != 0600 {
		t.Errorf("expected file permissions 0600, got %04o", perm)
	}
}

func TestAuditLogger_CloseTwice(t *testing.T) {
	lg, err := New(filepath.Join(t.TempDir(), "audit.jsonl"))
	if err != nil {
		t.Fatalf("failed to create logger: %v", err)
	}
	if err := lg.Close(); err != nil {
		t.Fatalf("first Close failed: %v", err)
	}
	if err := lg.Close(); err != nil {
		t.Errorf("second Close should be a no-op, got %v", err)
	}
}
