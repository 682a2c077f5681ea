package backup

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestStore_NewCreatesDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "backups")

	s := New(dir)
	if s.Dir() != dir {
		t.Errorf("expected dir %s, got %s", dir, s.Dir())
	}

	info, err := os.Stat(dir)
	if err != nil {
		t.Fatalf("expected backup dir to exist: %v", err)
	}
	if !info.IsDir() {
		t.Fatalf("expected %s to be a directory", dir)
	}
}

func TestStore_OpenDoesNotCreateDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "missing")

	s := Open(dir)
	if s.Dir() != dir {
		t.Errorf("expected dir %s, got %s", dir, s.Dir())
	}
	records, err := s.List()
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(records) != 0 {
		t.Errorf("expected no records, got %d", len(records))
	}
	if _, err := os.Stat(dir); !os.IsNotExist(err) {
		t.Error("expected Open to leave the directory uncreated")
	}

	if got := Open("").Dir(); got != DefaultDir {
		t.Errorf("expected default dir %s, got %s", DefaultDir, got)
	}
}

func TestStore_PersistWritesTimestampedFile(t *testing.T) {
	dir := t.TempDir()
	s := New(dir)
	s.now = fixedClock(time.Date(2026, 3, 1, 14, 5, 9, 123_000_000, time.UTC))

	s.Persist("Initial")

	path := filepath.Join(dir, "state_20260301_140509_123.txt")
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("expected snapshot at %s: %v", path, err)
	}
	if string(data) != "Initial" {
		t.Errorf("expected content 'Initial', got '%s'", data)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("failed to stat snapshot: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0600 {
		t.Errorf("expected file permissions 0600, got %04o", perm)
	}
}

func TestStore_PersistUsesUTC(t *testing.T) {
	dir := t.TempDir()
	s := New(dir)
	loc := time.FixedZone("UTC+2", 2*60*60)
	s.now = fixedClock(time.Date(2026, 3, 1, 1, 0, 0, 0, loc))

	s.Persist("x")

	if _, err := os.Stat(filepath.Join(dir, "state_20260228_230000_000.txt")); err != nil {
		t.Errorf("expected UTC-named snapshot: %v", err)
	}
}

func TestStore_CollisionGetsSuffix(t *testing.T) {
	dir := t.TempDir()
	s := New(dir)
	s.now = fixedClock(time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC))

	s.Persist("first")
	s.Persist("second")

	records, err := s.List()
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 snapshots, got %d", len(records))
	}

	contents := map[string]bool{}
	for _, r := range records {
		data, err := os.ReadFile(r.Path)
		if err != nil {
			t.Fatalf("failed to read %s: %v", r.Path, err)
		}
		contents[string(data)] = true
	}
	if !contents["first"] || !contents["second"] {
		t.Errorf("expected both snapshots to survive, got %v", contents)
	}

	first, err := os.ReadFile(filepath.Join(dir, "state_20260301_000000_000.txt"))
	if err != nil || string(first) != "first" {
		t.Errorf("expected unsuffixed file to keep the first write, got %q (%v)", first, err)
	}
}

func TestStore_PersistEmptyContent(t *testing.T) {
	dir := t.TempDir()
	s := New(dir)

	s.Persist("")

	records, err := s.List()
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 snapshot, got %d", len(records))
	}
	if records[0].Size != 0 {
		t.Errorf("expected empty snapshot, got %d bytes", records[0].Size)
	}
}

func TestStore_PersistSwallowsErrors(t *testing.T) {
	// A regular file where the directory should be makes every write fail.
	blocker := filepath.Join(t.TempDir(), "not-a-dir")
	if err := os.WriteFile(blocker, []byte("x"), 0600); err != nil {
		t.Fatalf("failed to seed blocker file: %v", err)
	}

	s := New(blocker)
	s.Persist("lost")

	if _, err := s.write("lost"); err == nil {
		t.Error("expected underlying write to fail")
	}
}

func TestStore_ListOrderAndFiltering(t *testing.T) {
	dir := t.TempDir()
	s := New(dir)

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	for i, content := range []string{"c", "a", "b"} {
		// Written out of order on purpose.
		offset := []int{2, 0, 1}[i]
		s.now = fixedClock(base.Add(time.Duration(offset) * time.Millisecond))
		s.Persist(content)
	}

	for _, junk := range []string{"audit.jsonl", "state_garbage.txt", "notes.txt"} {
		if err := os.WriteFile(filepath.Join(dir, junk), []byte("x"), 0600); err != nil {
			t.Fatalf("failed to write %s: %v", junk, err)
		}
	}

	records, err := s.List()
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("expected 3 snapshots, got %d", len(records))
	}

	var order []string
	for _, r := range records {
		data, _ := os.ReadFile(r.Path)
		order = append(order, string(data))
	}
	if got := strings.Join(order, ""); got != "abc" {
		t.Errorf("expected oldest-first order 'abc', got '%s'", got)
	}
}

func TestStore_ListMissingDir(t *testing.T) {
	s := &Store{dir: filepath.Join(t.TempDir(), "missing"), now: time.Now}

	records, err := s.List()
	if err != nil {
		t.Fatalf("expected no error for missing dir, got %v", err)
	}
	if len(records) != 0 {
		t.Errorf("expected no records, got %d", len(records))
	}
}

func TestParseStamp(t *testing.T) {
	tests := []struct {
		name string
		want time.Time
		ok   bool
	}{
		{"state_20260301_140509_123.txt", time.Date(2026, 3, 1, 14, 5, 9, 123_000_000, time.UTC), true},
		{"state_20260301_140509_123_a1b2c3d4.txt", time.Date(2026, 3, 1, 14, 5, 9, 123_000_000, time.UTC), true},
		{"state_short.txt", time.Time{}, false},
		{"state_20260301-140509-123.txt", time.Time{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := parseStamp(tt.name)
			if ok != tt.ok {
				t.Fatalf("expected ok=%v, got %v", tt.ok, ok)
			}
			if ok && !got.Equal(tt.want) {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}
