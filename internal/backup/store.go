// Package backup keeps a best-effort audit trail of prior protocol states as
// flat timestamped text files. Nothing in the protocol reads them back.
package backup

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	DefaultDir = "./.dlp_backups"

	filePrefix = "state_"
	fileSuffix = ".txt"

	// timestampLayout renders as yyyyMMdd_HHmmss_fff.
	timestampLayout = "20060102_150405.000"
)

// Record describes one snapshot found on disk.
type Record struct {
	Name      string
	Path      string
	Timestamp time.Time
	Size      int64
}

// Store writes snapshots under a single directory.
type Store struct {
	dir string
	now func() time.Time
}

// New returns a store rooted at dir and tries to create it. A directory that
// cannot be created is not an error; later writes simply fail silently.
func New(dir string) *Store {
	s := Open(dir)
	_ = os.MkdirAll(s.dir, 0700)
	return s
}

// Open returns a store rooted at dir without touching the filesystem.
func Open(dir string) *Store {
	if dir == "" {
		dir = DefaultDir
	}
	return &Store{dir: dir, now: time.Now}
}

// Dir returns the directory snapshots are written to.
func (s *Store) Dir() string {
	return s.dir
}

// Persist writes content to a new timestamped file. It never reports failure.
func (s *Store) Persist(content string) {
	_, _ = s.write(content)
}

// write creates the snapshot file exclusively. If the millisecond-resolution
// name is already taken it retries once with a random suffix.
func (s *Store) write(content string) (string, error) {
	stamp := formatStamp(s.now())

	path := filepath.Join(s.dir, filePrefix+stamp+fileSuffix)
	err := writeExclusive(path, content)
	if errors.Is(err, fs.ErrExist) {
		suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
		path = filepath.Join(s.dir, filePrefix+stamp+"_"+suffix+fileSuffix)
		err = writeExclusive(path, content)
	}
	if err != nil {
		return "", err
	}
	return path, nil
}

func writeExclusive(path, content string) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0600)
	if err != nil {
		return err
	}
	if _, err := f.WriteString(content); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// List returns the snapshots in the store, oldest first. A missing
// directory yields an empty list.
func (s *Store) List() ([]Record, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading backup dir: %w", err)
	}

	var records []Record
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasPrefix(name, filePrefix) || !strings.HasSuffix(name, fileSuffix) {
			continue
		}
		ts, ok := parseStamp(name)
		if !ok {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		records = append(records, Record{
			Name:      name,
			Path:      filepath.Join(s.dir, name),
			Timestamp: ts,
			Size:      info.Size(),
		})
	}

	sort.SliceStable(records, func(i, j int) bool {
		if records[i].Timestamp.Equal(records[j].Timestamp) {
			return records[i].Name < records[j].Name
		}
		return records[i].Timestamp.Before(records[j].Timestamp)
	})
	return records, nil
}

func formatStamp(t time.Time) string {
	// Go only emits fractional seconds after a '.', so swap it for '_'.
	return strings.Replace(t.UTC().Format(timestampLayout), ".", "_", 1)
}

// parseStamp extracts the timestamp from "state_yyyyMMdd_HHmmss_fff[_suffix].txt".
func parseStamp(name string) (time.Time, bool) {
	core := strings.TrimSuffix(strings.TrimPrefix(name, filePrefix), fileSuffix)
	// yyyyMMdd_HHmmss_fff is 19 bytes.
	if len(core) < 19 {
		return time.Time{}, false
	}
	stamp := core[:15] + "." + core[16:19]
	if core[15] != '_' {
		return time.Time{}, false
	}
	ts, err := time.Parse(timestampLayout, stamp)
	if err != nil {
		return time.Time{}, false
	}
	return ts, true
}
