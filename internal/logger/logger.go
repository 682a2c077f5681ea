package logger

import (
	"encoding/json"
	"os"
	"sync"

	"github.com/gzhole/dlprotocol/internal/redact"
)

const defaultMaxLogBytes int64 = 5 << 20

const (
	DecisionAccept = "ACCEPT"
	DecisionBlock  = "BLOCK"
)

// AuditEvent records one attempted state transition.
type AuditEvent struct {
	Timestamp string   `json:"timestamp"`
	Previous  string   `json:"previous"`
	Proposed  string   `json:"proposed"`
	Decision  string   `json:"decision"`
	Signals   []string `json:"signals,omitempty"`
	State     string   `json:"state"`
}

type AuditLogger struct {
	path     string
	file     *os.File
	maxBytes int64
	mu       sync.Mutex
}

func New(path string) (*AuditLogger, error) {
	l := &AuditLogger{path: path, maxBytes: defaultMaxLogBytes}
	if err := l.rotateIfNeeded(); err != nil {
		return nil, err
	}

	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
	if err != nil {
		return nil, err
	}
	l.file = file
	return l, nil
}

// Record satisfies the protocol engine's recorder contract.
func (l *AuditLogger) Record(event AuditEvent) error {
	return l.Log(event)
}

func (l *AuditLogger) Log(event AuditEvent) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.file == nil {
		return os.ErrClosed
	}

	// Strip payloads before they reach disk
	event.Previous = redact.Payload(event.Previous)
	event.Proposed = redact.Payload(event.Proposed)
	event.State = redact.Payload(event.State)

	data, err := json.Marshal(event)
	if err != nil {
		return err
	}

	data = append(data, '\n')
	_, err = l.file.Write(data)
	return err
}

func (l *AuditLogger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.file != nil {
		err := l.file.Close()
		l.file = nil
		return err
	}
	return nil
}

// rotateIfNeeded moves an oversized log to <path>.1 before it is opened.
func (l *AuditLogger) rotateIfNeeded() error {
	info, err := os.Stat(l.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	if info.Size() < l.maxBytes {
		return nil
	}
	return os.Rename(l.path, l.path+".1")
}
