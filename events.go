package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
)

// eventLogger appends calculator events to <stateDir>/sessions/<id>/events.jsonl.
// A nil logger drops everything.
type eventLogger struct {
	path    string
	session string
	mu      sync.Mutex
	seq     uint64
}

// calcEvent is what callers hand to Append. CausationID names the event that
// led to this one, e.g. the key.press behind a placeholder alert.
type calcEvent struct {
	Source        string
	Type          string
	Payload       any
	CorrelationID string
	CausationID   string
}

type eventRecord struct {
	ID            string `json:"id"`
	Timestamp     string `json:"timestamp"`
	Seq           uint64 `json:"seq"`
	Session       string `json:"session"`
	Source        string `json:"source"`
	Type          string `json:"type"`
	Payload       any    `json:"payload"`
	CorrelationID string `json:"correlation_id,omitempty"`
	CausationID   string `json:"causation_id,omitempty"`
}

type keyPressPayload struct {
	Key      string `json:"key"`
	Shift    string `json:"shift,omitempty"`
	Outcome  string `json:"outcome"`
	Display  string `json:"display"`
	Entering bool   `json:"entering"`
}

type alertPayload struct {
	Severity alertSeverity  `json:"severity"`
	Code     string         `json:"code"`
	Message  string         `json:"message"`
	Context  map[string]any `json:"context,omitempty"`
}

func newEventLogger(stateDir string, sessionID string) *eventLogger {
	if stateDir == "" {
		return nil
	}
	if sessionID == "" {
		sessionID = "sess_unknown"
	}
	dir := filepath.Join(stateDir, "sessions", sessionID)
	_ = os.MkdirAll(dir, 0o755)
	return &eventLogger{path: filepath.Join(dir, "events.jsonl"), session: sessionID}
}

// Append writes ev and returns the id it was logged under, or "" when the
// event was dropped.
func (l *eventLogger) Append(ev calcEvent) string {
	if l == nil {
		return ""
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	l.seq++
	rec := eventRecord{
		ID:            "evt_" + uuid.NewString(),
		Timestamp:     time.Now().UTC().Format(time.RFC3339Nano),
		Seq:           l.seq,
		Session:       l.session,
		Source:        ev.Source,
		Type:          ev.Type,
		Payload:       ev.Payload,
		CorrelationID: ev.CorrelationID,
		CausationID:   ev.CausationID,
	}
	b, err := json.Marshal(rec)
	if err != nil {
		return ""
	}
	f, err := os.OpenFile(l.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return ""
	}
	defer f.Close()
	if _, err := f.Write(append(b, '\n')); err != nil {
		return ""
	}
	return rec.ID
}

type alertSeverity string

const (
	alertInfo  alertSeverity = "INFO"
	alertWarn  alertSeverity = "WARN"
	alertError alertSeverity = "ERROR"
)

type systemAlert struct {
	At            string         `json:"at"`
	Severity      alertSeverity  `json:"severity"`
	Code          string         `json:"code"`
	Message       string         `json:"message"`
	Context       map[string]any `json:"context,omitempty"`
	CorrelationID string         `json:"correlation_id"`
	CausationID   string         `json:"causation_id,omitempty"`
}

func newCorrelationID() string {
	return uuid.NewString()
}

func newSessionID() string {
	id := uuid.New()
	return "sess_" + id.String()[:8]
}
