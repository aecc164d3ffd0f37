package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"rpncalc/rpn"
)

func writeSessionSummary(sess *session) {
	if sess == nil || sess.cfg.stateDir == "" || sess.id == "" {
		return
	}
	dir := filepath.Join(sess.cfg.stateDir, "sessions", sess.id)
	_ = os.MkdirAll(dir, 0o755)
	_ = os.WriteFile(filepath.Join(dir, "summary.json"), append(sessionSummaryJSON(sess), '\n'), 0o644)
}

func sessionSummaryJSON(sess *session) []byte {
	alerts := sess.alerts
	if len(alerts) > 10 {
		alerts = alerts[len(alerts)-10:]
	}
	st := sess.state()

	out := map[string]any{
		"version":      1,
		"updatedAt":    time.Now().UTC().Format(time.RFC3339Nano),
		"sessionId":    sess.id,
		"display":      sess.display(),
		"stack":        []string{rpn.FormatNumber(st.Stack.X), rpn.FormatNumber(st.Stack.Y), rpn.FormatNumber(st.Stack.Z), rpn.FormatNumber(st.Stack.T)},
		"shift":        st.Shift.String(),
		"statsN":       st.Stats.N,
		"keysPressed":  sess.keysPressed,
		"placeholders": sess.placeholderHit,
		"recentKeys":   sess.recentKeys,
		"recentAlerts": alerts,
		"statePath":    sess.cfg.statePath,
		"eventsPath":   filepath.Join(sess.cfg.stateDir, "sessions", sess.id, "events.jsonl"),
	}

	b, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return []byte("{}")
	}
	return b
}
