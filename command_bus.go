package main

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"rpncalc/rpn"
)

type busCommand struct {
	Version int    `json:"version"`
	Type    string `json:"type"`
	Text    string `json:"text,omitempty"`
	Keys    string `json:"keys,omitempty"`
	Source  string `json:"source,omitempty"` // cli|tui|system
}

type busResult struct {
	stop      bool
	showStats bool
}

// initCommandBus makes sure the bus file exists and returns the offset to
// start reading from. Commands left over from an earlier run are skipped.
func initCommandBus(path string) int64 {
	if strings.TrimSpace(path) == "" {
		return 0
	}
	_ = os.MkdirAll(filepath.Dir(path), 0o755)
	st, err := os.Stat(path)
	if err != nil {
		_ = os.WriteFile(path, []byte{}, 0o644)
		return 0
	}
	return st.Size()
}

func readBusCommands(path string, offset int64) ([]busCommand, int64) {
	f, err := os.Open(path)
	if err != nil {
		return nil, offset
	}
	defer f.Close()

	st, err := f.Stat()
	if err == nil && offset > st.Size() {
		// Truncated: start over.
		offset = 0
	}

	if offset > 0 {
		if _, err := f.Seek(offset, 0); err != nil {
			return nil, offset
		}
	}

	var cmds []busCommand
	reader := bufio.NewReader(f)
	cur := offset
	for {
		line, err := reader.ReadString('\n')
		if err != nil {
			// A line without its newline is still being written.
			break
		}
		cur += int64(len(line))
		txt := strings.TrimSpace(line)
		if txt == "" {
			continue
		}
		var c busCommand
		if json.Unmarshal([]byte(txt), &c) == nil && c.Version == 1 && strings.TrimSpace(c.Type) != "" {
			cmds = append(cmds, c)
		}
	}
	return cmds, cur
}

func (s *session) applyBusCommand(c busCommand) busResult {
	src := strings.TrimSpace(c.Source)
	if src == "" {
		src = "cli"
	}

	switch strings.TrimSpace(strings.ToLower(c.Type)) {
	case "stop":
		s.systemAlert(alertInfo, "session.stop", "Stop requested", map[string]any{"source": src})
		return busResult{stop: true}
	case "key":
		var res busResult
		for _, k := range splitKeys(c.Keys) {
			if s.press(k, src) == rpn.ShowStats {
				res.showStats = true
			}
		}
		return res
	case "push":
		v, err := strconv.ParseFloat(strings.TrimSpace(c.Text), 64)
		if err != nil {
			s.systemAlert(alertWarn, "command.invalid", "push needs a number", map[string]any{"text": c.Text})
			return busResult{}
		}
		s.push(v, src)
		return busResult{}
	case "mode":
		s.setMode(c.Text, src)
		return busResult{}
	case "clear":
		s.press(rpn.KeyClear.String(), src)
		return busResult{}
	default:
		s.systemAlert(alertWarn, "command.unknown", "Unknown bus command type", map[string]any{"type": c.Type})
		return busResult{}
	}
}

func splitKeys(keys string) []string {
	raw := strings.FieldsFunc(keys, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\n' || r == '\t'
	})
	out := make([]string, 0, len(raw))
	for _, t := range raw {
		s := strings.TrimSpace(t)
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}
