package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"

	"rpncalc/rpn"
	"rpncalc/store"
)

func main() {
	var smoke bool
	var serve bool
	var fresh bool
	var stateDir string
	var sessionOverride string
	var debounce time.Duration
	flag.BoolVar(&smoke, "smoke", false, "run deterministic non-interactive smoke simulation")
	flag.BoolVar(&serve, "serve", false, "run headless command-bus driven session")
	flag.BoolVar(&fresh, "fresh", false, "ignore saved calculator state on start")
	flag.StringVar(&stateDir, "state-dir", "", "directory for state, events and the command bus")
	flag.StringVar(&sessionOverride, "session-id", "", "override session id (for dev sessions)")
	flag.DurationVar(&debounce, "debounce", 0, "delay before persisting state after a key press")
	flag.Parse()

	if strings.TrimSpace(stateDir) == "" {
		stateDir = os.Getenv("CALC_STATE_DIR")
	}
	if strings.TrimSpace(stateDir) == "" {
		stateDir = ".rpncalc"
	}
	if debounce <= 0 {
		debounce = envMillis("CALC_SAVE_DEBOUNCE_MS", store.DefaultDebounce)
	}
	fresh = fresh || envBool("CALC_FRESH")

	sessionID := strings.TrimSpace(sessionOverride)
	if sessionID == "" {
		sessionID = newSessionID()
	}

	cfg := appConfig{
		stateDir:     stateDir,
		sessionID:    sessionID,
		statePath:    filepath.Join(stateDir, "state.json"),
		commandsPath: filepath.Join(stateDir, "commands.jsonl"),
		debounce:     debounce,
		fresh:        fresh,
		persist:      true,
		applicationV: "v1.0.0",
	}

	if smoke {
		outDir := os.Getenv("CALC_SMOKE_OUT_DIR")
		if strings.TrimSpace(outDir) == "" {
			outDir = filepath.Join(stateDir, "verify", "tui", fmt.Sprintf("run_%d", time.Now().UnixMilli()))
		}
		_ = os.MkdirAll(outDir, 0o755)
		// Smoke runs never touch the user's saved state or live command bus.
		cfg.fresh = true
		cfg.statePath = filepath.Join(outDir, "state.json")
		cfg.commandsPath = ""
		sess := newSession(cfg)
		report := runSmoke(newAppModel(cfg, sess, nil))
		sess.close()
		_ = os.WriteFile(filepath.Join(outDir, "view.txt"), []byte(report.view+"\n"), 0o644)
		_ = os.WriteFile(filepath.Join(outDir, "summary.json"), []byte(report.json+"\n"), 0o644)
		writeSessionSummary(sess)
		fmt.Println("calc-smoke-ok")
		return
	}

	sess := newSession(cfg)
	var err error
	switch {
	case serve:
		err = runServe(cfg, sess, os.Stdout)
	case !isatty.IsTerminal(os.Stdin.Fd()) && !isatty.IsCygwinTerminal(os.Stdin.Fd()):
		err = runScript(sess, os.Stdin, os.Stdout)
	default:
		err = runTUI(cfg, sess)
	}
	sess.close()
	writeSessionSummary(sess)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runTUI(cfg appConfig, sess *session) error {
	bus, err := newBusWatcher(cfg.commandsPath)
	if err != nil {
		sess.systemAlert(alertWarn, "bus.watch_failed", "File watching unavailable, polling the command bus", map[string]any{"error": err.Error()})
		bus = nil
	}
	defer bus.Close()

	p := tea.NewProgram(newAppModel(cfg, sess, bus), tea.WithAltScreen())
	_, err = p.Run()
	return err
}

func envBool(name string) bool {
	v := strings.TrimSpace(os.Getenv(name))
	return v == "1" || strings.EqualFold(v, "true") || strings.EqualFold(v, "yes") || strings.EqualFold(v, "on")
}

func envMillis(name string, def time.Duration) time.Duration {
	v := strings.TrimSpace(os.Getenv(name))
	if v == "" {
		return def
	}
	ms, err := strconv.Atoi(v)
	if err != nil || ms <= 0 {
		return def
	}
	return time.Duration(ms) * time.Millisecond
}

type smokeReport struct {
	view  string
	json  string
	final appModel
}

func runSmoke(m appModel) smokeReport {
	var model tea.Model = m
	model, _ = model.Update(tea.WindowSizeMsg{Width: 80, Height: 30})

	runes := func(s string) {
		for _, r := range s {
			model, _ = model.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
		}
	}
	display := func() string {
		am, _ := model.(appModel)
		return am.sess.display()
	}

	// 12 ENTER 30 + -> 42.00
	runes("12")
	model, _ = model.Update(tea.KeyMsg{Type: tea.KeyEnter})
	runes("30+")
	sumOK := display() == "42.00"

	// 1 ENTER 0 / -> Error
	runes("1")
	model, _ = model.Update(tea.KeyMsg{Type: tea.KeyEnter})
	runes("0/")
	divErr := display() == "Error"
	model, _ = model.Update(tea.KeyMsg{Type: tea.KeyBackspace})

	// Σ+ for 2, 4, 6 then f + for the mean.
	for _, v := range []string{"2", "4", "6"} {
		runes(v + "f-")
	}
	runes("f+")
	meanOK := display() == "4.00"

	statsOpened := false
	runes("#")
	if am, ok := model.(appModel); ok {
		statsOpened = am.currentOverlay() == overlayStats
	}
	model, _ = model.Update(tea.KeyMsg{Type: tea.KeyEscape})

	placeholderSeen := false
	runes("S")
	if am, ok := model.(appModel); ok {
		if a, ok := am.sess.lastAlert(); ok {
			placeholderSeen = a.Code == "key.placeholder"
		}
	}

	quitConfirmOpened := false
	model, _ = model.Update(tea.KeyMsg{Type: tea.KeyEscape})
	if am, ok := model.(appModel); ok {
		quitConfirmOpened = am.currentOverlay() == overlayQuitConfirm
	}
	model, _ = model.Update(tea.KeyMsg{Type: tea.KeyEscape})

	am, _ := model.(appModel)
	st := am.sess.state()
	summary := map[string]any{
		"version":           1,
		"ok":                sumOK && divErr && meanOK && statsOpened && placeholderSeen && quitConfirmOpened,
		"sessionId":         am.sess.id,
		"overlay":           am.currentOverlay().String(),
		"display":           am.sess.display(),
		"sumOK":             sumOK,
		"divideByZeroError": divErr,
		"meanOK":            meanOK,
		"statsOpened":       statsOpened,
		"placeholderSeen":   placeholderSeen,
		"quitConfirmOpened": quitConfirmOpened,
		"statsN":            st.Stats.N,
		"shift":             st.Shift.String(),
		"lastX":             rpn.FormatNumber(st.LastX),
	}
	b, _ := json.Marshal(summary)

	return smokeReport{view: am.View(), json: string(b), final: am}
}
