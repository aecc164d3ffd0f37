package main

import (
	"fmt"
	"strings"
	"time"

	"rpncalc/rpn"
	"rpncalc/store"
)

type appConfig struct {
	stateDir     string
	sessionID    string
	statePath    string
	commandsPath string
	debounce     time.Duration
	fresh        bool
	persist      bool
	applicationV string
}

// session is the single writer of calculator state. Every front-end (TUI,
// serve loop, script reader, command bus) goes through press.
type session struct {
	cfg    appConfig
	id     string
	engine *rpn.Engine
	saver  *store.Saver
	events *eventLogger

	alerts         []systemAlert
	recentKeys     []string
	keysPressed    int
	placeholderHit int
}

func newSession(cfg appConfig) *session {
	st := rpn.DefaultState()
	if cfg.persist && !cfg.fresh && cfg.statePath != "" {
		st = store.Load(cfg.statePath)
	}
	s := &session{
		cfg:        cfg,
		id:         cfg.sessionID,
		engine:     rpn.Restore(st),
		events:     newEventLogger(cfg.stateDir, cfg.sessionID),
		alerts:     []systemAlert{},
		recentKeys: []string{},
	}
	if cfg.persist && cfg.statePath != "" {
		s.saver = store.NewSaver(cfg.statePath, cfg.debounce)
		s.saver.OnError = func(err error) {
			s.events.Append(calcEvent{
				Source:  "store",
				Type:    "state.save_failed",
				Payload: map[string]any{"path": cfg.statePath, "error": err.Error()},
			})
		}
	}
	s.emitEvent("calc.started", "system", map[string]any{"display": s.engine.Display(), "statePath": cfg.statePath})
	return s
}

func (s *session) state() rpn.State {
	return s.engine.State()
}

func (s *session) display() string {
	return s.engine.Display()
}

// press dispatches one logical key symbol and schedules a save.
func (s *session) press(symbol string, source string) rpn.Outcome {
	k := rpn.ParseKey(symbol)
	shift := s.engine.State().Shift
	out := s.engine.Dispatch(k)

	s.keysPressed++
	s.recentKeys = append(s.recentKeys, symbol)
	if len(s.recentKeys) > 20 {
		s.recentKeys = s.recentKeys[len(s.recentKeys)-20:]
	}
	cid := newCorrelationID()
	pressID := s.events.Append(calcEvent{
		Source: source,
		Type:   "key.press",
		Payload: keyPressPayload{
			Key:      symbol,
			Shift:    shift.String(),
			Outcome:  out.String(),
			Display:  s.engine.Display(),
			Entering: s.engine.State().Entry.Active,
		},
		CorrelationID: cid,
	})
	if out == rpn.Placeholder {
		s.placeholderHit++
		s.raiseAlert(alertInfo, "key.placeholder", placeholderMessage(k, shift), map[string]any{"key": symbol, "shift": shift.String()}, cid, pressID)
	}
	s.saver.Schedule(s.engine.State())
	return out
}

func (s *session) push(v float64, source string) {
	s.engine.Push(v)
	s.emitEvent("stack.push", source, map[string]any{"display": s.engine.Display()})
	s.saver.Schedule(s.engine.State())
}

func (s *session) setMode(name string, source string) bool {
	m := s.engine.State().Modes
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "begin", "beg":
		m.Begin = true
	case "end":
		m.Begin = false
	case "12x":
		m.Is12x = true
	case "1x":
		m.Is12x = false
	case "30/360":
		m.DayCount = rpn.DayCount30360
	case "act/act", "act":
		m.DayCount = rpn.DayCountActual
	default:
		s.systemAlert(alertWarn, "mode.unknown", "Unknown mode", map[string]any{"mode": name})
		return false
	}
	s.engine.SetModes(m)
	s.emitEvent("mode.set", source, map[string]any{"mode": name})
	s.saver.Schedule(s.engine.State())
	return true
}

func (s *session) close() {
	// Failures were already logged through OnError; in-memory state stays authoritative.
	_ = s.saver.Close()
	s.emitEvent("calc.stopped", "system", map[string]any{"display": s.engine.Display(), "keys": s.keysPressed})
}

func (s *session) emitEvent(eventType string, source string, payload any) {
	s.events.Append(calcEvent{Source: source, Type: eventType, Payload: payload})
}

func (s *session) systemAlert(sev alertSeverity, code string, message string, context map[string]any) {
	s.raiseAlert(sev, code, message, context, newCorrelationID(), "")
}

// raiseAlert records an alert and logs it as caused by causationID, if set.
func (s *session) raiseAlert(sev alertSeverity, code string, message string, context map[string]any, correlationID string, causationID string) {
	a := systemAlert{
		At:            time.Now().UTC().Format(time.RFC3339Nano),
		Severity:      sev,
		Code:          code,
		Message:       message,
		Context:       context,
		CorrelationID: correlationID,
		CausationID:   causationID,
	}
	s.alerts = append(s.alerts, a)
	if len(s.alerts) > 50 {
		s.alerts = s.alerts[len(s.alerts)-50:]
	}
	s.events.Append(calcEvent{
		Source:        "system",
		Type:          "system.alert",
		Payload:       alertPayload{Severity: sev, Code: code, Message: message, Context: context},
		CorrelationID: correlationID,
		CausationID:   causationID,
	})
}

func (s *session) lastAlert() (systemAlert, bool) {
	if len(s.alerts) == 0 {
		return systemAlert{}, false
	}
	return s.alerts[len(s.alerts)-1], true
}

func placeholderMessage(k rpn.Key, shift rpn.Shift) string {
	name := strings.ToUpper(k.String())
	if k == rpn.KeyUnknown {
		name = "key"
	}
	if shift != rpn.ShiftNone {
		name = fmt.Sprintf("%s %s", shift, name)
	}
	return name + " is coming soon"
}
