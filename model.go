package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"rpncalc/rpn"
)

type overlay int

const (
	overlayNone overlay = iota
	overlayStats
	overlayHelp
	overlayQuitConfirm
)

func (o overlay) String() string {
	switch o {
	case overlayNone:
		return "none"
	case overlayStats:
		return "stats"
	case overlayHelp:
		return "help"
	case overlayQuitConfirm:
		return "quit_confirm"
	default:
		return "unknown"
	}
}

type appModel struct {
	cfg  appConfig
	th   theme
	keys keyMap
	help help.Model

	width  int
	height int

	sess     *session
	overlays []overlay

	bus       *busWatcher
	busOffset int64

	now time.Time
}

func newAppModel(cfg appConfig, sess *session, bus *busWatcher) appModel {
	m := appModel{
		cfg:       cfg,
		th:        defaultTheme(),
		keys:      defaultKeyMap(),
		help:      help.New(),
		sess:      sess,
		bus:       bus,
		busOffset: initCommandBus(cfg.commandsPath),
	}
	return m
}

func (m appModel) Init() tea.Cmd {
	if m.bus != nil {
		return m.bus.waitCmd()
	}
	if m.cfg.commandsPath != "" {
		return tickCmd()
	}
	return nil
}

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch t := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = t.Width
		m.height = t.Height
		m.help.Width = t.Width
		return m, nil
	case busChangedMsg:
		var stop bool
		m, stop = m.consumeCommandBus()
		if stop {
			return m, tea.Quit
		}
		return m, m.bus.waitCmd()
	case time.Time:
		// Polling fallback when no file watcher could be created.
		m.now = t
		var stop bool
		m, stop = m.consumeCommandBus()
		if stop {
			return m, tea.Quit
		}
		return m, tickCmd()
	case tea.KeyMsg:
		if key.Matches(t, m.keys.Quit) {
			return m, tea.Quit
		}
		if t.String() == "esc" {
			return m.handleEsc()
		}

		switch m.currentOverlay() {
		case overlayQuitConfirm:
			return m.updateQuitConfirm(t)
		case overlayStats, overlayHelp:
			// Any key dismisses an info panel.
			m = m.closeOverlay()
			return m, nil
		}
		return m.updateCalculator(t)
	default:
		return m, nil
	}
}

func tickCmd() tea.Cmd {
	return tea.Tick(100*time.Millisecond, func(t time.Time) tea.Msg { return t })
}

func (m appModel) consumeCommandBus() (appModel, bool) {
	if strings.TrimSpace(m.cfg.commandsPath) == "" {
		return m, false
	}
	cmds, next := readBusCommands(m.cfg.commandsPath, m.busOffset)
	m.busOffset = next
	for _, c := range cmds {
		res := m.sess.applyBusCommand(c)
		if res.stop {
			return m, true
		}
		if res.showStats {
			m = m.openOverlay(overlayStats)
		}
	}
	return m, false
}

func (m appModel) updateCalculator(k tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(k, m.keys.Help) {
		m = m.openOverlay(overlayHelp)
		return m, nil
	}
	for _, symbol := range m.keys.logicalKeys(k, m.sess.state().Shift) {
		if m.sess.press(symbol, "tui") == rpn.ShowStats {
			m = m.openOverlay(overlayStats)
		}
	}
	return m, nil
}

func (m appModel) updateQuitConfirm(k tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch k.String() {
	case "y", "Y", "enter":
		return m, tea.Quit
	case "n", "N":
		m = m.closeOverlay()
	}
	return m, nil
}

func (m appModel) handleEsc() (tea.Model, tea.Cmd) {
	if m.currentOverlay() != overlayNone {
		m = m.closeOverlay()
		return m, nil
	}
	m = m.openOverlay(overlayQuitConfirm)
	return m, nil
}

func (m appModel) currentOverlay() overlay {
	if len(m.overlays) == 0 {
		return overlayNone
	}
	return m.overlays[len(m.overlays)-1]
}

func (m appModel) openOverlay(o overlay) appModel {
	if m.currentOverlay() == o {
		return m
	}
	m.overlays = append(append([]overlay{}, m.overlays...), o)
	return m
}

func (m appModel) closeOverlay() appModel {
	if len(m.overlays) == 0 {
		return m
	}
	m.overlays = append([]overlay{}, m.overlays[:len(m.overlays)-1]...)
	return m
}

func (m appModel) View() string {
	w, h := m.effectiveSize()
	// If the terminal is extremely small, render a stable hint instead of a broken layout.
	if w < 30 || h < 12 {
		return m.viewTooSmall(w, h)
	}

	base := m.viewCalculator(w)
	switch m.currentOverlay() {
	case overlayStats:
		return renderOverlay(m.th, base, m.viewStats())
	case overlayHelp:
		return renderOverlay(m.th, base, m.viewHelp())
	case overlayQuitConfirm:
		return renderOverlay(m.th, base, m.viewQuitConfirm())
	}
	return base
}

func (m appModel) viewCalculator(w int) string {
	st := m.sess.state()
	inner := clamp(w-4, 24, 48)

	header := renderHeader(m.th, m.cfg.applicationV, m.sess.id)

	reg := func(label string, v float64) string {
		return m.th.Label.Render(label) + m.th.Register.Width(inner-3).Render(rpn.FormatNumber(v))
	}
	stack := lipgloss.JoinVertical(lipgloss.Left,
		reg("T", st.Stack.T),
		reg("Z", st.Stack.Z),
		reg("Y", st.Stack.Y),
	)

	display := m.th.Display.Width(inner).Render(m.sess.display())
	ann := strings.Join(annunciators(st), " ")
	annLine := m.th.Annunciator.Render(ann) + "  " + m.th.Muted.Render(modeLine(st.Modes))

	lines := []string{
		header,
		"",
		stack,
		display,
		annLine,
		m.th.Muted.Render(fmt.Sprintf("LSTx %s   %s", rpn.FormatNumber(st.LastX), statsLine(st.Stats))),
	}
	if a, ok := m.sess.lastAlert(); ok {
		style := m.th.Muted
		switch a.Severity {
		case alertWarn:
			style = m.th.Alert
		case alertError:
			style = m.th.Danger
		}
		lines = append(lines, style.Render(a.Message))
	}
	lines = append(lines, "", m.help.View(m.keys))

	frame := m.th.Frame
	if w >= 4 {
		frame = frame.Width(clamp(w-2, 0, inner+4))
	}
	return frame.Render(strings.Join(lines, "\n"))
}

func (m appModel) viewStats() string {
	s := m.sess.state().Stats
	mean := "-"
	if v, ok := s.Mean(); ok {
		mean = rpn.FormatNumber(v)
	}
	lines := []string{
		m.th.Header.Render("Σ STATISTICS"),
		fmt.Sprintf("n     %d", s.N),
		fmt.Sprintf("Σx    %s", rpn.FormatNumber(s.SumX)),
		fmt.Sprintf("Σx²   %s", rpn.FormatNumber(s.SumX2)),
		fmt.Sprintf("x̄     %s", mean),
		fmt.Sprintf("s     %s", rpn.FormatNumber(s.StdDev())),
		"",
		m.th.Muted.Render("f − Σ+   g − Σ−   f # CLΣ   any key closes"),
	}
	return m.th.OverlayBox.Render(strings.Join(lines, "\n"))
}

func (m appModel) viewHelp() string {
	h := m.help
	h.ShowAll = true
	lines := []string{
		m.th.Header.Render("KEYS"),
		h.View(m.keys),
		"",
		m.th.Muted.Render("f enter LSTx  g enter R↓  f n ABS  g x LSTx  g * Δ%  g c ⌫"),
		m.th.Muted.Render("f + x̄  g + s  f − Σ+  g − Σ−"),
	}
	return m.th.OverlayBox.Render(strings.Join(lines, "\n"))
}

func (m appModel) viewQuitConfirm() string {
	return m.th.OverlayBox.Render(m.th.Alert.Render("Quit calculator?") + "\n" + m.th.Muted.Render("[y/Enter] Quit    [n/Esc] Stay"))
}

func renderHeader(th theme, version string, sessionID string) string {
	return th.Header.Render("RPN FINANCIAL") + " " + th.Accent.Render(version) + "\n" + th.Muted.Render(fmt.Sprintf("Session: %s", sessionID))
}

func renderOverlay(th theme, base string, overlay string) string {
	dim := th.Overlay.Render(base)
	return dim + "\n\n" + overlay
}

func (m appModel) effectiveSize() (int, int) {
	w := m.width
	h := m.height
	// Smoke runs and headless programs may not deliver a WindowSizeMsg; assume a sane default.
	if w <= 0 {
		w = 80
	}
	if h <= 0 {
		h = 24
	}
	return w, h
}

func (m appModel) viewTooSmall(w, h int) string {
	lines := []string{
		m.th.Header.Render("RPN"),
		m.th.Alert.Render("Terminal too small"),
		m.th.Muted.Render(fmt.Sprintf("Minimum: 30x12. Current: %dx%d", w, h)),
		m.th.Display.Render(m.sess.display()),
	}
	return strings.Join(lines, "\n")
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
