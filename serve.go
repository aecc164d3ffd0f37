package main

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gosuri/uilive"
)

const busPollInterval = 100 * time.Millisecond

// runServe drives the calculator from the command bus only, redrawing the
// stack in place on out.
func runServe(cfg appConfig, sess *session, out io.Writer) error {
	w := uilive.New()
	w.Out = out
	w.RefreshInterval = 50 * time.Millisecond
	w.Start()
	defer w.Stop()

	render := func() {
		fmt.Fprintf(w, "%s\n%s\n", plainStack(sess.state(), sess.display()), modeLine(sess.state().Modes))
		if a, ok := sess.lastAlert(); ok {
			fmt.Fprintf(w, "%s %s\n", a.Severity, a.Message)
		}
		_ = w.Flush()
	}

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigs)

	changed := make(chan struct{}, 1)
	var tick <-chan time.Time
	bw, err := newBusWatcher(cfg.commandsPath)
	if err != nil {
		sess.systemAlert(alertWarn, "bus.watch_failed", "File watching unavailable, polling the command bus", map[string]any{"error": err.Error()})
		ticker := time.NewTicker(busPollInterval)
		defer ticker.Stop()
		tick = ticker.C
	} else {
		defer bw.Close()
		go func() {
			for bw.Changed() {
				select {
				case changed <- struct{}{}:
				default:
				}
			}
		}()
	}

	offset := initCommandBus(cfg.commandsPath)
	render()
	for {
		select {
		case <-sigs:
			return nil
		case <-changed:
		case <-tick:
		}
		var cmds []busCommand
		cmds, offset = readBusCommands(cfg.commandsPath, offset)
		for _, c := range cmds {
			if sess.applyBusCommand(c).stop {
				render()
				return nil
			}
		}
		if len(cmds) > 0 {
			render()
		}
	}
}
