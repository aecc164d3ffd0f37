package main

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func appendBus(t *testing.T, path string, text string) {
	t.Helper()
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		t.Fatalf("open bus: %v", err)
	}
	defer f.Close()
	if _, err := f.WriteString(text); err != nil {
		t.Fatalf("write bus: %v", err)
	}
}

func TestInitCommandBus_SkipsExistingCommands(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "commands.jsonl")
	if off := initCommandBus(path); off != 0 {
		t.Fatalf("expected offset 0 for new bus, got %d", off)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected bus file to be created: %v", err)
	}

	line := `{"version":1,"type":"stop"}` + "\n"
	appendBus(t, path, line)
	if off := initCommandBus(path); off != int64(len(line)) {
		t.Fatalf("expected offset %d, got %d", len(line), off)
	}
}

func TestReadBusCommands_PartialLineWaits(t *testing.T) {
	path := filepath.Join(t.TempDir(), "commands.jsonl")
	first := `{"version":1,"type":"key","keys":"1,2"}` + "\n"
	appendBus(t, path, first+`{"version":1,"type":"pu`)

	cmds, off := readBusCommands(path, 0)
	if len(cmds) != 1 || cmds[0].Keys != "1,2" {
		t.Fatalf("unexpected commands: %+v", cmds)
	}
	if off != int64(len(first)) {
		t.Fatalf("expected offset %d, got %d", len(first), off)
	}

	appendBus(t, path, `sh","text":"3"}`+"\n")
	cmds, _ = readBusCommands(path, off)
	if len(cmds) != 1 || cmds[0].Type != "push" || cmds[0].Text != "3" {
		t.Fatalf("expected completed push command, got %+v", cmds)
	}
}

func TestReadBusCommands_SkipsInvalidLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "commands.jsonl")
	appendBus(t, path, "not json\n\n"+`{"version":2,"type":"stop"}`+"\n"+`{"version":1,"type":""}`+"\n"+`{"version":1,"type":"clear"}`+"\n")

	cmds, _ := readBusCommands(path, 0)
	if len(cmds) != 1 || cmds[0].Type != "clear" {
		t.Fatalf("expected only the clear command, got %+v", cmds)
	}
}

func TestReadBusCommands_TruncationRestarts(t *testing.T) {
	path := filepath.Join(t.TempDir(), "commands.jsonl")
	line := `{"version":1,"type":"clear"}` + "\n"
	appendBus(t, path, line)

	cmds, _ := readBusCommands(path, 10_000)
	if len(cmds) != 1 {
		t.Fatalf("expected read from start after truncation, got %+v", cmds)
	}
}

func TestReadBusCommands_MissingFile(t *testing.T) {
	cmds, off := readBusCommands(filepath.Join(t.TempDir(), "absent.jsonl"), 42)
	if cmds != nil || off != 42 {
		t.Fatalf("expected no commands and unchanged offset, got %+v %d", cmds, off)
	}
}

func TestApplyBusCommand_KeysAndPush(t *testing.T) {
	sess := newTestSession(t)

	sess.applyBusCommand(busCommand{Version: 1, Type: "key", Keys: "1,2 enter 3,plus"})
	if got := sess.display(); got != "15.00" {
		t.Fatalf("expected 15.00, got %q", got)
	}

	sess.applyBusCommand(busCommand{Version: 1, Type: "push", Text: " 2.5 "})
	st := sess.state()
	if st.Stack.X != 2.5 || st.Stack.Y != 15 {
		t.Fatalf("expected X=2.5 Y=15, got %+v", st.Stack)
	}

	sess.applyBusCommand(busCommand{Version: 1, Type: "push", Text: "abc"})
	if a, _ := sess.lastAlert(); a.Code != "command.invalid" {
		t.Fatalf("expected command.invalid alert, got %+v", a)
	}
}

func TestApplyBusCommand_ModeClearStop(t *testing.T) {
	sess := newTestSession(t)

	sess.applyBusCommand(busCommand{Version: 1, Type: "mode", Text: "BEGIN"})
	if !sess.state().Modes.Begin {
		t.Fatalf("expected begin mode")
	}

	sess.applyBusCommand(busCommand{Version: 1, Type: "key", Keys: "9"})
	sess.applyBusCommand(busCommand{Version: 1, Type: "clear"})
	if got := sess.display(); got != "0.00" {
		t.Fatalf("expected cleared display, got %q", got)
	}

	if res := sess.applyBusCommand(busCommand{Version: 1, Type: "sum"}); res.stop || res.showStats {
		t.Fatalf("unknown type should not stop or show stats: %+v", res)
	}
	if a, _ := sess.lastAlert(); a.Code != "command.unknown" {
		t.Fatalf("expected command.unknown alert, got %+v", a)
	}

	if res := sess.applyBusCommand(busCommand{Version: 1, Type: "key", Keys: "sum"}); !res.showStats {
		t.Fatalf("expected sum key to request the stats panel")
	}
	if res := sess.applyBusCommand(busCommand{Version: 1, Type: "stop"}); !res.stop {
		t.Fatalf("expected stop")
	}
}

func TestSplitKeys(t *testing.T) {
	got := splitKeys(" 1, 2\tenter,,plus\n")
	want := []string{"1", "2", "enter", "plus"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("splitKeys = %v, want %v", got, want)
	}
	if got := splitKeys(""); len(got) != 0 {
		t.Fatalf("expected no keys, got %v", got)
	}
}
