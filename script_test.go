package main

import (
	"bytes"
	"strings"
	"testing"
)

func TestRunScript_PrintsStack(t *testing.T) {
	sess := newTestSession(t)
	var out bytes.Buffer

	in := strings.NewReader("# twelve plus three\n1 2 enter\n\n3,plus\n")
	if err := runScript(sess, in, &out); err != nil {
		t.Fatalf("runScript: %v", err)
	}

	want := "T: 0.00\nZ: 0.00\nY: 0.00\nX: 15.00\n"
	if out.String() != want {
		t.Fatalf("unexpected output:\n%q\nwant\n%q", out.String(), want)
	}
}

func TestRunScript_ShowsShiftAnnunciator(t *testing.T) {
	sess := newTestSession(t)
	var out bytes.Buffer

	if err := runScript(sess, strings.NewReader("5 g\n"), &out); err != nil {
		t.Fatalf("runScript: %v", err)
	}
	if !strings.Contains(out.String(), "X: 5  [g]") {
		t.Fatalf("expected live entry with g annunciator, got:\n%s", out.String())
	}
}
