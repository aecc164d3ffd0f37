package main

import (
	"fmt"
	"strings"

	"rpncalc/rpn"
)

func annunciators(st rpn.State) []string {
	var out []string
	if st.Shift != rpn.ShiftNone {
		out = append(out, st.Shift.String())
	}
	if st.Modes.Begin {
		out = append(out, "BEGIN")
	}
	return out
}

func modeLine(m rpn.Modes) string {
	pay := "END"
	if m.Begin {
		pay = "BEGIN"
	}
	per := "1×"
	if m.Is12x {
		per = "12×"
	}
	return fmt.Sprintf("%s  %s  %s", pay, per, m.DayCount)
}

func statsLine(s rpn.Stats) string {
	mean := "-"
	if m, ok := s.Mean(); ok {
		mean = rpn.FormatNumber(m)
	}
	return fmt.Sprintf("n=%d  Σx=%s  Σx²=%s  x̄=%s  s=%s",
		s.N, rpn.FormatNumber(s.SumX), rpn.FormatNumber(s.SumX2), mean, rpn.FormatNumber(s.StdDev()))
}

// plainStack renders the stack without styling, for serve and script modes.
func plainStack(st rpn.State, display string) string {
	x := "X: " + display
	if ann := annunciators(st); len(ann) > 0 {
		x += "  [" + strings.Join(ann, " ") + "]"
	}
	lines := []string{
		"T: " + rpn.FormatNumber(st.Stack.T),
		"Z: " + rpn.FormatNumber(st.Stack.Z),
		"Y: " + rpn.FormatNumber(st.Stack.Y),
		x,
	}
	return strings.Join(lines, "\n")
}
