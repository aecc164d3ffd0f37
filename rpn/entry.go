package rpn

import (
	"strconv"
	"strings"
	"unicode"
)

// MaxEntryLen bounds the raw entry text.
const MaxEntryLen = 18

// EntryBuffer holds numeric input as text until it is committed to X.
type EntryBuffer struct {
	Text   string
	Active bool
}

func (b *EntryBuffer) StartIfNeeded() {
	if b.Active {
		return
	}
	b.Text = ""
	b.Active = true
}

func (b *EntryBuffer) InputDigit(d byte) bool {
	if d < '0' || d > '9' {
		return false
	}
	b.StartIfNeeded()
	if len(b.Text) >= MaxEntryLen {
		return false
	}
	if b.Text == "0" {
		b.Text = string(d)
		return true
	}
	b.Text += string(d)
	return true
}

func (b *EntryBuffer) InputDecimalPoint() bool {
	b.StartIfNeeded()
	if strings.ContainsAny(b.Text, ".e") || len(b.Text) >= MaxEntryLen {
		return false
	}
	if b.Text == "" || b.Text == "-" {
		b.Text += "0"
	}
	b.Text += "."
	return true
}

// InputExponent appends the single exponent marker. An empty or sign-only
// buffer becomes "1e" / "-1e".
func (b *EntryBuffer) InputExponent() bool {
	b.StartIfNeeded()
	if strings.Contains(b.Text, "e") || len(b.Text) >= MaxEntryLen-1 {
		return false
	}
	if b.Text == "" || b.Text == "-" {
		b.Text += "1"
	}
	b.Text += "e"
	return true
}

// ToggleSign flips a leading '-' on the raw text. The sign counts toward
// MaxEntryLen, so a full buffer keeps its text. It reports false when the
// buffer is inactive; the engine negates X in that case.
func (b *EntryBuffer) ToggleSign() bool {
	if !b.Active {
		return false
	}
	switch {
	case strings.HasPrefix(b.Text, "-"):
		b.Text = b.Text[1:]
	case len(b.Text) < MaxEntryLen:
		b.Text = "-" + b.Text
	}
	return true
}

func (b *EntryBuffer) Backspace() bool {
	if !b.Active || b.Text == "" {
		return false
	}
	b.Text = b.Text[:len(b.Text)-1]
	return true
}

func (b *EntryBuffer) Clear() {
	b.Text = ""
	b.Active = false
}

// Commit parses and clears the buffer. ok is false when nothing was active.
func (b *EntryBuffer) Commit() (v float64, ok bool) {
	if !b.Active {
		return 0, false
	}
	v = ParseEntry(b.Text)
	b.Clear()
	return v, true
}

// ParseEntry converts entry text to a number. It never fails: empty, sign-only
// and unparsable text all yield 0.
func ParseEntry(text string) float64 {
	s := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, text)
	for _, suffix := range []string{"e-", "e+", "e"} {
		if strings.HasSuffix(s, suffix) {
			s = strings.TrimSuffix(s, suffix)
			break
		}
	}
	switch s {
	case "", "-", "+":
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}
