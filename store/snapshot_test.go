package store

import (
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"rpncalc/rpn"
)

func TestSnapshot_FieldNames(t *testing.T) {
	b, err := Encode(rpn.DefaultState())
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	var m map[string]any
	if err := json.Unmarshal(b, &m); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	for _, k := range []string{"x", "y", "z", "t", "lastX", "entry", "entering", "shift", "begin", "is12x", "dayCount", "regs", "tvm", "cf", "stats"} {
		if _, ok := m[k]; !ok {
			t.Fatalf("missing field %q in %s", k, b)
		}
	}
	if m["shift"] != nil {
		t.Fatalf("shift=%v want null", m["shift"])
	}
	if m["dayCount"] != "30/360" || m["is12x"] != true {
		t.Fatalf("modes=%v/%v", m["dayCount"], m["is12x"])
	}
	if regs, ok := m["regs"].([]any); !ok || len(regs) != rpn.NumRegisters {
		t.Fatalf("regs=%v", m["regs"])
	}
}

func TestSnapshot_PreservesState(t *testing.T) {
	e := rpn.New()
	for _, k := range []string{"3", "f", "minus", "8", "enter", "0", "div", "4", "f"} {
		e.Press(k)
	}
	st := e.State()
	st.Regs[9] = 2.5
	pv := -1000.0
	st.TVM.PV = &pv
	st.Modes = rpn.Modes{Begin: true, Is12x: false, DayCount: rpn.DayCountActual}

	b, err := Encode(st)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	got := Decode(b)

	if !math.IsNaN(got.Stack.X) {
		// "4" is in the entry buffer; X still holds the NaN from 8/0.
		t.Fatalf("x=%v want NaN", got.Stack.X)
	}
	if got.Entry != (rpn.EntryBuffer{Text: "4", Active: true}) {
		t.Fatalf("entry=%+v", got.Entry)
	}
	if got.Shift != rpn.ShiftF || got.Modes != st.Modes || got.Regs[9] != 2.5 {
		t.Fatalf("state=%+v", got)
	}
	if got.TVM.PV == nil || *got.TVM.PV != -1000 || got.TVM.N != nil {
		t.Fatalf("tvm=%+v", got.TVM)
	}
	if got.Stats != st.Stats {
		t.Fatalf("stats=%+v", got.Stats)
	}
}

func TestDecode_BackfillsMissingFields(t *testing.T) {
	got := Decode([]byte(`{"x": 12.5, "stats": {"n": 2}}`))
	if got.Stack.X != 12.5 {
		t.Fatalf("x=%v", got.Stack.X)
	}
	if got.Stats.N != 2 {
		t.Fatalf("stats=%+v", got.Stats)
	}
	def := rpn.DefaultState()
	if got.Modes != def.Modes || got.Regs != def.Regs || got.Shift != rpn.ShiftNone {
		t.Fatalf("defaults not kept: %+v", got)
	}
	if got.CF.Flows == nil || got.CF.Counts == nil {
		t.Fatalf("cash flow lists should default to empty")
	}
}

func TestDecode_MalformedFallsBackToDefaults(t *testing.T) {
	for _, raw := range []string{"", "{", "[1,2]", `{"x": "abc"}`, `{"regs": {"a": 1}}`, "null"} {
		got := Decode([]byte(raw))
		def := rpn.DefaultState()
		if got.Stack != def.Stack || got.Modes != def.Modes || got.Entry != def.Entry {
			t.Fatalf("Decode(%q)=%+v", raw, got)
		}
	}
}

func TestDecode_NormalizesOutOfRangeValues(t *testing.T) {
	got := Decode([]byte(`{"shift":"h","dayCount":"365","regs":[1,2,3,4,5,6,7,8,9,10,11,12],"stats":{"n":-4},"entering":true,"entry":"` + strings.Repeat("9", 40) + `"}`))
	if got.Shift != rpn.ShiftNone {
		t.Fatalf("shift=%v", got.Shift)
	}
	if got.Modes.DayCount != rpn.DayCount30360 {
		t.Fatalf("dayCount=%v", got.Modes.DayCount)
	}
	if got.Regs[9] != 10 {
		t.Fatalf("regs=%v", got.Regs)
	}
	if got.Stats.N != 0 {
		t.Fatalf("n=%d", got.Stats.N)
	}
	if len(got.Entry.Text) != rpn.MaxEntryLen {
		t.Fatalf("entry not bounded: %d", len(got.Entry.Text))
	}

	short := Decode([]byte(`{"regs":[7]}`))
	if short.Regs[0] != 7 || short.Regs[1] != 0 {
		t.Fatalf("short regs=%v", short.Regs)
	}
}

func TestLoadSave(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "state.json")

	if got := Load(path); got.Stack != rpn.DefaultState().Stack {
		t.Fatalf("missing file should load defaults")
	}

	e := rpn.New()
	e.Push(42)
	if err := Save(path, e.State()); err != nil {
		t.Fatalf("save: %v", err)
	}
	if got := Load(path); got.Stack.X != 42 {
		t.Fatalf("x=%v", got.Stack.X)
	}

	if err := os.WriteFile(path, []byte("garbage"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if got := Load(path); got.Stack.X != 0 {
		t.Fatalf("garbage should load defaults, x=%v", got.Stack.X)
	}

	entries, err := os.ReadDir(filepath.Dir(path))
	if err != nil {
		t.Fatalf("readdir: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("temp files left behind: %v", entries)
	}
}
