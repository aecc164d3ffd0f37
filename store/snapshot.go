// Package store persists calculator state as JSON. Loading is forgiving:
// missing fields keep their defaults and unreadable data yields the default
// state.
package store

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"

	"rpncalc/rpn"
)

// Float is a register value. Non-finite values travel as JSON null and null
// reads back as NaN.
type Float float64

func (f Float) MarshalJSON() ([]byte, error) {
	v := float64(f)
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return []byte("null"), nil
	}
	return strconv.AppendFloat(nil, v, 'g', -1, 64), nil
}

func (f *Float) UnmarshalJSON(b []byte) error {
	if bytes.Equal(bytes.TrimSpace(b), []byte("null")) {
		*f = Float(math.NaN())
		return nil
	}
	var v float64
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	*f = Float(v)
	return nil
}

type TVMRecord struct {
	N   *float64 `json:"n"`
	I   *float64 `json:"i"`
	PV  *float64 `json:"pv"`
	PMT *float64 `json:"pmt"`
	FV  *float64 `json:"fv"`
}

type CFRecord struct {
	CF0 *float64  `json:"cf0"`
	CFj []float64 `json:"cfj"`
	Nj  []float64 `json:"nj"`
}

type StatsRecord struct {
	N     int     `json:"n"`
	SumX  float64 `json:"sumX"`
	SumX2 float64 `json:"sumX2"`
}

// Snapshot is the persisted shape of a calculator state.
type Snapshot struct {
	X        Float       `json:"x"`
	Y        Float       `json:"y"`
	Z        Float       `json:"z"`
	T        Float       `json:"t"`
	LastX    Float       `json:"lastX"`
	Entry    string      `json:"entry"`
	Entering bool        `json:"entering"`
	Shift    *string     `json:"shift"`
	Begin    bool        `json:"begin"`
	Is12x    bool        `json:"is12x"`
	DayCount string      `json:"dayCount"`
	Regs     []Float     `json:"regs"`
	TVM      TVMRecord   `json:"tvm"`
	CF       CFRecord    `json:"cf"`
	Stats    StatsRecord `json:"stats"`
}

func FromState(st rpn.State) Snapshot {
	st = st.Clone()
	s := Snapshot{
		X:        Float(st.Stack.X),
		Y:        Float(st.Stack.Y),
		Z:        Float(st.Stack.Z),
		T:        Float(st.Stack.T),
		LastX:    Float(st.LastX),
		Entry:    st.Entry.Text,
		Entering: st.Entry.Active,
		Begin:    st.Modes.Begin,
		Is12x:    st.Modes.Is12x,
		DayCount: string(st.Modes.DayCount),
		Regs:     make([]Float, rpn.NumRegisters),
		TVM: TVMRecord{
			N:   st.TVM.N,
			I:   st.TVM.I,
			PV:  st.TVM.PV,
			PMT: st.TVM.PMT,
			FV:  st.TVM.FV,
		},
		CF: CFRecord{
			CF0: st.CF.CF0,
			CFj: st.CF.Flows,
			Nj:  st.CF.Counts,
		},
		Stats: StatsRecord{N: st.Stats.N, SumX: st.Stats.SumX, SumX2: st.Stats.SumX2},
	}
	if st.Shift != rpn.ShiftNone {
		sh := st.Shift.String()
		s.Shift = &sh
	}
	for i, r := range st.Regs {
		s.Regs[i] = Float(r)
	}
	return s
}

// State converts the snapshot back, normalizing values a hand-edited or
// older file may carry.
func (s Snapshot) State() rpn.State {
	st := rpn.DefaultState()
	st.Stack = rpn.Stack{X: float64(s.X), Y: float64(s.Y), Z: float64(s.Z), T: float64(s.T)}
	st.LastX = float64(s.LastX)

	if s.Entering {
		text := s.Entry
		if len(text) > rpn.MaxEntryLen {
			text = text[:rpn.MaxEntryLen]
		}
		st.Entry = rpn.EntryBuffer{Text: text, Active: true}
	}
	if s.Shift != nil {
		st.Shift = rpn.ParseShift(*s.Shift)
	}

	st.Modes.Begin = s.Begin
	st.Modes.Is12x = s.Is12x
	if dc := rpn.DayCount(s.DayCount); dc.Valid() {
		st.Modes.DayCount = dc
	}

	for i := 0; i < rpn.NumRegisters && i < len(s.Regs); i++ {
		st.Regs[i] = float64(s.Regs[i])
	}

	st.TVM = rpn.TVM{N: s.TVM.N, I: s.TVM.I, PV: s.TVM.PV, PMT: s.TVM.PMT, FV: s.TVM.FV}
	st.CF.CF0 = s.CF.CF0
	if s.CF.CFj != nil {
		st.CF.Flows = s.CF.CFj
	}
	if s.CF.Nj != nil {
		st.CF.Counts = s.CF.Nj
	}

	n := s.Stats.N
	if n < 0 {
		n = 0
	}
	st.Stats = rpn.Stats{N: n, SumX: s.Stats.SumX, SumX2: s.Stats.SumX2}
	return st.Clone()
}

func Encode(st rpn.State) ([]byte, error) {
	return json.MarshalIndent(FromState(st), "", "  ")
}

// Decode never fails. Absent fields keep their default values; data that is
// not a JSON object of the right shape yields the default state.
func Decode(data []byte) rpn.State {
	snap := FromState(rpn.DefaultState())
	if err := json.Unmarshal(data, &snap); err != nil {
		return rpn.DefaultState()
	}
	return snap.State()
}
