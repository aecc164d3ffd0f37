// Package rpn implements a four-register RPN calculator core: the X/Y/Z/T
// stack, LAST X, the entry buffer, the f/g shift latch and running
// statistics. All mutation goes through Engine.Dispatch.
package rpn

import "math"

// NumRegisters is the number of addressable storage registers.
const NumRegisters = 10

type Shift int

const (
	ShiftNone Shift = iota
	ShiftF
	ShiftG
)

func (s Shift) String() string {
	switch s {
	case ShiftF:
		return "f"
	case ShiftG:
		return "g"
	default:
		return ""
	}
}

// ParseShift maps "f"/"g" to a latch value; anything else is ShiftNone.
func ParseShift(s string) Shift {
	switch s {
	case "f":
		return ShiftF
	case "g":
		return ShiftG
	default:
		return ShiftNone
	}
}

type DayCount string

const (
	DayCount30360  DayCount = "30/360"
	DayCountActual DayCount = "ACT/ACT"
)

func (d DayCount) Valid() bool {
	return d == DayCount30360 || d == DayCountActual
}

// Modes are stored calculator flags. Nothing computes with them yet.
type Modes struct {
	Begin    bool
	Is12x    bool
	DayCount DayCount
}

func DefaultModes() Modes {
	return Modes{Begin: false, Is12x: true, DayCount: DayCount30360}
}

type Stack struct {
	X, Y, Z, T float64
}

// TVM holds the time-value-of-money registers. A nil field is unset.
type TVM struct {
	N   *float64
	I   *float64
	PV  *float64
	PMT *float64
	FV  *float64
}

type CashFlows struct {
	CF0    *float64
	Flows  []float64
	Counts []float64
}

// State is the complete calculator state. The zero value is not the default
// state; use DefaultState.
type State struct {
	Stack Stack
	LastX float64
	Entry EntryBuffer
	Shift Shift
	Modes Modes
	Regs  [NumRegisters]float64
	TVM   TVM
	CF    CashFlows
	Stats Stats
}

func DefaultState() State {
	return State{
		Modes: DefaultModes(),
		CF:    CashFlows{Flows: []float64{}, Counts: []float64{}},
	}
}

// Clone returns a copy that shares no memory with s.
func (s State) Clone() State {
	out := s
	out.TVM = TVM{
		N:   cloneFloat(s.TVM.N),
		I:   cloneFloat(s.TVM.I),
		PV:  cloneFloat(s.TVM.PV),
		PMT: cloneFloat(s.TVM.PMT),
		FV:  cloneFloat(s.TVM.FV),
	}
	out.CF = CashFlows{
		CF0:    cloneFloat(s.CF.CF0),
		Flows:  append([]float64{}, s.CF.Flows...),
		Counts: append([]float64{}, s.CF.Counts...),
	}
	return out
}

func cloneFloat(p *float64) *float64 {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func finiteOrZero(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

func finiteOrNaN(v float64) float64 {
	if math.IsInf(v, 0) {
		return math.NaN()
	}
	return v
}
