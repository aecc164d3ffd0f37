package rpn

import "math"

// Outcome reports what a dispatch did.
type Outcome int

const (
	// Applied means the key ran an operation or edited the entry buffer.
	Applied Outcome = iota
	// Latched means a shift key changed the latch.
	Latched
	// ShowStats asks the front-end to show the statistics panel. State is
	// unchanged apart from the consumed latch.
	ShowStats
	// Placeholder means the key was acknowledged but has no behavior yet.
	Placeholder
)

func (o Outcome) String() string {
	switch o {
	case Applied:
		return "applied"
	case Latched:
		return "latched"
	case ShowStats:
		return "show_stats"
	case Placeholder:
		return "placeholder"
	default:
		return "unknown"
	}
}

type handler func(e *Engine) Outcome

var unshifted = [numKeys]handler{
	Key0:       digit('0'),
	Key1:       digit('1'),
	Key2:       digit('2'),
	Key3:       digit('3'),
	Key4:       digit('4'),
	Key5:       digit('5'),
	Key6:       digit('6'),
	Key7:       digit('7'),
	Key8:       digit('8'),
	Key9:       digit('9'),
	KeyDot:     (*Engine).decimalPoint,
	KeyEnter:   (*Engine).enter,
	KeyCLx:     (*Engine).clx,
	KeyClear:   (*Engine).clearAll,
	KeyCHS:     (*Engine).chs,
	KeySwap:    (*Engine).swap,
	KeyPlus:    binary(func(y, x float64) float64 { return y + x }),
	KeyMinus:   binary(func(y, x float64) float64 { return y - x }),
	KeyMul:     binary(func(y, x float64) float64 { return y * x }),
	KeyDiv:     binary(divide),
	KeySqrt:    (*Engine).sqrt,
	KeyPow:     binary(math.Pow),
	KeyPercent: (*Engine).percent,
	KeyEquals:  placeholder,
	KeySTO:     placeholder,
	KeyRCL:     placeholder,
	KeyEEX:     (*Engine).exponent,
	KeySum:     func(*Engine) Outcome { return ShowStats },
}

var fShifted = [numKeys]handler{
	KeyEnter: (*Engine).lastX,
	KeyCHS:   (*Engine).abs,
	KeyPlus:  (*Engine).mean,
	KeyMinus: (*Engine).sigmaPlus,
	KeySum:   (*Engine).clearSigma,
}

var gShifted = [numKeys]handler{
	KeyEnter: (*Engine).rollDown,
	KeyCLx:   (*Engine).backspace,
	KeySwap:  (*Engine).lastX,
	KeyPlus:  (*Engine).stdDev,
	KeyMinus: (*Engine).sigmaMinus,
	KeyMul:   (*Engine).deltaPercent,
}

func placeholder(*Engine) Outcome { return Placeholder }

func digit(d byte) handler {
	return func(e *Engine) Outcome {
		e.beginEntry()
		e.st.Entry.InputDigit(d)
		return Applied
	}
}

func binary(f func(y, x float64) float64) handler {
	return func(e *Engine) Outcome {
		e.commitEntry()
		x := e.st.Stack.X
		r := f(e.st.Stack.Y, x)
		e.dropStack()
		e.st.LastX = x
		e.st.Stack.X = finiteOrNaN(r)
		return Applied
	}
}

func divide(y, x float64) float64 {
	if x == 0 {
		return math.NaN()
	}
	return y / x
}

// Engine owns a calculator State. It is not safe for concurrent use; a single
// owner drives it through Dispatch.
type Engine struct {
	st State
}

func New() *Engine {
	return &Engine{st: DefaultState()}
}

// Restore builds an engine around a previously captured state.
func Restore(st State) *Engine {
	return &Engine{st: st.Clone()}
}

// State returns a copy of the current state.
func (e *Engine) State() State {
	return e.st.Clone()
}

// Press dispatches a logical key symbol such as "7", "enter" or "plus".
func (e *Engine) Press(symbol string) Outcome {
	return e.Dispatch(ParseKey(symbol))
}

// Dispatch runs one key against the state. A pending shift is always consumed
// by a non-shift key, whether or not that key has a shifted behavior.
func (e *Engine) Dispatch(k Key) Outcome {
	if k < KeyUnknown || k >= numKeys {
		k = KeyUnknown
	}
	switch k {
	case KeyF:
		e.toggleShift(ShiftF)
		return Latched
	case KeyG:
		e.toggleShift(ShiftG)
		return Latched
	}

	table := &unshifted
	switch e.st.Shift {
	case ShiftF:
		table = &fShifted
	case ShiftG:
		table = &gShifted
	}
	e.st.Shift = ShiftNone

	h := table[k]
	if h == nil {
		return Placeholder
	}
	return h(e)
}

// Push lifts the stack and places v in X.
func (e *Engine) Push(v float64) {
	e.commitEntry()
	e.liftStack()
	e.setX(v)
}

func (e *Engine) SetModes(m Modes) {
	if !m.DayCount.Valid() {
		m.DayCount = DayCount30360
	}
	e.st.Modes = m
}

// Display is the text a front-end shows for X.
func (e *Engine) Display() string {
	if e.st.Entry.Active {
		return e.st.Entry.Text
	}
	return FormatNumber(e.st.Stack.X)
}

func (e *Engine) toggleShift(s Shift) {
	if e.st.Shift == s {
		e.st.Shift = ShiftNone
		return
	}
	e.st.Shift = s
}

func (e *Engine) liftStack() {
	s := &e.st.Stack
	s.T = s.Z
	s.Z = s.Y
	s.Y = s.X
}

func (e *Engine) dropStack() {
	s := &e.st.Stack
	s.X = s.Y
	s.Y = s.Z
	s.Z = s.T
}

// setX records LAST X and stores v, coercing non-finite values to 0.
func (e *Engine) setX(v float64) {
	e.st.LastX = e.st.Stack.X
	e.st.Stack.X = finiteOrZero(v)
}

// putX records LAST X and stores an operation result. NaN is kept so that it
// propagates; infinities become NaN.
func (e *Engine) putX(v float64) {
	e.st.LastX = e.st.Stack.X
	e.st.Stack.X = finiteOrNaN(v)
}

// beginEntry starts a new entry without touching the stack; the commit
// overwrites X.
func (e *Engine) beginEntry() {
	e.st.Entry.StartIfNeeded()
}

func (e *Engine) commitEntry() {
	if v, ok := e.st.Entry.Commit(); ok {
		e.setX(v)
	}
}

func (e *Engine) decimalPoint() Outcome {
	e.beginEntry()
	e.st.Entry.InputDecimalPoint()
	return Applied
}

func (e *Engine) exponent() Outcome {
	if e.st.Entry.Active {
		if !e.st.Entry.InputExponent() {
			return Placeholder
		}
		return Applied
	}
	e.beginEntry()
	e.st.Entry.InputExponent()
	return Applied
}

func (e *Engine) enter() Outcome {
	if !e.st.Entry.Active {
		e.liftStack()
		return Applied
	}
	e.commitEntry()
	e.liftStack()
	// Re-setting X records the entered value as LAST X.
	e.setX(e.st.Stack.Y)
	return Applied
}

func (e *Engine) clx() Outcome {
	e.st.Entry.Clear()
	e.setX(0)
	return Applied
}

func (e *Engine) backspace() Outcome {
	if !e.st.Entry.Active {
		return e.clx()
	}
	e.st.Entry.Backspace()
	return Applied
}

func (e *Engine) clearAll() Outcome {
	e.st = DefaultState()
	return Applied
}

func (e *Engine) chs() Outcome {
	if e.st.Entry.ToggleSign() {
		return Applied
	}
	e.st.Stack.X = -e.st.Stack.X
	return Applied
}

func (e *Engine) abs() Outcome {
	e.commitEntry()
	e.putX(math.Abs(e.st.Stack.X))
	return Applied
}

func (e *Engine) swap() Outcome {
	e.commitEntry()
	s := &e.st.Stack
	s.X, s.Y = s.Y, s.X
	return Applied
}

func (e *Engine) rollDown() Outcome {
	e.commitEntry()
	s := &e.st.Stack
	s.X, s.Y, s.Z, s.T = s.Y, s.Z, s.T, s.X
	return Applied
}

func (e *Engine) lastX() Outcome {
	e.commitEntry()
	e.setX(e.st.LastX)
	return Applied
}

func (e *Engine) sqrt() Outcome {
	e.commitEntry()
	x := e.st.Stack.X
	if x < 0 {
		e.putX(math.NaN())
	} else {
		e.putX(math.Sqrt(x))
	}
	return Applied
}

func (e *Engine) percent() Outcome {
	e.commitEntry()
	s := &e.st.Stack
	e.putX(s.Y * (s.X / 100))
	return Applied
}

func (e *Engine) deltaPercent() Outcome {
	e.commitEntry()
	s := &e.st.Stack
	if s.Y == 0 {
		e.putX(math.NaN())
	} else {
		e.putX((s.X - s.Y) / s.Y * 100)
	}
	return Applied
}

func (e *Engine) sigmaPlus() Outcome {
	e.commitEntry()
	e.st.Stats.Add(e.st.Stack.X)
	return Applied
}

func (e *Engine) sigmaMinus() Outcome {
	e.commitEntry()
	e.st.Stats.Remove()
	return Applied
}

func (e *Engine) clearSigma() Outcome {
	e.commitEntry()
	e.st.Stats.Reset()
	return Applied
}

func (e *Engine) mean() Outcome {
	e.commitEntry()
	if m, ok := e.st.Stats.Mean(); ok {
		e.putX(m)
	}
	return Applied
}

func (e *Engine) stdDev() Outcome {
	e.commitEntry()
	e.putX(e.st.Stats.StdDev())
	return Applied
}
