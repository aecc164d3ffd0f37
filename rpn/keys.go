package rpn

import "strings"

// Key is a logical calculator key.
type Key int

const (
	KeyUnknown Key = iota
	Key0
	Key1
	Key2
	Key3
	Key4
	Key5
	Key6
	Key7
	Key8
	Key9
	KeyDot
	KeyEnter
	KeyCLx
	KeyClear
	KeyCHS
	KeySwap
	KeyPlus
	KeyMinus
	KeyMul
	KeyDiv
	KeySqrt
	KeyPow
	KeyPercent
	KeyEquals
	KeySTO
	KeyRCL
	KeyEEX
	KeySum
	KeyF
	KeyG

	numKeys
)

var keySymbols = [numKeys]string{
	KeyUnknown: "",
	Key0:       "0",
	Key1:       "1",
	Key2:       "2",
	Key3:       "3",
	Key4:       "4",
	Key5:       "5",
	Key6:       "6",
	Key7:       "7",
	Key8:       "8",
	Key9:       "9",
	KeyDot:     "dot",
	KeyEnter:   "enter",
	KeyCLx:     "clx",
	KeyClear:   "clear",
	KeyCHS:     "chs",
	KeySwap:    "swap",
	KeyPlus:    "plus",
	KeyMinus:   "minus",
	KeyMul:     "mul",
	KeyDiv:     "div",
	KeySqrt:    "sqrt",
	KeyPow:     "pow",
	KeyPercent: "percent",
	KeyEquals:  "equals",
	KeySTO:     "sto",
	KeyRCL:     "rcl",
	KeyEEX:     "eex",
	KeySum:     "sum",
	KeyF:       "f",
	KeyG:       "g",
}

var symbolKeys = func() map[string]Key {
	m := make(map[string]Key, numKeys)
	for k := Key0; k < numKeys; k++ {
		m[keySymbols[k]] = k
	}
	return m
}()

// ParseKey maps a logical key symbol to its Key. Unrecognized symbols map to
// KeyUnknown.
func ParseKey(symbol string) Key {
	if k, ok := symbolKeys[strings.ToLower(strings.TrimSpace(symbol))]; ok {
		return k
	}
	return KeyUnknown
}

func (k Key) String() string {
	if k <= KeyUnknown || k >= numKeys {
		return "unknown"
	}
	return keySymbols[k]
}

// Digit reports the digit byte for Key0..Key9.
func (k Key) Digit() (byte, bool) {
	if k < Key0 || k > Key9 {
		return 0, false
	}
	return byte('0' + (k - Key0)), true
}

func (k Key) IsShift() bool {
	return k == KeyF || k == KeyG
}

// Keys returns every recognized key in enum order.
func Keys() []Key {
	out := make([]Key, 0, numKeys-1)
	for k := Key0; k < numKeys; k++ {
		out = append(out, k)
	}
	return out
}
