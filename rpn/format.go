package rpn

import (
	"math"
	"strconv"
)

const machineEpsilon = 2.220446049250313e-16

// Round2 rounds half away from zero to two decimals after nudging the
// magnitude by machine epsilon, so 1.005 rounds to 1.01.
func Round2(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return v
	}
	r := math.Round((math.Abs(v)+machineEpsilon)*100) / 100
	if v < 0 {
		r = -r
	}
	return r
}

// FormatNumber renders a register value for display.
func FormatNumber(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "Error"
	}
	r := Round2(v)
	if r == 0 {
		r = 0
	}
	return strconv.FormatFloat(r, 'f', 2, 64)
}
