package rpn

import "math"

// Stats is a running accumulator; samples are not retained.
type Stats struct {
	N     int
	SumX  float64
	SumX2 float64
}

func (s *Stats) Add(x float64) {
	s.N++
	s.SumX += x
	s.SumX2 += x * x
}

// Remove only decrements the count. The sums are left as they are.
func (s *Stats) Remove() {
	if s.N > 0 {
		s.N--
	}
}

func (s *Stats) Reset() {
	*s = Stats{}
}

func (s Stats) Mean() (float64, bool) {
	if s.N <= 0 {
		return 0, false
	}
	return s.SumX / float64(s.N), true
}

// StdDev is the sample standard deviation, NaN for fewer than two samples.
func (s Stats) StdDev() float64 {
	if s.N <= 1 {
		return math.NaN()
	}
	n := float64(s.N)
	mean := s.SumX / n
	variance := (s.SumX2 - n*mean*mean) / (n - 1)
	if variance < 0 {
		variance = 0
	}
	return math.Sqrt(variance)
}
