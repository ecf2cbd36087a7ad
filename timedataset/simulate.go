package timedataset

import (
	"math"
	"math/rand/v2"
	"time"

	"gonum.org/v1/gonum/floats"
)

// GenerateMonthlyT returns n month-start timestamps beginning at the month of start
func GenerateMonthlyT(n int, start time.Time) []time.Time {
	t := make([]time.Time, 0, n)
	ct := MonthStart(start)
	for i := 0; i < n; i++ {
		t = append(t, ct.AddDate(0, i, 0))
	}
	return t
}

type Series []float64

func (s Series) Add(src Series) Series {
	floats.Add(s, src)
	return s
}

func (s Series) Scale(c float64) Series {
	floats.Scale(c, s)
	return s
}

// Mul multiplies element-wise, used to build multiplicative seasonal series
func (s Series) Mul(src Series) Series {
	floats.Mul(s, src)
	return s
}

func (s Series) SetConst(idx int, val float64) Series {
	if idx >= 0 && idx < len(s) {
		s[idx] = val
	}
	return s
}

func GenerateConstY(n int, val float64) Series {
	y := make([]float64, 0, n)
	for i := 0; i < n; i++ {
		y = append(y, val)
	}
	return Series(y)
}

// GenerateWaveY generates a sine wave with the given amplitude repeating every period
// samples, shifted by offset samples.
func GenerateWaveY(n int, amp float64, period int, offset float64) Series {
	y := make([]float64, 0, n)
	for i := 0; i < n; i++ {
		val := amp * math.Sin(2.0*math.Pi/float64(period)*(float64(i)+offset))
		y = append(y, val)
	}
	return Series(y)
}

// GenerateLinearY generates a straight line starting at 0 rising by slope per sample
func GenerateLinearY(n int, slope float64) Series {
	y := make([]float64, 0, n)
	for i := 0; i < n; i++ {
		y = append(y, slope*float64(i))
	}
	return Series(y)
}

// GenerateGrowthY generates a compounding series starting at 1 growing by rate per sample
func GenerateGrowthY(n int, rate float64) Series {
	y := make([]float64, 0, n)
	for i := 0; i < n; i++ {
		y = append(y, math.Pow(1.0+rate, float64(i)))
	}
	return Series(y)
}

// GenerateNoise generates gaussian noise with the given standard deviation. A seeded source
// keeps generated fixtures reproducible.
func GenerateNoise(n int, stddev float64, seed uint64) Series {
	r := rand.New(rand.NewPCG(seed, seed))
	y := make([]float64, 0, n)
	for i := 0; i < n; i++ {
		y = append(y, r.NormFloat64()*stddev)
	}
	return Series(y)
}
