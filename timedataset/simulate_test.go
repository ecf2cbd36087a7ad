package timedataset

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateMonthlyT(t *testing.T) {
	numPnts := 14
	res := GenerateMonthlyT(numPnts, time.Date(1970, 1, 15, 3, 0, 0, 0, time.UTC))
	assert.Len(t, res, numPnts)

	assert.Equal(t, time.Date(1970, 1, 1, 0, 0, 0, 0, time.UTC), res[0])
	assert.Equal(t, time.Date(1971, 2, 1, 0, 0, 0, 0, time.UTC), res[numPnts-1])

	_, err := NewMonthlyDataset(res, GenerateConstY(numPnts, 1))
	require.NoError(t, err)
}

func TestSeries(t *testing.T) {
	numPnts := 4
	s := GenerateConstY(numPnts, 1)

	res := s.Add(GenerateConstY(numPnts, 2))
	require.Equal(t, Series([]float64{3, 3, 3, 3}), res)

	s.Add(GenerateLinearY(numPnts, 2))
	assert.Equal(t, Series([]float64{3, 5, 7, 9}), s)

	s.Scale(0.5)
	assert.Equal(t, Series([]float64{1.5, 2.5, 3.5, 4.5}), s)

	s.Mul(GenerateConstY(numPnts, 2)).SetConst(0, 0)
	assert.Equal(t, Series([]float64{0, 5, 7, 9}), s)
}

func TestGenerateWaveY(t *testing.T) {
	y := GenerateWaveY(24, 10, 12, 0)
	require.Len(t, y, 24)
	assert.InDelta(t, 0.0, y[0], 1e-9)
	assert.InDelta(t, 10.0, y[3], 1e-9)
	assert.InDelta(t, -10.0, y[9], 1e-9)
	for i := 0; i < 12; i++ {
		assert.InDelta(t, y[i], y[i+12], 1e-9)
	}
}

func TestGenerateGrowthY(t *testing.T) {
	y := GenerateGrowthY(3, 0.1)
	assert.InDeltaSlice(t, []float64{1, 1.1, 1.21}, []float64(y), 1e-12)
}

func TestGenerateNoise(t *testing.T) {
	a := GenerateNoise(10, 1.0, 42)
	b := GenerateNoise(10, 1.0, 42)
	assert.Equal(t, a, b)
}
