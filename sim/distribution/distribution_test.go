package distribution

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/stat"
)

func TestFromMeanCV_ZeroCV_ReturnsMeanExactly(t *testing.T) {
	// GIVEN a degenerate Gamma built from a mean
	g := FromMeanCV(2.5, 0)

	// WHEN sampled repeatedly
	// THEN every sample equals the mean bit for bit
	for i := 0; i < 100; i++ {
		assert.Equal(t, 2.5, g.Sample())
	}
}

func TestFromRateCV_ZeroCV_ReturnsInverseRateExactly(t *testing.T) {
	// GIVEN a degenerate Gamma built from a rate
	g := FromRateCV(4, 0)

	// THEN every sample equals 1/rate
	for i := 0; i < 100; i++ {
		assert.Equal(t, 0.25, g.Sample())
	}
}

func TestFromMeanCV_BelowThreshold_IsDegenerate(t *testing.T) {
	g := FromMeanCV(3, 1e-60)
	assert.Equal(t, 3.0, g.Sample())
}

func TestFromMeanCV_ZeroMean_SamplesZero(t *testing.T) {
	// GIVEN a zero mean with positive CV, which has no valid Gamma scale
	g := FromMeanCV(0, 1).WithSource(rand.NewPCG(1, 2))

	// THEN it collapses to a zero delay instead of sampling with an infinite rate
	for i := 0; i < 100; i++ {
		assert.Equal(t, 0.0, g.Sample())
	}
	assert.Equal(t, 1.0, g.CV())
}

func TestGamma_SampleMomentsMatchParameters(t *testing.T) {
	tests := []struct {
		name string
		mean float64
		cv   float64
	}{
		{"exponential", 1.0, 1.0},
		{"low variance", 10.0, 0.25},
		{"bursty", 0.1, 2.0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// GIVEN a seeded Gamma
			g := FromMeanCV(tt.mean, tt.cv).WithSource(rand.NewPCG(42, 7))

			// WHEN drawing many samples
			samples := make([]float64, 200000)
			for i := range samples {
				samples[i] = g.Sample()
				require.GreaterOrEqual(t, samples[i], 0.0)
			}

			// THEN the sample mean and CV approach the parameters
			mean, std := stat.MeanStdDev(samples, nil)
			assert.InEpsilon(t, tt.mean, mean, 0.05)
			assert.InEpsilon(t, tt.cv, std/mean, 0.05)
		})
	}
}

func TestGamma_SameSource_SameSequence(t *testing.T) {
	a := FromRateCV(10, 1).WithSource(rand.NewPCG(1, 2))
	b := FromRateCV(10, 1).WithSource(rand.NewPCG(1, 2))
	for i := 0; i < 20; i++ {
		assert.Equal(t, a.Sample(), b.Sample())
	}
}

func TestConstant_Sample(t *testing.T) {
	assert.Equal(t, 1.5, Constant(1.5).Sample())
}

func TestSpec_Validate(t *testing.T) {
	nan := math.NaN()
	neg := -1.0
	zero := 0.0
	tests := []struct {
		name    string
		spec    Spec
		wantErr string
	}{
		{"mean ok", MeanCV(1, 1), ""},
		{"rate ok", RateCV(10, 0), ""},
		{"zero mean ok", MeanCV(0, 0), ""},
		{"neither", Spec{CV: 1}, "one of mean or rate"},
		{"both", Spec{Mean: &zero, Rate: &zero}, "mutually exclusive"},
		{"negative mean", Spec{Mean: &neg}, "mean must be non-negative"},
		{"zero rate", Spec{Rate: &zero}, "rate must be positive"},
		{"nan mean", Spec{Mean: &nan}, "finite"},
		{"negative cv", MeanCV(1, -0.5), "cv must be non-negative"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.spec.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestFromSpec(t *testing.T) {
	// GIVEN degenerate specs
	byMean, err := FromSpec(MeanCV(2, 0), nil)
	require.NoError(t, err)
	byRate, err := FromSpec(RateCV(0.5, 0), rand.NewPCG(3, 4))
	require.NoError(t, err)

	// THEN both sample their mean
	assert.Equal(t, 2.0, byMean.Sample())
	assert.Equal(t, 2.0, byRate.Sample())

	// AND zero-mean transit with variance collapses to zero delay
	zero, err := FromSpec(MeanCV(0, 1), nil)
	require.NoError(t, err)
	assert.Equal(t, 0.0, zero.Sample())

	// AND invalid specs are rejected
	_, err = FromSpec(Spec{}, nil)
	assert.Error(t, err)
}

func TestSpec_MeanValue(t *testing.T) {
	assert.Equal(t, 0.1, RateCV(10, 1).MeanValue())
	assert.Equal(t, 3.0, MeanCV(3, 1).MeanValue())
}
