// Package distribution provides the delay distributions sampled by the
// simulation's stages: a Gamma parameterized by mean (or rate) and coefficient
// of variation, and a constant.
package distribution

import (
	"fmt"
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/distuv"
)

// DegenerateCV is the coefficient of variation below which a Gamma collapses
// to a constant equal to its mean.
const DegenerateCV = 1e-50

// Sampler generates non-negative delays.
type Sampler interface {
	Sample() float64
}

// Gamma samples Gamma-distributed delays with a given mean and CV.
// shape = 1/CV², scale = mean/shape.
type Gamma struct {
	mean float64
	cv   float64
	dist distuv.Gamma
}

// FromMeanCV creates a Gamma with the given mean and coefficient of variation.
// A zero mean has no valid scale and always samples 0.
func FromMeanCV(mean, cv float64) *Gamma {
	g := &Gamma{mean: mean, cv: cv}
	if !g.degenerate() {
		shape := 1 / (cv * cv)
		scale := mean / shape
		// distuv parameterizes by rate
		g.dist = distuv.Gamma{Alpha: shape, Beta: 1 / scale}
	}
	return g
}

// FromRateCV creates a Gamma with mean 1/rate and the given coefficient of variation.
func FromRateCV(rate, cv float64) *Gamma {
	return FromMeanCV(1/rate, cv)
}

// WithSource draws samples from src instead of the global generator.
func (g *Gamma) WithSource(src rand.Source) *Gamma {
	g.dist.Src = src
	return g
}

// Sample returns the mean exactly when CV or the mean is degenerate.
func (g *Gamma) Sample() float64 {
	if g.degenerate() {
		return g.mean
	}
	return g.dist.Rand()
}

func (g *Gamma) degenerate() bool {
	return g.cv < DegenerateCV || g.mean == 0
}

func (g *Gamma) Mean() float64 { return g.mean }
func (g *Gamma) CV() float64   { return g.cv }

func (g *Gamma) String() string {
	return fmt.Sprintf("gamma(mean=%g, cv=%g)", g.mean, g.cv)
}

// Constant always returns the same delay.
type Constant float64

func (c Constant) Sample() float64 {
	return float64(c)
}

// Spec parameterizes a delay distribution in configuration.
// Exactly one of Mean or Rate must be set.
type Spec struct {
	Mean *float64 `yaml:"mean,omitempty"`
	Rate *float64 `yaml:"rate,omitempty"`
	CV   float64  `yaml:"cv"`
}

// MeanCV builds a Spec from a mean.
func MeanCV(mean, cv float64) Spec {
	return Spec{Mean: &mean, CV: cv}
}

// RateCV builds a Spec from a rate.
func RateCV(rate, cv float64) Spec {
	return Spec{Rate: &rate, CV: cv}
}

// Validate checks that the spec describes a usable distribution.
func (s Spec) Validate() error {
	switch {
	case s.Mean == nil && s.Rate == nil:
		return fmt.Errorf("one of mean or rate is required")
	case s.Mean != nil && s.Rate != nil:
		return fmt.Errorf("mean and rate are mutually exclusive")
	}
	if s.Mean != nil {
		if err := validateFinite("mean", *s.Mean); err != nil {
			return err
		}
		if *s.Mean < 0 {
			return fmt.Errorf("mean must be non-negative, got %f", *s.Mean)
		}
	}
	if s.Rate != nil {
		if err := validateFinite("rate", *s.Rate); err != nil {
			return err
		}
		if *s.Rate <= 0 {
			return fmt.Errorf("rate must be positive, got %f", *s.Rate)
		}
	}
	if err := validateFinite("cv", s.CV); err != nil {
		return err
	}
	if s.CV < 0 {
		return fmt.Errorf("cv must be non-negative, got %f", s.CV)
	}
	return nil
}

// MeanValue returns the mean delay described by the spec.
func (s Spec) MeanValue() float64 {
	if s.Rate != nil {
		return 1 / *s.Rate
	}
	if s.Mean != nil {
		return *s.Mean
	}
	return 0
}

func (s Spec) String() string {
	if s.Rate != nil {
		return fmt.Sprintf("rate=%g cv=%g", *s.Rate, s.CV)
	}
	return fmt.Sprintf("mean=%g cv=%g", s.MeanValue(), s.CV)
}

// FromSpec creates a Sampler from a validated Spec. A nil src uses the global generator.
func FromSpec(spec Spec, src rand.Source) (Sampler, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	var g *Gamma
	if spec.Rate != nil {
		g = FromRateCV(*spec.Rate, spec.CV)
	} else {
		g = FromMeanCV(*spec.Mean, spec.CV)
	}
	if src != nil {
		g.WithSource(src)
	}
	return g, nil
}

func validateFinite(name string, val float64) error {
	if math.IsNaN(val) || math.IsInf(val, 0) {
		return fmt.Errorf("%s must be a finite number, got %f", name, val)
	}
	return nil
}
