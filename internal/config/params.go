// Package config provides the numeric parameter builder consumed by
// StaticWorld, the Classifier, and the Raytracer (spec.md §6).
package config

import (
	"fmt"
	"math"
)

// Params collects the construction-time numeric parameters shared by the
// propagation core. All fields have documented defaults; zero-value Params
// is invalid; start from DefaultParams and check changes with Validate.
type Params struct {
	LaneWidth  float64 // road half-width unit, metres (default: 3.5)
	Wavelength float64 // carrier wavelength lambda, metres (default: 0.125, ~2.4GHz)

	TransmitPower float64 // Pt, mW (default: 100)
	SystemLoss    float64 // L, unitless >= 1 (default: 1)
	Sensitivity   float64 // receiver sensitivity, mW (default: 1e-9)

	LossPerReflection float64 // rho in (0,1], per-bounce amplitude loss (default: 0.25)

	GridSize float64 // shared bucket/grid cell side, metres (default: 200)

	RaytraceReuseDistance float64 // re-use a cached trace while tx moves less than this (default: 5)
	RayCount              int     // rays per Raytracer instance (default: 360)
	WorkerCount           int     // ray-tracing worker goroutines (default: 4)

	AntennaGain float64 // receiver antenna gain used by Raytracer.ComputeK (default: 1)
}

// DefaultParams returns the parameter set used by the reference scenarios in
// spec.md §8.
func DefaultParams() Params {
	return Params{
		LaneWidth:             3.5,
		Wavelength:            0.125,
		TransmitPower:         100,
		SystemLoss:            1,
		Sensitivity:           1e-9,
		LossPerReflection:     0.25,
		GridSize:              200,
		RaytraceReuseDistance: 5,
		RayCount:              360,
		WorkerCount:           4,
		AntennaGain:           1,
	}
}

// Validate checks the invariants every downstream formula assumes: positive
// lengths, rho in (0,1], at least one worker.
func (p Params) Validate() error {
	switch {
	case p.LaneWidth <= 0:
		return fmt.Errorf("config: LaneWidth must be positive, got %v", p.LaneWidth)
	case p.Wavelength <= 0:
		return fmt.Errorf("config: Wavelength must be positive, got %v", p.Wavelength)
	case p.TransmitPower <= 0:
		return fmt.Errorf("config: TransmitPower must be positive, got %v", p.TransmitPower)
	case p.SystemLoss < 1:
		return fmt.Errorf("config: SystemLoss must be >= 1, got %v", p.SystemLoss)
	case p.Sensitivity <= 0:
		return fmt.Errorf("config: Sensitivity must be positive, got %v", p.Sensitivity)
	case p.LossPerReflection <= 0 || p.LossPerReflection > 1:
		return fmt.Errorf("config: LossPerReflection must be in (0,1], got %v", p.LossPerReflection)
	case p.GridSize <= 0:
		return fmt.Errorf("config: GridSize must be positive, got %v", p.GridSize)
	case p.RayCount <= 0:
		return fmt.Errorf("config: RayCount must be positive, got %v", p.RayCount)
	case p.WorkerCount <= 0:
		return fmt.Errorf("config: WorkerCount must be positive, got %v", p.WorkerCount)
	case p.AntennaGain <= 0:
		return fmt.Errorf("config: AntennaGain must be positive, got %v", p.AntennaGain)
	}
	return nil
}

// Lambda2Over4PiSquared returns lambda^2 / (4*pi)^2, the constant factor
// reused by every closed-form pathloss term in spec.md §4.3.
func (p Params) Lambda2Over4PiSquared() float64 {
	return (p.Wavelength * p.Wavelength) / (4 * math.Pi * 4 * math.Pi)
}

// FreeSpaceRange returns the Friis free-space range: the distance at which
// received power equals the receiver sensitivity, (lambda/4pi)*sqrt(Pt/(L*sensitivity)).
func (p Params) FreeSpaceRange() float64 {
	return (p.Wavelength / (4 * math.Pi)) * math.Sqrt(p.TransmitPower/(p.SystemLoss*p.Sensitivity))
}
