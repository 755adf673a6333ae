package sim

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidConfig is wrapped by every configuration error so callers can
// distinguish bad input from runtime failures with errors.Is.
var ErrInvalidConfig = errors.New("invalid configuration")

// WorkloadConfig groups the parameters of the synthetic trace generator.
type WorkloadConfig struct {
	ProcessCount             int     `yaml:"process_count"`
	VirtualPagesPerProcess   int     `yaml:"virtual_pages_per_process"`
	WorkingSetSize           int     `yaml:"working_set_size"`
	WorkingSetChangeInterval int     `yaml:"working_set_change_interval"` // accesses between working-set rotations
	TotalCPUAccesses         int     `yaml:"total_cpu_accesses"`
	LocalityProbability      float64 `yaml:"locality_probability"`
	WriteProbability         float64 `yaml:"write_probability"`
	MinLifetimeFraction      float64 `yaml:"min_lifetime_fraction"`
	MaxLifetimeFraction      float64 `yaml:"max_lifetime_fraction"`
	Seed                     int64   `yaml:"seed"`
}

// DefaultWorkloadConfig returns the workload used by the CLI when no flags
// or workload file override it.
func DefaultWorkloadConfig() WorkloadConfig {
	return WorkloadConfig{
		ProcessCount:             4,
		VirtualPagesPerProcess:   64,
		WorkingSetSize:           8,
		WorkingSetChangeInterval: 200,
		TotalCPUAccesses:         20000,
		LocalityProbability:      0.9,
		WriteProbability:         0.3,
		MinLifetimeFraction:      0.7,
		MaxLifetimeFraction:      1.0,
		Seed:                     42,
	}
}

// Validate checks every field. Out-of-range values are rejected, never clamped.
func (c WorkloadConfig) Validate() error {
	if c.ProcessCount <= 0 {
		return fmt.Errorf("%w: process_count must be > 0, got %d", ErrInvalidConfig, c.ProcessCount)
	}
	if c.WorkingSetSize <= 0 {
		return fmt.Errorf("%w: working_set_size must be > 0, got %d", ErrInvalidConfig, c.WorkingSetSize)
	}
	if c.VirtualPagesPerProcess < c.WorkingSetSize {
		return fmt.Errorf("%w: virtual_pages_per_process (%d) must be >= working_set_size (%d)",
			ErrInvalidConfig, c.VirtualPagesPerProcess, c.WorkingSetSize)
	}
	if c.WorkingSetChangeInterval <= 0 {
		return fmt.Errorf("%w: working_set_change_interval must be > 0, got %d", ErrInvalidConfig, c.WorkingSetChangeInterval)
	}
	if c.TotalCPUAccesses <= 0 {
		return fmt.Errorf("%w: total_cpu_accesses must be > 0, got %d", ErrInvalidConfig, c.TotalCPUAccesses)
	}
	if err := validateUnit("locality_probability", c.LocalityProbability); err != nil {
		return err
	}
	if err := validateUnit("write_probability", c.WriteProbability); err != nil {
		return err
	}
	if err := validateUnit("min_lifetime_fraction", c.MinLifetimeFraction); err != nil {
		return err
	}
	if err := validateUnit("max_lifetime_fraction", c.MaxLifetimeFraction); err != nil {
		return err
	}
	if c.MinLifetimeFraction > c.MaxLifetimeFraction {
		return fmt.Errorf("%w: min_lifetime_fraction (%g) must be <= max_lifetime_fraction (%g)",
			ErrInvalidConfig, c.MinLifetimeFraction, c.MaxLifetimeFraction)
	}
	return nil
}

// SimulationConfig groups the paging kernel parameters.
type SimulationConfig struct {
	PhysicalFrames int    // size of the frame table (must be > 0)
	Algorithm      string // replacement policy name, see policy.New
}

// Validate checks the frame count. The algorithm name is resolved, and
// rejected if unknown, by the policy factory.
func (c SimulationConfig) Validate() error {
	if c.PhysicalFrames <= 0 {
		return fmt.Errorf("%w: physical frame count must be > 0, got %d", ErrInvalidConfig, c.PhysicalFrames)
	}
	return nil
}

func validateUnit(name string, val float64) error {
	if math.IsNaN(val) || val < 0 || val > 1 {
		return fmt.Errorf("%w: %s must be in [0,1], got %g", ErrInvalidConfig, name, val)
	}
	return nil
}
