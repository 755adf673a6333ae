package workload

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/paging-sim/paging-sim/sim"
)

// LoadWorkloadConfig reads a YAML workload file. Keys absent from the file
// keep their sim.DefaultWorkloadConfig values.
// Uses strict parsing: unrecognized keys (typos) are rejected.
func LoadWorkloadConfig(path string) (sim.WorkloadConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return sim.WorkloadConfig{}, fmt.Errorf("reading workload config: %w", err)
	}
	return ParseWorkloadConfig(data)
}

// ParseWorkloadConfig decodes and validates a YAML workload document.
func ParseWorkloadConfig(data []byte) (sim.WorkloadConfig, error) {
	cfg := sim.DefaultWorkloadConfig()
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return sim.WorkloadConfig{}, fmt.Errorf("parsing workload config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return sim.WorkloadConfig{}, err
	}
	return cfg, nil
}
