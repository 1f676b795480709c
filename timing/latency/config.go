// Package latency holds the three timing parameters that govern the
// pipeline's variable-latency stages: multiply, the rest of EX, and the
// fetch/memory handshake shared by IF and MEM.
package latency

import (
	"encoding/json"
	"fmt"
	"os"
)

// Config holds the three positive cycle counts a run is configured with.
type Config struct {
	// Mul is the number of EX cycles a MUL instruction takes.
	Mul uint64 `json:"mul"`

	// Other is the number of EX cycles every other EX op (ADD, SUB, ADDI,
	// BEQ, the LW/SW address computation) takes.
	Other uint64 `json:"other"`

	// MemIF is the number of cycles IF takes to fetch and MEM takes to
	// access data memory. Both stages share this single parameter.
	MemIF uint64 `json:"mem_if"`
}

// DefaultConfig returns the conventional m=3, n=2, c=2 configuration used
// throughout the worked examples and tests.
func DefaultConfig() *Config {
	return &Config{
		Mul:   3,
		Other: 2,
		MemIF: 2,
	}
}

// LoadConfig loads a Config from a JSON file, starting from DefaultConfig
// so that a partial file only overrides the fields it mentions.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read latency config file: %w", err)
	}

	config := DefaultConfig()
	if err := json.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse latency config: %w", err)
	}

	return config, nil
}

// SaveConfig writes a Config to a JSON file.
func (c *Config) SaveConfig(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize latency config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write latency config file: %w", err)
	}

	return nil
}

// Validate checks that all three latencies are positive, per the
// requirement that m, n, c each be positive integers.
func (c *Config) Validate() error {
	if c.Mul == 0 {
		return fmt.Errorf("mul latency must be > 0")
	}
	if c.Other == 0 {
		return fmt.Errorf("other latency must be > 0")
	}
	if c.MemIF == 0 {
		return fmt.Errorf("mem_if latency must be > 0")
	}
	return nil
}

// Clone returns a deep copy of the Config.
func (c *Config) Clone() *Config {
	return &Config{
		Mul:   c.Mul,
		Other: c.Other,
		MemIF: c.MemIF,
	}
}
