// config.go
//
// Runtime configuration for the ingestion pipeline. Compile-time defaults
// live in constants; a JSON file can override them per deployment. The
// file is decoded with sonnet, the same codec report uses for snapshot
// export.

package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/sugawarayuuta/sonnet"

	"main/constants"
	"main/utils"
)

// Config is the full runtime shape of one pipeline.
type Config struct {
	RingCapacity int   `json:"ring_capacity"`
	QueueNodes   int   `json:"queue_nodes"`
	PoolSlots    int   `json:"pool_slots"`
	UseHugePages bool  `json:"use_huge_pages"`
	Producers    int   `json:"producers"`
	ProducerCPUs []int `json:"producer_cpus"`
	ConsumerCPUs []int `json:"consumer_cpus"`
	RealtimePrio int   `json:"realtime_priority"`

	LowWatermark  float64 `json:"low_watermark"`
	HighWatermark float64 `json:"high_watermark"`

	StatsIntervalMS int    `json:"stats_interval_ms"`
	RunSeconds      int    `json:"run_seconds"`
	ReportDB        string `json:"report_db"`
}

// Default returns the compile-time configuration.
func Default() Config {
	return Config{
		RingCapacity:    constants.DefaultRingCapacity,
		QueueNodes:      constants.DefaultQueueNodes,
		PoolSlots:       constants.DefaultPoolSlots,
		Producers:       1,
		RealtimePrio:    0, // off unless a deployment asks for it
		LowWatermark:    constants.LowWatermarkFrac,
		HighWatermark:   constants.HighWatermarkFrac,
		StatsIntervalMS: int(constants.StatsInterval / time.Millisecond),
		RunSeconds:      constants.DefaultRunSeconds,
	}
}

// Load reads path and overlays it onto the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	raw, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := sonnet.Unmarshal(raw, &cfg); err != nil {
		return cfg, fmt.Errorf("config: decode %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// LoadOrDefault returns Load(path) when the file exists, defaults when it
// does not. A present-but-broken file is still an error.
func LoadOrDefault(path string) (Config, error) {
	if _, err := os.Stat(path); err != nil {
		return Default(), nil
	}
	return Load(path)
}

// Validate rejects shapes the core cannot honour.
func (c *Config) Validate() error {
	if !utils.IsPowerOfTwo(c.RingCapacity) {
		return errors.New("config: ring_capacity must be a power of two")
	}
	if c.QueueNodes < 2 {
		return errors.New("config: queue_nodes must hold a sentinel plus one node")
	}
	if c.PoolSlots <= 0 {
		return errors.New("config: pool_slots must be positive")
	}
	if c.Producers <= 0 {
		return errors.New("config: producers must be positive")
	}
	if c.RealtimePrio != 0 && (c.RealtimePrio < 1 || c.RealtimePrio > 99) {
		return errors.New("config: realtime_priority must be 0 or in [1,99]")
	}
	if c.LowWatermark < 0 || c.HighWatermark > 1 || c.LowWatermark > c.HighWatermark {
		return errors.New("config: watermarks must satisfy 0 <= low <= high <= 1")
	}
	if c.StatsIntervalMS <= 0 {
		return errors.New("config: stats_interval_ms must be positive")
	}
	if c.RunSeconds <= 0 {
		return errors.New("config: run_seconds must be positive")
	}
	return nil
}

// StatsInterval returns the printer cadence as a duration.
func (c *Config) StatsInterval() time.Duration {
	return time.Duration(c.StatsIntervalMS) * time.Millisecond
}

// ProducerCPU maps producer i to a core, -1 when unassigned.
func (c *Config) ProducerCPU(i int) int {
	if i < len(c.ProducerCPUs) {
		return c.ProducerCPUs[i]
	}
	return -1
}

// ConsumerCPU maps consumer i to a core, -1 when unassigned.
func (c *Config) ConsumerCPU(i int) int {
	if i < len(c.ConsumerCPUs) {
		return c.ConsumerCPUs[i]
	}
	return -1
}
