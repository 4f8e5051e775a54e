/*
Package factory provides JSON to Go configuration conversion.

PURPOSE:
  Converts JSON configuration documents into leave.AllowanceTable and
  WorkSchedule values. This enables policy configuration without code
  changes - HR can adjust the legal allowance table in JSON, and the
  factory produces the proper Go values.

JSON SCHEMA:
  {
    "schedule": "six_day_half_saturday",
    "allowances": {
      "wedding_self": 3,
      "wedding_child": 1,
      "bereavement_close": 3,
      "bereavement_distant": 1
    }
  }

KEY FEATURES:
  - Validates leave types and schedule names against the enums
  - Missing sections fall back to the built-in defaults
  - Rejects negative allowance values

USAGE:
  cfg, err := factory.ParseConfig(jsonString)
  svc := &leave.Service{..., Allowances: cfg.Allowances}

SEE ALSO:
  - leave/allowance.go: The table the factory produces
  - cmd/server/main.go: Loads the config file at startup
*/
package factory

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/warp/leave-engine/leave"
)

// =============================================================================
// JSON SCHEMA TYPES
// =============================================================================

// ConfigJSON is the JSON representation of engine configuration.
type ConfigJSON struct {
	Schedule   string             `json:"schedule,omitempty"`
	Allowances map[string]float64 `json:"allowances,omitempty"`
}

// Config is the parsed, validated configuration.
type Config struct {
	Schedule   leave.WorkSchedule
	Allowances leave.AllowanceTable
}

// =============================================================================
// PARSING
// =============================================================================

// ParseConfig parses and validates a JSON configuration document.
// Absent sections fall back to defaults (five-day schedule, statutory
// allowance table).
func ParseConfig(jsonStr string) (*Config, error) {
	var raw ConfigJSON
	if err := json.Unmarshal([]byte(jsonStr), &raw); err != nil {
		return nil, fmt.Errorf("invalid config JSON: %w", err)
	}

	cfg := &Config{
		Schedule:   leave.ScheduleFiveDay,
		Allowances: leave.DefaultAllowances(),
	}

	if raw.Schedule != "" {
		ws, ok := leave.ParseWorkSchedule(raw.Schedule)
		if !ok {
			return nil, fmt.Errorf("%w: %q", leave.ErrUnknownSchedule, raw.Schedule)
		}
		cfg.Schedule = ws
	}

	if raw.Allowances != nil {
		table := make(leave.AllowanceTable, len(raw.Allowances))
		for name, days := range raw.Allowances {
			lt, ok := leave.ParseLeaveType(name)
			if !ok {
				return nil, fmt.Errorf("%w: %q", leave.ErrUnknownLeaveType, name)
			}
			if days < 0 {
				return nil, fmt.Errorf("allowance for %q must not be negative", name)
			}
			table[lt] = leave.NewDays(days)
		}
		cfg.Allowances = table
	}

	return cfg, nil
}

// LoadConfigFile reads and parses a configuration file. An empty path
// returns the defaults.
func LoadConfigFile(path string) (*Config, error) {
	if path == "" {
		return &Config{
			Schedule:   leave.ScheduleFiveDay,
			Allowances: leave.DefaultAllowances(),
		}, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return ParseConfig(string(data))
}
