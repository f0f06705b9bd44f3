package contract

import (
	"fmt"
	"maps"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/huangsam/awrlens/schema"
	"go.uber.org/multierr"
)

// Default values for configuration.
const (
	DefaultPrecision = 1
	DefaultMaxScore  = 8.0
	DefaultWidth     = 0 // auto-detect
)

// ProfileConfig holds profiling settings.
type ProfileConfig struct {
	Enabled bool
	Prefix  string
}

// ThresholdsRawInput holds per-target maximum scores from the YAML config file.
type ThresholdsRawInput struct {
	RDSOracle        *float64 `mapstructure:"rds-oracle"`
	RDSPostgreSQL    *float64 `mapstructure:"rds-postgresql"`
	AuroraPostgreSQL *float64 `mapstructure:"aurora-postgresql"`
	RDSMySQL         *float64 `mapstructure:"rds-mysql"`
	AuroraMySQL      *float64 `mapstructure:"aurora-mysql"`
}

// Config holds the runtime configuration for the analysis.
// This struct remains the "final, validated" config.
type Config struct {
	ReportPath string
	Targets    []schema.TargetDatabase // never empty after validation
	Precision  int
	Output     schema.OutputMode
	OutputFile string
	Width      int // Terminal width override (0 = auto-detect)
	Verbose    bool

	// Tiers is the ascending instance sizing table; nil means the built-in table
	Tiers []schema.InstanceTier

	// MaxScores is the check gate per target
	MaxScores map[schema.TargetDatabase]float64

	UseEmojis bool // Enable emojis in output headers
	UseColors bool // Enable colored labels in table output
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config file).
// Viper unmarshals into this struct.
type ConfigRawInput struct {
	// This is set manually from positional args, so no tag
	ReportPathStr string

	// --- Fields from rootCmd.PersistentFlags() ---
	OutputFile string `mapstructure:"output-file"`
	Precision  int    `mapstructure:"precision"`
	Output     string `mapstructure:"output"`
	Width      int    `mapstructure:"width"`
	Verbose    bool   `mapstructure:"verbose"`
	Emoji      string `mapstructure:"emoji"`
	Color      string `mapstructure:"color"`

	// --- Fields from analyzeCmd and checkCmd flags ---
	Targets       string `mapstructure:"targets"`
	ThresholdsStr string `mapstructure:"thresholds-override"`

	// --- Sizing table from config file ---
	Tiers []schema.InstanceTier `mapstructure:"tiers"`

	// --- Check thresholds from config file ---
	Thresholds ThresholdsRawInput `mapstructure:"thresholds"`
}

// Clone returns a deep copy of the Config struct.
func (c *Config) Clone() *Config {
	clone := *c
	if c.Targets != nil {
		clone.Targets = make([]schema.TargetDatabase, len(c.Targets))
		copy(clone.Targets, c.Targets)
	}
	if c.Tiers != nil {
		clone.Tiers = make([]schema.InstanceTier, len(c.Tiers))
		copy(clone.Tiers, c.Tiers)
	}
	if c.MaxScores != nil {
		clone.MaxScores = make(map[schema.TargetDatabase]float64, len(c.MaxScores))
		maps.Copy(clone.MaxScores, c.MaxScores)
	}
	return &clone
}

// ProcessAndValidate performs all parsing and validation on the raw inputs
// and updates the final Config struct. Every problem found is reported.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput) error {
	var errs error
	errs = multierr.Append(errs, validateSimpleInputs(cfg, input))
	errs = multierr.Append(errs, processTargets(cfg, input))
	errs = multierr.Append(errs, processTiers(cfg, input))
	errs = multierr.Append(errs, processMaxScores(cfg, input))
	errs = multierr.Append(errs, resolveReportPath(cfg, input))
	return errs
}

// validateSimpleInputs processes and validates all scalar fields.
func validateSimpleInputs(cfg *Config, input *ConfigRawInput) error {
	var errs error
	cfg.OutputFile = input.OutputFile
	cfg.Verbose = input.Verbose

	emojis, err := ParseBoolString(input.Emoji)
	if err != nil {
		errs = multierr.Append(errs, fmt.Errorf("invalid --emoji value: %w", err))
	}
	cfg.UseEmojis = emojis

	colors, err := ParseBoolString(input.Color)
	if err != nil {
		errs = multierr.Append(errs, fmt.Errorf("invalid --color value: %w", err))
	}
	cfg.UseColors = colors

	if input.Precision < 1 || input.Precision > 2 {
		errs = multierr.Append(errs, fmt.Errorf("precision must be 1 or 2 (received %d)", input.Precision))
	}
	cfg.Precision = input.Precision

	cfg.Output = schema.OutputMode(strings.ToLower(input.Output))
	if _, ok := schema.ValidOutputModes[cfg.Output]; !ok {
		errs = multierr.Append(errs, fmt.Errorf("invalid output format '%s'. must be text, json, yaml, csv", input.Output))
	}

	if input.Width < 0 {
		errs = multierr.Append(errs, fmt.Errorf("width cannot be negative (received %d)", input.Width))
	}
	cfg.Width = input.Width
	return errs
}

// processTargets parses the comma-separated target list. Empty or "all" selects every target.
func processTargets(cfg *Config, input *ConfigRawInput) error {
	targets, err := ParseTargets(input.Targets)
	if err != nil {
		return err
	}
	cfg.Targets = targets
	return nil
}

// ParseTargets parses a comma-separated list of target identifiers.
// Duplicates are dropped; an empty list or "all" yields every target.
func ParseTargets(s string) ([]schema.TargetDatabase, error) {
	var out []schema.TargetDatabase
	seen := make(map[schema.TargetDatabase]bool)
	for part := range strings.SplitSeq(s, ",") {
		name := strings.ToLower(strings.TrimSpace(part))
		if name == "" {
			continue
		}
		if name == "all" {
			return append([]schema.TargetDatabase(nil), schema.AllTargets...), nil
		}
		t := schema.TargetDatabase(name)
		if _, ok := schema.ValidTargets[t]; !ok {
			return nil, fmt.Errorf("invalid target '%s'. must be one of %s", part, targetList())
		}
		if !seen[t] {
			seen[t] = true
			out = append(out, t)
		}
	}
	if len(out) == 0 {
		return append([]schema.TargetDatabase(nil), schema.AllTargets...), nil
	}
	return out, nil
}

func targetList() string {
	names := make([]string, len(schema.AllTargets))
	for i, t := range schema.AllTargets {
		names[i] = string(t)
	}
	return strings.Join(names, ", ")
}

// processTiers validates the custom sizing table and sorts it ascending.
func processTiers(cfg *Config, input *ConfigRawInput) error {
	if len(input.Tiers) == 0 {
		cfg.Tiers = nil
		return nil
	}
	var errs error
	tiers := make([]schema.InstanceTier, len(input.Tiers))
	copy(tiers, input.Tiers)
	for i, t := range tiers {
		if strings.TrimSpace(t.Class) == "" {
			errs = multierr.Append(errs, fmt.Errorf("tier %d has no class", i))
		}
		if t.VCPU <= 0 || t.MemoryGB <= 0 {
			errs = multierr.Append(errs, fmt.Errorf("tier %q needs positive vcpu and memory_gb", t.Class))
		}
		if t.HourlyUSD != nil && *t.HourlyUSD < 0 {
			errs = multierr.Append(errs, fmt.Errorf("tier %q has a negative hourly rate", t.Class))
		}
	}
	sort.SliceStable(tiers, func(i, j int) bool {
		if tiers[i].VCPU != tiers[j].VCPU {
			return tiers[i].VCPU < tiers[j].VCPU
		}
		return tiers[i].MemoryGB < tiers[j].MemoryGB
	})
	cfg.Tiers = tiers
	return errs
}

// processMaxScores builds the check gate from defaults, the config file and
// the --thresholds-override flag, in increasing precedence.
func processMaxScores(cfg *Config, input *ConfigRawInput) error {
	scores := make(map[schema.TargetDatabase]float64, len(schema.AllTargets))
	for _, t := range schema.AllTargets {
		scores[t] = DefaultMaxScore
	}
	fromFile := map[schema.TargetDatabase]*float64{
		schema.RDSOracle:        input.Thresholds.RDSOracle,
		schema.RDSPostgreSQL:    input.Thresholds.RDSPostgreSQL,
		schema.AuroraPostgreSQL: input.Thresholds.AuroraPostgreSQL,
		schema.RDSMySQL:         input.Thresholds.RDSMySQL,
		schema.AuroraMySQL:      input.Thresholds.AuroraMySQL,
	}
	for t, v := range fromFile {
		if v != nil {
			scores[t] = *v
		}
	}
	if input.ThresholdsStr != "" {
		parsed, err := parseThresholdsString(input.ThresholdsStr)
		if err != nil {
			return fmt.Errorf("invalid --thresholds-override format: %w", err)
		}
		maps.Copy(scores, parsed)
	}

	var errs error
	for _, t := range schema.AllTargets {
		if v := scores[t]; v < 0 || v > 10 {
			errs = multierr.Append(errs, fmt.Errorf("max score for %s must be between 0 and 10 (received %.2f)", t, v))
		}
	}
	cfg.MaxScores = scores
	return errs
}

// parseThresholdsString parses a string like "rds-oracle:4,rds-postgresql:6".
func parseThresholdsString(s string) (map[schema.TargetDatabase]float64, error) {
	thresholds := make(map[schema.TargetDatabase]float64)
	for part := range strings.SplitSeq(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		key, value, ok := strings.Cut(part, ":")
		if !ok {
			return nil, fmt.Errorf("invalid threshold format '%s', expected 'target:value'", part)
		}
		target := schema.TargetDatabase(strings.ToLower(strings.TrimSpace(key)))
		if _, valid := schema.ValidTargets[target]; !valid {
			return nil, fmt.Errorf("invalid target '%s', must be one of %s", key, targetList())
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid threshold value '%s' for %s: %w", value, target, err)
		}
		thresholds[target] = v
	}
	return thresholds, nil
}

// ProcessProfilingConfig handles the profiling flag and sets up profiling configuration.
func ProcessProfilingConfig(profile *ProfileConfig, profilePrefix string) error {
	if profilePrefix != "" {
		profile.Enabled = true
		profile.Prefix = profilePrefix
	}
	return nil
}

// resolveReportPath makes the positional report path absolute. Existence is
// checked by the parser so that file errors keep their taxonomy.
func resolveReportPath(cfg *Config, input *ConfigRawInput) error {
	if input.ReportPathStr == "" {
		cfg.ReportPath = ""
		return nil
	}
	abs, err := filepath.Abs(input.ReportPathStr)
	if err != nil {
		return fmt.Errorf("cannot resolve report path %q: %w", input.ReportPathStr, err)
	}
	cfg.ReportPath = filepath.Clean(abs)
	return nil
}
