package domain

// Config is the parsed configuration the core consumes (§6). Loading it
// from TOML/YAML/env/CLI flags is explicitly out of scope (§1); callers
// build one directly or start from DefaultConfig().
type Config struct {
	Scoring     ScoringConfig
	Thresholds  ThresholdsConfig
	Entropy     EntropyConfig
	RoleMultipliers      map[Role]float64
	RoleMultiplierClamp  ClampRange
	RoleCoverageWeights  map[Role]float64

	// IgnorePatterns holds the §6 ignore.patterns doublestar globs; a file
	// whose path or base name matches any entry is skipped entirely by the
	// C10 driver before it reaches a language adapter.
	IgnorePatterns []string
}

// ScoringConfig holds the weights composing complexity_factor (§6).
type ScoringConfig struct {
	WeightCyclomatic float64
	WeightCognitive  float64
	WeightCoupling   float64
	WeightCoverage   float64
}

// ThresholdsConfig is the single-stage filter applied in C10 (§4.9).
type ThresholdsConfig struct {
	MinScore      float64
	MinRisk       float64
	MinCyclomatic int
	MinCognitive  int
}

// EntropyConfig controls the entropy analyser (§4.3, §6).
type EntropyConfig struct {
	Enabled          bool
	PatternThreshold float64
	UseClassification bool
	MaxCacheSize     int
}

// ClampRange bounds the role multiplier (§4.8); Min must be <= Max.
type ClampRange struct {
	Min float64
	Max float64
}

// Validate rejects an inconsistent Config at the boundary (§7 ConfigError:
// "Clamp range inverted; negative weight"). This is the one place the core
// returns an error rather than panicking, since a malformed Config is the
// caller's fault, not an internal bug.
func (c Config) Validate() error {
	if c.RoleMultiplierClamp.Min > c.RoleMultiplierClamp.Max {
		return NewConfigError("role multiplier clamp range is inverted")
	}
	if c.Scoring.WeightCyclomatic < 0 || c.Scoring.WeightCognitive < 0 ||
		c.Scoring.WeightCoupling < 0 || c.Scoring.WeightCoverage < 0 {
		return NewConfigError("scoring weights must be non-negative")
	}
	if c.Entropy.MaxCacheSize < 0 {
		return NewConfigError("entropy.max_cache_size must be non-negative")
	}
	return nil
}

// DefaultConfig returns the documented defaults from spec.md §6/§4.8.
func DefaultConfig() Config {
	return Config{
		Scoring: ScoringConfig{
			WeightCyclomatic: 1.0,
			WeightCognitive:  1.5,
			WeightCoupling:   0.5,
			WeightCoverage:   2.0,
		},
		Thresholds: ThresholdsConfig{
			MinScore:      0,
			MinRisk:       0,
			MinCyclomatic: 0,
			MinCognitive:  0,
		},
		Entropy: EntropyConfig{
			Enabled:           true,
			PatternThreshold:  0.5,
			UseClassification: true,
			MaxCacheSize:      1000,
		},
		RoleMultipliers: map[Role]float64{
			RoleEntryPoint:         1.5,
			RoleOrchestrator:       1.2,
			RolePureLogic:          1.3,
			RoleIOWrapper:          0.5,
			RoleTest:               0.3,
			RoleTraitImpl:          1.0,
			RoleFormattingFunction: 0.8,
			RoleUnknown:            1.0,
		},
		RoleMultiplierClamp: ClampRange{Min: 0.3, Max: 1.8},
		RoleCoverageWeights: map[Role]float64{
			RoleIOWrapper:    0.5,
			RoleEntryPoint:   0.6,
			RoleOrchestrator: 0.8,
		},
		IgnorePatterns: nil,
	}
}
