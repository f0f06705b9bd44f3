package schema

// InstanceTier is one row of the compute sizing table.
type InstanceTier struct {
	Class     string   `json:"class" yaml:"class" mapstructure:"class"`
	VCPU      int      `json:"vcpu" yaml:"vcpu" mapstructure:"vcpu"`
	MemoryGB  int      `json:"memory_gb" yaml:"memory_gb" mapstructure:"memory_gb"`
	HourlyUSD *float64 `json:"hourly_usd,omitempty" yaml:"hourly_usd,omitempty" mapstructure:"hourly_usd"`
}

// FactorDefinition describes one complexity factor for display purposes.
type FactorDefinition struct {
	Key     FactorKey `json:"key" yaml:"key"`
	Purpose string    `json:"purpose" yaml:"purpose"`
	Rule    string    `json:"rule" yaml:"rule"`
}

// TargetDefinition describes a target with its engine-change base score.
type TargetDefinition struct {
	Target       TargetDatabase `json:"target" yaml:"target"`
	BaseScore    float64        `json:"base_score" yaml:"base_score"`
	FeatureScale float64        `json:"feature_scale" yaml:"feature_scale"`
}

// MetricsRenderModel contains all processed data needed for displaying scoring definitions.
type MetricsRenderModel struct {
	Title       string             `json:"title" yaml:"title"`
	Description string             `json:"description" yaml:"description"`
	Targets     []TargetDefinition `json:"targets" yaml:"targets"`
	Factors     []FactorDefinition `json:"factors" yaml:"factors"`
	Tiers       []InstanceTier     `json:"tiers" yaml:"tiers"`
	TierBands   map[string]string  `json:"tier_bands" yaml:"tier_bands"`
}
