package schema

// Custom string types for type safety.
type (
	// FactorKey represents keys used in complexity factor breakdowns.
	FactorKey string

	// OutputMode represents the format of the output.
	OutputMode string

	// TargetDatabase identifies a candidate migration target.
	TargetDatabase string

	// Edition represents the detected product edition of the source database.
	Edition string

	// DifficultyTier is the label assigned to a complexity score band.
	DifficultyTier string

	// SectionName is the name between the BEGIN/END markers of a dump section.
	SectionName string

	// Dialect distinguishes baseline dumps from AWR-extended dumps.
	Dialect string

	// SGAAction describes the direction of an SGA sizing recommendation.
	SGAAction string
)

// Factor keys used in the complexity breakdown.
const (
	FactorBase             FactorKey = "base"              // engine change effort
	FactorEdition          FactorKey = "edition"           // edition change
	FactorRAC              FactorKey = "rac"               // cluster removal
	FactorVersion          FactorKey = "version"           // version upgrade
	FactorCharset          FactorKey = "charset"           // character set conversion
	FactorCodeVolume       FactorKey = "code_volume"       // PL/SQL volume
	FactorFeatures         FactorKey = "features"          // feature incompatibility
	FactorResourcePressure FactorKey = "resource_pressure" // CPU or I/O saturation
)

// AllFactorKeys lists the factor keys in display order.
var AllFactorKeys = []FactorKey{
	FactorBase, FactorEdition, FactorRAC, FactorVersion,
	FactorCharset, FactorCodeVolume, FactorFeatures, FactorResourcePressure,
}

// All output modes supported.
const (
	TextOut OutputMode = "text" // default
	JSONOut OutputMode = "json"
	YAMLOut OutputMode = "yaml"
	CSVOut  OutputMode = "csv"
)

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	TextOut: {},
	JSONOut: {},
	YAMLOut: {},
	CSVOut:  {},
}

// All migration targets supported.
const (
	RDSOracle        TargetDatabase = "rds-oracle"
	RDSPostgreSQL    TargetDatabase = "rds-postgresql"
	AuroraPostgreSQL TargetDatabase = "aurora-postgresql"
	RDSMySQL         TargetDatabase = "rds-mysql"
	AuroraMySQL      TargetDatabase = "aurora-mysql"
)

// AllTargets returns the targets in their canonical order.
var AllTargets = []TargetDatabase{RDSOracle, RDSPostgreSQL, AuroraPostgreSQL, RDSMySQL, AuroraMySQL}

// ValidTargets lists all valid migration targets.
var ValidTargets = map[TargetDatabase]struct{}{
	RDSOracle:        {},
	RDSPostgreSQL:    {},
	AuroraPostgreSQL: {},
	RDSMySQL:         {},
	AuroraMySQL:      {},
}

// SameEngine reports whether the target keeps the source engine family.
func (t TargetDatabase) SameEngine() bool {
	return t == RDSOracle
}

// IsPostgreSQL reports whether the target is a PostgreSQL flavor.
func (t TargetDatabase) IsPostgreSQL() bool {
	return t == RDSPostgreSQL || t == AuroraPostgreSQL
}

// IsMySQL reports whether the target is a MySQL flavor.
func (t TargetDatabase) IsMySQL() bool {
	return t == RDSMySQL || t == AuroraMySQL
}

// All editions recognized in version banners.
const (
	EnterpriseEdition  Edition = "EE"
	StandardEdition2   Edition = "SE2"
	StandardEditionOne Edition = "SE1"
	StandardEdition    Edition = "SE"
	ExpressEdition     Edition = "XE"
	PersonalEdition    Edition = "PE"
	UnknownEdition     Edition = "unknown"
)

// Difficulty tiers, from easiest to hardest.
const (
	TierMinimal  DifficultyTier = "Minimal"
	TierLow      DifficultyTier = "Low"
	TierModerate DifficultyTier = "Moderate"
	TierHigh     DifficultyTier = "High"
	TierVeryHigh DifficultyTier = "Very High"
)

// Dump dialects.
const (
	StatspackDialect Dialect = "statspack"
	AWRDialect       Dialect = "awr"
)

// SGA recommendation directions.
const (
	SGAShrink SGAAction = "shrink"
	SGAGrow   SGAAction = "grow"
	SGAKeep   SGAAction = "keep"
)

// Sections found in performance dumps.
const (
	SectionOSInfo         SectionName = "OS-INFORMATION"
	SectionMemory         SectionName = "MEMORY"
	SectionSizeOnDisk     SectionName = "SIZE-ON-DISK"
	SectionMainMetrics    SectionName = "MAIN-METRICS"
	SectionTopEvents      SectionName = "TOP-N-TIMED-EVENTS"
	SectionSysStat        SectionName = "SYSSTAT"
	SectionFeatures       SectionName = "FEATURES"
	SectionSGAAdvice      SectionName = "SGA-ADVICE"
	SectionIOStatFunction SectionName = "IOSTAT-FUNCTION"
	SectionPercentCPU     SectionName = "PERCENT-CPU"
	SectionPercentIO      SectionName = "PERCENT-IO"
	SectionWorkload       SectionName = "WORKLOAD"
	SectionBufferCache    SectionName = "BUFFER-CACHE"
)

// AllSections lists every section the parser knows about.
var AllSections = []SectionName{
	SectionOSInfo, SectionMemory, SectionSizeOnDisk, SectionMainMetrics,
	SectionTopEvents, SectionSysStat, SectionFeatures, SectionSGAAdvice,
	SectionIOStatFunction, SectionPercentCPU, SectionPercentIO, SectionWorkload, SectionBufferCache,
}
