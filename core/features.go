package core

import (
	"strings"

	"github.com/huangsam/awrlens/schema"
)

const (
	unknownFeatureWeight = 0.1
	maxFeatureWeight     = 10.0
)

// featureRule matches feature names by case-insensitive substring and holds the
// mitigation per target family.
type featureRule struct {
	name         string
	patterns     []string
	weight       float64
	oracle       string
	postgres     string
	mysql        string
	nativeOnPG   bool
	nativeOnOrcl bool
}

// featureRules is ordered most specific first.
var featureRules = []featureRule{
	{
		name: "Real Application Clusters", patterns: []string{"real application clusters"}, weight: 2.0,
		oracle:   "RAC is not available on RDS; use Multi-AZ for availability and scale up the instance",
		postgres: "Replace RAC with Multi-AZ plus read replicas; scale-out requires application changes",
		mysql:    "Replace RAC with Multi-AZ plus read replicas; scale-out requires application changes",
	},
	{
		name: "Active Data Guard", patterns: []string{"active data guard"}, weight: 0.5,
		oracle:   "Use RDS read replicas (mounted or read-only) instead of Active Data Guard",
		postgres: "Use read replicas for read-only offload",
		mysql:    "Use read replicas for read-only offload",
	},
	{
		name: "Data Guard", patterns: []string{"data guard"}, weight: 0.5,
		oracle:   "Use Multi-AZ deployments instead of self-managed Data Guard",
		postgres: "Use Multi-AZ deployments for standby protection",
		mysql:    "Use Multi-AZ deployments for standby protection",
	},
	{
		name: "Advanced Queuing", patterns: []string{"advanced queuing", "advanced queueing"}, weight: 1.5,
		nativeOnOrcl: true,
		postgres:     "Move queues to Amazon SQS or Amazon MQ",
		mysql:        "Move queues to Amazon SQS or Amazon MQ",
	},
	{
		name: "Streams", patterns: []string{"streams"}, weight: 1.5,
		oracle:   "Streams is desupported; use AWS DMS or GoldenGate for replication",
		postgres: "Use logical replication or AWS DMS",
		mysql:    "Use binlog replication or AWS DMS",
	},
	{
		name: "Partitioning", patterns: []string{"partitioning"}, weight: 1.0,
		nativeOnOrcl: true,
		nativeOnPG:   true,
		mysql:        "MySQL partitioning is limited (no composite reference partitioning, no global indexes); redesign partition keys",
	},
	{
		name: "Java in the Database", patterns: []string{"java"}, weight: 1.5,
		nativeOnOrcl: true,
		postgres:     "Rewrite Java stored procedures in PL/pgSQL or move them to the application tier",
		mysql:        "Move Java stored procedures to the application tier",
	},
	{
		name: "OLAP", patterns: []string{"olap"}, weight: 1.5,
		oracle:   "Oracle OLAP is not supported on RDS; consider Amazon Redshift",
		postgres: "Move analytic cubes to Amazon Redshift",
		mysql:    "Move analytic cubes to Amazon Redshift",
	},
	{
		name: "Data Mining", patterns: []string{"data mining", "advanced analytics", "machine learning"}, weight: 1.5,
		nativeOnOrcl: true,
		postgres:     "Move in-database models to Amazon SageMaker",
		mysql:        "Move in-database models to Amazon SageMaker",
	},
	{
		name: "Spatial", patterns: []string{"spatial"}, weight: 1.0,
		nativeOnOrcl: true,
		postgres:     "Use the PostGIS extension",
		mysql:        "Use MySQL spatial types; some operators have no equivalent",
	},
	{
		name: "Locator", patterns: []string{"locator"}, weight: 0.5,
		nativeOnOrcl: true,
		postgres:     "Use the PostGIS extension",
		mysql:        "Use MySQL spatial types",
	},
	{
		name: "Oracle Text", patterns: []string{"oracle text", "text index"}, weight: 0.8,
		nativeOnOrcl: true,
		postgres:     "Use tsvector full-text search or Amazon OpenSearch",
		mysql:        "Use InnoDB FULLTEXT indexes or Amazon OpenSearch",
	},
	{
		name: "XML DB", patterns: []string{"xml db", "xdb", "xmltype"}, weight: 1.0,
		nativeOnOrcl: true,
		postgres:     "Use the xml type and XPath functions; XQuery needs rewriting",
		mysql:        "Store XML as text and move processing to the application",
	},
	{
		name: "Label Security", patterns: []string{"label security"}, weight: 1.0,
		nativeOnOrcl: true,
		postgres:     "Use row-level security policies",
		mysql:        "Enforce row-level access in views or the application",
	},
	{
		name: "Virtual Private Database", patterns: []string{"virtual private database", "vpd", "fine grained access", "fine-grained access"}, weight: 1.0,
		nativeOnOrcl: true,
		postgres:     "Use row-level security policies",
		mysql:        "Enforce row-level access in views or the application",
	},
	{
		name: "Database Vault", patterns: []string{"database vault"}, weight: 1.0,
		oracle:   "Database Vault is not supported on RDS; rely on IAM and least-privilege roles",
		postgres: "Rely on IAM and least-privilege roles",
		mysql:    "Rely on IAM and least-privilege roles",
	},
	{
		name: "Materialized Views", patterns: []string{"materialized view"}, weight: 0.5,
		nativeOnOrcl: true,
		nativeOnPG:   true,
		mysql:        "MySQL has no materialized views; use summary tables refreshed by events",
	},
	{
		name: "Advanced Compression", patterns: []string{"advanced compression", "hybrid columnar"}, weight: 0.5,
		nativeOnOrcl: true,
		postgres:     "Rely on TOAST compression and storage-level savings",
		mysql:        "Use InnoDB page compression",
	},
	{
		name: "Transparent Data Encryption", patterns: []string{"transparent data encryption", "encrypted tablespace"}, weight: 0.5,
		nativeOnOrcl: true,
		postgres:     "Use RDS storage encryption with KMS",
		mysql:        "Use RDS storage encryption with KMS",
	},
	{
		name: "Automatic Storage Management", patterns: []string{"automatic storage management"}, weight: 0.5,
		oracle:   "Storage is managed by RDS; ASM disk groups are not used",
		postgres: "Storage is managed by RDS",
		mysql:    "Storage is managed by RDS",
	},
	{
		name: "Flashback", patterns: []string{"flashback"}, weight: 0.5,
		oracle:   "Flashback Database is not available; use automated backups and point-in-time restore",
		postgres: "Use point-in-time restore; Aurora offers backtrack only for MySQL",
		mysql:    "Use point-in-time restore or Aurora backtrack",
	},
	{
		name: "In-Memory", patterns: []string{"in-memory", "in memory column"}, weight: 1.0,
		nativeOnOrcl: true,
		postgres:     "Size shared_buffers generously or offload analytics to Redshift",
		mysql:        "Size the buffer pool generously or offload analytics to Redshift",
	},
	{
		name: "Multitenant", patterns: []string{"multitenant", "pluggable database"}, weight: 0.5,
		nativeOnOrcl: true,
		postgres:     "Map pluggable databases to separate databases or instances",
		mysql:        "Map pluggable databases to separate schemas or instances",
	},
	{
		name: "Result Cache", patterns: []string{"result cache"}, weight: 0.3,
		nativeOnOrcl: true,
		postgres:     "Cache results in the application or Amazon ElastiCache",
		mysql:        "Cache results in the application or Amazon ElastiCache",
	},
}

// matchFeature returns the first rule matching name, if any.
func matchFeature(name string) (featureRule, bool) {
	lower := strings.ToLower(name)
	for _, r := range featureRules {
		for _, p := range r.patterns {
			if strings.Contains(lower, p) {
				return r, true
			}
		}
	}
	return featureRule{}, false
}

// alternativeFor returns the mitigation for a target, or "" when the feature is native there.
func (r featureRule) alternativeFor(target schema.TargetDatabase) string {
	switch {
	case target.SameEngine():
		if r.nativeOnOrcl {
			return ""
		}
		return r.oracle
	case target.IsPostgreSQL():
		if r.nativeOnPG {
			return ""
		}
		return r.postgres
	case target.IsMySQL():
		return r.mysql
	default:
		return ""
	}
}

// AssessFeatures weighs the currently used features of a report for one target.
// The total is capped at 10; unknown features weigh 0.1 each.
func AssessFeatures(model *schema.ReportModel, target schema.TargetDatabase) schema.FeatureAssessment {
	out := schema.FeatureAssessment{Target: target, Incompatible: []schema.IncompatibleFeature{}}
	for _, f := range model.CurrentFeatures() {
		if strings.EqualFold(strings.TrimSpace(f.Name), "Character Set") {
			continue
		}
		rule, ok := matchFeature(f.Name)
		if !ok {
			out.TotalWeight += unknownFeatureWeight
			continue
		}
		out.TotalWeight += rule.weight
		if alt := rule.alternativeFor(target); alt != "" {
			out.Incompatible = append(out.Incompatible, schema.IncompatibleFeature{
				Feature:     f.Name,
				Weight:      rule.weight,
				Alternative: alt,
			})
		}
	}
	if out.TotalWeight > maxFeatureWeight {
		out.TotalWeight = maxFeatureWeight
	}
	return out
}
