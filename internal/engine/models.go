package engine

// Campaign is the record the engine analyzes: raw counters plus the
// metrics derived from them.
type Campaign struct {
	ID             int64
	Name           string
	Budget         float64
	Impressions    int64
	Clicks         int64
	Conversions    int64
	CTR            float64
	CPC            float64
	ConversionRate float64
}

// Metrics are the three derived rates.
type Metrics struct {
	CTR            float64
	CPC            float64
	ConversionRate float64
}

type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityWarning  Severity = "warning"
	SeverityInfo     Severity = "info"
)

// IssueKind identifies one entry of the fixed issue catalog.
type IssueKind string

const (
	LowCTRCritical        IssueKind = "LOW_CTR_CRITICAL"
	LowCTRWarning         IssueKind = "LOW_CTR_WARNING"
	HighCPCCritical       IssueKind = "HIGH_CPC_CRITICAL"
	HighCPCWarning        IssueKind = "HIGH_CPC_WARNING"
	LowConversionCritical IssueKind = "LOW_CONVERSION_CRITICAL"
	LowConversionWarning  IssueKind = "LOW_CONVERSION_WARNING"
	TrackingFailure       IssueKind = "TRACKING_FAILURE"
	BudgetExhausted       IssueKind = "BUDGET_EXHAUSTED"
	BudgetLow             IssueKind = "BUDGET_LOW"
)

// IssueDefinition is one immutable catalog entry. Issues are built from
// catalog lookups, never assembled ad hoc.
type IssueDefinition struct {
	Kind            IssueKind
	Severity        Severity
	Title           string
	Description     string
	RootCauses      []string
	Recommendations []string
	ScoreDeduction  int
}

// Issue is a fired rule: a copy of the matched definition plus the
// observed value and the threshold it crossed.
type Issue struct {
	Kind            IssueKind `json:"type"`
	Severity        Severity  `json:"severity"`
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	RootCauses      []string  `json:"root_causes"`
	Recommendations []string  `json:"recommendations"`
	ScoreDeduction  int       `json:"score_deduction"`
	MetricValue     float64   `json:"metric_value"`
	Threshold       float64   `json:"threshold"`
}

type Status string

const (
	StatusHealthy  Status = "healthy"
	StatusWarning  Status = "warning"
	StatusCritical Status = "critical"
)

// MetricsSnapshot is the view of the analyzed metrics echoed back in a
// Diagnosis.
type MetricsSnapshot struct {
	CTR                float64 `json:"ctr"`
	CPC                float64 `json:"cpc"`
	ConversionRate     float64 `json:"conversion_rate"`
	BudgetRemainingPct float64 `json:"budget_remaining_pct"`
}

// Diagnosis is the full result of one evaluation. The JSON field names
// are the contract the API serializer and report renderer rely on.
type Diagnosis struct {
	CampaignID      int64           `json:"campaign_id"`
	CampaignName    string          `json:"campaign_name"`
	HealthScore     int             `json:"health_score"`
	Status          Status          `json:"status"`
	Summary         string          `json:"summary"`
	Issues          []Issue         `json:"issues"`
	Recommendations []string        `json:"recommendations"`
	MetricsAnalyzed MetricsSnapshot `json:"metrics_analyzed"`
}
