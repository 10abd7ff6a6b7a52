package models

// ComplianceZone is the tri-state classification of a score. Property
// status uses the same values.
type ComplianceZone string

const (
	ComplianceZoneGreen ComplianceZone = "green"
	ComplianceZoneAmber ComplianceZone = "amber"
	ComplianceZoneRed   ComplianceZone = "red"
)

const (
	GreenZoneThreshold = 80
	AmberZoneThreshold = 60
)

func (z ComplianceZone) IsValid() bool {
	switch z {
	case ComplianceZoneGreen, ComplianceZoneAmber, ComplianceZoneRed:
		return true
	default:
		return false
	}
}

// ZoneForScore maps a score onto its compliance zone
func ZoneForScore(score float64) ComplianceZone {
	switch {
	case score >= GreenZoneThreshold:
		return ComplianceZoneGreen
	case score >= AmberZoneThreshold:
		return ComplianceZoneAmber
	default:
		return ComplianceZoneRed
	}
}

// RiskLevel is the staleness-aware risk label of a property
type RiskLevel string

const (
	RiskLevelHigh   RiskLevel = "HIGH"
	RiskLevelMedium RiskLevel = "MEDIUM"
	RiskLevelLow    RiskLevel = "LOW"
)

// RiskInput is what a risk rule looks at. DaysSinceAudit is nil for a
// property that has never been audited.
type RiskInput struct {
	Zone           ComplianceZone
	DaysSinceAudit *int
}

type RiskRule struct {
	Name    string
	Level   RiskLevel
	Matches func(in RiskInput) bool
}

func daysOver(in RiskInput, days int) bool {
	return in.DaysSinceAudit != nil && *in.DaysSinceAudit > days
}

// RiskRules are evaluated in order; the first match wins.
var RiskRules = []RiskRule{
	{
		Name:    "red zone",
		Level:   RiskLevelHigh,
		Matches: func(in RiskInput) bool { return in.Zone == ComplianceZoneRed },
	},
	{
		Name:    "stale amber zone",
		Level:   RiskLevelHigh,
		Matches: func(in RiskInput) bool { return in.Zone == ComplianceZoneAmber && daysOver(in, 90) },
	},
	{
		Name:    "amber zone",
		Level:   RiskLevelMedium,
		Matches: func(in RiskInput) bool { return in.Zone == ComplianceZoneAmber },
	},
	{
		Name:    "overdue audit",
		Level:   RiskLevelMedium,
		Matches: func(in RiskInput) bool { return daysOver(in, 180) },
	},
}

// ClassifyRisk returns the level of the first matching rule, LOW otherwise
func ClassifyRisk(in RiskInput) RiskLevel {
	for _, rule := range RiskRules {
		if rule.Matches(in) {
			return rule.Level
		}
	}
	return RiskLevelLow
}

// Rank orders red before amber before everything else
func (z ComplianceZone) Rank() int {
	switch z {
	case ComplianceZoneRed:
		return 1
	case ComplianceZoneAmber:
		return 2
	default:
		return 3
	}
}
