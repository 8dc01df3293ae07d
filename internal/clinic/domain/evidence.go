package domain

import "time"

// EvidenceEntry is a cached research summary for an intervention type. It is
// never authoritative and may be dropped at any time.
type EvidenceEntry struct {
	InterventionType string
	Summary          string // narrative summary from the summary provider
	Evidence         string // research evidence from the evidence provider
	FetchedAt        time.Time
	ExpiresAt        time.Time
}

// Expired reports whether the entry is stale at now.
func (e EvidenceEntry) Expired(now time.Time) bool {
	return !e.ExpiresAt.IsZero() && !now.Before(e.ExpiresAt)
}

// InterventionTypes are the intervention types used when seeding demo data.
var InterventionTypes = []string{
	"Crisis De-escalation",
	"Medication Education",
	"Cognitive Restructuring",
	"Safety Planning",
	"Motivational Interviewing",
	"Behavioral Activation",
}

// InterventionSettings are the settings used when seeding demo data.
var InterventionSettings = []string{"Bedside", "Group Room", "Hallway", "Phone", "Nursing Station"}
