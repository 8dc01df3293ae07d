package domain

import "time"

// AnalyticsReport is a point-in-time count of the records held by the store.
type AnalyticsReport struct {
	GeneratedAt         time.Time
	Therapists          int
	Clinics             int
	Patients            int
	Scenarios           int
	Interventions       int
	EvidenceEntries     int
	PatientsByStatus    map[string]int
	ScenariosByType     map[string]int
	InterventionsByType map[string]int
}
