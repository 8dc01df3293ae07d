package domain

// AssessmentScale is read-only reference data seeded by migration.
type AssessmentScale struct {
	ID           string
	Name         string
	Abbreviation string
	Category     string
	Description  string
	ItemCount    int
	MinScore     int
	MaxScore     int
	ScoringNotes string
}
