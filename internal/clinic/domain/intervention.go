package domain

import "time"

type Intervention struct {
	ID                   string
	PatientID            string
	TherapistID          string
	InterventionType     string
	InterventionCategory string
	DurationMinutes      *int
	Setting              string
	ResponseRating       *int // 1-5
	Notes                string
	CreatedAt            time.Time
}
