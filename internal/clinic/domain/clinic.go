package domain

import "time"

const (
	ClinicStatusActive    = "active"
	ClinicStatusInactive  = "inactive"
	ClinicStatusSuspended = "suspended"
)

type Address struct {
	Street  string
	City    string
	State   string
	Zip     string
	Country string
}

type Clinic struct {
	ID            string
	Name          string
	Address       Address
	Phone         string
	Email         string
	LicenseNumber string
	Status        string
	CreatedBy     string // therapist id of the creator
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// ClinicUpdate carries a partial update. Nil fields keep their stored value.
type ClinicUpdate struct {
	Name          *string
	Address       *Address
	Phone         *string
	Email         *string
	LicenseNumber *string
	Status        *string
}
