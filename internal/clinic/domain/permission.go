package domain

import "slices"

type Permission = string

const (
	PermClinicsRead        Permission = "clinics:read"
	PermClinicsWrite       Permission = "clinics:write"
	PermPatientsRead       Permission = "patients:read"
	PermPatientsWrite      Permission = "patients:write"
	PermScenariosRead      Permission = "scenarios:read"
	PermScenariosWrite     Permission = "scenarios:write"
	PermScalesRead         Permission = "scales:read"
	PermInterventionsRead  Permission = "interventions:read"
	PermInterventionsWrite Permission = "interventions:write"
	PermEvidenceRead       Permission = "evidence:read"
	PermEvidenceWrite      Permission = "evidence:write"
)

type Role string

const (
	RoleTherapist Role = "therapist"
	RoleObserver  Role = "observer"
)

var readPermissions = []Permission{
	PermClinicsRead,
	PermPatientsRead,
	PermScenariosRead,
	PermScalesRead,
	PermInterventionsRead,
	PermEvidenceRead,
}

var allPermissions = append(slices.Clone(readPermissions),
	PermClinicsWrite,
	PermPatientsWrite,
	PermScenariosWrite,
	PermInterventionsWrite,
	PermEvidenceWrite,
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	return r == RoleTherapist || r == RoleObserver
}

// PermissionsForRole is the single decision table mapping a role to what it
// may do. Unknown roles get nothing.
func PermissionsForRole(r Role) []Permission {
	switch r {
	case RoleTherapist:
		return slices.Clone(allPermissions)
	case RoleObserver:
		return slices.Clone(readPermissions)
	default:
		return nil
	}
}
