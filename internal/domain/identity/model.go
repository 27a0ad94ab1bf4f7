package identity

import "errors"

// Role is what a user is allowed to see and do in the app.
type Role string

const (
	RolePatient Role = "PATIENT"
	RoleDoctor  Role = "DOCTOR"
	RoleAdmin   Role = "ADMIN"
)

func (r Role) Valid() bool {
	switch r {
	case RolePatient, RoleDoctor, RoleAdmin:
		return true
	}
	return false
}

var ErrUnknownUser = errors.New("unknown user")

// User is a demo account.
type User struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Role   Role   `json:"role"`
	Email  string `json:"email"`
	Avatar string `json:"avatar"`
}

// IsDoctor reports whether u acts as a clinician.
func (u User) IsDoctor() bool { return u.Role == RoleDoctor }

// Mock accounts available to every session.
var (
	MockPatient = User{
		ID:     "1",
		Name:   "Teguh Santoso",
		Role:   RolePatient,
		Email:  "teguh@mail.com",
		Avatar: "https://picsum.photos/seed/patient/200",
	}
	MockDoctor = User{
		ID:     "doc-1",
		Name:   "Dokter Deny Satria",
		Role:   RoleDoctor,
		Email:  "deny@akmtwell.com",
		Avatar: "https://picsum.photos/seed/doctor/200",
	}
)

// Toggle switches between the mock patient and the mock doctor. Anyone who is
// not the patient becomes the patient.
func Toggle(u User) User {
	if u.Role == RolePatient {
		return MockDoctor
	}
	return MockPatient
}

// Lookup returns a mock account by ID.
func Lookup(id string) (User, error) {
	switch id {
	case MockPatient.ID:
		return MockPatient, nil
	case MockDoctor.ID:
		return MockDoctor, nil
	}
	return User{}, ErrUnknownUser
}
