package emr

import (
	"github.com/akmtwell/telehealth/internal/domain/identity"
	"github.com/akmtwell/telehealth/internal/triage"
)

// Profile is the header card of a patient record.
type Profile struct {
	PatientID  string `json:"patient_id"`
	Name       string `json:"name"`
	Avatar     string `json:"avatar"`
	MedicalRef string `json:"medical_ref"`
	BloodType  string `json:"blood_type"`
	HeightCM   int    `json:"height_cm"`
	WeightKG   int    `json:"weight_kg"`
}

// Visit is one entry on the record timeline.
type Visit struct {
	Date      string `json:"date"`
	Diagnosis string `json:"diagnosis"`
	Doctor    string `json:"doctor"`
	Note      string `json:"note"`
}

// Record is what GET /emr returns.
type Record struct {
	Profile      Profile        `json:"profile"`
	LatestTriage *triage.Result `json:"latest_triage,omitempty"`
	Timeline     []Visit        `json:"timeline"`
}

const medicalRef = "#AKM-9283-2024"

// ProfileFor builds the profile card for patient.
func ProfileFor(patient identity.User) Profile {
	return Profile{
		PatientID:  patient.ID,
		Name:       patient.Name,
		Avatar:     "https://picsum.photos/seed/" + patient.ID + "/200",
		MedicalRef: medicalRef,
		BloodType:  "O+",
		HeightCM:   175,
		WeightKG:   72,
	}
}

// History is the static visit timeline, newest first.
func History() []Visit {
	return []Visit{
		{Date: "Oct 24, 2024", Diagnosis: "Viral Respiratory Infection", Doctor: "Dokter Deny Satria", Note: "Complained of sore throat. Resting prescribed."},
		{Date: "Aug 12, 2024", Diagnosis: "Routine Checkup", Doctor: "Dokter Octavian Kurnia Sandi", Note: "All clear."},
		{Date: "May 05, 2024", Diagnosis: "Allergic Reaction", Doctor: "Dokter Yosi", Note: "Treatment plan started."},
	}
}
