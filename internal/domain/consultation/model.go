package consultation

import (
	"errors"
	"time"
)

var (
	ErrDoctorNotFound = errors.New("doctor not found")
	ErrDoctorOffline  = errors.New("doctor is offline")
	ErrNoConsultation = errors.New("no consultation in progress")
	ErrCallInProgress = errors.New("a consultation call is already in progress")
	ErrNotInCall      = errors.New("consultation call is not active")
	ErrNoPendingNote  = errors.New("no SOAP note is pending for this consultation")
	ErrDoctorOnly     = errors.New("only doctors can record SOAP notes")
	ErrEmptyMessage   = errors.New("message text is required")
)

// Doctor is an entry in the directory.
type Doctor struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	Specialty  string  `json:"specialty"`
	Experience string  `json:"experience"`
	Rating     float64 `json:"rating"`
	Online     bool    `json:"online"`
	Avatar     string  `json:"avatar"`
}

// Listing is a directory entry marked against the latest triage.
type Listing struct {
	Doctor
	Recommended bool `json:"recommended"`
}

// Directory is the static list of bookable doctors.
var Directory = []Doctor{
	{ID: "d1", Name: "Dokter Deny Satria", Specialty: "General Practitioner", Experience: "8 years", Rating: 4.9, Online: true, Avatar: "https://picsum.photos/seed/d1/200"},
	{ID: "d2", Name: "Dokter Octavian Kurnia Sandi", Specialty: "Pulmonologist", Experience: "12 years", Rating: 4.8, Online: true, Avatar: "https://picsum.photos/seed/d2/200"},
	{ID: "d3", Name: "Dokter Yosi", Specialty: "Cardiologist", Experience: "10 years", Rating: 4.9, Online: true, Avatar: "https://picsum.photos/seed/d3/200"},
	{ID: "d4", Name: "Dokter Ramdan Alfi Surya", Specialty: "Pediatrician", Experience: "15 years", Rating: 5.0, Online: false, Avatar: "https://picsum.photos/seed/d4/200"},
}

// FindDoctor looks a doctor up in the Directory.
func FindDoctor(id string) (Doctor, error) {
	for _, d := range Directory {
		if d.ID == id {
			return d, nil
		}
	}
	return Doctor{}, ErrDoctorNotFound
}

// State is where a consultation is in its lifecycle.
type State string

const (
	StateInCall      State = "in_call"
	StateSoapPending State = "soap_pending"
	StateClosed      State = "closed"
)

// Message is one chat line.
type Message struct {
	Sender string    `json:"sender"`
	Text   string    `json:"text"`
	SentAt time.Time `json:"sent_at"`
}

// SoapNote is the doctor's structured visit record.
type SoapNote struct {
	Subjective string `json:"subjective"`
	Objective  string `json:"objective"`
	Assessment string `json:"assessment"`
	Plan       string `json:"plan"`
}

// Consultation is a session's current mock call.
type Consultation struct {
	ID             string     `json:"id"`
	Doctor         Doctor     `json:"doctor"`
	State          State      `json:"state"`
	Messages       []Message  `json:"messages"`
	StartedAt      time.Time  `json:"started_at"`
	EndedAt        *time.Time `json:"ended_at,omitempty"`
	Note           *SoapNote  `json:"soap,omitempty"`
	PrescriptionID string     `json:"prescription_id,omitempty"`
}
