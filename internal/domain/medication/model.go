package medication

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// DateLayout is how prescription dates are shown.
const DateLayout = "Jan 02, 2006"

// Status is a prescription's fulfilment stage.
type Status string

const (
	StatusOrdered   Status = "ordered"
	StatusProcessed Status = "processed"
	StatusDelivered Status = "delivered"
)

var statusRank = map[Status]int{
	StatusOrdered:   0,
	StatusProcessed: 1,
	StatusDelivered: 2,
}

func (s Status) Valid() bool {
	_, ok := statusRank[s]
	return ok
}

var (
	ErrNotFound         = errors.New("prescription not found")
	ErrInvalidStatus    = errors.New("invalid prescription status")
	ErrStatusRegression = errors.New("prescription status cannot move backwards")
	ErrNoItems          = errors.New("prescription has no named items")
)

// Item is one medication line.
type Item struct {
	Name   string `json:"name"`
	Dosage string `json:"dosage"`
}

// Prescription is an order written by a doctor.
type Prescription struct {
	ID         string    `json:"id"`
	DoctorName string    `json:"doctor_name"`
	Date       string    `json:"date"`
	Status     Status    `json:"status"`
	Items      []Item    `json:"items"`
	CreatedAt  time.Time `json:"created_at"`
}

// CleanItems trims names and dosages and drops items without a name.
func CleanItems(items []Item) []Item {
	out := make([]Item, 0, len(items))
	for _, it := range items {
		name := strings.TrimSpace(it.Name)
		if name == "" {
			continue
		}
		out = append(out, Item{Name: name, Dosage: strings.TrimSpace(it.Dosage)})
	}
	return out
}

// CheckTransition allows a status to stay or move forward only.
func CheckTransition(from, to Status) error {
	if !to.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, to)
	}
	if statusRank[to] < statusRank[from] {
		return fmt.Errorf("%w: %s -> %s", ErrStatusRegression, from, to)
	}
	return nil
}

// Seed is the prescription every new session starts with.
func Seed() Prescription {
	return Prescription{
		ID:         "rx-1",
		DoctorName: "Dokter Deny Satria",
		Date:       "Oct 24, 2024",
		Status:     StatusDelivered,
		Items: []Item{
			{Name: "Amoxicillin", Dosage: "500mg - 3x daily"},
			{Name: "Paracetamol", Dosage: "500mg - As needed for fever"},
		},
		CreatedAt: time.Date(2024, time.October, 24, 0, 0, 0, 0, time.UTC),
	}
}
