package store

import (
	"context"

	"child-clinic-server/internal/models"
)

// AppointmentStore persists appointment records. Implementations must keep
// Create atomic (a validation failure persists nothing) and DeleteByID
// idempotent (a missing id reports found=false, never an error).
type AppointmentStore interface {
	// Create validates that every required field is non-empty, assigns the
	// id and timestamps and persists the record.
	Create(ctx context.Context, appointment *models.Appointment) error

	// ListAll returns every stored record. Ordering is not a contract.
	ListAll(ctx context.Context) ([]models.Appointment, error)

	// ListByGuardianEmail returns records whose guardian email matches
	// exactly. No partial or fuzzy matching.
	ListByGuardianEmail(ctx context.Context, email string) ([]models.Appointment, error)

	// GetByID returns the record with the given id, or ErrNotFound.
	GetByID(ctx context.Context, id string) (models.Appointment, error)

	// DeleteByID removes the record with the given id if present. It
	// returns the deleted record and true when one matched, and a zero
	// record and false when nothing was there to delete.
	DeleteByID(ctx context.Context, id string) (models.Appointment, bool, error)
}

// requiredFields lists every appointment field that must be non-empty at
// creation, in the order they are validated.
var requiredFields = []struct {
	name  string
	value func(*models.Appointment) string
}{
	{"guardianEmail", func(a *models.Appointment) string { return a.GuardianEmail }},
	{"doctorName", func(a *models.Appointment) string { return a.DoctorName }},
	{"date", func(a *models.Appointment) string { return a.Date }},
	{"time", func(a *models.Appointment) string { return a.Time }},
	{"childName", func(a *models.Appointment) string { return a.ChildName }},
	{"childAge", func(a *models.Appointment) string { return a.ChildAge }},
	{"phone", func(a *models.Appointment) string { return a.Phone }},
	{"issue", func(a *models.Appointment) string { return a.Issue }},
}

// ValidateAppointment checks that every required field is present and
// non-empty, returning a ValidationError naming the first missing field.
func ValidateAppointment(appointment *models.Appointment) error {
	for _, f := range requiredFields {
		if f.value(appointment) == "" {
			return &ValidationError{Field: f.name}
		}
	}
	return nil
}
