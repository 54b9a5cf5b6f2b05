package scheduling

import (
	"fmt"

	"carwash-app-server/internal/models"
)

// AppointmentStore is the slice of the appointment store the scheduler needs.
type AppointmentStore interface {
	Insert(appointment *models.Appointment) (string, error)
	ByOwner(ownerID string) ([]models.Appointment, error)
	ByOwnerAndDate(ownerID, date string) ([]models.Appointment, error)
	LatestForPlate(ownerID, plate string) (*models.Appointment, error)
}

// VehicleStore is the slice of the vehicle store the scheduler needs.
type VehicleStore interface {
	ByOwner(ownerID string) ([]models.Vehicle, error)
}

// Availability is the outcome of a slot check.
type Availability struct {
	Available bool   `json:"available"`
	Conflict  string `json:"conflict,omitempty"`
}

// CheckOptions tunes an availability check. ExcludeID skips the appointment
// being edited; ExcludeAutoScheduled ignores auto-scheduled appointments so
// a batch does not collide with its own earlier output.
type CheckOptions struct {
	ExcludeID            string
	ExcludeAutoScheduled bool
}

// CheckAvailability reports whether the one-hour interval starting at clock
// time on date is free of overlaps with the owner's existing appointments.
// The first conflict found wins. The check is read-only and offers no
// atomicity against a concurrent write of the same slot.
func CheckAvailability(store AppointmentStore, ownerID, date, clock string, opts CheckOptions) (Availability, error) {
	start, err := clockToMinutes(clock)
	if err != nil {
		return Availability{}, err
	}
	end := start + SlotDurationMinutes

	existing, err := store.ByOwnerAndDate(ownerID, date)
	if err != nil {
		return Availability{}, err
	}

	for _, appointment := range existing {
		if opts.ExcludeID != "" && appointment.ID == opts.ExcludeID {
			continue
		}
		if opts.ExcludeAutoScheduled && appointment.AutoScheduled {
			continue
		}

		otherStart, err := clockToMinutes(appointment.Time)
		if err != nil {
			// A malformed stored time cannot be compared; skip it.
			continue
		}
		otherEnd := otherStart + SlotDurationMinutes

		if start < otherEnd && otherStart < end {
			return Availability{
				Available: false,
				Conflict: fmt.Sprintf("slot overlaps the appointment for %s at %s",
					appointment.Plate, appointment.Time),
			}, nil
		}
	}

	return Availability{Available: true}, nil
}
