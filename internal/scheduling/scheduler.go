package scheduling

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"carwash-app-server/internal/models"
)

// Sentinel errors surfaced to callers as user-facing conditions.
var (
	ErrNoRecurrentVehicles = errors.New("no vehicles with prior appointments to schedule")
	ErrNoSeedAppointments  = errors.New("no appointments found on the reference date")
)

// Scheduler bulk-creates future appointments derived from past bookings.
// Per-vehicle booking attempts run strictly sequentially: each check-then-
// write completes before the next vehicle is considered.
type Scheduler struct {
	Appointments AppointmentStore
	Vehicles     VehicleStore

	// Defaults, applied when a request does not override them.
	OffsetDays     int
	DefaultTime    string
	DefaultService string
}

// NewScheduler creates a Scheduler with the given stores and defaults.
func NewScheduler(appointments AppointmentStore, vehicles VehicleStore, offsetDays int, defaultTime, defaultService string) *Scheduler {
	return &Scheduler{
		Appointments:   appointments,
		Vehicles:       vehicles,
		OffsetDays:     offsetDays,
		DefaultTime:    defaultTime,
		DefaultService: defaultService,
	}
}

// BatchResult summarizes one auto-scheduling run. Adjustments are vehicles
// booked at a shifted time; Failures are vehicles that could not be booked.
// A single-vehicle failure never aborts the batch.
type BatchResult struct {
	Scheduled   int      `json:"scheduled"`
	Processed   int      `json:"processed"`
	TargetDate  string   `json:"targetDate"`
	Adjustments []string `json:"adjustments,omitempty"`
	Failures    []string `json:"failures,omitempty"`
}

// RecurrentVehicles returns the owner's vehicles that appear on at least
// one appointment, in vehicle-store order.
func (s *Scheduler) RecurrentVehicles(ownerID string) ([]models.Vehicle, error) {
	appointments, err := s.Appointments.ByOwner(ownerID)
	if err != nil {
		return nil, err
	}

	booked := make(map[string]bool, len(appointments))
	for _, appointment := range appointments {
		booked[appointment.Plate] = true
	}

	vehicles, err := s.Vehicles.ByOwner(ownerID)
	if err != nil {
		return nil, err
	}

	var recurrent []models.Vehicle
	for _, vehicle := range vehicles {
		if booked[vehicle.Plate] {
			recurrent = append(recurrent, vehicle)
		}
	}
	return recurrent, nil
}

// ScheduleRecurrent books every vehicle with appointment history into the
// single default slot on the target date, computed offsetDays working days
// from now. The slot fits one vehicle; once taken (within the batch or by a
// pre-existing manual appointment) the remaining vehicles are recorded as
// failures. Each vehicle inherits the service of its latest appointment,
// falling back to the configured default service when there is no history.
func (s *Scheduler) ScheduleRecurrent(ownerID string, offsetDays int, slot string) (*BatchResult, error) {
	if offsetDays <= 0 {
		offsetDays = s.OffsetDays
	}
	if slot == "" {
		slot = s.DefaultTime
	}
	slot = NormalizeClock(slot)

	vehicles, err := s.RecurrentVehicles(ownerID)
	if err != nil {
		return nil, err
	}
	if len(vehicles) == 0 {
		return nil, ErrNoRecurrentVehicles
	}

	result := &BatchResult{
		Processed:  len(vehicles),
		TargetDate: NextWorkingDate(offsetDays, time.Now()),
	}
	takenInBatch := make(map[string]bool)

	for _, vehicle := range vehicles {
		if takenInBatch[slot] {
			result.Failures = append(result.Failures,
				fmt.Sprintf("%s: slot %s already taken earlier in this run", vehicle.Plate, slot))
			continue
		}

		availability, err := CheckAvailability(s.Appointments, ownerID, result.TargetDate, slot,
			CheckOptions{ExcludeAutoScheduled: true})
		if err != nil {
			result.Failures = append(result.Failures,
				fmt.Sprintf("%s: availability check failed: %v", vehicle.Plate, err))
			continue
		}
		if !availability.Available {
			result.Failures = append(result.Failures,
				fmt.Sprintf("%s: %s", vehicle.Plate, availability.Conflict))
			continue
		}

		service := s.DefaultService
		latest, err := s.Appointments.LatestForPlate(ownerID, vehicle.Plate)
		if err != nil {
			result.Failures = append(result.Failures,
				fmt.Sprintf("%s: history lookup failed: %v", vehicle.Plate, err))
			continue
		}
		if latest != nil && latest.Service != "" {
			service = latest.Service
		}

		appointment := &models.Appointment{
			OwnerID:       ownerID,
			Plate:         vehicle.Plate,
			CustomerName:  vehicle.CustomerName,
			Date:          result.TargetDate,
			Time:          slot,
			Service:       service,
			Price:         models.PriceForService(service),
			Status:        models.StatusPending,
			AutoScheduled: true,
			Recurrent:     true,
		}
		if _, err := s.Appointments.Insert(appointment); err != nil {
			result.Failures = append(result.Failures,
				fmt.Sprintf("%s: %v", vehicle.Plate, err))
			continue
		}

		result.Scheduled++
		takenInBatch[slot] = true
	}

	return result, nil
}

// SeedVehicle is one vehicle to re-book, collected from a reference date.
type SeedVehicle struct {
	Plate        string `json:"plate"`
	CustomerName string `json:"customerName"`
	Service      string `json:"service"`
	Time         string `json:"time"`
}

// VehiclesOnDate collects the distinct vehicles that had any appointment on
// the given date, keeping each plate's earliest time and its service. The
// first occurrence per plate wins on duplicates.
func (s *Scheduler) VehiclesOnDate(ownerID, date string) ([]SeedVehicle, error) {
	appointments, err := s.Appointments.ByOwnerAndDate(ownerID, date)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(appointments, func(i, j int) bool {
		return appointments[i].Time < appointments[j].Time
	})

	seen := make(map[string]bool)
	var seeds []SeedVehicle
	for _, appointment := range appointments {
		if seen[appointment.Plate] {
			continue
		}
		seen[appointment.Plate] = true

		seed := SeedVehicle{
			Plate:        appointment.Plate,
			CustomerName: appointment.CustomerName,
			Service:      appointment.Service,
			Time:         appointment.Time,
		}
		if seed.Service == "" {
			seed.Service = s.DefaultService
		}
		if seed.Time == "" {
			seed.Time = s.DefaultTime
		}
		seeds = append(seeds, seed)
	}
	return seeds, nil
}

// ScheduleFromDate re-books every vehicle that had an appointment on
// referenceDate onto the target date, offsetDays working days later. Each
// vehicle keeps its original time when free; otherwise the first free
// half-hour grid slot at or after the original time is used and the
// adjustment is reported. Occupied slots are re-queried for each vehicle
// that needs a fallback, so a vehicle sees the slots committed by the
// vehicles booked before it.
func (s *Scheduler) ScheduleFromDate(ownerID, referenceDate string, offsetDays int) (*BatchResult, error) {
	if offsetDays <= 0 {
		offsetDays = s.OffsetDays
	}

	base, err := time.Parse("2006-01-02", referenceDate)
	if err != nil {
		return nil, fmt.Errorf("invalid reference date %q: %w", referenceDate, err)
	}

	seeds, err := s.VehiclesOnDate(ownerID, referenceDate)
	if err != nil {
		return nil, err
	}
	if len(seeds) == 0 {
		return nil, ErrNoSeedAppointments
	}

	result := &BatchResult{
		Processed:  len(seeds),
		TargetDate: NextWorkingDate(offsetDays, base),
	}

	for _, seed := range seeds {
		originalTime := NormalizeClock(seed.Time)
		bookedTime := originalTime

		availability, err := CheckAvailability(s.Appointments, ownerID, result.TargetDate, originalTime, CheckOptions{})
		if err != nil {
			result.Failures = append(result.Failures,
				fmt.Sprintf("%s: availability check failed: %v", seed.Plate, err))
			continue
		}

		if !availability.Available {
			occupied, err := s.occupiedSlots(ownerID, result.TargetDate)
			if err != nil {
				result.Failures = append(result.Failures,
					fmt.Sprintf("%s: %v", seed.Plate, err))
				continue
			}
			bookedTime = NextFreeSlot(originalTime, occupied)
			if bookedTime == "" {
				result.Failures = append(result.Failures,
					fmt.Sprintf("%s: no free slot on %s at or after %s",
						seed.Plate, result.TargetDate, originalTime))
				continue
			}
		}

		appointment := &models.Appointment{
			OwnerID:       ownerID,
			Plate:         seed.Plate,
			CustomerName:  seed.CustomerName,
			Date:          result.TargetDate,
			Time:          bookedTime,
			Service:       seed.Service,
			Price:         models.PriceForService(seed.Service),
			Status:        models.StatusPending,
			AutoScheduled: true,
			Recurrent:     true,
			OriginDate:    referenceDate,
			OriginalTime:  originalTime,
			TimeAdjusted:  bookedTime != originalTime,
		}
		if _, err := s.Appointments.Insert(appointment); err != nil {
			result.Failures = append(result.Failures,
				fmt.Sprintf("%s: %v", seed.Plate, err))
			continue
		}

		result.Scheduled++
		if appointment.TimeAdjusted {
			result.Adjustments = append(result.Adjustments,
				fmt.Sprintf("%s: time adjusted from %s to %s", seed.Plate, originalTime, bookedTime))
		}
	}

	return result, nil
}

// occupiedSlots returns the set of normalized start times taken on a date.
func (s *Scheduler) occupiedSlots(ownerID, date string) (map[string]bool, error) {
	appointments, err := s.Appointments.ByOwnerAndDate(ownerID, date)
	if err != nil {
		return nil, err
	}
	occupied := make(map[string]bool, len(appointments))
	for _, appointment := range appointments {
		occupied[NormalizeClock(appointment.Time)] = true
	}
	return occupied, nil
}
