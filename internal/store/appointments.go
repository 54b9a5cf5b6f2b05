package store

import (
	"gorm.io/gorm"

	"carwash-app-server/internal/models"
)

// Appointments is the gorm-backed appointment store.
type Appointments struct {
	DB *gorm.DB
}

// NewAppointments creates a new appointment store.
func NewAppointments(db *gorm.DB) *Appointments {
	return &Appointments{DB: db}
}

// Insert persists a new appointment and returns its assigned ID.
func (s *Appointments) Insert(appointment *models.Appointment) (string, error) {
	if err := s.DB.Create(appointment).Error; err != nil {
		return "", err
	}
	return appointment.ID, nil
}

// Delete removes an appointment owned by the given user. Returns
// gorm.ErrRecordNotFound when no such appointment exists.
func (s *Appointments) Delete(ownerID, id string) error {
	result := s.DB.Where("owner_id = ?", ownerID).Delete(&models.Appointment{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ByID returns a single appointment owned by the given user.
func (s *Appointments) ByID(ownerID, id string) (*models.Appointment, error) {
	var appointment models.Appointment
	err := s.DB.Where("owner_id = ?", ownerID).First(&appointment, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &appointment, nil
}

// ByOwner returns all appointments for an owner ordered by date then time.
func (s *Appointments) ByOwner(ownerID string) ([]models.Appointment, error) {
	var appointments []models.Appointment
	err := s.DB.Where("owner_id = ?", ownerID).
		Order("date asc").Order("time asc").
		Find(&appointments).Error
	return appointments, err
}

// ByOwnerAndDate returns all appointments for an owner on a single date.
func (s *Appointments) ByOwnerAndDate(ownerID, date string) ([]models.Appointment, error) {
	var appointments []models.Appointment
	err := s.DB.Where("owner_id = ? AND date = ?", ownerID, date).
		Find(&appointments).Error
	return appointments, err
}

// LatestForPlate returns the most recent appointment for a plate, sorted by
// date then time descending, or nil when the plate has no history.
func (s *Appointments) LatestForPlate(ownerID, plate string) (*models.Appointment, error) {
	var appointment models.Appointment
	err := s.DB.Where("owner_id = ? AND plate = ?", ownerID, plate).
		Order("date desc").Order("time desc").
		First(&appointment).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &appointment, nil
}

// PendingBetween returns pending appointments whose date falls in
// [from, to], most recent first. Used for the evaluation worklist.
func (s *Appointments) PendingBetween(ownerID, from, to string) ([]models.Appointment, error) {
	var appointments []models.Appointment
	err := s.DB.Where("owner_id = ? AND status = ? AND date >= ? AND date <= ?",
		ownerID, models.StatusPending, from, to).
		Order("date desc").Order("time desc").
		Find(&appointments).Error
	return appointments, err
}
