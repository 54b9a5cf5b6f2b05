package store

import (
	"gorm.io/gorm"

	"carwash-app-server/internal/models"
)

// Vehicles is the gorm-backed vehicle store.
type Vehicles struct {
	DB *gorm.DB
}

// NewVehicles creates a new vehicle store.
func NewVehicles(db *gorm.DB) *Vehicles {
	return &Vehicles{DB: db}
}

// Insert persists a new vehicle and returns its assigned ID.
func (s *Vehicles) Insert(vehicle *models.Vehicle) (string, error) {
	if err := s.DB.Create(vehicle).Error; err != nil {
		return "", err
	}
	return vehicle.ID, nil
}

// Delete removes a vehicle owned by the given user.
func (s *Vehicles) Delete(ownerID, id string) error {
	result := s.DB.Where("owner_id = ?", ownerID).Delete(&models.Vehicle{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ByOwner returns all vehicles on file for an owner.
func (s *Vehicles) ByOwner(ownerID string) ([]models.Vehicle, error) {
	var vehicles []models.Vehicle
	err := s.DB.Where("owner_id = ?", ownerID).Find(&vehicles).Error
	return vehicles, err
}

// PlateExists reports whether a plate is already on file for the owner.
func (s *Vehicles) PlateExists(ownerID, plate string) (bool, error) {
	var count int64
	err := s.DB.Model(&models.Vehicle{}).
		Where("owner_id = ? AND plate = ?", ownerID, plate).
		Count(&count).Error
	return count > 0, err
}
