package store

import (
	"gorm.io/gorm"

	"carwash-app-server/internal/models"
)

// Evaluations is the gorm-backed evaluation store.
type Evaluations struct {
	DB *gorm.DB
}

// NewEvaluations creates a new evaluation store.
func NewEvaluations(db *gorm.DB) *Evaluations {
	return &Evaluations{DB: db}
}

// EvaluationFilters narrows evaluation queries. Zero values mean "no filter".
type EvaluationFilters struct {
	DateFrom  string
	DateTo    string
	Presented *bool
}

// Record writes the evaluation, then transitions the linked appointment to
// evaluated or no-show. The two writes are not atomic. Not idempotent: a
// second call for the same appointment creates a second evaluation and
// overwrites the status.
func (s *Evaluations) Record(evaluation *models.Evaluation) (string, error) {
	if err := s.DB.Create(evaluation).Error; err != nil {
		return "", err
	}

	status := models.StatusNoShow
	if evaluation.Presented {
		status = models.StatusEvaluated
	}
	err := s.DB.Model(&models.Appointment{}).
		Where("id = ?", evaluation.AppointmentID).
		Updates(map[string]interface{}{
			"status":        status,
			"evaluation_id": evaluation.ID,
		}).Error
	if err != nil {
		return "", err
	}
	return evaluation.ID, nil
}

// ByOwnerWithFilters returns an owner's evaluations, newest first,
// optionally narrowed by appointment-date range and presentation status.
func (s *Evaluations) ByOwnerWithFilters(ownerID string, filters EvaluationFilters) ([]models.Evaluation, error) {
	query := s.DB.Where("owner_id = ?", ownerID)

	if filters.DateFrom != "" {
		query = query.Where("appointment_date >= ?", filters.DateFrom)
	}
	if filters.DateTo != "" {
		query = query.Where("appointment_date <= ?", filters.DateTo)
	}
	if filters.Presented != nil {
		query = query.Where("presented = ?", *filters.Presented)
	}

	var evaluations []models.Evaluation
	err := query.Order("created_at desc").Find(&evaluations).Error
	return evaluations, err
}

// DeleteAllForOwner removes every evaluation for the owner and reports how
// many were deleted.
func (s *Evaluations) DeleteAllForOwner(ownerID string) (int64, error) {
	result := s.DB.Where("owner_id = ?", ownerID).Delete(&models.Evaluation{})
	return result.RowsAffected, result.Error
}

// DeleteBefore removes evaluations whose appointment date is on or before
// the threshold and reports how many were deleted.
func (s *Evaluations) DeleteBefore(ownerID, date string) (int64, error) {
	result := s.DB.Where("owner_id = ? AND appointment_date <= ?", ownerID, date).
		Delete(&models.Evaluation{})
	return result.RowsAffected, result.Error
}
