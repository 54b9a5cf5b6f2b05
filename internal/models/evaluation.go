package models

// Condition grades used for the post-service quality checks.
const (
	ConditionExcellent = "excellent"
	ConditionGood      = "good"
	ConditionFair      = "fair"
	ConditionPoor      = "poor"
)

// Evaluation records the post-service quality review of one appointment.
// The condition/rating fields are only meaningful when Presented is true.
// Evaluations are written once and never updated; they are removed only by
// the bulk-cleanup operations.
type Evaluation struct {
	BaseModel
	OwnerID         string `gorm:"size:36;index" json:"ownerId"`
	AppointmentID   string `gorm:"size:36;index" json:"appointmentId"`
	Plate           string `gorm:"size:20" json:"plate"`
	CustomerName    string `gorm:"size:150" json:"customerName"`
	Service         string `gorm:"size:50" json:"service"`
	AppointmentDate string `gorm:"size:10;index" json:"appointmentDate"`
	Presented       bool   `json:"presented"`
	ACCondition     string `gorm:"size:20" json:"acCondition,omitempty"`
	TireCondition   string `gorm:"size:20" json:"tireCondition,omitempty"`
	Rating          int    `json:"rating,omitempty"`
	Notes           string `gorm:"type:text" json:"notes,omitempty"`

	Owner User `gorm:"foreignKey:OwnerID" json:"-"`
}
