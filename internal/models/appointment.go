package models

// AppointmentStatus represents the status of an appointment
type AppointmentStatus string

const (
	StatusPending   AppointmentStatus = "pending"
	StatusConfirmed AppointmentStatus = "confirmed"
	StatusCompleted AppointmentStatus = "completed"
	StatusCancelled AppointmentStatus = "cancelled"
	StatusEvaluated AppointmentStatus = "evaluated"
	StatusNoShow    AppointmentStatus = "no-show"
)

// Service names offered by the wash. Each maps to a fixed price.
const (
	ServiceBasicWash         = "Basic Wash"
	ServicePremiumWash       = "Premium Wash"
	ServicePolishWax         = "Polish & Wax"
	ServiceDeepInteriorClean = "Deep Interior Clean"
)

// ServicePrices is the fixed service-price table. There is no dynamic pricing.
var ServicePrices = map[string]float64{
	ServiceBasicWash:         25.00,
	ServicePremiumWash:       40.00,
	ServicePolishWax:         60.00,
	ServiceDeepInteriorClean: 45.00,
}

// DefaultServicePrice is charged when a service name is not in the table.
const DefaultServicePrice = 30.00

// PriceForService looks up the fixed price for a service name.
func PriceForService(service string) float64 {
	if price, ok := ServicePrices[service]; ok {
		return price
	}
	return DefaultServicePrice
}

// Appointment represents a scheduled wash occupying a one-hour slot.
// Date is a calendar date (YYYY-MM-DD) and Time the slot start (HH:MM);
// together they define the occupied interval [Time, Time+1h).
type Appointment struct {
	BaseModel
	OwnerID      string            `gorm:"size:36;index" json:"ownerId"`
	Plate        string            `gorm:"size:20;index" json:"plate"`
	CustomerName string            `gorm:"size:150" json:"customerName"`
	Date         string            `gorm:"size:10;index" json:"date"`
	Time         string            `gorm:"size:5" json:"time"`
	Service      string            `gorm:"size:50" json:"service"`
	Price        float64           `json:"price"`
	Status       AppointmentStatus `gorm:"size:20;default:'pending'" json:"status"`

	// Provenance fields, set only on auto-scheduled appointments.
	AutoScheduled bool   `gorm:"default:false" json:"autoScheduled"`
	Recurrent     bool   `gorm:"default:false" json:"recurrent"`
	OriginDate    string `gorm:"size:10" json:"originDate,omitempty"`
	OriginalTime  string `gorm:"size:5" json:"originalTime,omitempty"`
	TimeAdjusted  bool   `gorm:"default:false" json:"timeAdjusted"`

	EvaluationID string `gorm:"size:36" json:"evaluationId,omitempty"`

	Owner User `gorm:"foreignKey:OwnerID" json:"-"`
}
